// Package testing provides the conformance suite for store.IStore implementations.
//
// Every backend calls RunStoreTests from its own _test.go file, persistent
// backends additionally call RunPersistenceTests:
//
//	func Test(t *testing.T) {
//		storetesting.RunStoreTests(t, "FileStore", func(t *testing.T) store.IStore {
//			s, err := NewFileStore(t.TempDir())
//			require.NoError(t, err)
//			return s
//		})
//	}
package testing
