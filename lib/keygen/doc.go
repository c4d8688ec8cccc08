// Package keygen produces candidate keys for stored documents.
//
// A key is a fixed prefix (DefaultPrefix unless configured otherwise) followed by
// a number of generated characters. Two strategies are available:
//
//   - random: each character is drawn uniformly from Keyspace (62 symbols)
//   - phonetic: consonants and vowels alternate, which makes keys easy to read aloud
//
// Generators never remember earlier output. Uniqueness is enforced by the
// document handler, which stores keys with an atomic create-if-absent and
// asks for a new candidate on collision.
//
// Usage Example:
//
//	gen := keygen.NewRandomGenerator(keygen.DefaultPrefix)
//	key := gen.CreateKey(10) // e.g. "rabel-codeq3ZbT0aLxw"
package keygen
