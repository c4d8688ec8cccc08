// Package fstore implements a filesystem backed document store based on the
// store.IStore interface. Every document is one file:
//
//	{dataPath}/{hex(sha256(key))[:2]}/{hex(sha256(key))}
//
// Implementation Details:
//
//   - Collision Safety: a document is first written to a temporary file in its
//     shard directory and then hard-linked to its final name. link(2) fails with
//     EEXIST when the name is taken, which makes the existence check and the
//     creation a single atomic step even across processes sharing the directory.
//
//   - Complete Reads: readers only ever open final names, and final names only
//     appear once the content is fully written and synced.
//
//   - Key Safety: keys are hashed, so keys containing path separators or dots
//     cannot address files outside the data directory.
//
// The data directory must live on a filesystem that supports hard links.
package fstore
