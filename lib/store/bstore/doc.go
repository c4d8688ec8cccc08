// Package bstore implements a document store on top of a single bbolt database
// file ({dataPath}/documents.db) based on the store.IStore interface.
//
// bbolt serializes writable transactions, so SetIfUnset performs the existence
// check and the put inside one Update transaction without further locking.
// Reads use concurrent View transactions and copy values out before the
// transaction ends.
//
// Only one process may open the database file at a time, NewBoltStore waits up
// to five seconds for the file lock before giving up.
package bstore
