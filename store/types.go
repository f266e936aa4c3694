package store

import "github.com/iov-one/govlock"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = govlock.ReadOnlyKVStore
	SetDeleter       = govlock.SetDeleter
	KVStore          = govlock.KVStore
	Batch            = govlock.Batch
	Iterator         = govlock.Iterator
	CacheableKVStore = govlock.CacheableKVStore
	KVCacheWrap      = govlock.KVCacheWrap
	CommitKVStore    = govlock.CommitKVStore
	CommitID         = govlock.CommitID
	Model            = govlock.Model
)

// Pair constructs a model from a key-value pair
var Pair = govlock.Pair
