package govlock

// ReadOnlyKVStore reads from a sorted key-value store. Keys must not be nil.
type ReadOnlyKVStore interface {
	// Get returns nil for a missing key.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator walks [start, end) in ascending order. A nil bound is open.
	// The range must not be written to while the iterator is in use.
	Iterator(start, end []byte) (Iterator, error)
	// ReverseIterator walks [start, end) in descending order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter writes to a store or a batch. Passed slices must not be
// modified afterwards.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the store every handler works on.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch collects writes that are applied together by Write.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator is a cursor over a range of keys:
//
//   it, err := db.Iterator(start, end)
//   ...
//   defer it.Close()
//   for ; it.Valid(); it.Next() {
//     use(it.Key(), it.Value())
//   }
//
// Key and Value panic once the iterator is no longer valid, Next returns an
// error. The returned slices must not be modified.
type Iterator interface {
	Valid() bool
	Next() error
	Key() []byte
	Value() []byte
	Close()
}

// CacheableKVStore can stack a cache on top of itself. All writes of a
// transaction go to such a cache and are written through only when the
// transaction succeeds.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap holds uncommitted writes on top of another store. Reads see
// the cached writes.
type KVCacheWrap interface {
	CacheableKVStore
	// Write applies all cached writes to the parent store.
	Write() error
	// Discard drops all cached writes.
	Discard()
}

// CommitKVStore is the persistent versioned store of the chain.
type CommitKVStore interface {
	// Get reads the last committed version.
	Get(key []byte) ([]byte, error)
	// CacheWrap returns a cache on top of the working version.
	CacheWrap() KVCacheWrap
	// Commit persists the working version as a new version.
	Commit() (CommitID, error)
	// LoadLatestVersion loads the newest version that was committed
	// completely.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by its number and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
