package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/govlock/errors"
)

// btreeDegree is the degree of the btree holding cached writes.
const btreeDegree = 8

// entry is a cached write. A deleted entry shadows the parent value.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

func (e *entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(*entry).key) < 0
}

// Cache keeps writes in memory on top of a parent store. Reads see the
// cached writes first. Write flushes them to the parent in key order, Discard
// drops them.
type Cache struct {
	tree   *btree.BTree
	parent ReadOnlyKVStore
	out    SetDeleter
}

var _ KVCacheWrap = (*Cache)(nil)

// NewCache returns a cache reading through parent and flushing into out.
func NewCache(parent ReadOnlyKVStore, out SetDeleter) *Cache {
	return &Cache{
		tree:   btree.New(btreeDegree),
		parent: parent,
		out:    out,
	}
}

// MemStore returns an empty in memory store.
func MemStore() CacheableKVStore {
	return NewCache(empty{}, empty{})
}

func (c *Cache) lookup(key []byte) *entry {
	if it := c.tree.Get(&entry{key: key}); it != nil {
		return it.(*entry)
	}
	return nil
}

func (c *Cache) Get(key []byte) ([]byte, error) {
	if e := c.lookup(key); e != nil {
		if e.deleted {
			return nil, nil
		}
		return e.value, nil
	}
	return c.parent.Get(key)
}

func (c *Cache) Has(key []byte) (bool, error) {
	if e := c.lookup(key); e != nil {
		return !e.deleted, nil
	}
	return c.parent.Has(key)
}

func (c *Cache) Set(key, value []byte) error {
	c.tree.ReplaceOrInsert(&entry{key: key, value: value})
	return nil
}

func (c *Cache) Delete(key []byte) error {
	c.tree.ReplaceOrInsert(&entry{key: key, deleted: true})
	return nil
}

// NewBatch returns a batch writing into this cache.
func (c *Cache) NewBatch() Batch {
	return NewBatch(c)
}

// CacheWrap returns a cache on top of this one.
func (c *Cache) CacheWrap() KVCacheWrap {
	return NewCache(c, c)
}

// Write flushes all cached writes to the parent and empties the cache.
func (c *Cache) Write() error {
	var err error
	c.tree.Ascend(func(it btree.Item) bool {
		e := it.(*entry)
		if e.deleted {
			err = c.out.Delete(e.key)
		} else {
			err = c.out.Set(e.key, e.value)
		}
		return err == nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	c.Discard()
	return nil
}

// Discard drops all cached writes.
func (c *Cache) Discard() {
	c.tree.Clear(false)
}

func (c *Cache) Iterator(start, end []byte) (Iterator, error) {
	parent, err := c.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(c.entries(start, end, false), parent, false)
}

func (c *Cache) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := c.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(c.entries(start, end, true), parent, true)
}

// entries returns a snapshot of the cached writes within [start, end).
func (c *Cache) entries(start, end []byte, reverse bool) []*entry {
	var list []*entry
	collect := func(it btree.Item) bool {
		list = append(list, it.(*entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		c.tree.Ascend(collect)
	case start == nil:
		c.tree.AscendLessThan(&entry{key: end}, collect)
	case end == nil:
		c.tree.AscendGreaterOrEqual(&entry{key: start}, collect)
	default:
		c.tree.AscendRange(&entry{key: start}, &entry{key: end}, collect)
	}
	if reverse {
		for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
			list[i], list[j] = list[j], list[i]
		}
	}
	return list
}
