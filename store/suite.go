package store

import (
	"bytes"
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/iov-one/govlock/weavetest/assert"
)

// BaseFactory returns a fresh store to run the suite against together with
// a cleanup function.
type BaseFactory func() (CacheableKVStore, func())

// RunSuite checks that a store and the caches built on top of it behave
// like a sorted map.
func RunSuite(t *testing.T, newBase BaseFactory) {
	t.Run("cache read through", func(t *testing.T) { suiteReadThrough(t, newBase) })
	t.Run("nested caches", func(t *testing.T) { suiteNested(t, newBase) })
	t.Run("iterators", func(t *testing.T) { suiteIterators(t, newBase) })
}

// AssertGetHas fails the test unless kv holds want under key. A nil want
// requires the key to be absent.
func AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, want, got)
	has, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, want != nil, has)
}

func suiteReadThrough(t *testing.T, newBase BaseFactory) {
	base, cleanup := newBase()
	defer cleanup()
	k1, k2 := []byte("signer"), []byte("threshold")
	v1, v2 := []byte("alice"), []byte("2")

	assert.Nil(t, base.Set(k1, v1))
	cache := base.CacheWrap()
	AssertGetHas(t, cache, k1, v1)

	assert.Nil(t, cache.Set(k2, v2))
	assert.Nil(t, cache.Delete(k1))
	AssertGetHas(t, cache, k1, nil)
	AssertGetHas(t, cache, k2, v2)
	AssertGetHas(t, base, k1, v1)
	AssertGetHas(t, base, k2, nil)

	cache.Discard()
	AssertGetHas(t, cache, k1, v1)
	AssertGetHas(t, cache, k2, nil)

	assert.Nil(t, cache.Set(k2, v2))
	assert.Nil(t, cache.Delete(k1))
	assert.Nil(t, cache.Write())
	AssertGetHas(t, base, k1, nil)
	AssertGetHas(t, base, k2, v2)
}

func suiteNested(t *testing.T, newBase BaseFactory) {
	base, cleanup := newBase()
	defer cleanup()
	k := []byte("proposal")

	outer := base.CacheWrap()
	assert.Nil(t, outer.Set(k, []byte("open")))
	inner := outer.CacheWrap()
	assert.Nil(t, inner.Set(k, []byte("executed")))
	AssertGetHas(t, outer, k, []byte("open"))

	// a discarded inner cache leaves the outer one untouched
	inner.Discard()
	AssertGetHas(t, outer, k, []byte("open"))

	inner = outer.CacheWrap()
	assert.Nil(t, inner.Set(k, []byte("executed")))
	assert.Nil(t, inner.Write())
	AssertGetHas(t, outer, k, []byte("executed"))
	AssertGetHas(t, base, k, nil)

	assert.Nil(t, outer.Write())
	AssertGetHas(t, base, k, []byte("executed"))
}

func suiteIterators(t *testing.T, newBase BaseFactory) {
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 10; round++ {
		base, cleanup := newBase()
		want := make(map[string][]byte)

		// every layer holds part of the state and deletes some keys of
		// the layer below
		mid := base.CacheWrap()
		layers := []KVStore{base, mid, mid.CacheWrap()}
		for _, layer := range layers {
			for i := 0; i < 40; i++ {
				key := []byte(fmt.Sprintf("%02x", r.Intn(64)))
				if r.Intn(4) == 0 {
					assert.Nil(t, layer.Delete(key))
					delete(want, string(key))
					continue
				}
				value := []byte(fmt.Sprintf("v%d", r.Int()))
				assert.Nil(t, layer.Set(key, value))
				want[string(key)] = value
			}
		}
		top := layers[2]

		bounds := [][2][]byte{
			{nil, nil},
			{[]byte("10"), nil},
			{nil, []byte("30")},
			{[]byte("08"), []byte("2f")},
			{[]byte("zz"), nil},
		}
		for _, b := range bounds {
			expected := sortedRange(want, b[0], b[1])
			it, err := top.Iterator(b[0], b[1])
			assert.Nil(t, err)
			assertIterates(t, it, expected, want)

			for i, j := 0, len(expected)-1; i < j; i, j = i+1, j-1 {
				expected[i], expected[j] = expected[j], expected[i]
			}
			it, err = top.ReverseIterator(b[0], b[1])
			assert.Nil(t, err)
			assertIterates(t, it, expected, want)
		}
		cleanup()
	}
}

func sortedRange(m map[string][]byte, start, end []byte) []string {
	var keys []string
	for k := range m {
		if start != nil && bytes.Compare([]byte(k), start) < 0 {
			continue
		}
		if end != nil && bytes.Compare([]byte(k), end) >= 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func assertIterates(t testing.TB, it Iterator, keys []string, values map[string][]byte) {
	t.Helper()
	defer it.Close()
	var got []string
	for ; it.Valid(); assert.Nil(t, it.Next()) {
		got = append(got, string(it.Key()))
		assert.Equal(t, values[string(it.Key())], it.Value())
	}
	assert.Equal(t, keys, got)
	if err := it.Next(); err == nil {
		t.Fatal("next on an exhausted iterator must fail")
	}
}
