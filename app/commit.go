package app

import (
	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
)

// state keeps the committed store together with the caches CheckTx and
// DeliverTx write to during a block.
type state struct {
	committed govlock.CommitKVStore
	deliver   govlock.KVCacheWrap
	check     govlock.KVCacheWrap
}

// loadState loads the latest version of the store. It panics when the
// store cannot be loaded.
func loadState(kv govlock.CommitKVStore) *state {
	if err := kv.LoadLatestVersion(); err != nil {
		panic(err)
	}
	s := &state{committed: kv}
	s.reset()
	return s
}

func (s *state) reset() {
	s.deliver = s.committed.CacheWrap()
	s.check = s.committed.CacheWrap()
}

// commit persists everything delivered in this block and drops the changes
// made by CheckTx.
func (s *state) commit() (govlock.CommitID, error) {
	if err := s.deliver.Write(); err != nil {
		return govlock.CommitID{}, errors.Wrap(err, "write deliver cache")
	}
	s.check.Discard()
	id, err := s.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	s.reset()
	return id, nil
}

func (s *state) latest() (govlock.CommitID, error) { return s.committed.LatestVersion() }

// queryable is a view of the last committed state.
func (s *state) queryable() govlock.ReadOnlyKVStore { return s.committed.CacheWrap() }
