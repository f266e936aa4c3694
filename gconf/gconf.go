package gconf

import (
	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
)

// ReadStore is the part of a store Load needs.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the part of a store Save needs.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// Configuration is a serializable configuration object. Protobuf messages
// provide Marshal and Unmarshal, Validate must be written by hand.
type Configuration interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
	Validate() error
}

// Key returns the database key of the configuration of pkg.
func Key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates the configuration of pkg and stores it.
func Save(db Store, pkg string, conf Configuration) error {
	key := Key(pkg)
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", key)
	}
	raw, err := conf.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", key)
	}
	return db.Set(key, raw)
}

// Load reads the configuration of pkg into dst. It fails with ErrNotFound
// when pkg was never configured.
func Load(db ReadStore, pkg string, dst Configuration) error {
	key := Key(pkg)
	switch raw, err := db.Get(key); {
	case err != nil:
		return err
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "key %q", key)
	default:
		if err := dst.Unmarshal(raw); err != nil {
			return errors.Wrapf(errors.ErrState, "unmarshal: key %q: %s", key, err)
		}
		return nil
	}
}

// InitConfig reads the configuration of pkg from the "conf" section of the
// genesis app state and saves it.
func InitConfig(db Store, opts govlock.Options, pkg string, conf Configuration) error {
	var section govlock.Options
	if err := opts.ReadOptions("conf", &section); err != nil {
		return errors.Wrapf(errors.ErrInput, "read conf: %s", err)
	}
	if _, ok := section[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", pkg)
	}
	if err := section.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(errors.ErrInput, "read configuration for %s: %s", pkg, err)
	}
	return errors.Wrapf(Save(db, pkg, conf), "save configuration for %s", pkg)
}

// QueryHandler serves the stored configuration of a single package and
// ignores the query data.
type QueryHandler struct {
	pkg string
}

var _ govlock.QueryHandler = QueryHandler{}

func NewQueryHandler(pkg string) QueryHandler {
	return QueryHandler{pkg: pkg}
}

func (q QueryHandler) Query(db govlock.ReadOnlyKVStore, mod string, _ []byte) ([]govlock.Model, error) {
	if mod != govlock.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported query mod %q", mod)
	}
	key := Key(q.pkg)
	raw, err := db.Get(key)
	if err != nil || raw == nil {
		return nil, err
	}
	return []govlock.Model{govlock.Pair(key, raw)}, nil
}
