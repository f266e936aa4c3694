package govlock

import (
	"fmt"
)

// Query modes understood by buckets and indexes. The default mode loads a
// single key, the prefix mode loads every key starting with the data.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is a key-value pair returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers ABCI queries for a single path.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister lets an extension register its query handlers.
type QueryRegister func(QueryRouter)

// QueryRouter dispatches queries by their path.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

func (r QueryRouter) RegisterAll(registers ...QueryRegister) {
	for _, register := range registers {
		register(r)
	}
}

// Register binds a handler to the path. A path can be bound only once.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, taken := r.routes[path]; taken {
		panic(fmt.Sprintf("query path %q already registered", path))
	}
	r.routes[path] = h
}

// Handler returns the handler bound to path or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
