package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different
// paths and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]govlock.Handler
}

var _ govlock.Registry = (*Router)(nil)
var _ govlock.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]govlock.Handler, 10),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered.
func (r *Router) Handle(path string, h govlock.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for the message of this
// transaction.
func (r *Router) handler(tx govlock.Tx) (govlock.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	path := msg.Path()
	h, ok := r.routes[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", path)
	}
	return h, nil
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx govlock.Context, store govlock.KVStore, tx govlock.Tx) (*govlock.CheckResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx govlock.Context, store govlock.KVStore, tx govlock.Tx) (*govlock.DeliverResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, store, tx)
}
