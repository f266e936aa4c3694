package app

import (
	"context"
	"testing"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/store"
	"github.com/iov-one/govlock/weavetest"
	"github.com/iov-one/govlock/weavetest/assert"
)

func TestRouterDispatch(t *testing.T) {
	var good, bad weavetest.Handler
	bad.DeliverErr = errors.ErrUnauthorized

	r := NewRouter()
	r.Handle("mod/good", &good)
	r.Handle("mod/bad", &bad)

	ctx := context.Background()
	db := store.MemStore()

	cases := map[string]struct {
		path    string
		wantErr *errors.Error
	}{
		"registered handler": {path: "mod/good"},
		"handler failure":    {path: "mod/bad", wantErr: errors.ErrUnauthorized},
		"unknown path":       {path: "mod/missing", wantErr: errors.ErrNotFound},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: tc.path}}
			_, err := r.Deliver(ctx, db, tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}

	assert.Equal(t, 1, good.DeliverCallCount())
	assert.Equal(t, 1, bad.DeliverCallCount())

	if _, err := r.Check(ctx, db, &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "mod/good"}}); err != nil {
		t.Fatalf("check: %s", err)
	}
	assert.Equal(t, 1, good.CheckCallCount())
}

func TestRouterMsgError(t *testing.T) {
	r := NewRouter()
	r.Handle("mod/good", &weavetest.Handler{})

	tx := &weavetest.Tx{Err: errors.ErrInput}
	_, err := r.Deliver(context.Background(), store.MemStore(), tx)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestRouterRegistration(t *testing.T) {
	r := NewRouter()
	r.Handle("mod/path_1", &weavetest.Handler{})

	assert.Panics(t, func() { r.Handle("mod/path_1", &weavetest.Handler{}) })
	assert.Panics(t, func() { r.Handle("mod path", &weavetest.Handler{}) })
	assert.Panics(t, func() { r.Handle("", &weavetest.Handler{}) })

	var _ govlock.Registry = r
}
