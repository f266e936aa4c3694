package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/store"
	"github.com/iov-one/govlock/weavetest"
	"github.com/iov-one/govlock/weavetest/assert"
)

// pingMsg is a minimal message that can be encoded as a call.
type pingMsg struct {
	Value []byte
}

func (pingMsg) Path() string {
	return "test/ping"
}

func (m *pingMsg) Marshal() ([]byte, error) {
	return m.Value, nil
}

func (m *pingMsg) Unmarshal(raw []byte) error {
	m.Value = raw
	return nil
}

func (m *pingMsg) Validate() error {
	if len(m.Value) == 0 {
		return errors.Wrap(errors.ErrEmpty, "value")
	}
	return nil
}

// recordingHandler remembers the context of the last delivered message.
type recordingHandler struct {
	weavetest.Handler
	contract govlock.Address
	depth    int
	msg      govlock.Msg
}

func (h *recordingHandler) Deliver(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.DeliverResult, error) {
	h.contract, _ = govlock.GetContract(ctx)
	h.depth = govlock.GetCallDepth(ctx)
	h.msg, _ = tx.GetMsg()
	return h.Handler.Deliver(ctx, db, tx)
}

func newTestDispatcher(h govlock.Handler) *Dispatcher {
	calls := govlock.NewCallRegistry()
	calls.Register(&pingMsg{})
	r := NewRouter()
	r.Handle("test/ping", h)
	return NewDispatcher(r, calls)
}

func TestDispatcherCall(t *testing.T) {
	h := &recordingHandler{}
	h.DeliverResult = govlock.DeliverResult{Data: []byte("pong")}
	d := newTestDispatcher(h)

	caller := weavetest.NewCondition().Address()
	target := weavetest.NewCondition().Address()
	ctx := govlock.WithContract(context.Background(), caller)

	payload, err := govlock.EncodeCall(&pingMsg{Value: []byte("hi")})
	assert.Nil(t, err)

	res, err := d.Call(ctx, store.MemStore(), target, payload)
	assert.Nil(t, err)
	assert.Equal(t, []byte("pong"), res.Data)
	assert.Equal(t, target, h.contract)
	assert.Equal(t, 1, h.depth)
	if msg, ok := h.msg.(*pingMsg); !ok || !bytes.Equal(msg.Value, []byte("hi")) {
		t.Fatalf("unexpected message delivered: %#v", h.msg)
	}
}

func TestDispatcherCallFailures(t *testing.T) {
	target := weavetest.NewCondition().Address()
	valid, err := govlock.EncodeCall(&pingMsg{Value: []byte("hi")})
	assert.Nil(t, err)

	deepCtx := context.Background()
	for i := 0; i < govlock.MaxCallDepth; i++ {
		deepCtx, err = govlock.WithCallDepth(deepCtx)
		assert.Nil(t, err)
	}

	cases := map[string]struct {
		ctx        govlock.Context
		target     govlock.Address
		payload    []byte
		handlerErr error
		wantErr    *errors.Error
	}{
		"unknown selector": {
			ctx:     context.Background(),
			target:  target,
			payload: []byte{1, 2, 3, 4, 5},
			wantErr: errors.ErrInput,
		},
		"payload too short": {
			ctx:     context.Background(),
			target:  target,
			payload: []byte{1},
			wantErr: errors.ErrInput,
		},
		"invalid message": {
			ctx:     context.Background(),
			target:  target,
			payload: govlock.CallSelector("test/ping"),
			wantErr: errors.ErrEmpty,
		},
		"invalid target": {
			ctx:     context.Background(),
			target:  govlock.Address("short"),
			payload: valid,
			wantErr: errors.ErrInput,
		},
		"too deep": {
			ctx:     deepCtx,
			target:  target,
			payload: valid,
			wantErr: errors.ErrState,
		},
		"callee failure is returned": {
			ctx:        context.Background(),
			target:     target,
			payload:    valid,
			handlerErr: errors.ErrUnauthorized,
			wantErr:    errors.ErrUnauthorized,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			h := &recordingHandler{}
			h.DeliverErr = tc.handlerErr
			d := newTestDispatcher(h)
			_, err := d.Call(tc.ctx, store.MemStore(), tc.target, tc.payload)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestDispatcherTopLevel(t *testing.T) {
	h := &recordingHandler{}
	d := newTestDispatcher(h)
	target := weavetest.NewCondition().Address()
	db := store.MemStore()
	ctx := context.Background()

	tx := &weavetest.Tx{
		Msg:    &pingMsg{Value: []byte("hi")},
		Target: target,
	}
	_, err := d.Deliver(ctx, db, tx)
	assert.Nil(t, err)
	assert.Equal(t, target, h.contract)
	assert.Equal(t, 0, h.depth)

	_, err = d.Check(ctx, db, tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, h.CheckCallCount())

	tx.Target = nil
	_, err = d.Deliver(ctx, db, tx)
	assert.IsErr(t, errors.ErrInput, err)
}
