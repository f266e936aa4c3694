package govlock_test

import (
	"testing"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/weavetest"
	"github.com/iov-one/govlock/weavetest/assert"
)

// renamedMsg has the same layout as weavetest.Msg but a distinct type.
type renamedMsg struct {
	weavetest.Msg
}

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx       govlock.Tx
		dst      func() interface{}
		wantErr  *errors.Error
		wantPath string
	}{
		"matching message type": {
			tx:       &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/load", Serialized: []byte("x")}},
			dst:      func() interface{} { return &weavetest.Msg{} },
			wantPath: "test/load",
		},
		"different message type": {
			tx:      &weavetest.Tx{Msg: &renamedMsg{Msg: weavetest.Msg{RoutePath: "test/load"}}},
			dst:     func() interface{} { return &weavetest.Msg{} },
			wantErr: errors.ErrType,
		},
		"destination is not a pointer": {
			tx:      &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/load"}},
			dst:     func() interface{} { return weavetest.Msg{} },
			wantErr: errors.ErrType,
		},
		"nil destination": {
			tx:      &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/load"}},
			dst:     func() interface{} { return (*weavetest.Msg)(nil) },
			wantErr: errors.ErrType,
		},
		"message fails validation": {
			tx:      &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/load", Err: errors.ErrInput}},
			dst:     func() interface{} { return &weavetest.Msg{} },
			wantErr: errors.ErrInput,
		},
		"transaction without message": {
			tx:      &weavetest.Tx{Err: errors.ErrEmpty},
			dst:     func() interface{} { return &weavetest.Msg{} },
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			dst := tc.dst()
			err := govlock.LoadMsg(tc.tx, dst)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			loaded := dst.(*weavetest.Msg)
			assert.Equal(t, tc.wantPath, loaded.Path())
			assert.Equal(t, []byte("x"), loaded.Serialized)
		})
	}
}

func TestLoadMsgCopiesValue(t *testing.T) {
	src := &weavetest.Msg{RoutePath: "test/load"}
	var dst weavetest.Msg
	assert.Nil(t, govlock.LoadMsg(&weavetest.Tx{Msg: src}, &dst))

	// later changes to the transaction message do not leak into the copy
	src.RoutePath = "test/changed"
	assert.Equal(t, "test/load", dst.RoutePath)
}
