package utils_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/store"
	"github.com/iov-one/govlock/weavetest"
	"github.com/iov-one/govlock/weavetest/assert"
	"github.com/iov-one/govlock/x/utils"
	"github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

func TestSavepoint(t *testing.T) {
	key, value := []byte("proposal"), []byte("executed")

	writer := func(fail error) *weavetest.Handler {
		write := func(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) error {
			return db.Set(key, value)
		}
		return &weavetest.Handler{
			OnCheck:    write,
			OnDeliver:  write,
			CheckErr:   fail,
			DeliverErr: fail,
		}
	}

	cases := map[string]struct {
		save        utils.Savepoint
		fail        error
		wantCheck   bool
		wantDeliver bool
	}{
		"disabled keeps writes of a failure": {
			save:        utils.NewSavepoint(),
			fail:        errors.ErrState,
			wantCheck:   true,
			wantDeliver: true,
		},
		"deliver savepoint drops writes of a failed deliver": {
			save:        utils.NewSavepoint().OnDeliver(),
			fail:        errors.ErrState,
			wantCheck:   true,
			wantDeliver: false,
		},
		"check savepoint drops writes of a failed check": {
			save:        utils.NewSavepoint().OnCheck(),
			fail:        errors.ErrState,
			wantCheck:   false,
			wantDeliver: true,
		},
		"success is written": {
			save:        utils.NewSavepoint().OnCheck().OnDeliver(),
			wantCheck:   true,
			wantDeliver: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			h := writer(tc.fail)

			db := store.MemStore()
			_, err := tc.save.Check(ctx, db, nil, h)
			assert.IsErr(t, tc.fail, err)
			assertHas(t, db, key, tc.wantCheck)

			db = store.MemStore()
			_, err = tc.save.Deliver(ctx, db, nil, h)
			assert.IsErr(t, tc.fail, err)
			assertHas(t, db, key, tc.wantDeliver)
		})
	}
}

func assertHas(t testing.TB, db govlock.ReadOnlyKVStore, key []byte, want bool) {
	t.Helper()
	has, err := db.Has(key)
	assert.Nil(t, err)
	if has != want {
		t.Fatalf("want key present %v, got %v", want, has)
	}
}

func TestRecovery(t *testing.T) {
	ctx := context.Background()
	h := &weavetest.Handler{
		OnCheck:   func(govlock.Context, govlock.KVStore, govlock.Tx) error { panic("check") },
		OnDeliver: func(govlock.Context, govlock.KVStore, govlock.Tx) error { panic("deliver") },
	}

	_, err := utils.NewRecovery().Check(ctx, store.MemStore(), nil, h)
	assert.IsErr(t, errors.ErrPanic, err)
	_, err = utils.NewRecovery().Deliver(ctx, store.MemStore(), nil, h)
	assert.IsErr(t, errors.ErrPanic, err)
}

func TestActionTagger(t *testing.T) {
	contract := weavetest.NewCondition().Address()
	msg := &weavetest.Msg{RoutePath: "timelock/approve_proposal"}

	cases := map[string]struct {
		tx       *weavetest.Tx
		handler  *weavetest.Handler
		wantErr  *errors.Error
		wantTags []common.KVPair
	}{
		"success is tagged with the message path": {
			tx:      &weavetest.Tx{Msg: msg},
			handler: &weavetest.Handler{},
			wantTags: []common.KVPair{
				{Key: []byte(utils.ActionKey), Value: []byte("timelock/approve_proposal")},
			},
		},
		"contract is tagged": {
			tx: &weavetest.Tx{Msg: msg, Target: contract},
			handler: &weavetest.Handler{
				DeliverResult: govlock.DeliverResult{
					Tags: []common.KVPair{{Key: []byte("proposal"), Value: []byte("1")}},
				},
			},
			wantTags: []common.KVPair{
				{Key: []byte("proposal"), Value: []byte("1")},
				{Key: []byte(utils.ActionKey), Value: []byte("timelock/approve_proposal")},
				{Key: []byte(utils.ContractKey), Value: []byte(contract.String())},
			},
		},
		"failure is not tagged": {
			tx:      &weavetest.Tx{Msg: msg, Target: contract},
			handler: &weavetest.Handler{DeliverErr: errors.ErrUnauthorized},
			wantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			h := weavetest.Decorate(tc.handler, utils.NewActionTagger())
			res, err := h.Deliver(context.Background(), store.MemStore(), tc.tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, tc.wantTags, res.Tags)
		})
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := govlock.WithLogger(context.Background(), log.NewTMLogger(&buf))
	contract := weavetest.NewCondition().Address()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "timelock/execute_proposal"}, Target: contract}

	h := &weavetest.Handler{DeliverErr: errors.ErrUnauthorized.New("not a signer")}
	_, err := utils.NewLogging().Deliver(ctx, store.MemStore(), tx, h)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	out := buf.String()
	for _, want := range []string{"deliver failed", "not a signer", "timelock/execute_proposal", contract.String(), "duration"} {
		if !strings.Contains(out, want) {
			t.Errorf("%q not logged: %s", want, out)
		}
	}
}
