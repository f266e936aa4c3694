package x

import (
	"context"
	"testing"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/weavetest"
	"github.com/iov-one/govlock/weavetest/assert"
)

func TestChainAuth(t *testing.T) {
	alice := weavetest.NewCondition()
	bert := weavetest.NewCondition()
	carl := weavetest.NewCondition()

	signers := &weavetest.CtxAuth{Key: "signers"}
	timelock := &weavetest.CtxAuth{Key: "timelock"}
	ctx := signers.SetConditions(context.Background(), alice, bert)

	cases := map[string]struct {
		auth    Authenticator
		want    []govlock.Condition
		missing govlock.Condition
	}{
		"nothing authenticated": {
			auth:    ChainAuth(),
			missing: alice,
		},
		"single static signer": {
			auth:    ChainAuth(&weavetest.Auth{Signer: carl}),
			want:    []govlock.Condition{carl},
			missing: alice,
		},
		"order of members is kept": {
			auth:    ChainAuth(&weavetest.Auth{Signer: carl}, signers),
			want:    []govlock.Condition{carl, alice, bert},
			missing: weavetest.NewCondition(),
		},
		"repeated conditions reported once": {
			auth:    ChainAuth(signers, &weavetest.Auth{Signers: []govlock.Condition{bert, alice}}),
			want:    []govlock.Condition{alice, bert},
			missing: carl,
		},
		"context key of another member": {
			auth:    ChainAuth(timelock),
			missing: alice,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.auth.GetConditions(ctx))
			for _, c := range tc.want {
				if !tc.auth.HasAddress(ctx, c.Address()) {
					t.Errorf("%s not authenticated", c)
				}
				assert.Equal(t, true, HasAddress(ctx, tc.auth, c.Address()))
			}
			if tc.auth.HasAddress(ctx, tc.missing.Address()) {
				t.Errorf("%s must not be authenticated", tc.missing)
			}
			assert.Equal(t, false, HasAddress(ctx, tc.auth, tc.missing.Address()))

			var main govlock.Condition
			if len(tc.want) != 0 {
				main = tc.want[0]
			}
			assert.Equal(t, main, MainSigner(ctx, tc.auth))
		})
	}
}
