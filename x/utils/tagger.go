package utils

import (
	"github.com/iov-one/govlock"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	// ActionKey tags a delivered transaction with its message path.
	ActionKey = "action"
	// ContractKey tags a delivered transaction with the address of the
	// contract it was addressed to.
	ContractKey = "contract"
)

// ActionTagger tags every successfully delivered transaction, so clients can
// subscribe to a kind of message or to a contract.
type ActionTagger struct{}

var _ govlock.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx, next govlock.Checker) (*govlock.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx, next govlock.Deliverer) (*govlock.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, common.KVPair{Key: []byte(ActionKey), Value: []byte(msg.Path())})
	if t, ok := tx.(govlock.TargetedTx); ok && len(t.GetTarget()) != 0 {
		res.Tags = append(res.Tags, common.KVPair{Key: []byte(ContractKey), Value: []byte(t.GetTarget().String())})
	}
	return res, nil
}
