package app

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/app"
	"github.com/iov-one/govlock/crypto"
	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/weavetest/assert"
	"github.com/iov-one/govlock/x/eventlog"
	"github.com/iov-one/govlock/x/timelock"
	"github.com/iov-one/govlock/x/upgrade"
	abci "github.com/tendermint/tendermint/abci/types"
)

const testChainID = "govlock-test"

// chain drives the application one transaction per block.
type chain struct {
	t      *testing.T
	app    app.BaseApp
	height int64
	now    time.Time
	seqs   map[string]int64
}

func newChain(t *testing.T, genesis interface{}) *chain {
	t.Helper()
	calls := CallRegistry()
	a, err := Application(Name, Stack(calls), app.NewTxDecoder(calls), "", false)
	assert.Nil(t, err)
	a.WithInit(Initializers())

	state, err := json.Marshal(genesis)
	assert.Nil(t, err)
	c := &chain{
		t:    t,
		app:  a,
		now:  time.Unix(1560000000, 0).UTC(),
		seqs: make(map[string]int64),
	}
	a.InitChain(abci.RequestInitChain{
		ChainId:       testChainID,
		Time:          c.now,
		AppStateBytes: state,
	})
	a.Commit()
	return c
}

// send signs the message with the key and delivers it to the target in a
// new block.
func (c *chain) send(key *crypto.PrivateKey, target govlock.Address, msg govlock.Msg) abci.ResponseDeliverTx {
	c.t.Helper()
	tx, err := app.NewTx(target, msg)
	assert.Nil(c.t, err)
	signer := key.PublicKey().Address().String()
	assert.Nil(c.t, tx.Sign(key, testChainID, c.seqs[signer]))
	c.seqs[signer]++
	raw, err := tx.Marshal()
	assert.Nil(c.t, err)

	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: testChainID, Height: c.height, Time: c.now},
	})
	check := c.app.CheckTx(raw)
	res := c.app.DeliverTx(raw)
	if res.Code == 0 && check.Code != 0 {
		c.t.Fatalf("check failed but deliver passed: %s", check.Log)
	}
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()
	return res
}

func (c *chain) mustSend(key *crypto.PrivateKey, target govlock.Address, msg govlock.Msg) abci.ResponseDeliverTx {
	c.t.Helper()
	res := c.send(key, target, msg)
	if res.Code != 0 {
		c.t.Fatalf("%T failed with %d: %s", msg, res.Code, res.Log)
	}
	return res
}

func (c *chain) wait(d time.Duration) {
	c.now = c.now.Add(d)
}

func (c *chain) contract(addr govlock.Address) *upgrade.Contract {
	c.t.Helper()
	res := c.app.Query(abci.RequestQuery{Path: "/contracts", Data: addr})
	if res.Code != 0 {
		c.t.Fatalf("cannot query contract: %s", res.Log)
	}
	var contract upgrade.Contract
	assert.Nil(c.t, app.UnmarshalOneResult(res.Value, &contract))
	return &contract
}

func (c *chain) events(addr govlock.Address) []string {
	c.t.Helper()
	res := c.app.Query(abci.RequestQuery{Path: "/events/contract", Data: addr})
	if res.Code != 0 {
		c.t.Fatalf("cannot query events: %s", res.Log)
	}
	var values app.ResultSet
	assert.Nil(c.t, values.Unmarshal(res.Value))
	var kinds []string
	for _, raw := range values.Results {
		var e eventlog.Event
		assert.Nil(c.t, e.Unmarshal(raw))
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func count(items []string, want string) int {
	var n int
	for _, s := range items {
		if s == want {
			n++
		}
	}
	return n
}

type keys struct {
	signers   []*crypto.PrivateKey
	owner     *crypto.PrivateKey
	authority *crypto.PrivateKey
	target    govlock.Address
}

func newKeys() keys {
	return keys{
		signers:   []*crypto.PrivateKey{crypto.GenPrivKeyEd25519(), crypto.GenPrivKeyEd25519(), crypto.GenPrivKeyEd25519()},
		owner:     crypto.GenPrivKeyEd25519(),
		authority: crypto.GenPrivKeyEd25519(),
		target:    govlock.NewAddress([]byte("target contract")),
	}
}

func genesis(k keys) interface{} {
	conf := timelock.Configuration{
		Metadata:          &govlock.Metadata{Schema: 1},
		RequiredApprovals: 2,
		DelaySeconds:      600,
	}
	for _, s := range k.signers {
		conf.Signers = append(conf.Signers, s.PublicKey().Address())
	}
	return map[string]interface{}{
		"conf": map[string]interface{}{
			timelock.ConfigPackage: conf,
		},
		"upgrade": map[string]interface{}{
			"contracts": []upgrade.GenesisContract{
				{
					Address:        k.target,
					Owner:          k.owner.PublicKey().Address(),
					Timelock:       timelock.Address(),
					Implementation: []byte("v1"),
				},
			},
		},
	}
}

func TestUpgradePermissionHandoff(t *testing.T) {
	k := newKeys()
	c := newChain(t, genesis(k))
	newAuthority := k.authority.PublicKey().Address()
	meta := &govlock.Metadata{Schema: 1}

	// the owner prepares the call granting the upgrade authority
	res := c.mustSend(k.owner, k.target, &upgrade.RequestUpgradePermissionMsg{Metadata: meta, Requester: newAuthority})
	grant := res.Data
	assert.Equal(t, newAuthority, c.contract(k.target).PendingUpgradeRequester)

	// nobody but the timelock can deliver that call
	direct := c.send(k.owner, k.target, &upgrade.GrantUpgradeAuthorityMsg{Metadata: meta, NewAuthority: newAuthority})
	assert.Equal(t, upgrade.ErrNotTimelock.ABCICode(), direct.Code)

	// a stranger cannot request a permission
	stranger := c.send(k.authority, k.target, &upgrade.RequestUpgradePermissionMsg{Metadata: meta})
	assert.Equal(t, upgrade.ErrNotOwner.ABCICode(), stranger.Code)

	res = c.mustSend(k.signers[0], timelock.Address(), &timelock.CreateProposalMsg{Metadata: meta, Target: k.target, Payload: grant})
	assert.Equal(t, timelock.ProposalKey(0), res.Data)
	c.mustSend(k.signers[0], timelock.Address(), &timelock.ApproveProposalMsg{Metadata: meta, ProposalID: 0})
	c.mustSend(k.signers[1], timelock.Address(), &timelock.ApproveProposalMsg{Metadata: meta, ProposalID: 0})

	c.wait(100 * time.Second)
	early := c.send(k.signers[2], timelock.Address(), &timelock.ExecuteProposalMsg{Metadata: meta, ProposalID: 0})
	assert.Equal(t, timelock.ErrDelayNotElapsed.ABCICode(), early.Code)
	assert.Nil(t, c.contract(k.target).UpgradeAuthority)

	// the new authority cannot upgrade yet
	upgradeMsg := &upgrade.UpgradeImplementationMsg{Metadata: meta, Implementation: []byte("v2")}
	denied := c.send(k.authority, k.target, upgradeMsg)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), denied.Code)

	c.wait(501 * time.Second)
	c.mustSend(k.signers[2], timelock.Address(), &timelock.ExecuteProposalMsg{Metadata: meta, ProposalID: 0})

	contract := c.contract(k.target)
	assert.Equal(t, newAuthority, contract.UpgradeAuthority)
	assert.Nil(t, contract.PendingUpgradeRequester)
	assert.Equal(t, 1, count(c.events(k.target), "upgrade/authority_granted"))
	assert.Equal(t, 1, count(c.events(timelock.Address()), "timelock/proposal_executed"))

	again := c.send(k.signers[2], timelock.Address(), &timelock.ExecuteProposalMsg{Metadata: meta, ProposalID: 0})
	assert.Equal(t, timelock.ErrAlreadyExecuted.ABCICode(), again.Code)
	assert.Equal(t, 1, count(c.events(k.target), "upgrade/authority_granted"))

	c.mustSend(k.authority, k.target, upgradeMsg)
	contract = c.contract(k.target)
	assert.Equal(t, []byte("v2"), contract.Implementation)
	assert.Equal(t, uint32(2), contract.Version)
}

func TestTimelockSelfUpgrade(t *testing.T) {
	k := newKeys()
	c := newChain(t, genesis(k))
	newAuthority := k.authority.PublicKey().Address()
	meta := &govlock.Metadata{Schema: 1}

	c.mustSend(k.signers[1], timelock.Address(), &timelock.CreateUpgradeContractProposalMsg{Metadata: meta, NewAuthority: newAuthority})
	c.mustSend(k.signers[0], timelock.Address(), &timelock.ApproveProposalMsg{Metadata: meta, ProposalID: 0})

	// a single approval is not enough
	c.wait(time.Hour)
	pending := c.send(k.signers[0], timelock.Address(), &timelock.ExecuteProposalMsg{Metadata: meta, ProposalID: 0})
	assert.Equal(t, timelock.ErrInsufficientApprovals.ABCICode(), pending.Code)

	// approvals from outside of the signer set are rejected
	outsider := c.send(k.owner, timelock.Address(), &timelock.ApproveProposalMsg{Metadata: meta, ProposalID: 0})
	assert.Equal(t, timelock.ErrNotSigner.ABCICode(), outsider.Code)

	c.mustSend(k.signers[2], timelock.Address(), &timelock.ApproveProposalMsg{Metadata: meta, ProposalID: 0})
	c.mustSend(k.signers[0], timelock.Address(), &timelock.ExecuteProposalMsg{Metadata: meta, ProposalID: 0})

	assert.Equal(t, newAuthority, c.contract(timelock.Address()).UpgradeAuthority)
	assert.Equal(t, 1, count(c.events(timelock.Address()), "upgrade/authority_granted"))
}

func TestFailedExecutionKeepsProposalOpen(t *testing.T) {
	k := newKeys()
	c := newChain(t, genesis(k))
	meta := &govlock.Metadata{Schema: 1}

	// the call is delivered to a contract nobody registered
	unknown := govlock.NewAddress([]byte("unknown contract"))
	payload, err := govlock.EncodeCall(&upgrade.GrantUpgradeAuthorityMsg{Metadata: meta, NewAuthority: unknown})
	assert.Nil(t, err)

	c.mustSend(k.signers[0], timelock.Address(), &timelock.CreateProposalMsg{Metadata: meta, Target: unknown, Payload: payload})
	c.mustSend(k.signers[0], timelock.Address(), &timelock.ApproveProposalMsg{Metadata: meta, ProposalID: 0})
	c.mustSend(k.signers[1], timelock.Address(), &timelock.ApproveProposalMsg{Metadata: meta, ProposalID: 0})
	c.wait(time.Hour)

	res := c.send(k.signers[0], timelock.Address(), &timelock.ExecuteProposalMsg{Metadata: meta, ProposalID: 0})
	assert.Equal(t, timelock.ErrExecutionFailed.ABCICode(), res.Code)

	events := c.events(timelock.Address())
	assert.Equal(t, 0, count(events, "timelock/proposal_executed"))
	assert.Equal(t, 2, count(events, "timelock/proposal_approved"))

	// the next proposal still gets the next id
	res = c.mustSend(k.signers[1], timelock.Address(), &timelock.CreateProposalMsg{Metadata: meta, Target: unknown, Payload: payload})
	assert.Equal(t, timelock.ProposalKey(1), res.Data)
}

func TestProposalCallIgnoresExecutorSignature(t *testing.T) {
	k := newKeys()
	// the first signer also owns the target contract
	k.owner = k.signers[0]
	c := newChain(t, genesis(k))
	meta := &govlock.Metadata{Schema: 1}

	// without a requester the call would fall back to the caller
	payload, err := govlock.EncodeCall(&upgrade.RequestUpgradePermissionMsg{Metadata: meta})
	assert.Nil(t, err)
	c.mustSend(k.signers[1], timelock.Address(), &timelock.CreateProposalMsg{Metadata: meta, Target: k.target, Payload: payload})
	c.mustSend(k.signers[1], timelock.Address(), &timelock.ApproveProposalMsg{Metadata: meta, ProposalID: 0})
	c.mustSend(k.signers[2], timelock.Address(), &timelock.ApproveProposalMsg{Metadata: meta, ProposalID: 0})
	c.wait(time.Hour)

	// the call runs as the timelock, which does not own the target
	res := c.send(k.signers[0], timelock.Address(), &timelock.ExecuteProposalMsg{Metadata: meta, ProposalID: 0})
	assert.Equal(t, timelock.ErrExecutionFailed.ABCICode(), res.Code)
	assert.Nil(t, c.contract(k.target).PendingUpgradeRequester)
	assert.Equal(t, 0, count(c.events(k.target), "upgrade/permission_requested"))
}

func TestGenesisRequiresTimelock(t *testing.T) {
	calls := CallRegistry()
	a, err := Application(Name, Stack(calls), app.NewTxDecoder(calls), "", false)
	assert.Nil(t, err)
	a.WithInit(Initializers())
	assert.Panics(t, func() {
		a.InitChain(abci.RequestInitChain{ChainId: testChainID, AppStateBytes: []byte(`{"upgrade": {}}`)})
	})
}
