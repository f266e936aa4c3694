package timelock

import (
	"testing"
	"time"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/weavetest"
	"github.com/iov-one/govlock/weavetest/assert"
)

func TestProposalState(t *testing.T) {
	a, b := weavetest.NewCondition().Address(), weavetest.NewCondition().Address()
	conf := &Configuration{RequiredApprovals: 2, DelaySeconds: 60}
	created := govlock.AsUnixTime(start)

	cases := map[string]struct {
		proposal *Proposal
		now      time.Time
		want     State
	}{
		"no approvals": {
			proposal: &Proposal{CreatedAt: created},
			now:      start.Add(time.Hour),
			want:     StatePending,
		},
		"approved but waiting": {
			proposal: &Proposal{CreatedAt: created, ApprovedBy: []govlock.Address{a, b}},
			now:      start.Add(59 * time.Second),
			want:     StateApproved,
		},
		"executable at the delay end": {
			proposal: &Proposal{CreatedAt: created, ApprovedBy: []govlock.Address{a, b}},
			now:      start.Add(60 * time.Second),
			want:     StateExecutable,
		},
		"executed": {
			proposal: &Proposal{CreatedAt: created, ApprovedBy: []govlock.Address{a, b}, Status: ProposalStatusExecuted},
			now:      start.Add(time.Hour),
			want:     StateExecuted,
		},
		"canceled before approval": {
			proposal: &Proposal{CreatedAt: created, Status: ProposalStatusCanceled},
			now:      start,
			want:     StateCanceled,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := tc.proposal.State(tc.now, conf)
			if got != tc.want {
				t.Fatalf("want %s state, got %s", tc.want, got)
			}
		})
	}
}

func TestProposalTransition(t *testing.T) {
	now := govlock.AsUnixTime(start)

	p := &Proposal{ID: 3}
	assert.Nil(t, p.transition(ProposalStatusExecuted, now))
	assert.Equal(t, ProposalStatusExecuted, p.Status)
	assert.Equal(t, now, p.ExecutedAt)
	assert.IsErr(t, ErrAlreadyExecuted, p.transition(ProposalStatusExecuted, now))
	assert.IsErr(t, ErrAlreadyExecuted, p.transition(ProposalStatusCanceled, now))

	p = &Proposal{ID: 4}
	assert.Nil(t, p.transition(ProposalStatusCanceled, now))
	assert.Equal(t, now, p.CanceledAt)
	assert.IsErr(t, ErrCanceled, p.transition(ProposalStatusExecuted, now))

	p = &Proposal{ID: 5}
	assert.IsErr(t, errors.ErrHuman, p.transition(ProposalStatusOpen, now))
	assert.Equal(t, ProposalStatusOpen, p.Status)
}

func TestProposalValidate(t *testing.T) {
	addr := weavetest.NewCondition().Address()
	now := govlock.AsUnixTime(start)
	valid := func() *Proposal {
		return &Proposal{
			Metadata:  &govlock.Metadata{Schema: 1},
			Proposer:  addr,
			Target:    addr,
			Payload:   []byte{1},
			CreatedAt: now,
		}
	}

	cases := map[string]struct {
		mutate    func(p *Proposal)
		wantField string
		wantErr   *errors.Error
	}{
		"valid": {
			mutate: func(p *Proposal) {},
		},
		"missing metadata": {
			mutate:    func(p *Proposal) { p.Metadata = nil },
			wantField: "Metadata",
			wantErr:   errors.ErrEmpty,
		},
		"invalid approval": {
			mutate:    func(p *Proposal) { p.ApprovedBy = []govlock.Address{addr, govlock.Address("x")} },
			wantField: "ApprovedBy",
			wantErr:   errors.ErrInput,
		},
		"executed without time": {
			mutate:    func(p *Proposal) { p.Status = ProposalStatusExecuted },
			wantField: "ExecutedAt",
			wantErr:   errors.ErrEmpty,
		},
		"open with a cancel time": {
			mutate:    func(p *Proposal) { p.CanceledAt = now },
			wantField: "Status",
			wantErr:   errors.ErrModel,
		},
		"unknown status": {
			mutate:    func(p *Proposal) { p.Status = 9 },
			wantField: "Status",
			wantErr:   errors.ErrModel,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			p := valid()
			tc.mutate(p)
			err := p.Validate()
			if tc.wantField == "" {
				assert.Nil(t, err)
				return
			}
			assert.FieldError(t, err, tc.wantField, tc.wantErr)
		})
	}
}

func TestProposalCopy(t *testing.T) {
	addr := weavetest.NewCondition().Address()
	p := &Proposal{
		Metadata:   &govlock.Metadata{Schema: 1},
		Proposer:   addr,
		Target:     addr,
		Payload:    []byte{1, 2},
		ApprovedBy: []govlock.Address{addr},
	}
	c := p.Copy().(*Proposal)
	assert.Equal(t, p, c)

	c.ApprovedBy[0][0]++
	c.Payload[0]++
	if p.ApprovedBy[0].Equals(c.ApprovedBy[0]) || p.Payload[0] == c.Payload[0] {
		t.Fatal("copy shares memory with the original")
	}
}
