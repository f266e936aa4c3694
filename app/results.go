package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
)

// ResultSet holds the keys or the values of a query response. Keys and
// values are returned in two sets of the same size.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

type resultSetCodec ResultSet

func (m *resultSetCodec) Reset()         { *m = resultSetCodec{} }
func (m *resultSetCodec) String() string { return proto.CompactTextString(m) }
func (*resultSetCodec) ProtoMessage()    {}

func (m *ResultSet) Marshal() ([]byte, error) { return proto.Marshal((*resultSetCodec)(m)) }
func (m *ResultSet) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*resultSetCodec)(m)) }

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []govlock.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []govlock.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]govlock.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrState, "%d keys for %d values", len(kref), len(vref))
	}
	mods := make([]govlock.Model, len(kref))
	for i := range mods {
		mods[i] = govlock.Pair(kref[i], vref[i])
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o govlock.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if len(res.Results) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty result set")
	}
	return o.Unmarshal(res.Results[0])
}
