package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/govlock/errors"
)

// signerModel is a test model indexed by its group.
type signerModel struct {
	Group string `protobuf:"bytes,1,opt,name=group,proto3" json:"group,omitempty"`
	Votes int64  `protobuf:"varint,2,opt,name=votes,proto3" json:"votes,omitempty"`
}

type signerModelCodec signerModel

func (m *signerModelCodec) Reset()         { *m = signerModelCodec{} }
func (m *signerModelCodec) String() string { return proto.CompactTextString(m) }
func (*signerModelCodec) ProtoMessage()    {}

func (m *signerModel) Marshal() ([]byte, error) { return proto.Marshal((*signerModelCodec)(m)) }
func (m *signerModel) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*signerModelCodec)(m)) }

func (m *signerModel) Validate() error {
	if m.Votes < 0 {
		return errors.Field("Votes", errors.ErrInput, "negative")
	}
	return nil
}

func (m *signerModel) Copy() CloneableData {
	c := *m
	return &c
}

func signer(key, group string, votes int64) *SimpleObj {
	return NewSimpleObj([]byte(key), &signerModel{Group: group, Votes: votes})
}

func byGroup(obj Object) ([]byte, error) {
	m, ok := obj.Value().(*signerModel)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	if m.Group == "" {
		return nil, nil
	}
	return []byte(m.Group), nil
}
