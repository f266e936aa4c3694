package govlock

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/govlock/errors"
)

// Metadata is a header carried by every persisted model and every message.
// Schema is the version of the declaring package data layout.
type Metadata struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema,omitempty"`
}

// Validate returns an error if this metadata does not declare a schema.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrEmpty, "missing metadata")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrSchema, "schema must be at least 1")
	}
	return nil
}

// Copy returns a copy of this object. This method is helpful when implementing
// orm.CloneableData interface to make a copy of the header.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}

type metadataCodec Metadata

func (m *metadataCodec) Reset()         { *m = metadataCodec{} }
func (m *metadataCodec) String() string { return proto.CompactTextString(m) }
func (*metadataCodec) ProtoMessage()    {}

func (m *Metadata) Marshal() ([]byte, error) { return proto.Marshal((*metadataCodec)(m)) }
func (m *Metadata) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*metadataCodec)(m)) }
