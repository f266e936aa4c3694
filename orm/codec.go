package orm

import (
	"github.com/gogo/protobuf/proto"
)

// keySet is the stored value of a non unique index entry: the sorted primary
// keys of all objects sharing the indexed value.
type keySet struct {
	Keys [][]byte `protobuf:"bytes,1,rep,name=keys,proto3" json:"keys,omitempty"`
}

type keySetCodec keySet

func (m *keySetCodec) Reset()         { *m = keySetCodec{} }
func (m *keySetCodec) String() string { return proto.CompactTextString(m) }
func (*keySetCodec) ProtoMessage()    {}

func (m *keySet) Marshal() ([]byte, error) { return proto.Marshal((*keySetCodec)(m)) }
func (m *keySet) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*keySetCodec)(m)) }
