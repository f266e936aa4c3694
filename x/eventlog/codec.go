package eventlog

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/govlock"
)

// Event is a single entry of the log. Data holds the serialized payload
// declared by the emitting extension, Kind tells how to decode it.
type Event struct {
	Metadata *govlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Height   int64             `protobuf:"varint,2,opt,name=height,proto3" json:"height,omitempty"`
	Time     govlock.UnixTime  `protobuf:"varint,3,opt,name=time,proto3" json:"time,omitempty"`
	Contract govlock.Address   `protobuf:"bytes,4,opt,name=contract,proto3" json:"contract,omitempty"`
	Kind     string            `protobuf:"bytes,5,opt,name=kind,proto3" json:"kind,omitempty"`
	Data     []byte            `protobuf:"bytes,6,opt,name=data,proto3" json:"data,omitempty"`
}

type eventCodec Event

func (m *eventCodec) Reset()         { *m = eventCodec{} }
func (m *eventCodec) String() string { return proto.CompactTextString(m) }
func (*eventCodec) ProtoMessage()    {}

func (m *Event) Marshal() ([]byte, error) { return proto.Marshal((*eventCodec)(m)) }
func (m *Event) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*eventCodec)(m)) }
