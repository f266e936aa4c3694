package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/crypto"
)

// Account is the signature state of a single key, stored under the key
// address. Sequence is the nonce the next signature must carry.
type Account struct {
	Metadata *govlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Pubkey   *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64             `protobuf:"varint,3,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

// StdSignature is a signature of the transaction sign bytes together with
// the public key that produced it and the account sequence it was made for.
type StdSignature struct {
	Sequence  int64             `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Pubkey    *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Signature *crypto.Signature `protobuf:"bytes,4,opt,name=signature,proto3" json:"signature,omitempty"`
}

type accountCodec Account

func (m *accountCodec) Reset()         { *m = accountCodec{} }
func (m *accountCodec) String() string { return proto.CompactTextString(m) }
func (*accountCodec) ProtoMessage()    {}

func (m *Account) Marshal() ([]byte, error) { return proto.Marshal((*accountCodec)(m)) }
func (m *Account) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*accountCodec)(m)) }

type stdSignatureCodec StdSignature

func (m *stdSignatureCodec) Reset()         { *m = stdSignatureCodec{} }
func (m *stdSignatureCodec) String() string { return proto.CompactTextString(m) }
func (*stdSignatureCodec) ProtoMessage()    {}

func (m *StdSignature) Marshal() ([]byte, error) { return proto.Marshal((*stdSignatureCodec)(m)) }
func (m *StdSignature) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*stdSignatureCodec)(m)) }
