package crypto

import (
	"github.com/gogo/protobuf/proto"
)

// PublicKey is a serializable public key. Only ed25519 keys are supported.
type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

// PrivateKey is a serializable private key. Only ed25519 keys are supported.
type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

// Signature is a serializable signature created by a PrivateKey.
type Signature struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

// GetEd25519 returns the raw signature bytes, nil safe.
func (s *Signature) GetEd25519() []byte {
	if s != nil {
		return s.Ed25519
	}
	return nil
}

type publicKeyCodec PublicKey

func (m *publicKeyCodec) Reset()         { *m = publicKeyCodec{} }
func (m *publicKeyCodec) String() string { return proto.CompactTextString(m) }
func (*publicKeyCodec) ProtoMessage()    {}

func (m *PublicKey) Marshal() ([]byte, error) { return proto.Marshal((*publicKeyCodec)(m)) }
func (m *PublicKey) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*publicKeyCodec)(m)) }

type privateKeyCodec PrivateKey

func (m *privateKeyCodec) Reset()         { *m = privateKeyCodec{} }
func (m *privateKeyCodec) String() string { return proto.CompactTextString(m) }
func (*privateKeyCodec) ProtoMessage()    {}

func (m *PrivateKey) Marshal() ([]byte, error) { return proto.Marshal((*privateKeyCodec)(m)) }
func (m *PrivateKey) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*privateKeyCodec)(m)) }

type signatureCodec Signature

func (m *signatureCodec) Reset()         { *m = signatureCodec{} }
func (m *signatureCodec) String() string { return proto.CompactTextString(m) }
func (*signatureCodec) ProtoMessage()    {}

func (m *Signature) Marshal() ([]byte, error) { return proto.Marshal((*signatureCodec)(m)) }
func (m *Signature) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*signatureCodec)(m)) }
