package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/crypto"
	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/x/sigs"
)

// Tx is the transaction envelope. It carries an encoded call addressed to
// the target contract together with the signatures authorizing it.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	Target     govlock.Address      `protobuf:"bytes,2,opt,name=target,proto3" json:"target,omitempty"`
	Payload    []byte               `protobuf:"bytes,3,opt,name=payload,proto3" json:"payload,omitempty"`
}

type txCodec Tx

func (m *txCodec) Reset()         { *m = txCodec{} }
func (m *txCodec) String() string { return proto.CompactTextString(m) }
func (*txCodec) ProtoMessage()    {}

func (m *Tx) Marshal() ([]byte, error) { return proto.Marshal((*txCodec)(m)) }
func (m *Tx) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*txCodec)(m)) }

var _ sigs.SignedTx = (*Tx)(nil)

// NewTx returns an unsigned transaction that delivers given message to the
// target contract.
func NewTx(target govlock.Address, msg govlock.Msg) (*Tx, error) {
	payload, err := govlock.EncodeCall(msg)
	if err != nil {
		return nil, err
	}
	return &Tx{Target: target, Payload: payload}, nil
}

// GetSignatures returns the signatures of this transaction.
func (m *Tx) GetSignatures() []*sigs.StdSignature {
	return m.Signatures
}

// GetTarget returns the contract this transaction is addressed to.
func (m *Tx) GetTarget() govlock.Address {
	return m.Target
}

// GetSignBytes returns the serialized transaction without signatures.
func (m *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Target: m.Target, Payload: m.Payload}
	return unsigned.Marshal()
}

// Sign appends a signature of given signer.
func (m *Tx) Sign(signer crypto.Signer, chainID string, seq int64) error {
	sig, err := sigs.SignTx(signer, m, chainID, seq)
	if err != nil {
		return errors.Wrap(err, "sign")
	}
	m.Signatures = append(m.Signatures, sig)
	return nil
}

// decodedTx is a transaction together with its decoded call.
type decodedTx struct {
	*Tx
	msg govlock.Msg
}

var _ govlock.TargetedTx = decodedTx{}
var _ sigs.SignedTx = decodedTx{}

func (tx decodedTx) GetMsg() (govlock.Msg, error) {
	return tx.msg, nil
}

// NewTxDecoder returns a decoder of Tx envelopes. The payload is decoded
// using given registry, so unknown calls are rejected before processing.
func NewTxDecoder(calls *govlock.CallRegistry) govlock.TxDecoder {
	return func(raw []byte) (govlock.Tx, error) {
		var tx Tx
		if err := tx.Unmarshal(raw); err != nil {
			return nil, errors.Wrap(errors.ErrInput, err.Error())
		}
		msg, err := calls.Decode(tx.Payload)
		if err != nil {
			return nil, err
		}
		return decodedTx{Tx: &tx, msg: msg}, nil
	}
}
