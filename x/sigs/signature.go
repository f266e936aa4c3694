package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/crypto"
	"github.com/iov-one/govlock/errors"
)

// signPrefix versions the layout of the signed message.
var signPrefix = []byte{0x00, 0xCA, 0xFE, 0x00}

// SignedTx is a transaction that carries signatures over its sign bytes.
type SignedTx interface {
	// GetSignBytes returns the serialized transaction without signatures.
	GetSignBytes() ([]byte, error)
	GetSignatures() []*StdSignature
}

// Validate checks that the signature is complete.
func (s *StdSignature) Validate() error {
	var errs error
	if s.Sequence < 0 {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	}
	if s.Pubkey == nil {
		errs = errors.AppendField(errs, "Pubkey", errors.ErrUnauthorized)
	}
	if s.Signature == nil {
		errs = errors.AppendField(errs, "Signature", errors.ErrUnauthorized)
	}
	return errs
}

// SignBytes returns the digest a key signs for given transaction bytes:
//
//	sha512(prefix | len(chainID) | chainID | sequence (8 bytes big endian) | tx)
func SignBytes(tx []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !govlock.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))

	h := sha512.New()
	h.Write(signPrefix)
	h.Write([]byte{byte(len(chainID))})
	h.Write([]byte(chainID))
	h.Write(nonce[:])
	h.Write(tx)
	return h.Sum(nil), nil
}

// SignTx signs the transaction for given chain and account sequence.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	digest, err := SignBytes(raw, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	return &StdSignature{
		Sequence:  seq,
		Pubkey:    signer.PublicKey(),
		Signature: sig,
	}, nil
}

// VerifyTxSignatures checks every signature of the transaction and consumes
// the sequence of each signing account. It returns the signer conditions in
// the order of the signatures. A key may sign a transaction only once.
func VerifyTxSignatures(db govlock.KVStore, tx SignedTx, chainID string) ([]govlock.Condition, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	bucket := NewAccountBucket()
	sigs := tx.GetSignatures()
	signers := make([]govlock.Condition, 0, len(sigs))
	for i, sig := range sigs {
		if err := sig.Validate(); err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		cond := sig.Pubkey.Condition()
		for _, s := range signers {
			if s.Equals(cond) {
				return nil, errors.Wrapf(errors.ErrDuplicate, "signature %d", i)
			}
		}
		if err := verify(db, bucket, sig, raw, chainID); err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, cond)
	}
	return signers, nil
}

func verify(db govlock.KVStore, bucket AccountBucket, sig *StdSignature, raw []byte, chainID string) error {
	acc, err := bucket.Load(db, sig.Pubkey)
	if err != nil {
		return err
	}
	digest, err := SignBytes(raw, chainID, sig.Sequence)
	if err != nil {
		return err
	}
	if !acc.Pubkey.Verify(digest, sig.Signature) {
		return errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := acc.consume(sig.Sequence); err != nil {
		return err
	}
	return bucket.Store(db, acc)
}
