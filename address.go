package govlock

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/govlock/errors"
)

// addressLength must never change for an existing store.
const addressLength = 20

// Address is the truncated sha256 digest of a condition.
type Address []byte

// NewAddress hashes data into an address. It returns nil for nil data.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	sum := sha256.Sum256(data)
	return Address(sum[:addressLength])
}

// ParseAddress reads an address. Without a prefix the value is hex
// encoded, "hex:", "cond:" and "bech32:" select the encoding explicitly.
func ParseAddress(s string) (Address, error) {
	format, value := "hex", s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		format, value = s[:i], s[i+1:]
	}
	if value == "" {
		return nil, nil
	}

	var addr Address
	switch format {
	case "hex":
		raw, err := hex.DecodeString(value)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "cannot decode hex: %s", err)
		}
		addr = raw
	case "cond":
		c, err := parseCondition(value)
		if err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		addr = c.Address()
	case "bech32":
		_, data, err := bech32.Decode(value)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "deserialize bech32: %s", err)
		}
		if addr, err = bech32.ConvertBits(data, 5, 8, false); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "convert bech32 data: %s", err)
		}
	default:
		return nil, errors.Wrapf(errors.ErrType, "unknown format %q", format)
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

// Bech32 encodes the address with given human readable part.
func (a Address) Bech32(hrp string) (string, error) {
	data, err := bech32.ConvertBits(a, 8, 5, true)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "convert bits: %s", err)
	}
	s, err := bech32.Encode(hrp, data)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "bech32 encode: %s", err)
	}
	return s, nil
}

func (a Address) Equals(o Address) bool { return bytes.Equal(a, o) }

func (a Address) Validate() error {
	if len(a) != addressLength {
		return errors.Wrapf(errors.ErrInput, "address: %v", a)
	}
	return nil
}

func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
