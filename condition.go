package govlock

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/iov-one/govlock/errors"
)

// Condition describes who may authorize an action, formatted as
// "<extension>/<type>/<data>". Signing with a key fulfills the condition of
// that key, a timelock contract fulfills the condition of its own address.
type Condition []byte

// (?s) lets the data section contain newlines.
var conditionFormat = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)

func NewCondition(ext, typ string, data []byte) Condition {
	c := make(Condition, 0, len(ext)+len(typ)+len(data)+2)
	c = append(c, ext...)
	c = append(c, '/')
	c = append(c, typ...)
	c = append(c, '/')
	return append(c, data...)
}

// Parse splits a well formed condition into its sections.
func (c Condition) Parse() (ext, typ string, data []byte, err error) {
	m := conditionFormat.FindSubmatch(c)
	if m == nil {
		return "", "", nil, errors.Wrapf(errors.ErrInput, "condition: %X", []byte(c))
	}
	return string(m[1]), string(m[2]), m[3], nil
}

func (c Condition) Validate() error {
	_, _, _, err := c.Parse()
	return err
}

func (c Condition) Address() Address        { return NewAddress(c) }
func (c Condition) Equals(o Condition) bool { return bytes.Equal(c, o) }

// String keeps the extension and type readable and hex encodes the data.
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("Invalid Condition: %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

func (c Condition) MarshalJSON() ([]byte, error) {
	if c == nil {
		return json.Marshal("")
	}
	return json.Marshal(c.String())
}

func (c *Condition) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	cond, err := parseCondition(s)
	if err != nil {
		return err
	}
	*c = cond
	return nil
}

// parseCondition reads the String form of a condition. An empty string is a
// nil condition.
func parseCondition(s string) (Condition, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return nil, errors.Wrap(errors.ErrInput, "invalid condition format")
	}
	data, err := hex.DecodeString(parts[2])
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "malformed condition data: %s", err)
	}
	return NewCondition(parts[0], parts[1], data), nil
}
