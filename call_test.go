package govlock

import (
	"context"
	"testing"

	"github.com/iov-one/govlock/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoMsg is a message serialized as its raw text.
type echoMsg struct {
	Text string
}

func (echoMsg) Path() string {
	return "test/echo"
}

func (m *echoMsg) Marshal() ([]byte, error) {
	return []byte(m.Text), nil
}

func (m *echoMsg) Unmarshal(raw []byte) error {
	m.Text = string(raw)
	return nil
}

func (m *echoMsg) Validate() error {
	if m.Text == "" {
		return errors.Wrap(errors.ErrEmpty, "text")
	}
	return nil
}

func TestEncodeCall(t *testing.T) {
	payload, err := EncodeCall(&echoMsg{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, CallSelector("test/echo"), payload[:SelectorLength])
	assert.Equal(t, "hello", string(payload[SelectorLength:]))

	_, err = EncodeCall(&echoMsg{})
	assert.True(t, errors.ErrEmpty.Is(err))

	assert.NotEqual(t, CallSelector("test/echo"), CallSelector("test/other"))
}

func TestCallRegistryDecode(t *testing.T) {
	r := NewCallRegistry()
	r.Register(&echoMsg{})

	valid, err := EncodeCall(&echoMsg{Text: "hi"})
	require.NoError(t, err)

	cases := map[string]struct {
		payload  []byte
		wantErr  *errors.Error
		wantText string
	}{
		"registered message": {
			payload:  valid,
			wantText: "hi",
		},
		"too short": {
			payload: valid[:SelectorLength-1],
			wantErr: errors.ErrInput,
		},
		"unknown selector": {
			payload: append(CallSelector("test/unknown"), 'x'),
			wantErr: errors.ErrInput,
		},
		"invalid message": {
			payload: CallSelector("test/echo"),
			wantErr: errors.ErrEmpty,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			msg, err := r.Decode(tc.payload)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.wantText, msg.(*echoMsg).Text)
			}
		})
	}
}

func TestCallRegistryRegister(t *testing.T) {
	r := NewCallRegistry()
	r.Register(&echoMsg{})
	assert.Panics(t, func() { r.Register(&echoMsg{}) })
	assert.Panics(t, func() { r.Register(echoValue{}) })
}

// echoValue is a message implemented on a non pointer receiver.
type echoValue struct{}

func (echoValue) Path() string {
	return "test/value"
}

func (echoValue) Marshal() ([]byte, error) {
	return nil, nil
}

func (echoValue) Unmarshal([]byte) error {
	return nil
}

func (echoValue) Validate() error {
	return nil
}

func TestCallDepth(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, 0, GetCallDepth(ctx))

	var err error
	for i := 1; i <= MaxCallDepth; i++ {
		ctx, err = WithCallDepth(ctx)
		require.NoError(t, err)
		assert.Equal(t, i, GetCallDepth(ctx))
	}
	_, err = WithCallDepth(ctx)
	assert.True(t, errors.ErrState.Is(err))
}
