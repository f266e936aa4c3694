package govlock

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/govlock/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

func TestUnixTimeUnmarshal(t *testing.T) {
	cases := map[string]struct {
		json    string
		want    UnixTime
		wantErr *errors.Error
	}{
		"seconds":             {json: "1554370540", want: 1554370540},
		"epoch":               {json: "0", want: 0},
		"rfc3339":             {json: `"2019-04-04T09:35:40Z"`, want: 1554370540},
		"rfc3339 with offset": {json: `"2019-04-04T11:35:40.5+02:00"`, want: 1554370540},
		"negative seconds":    {json: "-60", wantErr: errors.ErrInput},
		"before epoch":        {json: `"1969-12-31T23:00:00Z"`, wantErr: errors.ErrInput},
		"garbage":             {json: `"next tuesday"`, wantErr: errors.ErrInput},
		"boolean":             {json: "true", wantErr: errors.ErrInput},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var got UnixTime
			err := json.Unmarshal([]byte(tc.json), &got)
			require.True(t, tc.wantErr.Is(err), "got error %v", err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestUnixTimeAdd(t *testing.T) {
	created := AsUnixTime(time.Date(2019, 4, 4, 9, 35, 40, 0, time.UTC))
	delay := 48*time.Hour + 1500*time.Millisecond

	eta := created.Add(delay)
	assert.Equal(t, created.Time().Add(delay).Unix(), eta.Time().Unix())
	assert.NoError(t, eta.Validate())
	assert.Error(t, UnixTime(-1).Validate())
	assert.True(t, UnixTime(0).IsZero())
}

func TestBlockTime(t *testing.T) {
	_, err := BlockTime(context.Background())
	assert.True(t, errors.ErrHuman.Is(err))

	_, err = BlockTime(WithHeader(context.Background(), abci.Header{Height: 3}))
	assert.True(t, errors.ErrHuman.Is(err))

	now := time.Unix(1554370540, 0)
	got, err := BlockTime(WithHeader(context.Background(), abci.Header{Time: now}))
	require.NoError(t, err)
	assert.True(t, now.Equal(got))
}
