package govlock

import (
	"encoding/json"
	"time"

	"github.com/iov-one/govlock/errors"
)

// UnixTime is a point in time with seconds precision, stored in protobuf
// messages as an int64 through the gogoproto casttype option:
//
//   int64 created_at = 6 [(gogoproto.casttype) = "github.com/iov-one/govlock.UnixTime"];
type UnixTime int64

func AsUnixTime(t time.Time) UnixTime { return UnixTime(t.Unix()) }

func (t UnixTime) Time() time.Time { return time.Unix(int64(t), 0) }
func (t UnixTime) IsZero() bool    { return t == 0 }
func (t UnixTime) String() string  { return t.Time().String() }

// Add works like time.Time.Add, truncated to whole seconds.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "negative value")
	}
	return nil
}

// UnmarshalJSON accepts seconds since epoch as well as an RFC 3339 string,
// which is easier to write in a genesis file.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var seconds int64
	if err := json.Unmarshal(raw, &seconds); err != nil {
		var std time.Time
		if err := json.Unmarshal(raw, &std); err != nil {
			return errors.Wrap(errors.ErrInput, "invalid time format")
		}
		seconds = std.Unix()
	}
	if seconds < 0 {
		return errors.Wrap(errors.ErrInput, "time before epoch")
	}
	*t = UnixTime(seconds)
	return nil
}

// BlockTime returns the time declared in the header of the block being
// processed. Handlers must not read any other clock.
func BlockTime(ctx Context) (time.Time, error) {
	header, ok := GetHeader(ctx)
	switch {
	case !ok:
		return time.Time{}, errors.Wrap(errors.ErrHuman, "block header not present in the context")
	case header.Time.IsZero():
		return time.Time{}, errors.Wrap(errors.ErrHuman, "block time not set in the header")
	}
	return header.Time, nil
}
