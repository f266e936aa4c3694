package gconf

import (
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/store"
	"github.com/iov-one/govlock/weavetest/assert"
)

type myConfig struct {
	Number int64  `protobuf:"varint,1,opt,name=number,proto3" json:"number,omitempty"`
	Text   string `protobuf:"bytes,2,opt,name=text,proto3" json:"text,omitempty"`
}

type myConfigCodec myConfig

func (m *myConfigCodec) Reset()         { *m = myConfigCodec{} }
func (m *myConfigCodec) String() string { return proto.CompactTextString(m) }
func (*myConfigCodec) ProtoMessage()    {}

func (c *myConfig) Marshal() ([]byte, error) { return proto.Marshal((*myConfigCodec)(c)) }
func (c *myConfig) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*myConfigCodec)(c)) }

func (c *myConfig) Validate() error {
	if c.Number < 0 {
		return errors.Wrap(errors.ErrInput, "negative number")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		Conf        *myConfig
		WantSaveErr *errors.Error
	}{
		"valid configuration": {
			Conf: &myConfig{Number: 852151421, Text: "foobar"},
		},
		"zero configuration": {
			Conf: &myConfig{},
		},
		"invalid configuration cannot be saved": {
			Conf:        &myConfig{Number: -1},
			WantSaveErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mypkg", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				return
			}

			var got myConfig
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.Conf, &got)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	var c myConfig
	if err := Load(store.MemStore(), "mypkg", &c); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}

func TestInitConfig(t *testing.T) {
	const genesis = `
		{
			"conf": {
				"mypkg": {"number": 321, "text": "hello"},
				"broken": {"number": -4}
			}
		}
	`
	var opts govlock.Options
	if err := json.Unmarshal([]byte(genesis), &opts); err != nil {
		t.Fatalf("cannot unmarshal genesis: %s", err)
	}

	db := store.MemStore()

	var c myConfig
	assert.Nil(t, InitConfig(db, opts, "mypkg", &c))

	var loaded myConfig
	assert.Nil(t, Load(db, "mypkg", &loaded))
	assert.Equal(t, &myConfig{Number: 321, Text: "hello"}, &loaded)

	if err := InitConfig(db, opts, "broken", &myConfig{}); !errors.ErrInput.Is(err) {
		t.Fatalf("want invalid input, got %+v", err)
	}
	if err := InitConfig(db, opts, "unknown", &myConfig{}); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}

	res, err := NewQueryHandler("mypkg").Query(db, govlock.KeyQueryMod, nil)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, Key("mypkg"), res[0].Key)
}
