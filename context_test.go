package govlock

import (
	"bytes"
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestBlockContext(t *testing.T) {
	Convey("an empty context", t, func() {
		ctx := context.Background()

		Convey("falls back to the default logger", func() {
			So(GetLogger(ctx), ShouldEqual, DefaultLogger)
		})
		Convey("has no block info", func() {
			_, ok := GetHeight(ctx)
			So(ok, ShouldBeFalse)
			_, ok = GetHeader(ctx)
			So(ok, ShouldBeFalse)
			So(func() { GetChainID(ctx) }, ShouldPanic)
		})

		Convey("with block info set", func() {
			header := abci.Header{ChainID: "govlock-1", Height: 12}
			ctx = WithHeader(ctx, header)
			ctx = WithHeight(ctx, header.Height)
			ctx = WithChainID(ctx, header.ChainID)

			h, ok := GetHeader(ctx)
			So(ok, ShouldBeTrue)
			So(h.Height, ShouldEqual, 12)
			height, ok := GetHeight(ctx)
			So(ok, ShouldBeTrue)
			So(height, ShouldEqual, 12)
			So(GetChainID(ctx), ShouldEqual, "govlock-1")

			Convey("block info cannot be replaced", func() {
				So(func() { WithHeader(ctx, header) }, ShouldPanic)
				So(func() { WithHeight(ctx, 13) }, ShouldPanic)
				So(func() { WithChainID(ctx, "govlock-2") }, ShouldPanic)
			})
		})

		Convey("log info is added to a derived logger", func() {
			var out bytes.Buffer
			ctx = WithLogger(ctx, log.NewTMLogger(&out))
			derived := WithLogInfo(ctx, "proposal", 3)
			So(GetLogger(derived), ShouldNotEqual, GetLogger(ctx))

			GetLogger(derived).Info("approved")
			So(out.String(), ShouldContainSubstring, "proposal=3")
		})
	})
}

func TestContextContract(t *testing.T) {
	bg := context.Background()
	_, ok := GetContract(bg)
	assert.False(t, ok)

	_, ok = GetContract(WithContract(bg, nil))
	assert.False(t, ok)

	// inner calls replace the contract
	first := NewCondition("test", "mock", []byte("first")).Address()
	second := NewCondition("test", "mock", []byte("second")).Address()
	ctx := WithContract(WithContract(bg, first), second)
	got, ok := GetContract(ctx)
	assert.True(t, ok)
	assert.Equal(t, second, got)
}

func TestIsValidChainID(t *testing.T) {
	cases := map[string]bool{
		"":                              false,
		"short":                         false,
		"govlock":                       true,
		"test_chain-42":                 true,
		"semi;colon":                    false,
		"longer-than-twenty-characters": false,
	}
	for id, want := range cases {
		assert.Equal(t, want, IsValidChainID(id), id)
	}
}
