package primitive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rexcodec/rex/primitive"
	"github.com/rexcodec/rex/schema"
)

func TestHasTypeStrictMatchingNoCrossWidthAliasing(t *testing.T) {
	// The original format this was distilled from let a UInt16 value
	// also satisfy a UInt8-typed field (and Int16 satisfy Int8); this
	// implementation matches kinds to types one-to-one only.
	assert.False(t, primitive.HasType(primitive.UInt16(1), schema.UInt8))
	assert.False(t, primitive.HasType(primitive.Int16(1), schema.Int8))
	assert.True(t, primitive.HasType(primitive.UInt16(1), schema.UInt16))
	assert.True(t, primitive.HasType(primitive.UInt8(1), schema.UInt8))
}

func TestHasTypeMatchesEveryVariantExactlyOnce(t *testing.T) {
	cases := []struct {
		p primitive.Primitive
		t schema.Type
	}{
		{primitive.UInt8(1), schema.UInt8},
		{primitive.UInt16(1), schema.UInt16},
		{primitive.UInt32(1), schema.UInt32},
		{primitive.UInt64(1), schema.UInt64},
		{primitive.Int8(1), schema.Int8},
		{primitive.Int16(1), schema.Int16},
		{primitive.Int32(1), schema.Int32},
		{primitive.Int64(1), schema.Int64},
		{primitive.Fixed32(1), schema.Fixed32},
		{primitive.Fixed64(1), schema.Fixed64},
		{primitive.Float32(1), schema.Float32},
		{primitive.Float64(1), schema.Float64},
		{primitive.Bool(true), schema.Bool},
		{primitive.Bytes([]byte{1}), schema.Bytes},
		{primitive.String("x"), schema.String},
		{primitive.Enum(1), schema.Enum},
	}

	allTypes := make([]schema.Type, len(cases))
	for i, c := range cases {
		allTypes[i] = c.t
	}

	for _, c := range cases {
		for _, ty := range allTypes {
			want := ty == c.t
			assert.Equal(t, want, primitive.HasType(c.p, ty), "kind %v against type %v", c.p.Kind(), ty)
		}
	}
}

func TestHasTypeNeverMatchesRecord(t *testing.T) {
	assert.False(t, primitive.HasType(primitive.UInt8(1), schema.Record(0)))
}

func TestAccessorsRoundTripValue(t *testing.T) {
	assert.Equal(t, uint8(200), primitive.UInt8(200).UInt8())
	assert.Equal(t, int8(-100), primitive.Int8(-100).Int8())
	assert.Equal(t, uint16(50000), primitive.UInt16(50000).UInt16())
	assert.Equal(t, int16(-30000), primitive.Int16(-30000).Int16())
	assert.Equal(t, true, primitive.Bool(true).Bool())
	assert.Equal(t, "hi", primitive.String("hi").String())
	assert.Equal(t, []byte{1, 2, 3}, primitive.Bytes([]byte{1, 2, 3}).Bytes())
	assert.Equal(t, int64(-7), primitive.Enum(-7).Enum())
}

func TestWrongAccessorPanics(t *testing.T) {
	assert.Panics(t, func() {
		primitive.UInt8(1).Int8()
	})
}
