package wire

import (
	"bytes"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUvarintRoundTripProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("read(write(u)) == u, and byte length matches UvarintSize", prop.ForAll(
		func(u uint64) bool {
			var buf bytes.Buffer
			n, err := WriteUvarint(&buf, u)
			if err != nil {
				return false
			}
			if n != UvarintSize(u) || buf.Len() != n {
				return false
			}

			got, err := ReadUvarint(&buf)
			return err == nil && got == u
		},
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestUvarintSizeBoundaries(t *testing.T) {
	assert.Equal(t, 1, UvarintSize(0))
	assert.Equal(t, 1, UvarintSize(0x7F))
	assert.Equal(t, 2, UvarintSize(0x80))
	assert.Equal(t, 10, UvarintSize(0x80<<56))
	assert.Equal(t, 10, UvarintSize(^uint64(0)))
}

func TestVarintRoundTripProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("read(write(i)) == i", prop.ForAll(
		func(i int64) bool {
			var buf bytes.Buffer
			if _, err := WriteVarint(&buf, i); err != nil {
				return false
			}
			got, err := ReadVarint(&buf)
			return err == nil && got == i
		},
		gen.Int64(),
	))

	properties.TestingRun(t)
}

func TestVarintSmallValues(t *testing.T) {
	var buf bytes.Buffer

	n, err := WriteVarint(&buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []byte{0x00}, buf.Bytes())

	buf.Reset()
	_, err = WriteVarint(&buf, -1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, buf.Bytes())

	buf.Reset()
	_, err = WriteVarint(&buf, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02}, buf.Bytes())
}

func TestFixedWidthParity(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLEU32(&buf, 0xDEADBEEF))
	assert.Equal(t, []byte{0xEF, 0xBE, 0xAD, 0xDE}, buf.Bytes())

	got, err := ReadLEU32(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), got)
}

func TestBoolStrictness(t *testing.T) {
	_, err := ReadBool(bytes.NewReader([]byte{0x01}))
	require.Error(t, err)
	assert.True(t, errorsHasCode(err, ErrCodeBadBool))

	ok, err := ReadBool(bytes.NewReader([]byte{0xFF}))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ReadBool(bytes.NewReader([]byte{0x00}))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStringRejectsInvalidUTF8(t *testing.T) {
	var buf bytes.Buffer
	_, err := WriteBytes(&buf, []byte{0xFF, 0xFE})
	require.NoError(t, err)

	_, err = ReadString(&buf)
	require.Error(t, err)
	assert.True(t, errorsHasCode(err, ErrCodeUtf8))
}

func TestReadShortStreamIsEOF(t *testing.T) {
	_, err := ReadLEU64(bytes.NewReader([]byte{1, 2, 3}))
	require.Error(t, err)
	assert.True(t, errorsHasCode(err, ErrCodeEOF))
}
