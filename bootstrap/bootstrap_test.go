package bootstrap_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rexcodec/rex/bootstrap"
)

func TestCompleteEncodingDescribesItself(t *testing.T) {
	var buf bytes.Buffer
	_, err := bootstrap.EncodeSchema(&buf, bootstrap.CompleteEncoding)
	require.NoError(t, err)

	decoded, err := bootstrap.DecodeSchema(&buf)
	require.NoError(t, err)

	assert.Equal(t, bootstrap.CompleteEncoding, decoded)
}

func TestCompleteEncodingShape(t *testing.T) {
	ce := bootstrap.CompleteEncoding
	assert.Equal(t, "CompleteEncoding", ce.Target.Name)
	require.Len(t, ce.Depends, 2)
	assert.Equal(t, "FieldEncoding", ce.Depends[0].Name)
	assert.Equal(t, "RecordEncoding", ce.Depends[1].Name)
}
