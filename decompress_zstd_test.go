//go:build !datadog

package pgrep

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

func TestDecompressorRoundTripsAndAdvancesOffset(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)

	plain1 := []byte("first chunk of plain text\n")
	plain2 := []byte("second chunk\n")

	d := &Decompressor{}

	c1 := &DataChunk{Bytes: enc.EncodeAll(plain1, nil)}
	require.NoError(t, d.Process(c1))
	require.True(t, bytes.Equal(plain1, c1.Bytes))
	require.Equal(t, int64(0), c1.ActualOffset)

	c2 := &DataChunk{Bytes: enc.EncodeAll(plain2, nil)}
	require.NoError(t, d.Process(c2))
	require.True(t, bytes.Equal(plain2, c2.Bytes))
	require.Equal(t, int64(len(plain1)), c2.ActualOffset)

	require.NoError(t, enc.Close())
}

func TestDecompressorBadInput(t *testing.T) {
	d := &Decompressor{}
	c := &DataChunk{Bytes: []byte("not zstd data")}
	err := d.Process(c)
	require.Error(t, err)
	var ioErr IoError
	require.ErrorAs(t, err, &ioErr)
}
