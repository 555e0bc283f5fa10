package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compressible(n int) []byte {
	return bytes.Repeat([]byte("tableau snapshot payload "), n)
}

func TestCompressRoundTrip(t *testing.T) {
	data := compressible(100)

	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(c.String(), func(t *testing.T) {
			stored, actual, err := Compress(data, c)
			require.NoError(t, err)
			if c != CompressionNone {
				assert.Equal(t, c, actual)
				assert.Less(t, len(stored), len(data))
			}

			out, err := Decompress(stored, actual, len(data))
			require.NoError(t, err)
			assert.Equal(t, data, out)
		})
	}
}

func TestCompressIncompressibleFallsBack(t *testing.T) {
	// Pseudo-random bytes do not shrink; Compress must report None so the
	// envelope records what was actually stored.
	data := make([]byte, 256)
	seed := uint32(0x9E3779B9)
	for i := range data {
		seed = seed*1664525 + 1013904223
		data[i] = byte(seed >> 24)
	}

	for _, c := range []Compression{CompressionLZ4, CompressionZstd} {
		t.Run(c.String(), func(t *testing.T) {
			stored, actual, err := Compress(data, c)
			require.NoError(t, err)
			assert.Equal(t, CompressionNone, actual)
			assert.Equal(t, data, stored)
		})
	}
}

func TestCompressEmpty(t *testing.T) {
	stored, actual, err := Compress(nil, CompressionZstd)
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, actual)
	assert.Empty(t, stored)
}

func TestDecompressUnknownType(t *testing.T) {
	_, err := Decompress([]byte{1, 2, 3}, Compression(99), 3)
	assert.ErrorIs(t, err, ErrUnknownCompression)

	_, _, err = Compress([]byte{1}, Compression(99))
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

func TestCompressConcurrent(t *testing.T) {
	// The zstd pools must hand every goroutine an independent coder.
	data := compressible(50)
	done := make(chan error, 16)
	for i := 0; i < 16; i++ {
		go func() {
			stored, actual, err := Compress(data, CompressionZstd)
			if err != nil {
				done <- err
				return
			}
			out, err := Decompress(stored, actual, len(data))
			if err == nil && !bytes.Equal(out, data) {
				err = assert.AnError
			}
			done <- err
		}()
	}
	for i := 0; i < 16; i++ {
		require.NoError(t, <-done)
	}
}
