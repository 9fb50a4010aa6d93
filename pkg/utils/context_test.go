package utils

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (f failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestContextReaderDrainsReader(t *testing.T) {
	reader := NewContextReader(context.Background())
	reader.Read(bytes.NewReader([]byte("vector bytes")))

	out := []byte{}
	for chunk := range reader.Out {
		out = append(out, chunk...)
	}

	require.Equal(t, "vector bytes", string(out))
	require.NoError(t, <-reader.Err)
}

func TestContextReaderReportsError(t *testing.T) {
	reader := NewContextReader(context.Background())
	reader.Read(failingReader{})

	for range reader.Out {
	}

	require.EqualError(t, <-reader.Err, "disk on fire")
}
