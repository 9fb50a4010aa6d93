package utils

import (
	"context"
	"errors"
	"io"
)

const DateTimeFormatForSQLite = "2006-01-02 15:04:05"

// ContextReader pumps a reader into Out until EOF, a read error (sent on
// Err) or ctx is done. Out and Err are closed once reading stops.
type ContextReader struct {
	Err chan error
	Out chan []byte
	ctx context.Context
}

func NewContextReader(ctx context.Context) ContextReader {
	return ContextReader{
		Err: make(chan error, 1),
		Out: make(chan []byte, 10),
		ctx: ctx,
	}
}

func internalRead(ctx context.Context, in io.Reader, out chan []byte, err chan error) {
	defer close(out)

	data := make([]byte, 1024, 1024)
	for {
		n, e := in.Read(data)
		if n > 0 {
			o := make([]byte, n, n)
			copy(o, data[0:n])

			select {
			case out <- o:
			case <-ctx.Done():
				return
			}
		}

		if e != nil {
			if !errors.Is(e, io.EOF) {
				err <- e
			}
			return
		}
	}
}

func (c *ContextReader) Read(in io.Reader) {
	go func() {
		defer close(c.Err)
		internalRead(c.ctx, in, c.Out, c.Err)
	}()
}
