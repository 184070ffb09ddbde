package y4m

import (
	"bufio"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/deepteams/postproc"
)

// A RawReader pulls frames out of a headerless I420 byte stream. The
// geometry is not recorded in the stream, so the caller supplies it.
type RawReader struct {
	br     *bufio.Reader
	zdec   *zstd.Decoder
	width  int
	height int
}

// NewRawReader reads width x height frames from r. Like NewReader it sees
// through zstd compression.
func NewRawReader(r io.Reader, width, height int) (*RawReader, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("y4m: raw stream is %dx%d", width, height)
	}
	br, zdec, err := maybeDecompress(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}
	return &RawReader{br: br, zdec: zdec, width: width, height: height}, nil
}

// ReadFrame returns the next frame, or io.EOF at the end of the stream.
func (r *RawReader) ReadFrame() (*postproc.Frame, error) {
	f := postproc.NewFrame(r.width, r.height)
	if _, err := io.ReadFull(r.br, f.Y.Pix); err != nil {
		if err == io.EOF {
			// Nothing read at all: the stream ended on a frame boundary.
			return nil, io.EOF
		}
		return nil, fmt.Errorf("y4m: reading raw luma plane: %w", err)
	}
	for _, p := range [][]byte{f.Cb.Pix, f.Cr.Pix} {
		if _, err := io.ReadFull(r.br, p); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("y4m: reading raw chroma plane: %w", err)
		}
	}
	return f, nil
}

// Close releases the decompressor, if any.
func (r *RawReader) Close() error {
	if r.zdec != nil {
		r.zdec.Close()
	}
	return nil
}
