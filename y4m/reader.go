package y4m

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/deepteams/postproc"
)

// A Reader decodes frames from a YUV4MPEG2 stream.
type Reader struct {
	br   *bufio.Reader
	zdec *zstd.Decoder
	info StreamInfo
}

// NewReader parses the stream header from r and prepares to read frames.
func NewReader(r io.Reader) (*Reader, error) {
	br, zdec, err := maybeDecompress(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}
	info, err := parseHeader(br)
	if err != nil {
		if zdec != nil {
			zdec.Close()
		}
		return nil, err
	}
	return &Reader{br: br, zdec: zdec, info: info}, nil
}

// Info returns the parsed stream header.
func (r *Reader) Info() StreamInfo { return r.info }

// ReadFrame returns the next frame, or io.EOF at the clean end of the
// stream.
func (r *Reader) ReadFrame() (*postproc.Frame, error) {
	line, err := r.br.ReadString('\n')
	if err != nil {
		if err == io.EOF && line == "" {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("y4m: reading frame header: %w", err)
	}
	if line != "FRAME\n" && !strings.HasPrefix(line, "FRAME ") {
		return nil, fmt.Errorf("y4m: malformed frame header %q", strings.TrimSuffix(line, "\n"))
	}

	f := postproc.NewFrame(r.info.Width, r.info.Height)
	for _, p := range [][]byte{f.Y.Pix, f.Cb.Pix, f.Cr.Pix} {
		if _, err := io.ReadFull(r.br, p); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("y4m: reading frame planes: %w", err)
		}
	}
	return f, nil
}

// Close releases the decompression state, if any. The underlying reader is
// left open.
func (r *Reader) Close() error {
	if r.zdec != nil {
		r.zdec.Close()
	}
	return nil
}

// parseHeader reads the YUV4MPEG2 signature line. Unknown tags and X
// comments are skipped, per the yuv4mpeg convention.
func parseHeader(br *bufio.Reader) (StreamInfo, error) {
	info := StreamInfo{Interlacing: 'p', ColorSpace: "420jpeg"}

	line, err := br.ReadString('\n')
	if err != nil {
		return info, fmt.Errorf("y4m: reading stream header: %w", err)
	}
	fields := strings.Fields(strings.TrimSuffix(line, "\n"))
	if len(fields) == 0 || fields[0] != "YUV4MPEG2" {
		return info, ErrMagic
	}

	for _, tag := range fields[1:] {
		v := tag[1:]
		switch tag[0] {
		case 'W':
			info.Width, err = strconv.Atoi(v)
		case 'H':
			info.Height, err = strconv.Atoi(v)
		case 'F':
			info.RateNum, info.RateDen, err = parseRatio(v)
		case 'I':
			if len(v) != 1 {
				err = fmt.Errorf("bad interlacing %q", v)
				break
			}
			info.Interlacing = v[0]
		case 'A':
			info.AspectNum, info.AspectDen, err = parseRatio(v)
		case 'C':
			info.ColorSpace = v
		}
		if err != nil {
			return info, fmt.Errorf("y4m: tag %q: %w", tag, err)
		}
	}

	if info.Width <= 0 || info.Height <= 0 {
		return info, fmt.Errorf("y4m: stream is %dx%d", info.Width, info.Height)
	}
	if !strings.HasPrefix(info.ColorSpace, "420") {
		return info, ErrColorSpace
	}
	return info, nil
}

func parseRatio(v string) (num, den int, err error) {
	n, d, ok := strings.Cut(v, ":")
	if !ok {
		return 0, 0, fmt.Errorf("bad ratio %q", v)
	}
	if num, err = strconv.Atoi(n); err != nil {
		return 0, 0, err
	}
	if den, err = strconv.Atoi(d); err != nil {
		return 0, 0, err
	}
	return num, den, nil
}
