// Package y4m reads and writes YUV4MPEG2 streams and headerless I420
// dumps, the interchange formats used to move raw 4:2:0 video between
// tools. Streams compressed with zstandard are recognised by their magic
// number and decompressed transparently.
//
// Only 4:2:0 colour spaces are supported. Odd dimensions round the chroma
// planes up, matching the frame layout of the postproc package.
package y4m

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Errors returned while parsing stream headers.
var (
	ErrMagic      = errors.New("y4m: missing YUV4MPEG2 signature")
	ErrColorSpace = errors.New("y4m: only 4:2:0 colour spaces are supported")
)

// StreamInfo describes a YUV4MPEG2 stream.
type StreamInfo struct {
	Width  int
	Height int

	// Frame rate as a rational; zero values when the header omits the
	// F tag.
	RateNum int
	RateDen int

	// Interlacing is the raw I tag value: 'p' progressive, 't' top field
	// first, 'b' bottom field first, 'm' mixed. Progressive when absent.
	Interlacing byte

	// Pixel aspect ratio; zero values when the header omits the A tag.
	AspectNum int
	AspectDen int

	// ColorSpace is the C tag, for example "420jpeg" or "420mpeg2".
	ColorSpace string
}

// zstd frame magic, little endian.
const zstdMagic = 0xfd2fb528

// maybeDecompress peeks at the stream and interposes a zstd decoder when
// the zstd frame magic is present. A stream too short to peek is passed
// through untouched and fails in the header parser instead.
func maybeDecompress(br *bufio.Reader) (*bufio.Reader, *zstd.Decoder, error) {
	magic, err := br.Peek(4)
	if err != nil || binary.LittleEndian.Uint32(magic) != zstdMagic {
		return br, nil, nil
	}
	dec, err := zstd.NewReader(br)
	if err != nil {
		return nil, nil, fmt.Errorf("y4m: opening zstd stream: %w", err)
	}
	return bufio.NewReader(dec), dec, nil
}
