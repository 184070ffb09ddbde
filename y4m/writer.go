package y4m

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/deepteams/postproc"
)

// A Writer emits a YUV4MPEG2 stream. The header is written in front of the
// first frame.
type Writer struct {
	w           io.Writer
	zenc        *zstd.Encoder
	info        StreamInfo
	wroteHeader bool
}

// NewWriter prepares a writer for the stream described by info.
func NewWriter(w io.Writer, info StreamInfo) *Writer {
	return &Writer{w: w, info: info}
}

// NewCompressedWriter is NewWriter with a zstd layer in front of w, the
// counterpart of NewReader's transparent decompression.
func NewCompressedWriter(w io.Writer, info StreamInfo) (*Writer, error) {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("y4m: opening zstd stream: %w", err)
	}
	return &Writer{w: enc, zenc: enc, info: info}, nil
}

func (w *Writer) writeHeader() error {
	if w.info.Width <= 0 || w.info.Height <= 0 {
		return fmt.Errorf("y4m: stream is %dx%d", w.info.Width, w.info.Height)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "YUV4MPEG2 W%d H%d", w.info.Width, w.info.Height)
	if w.info.RateNum > 0 && w.info.RateDen > 0 {
		fmt.Fprintf(&b, " F%d:%d", w.info.RateNum, w.info.RateDen)
	}
	if w.info.Interlacing != 0 {
		fmt.Fprintf(&b, " I%c", w.info.Interlacing)
	}
	if w.info.AspectNum > 0 && w.info.AspectDen > 0 {
		fmt.Fprintf(&b, " A%d:%d", w.info.AspectNum, w.info.AspectDen)
	}
	if w.info.ColorSpace != "" {
		fmt.Fprintf(&b, " C%s", w.info.ColorSpace)
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(w.w, b.String()); err != nil {
		return fmt.Errorf("y4m: writing stream header: %w", err)
	}
	return nil
}

// WriteFrame appends one frame, which must match the stream geometry.
func (w *Writer) WriteFrame(f *postproc.Frame) error {
	if f.Width() != w.info.Width || f.Height() != w.info.Height {
		return fmt.Errorf("y4m: frame is %dx%d, stream is %dx%d",
			f.Width(), f.Height(), w.info.Width, w.info.Height)
	}
	if !w.wroteHeader {
		if err := w.writeHeader(); err != nil {
			return err
		}
		w.wroteHeader = true
	}
	if _, err := io.WriteString(w.w, "FRAME\n"); err != nil {
		return fmt.Errorf("y4m: writing frame header: %w", err)
	}
	for _, p := range [][]byte{f.Y.Pix, f.Cb.Pix, f.Cr.Pix} {
		if _, err := w.w.Write(p); err != nil {
			return fmt.Errorf("y4m: writing frame planes: %w", err)
		}
	}
	return nil
}

// Close flushes the compression layer, if any. The underlying writer is
// left open.
func (w *Writer) Close() error {
	if w.zenc != nil {
		if err := w.zenc.Close(); err != nil {
			return fmt.Errorf("y4m: closing zstd stream: %w", err)
		}
	}
	return nil
}
