// Command yuvpost applies decoder post-processing to raw 4:2:0 video.
//
// Usage:
//
//	yuvpost convert [options] <input.y4m>   Extract a frame as PNG/BMP (use "-" for stdin)
//	yuvpost filter [options] <input.y4m>    Deblock every frame, write YUV4MPEG2 out
//	yuvpost info <input.y4m>                Display stream metadata
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/deepteams/postproc"
	"github.com/deepteams/postproc/y4m"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "convert":
		err = runConvert(os.Args[2:])
	case "filter":
		err = runFilter(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "yuvpost: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "yuvpost: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  yuvpost convert [options] <input.y4m>   Extract one frame as a PNG or BMP image
  yuvpost filter [options] <input.y4m>    Deblock every frame, write YUV4MPEG2 out
  yuvpost info <input.y4m>                Display stream metadata

Use "-" as input to read from stdin, "-o -" to write to stdout.
Headerless I420 input needs an explicit -size WxH.

Run "yuvpost <command> -h" for command-specific options.
`)
}

// openInput returns an io.ReadCloser for the given path.
// If path is "-", stdin is returned (caller should not close).
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// frameSource is the common surface of the YUV4MPEG2 and raw I420 readers.
type frameSource interface {
	ReadFrame() (*postproc.Frame, error)
	Close() error
}

// openStream wraps r in the reader matching the input kind: headerless I420
// when a -size geometry was given, YUV4MPEG2 otherwise.
func openStream(r io.Reader, size string) (frameSource, y4m.StreamInfo, error) {
	if size != "" {
		w, h, err := parseSize(size)
		if err != nil {
			return nil, y4m.StreamInfo{}, err
		}
		rr, err := y4m.NewRawReader(r, w, h)
		if err != nil {
			return nil, y4m.StreamInfo{}, err
		}
		return rr, y4m.StreamInfo{Width: w, Height: h}, nil
	}
	yr, err := y4m.NewReader(r)
	if err != nil {
		return nil, y4m.StreamInfo{}, err
	}
	return yr, yr.Info(), nil
}

// parseSize parses a WxH geometry like "352x288".
func parseSize(s string) (width, height int, err error) {
	w, h, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("bad size %q (want WxH)", s)
	}
	if width, err = strconv.Atoi(w); err != nil {
		return 0, 0, fmt.Errorf("bad size %q: %w", s, err)
	}
	if height, err = strconv.Atoi(h); err != nil {
		return 0, 0, fmt.Errorf("bad size %q: %w", s, err)
	}
	return width, height, nil
}

// resolveStrength maps the -quant/-strength flag pair to a filter strength.
func resolveStrength(strength, quant int) int {
	if quant >= 0 {
		return postproc.StrengthForQuant(quant)
	}
	return strength
}

// --- convert ---

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	output := fs.String("o", "", `output path (default: <input>.png, "-" for stdout)`)
	fmtFlag := fs.String("f", "", "output format: png, bmp (auto-detect from extension if omitted)")
	frameNum := fs.Int("frame", 0, "frame to extract, counting from 0")
	size := fs.String("size", "", "treat input as headerless I420 of this WxH geometry")
	strength := fs.Int("strength", 0, "deblocking filter strength 0-12 (0=off)")
	quant := fs.Int("quant", -1, "derive filter strength from this quantiser (-1=use -strength)")
	noHoriz := fs.Bool("nohoriz", false, "skip the horizontal filter pass")
	noVert := fs.Bool("novert", false, "skip the vertical filter pass")
	chroma := fs.Bool("chroma", false, "filter chroma planes as well")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("convert: missing input file\nUsage: yuvpost convert [options] <input.y4m>")
	}
	inputPath := fs.Arg(0)

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	src, _, err := openStream(in, *size)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	defer src.Close()

	f, err := seekFrame(src, *frameNum)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	postproc.DeblockWithOptions(f, postproc.DeblockOptions{
		Strength:     resolveStrength(*strength, *quant),
		NoHorizontal: *noHoriz,
		NoVertical:   *noVert,
		Chroma:       *chroma,
	})
	img := postproc.ToNRGBA(f)

	outFmt := detectOutputFormat(*fmtFlag, *output)

	if *output == "-" {
		return encodeImage(os.Stdout, img, outFmt)
	}

	outputPath := *output
	if outputPath == "" {
		ext := ".png"
		if outFmt == "bmp" {
			ext = ".bmp"
		}
		if inputPath == "-" {
			outputPath = "output" + ext
		} else {
			base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
			outputPath = base + ext
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}

	if err := encodeImage(out, img, outFmt); err != nil {
		out.Close()
		os.Remove(outputPath)
		return fmt.Errorf("convert: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(outputPath)
		return err
	}

	fmt.Fprintf(os.Stderr, "Converted %s frame %d → %s\n", inputPath, *frameNum, outputPath)
	return nil
}

// seekFrame discards frames before n and returns frame n.
func seekFrame(src frameSource, n int) (*postproc.Frame, error) {
	for i := 0; ; i++ {
		f, err := src.ReadFrame()
		if err == io.EOF {
			return nil, fmt.Errorf("stream ends before frame %d", n)
		}
		if err != nil {
			return nil, err
		}
		if i == n {
			return f, nil
		}
	}
}

// detectOutputFormat returns "png" or "bmp" based on flag/extension.
func detectOutputFormat(fmtFlag, outputPath string) string {
	if fmtFlag != "" {
		return strings.ToLower(fmtFlag)
	}
	if outputPath != "" && outputPath != "-" {
		if strings.ToLower(filepath.Ext(outputPath)) == ".bmp" {
			return "bmp"
		}
	}
	return "png"
}

// encodeImage writes img in the specified format to w.
func encodeImage(w io.Writer, img image.Image, format string) error {
	switch format {
	case "bmp":
		return bmp.Encode(w, img)
	default:
		return png.Encode(w, img)
	}
}

// --- filter ---

func runFilter(args []string) error {
	fs := flag.NewFlagSet("filter", flag.ContinueOnError)
	output := fs.String("o", "", `output path (default: <input>_deblocked.y4m, "-" for stdout)`)
	size := fs.String("size", "", "treat input as headerless I420 of this WxH geometry")
	strength := fs.Int("strength", 0, "deblocking filter strength 0-12 (0=off)")
	quant := fs.Int("quant", -1, "derive filter strength from this quantiser (-1=use -strength)")
	noHoriz := fs.Bool("nohoriz", false, "skip the horizontal filter pass")
	noVert := fs.Bool("novert", false, "skip the vertical filter pass")
	chroma := fs.Bool("chroma", false, "filter chroma planes as well")
	compress := fs.Bool("z", false, "zstd-compress the output stream")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("filter: missing input file\nUsage: yuvpost filter [options] <input.y4m>")
	}
	inputPath := fs.Arg(0)

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	src, info, err := openStream(in, *size)
	if err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	defer src.Close()

	opts := postproc.DeblockOptions{
		Strength:     resolveStrength(*strength, *quant),
		NoHorizontal: *noHoriz,
		NoVertical:   *noVert,
		Chroma:       *chroma,
	}

	if *output == "-" {
		_, err := filterStream(os.Stdout, src, info, opts, *compress)
		return err
	}

	outputPath := *output
	if outputPath == "" {
		if inputPath == "-" {
			outputPath = "output.y4m"
		} else {
			base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
			outputPath = base + "_deblocked.y4m"
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}

	n, err := filterStream(out, src, info, opts, *compress)
	if err != nil {
		out.Close()
		os.Remove(outputPath)
		return fmt.Errorf("filter: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(outputPath)
		return err
	}

	fmt.Fprintf(os.Stderr, "Filtered %s → %s (%d frames)\n", inputPath, outputPath, n)
	return nil
}

// filterStream deblocks every frame of src and writes the stream to out.
func filterStream(out io.Writer, src frameSource, info y4m.StreamInfo, opts postproc.DeblockOptions, compress bool) (int, error) {
	var w *y4m.Writer
	var err error
	if compress {
		w, err = y4m.NewCompressedWriter(out, info)
		if err != nil {
			return 0, err
		}
	} else {
		w = y4m.NewWriter(out, info)
	}

	frames := 0
	for {
		f, err := src.ReadFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			return frames, err
		}
		postproc.DeblockWithOptions(f, opts)
		if err := w.WriteFrame(f); err != nil {
			return frames, err
		}
		frames++
	}
	return frames, w.Close()
}

// --- info ---

func runInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("info: missing input file\nUsage: yuvpost info <input.y4m>")
	}
	inputPath := args[0]

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	r, err := y4m.NewReader(in)
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}
	defer r.Close()
	info := r.Info()

	frames := 0
	for {
		if _, err := r.ReadFrame(); err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("info: frame %d: %w", frames, err)
		}
		frames++
	}

	name := inputPath
	if inputPath == "-" {
		name = "<stdin>"
	}

	fmt.Printf("File:        %s\n", name)
	fmt.Printf("Dimensions:  %d x %d\n", info.Width, info.Height)
	if info.RateNum > 0 && info.RateDen > 0 {
		fmt.Printf("Frame rate:  %d:%d\n", info.RateNum, info.RateDen)
	}
	fmt.Printf("Interlacing: %c\n", info.Interlacing)
	if info.AspectNum > 0 && info.AspectDen > 0 {
		fmt.Printf("Aspect:      %d:%d\n", info.AspectNum, info.AspectDen)
	}
	fmt.Printf("Color space: %s\n", info.ColorSpace)
	fmt.Printf("Frames:      %d\n", frames)

	if inputPath != "-" {
		fi, err := os.Stat(inputPath)
		if err == nil {
			fmt.Printf("File size:   %d bytes\n", fi.Size())
		}
	}

	return nil
}
