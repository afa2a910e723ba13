package glyphraster

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ImageFormat selects the encoding of written glyph images.
type ImageFormat int

const (
	// FormatPNG encodes with image/png (default).
	FormatPNG ImageFormat = iota
	// FormatBMP encodes 32-bit BMP with golang.org/x/image/bmp.
	FormatBMP
	// FormatTIFF encodes deflate-compressed TIFF with golang.org/x/image/tiff.
	FormatTIFF
)

// String returns the format name, which is also its file extension.
func (f ImageFormat) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	default:
		return "unknown"
	}
}

// ParseImageFormat parses "png", "bmp" or "tiff" ("tif" is accepted),
// ignoring case.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch strings.ToLower(s) {
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tiff", "tif":
		return FormatTIFF, nil
	}
	return 0, fmt.Errorf("%w: unknown image format %q", ErrInvalidConfig, s)
}

// FileName returns the output name for cp: the codepoint in upper-case
// hexadecimal with at least four digits, e.g. "0x0041.png".
func FileName(cp uint32, format ImageFormat) string {
	return fmt.Sprintf("0x%04X.%s", cp, format)
}

// ImageWriter persists one image.
type ImageWriter interface {
	Write(path string, img image.Image) error
}

// FileWriter writes images to the file system in Format.
type FileWriter struct {
	Format ImageFormat
}

// Write implements ImageWriter. Errors are *WriteError values.
func (w FileWriter) Write(path string, img image.Image) (err error) {
	f, err := os.Create(path) //nolint:gosec // path is built from the output directory
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &WriteError{Path: path, Err: cerr}
		}
	}()

	bw := bufio.NewWriter(f)
	if err := w.encode(bw, img); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := bw.Flush(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func (w FileWriter) encode(out io.Writer, img image.Image) error {
	switch w.Format {
	case FormatPNG:
		return png.Encode(out, img)
	case FormatBMP:
		return bmp.Encode(out, img)
	case FormatTIFF:
		return tiff.Encode(out, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported image format %d", int(w.Format))
	}
}
