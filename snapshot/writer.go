// Package snapshot writes player frames to a filesystem as bitmap images.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/spf13/afero"
	"golang.org/x/image/bmp"

	"github.com/thesyncim/vlcframe"
)

// ErrEmptyFrame is returned when asked to write a frame that holds no picture.
var ErrEmptyFrame = errors.New("frame is empty")

// Format is the image encoding of a snapshot.
type Format int

const (
	FormatBMP Format = iota
	FormatPNG
	FormatJPEG
)

func (f Format) String() string {
	switch f {
	case FormatBMP:
		return "bmp"
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	default:
		return "unknown"
	}
}

// Ext returns the file extension including the leading dot.
func (f Format) Ext() string {
	switch f {
	case FormatPNG:
		return ".png"
	case FormatJPEG:
		return ".jpg"
	default:
		return ".bmp"
	}
}

// ParseFormat parses a format name or file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "", "bmp", "bitmap":
		return FormatBMP, nil
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	default:
		return FormatBMP, fmt.Errorf("unknown snapshot format %q", s)
	}
}

// Writer encodes frames and stores them under Dir.
type Writer struct {
	Fs        afero.Fs  // Target filesystem (default: OS filesystem)
	Dir       string    // Output directory, created on first write
	Prefix    string    // File name prefix (default: "frame")
	Format    Format    // Image encoding (default: BMP)
	Quality   int       // JPEG quality 1-100 (default: 90)
	MaxWidth  int       // Width bound, 0 for none
	MaxHeight int       // Height bound, 0 for none
	ScaleMode ScaleMode // How bounds are applied (default: fit)
}

// Path returns the file the frame with sequence number seq is written to.
func (w *Writer) Path(seq uint64) string {
	prefix := w.Prefix
	if prefix == "" {
		prefix = "frame"
	}
	return filepath.Join(w.Dir, fmt.Sprintf("%s-%06d%s", prefix, seq, w.Format.Ext()))
}

// Write encodes frame into a new file and returns its path.
func (w *Writer) Write(ctx context.Context, frame vlcframe.Frame) (_path string, _err error) {
	logger.Tracef(ctx, "Write(ctx, seq=%d)", frame.Seq)
	defer func() { logger.Tracef(ctx, "/Write(ctx, seq=%d): %s %v", frame.Seq, _path, _err) }()

	if frame.Empty() {
		return "", ErrEmptyFrame
	}

	fs := w.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if w.Dir != "" {
		if err := fs.MkdirAll(w.Dir, 0o755); err != nil {
			return "", fmt.Errorf("unable to create %q: %w", w.Dir, err)
		}
	}

	path := w.Path(frame.Seq)
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("unable to create %q: %w", path, err)
	}

	if err := w.Encode(f, frame); err != nil {
		f.Close()
		_ = fs.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("unable to close %q: %w", path, err)
	}

	logger.Debugf(ctx, "wrote frame %d (%dx%d) to %s", frame.Seq, frame.Width, frame.Height, path)
	return path, nil
}

// Encode writes frame to out in the configured format, applying the bounds.
func (w *Writer) Encode(out io.Writer, frame vlcframe.Frame) error {
	rgba := frame.ToRGBA()
	if rgba == nil {
		return ErrEmptyFrame
	}

	var img image.Image = rgba
	if w.MaxWidth > 0 || w.MaxHeight > 0 {
		img = scale(img, w.MaxWidth, w.MaxHeight, w.ScaleMode)
	}

	var err error
	switch w.Format {
	case FormatPNG:
		err = png.Encode(out, img)
	case FormatJPEG:
		quality := w.Quality
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		err = jpeg.Encode(out, img, &jpeg.Options{Quality: quality})
	default:
		err = bmp.Encode(out, img)
	}
	if err != nil {
		return fmt.Errorf("unable to encode %s: %w", w.Format, err)
	}
	return nil
}
