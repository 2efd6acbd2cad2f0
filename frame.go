// Frame type delivered by the player.
package vlcframe

import (
	"image"
	"time"
)

// PixelFormat represents packed video pixel formats.
type PixelFormat int

const (
	PixelFormatUnknown PixelFormat = iota
	// PixelFormatRGB24 is packed RGB, 3 bytes per pixel.
	PixelFormatRGB24
	// PixelFormatBGR24 is packed BGR, 3 bytes per pixel (libVLC "RV24").
	PixelFormatBGR24
)

func (p PixelFormat) String() string {
	switch p {
	case PixelFormatRGB24:
		return "RGB24"
	case PixelFormatBGR24:
		return "BGR24"
	default:
		return "Unknown"
	}
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (p PixelFormat) BytesPerPixel() int {
	switch p {
	case PixelFormatRGB24, PixelFormatBGR24:
		return 3
	default:
		return 0
	}
}

// Chroma returns the libVLC fourcc for the format.
func (p PixelFormat) Chroma() string {
	switch p {
	case PixelFormatRGB24, PixelFormatBGR24:
		return "RV24"
	default:
		return ""
	}
}

// Frame is a decoded video picture.
// Frames returned by Player.Frame share their Data with the player and
// must be treated as read-only; use Clone for a private copy.
type Frame struct {
	Data      []byte      // Packed pixel data, Stride*Height bytes
	Width     int         // Frame width in pixels
	Height    int         // Frame height in pixels
	Stride    int         // Bytes per row
	Format    PixelFormat // Pixel format
	Seq       uint64      // 1-based delivery sequence number, 0 for the empty frame
	Timestamp time.Time   // When the frame was handed over by the engine
}

// Empty reports whether no picture has been stored in f.
func (f Frame) Empty() bool {
	return len(f.Data) == 0 || f.Width <= 0 || f.Height <= 0
}

// Bounds returns the image rectangle of the frame.
func (f Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

// Clone creates a deep copy of the frame.
func (f Frame) Clone() Frame {
	clone := f
	if f.Data != nil {
		clone.Data = make([]byte, len(f.Data))
		copy(clone.Data, f.Data)
	}
	return clone
}

// ToRGBA converts the frame into an *image.RGBA with opaque alpha.
// It returns nil for an empty frame or an unsupported format.
func (f Frame) ToRGBA() *image.RGBA {
	if f.Empty() || f.Format.BytesPerPixel() != 3 {
		return nil
	}
	rOff, bOff := 0, 2
	if f.Format == PixelFormatBGR24 {
		rOff, bOff = 2, 0
	}

	img := image.NewRGBA(f.Bounds())
	for y := 0; y < f.Height; y++ {
		src := f.Data[y*f.Stride : y*f.Stride+f.Width*3]
		dst := img.Pix[y*img.Stride : y*img.Stride+f.Width*4]
		for x := 0; x < f.Width; x++ {
			dst[x*4+0] = src[x*3+rOff]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+bOff]
			dst[x*4+3] = 0xff
		}
	}
	return img
}

// PackedSize returns the buffer size of a packed frame with the given pitch.
func PackedSize(width, height int, format PixelFormat) int {
	return width * height * format.BytesPerPixel()
}

// swapRB copies packed 3-byte pixels from src into dst exchanging the first
// and third channel. len(dst) must be at least len(src).
func swapRB(dst, src []byte) {
	n := len(src) - len(src)%3
	for i := 0; i < n; i += 3 {
		dst[i] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i]
	}
}
