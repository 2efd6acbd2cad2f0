package vlcframe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPixelFormat_String(t *testing.T) {
	tests := []struct {
		format PixelFormat
		want   string
	}{
		{PixelFormatRGB24, "RGB24"},
		{PixelFormatBGR24, "BGR24"},
		{PixelFormatUnknown, "Unknown"},
		{PixelFormat(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.format.String(); got != tt.want {
				t.Errorf("PixelFormat.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPixelFormat_BytesPerPixel(t *testing.T) {
	tests := []struct {
		format PixelFormat
		want   int
		chroma string
	}{
		{PixelFormatRGB24, 3, "RV24"},
		{PixelFormatBGR24, 3, "RV24"},
		{PixelFormatUnknown, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.BytesPerPixel(); got != tt.want {
				t.Errorf("PixelFormat.BytesPerPixel() = %v, want %v", got, tt.want)
			}
			if got := tt.format.Chroma(); got != tt.chroma {
				t.Errorf("PixelFormat.Chroma() = %q, want %q", got, tt.chroma)
			}
		})
	}
}

func TestPackedSize(t *testing.T) {
	tests := []struct {
		width, height int
		want          int
	}{
		{1024, 768, 1024 * 768 * 3},
		{1920, 1080, 1920 * 1080 * 3},
		{1, 1, 3},
		{0, 480, 0},
	}

	for _, tt := range tests {
		if got := PackedSize(tt.width, tt.height, PixelFormatBGR24); got != tt.want {
			t.Errorf("PackedSize(%d, %d) = %d, want %d", tt.width, tt.height, got, tt.want)
		}
	}
}

func TestFrame_Clone(t *testing.T) {
	original := Frame{
		Data:   []byte{1, 2, 3, 4, 5, 6},
		Width:  2,
		Height: 1,
		Stride: 6,
		Format: PixelFormatRGB24,
		Seq:    7,
	}

	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.Data[0] = 99
	require.Equal(t, byte(1), original.Data[0], "clone must not share data")

	empty := Frame{}.Clone()
	require.Nil(t, empty.Data)
	require.True(t, empty.Empty())
}

func TestFrame_ToRGBA(t *testing.T) {
	rgb := Frame{
		Data:   []byte{10, 20, 30, 40, 50, 60},
		Width:  2,
		Height: 1,
		Stride: 6,
		Format: PixelFormatRGB24,
	}
	img := rgb.ToRGBA()
	require.NotNil(t, img)
	require.Equal(t, []byte{10, 20, 30, 0xff, 40, 50, 60, 0xff}, img.Pix)

	bgr := rgb
	bgr.Format = PixelFormatBGR24
	img = bgr.ToRGBA()
	require.Equal(t, []byte{30, 20, 10, 0xff, 60, 50, 40, 0xff}, img.Pix)

	unknown := rgb
	unknown.Format = PixelFormatUnknown
	require.Nil(t, unknown.ToRGBA())
}

func TestFrame_ToRGBA_PaddedStride(t *testing.T) {
	f := Frame{
		Data: []byte{
			1, 2, 3, 0, 0,
			4, 5, 6, 0, 0,
		},
		Width:  1,
		Height: 2,
		Stride: 5,
		Format: PixelFormatRGB24,
	}
	img := f.ToRGBA()
	require.Equal(t, []byte{1, 2, 3, 0xff, 4, 5, 6, 0xff}, img.Pix)
}

func TestSwapRB(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7}
	dst := make([]byte, len(src))
	swapRB(dst, src)
	require.Equal(t, []byte{3, 2, 1, 6, 5, 4, 0}, dst, "trailing partial pixel is ignored")
}

func BenchmarkSwapRB(b *testing.B) {
	src := make([]byte, PackedSize(DefaultWidth, DefaultHeight, PixelFormatBGR24))
	dst := make([]byte, len(src))
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		swapRB(dst, src)
	}
}
