package snapshot

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/thesyncim/vlcframe"
)

func testFrame(width, height int, seq uint64) vlcframe.Frame {
	data := make([]byte, width*height*3)
	for i := 0; i < len(data); i += 3 {
		data[i], data[i+1], data[i+2] = 200, 100, 50
	}
	return vlcframe.Frame{
		Data:   data,
		Width:  width,
		Height: height,
		Stride: width * 3,
		Format: vlcframe.PixelFormatRGB24,
		Seq:    seq,
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatBMP, false},
		{"bmp", FormatBMP, false},
		{".BMP", FormatBMP, false},
		{"png", FormatPNG, false},
		{"jpg", FormatJPEG, false},
		{"jpeg", FormatJPEG, false},
		{"gif", FormatBMP, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestWriter_Write(t *testing.T) {
	decoders := map[Format]func(b []byte) (image.Image, error){
		FormatBMP:  func(b []byte) (image.Image, error) { return bmp.Decode(bytes.NewReader(b)) },
		FormatPNG:  func(b []byte) (image.Image, error) { return png.Decode(bytes.NewReader(b)) },
		FormatJPEG: func(b []byte) (image.Image, error) { return jpeg.Decode(bytes.NewReader(b)) },
	}

	for format, decode := range decoders {
		t.Run(format.String(), func(t *testing.T) {
			fs := afero.NewMemMapFs()
			w := &Writer{Fs: fs, Dir: "out/frames", Format: format}

			path, err := w.Write(context.Background(), testFrame(16, 8, 3))
			require.NoError(t, err)
			require.Equal(t, filepath.Join("out/frames", "frame-000003"+format.Ext()), path)

			raw, err := afero.ReadFile(fs, path)
			require.NoError(t, err)
			img, err := decode(raw)
			require.NoError(t, err)
			require.Equal(t, 16, img.Bounds().Dx())
			require.Equal(t, 8, img.Bounds().Dy())

			if format != FormatJPEG {
				r, g, b, _ := img.At(3, 3).RGBA()
				require.Equal(t, []uint32{200, 100, 50}, []uint32{r >> 8, g >> 8, b >> 8})
			}
		})
	}
}

func TestWriter_WriteScaled(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := &Writer{Fs: fs, Dir: "snaps", Prefix: "cam", Format: FormatPNG, MaxWidth: 32}

	path, err := w.Write(context.Background(), testFrame(64, 32, 1))
	require.NoError(t, err)
	require.Equal(t, filepath.Join("snaps", "cam-000001.png"), path)

	raw, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, 32, cfg.Width)
	require.Equal(t, 16, cfg.Height)
}

func TestWriter_EmptyFrame(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := &Writer{Fs: fs, Dir: "out"}

	_, err := w.Write(context.Background(), vlcframe.Frame{})
	require.ErrorIs(t, err, ErrEmptyFrame)

	exists, err := afero.DirExists(fs, "out")
	require.NoError(t, err)
	require.False(t, exists, "nothing is created for an empty frame")
}

func TestWriter_ReadOnlyFs(t *testing.T) {
	w := &Writer{Fs: afero.NewReadOnlyFs(afero.NewMemMapFs()), Dir: "out"}
	_, err := w.Write(context.Background(), testFrame(4, 4, 1))
	require.Error(t, err)
}
