//go:build !darwin && !linux && !libvlc_cgo

package vlcframe

import "fmt"

// IsLibVLCAvailable reports false: the runtime loader only supports darwin and linux.
func IsLibVLCAvailable() bool {
	return false
}

// LibVLC is a stub engine for platforms without a libVLC loader.
// Build with the libvlc_cgo tag to link libVLC directly.
type LibVLC struct{}

var _ Engine = (*LibVLC)(nil)

// NewLibVLC returns the stub engine.
func NewLibVLC() *LibVLC {
	return &LibVLC{}
}

func (*LibVLC) NewInstance([]string) (Handle, error) {
	return 0, fmt.Errorf("libvlc: %w", ErrNotSupported)
}

func (*LibVLC) ReleaseInstance(Handle) {}

func (*LibVLC) NewPlayer(Handle) (Handle, error) {
	return 0, fmt.Errorf("libvlc: %w", ErrNotSupported)
}

func (*LibVLC) ReleasePlayer(Handle) {}

func (*LibVLC) NewMediaPath(Handle, string) Handle { return 0 }

func (*LibVLC) NewMediaLocation(Handle, string) Handle { return 0 }

func (*LibVLC) AddMediaOption(Handle, string) {}

func (*LibVLC) ReleaseMedia(Handle) {}

func (*LibVLC) SetMedia(Handle, Handle) {}

func (*LibVLC) ParseMedia(Handle) {}

func (*LibVLC) SetVideoFormat(Handle, string, int, int, int) {}

func (*LibVLC) SetVideoCallbacks(Handle, VideoSink) {}

func (*LibVLC) IsPlaying(Handle) bool { return false }

func (*LibVLC) Stop(Handle) {}

func (*LibVLC) Pause(Handle) {}

func (*LibVLC) AllocPicture(int) []byte { return nil }

func (*LibVLC) FreePicture([]byte) {}

func (*LibVLC) Version() string { return "" }

func (*LibVLC) VideoSize(Handle, uint) (int, int, error) {
	return 0, 0, fmt.Errorf("libvlc: %w", ErrNotSupported)
}

func (*LibVLC) Play(Handle) error {
	return fmt.Errorf("libvlc: %w", ErrNotSupported)
}
