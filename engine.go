package vlcframe

import "unsafe"

// Handle is an opaque engine object reference. The zero Handle is null.
type Handle uintptr

// VideoSink receives decoded pictures. Both methods are called on the
// engine's decode thread.
type VideoSink interface {
	// LockFrame returns the buffer the next picture is decoded into.
	// The engine hands the buffer's address back to DisplayFrame. A nil
	// buffer skips the picture.
	LockFrame() []byte

	// DisplayFrame is called once the picture at the given address is complete.
	DisplayFrame(picture unsafe.Pointer)
}

// Engine is the playback library boundary. Every method maps onto one
// libVLC call; instance, player and media handles follow libVLC lifetimes
// (media and player depend on the instance, media is attached to a player).
type Engine interface {
	// NewInstance creates the engine runtime context.
	NewInstance(args []string) (Handle, error)
	ReleaseInstance(instance Handle)

	// NewPlayer creates a playback session bound to instance.
	NewPlayer(instance Handle) (Handle, error)
	// ReleasePlayer stops decoding and detaches the sink. No sink method
	// runs after it returns.
	ReleasePlayer(player Handle)

	// NewMediaPath resolves a local file path. A zero Handle means the media could not be created.
	NewMediaPath(instance Handle, path string) Handle
	// NewMediaLocation resolves an MRL/URL. A zero Handle means the media could not be created.
	NewMediaLocation(instance Handle, location string) Handle
	AddMediaOption(media Handle, option string)
	ReleaseMedia(media Handle)

	SetMedia(player, media Handle)
	ParseMedia(media Handle)

	// VideoSize reports the native dimensions of video track num.
	VideoSize(player Handle, num uint) (width, height int, err error)
	// SetVideoFormat must precede SetVideoCallbacks.
	SetVideoFormat(player Handle, chroma string, width, height, pitch int)
	// SetVideoCallbacks routes decoded pictures to sink. A nil sink detaches
	// it; pictures are then decoded into engine memory and dropped.
	SetVideoCallbacks(player Handle, sink VideoSink)

	Play(player Handle) error
	IsPlaying(player Handle) bool
	Stop(player Handle)
	Pause(player Handle)

	// AllocPicture returns size bytes of memory the engine may write into
	// from its own threads. It returns nil when allocation fails.
	AllocPicture(size int) []byte
	FreePicture(picture []byte)

	// Version reports the library version string.
	Version() string
}
