// Package vlcframe plays media with libVLC and hands decoded video frames
// to Go code as packed RGB24 images.
//
// A Player configures one libVLC session (instance, media player, media)
// from a media type, a locator and a list of media options, asks libVLC to
// decode into memory it allocates, and keeps only the most recent frame.
// libVLC calls back from its own decode thread; Frame reads the latest
// picture from any goroutine under a single mutex.
//
//	p := vlcframe.NewPlayer(nil, vlcframe.Config{
//		MediaType: vlcframe.MediaTypeNetStream,
//		Locator:   "rtsp://camera.local/stream",
//		Options:   []string{":network-caching=300"},
//	})
//	if err := p.Start(ctx); err != nil {
//		log.Fatalf("start: %v (code %v)", err, vlcframe.CodeOf(err))
//	}
//	defer p.Stop(ctx)
//
//	frame := p.Frame() // zero Frame until the first picture arrives
//
// # Ownership
//
// libVLC asks for a buffer per picture (LockFrame) and reports it complete
// (DisplayFrame). The buffer is allocated by the first call and freed by the
// second; buffers locked but never displayed are freed by Stop. Frames are
// copied out of the buffer, so the Data of a Frame is plain Go memory that
// is never written again after publication.
//
// # Native Libraries
//
// By default libVLC is loaded at runtime with purego (no CGO needed).
// Set VLC_LIB_PATH to the libvlc shared object, or VLC_SDK_LIB_PATH to the
// directory containing it, to override the search.
//
// # Build Tags
//
//   - libvlc_cgo: link libVLC with CGO (pkg-config libvlc) instead of loading it at runtime
package vlcframe
