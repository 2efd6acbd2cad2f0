package vlcframe

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"
	"unsafe"

	"github.com/facebookincubator/go-belt/tool/logger"
)

// Fallback resolution used when the engine cannot report the native frame size.
const (
	DefaultWidth  = 1024
	DefaultHeight = 768
)

// Config configures a Player. It is read by Start and must not change
// while the player is started.
type Config struct {
	MediaType  MediaType // How Locator is resolved
	Locator    string    // File path or MRL/URL (required)
	Options    []string  // Media options, applied in order (e.g. ":network-caching=300")
	EngineArgs []string  // Arguments for the engine instance (default: none)

	DefaultWidth  int // Fallback frame width (default: 1024)
	DefaultHeight int // Fallback frame height (default: 768)
}

// DefaultConfig returns a configuration with the fallback resolution set.
func DefaultConfig() Config {
	return Config{
		DefaultWidth:  DefaultWidth,
		DefaultHeight: DefaultHeight,
	}
}

// Player drives one engine playback session and keeps the most recently
// decoded frame.
//
// Start, Stop and Pause must be called from the owning goroutine and are not
// safe for concurrent use. Frame may be called from any goroutine.
type Player struct {
	engine Engine
	config Config

	// Set by Start, read by the decode thread.
	ctx    context.Context
	width  int
	height int

	instance Handle
	player   Handle
	media    Handle
	started  bool

	// Pictures locked by the engine and not yet displayed.
	pictureMu sync.Mutex
	pictures  map[unsafe.Pointer][]byte

	frameMu sync.Mutex
	frame   Frame
	seq     uint64
}

var _ VideoSink = (*Player)(nil)

// NewPlayer creates a player on top of engine. A nil engine selects the
// libVLC engine for this platform.
func NewPlayer(engine Engine, config Config) *Player {
	if engine == nil {
		engine = NewLibVLC()
	}
	if config.DefaultWidth <= 0 {
		config.DefaultWidth = DefaultWidth
	}
	if config.DefaultHeight <= 0 {
		config.DefaultHeight = DefaultHeight
	}
	config.Options = cloneStrings(config.Options)
	config.EngineArgs = cloneStrings(config.EngineArgs)

	return &Player{
		engine:   engine,
		config:   config,
		ctx:      context.Background(),
		width:    config.DefaultWidth,
		height:   config.DefaultHeight,
		pictures: make(map[unsafe.Pointer][]byte),
	}
}

// SetMediaType sets how the locator is resolved on the next Start.
func (p *Player) SetMediaType(t MediaType) {
	p.config.MediaType = t
}

// SetLocator sets the file path or MRL used on the next Start.
func (p *Player) SetLocator(locator string) {
	p.config.Locator = locator
}

// SetOptions sets the media options used on the next Start.
func (p *Player) SetOptions(options []string) {
	p.config.Options = cloneStrings(options)
}

// SetEngineArgs sets the engine instance arguments used on the next Start.
func (p *Player) SetEngineArgs(args []string) {
	p.config.EngineArgs = cloneStrings(args)
}

// Config returns a copy of the current configuration.
func (p *Player) Config() Config {
	c := p.config
	c.Options = cloneStrings(c.Options)
	c.EngineArgs = cloneStrings(c.EngineArgs)
	return c
}

// Started reports whether Start succeeded and Stop was not called since.
func (p *Player) Started() bool {
	return p.started
}

// Size returns the frame dimensions negotiated by the last Start.
func (p *Player) Size() (width, height int) {
	return p.width, p.height
}

// EngineVersion returns the version string of the underlying library.
func (p *Player) EngineVersion() string {
	return p.engine.Version()
}

// Start validates the configuration, opens the media and starts playback.
// Frames are delivered asynchronously; use Frame to read the latest one.
//
// The returned error wraps one of ErrLocatorEmpty, ErrInvalidMediaType,
// ErrInternal, ErrMediaOpen or ErrAlreadyStarted; CodeOf maps it to a Code.
// On failure every handle acquired so far is released.
func (p *Player) Start(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "Start(ctx): %s %q", p.config.MediaType, p.config.Locator)
	defer func() { logger.Debugf(ctx, "/Start(ctx): %v", _err) }()

	if p.config.Locator == "" {
		logger.Errorf(ctx, "start error: the locator is empty")
		return ErrLocatorEmpty
	}
	if !p.config.MediaType.Valid() {
		logger.Errorf(ctx, "start error: media type %d is out of range", int(p.config.MediaType))
		return fmt.Errorf("%w: %d", ErrInvalidMediaType, int(p.config.MediaType))
	}
	if p.started {
		return ErrAlreadyStarted
	}

	instance, err := p.engine.NewInstance(p.config.EngineArgs)
	if err != nil {
		logger.Errorf(ctx, "unable to create the engine instance: %v", err)
		return fmt.Errorf("%w: unable to create the engine instance: %w", ErrInternal, err)
	}

	player, err := p.engine.NewPlayer(instance)
	if err != nil {
		logger.Errorf(ctx, "unable to create the media player: %v", err)
		p.engine.ReleaseInstance(instance)
		return fmt.Errorf("%w: unable to create the media player: %w", ErrInternal, err)
	}

	var media Handle
	switch p.config.MediaType {
	case MediaTypeFile:
		media = p.engine.NewMediaPath(instance, filepath.FromSlash(p.config.Locator))
	case MediaTypeNetStream:
		media = p.engine.NewMediaLocation(instance, p.config.Locator)
	}
	if media == 0 {
		logger.Errorf(ctx, "unable to open %s %q", p.config.MediaType, p.config.Locator)
		p.engine.ReleasePlayer(player)
		p.engine.ReleaseInstance(instance)
		return fmt.Errorf("%w: %s %q", ErrMediaOpen, p.config.MediaType, p.config.Locator)
	}

	for _, option := range p.config.Options {
		logger.Tracef(ctx, "adding media option %q", option)
		p.engine.AddMediaOption(media, option)
	}

	p.engine.SetMedia(player, media)
	p.engine.ParseMedia(media)

	width, height, err := p.engine.VideoSize(player, 0)
	if err != nil || width <= 0 || height <= 0 {
		logger.Warnf(ctx, "unable to get the video size (%v, %dx%d), using the default %dx%d",
			err, width, height, p.config.DefaultWidth, p.config.DefaultHeight)
		width, height = p.config.DefaultWidth, p.config.DefaultHeight
	}

	p.ctx = ctx
	p.width, p.height = width, height
	p.instance, p.player, p.media = instance, player, media
	p.started = true

	format := PixelFormatBGR24
	p.engine.SetVideoFormat(player, format.Chroma(), width, height, width*format.BytesPerPixel())
	p.engine.SetVideoCallbacks(player, p)

	if err := p.engine.Play(player); err != nil {
		logger.Errorf(ctx, "unable to start playback: %v", err)
		p.release(ctx)
		return fmt.Errorf("%w: unable to start playback: %w", ErrInternal, err)
	}

	logger.Debugf(ctx, "playing %q at %dx%d", p.config.Locator, width, height)
	return nil
}

// Stop stops playback and releases the media, player and instance handles.
// It does nothing on a player that is not started. The last frame stays
// readable through Frame.
func (p *Player) Stop(ctx context.Context) {
	logger.Debugf(ctx, "Stop(ctx)")
	defer func() { logger.Debugf(ctx, "/Stop(ctx)") }()

	if !p.started {
		logger.Debugf(ctx, "the player is not started")
		return
	}

	if p.engine.IsPlaying(p.player) {
		p.engine.Stop(p.player)
	}
	p.release(ctx)
}

// Pause toggles the pause state of a started player.
func (p *Player) Pause(ctx context.Context) {
	logger.Debugf(ctx, "Pause(ctx)")
	if !p.started {
		logger.Debugf(ctx, "the player is not started, nothing to pause")
		return
	}
	p.engine.Pause(p.player)
}

// Frame returns the most recently completed frame, or the zero Frame if
// none has arrived yet.
func (p *Player) Frame() Frame {
	p.frameMu.Lock()
	defer p.frameMu.Unlock()
	return p.frame
}

// release drops the session. ReleasePlayer returns only once the decode
// thread is gone, so pictures it may still hold are freed after it.
func (p *Player) release(ctx context.Context) {
	p.engine.ReleaseMedia(p.media)
	p.engine.ReleasePlayer(p.player)

	p.pictureMu.Lock()
	pending := p.pictures
	p.pictures = make(map[unsafe.Pointer][]byte)
	p.pictureMu.Unlock()

	if len(pending) > 0 {
		logger.Debugf(ctx, "freeing %d pictures that were never displayed", len(pending))
	}
	for _, buf := range pending {
		p.engine.FreePicture(buf)
	}

	p.engine.ReleaseInstance(p.instance)
	p.instance, p.player, p.media = 0, 0, 0
	p.started = false
}

// LockFrame allocates the buffer the engine decodes the next picture into.
// Ownership passes to DisplayFrame, which frees it. It returns nil when the
// engine is out of picture memory; the engine then decodes into memory of
// its own and drops the picture.
func (p *Player) LockFrame() []byte {
	size := PackedSize(p.width, p.height, PixelFormatBGR24)
	buf := p.engine.AllocPicture(size)
	if len(buf) < size {
		logger.Errorf(p.ctx, "unable to allocate a %d-byte picture", size)
		if buf != nil {
			p.engine.FreePicture(buf)
		}
		return nil
	}
	buf = buf[:size]

	p.pictureMu.Lock()
	p.pictures[unsafe.Pointer(unsafe.SliceData(buf))] = buf
	p.pictureMu.Unlock()
	return buf
}

// DisplayFrame converts the completed picture into an RGB24 Frame, stores
// it as the current frame and frees the picture buffer.
func (p *Player) DisplayFrame(picture unsafe.Pointer) {
	p.pictureMu.Lock()
	buf, ok := p.pictures[picture]
	delete(p.pictures, picture)
	p.pictureMu.Unlock()

	if !ok {
		logger.Warnf(p.ctx, "display of an unknown picture %p", picture)
		return
	}
	defer p.engine.FreePicture(buf)

	width, height := p.width, p.height
	stride := width * PixelFormatRGB24.BytesPerPixel()
	data := make([]byte, stride*height)
	swapRB(data, buf[:len(data)])

	p.addFrame(Frame{
		Data:      data,
		Width:     width,
		Height:    height,
		Stride:    stride,
		Format:    PixelFormatRGB24,
		Timestamp: time.Now(),
	})
}

func (p *Player) addFrame(frame Frame) {
	p.frameMu.Lock()
	defer p.frameMu.Unlock()
	p.seq++
	frame.Seq = p.seq
	p.frame = frame
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
