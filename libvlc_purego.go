//go:build (darwin || linux) && !libvlc_cgo

// libVLC engine loaded at runtime with purego.

package vlcframe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

var (
	libvlcOnce    sync.Once
	libvlcHandle  uintptr
	libvlcInitErr error
	libvlcLoaded  bool
)

// libvlc function pointers
var (
	libvlcNew                  func(argc int32, argv uintptr) uintptr
	libvlcRelease              func(instance uintptr)
	libvlcErrmsg               func() uintptr
	libvlcGetVersion           func() uintptr
	libvlcMediaPlayerNew       func(instance uintptr) uintptr
	libvlcMediaPlayerRelease   func(player uintptr)
	libvlcMediaNewPath         func(instance uintptr, path string) uintptr
	libvlcMediaNewLocation     func(instance uintptr, mrl string) uintptr
	libvlcMediaAddOption       func(media uintptr, option string)
	libvlcMediaRelease         func(media uintptr)
	libvlcMediaPlayerSetMedia  func(player, media uintptr)
	libvlcMediaParse           func(media uintptr)
	libvlcVideoGetSize         func(player uintptr, num uint32, px, py uintptr) int32
	libvlcVideoSetFormat       func(player uintptr, chroma string, width, height, pitch uint32)
	libvlcVideoSetCallbacks    func(player, lock, unlock, display, opaque uintptr)
	libvlcMediaPlayerPlay      func(player uintptr) int32
	libvlcMediaPlayerIsPlaying func(player uintptr) int32
	libvlcMediaPlayerStop      func(player uintptr)
	libvlcMediaPlayerPause     func(player uintptr)
)

// vlcVideoSize is a heap-allocated struct for libvlc_video_get_size output
// parameters. Stack variables can move during the C call on arm64.
type vlcVideoSize struct {
	Width  uint32
	Height uint32
}

func loadLibVLC() error {
	libvlcOnce.Do(func() {
		if err := loadLibc(); err != nil {
			libvlcInitErr = err
			return
		}
		libvlcInitErr = openLibVLC()
		libvlcLoaded = libvlcInitErr == nil
	})
	return libvlcInitErr
}

// openLibVLC keeps the first candidate that exports every symbol we bind.
func openLibVLC() error {
	var lastErr error
	for _, path := range getLibVLCPaths() {
		handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			lastErr = err
			continue
		}
		if err := bindLibVLC(handle); err != nil {
			purego.Dlclose(handle)
			lastErr = fmt.Errorf("%s: %w", path, err)
			continue
		}
		libvlcHandle = handle
		return nil
	}
	if lastErr == nil {
		lastErr = errors.New("no candidate path")
	}
	return fmt.Errorf("unable to load libvlc: %w", lastErr)
}

func getLibVLCPaths() []string {
	var paths []string

	libNames := []string{"libvlc.so.5", "libvlc.so"}
	if runtime.GOOS == "darwin" {
		libNames = []string{"libvlc.dylib", "libvlc.5.dylib"}
	}

	// Environment variable overrides (highest priority)
	if envPath := os.Getenv("VLC_LIB_PATH"); envPath != "" {
		paths = append(paths, envPath)
	}
	if envDir := os.Getenv("VLC_SDK_LIB_PATH"); envDir != "" {
		for _, name := range libNames {
			paths = append(paths, filepath.Join(envDir, name))
		}
	}

	var dirs []string
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		dirs = append(dirs, exeDir, filepath.Join(exeDir, "lib"), filepath.Join(exeDir, "..", "lib"))
	}
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, filepath.Join(wd, "build"), filepath.Join(wd, "..", "build"))
	}
	if sourceRoot := findSourceRoot(); sourceRoot != "" {
		dirs = append(dirs, filepath.Join(sourceRoot, "build"))
	}
	if moduleRoot := findModuleRoot(); moduleRoot != "" {
		dirs = append(dirs, filepath.Join(moduleRoot, "build"))
	}
	for _, dir := range dirs {
		for _, name := range libNames {
			paths = append(paths, filepath.Join(dir, name))
		}
	}

	// System paths (lowest priority)
	switch runtime.GOOS {
	case "darwin":
		paths = append(paths,
			"/Applications/VLC.app/Contents/MacOS/lib/libvlc.dylib",
			"/usr/local/lib/libvlc.dylib",
			"/opt/homebrew/lib/libvlc.dylib",
			"libvlc.dylib",
		)
	case "linux":
		paths = append(paths,
			"libvlc.so.5",
			"libvlc.so",
			"/usr/lib/x86_64-linux-gnu/libvlc.so.5",
			"/usr/lib/aarch64-linux-gnu/libvlc.so.5",
			"/usr/local/lib/libvlc.so.5",
			"/usr/lib/libvlc.so.5",
		)
	}

	return paths
}

// libvlcSymbols pairs every bound function pointer with its export name.
var libvlcSymbols = []struct {
	fptr any
	name string
}{
	{&libvlcNew, "libvlc_new"},
	{&libvlcRelease, "libvlc_release"},
	{&libvlcErrmsg, "libvlc_errmsg"},
	{&libvlcGetVersion, "libvlc_get_version"},
	{&libvlcMediaPlayerNew, "libvlc_media_player_new"},
	{&libvlcMediaPlayerRelease, "libvlc_media_player_release"},
	{&libvlcMediaNewPath, "libvlc_media_new_path"},
	{&libvlcMediaNewLocation, "libvlc_media_new_location"},
	{&libvlcMediaAddOption, "libvlc_media_add_option"},
	{&libvlcMediaRelease, "libvlc_media_release"},
	{&libvlcMediaPlayerSetMedia, "libvlc_media_player_set_media"},
	{&libvlcMediaParse, "libvlc_media_parse"},
	{&libvlcVideoGetSize, "libvlc_video_get_size"},
	{&libvlcVideoSetFormat, "libvlc_video_set_format"},
	{&libvlcVideoSetCallbacks, "libvlc_video_set_callbacks"},
	{&libvlcMediaPlayerPlay, "libvlc_media_player_play"},
	{&libvlcMediaPlayerIsPlaying, "libvlc_media_player_is_playing"},
	{&libvlcMediaPlayerStop, "libvlc_media_player_stop"},
	{&libvlcMediaPlayerPause, "libvlc_media_player_pause"},
}

func bindLibVLC(handle uintptr) (err error) {
	// RegisterLibFunc panics on a missing symbol.
	var name string
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("symbol %s: %v", name, r)
		}
	}()
	for _, sym := range libvlcSymbols {
		name = sym.name
		purego.RegisterLibFunc(sym.fptr, handle, sym.name)
	}
	return nil
}

// IsLibVLCAvailable checks if libvlc can be loaded.
func IsLibVLCAvailable() bool {
	if err := loadLibVLC(); err != nil {
		return false
	}
	return libvlcLoaded
}

func libvlcError() string {
	if msg := cString(libvlcErrmsg()); msg != "" {
		return msg
	}
	return "unknown error"
}

// purego callbacks cannot be freed, so the two trampolines are created
// once and shared by every player through the opaque route id.
var (
	vlcCallbacksOnce   sync.Once
	vlcLockCallback    uintptr
	vlcDisplayCallback uintptr
)

func initVLCCallbacks() {
	vlcCallbacksOnce.Do(func() {
		vlcLockCallback = purego.NewCallback(goVLCLock)
		vlcDisplayCallback = purego.NewCallback(goVLCDisplay)
	})
}

// goVLCLock implements libvlc_video_lock_cb.
func goVLCLock(opaque uintptr, planes uintptr) uintptr {
	var picture unsafe.Pointer
	if route := lookupVideoRoute(opaque); route != nil {
		picture = route.lock()
	}
	*(*unsafe.Pointer)(unsafe.Pointer(planes)) = picture
	return uintptr(picture)
}

// goVLCDisplay implements libvlc_video_display_cb.
func goVLCDisplay(opaque uintptr, picture uintptr) {
	if route := lookupVideoRoute(opaque); route != nil {
		route.display(unsafe.Pointer(picture))
	}
}

func vlcAlloc(size int) []byte { return cMalloc(size) }

func vlcFree(buf []byte) { cFree(buf) }

// LibVLC implements Engine on top of the system libVLC.
type LibVLC struct{}

var _ Engine = (*LibVLC)(nil)

// NewLibVLC returns the libVLC engine. The library is loaded by the first NewInstance.
func NewLibVLC() *LibVLC {
	return &LibVLC{}
}

func (*LibVLC) NewInstance(args []string) (Handle, error) {
	if err := loadLibVLC(); err != nil {
		return 0, err
	}

	argv, free := cStringArray(args)
	defer free()
	if len(args) > 0 && argv == 0 {
		return 0, errors.New("unable to allocate libvlc arguments")
	}

	instance := libvlcNew(int32(len(args)), argv)
	if instance == 0 {
		return 0, fmt.Errorf("libvlc_new: %s", libvlcError())
	}
	return Handle(instance), nil
}

func (*LibVLC) ReleaseInstance(instance Handle) {
	if instance != 0 {
		libvlcRelease(uintptr(instance))
	}
}

func (*LibVLC) NewPlayer(instance Handle) (Handle, error) {
	player := libvlcMediaPlayerNew(uintptr(instance))
	if player == 0 {
		return 0, fmt.Errorf("libvlc_media_player_new: %s", libvlcError())
	}
	return Handle(player), nil
}

func (*LibVLC) ReleasePlayer(player Handle) {
	if player == 0 {
		return
	}
	// Releasing the player joins its decode thread; the route must outlive it.
	libvlcMediaPlayerRelease(uintptr(player))
	deleteVideoRoute(player)
}

func (*LibVLC) NewMediaPath(instance Handle, path string) Handle {
	return Handle(libvlcMediaNewPath(uintptr(instance), path))
}

func (*LibVLC) NewMediaLocation(instance Handle, location string) Handle {
	return Handle(libvlcMediaNewLocation(uintptr(instance), location))
}

func (*LibVLC) AddMediaOption(media Handle, option string) {
	libvlcMediaAddOption(uintptr(media), option)
}

func (*LibVLC) ReleaseMedia(media Handle) {
	if media != 0 {
		libvlcMediaRelease(uintptr(media))
	}
}

func (*LibVLC) SetMedia(player, media Handle) {
	libvlcMediaPlayerSetMedia(uintptr(player), uintptr(media))
}

func (*LibVLC) ParseMedia(media Handle) {
	libvlcMediaParse(uintptr(media))
}

func (*LibVLC) VideoSize(player Handle, num uint) (int, int, error) {
	size := &vlcVideoSize{}
	ret := libvlcVideoGetSize(uintptr(player), uint32(num),
		uintptr(unsafe.Pointer(&size.Width)), uintptr(unsafe.Pointer(&size.Height)))
	runtime.KeepAlive(size)
	if ret != 0 {
		return 0, 0, fmt.Errorf("libvlc_video_get_size: no video track %d", num)
	}
	return int(size.Width), int(size.Height), nil
}

func (*LibVLC) SetVideoFormat(player Handle, chroma string, width, height, pitch int) {
	setVideoFormatSize(player, pitch, height)
	libvlcVideoSetFormat(uintptr(player), chroma, uint32(width), uint32(height), uint32(pitch))
}

func (*LibVLC) SetVideoCallbacks(player Handle, sink VideoSink) {
	if player == 0 {
		return
	}
	id, created := setVideoRoute(player, sink)
	if !created {
		return
	}
	initVLCCallbacks()
	libvlcVideoSetCallbacks(uintptr(player), vlcLockCallback, 0, vlcDisplayCallback, id)
}

func (*LibVLC) Play(player Handle) error {
	if libvlcMediaPlayerPlay(uintptr(player)) != 0 {
		return fmt.Errorf("libvlc_media_player_play: %s", libvlcError())
	}
	return nil
}

func (*LibVLC) IsPlaying(player Handle) bool {
	return libvlcMediaPlayerIsPlaying(uintptr(player)) != 0
}

func (*LibVLC) Stop(player Handle) {
	libvlcMediaPlayerStop(uintptr(player))
}

func (*LibVLC) Pause(player Handle) {
	libvlcMediaPlayerPause(uintptr(player))
}

func (*LibVLC) AllocPicture(size int) []byte {
	return cMalloc(size)
}

func (*LibVLC) FreePicture(picture []byte) {
	cFree(picture)
}

func (*LibVLC) Version() string {
	if err := loadLibVLC(); err != nil {
		return ""
	}
	return cString(libvlcGetVersion())
}
