//go:build libvlc_cgo

// libVLC engine linked with CGO.

package vlcframe

/*
#cgo pkg-config: libvlc

#include <stdint.h>
#include <stdlib.h>
#include <vlc/vlc.h>

extern void *goVLCLockCgo(void *opaque, void **planes);
extern void goVLCDisplayCgo(void *opaque, void *picture);

static void vlcframe_set_callbacks(libvlc_media_player_t *mp, uintptr_t id) {
	libvlc_video_set_callbacks(mp, goVLCLockCgo, NULL, goVLCDisplayCgo, (void *)id);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"unsafe"
)

// IsLibVLCAvailable checks if libvlc is available.
func IsLibVLCAvailable() bool {
	return true
}

func libvlcError() string {
	if msg := C.libvlc_errmsg(); msg != nil {
		return C.GoString(msg)
	}
	return "unknown error"
}

// LibVLC implements Engine on top of the linked libVLC.
type LibVLC struct{}

var _ Engine = (*LibVLC)(nil)

// NewLibVLC returns the libVLC engine.
func NewLibVLC() *LibVLC {
	return &LibVLC{}
}

func (*LibVLC) NewInstance(args []string) (Handle, error) {
	var argv **C.char
	if len(args) > 0 {
		ptrSize := C.size_t(unsafe.Sizeof((*C.char)(nil)))
		arr := (*C.char)(C.malloc(C.size_t(len(args)) * ptrSize))
		if arr == nil {
			return 0, errors.New("unable to allocate libvlc arguments")
		}
		defer C.free(unsafe.Pointer(arr))

		items := unsafe.Slice((**C.char)(unsafe.Pointer(arr)), len(args))
		for i, arg := range args {
			items[i] = C.CString(arg)
		}
		defer func() {
			for _, item := range items {
				C.free(unsafe.Pointer(item))
			}
		}()
		argv = (**C.char)(unsafe.Pointer(arr))
	}

	instance := C.libvlc_new(C.int(len(args)), argv)
	if instance == nil {
		return 0, fmt.Errorf("libvlc_new: %s", libvlcError())
	}
	return Handle(unsafe.Pointer(instance)), nil
}

func (*LibVLC) ReleaseInstance(instance Handle) {
	if instance != 0 {
		C.libvlc_release(cInstance(instance))
	}
}

func (*LibVLC) NewPlayer(instance Handle) (Handle, error) {
	player := C.libvlc_media_player_new(cInstance(instance))
	if player == nil {
		return 0, fmt.Errorf("libvlc_media_player_new: %s", libvlcError())
	}
	return Handle(unsafe.Pointer(player)), nil
}

func (*LibVLC) ReleasePlayer(player Handle) {
	if player == 0 {
		return
	}
	// Releasing the player joins its decode thread; the route must outlive it.
	C.libvlc_media_player_release(cPlayer(player))
	deleteVideoRoute(player)
}

func (*LibVLC) NewMediaPath(instance Handle, path string) Handle {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	return Handle(unsafe.Pointer(C.libvlc_media_new_path(cInstance(instance), cpath)))
}

func (*LibVLC) NewMediaLocation(instance Handle, location string) Handle {
	cloc := C.CString(location)
	defer C.free(unsafe.Pointer(cloc))
	return Handle(unsafe.Pointer(C.libvlc_media_new_location(cInstance(instance), cloc)))
}

func (*LibVLC) AddMediaOption(media Handle, option string) {
	copt := C.CString(option)
	defer C.free(unsafe.Pointer(copt))
	C.libvlc_media_add_option(cMedia(media), copt)
}

func (*LibVLC) ReleaseMedia(media Handle) {
	if media != 0 {
		C.libvlc_media_release(cMedia(media))
	}
}

func (*LibVLC) SetMedia(player, media Handle) {
	C.libvlc_media_player_set_media(cPlayer(player), cMedia(media))
}

func (*LibVLC) ParseMedia(media Handle) {
	C.libvlc_media_parse(cMedia(media))
}

func (*LibVLC) VideoSize(player Handle, num uint) (int, int, error) {
	var width, height C.uint
	if C.libvlc_video_get_size(cPlayer(player), C.uint(num), &width, &height) != 0 {
		return 0, 0, fmt.Errorf("libvlc_video_get_size: no video track %d", num)
	}
	return int(width), int(height), nil
}

func (*LibVLC) SetVideoFormat(player Handle, chroma string, width, height, pitch int) {
	setVideoFormatSize(player, pitch, height)
	cchroma := C.CString(chroma)
	defer C.free(unsafe.Pointer(cchroma))
	C.libvlc_video_set_format(cPlayer(player), cchroma, C.uint(width), C.uint(height), C.uint(pitch))
}

func (*LibVLC) SetVideoCallbacks(player Handle, sink VideoSink) {
	if player == 0 {
		return
	}
	if id, created := setVideoRoute(player, sink); created {
		C.vlcframe_set_callbacks(cPlayer(player), C.uintptr_t(id))
	}
}

func (*LibVLC) Play(player Handle) error {
	if C.libvlc_media_player_play(cPlayer(player)) != 0 {
		return fmt.Errorf("libvlc_media_player_play: %s", libvlcError())
	}
	return nil
}

func (*LibVLC) IsPlaying(player Handle) bool {
	return C.libvlc_media_player_is_playing(cPlayer(player)) != 0
}

func (*LibVLC) Stop(player Handle) {
	C.libvlc_media_player_stop(cPlayer(player))
}

func (*LibVLC) Pause(player Handle) {
	C.libvlc_media_player_pause(cPlayer(player))
}

func (*LibVLC) AllocPicture(size int) []byte {
	return vlcAlloc(size)
}

func (*LibVLC) FreePicture(picture []byte) {
	vlcFree(picture)
}

func (*LibVLC) Version() string {
	return C.GoString(C.libvlc_get_version())
}

func cInstance(h Handle) *C.libvlc_instance_t {
	return (*C.libvlc_instance_t)(unsafe.Pointer(h))
}

func cPlayer(h Handle) *C.libvlc_media_player_t {
	return (*C.libvlc_media_player_t)(unsafe.Pointer(h))
}

func cMedia(h Handle) *C.libvlc_media_t {
	return (*C.libvlc_media_t)(unsafe.Pointer(h))
}

func vlcAlloc(size int) []byte {
	if size <= 0 {
		return nil
	}
	ptr := C.malloc(C.size_t(size))
	if ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(ptr), size)
}

func vlcFree(buf []byte) {
	if len(buf) > 0 {
		C.free(unsafe.Pointer(unsafe.SliceData(buf)))
	}
}
