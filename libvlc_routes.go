//go:build darwin || linux || libvlc_cgo

package vlcframe

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

// vlcVideoRoute connects the video callbacks of one native player to a
// sink. It lives until the native player is released, so the lock callback
// always has a decode target, even with the sink detached or out of memory.
type vlcVideoRoute struct {
	mu      sync.Mutex
	sink    VideoSink
	scratch []byte // decoded into and dropped when the sink has no buffer
}

// The callbacks are process-wide; the opaque value selects the route.
var (
	vlcRoutes       sync.Map // opaque id -> *vlcVideoRoute
	vlcPlayerRoutes sync.Map // player Handle -> opaque id
	vlcPictureSizes sync.Map // player Handle -> picture size in bytes
	vlcNextRouteID  atomic.Uintptr
)

// setVideoFormatSize records the picture size of player. It must be set
// before the route is created.
func setVideoFormatSize(player Handle, pitch, height int) {
	vlcPictureSizes.Store(player, pitch*height)
}

// setVideoRoute points the route of player at sink. The second result
// reports whether the route was created and the native callbacks still
// have to be installed with the returned id.
func setVideoRoute(player Handle, sink VideoSink) (uintptr, bool) {
	if v, ok := vlcPlayerRoutes.Load(player); ok {
		id := v.(uintptr)
		if r, ok := vlcRoutes.Load(id); ok {
			r.(*vlcVideoRoute).setSink(sink)
			return id, false
		}
	}
	if sink == nil {
		return 0, false
	}

	var size int
	if v, ok := vlcPictureSizes.Load(player); ok {
		size = v.(int)
	}
	route := &vlcVideoRoute{sink: sink, scratch: vlcAlloc(size)}
	id := vlcNextRouteID.Add(1)
	vlcRoutes.Store(id, route)
	vlcPlayerRoutes.Store(player, id)
	return id, true
}

// deleteVideoRoute forgets player. Call it only once the native player is
// released and no callback can run.
func deleteVideoRoute(player Handle) {
	vlcPictureSizes.Delete(player)
	id, ok := vlcPlayerRoutes.LoadAndDelete(player)
	if !ok {
		return
	}
	if r, ok := vlcRoutes.LoadAndDelete(id); ok {
		vlcFree(r.(*vlcVideoRoute).scratch)
	}
}

func lookupVideoRoute(id uintptr) *vlcVideoRoute {
	if r, ok := vlcRoutes.Load(id); ok {
		return r.(*vlcVideoRoute)
	}
	return nil
}

func (r *vlcVideoRoute) setSink(sink VideoSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sink = sink
}

func (r *vlcVideoRoute) currentSink() VideoSink {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sink
}

// lock returns the buffer the next picture is decoded into.
func (r *vlcVideoRoute) lock() unsafe.Pointer {
	if sink := r.currentSink(); sink != nil {
		if buf := sink.LockFrame(); len(buf) > 0 {
			return unsafe.Pointer(unsafe.SliceData(buf))
		}
	}
	return unsafe.Pointer(unsafe.SliceData(r.scratch))
}

func (r *vlcVideoRoute) display(picture unsafe.Pointer) {
	if picture == nil || picture == unsafe.Pointer(unsafe.SliceData(r.scratch)) {
		return
	}
	if sink := r.currentSink(); sink != nil {
		sink.DisplayFrame(picture)
	}
}
