package vlcframe

import (
	"errors"
	"sync"
	"unsafe"
)

// fakeEngine is an in-memory Engine that records every call.
type fakeEngine struct {
	mu sync.Mutex

	calls      []string
	nextHandle Handle
	live       map[Handle]string

	instanceErr error
	playerErr   error
	playErr     error
	failMedia   bool
	sizeErr     error
	width       int
	height      int

	playing     bool
	sink        VideoSink
	args        []string
	mediaSource string
	options     []string
	chroma      string
	format      [3]int // width, height, pitch

	pictures map[unsafe.Pointer]int
	allocErr bool // AllocPicture returns nil
	allocCut int  // AllocPicture returns this many bytes too few

	// State observed when ReleasePlayer ran.
	picturesAtRelease int
	sinkAtRelease     bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		nextHandle: 0x1000,
		live:       make(map[Handle]string),
		width:      64,
		height:     48,
		pictures:   make(map[unsafe.Pointer]int),
	}
}

var _ Engine = (*fakeEngine)(nil)

func (e *fakeEngine) record(call string) {
	e.calls = append(e.calls, call)
}

func (e *fakeEngine) acquire(kind string) Handle {
	e.nextHandle++
	e.live[e.nextHandle] = kind
	return e.nextHandle
}

func (e *fakeEngine) drop(h Handle) {
	delete(e.live, h)
}

func (e *fakeEngine) NewInstance(args []string) (Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("NewInstance")
	if e.instanceErr != nil {
		return 0, e.instanceErr
	}
	e.args = append([]string(nil), args...)
	return e.acquire("instance"), nil
}

func (e *fakeEngine) ReleaseInstance(instance Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("ReleaseInstance")
	e.drop(instance)
}

func (e *fakeEngine) NewPlayer(Handle) (Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("NewPlayer")
	if e.playerErr != nil {
		return 0, e.playerErr
	}
	return e.acquire("player"), nil
}

// ReleasePlayer behaves like libVLC: the decode thread is joined and the
// sink detached before it returns.
func (e *fakeEngine) ReleasePlayer(player Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("ReleasePlayer")
	e.picturesAtRelease = len(e.pictures)
	e.sinkAtRelease = e.sink != nil
	e.sink = nil
	e.playing = false
	e.drop(player)
}

func (e *fakeEngine) newMedia(call, source string) Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(call)
	if e.failMedia {
		return 0
	}
	e.mediaSource = source
	return e.acquire("media")
}

func (e *fakeEngine) NewMediaPath(_ Handle, path string) Handle {
	return e.newMedia("NewMediaPath", path)
}

func (e *fakeEngine) NewMediaLocation(_ Handle, location string) Handle {
	return e.newMedia("NewMediaLocation", location)
}

func (e *fakeEngine) AddMediaOption(_ Handle, option string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("AddMediaOption")
	e.options = append(e.options, option)
}

func (e *fakeEngine) ReleaseMedia(media Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("ReleaseMedia")
	e.drop(media)
}

func (e *fakeEngine) SetMedia(Handle, Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("SetMedia")
}

func (e *fakeEngine) ParseMedia(Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("ParseMedia")
}

func (e *fakeEngine) VideoSize(Handle, uint) (int, int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("VideoSize")
	if e.sizeErr != nil {
		return 0, 0, e.sizeErr
	}
	return e.width, e.height, nil
}

func (e *fakeEngine) SetVideoFormat(_ Handle, chroma string, width, height, pitch int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("SetVideoFormat")
	e.chroma = chroma
	e.format = [3]int{width, height, pitch}
}

func (e *fakeEngine) SetVideoCallbacks(_ Handle, sink VideoSink) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("SetVideoCallbacks")
	e.sink = sink
}

func (e *fakeEngine) Play(Handle) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("Play")
	if e.playErr != nil {
		return e.playErr
	}
	e.playing = true
	return nil
}

func (e *fakeEngine) IsPlaying(Handle) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("IsPlaying")
	return e.playing
}

func (e *fakeEngine) Stop(Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("Stop")
	e.playing = false
}

func (e *fakeEngine) Pause(Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("Pause")
	e.playing = !e.playing
}

func (e *fakeEngine) AllocPicture(size int) []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.allocErr {
		return nil
	}
	buf := make([]byte, size-e.allocCut)
	e.pictures[unsafe.Pointer(unsafe.SliceData(buf))] = size
	return buf
}

func (e *fakeEngine) FreePicture(picture []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.pictures, unsafe.Pointer(unsafe.SliceData(picture)))
}

func (e *fakeEngine) Version() string {
	return "fake 1.0"
}

// decode simulates one picture from the decode thread: lock, fill, display.
func (e *fakeEngine) decode(fill func(buf []byte)) error {
	e.mu.Lock()
	sink := e.sink
	e.mu.Unlock()
	if sink == nil {
		return errors.New("no sink registered")
	}

	buf := sink.LockFrame()
	if len(buf) == 0 {
		return errors.New("empty picture buffer")
	}
	fill(buf)
	sink.DisplayFrame(unsafe.Pointer(unsafe.SliceData(buf)))
	return nil
}

func (e *fakeEngine) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}

func (e *fakeEngine) LiveHandles() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.live)
}

func (e *fakeEngine) OutstandingPictures() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pictures)
}

func indexOf(calls []string, name string) int {
	for i, c := range calls {
		if c == name {
			return i
		}
	}
	return -1
}

func countOf(calls []string, name string) int {
	n := 0
	for _, c := range calls {
		if c == name {
			n++
		}
	}
	return n
}
