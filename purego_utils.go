//go:build (darwin || linux) && !libvlc_cgo

// Shared helpers for the purego libVLC binding.

package vlcframe

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

var (
	libcOnce    sync.Once
	libcHandle  uintptr
	libcInitErr error
)

// libc function pointers
var (
	libcMalloc func(size uintptr) uintptr
	libcFree   func(ptr uintptr)
)

func loadLibc() error {
	libcOnce.Do(func() {
		name := "libc.so.6"
		if runtime.GOOS == "darwin" {
			name = "/usr/lib/libSystem.B.dylib"
		}

		handle, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			libcInitErr = fmt.Errorf("failed to load %s: %w", name, err)
			return
		}
		libcHandle = handle

		purego.RegisterLibFunc(&libcMalloc, libcHandle, "malloc")
		purego.RegisterLibFunc(&libcFree, libcHandle, "free")
	})
	return libcInitErr
}

// cMalloc returns size bytes of C memory as a slice, or nil.
func cMalloc(size int) []byte {
	if size <= 0 || loadLibc() != nil {
		return nil
	}
	ptr := libcMalloc(uintptr(size))
	if ptr == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), size)
}

// cFree releases memory returned by cMalloc.
func cFree(buf []byte) {
	if len(buf) == 0 || loadLibc() != nil {
		return
	}
	libcFree(uintptr(unsafe.Pointer(unsafe.SliceData(buf))))
}

// cStringArray copies strs into C memory as a char** array of C strings.
// The returned function frees everything; it is safe to call on an empty array.
func cStringArray(strs []string) (uintptr, func()) {
	if len(strs) == 0 {
		return 0, func() {}
	}

	ptrSize := int(unsafe.Sizeof(uintptr(0)))
	array := cMalloc(len(strs) * ptrSize)
	if array == nil {
		return 0, func() {}
	}

	strBufs := make([][]byte, 0, len(strs))
	for i, s := range strs {
		buf := cMalloc(len(s) + 1)
		if buf == nil {
			break
		}
		copy(buf, s)
		buf[len(s)] = 0
		strBufs = append(strBufs, buf)
		*(*uintptr)(unsafe.Pointer(&array[i*ptrSize])) = uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	}

	free := func() {
		for _, buf := range strBufs {
			cFree(buf)
		}
		cFree(array)
	}
	if len(strBufs) != len(strs) {
		free()
		return 0, func() {}
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(array))), free
}

// cString copies the NUL-terminated string at ptr.
func cString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	start := unsafe.Pointer(ptr)
	n := 0
	for *(*byte)(unsafe.Add(start, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(start), n))
}

// findModuleRoot walks up the directory tree from the current working directory
// to find the module root (directory containing go.mod).
func findModuleRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findGoModUp(wd)
}

// findSourceRoot returns the module root of this source file, which is
// only meaningful when running from a checkout (tests, go run).
func findSourceRoot() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	return findGoModUp(filepath.Dir(file))
}

func findGoModUp(dir string) string {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
