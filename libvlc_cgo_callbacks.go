//go:build libvlc_cgo

package vlcframe

// #include <stddef.h>
import "C"

import "unsafe"

//export goVLCLockCgo
func goVLCLockCgo(opaque unsafe.Pointer, planes *unsafe.Pointer) unsafe.Pointer {
	var picture unsafe.Pointer
	if route := lookupVideoRoute(uintptr(opaque)); route != nil {
		picture = route.lock()
	}
	*planes = picture
	return picture
}

//export goVLCDisplayCgo
func goVLCDisplayCgo(opaque unsafe.Pointer, picture unsafe.Pointer) {
	if route := lookupVideoRoute(uintptr(opaque)); route != nil {
		route.display(picture)
	}
}
