// Package native holds the fixed-layout mirrors of the Vulkan C structures
// and the pinned allocation arena used to marshal Go values into them.
//
// Every struct in this package must match the C declaration byte for byte on
// 64-bit targets: field order, width and alignment. Pointer fields always
// point at memory handed out by an Arena, never at ordinary Go memory.
package native

import (
	"runtime"
	"unsafe"
)

// Arena hands out Go memory that is pinned for the duration of one native
// call. Nothing is released until Free; after Free the arena is empty and may
// be reused.
type Arena struct {
	pinner runtime.Pinner
	live   int
}

// New returns a pinned zero value of T.
func New[T any](a *Arena) *T {
	p := new(T)
	a.pinner.Pin(p)
	a.live++
	return p
}

// Make returns a pinned zeroed slice of n elements, or nil when n is zero.
func Make[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	s := make([]T, n)
	a.pinner.Pin(&s[0])
	a.live++
	return s
}

// Slice copies src into pinned storage and returns a pointer to the first
// element. An empty src yields nil so the matching count field reads zero.
func Slice[T any](a *Arena, src []T) *T {
	if len(src) == 0 {
		return nil
	}
	dst := Make[T](a, len(src))
	copy(dst, src)
	return &dst[0]
}

// CString copies s into pinned NUL-terminated storage.
func (a *Arena) CString(s string) *byte {
	b := Make[byte](a, len(s)+1)
	copy(b, s)
	return &b[0]
}

// CStrings builds a pinned char** array. Nil for an empty list.
func (a *Arena) CStrings(list []string) **byte {
	if len(list) == 0 {
		return nil
	}
	ptrs := Make[*byte](a, len(list))
	for i, s := range list {
		ptrs[i] = a.CString(s)
	}
	return &ptrs[0]
}

// Bytes copies b into pinned storage.
func (a *Arena) Bytes(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(Slice(a, b))
}

// Outstanding reports how many allocations are pinned and not yet freed.
func (a *Arena) Outstanding() int {
	return a.live
}

// Free unpins every allocation. Calling it on an empty arena does nothing.
func (a *Arena) Free() {
	if a.live == 0 {
		return
	}
	a.pinner.Unpin()
	a.live = 0
}

// Addr is the integer address of p, used as a native call argument.
func Addr[T any](p *T) uintptr {
	return uintptr(unsafe.Pointer(p))
}

// At reinterprets a native call argument as a pointer to T.
func At[T any](addr uintptr) *T {
	return (*T)(unsafe.Pointer(addr))
}

// View returns the n elements starting at p without copying.
func View[T any](p *T, n uint32) []T {
	if p == nil || n == 0 {
		return nil
	}
	return unsafe.Slice(p, int(n))
}

// GoString reads a NUL-terminated string from a fixed char array.
func GoString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// CStringAt reads a NUL-terminated string from native memory.
func CStringAt(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}
