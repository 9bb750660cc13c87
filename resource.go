package vkobj

import (
	"runtime"
)

// Handle is a non-dispatchable native handle. Zero is VK_NULL_HANDLE.
type Handle uint64

// NullHandle is VK_NULL_HANDLE.
const NullHandle Handle = 0

// resource is embedded by every wrapper that owns a native object. It keeps
// the Live/Destroyed state and the host allocation callbacks the object was
// created with.
type resource struct {
	kind      string
	destroyed bool
	callbacks callbackBlock
}

// Destroyed reports whether the native object has been released.
func (r *resource) Destroyed() bool {
	return r.destroyed
}

// SetAllocator replaces the host allocation callbacks used for this object.
// The callbacks are copied; nil clears them.
func (r *resource) SetAllocator(cb *AllocationCallbacks) {
	r.callbacks.set(cb)
}

// Allocator returns a copy of the current allocation callbacks, or nil.
func (r *resource) Allocator() *AllocationCallbacks {
	return r.callbacks.get()
}

// release runs destroy exactly once with the address of the allocation
// callbacks, then drops them.
func (r *resource) release(destroy func(allocator uintptr)) {
	if r.destroyed {
		return
	}
	r.destroyed = true
	destroy(r.callbacks.addr())
	r.callbacks.free()
}

func (r *resource) leaked() (string, bool) {
	return r.kind, !r.destroyed
}

type tracked interface {
	leaked() (string, bool)
}

// watch attaches a finalizer that reports wrappers dropped while still live.
// The finalizer never releases the native object: by the time it runs the
// parent may already be gone.
func watch[T tracked](obj T) {
	runtime.SetFinalizer(obj, func(o T) {
		if kind, live := o.leaked(); live {
			warnLog.Printf("vulkan: %s collected without Destroy, native object leaked", kind)
		}
	})
}
