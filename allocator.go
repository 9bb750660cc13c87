package vkobj

import (
	"sync"
	"unsafe"

	"github.com/andewx/vkobj/internal/native"
	"github.com/ebitengine/purego"
	vk "github.com/vulkan-go/vulkan"
)

// AllocationCallbacks mirrors VkAllocationCallbacks. The function fields are
// native function pointers; build them from Go with NewAllocationCallbacks.
type AllocationCallbacks struct {
	UserData           uintptr
	Allocation         uintptr
	Reallocation       uintptr
	Free               uintptr
	InternalAllocation uintptr
	InternalFree       uintptr
}

// HostAllocator serves host memory requests issued by the driver. Returned
// memory must not be managed by the Go heap.
type HostAllocator interface {
	Allocate(size, alignment uintptr, scope vk.SystemAllocationScope) unsafe.Pointer
	Reallocate(original unsafe.Pointer, size, alignment uintptr, scope vk.SystemAllocationScope) unsafe.Pointer
	Free(memory unsafe.Pointer)
}

var (
	hostMu   sync.RWMutex
	hosts    = make(map[uintptr]HostAllocator)
	nextHost uintptr = 1

	trampolineOnce sync.Once
	trampolines    [3]uintptr
)

// NewAllocationCallbacks registers h and returns callbacks that route the
// driver's requests to it. Call Release once no object uses them anymore.
func NewAllocationCallbacks(h HostAllocator) *AllocationCallbacks {
	trampolineOnce.Do(func() {
		trampolines[0] = purego.NewCallback(hostAllocate)
		trampolines[1] = purego.NewCallback(hostReallocate)
		trampolines[2] = purego.NewCallback(hostFree)
	})
	return &AllocationCallbacks{
		UserData:     registerHost(h),
		Allocation:   trampolines[0],
		Reallocation: trampolines[1],
		Free:         trampolines[2],
	}
}

// Release unregisters the HostAllocator behind callbacks built by
// NewAllocationCallbacks.
func (cb *AllocationCallbacks) Release() {
	unregisterHost(cb.UserData)
}

func registerHost(h HostAllocator) uintptr {
	hostMu.Lock()
	defer hostMu.Unlock()
	id := nextHost
	nextHost++
	hosts[id] = h
	return id
}

func lookupHost(id uintptr) HostAllocator {
	hostMu.RLock()
	defer hostMu.RUnlock()
	return hosts[id]
}

func unregisterHost(id uintptr) {
	hostMu.Lock()
	defer hostMu.Unlock()
	delete(hosts, id)
}

func hostAllocate(userData, size, alignment, scope uintptr) uintptr {
	h := lookupHost(userData)
	if h == nil {
		return 0
	}
	return uintptr(h.Allocate(size, alignment, vk.SystemAllocationScope(int32(scope))))
}

func hostReallocate(userData, original, size, alignment, scope uintptr) uintptr {
	h := lookupHost(userData)
	if h == nil {
		return 0
	}
	return uintptr(h.Reallocate(unsafe.Pointer(original), size, alignment, vk.SystemAllocationScope(int32(scope))))
}

func hostFree(userData, memory uintptr) uintptr {
	if h := lookupHost(userData); h != nil {
		h.Free(unsafe.Pointer(memory))
	}
	return 0
}

// callbackBlock is the per-object native copy of the allocation callbacks.
// The block holds no Go pointers, so it needs no pinning; keeping the
// reference is enough to keep the address valid.
type callbackBlock struct {
	block *native.AllocationCallbacks
}

func (b *callbackBlock) set(cb *AllocationCallbacks) {
	b.free()
	if cb == nil {
		return
	}
	b.block = &native.AllocationCallbacks{
		PUserData:             cb.UserData,
		PfnAllocation:         cb.Allocation,
		PfnReallocation:       cb.Reallocation,
		PfnFree:               cb.Free,
		PfnInternalAllocation: cb.InternalAllocation,
		PfnInternalFree:       cb.InternalFree,
	}
}

func (b *callbackBlock) get() *AllocationCallbacks {
	if b.block == nil {
		return nil
	}
	return &AllocationCallbacks{
		UserData:           b.block.PUserData,
		Allocation:         b.block.PfnAllocation,
		Reallocation:       b.block.PfnReallocation,
		Free:               b.block.PfnFree,
		InternalAllocation: b.block.PfnInternalAllocation,
		InternalFree:       b.block.PfnInternalFree,
	}
}

func (b *callbackBlock) addr() uintptr {
	if b.block == nil {
		return 0
	}
	return native.Addr(b.block)
}

func (b *callbackBlock) free() {
	b.block = nil
}
