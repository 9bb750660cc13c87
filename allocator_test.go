package vkobj

import (
	"testing"
	"unsafe"

	"github.com/andewx/vkobj/internal/fakevk"
	"github.com/andewx/vkobj/internal/native"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

type recordingHost struct {
	block   [64]byte
	sizes   []uintptr
	scopes  []vk.SystemAllocationScope
	freed   int
	resized int
}

func (h *recordingHost) Allocate(size, alignment uintptr, scope vk.SystemAllocationScope) unsafe.Pointer {
	h.sizes = append(h.sizes, size)
	h.scopes = append(h.scopes, scope)
	return unsafe.Pointer(&h.block[0])
}

func (h *recordingHost) Reallocate(original unsafe.Pointer, size, alignment uintptr, scope vk.SystemAllocationScope) unsafe.Pointer {
	h.resized++
	return original
}

func (h *recordingHost) Free(memory unsafe.Pointer) {
	h.freed++
}

func TestHostAllocatorRouting(t *testing.T) {
	h := &recordingHost{}
	id := registerHost(h)
	defer unregisterHost(id)

	p := hostAllocate(id, 32, 8, uintptr(vk.SystemAllocationScopeObject))
	assert.Equal(t, uintptr(unsafe.Pointer(&h.block[0])), p)
	assert.Equal(t, []uintptr{32}, h.sizes)
	assert.Equal(t, []vk.SystemAllocationScope{vk.SystemAllocationScopeObject}, h.scopes)

	assert.Equal(t, p, hostReallocate(id, p, 48, 8, uintptr(vk.SystemAllocationScopeObject)))
	assert.Equal(t, 1, h.resized)
	hostFree(id, p)
	assert.Equal(t, 1, h.freed)

	unknown := id + 1000
	assert.Zero(t, hostAllocate(unknown, 32, 8, 0))
	assert.Zero(t, hostReallocate(unknown, p, 32, 8, 0))
	hostFree(unknown, p)
	assert.Equal(t, 1, h.freed)
}

func TestSetAllocatorCopies(t *testing.T) {
	var r resource
	assert.Nil(t, r.Allocator())

	cb := &AllocationCallbacks{UserData: 7, Allocation: 0x10, Reallocation: 0x20, Free: 0x30}
	r.SetAllocator(cb)
	cb.UserData = 8
	got := r.Allocator()
	require.NotNil(t, got)
	assert.Equal(t, uintptr(7), got.UserData)
	assert.Equal(t, uintptr(0x30), got.Free)
	assert.NotZero(t, r.callbacks.addr())

	r.SetAllocator(nil)
	assert.Nil(t, r.Allocator())
	assert.Zero(t, r.callbacks.addr())
}

func TestAllocatorInheritance(t *testing.T) {
	d := fakevk.New()
	id := registerHost(&recordingHost{})
	defer unregisterHost(id)
	cb := &AllocationCallbacks{UserData: id, Allocation: 0x10, Reallocation: 0x20, Free: 0x30}

	var seen []uintptr
	d.Handle("vkCreateFence", func(args []uintptr) vk.Result {
		require.NotZero(t, args[2])
		seen = append(seen, fakevk.Arg[native.AllocationCallbacks](args, 2).PUserData)
		*fakevk.Arg[uint64](args, 3) = d.NewHandle()
		return vk.Success
	})

	inst, err := CreateInstance(d, &InstanceCreateInfo{}, cb)
	require.NoError(t, err)
	defer inst.Destroy()
	create, ok := d.Last("vkCreateInstance")
	require.True(t, ok)
	assert.NotZero(t, create.Args[1])

	gpus, err := inst.EnumeratePhysicalDevices()
	require.NoError(t, err)
	dev, err := gpus[0].CreateDevice(&DeviceCreateInfo{
		QueueCreateInfos: []DeviceQueueCreateInfo{{QueuePriorities: []float32{1}}},
	})
	require.NoError(t, err)
	defer dev.Destroy()
	require.NotNil(t, dev.Allocator())
	assert.Equal(t, id, dev.Allocator().UserData)

	fence, err := dev.CreateFence(false)
	require.NoError(t, err)
	assert.Equal(t, []uintptr{id}, seen)

	fence.Destroy()
	destroy, ok := d.Last("vkDestroyFence")
	require.True(t, ok)
	assert.NotZero(t, destroy.Args[2])
	assert.Nil(t, fence.Allocator())

	// A child can opt out of the inherited callbacks.
	plain, err := dev.CreateFence(false)
	require.NoError(t, err)
	plain.SetAllocator(nil)
	plain.Destroy()
	destroy, _ = d.Last("vkDestroyFence")
	assert.Zero(t, destroy.Args[2])
}
