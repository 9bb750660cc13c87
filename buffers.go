package vkobj

import (
	"github.com/andewx/vkobj/internal/native"
	vk "github.com/vulkan-go/vulkan"
)

// BufferCreateInfo mirrors VkBufferCreateInfo. QueueFamilyIndices is only
// read for concurrent sharing.
type BufferCreateInfo struct {
	Flags              vk.BufferCreateFlags
	Size               uint64
	Usage              vk.BufferUsageFlags
	SharingMode        vk.SharingMode
	QueueFamilyIndices []uint32
}

func (ci *BufferCreateInfo) toNative(a *native.Arena) *native.BufferCreateInfo {
	n := native.New[native.BufferCreateInfo](a)
	n.SType = sType(vk.StructureTypeBufferCreateInfo)
	n.Flags = uint32(ci.Flags)
	n.Size = ci.Size
	n.Usage = uint32(ci.Usage)
	n.SharingMode = int32(ci.SharingMode)
	n.QueueFamilyIndexCount = uint32(len(ci.QueueFamilyIndices))
	n.PQueueFamilyIndices = native.Slice(a, ci.QueueFamilyIndices)
	return n
}

// Buffer wraps VkBuffer.
type Buffer struct {
	resource
	device *Device
	handle Handle
	size   uint64
}

func (d *Device) CreateBuffer(info *BufferCreateInfo) (*Buffer, error) {
	b := &Buffer{resource: resource{kind: "buffer"}, device: d, size: info.Size}
	b.SetAllocator(d.Allocator())

	var a native.Arena
	defer a.Free()
	h, err := d.createHandle("vkCreateBuffer", native.Addr(info.toNative(&a)), b.callbacks.addr(), &a)
	if err != nil {
		return nil, err
	}
	b.handle = h
	watch(b)
	return b, nil
}

func (b *Buffer) Handle() Handle {
	return b.handle
}

// Size returns the size the buffer was created with.
func (b *Buffer) Size() uint64 {
	return b.size
}

func (b *Buffer) MemoryRequirements() MemoryRequirements {
	return memoryRequirements(b.device.cmds, "vkGetBufferMemoryRequirements", b.device.handle, b.handle)
}

// BindMemory binds mem at offset to the buffer.
func (b *Buffer) BindMemory(mem *DeviceMemory, offset uint64) error {
	return b.device.cmds.check("vkBindBufferMemory",
		b.device.handle, uintptr(b.handle), uintptr(mem.handle), uintptr(offset))
}

func (b *Buffer) Destroy() {
	b.release(func(alloc uintptr) {
		b.device.destroyHandle("vkDestroyBuffer", b.handle, alloc)
	})
}

// HostBuffer is a buffer with its own host-visible, coherent memory bound
// at offset zero, e.g. one uniform buffer per frame in flight.
type HostBuffer struct {
	*Buffer
	Memory *DeviceMemory
}

// NewHostBuffer creates a buffer of size bytes for usage and binds freshly
// allocated host-visible memory to it.
func NewHostBuffer(d *Device, size uint64, usage vk.BufferUsageFlags) (*HostBuffer, error) {
	buf, err := d.CreateBuffer(&BufferCreateInfo{
		Size:        size,
		Usage:       usage,
		SharingMode: vk.SharingModeExclusive,
	})
	if err != nil {
		return nil, err
	}
	props := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)
	mem, err := d.AllocateFor(buf.MemoryRequirements(), props)
	if err != nil {
		buf.Destroy()
		return nil, err
	}
	if err := buf.BindMemory(mem, 0); err != nil {
		mem.Destroy()
		buf.Destroy()
		return nil, err
	}
	return &HostBuffer{Buffer: buf, Memory: mem}, nil
}

// Upload copies data into the start of the buffer memory.
func (h *HostBuffer) Upload(data []byte) error {
	dst, err := h.Memory.Map(0, WholeSize)
	if err != nil {
		return err
	}
	copy(dst, data)
	h.Memory.Unmap()
	return nil
}

// Destroy destroys the buffer, then frees its memory.
func (h *HostBuffer) Destroy() {
	h.Buffer.Destroy()
	h.Memory.Destroy()
}
