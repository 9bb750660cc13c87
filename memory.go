package vkobj

import (
	"unsafe"

	"github.com/andewx/vkobj/internal/native"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// MemoryRequirements mirrors VkMemoryRequirements.
type MemoryRequirements struct {
	Size           uint64
	Alignment      uint64
	MemoryTypeBits uint32
}

// MemoryAllocateInfo mirrors VkMemoryAllocateInfo.
type MemoryAllocateInfo struct {
	AllocationSize  uint64
	MemoryTypeIndex uint32
}

// MappedMemoryRange mirrors VkMappedMemoryRange. Size may be WholeSize.
type MappedMemoryRange struct {
	Memory *DeviceMemory
	Offset uint64
	Size   uint64
}

func rangesToNative(a *native.Arena, ranges []MappedMemoryRange) *native.MappedMemoryRange {
	list := native.Make[native.MappedMemoryRange](a, len(ranges))
	for i, r := range ranges {
		list[i] = native.MappedMemoryRange{
			SType:  sType(vk.StructureTypeMappedMemoryRange),
			Memory: uint64(r.Memory.handle),
			Offset: r.Offset,
			Size:   r.Size,
		}
	}
	if len(list) == 0 {
		return nil
	}
	return &list[0]
}

// DeviceMemory wraps VkDeviceMemory.
type DeviceMemory struct {
	resource
	device *Device
	handle Handle
	size   uint64
	mapped []byte
}

// AllocateMemory allocates device memory.
func (d *Device) AllocateMemory(info *MemoryAllocateInfo) (*DeviceMemory, error) {
	m := &DeviceMemory{resource: resource{kind: "device memory"}, device: d, size: info.AllocationSize}
	m.SetAllocator(d.Allocator())

	var a native.Arena
	defer a.Free()
	n := native.New[native.MemoryAllocateInfo](&a)
	n.SType = sType(vk.StructureTypeMemoryAllocateInfo)
	n.AllocationSize = info.AllocationSize
	n.MemoryTypeIndex = info.MemoryTypeIndex
	h, err := d.createHandle("vkAllocateMemory", native.Addr(n), m.callbacks.addr(), &a)
	if err != nil {
		return nil, err
	}
	m.handle = h
	watch(m)
	return m, nil
}

// AllocateFor allocates memory sized for req from the first memory type that
// has all of props.
func (d *Device) AllocateFor(req MemoryRequirements, props vk.MemoryPropertyFlags) (*DeviceMemory, error) {
	index, ok := d.physical.MemoryProperties().FindMemoryType(req.MemoryTypeBits, props)
	if !ok {
		return nil, errors.Errorf("vulkan: no memory type with properties %#x in mask %#b", uint32(props), req.MemoryTypeBits)
	}
	return d.AllocateMemory(&MemoryAllocateInfo{AllocationSize: req.Size, MemoryTypeIndex: index})
}

func (m *DeviceMemory) Handle() Handle {
	return m.handle
}

// Size returns the allocation size in bytes.
func (m *DeviceMemory) Size() uint64 {
	return m.size
}

// Map maps [offset, offset+size) into host memory and returns it as a byte
// slice. size may be WholeSize. The slice is invalid after Unmap.
func (m *DeviceMemory) Map(offset, size uint64) ([]byte, error) {
	if m.mapped != nil {
		return nil, errors.New("vulkan: memory is already mapped")
	}
	if size == WholeSize {
		if offset > m.size {
			return nil, errors.Errorf("vulkan: map offset %d beyond allocation of %d bytes", offset, m.size)
		}
		size = m.size - offset
	}
	var a native.Arena
	defer a.Free()
	out := native.New[uintptr](&a)
	err := m.device.cmds.check("vkMapMemory",
		m.device.handle, uintptr(m.handle), uintptr(offset), uintptr(size), 0, native.Addr(out))
	if err != nil {
		return nil, err
	}
	m.mapped = unsafe.Slice((*byte)(unsafe.Pointer(*out)), int(size))
	return m.mapped, nil
}

// Mapped returns the current mapping, or nil.
func (m *DeviceMemory) Mapped() []byte {
	return m.mapped
}

func (m *DeviceMemory) Unmap() {
	if m.mapped == nil {
		return
	}
	m.device.cmds.void("vkUnmapMemory", m.device.handle, uintptr(m.handle))
	m.mapped = nil
}

// Flush makes host writes to [offset, offset+size) visible to the device.
func (m *DeviceMemory) Flush(offset, size uint64) error {
	return m.device.FlushMappedMemoryRanges(MappedMemoryRange{Memory: m, Offset: offset, Size: size})
}

// Invalidate makes device writes to [offset, offset+size) visible to the host.
func (m *DeviceMemory) Invalidate(offset, size uint64) error {
	return m.device.InvalidateMappedMemoryRanges(MappedMemoryRange{Memory: m, Offset: offset, Size: size})
}

// Free releases the allocation. It is the same as Destroy.
func (m *DeviceMemory) Free() {
	m.Destroy()
}

func (m *DeviceMemory) Destroy() {
	m.release(func(alloc uintptr) {
		m.mapped = nil
		m.device.destroyHandle("vkFreeMemory", m.handle, alloc)
	})
}

func (d *Device) FlushMappedMemoryRanges(ranges ...MappedMemoryRange) error {
	if len(ranges) == 0 {
		return nil
	}
	var a native.Arena
	defer a.Free()
	return d.cmds.check("vkFlushMappedMemoryRanges",
		d.handle, uintptr(len(ranges)), native.Addr(rangesToNative(&a, ranges)))
}

func (d *Device) InvalidateMappedMemoryRanges(ranges ...MappedMemoryRange) error {
	if len(ranges) == 0 {
		return nil
	}
	var a native.Arena
	defer a.Free()
	return d.cmds.check("vkInvalidateMappedMemoryRanges",
		d.handle, uintptr(len(ranges)), native.Addr(rangesToNative(&a, ranges)))
}

func memoryRequirements(c commands, name string, device uintptr, h Handle) MemoryRequirements {
	var a native.Arena
	defer a.Free()
	n := native.New[native.MemoryRequirements](&a)
	c.void(name, device, uintptr(h), native.Addr(n))
	return MemoryRequirements{Size: n.Size, Alignment: n.Alignment, MemoryTypeBits: n.MemoryTypeBits}
}
