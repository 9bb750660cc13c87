package vkobj

import (
	"github.com/andewx/vkobj/internal/native"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// CommandPoolCreateInfo mirrors VkCommandPoolCreateInfo.
type CommandPoolCreateInfo struct {
	Flags            vk.CommandPoolCreateFlags
	QueueFamilyIndex uint32
}

// CommandPool wraps VkCommandPool.
type CommandPool struct {
	resource
	device *Device
	handle Handle
	family uint32
}

func (d *Device) CreateCommandPool(info *CommandPoolCreateInfo) (*CommandPool, error) {
	p := &CommandPool{resource: resource{kind: "command pool"}, device: d, family: info.QueueFamilyIndex}
	p.SetAllocator(d.Allocator())

	var a native.Arena
	defer a.Free()
	n := native.New[native.CommandPoolCreateInfo](&a)
	n.SType = sType(vk.StructureTypeCommandPoolCreateInfo)
	n.Flags = uint32(info.Flags)
	n.QueueFamilyIndex = info.QueueFamilyIndex
	h, err := d.createHandle("vkCreateCommandPool", native.Addr(n), p.callbacks.addr(), &a)
	if err != nil {
		return nil, err
	}
	p.handle = h
	watch(p)
	return p, nil
}

// ResettablePool creates a pool on family whose buffers can be reset
// individually.
func (d *Device) ResettablePool(family uint32) (*CommandPool, error) {
	return d.CreateCommandPool(&CommandPoolCreateInfo{
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
		QueueFamilyIndex: family,
	})
}

func (p *CommandPool) Handle() Handle {
	return p.handle
}

// Family returns the queue family the pool's buffers are submitted to.
func (p *CommandPool) Family() uint32 {
	return p.family
}

// Reset recycles every command buffer allocated from the pool.
func (p *CommandPool) Reset(flags vk.CommandPoolResetFlags) error {
	return p.device.cmds.check("vkResetCommandPool", p.device.handle, uintptr(p.handle), uintptr(flags))
}

// AllocateCommandBuffers allocates count buffers of level.
func (p *CommandPool) AllocateCommandBuffers(level vk.CommandBufferLevel, count int) ([]*CommandBuffer, error) {
	if count <= 0 {
		return nil, nil
	}
	var a native.Arena
	defer a.Free()
	n := native.New[native.CommandBufferAllocateInfo](&a)
	n.SType = sType(vk.StructureTypeCommandBufferAllocateInfo)
	n.CommandPool = uint64(p.handle)
	n.Level = int32(level)
	n.CommandBufferCount = uint32(count)
	out := native.Make[uintptr](&a, count)
	err := p.device.cmds.check("vkAllocateCommandBuffers",
		p.device.handle, native.Addr(n), native.Addr(&out[0]))
	if err != nil {
		return nil, err
	}
	cbs := make([]*CommandBuffer, count)
	for i, h := range out {
		cbs[i] = &CommandBuffer{pool: p, handle: h, level: level}
	}
	return cbs, nil
}

// FreeCommandBuffers returns buffers to the pool in a single call.
func (p *CommandPool) FreeCommandBuffers(buffers ...*CommandBuffer) error {
	var live []uintptr
	for _, cb := range buffers {
		if cb.pool != p {
			return errors.New("vulkan: command buffer belongs to another pool")
		}
		if !cb.freed {
			live = append(live, cb.handle)
			cb.freed = true
		}
	}
	if len(live) == 0 {
		return nil
	}
	var a native.Arena
	defer a.Free()
	p.device.cmds.void("vkFreeCommandBuffers",
		p.device.handle, uintptr(p.handle), uintptr(len(live)), native.Addr(native.Slice(&a, live)))
	return nil
}

// Destroy destroys the pool, which frees all of its buffers.
func (p *CommandPool) Destroy() {
	p.release(func(alloc uintptr) {
		p.device.destroyHandle("vkDestroyCommandPool", p.handle, alloc)
	})
}
