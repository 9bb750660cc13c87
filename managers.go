package vkobj

import (
	vk "github.com/vulkan-go/vulkan"
)

// FenceManager keeps track of fences which in turn are used to keep track of GPU progress.
// The manager is not thread-safe and for rendering in multiple threads, multiple per-thread managers
// should be used.
type FenceManager struct {
	device *Device
	fences []*Fence
	count  int
}

func NewFenceManager(device *Device) *FenceManager {
	return &FenceManager{
		device: device,
	}
}

// Reset waits for every outstanding fence, then resets them for reuse.
// After Reset returns it is safe to reuse or delete resources guarded by them.
func (f *FenceManager) Reset() error {
	if f.count > 0 {
		active := f.ActiveFences()
		if _, err := f.device.WaitForFences(active, true, Forever); err != nil {
			return err
		}
		if err := f.device.ResetFences(active...); err != nil {
			return err
		}
	}
	f.count = 0
	return nil
}

// NewFence returns a recycled unsignaled fence, creating one when all are in use.
func (f *FenceManager) NewFence() (*Fence, error) {
	if f.count < len(f.fences) {
		fence := f.fences[f.count]
		f.count++
		return fence, nil
	}
	fence, err := f.device.CreateFence(false)
	if err != nil {
		return nil, err
	}
	f.fences = append(f.fences, fence)
	f.count++
	return fence, nil
}

// ActiveFences returns the fences handed out since the last Reset.
func (f *FenceManager) ActiveFences() []*Fence {
	return f.fences[:f.count]
}

// Destroy waits for the active fences and destroys all of them.
func (f *FenceManager) Destroy() {
	if err := f.Reset(); err != nil {
		errorLog.Println(err)
	}
	for _, fence := range f.fences {
		fence.Destroy()
	}
	f.fences = nil
}

// CommandBufferManager allocates command buffers and recycles them for us.
// This gives us a convenient interface where we can request command buffers for use when rendering.
// The manager is not thread-safe and for rendering in multiple threads, multiple per-thread managers
// should be used.
type CommandBufferManager struct {
	pool    *CommandPool
	buffers []*CommandBuffer
	level   vk.CommandBufferLevel
	count   int
}

// NewCommandBufferManager creates a manager with its own resettable pool on
// the queue family familyIndex. level is vk.CommandBufferLevelPrimary or
// vk.CommandBufferLevelSecondary.
func NewCommandBufferManager(device *Device, level vk.CommandBufferLevel, familyIndex uint32) (*CommandBufferManager, error) {
	pool, err := device.ResettablePool(familyIndex)
	if err != nil {
		return nil, err
	}
	return &CommandBufferManager{
		pool:  pool,
		level: level,
	}, nil
}

// Reset resets the state of command buffer manager.
// When called, all managed command buffers are assumed to be recycleable.
func (c *CommandBufferManager) Reset() {
	c.count = 0
}

// Pool returns the pool the manager allocates from.
func (c *CommandBufferManager) Pool() *CommandPool {
	return c.pool
}

func (c *CommandBufferManager) Destroy() {
	if err := c.pool.FreeCommandBuffers(c.buffers...); err != nil {
		errorLog.Println(err)
	}
	c.pool.Destroy()
	c.buffers = nil
}

// NewCommandBuffer returns a fresh or recycled command buffer which is in the reset state.
func (c *CommandBufferManager) NewCommandBuffer() (*CommandBuffer, error) {
	if c.count < len(c.buffers) {
		buf := c.buffers[c.count]
		c.count++
		err := buf.Reset(vk.CommandBufferResetFlags(vk.CommandBufferResetReleaseResourcesBit))
		return buf, err
	}
	bufs, err := c.pool.AllocateCommandBuffers(c.level, 1)
	if err != nil {
		return nil, err
	}
	c.buffers = append(c.buffers, bufs[0])
	c.count++
	return bufs[0], nil
}
