package vkobj

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Context bundles a device queue with the managers that recycle command
// buffers and fences for it. Every submission gets a fence from the fence
// manager; Recycle waits for all of them before buffers are reused.
// A Context is not thread-safe; secondary buffers are handed out per worker
// index so each worker records into its own pool.
type Context struct {
	device    *Device
	queue     *Queue
	fences    *FenceManager
	primary   *CommandBufferManager
	secondary []*CommandBufferManager
}

// NewContext creates a context submitting to queue.
func NewContext(device *Device, queue *Queue) (*Context, error) {
	m, err := NewCommandBufferManager(device, vk.CommandBufferLevelPrimary, queue.Family())
	if err != nil {
		return nil, err
	}
	return &Context{
		device:  device,
		queue:   queue,
		fences:  NewFenceManager(device),
		primary: m,
	}, nil
}

func (c *Context) Device() *Device {
	return c.device
}

func (c *Context) Queue() *Queue {
	return c.queue
}

// NewPrimaryCommandBuffer gets a new or reset primary command buffer. It is
// valid until the next Recycle.
func (c *Context) NewPrimaryCommandBuffer() (*CommandBuffer, error) {
	return c.primary.NewCommandBuffer()
}

// NewSecondaryCommandBuffer gets a new or reset secondary command buffer for
// worker threadIndex in [0, N), N set by SetRenderingThreadCount.
func (c *Context) NewSecondaryCommandBuffer(threadIndex int) (*CommandBuffer, error) {
	if threadIndex < 0 || threadIndex >= len(c.secondary) {
		return nil, errors.Errorf("vulkan: thread index %d outside [0, %d)", threadIndex, len(c.secondary))
	}
	return c.secondary[threadIndex].NewCommandBuffer()
}

// SetRenderingThreadCount replaces the per-worker secondary managers. It
// waits for the queue to go idle first.
func (c *Context) SetRenderingThreadCount(count int) error {
	if err := c.queue.WaitIdle(); err != nil {
		return err
	}
	for _, m := range c.secondary {
		m.Destroy()
	}
	c.secondary = c.secondary[:0]
	for i := 0; i < count; i++ {
		m, err := NewCommandBufferManager(c.device, vk.CommandBufferLevelSecondary, c.queue.Family())
		if err != nil {
			return err
		}
		c.secondary = append(c.secondary, m)
	}
	return nil
}

// Submit submits cmd with a managed fence and no semaphores.
func (c *Context) Submit(cmd *CommandBuffer) error {
	return c.SubmitWith(cmd, nil, nil, nil)
}

// SubmitWith submits cmd waiting on wait at the matching stages and
// signalling signal when done.
func (c *Context) SubmitWith(cmd *CommandBuffer, wait []*Semaphore, stages []vk.PipelineStageFlags, signal []*Semaphore) error {
	if len(wait) != len(stages) {
		return errors.Errorf("vulkan: %d wait semaphores with %d stage masks", len(wait), len(stages))
	}
	fence, err := c.fences.NewFence()
	if err != nil {
		return err
	}
	return c.queue.Submit([]SubmitInfo{{
		WaitSemaphores:   wait,
		WaitDstStageMask: stages,
		CommandBuffers:   []*CommandBuffer{cmd},
		SignalSemaphores: signal,
	}}, fence)
}

// Recycle waits for every submission since the last call and makes all
// handed out command buffers reusable.
func (c *Context) Recycle() error {
	if err := c.fences.Reset(); err != nil {
		return err
	}
	c.primary.Reset()
	for _, m := range c.secondary {
		m.Reset()
	}
	return nil
}

// Destroy waits for outstanding work and destroys the managers.
func (c *Context) Destroy() {
	c.fences.Destroy()
	c.primary.Destroy()
	for _, m := range c.secondary {
		m.Destroy()
	}
	c.secondary = nil
}
