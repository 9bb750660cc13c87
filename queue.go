package vkobj

import (
	"github.com/andewx/vkobj/internal/native"
	vk "github.com/vulkan-go/vulkan"
)

// Queue wraps VkQueue. Queues are retrieved, not created, and are released
// with their device.
type Queue struct {
	device *Device
	family uint32
	handle uintptr
}

// SubmitInfo mirrors VkSubmitInfo. WaitDstStageMask must have one entry per
// wait semaphore.
type SubmitInfo struct {
	WaitSemaphores   []*Semaphore
	WaitDstStageMask []vk.PipelineStageFlags
	CommandBuffers   []*CommandBuffer
	SignalSemaphores []*Semaphore
}

func (s *SubmitInfo) fill(a *native.Arena, n *native.SubmitInfo) {
	n.SType = sType(vk.StructureTypeSubmitInfo)
	n.WaitSemaphoreCount = uint32(len(s.WaitSemaphores))
	n.PWaitSemaphores = native.Slice(a, handles(s.WaitSemaphores))
	if len(s.WaitDstStageMask) > 0 {
		masks := native.Make[uint32](a, len(s.WaitDstStageMask))
		for i, m := range s.WaitDstStageMask {
			masks[i] = uint32(m)
		}
		n.PWaitDstStageMask = &masks[0]
	}
	n.CommandBufferCount = uint32(len(s.CommandBuffers))
	if len(s.CommandBuffers) > 0 {
		cbs := native.Make[uintptr](a, len(s.CommandBuffers))
		for i, cb := range s.CommandBuffers {
			cbs[i] = cb.handle
		}
		n.PCommandBuffers = &cbs[0]
	}
	n.SignalSemaphoreCount = uint32(len(s.SignalSemaphores))
	n.PSignalSemaphores = native.Slice(a, handles(s.SignalSemaphores))
}

func submitToNative(a *native.Arena, submits []SubmitInfo) *native.SubmitInfo {
	list := native.Make[native.SubmitInfo](a, len(submits))
	for i := range submits {
		submits[i].fill(a, &list[i])
	}
	if len(list) == 0 {
		return nil
	}
	return &list[0]
}

// Handle returns the VkQueue value.
func (q *Queue) Handle() uintptr {
	return q.handle
}

// Family returns the queue family index the queue belongs to.
func (q *Queue) Family() uint32 {
	return q.family
}

// Submit submits batches to the queue. fence may be nil.
func (q *Queue) Submit(submits []SubmitInfo, fence *Fence) error {
	var a native.Arena
	defer a.Free()
	var f Handle
	if fence != nil {
		f = fence.handle
	}
	return q.device.cmds.check("vkQueueSubmit",
		q.handle, uintptr(len(submits)), native.Addr(submitToNative(&a, submits)), uintptr(f))
}

// WaitIdle blocks until the queue has finished all submitted work.
func (q *Queue) WaitIdle() error {
	return q.device.cmds.check("vkQueueWaitIdle", q.handle)
}
