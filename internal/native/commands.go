package native

import "unsafe"

type CommandPoolCreateInfo struct {
	SType            int32
	PNext            unsafe.Pointer
	Flags            uint32
	QueueFamilyIndex uint32
}

type CommandBufferAllocateInfo struct {
	SType              int32
	PNext              unsafe.Pointer
	CommandPool        uint64
	Level              int32
	CommandBufferCount uint32
}

type CommandBufferInheritanceInfo struct {
	SType                int32
	PNext                unsafe.Pointer
	RenderPass           uint64
	Subpass              uint32
	Framebuffer          uint64
	OcclusionQueryEnable uint32
	QueryFlags           uint32
	PipelineStatistics   uint32
}

type CommandBufferBeginInfo struct {
	SType            int32
	PNext            unsafe.Pointer
	Flags            uint32
	PInheritanceInfo *CommandBufferInheritanceInfo
}

// ClearValue is the VkClearValue union; color and depth/stencil share the
// same four words.
type ClearValue [4]uint32

type RenderPassBeginInfo struct {
	SType           int32
	PNext           unsafe.Pointer
	RenderPass      uint64
	Framebuffer     uint64
	RenderArea      Rect2D
	ClearValueCount uint32
	PClearValues    *ClearValue
}

type BufferCopy struct {
	SrcOffset uint64
	DstOffset uint64
	Size      uint64
}

type MemoryBarrier struct {
	SType         int32
	PNext         unsafe.Pointer
	SrcAccessMask uint32
	DstAccessMask uint32
}

type BufferMemoryBarrier struct {
	SType               int32
	PNext               unsafe.Pointer
	SrcAccessMask       uint32
	DstAccessMask       uint32
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Buffer              uint64
	Offset              uint64
	Size                uint64
}

type ImageMemoryBarrier struct {
	SType               int32
	PNext               unsafe.Pointer
	SrcAccessMask       uint32
	DstAccessMask       uint32
	OldLayout           int32
	NewLayout           int32
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Image               uint64
	SubresourceRange    ImageSubresourceRange
}
