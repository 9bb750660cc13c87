package vkobj

import (
	"github.com/andewx/vkobj/internal/native"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// CommandBuffer wraps VkCommandBuffer. It is owned by its pool; Destroy
// frees it back to the pool.
type CommandBuffer struct {
	pool   *CommandPool
	handle uintptr
	level  vk.CommandBufferLevel
	freed  bool
}

// CommandBufferInheritanceInfo mirrors VkCommandBufferInheritanceInfo for
// secondary buffers.
type CommandBufferInheritanceInfo struct {
	RenderPass           *RenderPass
	Subpass              uint32
	Framebuffer          *Framebuffer
	OcclusionQueryEnable bool
	QueryFlags           vk.QueryControlFlags
	PipelineStatistics   vk.QueryPipelineStatisticFlags
}

// BufferCopy mirrors VkBufferCopy.
type BufferCopy struct {
	SrcOffset uint64
	DstOffset uint64
	Size      uint64
}

// MemoryBarrier mirrors VkMemoryBarrier.
type MemoryBarrier struct {
	SrcAccessMask vk.AccessFlags
	DstAccessMask vk.AccessFlags
}

// BufferMemoryBarrier mirrors VkBufferMemoryBarrier. Use QueueFamilyIgnored
// when no ownership transfer happens.
type BufferMemoryBarrier struct {
	SrcAccessMask       vk.AccessFlags
	DstAccessMask       vk.AccessFlags
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Buffer              *Buffer
	Offset              uint64
	Size                uint64
}

// ImageMemoryBarrier mirrors VkImageMemoryBarrier.
type ImageMemoryBarrier struct {
	SrcAccessMask       vk.AccessFlags
	DstAccessMask       vk.AccessFlags
	OldLayout           vk.ImageLayout
	NewLayout           vk.ImageLayout
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Image               *Image
	SubresourceRange    ImageSubresourceRange
}

// RenderPassBeginInfo mirrors VkRenderPassBeginInfo.
type RenderPassBeginInfo struct {
	RenderPass  *RenderPass
	Framebuffer *Framebuffer
	RenderArea  Rect2D
	ClearValues []ClearValue
}

func (cb *CommandBuffer) Handle() uintptr {
	return cb.handle
}

func (cb *CommandBuffer) Pool() *CommandPool {
	return cb.pool
}

func (cb *CommandBuffer) Level() vk.CommandBufferLevel {
	return cb.level
}

// Destroyed reports whether the buffer was freed back to its pool.
func (cb *CommandBuffer) Destroyed() bool {
	return cb.freed
}

func (cb *CommandBuffer) cmds() commands {
	return cb.pool.device.cmds
}

func (cb *CommandBuffer) record(name string, args ...uintptr) {
	cb.cmds().void(name, append([]uintptr{cb.handle}, args...)...)
}

// Begin starts recording. inheritance is only read for secondary buffers
// and may be nil.
func (cb *CommandBuffer) Begin(flags vk.CommandBufferUsageFlags, inheritance *CommandBufferInheritanceInfo) error {
	var a native.Arena
	defer a.Free()
	n := native.New[native.CommandBufferBeginInfo](&a)
	n.SType = sType(vk.StructureTypeCommandBufferBeginInfo)
	n.Flags = uint32(flags)
	if inh := inheritance; inh != nil {
		ni := native.New[native.CommandBufferInheritanceInfo](&a)
		ni.SType = sType(vk.StructureTypeCommandBufferInheritanceInfo)
		if inh.RenderPass != nil {
			ni.RenderPass = uint64(inh.RenderPass.handle)
		}
		ni.Subpass = inh.Subpass
		if inh.Framebuffer != nil {
			ni.Framebuffer = uint64(inh.Framebuffer.handle)
		}
		ni.OcclusionQueryEnable = bool32(inh.OcclusionQueryEnable)
		ni.QueryFlags = uint32(inh.QueryFlags)
		ni.PipelineStatistics = uint32(inh.PipelineStatistics)
		n.PInheritanceInfo = ni
	}
	return cb.cmds().check("vkBeginCommandBuffer", cb.handle, native.Addr(n))
}

func (cb *CommandBuffer) End() error {
	return cb.cmds().check("vkEndCommandBuffer", cb.handle)
}

// Reset returns the buffer to the initial state. The pool must allow
// individual resets.
func (cb *CommandBuffer) Reset(flags vk.CommandBufferResetFlags) error {
	return cb.cmds().check("vkResetCommandBuffer", cb.handle, uintptr(flags))
}

func (cb *CommandBuffer) BindPipeline(p *Pipeline) {
	cb.record("vkCmdBindPipeline", uintptr(p.bindPoint), uintptr(p.handle))
}

// BindVertexBuffers binds buffers starting at binding first. offsets must
// have one entry per buffer; nil means all zero.
func (cb *CommandBuffer) BindVertexBuffers(first uint32, buffers []*Buffer, offsets []uint64) error {
	if len(buffers) == 0 {
		return nil
	}
	if offsets == nil {
		offsets = make([]uint64, len(buffers))
	}
	if len(offsets) != len(buffers) {
		return errors.Errorf("vulkan: %d vertex buffers with %d offsets", len(buffers), len(offsets))
	}
	var a native.Arena
	defer a.Free()
	cb.record("vkCmdBindVertexBuffers", uintptr(first), uintptr(len(buffers)),
		native.Addr(native.Slice(&a, handles(buffers))), native.Addr(native.Slice(&a, offsets)))
	return nil
}

func (cb *CommandBuffer) BindIndexBuffer(buf *Buffer, offset uint64, indexType vk.IndexType) {
	cb.record("vkCmdBindIndexBuffer", uintptr(buf.handle), uintptr(offset), uintptr(indexType))
}

func (cb *CommandBuffer) BindDescriptorSets(bindPoint vk.PipelineBindPoint, layout *PipelineLayout, firstSet uint32, sets []*DescriptorSet, dynamicOffsets []uint32) {
	var a native.Arena
	defer a.Free()
	cb.record("vkCmdBindDescriptorSets", uintptr(bindPoint), uintptr(layout.handle), uintptr(firstSet),
		uintptr(len(sets)), native.Addr(native.Slice(&a, handles(sets))),
		uintptr(len(dynamicOffsets)), native.Addr(native.Slice(&a, dynamicOffsets)))
}

func (cb *CommandBuffer) PushConstants(layout *PipelineLayout, stages vk.ShaderStageFlags, offset uint32, data []byte) {
	if len(data) == 0 {
		return
	}
	var a native.Arena
	defer a.Free()
	cb.record("vkCmdPushConstants", uintptr(layout.handle), uintptr(stages), uintptr(offset),
		uintptr(len(data)), uintptr(a.Bytes(data)))
}

func (cb *CommandBuffer) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	cb.record("vkCmdDraw", uintptr(vertexCount), uintptr(instanceCount), uintptr(firstVertex), uintptr(firstInstance))
}

func (cb *CommandBuffer) DrawIndexed(indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	cb.record("vkCmdDrawIndexed", uintptr(indexCount), uintptr(instanceCount), uintptr(firstIndex),
		uintptr(uint32(vertexOffset)), uintptr(firstInstance))
}

func (cb *CommandBuffer) Dispatch(x, y, z uint32) {
	cb.record("vkCmdDispatch", uintptr(x), uintptr(y), uintptr(z))
}

func (cb *CommandBuffer) CopyBuffer(src, dst *Buffer, regions ...BufferCopy) {
	if len(regions) == 0 {
		return
	}
	var a native.Arena
	defer a.Free()
	list := native.Make[native.BufferCopy](&a, len(regions))
	for i, r := range regions {
		list[i] = native.BufferCopy(r)
	}
	cb.record("vkCmdCopyBuffer", uintptr(src.handle), uintptr(dst.handle), uintptr(len(list)), native.Addr(&list[0]))
}

// FillBuffer fills [offset, offset+size) of dst with the 32-bit word data.
// size may be WholeSize.
func (cb *CommandBuffer) FillBuffer(dst *Buffer, offset, size uint64, data uint32) {
	cb.record("vkCmdFillBuffer", uintptr(dst.handle), uintptr(offset), uintptr(size), uintptr(data))
}

func (cb *CommandBuffer) PipelineBarrier(src, dst vk.PipelineStageFlags, deps vk.DependencyFlags,
	memory []MemoryBarrier, buffers []BufferMemoryBarrier, images []ImageMemoryBarrier) {
	var a native.Arena
	defer a.Free()

	nm := native.Make[native.MemoryBarrier](&a, len(memory))
	for i, m := range memory {
		nm[i] = native.MemoryBarrier{
			SType:         sType(vk.StructureTypeMemoryBarrier),
			SrcAccessMask: uint32(m.SrcAccessMask),
			DstAccessMask: uint32(m.DstAccessMask),
		}
	}
	nb := native.Make[native.BufferMemoryBarrier](&a, len(buffers))
	for i, b := range buffers {
		nb[i] = native.BufferMemoryBarrier{
			SType:               sType(vk.StructureTypeBufferMemoryBarrier),
			SrcAccessMask:       uint32(b.SrcAccessMask),
			DstAccessMask:       uint32(b.DstAccessMask),
			SrcQueueFamilyIndex: b.SrcQueueFamilyIndex,
			DstQueueFamilyIndex: b.DstQueueFamilyIndex,
			Buffer:              uint64(b.Buffer.handle),
			Offset:              b.Offset,
			Size:                b.Size,
		}
	}
	ni := native.Make[native.ImageMemoryBarrier](&a, len(images))
	for i, im := range images {
		ni[i] = native.ImageMemoryBarrier{
			SType:               sType(vk.StructureTypeImageMemoryBarrier),
			SrcAccessMask:       uint32(im.SrcAccessMask),
			DstAccessMask:       uint32(im.DstAccessMask),
			OldLayout:           int32(im.OldLayout),
			NewLayout:           int32(im.NewLayout),
			SrcQueueFamilyIndex: im.SrcQueueFamilyIndex,
			DstQueueFamilyIndex: im.DstQueueFamilyIndex,
			Image:               uint64(im.Image.handle),
			SubresourceRange:    im.SubresourceRange.toNative(),
		}
	}
	cb.record("vkCmdPipelineBarrier", uintptr(src), uintptr(dst), uintptr(deps),
		uintptr(len(nm)), firstAddr(nm), uintptr(len(nb)), firstAddr(nb), uintptr(len(ni)), firstAddr(ni))
}

func (cb *CommandBuffer) BeginRenderPass(info *RenderPassBeginInfo, contents vk.SubpassContents) {
	var a native.Arena
	defer a.Free()
	n := native.New[native.RenderPassBeginInfo](&a)
	n.SType = sType(vk.StructureTypeRenderPassBeginInfo)
	if info.RenderPass != nil {
		n.RenderPass = uint64(info.RenderPass.handle)
	}
	if info.Framebuffer != nil {
		n.Framebuffer = uint64(info.Framebuffer.handle)
	}
	n.RenderArea = info.RenderArea
	clears := native.Make[native.ClearValue](&a, len(info.ClearValues))
	for i, c := range info.ClearValues {
		clears[i] = c.raw
	}
	n.ClearValueCount = uint32(len(clears))
	if len(clears) > 0 {
		n.PClearValues = &clears[0]
	}
	cb.record("vkCmdBeginRenderPass", native.Addr(n), uintptr(contents))
}

func (cb *CommandBuffer) EndRenderPass() {
	cb.record("vkCmdEndRenderPass")
}

func (cb *CommandBuffer) SetViewport(first uint32, viewports ...Viewport) {
	if len(viewports) == 0 {
		return
	}
	var a native.Arena
	defer a.Free()
	cb.record("vkCmdSetViewport", uintptr(first), uintptr(len(viewports)), native.Addr(native.Slice(&a, viewports)))
}

func (cb *CommandBuffer) SetScissor(first uint32, scissors ...Rect2D) {
	if len(scissors) == 0 {
		return
	}
	var a native.Arena
	defer a.Free()
	cb.record("vkCmdSetScissor", uintptr(first), uintptr(len(scissors)), native.Addr(native.Slice(&a, scissors)))
}

func (cb *CommandBuffer) SetEvent(e *Event, stage vk.PipelineStageFlags) {
	cb.record("vkCmdSetEvent", uintptr(e.handle), uintptr(stage))
}

func (cb *CommandBuffer) ResetEvent(e *Event, stage vk.PipelineStageFlags) {
	cb.record("vkCmdResetEvent", uintptr(e.handle), uintptr(stage))
}

func (cb *CommandBuffer) ResetQueryPool(pool *QueryPool, first, count uint32) {
	cb.record("vkCmdResetQueryPool", uintptr(pool.handle), uintptr(first), uintptr(count))
}

func (cb *CommandBuffer) BeginQuery(pool *QueryPool, query uint32, flags vk.QueryControlFlags) {
	cb.record("vkCmdBeginQuery", uintptr(pool.handle), uintptr(query), uintptr(flags))
}

func (cb *CommandBuffer) EndQuery(pool *QueryPool, query uint32) {
	cb.record("vkCmdEndQuery", uintptr(pool.handle), uintptr(query))
}

func (cb *CommandBuffer) WriteTimestamp(stage vk.PipelineStageFlagBits, pool *QueryPool, query uint32) {
	cb.record("vkCmdWriteTimestamp", uintptr(stage), uintptr(pool.handle), uintptr(query))
}

// Destroy frees the buffer back to its pool.
func (cb *CommandBuffer) Destroy() {
	if err := cb.pool.FreeCommandBuffers(cb); err != nil {
		errorLog.Println(err)
	}
}

func firstAddr[T any](s []T) uintptr {
	if len(s) == 0 {
		return 0
	}
	return native.Addr(&s[0])
}
