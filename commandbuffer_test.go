package vkobj

import (
	"testing"

	"github.com/andewx/vkobj/internal/fakevk"
	"github.com/andewx/vkobj/internal/native"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestRecordAndSubmit(t *testing.T) {
	d, dev := newTestDevice(t)

	pool, err := dev.ResettablePool(0)
	require.NoError(t, err)
	defer pool.Destroy()

	cbs, err := pool.AllocateCommandBuffers(vk.CommandBufferLevelPrimary, 2)
	require.NoError(t, err)
	require.Len(t, cbs, 2)
	assert.NotEqual(t, cbs[0].Handle(), cbs[1].Handle())
	cb := cbs[0]
	assert.Same(t, pool, cb.Pool())

	src, err := dev.CreateBuffer(&BufferCreateInfo{Size: 64, Usage: vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit)})
	require.NoError(t, err)
	defer src.Destroy()
	dst, err := dev.CreateBuffer(&BufferCreateInfo{Size: 64, Usage: vk.BufferUsageFlags(vk.BufferUsageTransferDstBit)})
	require.NoError(t, err)
	defer dst.Destroy()

	var regions []native.BufferCopy
	d.Handle("vkCmdCopyBuffer", func(args []uintptr) vk.Result {
		regions = append(regions, fakevk.Array[native.BufferCopy](args, 4, uint32(args[3]))...)
		return vk.Success
	})

	require.NoError(t, cb.Begin(vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit), nil))
	cb.FillBuffer(src, 0, WholeSize, 0xdeadbeef)
	cb.CopyBuffer(src, dst, BufferCopy{Size: 32}, BufferCopy{SrcOffset: 32, DstOffset: 0, Size: 32})
	cb.Dispatch(8, 4, 1)
	require.NoError(t, cb.End())

	require.Len(t, regions, 2)
	assert.Equal(t, uint64(32), regions[1].SrcOffset)

	copyCall, ok := d.Last("vkCmdCopyBuffer")
	require.True(t, ok)
	assert.Equal(t, cb.Handle(), copyCall.Args[0])
	assert.Equal(t, uintptr(src.Handle()), copyCall.Args[1])

	dispatch, ok := d.Last("vkCmdDispatch")
	require.True(t, ok)
	assert.Equal(t, []uintptr{cb.Handle(), 8, 4, 1}, dispatch.Args)

	fence, err := dev.CreateFence(false)
	require.NoError(t, err)
	defer fence.Destroy()

	var submitted []uintptr
	var waitCount uint32
	d.Handle("vkQueueSubmit", func(args []uintptr) vk.Result {
		info := fakevk.Arg[native.SubmitInfo](args, 2)
		submitted = append(submitted, native.View(info.PCommandBuffers, info.CommandBufferCount)...)
		waitCount = info.WaitSemaphoreCount
		d.Signal(uint64(args[3]), true)
		return vk.Success
	})

	queue := testQueue(t, dev)
	require.NoError(t, queue.Submit([]SubmitInfo{{CommandBuffers: []*CommandBuffer{cb}}}, fence))
	assert.Equal(t, []uintptr{cb.Handle()}, submitted)
	assert.Zero(t, waitCount)

	done, err := fence.Wait(Forever)
	require.NoError(t, err)
	assert.True(t, done)
	require.NoError(t, queue.WaitIdle())

	cb.Destroy()
	cb.Destroy()
	assert.True(t, cb.Destroyed())
	require.NoError(t, pool.FreeCommandBuffers(cbs...))
	assert.Equal(t, 2, d.Count("vkFreeCommandBuffers"))
}

func TestSubmitWithSemaphores(t *testing.T) {
	d, dev := newTestDevice(t)

	wait, err := dev.CreateSemaphore()
	require.NoError(t, err)
	defer wait.Destroy()
	signal, err := dev.CreateSemaphore()
	require.NoError(t, err)
	defer signal.Destroy()

	var waits, signals []uint64
	var masks []uint32
	d.Handle("vkQueueSubmit", func(args []uintptr) vk.Result {
		info := fakevk.Arg[native.SubmitInfo](args, 2)
		waits = append(waits, native.View(info.PWaitSemaphores, info.WaitSemaphoreCount)...)
		masks = append(masks, native.View(info.PWaitDstStageMask, info.WaitSemaphoreCount)...)
		signals = append(signals, native.View(info.PSignalSemaphores, info.SignalSemaphoreCount)...)
		assert.Zero(t, args[3])
		return vk.Success
	})

	stage := vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)
	err = testQueue(t, dev).Submit([]SubmitInfo{{
		WaitSemaphores:   []*Semaphore{wait},
		WaitDstStageMask: []vk.PipelineStageFlags{stage},
		SignalSemaphores: []*Semaphore{signal},
	}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint64{uint64(wait.Handle())}, waits)
	assert.Equal(t, []uint32{uint32(stage)}, masks)
	assert.Equal(t, []uint64{uint64(signal.Handle())}, signals)
}

func TestBindVertexBuffersOffsets(t *testing.T) {
	d, dev := newTestDevice(t)

	pool, err := dev.ResettablePool(0)
	require.NoError(t, err)
	defer pool.Destroy()
	cbs, err := pool.AllocateCommandBuffers(vk.CommandBufferLevelPrimary, 1)
	require.NoError(t, err)
	buf, err := dev.CreateBuffer(&BufferCreateInfo{Size: 16})
	require.NoError(t, err)
	defer buf.Destroy()

	err = cbs[0].BindVertexBuffers(0, []*Buffer{buf}, []uint64{0, 8})
	assert.Error(t, err)
	assert.Zero(t, d.Count("vkCmdBindVertexBuffers"))

	require.NoError(t, cbs[0].BindVertexBuffers(1, []*Buffer{buf}, nil))
	call, ok := d.Last("vkCmdBindVertexBuffers")
	require.True(t, ok)
	assert.Equal(t, uintptr(1), call.Args[1])
	assert.Equal(t, uintptr(1), call.Args[2])
}

func TestFreeCommandBuffersForeignPool(t *testing.T) {
	_, dev := newTestDevice(t)

	a, err := dev.ResettablePool(0)
	require.NoError(t, err)
	defer a.Destroy()
	b, err := dev.ResettablePool(0)
	require.NoError(t, err)
	defer b.Destroy()

	cbs, err := a.AllocateCommandBuffers(vk.CommandBufferLevelSecondary, 1)
	require.NoError(t, err)
	assert.Error(t, b.FreeCommandBuffers(cbs...))
	assert.False(t, cbs[0].Destroyed())
	assert.Equal(t, vk.CommandBufferLevelSecondary, cbs[0].Level())
}

func TestAllocateCommandBuffersFailure(t *testing.T) {
	d, dev := newTestDevice(t)
	d.SetResult("vkAllocateCommandBuffers", vk.ErrorOutOfDeviceMemory)

	pool, err := dev.ResettablePool(0)
	require.NoError(t, err)
	defer pool.Destroy()
	cbs, err := pool.AllocateCommandBuffers(vk.CommandBufferLevelPrimary, 3)
	assert.Nil(t, cbs)
	assert.True(t, IsResult(err, vk.ErrorOutOfDeviceMemory))
}
