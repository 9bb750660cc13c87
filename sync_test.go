package vkobj

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestTimeoutNanos(t *testing.T) {
	assert.Equal(t, ^uintptr(0), timeoutNanos(Forever))
	assert.Equal(t, uintptr(0), timeoutNanos(0))
	assert.Equal(t, uintptr(2_000_000), timeoutNanos(2*time.Millisecond))
}

func TestFenceStatus(t *testing.T) {
	d, dev := newTestDevice(t)

	fence, err := dev.CreateFence(false)
	require.NoError(t, err)
	defer fence.Destroy()

	signaled, err := fence.Status()
	require.NoError(t, err)
	assert.False(t, signaled)

	d.Signal(uint64(fence.Handle()), true)
	signaled, err = fence.Status()
	require.NoError(t, err)
	assert.True(t, signaled)

	require.NoError(t, fence.Reset())
	signaled, err = fence.Status()
	require.NoError(t, err)
	assert.False(t, signaled)

	d.SetResult("vkGetFenceStatus", vk.ErrorDeviceLost)
	_, err = fence.Status()
	assert.True(t, IsResult(err, vk.ErrorDeviceLost))
}

func TestFenceCreatedSignaled(t *testing.T) {
	d, dev := newTestDevice(t)

	fence, err := dev.CreateFence(true)
	require.NoError(t, err)
	defer fence.Destroy()
	assert.True(t, d.Signaled(uint64(fence.Handle())))
}

func TestWaitForFences(t *testing.T) {
	d, dev := newTestDevice(t)

	a, err := dev.CreateFence(true)
	require.NoError(t, err)
	defer a.Destroy()
	b, err := dev.CreateFence(false)
	require.NoError(t, err)
	defer b.Destroy()

	done, err := dev.WaitForFences([]*Fence{a, b}, true, time.Millisecond)
	require.NoError(t, err)
	assert.False(t, done, "timeout is a value, not an error")

	done, err = dev.WaitForFences([]*Fence{a, b}, false, time.Millisecond)
	require.NoError(t, err)
	assert.True(t, done)

	call, ok := d.Last("vkWaitForFences")
	require.True(t, ok)
	assert.Equal(t, uintptr(2), call.Args[1])
	assert.Equal(t, uintptr(0), call.Args[3])
	assert.Equal(t, uintptr(time.Millisecond), call.Args[4])

	done, err = b.Wait(Forever)
	require.NoError(t, err)
	assert.False(t, done)

	done, err = dev.WaitForFences(nil, true, Forever)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestEventStatus(t *testing.T) {
	_, dev := newTestDevice(t)

	ev, err := dev.CreateEvent()
	require.NoError(t, err)
	defer ev.Destroy()

	set, err := ev.Status()
	require.NoError(t, err)
	assert.False(t, set)

	require.NoError(t, ev.Set())
	set, err = ev.Status()
	require.NoError(t, err)
	assert.True(t, set)

	require.NoError(t, ev.Reset())
	set, err = ev.Status()
	require.NoError(t, err)
	assert.False(t, set)
}

func TestSyncDestroyOnce(t *testing.T) {
	d, dev := newTestDevice(t)

	fence, err := dev.CreateFence(false)
	require.NoError(t, err)
	sem, err := dev.CreateSemaphore()
	require.NoError(t, err)
	ev, err := dev.CreateEvent()
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		fence.Destroy()
		sem.Destroy()
		ev.Destroy()
	}
	assert.Equal(t, 1, d.Count("vkDestroyFence"))
	assert.Equal(t, 1, d.Count("vkDestroySemaphore"))
	assert.Equal(t, 1, d.Count("vkDestroyEvent"))

	call, ok := d.Last("vkDestroyFence")
	require.True(t, ok)
	assert.Equal(t, dev.Handle(), call.Args[0])
	assert.Equal(t, uintptr(fence.Handle()), call.Args[1])
}
