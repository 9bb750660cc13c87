package vkobj

import (
	"time"

	"github.com/andewx/vkobj/internal/native"
	vk "github.com/vulkan-go/vulkan"
)

// Forever makes a wait block without a deadline.
const Forever time.Duration = -1

// timeoutNanos converts a wait duration to the native uint64 nanoseconds.
// Negative durations mean no timeout.
func timeoutNanos(d time.Duration) uintptr {
	if d < 0 {
		return ^uintptr(0)
	}
	return uintptr(d.Nanoseconds())
}

// Fence wraps VkFence.
type Fence struct {
	resource
	device *Device
	handle Handle
}

// CreateFence creates a fence, already signaled when signaled is true.
func (d *Device) CreateFence(signaled bool) (*Fence, error) {
	f := &Fence{resource: resource{kind: "fence"}, device: d}
	f.SetAllocator(d.Allocator())

	var a native.Arena
	defer a.Free()
	n := native.New[native.FenceCreateInfo](&a)
	n.SType = sType(vk.StructureTypeFenceCreateInfo)
	if signaled {
		n.Flags = uint32(vk.FenceCreateSignaledBit)
	}
	h, err := d.createHandle("vkCreateFence", native.Addr(n), f.callbacks.addr(), &a)
	if err != nil {
		return nil, err
	}
	f.handle = h
	watch(f)
	return f, nil
}

func (f *Fence) Handle() Handle {
	return f.handle
}

// Status reports whether the fence is signaled.
func (f *Fence) Status() (bool, error) {
	ret, err := f.device.cmds.status("vkGetFenceStatus",
		[]vk.Result{vk.NotReady}, f.device.handle, uintptr(f.handle))
	if err != nil {
		return false, err
	}
	return ret == vk.Success, nil
}

// Wait blocks until the fence is signaled or timeout elapses. It returns
// false on timeout.
func (f *Fence) Wait(timeout time.Duration) (bool, error) {
	return f.device.WaitForFences([]*Fence{f}, true, timeout)
}

// Reset returns the fence to the unsignaled state.
func (f *Fence) Reset() error {
	return f.device.ResetFences(f)
}

func (f *Fence) Destroy() {
	f.release(func(alloc uintptr) {
		f.device.destroyHandle("vkDestroyFence", f.handle, alloc)
	})
}

// WaitForFences waits for all (or any) of fences. It returns false when
// timeout elapsed first.
func (d *Device) WaitForFences(fences []*Fence, waitAll bool, timeout time.Duration) (bool, error) {
	if len(fences) == 0 {
		return true, nil
	}
	var a native.Arena
	defer a.Free()
	ret, err := d.cmds.status("vkWaitForFences", []vk.Result{vk.Timeout},
		d.handle, uintptr(len(fences)), native.Addr(native.Slice(&a, handles(fences))),
		boolArg(waitAll), timeoutNanos(timeout))
	if err != nil {
		return false, err
	}
	return ret == vk.Success, nil
}

// ResetFences resets fences to the unsignaled state.
func (d *Device) ResetFences(fences ...*Fence) error {
	if len(fences) == 0 {
		return nil
	}
	var a native.Arena
	defer a.Free()
	return d.cmds.check("vkResetFences",
		d.handle, uintptr(len(fences)), native.Addr(native.Slice(&a, handles(fences))))
}

// Semaphore wraps VkSemaphore.
type Semaphore struct {
	resource
	device *Device
	handle Handle
}

func (d *Device) CreateSemaphore() (*Semaphore, error) {
	s := &Semaphore{resource: resource{kind: "semaphore"}, device: d}
	s.SetAllocator(d.Allocator())

	var a native.Arena
	defer a.Free()
	n := native.New[native.SemaphoreCreateInfo](&a)
	n.SType = sType(vk.StructureTypeSemaphoreCreateInfo)
	h, err := d.createHandle("vkCreateSemaphore", native.Addr(n), s.callbacks.addr(), &a)
	if err != nil {
		return nil, err
	}
	s.handle = h
	watch(s)
	return s, nil
}

func (s *Semaphore) Handle() Handle {
	return s.handle
}

func (s *Semaphore) Destroy() {
	s.release(func(alloc uintptr) {
		s.device.destroyHandle("vkDestroySemaphore", s.handle, alloc)
	})
}

// Event wraps VkEvent.
type Event struct {
	resource
	device *Device
	handle Handle
}

func (d *Device) CreateEvent() (*Event, error) {
	e := &Event{resource: resource{kind: "event"}, device: d}
	e.SetAllocator(d.Allocator())

	var a native.Arena
	defer a.Free()
	n := native.New[native.EventCreateInfo](&a)
	n.SType = sType(vk.StructureTypeEventCreateInfo)
	h, err := d.createHandle("vkCreateEvent", native.Addr(n), e.callbacks.addr(), &a)
	if err != nil {
		return nil, err
	}
	e.handle = h
	watch(e)
	return e, nil
}

func (e *Event) Handle() Handle {
	return e.handle
}

// Status reports whether the event is set.
func (e *Event) Status() (bool, error) {
	ret, err := e.device.cmds.status("vkGetEventStatus",
		[]vk.Result{vk.EventSet, vk.EventReset}, e.device.handle, uintptr(e.handle))
	if err != nil {
		return false, err
	}
	return ret == vk.EventSet, nil
}

// Set signals the event from the host.
func (e *Event) Set() error {
	return e.device.cmds.check("vkSetEvent", e.device.handle, uintptr(e.handle))
}

// Reset unsignals the event from the host.
func (e *Event) Reset() error {
	return e.device.cmds.check("vkResetEvent", e.device.handle, uintptr(e.handle))
}

func (e *Event) Destroy() {
	e.release(func(alloc uintptr) {
		e.device.destroyHandle("vkDestroyEvent", e.handle, alloc)
	})
}
