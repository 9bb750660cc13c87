package vkobj

import (
	"github.com/andewx/vkobj/internal/native"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// DeviceQueueCreateInfo mirrors VkDeviceQueueCreateInfo. The queue count is
// len(QueuePriorities).
type DeviceQueueCreateInfo struct {
	Flags            vk.DeviceQueueCreateFlags
	QueueFamilyIndex uint32
	QueuePriorities  []float32
}

// DeviceCreateInfo mirrors VkDeviceCreateInfo.
type DeviceCreateInfo struct {
	QueueCreateInfos  []DeviceQueueCreateInfo
	EnabledLayers     []string
	EnabledExtensions []string
	EnabledFeatures   []Feature
}

func (ci *DeviceCreateInfo) toNative(a *native.Arena) *native.DeviceCreateInfo {
	n := native.New[native.DeviceCreateInfo](a)
	n.SType = sType(vk.StructureTypeDeviceCreateInfo)
	queues := native.Make[native.DeviceQueueCreateInfo](a, len(ci.QueueCreateInfos))
	for i, q := range ci.QueueCreateInfos {
		queues[i] = native.DeviceQueueCreateInfo{
			SType:            sType(vk.StructureTypeDeviceQueueCreateInfo),
			Flags:            uint32(q.Flags),
			QueueFamilyIndex: q.QueueFamilyIndex,
			QueueCount:       uint32(len(q.QueuePriorities)),
			PQueuePriorities: native.Slice(a, q.QueuePriorities),
		}
	}
	n.QueueCreateInfoCount = uint32(len(queues))
	if len(queues) > 0 {
		n.PQueueCreateInfos = &queues[0]
	}
	n.EnabledLayerCount = uint32(len(ci.EnabledLayers))
	n.PpEnabledLayerNames = a.CStrings(ci.EnabledLayers)
	n.EnabledExtensionCount = uint32(len(ci.EnabledExtensions))
	n.PpEnabledExtensionNames = a.CStrings(ci.EnabledExtensions)
	n.PEnabledFeatures = featuresToNative(a, ci.EnabledFeatures)
	return n
}

// Device wraps VkDevice. Children created from it inherit its allocation
// callbacks.
type Device struct {
	resource
	cmds     commands
	physical *PhysicalDevice
	handle   uintptr
}

// CreateDevice creates a logical device on p.
func (p *PhysicalDevice) CreateDevice(info *DeviceCreateInfo) (*Device, error) {
	d := &Device{
		resource: resource{kind: "device"},
		cmds:     p.instance.cmds,
		physical: p,
	}
	d.SetAllocator(p.instance.Allocator())

	var a native.Arena
	defer a.Free()
	out := native.New[uintptr](&a)
	err := d.cmds.check("vkCreateDevice",
		p.handle, native.Addr(info.toNative(&a)), d.callbacks.addr(), native.Addr(out))
	if err != nil {
		return nil, err
	}
	d.handle = *out
	watch(d)
	return d, nil
}

// Handle returns the VkDevice value.
func (d *Device) Handle() uintptr {
	return d.handle
}

// PhysicalDevice returns the physical device the device was created on.
func (d *Device) PhysicalDevice() *PhysicalDevice {
	return d.physical
}

// Queue returns queue index of family. Queues are owned by the device.
func (d *Device) Queue(family, index uint32) (*Queue, error) {
	var a native.Arena
	defer a.Free()
	out := native.New[uintptr](&a)
	if _, err := d.cmds.invoke("vkGetDeviceQueue", d.handle, uintptr(family), uintptr(index), native.Addr(out)); err != nil {
		return nil, err
	}
	if *out == 0 {
		return nil, errors.Errorf("vulkan: no queue %d in family %d", index, family)
	}
	return &Queue{device: d, family: family, handle: *out}, nil
}

// WaitIdle blocks until all queues of the device are idle.
func (d *Device) WaitIdle() error {
	return d.cmds.check("vkDeviceWaitIdle", d.handle)
}

// Destroy destroys the device. Every child must be destroyed first.
func (d *Device) Destroy() {
	d.release(func(alloc uintptr) {
		d.cmds.void("vkDestroyDevice", d.handle, alloc)
	})
}

// createHandle runs a vkCreate* entry point of the form
// (device, pCreateInfo, pAllocator, pHandle) and returns the new handle.
func (d *Device) createHandle(name string, info uintptr, alloc uintptr, a *native.Arena) (Handle, error) {
	out := native.New[uint64](a)
	if err := d.cmds.check(name, d.handle, info, alloc, native.Addr(out)); err != nil {
		return NullHandle, err
	}
	return Handle(*out), nil
}

// destroyHandle runs a vkDestroy* entry point of the form
// (device, handle, pAllocator).
func (d *Device) destroyHandle(name string, h Handle, alloc uintptr) {
	d.cmds.void(name, d.handle, uintptr(h), alloc)
}
