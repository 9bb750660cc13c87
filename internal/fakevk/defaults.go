package fakevk

import (
	"unsafe"

	"github.com/andewx/vkobj/internal/native"
	vk "github.com/vulkan-go/vulkan"
)

func (d *Driver) installDefaults() {
	d.funcs["vkEnumerateInstanceExtensionProperties"] = func(args []uintptr) vk.Result {
		return fill(args[1], args[2], extensions(d.Extensions))
	}
	d.funcs["vkEnumerateDeviceExtensionProperties"] = func(args []uintptr) vk.Result {
		return fill(args[2], args[3], extensions(d.DeviceExtensions))
	}
	d.funcs["vkEnumerateInstanceLayerProperties"] = func(args []uintptr) vk.Result {
		layers := make([]native.LayerProperties, len(d.Layers))
		for i, name := range d.Layers {
			copy(layers[i].LayerName[:], name)
			layers[i].SpecVersion = d.APIVersion
			layers[i].ImplementationVersion = 1
			copy(layers[i].Description[:], "fake layer "+name)
		}
		return fill(args[0], args[1], layers)
	}
	d.funcs["vkEnumeratePhysicalDevices"] = func(args []uintptr) vk.Result {
		gpus := make([]uintptr, d.GPUs)
		for i := range gpus {
			gpus[i] = uintptr(0xd000 + i)
		}
		return fill(args[1], args[2], gpus)
	}
	d.funcs["vkGetPhysicalDeviceQueueFamilyProperties"] = func(args []uintptr) vk.Result {
		fill(args[1], args[2], d.QueueFamilies)
		return vk.Success
	}
	d.funcs["vkGetPhysicalDeviceProperties"] = func(args []uintptr) vk.Result {
		p := Arg[native.PhysicalDeviceProperties](args, 1)
		p.APIVersion = d.APIVersion
		p.DriverVersion = 1
		p.VendorID = 0x1234
		p.DeviceID = uint32(args[0])
		p.DeviceType = int32(d.DeviceType)
		copy(p.DeviceName[:], d.DeviceName)
		return vk.Success
	}
	d.funcs["vkGetPhysicalDeviceMemoryProperties"] = func(args []uintptr) vk.Result {
		p := Arg[native.PhysicalDeviceMemoryProperties](args, 1)
		p.MemoryTypeCount = uint32(copy(p.MemoryTypes[:], d.MemoryTypes))
		p.MemoryHeapCount = uint32(copy(p.MemoryHeaps[:], d.MemoryHeaps))
		return vk.Success
	}
	d.funcs["vkGetPhysicalDeviceSurfaceSupportKHR"] = func(args []uintptr) vk.Result {
		*Arg[uint32](args, 3) = 1
		return vk.Success
	}
	d.funcs["vkGetDeviceQueue"] = func(args []uintptr) vk.Result {
		d.writeHandle(args[3])
		return vk.Success
	}

	requirements := func(args []uintptr) vk.Result {
		*Arg[native.MemoryRequirements](args, 2) = d.Requirements
		return vk.Success
	}
	d.funcs["vkGetBufferMemoryRequirements"] = requirements
	d.funcs["vkGetImageMemoryRequirements"] = requirements

	d.funcs["vkAllocateMemory"] = func(args []uintptr) vk.Result {
		d.writeHandle(args[3])
		return vk.Success
	}
	d.funcs["vkMapMemory"] = func(args []uintptr) vk.Result {
		mem, size := uint64(args[1]), int(args[3])
		buf := make([]byte, size)
		d.mu.Lock()
		d.mapped[mem] = buf
		d.mu.Unlock()
		var p uintptr
		if size > 0 {
			p = uintptr(unsafe.Pointer(&buf[0]))
		}
		*Arg[uintptr](args, 5) = p
		return vk.Success
	}
	d.funcs["vkUnmapMemory"] = func(args []uintptr) vk.Result {
		d.mu.Lock()
		delete(d.mapped, uint64(args[1]))
		d.mu.Unlock()
		return vk.Success
	}

	d.funcs["vkAllocateCommandBuffers"] = func(args []uintptr) vk.Result {
		info := Arg[native.CommandBufferAllocateInfo](args, 1)
		out := Array[uintptr](args, 2, info.CommandBufferCount)
		for i := range out {
			out[i] = uintptr(d.NewHandle())
		}
		return vk.Success
	}
	d.funcs["vkAllocateDescriptorSets"] = func(args []uintptr) vk.Result {
		info := Arg[native.DescriptorSetAllocateInfo](args, 1)
		out := Array[uint64](args, 2, info.DescriptorSetCount)
		for i := range out {
			out[i] = d.NewHandle()
		}
		return vk.Success
	}
	pipelines := func(args []uintptr) vk.Result {
		out := Array[uint64](args, 5, uint32(args[2]))
		for i := range out {
			out[i] = d.NewHandle()
		}
		return vk.Success
	}
	d.funcs["vkCreateGraphicsPipelines"] = pipelines
	d.funcs["vkCreateComputePipelines"] = pipelines

	d.funcs["vkCreateFence"] = func(args []uintptr) vk.Result {
		info := Arg[native.FenceCreateInfo](args, 1)
		h := d.writeHandle(args[3])
		d.Signal(h, info.Flags&uint32(vk.FenceCreateSignaledBit) != 0)
		return vk.Success
	}
	d.funcs["vkGetFenceStatus"] = func(args []uintptr) vk.Result {
		if d.Signaled(uint64(args[1])) {
			return vk.Success
		}
		return vk.NotReady
	}
	d.funcs["vkResetFences"] = func(args []uintptr) vk.Result {
		for _, f := range Array[uint64](args, 2, uint32(args[1])) {
			d.Signal(f, false)
		}
		return vk.Success
	}
	d.funcs["vkWaitForFences"] = func(args []uintptr) vk.Result {
		fences := Array[uint64](args, 2, uint32(args[1]))
		waitAll := args[3] != 0
		done := 0
		for _, f := range fences {
			if d.Signaled(f) {
				done++
			}
		}
		if (waitAll && done == len(fences)) || (!waitAll && done > 0) {
			return vk.Success
		}
		return vk.Timeout
	}
	d.funcs["vkQueueSubmit"] = func(args []uintptr) vk.Result {
		if fence := uint64(args[3]); fence != 0 {
			d.Signal(fence, true)
		}
		return vk.Success
	}

	d.funcs["vkGetEventStatus"] = func(args []uintptr) vk.Result {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.events[uint64(args[1])] {
			return vk.EventSet
		}
		return vk.EventReset
	}
	d.funcs["vkSetEvent"] = func(args []uintptr) vk.Result {
		d.setEvent(uint64(args[1]), true)
		return vk.Success
	}
	d.funcs["vkResetEvent"] = func(args []uintptr) vk.Result {
		d.setEvent(uint64(args[1]), false)
		return vk.Success
	}

	d.funcs["vkGetQueryPoolResults"] = func(args []uintptr) vk.Result {
		first, count := uint64(args[2]), uint32(args[3])
		stride := uint32(args[6] / 8)
		data := Array[uint64](args, 5, count*stride)
		for q := uint32(0); q < count; q++ {
			data[q*stride] = first + uint64(q)
		}
		return vk.Success
	}
}

func (d *Driver) setEvent(h uint64, set bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events[h] = set
}

func extensions(names []string) []native.ExtensionProperties {
	out := make([]native.ExtensionProperties, len(names))
	for i, name := range names {
		copy(out[i].ExtensionName[:], name)
		out[i].SpecVersion = 1
	}
	return out
}

// fill implements the count-then-fill protocol: a zero data pointer asks for
// the count, otherwise at most *count items are written.
func fill[T any](countAddr, dataAddr uintptr, items []T) vk.Result {
	count := native.At[uint32](countAddr)
	if dataAddr == 0 {
		*count = uint32(len(items))
		return vk.Success
	}
	n := copy(native.View(native.At[T](dataAddr), *count), items)
	ret := vk.Success
	if n < len(items) {
		ret = vk.Incomplete
	}
	*count = uint32(n)
	return ret
}
