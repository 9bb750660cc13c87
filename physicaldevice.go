package vkobj

import (
	"github.com/andewx/vkobj/internal/native"
	vk "github.com/vulkan-go/vulkan"
)

// PhysicalDevice wraps VkPhysicalDevice. It is owned by its instance and has
// no destroy call.
type PhysicalDevice struct {
	instance *Instance
	handle   uintptr
}

type PhysicalDeviceProperties struct {
	APIVersion        uint32
	DriverVersion     uint32
	VendorID          uint32
	DeviceID          uint32
	DeviceType        vk.PhysicalDeviceType
	DeviceName        string
	PipelineCacheUUID [native.UUIDSize]byte
}

type QueueFamilyProperties struct {
	QueueFlags                  vk.QueueFlags
	QueueCount                  uint32
	TimestampValidBits          uint32
	MinImageTransferGranularity Extent3D
}

type MemoryType struct {
	PropertyFlags vk.MemoryPropertyFlags
	HeapIndex     uint32
}

type MemoryHeap struct {
	Size  uint64
	Flags vk.MemoryHeapFlags
}

// MemoryProperties is the decoded VkPhysicalDeviceMemoryProperties.
type MemoryProperties struct {
	Types []MemoryType
	Heaps []MemoryHeap
}

// Handle returns the VkPhysicalDevice value.
func (p *PhysicalDevice) Handle() uintptr {
	return p.handle
}

// Instance returns the owning instance.
func (p *PhysicalDevice) Instance() *Instance {
	return p.instance
}

func (p *PhysicalDevice) Properties() PhysicalDeviceProperties {
	var a native.Arena
	defer a.Free()
	n := native.New[native.PhysicalDeviceProperties](&a)
	p.instance.cmds.void("vkGetPhysicalDeviceProperties", p.handle, native.Addr(n))
	return PhysicalDeviceProperties{
		APIVersion:        n.APIVersion,
		DriverVersion:     n.DriverVersion,
		VendorID:          n.VendorID,
		DeviceID:          n.DeviceID,
		DeviceType:        vk.PhysicalDeviceType(n.DeviceType),
		DeviceName:        native.GoString(n.DeviceName[:]),
		PipelineCacheUUID: n.PipelineCacheUUID,
	}
}

func (p *PhysicalDevice) QueueFamilyProperties() []QueueFamilyProperties {
	list := query[native.QueueFamilyProperties](p.instance.cmds,
		"vkGetPhysicalDeviceQueueFamilyProperties", p.handle)
	out := make([]QueueFamilyProperties, len(list))
	for i, q := range list {
		out[i] = QueueFamilyProperties{
			QueueFlags:                  vk.QueueFlags(q.QueueFlags),
			QueueCount:                  q.QueueCount,
			TimestampValidBits:          q.TimestampValidBits,
			MinImageTransferGranularity: q.MinImageTransferGranularity,
		}
	}
	return out
}

// QueueFamilyIndex returns the first queue family supporting all of flags.
func (p *PhysicalDevice) QueueFamilyIndex(flags vk.QueueFlags) (uint32, bool) {
	for i, q := range p.QueueFamilyProperties() {
		if q.QueueCount > 0 && q.QueueFlags&flags == flags {
			return uint32(i), true
		}
	}
	return 0, false
}

func (p *PhysicalDevice) MemoryProperties() MemoryProperties {
	var a native.Arena
	defer a.Free()
	n := native.New[native.PhysicalDeviceMemoryProperties](&a)
	p.instance.cmds.void("vkGetPhysicalDeviceMemoryProperties", p.handle, native.Addr(n))

	var props MemoryProperties
	for i := uint32(0); i < n.MemoryTypeCount && i < native.MaxMemoryTypes; i++ {
		props.Types = append(props.Types, MemoryType{
			PropertyFlags: vk.MemoryPropertyFlags(n.MemoryTypes[i].PropertyFlags),
			HeapIndex:     n.MemoryTypes[i].HeapIndex,
		})
	}
	for i := uint32(0); i < n.MemoryHeapCount && i < native.MaxMemoryHeaps; i++ {
		props.Heaps = append(props.Heaps, MemoryHeap{
			Size:  n.MemoryHeaps[i].Size,
			Flags: vk.MemoryHeapFlags(n.MemoryHeaps[i].Flags),
		})
	}
	return props
}

// FindMemoryType returns the first memory type allowed by typeBits (as in
// VkMemoryRequirements.memoryTypeBits) that has all of required.
func (m MemoryProperties) FindMemoryType(typeBits uint32, required vk.MemoryPropertyFlags) (uint32, bool) {
	for i, t := range m.Types {
		if typeBits&(1<<uint(i)) == 0 {
			continue
		}
		if t.PropertyFlags&required == required {
			return uint32(i), true
		}
	}
	return 0, false
}

func (p *PhysicalDevice) Features() FeatureSet {
	var a native.Arena
	defer a.Free()
	n := native.New[native.PhysicalDeviceFeatures](&a)
	p.instance.cmds.void("vkGetPhysicalDeviceFeatures", p.handle, native.Addr(n))
	return FeatureSet{raw: *n}
}

// SurfaceSupport reports whether the queue family can present to surface.
func (p *PhysicalDevice) SurfaceSupport(family uint32, surface *Surface) (bool, error) {
	var a native.Arena
	defer a.Free()
	out := native.New[uint32](&a)
	err := p.instance.cmds.check("vkGetPhysicalDeviceSurfaceSupportKHR",
		p.handle, uintptr(family), uintptr(surface.handle), native.Addr(out))
	if err != nil {
		return false, err
	}
	return *out != 0, nil
}
