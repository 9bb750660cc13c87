package vkobj

import (
	"unsafe"

	"github.com/andewx/vkobj/internal/native"
	vk "github.com/vulkan-go/vulkan"
)

// ApplicationInfo mirrors VkApplicationInfo. Versions are packed with
// vk.MakeVersion.
type ApplicationInfo struct {
	ApplicationName    string
	ApplicationVersion uint32
	EngineName         string
	EngineVersion      uint32
	APIVersion         uint32
}

// InstanceCreateInfo mirrors VkInstanceCreateInfo.
type InstanceCreateInfo struct {
	Flags             vk.InstanceCreateFlags
	Application       *ApplicationInfo
	EnabledLayers     []string
	EnabledExtensions []string
}

func (ci *InstanceCreateInfo) toNative(a *native.Arena) *native.InstanceCreateInfo {
	n := native.New[native.InstanceCreateInfo](a)
	n.SType = sType(vk.StructureTypeInstanceCreateInfo)
	n.Flags = uint32(ci.Flags)
	if app := ci.Application; app != nil {
		ni := native.New[native.ApplicationInfo](a)
		ni.SType = sType(vk.StructureTypeApplicationInfo)
		ni.PApplicationName = a.CString(app.ApplicationName)
		ni.ApplicationVersion = app.ApplicationVersion
		ni.PEngineName = a.CString(app.EngineName)
		ni.EngineVersion = app.EngineVersion
		ni.APIVersion = app.APIVersion
		n.PApplicationInfo = ni
	}
	n.EnabledLayerCount = uint32(len(ci.EnabledLayers))
	n.PpEnabledLayerNames = a.CStrings(ci.EnabledLayers)
	n.EnabledExtensionCount = uint32(len(ci.EnabledExtensions))
	n.PpEnabledExtensionNames = a.CStrings(ci.EnabledExtensions)
	return n
}

// Instance wraps VkInstance.
type Instance struct {
	resource
	cmds   commands
	handle uintptr
}

// CreateInstance creates a VkInstance through d. allocator may be nil.
func CreateInstance(d Dispatcher, info *InstanceCreateInfo, allocator *AllocationCallbacks) (*Instance, error) {
	inst := &Instance{
		resource: resource{kind: "instance"},
		cmds:     commands{d: d},
	}
	inst.SetAllocator(allocator)

	var a native.Arena
	defer a.Free()
	out := native.New[uintptr](&a)
	err := inst.cmds.check("vkCreateInstance",
		native.Addr(info.toNative(&a)), inst.callbacks.addr(), native.Addr(out))
	if err != nil {
		return nil, err
	}
	inst.handle = *out
	if b, ok := d.(InstanceBinder); ok {
		b.BindInstance(inst.handle)
	}
	watch(inst)
	infoLog.Printf("vulkan: instance created with %d layers, %d extensions",
		len(info.EnabledLayers), len(info.EnabledExtensions))
	return inst, nil
}

// Handle returns the VkInstance value.
func (i *Instance) Handle() uintptr {
	return i.handle
}

// VK converts the handle for use with github.com/vulkan-go/vulkan and
// window-system libraries built on it.
func (i *Instance) VK() vk.Instance {
	return vk.Instance(unsafe.Pointer(i.handle))
}

// Dispatcher returns the dispatcher the instance was created with.
func (i *Instance) Dispatcher() Dispatcher {
	return i.cmds.d
}

// EnumeratePhysicalDevices lists the physical devices visible to the instance.
func (i *Instance) EnumeratePhysicalDevices() ([]*PhysicalDevice, error) {
	raw, err := enumerate[uintptr](i.cmds, "vkEnumeratePhysicalDevices", i.handle)
	if err != nil {
		return nil, err
	}
	gpus := make([]*PhysicalDevice, len(raw))
	for k, h := range raw {
		gpus[k] = &PhysicalDevice{instance: i, handle: h}
	}
	return gpus, nil
}

// Destroy destroys the instance. Children must be destroyed first.
func (i *Instance) Destroy() {
	i.release(func(alloc uintptr) {
		i.cmds.void("vkDestroyInstance", i.handle, alloc)
	})
}

// enumerate runs the count-then-fill idiom of the vkEnumerate* entry points,
// starting over while the driver reports a list that grew in between.
// prefix holds the arguments before the count pointer.
func enumerate[T any](c commands, name string, prefix ...uintptr) ([]T, error) {
	var a native.Arena
	defer a.Free()

	count := native.New[uint32](&a)
	args := append(append([]uintptr{}, prefix...), native.Addr(count), 0)
	soft := []vk.Result{vk.Incomplete}
	for {
		args[len(args)-1] = 0
		if _, err := c.status(name, soft, args...); err != nil {
			return nil, err
		}
		if *count == 0 {
			return nil, nil
		}
		items := native.Make[T](&a, int(*count))
		args[len(args)-1] = native.Addr(&items[0])
		ret, err := c.status(name, soft, args...)
		if err != nil {
			return nil, err
		}
		if ret == vk.Incomplete {
			continue
		}
		out := make([]T, *count)
		copy(out, items[:*count])
		return out, nil
	}
}

// query is enumerate for void entry points such as
// vkGetPhysicalDeviceQueueFamilyProperties.
func query[T any](c commands, name string, prefix ...uintptr) []T {
	var a native.Arena
	defer a.Free()

	count := native.New[uint32](&a)
	args := append(append([]uintptr{}, prefix...), native.Addr(count), 0)
	c.void(name, args...)
	if *count == 0 {
		return nil
	}
	items := native.Make[T](&a, int(*count))
	args[len(args)-1] = native.Addr(&items[0])
	c.void(name, args...)
	out := make([]T, *count)
	copy(out, items)
	return out
}
