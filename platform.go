package vkobj

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Platform owns the instance, the chosen physical device, the logical device
// and its queues for an Application.
type Platform struct {
	instance *Instance
	gpu      *PhysicalDevice
	device   *Device
	surface  *Surface
	debug    *DebugReport

	graphicsQueueIndex uint32
	presentQueueIndex  uint32
	graphicsQueue      *Queue
	presentQueue       *Queue

	gpuProperties    PhysicalDeviceProperties
	memoryProperties MemoryProperties
}

// NewPlatform creates an instance through d, picks the first physical device
// with a queue family suiting app.VulkanMode and creates a device on it.
// Missing extensions and layers are logged and skipped.
func NewPlatform(d Dispatcher, app Application) (*Platform, error) {
	p := &Platform{}
	if err := p.init(d, app); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

func (p *Platform) init(d Dispatcher, app Application) error {
	// Select instance extensions
	wanted := app.VulkanInstanceExtensions()
	debug := false
	if iface, ok := app.(ApplicationDebug); ok && iface.VulkanDebug() {
		debug = true
		wanted = append(append([]string{}, wanted...), DebugReportExtension)
	}
	available, err := InstanceExtensions(d, "")
	if err != nil {
		return err
	}
	instanceExtensions, missing := RequireExtensions(ExtensionNames(available), wanted)
	if len(missing) > 0 {
		warnLog.Println("vulkan: missing", len(missing), "required instance extensions during init:", missing)
	}
	infoLog.Printf("vulkan: enabling %d instance extensions", len(instanceExtensions))

	// Select instance layers
	var layers []string
	if iface, ok := app.(ApplicationVulkanLayers); ok && len(iface.VulkanLayers()) > 0 {
		actual, err := InstanceLayers(d)
		if err != nil {
			return err
		}
		layers, missing = RequireExtensions(LayerNames(actual), iface.VulkanLayers())
		if len(missing) > 0 {
			warnLog.Println("vulkan: missing", len(missing), "required layers during init:", missing)
		}
	}

	p.instance, err = CreateInstance(d, &InstanceCreateInfo{
		Application: &ApplicationInfo{
			ApplicationName:    app.VulkanAppName(),
			ApplicationVersion: app.VulkanAppVersion(),
			EngineName:         "vkobj",
			EngineVersion:      DefaultVulkanAppVersion,
			APIVersion:         app.VulkanAPIVersion(),
		},
		EnabledLayers:     layers,
		EnabledExtensions: instanceExtensions,
	}, nil)
	if err != nil {
		return err
	}

	if debug && contains(instanceExtensions, DebugReportExtension) {
		flags := vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit)
		if p.debug, err = EnableDebugReport(p.instance, flags); err != nil {
			return err
		}
	}

	// Find a suitable GPU; multiple GPUs are not supported yet
	gpus, err := p.instance.EnumeratePhysicalDevices()
	if err != nil {
		return err
	}
	if len(gpus) == 0 {
		return errors.New("vulkan: no GPU devices found")
	}
	p.gpu = gpus[0]
	p.gpuProperties = p.gpu.Properties()
	p.memoryProperties = p.gpu.MemoryProperties()

	// Select device extensions
	deviceAvailable, err := p.gpu.Extensions("")
	if err != nil {
		return err
	}
	deviceExtensions, missing := RequireExtensions(ExtensionNames(deviceAvailable), app.VulkanDeviceExtensions())
	if len(missing) > 0 {
		warnLog.Println("vulkan: missing", len(missing), "required device extensions during init:", missing)
	}
	infoLog.Printf("vulkan: enabling %d device extensions", len(deviceExtensions))

	// Make sure the surface is here if required
	mode := app.VulkanMode()
	if mode.Has(VulkanPresent) {
		iface, ok := app.(ApplicationSurface)
		if !ok {
			return errors.New("vulkan: surface required but not provided")
		}
		if p.surface, err = iface.VulkanSurface(p.instance); err != nil {
			return err
		}
	}

	if err = p.selectQueues(mode); err != nil {
		return err
	}

	queueInfos := []DeviceQueueCreateInfo{{
		QueueFamilyIndex: p.graphicsQueueIndex,
		QueuePriorities:  []float32{1.0},
	}}
	if p.HasSeparatePresentQueue() {
		queueInfos = append(queueInfos, DeviceQueueCreateInfo{
			QueueFamilyIndex: p.presentQueueIndex,
			QueuePriorities:  []float32{1.0},
		})
	}
	p.device, err = p.gpu.CreateDevice(&DeviceCreateInfo{
		QueueCreateInfos:  queueInfos,
		EnabledLayers:     layers,
		EnabledExtensions: deviceExtensions,
	})
	if err != nil {
		return err
	}
	if p.graphicsQueue, err = p.device.Queue(p.graphicsQueueIndex, 0); err != nil {
		return err
	}
	p.presentQueue = p.graphicsQueue
	if p.HasSeparatePresentQueue() {
		if p.presentQueue, err = p.device.Queue(p.presentQueueIndex, 0); err != nil {
			return err
		}
	}

	if iface, ok := app.(ApplicationInit); ok {
		if err = iface.VulkanInit(p); err != nil {
			return err
		}
	}
	return nil
}

// selectQueues finds a queue family with the capabilities of mode and, when
// presenting, one that can present to the surface; preferring a single
// family that does both.
func (p *Platform) selectQueues(mode VulkanMode) error {
	families := p.gpu.QueueFamilyProperties()
	if len(families) == 0 {
		return errors.New("vulkan: no queue families found on GPU 0")
	}
	required := mode.queueFlags()
	needsPresent := mode.Has(VulkanPresent)

	graphics, present := -1, -1
	for i, q := range families {
		if q.QueueCount == 0 {
			continue
		}
		supportsPresent := false
		if needsPresent {
			ok, err := p.gpu.SurfaceSupport(uint32(i), p.surface)
			if err != nil {
				return err
			}
			supportsPresent = ok
		}
		capable := q.QueueFlags&required == required
		if capable && (!needsPresent || supportsPresent) {
			graphics, present = i, i
			break
		}
		if capable && graphics < 0 {
			graphics = i
		}
		if supportsPresent && present < 0 {
			present = i
		}
	}
	if graphics < 0 {
		return errors.New("vulkan: could not find a suitable queue family for the target Vulkan mode")
	}
	if needsPresent && present < 0 {
		return errors.New("vulkan: could not find a queue family with present capabilities")
	}
	if present < 0 {
		present = graphics
	}
	p.graphicsQueueIndex = uint32(graphics)
	p.presentQueueIndex = uint32(present)
	return nil
}

func (p *Platform) Instance() *Instance {
	return p.instance
}

func (p *Platform) PhysicalDevice() *PhysicalDevice {
	return p.gpu
}

func (p *Platform) Device() *Device {
	return p.device
}

// Surface returns the presentation surface, or nil without VulkanPresent.
func (p *Platform) Surface() *Surface {
	return p.surface
}

func (p *Platform) MemoryProperties() MemoryProperties {
	return p.memoryProperties
}

func (p *Platform) PhysicalDeviceProperties() PhysicalDeviceProperties {
	return p.gpuProperties
}

func (p *Platform) GraphicsQueueFamilyIndex() uint32 {
	return p.graphicsQueueIndex
}

func (p *Platform) PresentQueueFamilyIndex() uint32 {
	return p.presentQueueIndex
}

// HasSeparatePresentQueue is true when PresentQueueFamilyIndex differs from GraphicsQueueFamilyIndex.
func (p *Platform) HasSeparatePresentQueue() bool {
	return p.presentQueueIndex != p.graphicsQueueIndex
}

func (p *Platform) GraphicsQueue() *Queue {
	return p.graphicsQueue
}

func (p *Platform) PresentQueue() *Queue {
	return p.presentQueue
}

// NewContext creates a submission context on the graphics queue.
func (p *Platform) NewContext() (*Context, error) {
	return NewContext(p.device, p.graphicsQueue)
}

// Destroy waits for the device and destroys everything the platform created,
// children first.
func (p *Platform) Destroy() {
	if p.device != nil {
		if err := p.device.WaitIdle(); err != nil {
			warnLog.Println(err)
		}
	}
	if p.surface != nil {
		p.surface.Destroy()
	}
	if p.device != nil {
		p.device.Destroy()
	}
	if p.debug != nil {
		p.debug.Destroy()
	}
	if p.instance != nil {
		p.instance.Destroy()
	}
}

func contains(list []string, name string) bool {
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}
