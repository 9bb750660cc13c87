package vkobj

import vk "github.com/vulkan-go/vulkan"

// VulkanMode lists the queue capabilities an application needs.
type VulkanMode uint32

const (
	VulkanNone     VulkanMode = 0
	VulkanCompute  VulkanMode = 1 << 0
	VulkanGraphics VulkanMode = 1 << 1
	VulkanPresent  VulkanMode = 1 << 2
)

func (v VulkanMode) Has(mode VulkanMode) bool {
	return v&mode == mode
}

// queueFlags returns the queue capabilities the mode requires.
func (v VulkanMode) queueFlags() vk.QueueFlags {
	var flags vk.QueueFlags
	if v.Has(VulkanCompute) {
		flags |= vk.QueueFlags(vk.QueueComputeBit)
	}
	if v.Has(VulkanGraphics) {
		flags |= vk.QueueFlags(vk.QueueGraphicsBit)
	}
	return flags
}

// Application describes what NewPlatform has to set up.
type Application interface {
	VulkanAPIVersion() uint32
	VulkanAppVersion() uint32
	VulkanAppName() string
	VulkanMode() VulkanMode
	VulkanInstanceExtensions() []string
	VulkanDeviceExtensions() []string

	// DECORATORS:
	// ApplicationVulkanLayers
	// ApplicationSurface
	// ApplicationDebug
	// ApplicationInit
}

type ApplicationVulkanLayers interface {
	VulkanLayers() []string
}

// ApplicationSurface is required for VulkanPresent. The surface is created
// right after the instance and owned by the platform.
type ApplicationSurface interface {
	VulkanSurface(inst *Instance) (*Surface, error)
}

type ApplicationDebug interface {
	VulkanDebug() bool
}

// ApplicationInit is called once the device and queues exist.
type ApplicationInit interface {
	VulkanInit(p *Platform) error
}

var (
	DefaultVulkanAppVersion = uint32(vk.MakeVersion(1, 0, 0))
	DefaultVulkanAPIVersion = uint32(vk.MakeVersion(1, 0, 0))
	DefaultVulkanMode       = VulkanCompute | VulkanGraphics
)

// AppConfig is a plain Application. Zero versions and mode fall back to the
// defaults.
type AppConfig struct {
	Name               string
	Version            uint32
	APIVersion         uint32
	Mode               VulkanMode
	InstanceExtensions []string
	DeviceExtensions   []string
	Layers             []string
	Debug              bool
}

func (c *AppConfig) VulkanAPIVersion() uint32 {
	if c.APIVersion == 0 {
		return DefaultVulkanAPIVersion
	}
	return c.APIVersion
}

func (c *AppConfig) VulkanAppVersion() uint32 {
	if c.Version == 0 {
		return DefaultVulkanAppVersion
	}
	return c.Version
}

func (c *AppConfig) VulkanAppName() string {
	return c.Name
}

func (c *AppConfig) VulkanMode() VulkanMode {
	if c.Mode == VulkanNone {
		return DefaultVulkanMode
	}
	return c.Mode
}

func (c *AppConfig) VulkanInstanceExtensions() []string {
	return c.InstanceExtensions
}

func (c *AppConfig) VulkanDeviceExtensions() []string {
	return c.DeviceExtensions
}

func (c *AppConfig) VulkanLayers() []string {
	return c.Layers
}

func (c *AppConfig) VulkanDebug() bool {
	return c.Debug
}
