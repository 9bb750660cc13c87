package native

import "unsafe"

// Limits of the fixed-size arrays in the core structures.
const (
	MaxExtensionNameSize = 256
	MaxDescriptionSize   = 256
	MaxDeviceNameSize    = 256
	UUIDSize             = 16
	MaxMemoryTypes       = 32
	MaxMemoryHeaps       = 16
	FeatureCount         = 55
)

type Extent2D struct {
	Width  uint32
	Height uint32
}

type Extent3D struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

type Offset2D struct {
	X int32
	Y int32
}

type Rect2D struct {
	Offset Offset2D
	Extent Extent2D
}

type AllocationCallbacks struct {
	PUserData             uintptr
	PfnAllocation         uintptr
	PfnReallocation       uintptr
	PfnFree               uintptr
	PfnInternalAllocation uintptr
	PfnInternalFree       uintptr
}

type ApplicationInfo struct {
	SType              int32
	PNext              unsafe.Pointer
	PApplicationName   *byte
	ApplicationVersion uint32
	PEngineName        *byte
	EngineVersion      uint32
	APIVersion         uint32
}

type InstanceCreateInfo struct {
	SType                   int32
	PNext                   unsafe.Pointer
	Flags                   uint32
	PApplicationInfo        *ApplicationInfo
	EnabledLayerCount       uint32
	PpEnabledLayerNames     **byte
	EnabledExtensionCount   uint32
	PpEnabledExtensionNames **byte
}

type ExtensionProperties struct {
	ExtensionName [MaxExtensionNameSize]byte
	SpecVersion   uint32
}

type LayerProperties struct {
	LayerName             [MaxExtensionNameSize]byte
	SpecVersion           uint32
	ImplementationVersion uint32
	Description           [MaxDescriptionSize]byte
}

// PhysicalDeviceProperties keeps VkPhysicalDeviceLimits and
// VkPhysicalDeviceSparseProperties as raw words; only the header is decoded.
type PhysicalDeviceProperties struct {
	APIVersion        uint32
	DriverVersion     uint32
	VendorID          uint32
	DeviceID          uint32
	DeviceType        int32
	DeviceName        [MaxDeviceNameSize]byte
	PipelineCacheUUID [UUIDSize]byte
	Limits            [63]uint64
	SparseProperties  [5]uint32
}

type QueueFamilyProperties struct {
	QueueFlags                  uint32
	QueueCount                  uint32
	TimestampValidBits          uint32
	MinImageTransferGranularity Extent3D
}

type MemoryType struct {
	PropertyFlags uint32
	HeapIndex     uint32
}

type MemoryHeap struct {
	Size  uint64
	Flags uint32
}

type PhysicalDeviceMemoryProperties struct {
	MemoryTypeCount uint32
	MemoryTypes     [MaxMemoryTypes]MemoryType
	MemoryHeapCount uint32
	MemoryHeaps     [MaxMemoryHeaps]MemoryHeap
}

// PhysicalDeviceFeatures is VkPhysicalDeviceFeatures: 55 VkBool32 in
// declaration order.
type PhysicalDeviceFeatures [FeatureCount]uint32

type DeviceQueueCreateInfo struct {
	SType            int32
	PNext            unsafe.Pointer
	Flags            uint32
	QueueFamilyIndex uint32
	QueueCount       uint32
	PQueuePriorities *float32
}

type DeviceCreateInfo struct {
	SType                   int32
	PNext                   unsafe.Pointer
	Flags                   uint32
	QueueCreateInfoCount    uint32
	PQueueCreateInfos       *DeviceQueueCreateInfo
	EnabledLayerCount       uint32
	PpEnabledLayerNames     **byte
	EnabledExtensionCount   uint32
	PpEnabledExtensionNames **byte
	PEnabledFeatures        *PhysicalDeviceFeatures
}

type SubmitInfo struct {
	SType                int32
	PNext                unsafe.Pointer
	WaitSemaphoreCount   uint32
	PWaitSemaphores      *uint64
	PWaitDstStageMask    *uint32
	CommandBufferCount   uint32
	PCommandBuffers      *uintptr
	SignalSemaphoreCount uint32
	PSignalSemaphores    *uint64
}

type FenceCreateInfo struct {
	SType int32
	PNext unsafe.Pointer
	Flags uint32
}

type SemaphoreCreateInfo struct {
	SType int32
	PNext unsafe.Pointer
	Flags uint32
}

type EventCreateInfo struct {
	SType int32
	PNext unsafe.Pointer
	Flags uint32
}

type QueryPoolCreateInfo struct {
	SType              int32
	PNext              unsafe.Pointer
	Flags              uint32
	QueryType          int32
	QueryCount         uint32
	PipelineStatistics uint32
}

type DebugReportCallbackCreateInfo struct {
	SType       int32
	PNext       unsafe.Pointer
	Flags       uint32
	PfnCallback uintptr
	PUserData   uintptr
}
