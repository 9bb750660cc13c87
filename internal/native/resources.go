package native

import "unsafe"

type MemoryAllocateInfo struct {
	SType           int32
	PNext           unsafe.Pointer
	AllocationSize  uint64
	MemoryTypeIndex uint32
}

type MappedMemoryRange struct {
	SType  int32
	PNext  unsafe.Pointer
	Memory uint64
	Offset uint64
	Size   uint64
}

type MemoryRequirements struct {
	Size           uint64
	Alignment      uint64
	MemoryTypeBits uint32
}

type BufferCreateInfo struct {
	SType                 int32
	PNext                 unsafe.Pointer
	Flags                 uint32
	Size                  uint64
	Usage                 uint32
	SharingMode           int32
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   *uint32
}

type ImageCreateInfo struct {
	SType                 int32
	PNext                 unsafe.Pointer
	Flags                 uint32
	ImageType             int32
	Format                int32
	Extent                Extent3D
	MipLevels             uint32
	ArrayLayers           uint32
	Samples               uint32
	Tiling                int32
	Usage                 uint32
	SharingMode           int32
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   *uint32
	InitialLayout         int32
}

type ImageSubresource struct {
	AspectMask uint32
	MipLevel   uint32
	ArrayLayer uint32
}

type SubresourceLayout struct {
	Offset     uint64
	Size       uint64
	RowPitch   uint64
	ArrayPitch uint64
	DepthPitch uint64
}

type ComponentMapping struct {
	R int32
	G int32
	B int32
	A int32
}

type ImageSubresourceRange struct {
	AspectMask     uint32
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

type ImageViewCreateInfo struct {
	SType            int32
	PNext            unsafe.Pointer
	Flags            uint32
	Image            uint64
	ViewType         int32
	Format           int32
	Components       ComponentMapping
	SubresourceRange ImageSubresourceRange
}

type SamplerCreateInfo struct {
	SType                   int32
	PNext                   unsafe.Pointer
	Flags                   uint32
	MagFilter               int32
	MinFilter               int32
	MipmapMode              int32
	AddressModeU            int32
	AddressModeV            int32
	AddressModeW            int32
	MipLodBias              float32
	AnisotropyEnable        uint32
	MaxAnisotropy           float32
	CompareEnable           uint32
	CompareOp               int32
	MinLod                  float32
	MaxLod                  float32
	BorderColor             int32
	UnnormalizedCoordinates uint32
}

type ShaderModuleCreateInfo struct {
	SType    int32
	PNext    unsafe.Pointer
	Flags    uint32
	CodeSize uintptr
	PCode    *uint32
}

type AttachmentDescription struct {
	Flags          uint32
	Format         int32
	Samples        uint32
	LoadOp         int32
	StoreOp        int32
	StencilLoadOp  int32
	StencilStoreOp int32
	InitialLayout  int32
	FinalLayout    int32
}

type AttachmentReference struct {
	Attachment uint32
	Layout     int32
}

type SubpassDescription struct {
	Flags                   uint32
	PipelineBindPoint       int32
	InputAttachmentCount    uint32
	PInputAttachments       *AttachmentReference
	ColorAttachmentCount    uint32
	PColorAttachments       *AttachmentReference
	PResolveAttachments     *AttachmentReference
	PDepthStencilAttachment *AttachmentReference
	PreserveAttachmentCount uint32
	PPreserveAttachments    *uint32
}

type SubpassDependency struct {
	SrcSubpass      uint32
	DstSubpass      uint32
	SrcStageMask    uint32
	DstStageMask    uint32
	SrcAccessMask   uint32
	DstAccessMask   uint32
	DependencyFlags uint32
}

type RenderPassCreateInfo struct {
	SType           int32
	PNext           unsafe.Pointer
	Flags           uint32
	AttachmentCount uint32
	PAttachments    *AttachmentDescription
	SubpassCount    uint32
	PSubpasses      *SubpassDescription
	DependencyCount uint32
	PDependencies   *SubpassDependency
}

type FramebufferCreateInfo struct {
	SType           int32
	PNext           unsafe.Pointer
	Flags           uint32
	RenderPass      uint64
	AttachmentCount uint32
	PAttachments    *uint64
	Width           uint32
	Height          uint32
	Layers          uint32
}

type PushConstantRange struct {
	StageFlags uint32
	Offset     uint32
	Size       uint32
}

type PipelineLayoutCreateInfo struct {
	SType                  int32
	PNext                  unsafe.Pointer
	Flags                  uint32
	SetLayoutCount         uint32
	PSetLayouts            *uint64
	PushConstantRangeCount uint32
	PPushConstantRanges    *PushConstantRange
}

type DescriptorSetLayoutBinding struct {
	Binding            uint32
	DescriptorType     int32
	DescriptorCount    uint32
	StageFlags         uint32
	PImmutableSamplers *uint64
}

type DescriptorSetLayoutCreateInfo struct {
	SType        int32
	PNext        unsafe.Pointer
	Flags        uint32
	BindingCount uint32
	PBindings    *DescriptorSetLayoutBinding
}

type DescriptorPoolSize struct {
	Type            int32
	DescriptorCount uint32
}

type DescriptorPoolCreateInfo struct {
	SType         int32
	PNext         unsafe.Pointer
	Flags         uint32
	MaxSets       uint32
	PoolSizeCount uint32
	PPoolSizes    *DescriptorPoolSize
}

type DescriptorSetAllocateInfo struct {
	SType              int32
	PNext              unsafe.Pointer
	DescriptorPool     uint64
	DescriptorSetCount uint32
	PSetLayouts        *uint64
}

type DescriptorImageInfo struct {
	Sampler     uint64
	ImageView   uint64
	ImageLayout int32
}

type DescriptorBufferInfo struct {
	Buffer uint64
	Offset uint64
	Range  uint64
}

type WriteDescriptorSet struct {
	SType            int32
	PNext            unsafe.Pointer
	DstSet           uint64
	DstBinding       uint32
	DstArrayElement  uint32
	DescriptorCount  uint32
	DescriptorType   int32
	PImageInfo       *DescriptorImageInfo
	PBufferInfo      *DescriptorBufferInfo
	PTexelBufferView *uint64
}

type CopyDescriptorSet struct {
	SType           int32
	PNext           unsafe.Pointer
	SrcSet          uint64
	SrcBinding      uint32
	SrcArrayElement uint32
	DstSet          uint64
	DstBinding      uint32
	DstArrayElement uint32
	DescriptorCount uint32
}
