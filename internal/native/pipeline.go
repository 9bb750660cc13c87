package native

import "unsafe"

type SpecializationMapEntry struct {
	ConstantID uint32
	Offset     uint32
	Size       uintptr
}

type SpecializationInfo struct {
	MapEntryCount uint32
	PMapEntries   *SpecializationMapEntry
	DataSize      uintptr
	PData         unsafe.Pointer
}

type PipelineShaderStageCreateInfo struct {
	SType               int32
	PNext               unsafe.Pointer
	Flags               uint32
	Stage               uint32
	Module              uint64
	PName               *byte
	PSpecializationInfo *SpecializationInfo
}

type VertexInputBindingDescription struct {
	Binding   uint32
	Stride    uint32
	InputRate int32
}

type VertexInputAttributeDescription struct {
	Location uint32
	Binding  uint32
	Format   int32
	Offset   uint32
}

type PipelineVertexInputStateCreateInfo struct {
	SType                           int32
	PNext                           unsafe.Pointer
	Flags                           uint32
	VertexBindingDescriptionCount   uint32
	PVertexBindingDescriptions      *VertexInputBindingDescription
	VertexAttributeDescriptionCount uint32
	PVertexAttributeDescriptions    *VertexInputAttributeDescription
}

type PipelineInputAssemblyStateCreateInfo struct {
	SType                  int32
	PNext                  unsafe.Pointer
	Flags                  uint32
	Topology               int32
	PrimitiveRestartEnable uint32
}

type PipelineTessellationStateCreateInfo struct {
	SType              int32
	PNext              unsafe.Pointer
	Flags              uint32
	PatchControlPoints uint32
}

type Viewport struct {
	X        float32
	Y        float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}

type PipelineViewportStateCreateInfo struct {
	SType         int32
	PNext         unsafe.Pointer
	Flags         uint32
	ViewportCount uint32
	PViewports    *Viewport
	ScissorCount  uint32
	PScissors     *Rect2D
}

type PipelineRasterizationStateCreateInfo struct {
	SType                   int32
	PNext                   unsafe.Pointer
	Flags                   uint32
	DepthClampEnable        uint32
	RasterizerDiscardEnable uint32
	PolygonMode             int32
	CullMode                uint32
	FrontFace               int32
	DepthBiasEnable         uint32
	DepthBiasConstantFactor float32
	DepthBiasClamp          float32
	DepthBiasSlopeFactor    float32
	LineWidth               float32
}

type PipelineMultisampleStateCreateInfo struct {
	SType                 int32
	PNext                 unsafe.Pointer
	Flags                 uint32
	RasterizationSamples  uint32
	SampleShadingEnable   uint32
	MinSampleShading      float32
	PSampleMask           *uint32
	AlphaToCoverageEnable uint32
	AlphaToOneEnable      uint32
}

type StencilOpState struct {
	FailOp      int32
	PassOp      int32
	DepthFailOp int32
	CompareOp   int32
	CompareMask uint32
	WriteMask   uint32
	Reference   uint32
}

type PipelineDepthStencilStateCreateInfo struct {
	SType                 int32
	PNext                 unsafe.Pointer
	Flags                 uint32
	DepthTestEnable       uint32
	DepthWriteEnable      uint32
	DepthCompareOp        int32
	DepthBoundsTestEnable uint32
	StencilTestEnable     uint32
	Front                 StencilOpState
	Back                  StencilOpState
	MinDepthBounds        float32
	MaxDepthBounds        float32
}

type PipelineColorBlendAttachmentState struct {
	BlendEnable         uint32
	SrcColorBlendFactor int32
	DstColorBlendFactor int32
	ColorBlendOp        int32
	SrcAlphaBlendFactor int32
	DstAlphaBlendFactor int32
	AlphaBlendOp        int32
	ColorWriteMask      uint32
}

type PipelineColorBlendStateCreateInfo struct {
	SType           int32
	PNext           unsafe.Pointer
	Flags           uint32
	LogicOpEnable   uint32
	LogicOp         int32
	AttachmentCount uint32
	PAttachments    *PipelineColorBlendAttachmentState
	BlendConstants  [4]float32
}

type PipelineDynamicStateCreateInfo struct {
	SType             int32
	PNext             unsafe.Pointer
	Flags             uint32
	DynamicStateCount uint32
	PDynamicStates    *int32
}

type GraphicsPipelineCreateInfo struct {
	SType               int32
	PNext               unsafe.Pointer
	Flags               uint32
	StageCount          uint32
	PStages             *PipelineShaderStageCreateInfo
	PVertexInputState   *PipelineVertexInputStateCreateInfo
	PInputAssemblyState *PipelineInputAssemblyStateCreateInfo
	PTessellationState  *PipelineTessellationStateCreateInfo
	PViewportState      *PipelineViewportStateCreateInfo
	PRasterizationState *PipelineRasterizationStateCreateInfo
	PMultisampleState   *PipelineMultisampleStateCreateInfo
	PDepthStencilState  *PipelineDepthStencilStateCreateInfo
	PColorBlendState    *PipelineColorBlendStateCreateInfo
	PDynamicState       *PipelineDynamicStateCreateInfo
	Layout              uint64
	RenderPass          uint64
	Subpass             uint32
	BasePipelineHandle  uint64
	BasePipelineIndex   int32
}

type ComputePipelineCreateInfo struct {
	SType              int32
	PNext              unsafe.Pointer
	Flags              uint32
	Stage              PipelineShaderStageCreateInfo
	Layout             uint64
	BasePipelineHandle uint64
	BasePipelineIndex  int32
}
