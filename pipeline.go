package vkobj

import (
	"github.com/andewx/vkobj/internal/native"
	vk "github.com/vulkan-go/vulkan"
)

// PushConstantRange mirrors VkPushConstantRange.
type PushConstantRange struct {
	StageFlags vk.ShaderStageFlags
	Offset     uint32
	Size       uint32
}

// PipelineLayoutCreateInfo mirrors VkPipelineLayoutCreateInfo.
type PipelineLayoutCreateInfo struct {
	SetLayouts         []*DescriptorSetLayout
	PushConstantRanges []PushConstantRange
}

func (ci *PipelineLayoutCreateInfo) toNative(a *native.Arena) *native.PipelineLayoutCreateInfo {
	n := native.New[native.PipelineLayoutCreateInfo](a)
	n.SType = sType(vk.StructureTypePipelineLayoutCreateInfo)
	n.SetLayoutCount = uint32(len(ci.SetLayouts))
	n.PSetLayouts = native.Slice(a, handles(ci.SetLayouts))
	ranges := native.Make[native.PushConstantRange](a, len(ci.PushConstantRanges))
	for i, r := range ci.PushConstantRanges {
		ranges[i] = native.PushConstantRange{StageFlags: uint32(r.StageFlags), Offset: r.Offset, Size: r.Size}
	}
	n.PushConstantRangeCount = uint32(len(ranges))
	if len(ranges) > 0 {
		n.PPushConstantRanges = &ranges[0]
	}
	return n
}

// PipelineLayout wraps VkPipelineLayout.
type PipelineLayout struct {
	resource
	device *Device
	handle Handle
}

func (d *Device) CreatePipelineLayout(info *PipelineLayoutCreateInfo) (*PipelineLayout, error) {
	l := &PipelineLayout{resource: resource{kind: "pipeline layout"}, device: d}
	l.SetAllocator(d.Allocator())

	var a native.Arena
	defer a.Free()
	h, err := d.createHandle("vkCreatePipelineLayout", native.Addr(info.toNative(&a)), l.callbacks.addr(), &a)
	if err != nil {
		return nil, err
	}
	l.handle = h
	watch(l)
	return l, nil
}

func (l *PipelineLayout) Handle() Handle {
	return l.handle
}

func (l *PipelineLayout) Destroy() {
	l.release(func(alloc uintptr) {
		l.device.destroyHandle("vkDestroyPipelineLayout", l.handle, alloc)
	})
}

// SpecializationMapEntry mirrors VkSpecializationMapEntry.
type SpecializationMapEntry struct {
	ConstantID uint32
	Offset     uint32
	Size       uintptr
}

// SpecializationInfo mirrors VkSpecializationInfo; Data is the raw constant
// block the entries index into.
type SpecializationInfo struct {
	MapEntries []SpecializationMapEntry
	Data       []byte
}

// PipelineShaderStageCreateInfo mirrors VkPipelineShaderStageCreateInfo.
// An empty Name means "main".
type PipelineShaderStageCreateInfo struct {
	Flags          vk.PipelineShaderStageCreateFlags
	Stage          vk.ShaderStageFlagBits
	Module         *ShaderModule
	Name           string
	Specialization *SpecializationInfo
}

func (s *PipelineShaderStageCreateInfo) fill(a *native.Arena, n *native.PipelineShaderStageCreateInfo) {
	n.SType = sType(vk.StructureTypePipelineShaderStageCreateInfo)
	n.Flags = uint32(s.Flags)
	n.Stage = uint32(s.Stage)
	if s.Module != nil {
		n.Module = uint64(s.Module.handle)
	}
	name := s.Name
	if name == "" {
		name = "main"
	}
	n.PName = a.CString(name)
	if sp := s.Specialization; sp != nil {
		ns := native.New[native.SpecializationInfo](a)
		entries := native.Make[native.SpecializationMapEntry](a, len(sp.MapEntries))
		for i, e := range sp.MapEntries {
			entries[i] = native.SpecializationMapEntry(e)
		}
		ns.MapEntryCount = uint32(len(entries))
		if len(entries) > 0 {
			ns.PMapEntries = &entries[0]
		}
		ns.DataSize = uintptr(len(sp.Data))
		ns.PData = a.Bytes(sp.Data)
		n.PSpecializationInfo = ns
	}
}

type VertexInputBindingDescription struct {
	Binding   uint32
	Stride    uint32
	InputRate vk.VertexInputRate
}

type VertexInputAttributeDescription struct {
	Location uint32
	Binding  uint32
	Format   vk.Format
	Offset   uint32
}

type VertexInputState struct {
	Bindings   []VertexInputBindingDescription
	Attributes []VertexInputAttributeDescription
}

type InputAssemblyState struct {
	Topology               vk.PrimitiveTopology
	PrimitiveRestartEnable bool
}

type TessellationState struct {
	PatchControlPoints uint32
}

// ViewportState lists static viewports and scissors. With dynamic viewport
// and scissor state only the counts matter; set ViewportCount and
// ScissorCount instead.
type ViewportState struct {
	Viewports     []Viewport
	Scissors      []Rect2D
	ViewportCount uint32
	ScissorCount  uint32
}

type RasterizationState struct {
	DepthClampEnable        bool
	RasterizerDiscardEnable bool
	PolygonMode             vk.PolygonMode
	CullMode                vk.CullModeFlags
	FrontFace               vk.FrontFace
	DepthBiasEnable         bool
	DepthBiasConstantFactor float32
	DepthBiasClamp          float32
	DepthBiasSlopeFactor    float32
	LineWidth               float32
}

type MultisampleState struct {
	RasterizationSamples  vk.SampleCountFlagBits
	SampleShadingEnable   bool
	MinSampleShading      float32
	SampleMask            []uint32
	AlphaToCoverageEnable bool
	AlphaToOneEnable      bool
}

type StencilOpState struct {
	FailOp      vk.StencilOp
	PassOp      vk.StencilOp
	DepthFailOp vk.StencilOp
	CompareOp   vk.CompareOp
	CompareMask uint32
	WriteMask   uint32
	Reference   uint32
}

func (s StencilOpState) toNative() native.StencilOpState {
	return native.StencilOpState{
		FailOp:      int32(s.FailOp),
		PassOp:      int32(s.PassOp),
		DepthFailOp: int32(s.DepthFailOp),
		CompareOp:   int32(s.CompareOp),
		CompareMask: s.CompareMask,
		WriteMask:   s.WriteMask,
		Reference:   s.Reference,
	}
}

type DepthStencilState struct {
	DepthTestEnable       bool
	DepthWriteEnable      bool
	DepthCompareOp        vk.CompareOp
	DepthBoundsTestEnable bool
	StencilTestEnable     bool
	Front                 StencilOpState
	Back                  StencilOpState
	MinDepthBounds        float32
	MaxDepthBounds        float32
}

type ColorBlendAttachmentState struct {
	BlendEnable         bool
	SrcColorBlendFactor vk.BlendFactor
	DstColorBlendFactor vk.BlendFactor
	ColorBlendOp        vk.BlendOp
	SrcAlphaBlendFactor vk.BlendFactor
	DstAlphaBlendFactor vk.BlendFactor
	AlphaBlendOp        vk.BlendOp
	ColorWriteMask      vk.ColorComponentFlags
}

type ColorBlendState struct {
	LogicOpEnable  bool
	LogicOp        vk.LogicOp
	Attachments    []ColorBlendAttachmentState
	BlendConstants [4]float32
}

// GraphicsPipelineCreateInfo mirrors VkGraphicsPipelineCreateInfo. Nil
// state pointers are passed as NULL.
type GraphicsPipelineCreateInfo struct {
	Flags             vk.PipelineCreateFlags
	Stages            []PipelineShaderStageCreateInfo
	VertexInput       *VertexInputState
	InputAssembly     *InputAssemblyState
	Tessellation      *TessellationState
	Viewport          *ViewportState
	Rasterization     *RasterizationState
	Multisample       *MultisampleState
	DepthStencil      *DepthStencilState
	ColorBlend        *ColorBlendState
	DynamicStates     []vk.DynamicState
	Layout            *PipelineLayout
	RenderPass        *RenderPass
	Subpass           uint32
	BasePipeline      *Pipeline
	BasePipelineIndex int32
}

func (ci *GraphicsPipelineCreateInfo) fill(a *native.Arena, n *native.GraphicsPipelineCreateInfo) {
	n.SType = sType(vk.StructureTypeGraphicsPipelineCreateInfo)
	n.Flags = uint32(ci.Flags)

	stages := native.Make[native.PipelineShaderStageCreateInfo](a, len(ci.Stages))
	for i := range ci.Stages {
		ci.Stages[i].fill(a, &stages[i])
	}
	n.StageCount = uint32(len(stages))
	if len(stages) > 0 {
		n.PStages = &stages[0]
	}

	if vi := ci.VertexInput; vi != nil {
		nv := native.New[native.PipelineVertexInputStateCreateInfo](a)
		nv.SType = sType(vk.StructureTypePipelineVertexInputStateCreateInfo)
		bindings := native.Make[native.VertexInputBindingDescription](a, len(vi.Bindings))
		for i, b := range vi.Bindings {
			bindings[i] = native.VertexInputBindingDescription{Binding: b.Binding, Stride: b.Stride, InputRate: int32(b.InputRate)}
		}
		nv.VertexBindingDescriptionCount = uint32(len(bindings))
		if len(bindings) > 0 {
			nv.PVertexBindingDescriptions = &bindings[0]
		}
		attrs := native.Make[native.VertexInputAttributeDescription](a, len(vi.Attributes))
		for i, at := range vi.Attributes {
			attrs[i] = native.VertexInputAttributeDescription{
				Location: at.Location, Binding: at.Binding, Format: int32(at.Format), Offset: at.Offset,
			}
		}
		nv.VertexAttributeDescriptionCount = uint32(len(attrs))
		if len(attrs) > 0 {
			nv.PVertexAttributeDescriptions = &attrs[0]
		}
		n.PVertexInputState = nv
	}

	if ia := ci.InputAssembly; ia != nil {
		ni := native.New[native.PipelineInputAssemblyStateCreateInfo](a)
		ni.SType = sType(vk.StructureTypePipelineInputAssemblyStateCreateInfo)
		ni.Topology = int32(ia.Topology)
		ni.PrimitiveRestartEnable = bool32(ia.PrimitiveRestartEnable)
		n.PInputAssemblyState = ni
	}

	if ts := ci.Tessellation; ts != nil {
		nt := native.New[native.PipelineTessellationStateCreateInfo](a)
		nt.SType = sType(vk.StructureTypePipelineTessellationStateCreateInfo)
		nt.PatchControlPoints = ts.PatchControlPoints
		n.PTessellationState = nt
	}

	if vp := ci.Viewport; vp != nil {
		nv := native.New[native.PipelineViewportStateCreateInfo](a)
		nv.SType = sType(vk.StructureTypePipelineViewportStateCreateInfo)
		nv.ViewportCount = uint32(len(vp.Viewports))
		if nv.ViewportCount == 0 {
			nv.ViewportCount = vp.ViewportCount
		}
		nv.PViewports = native.Slice(a, vp.Viewports)
		nv.ScissorCount = uint32(len(vp.Scissors))
		if nv.ScissorCount == 0 {
			nv.ScissorCount = vp.ScissorCount
		}
		nv.PScissors = native.Slice(a, vp.Scissors)
		n.PViewportState = nv
	}

	if rs := ci.Rasterization; rs != nil {
		nr := native.New[native.PipelineRasterizationStateCreateInfo](a)
		nr.SType = sType(vk.StructureTypePipelineRasterizationStateCreateInfo)
		nr.DepthClampEnable = bool32(rs.DepthClampEnable)
		nr.RasterizerDiscardEnable = bool32(rs.RasterizerDiscardEnable)
		nr.PolygonMode = int32(rs.PolygonMode)
		nr.CullMode = uint32(rs.CullMode)
		nr.FrontFace = int32(rs.FrontFace)
		nr.DepthBiasEnable = bool32(rs.DepthBiasEnable)
		nr.DepthBiasConstantFactor = rs.DepthBiasConstantFactor
		nr.DepthBiasClamp = rs.DepthBiasClamp
		nr.DepthBiasSlopeFactor = rs.DepthBiasSlopeFactor
		nr.LineWidth = rs.LineWidth
		if nr.LineWidth == 0 {
			nr.LineWidth = 1
		}
		n.PRasterizationState = nr
	}

	if ms := ci.Multisample; ms != nil {
		nm := native.New[native.PipelineMultisampleStateCreateInfo](a)
		nm.SType = sType(vk.StructureTypePipelineMultisampleStateCreateInfo)
		nm.RasterizationSamples = uint32(ms.RasterizationSamples)
		if nm.RasterizationSamples == 0 {
			nm.RasterizationSamples = uint32(vk.SampleCount1Bit)
		}
		nm.SampleShadingEnable = bool32(ms.SampleShadingEnable)
		nm.MinSampleShading = ms.MinSampleShading
		nm.PSampleMask = native.Slice(a, ms.SampleMask)
		nm.AlphaToCoverageEnable = bool32(ms.AlphaToCoverageEnable)
		nm.AlphaToOneEnable = bool32(ms.AlphaToOneEnable)
		n.PMultisampleState = nm
	}

	if ds := ci.DepthStencil; ds != nil {
		nd := native.New[native.PipelineDepthStencilStateCreateInfo](a)
		nd.SType = sType(vk.StructureTypePipelineDepthStencilStateCreateInfo)
		nd.DepthTestEnable = bool32(ds.DepthTestEnable)
		nd.DepthWriteEnable = bool32(ds.DepthWriteEnable)
		nd.DepthCompareOp = int32(ds.DepthCompareOp)
		nd.DepthBoundsTestEnable = bool32(ds.DepthBoundsTestEnable)
		nd.StencilTestEnable = bool32(ds.StencilTestEnable)
		nd.Front = ds.Front.toNative()
		nd.Back = ds.Back.toNative()
		nd.MinDepthBounds = ds.MinDepthBounds
		nd.MaxDepthBounds = ds.MaxDepthBounds
		n.PDepthStencilState = nd
	}

	if cb := ci.ColorBlend; cb != nil {
		nc := native.New[native.PipelineColorBlendStateCreateInfo](a)
		nc.SType = sType(vk.StructureTypePipelineColorBlendStateCreateInfo)
		nc.LogicOpEnable = bool32(cb.LogicOpEnable)
		nc.LogicOp = int32(cb.LogicOp)
		atts := native.Make[native.PipelineColorBlendAttachmentState](a, len(cb.Attachments))
		for i, at := range cb.Attachments {
			atts[i] = native.PipelineColorBlendAttachmentState{
				BlendEnable:         bool32(at.BlendEnable),
				SrcColorBlendFactor: int32(at.SrcColorBlendFactor),
				DstColorBlendFactor: int32(at.DstColorBlendFactor),
				ColorBlendOp:        int32(at.ColorBlendOp),
				SrcAlphaBlendFactor: int32(at.SrcAlphaBlendFactor),
				DstAlphaBlendFactor: int32(at.DstAlphaBlendFactor),
				AlphaBlendOp:        int32(at.AlphaBlendOp),
				ColorWriteMask:      uint32(at.ColorWriteMask),
			}
		}
		nc.AttachmentCount = uint32(len(atts))
		if len(atts) > 0 {
			nc.PAttachments = &atts[0]
		}
		nc.BlendConstants = cb.BlendConstants
		n.PColorBlendState = nc
	}

	if len(ci.DynamicStates) > 0 {
		nd := native.New[native.PipelineDynamicStateCreateInfo](a)
		nd.SType = sType(vk.StructureTypePipelineDynamicStateCreateInfo)
		states := native.Make[int32](a, len(ci.DynamicStates))
		for i, s := range ci.DynamicStates {
			states[i] = int32(s)
		}
		nd.DynamicStateCount = uint32(len(states))
		nd.PDynamicStates = &states[0]
		n.PDynamicState = nd
	}

	if ci.Layout != nil {
		n.Layout = uint64(ci.Layout.handle)
	}
	if ci.RenderPass != nil {
		n.RenderPass = uint64(ci.RenderPass.handle)
	}
	n.Subpass = ci.Subpass
	if ci.BasePipeline != nil {
		n.BasePipelineHandle = uint64(ci.BasePipeline.handle)
	}
	n.BasePipelineIndex = ci.BasePipelineIndex
}

// ComputePipelineCreateInfo mirrors VkComputePipelineCreateInfo.
type ComputePipelineCreateInfo struct {
	Flags             vk.PipelineCreateFlags
	Stage             PipelineShaderStageCreateInfo
	Layout            *PipelineLayout
	BasePipeline      *Pipeline
	BasePipelineIndex int32
}

func (ci *ComputePipelineCreateInfo) fill(a *native.Arena, n *native.ComputePipelineCreateInfo) {
	n.SType = sType(vk.StructureTypeComputePipelineCreateInfo)
	n.Flags = uint32(ci.Flags)
	ci.Stage.fill(a, &n.Stage)
	if ci.Layout != nil {
		n.Layout = uint64(ci.Layout.handle)
	}
	if ci.BasePipeline != nil {
		n.BasePipelineHandle = uint64(ci.BasePipeline.handle)
	}
	n.BasePipelineIndex = ci.BasePipelineIndex
}

// Pipeline wraps VkPipeline.
type Pipeline struct {
	resource
	device    *Device
	handle    Handle
	bindPoint vk.PipelineBindPoint
}

func (p *Pipeline) Handle() Handle {
	return p.handle
}

// BindPoint is graphics or compute, depending on how the pipeline was made.
func (p *Pipeline) BindPoint() vk.PipelineBindPoint {
	return p.bindPoint
}

func (p *Pipeline) Destroy() {
	p.release(func(alloc uintptr) {
		p.device.destroyHandle("vkDestroyPipeline", p.handle, alloc)
	})
}

// CreateGraphicsPipelines creates one pipeline per info in a single call.
func (d *Device) CreateGraphicsPipelines(infos ...GraphicsPipelineCreateInfo) ([]*Pipeline, error) {
	var a native.Arena
	defer a.Free()
	list := native.Make[native.GraphicsPipelineCreateInfo](&a, len(infos))
	for i := range infos {
		infos[i].fill(&a, &list[i])
	}
	var first *native.GraphicsPipelineCreateInfo
	if len(list) > 0 {
		first = &list[0]
	}
	return d.createPipelines("vkCreateGraphicsPipelines", vk.PipelineBindPointGraphics,
		len(infos), native.Addr(first), &a)
}

// CreateComputePipelines creates one pipeline per info in a single call.
func (d *Device) CreateComputePipelines(infos ...ComputePipelineCreateInfo) ([]*Pipeline, error) {
	var a native.Arena
	defer a.Free()
	list := native.Make[native.ComputePipelineCreateInfo](&a, len(infos))
	for i := range infos {
		infos[i].fill(&a, &list[i])
	}
	var first *native.ComputePipelineCreateInfo
	if len(list) > 0 {
		first = &list[0]
	}
	return d.createPipelines("vkCreateComputePipelines", vk.PipelineBindPointCompute,
		len(infos), native.Addr(first), &a)
}

func (d *Device) createPipelines(name string, bindPoint vk.PipelineBindPoint, count int, infos uintptr, a *native.Arena) ([]*Pipeline, error) {
	if count == 0 {
		return nil, nil
	}
	out := native.Make[uint64](a, count)
	var cb callbackBlock
	cb.set(d.Allocator())
	err := d.cmds.check(name, d.handle, 0, uintptr(count), infos, cb.addr(), native.Addr(&out[0]))
	if err != nil {
		return nil, err
	}
	pipelines := make([]*Pipeline, count)
	for i, h := range out {
		p := &Pipeline{resource: resource{kind: "pipeline"}, device: d, handle: Handle(h), bindPoint: bindPoint}
		p.SetAllocator(d.Allocator())
		watch(p)
		pipelines[i] = p
	}
	return pipelines, nil
}

// DefaultGraphicsPipeline describes a vertex + fragment pipeline drawing
// filled, back-face culled triangle lists into one color attachment, with
// dynamic viewport and scissor.
func DefaultGraphicsPipeline(vert, frag *ShaderModule, layout *PipelineLayout, pass *RenderPass) GraphicsPipelineCreateInfo {
	return GraphicsPipelineCreateInfo{
		Stages: []PipelineShaderStageCreateInfo{
			{Stage: vk.ShaderStageVertexBit, Module: vert},
			{Stage: vk.ShaderStageFragmentBit, Module: frag},
		},
		VertexInput:   &VertexInputState{},
		InputAssembly: &InputAssemblyState{Topology: vk.PrimitiveTopologyTriangleList},
		Viewport:      &ViewportState{ViewportCount: 1, ScissorCount: 1},
		Rasterization: &RasterizationState{
			PolygonMode: vk.PolygonModeFill,
			CullMode:    vk.CullModeFlags(vk.CullModeBackBit),
			FrontFace:   vk.FrontFaceCounterClockwise,
			LineWidth:   1,
		},
		Multisample: &MultisampleState{RasterizationSamples: vk.SampleCount1Bit},
		ColorBlend: &ColorBlendState{
			Attachments: []ColorBlendAttachmentState{{
				ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit | vk.ColorComponentGBit |
					vk.ColorComponentBBit | vk.ColorComponentABit),
			}},
		},
		DynamicStates:     []vk.DynamicState{vk.DynamicStateViewport, vk.DynamicStateScissor},
		Layout:            layout,
		RenderPass:        pass,
		BasePipelineIndex: -1,
	}
}

// FullViewport covers extent with depth range [0, 1].
func FullViewport(extent Extent2D) Viewport {
	return Viewport{
		Width:    float32(extent.Width),
		Height:   float32(extent.Height),
		MaxDepth: 1,
	}
}
