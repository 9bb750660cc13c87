package vkobj

import (
	"testing"

	"github.com/andewx/vkobj/internal/fakevk"
	"github.com/andewx/vkobj/internal/native"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

// spirvHeader is the smallest bytecode CreateShaderModule accepts.
var spirvHeader = []byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x00, 0x01, 0x00}

type graphicsFixture struct {
	vert, frag *ShaderModule
	layout     *PipelineLayout
	pass       *RenderPass
}

func newGraphicsFixture(t *testing.T, dev *Device) *graphicsFixture {
	t.Helper()
	var f graphicsFixture
	var err error
	f.vert, err = dev.CreateShaderModule(spirvHeader)
	require.NoError(t, err)
	t.Cleanup(f.vert.Destroy)
	f.frag, err = dev.CreateShaderModule(spirvHeader)
	require.NoError(t, err)
	t.Cleanup(f.frag.Destroy)
	f.layout, err = dev.CreatePipelineLayout(&PipelineLayoutCreateInfo{})
	require.NoError(t, err)
	t.Cleanup(f.layout.Destroy)
	f.pass, err = dev.CreateRenderPass(ColorDepthRenderPass(vk.FormatB8g8r8a8Unorm, vk.FormatD32Sfloat, vk.ImageLayoutPresentSrc))
	require.NoError(t, err)
	t.Cleanup(f.pass.Destroy)
	return &f
}

func TestCreateGraphicsPipeline(t *testing.T) {
	d, dev := newTestDevice(t)
	f := newGraphicsFixture(t, dev)

	type seen struct {
		stageCount     uint32
		names          []string
		modules        []uint64
		viewportCount  uint32
		scissorCount   uint32
		dynamicCount   uint32
		colorCount     uint32
		lineWidth      float32
		samples        uint32
		layout, pass   uint64
		basePipeline   int32
		depthStencil   bool
		tessellation   bool
		vertexBindings uint32
	}
	var got seen
	d.Handle("vkCreateGraphicsPipelines", func(args []uintptr) vk.Result {
		assert.Zero(t, args[1], "pipeline cache")
		assert.Equal(t, uintptr(1), args[2])
		info := fakevk.Arg[native.GraphicsPipelineCreateInfo](args, 3)
		got.stageCount = info.StageCount
		for _, s := range native.View(info.PStages, info.StageCount) {
			got.names = append(got.names, native.CStringAt(s.PName))
			got.modules = append(got.modules, s.Module)
		}
		got.viewportCount = info.PViewportState.ViewportCount
		got.scissorCount = info.PViewportState.ScissorCount
		assert.Nil(t, info.PViewportState.PViewports)
		got.dynamicCount = info.PDynamicState.DynamicStateCount
		got.colorCount = info.PColorBlendState.AttachmentCount
		got.lineWidth = info.PRasterizationState.LineWidth
		got.samples = info.PMultisampleState.RasterizationSamples
		got.layout = info.Layout
		got.pass = info.RenderPass
		got.basePipeline = info.BasePipelineIndex
		got.depthStencil = info.PDepthStencilState != nil
		got.tessellation = info.PTessellationState != nil
		got.vertexBindings = info.PVertexInputState.VertexBindingDescriptionCount
		*fakevk.Arg[uint64](args, 5) = d.NewHandle()
		return vk.Success
	})

	pipelines, err := dev.CreateGraphicsPipelines(DefaultGraphicsPipeline(f.vert, f.frag, f.layout, f.pass))
	require.NoError(t, err)
	require.Len(t, pipelines, 1)
	p := pipelines[0]
	assert.Equal(t, vk.PipelineBindPointGraphics, p.BindPoint())
	assert.NotEqual(t, NullHandle, p.Handle())

	assert.Equal(t, seen{
		stageCount:    2,
		names:         []string{"main", "main"},
		modules:       []uint64{uint64(f.vert.Handle()), uint64(f.frag.Handle())},
		viewportCount: 1,
		scissorCount:  1,
		dynamicCount:  2,
		colorCount:    1,
		lineWidth:     1,
		samples:       uint32(vk.SampleCount1Bit),
		layout:        uint64(f.layout.Handle()),
		pass:          uint64(f.pass.Handle()),
		basePipeline:  -1,
	}, got)

	p.Destroy()
	p.Destroy()
	assert.True(t, p.Destroyed())
	assert.Equal(t, 1, d.Count("vkDestroyPipeline"))
}

func TestCreateComputePipelines(t *testing.T) {
	d, dev := newTestDevice(t)
	module, err := dev.CreateShaderModule(spirvHeader)
	require.NoError(t, err)
	defer module.Destroy()
	layout, err := dev.CreatePipelineLayout(&PipelineLayoutCreateInfo{
		PushConstantRanges: []PushConstantRange{{StageFlags: vk.ShaderStageFlags(vk.ShaderStageComputeBit), Size: 16}},
	})
	require.NoError(t, err)
	defer layout.Destroy()

	var entries []string
	var specSizes []uintptr
	d.Handle("vkCreateComputePipelines", func(args []uintptr) vk.Result {
		for _, info := range fakevk.Array[native.ComputePipelineCreateInfo](args, 3, uint32(args[2])) {
			entries = append(entries, native.CStringAt(info.Stage.PName))
			if info.Stage.PSpecializationInfo != nil {
				specSizes = append(specSizes, info.Stage.PSpecializationInfo.DataSize)
			}
		}
		out := fakevk.Array[uint64](args, 5, uint32(args[2]))
		for i := range out {
			out[i] = d.NewHandle()
		}
		return vk.Success
	})

	pipelines, err := dev.CreateComputePipelines(
		ComputePipelineCreateInfo{
			Stage:  PipelineShaderStageCreateInfo{Stage: vk.ShaderStageComputeBit, Module: module},
			Layout: layout,
		},
		ComputePipelineCreateInfo{
			Stage: PipelineShaderStageCreateInfo{
				Stage:  vk.ShaderStageComputeBit,
				Module: module,
				Name:   "reduce",
				Specialization: &SpecializationInfo{
					MapEntries: []SpecializationMapEntry{{ConstantID: 0, Size: 4}},
					Data:       []byte{64, 0, 0, 0},
				},
			},
			Layout: layout,
		},
	)
	require.NoError(t, err)
	require.Len(t, pipelines, 2)
	assert.NotEqual(t, pipelines[0].Handle(), pipelines[1].Handle())
	assert.Equal(t, vk.PipelineBindPointCompute, pipelines[1].BindPoint())
	assert.Equal(t, []string{"main", "reduce"}, entries)
	assert.Equal(t, []uintptr{4}, specSizes)

	for _, p := range pipelines {
		p.Destroy()
	}
	assert.Equal(t, 2, d.Count("vkDestroyPipeline"))

	none, err := dev.CreateComputePipelines()
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestCreatePipelinesFailure(t *testing.T) {
	d, dev := newTestDevice(t)
	d.SetResult("vkCreateComputePipelines", vk.ErrorOutOfDeviceMemory)
	_, err := dev.CreateComputePipelines(ComputePipelineCreateInfo{
		Stage: PipelineShaderStageCreateInfo{Stage: vk.ShaderStageComputeBit},
	})
	assert.True(t, IsResult(err, vk.ErrorOutOfDeviceMemory))
}

func TestDrawAndSubmitWithoutSync(t *testing.T) {
	d, dev := newTestDevice(t)
	f := newGraphicsFixture(t, dev)
	pipelines, err := dev.CreateGraphicsPipelines(DefaultGraphicsPipeline(f.vert, f.frag, f.layout, f.pass))
	require.NoError(t, err)
	p := pipelines[0]
	defer p.Destroy()

	pool, err := dev.CreateCommandPool(&CommandPoolCreateInfo{QueueFamilyIndex: 0})
	require.NoError(t, err)
	defer pool.Destroy()
	cbs, err := pool.AllocateCommandBuffers(vk.CommandBufferLevelPrimary, 1)
	require.NoError(t, err)
	cb := cbs[0]

	require.NoError(t, cb.Begin(0, nil))
	cb.BindPipeline(p)
	cb.SetViewport(0, FullViewport(Extent2D{Width: 640, Height: 480}))
	cb.Draw(3, 1, 0, 0)
	require.NoError(t, cb.End())

	bind, ok := d.Last("vkCmdBindPipeline")
	require.True(t, ok)
	assert.Equal(t, []uintptr{cb.Handle(), uintptr(vk.PipelineBindPointGraphics), uintptr(p.Handle())}, bind.Args)
	draw, ok := d.Last("vkCmdDraw")
	require.True(t, ok)
	assert.Equal(t, []uintptr{cb.Handle(), 3, 1, 0, 0}, draw.Args)

	var waits, signals, buffers uint32
	d.Handle("vkQueueSubmit", func(args []uintptr) vk.Result {
		info := fakevk.Arg[native.SubmitInfo](args, 2)
		waits, signals, buffers = info.WaitSemaphoreCount, info.SignalSemaphoreCount, info.CommandBufferCount
		assert.Nil(t, info.PWaitSemaphores)
		assert.Nil(t, info.PSignalSemaphores)
		return vk.Success
	})
	require.NoError(t, testQueue(t, dev).Submit([]SubmitInfo{{CommandBuffers: []*CommandBuffer{cb}}}, nil))

	submit, ok := d.Last("vkQueueSubmit")
	require.True(t, ok)
	assert.Equal(t, uintptr(1), submit.Args[1])
	assert.Zero(t, submit.Args[3], "fence")
	assert.Zero(t, waits)
	assert.Zero(t, signals)
	assert.Equal(t, uint32(1), buffers)
	assert.Zero(t, d.Count("vkWaitForFences"))
}

func TestPipelineLayoutMarshal(t *testing.T) {
	d, dev := newTestDevice(t)
	set, err := dev.UniformBufferLayout(0, vk.ShaderStageFlags(vk.ShaderStageVertexBit))
	require.NoError(t, err)
	defer set.Destroy()

	var setLayouts []uint64
	var ranges []native.PushConstantRange
	d.Handle("vkCreatePipelineLayout", func(args []uintptr) vk.Result {
		info := fakevk.Arg[native.PipelineLayoutCreateInfo](args, 1)
		setLayouts = append(setLayouts, native.View(info.PSetLayouts, info.SetLayoutCount)...)
		ranges = append(ranges, native.View(info.PPushConstantRanges, info.PushConstantRangeCount)...)
		*fakevk.Arg[uint64](args, 3) = d.NewHandle()
		return vk.Success
	})
	layout, err := dev.CreatePipelineLayout(&PipelineLayoutCreateInfo{
		SetLayouts:         []*DescriptorSetLayout{set},
		PushConstantRanges: []PushConstantRange{{StageFlags: vk.ShaderStageFlags(vk.ShaderStageVertexBit), Offset: 0, Size: 64}},
	})
	require.NoError(t, err)
	defer layout.Destroy()
	assert.Equal(t, []uint64{uint64(set.Handle())}, setLayouts)
	require.Len(t, ranges, 1)
	assert.Equal(t, uint32(64), ranges[0].Size)
}
