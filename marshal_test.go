package vkobj

import (
	"testing"

	"github.com/andewx/vkobj/internal/native"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestBufferCreateInfoToNative(t *testing.T) {
	var a native.Arena
	ci := &BufferCreateInfo{
		Flags:              vk.BufferCreateFlags(vk.BufferCreateSparseBindingBit),
		Size:               4096,
		Usage:              vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit | vk.BufferUsageTransferDstBit),
		SharingMode:        vk.SharingModeConcurrent,
		QueueFamilyIndices: []uint32{0, 2},
	}
	n := ci.toNative(&a)
	assert.Equal(t, sType(vk.StructureTypeBufferCreateInfo), n.SType)
	assert.Equal(t, uint32(ci.Flags), n.Flags)
	assert.Equal(t, ci.Size, n.Size)
	assert.Equal(t, uint32(ci.Usage), n.Usage)
	assert.Equal(t, int32(vk.SharingModeConcurrent), n.SharingMode)
	assert.Equal(t, uint32(2), n.QueueFamilyIndexCount)
	assert.Equal(t, ci.QueueFamilyIndices, native.View(n.PQueueFamilyIndices, n.QueueFamilyIndexCount))
	assert.Equal(t, 2, a.Outstanding())

	a.Free()
	assert.Zero(t, a.Outstanding())
	a.Free()
	assert.Zero(t, a.Outstanding())

	empty := (&BufferCreateInfo{Size: 16}).toNative(&a)
	assert.Zero(t, empty.QueueFamilyIndexCount)
	assert.Nil(t, empty.PQueueFamilyIndices)
	a.Free()
}

func TestImageCreateInfoToNative(t *testing.T) {
	var a native.Arena
	defer a.Free()
	ci := &ImageCreateInfo{
		ImageType:     vk.ImageType2d,
		Format:        vk.FormatR16g16b16a16Sfloat,
		Extent:        Extent3D{Width: 1920, Height: 1080, Depth: 1},
		MipLevels:     4,
		ArrayLayers:   6,
		Samples:       vk.SampleCount4Bit,
		Tiling:        vk.ImageTilingOptimal,
		Usage:         vk.ImageUsageFlags(vk.ImageUsageSampledBit),
		InitialLayout: vk.ImageLayoutUndefined,
	}
	n := ci.toNative(&a)
	assert.Equal(t, int32(vk.ImageType2d), n.ImageType)
	assert.Equal(t, int32(vk.FormatR16g16b16a16Sfloat), n.Format)
	assert.Equal(t, ci.Extent, n.Extent)
	assert.Equal(t, uint32(4), n.MipLevels)
	assert.Equal(t, uint32(6), n.ArrayLayers)
	assert.Equal(t, uint32(vk.SampleCount4Bit), n.Samples)
	assert.Equal(t, int32(vk.ImageTilingOptimal), n.Tiling)
	assert.Equal(t, uint32(ci.Usage), n.Usage)
	assert.Zero(t, n.QueueFamilyIndexCount)
	assert.Nil(t, n.PQueueFamilyIndices)
}

func TestSamplerCreateInfoToNative(t *testing.T) {
	var a native.Arena
	defer a.Free()
	ci := &SamplerCreateInfo{
		MagFilter:        vk.FilterLinear,
		MinFilter:        vk.FilterNearest,
		MipmapMode:       vk.SamplerMipmapModeLinear,
		AddressModeU:     vk.SamplerAddressModeRepeat,
		AddressModeV:     vk.SamplerAddressModeClampToEdge,
		AddressModeW:     vk.SamplerAddressModeMirroredRepeat,
		MipLodBias:       0.5,
		AnisotropyEnable: true,
		MaxAnisotropy:    16,
		CompareOp:        vk.CompareOpLess,
		MaxLod:           12,
		BorderColor:      vk.BorderColorFloatOpaqueBlack,
	}
	n := ci.toNative(&a)
	assert.Equal(t, int32(vk.FilterLinear), n.MagFilter)
	assert.Equal(t, int32(vk.FilterNearest), n.MinFilter)
	assert.Equal(t, int32(vk.SamplerAddressModeMirroredRepeat), n.AddressModeW)
	assert.Equal(t, float32(0.5), n.MipLodBias)
	assert.Equal(t, uint32(1), n.AnisotropyEnable)
	assert.Equal(t, float32(16), n.MaxAnisotropy)
	assert.Equal(t, uint32(0), n.CompareEnable)
	assert.Equal(t, float32(12), n.MaxLod)
	assert.Equal(t, uint32(0), n.UnnormalizedCoordinates)
}

func TestRenderPassCreateInfoToNative(t *testing.T) {
	var a native.Arena
	ci := &RenderPassCreateInfo{
		Attachments: []AttachmentDescription{{Format: vk.FormatR8Unorm, Samples: vk.SampleCount1Bit}},
		Subpasses: []SubpassDescription{{
			PipelineBindPoint:   vk.PipelineBindPointGraphics,
			InputAttachments:    []AttachmentReference{{Attachment: 0, Layout: vk.ImageLayoutShaderReadOnlyOptimal}},
			ColorAttachments:    []AttachmentReference{{Attachment: 1}, {Attachment: 2}},
			ResolveAttachments:  []AttachmentReference{{Attachment: 3}, {Attachment: 4}},
			PreserveAttachments: []uint32{5, 6, 7},
		}},
	}
	n := ci.toNative(&a)
	require.Equal(t, uint32(1), n.SubpassCount)
	sp := n.PSubpasses
	assert.Equal(t, uint32(1), sp.InputAttachmentCount)
	assert.Equal(t, uint32(2), sp.ColorAttachmentCount)
	assert.Equal(t, uint32(4), native.View(sp.PResolveAttachments, 2)[1].Attachment)
	assert.Nil(t, sp.PDepthStencilAttachment)
	assert.Equal(t, []uint32{5, 6, 7}, native.View(sp.PPreserveAttachments, sp.PreserveAttachmentCount))
	assert.Zero(t, n.DependencyCount)
	assert.Nil(t, n.PDependencies)
	assert.Positive(t, a.Outstanding())
	a.Free()
	assert.Zero(t, a.Outstanding())
}

func TestQueryPoolCreateInfoToNative(t *testing.T) {
	var a native.Arena
	defer a.Free()
	ci := &QueryPoolCreateInfo{
		QueryType:          vk.QueryTypePipelineStatistics,
		QueryCount:         8,
		PipelineStatistics: vk.QueryPipelineStatisticFlags(vk.QueryPipelineStatisticVertexShaderInvocationsBit),
	}
	n := ci.toNative(&a)
	assert.Equal(t, int32(vk.QueryTypePipelineStatistics), n.QueryType)
	assert.Equal(t, uint32(8), n.QueryCount)
	assert.Equal(t, uint32(ci.PipelineStatistics), n.PipelineStatistics)
}
