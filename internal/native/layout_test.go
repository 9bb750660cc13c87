//go:build amd64 || arm64

package native

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

// Sizes of the C structures as laid out by a 64-bit compiler.
func TestLayoutSizes(t *testing.T) {
	cases := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"VkAllocationCallbacks", unsafe.Sizeof(AllocationCallbacks{}), 48},
		{"VkApplicationInfo", unsafe.Sizeof(ApplicationInfo{}), 48},
		{"VkInstanceCreateInfo", unsafe.Sizeof(InstanceCreateInfo{}), 64},
		{"VkExtensionProperties", unsafe.Sizeof(ExtensionProperties{}), 260},
		{"VkLayerProperties", unsafe.Sizeof(LayerProperties{}), 520},
		{"VkPhysicalDeviceProperties", unsafe.Sizeof(PhysicalDeviceProperties{}), 824},
		{"VkQueueFamilyProperties", unsafe.Sizeof(QueueFamilyProperties{}), 24},
		{"VkPhysicalDeviceMemoryProperties", unsafe.Sizeof(PhysicalDeviceMemoryProperties{}), 520},
		{"VkPhysicalDeviceFeatures", unsafe.Sizeof(PhysicalDeviceFeatures{}), 220},
		{"VkDeviceQueueCreateInfo", unsafe.Sizeof(DeviceQueueCreateInfo{}), 40},
		{"VkDeviceCreateInfo", unsafe.Sizeof(DeviceCreateInfo{}), 72},
		{"VkSubmitInfo", unsafe.Sizeof(SubmitInfo{}), 72},
		{"VkFenceCreateInfo", unsafe.Sizeof(FenceCreateInfo{}), 24},
		{"VkDebugReportCallbackCreateInfoEXT", unsafe.Sizeof(DebugReportCallbackCreateInfo{}), 40},
		{"VkQueryPoolCreateInfo", unsafe.Sizeof(QueryPoolCreateInfo{}), 32},
		{"VkMemoryAllocateInfo", unsafe.Sizeof(MemoryAllocateInfo{}), 32},
		{"VkMappedMemoryRange", unsafe.Sizeof(MappedMemoryRange{}), 40},
		{"VkMemoryRequirements", unsafe.Sizeof(MemoryRequirements{}), 24},
		{"VkBufferCreateInfo", unsafe.Sizeof(BufferCreateInfo{}), 56},
		{"VkImageCreateInfo", unsafe.Sizeof(ImageCreateInfo{}), 88},
		{"VkSubresourceLayout", unsafe.Sizeof(SubresourceLayout{}), 40},
		{"VkImageViewCreateInfo", unsafe.Sizeof(ImageViewCreateInfo{}), 80},
		{"VkSamplerCreateInfo", unsafe.Sizeof(SamplerCreateInfo{}), 80},
		{"VkShaderModuleCreateInfo", unsafe.Sizeof(ShaderModuleCreateInfo{}), 40},
		{"VkAttachmentDescription", unsafe.Sizeof(AttachmentDescription{}), 36},
		{"VkSubpassDescription", unsafe.Sizeof(SubpassDescription{}), 72},
		{"VkSubpassDependency", unsafe.Sizeof(SubpassDependency{}), 28},
		{"VkRenderPassCreateInfo", unsafe.Sizeof(RenderPassCreateInfo{}), 64},
		{"VkFramebufferCreateInfo", unsafe.Sizeof(FramebufferCreateInfo{}), 64},
		{"VkPipelineLayoutCreateInfo", unsafe.Sizeof(PipelineLayoutCreateInfo{}), 48},
		{"VkDescriptorSetLayoutBinding", unsafe.Sizeof(DescriptorSetLayoutBinding{}), 24},
		{"VkDescriptorPoolCreateInfo", unsafe.Sizeof(DescriptorPoolCreateInfo{}), 40},
		{"VkDescriptorSetAllocateInfo", unsafe.Sizeof(DescriptorSetAllocateInfo{}), 40},
		{"VkDescriptorImageInfo", unsafe.Sizeof(DescriptorImageInfo{}), 24},
		{"VkWriteDescriptorSet", unsafe.Sizeof(WriteDescriptorSet{}), 64},
		{"VkCopyDescriptorSet", unsafe.Sizeof(CopyDescriptorSet{}), 56},
		{"VkSpecializationInfo", unsafe.Sizeof(SpecializationInfo{}), 32},
		{"VkPipelineShaderStageCreateInfo", unsafe.Sizeof(PipelineShaderStageCreateInfo{}), 48},
		{"VkPipelineRasterizationStateCreateInfo", unsafe.Sizeof(PipelineRasterizationStateCreateInfo{}), 64},
		{"VkPipelineMultisampleStateCreateInfo", unsafe.Sizeof(PipelineMultisampleStateCreateInfo{}), 48},
		{"VkPipelineDepthStencilStateCreateInfo", unsafe.Sizeof(PipelineDepthStencilStateCreateInfo{}), 104},
		{"VkPipelineColorBlendStateCreateInfo", unsafe.Sizeof(PipelineColorBlendStateCreateInfo{}), 56},
		{"VkGraphicsPipelineCreateInfo", unsafe.Sizeof(GraphicsPipelineCreateInfo{}), 144},
		{"VkComputePipelineCreateInfo", unsafe.Sizeof(ComputePipelineCreateInfo{}), 96},
		{"VkCommandBufferAllocateInfo", unsafe.Sizeof(CommandBufferAllocateInfo{}), 32},
		{"VkCommandBufferInheritanceInfo", unsafe.Sizeof(CommandBufferInheritanceInfo{}), 56},
		{"VkRenderPassBeginInfo", unsafe.Sizeof(RenderPassBeginInfo{}), 64},
		{"VkBufferMemoryBarrier", unsafe.Sizeof(BufferMemoryBarrier{}), 56},
		{"VkImageMemoryBarrier", unsafe.Sizeof(ImageMemoryBarrier{}), 72},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.got, c.name)
	}
}

func TestLayoutOffsets(t *testing.T) {
	var b BufferCreateInfo
	assert.EqualValues(t, 24, unsafe.Offsetof(b.Size))
	assert.EqualValues(t, 48, unsafe.Offsetof(b.PQueueFamilyIndices))

	var p PhysicalDeviceProperties
	assert.EqualValues(t, 20, unsafe.Offsetof(p.DeviceName))
	assert.EqualValues(t, 296, unsafe.Offsetof(p.Limits))

	var m PhysicalDeviceMemoryProperties
	assert.EqualValues(t, 260, unsafe.Offsetof(m.MemoryHeapCount))
	assert.EqualValues(t, 264, unsafe.Offsetof(m.MemoryHeaps))

	var g GraphicsPipelineCreateInfo
	assert.EqualValues(t, 104, unsafe.Offsetof(g.Layout))
	assert.EqualValues(t, 128, unsafe.Offsetof(g.BasePipelineHandle))

	var c ComputePipelineCreateInfo
	assert.EqualValues(t, 24, unsafe.Offsetof(c.Stage))
	assert.EqualValues(t, 72, unsafe.Offsetof(c.Layout))

	var w WriteDescriptorSet
	assert.EqualValues(t, 40, unsafe.Offsetof(w.PImageInfo))

	var r RenderPassBeginInfo
	assert.EqualValues(t, 32, unsafe.Offsetof(r.RenderArea))
	assert.EqualValues(t, 56, unsafe.Offsetof(r.PClearValues))
}
