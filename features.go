package vkobj

import "github.com/andewx/vkobj/internal/native"

// Feature indexes one VkBool32 member of VkPhysicalDeviceFeatures, in
// declaration order.
type Feature int

const (
	FeatureRobustBufferAccess Feature = iota
	FeatureFullDrawIndexUint32
	FeatureImageCubeArray
	FeatureIndependentBlend
	FeatureGeometryShader
	FeatureTessellationShader
	FeatureSampleRateShading
	FeatureDualSrcBlend
	FeatureLogicOp
	FeatureMultiDrawIndirect
	FeatureDrawIndirectFirstInstance
	FeatureDepthClamp
	FeatureDepthBiasClamp
	FeatureFillModeNonSolid
	FeatureDepthBounds
	FeatureWideLines
	FeatureLargePoints
	FeatureAlphaToOne
	FeatureMultiViewport
	FeatureSamplerAnisotropy
	FeatureTextureCompressionETC2
	FeatureTextureCompressionASTCLDR
	FeatureTextureCompressionBC
	FeatureOcclusionQueryPrecise
	FeaturePipelineStatisticsQuery
	FeatureVertexPipelineStoresAndAtomics
	FeatureFragmentStoresAndAtomics
	FeatureShaderTessellationAndGeometryPointSize
	FeatureShaderImageGatherExtended
	FeatureShaderStorageImageExtendedFormats
	FeatureShaderStorageImageMultisample
	FeatureShaderStorageImageReadWithoutFormat
	FeatureShaderStorageImageWriteWithoutFormat
	FeatureShaderUniformBufferArrayDynamicIndexing
	FeatureShaderSampledImageArrayDynamicIndexing
	FeatureShaderStorageBufferArrayDynamicIndexing
	FeatureShaderStorageImageArrayDynamicIndexing
	FeatureShaderClipDistance
	FeatureShaderCullDistance
	FeatureShaderFloat64
	FeatureShaderInt64
	FeatureShaderInt16
	FeatureShaderResourceResidency
	FeatureShaderResourceMinLod
	FeatureSparseBinding
	FeatureSparseResidencyBuffer
	FeatureSparseResidencyImage2D
	FeatureSparseResidencyImage3D
	FeatureSparseResidency2Samples
	FeatureSparseResidency4Samples
	FeatureSparseResidency8Samples
	FeatureSparseResidency16Samples
	FeatureSparseResidencyAliased
	FeatureVariableMultisampleRate
	FeatureInheritedQueries
)

// FeatureSet is the decoded VkPhysicalDeviceFeatures of a device.
type FeatureSet struct {
	raw native.PhysicalDeviceFeatures
}

// Has reports whether f is supported.
func (s FeatureSet) Has(f Feature) bool {
	if f < 0 || int(f) >= native.FeatureCount {
		return false
	}
	return s.raw[f] != 0
}

// Missing returns the members of want that are not supported.
func (s FeatureSet) Missing(want []Feature) []Feature {
	var out []Feature
	for _, f := range want {
		if !s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func featuresToNative(a *native.Arena, list []Feature) *native.PhysicalDeviceFeatures {
	if len(list) == 0 {
		return nil
	}
	n := native.New[native.PhysicalDeviceFeatures](a)
	for _, f := range list {
		if f >= 0 && int(f) < native.FeatureCount {
			n[f] = 1
		}
	}
	return n
}
