package vkobj

import (
	"testing"

	"github.com/andewx/vkobj/internal/fakevk"
	"github.com/andewx/vkobj/internal/native"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestFeatures(t *testing.T) {
	d := fakevk.New()
	d.Handle("vkGetPhysicalDeviceFeatures", func(args []uintptr) vk.Result {
		f := fakevk.Arg[native.PhysicalDeviceFeatures](args, 1)
		f[FeatureGeometryShader] = 1
		f[FeatureSamplerAnisotropy] = 1
		f[FeatureInheritedQueries] = 1
		return vk.Success
	})
	inst := newTestInstance(t, d)
	gpus, err := inst.EnumeratePhysicalDevices()
	require.NoError(t, err)

	features := gpus[0].Features()
	assert.True(t, features.Has(FeatureGeometryShader))
	assert.True(t, features.Has(FeatureInheritedQueries))
	assert.False(t, features.Has(FeatureShaderFloat64))
	assert.False(t, features.Has(Feature(-1)))
	assert.False(t, features.Has(Feature(native.FeatureCount)))
	assert.Equal(t, []Feature{FeatureWideLines},
		features.Missing([]Feature{FeatureSamplerAnisotropy, FeatureWideLines}))

	var enabled native.PhysicalDeviceFeatures
	var hadFeatures bool
	d.Handle("vkCreateDevice", func(args []uintptr) vk.Result {
		info := fakevk.Arg[native.DeviceCreateInfo](args, 1)
		if hadFeatures = info.PEnabledFeatures != nil; hadFeatures {
			enabled = *info.PEnabledFeatures
		}
		*fakevk.Arg[uint64](args, 3) = d.NewHandle()
		return vk.Success
	})
	dev, err := gpus[0].CreateDevice(&DeviceCreateInfo{
		QueueCreateInfos: []DeviceQueueCreateInfo{{QueuePriorities: []float32{1}}},
		EnabledFeatures:  []Feature{FeatureSamplerAnisotropy},
	})
	require.NoError(t, err)
	defer dev.Destroy()
	require.True(t, hadFeatures)
	assert.Equal(t, uint32(1), enabled[FeatureSamplerAnisotropy])
	assert.Equal(t, uint32(0), enabled[FeatureGeometryShader])

	plain, err := gpus[0].CreateDevice(&DeviceCreateInfo{
		QueueCreateInfos: []DeviceQueueCreateInfo{{QueuePriorities: []float32{1}}},
	})
	require.NoError(t, err)
	defer plain.Destroy()
	assert.False(t, hadFeatures)
}
