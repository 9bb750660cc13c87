package vkobj

import (
	"testing"

	"github.com/andewx/vkobj/internal/fakevk"
	"github.com/andewx/vkobj/internal/native"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestInstanceExtensionsAndLayers(t *testing.T) {
	d := fakevk.New()
	d.Extensions = []string{"VK_KHR_surface", "VK_KHR_xcb_surface", DebugReportExtension}
	d.Layers = []string{"VK_LAYER_KHRONOS_validation"}

	exts, err := InstanceExtensions(d, "")
	require.NoError(t, err)
	assert.Equal(t, d.Extensions, ExtensionNames(exts))
	assert.Equal(t, uint32(1), exts[0].SpecVersion)

	layers, err := InstanceLayers(d)
	require.NoError(t, err)
	require.Len(t, layers, 1)
	assert.Equal(t, "VK_LAYER_KHRONOS_validation", layers[0].Name)
	assert.Equal(t, "fake layer VK_LAYER_KHRONOS_validation", layers[0].Description)
}

func TestInstanceLayersGrowDuringEnumeration(t *testing.T) {
	d := fakevk.New()
	names := []string{"VK_LAYER_A", "VK_LAYER_B"}
	fills := 0
	d.Handle("vkEnumerateInstanceLayerProperties", func(args []uintptr) vk.Result {
		count := fakevk.Arg[uint32](args, 0)
		if args[1] == 0 {
			*count = uint32(len(names))
			return vk.Success
		}
		if fills++; fills == 1 {
			names = append(names, "VK_LAYER_C")
		}
		out := fakevk.Array[native.LayerProperties](args, 1, *count)
		for i := range out {
			copy(out[i].LayerName[:], names[i])
		}
		if int(*count) < len(names) {
			return vk.Incomplete
		}
		*count = uint32(len(names))
		return vk.Success
	})

	layers, err := InstanceLayers(d)
	require.NoError(t, err)
	require.Len(t, layers, 3)
	assert.Equal(t, "VK_LAYER_C", layers[2].Name)
	assert.Equal(t, 4, d.Count("vkEnumerateInstanceLayerProperties"))
}

func TestInstanceExtensionsNone(t *testing.T) {
	exts, err := InstanceExtensions(fakevk.New(), "")
	require.NoError(t, err)
	assert.Empty(t, exts)
}

func TestRequireExtensions(t *testing.T) {
	present, missing := RequireExtensions(
		[]string{"VK_KHR_surface", "VK_KHR_xcb_surface"},
		[]string{"VK_KHR_xcb_surface", "VK_EXT_debug_utils", "VK_KHR_surface"},
	)
	assert.Equal(t, []string{"VK_KHR_xcb_surface", "VK_KHR_surface"}, present)
	assert.Equal(t, []string{"VK_EXT_debug_utils"}, missing)

	present, missing = RequireExtensions(nil, nil)
	assert.Empty(t, present)
	assert.Empty(t, missing)
}
