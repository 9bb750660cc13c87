package main

import (
	"bytes"
	"testing"

	"github.com/andewx/vkobj/internal/fakevk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPrintsDriverReport(t *testing.T) {
	d := fakevk.New()
	d.Extensions = []string{"VK_KHR_surface"}
	d.Layers = []string{"VK_LAYER_KHRONOS_validation"}
	d.DeviceExtensions = []string{"VK_KHR_swapchain"}

	var out bytes.Buffer
	require.NoError(t, run(&out, d, true, true))

	report := out.String()
	assert.Contains(t, report, "VK_LAYER_KHRONOS_validation")
	assert.Contains(t, report, "VK_KHR_surface (1)")
	assert.Contains(t, report, "fakevk GPU")
	assert.Contains(t, report, "discrete GPU")
	assert.Contains(t, report, "Graphics|Compute|Transfer")
	assert.Contains(t, report, "HostVisible|HostCoherent")
	assert.Contains(t, report, "1GiB")
	assert.Contains(t, report, "VK_KHR_swapchain (1)")
	assert.Equal(t, 1, d.Count("vkDestroyInstance"))
}
