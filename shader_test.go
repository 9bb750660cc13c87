package vkobj

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/andewx/vkobj/internal/fakevk"
	"github.com/andewx/vkobj/internal/native"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestSPIRVWords(t *testing.T) {
	words, err := spirvWords(spirvHeader)
	require.NoError(t, err)
	assert.Equal(t, []uint32{spirvMagic, 0x00010000}, words)

	for name, code := range map[string][]byte{
		"empty":     nil,
		"unaligned": {0x03, 0x02, 0x23},
		"magic":     {0x01, 0x02, 0x03, 0x04},
	} {
		_, err := spirvWords(code)
		assert.True(t, errors.Is(err, ErrBadSPIRV), name)
	}
}

func TestCreateShaderModule(t *testing.T) {
	d, dev := newTestDevice(t)

	var size uintptr
	var first uint32
	d.Handle("vkCreateShaderModule", func(args []uintptr) vk.Result {
		info := fakevk.Arg[native.ShaderModuleCreateInfo](args, 1)
		size = info.CodeSize
		first = *info.PCode
		*fakevk.Arg[uint64](args, 3) = d.NewHandle()
		return vk.Success
	})
	s, err := dev.CreateShaderModule(spirvHeader)
	require.NoError(t, err)
	assert.Equal(t, uintptr(len(spirvHeader)), size)
	assert.Equal(t, uint32(spirvMagic), first)

	s.Destroy()
	s.Destroy()
	assert.Equal(t, 1, d.Count("vkDestroyShaderModule"))

	_, err = dev.CreateShaderModule([]byte{1, 2, 3, 4, 5})
	assert.True(t, errors.Is(err, ErrBadSPIRV))
	assert.Equal(t, 1, d.Count("vkCreateShaderModule"))
}

func TestLoadShaderModule(t *testing.T) {
	d, dev := newTestDevice(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "triangle.vert.spv")
	require.NoError(t, os.WriteFile(path, spirvHeader, 0o644))

	s, err := dev.LoadShaderModule(path)
	require.NoError(t, err)
	defer s.Destroy()
	assert.NotEqual(t, NullHandle, s.Handle())

	_, err = dev.LoadShaderModule(filepath.Join(dir, "missing.spv"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
	assert.Equal(t, 1, d.Count("vkCreateShaderModule"))
}

func TestVersionParts(t *testing.T) {
	v := uint32(vk.MakeVersion(1, 3, 250))
	assert.Equal(t, uint32(1), VersionMajor(v))
	assert.Equal(t, uint32(3), VersionMinor(v))
	assert.Equal(t, uint32(250), VersionPatch(v))
	assert.Equal(t, uint32(0), VersionMinor(DefaultVulkanAPIVersion))
}
