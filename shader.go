package vkobj

import (
	"os"

	"github.com/andewx/vkobj/internal/native"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// ShaderModule wraps VkShaderModule.
type ShaderModule struct {
	resource
	device *Device
	handle Handle
}

// CreateShaderModule creates a module from SPIR-V bytecode. The length of
// code must be a multiple of four.
func (d *Device) CreateShaderModule(code []byte) (*ShaderModule, error) {
	words, err := spirvWords(code)
	if err != nil {
		return nil, err
	}
	s := &ShaderModule{resource: resource{kind: "shader module"}, device: d}
	s.SetAllocator(d.Allocator())

	var a native.Arena
	defer a.Free()
	n := native.New[native.ShaderModuleCreateInfo](&a)
	n.SType = sType(vk.StructureTypeShaderModuleCreateInfo)
	n.CodeSize = uintptr(len(code))
	n.PCode = native.Slice(&a, words)
	h, err := d.createHandle("vkCreateShaderModule", native.Addr(n), s.callbacks.addr(), &a)
	if err != nil {
		return nil, err
	}
	s.handle = h
	watch(s)
	return s, nil
}

// LoadShaderModule reads a SPIR-V file and creates a module from it.
func (d *Device) LoadShaderModule(path string) (*ShaderModule, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "vulkan: read shader %s", path)
	}
	return d.CreateShaderModule(code)
}

func (s *ShaderModule) Handle() Handle {
	return s.handle
}

func (s *ShaderModule) Destroy() {
	s.release(func(alloc uintptr) {
		s.device.destroyHandle("vkDestroyShaderModule", s.handle, alloc)
	})
}
