// Package glfwsurface connects GLFW windows to vkobj: it creates window
// surfaces and can bootstrap the entry-point resolver from the
// vkGetInstanceProcAddr GLFW already loaded.
package glfwsurface

import (
	"github.com/andewx/vkobj"
	"github.com/andewx/vkobj/internal/native"
	"github.com/andewx/vkobj/loader"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

// ErrUnsupported is returned when GLFW found no Vulkan loader.
var ErrUnsupported = errors.New("glfw: vulkan is not supported")

// Dispatcher returns a resolver built on GLFW's vkGetInstanceProcAddr.
// glfw.Init must have been called.
func Dispatcher() (*loader.Library, error) {
	if !glfw.VulkanSupported() {
		return nil, ErrUnsupported
	}
	return loader.FromProcAddr(uintptr(glfw.GetVulkanGetInstanceProcAddress()))
}

// RequiredExtensions lists the instance extensions window surfaces need.
func RequiredExtensions(w *glfw.Window) []string {
	return w.GetRequiredInstanceExtensions()
}

// Create makes a VkSurfaceKHR for window. The surface belongs to inst and
// must be destroyed before it.
func Create(inst *vkobj.Instance, window *glfw.Window) (*vkobj.Surface, error) {
	if inst.Allocator() != nil {
		return nil, errors.New("glfw: window surfaces cannot use instance allocation callbacks")
	}
	ret, err := window.CreateWindowSurface(inst.VK(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "glfw: failed to create vulkan window surface")
	}
	h := *native.At[uint64](ret)
	return vkobj.WrapSurface(inst, vkobj.Handle(h)), nil
}

// App is an AppConfig presenting to a GLFW window. It adds the window's
// surface extensions and the present mode.
type App struct {
	vkobj.AppConfig
	Window *glfw.Window
}

func (a *App) VulkanMode() vkobj.VulkanMode {
	return a.AppConfig.VulkanMode() | vkobj.VulkanPresent
}

func (a *App) VulkanInstanceExtensions() []string {
	exts := append([]string{}, a.InstanceExtensions...)
	for _, name := range RequiredExtensions(a.Window) {
		if !has(exts, name) {
			exts = append(exts, name)
		}
	}
	return exts
}

func (a *App) VulkanDeviceExtensions() []string {
	if has(a.DeviceExtensions, swapchainExtension) {
		return a.DeviceExtensions
	}
	return append(append([]string{}, a.DeviceExtensions...), swapchainExtension)
}

func (a *App) VulkanSurface(inst *vkobj.Instance) (*vkobj.Surface, error) {
	return Create(inst, a.Window)
}

const swapchainExtension = "VK_KHR_swapchain"

func has(list []string, name string) bool {
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}
