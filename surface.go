package vkobj

// Surface wraps VkSurfaceKHR. Surfaces are made by window-system code (see
// package glfwsurface) and destroyed through their instance.
type Surface struct {
	resource
	instance *Instance
	handle   Handle
}

// WrapSurface takes ownership of a surface created for inst. The instance's
// allocation callbacks must be the ones the surface was created with.
func WrapSurface(inst *Instance, h Handle) *Surface {
	s := &Surface{resource: resource{kind: "surface"}, instance: inst, handle: h}
	s.SetAllocator(inst.Allocator())
	watch(s)
	return s
}

func (s *Surface) Handle() Handle {
	return s.handle
}

func (s *Surface) Instance() *Instance {
	return s.instance
}

func (s *Surface) Destroy() {
	s.release(func(alloc uintptr) {
		s.instance.cmds.void("vkDestroySurfaceKHR", s.instance.handle, uintptr(s.handle), alloc)
	})
}
