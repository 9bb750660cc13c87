package vkobj

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Dispatcher resolves driver entry points by name and invokes them.
// *loader.Library is the production implementation.
type Dispatcher interface {
	// Proc returns the address of the named entry point, or zero.
	Proc(name string) uintptr
	// Call invokes the entry point at proc with integer/pointer arguments
	// and returns the raw first return register.
	Call(proc uintptr, args ...uintptr) uintptr
}

// InstanceBinder is implemented by dispatchers that resolve instance-level
// commands through vkGetInstanceProcAddr and need the created instance.
type InstanceBinder interface {
	BindInstance(instance uintptr)
}

// commands issues calls through a Dispatcher and converts status codes.
type commands struct {
	d Dispatcher
}

func (c commands) invoke(name string, args ...uintptr) (uintptr, error) {
	proc := c.d.Proc(name)
	if proc == 0 {
		return 0, errors.Wrap(ErrProcNotFound, name)
	}
	return c.d.Call(proc, args...), nil
}

// check calls an entry point that only succeeds with vk.Success.
func (c commands) check(name string, args ...uintptr) error {
	_, err := c.status(name, nil, args...)
	return err
}

// status calls an entry point and returns its code. Codes in soft are
// handed back as values; anything else is an *Error.
func (c commands) status(name string, soft []vk.Result, args ...uintptr) (vk.Result, error) {
	r, err := c.invoke(name, args...)
	if err != nil {
		return vk.Success, err
	}
	ret := toResult(r)
	if !accepts(ret, soft) {
		return ret, NewError(name, ret)
	}
	return ret, nil
}

// void calls an entry point without a return value.
func (c commands) void(name string, args ...uintptr) {
	if _, err := c.invoke(name, args...); err != nil {
		errorLog.Println(err)
	}
}

func toResult(r uintptr) vk.Result {
	return vk.Result(int32(uint32(r)))
}

func boolArg(b bool) uintptr {
	if b {
		return 1
	}
	return 0
}

func bool32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
