package vkobj

import (
	"sync"

	"github.com/andewx/vkobj/internal/native"
	"github.com/ebitengine/purego"
	vk "github.com/vulkan-go/vulkan"
)

// DebugReportExtension is the instance extension DebugReport needs.
const DebugReportExtension = "VK_EXT_debug_report"

var (
	debugOnce     sync.Once
	debugCallback uintptr
)

// DebugReport wraps VkDebugReportCallbackEXT. Driver and layer messages are
// written to the package loggers.
type DebugReport struct {
	resource
	instance *Instance
	handle   Handle
}

// EnableDebugReport registers a callback for the message kinds in flags.
// The instance must have been created with DebugReportExtension.
func EnableDebugReport(inst *Instance, flags vk.DebugReportFlags) (*DebugReport, error) {
	debugOnce.Do(func() {
		debugCallback = purego.NewCallback(debugReport)
	})
	r := &DebugReport{resource: resource{kind: "debug report callback"}, instance: inst}
	r.SetAllocator(inst.Allocator())

	var a native.Arena
	defer a.Free()
	n := native.New[native.DebugReportCallbackCreateInfo](&a)
	n.SType = sType(vk.StructureTypeDebugReportCallbackCreateInfo)
	n.Flags = uint32(flags)
	n.PfnCallback = debugCallback
	out := native.New[uint64](&a)
	err := inst.cmds.check("vkCreateDebugReportCallbackEXT",
		inst.handle, native.Addr(n), r.callbacks.addr(), native.Addr(out))
	if err != nil {
		return nil, err
	}
	r.handle = Handle(*out)
	watch(r)
	infoLog.Println("vulkan: debug report callback enabled")
	return r, nil
}

func (r *DebugReport) Handle() Handle {
	return r.handle
}

func (r *DebugReport) Destroy() {
	r.release(func(alloc uintptr) {
		r.instance.cmds.void("vkDestroyDebugReportCallbackEXT", r.instance.handle, uintptr(r.handle), alloc)
	})
}

func debugReport(flags, objectType, object, location, messageCode, layerPrefix, message, userData uintptr) uintptr {
	f := vk.DebugReportFlags(flags)
	prefix := native.CStringAt(native.At[byte](layerPrefix))
	msg := native.CStringAt(native.At[byte](message))
	code := int32(uint32(messageCode))

	switch {
	case f&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		errorLog.Printf("[%s] Code %d : %s", prefix, code, msg)
	case f&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		warnLog.Printf("[%s] Code %d : %s", prefix, code, msg)
	case f&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		warnLog.Printf("PERFORMANCE [%s] Code %d : %s", prefix, code, msg)
	case f&vk.DebugReportFlags(vk.DebugReportDebugBit) != 0:
		infoLog.Printf("DEBUG [%s] Code %d : %s", prefix, code, msg)
	default:
		infoLog.Printf("[%s] Code %d : %s", prefix, code, msg)
	}
	return 0
}
