// Package fakevk is an in-process stand-in for the Vulkan driver. It
// implements the Dispatcher contract, records every call and keeps just
// enough state (fences, events, mappings) for wrapper tests to run without a
// GPU.
package fakevk

import (
	"strings"
	"sync"

	"github.com/andewx/vkobj/internal/native"
	vk "github.com/vulkan-go/vulkan"
)

// Func handles one entry point. args are the raw call arguments.
type Func func(args []uintptr) vk.Result

// Call is one recorded invocation.
type Call struct {
	Name string
	Args []uintptr
}

// Driver is a fake driver. The zero value is not usable; call New.
type Driver struct {
	// Extensions, Layers and DeviceExtensions are reported by the
	// vkEnumerate*Properties entry points.
	Extensions       []string
	Layers           []string
	DeviceExtensions []string

	// GPUs is the number of physical devices reported.
	GPUs       int
	DeviceName string
	DeviceType vk.PhysicalDeviceType
	APIVersion uint32

	QueueFamilies []native.QueueFamilyProperties
	MemoryTypes   []native.MemoryType
	MemoryHeaps   []native.MemoryHeap
	Requirements  native.MemoryRequirements

	mu       sync.Mutex
	addrs    map[string]uintptr
	names    map[uintptr]string
	funcs    map[string]Func
	results  map[string]vk.Result
	missing  map[string]bool
	calls    []Call
	next     uint64
	signaled map[uint64]bool
	events   map[uint64]bool
	mapped   map[uint64][]byte
}

// New returns a driver with one GPU that has a single graphics and compute
// queue family, a host visible and a device local memory type.
func New() *Driver {
	d := &Driver{
		GPUs:       1,
		DeviceName: "fakevk GPU",
		DeviceType: vk.PhysicalDeviceTypeDiscreteGpu,
		APIVersion: uint32(vk.MakeVersion(1, 0, 0)),
		QueueFamilies: []native.QueueFamilyProperties{{
			QueueFlags:         uint32(vk.QueueGraphicsBit | vk.QueueComputeBit | vk.QueueTransferBit),
			QueueCount:         1,
			TimestampValidBits: 64,
		}},
		MemoryTypes: []native.MemoryType{
			{PropertyFlags: uint32(vk.MemoryPropertyDeviceLocalBit), HeapIndex: 0},
			{PropertyFlags: uint32(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit), HeapIndex: 1},
		},
		MemoryHeaps: []native.MemoryHeap{
			{Size: 1 << 30, Flags: uint32(vk.MemoryHeapDeviceLocalBit)},
			{Size: 1 << 28},
		},
		Requirements: native.MemoryRequirements{Size: 256, Alignment: 16, MemoryTypeBits: 0x3},

		addrs:    make(map[string]uintptr),
		names:    make(map[uintptr]string),
		funcs:    make(map[string]Func),
		results:  make(map[string]vk.Result),
		missing:  make(map[string]bool),
		next:     0x100,
		signaled: make(map[uint64]bool),
		events:   make(map[uint64]bool),
		mapped:   make(map[uint64][]byte),
	}
	d.installDefaults()
	return d
}

// Proc returns a fake address for every entry point not marked missing.
func (d *Driver) Proc(name string) uintptr {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.missing[name] {
		return 0
	}
	if p, ok := d.addrs[name]; ok {
		return p
	}
	p := uintptr(0x1000 + 0x10*len(d.addrs))
	d.addrs[name] = p
	d.names[p] = name
	return p
}

// Call records the invocation and runs the handler for the entry point at
// proc. A result set with SetResult replaces the handler's return value.
func (d *Driver) Call(proc uintptr, args ...uintptr) uintptr {
	d.mu.Lock()
	name := d.names[proc]
	d.calls = append(d.calls, Call{Name: name, Args: append([]uintptr(nil), args...)})
	fn := d.funcs[name]
	d.mu.Unlock()

	ret := vk.Success
	switch {
	case fn != nil:
		ret = fn(args)
	case strings.HasPrefix(name, "vkCreate") && len(args) > 0:
		d.writeHandle(args[len(args)-1])
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if r, ok := d.results[name]; ok {
		ret = r
	}
	return uintptr(uint32(ret))
}

// Handle replaces the handler of an entry point.
func (d *Driver) Handle(name string, fn Func) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.funcs[name] = fn
}

// SetResult forces the status code returned by an entry point.
func (d *Driver) SetResult(name string, code vk.Result) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.results[name] = code
}

// ClearResult drops a code set by SetResult.
func (d *Driver) ClearResult(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.results, name)
}

// Remove makes Proc report the entry point as not exported.
func (d *Driver) Remove(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.missing[name] = true
}

// Count returns how often the entry point was called.
func (d *Driver) Count(name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, c := range d.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Calls returns the recorded invocations of name, or all of them for "".
func (d *Driver) Calls(name string) []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []Call
	for _, c := range d.calls {
		if name == "" || c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Last returns the most recent invocation of name. Ok is false when there
// was none.
func (d *Driver) Last(name string) (Call, bool) {
	calls := d.Calls(name)
	if len(calls) == 0 {
		return Call{}, false
	}
	return calls[len(calls)-1], true
}

// Reset forgets the recorded calls.
func (d *Driver) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = nil
}

// Signal sets the state of a fence.
func (d *Driver) Signal(fence uint64, signaled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.signaled[fence] = signaled
}

// Signaled reports the state of a fence.
func (d *Driver) Signaled(fence uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.signaled[fence]
}

// NewHandle hands out a fresh non-zero handle value.
func (d *Driver) NewHandle() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	return d.next
}

func (d *Driver) writeHandle(addr uintptr) uint64 {
	h := d.NewHandle()
	if addr != 0 {
		*native.At[uint64](addr) = h
	}
	return h
}

// Arg reads the n-th pointer argument as *T. Native memory behind the
// arguments is only valid while the call runs, so use it from a Func.
func Arg[T any](args []uintptr, n int) *T {
	return native.At[T](args[n])
}

// Array views count elements at the n-th pointer argument.
func Array[T any](args []uintptr, n int, count uint32) []T {
	return native.View(native.At[T](args[n]), count)
}
