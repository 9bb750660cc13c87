package vkobj

import (
	"github.com/andewx/vkobj/internal/native"
	vk "github.com/vulkan-go/vulkan"
)

// queryResult64Bit is VK_QUERY_RESULT_64_BIT; results are always read as
// 64-bit values.
const queryResult64Bit vk.QueryResultFlags = 0x1

type QueryPoolCreateInfo struct {
	QueryType          vk.QueryType
	QueryCount         uint32
	PipelineStatistics vk.QueryPipelineStatisticFlags
}

func (ci *QueryPoolCreateInfo) toNative(a *native.Arena) *native.QueryPoolCreateInfo {
	n := native.New[native.QueryPoolCreateInfo](a)
	n.SType = sType(vk.StructureTypeQueryPoolCreateInfo)
	n.QueryType = int32(ci.QueryType)
	n.QueryCount = ci.QueryCount
	n.PipelineStatistics = uint32(ci.PipelineStatistics)
	return n
}

// QueryPool wraps VkQueryPool.
type QueryPool struct {
	resource
	device *Device
	handle Handle
	count  uint32
}

func (d *Device) CreateQueryPool(info *QueryPoolCreateInfo) (*QueryPool, error) {
	q := &QueryPool{resource: resource{kind: "query pool"}, device: d, count: info.QueryCount}
	q.SetAllocator(d.Allocator())

	var a native.Arena
	defer a.Free()
	h, err := d.createHandle("vkCreateQueryPool", native.Addr(info.toNative(&a)), q.callbacks.addr(), &a)
	if err != nil {
		return nil, err
	}
	q.handle = h
	watch(q)
	return q, nil
}

func (q *QueryPool) Handle() Handle {
	return q.handle
}

// Count returns the number of queries in the pool.
func (q *QueryPool) Count() uint32 {
	return q.count
}

// Results copies the results of queries [first, first+count) as 64-bit
// values, stride values per query. Ready is false when the driver reported
// VK_NOT_READY; the slice then holds whatever was available.
func (q *QueryPool) Results(first, count, stride uint32, flags vk.QueryResultFlags) (results []uint64, ready bool, err error) {
	if count == 0 {
		return nil, true, nil
	}
	if stride == 0 {
		stride = 1
	}
	n, strideBytes := resultLayout(count, stride)
	var a native.Arena
	defer a.Free()
	buf := native.Make[uint64](&a, n)
	ret, err := q.device.cmds.status("vkGetQueryPoolResults", []vk.Result{vk.NotReady},
		q.device.handle, uintptr(q.handle), uintptr(first), uintptr(count),
		uintptr(n)*8, native.Addr(&buf[0]), strideBytes,
		uintptr(flags|queryResult64Bit))
	if err != nil {
		return nil, false, err
	}
	results = make([]uint64, n)
	copy(results, buf)
	return results, ret == vk.Success, nil
}

// resultLayout returns the number of 64-bit values count queries occupy and
// the byte stride between them.
func resultLayout(count, stride uint32) (n int, strideBytes uintptr) {
	return int(uint64(count) * uint64(stride)), uintptr(uint64(stride) * 8)
}

func (q *QueryPool) Destroy() {
	q.release(func(alloc uintptr) {
		q.device.destroyHandle("vkDestroyQueryPool", q.handle, alloc)
	})
}
