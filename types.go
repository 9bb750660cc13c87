package vkobj

import (
	"math"

	"github.com/andewx/vkobj/internal/native"
	vk "github.com/vulkan-go/vulkan"
)

// Plain geometry structs share the native layout.
type (
	Extent2D = native.Extent2D
	Extent3D = native.Extent3D
	Offset2D = native.Offset2D
	Rect2D   = native.Rect2D
	Viewport = native.Viewport
)

// WholeSize is VK_WHOLE_SIZE.
const WholeSize = ^uint64(0)

// QueueFamilyIgnored is VK_QUEUE_FAMILY_IGNORED.
const QueueFamilyIgnored = ^uint32(0)

// SubpassExternal is VK_SUBPASS_EXTERNAL.
const SubpassExternal = ^uint32(0)

type ImageSubresourceRange struct {
	AspectMask     vk.ImageAspectFlags
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

func (r ImageSubresourceRange) toNative() native.ImageSubresourceRange {
	return native.ImageSubresourceRange{
		AspectMask:     uint32(r.AspectMask),
		BaseMipLevel:   r.BaseMipLevel,
		LevelCount:     r.LevelCount,
		BaseArrayLayer: r.BaseArrayLayer,
		LayerCount:     r.LayerCount,
	}
}

type ComponentMapping struct {
	R, G, B, A vk.ComponentSwizzle
}

// ClearValue is one VkClearValue. Use ClearColor or ClearDepthStencil.
type ClearValue struct {
	raw native.ClearValue
}

// ClearColor is a float RGBA clear value.
func ClearColor(r, g, b, a float32) ClearValue {
	return ClearValue{raw: native.ClearValue{
		math.Float32bits(r), math.Float32bits(g), math.Float32bits(b), math.Float32bits(a),
	}}
}

// ClearDepthStencil is a depth/stencil clear value.
func ClearDepthStencil(depth float32, stencil uint32) ClearValue {
	return ClearValue{raw: native.ClearValue{math.Float32bits(depth), stencil}}
}

func handles[T interface{ Handle() Handle }](objs []T) []uint64 {
	if len(objs) == 0 {
		return nil
	}
	out := make([]uint64, len(objs))
	for i, o := range objs {
		out[i] = uint64(o.Handle())
	}
	return out
}

func rawHandles(list []Handle) []uint64 {
	if len(list) == 0 {
		return nil
	}
	out := make([]uint64, len(list))
	for i, h := range list {
		out[i] = uint64(h)
	}
	return out
}

func sType(t vk.StructureType) int32 {
	return int32(t)
}
