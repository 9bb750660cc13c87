package vkobj

import (
	"github.com/andewx/vkobj/internal/native"
	vk "github.com/vulkan-go/vulkan"
)

// ImageCreateInfo mirrors VkImageCreateInfo.
type ImageCreateInfo struct {
	Flags              vk.ImageCreateFlags
	ImageType          vk.ImageType
	Format             vk.Format
	Extent             Extent3D
	MipLevels          uint32
	ArrayLayers        uint32
	Samples            vk.SampleCountFlagBits
	Tiling             vk.ImageTiling
	Usage              vk.ImageUsageFlags
	SharingMode        vk.SharingMode
	QueueFamilyIndices []uint32
	InitialLayout      vk.ImageLayout
}

func (ci *ImageCreateInfo) toNative(a *native.Arena) *native.ImageCreateInfo {
	n := native.New[native.ImageCreateInfo](a)
	n.SType = sType(vk.StructureTypeImageCreateInfo)
	n.Flags = uint32(ci.Flags)
	n.ImageType = int32(ci.ImageType)
	n.Format = int32(ci.Format)
	n.Extent = ci.Extent
	n.MipLevels = ci.MipLevels
	n.ArrayLayers = ci.ArrayLayers
	n.Samples = uint32(ci.Samples)
	n.Tiling = int32(ci.Tiling)
	n.Usage = uint32(ci.Usage)
	n.SharingMode = int32(ci.SharingMode)
	n.QueueFamilyIndexCount = uint32(len(ci.QueueFamilyIndices))
	n.PQueueFamilyIndices = native.Slice(a, ci.QueueFamilyIndices)
	n.InitialLayout = int32(ci.InitialLayout)
	return n
}

// SubresourceLayout mirrors VkSubresourceLayout.
type SubresourceLayout struct {
	Offset     uint64
	Size       uint64
	RowPitch   uint64
	ArrayPitch uint64
	DepthPitch uint64
}

// Image wraps VkImage.
type Image struct {
	resource
	device *Device
	handle Handle
	format vk.Format
	extent Extent3D
}

func (d *Device) CreateImage(info *ImageCreateInfo) (*Image, error) {
	img := &Image{resource: resource{kind: "image"}, device: d, format: info.Format, extent: info.Extent}
	img.SetAllocator(d.Allocator())

	var a native.Arena
	defer a.Free()
	h, err := d.createHandle("vkCreateImage", native.Addr(info.toNative(&a)), img.callbacks.addr(), &a)
	if err != nil {
		return nil, err
	}
	img.handle = h
	watch(img)
	return img, nil
}

func (img *Image) Handle() Handle {
	return img.handle
}

func (img *Image) Format() vk.Format {
	return img.format
}

func (img *Image) Extent() Extent3D {
	return img.extent
}

func (img *Image) MemoryRequirements() MemoryRequirements {
	return memoryRequirements(img.device.cmds, "vkGetImageMemoryRequirements", img.device.handle, img.handle)
}

func (img *Image) BindMemory(mem *DeviceMemory, offset uint64) error {
	return img.device.cmds.check("vkBindImageMemory",
		img.device.handle, uintptr(img.handle), uintptr(mem.handle), uintptr(offset))
}

// SubresourceLayout reports the memory layout of one subresource of a
// linearly tiled image.
func (img *Image) SubresourceLayout(aspect vk.ImageAspectFlags, mipLevel, arrayLayer uint32) SubresourceLayout {
	var a native.Arena
	defer a.Free()
	sub := native.New[native.ImageSubresource](&a)
	sub.AspectMask = uint32(aspect)
	sub.MipLevel = mipLevel
	sub.ArrayLayer = arrayLayer
	out := native.New[native.SubresourceLayout](&a)
	img.device.cmds.void("vkGetImageSubresourceLayout",
		img.device.handle, uintptr(img.handle), native.Addr(sub), native.Addr(out))
	return SubresourceLayout(*out)
}

func (img *Image) Destroy() {
	img.release(func(alloc uintptr) {
		img.device.destroyHandle("vkDestroyImage", img.handle, alloc)
	})
}

// ImageViewCreateInfo mirrors VkImageViewCreateInfo.
type ImageViewCreateInfo struct {
	Flags            vk.ImageViewCreateFlags
	Image            *Image
	ViewType         vk.ImageViewType
	Format           vk.Format
	Components       ComponentMapping
	SubresourceRange ImageSubresourceRange
}

func (ci *ImageViewCreateInfo) toNative(a *native.Arena) *native.ImageViewCreateInfo {
	n := native.New[native.ImageViewCreateInfo](a)
	n.SType = sType(vk.StructureTypeImageViewCreateInfo)
	n.Flags = uint32(ci.Flags)
	if ci.Image != nil {
		n.Image = uint64(ci.Image.handle)
	}
	n.ViewType = int32(ci.ViewType)
	n.Format = int32(ci.Format)
	n.Components = native.ComponentMapping{
		R: int32(ci.Components.R),
		G: int32(ci.Components.G),
		B: int32(ci.Components.B),
		A: int32(ci.Components.A),
	}
	n.SubresourceRange = ci.SubresourceRange.toNative()
	return n
}

// ImageView wraps VkImageView.
type ImageView struct {
	resource
	device *Device
	handle Handle
}

func (d *Device) CreateImageView(info *ImageViewCreateInfo) (*ImageView, error) {
	v := &ImageView{resource: resource{kind: "image view"}, device: d}
	v.SetAllocator(d.Allocator())

	var a native.Arena
	defer a.Free()
	h, err := d.createHandle("vkCreateImageView", native.Addr(info.toNative(&a)), v.callbacks.addr(), &a)
	if err != nil {
		return nil, err
	}
	v.handle = h
	watch(v)
	return v, nil
}

// CreateView creates a 2D color view covering the first mip level and layer.
func (img *Image) CreateView() (*ImageView, error) {
	return img.device.CreateImageView(&ImageViewCreateInfo{
		Image:    img,
		ViewType: vk.ImageViewType2d,
		Format:   img.format,
		SubresourceRange: ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount: 1,
			LayerCount: 1,
		},
	})
}

func (v *ImageView) Handle() Handle {
	return v.handle
}

func (v *ImageView) Destroy() {
	v.release(func(alloc uintptr) {
		v.device.destroyHandle("vkDestroyImageView", v.handle, alloc)
	})
}

// SamplerCreateInfo mirrors VkSamplerCreateInfo.
type SamplerCreateInfo struct {
	Flags                   vk.SamplerCreateFlags
	MagFilter               vk.Filter
	MinFilter               vk.Filter
	MipmapMode              vk.SamplerMipmapMode
	AddressModeU            vk.SamplerAddressMode
	AddressModeV            vk.SamplerAddressMode
	AddressModeW            vk.SamplerAddressMode
	MipLodBias              float32
	AnisotropyEnable        bool
	MaxAnisotropy           float32
	CompareEnable           bool
	CompareOp               vk.CompareOp
	MinLod                  float32
	MaxLod                  float32
	BorderColor             vk.BorderColor
	UnnormalizedCoordinates bool
}

func (ci *SamplerCreateInfo) toNative(a *native.Arena) *native.SamplerCreateInfo {
	n := native.New[native.SamplerCreateInfo](a)
	n.SType = sType(vk.StructureTypeSamplerCreateInfo)
	n.Flags = uint32(ci.Flags)
	n.MagFilter = int32(ci.MagFilter)
	n.MinFilter = int32(ci.MinFilter)
	n.MipmapMode = int32(ci.MipmapMode)
	n.AddressModeU = int32(ci.AddressModeU)
	n.AddressModeV = int32(ci.AddressModeV)
	n.AddressModeW = int32(ci.AddressModeW)
	n.MipLodBias = ci.MipLodBias
	n.AnisotropyEnable = bool32(ci.AnisotropyEnable)
	n.MaxAnisotropy = ci.MaxAnisotropy
	n.CompareEnable = bool32(ci.CompareEnable)
	n.CompareOp = int32(ci.CompareOp)
	n.MinLod = ci.MinLod
	n.MaxLod = ci.MaxLod
	n.BorderColor = int32(ci.BorderColor)
	n.UnnormalizedCoordinates = bool32(ci.UnnormalizedCoordinates)
	return n
}

// Sampler wraps VkSampler.
type Sampler struct {
	resource
	device *Device
	handle Handle
}

func (d *Device) CreateSampler(info *SamplerCreateInfo) (*Sampler, error) {
	s := &Sampler{resource: resource{kind: "sampler"}, device: d}
	s.SetAllocator(d.Allocator())

	var a native.Arena
	defer a.Free()
	h, err := d.createHandle("vkCreateSampler", native.Addr(info.toNative(&a)), s.callbacks.addr(), &a)
	if err != nil {
		return nil, err
	}
	s.handle = h
	watch(s)
	return s, nil
}

func (s *Sampler) Handle() Handle {
	return s.handle
}

func (s *Sampler) Destroy() {
	s.release(func(alloc uintptr) {
		s.device.destroyHandle("vkDestroySampler", s.handle, alloc)
	})
}
