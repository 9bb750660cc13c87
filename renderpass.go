package vkobj

import (
	"github.com/andewx/vkobj/internal/native"
	vk "github.com/vulkan-go/vulkan"
)

// AttachmentDescription mirrors VkAttachmentDescription.
type AttachmentDescription struct {
	Flags          vk.AttachmentDescriptionFlags
	Format         vk.Format
	Samples        vk.SampleCountFlagBits
	LoadOp         vk.AttachmentLoadOp
	StoreOp        vk.AttachmentStoreOp
	StencilLoadOp  vk.AttachmentLoadOp
	StencilStoreOp vk.AttachmentStoreOp
	InitialLayout  vk.ImageLayout
	FinalLayout    vk.ImageLayout
}

// AttachmentReference mirrors VkAttachmentReference.
type AttachmentReference struct {
	Attachment uint32
	Layout     vk.ImageLayout
}

// SubpassDescription mirrors VkSubpassDescription. ResolveAttachments is
// either empty or as long as ColorAttachments.
type SubpassDescription struct {
	Flags                  vk.SubpassDescriptionFlags
	PipelineBindPoint      vk.PipelineBindPoint
	InputAttachments       []AttachmentReference
	ColorAttachments       []AttachmentReference
	ResolveAttachments     []AttachmentReference
	DepthStencilAttachment *AttachmentReference
	PreserveAttachments    []uint32
}

// SubpassDependency mirrors VkSubpassDependency. Use SubpassExternal for
// the implicit outer subpass.
type SubpassDependency struct {
	SrcSubpass      uint32
	DstSubpass      uint32
	SrcStageMask    vk.PipelineStageFlags
	DstStageMask    vk.PipelineStageFlags
	SrcAccessMask   vk.AccessFlags
	DstAccessMask   vk.AccessFlags
	DependencyFlags vk.DependencyFlags
}

// RenderPassCreateInfo mirrors VkRenderPassCreateInfo.
type RenderPassCreateInfo struct {
	Attachments  []AttachmentDescription
	Subpasses    []SubpassDescription
	Dependencies []SubpassDependency
}

func references(a *native.Arena, refs []AttachmentReference) *native.AttachmentReference {
	list := native.Make[native.AttachmentReference](a, len(refs))
	for i, r := range refs {
		list[i] = native.AttachmentReference{Attachment: r.Attachment, Layout: int32(r.Layout)}
	}
	if len(list) == 0 {
		return nil
	}
	return &list[0]
}

func (ci *RenderPassCreateInfo) toNative(a *native.Arena) *native.RenderPassCreateInfo {
	n := native.New[native.RenderPassCreateInfo](a)
	n.SType = sType(vk.StructureTypeRenderPassCreateInfo)

	attachments := native.Make[native.AttachmentDescription](a, len(ci.Attachments))
	for i, at := range ci.Attachments {
		attachments[i] = native.AttachmentDescription{
			Flags:          uint32(at.Flags),
			Format:         int32(at.Format),
			Samples:        uint32(at.Samples),
			LoadOp:         int32(at.LoadOp),
			StoreOp:        int32(at.StoreOp),
			StencilLoadOp:  int32(at.StencilLoadOp),
			StencilStoreOp: int32(at.StencilStoreOp),
			InitialLayout:  int32(at.InitialLayout),
			FinalLayout:    int32(at.FinalLayout),
		}
	}
	n.AttachmentCount = uint32(len(attachments))
	if len(attachments) > 0 {
		n.PAttachments = &attachments[0]
	}

	subpasses := native.Make[native.SubpassDescription](a, len(ci.Subpasses))
	for i, sp := range ci.Subpasses {
		s := &subpasses[i]
		s.Flags = uint32(sp.Flags)
		s.PipelineBindPoint = int32(sp.PipelineBindPoint)
		s.InputAttachmentCount = uint32(len(sp.InputAttachments))
		s.PInputAttachments = references(a, sp.InputAttachments)
		s.ColorAttachmentCount = uint32(len(sp.ColorAttachments))
		s.PColorAttachments = references(a, sp.ColorAttachments)
		s.PResolveAttachments = references(a, sp.ResolveAttachments)
		if sp.DepthStencilAttachment != nil {
			s.PDepthStencilAttachment = references(a, []AttachmentReference{*sp.DepthStencilAttachment})
		}
		s.PreserveAttachmentCount = uint32(len(sp.PreserveAttachments))
		s.PPreserveAttachments = native.Slice(a, sp.PreserveAttachments)
	}
	n.SubpassCount = uint32(len(subpasses))
	if len(subpasses) > 0 {
		n.PSubpasses = &subpasses[0]
	}

	deps := native.Make[native.SubpassDependency](a, len(ci.Dependencies))
	for i, d := range ci.Dependencies {
		deps[i] = native.SubpassDependency{
			SrcSubpass:      d.SrcSubpass,
			DstSubpass:      d.DstSubpass,
			SrcStageMask:    uint32(d.SrcStageMask),
			DstStageMask:    uint32(d.DstStageMask),
			SrcAccessMask:   uint32(d.SrcAccessMask),
			DstAccessMask:   uint32(d.DstAccessMask),
			DependencyFlags: uint32(d.DependencyFlags),
		}
	}
	n.DependencyCount = uint32(len(deps))
	if len(deps) > 0 {
		n.PDependencies = &deps[0]
	}
	return n
}

// ColorDepthRenderPass describes a single graphics subpass writing one color
// attachment (index 0) and one depth attachment (index 1). Both are cleared
// on load; the color attachment ends in finalLayout.
func ColorDepthRenderPass(color, depth vk.Format, finalLayout vk.ImageLayout) *RenderPassCreateInfo {
	return &RenderPassCreateInfo{
		Attachments: []AttachmentDescription{
			{
				Format:         color,
				Samples:        vk.SampleCount1Bit,
				LoadOp:         vk.AttachmentLoadOpClear,
				StoreOp:        vk.AttachmentStoreOpStore,
				StencilLoadOp:  vk.AttachmentLoadOpDontCare,
				StencilStoreOp: vk.AttachmentStoreOpDontCare,
				InitialLayout:  vk.ImageLayoutUndefined,
				FinalLayout:    finalLayout,
			},
			{
				Format:         depth,
				Samples:        vk.SampleCount1Bit,
				LoadOp:         vk.AttachmentLoadOpClear,
				StoreOp:        vk.AttachmentStoreOpDontCare,
				StencilLoadOp:  vk.AttachmentLoadOpDontCare,
				StencilStoreOp: vk.AttachmentStoreOpDontCare,
				InitialLayout:  vk.ImageLayoutUndefined,
				FinalLayout:    vk.ImageLayoutDepthStencilAttachmentOptimal,
			},
		},
		Subpasses: []SubpassDescription{{
			PipelineBindPoint: vk.PipelineBindPointGraphics,
			ColorAttachments: []AttachmentReference{
				{Attachment: 0, Layout: vk.ImageLayoutColorAttachmentOptimal},
			},
			DepthStencilAttachment: &AttachmentReference{
				Attachment: 1, Layout: vk.ImageLayoutDepthStencilAttachmentOptimal,
			},
		}},
		Dependencies: []SubpassDependency{{
			SrcSubpass:    SubpassExternal,
			DstSubpass:    0,
			SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
			DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
			DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentReadBit | vk.AccessColorAttachmentWriteBit),
		}},
	}
}

// RenderPass wraps VkRenderPass.
type RenderPass struct {
	resource
	device *Device
	handle Handle
}

func (d *Device) CreateRenderPass(info *RenderPassCreateInfo) (*RenderPass, error) {
	rp := &RenderPass{resource: resource{kind: "render pass"}, device: d}
	rp.SetAllocator(d.Allocator())

	var a native.Arena
	defer a.Free()
	h, err := d.createHandle("vkCreateRenderPass", native.Addr(info.toNative(&a)), rp.callbacks.addr(), &a)
	if err != nil {
		return nil, err
	}
	rp.handle = h
	watch(rp)
	return rp, nil
}

func (rp *RenderPass) Handle() Handle {
	return rp.handle
}

func (rp *RenderPass) Destroy() {
	rp.release(func(alloc uintptr) {
		rp.device.destroyHandle("vkDestroyRenderPass", rp.handle, alloc)
	})
}

// FramebufferCreateInfo mirrors VkFramebufferCreateInfo.
type FramebufferCreateInfo struct {
	RenderPass  *RenderPass
	Attachments []*ImageView
	Width       uint32
	Height      uint32
	Layers      uint32
}

func (ci *FramebufferCreateInfo) toNative(a *native.Arena) *native.FramebufferCreateInfo {
	n := native.New[native.FramebufferCreateInfo](a)
	n.SType = sType(vk.StructureTypeFramebufferCreateInfo)
	if ci.RenderPass != nil {
		n.RenderPass = uint64(ci.RenderPass.handle)
	}
	n.AttachmentCount = uint32(len(ci.Attachments))
	n.PAttachments = native.Slice(a, handles(ci.Attachments))
	n.Width = ci.Width
	n.Height = ci.Height
	n.Layers = ci.Layers
	if n.Layers == 0 {
		n.Layers = 1
	}
	return n
}

// Framebuffer wraps VkFramebuffer.
type Framebuffer struct {
	resource
	device *Device
	handle Handle
	extent Extent2D
}

func (d *Device) CreateFramebuffer(info *FramebufferCreateInfo) (*Framebuffer, error) {
	fb := &Framebuffer{
		resource: resource{kind: "framebuffer"},
		device:   d,
		extent:   Extent2D{Width: info.Width, Height: info.Height},
	}
	fb.SetAllocator(d.Allocator())

	var a native.Arena
	defer a.Free()
	h, err := d.createHandle("vkCreateFramebuffer", native.Addr(info.toNative(&a)), fb.callbacks.addr(), &a)
	if err != nil {
		return nil, err
	}
	fb.handle = h
	watch(fb)
	return fb, nil
}

func (fb *Framebuffer) Handle() Handle {
	return fb.handle
}

// Extent returns the framebuffer width and height.
func (fb *Framebuffer) Extent() Extent2D {
	return fb.extent
}

func (fb *Framebuffer) Destroy() {
	fb.release(func(alloc uintptr) {
		fb.device.destroyHandle("vkDestroyFramebuffer", fb.handle, alloc)
	})
}
