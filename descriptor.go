package vkobj

import (
	"github.com/andewx/vkobj/internal/native"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// descriptorPoolFreeSet is VK_DESCRIPTOR_POOL_CREATE_FREE_DESCRIPTOR_SET_BIT.
const descriptorPoolFreeSet = vk.DescriptorPoolCreateFlags(vk.DescriptorPoolCreateFreeDescriptorSetBit)

// DescriptorSetLayoutBinding mirrors VkDescriptorSetLayoutBinding.
type DescriptorSetLayoutBinding struct {
	Binding           uint32
	DescriptorType    vk.DescriptorType
	DescriptorCount   uint32
	StageFlags        vk.ShaderStageFlags
	ImmutableSamplers []*Sampler
}

// DescriptorSetLayoutCreateInfo mirrors VkDescriptorSetLayoutCreateInfo.
type DescriptorSetLayoutCreateInfo struct {
	Flags    vk.DescriptorSetLayoutCreateFlags
	Bindings []DescriptorSetLayoutBinding
}

func (ci *DescriptorSetLayoutCreateInfo) toNative(a *native.Arena) *native.DescriptorSetLayoutCreateInfo {
	n := native.New[native.DescriptorSetLayoutCreateInfo](a)
	n.SType = sType(vk.StructureTypeDescriptorSetLayoutCreateInfo)
	n.Flags = uint32(ci.Flags)
	bindings := native.Make[native.DescriptorSetLayoutBinding](a, len(ci.Bindings))
	for i, b := range ci.Bindings {
		bindings[i] = native.DescriptorSetLayoutBinding{
			Binding:            b.Binding,
			DescriptorType:     int32(b.DescriptorType),
			DescriptorCount:    b.DescriptorCount,
			StageFlags:         uint32(b.StageFlags),
			PImmutableSamplers: native.Slice(a, handles(b.ImmutableSamplers)),
		}
	}
	n.BindingCount = uint32(len(bindings))
	if len(bindings) > 0 {
		n.PBindings = &bindings[0]
	}
	return n
}

// DescriptorSetLayout wraps VkDescriptorSetLayout.
type DescriptorSetLayout struct {
	resource
	device *Device
	handle Handle
}

func (d *Device) CreateDescriptorSetLayout(info *DescriptorSetLayoutCreateInfo) (*DescriptorSetLayout, error) {
	l := &DescriptorSetLayout{resource: resource{kind: "descriptor set layout"}, device: d}
	l.SetAllocator(d.Allocator())

	var a native.Arena
	defer a.Free()
	h, err := d.createHandle("vkCreateDescriptorSetLayout", native.Addr(info.toNative(&a)), l.callbacks.addr(), &a)
	if err != nil {
		return nil, err
	}
	l.handle = h
	watch(l)
	return l, nil
}

// UniformBufferLayout creates a layout with one uniform buffer at binding,
// visible to stages.
func (d *Device) UniformBufferLayout(binding uint32, stages vk.ShaderStageFlags) (*DescriptorSetLayout, error) {
	return d.CreateDescriptorSetLayout(&DescriptorSetLayoutCreateInfo{
		Bindings: []DescriptorSetLayoutBinding{{
			Binding:         binding,
			DescriptorType:  vk.DescriptorTypeUniformBuffer,
			DescriptorCount: 1,
			StageFlags:      stages,
		}},
	})
}

func (l *DescriptorSetLayout) Handle() Handle {
	return l.handle
}

func (l *DescriptorSetLayout) Destroy() {
	l.release(func(alloc uintptr) {
		l.device.destroyHandle("vkDestroyDescriptorSetLayout", l.handle, alloc)
	})
}

// DescriptorPoolSize mirrors VkDescriptorPoolSize.
type DescriptorPoolSize struct {
	Type            vk.DescriptorType
	DescriptorCount uint32
}

// DescriptorPoolCreateInfo mirrors VkDescriptorPoolCreateInfo.
type DescriptorPoolCreateInfo struct {
	Flags     vk.DescriptorPoolCreateFlags
	MaxSets   uint32
	PoolSizes []DescriptorPoolSize
}

func (ci *DescriptorPoolCreateInfo) toNative(a *native.Arena) *native.DescriptorPoolCreateInfo {
	n := native.New[native.DescriptorPoolCreateInfo](a)
	n.SType = sType(vk.StructureTypeDescriptorPoolCreateInfo)
	n.Flags = uint32(ci.Flags)
	n.MaxSets = ci.MaxSets
	sizes := native.Make[native.DescriptorPoolSize](a, len(ci.PoolSizes))
	for i, s := range ci.PoolSizes {
		sizes[i] = native.DescriptorPoolSize{Type: int32(s.Type), DescriptorCount: s.DescriptorCount}
	}
	n.PoolSizeCount = uint32(len(sizes))
	if len(sizes) > 0 {
		n.PPoolSizes = &sizes[0]
	}
	return n
}

// DescriptorPool wraps VkDescriptorPool and counts the sets allocated from
// it that are still live.
type DescriptorPool struct {
	resource
	device      *Device
	handle      Handle
	flags       vk.DescriptorPoolCreateFlags
	outstanding int
	// epoch advances on Reset and Destroy; sets from an older epoch are
	// already reclaimed.
	epoch int
}

func (d *Device) CreateDescriptorPool(info *DescriptorPoolCreateInfo) (*DescriptorPool, error) {
	p := &DescriptorPool{resource: resource{kind: "descriptor pool"}, device: d, flags: info.Flags}
	p.SetAllocator(d.Allocator())

	var a native.Arena
	defer a.Free()
	h, err := d.createHandle("vkCreateDescriptorPool", native.Addr(info.toNative(&a)), p.callbacks.addr(), &a)
	if err != nil {
		return nil, err
	}
	p.handle = h
	watch(p)
	return p, nil
}

func (p *DescriptorPool) Handle() Handle {
	return p.handle
}

// Outstanding returns the number of sets allocated from the pool and not
// yet freed or reset.
func (p *DescriptorPool) Outstanding() int {
	return p.outstanding
}

// Allocate allocates one set per layout.
func (p *DescriptorPool) Allocate(layouts ...*DescriptorSetLayout) ([]*DescriptorSet, error) {
	if len(layouts) == 0 {
		return nil, nil
	}
	var a native.Arena
	defer a.Free()
	n := native.New[native.DescriptorSetAllocateInfo](&a)
	n.SType = sType(vk.StructureTypeDescriptorSetAllocateInfo)
	n.DescriptorPool = uint64(p.handle)
	n.DescriptorSetCount = uint32(len(layouts))
	n.PSetLayouts = native.Slice(&a, handles(layouts))
	out := native.Make[uint64](&a, len(layouts))
	err := p.device.cmds.check("vkAllocateDescriptorSets",
		p.device.handle, native.Addr(n), native.Addr(&out[0]))
	if err != nil {
		return nil, err
	}
	sets := make([]*DescriptorSet, len(out))
	for i, h := range out {
		sets[i] = &DescriptorSet{pool: p, handle: Handle(h), layout: layouts[i], epoch: p.epoch}
	}
	p.outstanding += len(sets)
	return sets, nil
}

// Reset returns every set to the pool. Sets allocated before the reset
// report Destroyed and their Destroy does nothing.
func (p *DescriptorPool) Reset() error {
	if err := p.device.cmds.check("vkResetDescriptorPool", p.device.handle, uintptr(p.handle), 0); err != nil {
		return err
	}
	p.reclaim()
	return nil
}

func (p *DescriptorPool) reclaim() {
	p.epoch++
	p.outstanding = 0
}

// Free frees sets in a single call. The pool must have been created with
// the free-descriptor-set flag.
func (p *DescriptorPool) Free(sets ...*DescriptorSet) error {
	if p.flags&descriptorPoolFreeSet == 0 {
		return errors.New("vulkan: descriptor pool was created without the free-descriptor-set flag")
	}
	var live []*DescriptorSet
	for _, s := range sets {
		if s.pool != p {
			return errors.New("vulkan: descriptor set belongs to another pool")
		}
		if !s.Destroyed() {
			live = append(live, s)
		}
	}
	if len(live) == 0 {
		return nil
	}
	var a native.Arena
	defer a.Free()
	err := p.device.cmds.check("vkFreeDescriptorSets",
		p.device.handle, uintptr(p.handle), uintptr(len(live)), native.Addr(native.Slice(&a, handles(live))))
	if err != nil {
		return err
	}
	for _, s := range live {
		s.destroyed = true
	}
	p.outstanding -= len(live)
	return nil
}

func (p *DescriptorPool) Destroy() {
	p.release(func(alloc uintptr) {
		p.device.destroyHandle("vkDestroyDescriptorPool", p.handle, alloc)
		p.reclaim()
	})
}

// DescriptorSet wraps VkDescriptorSet. It is owned by its pool.
type DescriptorSet struct {
	pool      *DescriptorPool
	handle    Handle
	layout    *DescriptorSetLayout
	epoch     int
	destroyed bool
}

func (s *DescriptorSet) Handle() Handle {
	return s.handle
}

func (s *DescriptorSet) Pool() *DescriptorPool {
	return s.pool
}

func (s *DescriptorSet) Layout() *DescriptorSetLayout {
	return s.layout
}

func (s *DescriptorSet) Destroyed() bool {
	return s.destroyed || s.epoch != s.pool.epoch
}

// Update applies writes and copies that target this or other sets.
func (s *DescriptorSet) Update(writes []WriteDescriptorSet, copies []CopyDescriptorSet) {
	s.pool.device.UpdateDescriptorSets(writes, copies)
}

// Destroy returns the set to its pool. The native free is only issued when
// the pool supports freeing individual sets; otherwise the set stays
// allocated until the pool is reset.
func (s *DescriptorSet) Destroy() {
	if s.Destroyed() {
		return
	}
	if s.pool.flags&descriptorPoolFreeSet != 0 {
		if err := s.pool.Free(s); err != nil {
			errorLog.Println(err)
		}
		return
	}
	s.destroyed = true
	s.pool.outstanding--
}

// DescriptorImageInfo mirrors VkDescriptorImageInfo.
type DescriptorImageInfo struct {
	Sampler     *Sampler
	ImageView   *ImageView
	ImageLayout vk.ImageLayout
}

// DescriptorBufferInfo mirrors VkDescriptorBufferInfo. Range may be
// WholeSize.
type DescriptorBufferInfo struct {
	Buffer *Buffer
	Offset uint64
	Range  uint64
}

// WriteDescriptorSet mirrors VkWriteDescriptorSet. Exactly one of
// ImageInfo, BufferInfo and TexelBufferViews is used, chosen by
// DescriptorType; the descriptor count is its length.
type WriteDescriptorSet struct {
	DstSet           *DescriptorSet
	DstBinding       uint32
	DstArrayElement  uint32
	DescriptorType   vk.DescriptorType
	ImageInfo        []DescriptorImageInfo
	BufferInfo       []DescriptorBufferInfo
	TexelBufferViews []Handle
}

func (w *WriteDescriptorSet) count() int {
	switch {
	case len(w.ImageInfo) > 0:
		return len(w.ImageInfo)
	case len(w.BufferInfo) > 0:
		return len(w.BufferInfo)
	default:
		return len(w.TexelBufferViews)
	}
}

func (w *WriteDescriptorSet) fill(a *native.Arena, n *native.WriteDescriptorSet) {
	n.SType = sType(vk.StructureTypeWriteDescriptorSet)
	if w.DstSet != nil {
		n.DstSet = uint64(w.DstSet.handle)
	}
	n.DstBinding = w.DstBinding
	n.DstArrayElement = w.DstArrayElement
	n.DescriptorCount = uint32(w.count())
	n.DescriptorType = int32(w.DescriptorType)

	images := native.Make[native.DescriptorImageInfo](a, len(w.ImageInfo))
	for i, img := range w.ImageInfo {
		images[i].ImageLayout = int32(img.ImageLayout)
		if img.Sampler != nil {
			images[i].Sampler = uint64(img.Sampler.handle)
		}
		if img.ImageView != nil {
			images[i].ImageView = uint64(img.ImageView.handle)
		}
	}
	if len(images) > 0 {
		n.PImageInfo = &images[0]
	}

	buffers := native.Make[native.DescriptorBufferInfo](a, len(w.BufferInfo))
	for i, b := range w.BufferInfo {
		buffers[i] = native.DescriptorBufferInfo{Offset: b.Offset, Range: b.Range}
		if b.Buffer != nil {
			buffers[i].Buffer = uint64(b.Buffer.handle)
		}
	}
	if len(buffers) > 0 {
		n.PBufferInfo = &buffers[0]
	}

	n.PTexelBufferView = native.Slice(a, rawHandles(w.TexelBufferViews))
}

// CopyDescriptorSet mirrors VkCopyDescriptorSet.
type CopyDescriptorSet struct {
	SrcSet          *DescriptorSet
	SrcBinding      uint32
	SrcArrayElement uint32
	DstSet          *DescriptorSet
	DstBinding      uint32
	DstArrayElement uint32
	DescriptorCount uint32
}

func (c *CopyDescriptorSet) toNative() native.CopyDescriptorSet {
	n := native.CopyDescriptorSet{
		SType:           sType(vk.StructureTypeCopyDescriptorSet),
		SrcBinding:      c.SrcBinding,
		SrcArrayElement: c.SrcArrayElement,
		DstBinding:      c.DstBinding,
		DstArrayElement: c.DstArrayElement,
		DescriptorCount: c.DescriptorCount,
	}
	if c.SrcSet != nil {
		n.SrcSet = uint64(c.SrcSet.handle)
	}
	if c.DstSet != nil {
		n.DstSet = uint64(c.DstSet.handle)
	}
	return n
}

// UpdateDescriptorSets applies descriptor writes and copies in one call.
func (d *Device) UpdateDescriptorSets(writes []WriteDescriptorSet, copies []CopyDescriptorSet) {
	if len(writes) == 0 && len(copies) == 0 {
		return
	}
	var a native.Arena
	defer a.Free()

	nw := native.Make[native.WriteDescriptorSet](&a, len(writes))
	for i := range writes {
		writes[i].fill(&a, &nw[i])
	}
	nc := native.Make[native.CopyDescriptorSet](&a, len(copies))
	for i := range copies {
		nc[i] = copies[i].toNative()
	}
	var pw, pc uintptr
	if len(nw) > 0 {
		pw = native.Addr(&nw[0])
	}
	if len(nc) > 0 {
		pc = native.Addr(&nc[0])
	}
	d.cmds.void("vkUpdateDescriptorSets", d.handle, uintptr(len(nw)), pw, uintptr(len(nc)), pc)
}
