package bindless

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/types"
)

const (
	bindingMeshMetadata = 0
	bindingVertexStream = 1
	bindingImages       = 2
)

// Set is the single bindless descriptor set. The renderer installs its
// LayoutDesc as the set-1 layout of every pipeline; the render graph does
// not bind the set itself, so a pass binds DescriptorSet() as set 1.
type Set struct {
	dev        hal.Device
	layout     hal.DescriptorSetLayout
	layoutDesc hal.DescriptorSetLayoutDesc
	pool       hal.DescriptorPool
	set        hal.DescriptorSet

	maxImages uint32
	nextSlot  atomic.Uint32
}

// New allocates the bindless layout, its update-after-bind pool, and one
// descriptor set, sized for maxImages sampled-image slots. maxImages
// should already reflect the device's
// max_per_stage_descriptor_sampled_images minus the headroom a caller
// reserves for non-bindless descriptors in the same stage.
func New(dev hal.Device, maxImages uint32) (*Set, error) {
	desc := hal.DescriptorSetLayoutDesc{
		Flags: types.SetLayoutUpdateAfterBindPool,
		Bindings: []hal.DescriptorSetLayoutBinding{
			{Binding: bindingMeshMetadata, Type: types.DescriptorTypeStorageBuffer, Count: 1, Dimensionality: types.DimSingle, StageFlags: types.ShaderStageAll},
			{Binding: bindingVertexStream, Type: types.DescriptorTypeStorageBuffer, Count: 1, Dimensionality: types.DimSingle, StageFlags: types.ShaderStageAll},
			{
				Binding: bindingImages, Type: types.DescriptorTypeSampledImage, Count: maxImages,
				Dimensionality: types.DimRuntimeArray, StageFlags: types.ShaderStageAll, Flags: types.BindlessBindingFlags,
			},
		},
	}
	layout, err := dev.CreateDescriptorSetLayout(desc)
	if err != nil {
		return nil, fmt.Errorf("bindless: create descriptor set layout: %w", err)
	}

	pool, err := dev.CreateDescriptorPool(1, map[types.DescriptorType]uint32{
		types.DescriptorTypeStorageBuffer: 2,
		types.DescriptorTypeSampledImage:  maxImages,
	}, true)
	if err != nil {
		return nil, fmt.Errorf("bindless: create descriptor pool: %w", err)
	}

	set, err := pool.Allocate(layout, maxImages)
	if err != nil {
		return nil, fmt.Errorf("bindless: allocate descriptor set: %w", err)
	}

	return &Set{dev: dev, layout: layout, layoutDesc: desc, pool: pool, set: set, maxImages: maxImages}, nil
}

// Layout returns the bindless descriptor-set layout, for installing as a
// predefined set-1 override on every graph this set is shared with.
func (s *Set) Layout() hal.DescriptorSetLayout { return s.layout }

// LayoutDesc returns the descriptor this set's layout was built from, so
// a renderer can install it as a predefined set-1 override on the
// pipeline cache without duplicating the binding list by hand.
func (s *Set) LayoutDesc() hal.DescriptorSetLayoutDesc { return s.layoutDesc }

// DescriptorSet returns the single allocated set, for binding at set index
// 1 during pass execution.
func (s *Set) DescriptorSet() hal.DescriptorSet { return s.set }

// SetMeshMetadata binds buf to binding 0.
func (s *Set) SetMeshMetadata(buf hal.Buffer) {
	s.dev.UpdateDescriptorSets([]hal.DescriptorWrite{
		{Set: s.set, Binding: bindingMeshMetadata, Type: types.DescriptorTypeStorageBuffer, Buffers: []hal.DescriptorBufferInfo{{Buffer: buf}}},
	})
}

// SetVertexStream binds buf to binding 1.
func (s *Set) SetVertexStream(buf hal.Buffer) {
	s.dev.UpdateDescriptorSets([]hal.DescriptorWrite{
		{Set: s.set, Binding: bindingVertexStream, Type: types.DescriptorTypeStorageBuffer, Buffers: []hal.DescriptorBufferInfo{{Buffer: buf}}},
	})
}

// AddImage assigns view the next free slot in the bindless image array and
// writes it with UpdateAfterBind, returning the slot index shaders index
// into binding 2 with. It panics once every slot is in use — the set is
// sized for the device's reported ceiling at construction time, so
// exhausting it means a caller is registering more textures than the
// device was told to expect.
func (s *Set) AddImage(view hal.ImageView, sampler hal.Sampler) uint32 {
	slot := s.nextSlot.Add(1) - 1
	if slot >= s.maxImages {
		panic(fmt.Sprintf("bindless: image slot %d exceeds capacity %d", slot, s.maxImages))
	}
	s.dev.UpdateDescriptorSets([]hal.DescriptorWrite{
		{
			Set: s.set, Binding: bindingImages, ArrayElement: slot, Type: types.DescriptorTypeSampledImage,
			Images: []hal.DescriptorImageInfo{{View: view, Sampler: sampler, Layout: types.ImageLayoutShaderReadOnlyOptimal}},
		},
	})
	return slot
}

// Destroy releases the pool and layout.
func (s *Set) Destroy() {
	s.pool.Destroy()
	s.layout.Destroy()
}
