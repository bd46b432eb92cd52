package hal

import "github.com/gogpu/rendergraph/types"

// DescriptorSetLayoutBinding is one binding slot within a descriptor-set
// layout, as produced by the reflection merge rules.
type DescriptorSetLayoutBinding struct {
	Binding        uint32
	Type           types.DescriptorType
	Count          uint32 // 1 for DimSingle, N for DimArray, max slots for DimRuntimeArray
	Dimensionality types.BindingDimensionality
	StageFlags     types.ShaderStage
	Flags          types.DescriptorBindingFlags

	// ImmutableSamplers, when non-empty, binds this sampler binding to a
	// fixed set of the device's immutable samplers rather than one
	// supplied by the caller at bind-write time. The reflection package
	// cannot resolve these itself (it has no device to query), so it
	// leaves this nil and populates ImmutableSamplerDesc instead; the
	// pipeline package resolves the descriptor against the device's
	// sampler set before layout creation.
	ImmutableSamplers []Sampler

	// ImmutableSamplerDesc, when non-nil, is the sampler descriptor a
	// reflected sampler binding's name decoded to, following the
	// "sampler_<filter><mip>(<address>)" naming convention.
	ImmutableSamplerDesc *types.SamplerDesc
}

// DescriptorSetLayoutDesc describes a full descriptor-set layout: the
// output of merging every shader stage's reflection for one set index, or
// a caller-supplied override that supersedes reflection entirely.
type DescriptorSetLayoutDesc struct {
	Bindings []DescriptorSetLayoutBinding
	Flags    types.DescriptorSetLayoutFlags
}

// DescriptorSetLayout is a created descriptor-set layout.
type DescriptorSetLayout interface {
	Resource
	Desc() DescriptorSetLayoutDesc
}

// DescriptorPool allocates descriptor sets against one or more layouts.
// The update-after-bind bindless pool is allocated once at device creation
// and never reset; a pool handed to the device wrapper's deferred-release
// queue is destroyed once that frame slot comes around again.
type DescriptorPool interface {
	Resource

	// Allocate carves one descriptor set of the given layout out of the
	// pool. variableCount is only consulted when the layout's last binding
	// uses DimRuntimeArray; it fixes the allocation's actual array length.
	Allocate(layout DescriptorSetLayout, variableCount uint32) (DescriptorSet, error)

	// Reset recycles every set ever allocated from this pool in one call.
	Reset()
}

// DescriptorSet is one allocated, writable set of bindings.
type DescriptorSet interface {
	Resource
	Layout() DescriptorSetLayout
}

// DescriptorWrite updates a single binding of an already-allocated
// descriptor set. Exactly one of the resource fields should be populated,
// matching Binding's DescriptorType.
type DescriptorWrite struct {
	Set            DescriptorSet
	Binding        uint32
	ArrayElement   uint32 // starting slot for array/runtime-array bindings
	Type           types.DescriptorType
	Buffers        []DescriptorBufferInfo
	Images         []DescriptorImageInfo
	AccelStructs   []AccelerationStructure
}

// DescriptorBufferInfo describes a buffer range bound to a descriptor.
type DescriptorBufferInfo struct {
	Buffer Buffer
	Offset uint64
	Range  uint64 // 0 means "whole buffer from Offset"
}

// DescriptorImageInfo describes an image view (and optional sampler) bound
// to a descriptor.
type DescriptorImageInfo struct {
	View    ImageView
	Sampler Sampler // only meaningful for CombinedImageSampler
	Layout  types.ImageLayout
}

// PushConstantRange describes one stage's slice of the pipeline layout's
// push-constant block.
type PushConstantRange struct {
	StageFlags types.ShaderStage
	Offset     uint32
	Size       uint32
}

// PipelineLayout combines a sequence of descriptor-set layouts with the
// push-constant ranges every pipeline built from it will use.
type PipelineLayout interface {
	Resource
	SetLayouts() []DescriptorSetLayout
	PushConstantRanges() []PushConstantRange
}
