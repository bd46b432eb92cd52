package types

// ShaderStage is a single programmable shader stage.
type ShaderStage uint32

const (
	ShaderStageVertex ShaderStage = 1 << iota
	ShaderStageFragment
	ShaderStageCompute
	ShaderStageRayGen
	ShaderStageMiss
	ShaderStageClosestHit
	ShaderStageAnyHit
	ShaderStageIntersection
)

// ShaderStageAll is the stage mask reflection assigns to descriptor sets
// beyond set 0: every set other than set 0 is conservatively given every
// stage flag rather than the narrower set a single shader actually uses.
const ShaderStageAll = ShaderStageVertex | ShaderStageFragment | ShaderStageCompute |
	ShaderStageRayGen | ShaderStageMiss | ShaderStageClosestHit | ShaderStageAnyHit | ShaderStageIntersection

// DescriptorType identifies the kind of resource a descriptor-set binding
// refers to. UniformBufferDynamic and StorageBufferDynamic exist
// specifically so the dynamic-constants ring can supply an offset at bind
// time instead of the pipeline needing a fresh descriptor per frame.
type DescriptorType uint8

const (
	DescriptorTypeUniformBuffer DescriptorType = iota
	DescriptorTypeUniformBufferDynamic
	DescriptorTypeStorageBuffer
	DescriptorTypeStorageBufferDynamic
	DescriptorTypeSampledImage
	DescriptorTypeStorageImage
	DescriptorTypeSampler
	DescriptorTypeCombinedImageSampler
	DescriptorTypeAccelerationStructure
)

// BindingDimensionality describes how many descriptors a binding occupies.
type BindingDimensionality uint8

const (
	// DimSingle is a single descriptor.
	DimSingle BindingDimensionality = iota
	// DimArray is a fixed-size array of N descriptors.
	DimArray
	// DimRuntimeArray is an unbounded array, only legal for the last
	// binding in a set, and the trigger for the bindless layout rule.
	DimRuntimeArray
)

// DescriptorBindingFlags mirrors the Vulkan descriptor-indexing flags a
// bindless binding needs.
type DescriptorBindingFlags uint32

const (
	BindingFlagUpdateAfterBind DescriptorBindingFlags = 1 << iota
	BindingFlagUpdateUnusedWhilePending
	BindingFlagPartiallyBound
	BindingFlagVariableDescriptorCount
)

// BindlessBindingFlags is the flag combination 4.3 requires on a runtime
// sampled-image-array binding.
const BindlessBindingFlags = BindingFlagUpdateAfterBind | BindingFlagUpdateUnusedWhilePending |
	BindingFlagPartiallyBound | BindingFlagVariableDescriptorCount

// DescriptorSetLayoutFlags are layout-level flags.
type DescriptorSetLayoutFlags uint32

const (
	// SetLayoutUpdateAfterBindPool marks a set as allocated from an
	// update-after-bind descriptor pool, required by any set containing a
	// bindless binding.
	SetLayoutUpdateAfterBindPool DescriptorSetLayoutFlags = 1 << iota
)
