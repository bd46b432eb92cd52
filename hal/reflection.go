package hal

import "github.com/gogpu/rendergraph/types"

// ShaderReflection is produced by the external shader compiler (consuming
// HLSL source or an entry-point name) alongside the compiled SPIR-V bytes.
// The pipeline cache parses nothing itself; it only reads this structure
// and the bytes it was handed.
type ShaderReflection struct {
	// Sets maps a descriptor-set index to its bindings, as reflected from
	// this one shader stage. Merging across stages happens in the
	// reflection package.
	Sets map[uint32]map[uint32]DescriptorInfo

	// WorkgroupSize is extracted from the SPIR-V LocalSize decoration on
	// compute shaders; zero for non-compute stages.
	WorkgroupSize [3]uint32

	// PushConstantSize is the size, in bytes, of this stage's push
	// constant block (0 if none).
	PushConstantSize uint32
}

// DescriptorInfo describes one reflected binding.
type DescriptorInfo struct {
	Type          types.DescriptorType
	Dimensionality types.BindingDimensionality
	ArrayLength   uint32 // meaningful only when Dimensionality == DimArray
	Name          string
}

// ShaderBytecode is the (SPIR-V bytes, reflection) pair the shader
// compiler hands back for one stage.
type ShaderBytecode struct {
	Stage      types.ShaderStage
	SPIRV      []byte
	Reflection ShaderReflection
}
