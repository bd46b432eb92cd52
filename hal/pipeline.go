package hal

import "github.com/gogpu/rendergraph/types"

// ComputePipelineDesc describes a compute pipeline, keyed in the pipeline
// cache by the content hash of Shader's SPIR-V bytes plus any
// PredefinedSetLayouts override.
type ComputePipelineDesc struct {
	Shader                 ShaderModule
	Layout                 PipelineLayout
	PredefinedSetLayouts   map[uint32]DescriptorSetLayoutDesc
}

// ComputePipeline is a created compute pipeline.
type ComputePipeline interface {
	Resource
	Layout() PipelineLayout
	WorkgroupSize() [3]uint32
}

// RasterPipelineDesc describes a raster pipeline. RenderPass must have
// come from the render-pass cache so the pipeline is compatible with
// every framebuffer sharing that cache key.
type RasterPipelineDesc struct {
	VertexShader   ShaderModule
	FragmentShader ShaderModule
	Layout         PipelineLayout
	RenderPass     RenderPass
	Topology       types.PrimitiveTopology
	FrontFace      types.FrontFace
	CullMode       types.CullMode
	DepthTestEnable  bool
	DepthWriteEnable bool
	DepthCompareOp   types.CompareOp
	PredefinedSetLayouts map[uint32]DescriptorSetLayoutDesc
}

// RasterPipeline is a created raster pipeline.
type RasterPipeline interface {
	Resource
	Layout() PipelineLayout
}

// RayTracingPipelineDesc describes a ray tracing pipeline: one ray
// generation shader, a flat list of miss shaders, and a flat list of hit
// groups (closest-hit plus optional any-hit).
type RayTracingPipelineDesc struct {
	RayGen               ShaderModule
	Miss                 []ShaderModule
	HitGroups            []HitGroup
	Layout               PipelineLayout
	MaxRecursionDepth    uint32
	PredefinedSetLayouts map[uint32]DescriptorSetLayoutDesc
}

// HitGroup bundles the shaders invoked for one hit-group index.
type HitGroup struct {
	ClosestHit   ShaderModule
	AnyHit       ShaderModule // optional
	Intersection ShaderModule // optional, only for procedural geometry
}

// RayTracingPipeline is a created ray tracing pipeline together with its
// shader binding table layout.
type RayTracingPipeline interface {
	Resource
	Layout() PipelineLayout
	ShaderBindingTable() ShaderBindingTable
}

// ShaderBindingTableRegion is one of the four strided device-address
// regions a trace-rays call consumes.
type ShaderBindingTableRegion struct {
	DeviceAddress uint64
	Stride        uint64
	Size          uint64
}

// ShaderBindingTable holds the four regions (ray-gen, miss, hit, callable)
// backing a ray tracing pipeline, built into a buffer owned by the
// pipeline cache.
type ShaderBindingTable interface {
	RayGen() ShaderBindingTableRegion
	Miss() ShaderBindingTableRegion
	HitGroup() ShaderBindingTableRegion
	Callable() ShaderBindingTableRegion
}
