package types

// ImageUsage is a bit set of the ways an image may be used. ImageDesc.Usage
// may be left empty at graph-record time; the compiler fills it in from the
// access types declared against the image (see the graph package).
type ImageUsage uint32

const (
	ImageUsageTransferSrc ImageUsage = 1 << iota
	ImageUsageTransferDst
	ImageUsageSampled
	ImageUsageStorage
	ImageUsageColorAttachment
	ImageUsageDepthStencilAttachment
)

func (u ImageUsage) Has(bit ImageUsage) bool { return u&bit != 0 }

// ImageCreateFlags mirrors the small set of image creation flags the graph
// cares about (cube-compatible view creation, mutable format aliasing).
type ImageCreateFlags uint32

const (
	ImageCreateCubeCompatible ImageCreateFlags = 1 << iota
	ImageCreateMutableFormat
)

// Tiling describes the memory layout of image texels.
type Tiling uint8

const (
	TilingOptimal Tiling = iota
	TilingLinear
)

// BufferUsage is a bit set of the ways a buffer may be used. Like
// ImageUsage, BufferDesc.Usage may start empty and is inferred at compile.
type BufferUsage uint32

const (
	BufferUsageTransferSrc BufferUsage = 1 << iota
	BufferUsageTransferDst
	BufferUsageUniformBuffer
	BufferUsageUniformBufferDynamic
	BufferUsageStorageBuffer
	BufferUsageStorageBufferDynamic
	BufferUsageUniformTexelBuffer
	BufferUsageIndexBuffer
	BufferUsageVertexBuffer
	BufferUsageIndirectBuffer
	BufferUsageShaderDeviceAddress
	BufferUsageAccelerationStructureBuildInput
	BufferUsageAccelerationStructureStorage
	BufferUsageShaderBindingTable
)

func (u BufferUsage) Has(bit BufferUsage) bool { return u&bit != 0 }

// MemoryLocation selects the memory heap a resource is allocated from.
type MemoryLocation uint8

const (
	// MemoryLocationGpuOnly is device-local memory, not host visible.
	MemoryLocationGpuOnly MemoryLocation = iota
	// MemoryLocationCpuToGpu is host-visible, optimized for CPU writes
	// that the GPU reads (staging, dynamic constants, upload rings).
	MemoryLocationCpuToGpu
	// MemoryLocationGpuToCpu is host-visible, optimized for GPU writes
	// that the CPU reads back (readback buffers).
	MemoryLocationGpuToCpu
)
