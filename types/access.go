package types

// PipelineStage is a bit set of Vulkan-class pipeline stages, used on both
// sides of a barrier.
type PipelineStage uint32

const (
	StageTopOfPipe PipelineStage = 1 << iota
	StageDrawIndirect
	StageVertexInput
	StageVertexShader
	StageFragmentShader
	StageEarlyFragmentTests
	StageLateFragmentTests
	StageColorAttachmentOutput
	StageComputeShader
	StageTransfer
	StageHost
	StageAccelerationStructureBuild
	StageRayTracingShader
	StageBottomOfPipe
	StageAllCommands
)

// AccessMask is a bit set of Vulkan-class memory access flags.
type AccessMask uint32

const (
	AccessIndirectCommandRead AccessMask = 1 << iota
	AccessIndexRead
	AccessVertexAttributeRead
	AccessUniformRead
	AccessShaderRead
	AccessShaderWrite
	AccessColorAttachmentRead
	AccessColorAttachmentWrite
	AccessDepthStencilAttachmentRead
	AccessDepthStencilAttachmentWrite
	AccessTransferRead
	AccessTransferWrite
	AccessHostRead
	AccessHostWrite
	AccessMemoryRead
	AccessMemoryWrite
	AccessAccelerationStructureRead
	AccessAccelerationStructureWrite
)

// ImageLayout is a Vulkan-class image layout.
type ImageLayout uint8

const (
	ImageLayoutUndefined ImageLayout = iota
	ImageLayoutGeneral
	ImageLayoutColorAttachmentOptimal
	ImageLayoutDepthStencilAttachmentOptimal
	ImageLayoutDepthAttachmentStencilReadOnlyOptimal
	ImageLayoutStencilAttachmentDepthReadOnlyOptimal
	ImageLayoutDepthStencilReadOnlyOptimal
	ImageLayoutShaderReadOnlyOptimal
	ImageLayoutTransferSrcOptimal
	ImageLayoutTransferDstOptimal
	ImageLayoutPresentSrc
)

// AccessType is a closed enumeration of (pipeline stage, access mask,
// required image layout) triples. It is the single vocabulary the render
// graph uses to declare how a pass touches a resource; barrier emission and
// usage-flag inference both read from Info, never from the raw
// stage/access/layout fields directly.
type AccessType uint16

const (
	AccessNothing AccessType = iota
	AccessPresent

	// Indirect / fixed-function reads.
	AccessIndirectCommandRead_
	AccessIndexRead_
	AccessVertexAttributeRead_
	AccessUniformRead_

	// Shader reads, from the least to the most specific.
	AccessAnyShaderReadUniformBuffer
	AccessAnyShaderReadSampledImage
	AccessAnyShaderReadOther
	AccessComputeShaderReadUniformBuffer
	AccessComputeShaderReadSampledImage
	AccessComputeShaderReadOther
	AccessFragmentShaderReadSampledImage
	AccessFragmentShaderReadColorInputAttachment
	AccessFragmentShaderReadOther
	AccessVertexShaderReadOther

	// Shader writes.
	AccessShaderWrite_
	AccessComputeShaderWrite
	AccessAnyShaderWrite

	// Raster attachments.
	AccessColorAttachmentRead_
	AccessColorAttachmentWrite_
	AccessColorAttachmentReadWrite
	AccessDepthStencilAttachmentRead_
	AccessDepthStencilAttachmentWrite_
	AccessDepthAttachmentWriteStencilReadOnly
	AccessStencilAttachmentWriteDepthReadOnly

	// Transfer.
	AccessTransferRead_
	AccessTransferWrite_

	// Host.
	AccessHostRead_
	AccessHostWrite_

	// Catch-all memory access, used by the allocator/external barrier APIs.
	AccessMemoryRead_
	AccessMemoryWrite_

	// Acceleration structures. Builds use one combined read-write access
	// type; trace-time reads have their own read-only access type.
	AccessAccelerationStructureBuildReadWrite
	AccessRayTracingShaderReadAccelerationStructure

	// Umbrella access types referenced by the compile-time merge policy: a
	// pass may declare the general "this is a shader read/write" intent
	// without committing to one specific stage.
	AccessShaderRead_
	AccessGeneral
)

// accessInfo is the (stage, access, layout) tuple and its usage-bit
// implications for one AccessType. This is the only place that maps an
// AccessType to backend-visible state; everything else in the graph and
// executor consult it.
type accessInfo struct {
	srcStage    PipelineStage
	dstStage    PipelineStage
	access      AccessMask
	layout      ImageLayout
	imageUsage  ImageUsage
	bufferUsage BufferUsage
	isRead      bool
	isWrite     bool
}

var accessTable = map[AccessType]accessInfo{
	AccessNothing: {layout: ImageLayoutUndefined},
	AccessPresent: {srcStage: StageBottomOfPipe, dstStage: StageBottomOfPipe, layout: ImageLayoutPresentSrc, isRead: true},

	AccessIndirectCommandRead_: {srcStage: StageDrawIndirect, dstStage: StageDrawIndirect, access: AccessIndirectCommandRead, bufferUsage: BufferUsageIndirectBuffer, isRead: true},
	AccessIndexRead_:           {srcStage: StageVertexInput, dstStage: StageVertexInput, access: AccessIndexRead, bufferUsage: BufferUsageIndexBuffer, isRead: true},
	AccessVertexAttributeRead_: {srcStage: StageVertexInput, dstStage: StageVertexInput, access: AccessVertexAttributeRead, bufferUsage: BufferUsageUniformTexelBuffer, isRead: true},
	AccessUniformRead_:         {srcStage: StageAllCommands, dstStage: StageAllCommands, access: AccessUniformRead, bufferUsage: BufferUsageUniformBuffer, isRead: true},

	AccessAnyShaderReadUniformBuffer: {srcStage: StageAllCommands, dstStage: StageAllCommands, access: AccessShaderRead, bufferUsage: BufferUsageUniformBuffer, isRead: true},
	AccessAnyShaderReadSampledImage:  {srcStage: StageAllCommands, dstStage: StageAllCommands, access: AccessShaderRead, layout: ImageLayoutShaderReadOnlyOptimal, imageUsage: ImageUsageSampled, bufferUsage: BufferUsageUniformTexelBuffer, isRead: true},
	AccessAnyShaderReadOther:         {srcStage: StageAllCommands, dstStage: StageAllCommands, access: AccessShaderRead, layout: ImageLayoutShaderReadOnlyOptimal, imageUsage: ImageUsageSampled, bufferUsage: BufferUsageUniformTexelBuffer, isRead: true},

	AccessComputeShaderReadUniformBuffer: {srcStage: StageComputeShader, dstStage: StageComputeShader, access: AccessShaderRead, bufferUsage: BufferUsageUniformBuffer, isRead: true},
	AccessComputeShaderReadSampledImage:  {srcStage: StageComputeShader, dstStage: StageComputeShader, access: AccessShaderRead, layout: ImageLayoutShaderReadOnlyOptimal, imageUsage: ImageUsageSampled, bufferUsage: BufferUsageUniformTexelBuffer, isRead: true},
	AccessComputeShaderReadOther:         {srcStage: StageComputeShader, dstStage: StageComputeShader, access: AccessShaderRead, layout: ImageLayoutShaderReadOnlyOptimal, imageUsage: ImageUsageSampled, bufferUsage: BufferUsageUniformTexelBuffer, isRead: true},

	AccessFragmentShaderReadSampledImage:          {srcStage: StageFragmentShader, dstStage: StageFragmentShader, access: AccessShaderRead, layout: ImageLayoutShaderReadOnlyOptimal, imageUsage: ImageUsageSampled, isRead: true},
	AccessFragmentShaderReadColorInputAttachment:  {srcStage: StageFragmentShader, dstStage: StageFragmentShader, access: AccessShaderRead, layout: ImageLayoutShaderReadOnlyOptimal, imageUsage: ImageUsageSampled, isRead: true},
	AccessFragmentShaderReadOther:                 {srcStage: StageFragmentShader, dstStage: StageFragmentShader, access: AccessShaderRead, layout: ImageLayoutShaderReadOnlyOptimal, imageUsage: ImageUsageSampled, isRead: true},
	AccessVertexShaderReadOther:                   {srcStage: StageVertexShader, dstStage: StageVertexShader, access: AccessShaderRead, layout: ImageLayoutShaderReadOnlyOptimal, imageUsage: ImageUsageSampled, isRead: true},

	AccessShaderRead_: {srcStage: StageAllCommands, dstStage: StageAllCommands, access: AccessShaderRead, layout: ImageLayoutShaderReadOnlyOptimal, imageUsage: ImageUsageSampled, bufferUsage: BufferUsageUniformTexelBuffer, isRead: true},

	AccessShaderWrite_:       {srcStage: StageAllCommands, dstStage: StageAllCommands, access: AccessShaderWrite, layout: ImageLayoutGeneral, imageUsage: ImageUsageStorage, bufferUsage: BufferUsageStorageBuffer, isWrite: true},
	AccessComputeShaderWrite: {srcStage: StageComputeShader, dstStage: StageComputeShader, access: AccessShaderWrite, layout: ImageLayoutGeneral, imageUsage: ImageUsageStorage, bufferUsage: BufferUsageStorageBuffer, isWrite: true},
	AccessAnyShaderWrite:     {srcStage: StageAllCommands, dstStage: StageAllCommands, access: AccessShaderWrite, layout: ImageLayoutGeneral, imageUsage: ImageUsageStorage, bufferUsage: BufferUsageStorageBuffer, isWrite: true},

	AccessColorAttachmentRead_:      {srcStage: StageColorAttachmentOutput, dstStage: StageColorAttachmentOutput, access: AccessColorAttachmentRead, layout: ImageLayoutColorAttachmentOptimal, imageUsage: ImageUsageColorAttachment, isRead: true},
	AccessColorAttachmentWrite_:     {srcStage: StageColorAttachmentOutput, dstStage: StageColorAttachmentOutput, access: AccessColorAttachmentWrite, layout: ImageLayoutColorAttachmentOptimal, imageUsage: ImageUsageColorAttachment, isWrite: true},
	AccessColorAttachmentReadWrite:  {srcStage: StageColorAttachmentOutput, dstStage: StageColorAttachmentOutput, access: AccessColorAttachmentRead | AccessColorAttachmentWrite, layout: ImageLayoutColorAttachmentOptimal, imageUsage: ImageUsageColorAttachment, isRead: true, isWrite: true},

	AccessDepthStencilAttachmentRead_:          {srcStage: StageEarlyFragmentTests, dstStage: StageLateFragmentTests, access: AccessDepthStencilAttachmentRead, layout: ImageLayoutDepthStencilReadOnlyOptimal, imageUsage: ImageUsageDepthStencilAttachment, isRead: true},
	AccessDepthStencilAttachmentWrite_:         {srcStage: StageEarlyFragmentTests, dstStage: StageLateFragmentTests, access: AccessDepthStencilAttachmentWrite, layout: ImageLayoutDepthStencilAttachmentOptimal, imageUsage: ImageUsageDepthStencilAttachment, isWrite: true},
	AccessDepthAttachmentWriteStencilReadOnly:  {srcStage: StageEarlyFragmentTests, dstStage: StageLateFragmentTests, access: AccessDepthStencilAttachmentRead | AccessDepthStencilAttachmentWrite, layout: ImageLayoutDepthAttachmentStencilReadOnlyOptimal, imageUsage: ImageUsageDepthStencilAttachment, isRead: true, isWrite: true},
	AccessStencilAttachmentWriteDepthReadOnly:  {srcStage: StageEarlyFragmentTests, dstStage: StageLateFragmentTests, access: AccessDepthStencilAttachmentRead | AccessDepthStencilAttachmentWrite, layout: ImageLayoutStencilAttachmentDepthReadOnlyOptimal, imageUsage: ImageUsageDepthStencilAttachment, isRead: true, isWrite: true},

	AccessTransferRead_:  {srcStage: StageTransfer, dstStage: StageTransfer, access: AccessTransferRead, layout: ImageLayoutTransferSrcOptimal, imageUsage: ImageUsageTransferSrc, bufferUsage: BufferUsageTransferSrc, isRead: true},
	AccessTransferWrite_: {srcStage: StageTransfer, dstStage: StageTransfer, access: AccessTransferWrite, layout: ImageLayoutTransferDstOptimal, imageUsage: ImageUsageTransferDst, bufferUsage: BufferUsageTransferDst, isWrite: true},

	AccessHostRead_:  {srcStage: StageHost, dstStage: StageHost, access: AccessHostRead, isRead: true},
	AccessHostWrite_: {srcStage: StageHost, dstStage: StageHost, access: AccessHostWrite, isWrite: true},

	AccessMemoryRead_:  {srcStage: StageAllCommands, dstStage: StageAllCommands, access: AccessMemoryRead, layout: ImageLayoutGeneral, imageUsage: ImageUsageStorage, bufferUsage: BufferUsageStorageBuffer, isRead: true},
	AccessMemoryWrite_: {srcStage: StageAllCommands, dstStage: StageAllCommands, access: AccessMemoryWrite, layout: ImageLayoutGeneral, imageUsage: ImageUsageStorage, bufferUsage: BufferUsageStorageBuffer, isWrite: true},

	AccessAccelerationStructureBuildReadWrite: {
		srcStage: StageAccelerationStructureBuild, dstStage: StageAccelerationStructureBuild,
		access:      AccessAccelerationStructureRead | AccessAccelerationStructureWrite,
		bufferUsage: BufferUsageAccelerationStructureStorage | BufferUsageAccelerationStructureBuildInput,
		isRead:      true, isWrite: true,
	},
	AccessRayTracingShaderReadAccelerationStructure: {
		srcStage: StageRayTracingShader, dstStage: StageRayTracingShader,
		access:      AccessAccelerationStructureRead,
		bufferUsage: BufferUsageAccelerationStructureStorage,
		isRead:      true,
	},

	AccessGeneral: {srcStage: StageAllCommands, dstStage: StageAllCommands, access: AccessMemoryRead | AccessMemoryWrite, layout: ImageLayoutGeneral, imageUsage: ImageUsageStorage, bufferUsage: BufferUsageStorageBuffer, isRead: true, isWrite: true},
}

// Info returns the (stage, access, layout, usage) tuple for an access type.
// It panics if the access type is not one of the closed set above — this
// mirrors the "unknown combinations fail" invariant of the access-type
// enumeration itself; every AccessType constant in this package has a
// table entry.
func (a AccessType) Info() (PipelineStage, PipelineStage, AccessMask, ImageLayout) {
	info, ok := accessTable[a]
	if !ok {
		panic("types: access type has no table entry")
	}
	return info.srcStage, info.dstStage, info.access, info.layout
}

// Layout returns the image layout this access type requires.
func (a AccessType) Layout() ImageLayout {
	info, ok := accessTable[a]
	if !ok {
		panic("types: access type has no table entry")
	}
	return info.layout
}

// ImageUsageBits returns the image usage flags implied by this access type.
func (a AccessType) ImageUsageBits() ImageUsage {
	info, ok := accessTable[a]
	if !ok {
		panic("types: access type has no table entry")
	}
	return info.imageUsage
}

// BufferUsageBits returns the buffer usage flags implied by this access type.
func (a AccessType) BufferUsageBits() BufferUsage {
	info, ok := accessTable[a]
	if !ok {
		panic("types: access type has no table entry")
	}
	return info.bufferUsage
}

// IsReadOnly reports whether this access type only reads the resource.
func (a AccessType) IsReadOnly() bool {
	info, ok := accessTable[a]
	if !ok {
		panic("types: access type has no table entry")
	}
	return info.isRead && !info.isWrite
}

// IsWrite reports whether this access type writes the resource (including
// read-modify-write access types like ColorAttachmentReadWrite).
func (a AccessType) IsWrite() bool {
	info, ok := accessTable[a]
	if !ok {
		panic("types: access type has no table entry")
	}
	return info.isWrite
}

// IsRaster reports whether this access type is one of the four raster
// write access types accepted by PassBuilder.Raster.
func (a AccessType) IsRaster() bool {
	switch a {
	case AccessColorAttachmentWrite_, AccessDepthStencilAttachmentWrite_,
		AccessDepthAttachmentWriteStencilReadOnly, AccessStencilAttachmentWriteDepthReadOnly:
		return true
	default:
		return false
	}
}

// String renders a human-readable name, used in panics.
func (a AccessType) String() string {
	if s, ok := accessNames[a]; ok {
		return s
	}
	return "UnknownAccessType"
}

var accessNames = map[AccessType]string{
	AccessNothing:                                    "Nothing",
	AccessPresent:                                    "Present",
	AccessIndirectCommandRead_:                       "IndirectCommandRead",
	AccessIndexRead_:                                 "IndexRead",
	AccessVertexAttributeRead_:                       "VertexAttributeRead",
	AccessUniformRead_:                                "UniformRead",
	AccessAnyShaderReadUniformBuffer:                 "AnyShaderReadUniformBuffer",
	AccessAnyShaderReadSampledImage:                  "AnyShaderReadSampledImage",
	AccessAnyShaderReadOther:                         "AnyShaderReadOther",
	AccessComputeShaderReadUniformBuffer:             "ComputeShaderReadUniformBuffer",
	AccessComputeShaderReadSampledImage:              "ComputeShaderReadSampledImage",
	AccessComputeShaderReadOther:                     "ComputeShaderReadOther",
	AccessFragmentShaderReadSampledImage:             "FragmentShaderReadSampledImage",
	AccessFragmentShaderReadColorInputAttachment:     "FragmentShaderReadColorInputAttachment",
	AccessFragmentShaderReadOther:                    "FragmentShaderReadOther",
	AccessVertexShaderReadOther:                       "VertexShaderReadOther",
	AccessShaderRead_:                                "ShaderRead",
	AccessShaderWrite_:                               "ShaderWrite",
	AccessComputeShaderWrite:                         "ComputeShaderWrite",
	AccessAnyShaderWrite:                              "AnyShaderWrite",
	AccessColorAttachmentRead_:                       "ColorAttachmentRead",
	AccessColorAttachmentWrite_:                      "ColorAttachmentWrite",
	AccessColorAttachmentReadWrite:                   "ColorAttachmentReadWrite",
	AccessDepthStencilAttachmentRead_:                "DepthStencilAttachmentRead",
	AccessDepthStencilAttachmentWrite_:               "DepthStencilAttachmentWrite",
	AccessDepthAttachmentWriteStencilReadOnly:        "DepthAttachmentWriteStencilReadOnly",
	AccessStencilAttachmentWriteDepthReadOnly:        "StencilAttachmentWriteDepthReadOnly",
	AccessTransferRead_:                              "TransferRead",
	AccessTransferWrite_:                             "TransferWrite",
	AccessHostRead_:                                  "HostRead",
	AccessHostWrite_:                                 "HostWrite",
	AccessMemoryRead_:                                "MemoryRead",
	AccessMemoryWrite_:                               "MemoryWrite",
	AccessAccelerationStructureBuildReadWrite:        "AccelerationStructureBuildReadWrite",
	AccessRayTracingShaderReadAccelerationStructure:  "RayTracingShaderReadAccelerationStructure",
	AccessGeneral:                                    "General",
}
