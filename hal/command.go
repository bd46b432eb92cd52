package hal

import "github.com/gogpu/rendergraph/types"

// ImageBarrier transitions one image (or a subresource range of it) from
// one access type to another. The executor computes PrevAccess/NextAccess
// pairs from the graph's resource-usage tracking; the HAL only
// translates them into the concrete stage/access/layout masks a single
// pipeline barrier call needs.
type ImageBarrier struct {
	Image            Image
	PrevAccess       []types.AccessType // empty means "first use, no wait"
	NextAccess       []types.AccessType
	DiscardContents  bool
	Range            ImageSubresourceRange
}

// ImageSubresourceRange selects a mip/array-layer range of an image for a
// barrier or view.
type ImageSubresourceRange struct {
	AspectMask     types.Aspect
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

// BufferBarrier transitions one buffer from one access type to another.
type BufferBarrier struct {
	Buffer     Buffer
	PrevAccess []types.AccessType
	NextAccess []types.AccessType
}

// GlobalBarrier is a barrier with no associated resource. The render
// graph executor records image and buffer barriers only and never emits
// one; acceleration structures are not graph resources.
type GlobalBarrier struct {
	PrevAccess []types.AccessType
	NextAccess []types.AccessType
}

// RenderPassBeginInfo binds a framebuffer and render pass together with
// the concrete image views and clear values for one BeginRenderPass call.
// The render pass and framebuffer themselves come from the cache;
// only the view bindings and clear values change per invocation.
type RenderPassBeginInfo struct {
	RenderPass   RenderPass
	Framebuffer  Framebuffer
	ColorViews   []ImageView
	DepthView    ImageView // nil if the pass has no depth attachment
	ClearColors  []types.Color
	ClearDepth   float32
	ClearStencil uint32
	RenderArea   struct{ Width, Height uint32 }
}

// CommandEncoder records commands into one command buffer. A render graph
// execution owns exactly two live encoders at a time: the main command
// buffer and, on frames with a presentation pass, the presentation command
// buffer.
type CommandEncoder interface {
	// PipelineBarrier emits one barrier command covering any combination
	// of global, buffer, and image barriers. The graph executor batches
	// barriers per pass rather than emitting one call per resource.
	PipelineBarrier(global []GlobalBarrier, buffers []BufferBarrier, images []ImageBarrier)

	BeginRenderPass(info RenderPassBeginInfo)
	EndRenderPass()

	BindComputePipeline(pipeline ComputePipeline)
	BindRasterPipeline(pipeline RasterPipeline)
	BindRayTracingPipeline(pipeline RayTracingPipeline)

	// BindDescriptorSet binds one set at the given index. dynamicOffsets
	// supplies one offset per UniformBufferDynamic/StorageBufferDynamic
	// binding in the set, in binding order.
	BindDescriptorSet(bindPoint PipelineBindPoint, layout PipelineLayout, setIndex uint32, set DescriptorSet, dynamicOffsets []uint32)

	PushConstants(layout PipelineLayout, stages types.ShaderStage, offset uint32, data []byte)

	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32)
	BindVertexBuffer(binding uint32, buffer Buffer, offset uint64)
	BindIndexBuffer(buffer Buffer, offset uint64, is32Bit bool)

	Dispatch(groupCountX, groupCountY, groupCountZ uint32)
	DispatchIndirect(buffer Buffer, offset uint64)

	TraceRays(pipeline RayTracingPipeline, width, height, depth uint32)
	TraceRaysIndirect(pipeline RayTracingPipeline, indirectDeviceAddress uint64)

	CopyBuffer(src, dst Buffer, regions []BufferCopyRegion)
	CopyBufferToImage(src Buffer, dst Image, layout types.ImageLayout, regions []BufferImageCopyRegion)
	CopyImageToBuffer(src Image, layout types.ImageLayout, dst Buffer, regions []BufferImageCopyRegion)

	// FillBuffer writes a repeating 32-bit word over a buffer range. The
	// device wrapper uses this to stamp crash markers immediately before
	// and after each pass.
	FillBuffer(buffer Buffer, offset, size uint64, data uint32)

	// BeginDebugLabel/EndDebugLabel bracket the commands of a single pass
	// under its name, for capture-tool readability.
	BeginDebugLabel(name string, color types.Color)
	EndDebugLabel()

	Finish() error
}

// PipelineBindPoint distinguishes which pipeline state a descriptor set or
// push-constant update applies to.
type PipelineBindPoint uint8

const (
	BindPointGraphics PipelineBindPoint = iota
	BindPointCompute
	BindPointRayTracing
)

// BufferCopyRegion is one src/dst offset pair and length for CopyBuffer.
type BufferCopyRegion struct {
	SrcOffset uint64
	DstOffset uint64
	Size      uint64
}

// BufferImageCopyRegion describes one buffer<->image copy.
type BufferImageCopyRegion struct {
	BufferOffset      uint64
	BufferRowLength   uint32
	BufferImageHeight uint32
	ImageSubresource  ImageSubresourceRange
	ImageOffset       types.Origin3D
	ImageExtent       types.Extent3D
}
