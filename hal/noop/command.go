package noop

import (
	"fmt"

	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/types"
)

// commandEncoder records a human-readable trace of every call instead of
// building a real command buffer. Tests assert against Commands() to
// check barrier placement, pass ordering, and debug label nesting without
// needing a capture tool.
type commandEncoder struct {
	commands []string
	finished bool
}

// Commands returns the recorded trace in call order.
func (e *commandEncoder) Commands() []string { return e.commands }

func (e *commandEncoder) record(format string, args ...any) {
	e.commands = append(e.commands, fmt.Sprintf(format, args...))
}

func (e *commandEncoder) PipelineBarrier(global []hal.GlobalBarrier, buffers []hal.BufferBarrier, images []hal.ImageBarrier) {
	e.record("barrier(global=%d, buffers=%d, images=%d)", len(global), len(buffers), len(images))
}

func (e *commandEncoder) BeginRenderPass(info hal.RenderPassBeginInfo) {
	e.record("begin-render-pass(colors=%d, depth=%v)", len(info.ColorViews), info.DepthView != nil)
}

func (e *commandEncoder) EndRenderPass() {
	e.record("end-render-pass")
}

func (e *commandEncoder) BindComputePipeline(pipeline hal.ComputePipeline) {
	e.record("bind-compute-pipeline")
}

func (e *commandEncoder) BindRasterPipeline(pipeline hal.RasterPipeline) {
	e.record("bind-raster-pipeline")
}

func (e *commandEncoder) BindRayTracingPipeline(pipeline hal.RayTracingPipeline) {
	e.record("bind-ray-tracing-pipeline")
}

func (e *commandEncoder) BindDescriptorSet(bindPoint hal.PipelineBindPoint, layout hal.PipelineLayout, setIndex uint32, set hal.DescriptorSet, dynamicOffsets []uint32) {
	e.record("bind-descriptor-set(set=%d, dynamic-offsets=%d)", setIndex, len(dynamicOffsets))
}

func (e *commandEncoder) PushConstants(layout hal.PipelineLayout, stages types.ShaderStage, offset uint32, data []byte) {
	e.record("push-constants(offset=%d, size=%d)", offset, len(data))
}

func (e *commandEncoder) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	e.record("draw(vertices=%d, instances=%d)", vertexCount, instanceCount)
}

func (e *commandEncoder) DrawIndexed(indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	e.record("draw-indexed(indices=%d, instances=%d)", indexCount, instanceCount)
}

func (e *commandEncoder) BindVertexBuffer(binding uint32, buffer hal.Buffer, offset uint64) {
	e.record("bind-vertex-buffer(binding=%d)", binding)
}

func (e *commandEncoder) BindIndexBuffer(buffer hal.Buffer, offset uint64, is32Bit bool) {
	e.record("bind-index-buffer(32bit=%v)", is32Bit)
}

func (e *commandEncoder) Dispatch(groupCountX, groupCountY, groupCountZ uint32) {
	e.record("dispatch(%d,%d,%d)", groupCountX, groupCountY, groupCountZ)
}

func (e *commandEncoder) DispatchIndirect(buffer hal.Buffer, offset uint64) {
	e.record("dispatch-indirect")
}

func (e *commandEncoder) TraceRays(pipeline hal.RayTracingPipeline, width, height, depth uint32) {
	e.record("trace-rays(%d,%d,%d)", width, height, depth)
}

func (e *commandEncoder) TraceRaysIndirect(pipeline hal.RayTracingPipeline, indirectDeviceAddress uint64) {
	e.record("trace-rays-indirect")
}

func (e *commandEncoder) CopyBuffer(src, dst hal.Buffer, regions []hal.BufferCopyRegion) {
	for _, r := range regions {
		srcBuf, srcOK := src.(*buffer)
		dstBuf, dstOK := dst.(*buffer)
		if srcOK && dstOK && srcBuf.backing != nil && dstBuf.backing != nil {
			copy(dstBuf.backing[r.DstOffset:r.DstOffset+r.Size], srcBuf.backing[r.SrcOffset:r.SrcOffset+r.Size])
		}
	}
	e.record("copy-buffer(regions=%d)", len(regions))
}

func (e *commandEncoder) CopyBufferToImage(src hal.Buffer, dst hal.Image, layout types.ImageLayout, regions []hal.BufferImageCopyRegion) {
	e.record("copy-buffer-to-image(regions=%d)", len(regions))
}

func (e *commandEncoder) CopyImageToBuffer(src hal.Image, layout types.ImageLayout, dst hal.Buffer, regions []hal.BufferImageCopyRegion) {
	e.record("copy-image-to-buffer(regions=%d)", len(regions))
}

func (e *commandEncoder) FillBuffer(buf hal.Buffer, offset, size uint64, data uint32) {
	if b, ok := buf.(*buffer); ok && b.backing != nil {
		for i := uint64(0); i+4 <= size; i += 4 {
			b.backing[offset+i] = byte(data)
			b.backing[offset+i+1] = byte(data >> 8)
			b.backing[offset+i+2] = byte(data >> 16)
			b.backing[offset+i+3] = byte(data >> 24)
		}
	}
	e.record("fill-buffer(offset=%d, size=%d, data=%#x)", offset, size, data)
}

func (e *commandEncoder) BeginDebugLabel(name string, color types.Color) {
	e.record("begin-label(%s)", name)
}

func (e *commandEncoder) EndDebugLabel() {
	e.record("end-label")
}

func (e *commandEncoder) Finish() error {
	e.finished = true
	return nil
}
