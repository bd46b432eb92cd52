package rg

import (
	"github.com/gogpu/rendergraph/device"
	"github.com/gogpu/rendergraph/dynconst"
	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/types"
)

// PassApi is the only handle a pass's render callback receives.
// It resolves the Refs the pass declared into concrete hal resources,
// binds pipelines registered against this pass, and exposes a raw
// CommandEncoder escape hatch for anything the graph doesn't wrap.
type PassApi struct {
	g  *RenderGraph
	cb hal.CommandEncoder
}

// Device returns the device wrapper, for samplers, crash markers, or
// anything else a pass needs outside the graph's own bookkeeping.
func (a *PassApi) Device() *device.Device { return a.g.dev }

// DynamicConstants returns the graph's dynamic constants ring, or nil if
// the graph was built without one.
func (a *PassApi) DynamicConstants() *dynconst.Ring { return a.g.DynamicConstants }

// CommandEncoder is the raw escape hatch onto the command buffer this
// pass is recording into.
func (a *PassApi) CommandEncoder() hal.CommandEncoder { return a.cb }

// Image resolves an image Ref to its concrete resource.
func (a *PassApi) Image(ref Ref[types.ImageDesc]) hal.Image {
	return a.g.state(ref.Raw).image
}

// Buffer resolves a buffer Ref to its concrete resource.
func (a *PassApi) Buffer(ref Ref[types.BufferDesc]) hal.Buffer {
	return a.g.state(ref.Raw).buffer
}

// RenderPass resolves desc through the graph's render-pass cache.
func (a *PassApi) RenderPass(desc types.RenderPassDesc) (hal.RenderPass, error) {
	return a.g.renderPasses.GetOrCreateRenderPass(desc)
}

// Framebuffer resolves key through the graph's framebuffer cache.
func (a *PassApi) Framebuffer(key types.FramebufferKey, renderPass hal.RenderPass) (hal.Framebuffer, error) {
	return a.g.renderPasses.GetOrCreateFramebuffer(key, renderPass)
}

// BeginRenderPass/EndRenderPass bracket a raster pass's draw calls.
func (a *PassApi) BeginRenderPass(info hal.RenderPassBeginInfo) { a.cb.BeginRenderPass(info) }
func (a *PassApi) EndRenderPass()                               { a.cb.EndRenderPass() }

// BoundComputePipeline is a compute pipeline bound into the current pass's
// command encoder.
type BoundComputePipeline struct {
	api      *PassApi
	pipeline hal.ComputePipeline
}

// BindComputePipeline binds the pipeline h registered with
// PassBuilder.RegisterComputePipeline and resolved at Compile.
func (a *PassApi) BindComputePipeline(h ComputePipelineHandle) *BoundComputePipeline {
	p := a.g.computePipelines[h.idx]
	a.cb.BindComputePipeline(p)
	return &BoundComputePipeline{api: a, pipeline: p}
}

func (b *BoundComputePipeline) BindDescriptorSet(setIndex uint32, set hal.DescriptorSet, dynamicOffsets []uint32) {
	b.api.cb.BindDescriptorSet(hal.BindPointCompute, b.pipeline.Layout(), setIndex, set, dynamicOffsets)
}

func (b *BoundComputePipeline) PushConstants(stages types.ShaderStage, offset uint32, data []byte) {
	b.api.cb.PushConstants(b.pipeline.Layout(), stages, offset, data)
}

func (b *BoundComputePipeline) Dispatch(groupCountX, groupCountY, groupCountZ uint32) {
	b.api.cb.Dispatch(groupCountX, groupCountY, groupCountZ)
}

func (b *BoundComputePipeline) DispatchIndirect(buffer hal.Buffer, offset uint64) {
	b.api.cb.DispatchIndirect(buffer, offset)
}

// BoundRasterPipeline is a raster pipeline bound into the current pass's
// command encoder, valid only between BeginRenderPass and EndRenderPass.
type BoundRasterPipeline struct {
	api      *PassApi
	pipeline hal.RasterPipeline
}

func (a *PassApi) BindRasterPipeline(h RasterPipelineHandle) *BoundRasterPipeline {
	p := a.g.rasterPipelines[h.idx]
	a.cb.BindRasterPipeline(p)
	return &BoundRasterPipeline{api: a, pipeline: p}
}

func (b *BoundRasterPipeline) BindDescriptorSet(setIndex uint32, set hal.DescriptorSet, dynamicOffsets []uint32) {
	b.api.cb.BindDescriptorSet(hal.BindPointGraphics, b.pipeline.Layout(), setIndex, set, dynamicOffsets)
}

func (b *BoundRasterPipeline) PushConstants(stages types.ShaderStage, offset uint32, data []byte) {
	b.api.cb.PushConstants(b.pipeline.Layout(), stages, offset, data)
}

func (b *BoundRasterPipeline) BindVertexBuffer(binding uint32, buffer hal.Buffer, offset uint64) {
	b.api.cb.BindVertexBuffer(binding, buffer, offset)
}

func (b *BoundRasterPipeline) BindIndexBuffer(buffer hal.Buffer, offset uint64, is32Bit bool) {
	b.api.cb.BindIndexBuffer(buffer, offset, is32Bit)
}

func (b *BoundRasterPipeline) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	b.api.cb.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (b *BoundRasterPipeline) DrawIndexed(indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	b.api.cb.DrawIndexed(indexCount, instanceCount, firstIndex, vertexOffset, firstInstance)
}

// BoundRayTracingPipeline is a ray tracing pipeline bound into the current
// pass's command encoder.
type BoundRayTracingPipeline struct {
	api      *PassApi
	pipeline hal.RayTracingPipeline
}

func (a *PassApi) BindRayTracingPipeline(h RayTracingPipelineHandle) *BoundRayTracingPipeline {
	p := a.g.rtPipelines[h.idx]
	a.cb.BindRayTracingPipeline(p)
	return &BoundRayTracingPipeline{api: a, pipeline: p}
}

func (b *BoundRayTracingPipeline) BindDescriptorSet(setIndex uint32, set hal.DescriptorSet, dynamicOffsets []uint32) {
	b.api.cb.BindDescriptorSet(hal.BindPointRayTracing, b.pipeline.Layout(), setIndex, set, dynamicOffsets)
}

func (b *BoundRayTracingPipeline) PushConstants(stages types.ShaderStage, offset uint32, data []byte) {
	b.api.cb.PushConstants(b.pipeline.Layout(), stages, offset, data)
}

func (b *BoundRayTracingPipeline) TraceRays(width, height, depth uint32) {
	b.api.cb.TraceRays(b.pipeline, width, height, depth)
}

func (b *BoundRayTracingPipeline) TraceRaysIndirect(indirectDeviceAddress uint64) {
	b.api.cb.TraceRaysIndirect(b.pipeline, indirectDeviceAddress)
}
