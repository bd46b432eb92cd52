package rg

import (
	"fmt"

	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/pipeline"
	"github.com/gogpu/rendergraph/types"
)

// PassBuilder records one pass's resource accesses and pipeline
// registrations before its render callback is attached with Render.
type PassBuilder struct {
	graph *RenderGraph
	pass  *Pass
}

// ComputePipelineHandle references a pipeline registered with
// RegisterComputePipeline, resolved to a concrete hal.ComputePipeline at
// compile time.
type ComputePipelineHandle struct{ idx int }

// RasterPipelineHandle references a pipeline registered with
// RegisterRasterPipeline.
type RasterPipelineHandle struct{ idx int }

// RayTracingPipelineHandle references a pipeline registered with
// RegisterRayTracingPipeline.
type RayTracingPipelineHandle struct{ idx int }

// Read declares that this pass reads handle at access, returning a Ref
// bound to it. access must be a read-only access type; a write-style
// access type panics.
func Read[D ResourceDesc](b *PassBuilder, handle Handle[D], access types.AccessType) Ref[D] {
	if access.IsWrite() {
		panic(fmt.Sprintf("rg: pass %q: read() given write-style access type %s", b.pass.Name, access))
	}
	b.checkNotAlreadyTouched(handle.Raw, "read")
	st := b.graph.state(handle.Raw)
	b.pass.Reads = append(b.pass.Reads, PassRef{Raw: handle.Raw, Access: access, Sync: st.syncForNextAccess()})
	return Ref[D]{Raw: handle.Raw, View: ViewSrv, Desc: handle.Desc}
}

// Write declares that this pass writes handle at access, bumping the
// resource's version and returning a Ref bound to the new version.
// access must be a write-capable access type.
func Write[D ResourceDesc](b *PassBuilder, handle *Handle[D], access types.AccessType) Ref[D] {
	if !access.IsWrite() {
		panic(fmt.Sprintf("rg: pass %q: write() given read-only access type %s", b.pass.Name, access))
	}
	b.checkNotAlreadyTouched(handle.Raw, "write")

	st := b.graph.state(handle.Raw)
	st.lastAccessPass = b.pass.Idx
	sync := st.syncForNextAccess()
	handle.Raw.Version++

	b.pass.Writes = append(b.pass.Writes, PassRef{Raw: handle.Raw, Access: access, Sync: sync})
	return Ref[D]{Raw: handle.Raw, View: ViewUav, Desc: handle.Desc}
}

// Raster declares a raster-target write: the same bookkeeping as Write,
// restricted to the four raster write access types.
func Raster(b *PassBuilder, handle *Handle[types.ImageDesc], access types.AccessType) Ref[types.ImageDesc] {
	if !access.IsRaster() {
		panic(fmt.Sprintf("rg: pass %q: raster() given non-raster access type %s", b.pass.Name, access))
	}
	b.checkNotAlreadyTouched(handle.Raw, "raster")

	st := b.graph.state(handle.Raw)
	st.lastAccessPass = b.pass.Idx
	sync := st.syncForNextAccess()
	handle.Raw.Version++

	b.pass.Writes = append(b.pass.Writes, PassRef{Raw: handle.Raw, Access: access, Sync: sync})
	return Ref[types.ImageDesc]{Raw: handle.Raw, View: ViewRt, Desc: handle.Desc}
}

func (b *PassBuilder) checkNotAlreadyTouched(raw RawHandle, op string) {
	for _, r := range b.pass.Reads {
		if r.Raw.ID == raw.ID {
			panic(fmt.Sprintf("rg: pass %q: %s() handle %d already declared as a read", b.pass.Name, op, raw.ID))
		}
	}
	for _, w := range b.pass.Writes {
		if w.Raw.ID == raw.ID {
			panic(fmt.Sprintf("rg: pass %q: %s() handle %d already declared as a write", b.pass.Name, op, raw.ID))
		}
	}
}

// RegisterComputePipeline stores a compute pipeline description to be
// materialized at Compile, honoring the graph's predefined set-layout
// overrides.
func (b *PassBuilder) RegisterComputePipeline(req pipeline.ComputeRequest) ComputePipelineHandle {
	req.PredefinedSetLayouts = mergeOverrides(req.PredefinedSetLayouts, b.graph.predefinedSets)
	idx := len(b.graph.computeRequests)
	b.graph.computeRequests = append(b.graph.computeRequests, req)
	h := ComputePipelineHandle{idx: idx}
	b.pass.pipelines = append(b.pass.pipelines, pipelineBinding{kind: pipelineKindCompute, idx: idx})
	return h
}

// RegisterRasterPipeline stores a raster pipeline description to be
// materialized at Compile.
func (b *PassBuilder) RegisterRasterPipeline(req pipeline.RasterRequest) RasterPipelineHandle {
	req.PredefinedSetLayouts = mergeOverrides(req.PredefinedSetLayouts, b.graph.predefinedSets)
	idx := len(b.graph.rasterRequests)
	b.graph.rasterRequests = append(b.graph.rasterRequests, req)
	h := RasterPipelineHandle{idx: idx}
	b.pass.pipelines = append(b.pass.pipelines, pipelineBinding{kind: pipelineKindRaster, idx: idx})
	return h
}

// RegisterRayTracingPipeline stores a ray tracing pipeline description to
// be materialized at Compile.
func (b *PassBuilder) RegisterRayTracingPipeline(req pipeline.RayTracingRequest) RayTracingPipelineHandle {
	req.PredefinedSetLayouts = mergeOverrides(req.PredefinedSetLayouts, b.graph.predefinedSets)
	idx := len(b.graph.rtRequests)
	b.graph.rtRequests = append(b.graph.rtRequests, req)
	h := RayTracingPipelineHandle{idx: idx}
	b.pass.pipelines = append(b.pass.pipelines, pipelineBinding{kind: pipelineKindRayTracing, idx: idx})
	return h
}

// Render attaches the pass's render callback. It panics if one is already
// attached.
func (b *PassBuilder) Render(fn func(*PassApi) error) {
	if b.pass.RenderFn != nil {
		panic(fmt.Sprintf("rg: pass %q already has a render callback attached", b.pass.Name))
	}
	b.pass.RenderFn = fn
}

func mergeOverrides(explicit, predefined map[uint32]hal.DescriptorSetLayoutDesc) map[uint32]hal.DescriptorSetLayoutDesc {
	if len(predefined) == 0 {
		return explicit
	}
	merged := make(map[uint32]hal.DescriptorSetLayoutDesc, len(explicit)+len(predefined))
	for k, v := range predefined {
		merged[k] = v
	}
	for k, v := range explicit {
		merged[k] = v // an explicit override on this pipeline wins over the graph default
	}
	return merged
}
