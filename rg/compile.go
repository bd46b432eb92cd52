package rg

import (
	"context"
	"fmt"

	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/pipeline"
	"github.com/gogpu/rendergraph/types"
)

// Compile finishes recording: it infers each transient resource's usage
// flags from the access types declared against it, extends resource
// lifetimes to cover exports, and materializes every pipeline registered
// during recording. It must run once, after the last AddPass and before
// Execute.
func (g *RenderGraph) Compile(ctx context.Context) error {
	g.inferResourceUsage()
	g.finalizeLifetimes()

	if err := g.materializeComputePipelines(ctx); err != nil {
		return fmt.Errorf("rg: compile compute pipelines: %w", err)
	}
	if err := g.materializeRasterPipelines(ctx); err != nil {
		return fmt.Errorf("rg: compile raster pipelines: %w", err)
	}
	if err := g.materializeRayTracingPipelines(ctx); err != nil {
		return fmt.Errorf("rg: compile ray tracing pipelines: %w", err)
	}
	return nil
}

// inferResourceUsage folds the usage bits implied by every access type
// declared against a resource into that resource's descriptor: the usage
// flags of a transient resource are the union of what every pass touching
// it needs, plus whatever its export handoff access type requires, so an
// exported resource is allocated ready for whatever access the next
// consumer declared at export time. Imported and swapchain resources
// already carry a real usage value supplied by their owner, so they are
// left alone.
func (g *RenderGraph) inferResourceUsage() {
	imageUsage := make(map[uint32]types.ImageUsage)
	bufferUsage := make(map[uint32]types.BufferUsage)

	accumulate := func(id uint32, kind ResourceKind, access types.AccessType) {
		switch kind {
		case ResourceKindImage:
			imageUsage[id] |= access.ImageUsageBits()
		case ResourceKindBuffer:
			bufferUsage[id] |= access.BufferUsageBits()
		}
	}
	for _, p := range g.passes {
		for _, r := range p.Reads {
			accumulate(r.Raw.ID, g.state(r.Raw).kind, r.Access)
		}
		for _, w := range p.Writes {
			accumulate(w.Raw.ID, g.state(w.Raw).kind, w.Access)
		}
	}
	for id, st := range g.resources {
		if st.exported && st.exportAccessType != types.AccessNothing {
			accumulate(uint32(id), st.kind, st.exportAccessType)
		}
	}

	for id, usage := range imageUsage {
		st := g.resources[id]
		if st.owned && !st.imported && !st.isSwapchain {
			st.imageDesc = st.imageDesc.WithUsage(st.imageDesc.Usage | usage)
		}
	}
	for id, usage := range bufferUsage {
		st := g.resources[id]
		if st.owned && !st.imported {
			st.bufferDesc = st.bufferDesc.WithUsage(st.bufferDesc.Usage | usage)
		}
	}
}

// finalizeLifetimes records the last pass index that touches each
// resource, then extends exported resources' lifetime to the graph's
// final pass so Execute never retires one before its handoff transition
// runs.
func (g *RenderGraph) finalizeLifetimes() {
	for _, p := range g.passes {
		for _, r := range p.Reads {
			g.bumpLifetime(r.Raw, p.Idx)
		}
		for _, w := range p.Writes {
			g.bumpLifetime(w.Raw, p.Idx)
		}
	}

	lastPassIdx := len(g.passes) - 1
	for _, st := range g.resources {
		if st.exported && lastPassIdx > st.lastAccessPass {
			st.lastAccessPass = lastPassIdx
		}
	}
}

func (g *RenderGraph) bumpLifetime(raw RawHandle, passIdx int) {
	st := g.state(raw)
	if passIdx > st.lastAccessPass {
		st.lastAccessPass = passIdx
	}
}

type computeItem struct {
	idx int
	req pipeline.ComputeRequest
}

func (g *RenderGraph) materializeComputePipelines(ctx context.Context) error {
	g.computePipelines = make([]hal.ComputePipeline, len(g.computeRequests))
	items := make([]computeItem, len(g.computeRequests))
	for i, r := range g.computeRequests {
		items[i] = computeItem{idx: i, req: r}
	}
	return pipeline.CompileConcurrent(ctx, items, func(ctx context.Context, it computeItem) error {
		p, err := g.pipelines.GetOrCreateCompute(it.req)
		if err != nil {
			return err
		}
		g.computePipelines[it.idx] = p
		return nil
	})
}

type rasterItem struct {
	idx int
	req pipeline.RasterRequest
}

func (g *RenderGraph) materializeRasterPipelines(ctx context.Context) error {
	g.rasterPipelines = make([]hal.RasterPipeline, len(g.rasterRequests))
	items := make([]rasterItem, len(g.rasterRequests))
	for i, r := range g.rasterRequests {
		items[i] = rasterItem{idx: i, req: r}
	}
	return pipeline.CompileConcurrent(ctx, items, func(ctx context.Context, it rasterItem) error {
		p, err := g.pipelines.GetOrCreateRaster(it.req)
		if err != nil {
			return err
		}
		g.rasterPipelines[it.idx] = p
		return nil
	})
}

type rtItem struct {
	idx int
	req pipeline.RayTracingRequest
}

func (g *RenderGraph) materializeRayTracingPipelines(ctx context.Context) error {
	g.rtPipelines = make([]hal.RayTracingPipeline, len(g.rtRequests))
	items := make([]rtItem, len(g.rtRequests))
	for i, r := range g.rtRequests {
		items[i] = rtItem{idx: i, req: r}
	}
	return pipeline.CompileConcurrent(ctx, items, func(ctx context.Context, it rtItem) error {
		p, err := g.pipelines.GetOrCreateRayTracing(it.req)
		if err != nil {
			return err
		}
		g.rtPipelines[it.idx] = p
		return nil
	})
}
