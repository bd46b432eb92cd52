package rg_test

import (
	"context"
	"testing"

	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/pipeline"
	"github.com/gogpu/rendergraph/rg"
	"github.com/gogpu/rendergraph/types"
)

// Registering the same compute shader across two passes in one graph
// compiles cleanly; pipeline identity/dedup by content hash is
// covered at the cache's own test suite (pipeline package).
func TestCompileTwoPassesShareAComputeRequest(t *testing.T) {
	g, _ := newTestGraph(t)

	req := pipeline.ComputeRequest{Shader: hal.ShaderBytecode{Stage: types.ShaderStageCompute}}

	b1 := g.AddPass("first")
	h1 := b1.RegisterComputePipeline(req)
	b1.Render(func(api *rg.PassApi) error {
		api.BindComputePipeline(h1).Dispatch(1, 1, 1)
		return nil
	})

	b2 := g.AddPass("second")
	h2 := b2.RegisterComputePipeline(req)
	b2.Render(func(api *rg.PassApi) error {
		api.BindComputePipeline(h2).Dispatch(1, 1, 1)
		return nil
	})

	if err := g.Compile(context.Background()); err != nil {
		t.Fatalf("Compile: %v", err)
	}
}

// Compile must tolerate a graph with no pipelines registered at all.
func TestCompileToleratesNoPipelines(t *testing.T) {
	g, _ := newTestGraph(t)
	g.AddPass("empty").Render(func(*rg.PassApi) error { return nil })
	if err := g.Compile(context.Background()); err != nil {
		t.Fatalf("Compile: %v", err)
	}
}

// inferResourceUsage folds every pass's declared access into the
// resource's usage flags before it's ever acquired; Execute must not
// error even when a resource is touched by both a read and a write
// access type with different usage implications.
func TestCompileInfersResourceUsageFromMixedAccess(t *testing.T) {
	g, dev := newTestGraph(t)
	h := rg.Create(g, imgDesc)

	b1 := g.AddPass("write")
	rg.Write(b1, &h, types.AccessComputeShaderWrite)
	b1.Render(func(*rg.PassApi) error { return nil })

	b2 := g.AddPass("read")
	rg.Read(b2, h, types.AccessComputeShaderReadSampledImage)
	b2.Render(func(*rg.PassApi) error { return nil })

	if err := g.Compile(context.Background()); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	frame, err := dev.BeginFrame()
	if err != nil {
		t.Fatalf("BeginFrame: %v", err)
	}
	if err := g.Execute(frame, nil); err != nil {
		t.Fatalf("Execute: %v", err)
	}
}

// An exported resource's handoff access type must contribute to its
// inferred usage flags, not just the accesses declared by the passes that
// touch it, or the materialized resource can't actually be used the way
// the export promises.
func TestCompileInfersResourceUsageFromExportAccessType(t *testing.T) {
	g, dev := newTestGraph(t)
	h := rg.Create(g, imgDesc)

	b := g.AddPass("write")
	ref := rg.Write(b, &h, types.AccessTransferWrite_)
	var resolved hal.Image
	b.Render(func(api *rg.PassApi) error {
		resolved = api.Image(ref)
		return nil
	})
	rg.Export(g, h, types.AccessAnyShaderReadSampledImage)

	if err := g.Compile(context.Background()); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	frame, err := dev.BeginFrame()
	if err != nil {
		t.Fatalf("BeginFrame: %v", err)
	}
	if err := g.Execute(frame, nil); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	usage := resolved.Desc().Usage
	if !usage.Has(types.ImageUsageTransferDst) {
		t.Fatalf("expected TransferDst from the write, got usage %v", usage)
	}
	if !usage.Has(types.ImageUsageSampled) {
		t.Fatalf("expected Sampled from the export access type, got usage %v", usage)
	}
}
