package rg_test

import (
	"context"
	"testing"

	"github.com/gogpu/rendergraph/bindless"
	"github.com/gogpu/rendergraph/device"
	"github.com/gogpu/rendergraph/dynconst"
	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/hal/noop"
	"github.com/gogpu/rendergraph/pipeline"
	"github.com/gogpu/rendergraph/rg"
	"github.com/gogpu/rendergraph/rpcache"
	"github.com/gogpu/rendergraph/transient"
	"github.com/gogpu/rendergraph/types"
)

func newTestRenderer(t *testing.T) (*rg.Renderer, *device.Device, hal.Swapchain) {
	t.Helper()
	halDev := noop.New(hal.DeviceCapabilities{Bindless: true, MaxBindlessResources: 64})
	dev, err := device.New(halDev)
	if err != nil {
		t.Fatalf("device.New: %v", err)
	}
	sc, err := noop.NewSwapchain(halDev, 2, types.FormatBGRA8Unorm, types.Extent3D{Width: 320, Height: 240, DepthOrArrayLayers: 1})
	if err != nil {
		t.Fatalf("NewSwapchain: %v", err)
	}
	pipelines := pipeline.NewCache(dev)
	renderPasses := rpcache.New(halDev)
	transientCache := transient.New(halDev)
	ring, err := dynconst.New(dev, 0, 0)
	if err != nil {
		t.Fatalf("dynconst.New: %v", err)
	}
	bindlessSet, err := bindless.New(halDev, 64)
	if err != nil {
		t.Fatalf("bindless.New: %v", err)
	}
	r, err := rg.NewRenderer(dev, sc, pipelines, renderPasses, transientCache, ring, bindlessSet)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r, dev, sc
}

// RenderFrame should record into, compile, execute, and present a graph
// that writes the swapchain image it's handed.
func TestRendererRenderFrameBasicSequence(t *testing.T) {
	r, _, sc := newTestRenderer(t)

	passRan := false
	err := r.RenderFrame(context.Background(), nil, func(tg *rg.TemporalRenderGraph, swap rg.Handle[types.ImageDesc]) error {
		b := tg.Graph.AddPass("clear-swapchain")
		rg.Write(b, &swap, types.AccessTransferWrite_)
		b.Render(func(*rg.PassApi) error {
			passRan = true
			return nil
		})
		rg.Export(tg.Graph, swap, types.AccessPresent)
		return nil
	})
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if !passRan {
		t.Fatal("expected the recorded pass to run")
	}

	noopSC, ok := sc.(interface{ Presented() []uint32 })
	if !ok {
		t.Fatal("swapchain does not expose Presented()")
	}
	if len(noopSC.Presented()) != 1 {
		t.Fatalf("expected exactly one present call, got %v", noopSC.Presented())
	}
}

// A record callback returning an error aborts the frame before submit;
// RenderFrame surfaces the error rather than panicking.
func TestRendererRenderFrameRecordErrorPropagates(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	err := r.RenderFrame(context.Background(), nil, func(tg *rg.TemporalRenderGraph, swap rg.Handle[types.ImageDesc]) error {
		return errFake{}
	})
	if err == nil {
		t.Fatal("expected RenderFrame to return an error when record fails")
	}
}

// A renderer with a bindless set installs its layout as the
// predefined override for set 1, so a pipeline whose reflection declares
// no set-1 bindings of its own still compiles without error.
func TestRendererInstallsBindlessLayoutAsSet1(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	err := r.RenderFrame(context.Background(), nil, func(tg *rg.TemporalRenderGraph, swap rg.Handle[types.ImageDesc]) error {
		b := tg.Graph.AddPass("dispatch")
		b.RegisterComputePipeline(pipeline.ComputeRequest{
			Shader: hal.ShaderBytecode{Stage: types.ShaderStageCompute},
		})
		b.Render(func(*rg.PassApi) error { return nil })
		return nil
	})
	if err != nil {
		t.Fatalf("RenderFrame with a bindless-aware pipeline failed: %v", err)
	}
}

// prepareConstants runs before recording, and a pass reaches the ring it
// pushed into via PassApi.DynamicConstants.
func TestRendererPrepareConstantsRunsBeforeRecord(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	type frameConstants struct{ Value uint32 }
	var pushedOffset uint32
	prepared := false

	err := r.RenderFrame(context.Background(),
		func(ring *dynconst.Ring) error {
			pushedOffset = dynconst.Push(ring, frameConstants{Value: 7})
			prepared = true
			return nil
		},
		func(tg *rg.TemporalRenderGraph, swap rg.Handle[types.ImageDesc]) error {
			if !prepared {
				t.Error("expected prepareConstants to run before record")
			}
			b := tg.Graph.AddPass("use-constants")
			b.Render(func(api *rg.PassApi) error {
				if api.DynamicConstants() == nil {
					t.Error("expected PassApi.DynamicConstants() to be non-nil")
				}
				return nil
			})
			return nil
		},
	)
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	_ = pushedOffset
}
