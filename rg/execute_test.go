package rg_test

import (
	"context"
	"strings"
	"testing"

	"github.com/gogpu/rendergraph/device"
	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/hal/noop"
	"github.com/gogpu/rendergraph/pipeline"
	"github.com/gogpu/rendergraph/rg"
	"github.com/gogpu/rendergraph/rpcache"
	"github.com/gogpu/rendergraph/transient"
	"github.com/gogpu/rendergraph/types"
)

// commandsLister is satisfied by the noop backend's command encoder; it
// lets tests inspect recorded calls without importing the unexported
// concrete type.
type commandsLister interface {
	Commands() []string
}

func commandsOf(t *testing.T, cb hal.CommandEncoder) []string {
	t.Helper()
	cl, ok := cb.(commandsLister)
	if !ok {
		t.Fatalf("command encoder %T does not implement Commands()", cb)
	}
	return cl.Commands()
}

func countPrefix(commands []string, prefix string) int {
	n := 0
	for _, c := range commands {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// A single compute pass writes a resource, exports it, compiles, and
// executes. The pass's write should trigger a barrier (first use is
// always Nothing -> requested) and the export handoff a second.
func TestExecuteSingleComputePassWriteAndExport(t *testing.T) {
	g, dev := newTestGraph(t)
	h := rg.Create(g, imgDesc)

	b := g.AddPass("write-image")
	ref := rg.Write(b, &h, types.AccessComputeShaderWrite)
	ran := false
	b.Render(func(api *rg.PassApi) error {
		ran = true
		_ = api.Image(ref)
		return nil
	})
	rg.Export(g, h, types.AccessFragmentShaderReadSampledImage)

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
	if !ran {
		t.Fatal("expected the pass's render callback to run")
	}

	commands := commandsOf(t, frame.MainCB)
	if countPrefix(commands, "barrier(") < 2 {
		t.Fatalf("expected at least 2 barriers (write + export handoff), got %v", commands)
	}
	if countPrefix(commands, "begin-label(write-image)") != 1 {
		t.Fatalf("expected one begin-label for the pass, got %v", commands)
	}
}

// Invariant: a pass with no reads or writes still brackets its render
// callback with debug labels and crash markers.
func TestExecuteEmptyPassStillBracketed(t *testing.T) {
	g, dev := newTestGraph(t)
	b := g.AddPass("noop-pass")
	b.Render(func(*rg.PassApi) error { return nil })

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

	commands := commandsOf(t, frame.MainCB)
	if countPrefix(commands, "begin-label(noop-pass)") != 1 || countPrefix(commands, "end-label") != 1 {
		t.Fatalf("expected exactly one begin/end label pair, got %v", commands)
	}
}

// Invariant: exporting at AccessNothing induces no handoff transition.
func TestExportAtNothingInducesNoTransition(t *testing.T) {
	g, dev := newTestGraph(t)
	h := rg.Create(g, imgDesc)
	b := g.AddPass("write-image")
	rg.Write(b, &h, types.AccessComputeShaderWrite)
	b.Render(func(*rg.PassApi) error { return nil })
	rg.Export(g, h, types.AccessNothing)

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

	commands := commandsOf(t, frame.MainCB)
	if got := countPrefix(commands, "barrier("); got != 1 {
		t.Fatalf("expected exactly 1 barrier (the write; no export handoff), got %d in %v", got, commands)
	}
}

// Pass render failures panic with a message carrying the pass name.
func TestExecutePassRenderFailurePanics(t *testing.T) {
	g, dev := newTestGraph(t)
	b := g.AddPass("failing-pass")
	b.Render(func(*rg.PassApi) error { return errFake{} })

	if err := g.Compile(context.Background()); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	frame, err := dev.BeginFrame()
	if err != nil {
		t.Fatalf("BeginFrame: %v", err)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected Execute to panic on a failing render callback")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "failing-pass") {
			t.Fatalf("expected panic message to name the failing pass, got %v", r)
		}
	}()
	g.Execute(frame, nil)
}

type errFake struct{}

func (errFake) Error() string { return "boom" }

// Passes before the one that first writes the swapchain image run on
// the main command buffer; that pass and everything after run on the
// presentation buffer.
func TestExecuteSwapchainSplitsCommandBuffers(t *testing.T) {
	g, dev := newTestGraph(t)
	sc := g.SwapchainImage(imgDesc)

	prep := rg.Create(g, imgDesc)
	b1 := g.AddPass("prepare")
	rg.Write(b1, &prep, types.AccessComputeShaderWrite)
	b1.Render(func(*rg.PassApi) error { return nil })

	b2 := g.AddPass("blit-to-swapchain")
	rg.Write(b2, &sc, types.AccessTransferWrite_)
	b2.Render(func(*rg.PassApi) error { return nil })

	if err := g.Compile(context.Background()); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	frame, err := dev.BeginFrame()
	if err != nil {
		t.Fatalf("BeginFrame: %v", err)
	}
	swapImg, err := dev.HAL().CreateImage(imgDesc)
	if err != nil {
		t.Fatalf("CreateImage: %v", err)
	}
	if err := g.Execute(frame, swapImg); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	mainCommands := commandsOf(t, frame.MainCB)
	presCommands := commandsOf(t, frame.PresentationCB)
	if countPrefix(mainCommands, "begin-label(prepare)") != 1 {
		t.Fatalf("expected the prepare pass on the main buffer, got %v", mainCommands)
	}
	if countPrefix(mainCommands, "begin-label(blit-to-swapchain)") != 0 {
		t.Fatalf("did not expect the swapchain-writing pass on the main buffer, got %v", mainCommands)
	}
	if countPrefix(presCommands, "begin-label(blit-to-swapchain)") != 1 {
		t.Fatalf("expected the swapchain-writing pass on the presentation buffer, got %v", presCommands)
	}
}

// A graph with no swapchain target runs every pass on the main buffer and
// leaves the presentation buffer untouched.
func TestExecuteNoSwapchainRunsEntirelyOnMainBuffer(t *testing.T) {
	g, dev := newTestGraph(t)
	h := rg.Create(g, imgDesc)
	b := g.AddPass("solo")
	rg.Write(b, &h, types.AccessComputeShaderWrite)
	b.Render(func(*rg.PassApi) error { return nil })

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
	if commandsOf(t, frame.PresentationCB) != nil {
		t.Fatalf("expected an empty presentation buffer, got %v", commandsOf(t, frame.PresentationCB))
	}
}

// Registering a compute pipeline with no descriptor sets at all should
// still compile cleanly.
func TestComputePipelineWithNoDescriptorSets(t *testing.T) {
	g, _ := newTestGraph(t)
	b := g.AddPass("dispatch")
	ph := b.RegisterComputePipeline(pipeline.ComputeRequest{
		Shader: hal.ShaderBytecode{Stage: types.ShaderStageCompute},
	})
	b.Render(func(api *rg.PassApi) error {
		api.BindComputePipeline(ph).Dispatch(1, 1, 1)
		return nil
	})

	if err := g.Compile(context.Background()); err != nil {
		t.Fatalf("Compile: %v", err)
	}
}

// Two consecutive passes writing the same resource at the same access
// type must still barrier between them even with AllowPassOverlap set,
// since only a resource's first recorded access is skip-eligible. A
// second pass eliding the barrier here would let it race the first
// pass's write to the same memory.
func TestExecuteRepeatedSameAccessWriteStillBarriers(t *testing.T) {
	halDev := noop.New(hal.DeviceCapabilities{})
	dev, err := device.New(halDev)
	if err != nil {
		t.Fatalf("device.New: %v", err)
	}
	g := rg.New(dev, pipeline.NewCache(dev), rpcache.New(halDev), transient.New(halDev), nil, true)
	h := rg.Create(g, imgDesc)

	b1 := g.AddPass("write-one")
	rg.Write(b1, &h, types.AccessComputeShaderWrite)
	b1.Render(func(*rg.PassApi) error { return nil })

	b2 := g.AddPass("write-two")
	rg.Write(b2, &h, types.AccessComputeShaderWrite)
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

	commands := commandsOf(t, frame.MainCB)
	if countPrefix(commands, "barrier(") != 2 {
		t.Fatalf("expected a barrier before each write despite the matching access type and allowed overlap, got %v", commands)
	}
}
