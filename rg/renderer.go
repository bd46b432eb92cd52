package rg

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/rendergraph/bindless"
	"github.com/gogpu/rendergraph/device"
	"github.com/gogpu/rendergraph/dynconst"
	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/pipeline"
	"github.com/gogpu/rendergraph/rpcache"
	"github.com/gogpu/rendergraph/transient"
	"github.com/gogpu/rendergraph/types"
)

// Renderer is the per-frame top-level controller: it owns the
// collaborators a graph needs to compile and execute, builds a fresh
// RenderGraph every frame, and drives the device/swapchain handshake
// around it.
type Renderer struct {
	dev            *device.Device
	swapchain      hal.Swapchain
	pipelines      *pipeline.Cache
	renderPasses   *rpcache.Cache
	transientCache *transient.Cache
	dynamicConstants *dynconst.Ring
	bindlessSet    *bindless.Set
	predefinedSets map[uint32]hal.DescriptorSetLayoutDesc

	// AllowPassOverlap controls whether a same-access-type transition
	// declared SkipIfSameAccessType is elided rather than always
	// re-barriered. Defaults to true.
	AllowPassOverlap bool

	temporal *TemporalRenderGraph

	acquireSemaphores        [2]hal.Semaphore
	renderFinishedSemaphores [2]hal.Semaphore
	frameIdx                 int
}

// NewRenderer wires a renderer around dev and swapchain, installing the
// bindless set as set 1 and allocating the two acquire/rendering-finished
// semaphore pairs the double-buffered frame slots need.
func NewRenderer(dev *device.Device, swapchain hal.Swapchain, pipelines *pipeline.Cache, renderPasses *rpcache.Cache, transientCache *transient.Cache, dynamicConstants *dynconst.Ring, bindlessSet *bindless.Set) (*Renderer, error) {
	r := &Renderer{
		dev: dev, swapchain: swapchain, pipelines: pipelines, renderPasses: renderPasses,
		transientCache: transientCache, dynamicConstants: dynamicConstants, bindlessSet: bindlessSet,
		AllowPassOverlap: true,
	}
	if bindlessSet != nil {
		r.predefinedSets = map[uint32]hal.DescriptorSetLayoutDesc{1: bindlessSet.LayoutDesc()}
	}
	for i := range r.acquireSemaphores {
		sem, err := dev.HAL().CreateSemaphore()
		if err != nil {
			return nil, fmt.Errorf("renderer: create acquire semaphore %d: %w", i, err)
		}
		r.acquireSemaphores[i] = sem
		sem2, err := dev.HAL().CreateSemaphore()
		if err != nil {
			return nil, fmt.Errorf("renderer: create rendering-finished semaphore %d: %w", i, err)
		}
		r.renderFinishedSemaphores[i] = sem2
	}
	return r, nil
}

// RenderFrame runs one frame of 4.13's sequence. prepareConstants fills
// the dynamic constants ring before recording starts; it may be nil.
// record builds the frame's graph against the temporal registry the
// renderer keeps across frames.
func (r *Renderer) RenderFrame(ctx context.Context, prepareConstants func(*dynconst.Ring) error, record func(*TemporalRenderGraph, Handle[types.ImageDesc]) error) error {
	peekIdx, err := r.swapchain.PeekNextImage()
	if err != nil {
		return fmt.Errorf("renderer: peek next swapchain image: %w", err)
	}

	frame, err := r.dev.BeginFrame()
	if err != nil {
		return fmt.Errorf("renderer: begin frame: %w", err)
	}
	r.dev.HAL().ResetFence(frame.MainFence)
	r.dev.HAL().ResetFence(frame.PresentationFence)

	if prepareConstants != nil {
		if err := prepareConstants(r.dynamicConstants); err != nil {
			r.dev.FinishFrame(frame)
			return fmt.Errorf("renderer: prepare frame constants: %w", err)
		}
	}

	graph := New(r.dev, r.pipelines, r.renderPasses, r.transientCache, r.predefinedSets, r.AllowPassOverlap)
	graph.DynamicConstants = r.dynamicConstants

	swapchainHandle := graph.SwapchainImage(types.ImageDesc{
		ImageType:   types.ImageType2D,
		Format:      r.swapchain.ImageFormat(),
		Extent:      r.swapchain.ImageExtent(),
		MipLevels:   1,
		ArrayLayers: 1,
		Usage:       types.ImageUsageColorAttachment,
	})

	if r.temporal == nil {
		r.temporal = NewTemporalRenderGraph(graph)
	} else {
		r.temporal.Rebind(graph)
	}

	if err := record(r.temporal, swapchainHandle); err != nil {
		r.dev.FinishFrame(frame)
		return fmt.Errorf("renderer: record graph: %w", err)
	}
	r.temporal.CommitExports()

	if err := graph.Compile(ctx); err != nil {
		r.dev.FinishFrame(frame)
		return fmt.Errorf("renderer: compile graph: %w", err)
	}

	acquireSem := r.acquireSemaphores[r.frameIdx]
	renderDoneSem := r.renderFinishedSemaphores[r.frameIdx]

	acquiredIdx, acquiredImage, err := r.swapchain.AcquireNextImage(acquireSem)
	if err != nil {
		if errors.Is(err, hal.ErrSwapchainLost) || errors.Is(err, hal.ErrDeviceLost) {
			hal.Logger().Error("renderer: unrecoverable error acquiring swapchain image", "error", err)
		}
		r.dev.FinishFrame(frame)
		return fmt.Errorf("renderer: acquire next swapchain image: %w", err)
	}
	if acquiredIdx != peekIdx {
		r.dev.FinishFrame(frame)
		panic(fmt.Sprintf("renderer: acquired swapchain image %d does not match peeked image %d", acquiredIdx, peekIdx))
	}

	execErr := graph.Execute(frame, acquiredImage)
	r.temporal.RetireFrame(execErr)
	if execErr != nil {
		r.dev.FinishFrame(frame)
		return fmt.Errorf("renderer: execute graph: %w", execErr)
	}

	r.dynamicConstants.AdvanceFrame()

	if err := frame.MainCB.Finish(); err != nil {
		r.dev.FinishFrame(frame)
		return fmt.Errorf("renderer: finish main command buffer: %w", err)
	}
	if err := frame.PresentationCB.Finish(); err != nil {
		r.dev.FinishFrame(frame)
		return fmt.Errorf("renderer: finish presentation command buffer: %w", err)
	}

	if err := r.dev.HAL().Queue().Submit(frame.MainCB, nil, nil, frame.MainFence); err != nil {
		r.dev.FinishFrame(frame)
		return fmt.Errorf("renderer: submit main command buffer: %w", err)
	}
	if err := r.dev.HAL().Queue().Submit(frame.PresentationCB, []hal.Semaphore{acquireSem}, []hal.Semaphore{renderDoneSem}, frame.PresentationFence); err != nil {
		r.dev.FinishFrame(frame)
		return fmt.Errorf("renderer: submit presentation command buffer: %w", err)
	}

	if err := r.swapchain.PresentImage(acquiredIdx, []hal.Semaphore{renderDoneSem}); err != nil {
		r.dev.FinishFrame(frame)
		return fmt.Errorf("renderer: present: %w", err)
	}

	r.dev.FinishFrame(frame)
	r.frameIdx = (r.frameIdx + 1) % len(r.acquireSemaphores)
	return nil
}

// Destroy releases the renderer's own semaphores. The device, swapchain,
// and caches passed to NewRenderer are owned by the caller.
func (r *Renderer) Destroy() {
	for _, s := range r.acquireSemaphores {
		if s != nil {
			s.Destroy()
		}
	}
	for _, s := range r.renderFinishedSemaphores {
		if s != nil {
			s.Destroy()
		}
	}
}
