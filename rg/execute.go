package rg

import (
	"fmt"

	"github.com/gogpu/rendergraph/device"
	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/types"
)

// Execute records every pass's barriers and render callback into frame's
// two command encoders. Passes before the one that first writes the
// swapchain image go into the main command buffer; that pass and
// everything after it go into the presentation command buffer, so the
// presentation buffer alone waits on the swapchain's acquire semaphore.
// swapchainImage is the image SwapchainImage's handle resolves to for
// this frame; pass nil if the graph has no swapchain target.
func (g *RenderGraph) Execute(frame *device.Frame, swapchainImage hal.Image) error {
	if err := g.materializeResources(swapchainImage); err != nil {
		return err
	}

	splitIdx := g.swapchainSplitIndex()

	if err := g.executePasses(g.passes[:splitIdx], frame.MainCB); err != nil {
		return err
	}
	if splitIdx < len(g.passes) {
		if err := g.executePasses(g.passes[splitIdx:], frame.PresentationCB); err != nil {
			return err
		}
	}

	exportCB := frame.PresentationCB
	if splitIdx == len(g.passes) {
		exportCB = frame.MainCB
	}
	g.transitionExports(exportCB)
	g.retireResources()
	return nil
}

// materializeResources acquires a concrete image or buffer for every
// resource that isn't already backed by one: transient resources come
// from the transient cache, and the swapchain resource (if any) is bound
// to the image the caller just acquired.
func (g *RenderGraph) materializeResources(swapchainImage hal.Image) error {
	for _, st := range g.resources {
		if st.imported {
			continue
		}
		if st.isSwapchain {
			st.image = swapchainImage
			continue
		}
		switch st.kind {
		case ResourceKindImage:
			img, err := g.transientCache.AcquireImage(st.imageDesc)
			if err != nil {
				return fmt.Errorf("rg: acquire transient image: %w", err)
			}
			st.image = img
		case ResourceKindBuffer:
			buf, err := g.transientCache.AcquireBuffer(st.bufferDesc)
			if err != nil {
				return fmt.Errorf("rg: acquire transient buffer: %w", err)
			}
			st.buffer = buf
		}
	}
	return nil
}

// swapchainSplitIndex returns the index of the first pass that writes the
// swapchain resource, or len(g.passes) if the graph has no swapchain
// target or never writes it (every pass then runs on the main buffer).
func (g *RenderGraph) swapchainSplitIndex() int {
	swapchainID := -1
	for id, st := range g.resources {
		if st.isSwapchain {
			swapchainID = id
			break
		}
	}
	if swapchainID < 0 {
		return len(g.passes)
	}
	for _, p := range g.passes {
		for _, w := range p.Writes {
			if int(w.Raw.ID) == swapchainID {
				return p.Idx
			}
		}
	}
	return len(g.passes)
}

func (g *RenderGraph) executePasses(passes []*Pass, cb hal.CommandEncoder) error {
	for _, p := range passes {
		g.dev.WriteCrashMarker(cb, "begin:"+p.Name)
		cb.BeginDebugLabel(p.Name, types.Color{R: 1, G: 1, B: 1, A: 1})

		g.emitBarriers(cb, p)

		if p.RenderFn != nil {
			api := &PassApi{g: g, cb: cb}
			if err := p.RenderFn(api); err != nil {
				panic(fmt.Sprintf("rg: pass %q failed to render: %v", p.Name, err))
			}
		}

		cb.EndDebugLabel()
		g.dev.WriteCrashMarker(cb, "end:"+p.Name)
	}
	return nil
}

// emitBarriers transitions every resource p reads or writes from its
// currently tracked access type to the one p declared, batched into a
// single PipelineBarrier call.
func (g *RenderGraph) emitBarriers(cb hal.CommandEncoder, p *Pass) {
	var images []hal.ImageBarrier
	var buffers []hal.BufferBarrier

	handle := func(ref PassRef) {
		st := g.state(ref.Raw)
		old := st.lastAccessType
		if !g.needsBarrier(old, ref.Access, ref.Sync) {
			st.lastAccessType = ref.Access
			return
		}
		switch st.kind {
		case ResourceKindImage:
			images = append(images, hal.ImageBarrier{
				Image: st.image, PrevAccess: accessSlice(old), NextAccess: accessSlice(ref.Access),
			})
		case ResourceKindBuffer:
			buffers = append(buffers, hal.BufferBarrier{
				Buffer: st.buffer, PrevAccess: accessSlice(old), NextAccess: accessSlice(ref.Access),
			})
		}
		st.lastAccessType = ref.Access
	}

	for _, r := range p.Reads {
		handle(r)
	}
	for _, w := range p.Writes {
		handle(w)
	}

	if len(images) > 0 || len(buffers) > 0 {
		cb.PipelineBarrier(nil, buffers, images)
		hal.Logger().Debug("rg: emitted barrier", "pass", p.Name, "images", len(images), "buffers", len(buffers))
	}
}

// needsBarrier reports whether a transition from old to new must emit a
// barrier. A same-type transition is only elidable when the reference
// opted into SyncSkipIfSameAccessType and the graph allows pass overlap;
// otherwise every access, including a same-type one, gets its own
// barrier so overlapping passes can't race.
func (g *RenderGraph) needsBarrier(old, requested types.AccessType, sync SyncType) bool {
	if old != requested {
		return true
	}
	return !(sync == SyncSkipIfSameAccessType && g.allowPassOverlap)
}

func accessSlice(a types.AccessType) []types.AccessType {
	if a == types.AccessNothing {
		return nil
	}
	return []types.AccessType{a}
}

// transitionExports emits the final handoff transition for every exported
// resource whose requested access type differs from the one it was left
// in by the last pass that touched it. A Nothing handoff access induces
// no transition at all.
func (g *RenderGraph) transitionExports(cb hal.CommandEncoder) {
	for _, st := range g.resources {
		if !st.exported || st.exportAccessType == types.AccessNothing {
			continue
		}
		old := st.lastAccessType
		if old == st.exportAccessType {
			continue
		}
		switch st.kind {
		case ResourceKindImage:
			cb.PipelineBarrier(nil, nil, []hal.ImageBarrier{
				{Image: st.image, PrevAccess: accessSlice(old), NextAccess: accessSlice(st.exportAccessType)},
			})
		case ResourceKindBuffer:
			cb.PipelineBarrier(nil, []hal.BufferBarrier{
				{Buffer: st.buffer, PrevAccess: accessSlice(old), NextAccess: accessSlice(st.exportAccessType)},
			}, nil)
		}
		st.lastAccessType = st.exportAccessType
	}
}

// retireResources returns every owned, non-exported, non-imported
// resource to the transient cache for reuse by a later frame. Exported
// and imported resources outlive this graph and are never pooled here.
func (g *RenderGraph) retireResources() {
	for _, st := range g.resources {
		if !st.owned || st.imported || st.isSwapchain || st.exported {
			continue
		}
		switch st.kind {
		case ResourceKindImage:
			g.transientCache.RetireImage(st.imageDesc, st.image)
		case ResourceKindBuffer:
			g.transientCache.RetireBuffer(st.bufferDesc, st.buffer)
		}
	}
}
