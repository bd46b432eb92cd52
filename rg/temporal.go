package rg

import (
	"fmt"

	"github.com/gogpu/rendergraph/types"
)

// ResourceKey is a stable, application-chosen identifier for a resource
// carried across frames by a TemporalRenderGraph. Discriminant
// disambiguates keys that share a Name but aren't interchangeable, e.g.
// per-light shadow maps.
type ResourceKey struct {
	Name         string
	Discriminant uint32
}

type temporalStateKind uint8

const (
	temporalInert temporalStateKind = iota
	temporalImported
	temporalExported
)

// temporalState is the registry entry backing one ResourceKey. resource
// holds whichever of hal.Image/hal.Buffer this key's descriptor
// kind resolves to; GetOrCreateTemporal passes it straight into Import,
// which only ever type-asserts it against the same two types.
type temporalState struct {
	kind           temporalStateKind
	resource       any
	lastAccessType types.AccessType
	handle         RawHandle
}

// TemporalRenderGraph layers resource carry-over across frames on top of
// a frame-scoped RenderGraph. It outlives any single RenderGraph; call
// Rebind at the start of each frame with that frame's fresh graph before
// recording.
type TemporalRenderGraph struct {
	Graph *RenderGraph

	registry map[ResourceKey]*temporalState
	touched  map[ResourceKey]bool
}

// NewTemporalRenderGraph returns a registry with no entries, bound to g.
func NewTemporalRenderGraph(g *RenderGraph) *TemporalRenderGraph {
	return &TemporalRenderGraph{
		Graph:    g,
		registry: make(map[ResourceKey]*temporalState),
		touched:  make(map[ResourceKey]bool),
	}
}

// Rebind points the registry at this frame's graph and clears the
// touched-this-frame set, ready for a fresh round of
// GetOrCreateTemporal/CommitExports/RetireFrame calls.
func (tg *TemporalRenderGraph) Rebind(g *RenderGraph) {
	tg.Graph = g
	tg.touched = make(map[ResourceKey]bool)
}

// GetOrCreateTemporal returns the handle for key, carried across frames.
// On first encounter it allocates desc from the transient cache and
// imports it at AccessNothing; on every later encounter it imports the
// same underlying resource at whatever access type the previous frame
// last left it in.
func GetOrCreateTemporal[D ResourceDesc](tg *TemporalRenderGraph, key ResourceKey, desc D) Handle[D] {
	entry, ok := tg.registry[key]
	if !ok {
		resource, err := acquireTemporalResource(tg.Graph, desc)
		if err != nil {
			panic(fmt.Sprintf("rg: temporal resource %+v: %v", key, err))
		}
		entry = &temporalState{kind: temporalImported, resource: resource, lastAccessType: types.AccessNothing}
		tg.registry[key] = entry
	}

	h := Import(tg.Graph, entry.resource, desc, entry.lastAccessType)
	entry.kind = temporalImported
	entry.handle = h.Raw
	tg.touched[key] = true
	return h
}

func acquireTemporalResource[D ResourceDesc](g *RenderGraph, desc D) (any, error) {
	switch d := any(desc).(type) {
	case types.ImageDesc:
		return g.transientCache.AcquireImage(d)
	case types.BufferDesc:
		return g.transientCache.AcquireBuffer(d)
	default:
		panic("rg: unsupported resource descriptor type")
	}
}

// CommitExports rewrites every entry touched this frame and exported on
// the underlying graph to Exported. Call this once recording is
// finished, before Compile.
func (tg *TemporalRenderGraph) CommitExports() {
	for key, entry := range tg.registry {
		if !tg.touched[key] || entry.kind != temporalImported {
			continue
		}
		st := tg.Graph.state(entry.handle)
		if st.exported {
			entry.kind = temporalExported
		}
	}
}

// RetireFrame closes out every entry touched this frame. On success it
// reads back the access type execute left the resource in and demotes
// the entry to Inert; on failure the resource is kept but its tracked
// access type resets to Nothing so the next frame re-imports it cold.
func (tg *TemporalRenderGraph) RetireFrame(executeErr error) {
	for key, entry := range tg.registry {
		if !tg.touched[key] {
			continue
		}
		if executeErr != nil {
			entry.lastAccessType = types.AccessNothing
			entry.kind = temporalInert
			continue
		}
		st := tg.Graph.state(entry.handle)
		entry.lastAccessType = st.lastAccessType
		entry.kind = temporalInert
	}
}
