package rg

import "github.com/gogpu/rendergraph/types"

// SyncType controls whether the executor may skip a transition when the
// resource's current access type already matches the requested one.
type SyncType uint8

const (
	// SyncAlways always emits a transition, even a same-access-type one.
	SyncAlways SyncType = iota
	// SyncSkipIfSameAccessType allows the executor to elide the barrier
	// when the resource's tracked access type is unchanged, subject to
	// the graph's allowPassOverlap setting (Renderer.AllowPassOverlap).
	SyncSkipIfSameAccessType
)

// PassRef is one resource access declared by a pass.
type PassRef struct {
	Raw    RawHandle
	Access types.AccessType
	Sync   SyncType
}

// pipelineBinding identifies a pipeline a pass registered against the
// graph's pipeline cache, resolved to a concrete hal handle at compile
// time.
type pipelineBinding struct {
	kind pipelineKind
	idx  int
}

type pipelineKind uint8

const (
	pipelineKindCompute pipelineKind = iota
	pipelineKindRaster
	pipelineKindRayTracing
)

// Pass is one recorded node of the graph.
type Pass struct {
	Name  string
	Idx   int
	Reads []PassRef

	Writes []PassRef

	RenderFn func(*PassApi) error

	pipelines []pipelineBinding
}

func (p *Pass) touches(raw RawHandle) bool {
	for _, r := range p.Reads {
		if r.Raw.ID == raw.ID {
			return true
		}
	}
	for _, w := range p.Writes {
		if w.Raw.ID == raw.ID {
			return true
		}
	}
	return false
}
