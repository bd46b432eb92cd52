package rg

import (
	"fmt"

	"github.com/gogpu/rendergraph/device"
	"github.com/gogpu/rendergraph/dynconst"
	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/pipeline"
	"github.com/gogpu/rendergraph/rpcache"
	"github.com/gogpu/rendergraph/transient"
	"github.com/gogpu/rendergraph/types"
)

// resourceState is the compile/execute-time bookkeeping for one resource
// slot. Descriptor and resource fields are kept for both kinds rather
// than behind an interface so compile and execute can stay simple
// non-generic code; only one of the Image/Buffer pairs is ever populated,
// selected by kind.
type resourceState struct {
	kind ResourceKind

	imageDesc  types.ImageDesc
	bufferDesc types.BufferDesc

	imported bool
	// importedImage/importedBuffer hold the handle supplied to Import;
	// image/buffer hold whichever resource (imported or freshly
	// materialized) execute actually binds into passes.
	importedImage  hal.Image
	importedBuffer hal.Buffer
	image          hal.Image
	buffer         hal.Buffer

	// isSwapchain marks the one resource whose image is Pending until
	// execute's begin step assigns the just-acquired swapchain image.
	isSwapchain bool

	createdAtPass int // 0 for imports, -1 otherwise
	lastAccessPass int
	lastAccessType types.AccessType
	importAccessType types.AccessType

	exported         bool
	exportAccessType types.AccessType

	owned bool // eligible for the transient cache on retire

	// firstAccessRecorded is set once this resource's first Read/Write/
	// Raster has been recorded in the current graph. Only that first
	// access is eligible for SyncSkipIfSameAccessType; every later access
	// defaults to SyncAlways, so two passes touching the resource at the
	// same access type still get a barrier between them.
	firstAccessRecorded bool
}

// RenderGraph is the frame-scoped DAG of passes being recorded, plus the
// resource table and pipeline registrations produced along the way.
// Recording is purely imperative and single-threaded.
type RenderGraph struct {
	dev            *device.Device
	pipelines      *pipeline.Cache
	renderPasses   *rpcache.Cache
	transientCache *transient.Cache
	predefinedSets map[uint32]hal.DescriptorSetLayoutDesc

	passes    []*Pass
	resources []*resourceState

	computeRequests []pipeline.ComputeRequest
	rasterRequests  []pipeline.RasterRequest
	rtRequests      []pipeline.RayTracingRequest

	computePipelines []hal.ComputePipeline
	rasterPipelines  []hal.RasterPipeline
	rtPipelines      []hal.RayTracingPipeline

	allowPassOverlap bool

	// DynamicConstants is the dynamic constants ring passes can push into
	// through PassApi.DynamicConstants. It is nil unless the
	// renderer that owns this graph set one.
	DynamicConstants *dynconst.Ring
}

// New starts a fresh graph. predefinedSets (e.g. {1: bindless layout, 2:
// frame-constants layout}) is merged into every pipeline registered on
// this graph. allowPassOverlap mirrors the renderer's
// AllowPassOverlap field at the time the graph was created.
func New(dev *device.Device, pipelines *pipeline.Cache, renderPasses *rpcache.Cache, transientCache *transient.Cache, predefinedSets map[uint32]hal.DescriptorSetLayoutDesc, allowPassOverlap bool) *RenderGraph {
	return &RenderGraph{
		dev: dev, pipelines: pipelines, renderPasses: renderPasses, transientCache: transientCache,
		predefinedSets: predefinedSets, allowPassOverlap: allowPassOverlap,
	}
}

// AddPass starts recording a new pass named name and returns its builder.
func (g *RenderGraph) AddPass(name string) *PassBuilder {
	p := &Pass{Name: name, Idx: len(g.passes)}
	g.passes = append(g.passes, p)
	return &PassBuilder{graph: g, pass: p}
}

func (g *RenderGraph) allocHandle(kind ResourceKind) RawHandle {
	id := uint32(len(g.resources))
	g.resources = append(g.resources, &resourceState{kind: kind, createdAtPass: -1, lastAccessPass: -1})
	return RawHandle{ID: id, Version: 0, Kind: kind}
}

func (g *RenderGraph) state(raw RawHandle) *resourceState {
	if int(raw.ID) >= len(g.resources) {
		panic(fmt.Sprintf("rg: handle %d does not belong to this graph", raw.ID))
	}
	return g.resources[raw.ID]
}

// syncForNextAccess returns SyncSkipIfSameAccessType for a resource's
// first recorded access and SyncAlways for every access after that. A
// resource can enter its first access already sitting at the requested
// access type (an import or a temporal carry-over from a prior frame),
// in which case no transition is needed; consecutive in-graph accesses
// of the same type (for example write after write) still get a barrier.
func (st *resourceState) syncForNextAccess() SyncType {
	if st.firstAccessRecorded {
		return SyncAlways
	}
	st.firstAccessRecorded = true
	return SyncSkipIfSameAccessType
}

// Create registers a transient resource, returning a Handle recording
// ownership absence of a materialized resource until compile/execute.
func Create[D ResourceDesc](g *RenderGraph, desc D) Handle[D] {
	raw := g.allocHandle(kindOf(desc))
	st := g.state(raw)
	st.createdAtPass = -1
	switch d := any(desc).(type) {
	case types.ImageDesc:
		st.imageDesc = d
	case types.BufferDesc:
		st.bufferDesc = d
	}
	st.owned = true
	return Handle[D]{Raw: raw, Desc: desc}
}

// Import brings an already-owned resource into the graph at
// accessAtImport, the access type it is known to currently be in.
func Import[D ResourceDesc](g *RenderGraph, resource any, desc D, accessAtImport types.AccessType) Handle[D] {
	raw := g.allocHandle(kindOf(desc))
	st := g.state(raw)
	st.imported = true
	st.importAccessType = accessAtImport
	st.lastAccessType = accessAtImport
	st.createdAtPass = 0
	switch d := any(desc).(type) {
	case types.ImageDesc:
		st.imageDesc = d
		st.importedImage, _ = resource.(hal.Image)
		st.image = st.importedImage
	case types.BufferDesc:
		st.bufferDesc = d
		st.importedBuffer, _ = resource.(hal.Buffer)
		st.buffer = st.importedBuffer
	}
	return Handle[D]{Raw: raw, Desc: desc}
}

// Export declares that handle must be available after execute at
// accessForHandoff; the executor inserts the final transition.
func Export[D ResourceDesc](g *RenderGraph, handle Handle[D], accessForHandoff types.AccessType) ExportedHandle[D] {
	st := g.state(handle.Raw)
	st.exported = true
	st.exportAccessType = accessForHandoff
	return ExportedHandle[D]{Raw: handle.Raw}
}

// SwapchainImage returns the handle for this frame's swapchain target.
// Its underlying image is Pending (nil) until execute's begin step
// assigns the just-acquired image.
func (g *RenderGraph) SwapchainImage(desc types.ImageDesc) Handle[types.ImageDesc] {
	raw := g.allocHandle(ResourceKindImage)
	st := g.state(raw)
	st.imageDesc = desc
	st.isSwapchain = true
	st.createdAtPass = -1
	st.lastAccessType = types.AccessNothing
	return Handle[types.ImageDesc]{Raw: raw, Desc: desc}
}
