package noop

import "github.com/gogpu/rendergraph/hal"

type computePipeline struct {
	layout        hal.PipelineLayout
	workgroupSize [3]uint32
}

func (p *computePipeline) Destroy()                     {}
func (p *computePipeline) Layout() hal.PipelineLayout   { return p.layout }
func (p *computePipeline) WorkgroupSize() [3]uint32     { return p.workgroupSize }

type rasterPipeline struct {
	layout hal.PipelineLayout
}

func (p *rasterPipeline) Destroy()                   {}
func (p *rasterPipeline) Layout() hal.PipelineLayout { return p.layout }

type rayTracingPipeline struct {
	layout hal.PipelineLayout
	sbt    *shaderBindingTable
}

func (p *rayTracingPipeline) Destroy()                                {}
func (p *rayTracingPipeline) Layout() hal.PipelineLayout              { return p.layout }
func (p *rayTracingPipeline) ShaderBindingTable() hal.ShaderBindingTable { return p.sbt }

type shaderBindingTable struct {
	rayGen   hal.ShaderBindingTableRegion
	miss     hal.ShaderBindingTableRegion
	hitGroup hal.ShaderBindingTableRegion
	callable hal.ShaderBindingTableRegion
}

func (s *shaderBindingTable) RayGen() hal.ShaderBindingTableRegion   { return s.rayGen }
func (s *shaderBindingTable) Miss() hal.ShaderBindingTableRegion     { return s.miss }
func (s *shaderBindingTable) HitGroup() hal.ShaderBindingTableRegion { return s.hitGroup }
func (s *shaderBindingTable) Callable() hal.ShaderBindingTableRegion { return s.callable }
