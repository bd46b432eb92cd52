package noop

import (
	"github.com/gogpu/rendergraph/hal"
)

type descriptorSetLayout struct {
	desc hal.DescriptorSetLayoutDesc
}

func (l *descriptorSetLayout) Destroy()                               {}
func (l *descriptorSetLayout) Desc() hal.DescriptorSetLayoutDesc      { return l.desc }

type descriptorPool struct {
	updateAfterBind bool
	allocated       []*descriptorSet
}

func (p *descriptorPool) Destroy() {}

func (p *descriptorPool) Allocate(layout hal.DescriptorSetLayout, variableCount uint32) (hal.DescriptorSet, error) {
	s := &descriptorSet{layout: layout}
	p.allocated = append(p.allocated, s)
	return s, nil
}

func (p *descriptorPool) Reset() {
	p.allocated = p.allocated[:0]
}

type descriptorSet struct {
	layout hal.DescriptorSetLayout
}

func (s *descriptorSet) Destroy()                       {}
func (s *descriptorSet) Layout() hal.DescriptorSetLayout { return s.layout }

type pipelineLayout struct {
	setLayouts    []hal.DescriptorSetLayout
	pushConstants []hal.PushConstantRange
}

func (l *pipelineLayout) Destroy()                                  {}
func (l *pipelineLayout) SetLayouts() []hal.DescriptorSetLayout     { return l.setLayouts }
func (l *pipelineLayout) PushConstantRanges() []hal.PushConstantRange { return l.pushConstants }
