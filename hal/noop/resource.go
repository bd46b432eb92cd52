package noop

import (
	"sync/atomic"

	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/types"
)

var nextAddress atomic.Uint64

func allocAddress() uint64 {
	return nextAddress.Add(1)
}

type image struct {
	desc    types.ImageDesc
	address uint64
}

func (i *image) Destroy()                 {}
func (i *image) Desc() types.ImageDesc    { return i.desc }
func (i *image) DeviceAddress() uint64    { return i.address }

type imageView struct {
	desc types.ImageViewDesc
}

func (v *imageView) Destroy()                      {}
func (v *imageView) Desc() types.ImageViewDesc     { return v.desc }

type buffer struct {
	desc    types.BufferDesc
	address uint64
	backing []byte
}

func (b *buffer) Destroy()              {}
func (b *buffer) Desc() types.BufferDesc { return b.desc }
func (b *buffer) MappedPtr() []byte     { return b.backing }
func (b *buffer) DeviceAddress() uint64 { return b.address }

type accelerationStructure struct {
	kind    types.AccelerationStructureKind
	buf     hal.Buffer
	address uint64
}

func (a *accelerationStructure) Destroy()                                    {}
func (a *accelerationStructure) Kind() types.AccelerationStructureKind       { return a.kind }
func (a *accelerationStructure) Buffer() hal.Buffer                          { return a.buf }
func (a *accelerationStructure) DeviceAddress() uint64                       { return a.address }

type sampler struct {
	desc types.SamplerDesc
}

func (s *sampler) Destroy()                  {}
func (s *sampler) Desc() types.SamplerDesc   { return s.desc }

type shaderModule struct {
	stage      types.ShaderStage
	reflection hal.ShaderReflection
}

func (m *shaderModule) Destroy()                           {}
func (m *shaderModule) Stage() types.ShaderStage            { return m.stage }
func (m *shaderModule) Reflection() hal.ShaderReflection    { return m.reflection }

type framebuffer struct {
	key types.FramebufferKey
}

func (f *framebuffer) Destroy()                  {}
func (f *framebuffer) Key() types.FramebufferKey { return f.key }

type renderPass struct {
	desc types.RenderPassDesc
}

func (p *renderPass) Destroy()                    {}
func (p *renderPass) Desc() types.RenderPassDesc  { return p.desc }

type fence struct {
	signaled atomic.Bool
}

func (f *fence) Destroy() {}

type semaphore struct{}

func (s *semaphore) Destroy() {}
