package noop

import (
	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/types"
)

type device struct {
	caps  hal.DeviceCapabilities
	queue *queue
}

// New returns an in-memory hal.Device. caps controls which optional
// features (ray tracing, bindless) the render graph will believe are
// available; pass a zero-value hal.DeviceCapabilities for the most
// restrictive configuration.
func New(caps hal.DeviceCapabilities) hal.Device {
	if caps.MinUniformBufferOffsetAlignment == 0 {
		caps.MinUniformBufferOffsetAlignment = 256
	}
	if caps.MinStorageBufferOffsetAlignment == 0 {
		caps.MinStorageBufferOffsetAlignment = 64
	}
	return &device{caps: caps, queue: &queue{}}
}

func (d *device) Capabilities() hal.DeviceCapabilities { return d.caps }
func (d *device) Queue() hal.Queue                     { return d.queue }

func (d *device) CreateImage(desc types.ImageDesc) (hal.Image, error) {
	return &image{desc: desc, address: allocAddress()}, nil
}

func (d *device) CreateImageView(img hal.Image, desc types.ImageViewDesc) (hal.ImageView, error) {
	return &imageView{desc: desc}, nil
}

func (d *device) CreateBuffer(desc types.BufferDesc) (hal.Buffer, error) {
	b := &buffer{desc: desc, address: allocAddress()}
	if desc.MemoryLocation != types.MemoryLocationGpuOnly || desc.Mapped {
		b.backing = make([]byte, desc.Size)
	}
	return b, nil
}

func (d *device) CreateSampler(desc types.SamplerDesc) (hal.Sampler, error) {
	return &sampler{desc: desc}, nil
}

func (d *device) CreateShaderModule(code hal.ShaderBytecode) (hal.ShaderModule, error) {
	return &shaderModule{stage: code.Stage, reflection: code.Reflection}, nil
}

func (d *device) CreateDescriptorSetLayout(desc hal.DescriptorSetLayoutDesc) (hal.DescriptorSetLayout, error) {
	return &descriptorSetLayout{desc: desc}, nil
}

func (d *device) CreateDescriptorPool(maxSets uint32, sizes map[types.DescriptorType]uint32, updateAfterBind bool) (hal.DescriptorPool, error) {
	return &descriptorPool{updateAfterBind: updateAfterBind}, nil
}

func (d *device) UpdateDescriptorSets(writes []hal.DescriptorWrite) {}

func (d *device) CreatePipelineLayout(setLayouts []hal.DescriptorSetLayout, pushConstants []hal.PushConstantRange) (hal.PipelineLayout, error) {
	return &pipelineLayout{setLayouts: setLayouts, pushConstants: pushConstants}, nil
}

func (d *device) CreateComputePipeline(desc hal.ComputePipelineDesc) (hal.ComputePipeline, error) {
	var wg [3]uint32
	if desc.Shader != nil {
		wg = desc.Shader.Reflection().WorkgroupSize
	}
	return &computePipeline{layout: desc.Layout, workgroupSize: wg}, nil
}

func (d *device) CreateRasterPipeline(desc hal.RasterPipelineDesc) (hal.RasterPipeline, error) {
	return &rasterPipeline{layout: desc.Layout}, nil
}

func (d *device) CreateRayTracingPipeline(desc hal.RayTracingPipelineDesc) (hal.RayTracingPipeline, error) {
	sbt := &shaderBindingTable{
		rayGen:   hal.ShaderBindingTableRegion{DeviceAddress: allocAddress(), Stride: 32, Size: 32},
		miss:     hal.ShaderBindingTableRegion{DeviceAddress: allocAddress(), Stride: 32, Size: 32 * uint64(len(desc.Miss))},
		hitGroup: hal.ShaderBindingTableRegion{DeviceAddress: allocAddress(), Stride: 32, Size: 32 * uint64(len(desc.HitGroups))},
	}
	return &rayTracingPipeline{layout: desc.Layout, sbt: sbt}, nil
}

func (d *device) CreateRenderPass(desc types.RenderPassDesc) (hal.RenderPass, error) {
	return &renderPass{desc: desc}, nil
}

func (d *device) CreateFramebuffer(key types.FramebufferKey, rp hal.RenderPass) (hal.Framebuffer, error) {
	return &framebuffer{key: key}, nil
}

func (d *device) ImportAccelerationStructure(kind types.AccelerationStructureKind, buf hal.Buffer, deviceAddress uint64) (hal.AccelerationStructure, error) {
	return &accelerationStructure{kind: kind, buf: buf, address: deviceAddress}, nil
}

func (d *device) CreateFence(initiallySignaled bool) (hal.Fence, error) {
	f := &fence{}
	f.signaled.Store(initiallySignaled)
	return f, nil
}

func (d *device) CreateSemaphore() (hal.Semaphore, error) {
	return &semaphore{}, nil
}

func (d *device) WaitForFence(f hal.Fence, timeoutNanos uint64) error {
	return nil
}

func (d *device) ResetFence(f hal.Fence) {
	if nf, ok := f.(*fence); ok {
		nf.signaled.Store(false)
	}
}

func (d *device) CreateCommandEncoder() (hal.CommandEncoder, error) {
	return &commandEncoder{}, nil
}

func (d *device) WaitIdle() error { return nil }

func (d *device) Destroy() {}
