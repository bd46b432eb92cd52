package hal

import "github.com/gogpu/rendergraph/types"

// DeviceCapabilities reports the optional feature set of the device.
// RayTracing and Bindless are reported only: RegisterRayTracingPipeline
// and bindless set creation do not check them. MaxBindlessResources sizes
// the bindless bindings in merged pipeline layouts.
type DeviceCapabilities struct {
	RayTracing           bool
	Bindless             bool
	MaxBindlessResources uint32
	MinUniformBufferOffsetAlignment uint64
	MinStorageBufferOffsetAlignment uint64
}

// Queue submits recorded command buffers and presents swapchain images.
type Queue interface {
	// Submit sends a command buffer for execution. wait/signal name the
	// semaphores the submission waits on and signals, and signalFence is
	// signaled once the GPU has retired every command in the buffer.
	Submit(cb CommandEncoder, wait []Semaphore, signal []Semaphore, signalFence Fence) error
}

// Device is the render graph's view of the underlying explicit graphics
// API: resource creation, command buffer allocation, and the
// synchronization primitives the device wrapper composes into per-frame
// slots.
type Device interface {
	Capabilities() DeviceCapabilities
	Queue() Queue

	CreateImage(desc types.ImageDesc) (Image, error)
	CreateImageView(image Image, desc types.ImageViewDesc) (ImageView, error)
	CreateBuffer(desc types.BufferDesc) (Buffer, error)
	CreateSampler(desc types.SamplerDesc) (Sampler, error)

	// CreateShaderModule takes the SPIR-V bytes and reflection the shader
	// compiler collaborator produced; the device itself never parses
	// or generates SPIR-V.
	CreateShaderModule(code ShaderBytecode) (ShaderModule, error)

	CreateDescriptorSetLayout(desc DescriptorSetLayoutDesc) (DescriptorSetLayout, error)
	CreateDescriptorPool(maxSets uint32, sizes map[types.DescriptorType]uint32, updateAfterBind bool) (DescriptorPool, error)
	UpdateDescriptorSets(writes []DescriptorWrite)
	CreatePipelineLayout(setLayouts []DescriptorSetLayout, pushConstants []PushConstantRange) (PipelineLayout, error)

	CreateComputePipeline(desc ComputePipelineDesc) (ComputePipeline, error)
	CreateRasterPipeline(desc RasterPipelineDesc) (RasterPipeline, error)
	CreateRayTracingPipeline(desc RayTracingPipelineDesc) (RayTracingPipeline, error)

	CreateRenderPass(desc types.RenderPassDesc) (RenderPass, error)
	CreateFramebuffer(key types.FramebufferKey, renderPass RenderPass) (Framebuffer, error)

	// ImportAccelerationStructure wraps an already-built BLAS/TLAS buffer;
	// the render graph never builds acceleration structures itself.
	ImportAccelerationStructure(kind types.AccelerationStructureKind, buffer Buffer, deviceAddress uint64) (AccelerationStructure, error)

	CreateFence(initiallySignaled bool) (Fence, error)
	CreateSemaphore() (Semaphore, error)
	WaitForFence(fence Fence, timeoutNanos uint64) error
	ResetFence(fence Fence)

	CreateCommandEncoder() (CommandEncoder, error)

	// WaitIdle blocks until every submission on every queue has retired.
	// The device wrapper's setup command buffer serializes on this.
	WaitIdle() error

	Destroy()
}
