package hal

import "github.com/gogpu/rendergraph/types"

// Resource is the base interface every GPU object implements.
type Resource interface {
	// Destroy releases the underlying GPU object. Calling Destroy twice,
	// or using the resource afterwards, is undefined behavior.
	Destroy()
}

// Image is a GPU image (what a consumer API would typically call a
// texture).
type Image interface {
	Resource

	// Desc returns the descriptor this image was created with, including
	// the usage flags the graph compiler inferred.
	Desc() types.ImageDesc

	// DeviceAddress returns the image's opaque backend handle value;
	// images don't carry real device addresses the way buffers do.
	DeviceAddress() uint64
}

// ImageView is a view into an Image.
type ImageView interface {
	Resource
	Desc() types.ImageViewDesc
}

// Buffer is a GPU buffer.
type Buffer interface {
	Resource

	Desc() types.BufferDesc

	// MappedPtr returns the host-visible mapping, or nil if the buffer
	// was not created with CpuToGpu/GpuToCpu memory or mapped=false.
	MappedPtr() []byte

	// DeviceAddress returns the buffer's GPU-visible address. Only valid
	// when the buffer was created with BufferUsageShaderDeviceAddress.
	DeviceAddress() uint64
}

// AccelerationStructure is a BLAS or TLAS. The render graph never builds
// one; it only imports acceleration structures built by the ray tracing
// layer above the core.
type AccelerationStructure interface {
	Resource

	Kind() types.AccelerationStructureKind

	// Buffer returns the backing buffer that owns the acceleration
	// structure's memory.
	Buffer() Buffer

	// DeviceAddress returns the acceleration structure's GPU address, used
	// to bind it into a descriptor set or pass it to a trace-rays call.
	DeviceAddress() uint64
}

// Sampler is one of the device's immutable samplers.
type Sampler interface {
	Resource
	Desc() types.SamplerDesc
}

// ShaderModule wraps compiled SPIR-V bytes plus the reflection structure
// the shader compiler produced for them. The render graph and pipeline
// cache never parse SPIR-V themselves — see ShaderReflection.
type ShaderModule interface {
	Resource

	Stage() types.ShaderStage
	Reflection() ShaderReflection
}

// Framebuffer is an imageless framebuffer handle: it is bound to
// concrete image views per-frame at BeginRenderPass time.
type Framebuffer interface {
	Resource
	Key() types.FramebufferKey
}

// RenderPass is a cached render pass object.
type RenderPass interface {
	Resource
	Desc() types.RenderPassDesc
}

// Fence is a binary GPU-to-CPU synchronization primitive: a submission
// signals it and Device.ResetFence unsignals it, matching the device
// wrapper's per-slot submit-done fences.
type Fence interface {
	Resource
}

// Semaphore is a GPU-to-GPU synchronization primitive, used for the
// swapchain's acquire and rendering-finished signals.
type Semaphore interface {
	Resource
}
