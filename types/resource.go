package types

// Extent3D is a 3D size in texels.
type Extent3D struct {
	Width              uint32
	Height             uint32
	DepthOrArrayLayers uint32
}

// Origin3D is a 3D offset in texels.
type Origin3D struct {
	X, Y, Z uint32
}

// Color is a floating point RGBA color, used for clear values.
type Color struct {
	R, G, B, A float32
}

// ImageDesc describes an image resource. It is a plain, hashable value
// type: two ImageDescs that compare equal describe interchangeable images,
// which is what lets the transient cache key on it directly.
//
// Usage may be left at its zero value when a pass first creates the image;
// graph compilation (see the graph package) fills it in from the access
// types every pass in the frame declares against the image.
type ImageDesc struct {
	ImageType   ImageType
	Format      Format
	Extent      Extent3D
	MipLevels   uint32
	ArrayLayers uint32
	Usage       ImageUsage
	Flags       ImageCreateFlags
	Tiling      Tiling
}

// WithUsage returns a copy of the descriptor with Usage replaced. Graph
// compilation never mutates a recorded ImageDesc in place because the
// same desc value may still be referenced by the pass list.
func (d ImageDesc) WithUsage(usage ImageUsage) ImageDesc {
	d.Usage = usage
	return d
}

// ImageViewDesc describes a view into an image. Views are cached on the
// owning image, keyed by this descriptor.
type ImageViewDesc struct {
	ViewType       ImageViewType
	Format         Format // zero value means "inherit from image"
	AspectMask     Aspect
	BaseMipLevel   uint32
	LevelCount     uint32 // 0 means "remaining levels"
	BaseArrayLayer uint32
	LayerCount     uint32 // 0 means "remaining layers"
}

// BufferDesc describes a buffer resource. Like ImageDesc, Usage may start
// empty and is inferred during graph compilation.
type BufferDesc struct {
	Size           uint64
	Usage          BufferUsage
	MemoryLocation MemoryLocation
	Mapped         bool
}

// WithUsage returns a copy of the descriptor with Usage replaced.
func (d BufferDesc) WithUsage(usage BufferUsage) BufferDesc {
	d.Usage = usage
	return d
}

// AccelerationStructureKind distinguishes a bottom-level from a top-level
// acceleration structure.
type AccelerationStructureKind uint8

const (
	AccelerationStructureBLAS AccelerationStructureKind = iota
	AccelerationStructureTLAS
)

// RayTracingAccelerationDesc is a unit descriptor: the graph never builds
// acceleration structures itself, it only imports ones built by the ray
// tracing layer above the core. No function in this module takes it;
// ImportAccelerationStructure takes the kind, buffer and address instead.
type RayTracingAccelerationDesc struct {
	Kind AccelerationStructureKind
}
