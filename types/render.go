package types

// LoadOp describes the load operation for a render pass attachment.
type LoadOp uint8

const (
	LoadOpLoad LoadOp = iota
	LoadOpClear
	LoadOpDontCare
)

// StoreOp describes the store operation for a render pass attachment.
type StoreOp uint8

const (
	StoreOpStore StoreOp = iota
	StoreOpDontCare
)

// ColorAttachmentDesc describes one color attachment of a render pass, used
// both to build the render pass cache key and to configure a raster
// pipeline's blend state count.
type ColorAttachmentDesc struct {
	Format      Format
	LoadOp      LoadOp
	StoreOp     StoreOp
	SampleCount uint32
}

// DepthAttachmentDesc describes the optional depth/stencil attachment.
type DepthAttachmentDesc struct {
	Format      Format
	LoadOp      LoadOp
	StoreOp     StoreOp
	SampleCount uint32
	ReadOnly    bool
}

// RenderPassDesc is the render-pass cache key: an ordered list of color
// attachments plus an optional depth attachment. Subpass dependencies are
// implicit, there is exactly one subpass.
type RenderPassDesc struct {
	ColorAttachments []ColorAttachmentDesc
	DepthAttachment  *DepthAttachmentDesc
}

// FramebufferKey is the imageless-framebuffer cache key: dimensions plus
// the usage+flags of every attachment, deliberately excluding the
// concrete image views since those are bound per-frame at
// begin-render-pass time via attachment image infos.
type FramebufferKey struct {
	Width, Height uint32
	Attachments   []FramebufferAttachmentKey
}

// FramebufferAttachmentKey is one entry of a FramebufferKey.
type FramebufferAttachmentKey struct {
	Usage ImageUsage
	Flags ImageCreateFlags
	Format Format
}

// PrimitiveTopology describes how raster pipeline input assembly groups
// vertices into primitives.
type PrimitiveTopology uint8

const (
	PrimitiveTopologyTriangleList PrimitiveTopology = iota
	PrimitiveTopologyTriangleStrip
	PrimitiveTopologyLineList
	PrimitiveTopologyPointList
)

// FrontFace describes front-face winding order.
type FrontFace uint8

const (
	FrontFaceCounterClockwise FrontFace = iota
	FrontFaceClockwise
)

// CullMode describes which triangle faces are culled.
type CullMode uint8

const (
	CullModeNone CullMode = iota
	CullModeBack
	CullModeFront
)

// CompareOp describes a depth/stencil comparison function.
type CompareOp uint8

const (
	CompareOpNever CompareOp = iota
	CompareOpLess
	CompareOpEqual
	CompareOpLessOrEqual
	CompareOpGreater
	CompareOpNotEqual
	CompareOpGreaterOrEqual
	CompareOpAlways
)
