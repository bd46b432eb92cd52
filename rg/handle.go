package rg

import "github.com/gogpu/rendergraph/types"

// ResourceKind distinguishes which resource table a RawHandle indexes
// into.
type ResourceKind uint8

const (
	ResourceKindImage ResourceKind = iota
	ResourceKindBuffer
)

// RawHandle is the untyped, versioned resource identity every Handle and
// Ref carries underneath. version is incremented on every write so
// that a Ref obtained after a write carries a strictly later version than
// one obtained before it.
type RawHandle struct {
	ID      uint32
	Version uint32
	Kind    ResourceKind
}

// ResourceDesc is the closed set of descriptor types a graph resource may
// be created from.
type ResourceDesc interface {
	types.ImageDesc | types.BufferDesc
}

func kindOf[D ResourceDesc](desc D) ResourceKind {
	switch any(desc).(type) {
	case types.ImageDesc:
		return ResourceKindImage
	case types.BufferDesc:
		return ResourceKindBuffer
	default:
		panic("rg: unsupported resource descriptor type")
	}
}

// Handle is an owned logical resource during recording: it carries
// its creation descriptor so the builder can reason about dimensions and
// format without consulting compiled state.
type Handle[D ResourceDesc] struct {
	Raw  RawHandle
	Desc D
}

// ViewType is the access role a Ref was borrowed at.
type ViewType uint8

const (
	// ViewSrv is a shader-resource (read-only) view.
	ViewSrv ViewType = iota
	// ViewUav is an unordered-access (read-write) view.
	ViewUav
	// ViewRt is a render-target (raster-write) view.
	ViewRt
)

// Ref is a borrow of a handle at a specific access role, passed into
// a pass's render callback.
type Ref[D ResourceDesc] struct {
	Raw  RawHandle
	View ViewType
	Desc D
}

// ExportedHandle is a promise that a resource will be available after
// execute at a caller-chosen access type.
type ExportedHandle[D ResourceDesc] struct {
	Raw RawHandle
}
