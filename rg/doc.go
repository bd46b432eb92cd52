// Package rg is the render graph core: typed resource handles, the pass
// builder used to record a frame's DAG of GPU passes, graph compilation,
// execution, temporal resource carry-over, and the top-level per-frame
// controller.
//
// A Handle identifies a logical resource during recording; a Ref borrows
// a handle at a specific access role inside a pass's render callback. Go
// has no generic trait over "Image or Buffer", so ResourceDesc is
// expressed as a type-set constraint over the two descriptor value types
// and the resource's kind is carried alongside it at runtime (see
// RawHandle.Kind) rather than encoded in the type parameter itself.
package rg
