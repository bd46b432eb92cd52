// Package types holds the value types shared across the render graph, the
// device layer, and the hardware abstraction layer: formats, usage bit
// sets, extents, and the closed access-type enumeration that drives both
// barrier emission and usage-flag inference.
//
// Everything here is a plain value type: comparable, hashable where the
// graph needs it for descriptor-keyed caching, and free of any handle to a
// live GPU object.
package types
