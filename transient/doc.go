// Package transient implements the 4.6 transient resource cache: two
// multimaps, keyed by types.ImageDesc and types.BufferDesc respectively,
// each holding a stack of idle resources matching that exact descriptor.
// Graph execution pops a resource matching a pass's Create request
// instead of allocating fresh memory every frame, and pushes an owned
// resource back once nothing in the frame still references it.
package transient
