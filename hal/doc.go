// Package hal is the boundary between the render graph core and a
// Vulkan-class explicit graphics API: binary SPIR-V shaders, descriptor
// sets, pipeline barriers, acceleration structures, and timeline/fence
// synchronization.
//
// The HAL is deliberately thin. It does not validate graph-level
// invariants (those panic inside the graph package itself, at record
// time); it exposes just enough of the underlying API for the device
// wrapper, pipeline cache, and render graph executor to do their jobs.
// Concrete backends (a real Vulkan driver, or the in-memory reference
// backend in hal/noop) implement these interfaces.
//
// # Resource ownership
//
// Every resource type embeds Resource, which carries a single Destroy
// method. The HAL does not refcount; callers (the device wrapper and the
// transient/temporal caches) decide when a resource's last use has
// passed.
//
// # Error handling
//
// Only unrecoverable conditions are returned as errors: device loss,
// out-of-memory, timeouts. Programmer errors (wrong usage flags, mismatched
// descriptor counts) are undefined behavior at this layer — validation
// lives in the render graph, above the HAL boundary.
package hal
