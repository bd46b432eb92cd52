// Package resource wraps hal.Image/hal.Buffer/hal.AccelerationStructure
// with the bookkeeping the render graph needs on top of the raw HAL
// handle: a per-image view cache keyed by view descriptor, and staged
// upload helpers for buffers created with initial data.
package resource
