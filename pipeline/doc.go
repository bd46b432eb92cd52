// Package pipeline implements the 4.4 pipeline cache: compute, raster,
// and ray tracing pipelines keyed by a content hash of their shader bytes
// plus any descriptor-set-layout overrides, so that two identical
// pipeline descriptions submitted in different frames return the same
// cached handle.
package pipeline
