// Package bindless implements the 4.12 bindless descriptor set: a single
// process-wide descriptor set allocated once at device init, with three
// bindings (mesh-metadata storage buffer, vertex-stream storage buffer,
// and a runtime-sized UpdateAfterBind array of sampled images). Writers
// register one resource at a time and receive a stable slot index that
// shaders index into directly.
package bindless
