// Package reflection merges per-stage shader reflection into the
// descriptor-set layouts a pipeline needs. It does not parse SPIR-V
// itself — that happens in an external shader compiler — it only
// consumes the hal.ShaderReflection structure the compiler already
// produced.
package reflection
