// Package noop implements the hal package's interfaces entirely in host
// memory. It performs no real GPU work and never fails on out-of-memory
// or device-lost conditions; its purpose is to let the render graph, the
// pipeline cache, and the transient/temporal resource systems be tested
// and exercised without a real driver.
//
// Buffers created with a host-visible memory location get a real backing
// []byte so MappedPtr and the dynamic constants ring work end to end.
// Everything else (images, pipelines, descriptor sets) is a bookkeeping
// stub: enough state to answer the interface's queries, nothing more.
package noop
