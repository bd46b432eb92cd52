package resource

import (
	"fmt"

	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/types"
)

// DefaultScratchSize is the pre-allocated size of the shared acceleration
// structure build scratch buffer.
const DefaultScratchSize = 144 * 1024 * 1024

// ScratchBuffer is the single shared buffer every acceleration-structure
// build call borrows. It is never resized at runtime; a build whose
// reported memory requirement exceeds it is a configuration error.
type ScratchBuffer struct {
	buf  hal.Buffer
	size uint64
}

// NewScratchBuffer allocates a GPU-only scratch buffer of size bytes,
// usable as both acceleration-structure build input and for its device
// address.
func NewScratchBuffer(h hal.Device, size uint64) (*ScratchBuffer, error) {
	buf, err := h.CreateBuffer(types.BufferDesc{
		Size:           size,
		Usage:          types.BufferUsageAccelerationStructureBuildInput | types.BufferUsageShaderDeviceAddress,
		MemoryLocation: types.MemoryLocationGpuOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("resource: create scratch buffer: %w", err)
	}
	return &ScratchBuffer{buf: buf, size: size}, nil
}

// Buffer returns the underlying scratch buffer.
func (s *ScratchBuffer) Buffer() hal.Buffer { return s.buf }

// CheckBuildSize panics if requiredSize exceeds the scratch buffer's
// capacity.
func (s *ScratchBuffer) CheckBuildSize(requiredSize uint64) {
	if requiredSize > s.size {
		panic(fmt.Sprintf("resource: acceleration structure build requires %d bytes of scratch, only %d available", requiredSize, s.size))
	}
}

func (s *ScratchBuffer) Destroy() {
	s.buf.Destroy()
}

// AccelerationStructure wraps an imported hal.AccelerationStructure. The
// render graph never builds one itself; this wrapper exists only to
// carry the same Destroy-ownership style as Image and Buffer.
type AccelerationStructure struct {
	hal.AccelerationStructure
}

// WrapAccelerationStructure adapts an already-imported hal.AccelerationStructure.
func WrapAccelerationStructure(as hal.AccelerationStructure) *AccelerationStructure {
	return &AccelerationStructure{AccelerationStructure: as}
}
