package dynconst

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/gogpu/rendergraph/device"
	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/types"
)

// DefaultFrameSize is the typical per-frame window size, double-buffered
// across the two in-flight frames.
const DefaultFrameSize = 16 * 1024 * 1024

// MaxBytesPerDispatchUniform is the largest uniform range a single
// dispatch or draw may reference out of the ring.
const MaxBytesPerDispatchUniform = 16 * 1024

// MaxBytesPerDispatchStorage is the largest storage range a single
// dispatch or draw may reference out of the ring.
const MaxBytesPerDispatchStorage = 1 * 1024 * 1024

// Ring is the dynamic constants ring buffer. It is not safe for
// concurrent use without external synchronization — constants are always
// pushed from the single thread recording a frame's passes.
type Ring struct {
	buf         hal.Buffer
	frameSize   uint64
	frameCount  uint32
	activeFrame uint32
	offset      uint64

	minUniformAlign uint64
	minStorageAlign uint64
}

// New allocates a ring of frameSize*frameCount bytes of host-visible,
// mapped memory usable as both a uniform and storage buffer source.
func New(dev *device.Device, frameSize uint64, frameCount uint32) (*Ring, error) {
	if frameSize == 0 {
		frameSize = DefaultFrameSize
	}
	if frameCount == 0 {
		frameCount = 2
	}

	caps := dev.HAL().Capabilities()
	buf, err := dev.HAL().CreateBuffer(types.BufferDesc{
		Size:           frameSize * uint64(frameCount),
		Usage:          types.BufferUsageUniformBufferDynamic | types.BufferUsageStorageBufferDynamic,
		MemoryLocation: types.MemoryLocationCpuToGpu,
		Mapped:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("dynconst: create ring buffer: %w", err)
	}

	return &Ring{
		buf: buf, frameSize: frameSize, frameCount: frameCount,
		minUniformAlign: caps.MinUniformBufferOffsetAlignment,
		minStorageAlign: caps.MinStorageBufferOffsetAlignment,
	}, nil
}

// Buffer returns the backing buffer the whole ring lives in; bind it once
// and address individual pushes via the offsets Push returns.
func (r *Ring) Buffer() hal.Buffer { return r.buf }

// FrameWindowOffset returns the byte offset of the currently active
// frame's window within Buffer().
func (r *Ring) FrameWindowOffset() uint64 {
	return uint64(r.activeFrame) * r.frameSize
}

// Push serializes v and appends it to the current frame's window at a
// rolling offset aligned to max(alignof(T), the device's minimum uniform
// and storage buffer offset alignments). It returns the byte offset
// within the current frame window, usable as a dynamic descriptor
// offset. Push panics if the window has no room left, there is no
// mid-frame reclamation.
func Push[T any](r *Ring, v T) uint32 {
	var zero T
	align := uint64(unsafe.Alignof(zero))
	if r.minUniformAlign > align {
		align = r.minUniformAlign
	}
	if r.minStorageAlign > align {
		align = r.minStorageAlign
	}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
		panic(fmt.Sprintf("dynconst: push: value of type %T is not fixed-size encodable: %v", v, err))
	}
	data := buf.Bytes()

	offset := alignUp(r.offset, align)
	if offset+uint64(len(data)) > r.frameSize {
		panic(fmt.Sprintf("dynconst: push overflowed the %d-byte frame window at offset %d", r.frameSize, offset))
	}

	dst := r.buf.MappedPtr()
	base := r.FrameWindowOffset() + offset
	copy(dst[base:base+uint64(len(data))], data)

	r.offset = offset + uint64(len(data))
	return uint32(offset)
}

// AdvanceFrame rotates the ring to the next frame's window and resets the
// rolling offset, mirroring the device wrapper's frame-slot rotation.
func (r *Ring) AdvanceFrame() {
	r.activeFrame = (r.activeFrame + 1) % r.frameCount
	r.offset = 0
}

// Destroy releases the backing buffer.
func (r *Ring) Destroy() {
	r.buf.Destroy()
}

func alignUp(offset, align uint64) uint64 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}
