package resource

import (
	"context"
	"fmt"

	"github.com/gogpu/rendergraph/device"
	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/types"
)

// CreateBufferWithData creates a buffer from desc (with TransferDst usage
// added) and uploads data into it through the device's setup command
// buffer.
func CreateBufferWithData(ctx context.Context, d *device.Device, desc types.BufferDesc, data []byte) (hal.Buffer, error) {
	if uint64(len(data)) > desc.Size {
		return nil, fmt.Errorf("resource: initial data (%d bytes) exceeds buffer size (%d bytes)", len(data), desc.Size)
	}

	dst, err := d.HAL().CreateBuffer(desc.WithUsage(desc.Usage | types.BufferUsageTransferDst))
	if err != nil {
		return nil, fmt.Errorf("resource: create destination buffer: %w", err)
	}

	if len(data) == 0 {
		return dst, nil
	}

	staging, err := d.HAL().CreateBuffer(types.BufferDesc{
		Size:           uint64(len(data)),
		Usage:          types.BufferUsageTransferSrc,
		MemoryLocation: types.MemoryLocationCpuToGpu,
		Mapped:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("resource: create staging buffer: %w", err)
	}
	defer staging.Destroy()

	ptr := staging.MappedPtr()
	if ptr == nil {
		return nil, fmt.Errorf("resource: staging buffer has no host mapping")
	}
	copy(ptr, data)

	err = d.WithSetupCB(ctx, func(cb hal.CommandEncoder) error {
		cb.CopyBuffer(staging, dst, []hal.BufferCopyRegion{{Size: uint64(len(data))}})
		return nil
	})
	if err != nil {
		dst.Destroy()
		return nil, fmt.Errorf("resource: upload via setup command buffer: %w", err)
	}

	return dst, nil
}
