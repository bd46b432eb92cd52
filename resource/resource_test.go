package resource_test

import (
	"context"
	"testing"

	"github.com/gogpu/rendergraph/device"
	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/hal/noop"
	"github.com/gogpu/rendergraph/resource"
	"github.com/gogpu/rendergraph/types"
)

func TestImageViewIsCached(t *testing.T) {
	h := noop.New(hal.DeviceCapabilities{})
	img, err := h.CreateImage(types.ImageDesc{
		ImageType: types.ImageType2D, Format: types.FormatRGBA8Unorm,
		Extent: types.Extent3D{Width: 64, Height: 64, DepthOrArrayLayers: 1},
		MipLevels: 1, ArrayLayers: 1,
	})
	if err != nil {
		t.Fatalf("CreateImage: %v", err)
	}
	wrapped := resource.Wrap(img)

	desc := types.ImageViewDesc{ViewType: types.ImageViewType2D, AspectMask: types.AspectColor}
	v1, err := wrapped.View(h, desc)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	v2, err := wrapped.View(h, desc)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if v1 != v2 {
		t.Fatalf("expected the second View call to return the cached view")
	}
}

func TestCreateBufferWithDataUploadsBytes(t *testing.T) {
	d, err := device.New(noop.New(hal.DeviceCapabilities{}))
	if err != nil {
		t.Fatalf("device.New: %v", err)
	}
	defer d.Destroy()

	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	buf, err := resource.CreateBufferWithData(context.Background(), d, types.BufferDesc{
		Size: uint64(len(data)), MemoryLocation: types.MemoryLocationGpuOnly, Mapped: true,
	}, data)
	if err != nil {
		t.Fatalf("CreateBufferWithData: %v", err)
	}
	defer buf.Destroy()

	got := buf.MappedPtr()
	if len(got) != len(data) {
		t.Fatalf("expected %d mapped bytes, got %d", len(data), len(got))
	}
	for i := range data {
		if got[i] != data[i] {
			t.Fatalf("byte %d: expected %d, got %d", i, data[i], got[i])
		}
	}
}

func TestScratchBufferRejectsOversizedBuild(t *testing.T) {
	h := noop.New(hal.DeviceCapabilities{})
	scratch, err := resource.NewScratchBuffer(h, 1024)
	if err != nil {
		t.Fatalf("NewScratchBuffer: %v", err)
	}
	defer scratch.Destroy()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for an oversized build request")
		}
	}()
	scratch.CheckBuildSize(2048)
}
