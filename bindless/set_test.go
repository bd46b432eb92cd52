package bindless_test

import (
	"testing"

	"github.com/gogpu/rendergraph/bindless"
	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/hal/noop"
	"github.com/gogpu/rendergraph/types"
)

func TestAddImageAssignsIncreasingSlots(t *testing.T) {
	dev := noop.New(hal.DeviceCapabilities{})
	set, err := bindless.New(dev, 16)
	if err != nil {
		t.Fatalf("bindless.New: %v", err)
	}

	view, err := dev.CreateImageView(mustImage(t, dev), types.ImageViewDesc{})
	if err != nil {
		t.Fatalf("CreateImageView: %v", err)
	}
	sampler, err := dev.CreateSampler(types.SamplerDesc{})
	if err != nil {
		t.Fatalf("CreateSampler: %v", err)
	}

	slot0 := set.AddImage(view, sampler)
	slot1 := set.AddImage(view, sampler)
	if slot0 != 0 || slot1 != 1 {
		t.Fatalf("expected slots 0 then 1, got %d then %d", slot0, slot1)
	}
}

func TestAddImagePanicsPastCapacity(t *testing.T) {
	dev := noop.New(hal.DeviceCapabilities{})
	set, err := bindless.New(dev, 1)
	if err != nil {
		t.Fatalf("bindless.New: %v", err)
	}
	view, _ := dev.CreateImageView(mustImage(t, dev), types.ImageViewDesc{})
	sampler, _ := dev.CreateSampler(types.SamplerDesc{})

	set.AddImage(view, sampler)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected AddImage to panic once capacity is exhausted")
		}
	}()
	set.AddImage(view, sampler)
}

func mustImage(t *testing.T, dev hal.Device) hal.Image {
	t.Helper()
	img, err := dev.CreateImage(types.ImageDesc{ImageType: types.ImageType2D, Format: types.FormatRGBA8Unorm, Extent: types.Extent3D{Width: 1, Height: 1, DepthOrArrayLayers: 1}})
	if err != nil {
		t.Fatalf("CreateImage: %v", err)
	}
	return img
}
