package transient_test

import (
	"testing"

	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/hal/noop"
	"github.com/gogpu/rendergraph/transient"
	"github.com/gogpu/rendergraph/types"
)

func TestAcquireImageReusesRetiredResource(t *testing.T) {
	dev := noop.New(hal.DeviceCapabilities{})
	c := transient.New(dev)

	desc := types.ImageDesc{ImageType: types.ImageType2D, Format: types.FormatRGBA8Unorm, Extent: types.Extent3D{Width: 1920, Height: 1080, DepthOrArrayLayers: 1}}

	img1, err := c.AcquireImage(desc)
	if err != nil {
		t.Fatalf("AcquireImage: %v", err)
	}
	c.RetireImage(desc, img1)

	img2, err := c.AcquireImage(desc)
	if err != nil {
		t.Fatalf("AcquireImage: %v", err)
	}
	if img2 != img1 {
		t.Fatalf("expected a retired image to be reused for an identical descriptor")
	}
}

func TestAcquireImageDistinctDescNoReuse(t *testing.T) {
	dev := noop.New(hal.DeviceCapabilities{})
	c := transient.New(dev)

	descA := types.ImageDesc{ImageType: types.ImageType2D, Format: types.FormatRGBA8Unorm, Extent: types.Extent3D{Width: 1920, Height: 1080, DepthOrArrayLayers: 1}}
	descB := descA
	descB.Extent.Width = 1280

	imgA, _ := c.AcquireImage(descA)
	c.RetireImage(descA, imgA)

	imgB, err := c.AcquireImage(descB)
	if err != nil {
		t.Fatalf("AcquireImage: %v", err)
	}
	if imgB == imgA {
		t.Fatalf("expected a different descriptor to allocate a fresh image")
	}
}

func TestAcquireBufferReusesRetiredResource(t *testing.T) {
	dev := noop.New(hal.DeviceCapabilities{})
	c := transient.New(dev)

	desc := types.BufferDesc{Size: 4096, Usage: types.BufferUsageStorageBuffer}
	buf1, err := c.AcquireBuffer(desc)
	if err != nil {
		t.Fatalf("AcquireBuffer: %v", err)
	}
	c.RetireBuffer(desc, buf1)

	buf2, err := c.AcquireBuffer(desc)
	if err != nil {
		t.Fatalf("AcquireBuffer: %v", err)
	}
	if buf2 != buf1 {
		t.Fatalf("expected a retired buffer to be reused for an identical descriptor")
	}
}
