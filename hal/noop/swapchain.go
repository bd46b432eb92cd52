package noop

import (
	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/types"
)

// swapchain cycles through a small fixed ring of in-memory images rather
// than talking to a real presentation surface.
type swapchain struct {
	images  []hal.Image
	format  types.Format
	extent  types.Extent3D
	next    uint32
	presented []uint32
}

// NewSwapchain returns a fixed-size in-memory swapchain of imageCount
// images at the given format and extent.
func NewSwapchain(d hal.Device, imageCount uint32, format types.Format, extent types.Extent3D) (hal.Swapchain, error) {
	sc := &swapchain{format: format, extent: extent}
	for i := uint32(0); i < imageCount; i++ {
		img, err := d.CreateImage(types.ImageDesc{
			ImageType: types.ImageType2D,
			Format:    format,
			Extent:    extent,
			MipLevels: 1,
			ArrayLayers: 1,
			Usage:     types.ImageUsageColorAttachment | types.ImageUsageTransferDst,
		})
		if err != nil {
			return nil, err
		}
		sc.images = append(sc.images, img)
	}
	return sc, nil
}

func (s *swapchain) PeekNextImage() (uint32, error) {
	return s.next, nil
}

func (s *swapchain) AcquireNextImage(acquired hal.Semaphore) (uint32, hal.Image, error) {
	idx := s.next
	s.next = (s.next + 1) % uint32(len(s.images))
	return idx, s.images[idx], nil
}

func (s *swapchain) PresentImage(index uint32, wait []hal.Semaphore) error {
	s.presented = append(s.presented, index)
	return nil
}

// Presented returns the sequence of image indices handed to PresentImage,
// for assertions in tests that exercise the frame controller.
func (s *swapchain) Presented() []uint32 { return s.presented }

func (s *swapchain) ImageFormat() types.Format    { return s.format }
func (s *swapchain) ImageExtent() types.Extent3D  { return s.extent }

func (s *swapchain) Destroy() {
	for _, img := range s.images {
		img.Destroy()
	}
}
