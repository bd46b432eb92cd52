package hal

import "github.com/gogpu/rendergraph/types"

// Swapchain is the external presentation collaborator consulted through
// this boundary: the render graph core owns no window or surface, it
// only imports whichever image the swapchain hands back as a graph
// resource for the duration of one frame.
type Swapchain interface {
	// PeekNextImage returns the index of the image that AcquireNextImage
	// would currently return, without blocking or consuming a semaphore.
	// The renderer checks it against the index AcquireNextImage later
	// returns.
	PeekNextImage() (index uint32, err error)

	// AcquireNextImage blocks until an image is available for rendering
	// and signals acquired once it is safe to render into. Returns
	// ErrSwapchainOutOfDate if the surface has been resized.
	AcquireNextImage(acquired Semaphore) (index uint32, image Image, err error)

	// PresentImage queues the given image index for presentation once
	// every semaphore in wait has signaled.
	PresentImage(index uint32, wait []Semaphore) error

	ImageFormat() types.Format
	ImageExtent() types.Extent3D

	Destroy()
}
