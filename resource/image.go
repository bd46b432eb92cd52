package resource

import (
	"fmt"
	"sync"

	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/types"
)

// Image wraps a hal.Image with a view cache keyed by view descriptor.
// Views may be requested during pass recording from any goroutine doing
// parallel resource construction, so the cache is guarded by a mutex
// rather than assumed single-threaded.
type Image struct {
	hal.Image

	mu    sync.Mutex
	views map[types.ImageViewDesc]hal.ImageView
}

// Wrap adapts an already-created hal.Image into an Image with an empty
// view cache.
func Wrap(img hal.Image) *Image {
	return &Image{Image: img, views: make(map[types.ImageViewDesc]hal.ImageView)}
}

// View returns the cached view for desc, creating and caching it on h if
// this is the first request for that descriptor.
func (img *Image) View(h hal.Device, desc types.ImageViewDesc) (hal.ImageView, error) {
	img.mu.Lock()
	defer img.mu.Unlock()

	if v, ok := img.views[desc]; ok {
		return v, nil
	}
	v, err := h.CreateImageView(img.Image, desc)
	if err != nil {
		return nil, fmt.Errorf("resource: create image view %+v: %w", desc, err)
	}
	img.views[desc] = v
	return v, nil
}

// Destroy releases every cached view before the backing image.
func (img *Image) Destroy() {
	img.mu.Lock()
	defer img.mu.Unlock()
	for _, v := range img.views {
		v.Destroy()
	}
	img.views = nil
	img.Image.Destroy()
}
