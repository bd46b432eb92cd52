package transient

import (
	"sync"

	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/types"
)

// Cache holds idle transient images and buffers, keyed by the exact
// descriptor a future Create call would ask for. Imported resources never
// enter the cache; their lifetime belongs to whatever created them.
type Cache struct {
	dev hal.Device

	mu      sync.Mutex
	images  map[types.ImageDesc][]hal.Image
	buffers map[types.BufferDesc][]hal.Buffer
}

// New returns an empty transient cache bound to dev.
func New(dev hal.Device) *Cache {
	return &Cache{
		dev:     dev,
		images:  make(map[types.ImageDesc][]hal.Image),
		buffers: make(map[types.BufferDesc][]hal.Buffer),
	}
}

// AcquireImage pops an idle image matching desc if one exists, otherwise
// creates a fresh one via the underlying device.
func (c *Cache) AcquireImage(desc types.ImageDesc) (hal.Image, error) {
	c.mu.Lock()
	stack := c.images[desc]
	if n := len(stack); n > 0 {
		img := stack[n-1]
		c.images[desc] = stack[:n-1]
		c.mu.Unlock()
		return img, nil
	}
	c.mu.Unlock()
	hal.Logger().Debug("transient: allocating new image", "extent", desc.Extent, "format", desc.Format)
	return c.dev.CreateImage(desc)
}

// AcquireBuffer pops an idle buffer matching desc if one exists, otherwise
// creates a fresh one via the underlying device.
func (c *Cache) AcquireBuffer(desc types.BufferDesc) (hal.Buffer, error) {
	c.mu.Lock()
	stack := c.buffers[desc]
	if n := len(stack); n > 0 {
		buf := stack[n-1]
		c.buffers[desc] = stack[:n-1]
		c.mu.Unlock()
		return buf, nil
	}
	c.mu.Unlock()
	hal.Logger().Debug("transient: allocating new buffer", "size", desc.Size)
	return c.dev.CreateBuffer(desc)
}

// RetireImage returns img to the pool under desc so a later frame's
// AcquireImage with the same descriptor can reuse it instead of
// allocating. Callers must only retire images owned by this cache's
// device, never an imported or exported resource.
func (c *Cache) RetireImage(desc types.ImageDesc, img hal.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.images[desc] = append(c.images[desc], img)
}

// RetireBuffer returns buf to the pool under desc.
func (c *Cache) RetireBuffer(desc types.BufferDesc, buf hal.Buffer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buffers[desc] = append(c.buffers[desc], buf)
}

// Destroy tears down every idle resource still held by the cache. Live,
// in-flight resources are the caller's responsibility since Destroy has
// no way to know whether they are still referenced by a recorded graph.
func (c *Cache) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, stack := range c.images {
		for _, img := range stack {
			img.Destroy()
		}
	}
	for _, stack := range c.buffers {
		for _, buf := range stack {
			buf.Destroy()
		}
	}
	c.images = make(map[types.ImageDesc][]hal.Image)
	c.buffers = make(map[types.BufferDesc][]hal.Buffer)
}
