package rpcache

import (
	"fmt"
	"sync"

	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/types"
)

// Cache caches hal.RenderPass by types.RenderPassDesc and hal.Framebuffer
// by (types.FramebufferKey, render pass) pairs. Both descriptors carry
// slices, so they aren't directly usable as Go map keys; renderPassKey and
// framebufferKey fold them into comparable strings instead.
type Cache struct {
	dev hal.Device

	mu           sync.Mutex
	renderPasses map[string]hal.RenderPass
	framebuffers map[hal.RenderPass]map[string]hal.Framebuffer
}

// New returns an empty render pass / framebuffer cache bound to dev.
func New(dev hal.Device) *Cache {
	return &Cache{
		dev:          dev,
		renderPasses: make(map[string]hal.RenderPass),
		framebuffers: make(map[hal.RenderPass]map[string]hal.Framebuffer),
	}
}

// GetOrCreateRenderPass returns the cached render pass for desc, creating
// it on first use. A render pass has exactly one subpass; color
// attachments transition ColorAttachmentOptimal->ColorAttachmentOptimal
// and a present depth attachment uses DepthAttachmentStencilReadOnlyOptimal
// when ReadOnly is set, matching the layouts the barrier layer already
// transitions resources to before a raster pass begins.
func (c *Cache) GetOrCreateRenderPass(desc types.RenderPassDesc) (hal.RenderPass, error) {
	key := renderPassKey(desc)

	c.mu.Lock()
	if rp, ok := c.renderPasses[key]; ok {
		c.mu.Unlock()
		return rp, nil
	}
	c.mu.Unlock()

	rp, err := c.dev.CreateRenderPass(desc)
	if err != nil {
		return nil, fmt.Errorf("rpcache: create render pass: %w", err)
	}

	c.mu.Lock()
	c.renderPasses[key] = rp
	c.mu.Unlock()
	return rp, nil
}

// GetOrCreateFramebuffer returns the cached imageless framebuffer for
// (key, renderPass), creating it on first use. The framebuffer is
// imageless: key carries only dimensions and per-attachment usage/format,
// never concrete image views, which are supplied per-pass at
// BeginRenderPass time.
func (c *Cache) GetOrCreateFramebuffer(key types.FramebufferKey, renderPass hal.RenderPass) (hal.Framebuffer, error) {
	k := framebufferKey(key)

	c.mu.Lock()
	byPass, ok := c.framebuffers[renderPass]
	if ok {
		if fb, ok := byPass[k]; ok {
			c.mu.Unlock()
			return fb, nil
		}
	}
	c.mu.Unlock()

	fb, err := c.dev.CreateFramebuffer(key, renderPass)
	if err != nil {
		return nil, fmt.Errorf("rpcache: create framebuffer: %w", err)
	}

	c.mu.Lock()
	if c.framebuffers[renderPass] == nil {
		c.framebuffers[renderPass] = make(map[string]hal.Framebuffer)
	}
	c.framebuffers[renderPass][k] = fb
	c.mu.Unlock()
	return fb, nil
}

func renderPassKey(desc types.RenderPassDesc) string {
	s := fmt.Sprintf("color=%+v", desc.ColorAttachments)
	if desc.DepthAttachment != nil {
		s += fmt.Sprintf("|depth=%+v", *desc.DepthAttachment)
	}
	return s
}

func framebufferKey(key types.FramebufferKey) string {
	return fmt.Sprintf("%dx%d|%+v", key.Width, key.Height, key.Attachments)
}
