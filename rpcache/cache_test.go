package rpcache_test

import (
	"testing"

	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/hal/noop"
	"github.com/gogpu/rendergraph/rpcache"
	"github.com/gogpu/rendergraph/types"
)

func TestGetOrCreateRenderPassCachesByDesc(t *testing.T) {
	dev := noop.New(hal.DeviceCapabilities{})
	c := rpcache.New(dev)

	desc := types.RenderPassDesc{
		ColorAttachments: []types.ColorAttachmentDesc{{Format: types.FormatRGBA8Unorm, LoadOp: types.LoadOpClear, StoreOp: types.StoreOpStore}},
	}
	rp1, err := c.GetOrCreateRenderPass(desc)
	if err != nil {
		t.Fatalf("GetOrCreateRenderPass: %v", err)
	}
	rp2, err := c.GetOrCreateRenderPass(desc)
	if err != nil {
		t.Fatalf("GetOrCreateRenderPass: %v", err)
	}
	if rp1 != rp2 {
		t.Fatalf("expected identical descriptors to return the cached render pass")
	}

	other := desc
	other.DepthAttachment = &types.DepthAttachmentDesc{Format: types.FormatD32Float, LoadOp: types.LoadOpClear, StoreOp: types.StoreOpDontCare}
	rp3, err := c.GetOrCreateRenderPass(other)
	if err != nil {
		t.Fatalf("GetOrCreateRenderPass: %v", err)
	}
	if rp3 == rp1 {
		t.Fatalf("expected a depth attachment to change the cache key")
	}
}

func TestGetOrCreateFramebufferIsPerRenderPass(t *testing.T) {
	dev := noop.New(hal.DeviceCapabilities{})
	c := rpcache.New(dev)

	descA := types.RenderPassDesc{ColorAttachments: []types.ColorAttachmentDesc{{Format: types.FormatRGBA8Unorm}}}
	descB := types.RenderPassDesc{ColorAttachments: []types.ColorAttachmentDesc{{Format: types.FormatBGRA8Unorm}}}
	rpA, _ := c.GetOrCreateRenderPass(descA)
	rpB, _ := c.GetOrCreateRenderPass(descB)

	key := types.FramebufferKey{
		Width: 1920, Height: 1080,
		Attachments: []types.FramebufferAttachmentKey{{Usage: types.ImageUsageColorAttachment, Format: types.FormatRGBA8Unorm}},
	}

	fb1, err := c.GetOrCreateFramebuffer(key, rpA)
	if err != nil {
		t.Fatalf("GetOrCreateFramebuffer: %v", err)
	}
	fb2, err := c.GetOrCreateFramebuffer(key, rpA)
	if err != nil {
		t.Fatalf("GetOrCreateFramebuffer: %v", err)
	}
	if fb1 != fb2 {
		t.Fatalf("expected identical (key, render pass) to return the cached framebuffer")
	}

	fb3, err := c.GetOrCreateFramebuffer(key, rpB)
	if err != nil {
		t.Fatalf("GetOrCreateFramebuffer: %v", err)
	}
	if fb3 == fb1 {
		t.Fatalf("expected a different render pass to produce a distinct framebuffer")
	}
}
