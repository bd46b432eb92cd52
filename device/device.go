package device

import (
	"context"
	"fmt"
	"sync"

	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/types"
)

const crashMarkerSize = 4

// Frame is one of the two double-buffered per-frame state slots:
// its own main and presentation command encoders, their submit-done
// fences, and a queue of descriptor pools to release once those fences
// have signaled.
type Frame struct {
	MainCB         hal.CommandEncoder
	PresentationCB hal.CommandEncoder
	MainFence      hal.Fence
	PresentationFence hal.Fence

	pendingRelease []hal.DescriptorPool
	retained       bool
}

// Device wraps a hal.Device with the frame-lifecycle state the render
// graph core assumes exists. It is safe for concurrent use: the
// allocator-adjacent state (release queues, setup command buffer) sits
// behind a fine-grained mutex rather than one global lock.
type Device struct {
	hal hal.Device

	mu        sync.Mutex
	frames    [2]*Frame
	activeIdx int

	samplers map[types.SamplerDesc]hal.Sampler

	setupMu  sync.Mutex
	setupCB  hal.CommandEncoder

	crashMarker     hal.Buffer
	crashMarkerNext uint32
}

// New wraps h, allocates the two frame slots, the immutable sampler
// cross-product, and the crash-marker buffer.
func New(h hal.Device) (*Device, error) {
	d := &Device{hal: h, samplers: make(map[types.SamplerDesc]hal.Sampler)}

	for i := range d.frames {
		f, err := d.newFrame()
		if err != nil {
			return nil, fmt.Errorf("device: allocate frame slot %d: %w", i, err)
		}
		d.frames[i] = f
	}

	if err := d.createImmutableSamplers(); err != nil {
		return nil, err
	}

	marker, err := h.CreateBuffer(types.BufferDesc{
		Size:           crashMarkerSize * 64,
		Usage:          types.BufferUsageTransferDst,
		MemoryLocation: types.MemoryLocationGpuToCpu,
		Mapped:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("device: create crash marker buffer: %w", err)
	}
	d.crashMarker = marker

	return d, nil
}

func (d *Device) newFrame() (*Frame, error) {
	mainCB, err := d.hal.CreateCommandEncoder()
	if err != nil {
		return nil, err
	}
	presCB, err := d.hal.CreateCommandEncoder()
	if err != nil {
		return nil, err
	}
	mainFence, err := d.hal.CreateFence(true)
	if err != nil {
		return nil, err
	}
	presFence, err := d.hal.CreateFence(true)
	if err != nil {
		return nil, err
	}
	return &Frame{MainCB: mainCB, PresentationCB: presCB, MainFence: mainFence, PresentationFence: presFence}, nil
}

// createImmutableSamplers builds the {Nearest,Linear} x {Nearest,Linear}
// x {Repeat,ClampToEdge,MirroredRepeat,ClampToBorder} cross-product, with
// anisotropy enabled whenever the mag filter is Linear.
func (d *Device) createImmutableSamplers() error {
	filters := []types.Filter{types.FilterNearest, types.FilterLinear}
	addressModes := []types.AddressMode{
		types.AddressModeRepeat, types.AddressModeClampToEdge,
		types.AddressModeMirroredRepeat, types.AddressModeClampToBorder,
	}
	for _, mag := range filters {
		for _, mip := range filters {
			for _, addr := range addressModes {
				desc := types.SamplerDesc{
					MagFilter: mag, MinFilter: mag, MipFilter: mip,
					AddressU: addr, AddressV: addr, AddressW: addr,
					Anisotropy: mag == types.FilterLinear,
				}
				s, err := d.hal.CreateSampler(desc)
				if err != nil {
					return fmt.Errorf("device: create immutable sampler %+v: %w", desc, err)
				}
				d.samplers[desc] = s
			}
		}
	}
	return nil
}

// Sampler returns the immutable sampler matching desc, built once at
// device creation. It panics if desc is not part of the cross-product
// created by createImmutableSamplers — callers only ever request
// combinations reflection derives from a shader's sampler bindings.
func (d *Device) Sampler(desc types.SamplerDesc) hal.Sampler {
	s, ok := d.samplers[desc]
	if !ok {
		panic(fmt.Sprintf("device: no immutable sampler for %+v", desc))
	}
	return s
}

// HAL returns the underlying hal.Device, for packages (pipeline,
// resource, rg) that need direct resource-creation access.
func (d *Device) HAL() hal.Device { return d.hal }

// BeginFrame waits on both fences of the slot about to be reused, drains
// its pending-release queue, and returns it. It panics if that slot's
// previous Frame reference was retained past its matching FinishFrame.
func (d *Device) BeginFrame() (*Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	f := d.frames[d.activeIdx]
	if f.retained {
		panic("device: BeginFrame called while the previous frame's slot is still retained")
	}

	if err := d.hal.WaitForFence(f.MainFence, ^uint64(0)); err != nil {
		return nil, fmt.Errorf("device: wait main fence: %w", err)
	}
	if err := d.hal.WaitForFence(f.PresentationFence, ^uint64(0)); err != nil {
		return nil, fmt.Errorf("device: wait presentation fence: %w", err)
	}

	if n := len(f.pendingRelease); n > 0 {
		hal.Logger().Debug("device: releasing deferred descriptor pools", "count", n, "slot", d.activeIdx)
		if n > 4 {
			hal.Logger().Warn("device: deferred release queue grew unusually large", "count", n, "slot", d.activeIdx)
		}
	}
	for _, pool := range f.pendingRelease {
		pool.Destroy()
	}
	f.pendingRelease = f.pendingRelease[:0]

	f.retained = true
	hal.Logger().Info("device: begin frame", "slot", d.activeIdx)
	return f, nil
}

// DeferRelease enqueues pool onto the active frame's release queue; it is
// destroyed the next time that slot is reused, after its fences signal.
func (d *Device) DeferRelease(f *Frame, pool hal.DescriptorPool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	f.pendingRelease = append(f.pendingRelease, pool)
}

// FinishFrame releases the caller's reference to f and swaps the active
// slot.
func (d *Device) FinishFrame(f *Frame) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if f != d.frames[d.activeIdx] {
		panic("device: FinishFrame called with a frame that isn't the active slot")
	}
	f.retained = false
	hal.Logger().Info("device: finish frame", "slot", d.activeIdx)
	d.activeIdx = (d.activeIdx + 1) % len(d.frames)
}

// WithSetupCB begins the one-time-submit setup command buffer, runs fn,
// submits, and waits for the device to go idle before returning. Calls
// are serialized by setupMu so concurrent uploads don't interleave their
// commands into the same encoder.
func (d *Device) WithSetupCB(ctx context.Context, fn func(hal.CommandEncoder) error) error {
	d.setupMu.Lock()
	defer d.setupMu.Unlock()

	cb, err := d.hal.CreateCommandEncoder()
	if err != nil {
		return fmt.Errorf("device: create setup command encoder: %w", err)
	}
	if err := fn(cb); err != nil {
		return err
	}
	if err := cb.Finish(); err != nil {
		return fmt.Errorf("device: finish setup command encoder: %w", err)
	}
	if err := d.hal.Queue().Submit(cb, nil, nil, nil); err != nil {
		return fmt.Errorf("device: submit setup command encoder: %w", err)
	}
	if err := d.hal.WaitIdle(); err != nil {
		return fmt.Errorf("device: wait idle after setup submission: %w", err)
	}
	return nil
}

// WriteCrashMarker stamps a monotonically increasing slot of the crash
// marker buffer with label's hash so the last value read back after a
// DEVICE_LOST identifies the last pass to begin or end. It writes through
// cb.FillBuffer rather than directly, so it must be invoked while
// recording cb.
func (d *Device) WriteCrashMarker(cb hal.CommandEncoder, label string) {
	slots := uint32(d.crashMarker.Desc().Size / crashMarkerSize)
	slot := d.crashMarkerNext
	d.crashMarkerNext = (d.crashMarkerNext + 1) % slots
	cb.FillBuffer(d.crashMarker, uint64(slot)*crashMarkerSize, crashMarkerSize, fnv32(label))
}

// LastCrashMarker reads back the crash marker buffer's most recently
// written slot value, for DEVICE_LOST diagnostics.
func (d *Device) LastCrashMarker() uint32 {
	ptr := d.crashMarker.MappedPtr()
	if ptr == nil || len(ptr) < crashMarkerSize {
		return 0
	}
	slot := d.crashMarkerNext
	if slot == 0 {
		slot = uint32(len(ptr)) / crashMarkerSize
	}
	slot--
	off := slot * crashMarkerSize
	return uint32(ptr[off]) | uint32(ptr[off+1])<<8 | uint32(ptr[off+2])<<16 | uint32(ptr[off+3])<<24
}

func fnv32(s string) uint32 {
	const offset32 = 2166136261
	const prime32 = 16777619
	h := uint32(offset32)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime32
	}
	return h
}

// Destroy tears down both frame slots, the immutable samplers, the crash
// marker buffer, and the underlying HAL device.
func (d *Device) Destroy() {
	for _, f := range d.frames {
		f.MainCB.Finish()
		f.PresentationCB.Finish()
		f.MainFence.Destroy()
		f.PresentationFence.Destroy()
		for _, pool := range f.pendingRelease {
			pool.Destroy()
		}
	}
	for _, s := range d.samplers {
		s.Destroy()
	}
	d.crashMarker.Destroy()
	d.hal.Destroy()
}
