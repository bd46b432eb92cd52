package device_test

import (
	"context"
	"testing"

	"github.com/gogpu/rendergraph/device"
	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/hal/noop"
	"github.com/gogpu/rendergraph/types"
)

func newTestDevice(t *testing.T) *device.Device {
	t.Helper()
	d, err := device.New(noop.New(hal.DeviceCapabilities{}))
	if err != nil {
		t.Fatalf("device.New: %v", err)
	}
	t.Cleanup(d.Destroy)
	return d
}

func TestBeginFrameFinishFrameSwapsSlots(t *testing.T) {
	d := newTestDevice(t)

	f0, err := d.BeginFrame()
	if err != nil {
		t.Fatalf("BeginFrame: %v", err)
	}
	d.FinishFrame(f0)

	f1, err := d.BeginFrame()
	if err != nil {
		t.Fatalf("BeginFrame: %v", err)
	}
	if f1 == f0 {
		t.Fatalf("expected FinishFrame to swap to the other slot")
	}
	d.FinishFrame(f1)

	f2, err := d.BeginFrame()
	if err != nil {
		t.Fatalf("BeginFrame: %v", err)
	}
	if f2 != f0 {
		t.Fatalf("expected slot to cycle back after two FinishFrame calls")
	}
	d.FinishFrame(f2)
}

func TestBeginFrameRetainedSlotPanics(t *testing.T) {
	d := newTestDevice(t)
	if _, err := d.BeginFrame(); err != nil {
		t.Fatalf("BeginFrame: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic calling BeginFrame twice on the same slot without FinishFrame")
		}
	}()
	d.BeginFrame()
}

func TestImmutableSamplerCrossProduct(t *testing.T) {
	d := newTestDevice(t)

	desc := types.SamplerDesc{
		MagFilter: types.FilterLinear, MinFilter: types.FilterLinear, MipFilter: types.FilterNearest,
		AddressU: types.AddressModeClampToEdge, AddressV: types.AddressModeClampToEdge, AddressW: types.AddressModeClampToEdge,
		Anisotropy: true,
	}
	if s := d.Sampler(desc); s == nil {
		t.Fatalf("expected a sampler for %+v", desc)
	}
}

func TestImmutableSamplerMissingCombinationPanics(t *testing.T) {
	d := newTestDevice(t)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic requesting a sampler outside the cross-product")
		}
	}()
	d.Sampler(types.SamplerDesc{AddressU: types.AddressMode(99)})
}

func TestWithSetupCBRunsAndWaitsIdle(t *testing.T) {
	d := newTestDevice(t)
	ran := false
	err := d.WithSetupCB(context.Background(), func(cb hal.CommandEncoder) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("WithSetupCB: %v", err)
	}
	if !ran {
		t.Fatalf("expected fn to run")
	}
}

func TestCrashMarkerRoundTrip(t *testing.T) {
	d := newTestDevice(t)
	f, err := d.BeginFrame()
	if err != nil {
		t.Fatalf("BeginFrame: %v", err)
	}
	d.WriteCrashMarker(f.MainCB, "begin pass gbuffer")
	if got := d.LastCrashMarker(); got == 0 {
		t.Fatalf("expected a nonzero crash marker value after writing one")
	}
}
