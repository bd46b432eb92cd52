package dynconst_test

import (
	"testing"

	"github.com/gogpu/rendergraph/device"
	"github.com/gogpu/rendergraph/dynconst"
	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/hal/noop"
)

type testConstants struct {
	A [4]float32
	B [4]float32
}

func newTestRing(t *testing.T, frameSize uint64) *dynconst.Ring {
	t.Helper()
	dev, err := device.New(noop.New(hal.DeviceCapabilities{}))
	if err != nil {
		t.Fatalf("device.New: %v", err)
	}
	t.Cleanup(dev.Destroy)
	r, err := dynconst.New(dev, frameSize, 2)
	if err != nil {
		t.Fatalf("dynconst.New: %v", err)
	}
	t.Cleanup(r.Destroy)
	return r
}

func TestPushReturnsIncreasingAlignedOffsets(t *testing.T) {
	r := newTestRing(t, 4096)

	off1 := dynconst.Push(r, testConstants{})
	off2 := dynconst.Push(r, testConstants{})
	if off1 != 0 {
		t.Fatalf("expected the first push to land at offset 0, got %d", off1)
	}
	if off2 <= off1 {
		t.Fatalf("expected the second push's offset to be greater than the first")
	}
}

func TestPushOverflowPanics(t *testing.T) {
	r := newTestRing(t, 16)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected Push to panic once the frame window is exhausted")
		}
	}()
	for i := 0; i < 100; i++ {
		dynconst.Push(r, testConstants{})
	}
}

func TestAdvanceFrameResetsOffsetAndMovesWindow(t *testing.T) {
	r := newTestRing(t, 4096)
	dynconst.Push(r, testConstants{})
	before := r.FrameWindowOffset()

	r.AdvanceFrame()
	after := r.FrameWindowOffset()
	if after == before {
		t.Fatalf("expected AdvanceFrame to move to a different frame window")
	}

	off := dynconst.Push(r, testConstants{})
	if off != 0 {
		t.Fatalf("expected the rolling offset to reset after AdvanceFrame, got %d", off)
	}
}
