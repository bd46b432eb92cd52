package hal

import "errors"

// Common HAL errors representing unrecoverable GPU states. These are the
// only conditions the render graph treats as recoverable-by-caller;
// everything else is a programmer error and panics at record time.
var (
	// ErrDeviceOutOfMemory indicates the GPU has exhausted its memory.
	// Unrecoverable within the current frame - the caller should shrink
	// its transient resource footprint or terminate.
	ErrDeviceOutOfMemory = errors.New("hal: device out of memory")

	// ErrDeviceLost indicates the GPU device has been lost (driver crash,
	// hardware reset, or TDR). The device cannot be recovered in place and
	// must be recreated, which the crash-marker buffer exists to help
	// diagnose.
	ErrDeviceLost = errors.New("hal: device lost")

	// ErrSwapchainOutOfDate indicates the swapchain's images no longer
	// match the presentation surface (resize, mode change). Callers should
	// recreate the swapchain and retry acquisition.
	ErrSwapchainOutOfDate = errors.New("hal: swapchain out of date")

	// ErrSwapchainLost indicates the presentation surface itself has been
	// destroyed and cannot be recovered.
	ErrSwapchainLost = errors.New("hal: swapchain lost")

	// ErrTimeout indicates a Wait operation exceeded its deadline.
	ErrTimeout = errors.New("hal: timeout")
)
