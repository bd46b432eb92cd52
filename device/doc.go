// Package device wraps a hal.Device with the state the render graph needs
// every frame: double-buffered command-encoder/fence slots, the device's
// immutable sampler set, a mutex-serialized setup command buffer for
// one-shot uploads, and the crash-marker buffer used to diagnose a
// DEVICE_LOST by reading back the last pass that started or finished.
package device
