// Package rpcache implements the 4.5 render pass and imageless-framebuffer
// cache: render passes and framebuffers are expensive to create and have a
// small, stable identity space across a frame, so both are cached by value
// key instead of being recreated per pass.
package rpcache
