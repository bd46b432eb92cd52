// Package dynconst implements the 4.7 dynamic constants ring: a single
// host-visible buffer sized frameSize*frameCount (see New), divided into one
// fixed window per in-flight frame. Within a frame, successive Push calls
// write at a rolling, alignment-aware offset; AdvanceFrame rotates to the
// next window. There is no mid-frame reclamation — Push panics on
// overflow rather than silently wrapping or evicting.
package dynconst
