package types

// Filter selects a texture filtering mode.
type Filter uint8

const (
	FilterNearest Filter = iota
	FilterLinear
)

// AddressMode selects texture coordinate wrapping behavior.
type AddressMode uint8

const (
	AddressModeRepeat AddressMode = iota
	AddressModeClampToEdge
	AddressModeMirroredRepeat
	AddressModeClampToBorder
)

// SamplerDesc describes one of the device's immutable samplers: the
// cross product of {Nearest, Linear} filters x {Nearest, Linear} mip modes
// x address modes, with anisotropy implied whenever MagFilter is Linear.
type SamplerDesc struct {
	MagFilter  Filter
	MinFilter  Filter
	MipFilter  Filter
	AddressU   AddressMode
	AddressV   AddressMode
	AddressW   AddressMode
	Anisotropy bool
}
