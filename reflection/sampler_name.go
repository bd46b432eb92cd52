package reflection

import (
	"strings"

	"github.com/gogpu/rendergraph/types"
)

// DecodeSamplerName implements the name-prefix immutable-sampler naming
// convention "sampler_<filter><mip><address>", e.g. sampler_lnc = linear
// mag/min filter, nearest mip, clamp-to-edge address. It is a convenience
// default samplerLookup for MergeDescriptorSetLayouts; callers needing a
// different naming scheme may supply their own function with the same
// signature instead.
func DecodeSamplerName(name string) (types.SamplerDesc, bool) {
	const prefix = "sampler_"
	if !strings.HasPrefix(name, prefix) {
		return types.SamplerDesc{}, false
	}
	code := name[len(prefix):]
	if len(code) != 3 {
		return types.SamplerDesc{}, false
	}

	filter, ok1 := decodeFilter(code[0])
	mip, ok2 := decodeFilter(code[1])
	addr, ok3 := decodeAddressMode(code[2])
	if !ok1 || !ok2 || !ok3 {
		return types.SamplerDesc{}, false
	}

	return types.SamplerDesc{
		MagFilter: filter, MinFilter: filter, MipFilter: mip,
		AddressU: addr, AddressV: addr, AddressW: addr,
		Anisotropy: filter == types.FilterLinear,
	}, true
}

func decodeFilter(c byte) (types.Filter, bool) {
	switch c {
	case 'l':
		return types.FilterLinear, true
	case 'n':
		return types.FilterNearest, true
	default:
		return 0, false
	}
}

func decodeAddressMode(c byte) (types.AddressMode, bool) {
	switch c {
	case 'c':
		return types.AddressModeClampToEdge, true
	case 'r':
		return types.AddressModeRepeat, true
	case 'm':
		return types.AddressModeMirroredRepeat, true
	case 'b':
		return types.AddressModeClampToBorder, true
	default:
		return 0, false
	}
}
