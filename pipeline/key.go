package pipeline

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/gogpu/rendergraph/hal"
)

// contentHash folds shader bytes and descriptor-set-layout overrides into
// a single 64-bit key. Two requests with identical shader bytes and
// overrides hash identically, which is what lets the cache return the
// same handle across frames.
func contentHash(shaderBlobs [][]byte, overrides map[uint32]hal.DescriptorSetLayoutDesc) uint64 {
	h := xxhash.New()
	for _, blob := range shaderBlobs {
		h.Write(blob)
		h.Write([]byte{0})
	}
	writeOverrides(h, overrides)
	return h.Sum64()
}

func writeOverrides(h *xxhash.Digest, overrides map[uint32]hal.DescriptorSetLayoutDesc) {
	var buf [8]byte
	sets := make([]uint32, 0, len(overrides))
	for k := range overrides {
		sets = append(sets, k)
	}
	sortUint32s(sets)

	for _, setIdx := range sets {
		binary.LittleEndian.PutUint32(buf[:4], setIdx)
		h.Write(buf[:4])
		desc := overrides[setIdx]
		binary.LittleEndian.PutUint32(buf[:4], uint32(desc.Flags))
		h.Write(buf[:4])
		for _, b := range desc.Bindings {
			binary.LittleEndian.PutUint32(buf[:4], b.Binding)
			h.Write(buf[:4])
			binary.LittleEndian.PutUint32(buf[:4], uint32(b.Type))
			h.Write(buf[:4])
			binary.LittleEndian.PutUint32(buf[:4], b.Count)
			h.Write(buf[:4])
			binary.LittleEndian.PutUint32(buf[:4], uint32(b.StageFlags))
			h.Write(buf[:4])
			binary.LittleEndian.PutUint32(buf[:4], uint32(b.Flags))
			h.Write(buf[:4])
		}
	}
}

func sortUint32s(s []uint32) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
