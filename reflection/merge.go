package reflection

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/types"
)

// StageInput is one shader stage's compiled bytecode contributing to a
// pipeline's merged descriptor-set layouts.
type StageInput struct {
	Stage      types.ShaderStage
	Reflection hal.ShaderReflection
}

type mergedBinding struct {
	info       hal.DescriptorInfo
	stageFlags types.ShaderStage
}

// MergeDescriptorSetLayouts implements 4.3: it merges every stage's
// reflected bindings per set index, applies the
// UniformBuffer->UniformBufferDynamic / "_dyn"-suffix / bindless /
// immutable-sampler / stage-flag rules, and lets predefined entries
// supersede reflection entirely for their set index. It panics when two
// stages declare the same (set, binding) with a different type or name.
//
// samplerLookup decodes a sampler binding's name into the immutable
// sampler descriptor it should embed; a binding whose name does not
// match the "sampler_<filter><mip><address>" convention is left without
// an immutable sampler.
func MergeDescriptorSetLayouts(
	stages []StageInput,
	predefined map[uint32]hal.DescriptorSetLayoutDesc,
	maxBindlessResources uint32,
	samplerLookup func(name string) (types.SamplerDesc, bool),
) (map[uint32]hal.DescriptorSetLayoutDesc, error) {
	merged := make(map[uint32]map[uint32]*mergedBinding)

	for _, stage := range stages {
		for setIdx, bindings := range stage.Reflection.Sets {
			if _, overridden := predefined[setIdx]; overridden {
				continue
			}
			setMap, ok := merged[setIdx]
			if !ok {
				setMap = make(map[uint32]*mergedBinding)
				merged[setIdx] = setMap
			}
			for bindingIdx, info := range bindings {
				existing, ok := setMap[bindingIdx]
				if !ok {
					setMap[bindingIdx] = &mergedBinding{info: info, stageFlags: stage.Stage}
					continue
				}
				if existing.info.Type != info.Type || existing.info.Name != info.Name {
					panic(fmt.Sprintf("reflection: set %d binding %d: stage %v declares (%v,%q), conflicting with (%v,%q)",
						setIdx, bindingIdx, stage.Stage, info.Type, info.Name, existing.info.Type, existing.info.Name))
				}
				existing.stageFlags |= stage.Stage
			}
		}
	}

	result := make(map[uint32]hal.DescriptorSetLayoutDesc, len(merged)+len(predefined))
	for setIdx, desc := range predefined {
		result[setIdx] = desc
	}

	for setIdx, setMap := range merged {
		var layoutFlags types.DescriptorSetLayoutFlags
		bindingIndices := make([]uint32, 0, len(setMap))
		for bindingIdx := range setMap {
			bindingIndices = append(bindingIndices, bindingIdx)
		}
		sort.Slice(bindingIndices, func(i, j int) bool { return bindingIndices[i] < bindingIndices[j] })

		bindings := make([]hal.DescriptorSetLayoutBinding, 0, len(bindingIndices))
		for _, bindingIdx := range bindingIndices {
			mb := setMap[bindingIdx]
			b, flags, err := buildBinding(bindingIdx, mb, setIdx, maxBindlessResources, samplerLookup)
			if err != nil {
				return nil, err
			}
			layoutFlags |= flags
			bindings = append(bindings, b)
		}

		result[setIdx] = hal.DescriptorSetLayoutDesc{Bindings: bindings, Flags: layoutFlags}
	}

	return result, nil
}

func buildBinding(bindingIdx uint32, mb *mergedBinding, setIdx uint32, maxBindlessResources uint32, samplerLookup func(string) (types.SamplerDesc, bool)) (hal.DescriptorSetLayoutBinding, types.DescriptorSetLayoutFlags, error) {
	stageFlags := types.ShaderStageAll
	if setIdx == 0 {
		stageFlags = mb.stageFlags
	}

	b := hal.DescriptorSetLayoutBinding{
		Binding:        bindingIdx,
		Type:           mb.info.Type,
		Dimensionality: mb.info.Dimensionality,
		Count:          dimensionCount(mb.info),
		StageFlags:     stageFlags,
	}

	switch mb.info.Type {
	case types.DescriptorTypeUniformBuffer:
		b.Type = types.DescriptorTypeUniformBufferDynamic

	case types.DescriptorTypeStorageBuffer:
		if strings.HasSuffix(mb.info.Name, "_dyn") {
			b.Type = types.DescriptorTypeStorageBufferDynamic
		}

	case types.DescriptorTypeSampledImage:
		if mb.info.Dimensionality == types.DimRuntimeArray {
			b.Count = maxBindlessResources
			b.Flags = types.BindlessBindingFlags
			return b, types.SetLayoutUpdateAfterBindPool, nil
		}

	case types.DescriptorTypeSampler:
		if desc, ok := samplerLookup(mb.info.Name); ok {
			b.ImmutableSamplerDesc = &desc
		}

	case types.DescriptorTypeAccelerationStructure:
		b.Count = 1
	}

	return b, 0, nil
}

func dimensionCount(info hal.DescriptorInfo) uint32 {
	switch info.Dimensionality {
	case types.DimSingle:
		return 1
	case types.DimArray:
		return info.ArrayLength
	default:
		return 0
	}
}
