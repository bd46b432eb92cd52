package reflection_test

import (
	"testing"

	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/reflection"
	"github.com/gogpu/rendergraph/types"
)

func TestMergeUniformBufferBecomesDynamic(t *testing.T) {
	stages := []reflection.StageInput{
		{Stage: types.ShaderStageCompute, Reflection: hal.ShaderReflection{
			Sets: map[uint32]map[uint32]hal.DescriptorInfo{
				0: {0: {Type: types.DescriptorTypeUniformBuffer, Dimensionality: types.DimSingle, Name: "globals"}},
			},
		}},
	}

	layouts, err := reflection.MergeDescriptorSetLayouts(stages, nil, 0, reflection.DecodeSamplerName)
	if err != nil {
		t.Fatalf("MergeDescriptorSetLayouts: %v", err)
	}
	binding := layouts[0].Bindings[0]
	if binding.Type != types.DescriptorTypeUniformBufferDynamic {
		t.Fatalf("expected UniformBuffer to become UniformBufferDynamic, got %v", binding.Type)
	}
}

func TestMergeStorageBufferDynSuffix(t *testing.T) {
	stages := []reflection.StageInput{
		{Stage: types.ShaderStageCompute, Reflection: hal.ShaderReflection{
			Sets: map[uint32]map[uint32]hal.DescriptorInfo{
				0: {
					0: {Type: types.DescriptorTypeStorageBuffer, Name: "particles_dyn"},
					1: {Type: types.DescriptorTypeStorageBuffer, Name: "particles"},
				},
			},
		}},
	}

	layouts, err := reflection.MergeDescriptorSetLayouts(stages, nil, 0, reflection.DecodeSamplerName)
	if err != nil {
		t.Fatalf("MergeDescriptorSetLayouts: %v", err)
	}
	if layouts[0].Bindings[0].Type != types.DescriptorTypeStorageBufferDynamic {
		t.Fatalf("expected _dyn-suffixed binding to become StorageBufferDynamic")
	}
	if layouts[0].Bindings[1].Type != types.DescriptorTypeStorageBuffer {
		t.Fatalf("expected non-suffixed binding to remain StorageBuffer")
	}
}

func TestMergeBindlessRuntimeArray(t *testing.T) {
	stages := []reflection.StageInput{
		{Stage: types.ShaderStageCompute, Reflection: hal.ShaderReflection{
			Sets: map[uint32]map[uint32]hal.DescriptorInfo{
				1: {0: {Type: types.DescriptorTypeSampledImage, Dimensionality: types.DimRuntimeArray, Name: "textures"}},
			},
		}},
	}

	layouts, err := reflection.MergeDescriptorSetLayouts(stages, nil, 4096, reflection.DecodeSamplerName)
	if err != nil {
		t.Fatalf("MergeDescriptorSetLayouts: %v", err)
	}
	set1 := layouts[1]
	if set1.Flags&types.SetLayoutUpdateAfterBindPool == 0 {
		t.Fatalf("expected the bindless set to be marked UpdateAfterBindPool")
	}
	binding := set1.Bindings[0]
	if binding.Count != 4096 {
		t.Fatalf("expected bindless binding count 4096, got %d", binding.Count)
	}
	if binding.Flags != types.BindlessBindingFlags {
		t.Fatalf("expected BindlessBindingFlags, got %v", binding.Flags)
	}
}

func TestMergeConflictingTypesPanicsWithError(t *testing.T) {
	stages := []reflection.StageInput{
		{Stage: types.ShaderStageVertex, Reflection: hal.ShaderReflection{
			Sets: map[uint32]map[uint32]hal.DescriptorInfo{0: {0: {Type: types.DescriptorTypeUniformBuffer, Name: "x"}}},
		}},
		{Stage: types.ShaderStageFragment, Reflection: hal.ShaderReflection{
			Sets: map[uint32]map[uint32]hal.DescriptorInfo{0: {0: {Type: types.DescriptorTypeStorageBuffer, Name: "x"}}},
		}},
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic when stages disagree on a binding's type")
		}
	}()
	reflection.MergeDescriptorSetLayouts(stages, nil, 0, reflection.DecodeSamplerName)
}

func TestPredefinedSetSupersedesReflection(t *testing.T) {
	predefined := map[uint32]hal.DescriptorSetLayoutDesc{
		1: {Bindings: []hal.DescriptorSetLayoutBinding{{Binding: 0, Type: types.DescriptorTypeStorageBuffer}}},
	}
	stages := []reflection.StageInput{
		{Stage: types.ShaderStageCompute, Reflection: hal.ShaderReflection{
			Sets: map[uint32]map[uint32]hal.DescriptorInfo{1: {0: {Type: types.DescriptorTypeUniformBuffer, Name: "ignored"}}},
		}},
	}

	layouts, err := reflection.MergeDescriptorSetLayouts(stages, predefined, 0, reflection.DecodeSamplerName)
	if err != nil {
		t.Fatalf("MergeDescriptorSetLayouts: %v", err)
	}
	if layouts[1].Bindings[0].Type != types.DescriptorTypeStorageBuffer {
		t.Fatalf("expected the predefined layout to win over reflection")
	}
}

func TestDecodeSamplerName(t *testing.T) {
	desc, ok := reflection.DecodeSamplerName("sampler_lnc")
	if !ok {
		t.Fatalf("expected sampler_lnc to decode")
	}
	if desc.MagFilter != types.FilterLinear || desc.MipFilter != types.FilterNearest || desc.AddressU != types.AddressModeClampToEdge {
		t.Fatalf("unexpected decode for sampler_lnc: %+v", desc)
	}

	if _, ok := reflection.DecodeSamplerName("not_a_sampler"); ok {
		t.Fatalf("expected non-matching name to fail decode")
	}
}
