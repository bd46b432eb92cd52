package pipeline_test

import (
	"context"
	"sync"
	"testing"

	"github.com/gogpu/rendergraph/device"
	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/hal/noop"
	"github.com/gogpu/rendergraph/pipeline"
	"github.com/gogpu/rendergraph/types"
)

func newTestCache(t *testing.T) (*device.Device, *pipeline.Cache) {
	t.Helper()
	d, err := device.New(noop.New(hal.DeviceCapabilities{MaxBindlessResources: 4096}))
	if err != nil {
		t.Fatalf("device.New: %v", err)
	}
	t.Cleanup(d.Destroy)
	return d, pipeline.NewCache(d)
}

func computeShader(code byte) hal.ShaderBytecode {
	return hal.ShaderBytecode{
		Stage: types.ShaderStageCompute,
		SPIRV: []byte{code},
		Reflection: hal.ShaderReflection{
			Sets: map[uint32]map[uint32]hal.DescriptorInfo{
				0: {0: {Type: types.DescriptorTypeStorageBuffer, Name: "data"}},
			},
		},
	}
}

func TestGetOrCreateComputeCachesByContent(t *testing.T) {
	_, cache := newTestCache(t)

	req := pipeline.ComputeRequest{Shader: computeShader(1)}
	p1, err := cache.GetOrCreateCompute(req)
	if err != nil {
		t.Fatalf("GetOrCreateCompute: %v", err)
	}
	p2, err := cache.GetOrCreateCompute(req)
	if err != nil {
		t.Fatalf("GetOrCreateCompute: %v", err)
	}
	if p1 != p2 {
		t.Fatalf("expected identical requests to return the cached pipeline")
	}
}

func TestGetOrCreateComputeDistinctShadersMiss(t *testing.T) {
	_, cache := newTestCache(t)

	p1, err := cache.GetOrCreateCompute(pipeline.ComputeRequest{Shader: computeShader(1)})
	if err != nil {
		t.Fatalf("GetOrCreateCompute: %v", err)
	}
	p2, err := cache.GetOrCreateCompute(pipeline.ComputeRequest{Shader: computeShader(2)})
	if err != nil {
		t.Fatalf("GetOrCreateCompute: %v", err)
	}
	if p1 == p2 {
		t.Fatalf("expected distinct shader bytes to produce distinct pipelines")
	}
}

func TestGetOrCreateRayTracingRequiresRayGenFirst(t *testing.T) {
	_, cache := newTestCache(t)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when RayGen shader has the wrong stage tag")
		}
	}()
	cache.GetOrCreateRayTracing(pipeline.RayTracingRequest{
		RayGen: hal.ShaderBytecode{Stage: types.ShaderStageMiss},
	})
}

func TestGetOrCreateRayTracingBuildsHitGroups(t *testing.T) {
	_, cache := newTestCache(t)

	req := pipeline.RayTracingRequest{
		RayGen: hal.ShaderBytecode{Stage: types.ShaderStageRayGen, SPIRV: []byte{1}},
		Miss:   []hal.ShaderBytecode{{Stage: types.ShaderStageMiss, SPIRV: []byte{2}}},
		HitGroups: []pipeline.HitGroupRequest{
			{ClosestHit: hal.ShaderBytecode{Stage: types.ShaderStageClosestHit, SPIRV: []byte{3}}},
		},
		MaxRecursionDepth: 1,
	}
	p, err := cache.GetOrCreateRayTracing(req)
	if err != nil {
		t.Fatalf("GetOrCreateRayTracing: %v", err)
	}
	if p == nil {
		t.Fatalf("expected a non-nil ray tracing pipeline")
	}
}

func TestCompileConcurrentRunsAllAndPropagatesError(t *testing.T) {
	items := []int{1, 2, 3, 4}
	var mu sync.Mutex
	var built []int
	err := pipeline.CompileConcurrent(context.Background(), items, func(_ context.Context, i int) error {
		mu.Lock()
		built = append(built, i)
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("CompileConcurrent: %v", err)
	}
	if len(built) != len(items) {
		t.Fatalf("expected all %d items to build, got %d", len(items), len(built))
	}

	err = pipeline.CompileConcurrent(context.Background(), items, func(_ context.Context, i int) error {
		if i == 2 {
			return errSentinel{}
		}
		return nil
	})
	if err == nil {
		t.Fatalf("expected CompileConcurrent to propagate a build error")
	}
}

type errSentinel struct{}

func (errSentinel) Error() string { return "sentinel" }
