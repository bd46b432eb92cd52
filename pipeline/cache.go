package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/rendergraph/device"
	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/reflection"
	"github.com/gogpu/rendergraph/types"
)

// Cache keys compute, raster, and ray tracing pipelines by content hash.
// Registering a description returns the same handle across frames when
// the description is unchanged; a cache miss creates and stores a new
// pipeline.
type Cache struct {
	dev *device.Device

	mu      sync.Mutex
	compute map[uint64]hal.ComputePipeline
	raster  map[uint64]hal.RasterPipeline
	rt      map[uint64]hal.RayTracingPipeline
}

// NewCache returns an empty pipeline cache bound to dev.
func NewCache(dev *device.Device) *Cache {
	return &Cache{
		dev:     dev,
		compute: make(map[uint64]hal.ComputePipeline),
		raster:  make(map[uint64]hal.RasterPipeline),
		rt:      make(map[uint64]hal.RayTracingPipeline),
	}
}

// ComputeRequest describes a compute pipeline to register. SamplerLookup
// defaults to reflection.DecodeSamplerName when nil.
type ComputeRequest struct {
	Shader               hal.ShaderBytecode
	PredefinedSetLayouts map[uint32]hal.DescriptorSetLayoutDesc
	SamplerLookup        func(string) (types.SamplerDesc, bool)
}

// GetOrCreateCompute returns the cached pipeline for req, creating it if
// this is the first time this exact description has been registered.
func (c *Cache) GetOrCreateCompute(req ComputeRequest) (hal.ComputePipeline, error) {
	key := contentHash([][]byte{req.Shader.SPIRV}, req.PredefinedSetLayouts)

	c.mu.Lock()
	if p, ok := c.compute[key]; ok {
		c.mu.Unlock()
		return p, nil
	}
	c.mu.Unlock()
	hal.Logger().Info("pipeline: compute cache miss, compiling", "key", key)

	layouts, err := c.mergeLayouts([]reflection.StageInput{{Stage: req.Shader.Stage, Reflection: req.Shader.Reflection}}, req.PredefinedSetLayouts, sampler(req.SamplerLookup))
	if err != nil {
		return nil, fmt.Errorf("pipeline: compute layout merge: %w", err)
	}

	shader, err := c.dev.HAL().CreateShaderModule(req.Shader)
	if err != nil {
		return nil, fmt.Errorf("pipeline: create compute shader module: %w", err)
	}

	pipelineLayout, err := c.createPipelineLayout(layouts, nil)
	if err != nil {
		return nil, err
	}

	p, err := c.dev.HAL().CreateComputePipeline(hal.ComputePipelineDesc{
		Shader: shader, Layout: pipelineLayout, PredefinedSetLayouts: req.PredefinedSetLayouts,
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline: create compute pipeline: %w", err)
	}

	c.mu.Lock()
	c.compute[key] = p
	c.mu.Unlock()
	return p, nil
}

// RasterRequest describes a raster pipeline to register.
type RasterRequest struct {
	VertexShader     hal.ShaderBytecode
	FragmentShader   hal.ShaderBytecode
	RenderPass       hal.RenderPass
	Topology         types.PrimitiveTopology
	FrontFace        types.FrontFace
	CullMode         types.CullMode
	DepthTestEnable  bool
	DepthWriteEnable bool
	DepthCompareOp   types.CompareOp

	PredefinedSetLayouts map[uint32]hal.DescriptorSetLayoutDesc
	SamplerLookup        func(string) (types.SamplerDesc, bool)
}

// GetOrCreateRaster returns the cached raster pipeline for req.
//
// Colour-blend state is always derived from RenderPass's attachment
// count; callers never configure blend state directly. Topology, front
// face and cull mode come from req (their zero values are triangle list,
// counter-clockwise and no culling). When DepthTestEnable is set without
// an explicit compare op, GreaterOrEqual is used for reverse-Z.
func (c *Cache) GetOrCreateRaster(req RasterRequest) (hal.RasterPipeline, error) {
	if req.DepthTestEnable && req.DepthCompareOp == types.CompareOpNever {
		req.DepthCompareOp = types.CompareOpGreaterOrEqual
	}

	key := contentHash([][]byte{req.VertexShader.SPIRV, req.FragmentShader.SPIRV}, req.PredefinedSetLayouts)

	c.mu.Lock()
	if p, ok := c.raster[key]; ok {
		c.mu.Unlock()
		return p, nil
	}
	c.mu.Unlock()
	hal.Logger().Info("pipeline: raster cache miss, compiling", "key", key)

	stages := []reflection.StageInput{
		{Stage: req.VertexShader.Stage, Reflection: req.VertexShader.Reflection},
		{Stage: req.FragmentShader.Stage, Reflection: req.FragmentShader.Reflection},
	}
	layouts, err := c.mergeLayouts(stages, req.PredefinedSetLayouts, sampler(req.SamplerLookup))
	if err != nil {
		return nil, fmt.Errorf("pipeline: raster layout merge: %w", err)
	}

	vs, err := c.dev.HAL().CreateShaderModule(req.VertexShader)
	if err != nil {
		return nil, fmt.Errorf("pipeline: create vertex shader module: %w", err)
	}
	fs, err := c.dev.HAL().CreateShaderModule(req.FragmentShader)
	if err != nil {
		return nil, fmt.Errorf("pipeline: create fragment shader module: %w", err)
	}

	pipelineLayout, err := c.createPipelineLayout(layouts, nil)
	if err != nil {
		return nil, err
	}

	p, err := c.dev.HAL().CreateRasterPipeline(hal.RasterPipelineDesc{
		VertexShader: vs, FragmentShader: fs, Layout: pipelineLayout, RenderPass: req.RenderPass,
		Topology: req.Topology, FrontFace: req.FrontFace, CullMode: req.CullMode,
		DepthTestEnable: req.DepthTestEnable, DepthWriteEnable: req.DepthWriteEnable, DepthCompareOp: req.DepthCompareOp,
		PredefinedSetLayouts: req.PredefinedSetLayouts,
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline: create raster pipeline: %w", err)
	}

	c.mu.Lock()
	c.raster[key] = p
	c.mu.Unlock()
	return p, nil
}

// HitGroupRequest bundles the shaders for one ray tracing hit group.
type HitGroupRequest struct {
	ClosestHit   hal.ShaderBytecode
	AnyHit       *hal.ShaderBytecode
	Intersection *hal.ShaderBytecode
}

// RayTracingRequest describes a ray tracing pipeline to register.
// Shaders are conceptually ordered RayGen, then Miss*, then HitGroup*;
// GetOrCreateRayTracing panics if RayGen's stage tag doesn't match,
// since that is a record-time programmer error.
type RayTracingRequest struct {
	RayGen            hal.ShaderBytecode
	Miss              []hal.ShaderBytecode
	HitGroups         []HitGroupRequest
	MaxRecursionDepth uint32

	PredefinedSetLayouts map[uint32]hal.DescriptorSetLayoutDesc
	SamplerLookup        func(string) (types.SamplerDesc, bool)
}

func (c *Cache) GetOrCreateRayTracing(req RayTracingRequest) (hal.RayTracingPipeline, error) {
	if req.RayGen.Stage != types.ShaderStageRayGen {
		panic("pipeline: ray tracing pipeline requires a RayGen shader first")
	}
	for _, m := range req.Miss {
		if m.Stage != types.ShaderStageMiss {
			panic("pipeline: ray tracing pipeline miss shaders must use ShaderStageMiss")
		}
	}

	blobs := [][]byte{req.RayGen.SPIRV}
	stages := []reflection.StageInput{{Stage: req.RayGen.Stage, Reflection: req.RayGen.Reflection}}
	for _, m := range req.Miss {
		blobs = append(blobs, m.SPIRV)
		stages = append(stages, reflection.StageInput{Stage: m.Stage, Reflection: m.Reflection})
	}
	for _, hg := range req.HitGroups {
		blobs = append(blobs, hg.ClosestHit.SPIRV)
		stages = append(stages, reflection.StageInput{Stage: hg.ClosestHit.Stage, Reflection: hg.ClosestHit.Reflection})
		if hg.AnyHit != nil {
			blobs = append(blobs, hg.AnyHit.SPIRV)
			stages = append(stages, reflection.StageInput{Stage: hg.AnyHit.Stage, Reflection: hg.AnyHit.Reflection})
		}
		if hg.Intersection != nil {
			blobs = append(blobs, hg.Intersection.SPIRV)
			stages = append(stages, reflection.StageInput{Stage: hg.Intersection.Stage, Reflection: hg.Intersection.Reflection})
		}
	}

	key := contentHash(blobs, req.PredefinedSetLayouts)

	c.mu.Lock()
	if p, ok := c.rt[key]; ok {
		c.mu.Unlock()
		return p, nil
	}
	c.mu.Unlock()
	hal.Logger().Info("pipeline: ray tracing cache miss, compiling", "key", key, "hitGroups", len(req.HitGroups))

	layouts, err := c.mergeLayouts(stages, req.PredefinedSetLayouts, sampler(req.SamplerLookup))
	if err != nil {
		return nil, fmt.Errorf("pipeline: ray tracing layout merge: %w", err)
	}
	pipelineLayout, err := c.createPipelineLayout(layouts, nil)
	if err != nil {
		return nil, err
	}

	rayGenModule, err := c.dev.HAL().CreateShaderModule(req.RayGen)
	if err != nil {
		return nil, fmt.Errorf("pipeline: create raygen shader module: %w", err)
	}
	missModules := make([]hal.ShaderModule, len(req.Miss))
	for i, m := range req.Miss {
		mod, err := c.dev.HAL().CreateShaderModule(m)
		if err != nil {
			return nil, fmt.Errorf("pipeline: create miss shader module %d: %w", i, err)
		}
		missModules[i] = mod
	}
	hitGroups := make([]hal.HitGroup, len(req.HitGroups))
	for i, hg := range req.HitGroups {
		chMod, err := c.dev.HAL().CreateShaderModule(hg.ClosestHit)
		if err != nil {
			return nil, fmt.Errorf("pipeline: create closest-hit shader module %d: %w", i, err)
		}
		group := hal.HitGroup{ClosestHit: chMod}
		if hg.AnyHit != nil {
			ahMod, err := c.dev.HAL().CreateShaderModule(*hg.AnyHit)
			if err != nil {
				return nil, fmt.Errorf("pipeline: create any-hit shader module %d: %w", i, err)
			}
			group.AnyHit = ahMod
		}
		if hg.Intersection != nil {
			isMod, err := c.dev.HAL().CreateShaderModule(*hg.Intersection)
			if err != nil {
				return nil, fmt.Errorf("pipeline: create intersection shader module %d: %w", i, err)
			}
			group.Intersection = isMod
		}
		hitGroups[i] = group
	}

	p, err := c.dev.HAL().CreateRayTracingPipeline(hal.RayTracingPipelineDesc{
		RayGen: rayGenModule, Miss: missModules, HitGroups: hitGroups, Layout: pipelineLayout,
		MaxRecursionDepth: req.MaxRecursionDepth, PredefinedSetLayouts: req.PredefinedSetLayouts,
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline: create ray tracing pipeline: %w", err)
	}

	c.mu.Lock()
	c.rt[key] = p
	c.mu.Unlock()
	return p, nil
}

func sampler(fn func(string) (types.SamplerDesc, bool)) func(string) (types.SamplerDesc, bool) {
	if fn != nil {
		return fn
	}
	return reflection.DecodeSamplerName
}

func (c *Cache) mergeLayouts(stages []reflection.StageInput, predefined map[uint32]hal.DescriptorSetLayoutDesc, samplerLookup func(string) (types.SamplerDesc, bool)) (map[uint32]hal.DescriptorSetLayoutDesc, error) {
	caps := c.dev.HAL().Capabilities()
	layouts, err := reflection.MergeDescriptorSetLayouts(stages, predefined, caps.MaxBindlessResources, samplerLookup)
	if err != nil {
		return nil, err
	}
	for setIdx, desc := range layouts {
		for i := range desc.Bindings {
			if desc.Bindings[i].ImmutableSamplerDesc != nil {
				desc.Bindings[i].ImmutableSamplers = []hal.Sampler{c.dev.Sampler(*desc.Bindings[i].ImmutableSamplerDesc)}
			}
		}
		layouts[setIdx] = desc
	}
	return layouts, nil
}

func (c *Cache) createPipelineLayout(layouts map[uint32]hal.DescriptorSetLayoutDesc, pushConstants []hal.PushConstantRange) (hal.PipelineLayout, error) {
	maxSet := uint32(0)
	for setIdx := range layouts {
		if setIdx+1 > maxSet {
			maxSet = setIdx + 1
		}
	}
	ordered := make([]hal.DescriptorSetLayout, maxSet)
	for setIdx, desc := range layouts {
		l, err := c.dev.HAL().CreateDescriptorSetLayout(desc)
		if err != nil {
			return nil, fmt.Errorf("pipeline: create descriptor set layout %d: %w", setIdx, err)
		}
		ordered[setIdx] = l
	}
	for i := range ordered {
		if ordered[i] == nil {
			l, err := c.dev.HAL().CreateDescriptorSetLayout(hal.DescriptorSetLayoutDesc{})
			if err != nil {
				return nil, fmt.Errorf("pipeline: create empty descriptor set layout %d: %w", i, err)
			}
			ordered[i] = l
		}
	}
	return c.dev.HAL().CreatePipelineLayout(ordered, pushConstants)
}

// CompileConcurrent runs build for every item in items concurrently,
// with at most runtime.GOMAXPROCS(0) builds in flight at once, and
// returns the first error encountered.
func CompileConcurrent[T any](ctx context.Context, items []T, build func(context.Context, T) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, item := range items {
		item := item
		g.Go(func() error { return build(ctx, item) })
	}
	return g.Wait()
}
