package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/Carmen-Shannon/oxy-planet/engine/camera"
	"github.com/Carmen-Shannon/oxy-planet/engine/light"
	"github.com/Carmen-Shannon/oxy-planet/engine/loader"
	"github.com/Carmen-Shannon/oxy-planet/engine/model"
	"github.com/Carmen-Shannon/oxy-planet/engine/nebula"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-planet/engine/starfield"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pipeline keys, in draw order.
const (
	PipelineKeyNebula     = "nebula"
	PipelineKeyStars      = "stars"
	PipelineKeySurface    = "planet_surface"
	PipelineKeyAtmosphere = "atmosphere"
)

// DrawOrder lists the pipelines in the order Draw records them.
var DrawOrder = []string{PipelineKeyNebula, PipelineKeyStars, PipelineKeySurface, PipelineKeyAtmosphere}

// ErrNotInitialized is returned by Draw before Init or after Teardown.
var ErrNotInitialized = errors.New("scene: not initialized")

// textureTarget identifies where a loaded image is applied.
// The first three values match material.TextureSlot.
type textureTarget int

const (
	textureTargetDay textureTarget = iota
	textureTargetNight
	textureTargetClouds
	textureTargetStars
	textureTargetNebula
)

// textureCompletion is a finished load waiting for the frame thread.
type textureCompletion struct {
	target textureTarget
	path   string
	tex    *common.ImportedTexture
	err    error
}

// Scene composes the planet, its atmosphere, the nebula backdrop and the star field with a
// camera and lights, and owns the GPU resources that draw them.
//
// The CPU-side graph is built by NewScene. GPU resources exist between Init and Teardown.
// Update and Draw run on the frame thread; texture loads complete on loader workers and are
// applied at the next Update.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Config returns the configuration the scene was built from.
	Config() Config

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// StarField returns the star field.
	StarField() starfield.StarField

	// Nebula returns the nebula sprite group.
	Nebula() nebula.Nebula

	// Planet returns the surface sphere.
	Planet() model.Model

	// Atmosphere returns the fresnel shell.
	Atmosphere() model.Model

	// SurfaceMaterial returns the planet's day/night/cloud material.
	SurfaceMaterial() material.SurfaceMaterial

	// AtmosphereMaterial returns the shell's fresnel material.
	AtmosphereMaterial() material.AtmosphereMaterial

	// HemisphereLight returns the ambient sky light.
	HemisphereLight() light.Light

	// SunLight returns the directional light packed into the surface lights uniform.
	SunLight() light.Light

	// Transform returns the current planet group transform.
	//
	// Returns:
	//   - PlanetTransform: a copy of the transform
	Transform() PlanetTransform

	// Initialized reports whether GPU resources are live.
	Initialized() bool

	// Init registers the scene's pipelines, creates every buffer, texture, sampler and bind
	// group with fallback textures bound, and requests the real textures from the loader.
	// A nil loader leaves the fallbacks in place.
	//
	// Panics if r is nil.
	//
	// Parameters:
	//   - r: the renderer that owns the GPU device
	//   - l: the texture loader, may be nil
	//
	// Returns:
	//   - error: error if the scene is already initialized or a GPU resource fails
	Init(r renderer.Renderer, l loader.Loader) error

	// Teardown releases every GPU resource Init created. Safe to call more than once.
	Teardown()

	// Update applies finished texture loads, then advances the planet spin and the star
	// field for the given time and refreshes the camera.
	//
	// Parameters:
	//   - elapsed: seconds since the scene started
	Update(elapsed float64)

	// Draw uploads changed textures, dirty vertex data and per-frame uniforms, then records
	// the draws in DrawOrder. Must be called between the renderer's BeginFrame and EndFrame.
	//
	// Parameters:
	//   - r: the renderer passed to Init
	//
	// Returns:
	//   - error: ErrNotInitialized, or an error from the renderer
	Draw(r renderer.Renderer) error

	// Resize updates the camera aspect ratio for a new framebuffer size.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	Resize(width, height int)
}

// sceneBindings caches the @binding indices resolved from the shaders at Init.
type sceneBindings struct {
	camera           int
	starParams       int
	starTexture      int
	starSampler      int
	nebulaTexture    int
	nebulaSampler    int
	surfaceModel     int
	surfaceLights    int
	surfaceTextures  [3]int
	surfaceSampler   int
	atmosphereModel  int
	atmosphereParams int
}

// scene is the implementation of the Scene interface.
type scene struct {
	// mu guards completed; loader callbacks append from worker goroutines.
	mu        *sync.Mutex
	completed []textureCompletion

	name string
	cfg  Config

	cam        camera.Camera
	hemisphere light.Light
	sun        light.Light

	stars         starfield.StarField
	neb           nebula.Nebula
	planet        model.Model
	atmosphere    model.Model
	surface       material.SurfaceMaterial
	atmosphereMat material.AtmosphereMaterial

	transform PlanetTransform
	updater   FrameUpdater

	starSprite          *common.ImportedTexture
	starSpritePending   bool
	nebulaSprite        *common.ImportedTexture
	nebulaSpritePending bool

	starFieldOptions []starfield.StarFieldBuilderOption
	nebulaOptions    []nebula.NebulaBuilderOption

	// GPU state, live between Init and Teardown.
	r           renderer.Renderer
	shaders     map[string]shader.Shader
	bindings    sceneBindings
	starMesh    bind_group_provider.BindGroupProvider
	starGroup   bind_group_provider.BindGroupProvider
	nebulaMesh  bind_group_provider.BindGroupProvider
	nebulaGroup bind_group_provider.BindGroupProvider
	providers   []bind_group_provider.BindGroupProvider
	initialized bool

	// Pre-allocated slices reused each frame to avoid per-frame allocations.
	writePool          []bind_group_provider.BufferWrite
	drawBindGroupsPool []bind_group_provider.BindGroupProvider
}

var _ Scene = &scene{}

// NewScene composes the CPU side of a planet scene: star field, nebula, planet and
// atmosphere meshes with their materials, the hemisphere and sun lights, and a camera with
// an orbit controller placed at the configured position. No GPU work happens until Init.
//
// Panics if the configuration does not validate.
//
// Parameters:
//   - name: the name of the scene
//   - cfg: the scene configuration
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cfg Config, options ...SceneBuilderOption) Scene {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("scene: NewScene: %v", err))
	}

	s := &scene{
		mu:                 &sync.Mutex{},
		name:               name,
		cfg:                cfg,
		transform:          PlanetTransform{Tilt: cfg.AxialTilt, Scale: cfg.PlanetScale},
		updater:            FrameUpdater{PlanetSpin: cfg.PlanetSpin},
		drawBindGroupsPool: make([]bind_group_provider.BindGroupProvider, 0, 2),
		writePool:          make([]bind_group_provider.BufferWrite, 0, 6),
	}

	for _, option := range options {
		option(s)
	}

	s.hemisphere = light.NewLight(light.LightTypeHemisphere,
		light.WithColor(material.ParseHexColor(cfg.HemisphereSky)),
		light.WithGroundColor(material.ParseHexColor(cfg.HemisphereGround)),
		light.WithIntensity(cfg.HemisphereIntensity),
	)
	s.sun = light.NewLight(light.LightTypeDirectional,
		light.WithPosition(cfg.SunPosition),
		light.WithColor(material.ParseHexColor(cfg.SunColor)),
		light.WithIntensity(cfg.SunIntensity),
	)

	starOpts := []starfield.StarFieldBuilderOption{starfield.WithTexturePath(cfg.StarTexturePath)}
	nebulaOpts := []nebula.NebulaBuilderOption{nebula.WithConfig(cfg.Nebula)}
	if cfg.Seed != 0 {
		starOpts = append(starOpts, starfield.WithSeed(cfg.Seed))
		nebulaOpts = append(nebulaOpts, nebula.WithSeed(cfg.Seed+1))
	}
	s.stars = starfield.NewStarField(cfg.StarCount, append(starOpts, s.starFieldOptions...)...)
	s.neb = nebula.NewNebula(append(nebulaOpts, s.nebulaOptions...)...)

	s.surface = material.NewSurfaceMaterial(PipelineKeySurface,
		material.WithSceneLights(s.hemisphere, s.sun),
		material.WithTexturePath(material.TextureSlotDay, cfg.DayTexturePath),
		material.WithTexturePath(material.TextureSlotNight, cfg.NightTexturePath),
		material.WithTexturePath(material.TextureSlotClouds, cfg.CloudsTexturePath),
	)
	s.atmosphereMat = material.NewAtmosphereMaterial(PipelineKeyAtmosphere)

	matrix := s.transform.ModelMatrix()
	s.planet = model.NewModel(model.NewIcosphere(cfg.PlanetRadius, cfg.PlanetDetail),
		model.WithName("planet"),
		model.WithMaterial(s.surface),
		model.WithModelMatrix(matrix),
	)
	s.atmosphere = model.NewModel(model.NewIcosphere(cfg.AtmosphereRadius, cfg.AtmosphereDetail),
		model.WithName("atmosphere"),
		model.WithMaterial(s.atmosphereMat),
		model.WithModelMatrix(matrix),
	)

	if s.cam == nil {
		s.cam = camera.NewCamera(camera.WithController(
			camera.NewOrbitController(
				camera.WithPosition(cfg.CameraPosition),
				camera.WithDamping(camera.DefaultDamping),
			),
		))
	}

	s.starSprite = common.SolidTexture("star_fallback", 255, 255, 255, 255)
	s.nebulaSprite = common.SolidTexture("nebula_fallback", 0, 0, 0, 0)

	common.Logger().Debug("scene composed",
		"scene", name,
		"stars", s.stars.Count(),
		"sprites", s.neb.Count(),
		"planetIndices", s.planet.IndexCount(),
		"atmosphereIndices", s.atmosphere.IndexCount(),
	)
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Config() Config {
	return s.cfg
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) StarField() starfield.StarField {
	return s.stars
}

func (s *scene) Nebula() nebula.Nebula {
	return s.neb
}

func (s *scene) Planet() model.Model {
	return s.planet
}

func (s *scene) Atmosphere() model.Model {
	return s.atmosphere
}

func (s *scene) SurfaceMaterial() material.SurfaceMaterial {
	return s.surface
}

func (s *scene) AtmosphereMaterial() material.AtmosphereMaterial {
	return s.atmosphereMat
}

func (s *scene) HemisphereLight() light.Light {
	return s.hemisphere
}

func (s *scene) SunLight() light.Light {
	return s.sun
}

func (s *scene) Transform() PlanetTransform {
	return s.transform
}

func (s *scene) Initialized() bool {
	return s.initialized
}

func (s *scene) Init(r renderer.Renderer, l loader.Loader) error {
	if r == nil {
		panic("scene: Init requires a non-nil Renderer")
	}
	if s.initialized {
		return fmt.Errorf("scene %q is already initialized", s.name)
	}

	s.r = r
	steps := []struct {
		name string
		fn   func() error
	}{
		{"pipelines", s.initPipelines},
		{"camera", s.initCamera},
		{"nebula", s.initNebula},
		{"stars", s.initStars},
		{"planet", s.initPlanet},
		{"atmosphere", s.initAtmosphere},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			s.Teardown()
			return fmt.Errorf("scene %q: init %s: %w", s.name, step.name, err)
		}
	}
	s.initialized = true

	if l != nil {
		s.requestTextures(l)
	}
	common.Logger().Info("scene initialized", "scene", s.name, "providers", len(s.providers))
	return nil
}

func (s *scene) initPipelines() error {
	s.shaders = map[string]shader.Shader{
		PipelineKeyNebula:     shader.NewShader(PipelineKeyNebula, nebula.ShaderSource),
		PipelineKeyStars:      shader.NewShader(PipelineKeyStars, starfield.ShaderSource),
		PipelineKeySurface:    shader.NewShader(PipelineKeySurface, material.SurfaceShaderSource),
		PipelineKeyAtmosphere: shader.NewShader(PipelineKeyAtmosphere, material.AtmosphereShaderSource),
	}

	pipelines := []pipeline.Pipeline{
		pipeline.NewPipeline(PipelineKeyNebula, s.shaders[PipelineKeyNebula],
			pipeline.WithVertexLayouts(nebula.VertexLayouts()...),
			pipeline.WithBlendMode(pipeline.BlendModeAdditive),
			pipeline.WithDepthWriteEnabled(false),
		),
		pipeline.NewPipeline(PipelineKeyStars, s.shaders[PipelineKeyStars],
			pipeline.WithVertexLayouts(starfield.VertexLayouts()...),
			pipeline.WithBlendMode(pipeline.BlendModeAlpha),
			pipeline.WithDepthWriteEnabled(false),
		),
		pipeline.NewPipeline(PipelineKeySurface, s.shaders[PipelineKeySurface],
			pipeline.WithVertexLayouts(model.VertexLayout()),
			pipeline.WithCullMode(wgpu.CullModeBack),
		),
		pipeline.NewPipeline(PipelineKeyAtmosphere, s.shaders[PipelineKeyAtmosphere],
			pipeline.WithVertexLayouts(model.VertexLayout()),
			pipeline.WithCullMode(wgpu.CullModeBack),
			pipeline.WithBlendMode(pipeline.BlendModeAdditive),
			pipeline.WithDepthWriteEnabled(false),
		),
	}
	if err := s.r.RegisterPipelines(pipelines...); err != nil {
		return err
	}
	return s.resolveBindings()
}

// resolveBindings looks up every @binding the scene writes by declaration or variable name.
func (s *scene) resolveBindings() error {
	var errs []error
	uniform := func(key string, arg shader.AnnotationArg, group int) int {
		b, ok := uniformBinding(s.shaders[key], arg, group)
		if !ok {
			errs = append(errs, fmt.Errorf("%s: no %s uniform in group %d", key, arg, group))
		}
		return b
	}
	variable := func(key, name string) int {
		b, ok := s.shaders[key].BindGroupFromVarName(1, name)
		if !ok {
			errs = append(errs, fmt.Errorf("%s: no binding named %s", key, name))
		}
		return b
	}

	s.bindings = sceneBindings{
		camera:           uniform(PipelineKeySurface, shader.AnnotationArgCamera, 0),
		starParams:       uniform(PipelineKeyStars, shader.AnnotationArgStarParams, 1),
		starTexture:      variable(PipelineKeyStars, "starTexture"),
		starSampler:      variable(PipelineKeyStars, "starSampler"),
		nebulaTexture:    variable(PipelineKeyNebula, "spriteTexture"),
		nebulaSampler:    variable(PipelineKeyNebula, "spriteSampler"),
		surfaceModel:     uniform(PipelineKeySurface, shader.AnnotationArgModelParams, 1),
		surfaceLights:    uniform(PipelineKeySurface, shader.AnnotationArgSceneLights, 1),
		surfaceSampler:   variable(PipelineKeySurface, "surfaceSampler"),
		atmosphereModel:  uniform(PipelineKeyAtmosphere, shader.AnnotationArgModelParams, 1),
		atmosphereParams: uniform(PipelineKeyAtmosphere, shader.AnnotationArgAtmosphereParams, 1),
	}
	for _, slot := range material.TextureSlots {
		s.bindings.surfaceTextures[slot] = variable(PipelineKeySurface, slot.VarName())
	}
	return errors.Join(errs...)
}

// uniformBinding finds the binding of the group annotation whose struct type is arg.
func uniformBinding(shdr shader.Shader, arg shader.AnnotationArg, group int) (int, bool) {
	for _, decl := range shdr.Declarations() {
		if decl.Type != shader.AnnotationTypeBindingGroup || decl.Group == nil || decl.Binding == nil {
			continue
		}
		if *decl.Group == group && decl.StructType() == arg {
			return *decl.Binding, true
		}
	}
	return 0, false
}

func (s *scene) track(p bind_group_provider.BindGroupProvider) bind_group_provider.BindGroupProvider {
	s.providers = append(s.providers, p)
	return p
}

func (s *scene) initCamera() error {
	camBGP := s.track(s.cam.BindGroupProvider())
	if err := s.r.InitBindGroup(camBGP, s.shaders[PipelineKeySurface].BindGroupLayoutDescriptor(0)); err != nil {
		return err
	}
	return nil
}

func (s *scene) initNebula() error {
	s.nebulaMesh = s.track(bind_group_provider.NewBindGroupProvider(s.name+"_nebula_mesh",
		bind_group_provider.WithVertexCount(nebula.QuadVertexCount),
		bind_group_provider.WithInstanceCount(s.neb.Count()),
	))
	if err := s.r.InitMeshBuffers(s.nebulaMesh, [][]byte{s.neb.Instances()}, nil, 0); err != nil {
		return err
	}

	s.nebulaGroup = s.track(bind_group_provider.NewBindGroupProvider(s.name + "_nebula"))
	if err := s.r.InitTexture(s.nebulaGroup, s.bindings.nebulaTexture, s.nebulaSprite.Staging()); err != nil {
		return err
	}
	if err := s.r.InitSampler(s.nebulaGroup, s.bindings.nebulaSampler, *spriteSampler()); err != nil {
		return err
	}
	s.nebulaSpritePending = false
	return s.r.InitBindGroup(s.nebulaGroup, s.shaders[PipelineKeyNebula].BindGroupLayoutDescriptor(1))
}

func (s *scene) initStars() error {
	s.starMesh = s.track(bind_group_provider.NewBindGroupProvider(s.name+"_stars_mesh",
		bind_group_provider.WithVertexCount(starfield.QuadVertexCount),
		bind_group_provider.WithInstanceCount(s.stars.Count()),
	))
	vertexData := [][]byte{common.SliceToBytes(s.stars.Positions()), common.SliceToBytes(s.stars.Colors())}
	if err := s.r.InitMeshBuffers(s.starMesh, vertexData, nil, 0); err != nil {
		return err
	}
	s.stars.ClearDirty()

	s.starGroup = s.track(bind_group_provider.NewBindGroupProvider(s.name + "_stars"))
	if err := s.r.InitTexture(s.starGroup, s.bindings.starTexture, s.starSprite.Staging()); err != nil {
		return err
	}
	if err := s.r.InitSampler(s.starGroup, s.bindings.starSampler, *spriteSampler()); err != nil {
		return err
	}
	s.starSpritePending = false
	return s.r.InitBindGroup(s.starGroup, s.shaders[PipelineKeyStars].BindGroupLayoutDescriptor(1))
}

func (s *scene) initPlanet() error {
	mesh := s.track(bind_group_provider.NewBindGroupProvider(s.name + "_planet_mesh"))
	s.planet.SetMeshProvider(mesh)
	if err := s.r.InitMeshBuffers(mesh, [][]byte{s.planet.VertexData()}, s.planet.IndexData(), s.planet.IndexCount()); err != nil {
		return err
	}

	group := s.track(bind_group_provider.NewBindGroupProvider(s.name + "_planet_surface"))
	s.surface.SetBindGroupProvider(group)
	for _, slot := range material.TextureSlots {
		if err := s.r.InitTexture(group, s.bindings.surfaceTextures[slot], s.surface.Texture(slot).Staging()); err != nil {
			return fmt.Errorf("%s texture: %w", slot, err)
		}
	}
	if err := s.r.InitSampler(group, s.bindings.surfaceSampler, *common.DefaultSampler()); err != nil {
		return err
	}
	s.surface.ClearPendingTextures()
	if err := s.r.InitBindGroup(group, s.shaders[PipelineKeySurface].BindGroupLayoutDescriptor(1)); err != nil {
		return err
	}
	s.r.WriteBuffers([]bind_group_provider.BufferWrite{
		bind_group_provider.UniformWrite(group, s.bindings.surfaceLights, s.surface.Uniform()),
	})
	return nil
}

func (s *scene) initAtmosphere() error {
	mesh := s.track(bind_group_provider.NewBindGroupProvider(s.name + "_atmosphere_mesh"))
	s.atmosphere.SetMeshProvider(mesh)
	if err := s.r.InitMeshBuffers(mesh, [][]byte{s.atmosphere.VertexData()}, s.atmosphere.IndexData(), s.atmosphere.IndexCount()); err != nil {
		return err
	}

	group := s.track(bind_group_provider.NewBindGroupProvider(s.name + "_atmosphere"))
	s.atmosphereMat.SetBindGroupProvider(group)
	if err := s.r.InitBindGroup(group, s.shaders[PipelineKeyAtmosphere].BindGroupLayoutDescriptor(1)); err != nil {
		return err
	}
	s.r.WriteBuffers([]bind_group_provider.BufferWrite{
		bind_group_provider.UniformWrite(group, s.bindings.atmosphereParams, s.atmosphereMat.Uniform()),
	})
	return nil
}

// spriteSampler clamps on every axis so sprite edges never wrap.
func spriteSampler() *common.SamplerStagingData {
	sd := common.DefaultSampler()
	sd.AddressModeU = wgpu.AddressModeClampToEdge
	return sd
}

// textureRequests lists every image the scene loads, skipping empty paths.
func (s *scene) textureRequests() []textureCompletion {
	reqs := []textureCompletion{
		{target: textureTargetDay, path: s.surface.TexturePath(material.TextureSlotDay)},
		{target: textureTargetNight, path: s.surface.TexturePath(material.TextureSlotNight)},
		{target: textureTargetClouds, path: s.surface.TexturePath(material.TextureSlotClouds)},
		{target: textureTargetStars, path: s.stars.TexturePath()},
		{target: textureTargetNebula, path: s.neb.TexturePath()},
	}
	out := reqs[:0]
	for _, req := range reqs {
		if req.path != "" {
			out = append(out, req)
		}
	}
	return out
}

func (s *scene) requestTextures(l loader.Loader) {
	for _, req := range s.textureRequests() {
		l.Load(req.path, func(tex *common.ImportedTexture, err error) {
			s.mu.Lock()
			s.completed = append(s.completed, textureCompletion{target: req.target, path: req.path, tex: tex, err: err})
			s.mu.Unlock()
		})
	}
}

// applyCompletedTextures hands finished loads to their materials. Failed loads keep the fallback.
func (s *scene) applyCompletedTextures() {
	s.mu.Lock()
	done := s.completed
	s.completed = nil
	s.mu.Unlock()

	for _, c := range done {
		if c.err != nil || c.tex == nil {
			common.Logger().Warn("texture unavailable, keeping fallback", "scene", s.name, "path", c.path, "error", c.err)
			continue
		}
		switch c.target {
		case textureTargetDay, textureTargetNight, textureTargetClouds:
			s.surface.SetTexture(material.TextureSlot(c.target), c.tex)
		case textureTargetStars:
			s.starSprite = c.tex
			s.starSpritePending = true
		case textureTargetNebula:
			s.nebulaSprite = c.tex
			s.nebulaSpritePending = true
		}
		common.Logger().Debug("texture applied", "scene", s.name, "path", c.path, "width", c.tex.Width, "height", c.tex.Height)
	}
}

func (s *scene) Teardown() {
	if len(s.providers) == 0 && !s.initialized {
		return
	}
	for _, p := range s.providers {
		p.Release()
	}
	s.providers = nil
	s.starMesh, s.starGroup, s.nebulaMesh, s.nebulaGroup = nil, nil, nil, nil
	s.planet.SetMeshProvider(nil)
	s.atmosphere.SetMeshProvider(nil)
	s.surface.SetBindGroupProvider(nil)
	s.atmosphereMat.SetBindGroupProvider(nil)
	s.r = nil
	s.initialized = false
	common.Logger().Info("scene torn down", "scene", s.name)
}

func (s *scene) Update(elapsed float64) {
	s.applyCompletedTextures()

	s.updater.Apply(elapsed, &s.transform, s.stars)
	matrix := s.transform.ModelMatrix()
	s.planet.SetModelMatrix(matrix)
	s.atmosphere.SetModelMatrix(matrix)

	s.cam.Update()
}

func (s *scene) Draw(r renderer.Renderer) error {
	if !s.initialized || r == nil {
		return ErrNotInitialized
	}
	if err := s.uploadTextures(r); err != nil {
		return fmt.Errorf("scene %q: %w", s.name, err)
	}

	cu := s.cam.Uniform()
	sp := s.stars.Params()
	pp := s.planet.Params()
	ap := s.atmosphere.Params()

	writes := s.writePool[:0]
	writes = append(writes,
		bind_group_provider.UniformWrite(s.cam.BindGroupProvider(), s.bindings.camera, cu.Marshal()),
		bind_group_provider.UniformWrite(s.starGroup, s.bindings.starParams, sp.Marshal()),
		bind_group_provider.UniformWrite(s.surface.BindGroupProvider(), s.bindings.surfaceModel, pp.Marshal()),
		bind_group_provider.UniformWrite(s.atmosphereMat.BindGroupProvider(), s.bindings.atmosphereModel, ap.Marshal()),
	)
	if s.stars.Dirty() {
		writes = append(writes, bind_group_provider.VertexWrite(s.starMesh, 1, common.SliceToBytes(s.stars.Colors())))
		s.stars.ClearDirty()
	}
	r.WriteBuffers(writes)
	s.writePool = writes

	draws := []struct {
		key   string
		mesh  bind_group_provider.BindGroupProvider
		group bind_group_provider.BindGroupProvider
	}{
		{PipelineKeyNebula, s.nebulaMesh, s.nebulaGroup},
		{PipelineKeyStars, s.starMesh, s.starGroup},
		{PipelineKeySurface, s.planet.MeshProvider(), s.surface.BindGroupProvider()},
		{PipelineKeyAtmosphere, s.atmosphere.MeshProvider(), s.atmosphereMat.BindGroupProvider()},
	}
	for _, d := range draws {
		bindGroups := append(s.drawBindGroupsPool[:0], s.cam.BindGroupProvider(), d.group)
		if err := r.DrawCall(d.key, d.mesh, bindGroups); err != nil {
			return fmt.Errorf("draw call failed for %s in scene %q: %w", d.key, s.name, err)
		}
		s.drawBindGroupsPool = bindGroups
	}
	return nil
}

// uploadTextures replaces GPU textures for images that arrived since the last frame and
// rebuilds the affected bind groups.
func (s *scene) uploadTextures(r renderer.Renderer) error {
	if pending := s.surface.PendingTextures(); len(pending) > 0 {
		group := s.surface.BindGroupProvider()
		for _, slot := range pending {
			if err := r.InitTexture(group, s.bindings.surfaceTextures[slot], s.surface.Texture(slot).Staging()); err != nil {
				return fmt.Errorf("upload %s texture: %w", slot, err)
			}
		}
		if err := r.InitBindGroup(group, s.shaders[PipelineKeySurface].BindGroupLayoutDescriptor(1)); err != nil {
			return err
		}
		s.surface.ClearPendingTextures()
	}
	if s.starSpritePending {
		if err := r.InitTexture(s.starGroup, s.bindings.starTexture, s.starSprite.Staging()); err != nil {
			return fmt.Errorf("upload star sprite: %w", err)
		}
		if err := r.InitBindGroup(s.starGroup, s.shaders[PipelineKeyStars].BindGroupLayoutDescriptor(1)); err != nil {
			return err
		}
		s.starSpritePending = false
	}
	if s.nebulaSpritePending {
		if err := r.InitTexture(s.nebulaGroup, s.bindings.nebulaTexture, s.nebulaSprite.Staging()); err != nil {
			return fmt.Errorf("upload nebula sprite: %w", err)
		}
		if err := r.InitBindGroup(s.nebulaGroup, s.shaders[PipelineKeyNebula].BindGroupLayoutDescriptor(1)); err != nil {
			return err
		}
		s.nebulaSpritePending = false
	}
	return nil
}

func (s *scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.cam.SetAspect(float32(width) / float32(height))
}
