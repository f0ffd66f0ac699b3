package scene

import (
	"errors"
	"io"
	"io/fs"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

type textureUpload struct {
	label   string
	binding int
	width   uint32
	height  uint32
}

// fakeRenderer records what the scene asks of the GPU.
type fakeRenderer struct {
	pipelines  map[string]pipeline.Pipeline
	bindGroups []string
	textures   []textureUpload
	samplers   int
	writes     []bind_group_provider.BufferWrite
	draws      []string
	drawMeshes []bind_group_provider.BindGroupProvider
	failGroup  string
}

var _ renderer.Renderer = &fakeRenderer{}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{pipelines: map[string]pipeline.Pipeline{}}
}

func (f *fakeRenderer) Pipeline(key string) pipeline.Pipeline { return f.pipelines[key] }

func (f *fakeRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		f.pipelines[p.PipelineKey()] = p
	}
	return nil
}

func (f *fakeRenderer) Resize(int, int)                     {}
func (f *fakeRenderer) SetPresentMode(renderer.PresentMode) {}
func (f *fakeRenderer) BeginFrame() error                   { return nil }
func (f *fakeRenderer) EndFrame()                           {}
func (f *fakeRenderer) Present()                            {}
func (f *fakeRenderer) Release()                            {}

func (f *fakeRenderer) WriteBuffers(w []bind_group_provider.BufferWrite) {
	f.writes = append(f.writes, w...)
}

func (f *fakeRenderer) InitMeshBuffers(p bind_group_provider.BindGroupProvider, _ [][]byte, _ []byte, indexCount int) error {
	p.SetIndexCount(indexCount)
	return nil
}

func (f *fakeRenderer) InitBindGroup(p bind_group_provider.BindGroupProvider, _ wgpu.BindGroupLayoutDescriptor) error {
	if f.failGroup != "" && strings.HasSuffix(p.Label(), f.failGroup) {
		return errors.New("bind group failed")
	}
	f.bindGroups = append(f.bindGroups, p.Label())
	return nil
}

func (f *fakeRenderer) InitTexture(p bind_group_provider.BindGroupProvider, binding int, s common.TextureStagingData) error {
	f.textures = append(f.textures, textureUpload{p.Label(), binding, s.Width, s.Height})
	return nil
}

func (f *fakeRenderer) InitSampler(bind_group_provider.BindGroupProvider, int, common.SamplerStagingData) error {
	f.samplers++
	return nil
}

func (f *fakeRenderer) DrawCall(key string, mesh bind_group_provider.BindGroupProvider, groups []bind_group_provider.BindGroupProvider) error {
	if len(groups) != 2 {
		return errors.New("expected camera and material groups")
	}
	f.draws = append(f.draws, key)
	f.drawMeshes = append(f.drawMeshes, mesh)
	return nil
}

// fakeLoader completes loads synchronously from a fixed table.
type fakeLoader struct {
	textures map[string]*common.ImportedTexture
	requests []string
}

func (f *fakeLoader) Load(path string, done func(*common.ImportedTexture, error)) {
	f.requests = append(f.requests, path)
	done(f.LoadSync(path))
}

func (f *fakeLoader) LoadSync(path string) (*common.ImportedTexture, error) {
	if tex, ok := f.textures[path]; ok {
		return tex, nil
	}
	return nil, fs.ErrNotExist
}

func (f *fakeLoader) LoadReader(string, io.Reader) (*common.ImportedTexture, error) {
	return nil, errors.New("unsupported")
}

func (f *fakeLoader) Get(name string) *common.ImportedTexture { return f.textures[name] }
func (f *fakeLoader) Close()                                  {}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.StarCount = 50
	cfg.PlanetDetail = 3
	cfg.AtmosphereDetail = 2
	return cfg
}

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.StarCount != 3000 || cfg.PlanetRadius != 2 || cfg.AtmosphereRadius != 2.03 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if math.Abs(float64(cfg.AxialTilt)-23.4*math.Pi/180) > 1e-6 {
		t.Errorf("tilt = %v", cfg.AxialTilt)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"sun at origin", func(c *Config) { c.SunPosition = [3]float32{} }},
		{"zero planet radius", func(c *Config) { c.PlanetRadius = 0 }},
		{"nan atmosphere radius", func(c *Config) { c.AtmosphereRadius = float32(math.NaN()) }},
		{"negative detail", func(c *Config) { c.PlanetDetail = -1 }},
		{"zero scale", func(c *Config) { c.PlanetScale = 0 }},
		{"camera at origin", func(c *Config) { c.CameraPosition = [3]float32{} }},
		{"tone mapping", func(c *Config) { c.ToneMapping = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected an error")
			}
		})
	}

	cfg := DefaultConfig()
	cfg.StarCount = -5
	cfg.Nebula.Count = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("degenerate counts rejected: %v", err)
	}
}

func TestPlanetTransformTiltOutsideSpin(t *testing.T) {
	tilt := float32(23.4 * math.Pi / 180)
	for _, spin := range []float32{0, 1, 2.5, 100} {
		p := PlanetTransform{Tilt: tilt, Rotation: [3]float32{0, spin, 0}}
		m := mgl32.Mat4(p.ModelMatrix())
		axis := m.Mul4x1(mgl32.Vec4{0, 1, 0, 0})
		want := mgl32.Vec4{-float32(math.Sin(float64(tilt))), float32(math.Cos(float64(tilt))), 0, 0}
		if !axis.ApproxEqualThreshold(want, 1e-5) {
			t.Errorf("spin %v: axis = %v, want %v", spin, axis, want)
		}
	}

	scaled := PlanetTransform{Scale: 1.3}
	m := mgl32.Mat4(scaled.ModelMatrix())
	if got := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1}); math.Abs(float64(got[0])-1.3) > 1e-5 {
		t.Errorf("scaled x = %v", got[0])
	}
	if (PlanetTransform{}).ModelMatrix() != mgl32.Ident4() {
		t.Errorf("zero transform is not identity")
	}
}

func TestFrameUpdaterApply(t *testing.T) {
	s := NewScene("updater", testConfig())
	stars := s.StarField()
	u := FrameUpdater{PlanetSpin: 0.001}
	var p PlanetTransform

	u.Apply(0, &p, stars)
	first := slices.Clone(stars.Colors())
	u.Apply(0, &p, stars)
	if !slices.Equal(first, stars.Colors()) {
		t.Error("colors changed for the same elapsed time")
	}
	if math.Abs(float64(p.Rotation[1])-0.002) > 1e-7 {
		t.Errorf("rotation = %v, want 0.002", p.Rotation[1])
	}
	if math.Abs(float64(stars.RotationY())+0.0004) > 1e-7 {
		t.Errorf("star drift = %v, want -0.0004", stars.RotationY())
	}
	if !stars.Dirty() {
		t.Error("star colors not marked dirty")
	}

	u.Apply(1, nil, nil)
}

func TestNewSceneComposes(t *testing.T) {
	s := NewScene("earth", testConfig())

	if s.StarField().Count() != 50 || s.Nebula().Count() != 8 {
		t.Errorf("counts = %d stars, %d sprites", s.StarField().Count(), s.Nebula().Count())
	}
	want := common.Normalize3([3]float32{-2, 0.5, 1.5})
	got := s.SurfaceMaterial().SunDirection()
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Fatalf("sun direction = %v, want %v", got, want)
		}
	}
	if s.Camera().Position() != s.Camera().Controller().Position() {
		t.Errorf("camera not following controller")
	}
	if d := common.Length3(common.Sub3(s.Camera().Position(), [3]float32{0, 0.1, 5})); d > 1e-4 {
		t.Errorf("camera position = %v", s.Camera().Position())
	}
	if s.HemisphereLight().Intensity() != 3 || s.SunLight().Intensity() != 1 {
		t.Errorf("light intensities = %v, %v", s.HemisphereLight().Intensity(), s.SunLight().Intensity())
	}
	if s.Planet().ModelMatrix() != s.Atmosphere().ModelMatrix() {
		t.Errorf("atmosphere does not share the planet transform")
	}
	if s.Planet().Material() != s.SurfaceMaterial() || s.Atmosphere().Material() != s.AtmosphereMaterial() {
		t.Errorf("materials not attached")
	}
	if s.Initialized() {
		t.Errorf("scene initialized before Init")
	}
}

func TestNewSceneSeedIsDeterministic(t *testing.T) {
	a := NewScene("a", testConfig())
	b := NewScene("b", testConfig())
	if !slices.Equal(a.StarField().Positions(), b.StarField().Positions()) {
		t.Error("star positions differ for equal seeds")
	}
	if !slices.Equal(a.Nebula().Instances(), b.Nebula().Instances()) {
		t.Error("nebula differs for equal seeds")
	}
}

func TestNewScenePanicsOnInvalidConfig(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	cfg := DefaultConfig()
	cfg.PlanetRadius = -1
	NewScene("bad", cfg)
}

func TestSceneLifecycle(t *testing.T) {
	s := NewScene("earth", testConfig())
	r := newFakeRenderer()

	if err := s.Draw(r); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Draw before Init = %v", err)
	}
	if err := s.Init(r, nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := s.Init(r, nil); err == nil {
		t.Error("second Init succeeded")
	}
	for _, key := range DrawOrder {
		if r.Pipeline(key) == nil {
			t.Errorf("pipeline %s not registered", key)
		}
	}
	if p := r.Pipeline(PipelineKeyAtmosphere); p.BlendMode() != pipeline.BlendModeAdditive || p.DepthWriteEnabled() {
		t.Errorf("atmosphere pipeline blend=%v depthWrite=%v", p.BlendMode(), p.DepthWriteEnabled())
	}
	if p := r.Pipeline(PipelineKeyStars); p.DepthWriteEnabled() {
		t.Errorf("stars write depth")
	}
	// day, night, clouds, star sprite, nebula sprite
	if len(r.textures) != 5 || r.samplers != 3 {
		t.Errorf("textures=%d samplers=%d", len(r.textures), r.samplers)
	}
	// camera, nebula, stars, surface, atmosphere
	if len(r.bindGroups) != 5 {
		t.Errorf("bind groups = %v", r.bindGroups)
	}

	var lightsWrites int
	for _, w := range r.writes {
		if w.Provider == s.SurfaceMaterial().BindGroupProvider() && w.VertexSlot < 0 {
			lightsWrites++
			if !slices.Equal(w.Data, s.SurfaceMaterial().Uniform()) || len(w.Data) != 64 {
				t.Errorf("surface lights write = %v", w.Data)
			}
		}
	}
	if lightsWrites != 1 {
		t.Errorf("surface lights writes at Init = %d, want 1", lightsWrites)
	}
	lights := s.SurfaceMaterial().Lights()
	if lights.SunColor == [3]float32{} || lights.SkyColor == [3]float32{} {
		t.Errorf("configured light colors not packed: %+v", lights)
	}

	s.Update(0.5)
	if err := s.Draw(r); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if !slices.Equal(r.draws, DrawOrder) {
		t.Errorf("draw order = %v, want %v", r.draws, DrawOrder)
	}
	if got := r.drawMeshes[1].InstanceCount(); got != 50 {
		t.Errorf("star instances = %d", got)
	}
	if got := r.drawMeshes[2].IndexCount(); got != s.Planet().IndexCount() {
		t.Errorf("planet index count = %d, want %d", got, s.Planet().IndexCount())
	}

	var colorWrites int
	for _, w := range r.writes {
		if w.VertexSlot == 1 {
			colorWrites++
			if len(w.Data) != 50*3*4 {
				t.Errorf("color write = %d bytes", len(w.Data))
			}
		}
	}
	if colorWrites != 1 {
		t.Errorf("color writes = %d, want 1", colorWrites)
	}
	r.writes = nil
	if err := s.Draw(r); err != nil {
		t.Fatal(err)
	}
	for _, w := range r.writes {
		if w.VertexSlot == 1 {
			t.Error("clean star colors re-uploaded")
		}
	}

	s.Teardown()
	s.Teardown()
	if s.Initialized() || s.Planet().MeshProvider() != nil {
		t.Error("teardown left GPU state behind")
	}
	if err := s.Draw(r); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Draw after Teardown = %v", err)
	}
	if err := s.Init(r, nil); err != nil {
		t.Errorf("re-Init after Teardown: %v", err)
	}
}

func TestSceneInitFailureTearsDown(t *testing.T) {
	s := NewScene("earth", testConfig())
	r := newFakeRenderer()
	r.failGroup = "_planet_surface"

	err := s.Init(r, nil)
	if err == nil || !strings.Contains(err.Error(), "planet") {
		t.Fatalf("Init err = %v", err)
	}
	if s.Initialized() || s.Planet().MeshProvider() != nil {
		t.Error("failed Init left GPU state behind")
	}
}

func TestSceneAppliesLoadedTextures(t *testing.T) {
	cfg := testConfig()
	cfg.DayTexturePath = "day.png"
	cfg.NightTexturePath = "night.png"
	cfg.CloudsTexturePath = ""
	s := NewScene("earth", cfg)
	l := &fakeLoader{textures: map[string]*common.ImportedTexture{
		"day.png": {Name: "day", Pixels: make([]byte, 2*2*4), Width: 2, Height: 2},
	}}
	r := newFakeRenderer()

	if err := s.Init(r, l); err != nil {
		t.Fatal(err)
	}
	if !slices.Contains(l.requests, "day.png") || slices.Contains(l.requests, "") {
		t.Errorf("requests = %v", l.requests)
	}
	if s.SurfaceMaterial().Texture(material.TextureSlotDay).Width != 1 {
		t.Error("texture applied before Update")
	}

	s.Update(0)
	if s.SurfaceMaterial().Texture(material.TextureSlotDay).Width != 2 {
		t.Error("loaded day texture not applied")
	}
	if s.SurfaceMaterial().Texture(material.TextureSlotNight).Width != 1 {
		t.Error("failed night load replaced the fallback")
	}

	r.textures = nil
	r.bindGroups = nil
	if err := s.Draw(r); err != nil {
		t.Fatal(err)
	}
	if len(r.textures) != 1 || r.textures[0].width != 2 || r.textures[0].binding != 2 {
		t.Errorf("uploads = %+v", r.textures)
	}
	if len(r.bindGroups) != 1 || !strings.HasSuffix(r.bindGroups[0], "_planet_surface") {
		t.Errorf("rebuilt bind groups = %v", r.bindGroups)
	}
	if len(s.SurfaceMaterial().PendingTextures()) != 0 {
		t.Error("pending textures not cleared")
	}
}

func TestSceneEmptyFields(t *testing.T) {
	cfg := testConfig()
	cfg.StarCount = 0
	cfg.Nebula.Count = 0
	s := NewScene("empty", cfg)
	r := newFakeRenderer()
	if err := s.Init(r, nil); err != nil {
		t.Fatal(err)
	}
	s.Update(1)
	if err := s.Draw(r); err != nil {
		t.Fatal(err)
	}
	if r.drawMeshes[0].InstanceCount() != 0 || r.drawMeshes[1].InstanceCount() != 0 {
		t.Errorf("empty fields have instances")
	}
}

func TestSceneResize(t *testing.T) {
	s := NewScene("earth", testConfig())
	s.Resize(800, 400)
	if s.Camera().Aspect() != 2 {
		t.Errorf("aspect = %v", s.Camera().Aspect())
	}
	s.Resize(0, 400)
	if s.Camera().Aspect() != 2 {
		t.Errorf("zero width changed aspect")
	}
}
