package material

// Default atmosphere tuning.
const (
	DefaultRimColor     uint32  = 0x0088ff
	DefaultFacingColor  uint32  = 0x000000
	DefaultFresnelBias  float32 = 0.1
	DefaultFresnelScale float32 = 1.0
	DefaultFresnelPower float32 = 4.0
)

// atmosphereMaterial is the implementation of the AtmosphereMaterial interface.
type atmosphereMaterial struct {
	material
	rimColor    [3]float32
	facingColor [3]float32
	bias        float32
	scale       float32
	power       float32
}

// AtmosphereMaterial is the fresnel rim shading model for the translucent shell around the
// planet. All parameters are constant for the material's lifetime.
type AtmosphereMaterial interface {
	Material

	// RimColor retrieves the linear color seen at grazing angles.
	//
	// Returns:
	//   - [3]float32: the rim color
	RimColor() [3]float32

	// FacingColor retrieves the linear color seen head-on.
	//
	// Returns:
	//   - [3]float32: the facing color
	FacingColor() [3]float32

	// Fresnel retrieves the bias, scale and power terms.
	//
	// Returns:
	//   - float32: bias
	//   - float32: scale
	//   - float32: power
	Fresnel() (float32, float32, float32)

	// Params builds the GPU uniform for the atmosphere program.
	//
	// Returns:
	//   - GPUAtmosphereParams: the uniform data
	Params() GPUAtmosphereParams

	// Shade evaluates the atmosphere program on the CPU for one sample.
	//
	// Parameters:
	//   - worldPos: the shaded point
	//   - cameraPos: the camera position
	//   - worldNormal: world-space normal
	//
	// Returns:
	//   - [3]float32: the RGB color
	//   - float32: the alpha
	Shade(worldPos, cameraPos, worldNormal [3]float32) ([3]float32, float32)
}

var _ AtmosphereMaterial = &atmosphereMaterial{}

// NewAtmosphereMaterial creates an atmosphere material with the default blue rim.
//
// Parameters:
//   - name: the material identifier
//   - options: variadic list of AtmosphereMaterialBuilderOption functions
//
// Returns:
//   - AtmosphereMaterial: the new material
func NewAtmosphereMaterial(name string, options ...AtmosphereMaterialBuilderOption) AtmosphereMaterial {
	m := &atmosphereMaterial{
		material:    material{name: name, pipelineKey: name},
		rimColor:    ParseHexColor(DefaultRimColor),
		facingColor: ParseHexColor(DefaultFacingColor),
		bias:        DefaultFresnelBias,
		scale:       DefaultFresnelScale,
		power:       DefaultFresnelPower,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *atmosphereMaterial) RimColor() [3]float32 {
	return m.rimColor
}

func (m *atmosphereMaterial) FacingColor() [3]float32 {
	return m.facingColor
}

func (m *atmosphereMaterial) Fresnel() (float32, float32, float32) {
	return m.bias, m.scale, m.power
}

func (m *atmosphereMaterial) Params() GPUAtmosphereParams {
	return GPUAtmosphereParams{
		RimColor:    [4]float32{m.rimColor[0], m.rimColor[1], m.rimColor[2], 1},
		FacingColor: [4]float32{m.facingColor[0], m.facingColor[1], m.facingColor[2], 1},
		Bias:        m.bias,
		Scale:       m.scale,
		Power:       m.power,
	}
}

func (m *atmosphereMaterial) Uniform() []byte {
	p := m.Params()
	return p.Marshal()
}

func (m *atmosphereMaterial) Shade(worldPos, cameraPos, worldNormal [3]float32) ([3]float32, float32) {
	r := FresnelFactor(worldPos, cameraPos, worldNormal, m.bias, m.scale, m.power)
	return AtmosphereColor(m.facingColor, m.rimColor, r)
}
