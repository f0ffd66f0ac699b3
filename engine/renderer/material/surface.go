package material

import (
	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/Carmen-Shannon/oxy-planet/engine/light"
)

// TextureSlot identifies one of the surface material's three maps.
type TextureSlot int

const (
	// TextureSlotDay is the lit-side color map.
	TextureSlotDay TextureSlot = iota
	// TextureSlotNight is the dark-side color map (city lights).
	TextureSlotNight
	// TextureSlotClouds is the cloud cover map; only the green channel is read.
	TextureSlotClouds
)

// TextureSlots lists every surface slot in binding order.
var TextureSlots = []TextureSlot{TextureSlotDay, TextureSlotNight, TextureSlotClouds}

// String returns the short slot name.
func (s TextureSlot) String() string {
	switch s {
	case TextureSlotDay:
		return "day"
	case TextureSlotNight:
		return "night"
	case TextureSlotClouds:
		return "clouds"
	default:
		return "unknown"
	}
}

// VarName returns the WGSL variable the slot is bound to in the surface program.
func (s TextureSlot) VarName() string {
	return s.String() + "Texture"
}

// Default surface map locations, relative to the working directory.
const (
	DefaultDayTexturePath    = "./earth/earth-daymap-4k.jpg"
	DefaultNightTexturePath  = "./earth/earth-nightmap-4k.jpg"
	DefaultCloudsTexturePath = "./earth/earth-clouds-4k.jpg"
)

// DefaultSunDirection returns the unit sun direction derived from the position (-2, 0.5, 1.5).
//
// Returns:
//   - [3]float32: the normalized sun direction
func DefaultSunDirection() [3]float32 {
	return common.Normalize3([3]float32{-2, 0.5, 1.5})
}

// surfaceMaterial is the implementation of the SurfaceMaterial interface.
type surfaceMaterial struct {
	material
	lights   light.GPUSceneLights
	textures [3]*common.ImportedTexture
	paths    [3]string
	pending  [3]bool
}

// SurfaceMaterial is the planet surface shading model: a day map and a night map blended
// across a soft terminator, with lit-side cloud cover, driven by the directional light
// packed into its SceneLights uniform.
//
// Each slot starts bound to a 1x1 transparent fallback so the planet renders before its
// images finish loading. SetTexture swaps a slot and flags it pending so the scene can
// re-upload it on the frame thread.
type SurfaceMaterial interface {
	Material

	// SunDirection retrieves the unit vector towards the sun, the reverse of the direction
	// the packed sun light travels.
	//
	// Returns:
	//   - [3]float32: the sun direction
	SunDirection() [3]float32

	// Lights retrieves the packed hemisphere and sun uniform bound next to the surface maps.
	//
	// Returns:
	//   - light.GPUSceneLights: the uniform data
	Lights() light.GPUSceneLights

	// Texture retrieves the image currently assigned to a slot.
	//
	// Parameters:
	//   - slot: the texture slot
	//
	// Returns:
	//   - *common.ImportedTexture: the image, never nil
	Texture(slot TextureSlot) *common.ImportedTexture

	// TexturePath retrieves the file a slot should be loaded from.
	//
	// Parameters:
	//   - slot: the texture slot
	//
	// Returns:
	//   - string: the image path
	TexturePath(slot TextureSlot) string

	// SetTexture assigns a decoded image to a slot and marks the slot pending.
	// A nil texture restores the fallback.
	//
	// Parameters:
	//   - slot: the texture slot
	//   - tex: the decoded image
	SetTexture(slot TextureSlot, tex *common.ImportedTexture)

	// PendingTextures lists the slots changed since the last ClearPendingTextures.
	//
	// Returns:
	//   - []TextureSlot: the changed slots in binding order
	PendingTextures() []TextureSlot

	// ClearPendingTextures resets the pending set after the textures were uploaded.
	ClearPendingTextures()

	// Shade evaluates the surface program on the CPU for one sample using this material's sun.
	//
	// Parameters:
	//   - normal: world-space normal
	//   - day: day map sample
	//   - night: night map sample
	//   - cloudChannel: green channel of the cloud map sample
	//
	// Returns:
	//   - [3]float32: the shaded color
	Shade(normal, day, night [3]float32, cloudChannel float32) [3]float32
}

var _ SurfaceMaterial = &surfaceMaterial{}

// NewSurfaceMaterial creates a surface material with fallback textures bound in every slot.
//
// Parameters:
//   - name: the material identifier
//   - options: variadic list of SurfaceMaterialBuilderOption functions
//
// Returns:
//   - SurfaceMaterial: the new material
func NewSurfaceMaterial(name string, options ...SurfaceMaterialBuilderOption) SurfaceMaterial {
	m := &surfaceMaterial{
		material: material{name: name, pipelineKey: name},
		paths:    [3]string{DefaultDayTexturePath, DefaultNightTexturePath, DefaultCloudsTexturePath},
	}
	m.lights.SunDirection = negate3(DefaultSunDirection())
	for _, slot := range TextureSlots {
		m.textures[slot] = fallbackTexture(slot)
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func fallbackTexture(slot TextureSlot) *common.ImportedTexture {
	return common.SolidTexture(slot.String()+"_fallback", 0, 0, 0, 0)
}

func negate3(v [3]float32) [3]float32 {
	return [3]float32{-v[0], -v[1], -v[2]}
}

func (m *surfaceMaterial) SunDirection() [3]float32 {
	return negate3(m.lights.SunDirection)
}

func (m *surfaceMaterial) Lights() light.GPUSceneLights {
	return m.lights
}

func (m *surfaceMaterial) Uniform() []byte {
	return m.lights.Marshal()
}

func (m *surfaceMaterial) Texture(slot TextureSlot) *common.ImportedTexture {
	return m.textures[slot]
}

func (m *surfaceMaterial) Textures() []*common.ImportedTexture {
	return []*common.ImportedTexture{m.textures[TextureSlotDay], m.textures[TextureSlotNight], m.textures[TextureSlotClouds]}
}

func (m *surfaceMaterial) TexturePath(slot TextureSlot) string {
	return m.paths[slot]
}

func (m *surfaceMaterial) SetTexture(slot TextureSlot, tex *common.ImportedTexture) {
	if tex == nil {
		tex = fallbackTexture(slot)
	}
	m.textures[slot] = tex
	m.pending[slot] = true
}

func (m *surfaceMaterial) PendingTextures() []TextureSlot {
	var out []TextureSlot
	for _, slot := range TextureSlots {
		if m.pending[slot] {
			out = append(out, slot)
		}
	}
	return out
}

func (m *surfaceMaterial) ClearPendingTextures() {
	m.pending = [3]bool{}
}

func (m *surfaceMaterial) Shade(normal, day, night [3]float32, cloudChannel float32) [3]float32 {
	return SurfaceColor(m.SunDirection(), normal, day, night, cloudChannel)
}
