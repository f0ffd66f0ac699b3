package shader

import _ "embed"

// ColorSpaceSource holds the linear_to_srgb WGSL helper injected by
// //@planet:include color_space.
//
//go:embed assets/color_space.wgsl
var ColorSpaceSource string
