// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// PhongVertexShader transforms vertices for the lit color pass.
//
//go:embed phong.vert
var PhongVertexShader string

// PhongFragmentShader shades with one light of any supported kind.
//
//go:embed phong.frag
var PhongFragmentShader string

// DepthVertexShader transforms vertices for the depth pass.
//
//go:embed depth.vert
var DepthVertexShader string

// DepthFragmentShader writes linear eye-space depth into the red channel.
//
//go:embed depth.frag
var DepthFragmentShader string

// UnlitVertexShader passes vertex colors and texture coordinates through.
//
//go:embed unlit.vert
var UnlitVertexShader string

// UnlitFragmentShader outputs texture or vertex color without lighting.
//
//go:embed unlit.frag
var UnlitFragmentShader string
