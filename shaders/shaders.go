// Package shaders embeds the default GLSL sources.
// Each program is a <name>.vert / <name>.frag pair.
package shaders

import "embed"

// FS holds sphere.{vert,frag} and quad.{vert,frag}.
//
//go:embed *.vert *.frag
var FS embed.FS

// Program base names.
const (
	Sphere = "sphere"
	Quad   = "quad"
)
