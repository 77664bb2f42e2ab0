// Package render draws uploaded meshes with a shader program.
// Every scene variant (quad or sphere, textured or not, lit or not)
// goes through the same Draw step.
package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/paperboard/bluemarble/internal/resource"
	"github.com/paperboard/bluemarble/internal/shader"
)

// TextureUnit is the unit the drawable texture is bound to.
const TextureUnit = 0

// Light is a directional light.
type Light struct {
	Direction mgl32.Vec3 // world space, towards the light
	Intensity float32
}

// Drawable is everything one draw call needs.
// Texture and Light are optional.
type Drawable struct {
	Mesh    *resource.Mesh
	Texture *resource.Texture
	Light   *Light
	Model   mgl32.Mat4
}

// Frame holds the camera matrices of the frame being drawn.
type Frame struct {
	View           mgl32.Mat4
	ViewProjection mgl32.Mat4
}

// Uniforms are the parameter values computed for one drawable.
type Uniforms struct {
	ModelViewProjection mgl32.Mat4
	NormalMatrix        mgl32.Mat4
	LightDirection      mgl32.Vec3 // view space
	LightIntensity      float32
	Lit                 bool
	Textured            bool
}

// Compute returns the uniform values of d in frame f.
func (d *Drawable) Compute(f Frame) Uniforms {
	u := Uniforms{
		ModelViewProjection: f.ViewProjection.Mul4(d.Model),
		Textured:            d.Texture != nil,
	}
	if d.Light != nil {
		u.Lit = true
		u.NormalMatrix = NormalMatrix(f.View.Mul4(d.Model))
		u.LightDirection = f.View.Mul4x1(d.Light.Direction.Vec4(0)).Vec3().Normalize()
		u.LightIntensity = d.Light.Intensity
	}
	return u
}

// NormalMatrix returns the inverse transpose of modelView.
func NormalMatrix(modelView mgl32.Mat4) mgl32.Mat4 {
	return modelView.Inv().Transpose()
}

// Draw binds p and d, draws every index of d.Mesh, and unbinds
// in reverse order.
func Draw(p *shader.Program, d *Drawable, f Frame) {
	u := d.Compute(f)

	// activate program, set parameters
	p.Use()
	p.SetMat4(shader.UniformModelViewProjection, u.ModelViewProjection)
	p.SetInt(shader.UniformLightEnabled, boolInt(u.Lit))
	if u.Lit {
		p.SetMat4(shader.UniformNormalMatrix, u.NormalMatrix)
		p.SetVec3(shader.UniformLightDirection, u.LightDirection)
		p.SetFloat(shader.UniformLightIntensity, u.LightIntensity)
	}
	if u.Textured {
		p.SetInt(shader.UniformTextureSampler, TextureUnit)
	}

	// bind vertex array, then texture
	d.Mesh.Bind()
	if u.Textured {
		d.Texture.Bind(TextureUnit)
	}

	d.Mesh.Draw()

	// unbind texture, vertex array, program
	if u.Textured {
		d.Texture.Unbind(TextureUnit)
	}
	d.Mesh.Unbind()
	p.Unuse()
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
