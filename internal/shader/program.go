// Package shader compiles and links GLSL vertex/fragment pairs
// into programs and sets their uniform parameters.
package shader

import (
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Uniform names shared by every program of the renderer.
const (
	UniformModelViewProjection = "modelViewProjection"
	UniformNormalMatrix        = "normalMatrix"
	UniformTextureSampler      = "textureSampler"
	UniformLightDirection      = "lightDirection"
	UniformLightIntensity      = "lightIntensity"
	UniformLightEnabled        = "lightEnabled" // bool; false skips shading
)

// Vertex attribute locations, fixed with layout(location = N) in GLSL.
const (
	LocationPosition uint32 = 0
	LocationNormal   uint32 = 1
	LocationColor    uint32 = 2
	LocationTexCoord uint32 = 3
)

// Stage identifies a shader stage.
type Stage uint32

// Stages.
const (
	Vertex   Stage = gl.VERTEX_SHADER
	Fragment Stage = gl.FRAGMENT_SHADER
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	}
	return fmt.Sprintf("Stage(%#x)", uint32(s))
}

// CompileError carries the compiler log of a failed stage.
type CompileError struct {
	Name  string
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader: failed to compile %s stage of %s: %s", e.Stage, e.Name, e.Log)
}

// LinkError carries the linker log of a failed program.
type LinkError struct {
	Name string
	Log  string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader: failed to link %s: %s", e.Name, e.Log)
}

// noCopy may be embedded into structs which must not be copied
// after first use. See sync.noCopy.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Program is a linked GL program. It owns its GL object.
type Program struct {
	_        noCopy
	id       uint32
	name     string
	uniforms map[string]int32
}

// ID returns the GL name of p.
func (p *Program) ID() uint32 { return p.id }

// Name returns the base path p was built from.
func (p *Program) Name() string { return p.name }

// Use makes p the current program.
// It panics if p was released.
func (p *Program) Use() {
	if p.id == 0 {
		panic("shader: use of released program " + p.name)
	}
	gl.UseProgram(p.id)
}

// Unuse restores the zero program.
func (p *Program) Unuse() { gl.UseProgram(0) }

// Release deletes the GL program. Calling it again is a no-op.
func (p *Program) Release() {
	if p.id == 0 {
		return
	}
	gl.DeleteProgram(p.id)
	p.id = 0
	p.uniforms = nil
}

// Location returns the location of the named uniform, or -1
// if the program has no such active uniform.
// Lookups are cached per program.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if p.uniforms == nil {
		p.uniforms = make(map[string]int32)
	}
	p.uniforms[name] = loc
	return loc
}

// SetMat4 sets a mat4 uniform of the current program.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.Location(name), 1, false, &m[0])
}

// SetVec3 sets a vec3 uniform of the current program.
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3fv(p.Location(name), 1, &v[0])
}

// SetFloat sets a float uniform of the current program.
func (p *Program) SetFloat(name string, f float32) {
	gl.Uniform1f(p.Location(name), f)
}

// SetInt sets an int (or sampler) uniform of the current program.
func (p *Program) SetInt(name string, i int32) {
	gl.Uniform1i(p.Location(name), i)
}

// Compiler builds programs from shader files found in FS.
type Compiler struct {
	FS     fs.FS
	Logger *slog.Logger
}

// Compile reads base+".vert" and base+".frag", compiles and links them.
// Compiler and linker logs are written to c.Logger and carried
// in the returned error.
func (c *Compiler) Compile(base string) (*Program, error) {
	logger := c.logger()
	src, err := ReadSources(c.FS, base)
	if err != nil {
		logger.Error("shader source not found", "program", base, "err", err)
		return nil, err
	}
	p, err := CompileSources(src)
	if err != nil {
		switch e := err.(type) {
		case *CompileError:
			logger.Error("shader compilation failed", "program", base, "stage", e.Stage.String(), "log", e.Log)
		case *LinkError:
			logger.Error("program link failed", "program", base, "log", e.Log)
		}
		return nil, err
	}
	logger.Debug("program linked", "program", base, "id", p.id)
	return p, nil
}

func (c *Compiler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// CompileSources compiles and links an in-memory source pair.
// It requires a current GL context.
func CompileSources(src Sources) (*Program, error) {

	vertexShader, err := compileShader(src.Name, src.Vertex, Vertex)
	if err != nil {
		return nil, err
	}

	fragmentShader, err := compileShader(src.Name, src.Fragment, Fragment)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return nil, err
	}

	// stage objects are not needed once linking is done
	defer gl.DeleteShader(vertexShader)
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()

	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {

		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		gl.DeleteProgram(program)
		return nil, &LinkError{Name: src.Name, Log: trimLog(log)}

	}

	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)

	return &Program{id: program, name: src.Name}, nil

}

func compileShader(name, source string, stage Stage) (uint32, error) {

	shader := gl.CreateShader(uint32(stage))

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {

		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		gl.DeleteShader(shader)
		return 0, &CompileError{Name: name, Stage: stage, Log: trimLog(log)}

	}

	return shader, nil

}

// trimLog drops the NUL padding and trailing whitespace of an info log.
func trimLog(log string) string {
	return strings.TrimRight(log, "\x00\r\n\t ")
}
