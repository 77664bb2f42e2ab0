package app

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/paperboard/bluemarble/assets"
	"github.com/paperboard/bluemarble/internal/geometry"
	"github.com/paperboard/bluemarble/internal/render"
	"github.com/paperboard/bluemarble/internal/resource"
	"github.com/paperboard/bluemarble/internal/shader"
	"github.com/paperboard/bluemarble/shaders"
)

// Names of the scene resources in the resource.Manager.
const (
	meshName    = "mesh"
	textureName = "texture"
)

// Scene is the program and drawable built from a SceneConfig.
type Scene struct {
	Program   *shader.Program
	Drawable  render.Drawable
	Resources *resource.Manager
}

// Release frees the program and every uploaded resource.
func (s *Scene) Release() {
	s.Resources.ReleaseAll()
	s.Program.Release()
}

// BuildMesh generates the mesh selected by cfg and its model matrix.
func BuildMesh(cfg SceneConfig) (*geometry.Mesh, mgl32.Mat4, error) {
	switch cfg.Mesh {
	case MeshSphere:
		m, err := geometry.Sphere(cfg.Resolution)
		// poles lie on z; put north up
		return m, mgl32.HomogRotate3DX(-mgl32.DegToRad(90)), err
	case MeshQuad:
		return geometry.Quad(), mgl32.Ident4(), nil
	}
	return nil, mgl32.Mat4{}, fmt.Errorf("%w: unknown mesh %q", ErrConfig, cfg.Mesh)
}

// fileFS splits path into a directory file system and a name in it.
func fileFS(path string) (fs.FS, string) {
	dir, name := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}
	return os.DirFS(dir), name
}

// LoadScene compiles the program and uploads the geometry and
// texture of cfg. It requires a current GL context.
func LoadScene(cfg *Config, logger *slog.Logger) (*Scene, error) {
	sc := cfg.Scene

	var shaderFS fs.FS = shaders.FS
	if sc.ShaderDir != "" {
		shaderFS = os.DirFS(sc.ShaderDir)
	}
	program, err := (&shader.Compiler{FS: shaderFS, Logger: logger}).Compile(cfg.ShaderName())
	if err != nil {
		return nil, err
	}

	s := &Scene{Program: program, Resources: resource.NewManager(logger)}
	if err := s.upload(cfg, logger); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}

func (s *Scene) upload(cfg *Config, logger *slog.Logger) error {
	sc := cfg.Scene

	mesh, model, err := BuildMesh(sc)
	if err != nil {
		return err
	}
	gm, err := s.Resources.UploadMesh(meshName, mesh)
	if err != nil {
		return err
	}
	s.Drawable = render.Drawable{Mesh: gm, Model: model}

	if sc.Textured {
		fsys, name := fs.FS(assets.FS), assets.Earth
		if sc.Texture != "" {
			fsys, name = fileFS(sc.Texture)
		}
		img, err := resource.DecodeImage(fsys, name)
		if err != nil {
			return err
		}
		tex, err := s.Resources.UploadTexture(textureName, img)
		if err != nil {
			return err
		}
		s.Drawable.Texture = tex
	}

	if sc.Lit {
		if !mesh.Attributes.Has(geometry.Normal) {
			logger.Warn("lighting disabled: mesh has no normals", "mesh", sc.Mesh)
		} else {
			s.Drawable.Light = &render.Light{
				Direction: mgl32.Vec3(cfg.Light.Direction).Normalize(),
				Intensity: cfg.Light.Intensity,
			}
		}
	}
	return nil
}
