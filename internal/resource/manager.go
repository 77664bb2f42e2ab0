package resource

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/paperboard/bluemarble/internal/geometry"
)

// Manager errors.
var (
	ErrReleased  = errors.New("resource: manager already released")
	ErrDuplicate = errors.New("resource: name already in use")
)

type releaser interface{ Release() }

// Manager owns every GPU resource of a scene by name.
// It is used from the thread owning the GL context only.
type Manager struct {
	logger   *slog.Logger
	meshes   map[string]*Mesh
	textures map[string]*Texture
	order    []named // acquisition order
	released bool
}

type named struct {
	name string
	kind string
	res  releaser
}

// NewManager returns an empty Manager. A nil logger means slog.Default().
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		logger:   logger,
		meshes:   make(map[string]*Mesh),
		textures: make(map[string]*Texture),
	}
}

func (m *Manager) reserve(name string) error {
	if m.released {
		return ErrReleased
	}
	if _, ok := m.meshes[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	if _, ok := m.textures[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	return nil
}

// UploadMesh uploads mesh and stores it under name.
func (m *Manager) UploadMesh(name string, mesh *geometry.Mesh) (*Mesh, error) {
	if err := m.reserve(name); err != nil {
		return nil, err
	}
	gm, err := UploadMesh(mesh)
	if err != nil {
		return nil, fmt.Errorf("mesh %q: %w", name, err)
	}
	m.meshes[name] = gm
	m.add(name, "mesh", gm)
	m.logger.Info("mesh uploaded", "name", name, "vertices", len(mesh.Vertices), "indices", gm.IndexCount(), "attributes", mesh.Attributes.String())
	return gm, nil
}

// UploadTexture uploads img and stores it under name.
func (m *Manager) UploadTexture(name string, img *Image) (*Texture, error) {
	if err := m.reserve(name); err != nil {
		return nil, err
	}
	t, err := UploadTexture(img)
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", name, err)
	}
	m.textures[name] = t
	m.add(name, "texture", t)
	m.logger.Info("texture uploaded", "name", name, "width", img.Width, "height", img.Height, "channels", img.Channels)
	return t, nil
}

func (m *Manager) add(name, kind string, res releaser) {
	m.order = append(m.order, named{name, kind, res})
}

// Mesh returns the mesh stored under name.
func (m *Manager) Mesh(name string) (*Mesh, bool) {
	gm, ok := m.meshes[name]
	return gm, ok
}

// Texture returns the texture stored under name.
func (m *Manager) Texture(name string) (*Texture, bool) {
	t, ok := m.textures[name]
	return t, ok
}

// Names returns the stored names in acquisition order.
func (m *Manager) Names() []string {
	names := make([]string, len(m.order))
	for i, n := range m.order {
		names[i] = n.name
	}
	return names
}

// ReleaseAll releases every resource in reverse acquisition order.
// Resources handed out by m must not be used afterwards; further
// uploads fail with ErrReleased and later calls do nothing.
func (m *Manager) ReleaseAll() {
	if m.released {
		return
	}
	m.released = true
	for i := len(m.order) - 1; i >= 0; i-- {
		n := m.order[i]
		n.res.Release()
		m.logger.Debug("resource released", "kind", n.kind, "name", n.name)
	}
	m.order = nil
	clear(m.meshes)
	clear(m.textures)
}
