package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/paperboard/bluemarble/internal/camera"
)

// ConfigEnv names the environment variable holding the config path.
const ConfigEnv = "BLUEMARBLE_CONFIG"

// DefaultConfigPath is read when ConfigEnv is unset. It may be absent.
const DefaultConfigPath = "bluemarble.toml"

// Mesh kinds.
const (
	MeshSphere = "sphere"
	MeshQuad   = "quad"
)

// ErrConfig is matched by every configuration error.
var ErrConfig = errors.New("invalid configuration")

// Config is the full configuration of the process.
type Config struct {
	LogLevel    string `toml:"log_level" yaml:"log_level"`
	CheckErrors bool   `toml:"check_errors" yaml:"check_errors"` // drain GL errors every frame

	Window WindowConfig `toml:"window" yaml:"window"`
	Camera CameraConfig `toml:"camera" yaml:"camera"`
	Scene  SceneConfig  `toml:"scene" yaml:"scene"`
	Light  LightConfig  `toml:"light" yaml:"light"`
}

// WindowConfig configures the window and its context.
type WindowConfig struct {
	Width     int    `toml:"width" yaml:"width"`
	Height    int    `toml:"height" yaml:"height"`
	Title     string `toml:"title" yaml:"title"`
	Resizable bool   `toml:"resizable" yaml:"resizable"`
	VSync     bool   `toml:"vsync" yaml:"vsync"`
}

// CameraConfig configures the camera.
type CameraConfig struct {
	Position    [3]float32 `toml:"position" yaml:"position"`
	FOV         float32    `toml:"fov" yaml:"fov"`
	Near        float32    `toml:"near" yaml:"near"`
	Far         float32    `toml:"far" yaml:"far"`
	Speed       float32    `toml:"speed" yaml:"speed"`
	Sensitivity float32    `toml:"sensitivity" yaml:"sensitivity"`
}

// SceneConfig selects what is drawn.
type SceneConfig struct {
	Mesh       string     `toml:"mesh" yaml:"mesh"`
	Resolution int        `toml:"resolution" yaml:"resolution"`
	Textured   bool       `toml:"textured" yaml:"textured"`
	Lit        bool       `toml:"lit" yaml:"lit"`
	Texture    string     `toml:"texture" yaml:"texture"`       // empty: embedded map
	Shader     string     `toml:"shader" yaml:"shader"`         // empty: named after Mesh
	ShaderDir  string     `toml:"shader_dir" yaml:"shader_dir"` // empty: embedded sources
	ClearColor [4]float32 `toml:"clear_color" yaml:"clear_color"`
}

// LightConfig configures the directional light.
type LightConfig struct {
	Direction [3]float32 `toml:"direction" yaml:"direction"`
	Intensity float32    `toml:"intensity" yaml:"intensity"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "Blue Marble",
			Resizable: true,
			VSync:     true,
		},
		Camera: CameraConfig{
			Position:    camera.DefaultPosition,
			FOV:         camera.DefaultFOV,
			Near:        camera.DefaultNear,
			Far:         camera.DefaultFar,
			Speed:       camera.DefaultSpeed,
			Sensitivity: camera.DefaultSensitivity,
		},
		Scene: SceneConfig{
			Mesh:       MeshSphere,
			Resolution: 64,
			Textured:   true,
			Lit:        true,
			ClearColor: [4]float32{0, 0, 0, 1},
		},
		Light: LightConfig{
			Direction: [3]float32{1, 0.5, 1},
			Intensity: 1.2,
		},
	}
}

// ConfigPath returns the path named by ConfigEnv, or
// DefaultConfigPath. explicit reports whether ConfigEnv was set.
func ConfigPath() (path string, explicit bool) {
	if p := os.Getenv(ConfigEnv); p != "" {
		return p, true
	}
	return DefaultConfigPath, false
}

// LoadConfig reads path over DefaultConfig. TOML or YAML is
// picked by extension. A missing file is an error only if
// explicit is set. The result is validated.
func LoadConfig(path string, explicit bool) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return cfg, nil
	case err != nil:
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := DecodeConfig(&cfg, filepath.Ext(path), b); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// DecodeConfig decodes data in the format of ext (".toml",
// ".yaml" or ".yml") into cfg. Unknown keys are rejected.
func DecodeConfig(cfg *Config, ext string, data []byte) error {
	switch strings.ToLower(ext) {
	case ".toml":
		return toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err := dec.Decode(cfg)
		if errors.Is(err, io.EOF) {
			// empty document
			return nil
		}
		return err
	}
	return fmt.Errorf("%w: unknown config format %q", ErrConfig, ext)
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{ErrConfig}, args...)...)
	}
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return bad("window size %dx%d", c.Window.Width, c.Window.Height)
	case c.Scene.Mesh != MeshSphere && c.Scene.Mesh != MeshQuad:
		return bad("unknown mesh %q", c.Scene.Mesh)
	case c.Scene.Mesh == MeshSphere && c.Scene.Resolution < 2:
		return bad("sphere resolution %d, want at least 2", c.Scene.Resolution)
	case c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far:
		return bad("camera planes near=%v far=%v", c.Camera.Near, c.Camera.Far)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return bad("camera fov %v", c.Camera.FOV)
	case c.Scene.Lit && c.Light.Direction == [3]float32{}:
		return bad("light direction is zero")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps debug/info/warn/error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("%w: log level %q", ErrConfig, s)
	}
	return l, nil
}

// CameraOptions converts the camera section for camera.New.
func (c *Config) CameraOptions() camera.Options {
	position := mgl32.Vec3(c.Camera.Position)
	return camera.Options{
		Position:    &position,
		FOV:         c.Camera.FOV,
		Aspect:      float32(c.Window.Width) / float32(c.Window.Height),
		Near:        c.Camera.Near,
		Far:         c.Camera.Far,
		Speed:       c.Camera.Speed,
		Sensitivity: c.Camera.Sensitivity,
	}
}

// ShaderName returns the base name of the program to compile.
func (c *Config) ShaderName() string {
	if c.Scene.Shader != "" {
		return c.Scene.Shader
	}
	return c.Scene.Mesh
}
