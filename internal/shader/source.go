package shader

import (
	"errors"
	"fmt"
	"io/fs"
)

// File suffixes of the two stages of a program.
const (
	VertexSuffix   = ".vert"
	FragmentSuffix = ".frag"
)

// ErrSourceNotFound is matched by every error about a shader
// source that could not be used: missing or empty.
var ErrSourceNotFound = errors.New("shader source not found")

// Distinct causes of ErrSourceNotFound.
var (
	ErrSourceMissing = fmt.Errorf("%w: file does not exist", ErrSourceNotFound)
	ErrSourceEmpty   = fmt.Errorf("%w: file is empty", ErrSourceNotFound)
)

// SourceError reports a shader stage file that could not be read.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string { return "shader: " + e.Path + ": " + e.Err.Error() }

func (e *SourceError) Unwrap() error { return e.Err }

// Sources is the text of a vertex/fragment pair.
type Sources struct {
	Name     string // base path, used in diagnostics
	Vertex   string
	Fragment string
}

// ReadSources reads base+".vert" and base+".frag" from fsys.
func ReadSources(fsys fs.FS, base string) (Sources, error) {
	vert, err := readStage(fsys, base+VertexSuffix)
	if err != nil {
		return Sources{}, err
	}
	frag, err := readStage(fsys, base+FragmentSuffix)
	if err != nil {
		return Sources{}, err
	}
	return Sources{Name: base, Vertex: vert, Fragment: frag}, nil
}

func readStage(fsys fs.FS, path string) (string, error) {
	b, err := fs.ReadFile(fsys, path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", &SourceError{Path: path, Err: ErrSourceMissing}
	case err != nil:
		return "", &SourceError{Path: path, Err: err}
	case len(b) == 0:
		return "", &SourceError{Path: path, Err: ErrSourceEmpty}
	}
	return string(b), nil
}
