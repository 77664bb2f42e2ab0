package resource

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Texture upload errors.
var (
	ErrChannels  = errors.New("resource: unsupported channel count")
	ErrPixelSize = errors.New("resource: pixel data does not match image size")
)

// Texture is a 2-D GL texture with a full mipmap chain.
// It owns its GL object.
type Texture struct {
	_      noCopy
	id     uint32
	width  int
	height int
}

var textureFormats = map[int]uint32{
	1: gl.RED,
	2: gl.RG,
	3: gl.RGB,
	4: gl.RGBA,
}

// UploadTexture copies img into a new texture, builds its mipmaps,
// and sets trilinear minification, linear magnification, and
// repeat wrapping on both axes.
// It requires a current GL context.
func UploadTexture(img *Image) (*Texture, error) {
	format, ok := textureFormats[img.Channels]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrChannels, img.Channels)
	}
	if img.Width <= 0 || img.Height <= 0 || len(img.Pix) != img.Width*img.Height*img.Channels {
		return nil, fmt.Errorf("%w: %dx%dx%d, have %d bytes", ErrPixelSize, img.Width, img.Height, img.Channels, len(img.Pix))
	}

	t := &Texture{width: img.Width, height: img.Height}

	// create texture and bind to it
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)

	// rows of RGB data are not 4-byte aligned
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(format), int32(img.Width), int32(img.Height), 0, format, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// unbind texture
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return t, nil
}

// ID returns the GL name of t.
func (t *Texture) ID() uint32 { return t.id }

// Size returns the dimensions of the base level of t.
func (t *Texture) Size() (width, height int) { return t.width, t.height }

// Bind binds t to the given texture unit.
func (t *Texture) Bind(unit uint32) {
	if t.id == 0 {
		panic("resource: bind of released texture")
	}
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Unbind clears the texture bound to unit.
func (t *Texture) Unbind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Release deletes the GL object. Calling it again is a no-op.
func (t *Texture) Release() {
	if t.id == 0 {
		return
	}
	gl.DeleteTextures(1, &t.id)
	t.id = 0
}
