package resource

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io/fs"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrTextureDecode is matched by every image decode failure.
var ErrTextureDecode = errors.New("texture decode failed")

// DecodeError reports an image file that could not be decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("resource: %v: %s: %v", ErrTextureDecode, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() []error { return []error{ErrTextureDecode, e.Err} }

// Image is tightly packed 8-bit pixel data, bottom row first.
type Image struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int
}

// rgbChannels is the channel count every decoded texture is forced to.
const rgbChannels = 3

// DecodeImage decodes the image at path in fsys as RGB, flipped
// vertically so that texture coordinate (0,0) is the bottom-left
// of the picture.
func DecodeImage(fsys fs.FS, path string) (*Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return FlipRGB(src), nil
}

// FlipRGB converts src to packed RGB with the last row first.
// Alpha is dropped.
func FlipRGB(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	rgba, ok := src.(*image.NRGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(rgba, rgba.Rect, src, b.Min, draw.Src)
	}

	img := &Image{
		Pix:      make([]byte, w*h*rgbChannels),
		Width:    w,
		Height:   h,
		Channels: rgbChannels,
	}
	i := 0
	for y := h - 1; y >= 0; y-- {
		row := rgba.Pix[y*rgba.Stride:]
		for x := 0; x < w; x++ {
			copy(img.Pix[i:i+rgbChannels], row[x*4:x*4+rgbChannels])
			i += rgbChannels
		}
	}
	return img
}
