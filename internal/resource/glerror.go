package resource

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
)

var glErrorLookup = map[uint32]string{
	0x500: `GL_INVALID_ENUM`,
	0x501: `GL_INVALID_VALUE`,
	0x502: `GL_INVALID_OPERATION`,
	0x503: `GL_STACK_OVERFLOW`,
	0x504: `GL_STACK_UNDERFLOW`,
	0x505: `GL_OUT_OF_MEMORY`,
	0x506: `GL_INVALID_FRAMEBUFFER_OPERATION`,
	0x507: `GL_CONTEXT_LOST`,
}

// GLError is an error flag returned by glGetError.
type GLError uint32

func (e GLError) Error() string {
	if s, ok := glErrorLookup[uint32(e)]; ok {
		return "GL_ERROR: " + s
	}
	return fmt.Sprintf("GL_ERROR UNKNOWN: %#x", uint32(e))
}

// maxErrorFlags bounds CheckError when the context is lost and
// glGetError keeps returning the same flag.
const maxErrorFlags = 16

// CheckError drains the accumulated GL error flags.
// It returns nil if there were none.
func CheckError() error {
	var errs []error
	for i := 0; i < maxErrorFlags; i++ {
		glerr := gl.GetError()
		if glerr == gl.NO_ERROR {
			break
		}
		errs = append(errs, GLError(glerr))
	}
	return errors.Join(errs...)
}
