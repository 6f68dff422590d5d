package renderer

import (
	"errors"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/texset/internal/engine/texture"
)

// Uploader moves decoded textures into GL texture objects. It satisfies the
// asset manager's upload hook and must only be used on the GL thread.
type Uploader struct{}

// Upload creates a GL texture from t's pixels and stores its name in t.ID.
func (Uploader) Upload(t *texture.Texture) error {
	if t.Image == nil || len(t.Image.Pix) == 0 {
		return errors.New("texture has no pixels")
	}
	t.ID = UploadTexture(t.Image.Pix, t.Width, t.Height)
	if t.ID == 0 {
		return errors.New("glGenTextures returned no name")
	}
	return nil
}

// Unload deletes the GL texture backing t.
func (Uploader) Unload(t *texture.Texture) {
	if t.ID != 0 {
		DeleteTexture(t.ID)
		t.ID = 0
	}
}

// UploadTexture creates an OpenGL texture from tightly packed RGBA data.
// Atlases are sampled with nearest filtering so neighbouring sprites do not
// bleed into each other.
func UploadTexture(data []byte, width, height int) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(data))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texID
}

// DeleteTexture deletes an OpenGL texture.
func DeleteTexture(texID uint32) {
	gl.DeleteTextures(1, &texID)
}
