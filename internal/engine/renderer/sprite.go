package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/texset/internal/engine/shader"
	"github.com/Faultbox/texset/pkg/math"
)

const spriteVertexShader = `#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;

uniform mat4 uProjection;

out vec2 vUV;

void main() {
	gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
	vUV = aUV;
}
`

const spriteFragmentShader = `#version 410 core
in vec2 vUV;
out vec4 FragColor;

uniform sampler2D uTexture;

void main() {
	FragColor = texture(uTexture, vUV);
}
`

// floats per vertex: x, y, u, v
const spriteStride = 4

// SpriteRenderer draws rectangles of a texture as screen-space quads.
type SpriteRenderer struct {
	program       uint32
	locProjection int32
	locTexture    int32
	vao           uint32
	vbo           uint32
}

// NewSpriteRenderer compiles the sprite shader and allocates the quad buffer.
func NewSpriteRenderer() (*SpriteRenderer, error) {
	program, err := shader.CompileProgram(spriteVertexShader, spriteFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("sprite shader: %w", err)
	}

	s := &SpriteRenderer{
		program:       program,
		locProjection: shader.GetUniform(program, "uProjection"),
		locTexture:    shader.GetUniform(program, "uTexture"),
	}

	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)

	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 6*spriteStride*4, nil, gl.DYNAMIC_DRAW)

	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, spriteStride*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, spriteStride*4, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	renderLog().Debug("sprite renderer created",
		zap.Uint32("program", program),
		zap.Uint32("vao", s.vao),
	)
	return s, nil
}

// Draw draws the src rectangle of a texture into dst. src is in texture
// pixels, dst in window pixels with the origin at the top-left corner.
func (s *SpriteRenderer) Draw(texID uint32, texW, texH int, src, dst math.Rect, screenW, screenH int) {
	if texID == 0 || src.Empty() || dst.Empty() {
		return
	}

	vertices := math.QuadVertices(src, dst, float32(texW), float32(texH))
	proj := math.Screen(float32(screenW), float32(screenH))

	gl.UseProgram(s.program)
	gl.UniformMatrix4fv(s.locProjection, 1, false, proj.Ptr())
	gl.Uniform1i(s.locTexture, 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texID)

	gl.BindVertexArray(s.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Close releases GL resources.
func (s *SpriteRenderer) Close() {
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
	}
	if s.vbo != 0 {
		gl.DeleteBuffers(1, &s.vbo)
	}
	if s.program != 0 {
		gl.DeleteProgram(s.program)
	}
}
