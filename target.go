package sheaf

import "github.com/hajimehoshi/ebiten/v2"

// RenderState accompanies every vertex submission.
type RenderState struct {
	// Transform is the view matrix applied on top of vertex destinations.
	Transform [6]float64
	Blend     BlendMode
}

// RenderTarget receives grouped vertex submissions. Implementations must not
// retain the vertex or index slices after SubmitVertices returns.
type RenderTarget interface {
	SubmitVertices(vertices []ebiten.Vertex, indices []uint32, tex Texture, state RenderState)
	Clear(c Color)
}

// EbitenTarget draws submissions onto an ebiten image with DrawTriangles32.
type EbitenTarget struct {
	dst       *ebiten.Image
	scratch   []ebiten.Vertex
	drawCalls int
}

// NewEbitenTarget wraps dst, typically the screen passed to Game.Draw.
func NewEbitenTarget(dst *ebiten.Image) *EbitenTarget {
	return &EbitenTarget{dst: dst}
}

// SetImage retargets subsequent draws, e.g. to this frame's screen image.
func (t *EbitenTarget) SetImage(dst *ebiten.Image) {
	t.dst = dst
}

// DrawCalls returns the number of DrawTriangles32 calls since the last
// ResetStats.
func (t *EbitenTarget) DrawCalls() int {
	return t.drawCalls
}

// ResetStats zeroes the draw-call counter.
func (t *EbitenTarget) ResetStats() {
	t.drawCalls = 0
}

// SubmitVertices draws one group in a single DrawTriangles32 call.
func (t *EbitenTarget) SubmitVertices(vertices []ebiten.Vertex, indices []uint32, tex Texture, state RenderState) {
	if t.dst == nil || tex == nil || len(vertices) == 0 || len(indices) == 0 {
		return
	}
	src := tex.EbitenImage()
	if src == nil {
		return
	}

	verts := vertices
	if !isIdentity(state.Transform) {
		t.scratch = transformVertices(t.scratch[:0], vertices, state.Transform)
		verts = t.scratch
	}

	var triOp ebiten.DrawTrianglesOptions
	triOp.Blend = state.Blend.EbitenBlend()
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha

	t.dst.DrawTriangles32(verts, indices, src, &triOp)
	t.drawCalls++
}

// Clear fills the whole target with c.
func (t *EbitenTarget) Clear(c Color) {
	if t.dst == nil {
		return
	}
	t.dst.Fill(c.toRGBA())
}

// isIdentity treats the zero matrix as "no transform" so a zero-value
// RenderState draws untransformed.
func isIdentity(m [6]float64) bool {
	return m == IdentityTransform || m == [6]float64{}
}

// transformVertices appends src to dst with destinations mapped through m.
func transformVertices(dst, src []ebiten.Vertex, m [6]float64) []ebiten.Vertex {
	for _, v := range src {
		x, y := transformPoint(m, float64(v.DstX), float64(v.DstY))
		v.DstX = float32(x)
		v.DstY = float32(y)
		dst = append(dst, v)
	}
	return dst
}
