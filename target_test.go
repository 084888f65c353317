package sheaf

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestIsIdentity(t *testing.T) {
	if !isIdentity(IdentityTransform) {
		t.Error("IdentityTransform should be identity")
	}
	if !isIdentity([6]float64{}) {
		t.Error("zero matrix should mean no transform")
	}
	if isIdentity(TranslateTransform(1, 0)) {
		t.Error("translation is not identity")
	}
}

func TestTransformVertices(t *testing.T) {
	src := []ebiten.Vertex{{DstX: 1, DstY: 2, SrcX: 5, ColorA: 1}}
	got := transformVertices(nil, src, ConcatTransform(TranslateTransform(10, 20), ScaleTransform(2, 2)))
	if got[0].DstX != 12 || got[0].DstY != 24 {
		t.Errorf("dst = (%v,%v), want (12,24)", got[0].DstX, got[0].DstY)
	}
	if got[0].SrcX != 5 || got[0].ColorA != 1 {
		t.Error("non-position fields must be preserved")
	}
	if src[0].DstX != 1 {
		t.Error("source vertices must not be modified")
	}
}

func TestEbitenTargetWithoutImageIsNoop(t *testing.T) {
	target := NewEbitenTarget(nil)
	a := newTestAtlas(t, 16, 16, 0)
	target.SubmitVertices(make([]ebiten.Vertex, 4), []uint32{0, 1, 2, 1, 3, 2}, a, RenderState{})
	target.Clear(ColorWhite)
	if target.DrawCalls() != 0 {
		t.Errorf("DrawCalls = %d, want 0", target.DrawCalls())
	}
}

func TestColorToRGBA(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 0.5}.toRGBA()
	if c.R != 127 || c.G != 63 || c.B != 0 || c.A != 127 {
		t.Errorf("toRGBA = %+v", c)
	}
	r, _, _, a := c.RGBA()
	if r != 127*0x101 || a != 127*0x101 {
		t.Errorf("RGBA() = %d, %d", r, a)
	}
}

func TestBlendModeEbitenBlend(t *testing.T) {
	if BlendNormal.EbitenBlend() != ebiten.BlendSourceOver {
		t.Error("BlendNormal should be source-over")
	}
	if BlendAdd.EbitenBlend() != ebiten.BlendLighter {
		t.Error("BlendAdd should be lighter")
	}
	if BlendNone.EbitenBlend() != ebiten.BlendCopy {
		t.Error("BlendNone should be copy")
	}
	if BlendMode(200).EbitenBlend() != ebiten.BlendSourceOver {
		t.Error("unknown modes fall back to source-over")
	}
}

func TestRectContainsIntersects(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if !r.Contains(10, 10) || r.Contains(10.1, 5) {
		t.Error("Contains edge handling")
	}
	if !r.Intersects(Rect{X: 10, Y: 0, Width: 5, Height: 5}) {
		t.Error("adjacent rects intersect")
	}
	if r.Intersects(Rect{X: 11, Y: 0, Width: 5, Height: 5}) {
		t.Error("separate rects do not intersect")
	}
}
