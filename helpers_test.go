package sheaf

import (
	"image"
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// submission is one SubmitVertices call captured by recordTarget.
type submission struct {
	vertices []ebiten.Vertex
	indices  []uint32
	tex      Texture
	state    RenderState
}

// recordTarget is a headless RenderTarget that copies every submission.
type recordTarget struct {
	submits []submission
	clears  []Color
	// events interleaves "clear" and "submit" in call order.
	events []string
}

func (r *recordTarget) SubmitVertices(vertices []ebiten.Vertex, indices []uint32, tex Texture, state RenderState) {
	r.submits = append(r.submits, submission{
		vertices: append([]ebiten.Vertex(nil), vertices...),
		indices:  append([]uint32(nil), indices...),
		tex:      tex,
		state:    state,
	})
	r.events = append(r.events, "submit")
}

func (r *recordTarget) Clear(c Color) {
	r.clears = append(r.clears, c)
	r.events = append(r.events, "clear")
}

func (r *recordTarget) quads() int {
	n := 0
	for _, s := range r.submits {
		n += len(s.vertices) / 4
	}
	return n
}

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func newTestAtlas(t testing.TB, w, h, padding int) *Atlas {
	t.Helper()
	a, err := NewAtlas(AtlasConfig{Width: w, Height: h, Padding: padding})
	if err != nil {
		t.Fatalf("NewAtlas: %v", err)
	}
	return a
}

func mustPack(t testing.TB, a *Atlas, name string, w, h int) RegionID {
	t.Helper()
	id, err := a.Pack(name, solidImage(w, h, color.NRGBA{R: 255, A: 255}))
	if err != nil {
		t.Fatalf("Pack(%q, %dx%d): %v", name, w, h, err)
	}
	return id
}
