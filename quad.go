package sheaf

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// appendQuad appends 4 vertices and 6 indices for one textured quad of size
// (w, h) in local space, mapped through m. src is the source rectangle in
// texel coordinates of the bound texture. base is the index of the first
// appended vertex relative to the start of its group.
func appendQuad(verts []ebiten.Vertex, inds []uint32, base uint32, m [6]float64, w, h float64, src image.Rectangle, tint Color) ([]ebiten.Vertex, []uint32) {
	// 4 local positions: TL, TR, BL, BR
	lx := [4]float64{0, w, 0, w}
	ly := [4]float64{0, 0, h, h}

	sx0, sy0 := float32(src.Min.X), float32(src.Min.Y)
	sx1, sy1 := float32(src.Max.X), float32(src.Max.Y)
	sx := [4]float32{sx0, sx1, sx0, sx1}
	sy := [4]float32{sy0, sy0, sy1, sy1}

	cr, cg, cb, ca := tint.premultiplied()

	for i := 0; i < 4; i++ {
		dx, dy := transformPoint(m, lx[i], ly[i])
		verts = append(verts, ebiten.Vertex{
			DstX:   float32(dx),
			DstY:   float32(dy),
			SrcX:   sx[i],
			SrcY:   sy[i],
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}

	// Two triangles: TL-TR-BL, TR-BR-BL
	inds = append(inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
	return verts, inds
}

// validTriangles reports whether inds describes whole triangles over n vertices.
func validTriangles(inds []uint32, n int) bool {
	if len(inds)%3 != 0 {
		return false
	}
	for _, i := range inds {
		if int(i) >= n {
			return false
		}
	}
	return true
}
