package sheaf

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// NewPolygon builds a textured convex polygon as a VertexGroup. The region is
// stretched over the bounding box of points, so the top-left of the box
// samples the region's top-left texel. Draw the result with DrawVertices or
// SpriteBatch.SubmitVertices.
func NewPolygon(points []Vec2, id RegionID, tint Color) (*VertexGroup, error) {
	r, err := resolveRegion(id)
	if err != nil {
		return nil, fmt.Errorf("sheaf: polygon: %w", err)
	}
	return buildPolygonFan(points, r.ID.atlas, r.Bounds, tint)
}

// NewPolygonImage is NewPolygon for a standalone image.
func NewPolygonImage(points []Vec2, img *Image, tint Color) (*VertexGroup, error) {
	if img == nil {
		return nil, fmt.Errorf("sheaf: polygon: %w", ErrNilTexture)
	}
	return buildPolygonFan(points, img, img.Bounds(), tint)
}

// buildPolygonFan generates vertices and indices for a fan-triangulated polygon.
// N vertices, 3*(N-2) indices.
func buildPolygonFan(points []Vec2, tex Texture, src image.Rectangle, tint Color) (*VertexGroup, error) {
	n := len(points)
	if n < 3 {
		return nil, fmt.Errorf("sheaf: polygon with %d points: %w", n, ErrInvalidVertices)
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	bbW, bbH := maxX-minX, maxY-minY
	srcW, srcH := float64(src.Dx()), float64(src.Dy())
	cr, cg, cb, ca := tint.premultiplied()

	verts := make([]ebiten.Vertex, n)
	for i, p := range points {
		var u, v float64
		if bbW > 0 {
			u = (p.X - minX) / bbW * srcW
		}
		if bbH > 0 {
			v = (p.Y - minY) / bbH * srcH
		}
		verts[i] = ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   float32(float64(src.Min.X) + u),
			SrcY:   float32(float64(src.Min.Y) + v),
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}

	// Fan triangulation: vertex 0 is the hub.
	inds := make([]uint32, (n-2)*3)
	for i := 0; i < n-2; i++ {
		inds[i*3+0] = 0
		inds[i*3+1] = uint32(i + 1)
		inds[i*3+2] = uint32(i + 2)
	}

	return &VertexGroup{Vertices: verts, Indices: inds, Texture: tex}, nil
}
