package sheaf

import (
	"image"
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- spriteTransform ---

func TestSpriteTransformIdentity(t *testing.T) {
	assertMatrix(t, "zero options", spriteTransform(&DrawOptions{}), IdentityTransform)
}

func TestSpriteTransformTranslation(t *testing.T) {
	got := spriteTransform(&DrawOptions{Position: Vec2{X: 10, Y: 20}})
	assertMatrix(t, "translate", got, [6]float64{1, 0, 0, 1, 10, 20})
}

func TestSpriteTransformScale(t *testing.T) {
	got := spriteTransform(&DrawOptions{Scale: Vec2{X: 2, Y: 3}})
	assertMatrix(t, "scale", got, [6]float64{2, 0, 0, 3, 0, 0})
}

func TestSpriteTransformZeroScaleComponentDefaultsToOne(t *testing.T) {
	got := spriteTransform(&DrawOptions{Scale: Vec2{X: 2}})
	assertMatrix(t, "scale x only", got, [6]float64{2, 0, 0, 1, 0, 0})
}

func TestSpriteTransformRotation90(t *testing.T) {
	got := spriteTransform(&DrawOptions{Rotation: math.Pi / 2})
	x, y := transformPoint(got, 1, 0)
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, 1)
}

func TestSpriteTransformOrigin(t *testing.T) {
	opts := &DrawOptions{Position: Vec2{X: 100, Y: 100}, Origin: Vec2{X: 8, Y: 8}, Scale: Vec2{X: 2, Y: 2}}
	x, y := transformPoint(spriteTransform(opts), 8, 8)
	assertNear(t, "origin x", x, 100)
	assertNear(t, "origin y", y, 100)
	x, y = transformPoint(spriteTransform(opts), 0, 0)
	assertNear(t, "corner x", x, 84)
	assertNear(t, "corner y", y, 84)
}

func TestSpriteTransformRotateAroundOrigin(t *testing.T) {
	opts := &DrawOptions{Position: Vec2{X: 50, Y: 50}, Origin: Vec2{X: 10, Y: 0}, Rotation: math.Pi}
	m := spriteTransform(opts)
	x, y := transformPoint(m, 10, 0)
	assertNear(t, "pivot x", x, 50)
	assertNear(t, "pivot y", y, 50)
	x, y = transformPoint(m, 20, 0)
	assertNear(t, "rotated x", x, 40)
	assertNear(t, "rotated y", y, 50)
}

// --- matrix helpers ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 0.5, -1, 3, 7, 9}
	assertMatrix(t, "I*m", multiplyAffine(IdentityTransform, m), m)
	assertMatrix(t, "m*I", multiplyAffine(m, IdentityTransform), m)
}

func TestConcatTransformAppliesChildFirst(t *testing.T) {
	m := ConcatTransform(TranslateTransform(10, 0), ScaleTransform(2, 2))
	x, y := transformPoint(m, 1, 1)
	assertNear(t, "x", x, 12)
	assertNear(t, "y", y, 2)
}

// --- quads ---

func TestAppendQuadLayout(t *testing.T) {
	src := image.Rect(4, 8, 14, 13)
	verts, inds := appendQuad(nil, nil, 0, TranslateTransform(100, 200), 10, 5, src, Color{})
	if len(verts) != 4 || len(inds) != 6 {
		t.Fatalf("got %d verts %d inds", len(verts), len(inds))
	}
	wantDst := [4][2]float32{{100, 200}, {110, 200}, {100, 205}, {110, 205}}
	wantSrc := [4][2]float32{{4, 8}, {14, 8}, {4, 13}, {14, 13}}
	for i, v := range verts {
		if v.DstX != wantDst[i][0] || v.DstY != wantDst[i][1] {
			t.Errorf("vert %d dst = (%v,%v), want %v", i, v.DstX, v.DstY, wantDst[i])
		}
		if v.SrcX != wantSrc[i][0] || v.SrcY != wantSrc[i][1] {
			t.Errorf("vert %d src = (%v,%v), want %v", i, v.SrcX, v.SrcY, wantSrc[i])
		}
		if v.ColorR != 1 || v.ColorA != 1 {
			t.Errorf("vert %d zero tint should draw white, got %v,%v", i, v.ColorR, v.ColorA)
		}
	}
	wantInds := []uint32{0, 1, 2, 1, 3, 2}
	for i := range wantInds {
		if inds[i] != wantInds[i] {
			t.Errorf("inds = %v, want %v", inds, wantInds)
			break
		}
	}
}

func TestAppendQuadBaseAndTint(t *testing.T) {
	_, inds := appendQuad(nil, nil, 8, IdentityTransform, 1, 1, image.Rect(0, 0, 1, 1), Color{})
	if inds[0] != 8 || inds[4] != 11 {
		t.Errorf("inds = %v, want offset by 8", inds)
	}
	verts, _ := appendQuad(nil, nil, 0, IdentityTransform, 1, 1, image.Rect(0, 0, 1, 1), Color{R: 1, G: 0.5, B: 0, A: 0.5})
	v := verts[0]
	if v.ColorR != 0.5 || v.ColorG != 0.25 || v.ColorB != 0 || v.ColorA != 0.5 {
		t.Errorf("color = %v %v %v %v, want premultiplied 0.5 0.25 0 0.5", v.ColorR, v.ColorG, v.ColorB, v.ColorA)
	}
}

func TestValidTriangles(t *testing.T) {
	cases := []struct {
		inds []uint32
		n    int
		want bool
	}{
		{nil, 0, true},
		{[]uint32{0, 1, 2}, 3, true},
		{[]uint32{0, 1}, 3, false},
		{[]uint32{0, 1, 3}, 3, false},
	}
	for _, c := range cases {
		if got := validTriangles(c.inds, c.n); got != c.want {
			t.Errorf("validTriangles(%v, %d) = %v, want %v", c.inds, c.n, got, c.want)
		}
	}
}
