package sheaf

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// cameraKey is the set of inputs the cached view matrix was built from.
type cameraKey struct {
	x, y, zoom, rotation float64
	viewport             Rect
}

// Camera produces the view transform for a Renderer or Context: position,
// zoom, rotation, and viewport. It also answers visibility queries so callers
// can skip submitting sprites that are off screen.
//
//	cam := sheaf.NewCamera(sheaf.Rect{Width: 640, Height: 480})
//	cam.Update(dt)
//	renderer.SetTransform(cam.ViewTransform())
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the camera rotation in radians (clockwise).
	Rotation float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	followTarget  *Vec2
	followOffsetX float64
	followOffsetY float64
	followLerp    float64

	key           cameraKey
	viewMatrix    [6]float64
	invViewMatrix [6]float64
	valid         bool

	scrollTween *scrollAnim
}

// NewCamera creates a Camera centered on the origin at zoom 1.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Zoom:     1.0,
		Viewport: viewport,
	}
}

// Follow makes the camera track target with the given offset and lerp factor.
// A lerp of 1.0 snaps immediately; lower values give smoother following.
// The camera reads *target on every Update.
func (c *Camera) Follow(target *Vec2, offsetX, offsetY, lerp float64) {
	c.followTarget = target
	c.followOffsetX = offsetX
	c.followOffsetY = offsetY
	c.followLerp = lerp
}

// Unfollow stops tracking the current target.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// ScrollTo animates the camera to the given world position over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// Update advances follow, scroll, and bounds clamping by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.followTarget != nil {
		targetX := c.followTarget.X + c.followOffsetX
		targetY := c.followTarget.Y + c.followOffsetY
		c.X += (targetX - c.X) * c.followLerp
		c.Y += (targetY - c.Y) * c.followLerp
	}

	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// clampToBounds restricts camera position so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	halfW := c.Viewport.Width / (2 * c.zoom())
	halfH := c.Viewport.Height / (2 * c.zoom())

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.X + c.Bounds.Width - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Y + c.Bounds.Height - halfH

	// If bounds are smaller than visible area, center the camera.
	if minX > maxX {
		c.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}

func (c *Camera) zoom() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

// computeViewMatrix rebuilds the cached matrices when any input changed.
//
// viewMatrix = Translate(cx, cy) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
// where cx, cy = viewport center.
func (c *Camera) computeViewMatrix() {
	k := cameraKey{x: c.X, y: c.Y, zoom: c.zoom(), rotation: c.Rotation, viewport: c.Viewport}
	if c.valid && k == c.key {
		return
	}
	c.key = k
	c.valid = true

	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2

	sin, cos := math.Sincos(-c.Rotation)
	z := k.zoom

	a := z * cos
	b := -z * sin
	cc := z * sin
	d := z * cos
	tx := cx + z*(-cos*c.X+sin*c.Y)
	ty := cy + z*(-sin*c.X-cos*c.Y)

	c.viewMatrix = [6]float64{a, cc, b, d, tx, ty}
	c.invViewMatrix = invertAffine(c.viewMatrix)
}

// ViewTransform returns the world-to-screen matrix, suitable for
// Renderer.SetTransform and Context.SetTransform.
func (c *Camera) ViewTransform() [6]float64 {
	c.computeViewMatrix()
	return c.viewMatrix
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	c.computeViewMatrix()
	return transformPoint(c.viewMatrix, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// VisibleBounds returns the axis-aligned bounding rect of the camera's visible
// area in world space.
func (c *Camera) VisibleBounds() Rect {
	c.computeViewMatrix()
	return transformedAABB(c.invViewMatrix, c.Viewport.X, c.Viewport.Y, c.Viewport.Width, c.Viewport.Height)
}

// Visible reports whether a w×h sprite drawn with opts overlaps the visible
// area. Sprites without a size are never culled.
func (c *Camera) Visible(opts *DrawOptions, w, h float64) bool {
	if w == 0 && h == 0 {
		return true
	}
	aabb := transformedAABB(spriteTransform(opts), 0, 0, w, h)
	return aabb.Intersects(c.VisibleBounds())
}

// RegionVisible is Visible for an atlas region, honouring opts.Clip. Unknown
// regions report true so the batch can flag them.
func (c *Camera) RegionVisible(id RegionID, opts *DrawOptions) bool {
	r, err := resolveRegion(id)
	if err != nil {
		return true
	}
	src := sourceRect(r.Bounds, opts.Clip)
	return c.Visible(opts, float64(src.Dx()), float64(src.Dy()))
}

// transformedAABB computes the axis-aligned bounding box of the rectangle
// (x, y, w, h) mapped through m. Zero allocations.
func transformedAABB(m [6]float64, x, y, w, h float64) Rect {
	x0, y0 := transformPoint(m, x, y)
	x1, y1 := transformPoint(m, x+w, y)
	x2, y2 := transformPoint(m, x+w, y+h)
	x3, y3 := transformPoint(m, x, y+h)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
