package sheaf

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animation steps through a sequence of atlas regions at a fixed frame
// duration. Call Update(dt) each tick and draw Frame().
type Animation struct {
	frames        []RegionID
	frameDuration float32
	loop          bool
	tween         *gween.Tween
	current       int
	Done          bool
}

// NewAnimation creates an animation showing each frame for frameDuration
// seconds. A looping animation restarts after the last frame; a one-shot
// animation holds the last frame and sets Done.
func NewAnimation(frames []RegionID, frameDuration float32, loop bool) *Animation {
	a := &Animation{
		frames:        frames,
		frameDuration: frameDuration,
		loop:          loop,
	}
	a.Reset()
	return a
}

// Reset rewinds to the first frame.
func (a *Animation) Reset() {
	a.current = 0
	a.Done = len(a.frames) <= 1 && !a.loop
	n := float32(len(a.frames))
	a.tween = gween.New(0, n, a.frameDuration*n, ease.Linear)
}

// Update advances the animation by dt seconds. A looping animation wraps to
// the first frame on the tick that completes a cycle.
func (a *Animation) Update(dt float32) {
	if a.Done || len(a.frames) == 0 || a.frameDuration <= 0 {
		return
	}
	v, finished := a.tween.Update(dt)
	if !finished {
		a.current = min(int(v), len(a.frames)-1)
		return
	}
	if !a.loop {
		a.current = len(a.frames) - 1
		a.Done = true
		return
	}
	a.Reset()
}

// Frame returns the region to draw now, or the zero RegionID when the
// animation has no frames.
func (a *Animation) Frame() RegionID {
	if len(a.frames) == 0 {
		return RegionID{}
	}
	return a.frames[a.current]
}

// FrameIndex returns the current frame index.
func (a *Animation) FrameIndex() int {
	return a.current
}

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// TweenColor or TweenVec2 and call Update(dt) each frame; values are written
// through to the target fields.
//
// There is no global animation manager; callers drive Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes their values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenColor animates all four channels of c, e.g. a sprite tint or a text
// color, toward to.
func TweenColor(c *Color, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4}
	g.tweens[0] = gween.New(float32(c.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(c.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(c.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(c.A), float32(to.A), duration, fn)
	g.fields = [4]*float64{&c.R, &c.G, &c.B, &c.A}
	return g
}

// TweenVec2 animates v toward to, e.g. a sprite position or scale.
func TweenVec2(v *Vec2, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(v.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(v.Y), float32(to.Y), duration, fn)
	g.fields[0] = &v.X
	g.fields[1] = &v.Y
	return g
}
