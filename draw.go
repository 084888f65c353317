package sheaf

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Drawable is implemented by the three kinds of drawable values: *Image,
// *Text and *VertexGroup. The set is closed.
type Drawable interface {
	drawTo(c *Context) error
}

func (i *Image) drawTo(c *Context) error       { return c.DrawImage(i, DrawOptions{}) }
func (t *Text) drawTo(c *Context) error        { return c.DrawText(t, DrawTextOptions{}) }
func (g *VertexGroup) drawTo(c *Context) error { return c.DrawVertices(g) }

// Context routes draw calls for one frame. With an active SpriteBatch, draws
// are queued into it; without one, every call goes straight to the target as
// a single submission. The batch, if any, is owned by the caller and passed in
// explicitly.
type Context struct {
	target    RenderTarget
	batch     *SpriteBatch
	transform [6]float64

	// scratch buffers for direct draws
	verts  []ebiten.Vertex
	inds   []uint32
	glyphs []glyphQuad
}

// NewContext creates a context drawing to target. batch may be nil for
// unbatched drawing.
func NewContext(target RenderTarget, batch *SpriteBatch) *Context {
	return &Context{target: target, batch: batch, transform: IdentityTransform}
}

// Target returns the render target.
func (c *Context) Target() RenderTarget {
	return c.target
}

// Batch returns the batch draws are forwarded to, or nil when drawing directly.
func (c *Context) Batch() *SpriteBatch {
	if c.batch != nil && c.batch.Active() {
		return c.batch
	}
	return nil
}

// SetTransform sets the view transform used for direct draws. Batched draws
// use the batch's transform.
func (c *Context) SetTransform(m [6]float64) {
	c.transform = m
}

// Transform returns the view transform used for direct draws.
func (c *Context) Transform() [6]float64 {
	return c.transform
}

// Clear fills the target with col immediately, regardless of batching. Call
// it before queuing the frame's sprites.
func (c *Context) Clear(col Color) {
	c.target.Clear(col)
}

// Draw draws d with default options.
func (c *Context) Draw(d Drawable) error {
	return d.drawTo(c)
}

// DrawRegion draws an atlas region. In direct mode an unknown region is
// returned as ErrUnknownRegion; in batched mode it is reported by the flush.
func (c *Context) DrawRegion(id RegionID, opts DrawOptions) error {
	if b := c.Batch(); b != nil {
		return b.Submit(id, opts)
	}
	r, err := resolveRegion(id)
	if err != nil {
		return fmt.Errorf("sheaf: draw region: %w", err)
	}
	c.drawQuad(r.ID.atlas, sourceRect(r.Bounds, opts.Clip), &opts)
	return nil
}

// DrawImage draws a standalone image.
func (c *Context) DrawImage(img *Image, opts DrawOptions) error {
	if b := c.Batch(); b != nil {
		return b.SubmitImage(img, opts)
	}
	if img == nil {
		return fmt.Errorf("sheaf: draw image: %w", ErrNilTexture)
	}
	c.drawQuad(img, sourceRect(img.Bounds(), opts.Clip), &opts)
	return nil
}

// DrawVertices draws a raw triangle list.
func (c *Context) DrawVertices(g *VertexGroup) error {
	if b := c.Batch(); b != nil {
		return b.SubmitVertices(g)
	}
	if g.Texture == nil {
		return fmt.Errorf("sheaf: draw vertices: %w", ErrNilTexture)
	}
	if !validTriangles(g.Indices, len(g.Vertices)) {
		return fmt.Errorf("sheaf: draw vertices: %w", ErrInvalidVertices)
	}
	c.target.SubmitVertices(g.Vertices, g.Indices, g.Texture, RenderState{Transform: c.transform, Blend: g.Blend})
	return nil
}

// DrawText draws t with its top-left at opts.Position. All glyphs of one call
// share the font atlas, so a direct draw is one submission and a batched draw
// collapses into the surrounding group when the order allows.
func (c *Context) DrawText(t *Text, opts DrawTextOptions) error {
	if t.Font == nil {
		return fmt.Errorf("sheaf: draw text: %w", ErrNilTexture)
	}
	c.glyphs = t.Font.layout(c.glyphs[:0], t.Content)
	if len(c.glyphs) == 0 {
		return nil
	}
	s := t.scale()

	if b := c.Batch(); b != nil {
		for _, g := range c.glyphs {
			err := b.Submit(g.region, DrawOptions{
				Position: Vec2{opts.Position.X + g.x*s, opts.Position.Y + g.y*s},
				Scale:    Vec2{s, s},
				Tint:     opts.Color,
				Order:    opts.Order,
				Blend:    opts.Blend,
			})
			if err != nil {
				return err
			}
		}
		return nil
	}

	c.verts, c.inds = c.verts[:0], c.inds[:0]
	for _, g := range c.glyphs {
		r, err := resolveRegion(g.region)
		if err != nil {
			return fmt.Errorf("sheaf: draw text: %w", err)
		}
		m := spriteTransform(&DrawOptions{
			Position: Vec2{opts.Position.X + g.x*s, opts.Position.Y + g.y*s},
			Scale:    Vec2{s, s},
		})
		c.verts, c.inds = appendQuad(c.verts, c.inds, uint32(len(c.verts)), m,
			float64(r.Bounds.Dx()), float64(r.Bounds.Dy()), r.Bounds, opts.Color)
	}
	c.target.SubmitVertices(c.verts, c.inds, t.Font.atlas, RenderState{Transform: c.transform, Blend: opts.Blend})
	return nil
}

// drawQuad submits a single textured quad directly to the target.
func (c *Context) drawQuad(tex Texture, src image.Rectangle, opts *DrawOptions) {
	m := spriteTransform(opts)
	c.verts, c.inds = appendQuad(c.verts[:0], c.inds[:0], 0, m,
		float64(src.Dx()), float64(src.Dy()), src, opts.Tint)
	c.target.SubmitVertices(c.verts, c.inds, tex, RenderState{Transform: c.transform, Blend: opts.Blend})
}
