package sheaf

import "unicode/utf8"

// Text is a string bound to a Font.
type Text struct {
	Content string
	Font    *Font
	// Scale multiplies the font's pixel size. Zero means 1.
	Scale float64
}

// NewText creates a Text at scale 1.
func NewText(content string, f *Font) *Text {
	return &Text{Content: content, Font: f, Scale: 1}
}

// DrawTextOptions positions text. Text never rotates; use a view transform
// for that.
type DrawTextOptions struct {
	// Position is the top-left of the first line.
	Position Vec2
	// Color tints the glyphs. The zero value means white.
	Color Color
	Order int
	Blend BlendMode
}

// glyphQuad is one placed glyph in unscaled text-local pixels.
type glyphQuad struct {
	region RegionID
	x, y   float64
}

func (t *Text) scale() float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

// layout appends the visible glyphs of s to dst. Line breaks reset the pen to
// the left edge one LineHeight further down.
func (f *Font) layout(dst []glyphQuad, s string) []glyphQuad {
	x := 0.0
	baseline := f.ascent
	var prev rune
	hasPrev := false

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size

		if r == '\n' {
			x = 0
			baseline += f.lineHeight
			hasPrev = false
			continue
		}
		g, ok := f.lookup(r)
		if !ok {
			continue
		}
		if hasPrev {
			x += f.kern(prev, r)
		}
		if !g.region.IsZero() {
			dst = append(dst, glyphQuad{
				region: g.region,
				x:      x + float64(g.offset.X),
				y:      baseline + float64(g.offset.Y),
			})
		}
		x += g.advance
		prev = r
		hasPrev = true
	}
	return dst
}

// Measure returns the unscaled size of s: the widest line by the number of
// lines times LineHeight.
func (f *Font) Measure(s string) (width, height float64) {
	if s == "" {
		return 0, 0
	}
	lines := 1
	x := 0.0
	var prev rune
	hasPrev := false
	for _, r := range s {
		if r == '\n' {
			width = max(width, x)
			x = 0
			lines++
			hasPrev = false
			continue
		}
		g, ok := f.lookup(r)
		if !ok {
			continue
		}
		if hasPrev {
			x += f.kern(prev, r)
		}
		x += g.advance
		prev = r
		hasPrev = true
	}
	width = max(width, x)
	return width, float64(lines) * f.lineHeight
}

// Measure returns the scaled size of the text.
func (t *Text) Measure() (width, height float64) {
	if t.Font == nil {
		return 0, 0
	}
	w, h := t.Font.Measure(t.Content)
	s := t.scale()
	return w * s, h * s
}
