package sheaf

import (
	"fmt"
	"image"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PrintableASCII is the default charset for NewDefaultFont.
const PrintableASCII = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

// glyph is one rasterized rune.
type glyph struct {
	region  RegionID    // zero for runes without visible pixels
	offset  image.Point // bitmap top-left relative to the pen on the baseline
	advance float64
}

// Font is a bitmap font whose glyphs live in an Atlas, so text renders
// through the same batching path as sprites.
type Font struct {
	name        string
	atlas       *Atlas
	face        font.Face
	glyphs      map[rune]glyph
	lineHeight  float64
	ascent      float64
	fallback    rune
	hasFallback bool
}

// NewFont rasterizes every rune of charset from face and packs the glyphs
// into atlas. name prefixes the glyph region names so several fonts can share
// one atlas. Runes the face does not cover are left out and drawn with the
// '?' fallback when it exists.
func NewFont(atlas *Atlas, name string, face font.Face, charset string) (*Font, error) {
	m := face.Metrics()
	f := &Font{
		name:       name,
		atlas:      atlas,
		face:       face,
		glyphs:     make(map[rune]glyph, len(charset)),
		lineHeight: fixedToFloat(m.Height),
		ascent:     fixedToFloat(m.Ascent),
	}
	for _, r := range charset {
		if _, ok := f.glyphs[r]; ok {
			continue
		}
		if err := f.addGlyph(r); err != nil {
			return nil, err
		}
	}
	if _, ok := f.glyphs['?']; ok {
		f.fallback = '?'
		f.hasFallback = true
	}
	return f, nil
}

// NewDefaultFont packs the 7x13 fixed-width face from x/image into atlas.
func NewDefaultFont(atlas *Atlas) (*Font, error) {
	return NewFont(atlas, "basic7x13", basicfont.Face7x13, PrintableASCII)
}

func (f *Font) addGlyph(r rune) error {
	bounds, adv, ok := f.face.GlyphBounds(r)
	if !ok {
		return nil
	}
	g := glyph{advance: fixedToFloat(adv)}

	x0, y0 := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
	x1, y1 := bounds.Max.X.Ceil(), bounds.Max.Y.Ceil()
	if x1 > x0 && y1 > y0 && !unicode.IsSpace(r) {
		img := image.NewRGBA(image.Rect(0, 0, x1-x0, y1-y0))
		d := font.Drawer{
			Dst:  img,
			Src:  image.White,
			Face: f.face,
			Dot:  fixed.P(-x0, -y0),
		}
		d.DrawString(string(r))

		id, err := f.atlas.Pack(fmt.Sprintf("%s:%U", f.name, r), img)
		if err != nil {
			return fmt.Errorf("sheaf: font %q glyph %q: %w", f.name, r, err)
		}
		g.region = id
		g.offset = image.Pt(x0, y0)
	}
	f.glyphs[r] = g
	return nil
}

// Atlas returns the atlas holding the glyphs.
func (f *Font) Atlas() *Atlas {
	return f.atlas
}

// LineHeight returns the distance between baselines in pixels.
func (f *Font) LineHeight() float64 {
	return f.lineHeight
}

// HasGlyph reports whether r was rasterized.
func (f *Font) HasGlyph(r rune) bool {
	_, ok := f.glyphs[r]
	return ok
}

// lookup returns the glyph for r, falling back to '?'.
func (f *Font) lookup(r rune) (glyph, bool) {
	if g, ok := f.glyphs[r]; ok {
		return g, true
	}
	if f.hasFallback {
		return f.glyphs[f.fallback], true
	}
	return glyph{}, false
}

// kern returns the kerning adjustment between two runes.
func (f *Font) kern(prev, r rune) float64 {
	return fixedToFloat(f.face.Kern(prev, r))
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
