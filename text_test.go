package sheaf

import (
	"errors"
	"testing"

	"golang.org/x/image/font/basicfont"
)

func newTestFont(t *testing.T) *Font {
	t.Helper()
	f, err := NewDefaultFont(newTestAtlas(t, 256, 256, 1))
	if err != nil {
		t.Fatalf("NewDefaultFont: %v", err)
	}
	return f
}

func TestNewDefaultFontPacksGlyphs(t *testing.T) {
	f := newTestFont(t)
	// Every printable rune except the space gets a region.
	if got, want := f.Atlas().Len(), len(PrintableASCII)-1; got != want {
		t.Errorf("packed glyphs = %d, want %d", got, want)
	}
	if !f.HasGlyph('A') || !f.HasGlyph(' ') {
		t.Error("expected glyphs for 'A' and ' '")
	}
	if f.HasGlyph('é') {
		t.Error("'é' is outside the charset")
	}
	if f.LineHeight() != 13 {
		t.Errorf("LineHeight = %v, want 13", f.LineHeight())
	}
	if _, err := f.Atlas().Lookup("basic7x13:U+0041"); err != nil {
		t.Errorf("glyph region name: %v", err)
	}
}

func TestNewFontAtlasFull(t *testing.T) {
	_, err := NewFont(newTestAtlas(t, 16, 16, 0), "tiny", basicfont.Face7x13, "ABCDEF")
	if !errors.Is(err, ErrAtlasFull) {
		t.Errorf("err = %v, want ErrAtlasFull", err)
	}
}

func TestNewFontSharedAtlasNeedsDistinctNames(t *testing.T) {
	a := newTestAtlas(t, 256, 256, 1)
	if _, err := NewFont(a, "one", basicfont.Face7x13, "AB"); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFont(a, "two", basicfont.Face7x13, "AB"); err != nil {
		t.Errorf("second font with another name: %v", err)
	}
	if _, err := NewFont(a, "one", basicfont.Face7x13, "AB"); !errors.Is(err, ErrDuplicateRegion) {
		t.Errorf("reused font name = %v, want ErrDuplicateRegion", err)
	}
}

func TestFontLayout(t *testing.T) {
	f := newTestFont(t)
	quads := f.layout(nil, "A B\nC")
	if len(quads) != 3 {
		t.Fatalf("quads = %d, want 3", len(quads))
	}
	// 7px advance, the space advances without a quad.
	if quads[0].x != 0 || quads[1].x != 14 {
		t.Errorf("x = %v, %v; want 0, 14", quads[0].x, quads[1].x)
	}
	if quads[0].y != 0 {
		t.Errorf("first line top = %v, want 0", quads[0].y)
	}
	if quads[2].x != 0 || quads[2].y != 13 {
		t.Errorf("second line at (%v,%v), want (0,13)", quads[2].x, quads[2].y)
	}
}

func TestFontLayoutFallback(t *testing.T) {
	f := newTestFont(t)
	quads := f.layout(nil, "é")
	q, _ := f.lookup('?')
	if len(quads) != 1 || quads[0].region != q.region {
		t.Error("unknown rune should draw the '?' glyph")
	}
}

func TestFontMeasure(t *testing.T) {
	f := newTestFont(t)
	tests := []struct {
		s    string
		w, h float64
	}{
		{"", 0, 0},
		{"abc", 21, 13},
		{"ab\nabcd", 28, 26},
		{"a\n", 7, 26},
	}
	for _, tt := range tests {
		w, h := f.Measure(tt.s)
		if w != tt.w || h != tt.h {
			t.Errorf("Measure(%q) = %v x %v, want %v x %v", tt.s, w, h, tt.w, tt.h)
		}
	}
}

func TestTextMeasureScaled(t *testing.T) {
	f := newTestFont(t)
	txt := NewText("ab", f)
	txt.Scale = 2
	w, h := txt.Measure()
	if w != 28 || h != 26 {
		t.Errorf("Measure = %v x %v, want 28 x 26", w, h)
	}
	if w, h := (&Text{Content: "ab"}).Measure(); w != 0 || h != 0 {
		t.Error("text without font measures zero")
	}
}

func TestTextScaleDefault(t *testing.T) {
	if (&Text{}).scale() != 1 {
		t.Error("zero scale should default to 1")
	}
}
