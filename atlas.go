package sheaf

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/hajimehoshi/ebiten/v2"
)

// RegionID identifies a region packed into an Atlas. It is a small comparable
// value; the zero RegionID never resolves. IDs issued before Atlas.Reset
// become stale and resolve to ErrUnknownRegion.
type RegionID struct {
	atlas *Atlas
	gen   uint32
	index uint32 // 1-based
}

// Atlas returns the atlas that issued the ID, or nil for the zero RegionID.
func (id RegionID) Atlas() *Atlas {
	return id.atlas
}

// IsZero reports whether id is the zero RegionID.
func (id RegionID) IsZero() bool {
	return id == RegionID{}
}

// TextureRegion describes a packed sub-rectangle of an atlas.
// Immutable after packing.
type TextureRegion struct {
	ID     RegionID
	Name   string
	Bounds image.Rectangle // pixel bounds within the atlas surface
}

// Atlas returns the owning atlas. The reference is for lookups only.
func (r TextureRegion) Atlas() *Atlas {
	return r.ID.atlas
}

// Width returns the region width in pixels.
func (r TextureRegion) Width() int { return r.Bounds.Dx() }

// Height returns the region height in pixels.
func (r TextureRegion) Height() int { return r.Bounds.Dy() }

// Atlas packs many source images into one fixed-size texture and answers
// region lookups. Pack everything before rendering; packing while a batch
// built against the atlas is being flushed is not supported.
type Atlas struct {
	width, height int
	pixels        *image.RGBA
	packer        shelfPacker
	regions       []TextureRegion
	names         map[string]uint32
	gen           uint32
	finalized     bool

	img   *ebiten.Image
	dirty bool // pixels changed since the last upload
}

// NewAtlas creates an empty atlas with the configured fixed dimensions.
func NewAtlas(cfg AtlasConfig) (*Atlas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !isPowerOfTwo(cfg.Width) || !isPowerOfTwo(cfg.Height) {
		logger.Warn("sheaf: atlas size is not a power of two", "width", cfg.Width, "height", cfg.Height)
	}
	return &Atlas{
		width:  cfg.Width,
		height: cfg.Height,
		pixels: image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height)),
		packer: newShelfPacker(cfg.Width, cfg.Height, cfg.Padding),
		names:  make(map[string]uint32),
		gen:    1,
	}, nil
}

// Size returns the atlas dimensions in pixels.
func (a *Atlas) Size() (width, height int) {
	return a.width, a.height
}

// Len returns the number of packed regions.
func (a *Atlas) Len() int {
	return len(a.regions)
}

// Utilization returns the packed fraction of the atlas area (0.0 to 1.0).
func (a *Atlas) Utilization() float64 {
	return a.packer.utilization()
}

// Pack copies src into free atlas space and returns its RegionID. An empty
// name packs an anonymous region that is only reachable through the returned ID.
//
// Errors: ErrInvalidDimensions for an empty image, ErrDuplicateRegion for a
// reused name, ErrAtlasFinalized after Finalize, ErrAtlasFull when no free
// rectangle fits. A failed Pack leaves earlier regions untouched.
func (a *Atlas) Pack(name string, src image.Image) (RegionID, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return RegionID{}, fmt.Errorf("sheaf: pack %q (%dx%d): %w", name, w, h, ErrInvalidDimensions)
	}
	if a.finalized {
		return RegionID{}, fmt.Errorf("sheaf: pack %q: %w", name, ErrAtlasFinalized)
	}
	if name != "" {
		if _, ok := a.names[name]; ok {
			return RegionID{}, fmt.Errorf("sheaf: pack %q: %w", name, ErrDuplicateRegion)
		}
	}

	r, ok := a.packer.allocate(w, h)
	if !ok {
		return RegionID{}, fmt.Errorf("sheaf: pack %q (%dx%d) into %dx%d atlas: %w", name, w, h, a.width, a.height, ErrAtlasFull)
	}
	draw.Draw(a.pixels, r, src, b.Min, draw.Src)
	a.dirty = true

	id := RegionID{atlas: a, gen: a.gen, index: uint32(len(a.regions) + 1)}
	a.regions = append(a.regions, TextureRegion{ID: id, Name: name, Bounds: r})
	if name != "" {
		a.names[name] = id.index
	}
	return id, nil
}

// PackPixels packs raw non-premultiplied RGBA data, 4 bytes per pixel in
// row-major order. len(pix) must equal width*height*4.
func (a *Atlas) PackPixels(name string, pix []byte, width, height int) (RegionID, error) {
	if width <= 0 || height <= 0 || len(pix) != width*height*4 {
		return RegionID{}, fmt.Errorf("sheaf: pack %q (%dx%d, %d bytes): %w", name, width, height, len(pix), ErrInvalidDimensions)
	}
	src := &image.NRGBA{Pix: pix, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}
	return a.Pack(name, src)
}

// lookup returns the stored region for id without copying.
func (a *Atlas) lookup(id RegionID) (*TextureRegion, bool) {
	if id.atlas != a || id.gen != a.gen || id.index == 0 || int(id.index) > len(a.regions) {
		return nil, false
	}
	return &a.regions[id.index-1], true
}

// Region returns the TextureRegion for id in O(1).
func (a *Atlas) Region(id RegionID) (TextureRegion, error) {
	r, ok := a.lookup(id)
	if !ok {
		return TextureRegion{}, ErrUnknownRegion
	}
	return *r, nil
}

// Lookup returns the RegionID packed under name.
func (a *Atlas) Lookup(name string) (RegionID, error) {
	idx, ok := a.names[name]
	if !ok {
		return RegionID{}, fmt.Errorf("sheaf: region %q: %w", name, ErrUnknownRegion)
	}
	return a.regions[idx-1].ID, nil
}

// Regions returns a copy of all regions in pack order.
func (a *Atlas) Regions() []TextureRegion {
	out := make([]TextureRegion, len(a.regions))
	copy(out, a.regions)
	return out
}

// UVFor returns the region's rectangle, intersected with an optional
// region-local clip, in normalized 0..1 coordinates of the atlas surface.
// Clips reaching outside the region are clamped to it.
func (a *Atlas) UVFor(id RegionID, clip *image.Rectangle) (Rect, error) {
	r, ok := a.lookup(id)
	if !ok {
		return Rect{}, ErrUnknownRegion
	}
	src := sourceRect(r.Bounds, clip)
	w, h := float64(a.width), float64(a.height)
	return Rect{
		X:      float64(src.Min.X) / w,
		Y:      float64(src.Min.Y) / h,
		Width:  float64(src.Dx()) / w,
		Height: float64(src.Dy()) / h,
	}, nil
}

// Finalize marks the atlas read-only. Further Pack calls fail with
// ErrAtlasFinalized until Reset.
func (a *Atlas) Finalize() {
	a.finalized = true
}

// Finalized reports whether Finalize has been called since the last Reset.
func (a *Atlas) Finalized() bool {
	return a.finalized
}

// Reset discards every region and clears the surface. Previously issued
// RegionIDs become stale.
func (a *Atlas) Reset() {
	a.regions = a.regions[:0]
	clear(a.names)
	clear(a.pixels.Pix)
	a.packer.reset()
	a.gen++
	a.finalized = false
	a.dirty = true
}

// EbitenImage returns the GPU copy of the atlas surface, uploading pending
// pixel changes first.
func (a *Atlas) EbitenImage() *ebiten.Image {
	if a.img == nil {
		a.img = ebiten.NewImage(a.width, a.height)
		a.dirty = true
	}
	if a.dirty {
		a.img.WritePixels(a.pixels.Pix)
		a.dirty = false
	}
	return a.img
}

// Pixels returns the CPU-side atlas surface. The returned image must not be
// modified.
func (a *Atlas) Pixels() *image.RGBA {
	return a.pixels
}

// Dispose releases the GPU copy of the atlas.
func (a *Atlas) Dispose() {
	if a.img != nil {
		a.img.Deallocate()
		a.img = nil
	}
	a.dirty = true
}

// resolveRegion finds the region for id in whichever atlas issued it.
func resolveRegion(id RegionID) (*TextureRegion, error) {
	if id.atlas == nil {
		return nil, ErrUnknownRegion
	}
	r, ok := id.atlas.lookup(id)
	if !ok {
		return nil, ErrUnknownRegion
	}
	return r, nil
}

// sourceRect intersects bounds with a clip given relative to bounds.Min.
// The result is clamped into bounds and may be empty, but is never inverted.
func sourceRect(bounds image.Rectangle, clip *image.Rectangle) image.Rectangle {
	if clip == nil {
		return bounds
	}
	c := clip.Canon().Add(bounds.Min)
	x0 := clampInt(c.Min.X, bounds.Min.X, bounds.Max.X)
	y0 := clampInt(c.Min.Y, bounds.Min.Y, bounds.Max.Y)
	x1 := clampInt(c.Max.X, x0, bounds.Max.X)
	y1 := clampInt(c.Max.Y, y0, bounds.Max.Y)
	return image.Rect(x0, y0, x1, y1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
