package sheaf

import (
	"errors"
	"fmt"
	"image"
)

// PageSet is a growable collection of equally sized atlases. Pack fills the
// newest page and opens another when it reports ErrAtlasFull, so callers can
// keep loading without handling atlas exhaustion themselves. Sprites on
// different pages bind different textures and never share a BatchGroup.
type PageSet struct {
	cfg      AtlasConfig
	pages    []*Atlas
	maxPages int
}

// NewPageSet creates a page set with one empty page. maxPages limits the
// number of pages; zero means unlimited.
func NewPageSet(cfg AtlasConfig, maxPages int) (*PageSet, error) {
	first, err := NewAtlas(cfg)
	if err != nil {
		return nil, err
	}
	return &PageSet{cfg: cfg, pages: []*Atlas{first}, maxPages: maxPages}, nil
}

// Pages returns the atlas pages in creation order. The returned slice MUST NOT
// be mutated.
func (p *PageSet) Pages() []*Atlas {
	return p.pages
}

// Pack places src on the newest page, opening a new page when it is full.
// Images larger than a page fail with ErrAtlasFull without opening a page.
func (p *PageSet) Pack(name string, src image.Image) (RegionID, error) {
	if name != "" {
		if _, err := p.Lookup(name); err == nil {
			return RegionID{}, fmt.Errorf("sheaf: pack %q: %w", name, ErrDuplicateRegion)
		}
	}

	cur := p.pages[len(p.pages)-1]
	id, err := cur.Pack(name, src)
	if err == nil || !errors.Is(err, ErrAtlasFull) {
		return id, err
	}

	b := src.Bounds()
	if !cur.packer.fitsEmpty(b.Dx(), b.Dy()) {
		return RegionID{}, err
	}
	if p.maxPages > 0 && len(p.pages) >= p.maxPages {
		return RegionID{}, err
	}

	next, nerr := NewAtlas(p.cfg)
	if nerr != nil {
		return RegionID{}, nerr
	}
	p.pages = append(p.pages, next)
	logger.Debug("sheaf: opened atlas page", "page", len(p.pages)-1, "region", name)
	return next.Pack(name, src)
}

// Lookup searches every page for name.
func (p *PageSet) Lookup(name string) (RegionID, error) {
	for _, page := range p.pages {
		if idx, ok := page.names[name]; ok {
			return page.regions[idx-1].ID, nil
		}
	}
	return RegionID{}, fmt.Errorf("sheaf: region %q: %w", name, ErrUnknownRegion)
}

// Finalize finalizes every page.
func (p *PageSet) Finalize() {
	for _, page := range p.pages {
		page.Finalize()
	}
}

// Len returns the total number of regions across pages.
func (p *PageSet) Len() int {
	n := 0
	for _, page := range p.pages {
		n += page.Len()
	}
	return n
}
