package sheaf

import "image"

// shelf is a horizontal strip of the atlas. Its height is fixed by the first
// image placed on it.
type shelf struct {
	y      int // top edge
	height int
	x      int // next free x position
}

// shelfPacker tracks free space with a list of shelves ordered top to bottom.
// Placement is greedy and O(len(shelves)).
type shelfPacker struct {
	width   int
	height  int
	padding int
	shelves []shelf
	bottom  int // lowest used y, including trailing padding
	used    int // packed pixel area, excluding padding
}

func newShelfPacker(width, height, padding int) shelfPacker {
	return shelfPacker{
		width:   width,
		height:  height,
		padding: padding,
		shelves: make([]shelf, 0, 16),
	}
}

// allocate reserves a w×h rectangle. It returns false when no shelf has room
// and no new shelf fits below the lowest one. Padding is only required between
// neighbours, never against the atlas edge.
func (p *shelfPacker) allocate(w, h int) (image.Rectangle, bool) {
	if w <= 0 || h <= 0 || w > p.width || h > p.height {
		return image.Rectangle{}, false
	}

	// First shelf with enough remaining width and a matching-or-taller height.
	for i := range p.shelves {
		s := &p.shelves[i]
		if h > s.height || s.x+w > p.width {
			continue
		}
		r := image.Rect(s.x, s.y, s.x+w, s.y+h)
		s.x += w + p.padding
		p.used += w * h
		return r, true
	}

	// Open a new shelf below the lowest used y.
	y := p.bottom
	if y+h > p.height {
		return image.Rectangle{}, false
	}
	p.shelves = append(p.shelves, shelf{y: y, height: h, x: w + p.padding})
	p.bottom = y + h + p.padding
	p.used += w * h
	return image.Rect(0, y, w, y+h), true
}

// fitsEmpty reports whether a w×h rectangle could be placed in an empty packer.
func (p *shelfPacker) fitsEmpty(w, h int) bool {
	return w > 0 && h > 0 && w <= p.width && h <= p.height
}

func (p *shelfPacker) reset() {
	p.shelves = p.shelves[:0]
	p.bottom = 0
	p.used = 0
}

// utilization returns the packed fraction of the total area (0.0 to 1.0).
func (p *shelfPacker) utilization() float64 {
	total := p.width * p.height
	if total <= 0 {
		return 0
	}
	return float64(p.used) / float64(total)
}
