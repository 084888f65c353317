package sheaf

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Texture is a bindable image source with known pixel dimensions. Sprites
// whose requests resolve to the same Texture (compared by identity) can share
// a BatchGroup.
//
// Implementations must be comparable, typically pointer types. The ones in
// this package are *Atlas and *Image. EbitenImage is only
// called by GPU-backed render targets, so headless targets never touch the GPU.
type Texture interface {
	Size() (width, height int)
	EbitenImage() *ebiten.Image
}

// Image is a standalone texture that does not live in an atlas, such as a
// background or a render produced elsewhere. Drawing an Image always binds
// its own texture, so consecutive draws of the same Image batch together but
// never with atlas sprites.
type Image struct {
	src  image.Image
	img  *ebiten.Image
	w, h int
}

// NewImageFromEbiten wraps an existing ebiten image.
func NewImageFromEbiten(img *ebiten.Image) *Image {
	b := img.Bounds()
	return &Image{img: img, w: b.Dx(), h: b.Dy()}
}

// NewImageFromImage wraps a CPU-side image. The GPU copy is created the first
// time a render target binds it.
func NewImageFromImage(src image.Image) *Image {
	b := src.Bounds()
	return &Image{src: src, w: b.Dx(), h: b.Dy()}
}

// Size returns the image dimensions in pixels.
func (i *Image) Size() (width, height int) {
	return i.w, i.h
}

// Bounds returns the full pixel rectangle of the image, anchored at (0, 0).
func (i *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.w, i.h)
}

// EbitenImage returns the GPU image, uploading it on first use.
func (i *Image) EbitenImage() *ebiten.Image {
	if i.img == nil && i.src != nil {
		i.img = ebiten.NewImageFromImage(i.src)
	}
	return i.img
}

// Dispose deallocates the GPU image. The Image should not be drawn afterwards.
func (i *Image) Dispose() {
	if i.img != nil {
		i.img.Deallocate()
		i.img = nil
	}
	i.src = nil
}
