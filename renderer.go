package sheaf

import (
	"errors"
	"image"
)

// Renderer owns the long-lived rendering state: the atlas pages and the
// sprite batch. Create one at startup, call Frame once per frame, and Close it
// at shutdown. There is no package-level rendering state.
type Renderer struct {
	cfg       Config
	pages     *PageSet
	batch     *SpriteBatch
	ctx       *Context
	transform [6]float64
	frames    uint64
	closed    bool
}

// NewRenderer validates cfg and creates an empty renderer.
func NewRenderer(cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pages, err := NewPageSet(cfg.Atlas, 0)
	if err != nil {
		return nil, err
	}
	bcfg := cfg.Batch
	bcfg.Debug = bcfg.Debug || cfg.Debug
	batch := NewSpriteBatch(bcfg)
	return &Renderer{
		cfg:       cfg,
		pages:     pages,
		batch:     batch,
		ctx:       NewContext(nil, batch),
		transform: IdentityTransform,
	}, nil
}

// Pages returns the renderer's atlas pages.
func (r *Renderer) Pages() *PageSet {
	return r.pages
}

// Pack packs src into the renderer's atlas pages. Pack everything before the
// first Frame.
func (r *Renderer) Pack(name string, src image.Image) (RegionID, error) {
	if r.closed {
		return RegionID{}, ErrRendererClosed
	}
	return r.pages.Pack(name, src)
}

// Batch returns the renderer's sprite batch.
func (r *Renderer) Batch() *SpriteBatch {
	return r.batch
}

// SetTransform sets the view transform for subsequent frames.
func (r *Renderer) SetTransform(m [6]float64) {
	r.transform = m
}

// Frames returns the number of frames rendered.
func (r *Renderer) Frames() uint64 {
	return r.frames
}

// Frame runs one batched frame against target. It begins the batch, calls fn
// with a batching Context, and always ends the batch afterwards, including
// when fn returns an error or panics. The flush result is returned alongside
// fn's error joined with any error from ending the batch.
//
// Calling Frame from inside fn fails with ErrBatchActive.
func (r *Renderer) Frame(target RenderTarget, fn func(*Context) error) (res FlushResult, err error) {
	if r.closed {
		return FlushResult{}, ErrRendererClosed
	}
	if err := r.batch.Begin(); err != nil {
		return FlushResult{}, err
	}
	r.batch.SetTransform(r.transform)
	ctx := r.ctx
	ctx.target = target
	ctx.transform = r.transform

	defer func() {
		endRes, endErr := r.batch.End(target)
		res = endRes
		err = errors.Join(err, endErr)
		ctx.target = nil
		r.frames++
	}()

	return FlushResult{}, fn(ctx)
}

// Close releases GPU resources held by the atlas pages and drops any pending
// requests. Frame and Pack fail with ErrRendererClosed afterwards.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.batch.Reset()
	for _, page := range r.pages.Pages() {
		page.Dispose()
	}
	r.closed = true
}
