package sheaf

import (
	"fmt"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// BatchState is the lifecycle state of a SpriteBatch.
type BatchState uint8

const (
	BatchIdle         BatchState = iota // ready for Begin
	BatchAccumulating                   // between Begin and Flush/End
)

func (s BatchState) String() string {
	switch s {
	case BatchIdle:
		return "idle"
	case BatchAccumulating:
		return "accumulating"
	default:
		return fmt.Sprintf("BatchState(%d)", uint8(s))
	}
}

// DrawOptions describes where and how a sprite is drawn.
type DrawOptions struct {
	// Position is the destination of the sprite's origin.
	Position Vec2
	// Clip, when non-nil, selects a sub-rectangle of the source in
	// source-local pixels. It is clamped to the source bounds.
	Clip *image.Rectangle
	// Tint is a multiplicative color. The zero value means white.
	Tint Color
	// Order is the depth/layer key. Lower orders render first; equal orders
	// render in submission order.
	Order int
	// Scale factors. Zero components default to 1.
	Scale Vec2
	// Rotation in radians (clockwise, Y down) around Origin.
	Rotation float64
	// Origin is the pivot for scale and rotation, in local pixels.
	Origin Vec2
	// Blend selects the compositing operation.
	Blend BlendMode
}

// VertexGroup is a pre-built triangle list drawn with a single texture.
// Vertex destinations are in the same space as sprite positions; source
// coordinates are texels of Texture.
type VertexGroup struct {
	Vertices []ebiten.Vertex
	Indices  []uint32
	Texture  Texture
	Blend    BlendMode
	Order    int
}

type requestKind uint8

const (
	requestRegion   requestKind = iota // atlas region
	requestImage                       // standalone Image
	requestVertices                    // VertexGroup copied into the batch arena
)

// DrawRequest is one deferred draw, owned by a SpriteBatch until the next
// flush.
type DrawRequest struct {
	kind    requestKind
	region  RegionID
	image   *Image
	texture Texture // requestVertices only
	opts    DrawOptions
	clip    image.Rectangle
	clipped bool
	// vertex arena spans for requestVertices
	vertStart, vertEnd int
	indStart, indEnd   int
	seq                int
}

// Region returns the requested region; zero for image and vertex requests.
func (r *DrawRequest) Region() RegionID { return r.region }

// Order returns the request's depth key.
func (r *DrawRequest) Order() int { return r.opts.Order }

// Seq returns the request's submission index within its frame.
func (r *DrawRequest) Seq() int { return r.seq }

// BatchGroup is one render-target submission: a run of requests sharing a
// texture and blend mode, expanded to triangles.
type BatchGroup struct {
	Texture  Texture
	Blend    BlendMode
	Vertices []ebiten.Vertex
	Indices  []uint32 // relative to Vertices
	Sprites  int      // requests merged into this group

	vertStart, indStart int
}

// Warning records one request that was skipped during a flush.
type Warning struct {
	Seq    int      // submission index of the skipped request
	Region RegionID // zero for image and vertex requests
	Err    error
}

func (w Warning) Error() string {
	return fmt.Sprintf("sheaf: request %d skipped: %v", w.Seq, w.Err)
}

func (w Warning) Unwrap() error { return w.Err }

// FlushResult summarizes one flush.
type FlushResult struct {
	Requests int // requests pending when the flush started
	Rendered int // requests that produced geometry
	Groups   int // SubmitVertices calls issued
	Warnings []Warning
}

// SpriteBatch accumulates draw requests for one frame and flushes them as a
// minimal sequence of texture-grouped vertex submissions.
//
// A SpriteBatch is owned by the goroutine issuing draw calls; it does no
// locking.
type SpriteBatch struct {
	cfg       BatchConfig
	state     BatchState
	pending   []DrawRequest
	sortBuf   []DrawRequest
	meshVerts []ebiten.Vertex
	meshInds  []uint32
	transform [6]float64

	// Built by Flush, valid until the next Flush.
	groups []BatchGroup
	verts  []ebiten.Vertex
	inds   []uint32
}

// NewSpriteBatch creates an idle batch.
func NewSpriteBatch(cfg BatchConfig) *SpriteBatch {
	n := cfg.InitialCapacity
	if n <= 0 {
		n = defaultRequestCapacity
	}
	return &SpriteBatch{
		cfg:       cfg,
		pending:   make([]DrawRequest, 0, n),
		sortBuf:   make([]DrawRequest, 0, n),
		transform: IdentityTransform,
	}
}

// State returns the current lifecycle state.
func (b *SpriteBatch) State() BatchState {
	return b.state
}

// Active reports whether the batch is accumulating.
func (b *SpriteBatch) Active() bool {
	return b.state == BatchAccumulating
}

// Len returns the number of pending requests.
func (b *SpriteBatch) Len() int {
	return len(b.pending)
}

// SetTransform sets the view transform handed to the render target with every
// group. It applies on top of sprite positions.
func (b *SpriteBatch) SetTransform(m [6]float64) {
	b.transform = m
}

// Transform returns the current view transform.
func (b *SpriteBatch) Transform() [6]float64 {
	return b.transform
}

// Groups returns the groups built by the last flush. The slices are reused by
// the next flush and MUST NOT be retained or mutated.
func (b *SpriteBatch) Groups() []BatchGroup {
	return b.groups
}

// Begin starts accumulating a new frame. It fails with ErrBatchActive when
// called again before Flush or End.
func (b *SpriteBatch) Begin() error {
	if b.state == BatchAccumulating {
		return ErrBatchActive
	}
	b.discard()
	b.state = BatchAccumulating
	return nil
}

// Submit queues an atlas region. The region is not validated until flush;
// an unknown region is skipped and reported as a Warning then.
func (b *SpriteBatch) Submit(id RegionID, opts DrawOptions) error {
	req, err := b.next(requestRegion, opts)
	if err != nil {
		return err
	}
	req.region = id
	return nil
}

// SubmitImage queues a standalone image.
func (b *SpriteBatch) SubmitImage(img *Image, opts DrawOptions) error {
	req, err := b.next(requestImage, opts)
	if err != nil {
		return err
	}
	req.image = img
	return nil
}

// SubmitVertices queues a copy of g. The caller may reuse g's slices
// immediately.
func (b *SpriteBatch) SubmitVertices(g *VertexGroup) error {
	req, err := b.next(requestVertices, DrawOptions{Order: g.Order, Blend: g.Blend})
	if err != nil {
		return err
	}
	req.texture = g.Texture
	req.vertStart = len(b.meshVerts)
	req.indStart = len(b.meshInds)
	b.meshVerts = append(b.meshVerts, g.Vertices...)
	b.meshInds = append(b.meshInds, g.Indices...)
	req.vertEnd = len(b.meshVerts)
	req.indEnd = len(b.meshInds)
	return nil
}

// next appends a request slot. The clip rectangle is copied so callers may
// reuse the value they pointed at.
func (b *SpriteBatch) next(kind requestKind, opts DrawOptions) (*DrawRequest, error) {
	if b.state != BatchAccumulating {
		return nil, ErrBatchNotActive
	}
	req := DrawRequest{kind: kind, seq: len(b.pending)}
	if opts.Clip != nil {
		req.clip = *opts.Clip
		req.clipped = true
		opts.Clip = nil
	}
	req.opts = opts
	b.pending = append(b.pending, req)
	return &b.pending[len(b.pending)-1], nil
}

// Flush sorts pending requests by (Order, submission), groups consecutive
// requests that share a texture and blend mode, and submits each group to
// target in one call. Requests that cannot be resolved are skipped and
// reported in the result; they never fail the flush. The batch returns to
// BatchIdle afterwards.
func (b *SpriteBatch) Flush(target RenderTarget) (FlushResult, error) {
	if b.state != BatchAccumulating {
		return FlushResult{}, ErrBatchNotActive
	}
	defer b.finish()

	var stats debugStats
	var t0 time.Time
	if b.cfg.Debug {
		t0 = time.Now()
	}

	b.sortRequests()

	if b.cfg.Debug {
		stats.sortTime = time.Since(t0)
		t0 = time.Now()
	}

	res := FlushResult{Requests: len(b.pending)}
	b.buildGroups(&res)

	if b.cfg.Debug {
		stats.buildTime = time.Since(t0)
		t0 = time.Now()
	}

	for i := range b.groups {
		g := &b.groups[i]
		target.SubmitVertices(g.Vertices, g.Indices, g.Texture, RenderState{Transform: b.transform, Blend: g.Blend})
	}
	res.Groups = len(b.groups)

	if b.cfg.Debug {
		stats.submitTime = time.Since(t0)
		stats.requestCount = res.Requests
		stats.groupCount = res.Groups
		stats.skipCount = len(res.Warnings)
		stats.vertexCount = len(b.verts)
		logFlushStats(stats)
	}
	return res, nil
}

// End flushes and closes the Begin/End scope.
func (b *SpriteBatch) End(target RenderTarget) (FlushResult, error) {
	return b.Flush(target)
}

// Reset drops pending requests without rendering and returns to BatchIdle.
func (b *SpriteBatch) Reset() {
	b.discard()
	b.state = BatchIdle
}

func (b *SpriteBatch) finish() {
	b.discard()
	b.state = BatchIdle
}

func (b *SpriteBatch) discard() {
	b.pending = b.pending[:0]
	b.meshVerts = b.meshVerts[:0]
	b.meshInds = b.meshInds[:0]
}

// buildGroups expands sorted requests into b.verts/b.inds and b.groups.
func (b *SpriteBatch) buildGroups(res *FlushResult) {
	b.groups = b.groups[:0]
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]

	for i := range b.pending {
		req := &b.pending[i]

		tex, src, err := b.resolve(req)
		if err != nil {
			res.Warnings = append(res.Warnings, Warning{Seq: req.seq, Region: req.region, Err: err})
			logger.Warn("sheaf: skipped draw request", "seq", req.seq, "order", req.opts.Order, "err", err)
			continue
		}

		g := b.groupFor(tex, req.opts.Blend)
		base := uint32(len(b.verts) - g.vertStart)

		if req.kind == requestVertices {
			b.verts = append(b.verts, b.meshVerts[req.vertStart:req.vertEnd]...)
			for _, idx := range b.meshInds[req.indStart:req.indEnd] {
				b.inds = append(b.inds, base+idx)
			}
		} else {
			m := spriteTransform(&req.opts)
			b.verts, b.inds = appendQuad(b.verts, b.inds, base, m,
				float64(src.Dx()), float64(src.Dy()), src, req.opts.Tint)
		}
		g.Sprites++
		res.Rendered++
	}

	// Slice only after all appends: the arenas may have been reallocated.
	for i := range b.groups {
		g := &b.groups[i]
		vEnd, iEnd := len(b.verts), len(b.inds)
		if i+1 < len(b.groups) {
			vEnd, iEnd = b.groups[i+1].vertStart, b.groups[i+1].indStart
		}
		g.Vertices = b.verts[g.vertStart:vEnd]
		g.Indices = b.inds[g.indStart:iEnd]
	}
}

// groupFor returns the open group when it can take another request with the
// given texture and blend mode, or starts a new one. A texture change always
// starts a new group, even if an earlier group used the same texture.
func (b *SpriteBatch) groupFor(tex Texture, blend BlendMode) *BatchGroup {
	if n := len(b.groups); n > 0 {
		g := &b.groups[n-1]
		full := b.cfg.MaxSpritesPerGroup > 0 && g.Sprites >= b.cfg.MaxSpritesPerGroup
		if g.Texture == tex && g.Blend == blend && !full {
			return g
		}
	}
	b.groups = append(b.groups, BatchGroup{
		Texture:   tex,
		Blend:     blend,
		vertStart: len(b.verts),
		indStart:  len(b.inds),
	})
	return &b.groups[len(b.groups)-1]
}

// resolve returns the texture a request binds and, for sprite requests, the
// texel rectangle it samples.
func (b *SpriteBatch) resolve(req *DrawRequest) (Texture, image.Rectangle, error) {
	var clip *image.Rectangle
	if req.clipped {
		clip = &req.clip
	}
	switch req.kind {
	case requestRegion:
		r, err := resolveRegion(req.region)
		if err != nil {
			return nil, image.Rectangle{}, err
		}
		return r.ID.atlas, sourceRect(r.Bounds, clip), nil
	case requestImage:
		if req.image == nil {
			return nil, image.Rectangle{}, ErrNilTexture
		}
		return req.image, sourceRect(req.image.Bounds(), clip), nil
	case requestVertices:
		if req.texture == nil {
			return nil, image.Rectangle{}, ErrNilTexture
		}
		if !validTriangles(b.meshInds[req.indStart:req.indEnd], req.vertEnd-req.vertStart) {
			return nil, image.Rectangle{}, ErrInvalidVertices
		}
		return req.texture, image.Rectangle{}, nil
	}
	return nil, image.Rectangle{}, fmt.Errorf("sheaf: unknown request kind %d", req.kind)
}
