package sheaf

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Atlas = AtlasConfig{Width: 64, Height: 64}
	r, err := NewRenderer(cfg)
	require.NoError(t, err)
	return r
}

func TestNewRendererInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Batch.InitialCapacity = -1
	_, err := NewRenderer(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRendererFrame(t *testing.T) {
	r := newTestRenderer(t)
	id, err := r.Pack("hero", solidImage(8, 8, color.NRGBA{A: 255}))
	require.NoError(t, err)

	target := &recordTarget{}
	res, err := r.Frame(target, func(ctx *Context) error {
		ctx.Clear(ColorWhite)
		for i := 0; i < 4; i++ {
			if err := ctx.DrawRegion(id, DrawOptions{}); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Rendered)
	assert.Equal(t, 1, res.Groups)
	assert.Equal(t, []string{"clear", "submit"}, target.events)
	assert.Equal(t, uint64(1), r.Frames())
	assert.False(t, r.Batch().Active())
}

func TestRendererFrameEndsOnError(t *testing.T) {
	r := newTestRenderer(t)
	id, _ := r.Pack("hero", solidImage(8, 8, color.NRGBA{A: 255}))
	boom := errors.New("boom")

	target := &recordTarget{}
	res, err := r.Frame(target, func(ctx *Context) error {
		ctx.DrawRegion(id, DrawOptions{})
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, res.Rendered, "queued sprites still flush")
	assert.False(t, r.Batch().Active())

	_, err = r.Frame(target, func(*Context) error { return nil })
	assert.NoError(t, err, "next frame starts cleanly")
}

func TestRendererFrameEndsOnPanic(t *testing.T) {
	r := newTestRenderer(t)
	id, _ := r.Pack("hero", solidImage(8, 8, color.NRGBA{A: 255}))
	target := &recordTarget{}

	assert.Panics(t, func() {
		r.Frame(target, func(ctx *Context) error {
			ctx.DrawRegion(id, DrawOptions{})
			panic("draw exploded")
		})
	})
	assert.False(t, r.Batch().Active())
	assert.Len(t, target.submits, 1)
}

func TestRendererNestedFrame(t *testing.T) {
	r := newTestRenderer(t)
	var inner error
	_, err := r.Frame(&recordTarget{}, func(*Context) error {
		_, inner = r.Frame(&recordTarget{}, func(*Context) error { return nil })
		return nil
	})
	require.NoError(t, err)
	assert.ErrorIs(t, inner, ErrBatchActive)
	assert.Equal(t, uint64(1), r.Frames())
}

func TestRendererTransform(t *testing.T) {
	r := newTestRenderer(t)
	id, _ := r.Pack("hero", solidImage(8, 8, color.NRGBA{A: 255}))
	m := TranslateTransform(5, 5)
	r.SetTransform(m)

	target := &recordTarget{}
	_, err := r.Frame(target, func(ctx *Context) error {
		assert.Equal(t, m, ctx.Transform())
		return ctx.DrawRegion(id, DrawOptions{})
	})
	require.NoError(t, err)
	assert.Equal(t, m, target.submits[0].state.Transform)
}

func TestRendererPackGrowsPages(t *testing.T) {
	r := newTestRenderer(t)
	for i := 0; i < 5; i++ {
		_, err := r.Pack("", solidImage(32, 32, color.NRGBA{}))
		require.NoError(t, err)
	}
	assert.Len(t, r.Pages().Pages(), 2)
	assert.Equal(t, 5, r.Pages().Len())
}

func TestRendererClose(t *testing.T) {
	r := newTestRenderer(t)
	r.Close()
	r.Close()

	_, err := r.Frame(&recordTarget{}, func(*Context) error { return nil })
	assert.ErrorIs(t, err, ErrRendererClosed)
	_, err = r.Pack("x", solidImage(1, 1, color.NRGBA{}))
	assert.ErrorIs(t, err, ErrRendererClosed)
}
