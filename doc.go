// Package sheaf batches 2D sprites into as few draw calls as ordering allows,
// on top of [Ebitengine].
//
// Sheaf provides three pieces: a shelf-packed texture [Atlas], a [SpriteBatch]
// that sorts and groups a frame's draw requests by texture, and a [Context]
// that routes draw calls either into the active batch or straight to a
// [RenderTarget].
//
// # Quick start
//
// Pack every image before the render loop starts:
//
//	r, err := sheaf.NewRenderer(sheaf.DefaultConfig())
//	if err != nil { ... }
//	hero, err := r.Pack("hero", heroImg)
//	if err != nil { ... }
//	r.Pages().Finalize()
//
// Then draw inside a frame. The batch is flushed when the callback returns,
// on every exit path:
//
//	target := sheaf.NewEbitenTarget(nil)
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		target.SetImage(screen)
//		res, err := g.r.Frame(target, func(ctx *sheaf.Context) error {
//			ctx.Clear(sheaf.Color{A: 1})
//			return ctx.DrawRegion(hero, sheaf.DrawOptions{Position: sheaf.Vec2{X: 100, Y: 50}})
//		})
//		...
//	}
//
// # Ordering and grouping
//
// Requests are stable-sorted by [DrawOptions].Order, ties broken by
// submission order. Consecutive requests that bind the same texture and blend
// mode share one [BatchGroup]; a texture change always starts a new group,
// so A, A, B, A renders as three submissions. Correct order wins over fewer
// draw calls.
//
// # Errors
//
// Atlas exhaustion ([ErrAtlasFull]) and protocol misuse ([ErrBatchActive],
// [ErrBatchNotActive]) are returned as errors. A request whose region cannot
// be resolved is skipped at flush time and reported in [FlushResult].Warnings;
// the rest of the frame still renders. The same failure in a direct,
// unbatched draw is returned to the caller.
//
// [Ebitengine]: https://ebitengine.org
package sheaf
