// Package ecs connects sheaf to a [Donburi] world.
//
// Entities carrying a [Sprite] component are queued into the frame's batch by
// [DrawSprites]. Flush warnings can be republished as typed Donburi events
// with [PublishWarnings], so ECS systems can react to missing regions the same
// way they react to any other event.
//
// Usage:
//
//	res, err := r.Frame(target, func(ctx *sheaf.Context) error {
//		return ecs.DrawSprites(world, ctx)
//	})
//	ecs.PublishWarnings(world, res)
//	ecs.WarningEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
