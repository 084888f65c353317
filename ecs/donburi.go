package ecs

import (
	"github.com/phanxgames/sheaf"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// Sprite is the component drawn by DrawSprites.
type Sprite struct {
	Region  sheaf.RegionID
	Options sheaf.DrawOptions
	Hidden  bool
}

// SpriteComponent is the Donburi component type for Sprite.
var SpriteComponent = donburi.NewComponentType[Sprite]()

// WarningEventType is the Donburi event type for skipped draw requests.
// Subscribe to it to be told about regions that failed to resolve.
var WarningEventType = events.NewEventType[sheaf.Warning]()

var spriteQuery = donburi.NewQuery(filter.Contains(SpriteComponent))

// NewSprite creates an entity with a Sprite component.
func NewSprite(world donburi.World, s Sprite) donburi.Entity {
	e := world.Create(SpriteComponent)
	SpriteComponent.SetValue(world.Entry(e), s)
	return e
}

// DrawSprites draws every visible Sprite entity through ctx. Entities are
// visited in query order; use Options.Order to control layering.
func DrawSprites(world donburi.World, ctx *sheaf.Context) error {
	var err error
	spriteQuery.Each(world, func(entry *donburi.Entry) {
		if err != nil {
			return
		}
		s := SpriteComponent.Get(entry)
		if s.Hidden {
			return
		}
		err = ctx.DrawRegion(s.Region, s.Options)
	})
	return err
}

// PublishWarnings queues one WarningEventType event per warning in res.
// Events are delivered on the next ProcessEvents call.
func PublishWarnings(world donburi.World, res sheaf.FlushResult) {
	for _, w := range res.Warnings {
		WarningEventType.Publish(world, w)
	}
}
