package arena

import (
	"github.com/bytearena/box2d"
	"github.com/bytearena/ecs"

	"github.com/wize-logic/realmarble2-sub000/bot"
	"github.com/wize-logic/realmarble2-sub000/common/types"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

// NewEntityPlatform adds a walkable slab. top is the center of the
// walking surface; size spans the full extents, z being the slab
// thickness. The Box2D fixture is a sensor: platforms occlude rays but
// never block plane movement, since bodies pass under or land on them
// depending on altitude.
func (game *Arena) NewEntityPlatform(top vector.Vector3, size vector.Vector3) *ecs.Entity {

	platform := game.manager.NewEntity()

	bodydef := box2d.MakeB2BodyDef()
	bodydef.Position.Set(top.GetX(), top.GetY())
	bodydef.Type = box2d.B2BodyType.B2_staticBody

	body := game.PhysicalWorld.CreateBody(&bodydef)

	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(size.GetX()/2, size.GetY()/2)

	fixturedef := box2d.MakeB2FixtureDef()
	fixturedef.Shape = &shape
	fixturedef.IsSensor = true
	body.CreateFixtureFromDef(&fixturedef)
	body.SetUserData(types.MakePhysicalBodyDescriptor(
		types.PhysicalBodyDescriptorType.Platform,
		uint64(platform.GetID()),
	))

	aspect := &Platform{
		top:  top,
		size: size,
	}

	platform.AddComponent(game.platformComponent, aspect)

	game.registerStatic(bot.KindPlatform, &platformHandle{
		game:   game,
		id:     platform.GetID(),
		aspect: aspect,
		rect:   makeFlatRect(top, size.GetX(), size.GetY()),
	})

	return platform
}
