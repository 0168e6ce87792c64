package arena

import (
	"github.com/bytearena/box2d"
	"github.com/bytearena/ecs"

	"github.com/wize-logic/realmarble2-sub000/common/types"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

// NewEntityObstacle adds a solid block. center is the base center on the
// ground it stands on; size spans the full extents.
func (game *Arena) NewEntityObstacle(center vector.Vector3, size vector.Vector3) *ecs.Entity {

	obstacle := game.manager.NewEntity()

	bodydef := box2d.MakeB2BodyDef()
	bodydef.Position.Set(center.GetX(), center.GetY())
	bodydef.Type = box2d.B2BodyType.B2_staticBody

	body := game.PhysicalWorld.CreateBody(&bodydef)

	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(size.GetX()/2, size.GetY()/2)

	fixturedef := box2d.MakeB2FixtureDef()
	fixturedef.Shape = &shape
	body.CreateFixtureFromDef(&fixturedef)
	body.SetUserData(types.MakePhysicalBodyDescriptor(
		types.PhysicalBodyDescriptorType.Obstacle,
		uint64(obstacle.GetID()),
	))

	return obstacle.AddComponent(game.obstacleComponent, &Obstacle{
		center: center,
		size:   size,
	})
}
