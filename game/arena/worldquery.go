package arena

import (
	"github.com/bytearena/box2d"
	"github.com/bytearena/ecs"
	"github.com/dhconnelly/rtreego"

	"github.com/wize-logic/realmarble2-sub000/bot"
	"github.com/wize-logic/realmarble2-sub000/common/types"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

// Raycasts run through the Box2D plane; each reported fixture is then
// checked against the vertical span of its entity at the crossing point,
// since the plane knows nothing about altitude.

func (game *Arena) RayCast(origin vector.Vector3, target vector.Vector3, exclude []bot.EntityID, mask bot.CollisionMask) (bot.RayHit, bool) {
	if origin.FlatDistance(target) < 1e-6 {
		return bot.RayHit{}, false
	}

	var best bot.RayHit
	bestFraction := 2.0
	found := false

	game.PhysicalWorld.RayCast(
		func(fixture *box2d.B2Fixture, point box2d.B2Vec2, normal box2d.B2Vec2, fraction float64) float64 {
			descriptor, ok := fixture.GetBody().GetUserData().(types.PhysicalBodyDescriptor)
			if !ok {
				return 1.0 // continue the ray
			}

			var hitmask bot.CollisionMask
			switch descriptor.Type {
			case types.PhysicalBodyDescriptorType.Obstacle:
				hitmask = bot.MaskObstacle
			case types.PhysicalBodyDescriptorType.Platform:
				hitmask = bot.MaskPlatform
			case types.PhysicalBodyDescriptorType.Agent:
				hitmask = bot.MaskAgent
			}

			if mask&hitmask == 0 {
				return 1.0
			}

			for _, excluded := range exclude {
				if uint64(excluded) == descriptor.ID {
					return 1.0
				}
			}

			z := origin.GetZ() + (target.GetZ()-origin.GetZ())*fraction
			if !game.spansHeight(descriptor, z) {
				return 1.0
			}

			if fraction < bestFraction {
				bestFraction = fraction
				found = true
				best = bot.RayHit{
					Point:  vector.MakeVector3(point.X, point.Y, z),
					Entity: bot.EntityID(descriptor.ID),
				}
			}

			return fraction // clip the ray to the closest hit so far
		},
		origin.Flatten().ToB2Vec2(),
		target.Flatten().ToB2Vec2(),
	)

	return best, found
}

func (game *Arena) spansHeight(descriptor types.PhysicalBodyDescriptor, z float64) bool {
	id := ecs.EntityID(descriptor.ID)

	switch descriptor.Type {
	case types.PhysicalBodyDescriptorType.Obstacle:
		qr := game.getEntity(id, game.obstacleComponent)
		if qr == nil {
			return false
		}

		obstacle := game.CastObstacle(qr.Components[game.obstacleComponent])
		return z >= obstacle.GetBase() && z <= obstacle.GetTop()

	case types.PhysicalBodyDescriptorType.Platform:
		qr := game.getEntity(id, game.platformComponent)
		if qr == nil {
			return false
		}

		platform := game.CastPlatform(qr.Components[game.platformComponent])
		top := platform.top.GetZ()
		return z >= top-platform.size.GetZ() && z <= top

	case types.PhysicalBodyDescriptorType.Agent:
		phys, ok := game.physicalAspect(id)
		if !ok {
			return false
		}

		return z >= phys.altitude && z <= phys.altitude+phys.height
	}

	return false
}

// GroundHeight reports the walkable height under the point: the highest
// platform top at or slightly above the point's altitude, else the arena
// floor. Outside the arena bounds there is nothing to stand on.
func (game *Arena) GroundHeight(at vector.Vector3) (float64, bool) {
	best := 0.0
	found := at.GetX() >= -game.bounds && at.GetX() <= game.bounds &&
		at.GetY() >= -game.bounds && at.GetY() <= game.bounds

	tree := game.staticTrees[bot.KindPlatform]
	if tree == nil {
		return best, found
	}

	probe, err := rtreego.NewRect(
		rtreego.Point{at.GetX() - 0.05, at.GetY() - 0.05},
		[]float64{0.1, 0.1},
	)
	if err != nil {
		return best, found
	}

	for _, spatial := range tree.SearchIntersect(probe) {
		handle := spatial.(*platformHandle)
		if !handle.aspect.Contains(at) {
			continue
		}

		top := handle.aspect.top.GetZ()
		if top <= at.GetZ()+0.5 && top > best {
			best = top
			found = true
		}
	}

	return best, found
}

func (game *Arena) SpawnPoints() []vector.Vector3 {
	points := make([]vector.Vector3, len(game.spawnPoints))
	copy(points, game.spawnPoints)
	return points
}

func (game *Arena) MatchActive() bool {
	return game.active
}

// Entities implements the controller-side registry over the spatial
// indexes: agents from the per-step moving tree, everything else from the
// static layout trees.
func (game *Arena) Entities(kind bot.EntityKind, near vector.Vector3, radius float64) []bot.Entity {
	var tree *rtreego.Rtree
	if kind == bot.KindPlayer {
		tree = game.agentsTree
	} else {
		tree = game.staticTrees[kind]
	}

	if tree == nil {
		return nil
	}

	region, err := rtreego.NewRect(
		rtreego.Point{near.GetX() - radius, near.GetY() - radius},
		[]float64{radius * 2, radius * 2},
	)
	if err != nil {
		return nil
	}

	spatials := tree.SearchIntersect(region)

	entities := make([]bot.Entity, 0, len(spatials))
	for _, spatial := range spatials {
		entities = append(entities, spatial.(bot.Entity))
	}

	return entities
}
