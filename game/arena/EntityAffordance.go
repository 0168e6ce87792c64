package arena

import (
	"github.com/bytearena/ecs"

	"github.com/wize-logic/realmarble2-sub000/bot"
	"github.com/wize-logic/realmarble2-sub000/common/utils"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

const (
	jumpPadActivationRadius    = 1.2
	teleporterActivationRadius = 1.0
	railActivationRadius       = 1.5

	jumpPadCooldown    = 1.0
	teleporterCooldown = 2.5
	railCooldown       = 1.5

	// minimum plane speed along the rail axis for an attach to hold
	railAttachMinSpeed = 1.0
)

func (game *Arena) NewEntityJumpPad(position vector.Vector3, strength float64) *ecs.Entity {
	return game.newEntityAffordance(&Affordance{
		kind:             bot.KindJumpPad,
		position:         position,
		size:             vector.MakeVector3(1.5, 1.5, 0.3),
		activationRadius: jumpPadActivationRadius,
		strength:         strength,
		cooldown:         jumpPadCooldown,
	})
}

func (game *Arena) NewEntityTeleporter(position vector.Vector3, exit vector.Vector3) *ecs.Entity {
	return game.newEntityAffordance(&Affordance{
		kind:             bot.KindTeleporter,
		position:         position,
		size:             vector.MakeVector3(1.2, 1.2, 2.4),
		activationRadius: teleporterActivationRadius,
		exit:             exit,
		cooldown:         teleporterCooldown,
	})
}

// NewEntityRail adds a grind rail attach point. Agents reaching it with
// enough speed along the rail axis get launched toward the far end.
func (game *Arena) NewEntityRail(from vector.Vector3, to vector.Vector3, strength float64) *ecs.Entity {
	utils.Assert(to.Sub(from).FlatMag() > 1e-6, "rail endpoints must be distinct in the plane")

	axis := to.Sub(from).Flatten().Normalize()

	return game.newEntityAffordance(&Affordance{
		kind:             bot.KindRail,
		position:         from,
		size:             vector.MakeVector3(0.4, to.Sub(from).FlatMag(), 0.4),
		activationRadius: railActivationRadius,
		strength:         strength,
		axis:             axis,
		cooldown:         railCooldown,
	})
}

func (game *Arena) newEntityAffordance(aspect *Affordance) *ecs.Entity {

	affordance := game.manager.NewEntity()

	aspect.cooldownUntil = make(map[ecs.EntityID]float64)

	affordance.AddComponent(game.affordanceComponent, aspect)

	game.registerStatic(aspect.kind, &affordanceHandle{
		game:   game,
		id:     affordance.GetID(),
		aspect: aspect,
		rect:   makeFlatRect(aspect.position, aspect.size.GetX(), aspect.size.GetY()),
	})

	return affordance
}
