package arena

import (
	"math"

	"github.com/bytearena/ecs"

	"github.com/wize-logic/realmarble2-sub000/bot"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

// affordanceReachHeight caps how far above or below an affordance an
// agent can be and still trigger it.
const affordanceReachHeight = 2.5

func systemAffordances(game *Arena) {
	for _, entityresult := range game.affordancesView.Get() {
		affordance := game.CastAffordance(entityresult.Components[game.affordanceComponent])

		for _, agentresult := range game.agentsView.Get() {
			agentID := agentresult.Entity.GetID()
			phys := game.CastPhysicalBody(agentresult.Components[game.physicalBodyComponent])

			position := phys.Position()
			if position.FlatDistance(affordance.position) > affordance.activationRadius {
				continue
			}
			if math.Abs(position.GetZ()-affordance.position.GetZ()) > affordanceReachHeight {
				continue
			}
			if affordance.onCooldown(agentID, game.clock) {
				continue
			}

			switch affordance.kind {
			case bot.KindJumpPad:
				game.triggerJumpPad(affordance, agentID, phys)
			case bot.KindTeleporter:
				game.triggerTeleporter(affordance, agentID, phys)
			case bot.KindRail:
				game.triggerRail(affordance, agentID, phys)
			}
		}
	}
}

func (game *Arena) controllerFor(id ecs.EntityID) (*bot.Bot, bool) {
	qr := game.getEntity(id, game.controllerComponent)
	if qr == nil {
		return nil, false
	}

	return game.CastController(qr.Components[game.controllerComponent]).bot, true
}

func (game *Arena) triggerJumpPad(affordance *Affordance, id ecs.EntityID, phys *PhysicalBody) {
	affordance.armCooldown(id, game.clock)

	phys.verticalVelocity = affordance.strength
	phys.grounded = false
	phys.jumpCount = phys.maxJumps // no air jumps stacked on a pad launch

	if controller, ok := game.controllerFor(id); ok {
		controller.OnLaunched(vector.MakeVector3(0, 0, affordance.strength))
	}
}

func (game *Arena) triggerTeleporter(affordance *Affordance, id ecs.EntityID, phys *PhysicalBody) {
	affordance.armCooldown(id, game.clock)

	phys.Teleport(affordance.exit)
	phys.SetVelocity(vector.MakeNullVector3())
}

// triggerRail resolves a rail attach attempt: agents arriving with enough
// plane speed along the rail axis get launched toward the far end, the
// rest bounce off and their controller is told so it stops trying for a
// while.
func (game *Arena) triggerRail(affordance *Affordance, id ecs.EntityID, phys *PhysicalBody) {
	affordance.armCooldown(id, game.clock)

	along := phys.Velocity().Flatten().Dot(affordance.axis)
	attached := along >= railAttachMinSpeed

	controller, controlled := game.controllerFor(id)

	if !attached {
		if controlled {
			controller.OnRailAttach(false)
		}
		return
	}

	mass := phys.body.GetMass()
	impulse := vector.FromVector2(affordance.axis.Scale(affordance.strength*mass), 3.0*mass)
	phys.ApplyImpulse(impulse)

	if controlled {
		controller.OnRailAttach(true)
		controller.OnLaunched(impulse)
	}
}
