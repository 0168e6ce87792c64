package arena

import (
	"github.com/bytearena/ecs"

	"github.com/wize-logic/realmarble2-sub000/bot"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

const (
	pickupGrabRadius    = 1.4
	pickupGrabHeight    = 1.6
	abilityRespawnDelay = 12.0
	orbRespawnDelay     = 8.0
	pickupMarkerExtent  = 0.8
)

func (game *Arena) NewEntityAbilityPickup(position vector.Vector3, ability string) *ecs.Entity {
	return game.newEntityPickup(bot.KindAbilityPickup, position, ability, abilityRespawnDelay)
}

func (game *Arena) NewEntityOrbPickup(position vector.Vector3) *ecs.Entity {
	return game.newEntityPickup(bot.KindOrbPickup, position, "", orbRespawnDelay)
}

func (game *Arena) newEntityPickup(kind bot.EntityKind, position vector.Vector3, ability string, respawnDelay float64) *ecs.Entity {
	pickup := game.manager.NewEntity()

	aspect := &Pickup{
		kind:         kind,
		position:     position,
		ability:      ability,
		respawnDelay: respawnDelay,
	}

	pickup.AddComponent(game.pickupComponent, aspect)

	game.registerStatic(kind, &pickupHandle{
		game:   game,
		id:     pickup.GetID(),
		aspect: aspect,
		rect:   makeFlatRect(position, pickupMarkerExtent, pickupMarkerExtent),
	})

	return pickup
}
