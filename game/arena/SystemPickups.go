package arena

import (
	"math"
	"time"

	notify "github.com/bitly/go-notify"

	"github.com/wize-logic/realmarble2-sub000/bot"
)

// PickupEvent is published on "arena:pickup" whenever an agent grabs a
// pickup.
type PickupEvent struct {
	Agent  bot.EntityID `json:"agent"`
	Kind   string       `json:"kind"`
	Pickup bot.EntityID `json:"pickup"`
}

func systemPickups(game *Arena) {
	for _, entityresult := range game.pickupsView.Get() {
		pickup := game.CastPickup(entityresult.Components[game.pickupComponent])

		if pickup.collected {
			if game.clock >= pickup.respawnAt {
				pickup.collected = false
			}
			continue
		}

		for _, agentresult := range game.agentsView.Get() {
			phys := game.CastPhysicalBody(agentresult.Components[game.physicalBodyComponent])

			position := phys.Position()
			if position.FlatDistance(pickup.position) > pickupGrabRadius {
				continue
			}
			if math.Abs(position.GetZ()-pickup.position.GetZ()) > pickupGrabHeight {
				continue
			}

			player := game.CastPlayer(agentresult.Components[game.playerComponent])

			switch pickup.kind {
			case bot.KindAbilityPickup:
				player.ability = game.newAbility(agentresult.Entity.GetID(), pickup.ability)
			case bot.KindOrbPickup:
				player.orbs++
			}

			pickup.collected = true
			pickup.respawnAt = game.clock + pickup.respawnDelay

			notify.PostTimeout("arena:pickup", PickupEvent{
				Agent:  bot.EntityID(agentresult.Entity.GetID()),
				Kind:   pickup.kind.String(),
				Pickup: bot.EntityID(entityresult.Entity.GetID()),
			}, time.Millisecond)

			break // first to touch wins
		}
	}
}
