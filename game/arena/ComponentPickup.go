package arena

import (
	"github.com/wize-logic/realmarble2-sub000/bot"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

func (game Arena) CastPickup(data interface{}) *Pickup {
	return data.(*Pickup)
}

type Pickup struct {
	kind     bot.EntityKind
	position vector.Vector3

	// ability granted when grabbed; empty for orbs
	ability string

	collected    bool
	respawnDelay float64
	respawnAt    float64
}

func (p Pickup) GetKind() bot.EntityKind {
	return p.kind
}

func (p Pickup) GetPosition() vector.Vector3 {
	return p.position
}

func (p Pickup) IsCollected() bool {
	return p.collected
}
