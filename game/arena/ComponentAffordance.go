package arena

import (
	"github.com/bytearena/ecs"

	"github.com/wize-logic/realmarble2-sub000/bot"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

func (game Arena) CastAffordance(data interface{}) *Affordance {
	return data.(*Affordance)
}

// Affordance is a traversal helper standing in the arena: a jump pad, a
// teleporter entrance or a rail attach point. The affordance triggers
// itself on any agent entering its activation radius; controllers only
// steer toward it.
type Affordance struct {
	kind     bot.EntityKind
	position vector.Vector3
	size     vector.Vector3

	activationRadius float64

	// jump pads and rails
	strength float64

	// rails: normalized launch direction in the plane
	axis vector.Vector2

	// teleporters
	exit vector.Vector3

	// per-agent re-trigger lockout
	cooldown      float64
	cooldownUntil map[ecs.EntityID]float64
}

func (a Affordance) GetKind() bot.EntityKind {
	return a.kind
}

func (a Affordance) GetPosition() vector.Vector3 {
	return a.position
}

func (a *Affordance) onCooldown(id ecs.EntityID, clock float64) bool {
	return clock < a.cooldownUntil[id]
}

func (a *Affordance) armCooldown(id ecs.EntityID, clock float64) {
	a.cooldownUntil[id] = clock + a.cooldown
}
