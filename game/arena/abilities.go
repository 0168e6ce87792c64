package arena

import (
	"github.com/bytearena/ecs"

	"github.com/wize-logic/realmarble2-sub000/bot"
	"github.com/wize-logic/realmarble2-sub000/common/utils/number"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

// Abilities resolve as instant raycasts along the owner's heading. The
// controllers decide when and from where to fire; the arena only applies
// range and line of sight.

const (
	abilityMuzzleHeight = 1.0

	// hold time for a full railgun charge, and the damage it adds
	railgunFullCharge  = 1.2
	railgunChargeBonus = 35
)

type abilitySpec struct {
	optimalRange float64
	maxRange     float64
	damage       int
	cooldown     float64
	charged      bool
}

var abilitySpecs = map[string]abilitySpec{
	"hammer":  {optimalRange: 2.2, maxRange: 3.5, damage: 35, cooldown: 1.1},
	"blade":   {optimalRange: 1.8, maxRange: 3.0, damage: 26, cooldown: 0.7},
	"blaster": {optimalRange: 16, maxRange: 40, damage: 14, cooldown: 0.45},
	"mortar":  {optimalRange: 24, maxRange: 55, damage: 30, cooldown: 1.8},
	"railgun": {optimalRange: 26, maxRange: 60, damage: 40, cooldown: 2.2, charged: true},
}

var defaultAbilitySpec = abilitySpec{
	optimalRange: 14,
	maxRange:     35,
	damage:       15,
	cooldown:     1.0,
}

func (game *Arena) newAbility(owner ecs.EntityID, name string) bot.Ability {
	spec, ok := abilitySpecs[name]
	if !ok {
		spec = defaultAbilitySpec
	}

	base := ability{
		game:  game,
		owner: owner,
		name:  name,
		spec:  spec,
	}

	if spec.charged {
		return &chargedAbility{ability: base}
	}

	return &base
}

type ability struct {
	game    *Arena
	owner   ecs.EntityID
	name    string
	spec    abilitySpec
	readyAt float64
}

func (ab *ability) Name() string {
	return ab.name
}

func (ab *ability) Ready() bool {
	return ab.game.clock >= ab.readyAt
}

func (ab *ability) OptimalRange() float64 {
	return ab.spec.optimalRange
}

func (ab *ability) Use() bool {
	if !ab.Ready() {
		return false
	}

	ab.readyAt = ab.game.clock + ab.spec.cooldown
	ab.game.resolveHitscan(ab.owner, ab.spec.maxRange, ab.spec.damage)
	return true
}

type chargedAbility struct {
	ability

	charging    bool
	chargeStart float64
}

func (ab *chargedAbility) StartCharge() bool {
	if ab.charging || !ab.Ready() {
		return false
	}

	ab.charging = true
	ab.chargeStart = ab.game.clock
	return true
}

// CancelCharge discards a held charge without firing or spending the
// cooldown, so an abandoned charge never wedges StartCharge.
func (ab *chargedAbility) CancelCharge() {
	ab.charging = false
}

func (ab *chargedAbility) ReleaseCharge() bool {
	if !ab.charging {
		return false
	}

	ab.charging = false

	held := number.Clamp((ab.game.clock-ab.chargeStart)/railgunFullCharge, 0, 1)
	damage := ab.spec.damage + int(held*railgunChargeBonus)

	ab.readyAt = ab.game.clock + ab.spec.cooldown
	ab.game.resolveHitscan(ab.owner, ab.spec.maxRange, damage)
	return true
}

func (game *Arena) resolveHitscan(owner ecs.EntityID, maxRange float64, damage int) {
	phys, ok := game.physicalAspect(owner)
	if !ok {
		return
	}

	origin := phys.Position()
	origin = origin.SetZ(origin.GetZ() + abilityMuzzleHeight)

	heading := vector.MakeVector2(0, 1).SetAngle(phys.Yaw())
	target := origin.Add(vector.FromVector2(heading.Scale(maxRange), 0))

	hit, found := game.RayCast(origin, target, []bot.EntityID{bot.EntityID(owner)}, bot.MaskSolid|bot.MaskAgent)
	if !found {
		return
	}

	qr := game.getEntity(ecs.EntityID(hit.Entity), game.healthComponent)
	if qr == nil {
		return // the ray ended on world geometry
	}

	game.applyDamage(ecs.EntityID(hit.Entity), damage, owner)
}
