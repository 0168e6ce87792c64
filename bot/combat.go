package bot

import (
	"math"

	"github.com/wize-logic/realmarble2-sub000/common/utils/number"
	"github.com/wize-logic/realmarble2-sub000/common/utils/trigo"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

type abilityClass int

const (
	classMelee abilityClass = iota
	classProjectile
	classCharged
)

// weaponProfile describes the engagement envelope of one ability kind:
// where it's effective, how hard it is to land, and what gates its use.
type weaponProfile struct {
	class           abilityClass
	optimalRange    float64
	baseScore       float64
	minRange        float64
	maxRange        float64
	facingTolerance float64 // radians
	projectileSpeed float64
	maxHeightDelta  float64 // melee only
}

var weaponProfiles = map[string]weaponProfile{
	"hammer": {
		class:           classMelee,
		optimalRange:    2.2,
		baseScore:       72,
		maxRange:        3.5,
		facingTolerance: number.DegreeToRadian(20),
		maxHeightDelta:  1.2,
	},
	"blade": {
		class:           classMelee,
		optimalRange:    1.8,
		baseScore:       68,
		maxRange:        3.0,
		facingTolerance: number.DegreeToRadian(25),
		maxHeightDelta:  1.0,
	},
	"blaster": {
		class:           classProjectile,
		optimalRange:    16,
		baseScore:       60,
		minRange:        3,
		maxRange:        40,
		facingTolerance: number.DegreeToRadian(50),
		projectileSpeed: 38,
	},
	"mortar": {
		class:           classProjectile,
		optimalRange:    24,
		baseScore:       52,
		minRange:        8,
		maxRange:        55,
		facingTolerance: number.DegreeToRadian(60),
		projectileSpeed: 22,
	},
	"railgun": {
		class:           classCharged,
		optimalRange:    26,
		baseScore:       55,
		minRange:        6,
		maxRange:        60,
		facingTolerance: number.DegreeToRadian(35),
		projectileSpeed: 90,
	},
}

var defaultWeaponProfile = weaponProfile{
	class:           classProjectile,
	optimalRange:    14,
	baseScore:       55,
	minRange:        2,
	maxRange:        35,
	facingTolerance: number.DegreeToRadian(45),
}

func profileForAbility(name string) weaponProfile {
	if wp, ok := weaponProfiles[name]; ok {
		return wp
	}

	return defaultWeaponProfile
}

type combatState struct {
	charging  bool
	releaseAt float64
	strafeDir float64
	flipAt    float64
}

// proficiency scores how well this bot handles this engagement: base
// score, penalized by distance from the optimal range, scaled by skill
// and by how the strategic preference matches the weapon's reach.
func (b *Bot) proficiency(wp weaponProfile, dist float64) float64 {
	score := wp.baseScore - math.Abs(dist-wp.optimalRange)*2.2
	score *= 0.5 + 0.5*b.profile.Skill
	score *= preferenceWeaponMultiplier(b.profile.Preference, wp)

	return math.Max(0, score)
}

func preferenceWeaponMultiplier(pref StrategicPreference, wp weaponProfile) float64 {
	switch pref {
	case PreferenceAggressive:
		if wp.optimalRange < 8 {
			return 1.25
		}
		return 0.9

	case PreferenceDefensive:
		if wp.optimalRange > 18 {
			return 1.25
		}
		return 0.85

	case PreferenceSupport:
		return 0.9
	}

	// balanced favors mid-range kinds
	if wp.optimalRange >= 8 && wp.optimalRange <= 18 {
		return 1.1
	}

	return 1.0
}

// aimPoint projects the target forward along its velocity by the flight
// time of the projectile, damped by the bot's personal aim accuracy.
// Low-skill bots simply aim at where the target is now.
func (b *Bot) aimPoint(target *CacheEntry, wp weaponProfile) vector.Vector3 {
	if b.profile.Skill < b.cfg.LeadSkillThreshold {
		return target.Position
	}

	velocity, ok := target.Velocity()
	if !ok {
		return target.Position
	}

	speed := wp.projectileSpeed
	if speed <= 0 {
		speed = b.cfg.DefaultProjectileSpeed
	}

	dist := target.Position.Sub(b.avatar.Position()).Mag()
	flight := dist / speed

	lead := velocity.MultScalar(flight * b.profile.AimAccuracy)
	return target.Position.Add(lead)
}

// tryAttack runs the full engagement heuristic against the current combat
// target: kind-specific gating, proficiency-scaled usage probability, lead
// prediction, and charge/release sequencing.
func (b *Bot) tryAttack(now float64) {
	ability := b.avatar.Ability()
	target := b.targets.Combat

	if ability == nil || target == nil {
		return
	}

	wp := profileForAbility(ability.Name())

	body := b.avatar.Body()
	pos := body.Position()
	dist := target.Position.Sub(pos).Mag()
	aim := b.aimPoint(target, wp)

	// a pending charge releases regardless of the gates below
	if b.combat.charging {
		if now >= b.combat.releaseAt {
			b.releaseCharge(ability)
		}
		b.facePoint(aim)
		return
	}

	switch wp.class {
	case classMelee:
		dz := target.Position.GetZ() - pos.GetZ()
		if math.Abs(dz) > wp.maxHeightDelta {
			return
		}

		if math.Abs(trigo.FacingDelta(body.Yaw(), pos, target.Position)) > wp.facingTolerance {
			return
		}

		if dist > wp.maxRange {
			return
		}

	default:
		if dist < wp.minRange || dist > wp.maxRange {
			return
		}

		// projectile kinds gate on alignment with the predicted position
		if math.Abs(trigo.FacingDelta(body.Yaw(), pos, aim)) > wp.facingTolerance {
			return
		}
	}

	if !ability.Ready() {
		return
	}

	// proficiency-scaled usage probability: a well-matched engagement
	// fires reliably instead of coin-flipping
	if b.rng.Float64()*100 > b.proficiency(wp, dist) {
		return
	}

	if wp.class == classCharged {
		if chargeable, ok := ability.(ChargeableAbility); ok && chargeable.StartCharge() {
			b.combat.charging = true
			b.combat.releaseAt = now + b.cfg.ChargeHoldMinSeconds +
				b.rng.Float64()*(b.cfg.ChargeHoldMaxSeconds-b.cfg.ChargeHoldMinSeconds)
			return
		}
	}

	ability.Use()
}

// cancelPendingCharge drops a charge the bot no longer intends to fire,
// telling the ability so its own charging latch clears too. Leaving the
// latch set would block every later StartCharge.
func (b *Bot) cancelPendingCharge() {
	if !b.combat.charging {
		return
	}

	b.combat.charging = false

	if chargeable, ok := b.avatar.Ability().(ChargeableAbility); ok {
		chargeable.CancelCharge()
	}
}

func (b *Bot) releaseCharge(ability Ability) {
	b.combat.charging = false

	if chargeable, ok := ability.(ChargeableAbility); ok {
		if chargeable.ReleaseCharge() {
			return
		}
	}

	// release unsupported, fall back to an instant use
	ability.Use()
}
