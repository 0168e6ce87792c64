package bot

import (
	"math"

	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

// evaluateState walks the priority rules top-down and returns the first
// that holds. The order is the contract: a rule only fires when every rule
// above it was false this tick.
func (b *Bot) evaluateState(now float64) State {
	// 1. an unequipped bot is non-viable in combat; this dominates
	// every other concern
	if b.avatar.Ability() == nil {
		if b.targets.Pickup != nil && b.targets.PickupKind == KindAbilityPickup {
			return StateCollectAbility
		}

		// search for one right away instead of waiting out the timers
		b.caches.abilityPickups.refresh(b.registry, b.avatar.Position(), now, true)
		if entry, net := b.bestPickup(now, &b.caches.abilityPickups, KindAbilityPickup); entry != nil {
			copied := *entry
			b.targets.Pickup = &copied
			b.targets.PickupKind = KindAbilityPickup
			b.targets.PickupNet = net
			return StateCollectAbility
		}

		return StateWander
	}

	// 2. retreat, holding the armed window once entered
	if b.shouldRetreat(now) {
		if b.state != StateRetreat {
			b.retreatUntil = now + b.cfg.RetreatMinSeconds +
				b.rng.Float64()*(b.cfg.RetreatMaxSeconds-b.cfg.RetreatMinSeconds)
		}
		return StateRetreat
	}
	if !b.cfg.NeverRetreat && b.state == StateRetreat && now < b.retreatUntil {
		return StateRetreat
	}

	// 3. in attack range of a live combat target
	if target := b.targets.Combat; target != nil {
		dist := target.Position.Sub(b.avatar.Position()).Mag()
		if dist <= b.cfg.AttackRange {
			return StateAttack
		}
	}

	// 4. orb worth collecting and safe
	if b.orbWorthCollecting(now) {
		return StateCollectOrb
	}

	// 5. chase
	if b.shouldChase(now) {
		return StateChase
	}

	return StateWander
}

// shouldRetreat is a small utility function over health ratio, enemy
// health, distance and personality, not a flat threshold.
func (b *Bot) shouldRetreat(now float64) bool {
	if b.cfg.NeverRetreat {
		return false
	}

	enemy := b.targets.Combat
	if enemy == nil {
		return false
	}

	dist := enemy.Position.Sub(b.avatar.Position()).Mag()
	if dist > b.cfg.RetreatTriggerRange {
		return false
	}

	myRatio := b.healthRatio()
	if myRatio <= 0.25 {
		// critical health overrides personality
		return true
	}

	threat := (1-myRatio)*1.2 + b.profile.CautionLevel*0.5
	threat += (1 - dist/b.cfg.RetreatTriggerRange) * 0.4
	threat -= b.profile.AggressionLevel * 0.5

	if enemyRatio, ok := enemy.HealthRatio(); ok {
		// a wounded enemy weakens the urge to run
		threat -= (1 - enemyRatio) * 0.6
	}

	return threat > 0.75
}

// shouldChase is the aggro-range heuristic, modulated by the strategic
// preference and personality.
func (b *Bot) shouldChase(now float64) bool {
	enemy := b.targets.Combat
	if enemy == nil {
		return false
	}

	aggro := b.cfg.AggroRange * (0.75 + b.profile.AggressionLevel*0.5)
	switch b.profile.Preference {
	case PreferenceAggressive:
		aggro *= 1.2
	case PreferenceDefensive:
		aggro *= 0.8
	case PreferenceSupport:
		aggro *= 0.7
	}

	dist := enemy.Position.Sub(b.avatar.Position()).Mag()
	if dist > aggro {
		return false
	}

	myRatio := b.healthRatio()
	if myRatio < 0.35 && b.profile.CautionLevel > 0.6 {
		return false
	}

	if enemyRatio, ok := enemy.HealthRatio(); ok {
		if enemyRatio-myRatio > 0.4 && b.profile.CautionLevel > 0.5 {
			return false
		}
	}

	return true
}

// orbWorthCollecting: an orb target is pursued only when it's safe (no
// hostile nearby, or the orb's net benefit beats the combat distance
// score) and either visible or within the short proximity override.
func (b *Bot) orbWorthCollecting(now float64) bool {
	pickup := b.targets.Pickup
	if pickup == nil || b.targets.PickupKind != KindOrbPickup {
		return false
	}

	pos := b.avatar.Position()

	if enemy := b.targets.Combat; enemy != nil {
		enemyDist := enemy.Position.Sub(pos).Mag()
		if enemyDist < b.cfg.OrbSafeRadius {
			combatPull := math.Max(0, 100-2*enemyDist)
			if b.targets.PickupNet <= combatPull {
				return false
			}
		}
	}

	orbDist := pickup.Position.Sub(pos).Mag()
	if orbDist > b.cfg.OrbProximityOverride &&
		!b.vision.Visible(now, b.id, pos, b.avatar.Body().Yaw(), pickup.Entity.ID(), pickup.Position) {
		return false
	}

	return true
}

// runBehavior executes the active state's behavior function, producing a
// movement destination (ok=false means hold position this tick).
func (b *Bot) runBehavior(now float64, dt float64) (vector.Vector3, bool) {
	switch b.state {
	case StateChase:
		return b.behaviorChase(now, dt)
	case StateAttack:
		return b.behaviorAttack(now, dt)
	case StateRetreat:
		return b.behaviorRetreat(now, dt)
	case StateCollectAbility, StateCollectOrb:
		return b.behaviorCollect(now, dt)
	}

	return b.behaviorWander(now, dt)
}

func (b *Bot) behaviorWander(now float64, dt float64) (vector.Vector3, bool) {
	if b.targets.Platform != nil || b.Navigating() {
		if dest, ok := b.updatePlatformNav(now, dt); ok {
			return dest, true
		}
	}

	pos := b.avatar.Position()

	if !b.hasWanderGoal || now >= b.wanderUntil || b.wanderGoal.FlatDistance(pos) < 2 {
		offset := vector.MakeRandomVector2().MultScalar(3 + b.rng.Float64()*(b.cfg.WanderRadius-3))
		goal := pos.Add(vector.FromVector2(offset, 0))

		if ground, ok := b.world.GroundHeight(goal); ok {
			goal = goal.SetZ(ground)
		}

		b.wanderGoal = goal
		b.wanderUntil = now + b.cfg.WanderReplanSeconds
		b.hasWanderGoal = true
	}

	return b.wanderGoal, true
}

func (b *Bot) behaviorChase(now float64, dt float64) (vector.Vector3, bool) {
	target := b.targets.Combat
	if target == nil || !target.Revalidate() {
		b.targets.Combat = nil
		b.resetState(now)
		return vector.MakeNullVector3(), false
	}

	if b.targets.Platform != nil || b.Navigating() {
		if dest, ok := b.updatePlatformNav(now, dt); ok {
			return dest, true
		}
	}

	dest, _ := b.steerViaAffordance(target.Position)
	return dest, true
}

func (b *Bot) behaviorAttack(now float64, dt float64) (vector.Vector3, bool) {
	target := b.targets.Combat
	if target == nil || !target.Revalidate() {
		b.targets.Combat = nil
		b.resetState(now)
		return vector.MakeNullVector3(), false
	}

	body := b.avatar.Body()
	pos := body.Position()
	dist := target.Position.Sub(pos).Mag()

	ability := b.avatar.Ability()
	optimal := b.cfg.AttackRange * 0.6
	if ability != nil {
		optimal = ability.OptimalRange()
	}

	b.tryAttack(now)
	b.facePoint(target.Position)

	toTarget := target.Position.Sub(pos).Flatten()

	switch {
	case dist > optimal+2:
		return target.Position, true

	case dist < optimal-2:
		away := pos.Add(vector.FromVector2(toTarget.Normalize().MultScalar(-4), 0))
		return away, true
	}

	// hold the range band, strafe around the target
	if now >= b.combat.flipAt {
		b.combat.flipAt = now + b.cfg.StrafeFlipSeconds
		if b.rng.Float64() < 0.5 {
			b.combat.strafeDir = 1
		} else {
			b.combat.strafeDir = -1
		}
	}
	if b.combat.strafeDir == 0 {
		b.combat.strafeDir = 1
	}

	side := toTarget.OrthogonalClockwise().Normalize().MultScalar(3 * b.combat.strafeDir)
	return pos.Add(vector.FromVector2(side, 0)), true
}

func (b *Bot) behaviorRetreat(now float64, dt float64) (vector.Vector3, bool) {
	enemy := b.targets.Combat

	if enemy != nil && enemy.Revalidate() {
		pos := b.avatar.Position()
		away := pos.Sub(enemy.Position).Flatten()
		if away.IsNull() {
			away = vector.MakeRandomVector2()
		}

		dest := pos.Add(vector.FromVector2(away.Normalize().MultScalar(12), 0))
		dest, _ = b.steerViaAffordance(dest)
		return dest, true
	}

	// nobody to run from; keep moving away from the last heading
	return b.behaviorWander(now, dt)
}

func (b *Bot) behaviorCollect(now float64, dt float64) (vector.Vector3, bool) {
	pickup := b.targets.Pickup
	if pickup == nil || !pickup.Revalidate() {
		// collected by someone else or despawned between refreshes
		b.targets.clearPickup()
		b.resetState(now)
		return vector.MakeNullVector3(), false
	}

	dest, _ := b.steerViaAffordance(pickup.Position)
	return dest, true
}
