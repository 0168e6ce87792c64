package bot

import (
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

// affordanceParams is the per-kind evaluation contract shared by every
// traversal affordance: rails, jump pads and teleporters differ only in
// these numbers.
type affordanceParams struct {
	maxDistance      float64
	activationRadius float64
	minScore         float64
}

func (b *Bot) affordanceParamsFor(kind EntityKind) affordanceParams {
	switch kind {
	case KindRail:
		return affordanceParams{
			maxDistance:      b.cfg.RailMaxDistance,
			activationRadius: b.cfg.RailActivationRadius,
			minScore:         b.cfg.RailMinScore,
		}
	case KindJumpPad:
		return affordanceParams{
			maxDistance:      b.cfg.JumpPadMaxDistance,
			activationRadius: b.cfg.JumpPadActivation,
			minScore:         b.cfg.JumpPadMinScore,
		}
	case KindTeleporter:
		return affordanceParams{
			maxDistance:      b.cfg.TeleporterMaxDistance,
			activationRadius: b.cfg.TeleporterActivation,
			minScore:         b.cfg.TeleporterMinScore,
		}
	}

	return affordanceParams{}
}

// selectAffordance evaluates every cached traversal affordance under the
// shared scoring contract and adopts the best one above its kind's
// threshold, or clears the slot.
func (b *Bot) selectAffordance(now float64) {
	var best *CacheEntry
	var bestKind EntityKind
	bestScore := 0.0

	for _, kind := range []EntityKind{KindRail, KindJumpPad, KindTeleporter} {
		if now < b.attachCooldownUntil[kind] {
			continue
		}

		cache := b.caches.affordanceCache(kind)
		params := b.affordanceParamsFor(kind)

		for i := range cache.entries {
			entry := &cache.entries[i]

			score := b.scoreAffordance(entry, params)
			if score <= params.minScore {
				continue
			}

			if best == nil || score > bestScore {
				copied := *entry
				best = &copied
				bestKind = kind
				bestScore = score
			}
		}
	}

	b.targets.Affordance = best
	b.targets.AffordanceKind = bestKind
}

// scoreAffordance combines accessibility, a per-state tactical bonus, and
// a crowding/risk penalty.
func (b *Bot) scoreAffordance(entry *CacheEntry, params affordanceParams) float64 {
	pos := b.avatar.Position()

	dist := entry.Position.Sub(pos).Mag()
	if dist > params.maxDistance {
		return -1
	}

	score := (1 - dist/params.maxDistance) * 40

	switch b.state {
	case StateRetreat:
		// any escape route is welcome while retreating
		score += 15

	case StateChase, StateCollectAbility, StateCollectOrb:
		if goal, ok := b.currentGoalPosition(); ok {
			direct := goal.Sub(pos).Mag()
			via := dist + goal.Sub(entry.Position).Mag()
			if via+b.cfg.AffordanceGainMargin < direct {
				score += 18
			}
		}
	}

	if enemy := b.targets.Combat; enemy != nil {
		enemyDist := enemy.Position.Sub(entry.Position).Mag()

		// a destination well above or away from danger is favored
		if entry.Position.GetZ() > enemy.Position.GetZ()+2 ||
			enemyDist > enemy.Position.Sub(pos).Mag() {
			score += 8
		}

		// camped by the combat target
		if enemyDist < 4 {
			score -= 20
		}
	}

	for i := range b.caches.players.entries {
		rival := &b.caches.players.entries[i]
		if rival.Entity.ID() == b.id {
			continue
		}

		if rival.Position.Sub(entry.Position).Mag() < 3 {
			score -= 8
		}
	}

	return score
}

func (b *Bot) currentGoalPosition() (vector.Vector3, bool) {
	switch b.state {
	case StateChase, StateAttack:
		if b.targets.Combat != nil {
			return b.targets.Combat.Position, true
		}
	case StateCollectAbility, StateCollectOrb:
		if b.targets.Pickup != nil {
			return b.targets.Pickup.Position, true
		}
	}

	return vector.MakeNullVector3(), false
}

// steerViaAffordance returns the adopted affordance as an interim
// destination when it measurably shortens the path to the goal. The
// actual activation (rail attach, pad trigger, teleport) belongs to the
// affordance entity; the bot only approaches it.
func (b *Bot) steerViaAffordance(goal vector.Vector3) (vector.Vector3, bool) {
	entry := b.targets.Affordance
	if entry == nil {
		return goal, false
	}

	if !entry.Revalidate() {
		b.targets.Affordance = nil
		return goal, false
	}

	// Once inside the activation radius, hold position on the affordance
	// and let the entity trigger.
	if b.withinActivation() {
		return entry.Position, true
	}

	pos := b.avatar.Position()
	direct := goal.Sub(pos).Mag()
	via := entry.Position.Sub(pos).Mag() + goal.Sub(entry.Position).Mag()

	if b.state != StateRetreat && via+b.cfg.AffordanceGainMargin >= direct {
		return goal, false
	}

	return entry.Position, true
}

// withinActivation reports whether the bot is close enough to the adopted
// affordance for the entity itself to trigger.
func (b *Bot) withinActivation() bool {
	entry := b.targets.Affordance
	if entry == nil {
		return false
	}

	params := b.affordanceParamsFor(b.targets.AffordanceKind)
	return entry.Position.Sub(b.avatar.Position()).Mag() <= params.activationRadius
}

// OnRailAttach is invoked by the rail entity when an attach attempt
// resolves. A failure arms a cooldown so the bot doesn't thrash trying to
// re-attach immediately.
func (b *Bot) OnRailAttach(ok bool) {
	if ok {
		return
	}

	b.attachCooldownUntil[KindRail] = b.lastNow + b.cfg.RailAttachCooldown

	if b.targets.AffordanceKind == KindRail {
		b.targets.Affordance = nil
	}
}
