package bot

import (
	"math"

	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

// TargetSelection holds the current goals of the bot: who to fight, what
// to pick up, which traversal affordance and destination platform to use.
// All slots are nullable references into the spatial caches; stale slots
// are cleared on revalidation, never chased.
type TargetSelection struct {
	Combat         *CacheEntry
	Pickup         *CacheEntry
	PickupKind     EntityKind
	PickupNet      float64
	Affordance     *CacheEntry
	AffordanceKind EntityKind
	Platform       *CacheEntry

	nextCombatAt     float64
	nextPickupAt     float64
	nextAffordanceAt float64
	nextPlatformAt   float64
}

func (ts *TargetSelection) clearPickup() {
	ts.Pickup = nil
	ts.PickupNet = 0
}

func (ts *TargetSelection) clearAll() {
	ts.Combat = nil
	ts.clearPickup()
	ts.Affordance = nil
	ts.Platform = nil
}

func (b *Bot) selectTargets(now float64) {
	ts := &b.targets

	// revalidate currently held references before any decision
	if ts.Combat != nil && !ts.Combat.Revalidate() {
		ts.Combat = nil
	}
	if ts.Pickup != nil && !ts.Pickup.Revalidate() {
		ts.clearPickup()
	}
	if ts.Affordance != nil && !ts.Affordance.Revalidate() {
		ts.Affordance = nil
	}
	if ts.Platform != nil && !ts.Platform.Revalidate() {
		ts.Platform = nil
	}

	if now >= ts.nextCombatAt {
		ts.nextCombatAt = now + b.cfg.CombatEvalPeriod
		b.selectCombatTarget(now)
	}

	if now >= ts.nextPickupAt {
		ts.nextPickupAt = now + b.cfg.PickupEvalPeriod
		b.selectPickupTarget(now)
	}

	if now >= ts.nextAffordanceAt {
		ts.nextAffordanceAt = now + b.cfg.AffordanceEvalPeriod
		b.selectAffordance(now)
	}

	if now >= ts.nextPlatformAt {
		ts.nextPlatformAt = now + b.cfg.PlatformEvalPeriod
		b.selectPlatform(now)
	}
}

// selectCombatTarget scores every cached nearby player and keeps the
// highest. Ties break on entity id for determinism.
func (b *Bot) selectCombatTarget(now float64) {
	if b.cfg.LockTargetWhileCollecting && b.state == StateCollectAbility && b.targets.Combat != nil {
		return
	}

	pos := b.avatar.Position()

	var best *CacheEntry
	bestScore := math.Inf(-1)

	for i := range b.caches.players.entries {
		entry := &b.caches.players.entries[i]
		if entry.Entity.ID() == b.id {
			continue
		}

		if ratio, ok := entry.HealthRatio(); ok && ratio <= 0 {
			continue
		}

		score := b.scoreCombatCandidate(now, entry, pos)

		if score > bestScore || (score == bestScore && best != nil && entry.Entity.ID() < best.Entity.ID()) {
			bestScore = score
			best = entry
		}
	}

	if best == nil {
		b.targets.Combat = nil
		return
	}

	copied := *best
	b.targets.Combat = &copied
}

func (b *Bot) scoreCombatCandidate(now float64, entry *CacheEntry, pos vector.Vector3) float64 {
	dist := entry.Position.Sub(pos).Mag()

	score := 100.0
	score += math.Max(0, 100-2*dist)

	if theirRatio, ok := entry.HealthRatio(); ok {
		myRatio := b.healthRatio()
		// a weaker enemy attracts aggressive bots, a stronger one repels
		// cautious ones
		diff := myRatio - theirRatio
		if diff >= 0 {
			score += diff * 40 * (0.5 + b.profile.AggressionLevel)
		} else {
			score += diff * 40 * (0.5 + b.profile.CautionLevel)
		}
	}

	if b.vision.Visible(now, b.id, pos, b.avatar.Body().Yaw(), entry.Entity.ID(), entry.Position) {
		score += 50
	}

	if ability := b.avatar.Ability(); ability != nil {
		if math.Abs(dist-ability.OptimalRange()) <= b.cfg.OptimalRangeBand {
			score += 40
		}
	}

	switch b.profile.Preference {
	case PreferenceAggressive:
		if dist < 15 {
			score += 10
		}
	case PreferenceDefensive:
		if dist > 20 {
			score += 10
		}
	case PreferenceSupport:
		score -= 15
	}

	return score
}

// selectPickupTarget computes net benefit = value − acquisition cost once
// per category and keeps the single best candidate above zero. A losing
// candidate is never pursued.
func (b *Bot) selectPickupTarget(now float64) {
	bestAbility, netAbility := b.bestPickup(now, &b.caches.abilityPickups, KindAbilityPickup)
	bestOrb, netOrb := b.bestPickup(now, &b.caches.orbPickups, KindOrbPickup)

	// an equipped bot cannot grab a second ability; holding one as the
	// pickup target would only starve orb collection
	if b.avatar.Ability() != nil {
		bestAbility = nil
	}

	switch {
	case bestAbility != nil && (bestOrb == nil || netAbility >= netOrb):
		copied := *bestAbility
		b.targets.Pickup = &copied
		b.targets.PickupKind = KindAbilityPickup
		b.targets.PickupNet = netAbility
	case bestOrb != nil:
		copied := *bestOrb
		b.targets.Pickup = &copied
		b.targets.PickupKind = KindOrbPickup
		b.targets.PickupNet = netOrb
	default:
		b.targets.clearPickup()
	}
}

func (b *Bot) bestPickup(now float64, cache *spatialCache, kind EntityKind) (*CacheEntry, float64) {
	value := b.pickupValue(kind)

	var best *CacheEntry
	bestNet := 0.0

	for i := range cache.entries {
		entry := &cache.entries[i]

		net := value - b.acquisitionCost(now, entry)
		if net <= 0 {
			continue
		}

		if best == nil || net > bestNet {
			best = entry
			bestNet = net
		}
	}

	return best, bestNet
}

func (b *Bot) pickupValue(kind EntityKind) float64 {
	switch kind {
	case KindAbilityPickup:
		if b.avatar.Ability() == nil {
			// an unequipped bot is non-viable in combat
			return 190
		}

		value := 40.0
		if b.profile.Preference == PreferenceSupport {
			value += 10
		}
		return value

	case KindOrbPickup:
		value := 70 - 4*float64(b.avatar.Level())
		if value < 30 {
			value = 30
		}

		if b.state == StateRetreat || b.state == StateAttack {
			value -= 45
		}

		if b.profile.Preference == PreferenceSupport {
			value += 8
		}

		return value
	}

	return 0
}

// acquisitionCost aggregates travel distance, stepped vertical-reach
// difficulty, crowding around the item, proximity of a live enemy, and a
// penalty when the item is not currently visible.
func (b *Bot) acquisitionCost(now float64, entry *CacheEntry) float64 {
	pos := b.avatar.Position()

	cost := entry.Position.FlatDistance(pos) * 2.0
	cost += b.verticalReachCost(entry.Position.GetZ() - pos.GetZ())

	for i := range b.caches.players.entries {
		rival := &b.caches.players.entries[i]
		if rival.Entity.ID() == b.id {
			continue
		}

		if rival.Position.Sub(entry.Position).Mag() < 4 {
			cost += 18
		}
	}

	if enemy := b.targets.Combat; enemy != nil {
		if enemy.Position.Sub(entry.Position).Mag() < b.cfg.OrbSafeRadius {
			cost += 25 * (0.5 + b.profile.CautionLevel)
		}
	}

	if !b.vision.Visible(now, b.id, pos, b.avatar.Body().Yaw(), entry.Entity.ID(), entry.Position) {
		cost += 25
	}

	// an item sitting on a cramped ledge is a knock-off risk
	if platform := b.supportingPlatform(entry.Position); platform != nil &&
		platform.Size.FlatMag() < b.cfg.SmallPlatformExtent {
		cost += 15
	}

	return cost
}

// supportingPlatform finds the cached platform the given point stands on,
// if any: flat overlap with the platform extent and the point at most a
// jump above its deck.
func (b *Bot) supportingPlatform(at vector.Vector3) *CacheEntry {
	for i := range b.caches.platforms.entries {
		platform := &b.caches.platforms.entries[i]

		extent := math.Max(platform.Size.FlatMag()/2, 2)
		if at.FlatDistance(platform.Position) > extent {
			continue
		}

		dz := at.GetZ() - platform.Position.GetZ()
		if dz < -0.5 || dz > 2 {
			continue
		}

		return platform
	}

	return nil
}

// verticalReachCost is banded, not linear: it reflects the jump /
// double-jump / bounce capability needed to cover the height delta.
func (b *Bot) verticalReachCost(dz float64) float64 {
	switch {
	case dz <= 0.5:
		return 0
	case dz <= b.cfg.JumpReach:
		return 12
	case dz <= b.cfg.DoubleJumpReach:
		return 30
	case dz <= b.cfg.MaxVerticalReach:
		return 55
	}

	// out of vertical reach entirely
	return math.Inf(1)
}

// selectPlatform scores destination platforms and early-exits as soon as a
// "good enough" candidate shows up, trading optimality for tick budget.
func (b *Bot) selectPlatform(now float64) {
	pos := b.avatar.Position()
	inCombat := b.targets.Combat != nil

	var best *CacheEntry
	bestScore := b.cfg.PlatformMinScore

	for i := range b.caches.platforms.entries {
		entry := &b.caches.platforms.entries[i]

		dz := entry.Position.GetZ() - pos.GetZ()
		if dz > b.cfg.MaxVerticalReach {
			continue
		}

		score := math.Max(0, 30-entry.Position.FlatDistance(pos)*0.5)

		if enemy := b.targets.Combat; enemy != nil {
			if entry.Position.GetZ() > enemy.Position.GetZ()+1.5 {
				score += 20
			}
		}

		if entry.Size.FlatMag() < b.cfg.SmallPlatformExtent {
			if inCombat {
				score -= 20
			} else {
				score -= 12
			}
		}

		occupancy := b.platformOccupancy(entry)
		if over := occupancy - b.cfg.PlatformOccupancyCap; over > 0 {
			score -= 10 * float64(over*over)
		}

		if score > bestScore {
			bestScore = score
			copied := *entry
			best = &copied

			if score >= b.cfg.PlatformGoodEnough {
				break
			}
		}
	}

	b.targets.Platform = best
}

func (b *Bot) platformOccupancy(platform *CacheEntry) int {
	extent := math.Max(platform.Size.FlatMag()/2, 2)
	count := 0

	for i := range b.caches.players.entries {
		rival := &b.caches.players.entries[i]
		if rival.Entity.ID() == b.id {
			continue
		}

		if rival.Position.FlatDistance(platform.Position) <= extent &&
			math.Abs(rival.Position.GetZ()-platform.Position.GetZ()) <= 2 {
			count++
		}
	}

	return count
}

func (b *Bot) healthRatio() float64 {
	max := b.avatar.MaxHealth()
	if max <= 0 {
		return 1
	}

	return float64(b.avatar.Health()) / float64(max)
}
