package bot

import (
	"math/rand"
	"sort"

	"github.com/wize-logic/realmarble2-sub000/bot/botcfg"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

// CacheEntry is one distance-bounded snapshot of a nearby entity. The
// optional capabilities are probed once when the entry is built and held
// here, instead of being re-asserted on every read.
type CacheEntry struct {
	Entity   Entity
	Position vector.Vector3
	Size     vector.Vector3

	damageable  Damageable
	moving      Moving
	collectible Collectible
}

func makeCacheEntry(e Entity) CacheEntry {
	entry := CacheEntry{
		Entity:   e,
		Position: e.Position(),
	}

	if sized, ok := e.(Sized); ok {
		entry.Size = sized.Size()
	}

	entry.damageable, _ = e.(Damageable)
	entry.moving, _ = e.(Moving)
	entry.collectible, _ = e.(Collectible)

	return entry
}

// Revalidate re-reads the live entity behind the entry. It returns false
// when the reference went stale (despawned, killed, collected); the caller
// must then clear whatever slot held it.
func (entry *CacheEntry) Revalidate() bool {
	if entry == nil || entry.Entity == nil {
		return false
	}

	if !entry.Entity.Alive() {
		return false
	}

	if entry.collectible != nil && entry.collectible.Collected() {
		return false
	}

	entry.Position = entry.Entity.Position()
	return true
}

func (entry *CacheEntry) HealthRatio() (float64, bool) {
	if entry.damageable == nil {
		return 0, false
	}

	max := entry.damageable.MaxHealth()
	if max <= 0 {
		return 0, false
	}

	return float64(entry.damageable.Health()) / float64(max), true
}

func (entry *CacheEntry) Velocity() (vector.Vector3, bool) {
	if entry.moving == nil {
		return vector.MakeNullVector3(), false
	}

	return entry.moving.Velocity(), true
}

type spatialCache struct {
	kind     EntityKind
	maxCount int
	maxDist  float64
	period   float64
	nextAt   float64
	entries  []CacheEntry
}

func (c *spatialCache) refresh(registry Registry, near vector.Vector3, now float64, force bool) {
	if !force && now < c.nextAt {
		c.prune()
		return
	}

	c.nextAt = now + c.period

	live := registry.Entities(c.kind, near, c.maxDist)
	entries := make([]CacheEntry, 0, len(live))

	for _, e := range live {
		if e == nil || !e.Alive() {
			continue
		}

		entry := makeCacheEntry(e)
		if entry.collectible != nil && entry.collectible.Collected() {
			continue
		}

		if entry.Position.Sub(near).Mag() > c.maxDist {
			continue
		}

		entries = append(entries, entry)
	}

	if len(entries) > c.maxCount {
		sort.Slice(entries, func(i, j int) bool {
			di := entries[i].Position.Sub(near).MagSq()
			dj := entries[j].Position.Sub(near).MagSq()
			return di < dj
		})
		entries = entries[:c.maxCount]
	}

	c.entries = entries
}

// prune drops entries that turned stale between refreshes.
func (c *spatialCache) prune() {
	kept := c.entries[:0]

	for i := range c.entries {
		if c.entries[i].Revalidate() {
			kept = append(kept, c.entries[i])
		}
	}

	c.entries = kept
}

type cacheSet struct {
	players        spatialCache
	abilityPickups spatialCache
	orbPickups     spatialCache
	rails          spatialCache
	jumpPads       spatialCache
	teleporters    spatialCache
	platforms      spatialCache
}

// makeCacheSet builds the per-kind caches, each with a random phase offset
// on its first refresh so that co-spawned bots don't all refresh on the
// same tick.
func makeCacheSet(cfg botcfg.Config, rng *rand.Rand, now float64) cacheSet {
	phase := func(period float64) float64 {
		return now + rng.Float64()*period
	}

	return cacheSet{
		players: spatialCache{
			kind:     KindPlayer,
			maxCount: cfg.PlayerCacheMax,
			maxDist:  cfg.PlayerCacheDistance,
			period:   cfg.PlayerCachePeriod,
			nextAt:   phase(cfg.PlayerCachePeriod),
		},
		abilityPickups: spatialCache{
			kind:     KindAbilityPickup,
			maxCount: cfg.PickupCacheMax,
			maxDist:  cfg.PickupCacheDistance,
			period:   cfg.PickupCachePeriod,
			nextAt:   phase(cfg.PickupCachePeriod),
		},
		orbPickups: spatialCache{
			kind:     KindOrbPickup,
			maxCount: cfg.PickupCacheMax,
			maxDist:  cfg.PickupCacheDistance,
			period:   cfg.PickupCachePeriod,
			nextAt:   phase(cfg.PickupCachePeriod),
		},
		rails: spatialCache{
			kind:     KindRail,
			maxCount: cfg.PlatformCacheMax,
			maxDist:  cfg.RailMaxDistance,
			period:   cfg.AffordanceCachePeriod,
			nextAt:   phase(cfg.AffordanceCachePeriod),
		},
		jumpPads: spatialCache{
			kind:     KindJumpPad,
			maxCount: cfg.PlatformCacheMax,
			maxDist:  cfg.JumpPadMaxDistance,
			period:   cfg.AffordanceCachePeriod,
			nextAt:   phase(cfg.AffordanceCachePeriod),
		},
		teleporters: spatialCache{
			kind:     KindTeleporter,
			maxCount: cfg.PlatformCacheMax,
			maxDist:  cfg.TeleporterMaxDistance,
			period:   cfg.AffordanceCachePeriod,
			nextAt:   phase(cfg.AffordanceCachePeriod),
		},
		platforms: spatialCache{
			kind:     KindPlatform,
			maxCount: cfg.PlatformCacheMax,
			maxDist:  cfg.PlatformCacheDistance,
			period:   cfg.PlatformCachePeriod,
			nextAt:   phase(cfg.PlatformCachePeriod),
		},
	}
}

func (cs *cacheSet) refreshAll(registry Registry, near vector.Vector3, now float64) {
	cs.players.refresh(registry, near, now, false)
	cs.abilityPickups.refresh(registry, near, now, false)
	cs.orbPickups.refresh(registry, near, now, false)
	cs.rails.refresh(registry, near, now, false)
	cs.jumpPads.refresh(registry, near, now, false)
	cs.teleporters.refresh(registry, near, now, false)
	cs.platforms.refresh(registry, near, now, false)
}

func (cs *cacheSet) affordanceCache(kind EntityKind) *spatialCache {
	switch kind {
	case KindRail:
		return &cs.rails
	case KindJumpPad:
		return &cs.jumpPads
	case KindTeleporter:
		return &cs.teleporters
	}

	return nil
}
