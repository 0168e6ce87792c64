// Package bot implements the autonomous controller driving one arena
// combatant: a priority-ordered state machine over a utility target
// selector, distance-bounded spatial caches, a vision service with
// temporal hysteresis, a layered obstacle-avoidance and stuck-recovery
// pipeline, and a combat heuristics layer. One controller runs
// synchronously per bot per physics tick; all of its state is private.
package bot

import (
	"math/rand"
	"time"

	notify "github.com/bitly/go-notify"
	charmlog "github.com/charmbracelet/log"

	"github.com/wize-logic/realmarble2-sub000/bot/botcfg"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

type Bot struct {
	id       EntityID
	world    World
	registry Registry
	avatar   Avatar
	profile  Profile
	cfg      botcfg.Config
	rng      *rand.Rand
	log      *charmlog.Logger

	state        State
	stateSince   float64
	retreatUntil float64

	caches   cacheSet
	vision   *Vision
	targets  TargetSelection
	nav      platformNav
	recovery StuckRecovery
	combat   combatState
	aerial   aerialState

	wanderGoal    vector.Vector3
	wanderUntil   float64
	hasWanderGoal bool

	faceOverride        *vector.Vector3
	attachCooldownUntil map[EntityKind]float64

	lastDestination vector.Vector3
	hasDestination  bool
	lastNow         float64
}

func New(id EntityID, world World, registry Registry, avatar Avatar, profile Profile, cfg botcfg.Config, rng *rand.Rand) *Bot {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	b := &Bot{
		id:                  id,
		world:               world,
		registry:            registry,
		avatar:              avatar,
		profile:             profile,
		cfg:                 cfg,
		rng:                 rng,
		log:                 charmlog.Default().With("bot", uint64(id)),
		state:               StateWander,
		caches:              makeCacheSet(cfg, rng, 0),
		vision:              NewVision(world, cfg),
		attachCooldownUntil: make(map[EntityKind]float64),
	}

	b.recovery.lastCheckPos = avatar.Position()
	b.recovery.nextCheckAt = cfg.StuckCheckPeriod

	return b
}

func (b *Bot) State() State {
	return b.state
}

func (b *Bot) Profile() Profile {
	return b.profile
}

// Destination is the movement goal of the last tick, for debug overlays.
func (b *Bot) Destination() (vector.Vector3, bool) {
	return b.lastDestination, b.hasDestination
}

// Tick runs one full decision+steering cycle. It is the only entry point
// of the controller and must be called once per fixed simulation tick.
func (b *Bot) Tick(now float64, dt float64) {
	if !b.world.MatchActive() {
		return
	}

	b.faceOverride = nil
	pos := b.avatar.Position()

	b.caches.refreshAll(b.registry, pos, now)

	if teleported := b.updateRecovery(now, dt); teleported {
		b.lastNow = now
		return
	}

	b.selectTargets(now)

	b.setState(b.evaluateState(now), now)

	dest, ok := b.runBehavior(now, dt)
	b.lastDestination = dest
	b.hasDestination = ok

	b.move(dest, ok, now, dt)

	b.lastNow = now
}

func (b *Bot) setState(next State, now float64) {
	if next == b.state {
		return
	}

	if b.cfg.Debug {
		b.log.Debug("state transition", "from", b.state.String(), "to", next.String())
	}

	b.state = next
	b.stateSince = now

	if next != StateAttack {
		b.cancelPendingCharge()
	}

	notify.PostTimeout("bot:state", stateChange{ID: b.id, State: next}, time.Millisecond)
}

type stateChange struct {
	ID    EntityID
	State State
}

// resetState drops the bot back to Wander and clears every held target.
// Used on unrecoverable conditions: target invalidated, stuck timeout,
// forced teleport, spawn.
func (b *Bot) resetState(now float64) {
	b.targets.clearAll()
	b.nav.phase = navIdle
	b.hasWanderGoal = false
	b.cancelPendingCharge()

	if b.state != StateWander {
		b.setState(StateWander, now)
	}
}
