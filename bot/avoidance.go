package bot

import (
	"time"

	notify "github.com/bitly/go-notify"

	"github.com/wize-logic/realmarble2-sub000/bot/botcfg"
	"github.com/wize-logic/realmarble2-sub000/common/utils/number"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

type obstacleClass int

const (
	obstacleNone obstacleClass = iota
	obstacleSlope
	obstaclePlatformLip
	obstacleWall
	obstacleOverhead
)

func (c obstacleClass) String() string {
	switch c {
	case obstacleSlope:
		return "slope"
	case obstaclePlatformLip:
		return "platform-lip"
	case obstacleWall:
		return "wall"
	case obstacleOverhead:
		return "overhead-hazard"
	}

	return "none"
}

// StuckRecovery holds the escalating unstuck machinery of one bot. Owned
// by the avoidance pipeline, read by the movement executor to override
// normal steering.
type StuckRecovery struct {
	IsStuck                bool
	UnstuckUntil           float64
	EscapeDir              vector.Vector3
	ConsecutiveStuckChecks int
	HazardTimer            float64
	UnderHazard            bool

	nextCheckAt   float64
	lastCheckPos  vector.Vector3
	nextShuffleAt float64
}

// probeAhead casts rays at increasing heights in front of the bot and
// returns the heights (above the bot's base) at which something was hit.
func (b *Bot) probeAhead() []float64 {
	body := b.avatar.Body()
	pos := body.Position()
	forward := vector.FromVector2(vector.MakeVector2(0, 1).SetAngle(body.Yaw()), 0)

	var hits []float64
	for _, h := range b.cfg.ProbeHeights {
		from := pos.Add(vector.MakeVector3(0, 0, h))
		to := from.Add(forward.MultScalar(b.cfg.ProbeDistance))

		if _, hit := b.world.RayCast(from, to, []EntityID{b.id}, MaskSolid); hit {
			hits = append(hits, h)
		}
	}

	return hits
}

// classifyObstacle interprets the probe hit pattern. The overhead-hazard
// signature is a low-clearance hit above the bot's center combined with a
// nearby low hit while barely moving: the shape of a ramp the bot could
// wedge itself under. Overhead hazards are never jumpable.
func classifyObstacle(hits []float64, flatSpeed float64, cfg botcfg.Config) obstacleClass {
	if len(hits) == 0 {
		return obstacleNone
	}

	var high, low bool
	for _, h := range hits {
		if h-cfg.BodyCenterHeight >= cfg.HazardClearanceMin {
			high = true
		}
		if h < cfg.HazardLowCeiling {
			low = true
		}
	}

	if high && low && flatSpeed < cfg.HazardSpeedCeiling {
		return obstacleOverhead
	}

	if len(hits) >= len(cfg.ProbeHeights) {
		return obstacleWall
	}

	if high {
		return obstacleWall
	}

	if len(hits) == 1 {
		return obstacleSlope
	}

	return obstaclePlatformLip
}

func (b *Bot) obstacleAhead() obstacleClass {
	return classifyObstacle(b.probeAhead(), b.avatar.Body().Velocity().FlatMag(), b.cfg)
}

// dangerousEdgeAhead casts a short ground probe ahead of the bot, scaled
// up with speed, and flags a drop beyond the threshold.
func (b *Bot) dangerousEdgeAhead(dir vector.Vector2) bool {
	body := b.avatar.Body()
	pos := body.Position()

	probe := b.cfg.EdgeProbeBase + body.Velocity().FlatMag()*b.cfg.EdgeProbeSpeedFactor
	ahead := pos.Add(vector.FromVector2(dir.Normalize().MultScalar(probe), 0))

	here, hereOK := b.world.GroundHeight(pos)
	there, thereOK := b.world.GroundHeight(ahead)

	if !hereOK {
		return false // already over the void, the edge check can't help
	}

	if !thereOK {
		return true
	}

	return here-there > b.cfg.EdgeDropThreshold
}

// safeDirection tries several rotated offsets of the desired direction and
// keeps the first that is neither an edge nor an impassable obstacle.
func (b *Bot) safeDirection(desired vector.Vector2) (vector.Vector2, bool) {
	offsets := []float64{35, -35, 70, -70, 110, -110, 180}

	body := b.avatar.Body()
	pos := body.Position()

	for _, deg := range offsets {
		candidate := desired.Rotate(number.DegreeToRadian(deg))

		if b.dangerousEdgeAhead(candidate) {
			continue
		}

		from := pos.Add(vector.MakeVector3(0, 0, b.cfg.BodyCenterHeight))
		to := from.Add(vector.FromVector2(candidate.Normalize().MultScalar(b.cfg.ProbeDistance), 0))
		if _, hit := b.world.RayCast(from, to, []EntityID{b.id}, MaskObstacle); hit {
			continue
		}

		return candidate, true
	}

	return desired, false
}

// updateRecovery runs the per-tick stuck/hazard pipeline. It returns true
// when the bot was forcibly teleported this tick, in which case the rest
// of the tick must be skipped.
func (b *Bot) updateRecovery(now float64, dt float64) bool {
	r := &b.recovery
	body := b.avatar.Body()
	pos := body.Position()

	r.UnderHazard = b.obstacleAhead() == obstacleOverhead
	if r.UnderHazard {
		r.HazardTimer += dt
	} else {
		r.HazardTimer = 0
	}

	if r.HazardTimer >= b.cfg.HazardTeleportAfter {
		b.forceTeleport(now)
		return true
	}

	if now >= r.nextCheckAt {
		r.nextCheckAt = now + b.cfg.StuckCheckPeriod
		moved := pos.Sub(r.lastCheckPos).Mag()
		r.lastCheckPos = pos

		switch {
		case b.intendsMovement() && moved < b.cfg.StuckDisplacement:
			r.ConsecutiveStuckChecks++
			if r.ConsecutiveStuckChecks >= b.cfg.StuckChecksToTrigger && !r.IsStuck {
				r.IsStuck = true
				r.UnstuckUntil = now + b.cfg.RecoveryMinSeconds +
					b.rng.Float64()*(b.cfg.RecoveryMaxSeconds-b.cfg.RecoveryMinSeconds)
				r.EscapeDir = b.escapeDirection()
				r.nextShuffleAt = now + b.cfg.RecoveryShufflePeriod
			}

		case moved >= b.cfg.StuckMovedThreshold:
			r.ConsecutiveStuckChecks = 0
			r.IsStuck = false

		default:
			r.ConsecutiveStuckChecks = 0
		}
	}

	if r.IsStuck && now >= r.UnstuckUntil {
		r.IsStuck = false
		r.ConsecutiveStuckChecks = 0
	}

	return false
}

// intendsMovement reports whether the current state implies the bot wants
// to displace; a bot standing its ground in attack range is not stuck.
func (b *Bot) intendsMovement() bool {
	if b.Navigating() {
		return true
	}

	switch b.state {
	case StateWander, StateChase, StateRetreat, StateCollectAbility, StateCollectOrb:
		return true
	}

	return false
}

// escapeDirection reverses the current heading and adds a random lateral
// component. Under an overhead hazard the lateral part shrinks: forward
// motion of any kind is what wedged the bot in the first place.
func (b *Bot) escapeDirection() vector.Vector3 {
	body := b.avatar.Body()
	back := vector.MakeVector2(0, 1).SetAngle(body.Yaw()).MultScalar(-1)

	lateralScale := 0.8
	if b.recovery.UnderHazard {
		lateralScale = 0.25
	}

	lateral := back.OrthogonalClockwise().MultScalar((b.rng.Float64()*2 - 1) * lateralScale)

	return vector.FromVector2(back.Add(lateral).Normalize(), 0)
}

// applyRecovery is the movement executor's override while stuck: amplified
// escape force, a settling downward force, random torque, opportunistic
// jumps, and periodic re-randomization of the escape direction.
func (b *Bot) applyRecovery(now float64, dt float64) {
	r := &b.recovery
	body := b.avatar.Body()

	amplify := 1.0
	if r.UnderHazard {
		amplify = b.cfg.HazardForceFactor
	}

	force := r.EscapeDir.MultScalar(b.cfg.EscapeForce * amplify)
	force = force.Add(vector.MakeVector3(0, 0, -b.cfg.SettleForce))
	body.ApplyForce(force)

	body.ApplyTorque((b.rng.Float64()*2 - 1) * b.cfg.RecoveryTorque)

	if !r.UnderHazard && b.rng.Float64() < 0.15 && body.JumpCount() < body.MaxJumps() {
		body.Jump()
	}

	if now >= r.nextShuffleAt {
		r.nextShuffleAt = now + b.cfg.RecoveryShufflePeriod

		if b.rng.Float64() < 0.25 {
			// pure backward motion sometimes beats any clever angle
			back := vector.MakeVector2(0, 1).SetAngle(body.Yaw()).MultScalar(-1)
			r.EscapeDir = vector.FromVector2(back, 0)
		} else {
			r.EscapeDir = b.escapeDirection()
		}
	}
}

// forceTeleport is the unconditional last resort: relocate to a known-safe
// spawn point, or failing spawn data, translate upward and zero velocity.
// Nothing else in the controller teleports.
func (b *Bot) forceTeleport(now float64) {
	body := b.avatar.Body()

	spawns := b.world.SpawnPoints()
	var dest vector.Vector3
	if len(spawns) > 0 {
		dest = spawns[b.rng.Intn(len(spawns))]
	} else {
		dest = body.Position().Add(vector.MakeVector3(0, 0, b.cfg.TeleportLiftHeight))
	}

	body.Teleport(dest)
	body.SetVelocity(vector.MakeNullVector3())

	b.recovery = StuckRecovery{
		nextCheckAt:  now + b.cfg.StuckCheckPeriod,
		lastCheckPos: dest,
	}
	b.resetState(now)

	notify.PostTimeout("bot:teleport", b.id, time.Millisecond)
}
