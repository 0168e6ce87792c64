package bot

import (
	"math"

	"github.com/wize-logic/realmarble2-sub000/common/utils/trigo"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

// aerialState is the sub-mode entered when a launch impulse (jump pad,
// rail fling) hands control to the bot mid-air: find somewhere safe to
// land and drift toward it until grounded.
type aerialState struct {
	active    bool
	hasTarget bool
	target    vector.Vector3
}

// OnLaunched is invoked by an affordance entity when it applies a launch
// impulse to the bot's body.
func (b *Bot) OnLaunched(impulse vector.Vector3) {
	b.aerial.active = true
	b.aerial.hasTarget = false
}

// facePoint overrides this tick's facing: the movement executor rotates
// toward it instead of the travel direction.
func (b *Bot) facePoint(point vector.Vector3) {
	p := point
	b.faceOverride = &p
}

// move is the movement executor: it turns the chosen destination into
// steering force, rotation and jumps, after filtering through the
// obstacle-avoidance pipeline. Stuck recovery overrides everything.
func (b *Bot) move(dest vector.Vector3, ok bool, now float64, dt float64) {
	body := b.avatar.Body()

	if b.recovery.IsStuck {
		b.applyRecovery(now, dt)
		return
	}

	if b.aerial.active {
		b.applyAerialRecovery(now, dt)
		return
	}

	if !ok {
		return
	}

	pos := body.Position()
	dir := dest.Sub(pos).Flatten()

	if dir.Mag() >= 0.05 {
		dir = b.filterDirection(dir)

		force := vector.FromVector2(dir.Normalize().MultScalar(b.cfg.MoveForce), 0)
		body.ApplyForce(force)
	}

	b.applyRotation(dest, dt)
}

// filterDirection applies the edge and obstacle filters to the desired
// travel direction.
func (b *Bot) filterDirection(dir vector.Vector2) vector.Vector2 {
	if b.dangerousEdgeAhead(dir) {
		if safe, found := b.safeDirection(dir); found {
			return safe
		}
		return dir.MultScalar(-1)
	}

	body := b.avatar.Body()

	switch b.obstacleAhead() {
	case obstacleWall:
		if safe, found := b.safeDirection(dir); found {
			return safe
		}
		return dir.MultScalar(-1)

	case obstacleSlope, obstaclePlatformLip:
		// a low lip is jumpable
		if body.JumpCount() == 0 {
			body.Jump()
		}

	case obstacleOverhead:
		// never jump into an overhead hazard; go lateral or backward
		if safe, found := b.safeDirection(dir.MultScalar(-1)); found {
			return safe
		}
		return dir.MultScalar(-1)
	}

	return dir
}

func (b *Bot) applyRotation(dest vector.Vector3, dt float64) {
	body := b.avatar.Body()
	pos := body.Position()

	faceTarget := dest
	if b.faceOverride != nil {
		faceTarget = *b.faceOverride
	}

	aim := faceTarget.Sub(pos).Flatten()
	if aim.IsNull() {
		return
	}

	maxStep := b.cfg.MaxTurnPerSecond * b.profile.TurnSpeedFactor * dt
	body.SetYaw(trigo.StepAngle(body.Yaw(), aim.Angle(), maxStep))
}

// applyAerialRecovery drifts the airborne bot toward a safe landing
// target until it touches ground.
func (b *Bot) applyAerialRecovery(now float64, dt float64) {
	body := b.avatar.Body()
	pos := body.Position()

	if ground, okGround := b.world.GroundHeight(pos); okGround {
		if pos.GetZ()-ground < 0.3 && body.Velocity().GetZ() <= 0.1 {
			b.aerial.active = false
			return
		}
	}

	if !b.aerial.hasTarget {
		b.aerial.target = b.findLandingTarget(pos)
		b.aerial.hasTarget = true
	}

	lateral := b.aerial.target.Sub(pos).Flatten()
	if lateral.Mag() > 0.5 {
		force := vector.FromVector2(lateral.Normalize().MultScalar(b.cfg.MoveForce*0.6), 0)
		body.ApplyForce(force)
	}

	b.applyRotation(b.aerial.target, dt)
}

// findLandingTarget searches for somewhere safe below: the best nearby
// platform under the bot's altitude, a spawn point, or straight down.
func (b *Bot) findLandingTarget(pos vector.Vector3) vector.Vector3 {
	var best *CacheEntry
	bestDist := math.Inf(1)

	for i := range b.caches.platforms.entries {
		entry := &b.caches.platforms.entries[i]
		if entry.Position.GetZ() > pos.GetZ() {
			continue
		}

		d := entry.Position.FlatDistance(pos)
		if d < bestDist {
			bestDist = d
			best = entry
		}
	}

	if best != nil {
		return best.Position
	}

	if spawns := b.world.SpawnPoints(); len(spawns) > 0 {
		nearest := spawns[0]
		for _, s := range spawns[1:] {
			if s.FlatDistance(pos) < nearest.FlatDistance(pos) {
				nearest = s
			}
		}
		return nearest
	}

	return pos.SetZ(0)
}
