package bot

import (
	"math"

	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

type navPhase int

const (
	navIdle navPhase = iota
	navApproach
	navPrepare
	navStabilize
)

// platformNav is the discrete sub-state-machine for reaching an elevated
// destination platform: approach from far, height-banded jumping at medium
// distance, arrival detection, then a stabilization window during which
// lateral velocity is damped before the destination is forgotten.
type platformNav struct {
	phase          navPhase
	stabilizeUntil float64
}

// Navigating is the "approaching a platform" side flag read by the state
// machine and behaviors.
func (b *Bot) Navigating() bool {
	return b.nav.phase != navIdle
}

func (b *Bot) updatePlatformNav(now float64, dt float64) (vector.Vector3, bool) {
	target := b.targets.Platform

	if target == nil || !target.Revalidate() {
		b.targets.Platform = nil
		b.nav.phase = navIdle
		return vector.MakeNullVector3(), false
	}

	body := b.avatar.Body()
	pos := body.Position()

	horizontal := target.Position.FlatDistance(pos)
	dz := target.Position.GetZ() - pos.GetZ()

	switch b.nav.phase {
	case navIdle, navApproach:
		b.nav.phase = navApproach
		if horizontal <= b.cfg.PrepareDistance {
			b.nav.phase = navPrepare
		}

	case navPrepare:
		if horizontal <= b.cfg.ArriveHorizontal && math.Abs(dz) <= b.cfg.ArriveVertical {
			b.nav.phase = navStabilize
			b.nav.stabilizeUntil = now + b.cfg.StabilizeSeconds
			break
		}

		b.jumpForHeight(dz)

	case navStabilize:
		// actively damp lateral velocity until the window closes
		velocity := body.Velocity()
		damped := velocity.Flatten().MultScalar(b.cfg.StabilizeDamping)
		body.SetVelocity(vector.FromVector2(damped, velocity.GetZ()))

		if now >= b.nav.stabilizeUntil {
			b.nav.phase = navIdle
			b.targets.Platform = nil
			return vector.MakeNullVector3(), false
		}

		return pos, true
	}

	return target.Position, true
}

// jumpForHeight picks the jump strategy for the remaining height delta:
// no jump, single jump, double jump, or everything the body has.
func (b *Bot) jumpForHeight(dz float64) {
	body := b.avatar.Body()

	switch {
	case dz <= 0.5:
		// walkable, no jump needed

	case dz <= b.cfg.JumpReach:
		if body.JumpCount() == 0 {
			body.Jump()
		}

	case dz <= b.cfg.DoubleJumpReach:
		if body.JumpCount() < 2 && body.Velocity().GetZ() < 1.0 {
			body.Jump()
		}

	default:
		if body.JumpCount() < body.MaxJumps() && body.Velocity().GetZ() < 1.0 {
			body.Jump()
		}
	}
}
