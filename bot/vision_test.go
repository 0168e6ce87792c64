package bot

import (
	"testing"

	"github.com/wize-logic/realmarble2-sub000/bot/botcfg"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

func TestVisionHysteresisWindow(t *testing.T) {
	blocked := false
	world := &fakeWorld{
		active: true,
		raycast: func(origin, target vector.Vector3, exclude []EntityID, mask CollisionMask) (RayHit, bool) {
			if !blocked {
				return RayHit{}, false
			}
			return RayHit{Point: vector.MakeVector3(0, 1, 0), Entity: 99}, true
		},
	}

	v := NewVision(world, botcfg.Defaults())

	self := vector.MakeNullVector3()
	target := vector.MakeVector3(0, 10, 0)

	if !v.Visible(0, 1, self, 0, 2, target) {
		t.Fatal("unobstructed target should be visible")
	}

	// occluded, but inside the hysteresis window
	blocked = true
	if !v.Visible(0.3, 1, self, 0, 2, target) {
		t.Fatal("briefly occluded target should still count as visible")
	}

	// occluded past the window
	if v.Visible(0.6, 1, self, 0, 2, target) {
		t.Fatal("target occluded past the window should be invisible")
	}

	// the record was dropped; it doesn't come back on its own
	if v.Visible(0.7, 1, self, 0, 2, target) {
		t.Fatal("expired record must not resurrect visibility")
	}
}

func TestVisionPickupTolerance(t *testing.T) {
	target := vector.MakeVector3(0, 10, 0)

	world := &fakeWorld{
		active: true,
		raycast: func(origin, to vector.Vector3, exclude []EntityID, mask CollisionMask) (RayHit, bool) {
			// blocked right next to the target, as a pickup marker would
			return RayHit{Point: vector.MakeVector3(0, 9.5, 0), Entity: 99}, true
		},
	}

	v := NewVision(world, botcfg.Defaults())

	if !v.Visible(0, 1, vector.MakeNullVector3(), 0, 2, target) {
		t.Fatal("hit within pickup tolerance of the target should count as visible")
	}
}

func TestVisionFieldOfViewGate(t *testing.T) {
	cfg := botcfg.Defaults()
	cfg.FOVDegrees = 90

	world := &fakeWorld{active: true}
	v := NewVision(world, cfg)

	self := vector.MakeNullVector3()
	ahead := vector.MakeVector3(0, 10, 0)
	behind := vector.MakeVector3(0, -10, 0)

	if !v.Visible(0, 1, self, 0, 2, ahead) {
		t.Fatal("target straight ahead should be visible")
	}

	if v.Visible(0.1, 1, self, 0, 2, behind) {
		t.Fatal("target behind the bot should not be visible")
	}

	// leaving the FOV drops the hysteresis record outright
	if _, ok := v.lastSeen[2]; ok {
		t.Fatal("expected the hysteresis record to be dropped on FOV exit")
	}
}
