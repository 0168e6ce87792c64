package bot

import (
	"testing"

	"github.com/wize-logic/realmarble2-sub000/bot/botcfg"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

func TestClassifyObstacle(t *testing.T) {
	cfg := botcfg.Defaults()

	cases := []struct {
		name      string
		hits      []float64
		flatSpeed float64
		want      obstacleClass
	}{
		{"clear", nil, 1.0, obstacleNone},
		{"single low hit", []float64{0.35}, 1.0, obstacleSlope},
		{"two low hits", []float64{0.35, 1.0}, 1.0, obstaclePlatformLip},
		{"high hit only", []float64{2.4}, 1.0, obstacleWall},
		{"full column at speed", []float64{0.35, 1.0, 2.4}, 3.0, obstacleWall},
		{"low plus high while crawling", []float64{0.35, 2.4}, 0.5, obstacleOverhead},
		{"full column while crawling", []float64{0.35, 1.0, 2.4}, 0.5, obstacleOverhead},
	}

	for _, c := range cases {
		if got := classifyObstacle(c.hits, c.flatSpeed, cfg); got != c.want {
			t.Errorf("%s: expected %s, got %s", c.name, c.want, got)
		}
	}
}

func TestStuckPromotionAfterConsecutiveChecks(t *testing.T) {
	avatar := makeFakeAvatar(1, vector.MakeNullVector3())
	b := newTestBot(t, nil, nil, avatar, testProfile(), botcfg.Defaults())

	// wander intends movement; the body never displaces
	for _, now := range []float64{0.5, 1.0} {
		if b.updateRecovery(now, 0.5) {
			t.Fatal("unexpected teleport")
		}
		if b.recovery.IsStuck {
			t.Fatalf("stuck flagged too early at t=%.1f", now)
		}
	}

	if b.updateRecovery(1.5, 0.5) {
		t.Fatal("unexpected teleport")
	}

	if !b.recovery.IsStuck {
		t.Fatal("expected stuck after three failed displacement checks")
	}

	held := b.recovery.UnstuckUntil - 1.5
	if held < b.cfg.RecoveryMinSeconds || held > b.cfg.RecoveryMaxSeconds {
		t.Fatalf("recovery window %.2fs outside [%.2f, %.2f]", held, b.cfg.RecoveryMinSeconds, b.cfg.RecoveryMaxSeconds)
	}
}

func TestDisplacementClearsStuckCounter(t *testing.T) {
	avatar := makeFakeAvatar(1, vector.MakeNullVector3())
	b := newTestBot(t, nil, nil, avatar, testProfile(), botcfg.Defaults())

	b.updateRecovery(0.5, 0.5)
	b.updateRecovery(1.0, 0.5)

	if b.recovery.ConsecutiveStuckChecks != 2 {
		t.Fatalf("expected 2 failed checks, got %d", b.recovery.ConsecutiveStuckChecks)
	}

	avatar.body.pos = vector.MakeVector3(2, 0, 0)
	b.updateRecovery(1.5, 0.5)

	if b.recovery.ConsecutiveStuckChecks != 0 {
		t.Fatalf("expected the counter to reset, got %d", b.recovery.ConsecutiveStuckChecks)
	}
	if b.recovery.IsStuck {
		t.Fatal("moving bot must not be stuck")
	}
}

func TestHazardTimeoutForcesTeleport(t *testing.T) {
	world := &fakeWorld{
		active: true,
		raycast: func(origin, target vector.Vector3, exclude []EntityID, mask CollisionMask) (RayHit, bool) {
			return RayHit{Point: target, Entity: 99}, true
		},
	}

	avatar := makeFakeAvatar(1, vector.MakeVector3(4, 4, 0))
	b := newTestBot(t, world, nil, avatar, testProfile(), botcfg.Defaults())

	if b.updateRecovery(1.0, 1.0) || b.updateRecovery(2.0, 1.0) {
		t.Fatal("teleported before the hazard timeout")
	}

	if !b.updateRecovery(3.0, 1.0) {
		t.Fatal("expected a forced teleport after the hazard timeout")
	}

	if len(avatar.body.teleports) != 1 {
		t.Fatalf("expected exactly one teleport, got %d", len(avatar.body.teleports))
	}

	// no spawn data: lift straight up instead
	want := vector.MakeVector3(4, 4, b.cfg.TeleportLiftHeight)
	if got := avatar.body.teleports[0]; got.Sub(want).Mag() > 1e-9 {
		t.Fatalf("expected lift to %v, got %v", want, got)
	}

	if !avatar.body.vel.IsNull() {
		t.Fatal("expected velocity zeroed after teleport")
	}
	if b.recovery.HazardTimer != 0 || b.recovery.IsStuck {
		t.Fatal("expected recovery state reset after teleport")
	}
}

func TestForcedTeleportUsesSpawnPoints(t *testing.T) {
	spawn := vector.MakeVector3(5, 5, 0)
	world := &fakeWorld{active: true, spawns: []vector.Vector3{spawn}}

	avatar := makeFakeAvatar(1, vector.MakeNullVector3())
	b := newTestBot(t, world, nil, avatar, testProfile(), botcfg.Defaults())

	b.forceTeleport(10)

	if got := avatar.body.pos; got.Sub(spawn).Mag() > 1e-9 {
		t.Fatalf("expected relocation to the spawn point, got %v", got)
	}
	if b.state != StateWander {
		t.Fatalf("expected wander after teleport, got %s", b.state)
	}
}

func TestRecoveryNeverJumpsUnderHazard(t *testing.T) {
	avatar := makeFakeAvatar(1, vector.MakeNullVector3())
	b := newTestBot(t, nil, nil, avatar, testProfile(), botcfg.Defaults())

	b.recovery.IsStuck = true
	b.recovery.UnderHazard = true
	b.recovery.EscapeDir = vector.MakeVector3(0, -1, 0)

	for i := 0; i < 50; i++ {
		b.applyRecovery(float64(i)*0.03, 0.03)
	}

	if avatar.body.jumps != 0 {
		t.Fatalf("expected no jumps under an overhead hazard, got %d", avatar.body.jumps)
	}
	if len(avatar.body.forces) == 0 {
		t.Fatal("expected escape forces to be applied")
	}
}

func TestDangerousEdgeAhead(t *testing.T) {
	avatar := makeFakeAvatar(1, vector.MakeNullVector3())

	world := &fakeWorld{
		active: true,
		ground: func(at vector.Vector3) (float64, bool) {
			if at.GetY() > 0.5 {
				return 0, true // floor far below the ledge
			}
			return 5, true
		},
	}

	b := newTestBot(t, world, nil, avatar, testProfile(), botcfg.Defaults())

	if !b.dangerousEdgeAhead(vector.MakeVector2(0, 1)) {
		t.Fatal("expected a 5 unit drop to be flagged")
	}
	if b.dangerousEdgeAhead(vector.MakeVector2(0, -1)) {
		t.Fatal("expected level ground behind to be safe")
	}
}
