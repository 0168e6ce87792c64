package arena

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/wize-logic/realmarble2-sub000/bot"
	"github.com/wize-logic/realmarble2-sub000/bot/botcfg"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

const tick = 1.0 / 30

func newTestArena(t *testing.T) *Arena {
	t.Helper()
	return NewArena(40, rand.New(rand.NewSource(1)))
}

func TestGroundHeight(t *testing.T) {
	game := newTestArena(t)
	game.NewEntityPlatform(vector.MakeVector3(0, 0, 3), vector.MakeVector3(10, 10, 0.6))
	game.Start()

	cases := []struct {
		name  string
		at    vector.Vector3
		want  float64
		found bool
	}{
		{"open floor", vector.MakeVector3(20, 20, 0), 0, true},
		{"on the platform", vector.MakeVector3(0, 0, 3), 3, true},
		{"under the platform", vector.MakeVector3(0, 0, 0), 0, true},
		{"landing tolerance", vector.MakeVector3(0, 0, 2.6), 3, true},
		{"outside the arena", vector.MakeVector3(45, 45, 0), 0, false},
	}

	for _, c := range cases {
		got, found := game.GroundHeight(c.at)
		if found != c.found || math.Abs(got-c.want) > 1e-9 {
			t.Errorf("%s: expected (%.1f, %v), got (%.1f, %v)", c.name, c.want, c.found, got, found)
		}
	}
}

func TestRayCastAgainstObstacleSpan(t *testing.T) {
	game := newTestArena(t)
	obstacle := game.NewEntityObstacle(vector.MakeVector3(0, 5, 0), vector.MakeVector3(4, 1, 4))
	game.Start()

	hit, ok := game.RayCast(
		vector.MakeVector3(0, 0, 1),
		vector.MakeVector3(0, 9, 1),
		nil,
		bot.MaskSolid,
	)

	if !ok {
		t.Fatal("expected the low ray to hit the obstacle")
	}
	if hit.Entity != bot.EntityID(obstacle.GetID()) {
		t.Fatalf("expected obstacle %d, got %d", obstacle.GetID(), hit.Entity)
	}
	if math.Abs(hit.Point.GetY()-4.5) > 0.1 {
		t.Fatalf("expected the hit at the near face, got y=%.2f", hit.Point.GetY())
	}

	// above the obstacle's vertical span, the same ray passes clean
	if _, ok := game.RayCast(
		vector.MakeVector3(0, 0, 5),
		vector.MakeVector3(0, 9, 5),
		nil,
		bot.MaskSolid,
	); ok {
		t.Fatal("expected the high ray to clear the obstacle")
	}
}

func TestRayCastHonorsExclusions(t *testing.T) {
	game := newTestArena(t)
	obstacle := game.NewEntityObstacle(vector.MakeVector3(0, 5, 0), vector.MakeVector3(4, 1, 4))
	game.Start()

	if _, ok := game.RayCast(
		vector.MakeVector3(0, 0, 1),
		vector.MakeVector3(0, 9, 1),
		[]bot.EntityID{bot.EntityID(obstacle.GetID())},
		bot.MaskSolid,
	); ok {
		t.Fatal("expected the excluded obstacle to be skipped")
	}
}

func TestPickupCollectionAndRespawn(t *testing.T) {
	game := newTestArena(t)
	agent := game.NewEntityAgent("grabber", vector.MakeNullVector3())
	pickupEntity := game.NewEntityAbilityPickup(vector.MakeNullVector3(), "blaster")
	game.Start()

	game.Step(tick)

	player, ok := game.playerAspect(agent.GetID())
	if !ok {
		t.Fatal("missing player aspect")
	}
	if player.GetAbility() == nil || player.GetAbility().Name() != "blaster" {
		t.Fatal("expected the blaster to be equipped")
	}

	qr := game.getEntity(pickupEntity.GetID(), game.pickupComponent)
	pickup := game.CastPickup(qr.Components[game.pickupComponent])
	if !pickup.collected {
		t.Fatal("expected the pickup marked collected")
	}

	// move away and wait out the respawn delay
	phys, _ := game.physicalAspect(agent.GetID())
	phys.Teleport(vector.MakeVector3(10, 10, 0))

	for game.clock < pickup.respawnAt+tick {
		game.Step(tick)
	}

	if pickup.collected {
		t.Fatal("expected the pickup respawned")
	}
}

func TestOrbPickupRaisesLevel(t *testing.T) {
	game := newTestArena(t)
	agent := game.NewEntityAgent("grabber", vector.MakeNullVector3())
	game.NewEntityOrbPickup(vector.MakeVector3(1, 0, 0))
	game.Start()

	game.Step(tick)

	player, _ := game.playerAspect(agent.GetID())
	if player.GetLevel() != 1 {
		t.Fatalf("expected level 1, got %d", player.GetLevel())
	}
}

func TestApplyDamageFragsAndRespawns(t *testing.T) {
	game := newTestArena(t)
	game.AddSpawnPoint(vector.MakeVector3(5, 5, 0))

	attacker := game.NewEntityAgent("attacker", vector.MakeNullVector3())
	target := game.NewEntityAgent("target", vector.MakeVector3(2, 0, 0))
	game.Start()

	targetPlayer, _ := game.playerAspect(target.GetID())
	targetPlayer.ability = game.newAbility(target.GetID(), "hammer")

	if !game.applyDamage(target.GetID(), 200, attacker.GetID()) {
		t.Fatal("expected a lethal hit to frag")
	}

	health, _ := game.healthAspect(target.GetID())
	if health.GetLife() != health.GetMaxLife() {
		t.Fatalf("expected full health after respawn, got %d", health.GetLife())
	}

	phys, _ := game.physicalAspect(target.GetID())
	if phys.Position().FlatDistance(vector.MakeVector3(5, 5, 0)) > 1e-6 {
		t.Fatalf("expected respawn on the spawn point, got %v", phys.Position())
	}

	if targetPlayer.ability != nil {
		t.Fatal("expected the equipped ability dropped on frag")
	}
	if targetPlayer.Stats.nbBeenFragged != 1 {
		t.Fatalf("expected 1 death, got %d", targetPlayer.Stats.nbBeenFragged)
	}

	attackerPlayer, _ := game.playerAspect(attacker.GetID())
	if attackerPlayer.Stats.nbHasFragged != 1 {
		t.Fatalf("expected 1 frag, got %d", attackerPlayer.Stats.nbHasFragged)
	}
}

func TestNonLethalDamageWounds(t *testing.T) {
	game := newTestArena(t)
	attacker := game.NewEntityAgent("attacker", vector.MakeNullVector3())
	target := game.NewEntityAgent("target", vector.MakeVector3(2, 0, 0))
	game.Start()

	if game.applyDamage(target.GetID(), 30, attacker.GetID()) {
		t.Fatal("a non-lethal hit must not frag")
	}

	health, _ := game.healthAspect(target.GetID())
	if health.GetLife() != agentMaxLife-30 {
		t.Fatalf("expected %d life, got %d", agentMaxLife-30, health.GetLife())
	}
}

func TestJumpPadLaunch(t *testing.T) {
	game := newTestArena(t)
	agent := game.NewEntityAgent("jumper", vector.MakeNullVector3())
	game.NewEntityJumpPad(vector.MakeNullVector3(), 12)
	game.Start()

	game.Step(tick)

	phys, _ := game.physicalAspect(agent.GetID())
	if phys.verticalVelocity != 12 {
		t.Fatalf("expected launch velocity 12, got %.1f", phys.verticalVelocity)
	}
	if phys.IsGrounded() {
		t.Fatal("expected the agent airborne after the launch")
	}
}

func TestTeleporterRelocates(t *testing.T) {
	game := newTestArena(t)
	agent := game.NewEntityAgent("traveler", vector.MakeNullVector3())
	exit := vector.MakeVector3(20, 20, 0)
	game.NewEntityTeleporter(vector.MakeNullVector3(), exit)
	game.Start()

	game.Step(tick)

	phys, _ := game.physicalAspect(agent.GetID())
	if phys.Position().FlatDistance(exit) > 1e-6 {
		t.Fatalf("expected relocation to the exit, got %v", phys.Position())
	}
	if !phys.Velocity().IsNull() {
		t.Fatal("expected velocity zeroed on arrival")
	}
}

func TestRailRequiresAttachSpeed(t *testing.T) {
	game := newTestArena(t)
	agent := game.NewEntityAgent("rider", vector.MakeNullVector3())
	game.NewEntityRail(vector.MakeNullVector3(), vector.MakeVector3(0, 10, 0), 14)
	game.Start()

	// standing still: the attach attempt bounces off
	game.Step(tick)

	phys, _ := game.physicalAspect(agent.GetID())
	if phys.Velocity().FlatMag() > 0.5 {
		t.Fatalf("expected no fling without attach speed, got %.2f", phys.Velocity().FlatMag())
	}
}

func TestRailFlingsMovingAgent(t *testing.T) {
	game := newTestArena(t)
	agent := game.NewEntityAgent("rider", vector.MakeNullVector3())
	game.NewEntityRail(vector.MakeNullVector3(), vector.MakeVector3(0, 10, 0), 14)
	game.Start()

	phys, _ := game.physicalAspect(agent.GetID())
	phys.SetVelocity(vector.MakeVector3(0, 3, 0))

	game.Step(tick)

	if phys.Velocity().Flatten().GetY() <= 3 {
		t.Fatalf("expected the rail to accelerate the rider, got %.2f", phys.Velocity().Flatten().GetY())
	}
	if phys.verticalVelocity <= 0 {
		t.Fatal("expected an upward component from the fling")
	}
}

func TestEntitiesRegistryByKind(t *testing.T) {
	game := newTestArena(t)
	near := game.NewEntityAgent("near", vector.MakeNullVector3())
	game.NewEntityAgent("far", vector.MakeVector3(30, 30, 0))
	game.NewEntityOrbPickup(vector.MakeVector3(2, 2, 0))
	game.Start()

	game.Step(tick)

	agents := game.Entities(bot.KindPlayer, vector.MakeNullVector3(), 10)
	if len(agents) != 1 || agents[0].ID() != bot.EntityID(near.GetID()) {
		t.Fatalf("expected only the near agent, got %d entities", len(agents))
	}

	orbs := game.Entities(bot.KindOrbPickup, vector.MakeNullVector3(), 10)
	if len(orbs) != 1 {
		t.Fatalf("expected one orb handle, got %d", len(orbs))
	}
	if _, ok := orbs[0].(bot.Collectible); !ok {
		t.Fatal("expected the orb handle to be collectible")
	}
	if _, ok := orbs[0].(bot.Damageable); ok {
		t.Fatal("a pickup handle must not look damageable")
	}
}

func TestBotMatchSmoke(t *testing.T) {
	game := newTestArena(t)
	game.AddSpawnPoint(vector.MakeVector3(-20, -20, 0))
	game.AddSpawnPoint(vector.MakeVector3(20, 20, 0))

	game.NewEntityAbilityPickup(vector.MakeVector3(0, 5, 0), "blaster")
	game.NewEntityOrbPickup(vector.MakeVector3(5, 0, 0))
	game.NewEntityPlatform(vector.MakeVector3(-10, 10, 3), vector.MakeVector3(10, 10, 0.6))

	rng := rand.New(rand.NewSource(7))
	cfg := botcfg.Defaults()

	_, first := game.NewEntityBotAgent("first", vector.MakeVector3(-20, -20, 0), bot.MakeProfile(rng), cfg)
	_, second := game.NewEntityBotAgent("second", vector.MakeVector3(20, 20, 0), bot.MakeProfile(rng), cfg)

	game.Start()

	for i := 0; i < 90; i++ {
		game.Step(tick)
	}

	if first.State().String() == "" || second.State().String() == "" {
		t.Fatal("expected live controller states")
	}

	if _, ok := first.Destination(); !ok {
		t.Fatal("expected the first bot to have picked a destination")
	}
}

func TestRailRejectsCoincidentEndpoints(t *testing.T) {
	game := newTestArena(t)

	defer func() {
		if recover() == nil {
			t.Fatal("expected a zero-length rail to be refused")
		}
	}()

	game.NewEntityRail(vector.MakeVector3(3, 3, 0), vector.MakeVector3(3, 3, 4), 10)
}

func TestVizFrameReadableWhileStepping(t *testing.T) {
	game := newTestArena(t)
	game.AddSpawnPoint(vector.MakeVector3(-20, -20, 0))
	game.NewEntityAgent("runner", vector.MakeVector3(-20, -20, 0))
	game.NewEntityOrbPickup(vector.MakeVector3(5, 0, 0))
	game.Start()

	if len(game.GetVizFrameJson()) == 0 {
		t.Fatal("expected a frame available right after start")
	}

	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			default:
				if frame := game.GetVizFrameJson(); len(frame) == 0 {
					return
				}
			}
		}
	}()

	for i := 0; i < 60; i++ {
		game.Step(tick)
	}

	close(stop)
	<-done

	var msg VizMessage
	if err := json.Unmarshal(game.GetVizFrameJson(), &msg); err != nil {
		t.Fatalf("expected a parseable frame: %v", err)
	}
	if math.Abs(msg.Clock-game.Clock()) > 1e-9 {
		t.Fatalf("expected the frame clock to match the game clock, got %.4f vs %.4f", msg.Clock, game.Clock())
	}
	if len(msg.Objects) == 0 {
		t.Fatal("expected the agent and the orb in the frame")
	}
}

func TestChargedAbilityRestartsAfterCancel(t *testing.T) {
	game := newTestArena(t)
	agent := game.NewEntityAgent("gunner", vector.MakeNullVector3())
	game.Start()

	chargeable, ok := game.newAbility(agent.GetID(), "railgun").(bot.ChargeableAbility)
	if !ok {
		t.Fatal("expected the railgun to support charging")
	}

	if !chargeable.StartCharge() {
		t.Fatal("expected the first charge to start")
	}
	if chargeable.StartCharge() {
		t.Fatal("a held charge must refuse a second start")
	}

	chargeable.CancelCharge()

	if !chargeable.StartCharge() {
		t.Fatal("expected a fresh charge after the cancel")
	}
}
