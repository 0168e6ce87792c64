package bot

import (
	"testing"

	"github.com/wize-logic/realmarble2-sub000/bot/botcfg"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

func TestUnequippedBotHuntsAbilityPickup(t *testing.T) {
	registry := newFakeRegistry()
	registry.add(KindAbilityPickup, makeFakePickup(50, vector.MakeVector3(0, 10, 0)))

	avatar := makeFakeAvatar(1, vector.MakeNullVector3())
	b := newTestBot(t, nil, registry, avatar, testProfile(), botcfg.Defaults())

	state := b.evaluateState(0)

	if state != StateCollectAbility {
		t.Fatalf("expected collect-ability, got %s", state)
	}
	if b.targets.Pickup == nil || b.targets.PickupKind != KindAbilityPickup {
		t.Fatal("expected the pickup target to be adopted")
	}
	if b.targets.Pickup.Entity.ID() != 50 {
		t.Fatalf("expected pickup 50, got %d", b.targets.Pickup.Entity.ID())
	}
}

func TestUnequippedBotWithNothingNearbyWanders(t *testing.T) {
	avatar := makeFakeAvatar(1, vector.MakeNullVector3())
	b := newTestBot(t, nil, nil, avatar, testProfile(), botcfg.Defaults())

	if state := b.evaluateState(0); state != StateWander {
		t.Fatalf("expected wander, got %s", state)
	}
}

func TestCriticalHealthForcesRetreat(t *testing.T) {
	avatar := makeFakeAvatar(1, vector.MakeNullVector3())
	avatar.health = 1
	avatar.ability = &fakeAbility{name: "blaster", ready: true, optimal: 16}

	b := newTestBot(t, nil, nil, avatar, testProfile(), botcfg.Defaults())

	enemy := playerEntry(makeFakePlayer(2, vector.MakeVector3(0, 5, 0)))
	b.targets.Combat = &enemy

	now := 12.0
	if state := b.evaluateState(now); state != StateRetreat {
		t.Fatalf("expected retreat, got %s", state)
	}

	held := b.retreatUntil - now
	if held < b.cfg.RetreatMinSeconds || held > b.cfg.RetreatMaxSeconds {
		t.Fatalf("retreat window %.2fs outside [%.2f, %.2f]", held, b.cfg.RetreatMinSeconds, b.cfg.RetreatMaxSeconds)
	}
}

func TestNeverRetreatModeAttacksAtCriticalHealth(t *testing.T) {
	cfg := botcfg.Defaults()
	cfg.NeverRetreat = true

	avatar := makeFakeAvatar(1, vector.MakeNullVector3())
	avatar.health = 1
	avatar.ability = &fakeAbility{name: "blaster", ready: true, optimal: 16}

	b := newTestBot(t, nil, nil, avatar, testProfile(), cfg)

	enemy := playerEntry(makeFakePlayer(2, vector.MakeVector3(0, 5, 0)))
	b.targets.Combat = &enemy

	if state := b.evaluateState(12); state != StateAttack {
		t.Fatalf("expected attack, got %s", state)
	}
}

func TestRetreatWindowHeldThenReleased(t *testing.T) {
	avatar := makeFakeAvatar(1, vector.MakeNullVector3())
	avatar.ability = &fakeAbility{name: "blaster", ready: true, optimal: 16}

	b := newTestBot(t, nil, nil, avatar, testProfile(), botcfg.Defaults())

	enemy := playerEntry(makeFakePlayer(2, vector.MakeVector3(0, 5, 0)))
	b.targets.Combat = &enemy

	b.state = StateRetreat
	b.retreatUntil = 20

	// healthy bot, but the armed window still holds
	if state := b.evaluateState(15); state != StateRetreat {
		t.Fatalf("expected retreat inside the window, got %s", state)
	}

	// past the window, the enemy in attack range takes over
	if state := b.evaluateState(25); state != StateAttack {
		t.Fatalf("expected attack after the window, got %s", state)
	}
}

func TestAttackOutranksOrbCollection(t *testing.T) {
	avatar := makeFakeAvatar(1, vector.MakeNullVector3())
	avatar.ability = &fakeAbility{name: "blaster", ready: true, optimal: 16}

	b := newTestBot(t, nil, nil, avatar, testProfile(), botcfg.Defaults())

	enemy := playerEntry(makeFakePlayer(2, vector.MakeVector3(0, 10, 0)))
	b.targets.Combat = &enemy

	orb := makeCacheEntry(makeFakePickup(60, vector.MakeVector3(3, 0, 0)))
	b.targets.Pickup = &orb
	b.targets.PickupKind = KindOrbPickup
	b.targets.PickupNet = 50

	if state := b.evaluateState(30); state != StateAttack {
		t.Fatalf("expected attack, got %s", state)
	}
}

func TestChaseBeyondAttackRange(t *testing.T) {
	avatar := makeFakeAvatar(1, vector.MakeNullVector3())
	avatar.ability = &fakeAbility{name: "blaster", ready: true, optimal: 16}

	b := newTestBot(t, nil, nil, avatar, testProfile(), botcfg.Defaults())

	enemy := playerEntry(makeFakePlayer(2, vector.MakeVector3(0, 25, 0)))
	b.targets.Combat = &enemy

	if state := b.evaluateState(30); state != StateChase {
		t.Fatalf("expected chase, got %s", state)
	}
}

func TestResetStateClearsTargets(t *testing.T) {
	avatar := makeFakeAvatar(1, vector.MakeNullVector3())
	b := newTestBot(t, nil, nil, avatar, testProfile(), botcfg.Defaults())

	enemy := playerEntry(makeFakePlayer(2, vector.MakeVector3(0, 5, 0)))
	b.targets.Combat = &enemy
	b.state = StateChase

	b.resetState(10)

	if b.state != StateWander {
		t.Fatalf("expected wander, got %s", b.state)
	}
	if b.targets.Combat != nil || b.targets.Pickup != nil {
		t.Fatal("expected all target slots cleared")
	}
}
