package bot

import (
	"math/rand"
	"testing"

	"github.com/wize-logic/realmarble2-sub000/bot/botcfg"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

type fakeWorld struct {
	raycast func(origin vector.Vector3, target vector.Vector3, exclude []EntityID, mask CollisionMask) (RayHit, bool)
	ground  func(at vector.Vector3) (float64, bool)
	spawns  []vector.Vector3
	active  bool
}

func (w *fakeWorld) RayCast(origin vector.Vector3, target vector.Vector3, exclude []EntityID, mask CollisionMask) (RayHit, bool) {
	if w.raycast == nil {
		return RayHit{}, false
	}

	return w.raycast(origin, target, exclude, mask)
}

func (w *fakeWorld) GroundHeight(at vector.Vector3) (float64, bool) {
	if w.ground == nil {
		return 0, true
	}

	return w.ground(at)
}

func (w *fakeWorld) SpawnPoints() []vector.Vector3 { return w.spawns }
func (w *fakeWorld) MatchActive() bool             { return w.active }

type fakeRegistry struct {
	entities map[EntityKind][]Entity
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{entities: make(map[EntityKind][]Entity)}
}

func (r *fakeRegistry) add(kind EntityKind, e Entity) {
	r.entities[kind] = append(r.entities[kind], e)
}

func (r *fakeRegistry) Entities(kind EntityKind, near vector.Vector3, radius float64) []Entity {
	return r.entities[kind]
}

type fakeEntity struct {
	id    EntityID
	alive bool
	pos   vector.Vector3
}

func (e *fakeEntity) ID() EntityID             { return e.id }
func (e *fakeEntity) Alive() bool              { return e.alive }
func (e *fakeEntity) Position() vector.Vector3 { return e.pos }

type fakePlayer struct {
	fakeEntity
	vel    vector.Vector3
	health int
	max    int
}

func (p *fakePlayer) Velocity() vector.Vector3 { return p.vel }
func (p *fakePlayer) Health() int              { return p.health }
func (p *fakePlayer) MaxHealth() int           { return p.max }
func (p *fakePlayer) Size() vector.Vector3     { return vector.MakeVector3(1, 1, 1.8) }

func makeFakePlayer(id EntityID, pos vector.Vector3) *fakePlayer {
	return &fakePlayer{
		fakeEntity: fakeEntity{id: id, alive: true, pos: pos},
		health:     100,
		max:        100,
	}
}

type fakePickup struct {
	fakeEntity
	collected bool
}

func (p *fakePickup) Collected() bool { return p.collected }

func makeFakePickup(id EntityID, pos vector.Vector3) *fakePickup {
	return &fakePickup{fakeEntity: fakeEntity{id: id, alive: true, pos: pos}}
}

type fakePlatform struct {
	fakeEntity
	size vector.Vector3
}

func (p *fakePlatform) Size() vector.Vector3 { return p.size }

func makeFakePlatform(id EntityID, pos vector.Vector3, size vector.Vector3) *fakePlatform {
	return &fakePlatform{
		fakeEntity: fakeEntity{id: id, alive: true, pos: pos},
		size:       size,
	}
}

type fakeBody struct {
	pos vector.Vector3
	vel vector.Vector3
	yaw float64

	maxJumps  int
	jumpCount int

	forces    []vector.Vector3
	impulses  []vector.Vector3
	torques   []float64
	teleports []vector.Vector3
	jumps     int
}

func (b *fakeBody) Position() vector.Vector3 { return b.pos }
func (b *fakeBody) Velocity() vector.Vector3 { return b.vel }
func (b *fakeBody) SetVelocity(v vector.Vector3) {
	b.vel = v
}
func (b *fakeBody) Yaw() float64       { return b.yaw }
func (b *fakeBody) SetYaw(yaw float64) { b.yaw = yaw }
func (b *fakeBody) ApplyForce(f vector.Vector3) {
	b.forces = append(b.forces, f)
}
func (b *fakeBody) ApplyImpulse(i vector.Vector3) {
	b.impulses = append(b.impulses, i)
}
func (b *fakeBody) ApplyTorque(t float64) {
	b.torques = append(b.torques, t)
}
func (b *fakeBody) Jump() bool {
	if b.jumpCount >= b.maxJumps {
		return false
	}

	b.jumpCount++
	b.jumps++
	return true
}
func (b *fakeBody) JumpCount() int { return b.jumpCount }
func (b *fakeBody) MaxJumps() int  { return b.maxJumps }
func (b *fakeBody) Teleport(to vector.Vector3) {
	b.teleports = append(b.teleports, to)
	b.pos = to
}

type fakeAvatar struct {
	id      EntityID
	body    *fakeBody
	health  int
	max     int
	ability Ability
	level   int
}

func (a *fakeAvatar) ID() EntityID             { return a.id }
func (a *fakeAvatar) Alive() bool              { return a.health > 0 }
func (a *fakeAvatar) Position() vector.Vector3 { return a.body.pos }
func (a *fakeAvatar) Health() int              { return a.health }
func (a *fakeAvatar) MaxHealth() int           { return a.max }
func (a *fakeAvatar) Body() Body               { return a.body }
func (a *fakeAvatar) Level() int               { return a.level }

func (a *fakeAvatar) Ability() Ability {
	if a.ability == nil {
		return nil
	}

	return a.ability
}

func makeFakeAvatar(id EntityID, pos vector.Vector3) *fakeAvatar {
	return &fakeAvatar{
		id:     id,
		body:   &fakeBody{pos: pos, maxJumps: 2},
		health: 100,
		max:    100,
	}
}

type fakeAbility struct {
	name    string
	ready   bool
	optimal float64
	used    int
}

func (a *fakeAbility) Name() string          { return a.name }
func (a *fakeAbility) Ready() bool           { return a.ready }
func (a *fakeAbility) OptimalRange() float64 { return a.optimal }
func (a *fakeAbility) Use() bool {
	if !a.ready {
		return false
	}

	a.used++
	return true
}

type fakeChargeable struct {
	fakeAbility
	startOK   bool
	releaseOK bool
	started   int
	released  int
	canceled  int
}

func (a *fakeChargeable) StartCharge() bool {
	if !a.startOK {
		return false
	}

	a.started++
	return true
}

func (a *fakeChargeable) ReleaseCharge() bool {
	if !a.releaseOK {
		return false
	}

	a.released++
	return true
}

func (a *fakeChargeable) CancelCharge() {
	a.canceled++
}

func newTestBot(t *testing.T, world *fakeWorld, registry *fakeRegistry, avatar *fakeAvatar, profile Profile, cfg botcfg.Config) *Bot {
	t.Helper()

	if world == nil {
		world = &fakeWorld{active: true}
	}
	if registry == nil {
		registry = newFakeRegistry()
	}

	return New(avatar.id, world, registry, avatar, profile, cfg, rand.New(rand.NewSource(1)))
}

func playerEntry(p *fakePlayer) CacheEntry {
	return makeCacheEntry(p)
}

func testProfile() Profile {
	return Profile{
		Skill:           0.5,
		AimAccuracy:     0.85,
		TurnSpeedFactor: 1.0,
		CautionLevel:    0.5,
		AggressionLevel: 0.5,
		Preference:      PreferenceBalanced,
	}
}
