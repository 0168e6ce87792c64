package bot

import (
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

type EntityID uint64

type EntityKind int

const (
	KindPlayer EntityKind = iota
	KindAbilityPickup
	KindOrbPickup
	KindRail
	KindJumpPad
	KindTeleporter
	KindPlatform
)

func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindAbilityPickup:
		return "ability-pickup"
	case KindOrbPickup:
		return "orb-pickup"
	case KindRail:
		return "rail"
	case KindJumpPad:
		return "jump-pad"
	case KindTeleporter:
		return "teleporter"
	case KindPlatform:
		return "platform"
	}

	return "unknown"
}

type CollisionMask uint8

const (
	MaskObstacle CollisionMask = 1 << iota
	MaskPlatform
	MaskAgent
)

const MaskSolid = MaskObstacle | MaskPlatform

type RayHit struct {
	Point  vector.Vector3
	Entity EntityID
}

// World is the collision/query surface of the arena, read-only from the
// controller's point of view.
type World interface {
	RayCast(origin vector.Vector3, target vector.Vector3, exclude []EntityID, mask CollisionMask) (RayHit, bool)
	GroundHeight(at vector.Vector3) (float64, bool)
	SpawnPoints() []vector.Vector3
	MatchActive() bool
}

// Registry exposes the live entity handles of one category within radius
// of a point. The returned slice is a snapshot; handles may turn invalid
// at any later tick and must be revalidated on read.
type Registry interface {
	Entities(kind EntityKind, near vector.Vector3, radius float64) []Entity
}

type Entity interface {
	ID() EntityID
	Alive() bool
	Position() vector.Vector3
}

// Optional capabilities. Heterogeneous entities implement whichever apply;
// absence means "feature unsupported", never an error.

type Sized interface {
	Size() vector.Vector3
}

type Moving interface {
	Velocity() vector.Vector3
}

type Damageable interface {
	Health() int
	MaxHealth() int
}

type Collectible interface {
	Collected() bool
}

type Ability interface {
	Name() string
	Ready() bool
	OptimalRange() float64
	Use() bool
}

// ChargeableAbility is optional on an Ability. Kinds that cannot charge
// simply don't implement it and get the instant-use path. A started
// charge must end in exactly one ReleaseCharge or CancelCharge; a
// cancelled charge neither fires nor consumes the cooldown.
type ChargeableAbility interface {
	StartCharge() bool
	ReleaseCharge() bool
	CancelCharge()
}

// Body is the physics body the controller steers. All writes are intents;
// the physics step owns the authoritative result.
type Body interface {
	Position() vector.Vector3
	Velocity() vector.Vector3
	SetVelocity(vector.Vector3)
	Yaw() float64
	SetYaw(float64)
	ApplyForce(vector.Vector3)
	ApplyImpulse(vector.Vector3)
	ApplyTorque(float64)
	Jump() bool
	JumpCount() int
	MaxJumps() int
	Teleport(vector.Vector3)
}

// Avatar is the controlled combatant: its body plus the combat and
// equipment collaborators that own health and the equipped ability.
type Avatar interface {
	Entity
	Damageable
	Body() Body
	Ability() Ability // nil when nothing is equipped
	Level() int
}
