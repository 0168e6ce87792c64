package bot

// State is the active behavior of a bot. Exactly one is active at a time;
// it is owned and mutated only by the state machine.
type State int

const (
	StateWander State = iota
	StateChase
	StateAttack
	StateRetreat
	StateCollectAbility
	StateCollectOrb
)

func (s State) String() string {
	switch s {
	case StateChase:
		return "chase"
	case StateAttack:
		return "attack"
	case StateRetreat:
		return "retreat"
	case StateCollectAbility:
		return "collect-ability"
	case StateCollectOrb:
		return "collect-orb"
	}

	return "wander"
}
