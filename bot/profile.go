package bot

import (
	"math/rand"
)

type StrategicPreference int

const (
	PreferenceBalanced StrategicPreference = iota
	PreferenceAggressive
	PreferenceDefensive
	PreferenceSupport
)

func (p StrategicPreference) String() string {
	switch p {
	case PreferenceAggressive:
		return "aggressive"
	case PreferenceDefensive:
		return "defensive"
	case PreferenceSupport:
		return "support"
	}

	return "balanced"
}

// Profile holds the randomized personality traits of one bot. Drawn once
// at spawn, read-only afterwards.
type Profile struct {
	Skill           float64 // [0, 1]
	AimAccuracy     float64 // [0.70, 0.95]
	TurnSpeedFactor float64 // [0.8, 1.2]
	CautionLevel    float64 // [0, 1]
	AggressionLevel float64 // [0, 1], re-derived from the strategic preference
	Preference      StrategicPreference
}

func MakeProfile(rng *rand.Rand) Profile {
	profile := Profile{
		Skill:           rng.Float64(),
		AimAccuracy:     0.70 + rng.Float64()*0.25,
		TurnSpeedFactor: 0.8 + rng.Float64()*0.4,
		CautionLevel:    rng.Float64(),
		Preference:      drawPreference(rng),
	}

	switch profile.Preference {
	case PreferenceAggressive:
		profile.AggressionLevel = 0.7 + rng.Float64()*0.3
	case PreferenceDefensive:
		profile.AggressionLevel = rng.Float64() * 0.35
	case PreferenceSupport:
		profile.AggressionLevel = 0.2 + rng.Float64()*0.4
	default:
		profile.AggressionLevel = 0.35 + rng.Float64()*0.4
	}

	return profile
}

func drawPreference(rng *rand.Rand) StrategicPreference {
	roll := rng.Float64()

	switch {
	case roll < 0.40:
		return PreferenceBalanced
	case roll < 0.65:
		return PreferenceAggressive
	case roll < 0.85:
		return PreferenceDefensive
	}

	return PreferenceSupport
}
