// Package botcfg carries the behavioral toggles and tunables of the bot
// controller. Everything that used to fork the controller into variant
// files (never-retreat mode, collect lock) is an explicit flag here.
package botcfg

type Config struct {
	// Behavior toggles
	NeverRetreat              bool
	LockTargetWhileCollecting bool
	Debug                     bool

	// State machine
	AttackRange         float64
	AggroRange          float64
	RetreatTriggerRange float64
	RetreatMinSeconds   float64
	RetreatMaxSeconds   float64

	// Target selection cadences
	CombatEvalPeriod     float64
	PickupEvalPeriod     float64
	AffordanceEvalPeriod float64
	PlatformEvalPeriod   float64

	// Spatial caches: refresh period, max distance, max entry count per kind
	PlayerCachePeriod     float64
	PlayerCacheDistance   float64
	PlayerCacheMax        int
	PickupCachePeriod     float64
	PickupCacheDistance   float64
	PickupCacheMax        int
	AffordanceCachePeriod float64
	PlatformCachePeriod   float64
	PlatformCacheDistance float64
	PlatformCacheMax      int

	// Vision
	VisionWindow    float64
	EyeHeight       float64
	PickupTolerance float64
	FOVDegrees      float64 // 360 means omnidirectional

	// Pickup utility
	OrbSafeRadius        float64
	OrbProximityOverride float64
	OptimalRangeBand     float64

	// Vertical reach bands
	JumpReach        float64
	DoubleJumpReach  float64
	MaxVerticalReach float64

	// Destination platforms
	PlatformMinScore     float64
	PlatformGoodEnough   float64
	PlatformOccupancyCap int
	SmallPlatformExtent  float64

	// Traversal affordances
	RailMaxDistance       float64
	RailActivationRadius  float64
	RailMinScore          float64
	RailAttachCooldown    float64
	JumpPadMaxDistance    float64
	JumpPadActivation     float64
	JumpPadMinScore       float64
	TeleporterMaxDistance float64
	TeleporterActivation  float64
	TeleporterMinScore    float64
	AffordanceGainMargin  float64

	// Platform navigation
	PrepareDistance   float64
	ArriveHorizontal  float64
	ArriveVertical    float64
	StabilizeSeconds  float64
	StabilizeDamping  float64

	// Obstacle probing
	ProbeDistance      float64
	ProbeHeights       []float64
	BodyCenterHeight   float64
	HazardClearanceMin float64
	HazardLowCeiling   float64
	HazardSpeedCeiling float64

	// Edge detection
	EdgeProbeBase        float64
	EdgeProbeSpeedFactor float64
	EdgeDropThreshold    float64

	// Stuck detection and recovery
	StuckCheckPeriod      float64
	StuckDisplacement     float64
	StuckMovedThreshold   float64
	StuckChecksToTrigger  int
	RecoveryMinSeconds    float64
	RecoveryMaxSeconds    float64
	RecoveryShufflePeriod float64
	EscapeForce           float64
	HazardForceFactor     float64
	SettleForce           float64
	RecoveryTorque        float64
	HazardTeleportAfter   float64
	TeleportLiftHeight    float64

	// Movement
	MoveForce           float64
	MaxTurnPerSecond    float64
	WanderRadius        float64
	WanderReplanSeconds float64
	StrafeFlipSeconds   float64

	// Combat
	LeadSkillThreshold     float64
	ChargeHoldMinSeconds   float64
	ChargeHoldMaxSeconds   float64
	DefaultProjectileSpeed float64
}

func Defaults() Config {
	return Config{
		AttackRange:         18,
		AggroRange:          30,
		RetreatTriggerRange: 12,
		RetreatMinSeconds:   2.5,
		RetreatMaxSeconds:   4.5,

		CombatEvalPeriod:     0.3,
		PickupEvalPeriod:     0.5,
		AffordanceEvalPeriod: 0.8,
		PlatformEvalPeriod:   1.2,

		PlayerCachePeriod:     0.25,
		PlayerCacheDistance:   60,
		PlayerCacheMax:        8,
		PickupCachePeriod:     0.4,
		PickupCacheDistance:   45,
		PickupCacheMax:        6,
		AffordanceCachePeriod: 2.0,
		PlatformCachePeriod:   2.5,
		PlatformCacheDistance: 50,
		PlatformCacheMax:      8,

		VisionWindow:    0.5,
		EyeHeight:       0.8,
		PickupTolerance: 1.0,
		FOVDegrees:      360,

		OrbSafeRadius:        14,
		OrbProximityOverride: 6,
		OptimalRangeBand:     5,

		JumpReach:        2.0,
		DoubleJumpReach:  4.0,
		MaxVerticalReach: 7.0,

		PlatformMinScore:     15,
		PlatformGoodEnough:   40,
		PlatformOccupancyCap: 1,
		SmallPlatformExtent:  6,

		RailMaxDistance:       30,
		RailActivationRadius:  2.0,
		RailMinScore:          20,
		RailAttachCooldown:    2.5,
		JumpPadMaxDistance:    25,
		JumpPadActivation:     2.5,
		JumpPadMinScore:       20,
		TeleporterMaxDistance: 35,
		TeleporterActivation:  1.5,
		TeleporterMinScore:    22,
		AffordanceGainMargin:  4,

		PrepareDistance:  6,
		ArriveHorizontal: 1.5,
		ArriveVertical:   1.2,
		StabilizeSeconds: 0.6,
		StabilizeDamping: 0.75,

		ProbeDistance:      1.4,
		ProbeHeights:       []float64{0.35, 1.0, 2.4},
		BodyCenterHeight:   1.0,
		HazardClearanceMin: 1.3,
		HazardLowCeiling:   2.3,
		HazardSpeedCeiling: 2.0,

		EdgeProbeBase:        1.2,
		EdgeProbeSpeedFactor: 0.25,
		EdgeDropThreshold:    3.0,

		StuckCheckPeriod:      0.5,
		StuckDisplacement:     0.35,
		StuckMovedThreshold:   0.6,
		StuckChecksToTrigger:  3,
		RecoveryMinSeconds:    0.8,
		RecoveryMaxSeconds:    1.5,
		RecoveryShufflePeriod: 0.4,
		EscapeForce:           30,
		HazardForceFactor:     1.6,
		SettleForce:           12,
		RecoveryTorque:        8,
		HazardTeleportAfter:   3.0,
		TeleportLiftHeight:    3.0,

		MoveForce:           26,
		MaxTurnPerSecond:    6.0,
		WanderRadius:        18,
		WanderReplanSeconds: 4,
		StrafeFlipSeconds:   1.8,

		LeadSkillThreshold:     0.55,
		ChargeHoldMinSeconds:   0.3,
		ChargeHoldMaxSeconds:   0.9,
		DefaultProjectileSpeed: 40,
	}
}
