package bot

import (
	"math"

	"github.com/wize-logic/realmarble2-sub000/bot/botcfg"
	"github.com/wize-logic/realmarble2-sub000/common/utils/number"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

// Vision answers "can this bot see that point" with temporal hysteresis:
// a target occluded for less than the window is still reported visible,
// which keeps momentary occlusion from thrashing target selection.
type Vision struct {
	world           World
	window          float64
	eyeHeight       float64
	pickupTolerance float64
	fovCos          float64 // cos of the half field-of-view; -1 is omnidirectional

	lastSeen map[EntityID]float64
}

func NewVision(world World, cfg botcfg.Config) *Vision {
	fovCos := -1.0
	if cfg.FOVDegrees < 360 {
		fovCos = math.Cos(number.DegreeToRadian(cfg.FOVDegrees) / 2)
	}

	return &Vision{
		world:           world,
		window:          cfg.VisionWindow,
		eyeHeight:       cfg.EyeHeight,
		pickupTolerance: cfg.PickupTolerance,
		fovCos:          fovCos,
		lastSeen:        make(map[EntityID]float64),
	}
}

func (v *Vision) Visible(now float64, selfID EntityID, selfPos vector.Vector3, yaw float64, targetID EntityID, targetPos vector.Vector3) bool {
	if !v.inFieldOfView(selfPos, yaw, targetPos) {
		// leaving the FOV outright drops the entity from the hysteresis map
		delete(v.lastSeen, targetID)
		return false
	}

	eye := selfPos.Add(vector.MakeVector3(0, 0, v.eyeHeight))

	hit, blocked := v.world.RayCast(eye, targetPos, []EntityID{selfID, targetID}, MaskSolid)
	if !blocked || hit.Point.Sub(targetPos).Mag() <= v.pickupTolerance {
		v.lastSeen[targetID] = now
		return true
	}

	if seen, ok := v.lastSeen[targetID]; ok {
		if now-seen <= v.window {
			return true
		}

		delete(v.lastSeen, targetID)
	}

	return false
}

func (v *Vision) inFieldOfView(selfPos vector.Vector3, yaw float64, targetPos vector.Vector3) bool {
	if v.fovCos <= -1 {
		return true
	}

	aim := targetPos.Sub(selfPos).Flatten()
	if aim.IsNull() {
		return true
	}

	forward := vector.MakeVector2(0, 1).SetAngle(yaw)
	return forward.Dot(aim.Normalize()) >= v.fovCos
}

// Forget clears the hysteresis record of one entity, used when the entity
// is known to be gone.
func (v *Vision) Forget(id EntityID) {
	delete(v.lastSeen, id)
}
