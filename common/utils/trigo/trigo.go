package trigo

import (
	"math"

	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

func FullCircleAngleToSignedHalfCircleAngle(rad float64) float64 {
	if rad > math.Pi { // 180° en radians
		rad -= math.Pi * 2 // 360° en radian
	} else if rad < -math.Pi {
		rad += math.Pi * 2 // 360° en radian
	}

	return rad
}

// FacingDelta is the signed angle (in [-Pi, Pi]) the agent has to turn
// through to face the given point from its current yaw.
func FacingDelta(yaw float64, from vector.Vector3, to vector.Vector3) float64 {
	aim := to.Sub(from).Flatten()
	if aim.IsNull() {
		return 0
	}

	return FullCircleAngleToSignedHalfCircleAngle(aim.Angle() - yaw)
}

// StepAngle turns current toward target by at most maxstep radians,
// going the short way around.
func StepAngle(current float64, target float64, maxstep float64) float64 {
	delta := FullCircleAngleToSignedHalfCircleAngle(target - current)
	if math.Abs(delta) <= maxstep {
		return target
	}

	if delta > 0 {
		return current + maxstep
	}

	return current - maxstep
}
