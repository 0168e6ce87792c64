package arena

import (
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

func (game Arena) CastObstacle(data interface{}) *Obstacle {
	return data.(*Obstacle)
}

// Obstacle is a solid block standing on the arena floor. Its footprint
// lives in the plane simulation; the height decides which rays it stops.
type Obstacle struct {
	center vector.Vector3 // base center, z is the floor it stands on
	size   vector.Vector3
}

func (o Obstacle) GetTop() float64 {
	return o.center.GetZ() + o.size.GetZ()
}

func (o Obstacle) GetBase() float64 {
	return o.center.GetZ()
}
