package arena

import (
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

func (game Arena) CastPlatform(data interface{}) *Platform {
	return data.(*Platform)
}

// Platform is a walkable slab. Position is the center of the top surface,
// which is what navigation targets.
type Platform struct {
	top  vector.Vector3
	size vector.Vector3
}

func (p Platform) GetTop() vector.Vector3 {
	return p.top
}

func (p Platform) GetSize() vector.Vector3 {
	return p.size
}

// Contains reports whether the point is horizontally over the slab.
func (p Platform) Contains(at vector.Vector3) bool {
	dx := at.GetX() - p.top.GetX()
	dy := at.GetY() - p.top.GetY()

	return dx >= -p.size.GetX()/2 && dx <= p.size.GetX()/2 &&
		dy >= -p.size.GetY()/2 && dy <= p.size.GetY()/2
}
