package vector

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/wize-logic/realmarble2-sub000/common/utils/number"
)

// Vector3 is a world-space position or direction.
// Convention: x and y span the horizontal plane, z points up.
type Vector3 struct {
	x float64
	y float64
	z float64
}

func MakeVector3(x float64, y float64, z float64) Vector3 {
	return Vector3{x, y, z}
}

// Returns a null Vector3
func MakeNullVector3() Vector3 {
	return MakeVector3(0, 0, 0)
}

// Returns a random unit vector in the horizontal plane (z = 0)
func MakeRandomFlatVector3() Vector3 {
	radians := rand.Float64() * math.Pi * 2
	return MakeVector3(
		math.Cos(radians),
		math.Sin(radians),
		0,
	)
}

func NewVector3(x float64, y float64, z float64) *Vector3 {
	return &Vector3{x, y, z}
}

func (v Vector3) Get() (float64, float64, float64) {
	return v.x, v.y, v.z
}

func (v Vector3) GetX() float64 {
	return v.x
}

func (v Vector3) GetY() float64 {
	return v.y
}

func (v Vector3) GetZ() float64 {
	return v.z
}

func (v Vector3) MarshalJSON() ([]byte, error) {
	b := []byte{'['}
	b = strconv.AppendFloat(b, v.x, floatformat, 4, 64)
	b = append(b, byte(','))
	b = strconv.AppendFloat(b, v.y, floatformat, 4, 64)
	b = append(b, byte(','))
	b = strconv.AppendFloat(b, v.z, floatformat, 4, 64)
	return append(b, byte(']')), nil
}

func (a Vector3) Clone() Vector3 {
	return Vector3{
		x: a.x,
		y: a.y,
		z: a.z,
	}
}

func (a Vector3) Add(b Vector3) Vector3 {
	a.x += b.x
	a.y += b.y
	a.z += b.z
	return a
}

func (a Vector3) Sub(b Vector3) Vector3 {
	a.x -= b.x
	a.y -= b.y
	a.z -= b.z
	return a
}

func (a Vector3) Scale(scale float64) Vector3 {
	a.x *= scale
	a.y *= scale
	a.z *= scale
	return a
}

func (a Vector3) MultScalar(f float64) Vector3 {
	a.x *= f
	a.y *= f
	a.z *= f
	return a
}

func (a Vector3) DivScalar(f float64) Vector3 {
	a.x /= f
	a.y /= f
	a.z /= f
	return a
}

func (a Vector3) Mag() float64 {
	return math.Sqrt(a.MagSq())
}

func (a Vector3) MagSq() float64 {
	return (a.x*a.x + a.y*a.y + a.z*a.z)
}

func (a Vector3) SetMag(mag float64) Vector3 {
	return a.Normalize().MultScalar(mag)
}

func (a Vector3) Normalize() Vector3 {
	mag := a.Mag()
	if mag > 0 {
		return a.DivScalar(mag)
	}
	return a
}

func (a Vector3) Limit(max float64) Vector3 {

	mSq := a.MagSq()

	if mSq > max*max {
		return a.Normalize().MultScalar(max)
	}

	return a
}

func (a Vector3) Dot(v Vector3) float64 {
	return a.x*v.x + a.y*v.y + a.z*v.z
}

func (a Vector3) IsNull() bool {
	return isZero(a.x) && isZero(a.y) && isZero(a.z)
}

func (a Vector3) Equals(b Vector3) bool {
	return b.Sub(a).IsNull()
}

func (a Vector3) String() string {
	return "<Vector3(" + number.FloatToStr(a.x, 5) + ", " + number.FloatToStr(a.y, 5) + ", " + number.FloatToStr(a.z, 5) + ")>"
}

// Flatten drops the vertical component.
func (a Vector3) Flatten() Vector2 {
	return MakeVector2(a.x, a.y)
}

// FlatMag is the horizontal-plane magnitude.
func (a Vector3) FlatMag() float64 {
	return math.Sqrt(a.x*a.x + a.y*a.y)
}

// FlatDistance is the horizontal-plane distance between two points.
func (a Vector3) FlatDistance(b Vector3) float64 {
	return a.Sub(b).FlatMag()
}

func (a Vector3) SetZ(z float64) Vector3 {
	a.z = z
	return a
}

func FromVector2(v Vector2, z float64) Vector3 {
	return MakeVector3(v.GetX(), v.GetY(), z)
}
