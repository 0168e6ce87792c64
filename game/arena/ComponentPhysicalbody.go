package arena

import (
	"github.com/bytearena/box2d"

	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

const gravity = 22.0

func (game Arena) CastPhysicalBody(data interface{}) *PhysicalBody {
	return data.(*PhysicalBody)
}

// PhysicalBody couples a Box2D plane body with the explicitly integrated
// vertical axis. It is the concrete body handed to the controllers.
type PhysicalBody struct {
	body *box2d.B2Body

	altitude         float64
	verticalVelocity float64
	pendingLift      float64 // vertical force accumulated for the next step
	pendingSpin      float64 // torque accumulated for the next step

	radius    float64
	height    float64
	jumpSpeed float64
	maxJumps  int
	jumpCount int
	grounded  bool
}

func (p *PhysicalBody) GetBody() *box2d.B2Body {
	return p.body
}

func (p PhysicalBody) Position() vector.Vector3 {
	v := p.body.GetPosition()
	return vector.MakeVector3(v.X, v.Y, p.altitude)
}

func (p PhysicalBody) Velocity() vector.Vector3 {
	v := p.body.GetLinearVelocity()
	return vector.MakeVector3(v.X, v.Y, p.verticalVelocity)
}

func (p *PhysicalBody) SetVelocity(v vector.Vector3) {
	p.body.SetLinearVelocity(v.Flatten().ToB2Vec2())
	p.verticalVelocity = v.GetZ()
}

func (p PhysicalBody) Yaw() float64 {
	return p.body.GetAngle()
}

func (p *PhysicalBody) SetYaw(yaw float64) {
	p.body.SetTransform(p.body.GetPosition(), yaw)
}

func (p *PhysicalBody) ApplyForce(force vector.Vector3) {
	p.body.ApplyForceToCenter(force.Flatten().ToB2Vec2(), true)
	p.pendingLift += force.GetZ()
}

func (p *PhysicalBody) ApplyImpulse(impulse vector.Vector3) {
	p.body.ApplyLinearImpulse(impulse.Flatten().ToB2Vec2(), p.body.GetWorldCenter(), true)
	p.verticalVelocity += impulse.GetZ() / p.body.GetMass()
}

func (p *PhysicalBody) ApplyTorque(torque float64) {
	p.pendingSpin += torque
}

func (p *PhysicalBody) Jump() bool {
	if p.jumpCount >= p.maxJumps {
		return false
	}

	p.jumpCount++
	p.verticalVelocity = p.jumpSpeed
	p.grounded = false
	return true
}

func (p PhysicalBody) JumpCount() int {
	return p.jumpCount
}

func (p PhysicalBody) MaxJumps() int {
	return p.maxJumps
}

func (p *PhysicalBody) Teleport(to vector.Vector3) {
	p.body.SetTransform(to.Flatten().ToB2Vec2(), p.body.GetAngle())
	p.altitude = to.GetZ()
	p.verticalVelocity = 0
}

func (p PhysicalBody) GetRadius() float64 {
	return p.radius
}

func (p PhysicalBody) GetHeight() float64 {
	return p.height
}

func (p PhysicalBody) IsGrounded() bool {
	return p.grounded
}
