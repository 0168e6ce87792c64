package types

// PhysicalBodyDescriptor is set as UserData on Box2D physical bodies to be able
// to determine collider and collidee from Box2D contact and raycast callbacks
type PhysicalBodyDescriptor struct {
	Type _physicaltype
	ID   uint64
}

type _physicaltype string

func (t _physicaltype) String() string {
	switch t {
	case PhysicalBodyDescriptorType.Obstacle:
		return "Obstacle"
	case PhysicalBodyDescriptorType.Agent:
		return "Agent"
	case PhysicalBodyDescriptorType.Platform:
		return "Platform"
	case PhysicalBodyDescriptorType.Pickup:
		return "Pickup"
	case PhysicalBodyDescriptorType.Affordance:
		return "Affordance"
	}

	return "UnknownType"
}

var PhysicalBodyDescriptorType = struct {
	Obstacle   _physicaltype
	Agent      _physicaltype
	Platform   _physicaltype
	Pickup     _physicaltype
	Affordance _physicaltype
}{
	Obstacle:   _physicaltype("o"),
	Agent:      _physicaltype("a"),
	Platform:   _physicaltype("f"),
	Pickup:     _physicaltype("p"),
	Affordance: _physicaltype("t"),
}

func MakePhysicalBodyDescriptor(type_ _physicaltype, id uint64) PhysicalBodyDescriptor {
	return PhysicalBodyDescriptor{
		Type: type_,
		ID:   id,
	}
}
