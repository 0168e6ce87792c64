package arena

import (
	"github.com/bytearena/ecs"
	"github.com/dhconnelly/rtreego"

	"github.com/wize-logic/realmarble2-sub000/bot"
	"github.com/wize-logic/realmarble2-sub000/common/utils"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

// Handles are the read-only entity views handed to the controllers
// through the registry. One concrete type per entity role, so that
// capability probing (Sized, Moving, Damageable, Collectible) only finds
// what the role actually supports.

func makeFlatRect(center vector.Vector3, width float64, depth float64) *rtreego.Rect {
	rect, err := rtreego.NewRect(
		rtreego.Point{center.GetX() - width/2, center.GetY() - depth/2},
		[]float64{width, depth},
	)
	utils.Check(err, "arena: invalid spatial bounds")
	return rect
}

///////////////////////////////////////////////////////////////////////////
// agents
///////////////////////////////////////////////////////////////////////////

type agentHandle struct {
	game *Arena
	id   ecs.EntityID
	rect *rtreego.Rect
}

func (h *agentHandle) Bounds() *rtreego.Rect {
	return h.rect
}

func (h *agentHandle) refreshBounds() {
	if phys, ok := h.game.physicalAspect(h.id); ok {
		h.rect = makeFlatRect(phys.Position(), phys.radius*2, phys.radius*2)
	}
}

func (h *agentHandle) ID() bot.EntityID {
	return bot.EntityID(h.id)
}

func (h *agentHandle) Alive() bool {
	health, ok := h.game.healthAspect(h.id)
	return ok && health.GetLife() > 0
}

func (h *agentHandle) Position() vector.Vector3 {
	phys, ok := h.game.physicalAspect(h.id)
	if !ok {
		return vector.MakeNullVector3()
	}

	return phys.Position()
}

func (h *agentHandle) Velocity() vector.Vector3 {
	phys, ok := h.game.physicalAspect(h.id)
	if !ok {
		return vector.MakeNullVector3()
	}

	return phys.Velocity()
}

func (h *agentHandle) Size() vector.Vector3 {
	phys, ok := h.game.physicalAspect(h.id)
	if !ok {
		return vector.MakeNullVector3()
	}

	return vector.MakeVector3(phys.radius*2, phys.radius*2, phys.height)
}

func (h *agentHandle) Health() int {
	health, ok := h.game.healthAspect(h.id)
	if !ok {
		return 0
	}

	return health.GetLife()
}

func (h *agentHandle) MaxHealth() int {
	health, ok := h.game.healthAspect(h.id)
	if !ok {
		return 0
	}

	return health.GetMaxLife()
}

///////////////////////////////////////////////////////////////////////////
// pickups
///////////////////////////////////////////////////////////////////////////

type pickupHandle struct {
	game   *Arena
	id     ecs.EntityID
	aspect *Pickup
	rect   *rtreego.Rect
}

func (h *pickupHandle) Bounds() *rtreego.Rect {
	return h.rect
}

func (h *pickupHandle) ID() bot.EntityID {
	return bot.EntityID(h.id)
}

func (h *pickupHandle) Alive() bool {
	return h.game.getEntity(h.id, h.game.pickupComponent) != nil
}

func (h *pickupHandle) Position() vector.Vector3 {
	return h.aspect.position
}

func (h *pickupHandle) Collected() bool {
	return h.aspect.collected
}

///////////////////////////////////////////////////////////////////////////
// platforms
///////////////////////////////////////////////////////////////////////////

type platformHandle struct {
	game   *Arena
	id     ecs.EntityID
	aspect *Platform
	rect   *rtreego.Rect
}

func (h *platformHandle) Bounds() *rtreego.Rect {
	return h.rect
}

func (h *platformHandle) ID() bot.EntityID {
	return bot.EntityID(h.id)
}

func (h *platformHandle) Alive() bool {
	return h.game.getEntity(h.id, h.game.platformComponent) != nil
}

func (h *platformHandle) Position() vector.Vector3 {
	return h.aspect.top
}

func (h *platformHandle) Size() vector.Vector3 {
	return h.aspect.size
}

///////////////////////////////////////////////////////////////////////////
// affordances
///////////////////////////////////////////////////////////////////////////

type affordanceHandle struct {
	game   *Arena
	id     ecs.EntityID
	aspect *Affordance
	rect   *rtreego.Rect
}

func (h *affordanceHandle) Bounds() *rtreego.Rect {
	return h.rect
}

func (h *affordanceHandle) ID() bot.EntityID {
	return bot.EntityID(h.id)
}

func (h *affordanceHandle) Alive() bool {
	return h.game.getEntity(h.id, h.game.affordanceComponent) != nil
}

func (h *affordanceHandle) Position() vector.Vector3 {
	return h.aspect.position
}

func (h *affordanceHandle) Size() vector.Vector3 {
	return h.aspect.size
}

///////////////////////////////////////////////////////////////////////////
// trees
///////////////////////////////////////////////////////////////////////////

func (game *Arena) registerStatic(kind bot.EntityKind, handle rtreego.Spatial) {
	game.staticHandles[kind] = append(game.staticHandles[kind], handle)
}

func (game *Arena) rebuildStaticTrees() {
	for kind, handles := range game.staticHandles {
		game.staticTrees[kind] = rtreego.NewTree(2, 25, 50, handles...)
	}
}

// refreshAgentsTree rebuilds the moving index from scratch every step;
// agents are few and the rebuild is cheaper than delete/reinsert churn.
func (game *Arena) refreshAgentsTree() {
	spatials := make([]rtreego.Spatial, 0, len(game.agentHandles))
	for _, handle := range game.agentHandles {
		handle.refreshBounds()
		spatials = append(spatials, handle)
	}

	game.agentsTree = rtreego.NewTree(2, 25, 50, spatials...)
}
