package arena

import (
	"github.com/bytearena/ecs"

	"github.com/wize-logic/realmarble2-sub000/bot"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

func (game *Arena) physicalAspect(id ecs.EntityID) (*PhysicalBody, bool) {
	qr := game.getEntity(id, game.physicalBodyComponent)
	if qr == nil {
		return nil, false
	}

	return game.CastPhysicalBody(qr.Components[game.physicalBodyComponent]), true
}

func (game *Arena) healthAspect(id ecs.EntityID) (*Health, bool) {
	qr := game.getEntity(id, game.healthComponent)
	if qr == nil {
		return nil, false
	}

	return game.CastHealth(qr.Components[game.healthComponent]), true
}

func (game *Arena) playerAspect(id ecs.EntityID) (*Player, bool) {
	qr := game.getEntity(id, game.playerComponent)
	if qr == nil {
		return nil, false
	}

	return game.CastPlayer(qr.Components[game.playerComponent]), true
}

// agentAvatar is the bot-side view of one agent: identity, health and the
// body plus equipment the controller acts through.
type agentAvatar struct {
	game *Arena
	id   ecs.EntityID
}

func (a *agentAvatar) ID() bot.EntityID {
	return bot.EntityID(a.id)
}

func (a *agentAvatar) Alive() bool {
	health, ok := a.game.healthAspect(a.id)
	return ok && health.GetLife() > 0
}

func (a *agentAvatar) Position() vector.Vector3 {
	phys, ok := a.game.physicalAspect(a.id)
	if !ok {
		return vector.MakeNullVector3()
	}

	return phys.Position()
}

func (a *agentAvatar) Health() int {
	health, ok := a.game.healthAspect(a.id)
	if !ok {
		return 0
	}

	return health.GetLife()
}

func (a *agentAvatar) MaxHealth() int {
	health, ok := a.game.healthAspect(a.id)
	if !ok {
		return 0
	}

	return health.GetMaxLife()
}

func (a *agentAvatar) Body() bot.Body {
	phys, ok := a.game.physicalAspect(a.id)
	if !ok {
		return nil
	}

	return phys
}

func (a *agentAvatar) Ability() bot.Ability {
	player, ok := a.game.playerAspect(a.id)
	if !ok {
		return nil
	}

	return player.ability
}

func (a *agentAvatar) Level() int {
	player, ok := a.game.playerAspect(a.id)
	if !ok {
		return 0
	}

	return player.GetLevel()
}
