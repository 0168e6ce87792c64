package arena

import (
	"time"

	notify "github.com/bitly/go-notify"
	"github.com/bytearena/ecs"

	"github.com/wize-logic/realmarble2-sub000/bot"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

// FragEvent is published on "arena:frag" when an agent is taken down.
type FragEvent struct {
	Attacker bot.EntityID `json:"attacker"`
	Target   bot.EntityID `json:"target"`
}

// applyDamage wounds the target; at zero life the agent is fragged,
// loses its equipped ability and respawns immediately at full health.
func (game *Arena) applyDamage(target ecs.EntityID, amount int, attacker ecs.EntityID) bool {
	health, ok := game.healthAspect(target)
	if !ok || health.GetLife() <= 0 {
		return false
	}

	health.AddLife(-amount)
	if health.GetLife() > 0 {
		return false
	}

	if player, ok := game.playerAspect(target); ok {
		player.Stats.nbBeenFragged++
		player.ability = nil
	}
	if player, ok := game.playerAspect(attacker); ok {
		player.Stats.nbHasFragged++
	}

	notify.PostTimeout("arena:frag", FragEvent{
		Attacker: bot.EntityID(attacker),
		Target:   bot.EntityID(target),
	}, time.Millisecond)

	game.respawnAgent(target)
	return true
}

func (game *Arena) respawnAgent(id ecs.EntityID) {
	phys, ok := game.physicalAspect(id)
	if !ok {
		return
	}

	spawn := vector.MakeNullVector3()
	if len(game.spawnPoints) > 0 {
		spawn = game.spawnPoints[game.rng.Intn(len(game.spawnPoints))]
	}

	phys.Teleport(spawn)
	phys.SetVelocity(vector.MakeNullVector3())

	if health, ok := game.healthAspect(id); ok {
		health.Restore()
	}
}
