package arena

import (
	uuid "github.com/satori/go.uuid"

	"github.com/wize-logic/realmarble2-sub000/bot"
)

func (game Arena) CastPlayer(data interface{}) *Player {
	return data.(*Player)
}

type stats struct {
	nbBeenFragged uint
	nbHasFragged  uint
}

type Player struct {
	UUID uuid.UUID
	Name string

	// orbs define the player level; both grow monotonically
	orbs int

	// nil until an ability pickup is grabbed; cleared again on death
	ability bot.Ability

	Stats stats
}

func NewPlayer(name string) *Player {
	return &Player{
		UUID: uuid.NewV4(),
		Name: name,
	}
}

func (player Player) GetLevel() int {
	return player.orbs
}

func (player Player) GetAbility() bot.Ability {
	return player.ability
}
