package arena

import (
	"github.com/wize-logic/realmarble2-sub000/bot"
)

func (game Arena) CastController(data interface{}) *Controller {
	return data.(*Controller)
}

// Controller tags an agent driven by an autonomous bot rather than by an
// external player connection.
type Controller struct {
	bot *bot.Bot
}

func (c Controller) GetBot() *bot.Bot {
	return c.bot
}
