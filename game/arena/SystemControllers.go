package arena

func systemControllers(game *Arena, dt float64) {
	for _, entityresult := range game.controllersView.Get() {
		controllerAspect := game.CastController(entityresult.Components[game.controllerComponent])
		controllerAspect.bot.Tick(game.clock, dt)
	}
}
