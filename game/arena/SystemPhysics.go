package arena

func systemPhysics(game *Arena, dt float64) {

	game.PhysicalWorld.Step(dt, 8, 3)

	for _, entityresult := range game.agentsView.Get() {
		phys := game.CastPhysicalBody(entityresult.Components[game.physicalBodyComponent])

		// accumulated torque turns into yaw; the bodies themselves are
		// fixed-rotation in the plane
		if phys.pendingSpin != 0 {
			phys.SetYaw(phys.Yaw() + phys.pendingSpin*dt)
			phys.pendingSpin = 0
		}

		mass := phys.body.GetMass()
		phys.verticalVelocity += (phys.pendingLift/mass - gravity) * dt
		phys.pendingLift = 0
		phys.altitude += phys.verticalVelocity * dt

		ground, onGround := game.GroundHeight(phys.Position())
		if onGround && phys.verticalVelocity <= 0 && phys.altitude <= ground {
			phys.altitude = ground
			phys.verticalVelocity = 0
			phys.jumpCount = 0
			phys.grounded = true
		} else {
			phys.grounded = false
		}

		// fell out of the world
		if phys.altitude < -25 {
			game.respawnAgent(entityresult.Entity.GetID())
		}
	}
}
