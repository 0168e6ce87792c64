package arena

import (
	"github.com/bytearena/box2d"
	"github.com/bytearena/ecs"

	"github.com/wize-logic/realmarble2-sub000/bot"
	"github.com/wize-logic/realmarble2-sub000/bot/botcfg"
	"github.com/wize-logic/realmarble2-sub000/common/types"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

const (
	agentRadius    = 0.5
	agentHeight    = 1.8
	agentJumpSpeed = 9.5
	agentMaxJumps  = 2
	agentMaxLife   = 100
)

func (game *Arena) NewEntityAgent(name string, position vector.Vector3) *ecs.Entity {

	agent := game.manager.NewEntity()

	bodydef := box2d.MakeB2BodyDef()
	bodydef.Position.Set(position.GetX(), position.GetY())
	bodydef.Type = box2d.B2BodyType.B2_dynamicBody
	bodydef.AllowSleep = false
	bodydef.FixedRotation = true

	body := game.PhysicalWorld.CreateBody(&bodydef)

	shape := box2d.MakeB2CircleShape()
	shape.SetRadius(agentRadius)

	fixturedef := box2d.MakeB2FixtureDef()
	fixturedef.Shape = &shape
	fixturedef.Density = 20.0
	body.CreateFixtureFromDef(&fixturedef)
	body.SetUserData(types.MakePhysicalBodyDescriptor(
		types.PhysicalBodyDescriptorType.Agent,
		uint64(agent.GetID()),
	))
	body.SetBullet(false)
	body.SetLinearDamping(3.0)

	agent.
		AddComponent(game.physicalBodyComponent, &PhysicalBody{
			body:      body,
			altitude:  position.GetZ(),
			radius:    agentRadius,
			height:    agentHeight,
			jumpSpeed: agentJumpSpeed,
			maxJumps:  agentMaxJumps,
			grounded:  true,
		}).
		AddComponent(game.healthComponent, NewHealth(agentMaxLife)).
		AddComponent(game.playerComponent, NewPlayer(name))

	game.agentHandles = append(game.agentHandles, &agentHandle{
		game: game,
		id:   agent.GetID(),
		rect: makeFlatRect(position, agentRadius*2, agentRadius*2),
	})

	return agent
}

// NewEntityBotAgent spawns an agent and puts an autonomous controller in
// charge of it.
func (game *Arena) NewEntityBotAgent(name string, position vector.Vector3, profile bot.Profile, cfg botcfg.Config) (*ecs.Entity, *bot.Bot) {

	agent := game.NewEntityAgent(name, position)

	avatar := &agentAvatar{game: game, id: agent.GetID()}
	controller := bot.New(bot.EntityID(agent.GetID()), game, game, avatar, profile, cfg, game.rng)

	agent.AddComponent(game.controllerComponent, &Controller{bot: controller})

	return agent, controller
}
