package arena

import (
	"math/rand"
	"sync"

	"github.com/bytearena/box2d"
	"github.com/bytearena/ecs"
	"github.com/dhconnelly/rtreego"

	"github.com/wize-logic/realmarble2-sub000/bot"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

// Arena owns the match simulation: the entity manager, the horizontal
// physics plane and the spatial indexes the controllers query. The
// vertical axis is not simulated by Box2D; the arena integrates each
// body's altitude explicitly every step.
type Arena struct {
	clock  float64
	active bool

	rng     *rand.Rand
	manager *ecs.Manager

	physicalBodyComponent *ecs.Component
	healthComponent       *ecs.Component
	playerComponent       *ecs.Component
	controllerComponent   *ecs.Component
	obstacleComponent     *ecs.Component
	platformComponent     *ecs.Component
	pickupComponent       *ecs.Component
	affordanceComponent   *ecs.Component

	agentsView      *ecs.View
	controllersView *ecs.View
	pickupsView     *ecs.View
	platformsView   *ecs.View
	affordancesView *ecs.View

	PhysicalWorld *box2d.B2World

	// half extent of the square floor, centered on the origin
	bounds      float64
	spawnPoints []vector.Vector3

	agentHandles  []*agentHandle
	staticHandles map[bot.EntityKind][]rtreego.Spatial

	agentsTree  *rtreego.Rtree
	staticTrees map[bot.EntityKind]*rtreego.Rtree

	// last frame rendered by the tick goroutine, read by debug handlers
	vizMu    sync.RWMutex
	vizFrame []byte
}

func NewArena(bounds float64, rng *rand.Rand) *Arena {
	manager := ecs.NewManager()

	game := &Arena{
		rng:     rng,
		manager: manager,

		physicalBodyComponent: manager.NewComponent(),
		healthComponent:       manager.NewComponent(),
		playerComponent:       manager.NewComponent(),
		controllerComponent:   manager.NewComponent(),
		obstacleComponent:     manager.NewComponent(),
		platformComponent:     manager.NewComponent(),
		pickupComponent:       manager.NewComponent(),
		affordanceComponent:   manager.NewComponent(),

		bounds:        bounds,
		spawnPoints:   make([]vector.Vector3, 0),
		agentHandles:  make([]*agentHandle, 0),
		staticHandles: make(map[bot.EntityKind][]rtreego.Spatial),
		staticTrees:   make(map[bot.EntityKind]*rtreego.Rtree),
	}

	gravity := box2d.MakeB2Vec2(0.0, 0.0) // gravity 0: the plane is seen from the top
	world := box2d.MakeB2World(gravity)
	game.PhysicalWorld = &world

	game.agentsView = manager.CreateView(
		game.playerComponent,
		game.physicalBodyComponent,
	)

	game.controllersView = manager.CreateView(
		game.controllerComponent,
		game.physicalBodyComponent,
	)

	game.pickupsView = manager.CreateView(game.pickupComponent)
	game.platformsView = manager.CreateView(game.platformComponent)
	game.affordancesView = manager.CreateView(game.affordanceComponent)

	game.physicalBodyComponent.SetDestructor(func(entity *ecs.Entity, data interface{}) {
		physicalAspect := data.(*PhysicalBody)
		game.PhysicalWorld.DestroyBody(physicalAspect.GetBody())
	})

	buildArenaFloor(game)

	return game
}

func (game *Arena) getEntity(id ecs.EntityID, tagelements ...interface{}) *ecs.QueryResult {
	return game.manager.GetEntityByID(id, tagelements...)
}

func (game *Arena) Clock() float64 {
	return game.clock
}

func (game *Arena) AddSpawnPoint(point vector.Vector3) {
	game.spawnPoints = append(game.spawnPoints, point)
}

// Start freezes the static layout into the spatial indexes and opens the
// match; controllers begin ticking on the next Step.
func (game *Arena) Start() {
	game.rebuildStaticTrees()
	game.active = true
	game.storeVizFrame()
}

func (game *Arena) Stop() {
	game.active = false
}

func (game *Arena) Step(dt float64) {
	if !game.active {
		return
	}

	game.clock += dt

	game.refreshAgentsTree()

	systemControllers(game, dt)
	systemPhysics(game, dt)
	systemAffordances(game)
	systemPickups(game)

	game.storeVizFrame()
}

// buildArenaFloor closes the playable square with four static walls so
// bodies cannot leave the plane simulation.
func buildArenaFloor(game *Arena) {
	b := game.bounds
	thickness := 1.0

	game.NewEntityObstacle(vector.MakeVector3(0, b+thickness/2, 0), vector.MakeVector3(2*b+2*thickness, thickness, wallHeight))
	game.NewEntityObstacle(vector.MakeVector3(0, -b-thickness/2, 0), vector.MakeVector3(2*b+2*thickness, thickness, wallHeight))
	game.NewEntityObstacle(vector.MakeVector3(b+thickness/2, 0, 0), vector.MakeVector3(thickness, 2*b, wallHeight))
	game.NewEntityObstacle(vector.MakeVector3(-b-thickness/2, 0, 0), vector.MakeVector3(thickness, 2*b, wallHeight))
}

const wallHeight = 6.0
