package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	notify "github.com/bitly/go-notify"
	charmlog "github.com/charmbracelet/log"

	"github.com/wize-logic/realmarble2-sub000/bot"
	"github.com/wize-logic/realmarble2-sub000/bot/botcfg"
	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
	"github.com/wize-logic/realmarble2-sub000/debugserver"
	"github.com/wize-logic/realmarble2-sub000/game/arena"
)

func main() {

	nbBots := flag.Int("bots", 6, "number of autonomous bots")
	tps := flag.Int("tps", 30, "simulation ticks per second")
	port := flag.Int("port", 8700, "debug server port")
	seed := flag.Int64("seed", 0, "rng seed; 0 derives one from the clock")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		Prefix:          "arena",
	})

	game := buildArena(rng)

	spawns := game.SpawnPoints()
	cfg := botcfg.Defaults()

	for i := 0; i < *nbBots; i++ {
		name := fmt.Sprintf("bot-%02d", i+1)
		profile := bot.MakeProfile(rng)

		game.NewEntityBotAgent(name, spawns[i%len(spawns)], profile, cfg)

		logger.Info("bot ready",
			"name", name,
			"preference", profile.Preference.String(),
			"skill", fmt.Sprintf("%.2f", profile.Skill),
		)
	}

	game.Start()

	go func() {
		srv := debugserver.New(fmt.Sprintf(":%d", *port), game)
		if err := srv.ListenAndServe(); err != nil {
			logger.Error("debug server stopped", "err", err)
		}
	}()

	frags := make(chan interface{})
	notify.Start("arena:frag", frags)
	go func() {
		for data := range frags {
			if frag, ok := data.(arena.FragEvent); ok {
				logger.Info("frag", "attacker", frag.Attacker, "target", frag.Target)
			}
		}
	}()

	stopticking := make(chan bool)
	hassigtermed := make(chan os.Signal, 2)
	signal.Notify(hassigtermed, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-hassigtermed
		stopticking <- true
	}()

	logger.Info("match started", "bots", *nbBots, "tps", *tps, "seed", *seed)

	dt := 1.0 / float64(*tps)
	ticker := time.NewTicker(time.Duration(float64(time.Second) * dt))
	defer ticker.Stop()

	for {
		select {
		case <-stopticking:
			game.Stop()
			logger.Info("match stopped")
			return
		case <-ticker.C:
			game.Step(dt)
		}
	}
}

// buildArena lays out a fixed symmetric map: a walled square with a
// central block, two side platforms and the full set of pickups and
// traversal helpers.
func buildArena(rng *rand.Rand) *arena.Arena {

	game := arena.NewArena(40, rng)

	game.AddSpawnPoint(vector.MakeVector3(-30, -30, 0))
	game.AddSpawnPoint(vector.MakeVector3(30, -30, 0))
	game.AddSpawnPoint(vector.MakeVector3(-30, 30, 0))
	game.AddSpawnPoint(vector.MakeVector3(30, 30, 0))
	game.AddSpawnPoint(vector.MakeVector3(0, -34, 0))
	game.AddSpawnPoint(vector.MakeVector3(0, 34, 0))

	// central block and a pair of low covers
	game.NewEntityObstacle(vector.MakeVector3(0, 0, 0), vector.MakeVector3(6, 6, 4))
	game.NewEntityObstacle(vector.MakeVector3(-14, 8, 0), vector.MakeVector3(4, 1.5, 1.2))
	game.NewEntityObstacle(vector.MakeVector3(14, -8, 0), vector.MakeVector3(4, 1.5, 1.2))

	// elevated ground
	game.NewEntityPlatform(vector.MakeVector3(-18, -18, 3), vector.MakeVector3(10, 10, 0.6))
	game.NewEntityPlatform(vector.MakeVector3(18, 18, 3), vector.MakeVector3(10, 10, 0.6))
	game.NewEntityPlatform(vector.MakeVector3(0, 0, 5.5), vector.MakeVector3(8, 8, 0.6))

	// abilities on the platforms, orbs on the ground ring
	game.NewEntityAbilityPickup(vector.MakeVector3(-18, -18, 3), "blaster")
	game.NewEntityAbilityPickup(vector.MakeVector3(18, 18, 3), "railgun")
	game.NewEntityAbilityPickup(vector.MakeVector3(0, 0, 5.5), "hammer")
	game.NewEntityAbilityPickup(vector.MakeVector3(0, -26, 0), "mortar")
	game.NewEntityAbilityPickup(vector.MakeVector3(0, 26, 0), "blade")

	game.NewEntityOrbPickup(vector.MakeVector3(-10, 0, 0))
	game.NewEntityOrbPickup(vector.MakeVector3(10, 0, 0))
	game.NewEntityOrbPickup(vector.MakeVector3(0, -12, 0))
	game.NewEntityOrbPickup(vector.MakeVector3(0, 12, 0))
	game.NewEntityOrbPickup(vector.MakeVector3(-24, 24, 0))
	game.NewEntityOrbPickup(vector.MakeVector3(24, -24, 0))

	// traversal: pads up to the platforms, a cross-map teleporter pair
	// and a rail along the west lane
	game.NewEntityJumpPad(vector.MakeVector3(-12, -18, 0), 12)
	game.NewEntityJumpPad(vector.MakeVector3(12, 18, 0), 12)
	game.NewEntityTeleporter(vector.MakeVector3(-34, 0, 0), vector.MakeVector3(34, 0, 0))
	game.NewEntityTeleporter(vector.MakeVector3(34, 2, 0), vector.MakeVector3(-34, 2, 0))
	game.NewEntityRail(vector.MakeVector3(-28, -10, 0), vector.MakeVector3(-28, 10, 0), 14)

	return game
}
