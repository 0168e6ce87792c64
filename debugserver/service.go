// Package debugserver exposes the running match over HTTP: a JSON
// snapshot of the arena and a websocket relaying the controller events
// as they happen.
package debugserver

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/wize-logic/realmarble2-sub000/common/utils"
	"github.com/wize-logic/realmarble2-sub000/game/arena"
)

type DebugService struct {
	addr string
	game *arena.Arena
}

func New(addr string, game *arena.Arena) *DebugService {
	return &DebugService{
		addr: addr,
		game: game,
	}
}

func (srv *DebugService) ListenAndServe() error {

	logger := os.Stdout
	router := mux.NewRouter()

	router.Handle("/", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(srv.snapshot),
	)).Methods("GET")

	router.Handle("/ws", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(srv.websocket),
	)).Methods("GET")

	utils.Debug("debugserver", "listening", "addr", srv.addr)

	return http.ListenAndServe(srv.addr, router)
}

func (srv *DebugService) snapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(srv.game.GetVizFrameJson())
}
