package arena

import (
	json "encoding/json"
	"strconv"

	"github.com/wize-logic/realmarble2-sub000/common/utils/vector"
)

type VizMessageObject struct {
	Id       string         `json:"id"`
	Type     string         `json:"type"`
	Name     string         `json:"name,omitempty"`
	Position vector.Vector3 `json:"position"`
	Velocity vector.Vector3 `json:"velocity,omitempty"`
	Health   int            `json:"health,omitempty"`
	Level    int            `json:"level,omitempty"`
	State    string         `json:"state,omitempty"`
}

type VizMessage struct {
	Clock   float64            `json:"clock"`
	Objects []VizMessageObject `json:"objects"`
}

// GetVizFrameJson returns the frame stored by the last Step. Handlers on
// other goroutines never walk the live views; the stored slice is
// replaced wholesale, never mutated.
func (game *Arena) GetVizFrameJson() []byte {
	game.vizMu.RLock()
	defer game.vizMu.RUnlock()
	return game.vizFrame
}

// storeVizFrame renders the frame on the tick goroutine, while the views
// are quiescent.
func (game *Arena) storeVizFrame() {
	frame := game.buildVizFrameJson()

	game.vizMu.Lock()
	game.vizFrame = frame
	game.vizMu.Unlock()
}

func (game *Arena) buildVizFrameJson() []byte {
	msg := VizMessage{
		Clock:   game.clock,
		Objects: []VizMessageObject{},
	}

	for _, entityresult := range game.agentsView.Get() {
		physicalAspect := game.CastPhysicalBody(entityresult.Components[game.physicalBodyComponent])
		playerAspect := game.CastPlayer(entityresult.Components[game.playerComponent])

		object := VizMessageObject{
			Id:       strconv.FormatUint(uint64(entityresult.Entity.GetID()), 10),
			Type:     "agent",
			Name:     playerAspect.Name,
			Position: physicalAspect.Position(),
			Velocity: physicalAspect.Velocity(),
			Level:    playerAspect.GetLevel(),
		}

		if healthAspect, ok := game.healthAspect(entityresult.Entity.GetID()); ok {
			object.Health = healthAspect.GetLife()
		}

		if controller, ok := game.controllerFor(entityresult.Entity.GetID()); ok {
			object.State = controller.State().String()
		}

		msg.Objects = append(msg.Objects, object)
	}

	for _, entityresult := range game.pickupsView.Get() {
		pickupAspect := game.CastPickup(entityresult.Components[game.pickupComponent])
		if pickupAspect.collected {
			continue
		}

		msg.Objects = append(msg.Objects, VizMessageObject{
			Id:       strconv.FormatUint(uint64(entityresult.Entity.GetID()), 10),
			Type:     pickupAspect.kind.String(),
			Position: pickupAspect.position,
		})
	}

	res, _ := json.Marshal(msg)
	return res
}
