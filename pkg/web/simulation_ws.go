package web

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kinview/kinview/pkg/force"
	"github.com/kinview/kinview/pkg/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The UI is served from the same origin; tooling like wscat has none.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const frameInterval = 33 * time.Millisecond // ~30 fps

// simCommand is a client control message for the frame loop.
type simCommand struct {
	Action string `json:"action"` // pause, resume, reheat
}

// simFrame is one position update pushed to the client.
type simFrame struct {
	Type      string           `json:"type"` // "frame" or "settled"
	Alpha     float64          `json:"alpha"`
	Positions []force.Position `json:"positions"`
}

// handleSimulation runs the force simulation frame loop over a websocket.
// Each connection owns its own Simulation instance, so independent views
// never share mutable node state. The loop steps once per frame tick;
// pausing stops stepping without touching positions, and closing the
// connection discards the instance.
func (s *Server) handleSimulation(w http.ResponseWriter, r *http.Request) {
	g, _ := s.snapshot()
	if g == nil {
		http.Error(w, "no family data loaded", http.StatusServiceUnavailable)
		return
	}

	cfg := force.Config{
		Width:      s.cfg.Force.Width,
		Height:     s.cfg.Force.Height,
		Padding:    s.cfg.Force.Padding,
		Damping:    s.cfg.Force.Damping,
		Repulsion:  s.cfg.Force.Repulsion,
		Attraction: s.cfg.Force.Attraction,
		TimeStep:   s.cfg.Force.TimeStep,
	}
	sim, err := force.New(g, cfg)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	logging.DebugContext(r.Context(), "simulation started", "nodes", g.Len())

	commands := make(chan simCommand, 8)
	go func() {
		defer close(commands)
		for {
			var cmd simCommand
			if err := conn.ReadJSON(&cmd); err != nil {
				return
			}
			commands <- cmd
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	paused := false
	settled := false

	for {
		select {
		case cmd, ok := <-commands:
			if !ok {
				return
			}
			switch cmd.Action {
			case "pause":
				paused = true
			case "resume":
				paused = false
			case "reheat":
				sim.Reheat()
				settled = false
				paused = false
			}

		case <-ticker.C:
			if paused || settled {
				continue
			}
			hot := sim.Step()
			frame := simFrame{Type: "frame", Alpha: sim.Alpha(), Positions: sim.Positions()}
			if !hot {
				settled = true
				frame.Type = "settled"
			}
			if err := conn.WriteJSON(frame); err != nil {
				logging.DebugContext(r.Context(), "simulation client gone", "error", err)
				return
			}
		}
	}
}
