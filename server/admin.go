package server

import (
	"encoding/json"
	"net/http"
)

// HandleMetrics reports one room's runtime counters.
// GET /metrics?room=<id> — without a room, reports the room count.
func (s *Server) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		_ = json.NewEncoder(w).Encode(map[string]any{"rooms": s.registry.RoomCount()})
		return
	}
	room := s.registry.Room(roomID)
	if room == nil {
		http.Error(w, "no such room", http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"room":    room.ID,
		"mode":    room.Mode,
		"members": room.Members(),
		"metrics": room.metrics.Snapshot(),
	})
}

// HandleAdminConfig reads or hot-updates a room's broadcast decimation.
// GET  /admin/config?room=<id>
// POST /admin/config?room=<id>  {"broadcastEvery": 2}
func (s *Server) HandleAdminConfig(w http.ResponseWriter, r *http.Request) {
	room := s.registry.Room(r.URL.Query().Get("room"))
	if room == nil {
		http.Error(w, "no such room", http.StatusNotFound)
		return
	}

	type cfg struct {
		BroadcastEvery *int32 `json:"broadcastEvery,omitempty"`
	}

	switch r.Method {
	case http.MethodGet:
		cur := room.broadcastEvery.Load()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(cfg{BroadcastEvery: &cur})
	case http.MethodPost:
		var body cfg
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body.BroadcastEvery != nil && *body.BroadcastEvery >= 1 {
			room.broadcastEvery.Store(*body.BroadcastEvery)
			Log.Infof("config updated: room=%s broadcastEvery=%d", room.ID, *body.BroadcastEvery)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
