package server

import "net/http"

// Server bundles the registry and HTTP surface. The registry is injected so
// nothing in this package reaches for ambient global state.
type Server struct {
	registry *Registry
}

func NewServer(reg *Registry) *Server {
	return &Server{registry: reg}
}

// Routes builds the HTTP mux: game socket plus ops endpoints.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWS)
	mux.HandleFunc("/metrics", s.HandleMetrics)
	mux.HandleFunc("/admin/config", s.HandleAdminConfig)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}
