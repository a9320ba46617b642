package http

import "net/http"

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": s.api.Health()})
	})

	s.mux.HandleFunc("GET /posts", s.handleListPosts)
	s.mux.HandleFunc("POST /posts", s.handleCreatePost)
	s.mux.HandleFunc("POST /uploads", s.handleUploadURLs)
}
