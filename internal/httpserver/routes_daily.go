// internal/httpserver/routes_daily.go
//
// HTTP route for the "ladder of the day":
//   - POST /ladder/daily → start today's ladder for a difficulty
//
// Every player gets the same start and target words for a UTC date.
// Selection is deterministic (date + difficulty + DAILY_SALT), so replicas
// sharing a catalog agree without coordination.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// mountDaily registers the daily route on r.
func (s *Server) mountDaily(r chi.Router) {
	r.Post("/daily", s.handleDaily)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	me, _ := Principal(r.Context())
	var req startReq
	if !decode(w, r, &req) {
		return
	}
	res, err := s.eng.StartDaily(r.Context(), me, req.Difficulty, s.now())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
