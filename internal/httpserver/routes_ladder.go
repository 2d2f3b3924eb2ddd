// internal/httpserver/routes_ladder.go
//
// HTTP routes for ladder play, all behind requireAuth:
//   - POST /ladder/start            → open a session for a difficulty
//   - POST /ladder/move             → submit the next word
//   - POST /ladder/hint             → buy the next word on a shortest ladder
//   - GET  /ladder/{id}/state       → current session view
//   - GET  /ladder/{id}/completion  → reward breakdown once solved
//   - GET  /ladder/cache/stats      → catalog and path cache statistics

package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type startReq struct {
	Difficulty string `json:"difficulty"`
}

type moveReq struct {
	SessionID string `json:"sessionId"`
	Word      string `json:"word"`
}

type hintReq struct {
	SessionID string `json:"sessionId"`
}

// mountLadder registers the play routes on r.
func (s *Server) mountLadder(r chi.Router) {
	r.Post("/start", s.handleStart)
	r.Post("/move", s.handleMove)
	r.Post("/hint", s.handleHint)
	r.Get("/cache/stats", s.handleCacheStats)
	r.Get("/{id}/state", s.handleState)
	r.Get("/{id}/completion", s.handleCompletion)
}

// decode reads a JSON body into v, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return false
	}
	return true
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	me, _ := Principal(r.Context())
	var req startReq
	if !decode(w, r, &req) {
		return
	}
	res, err := s.eng.Start(r.Context(), me, req.Difficulty)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	me, _ := Principal(r.Context())
	var req moveReq
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		writeError(w, http.StatusBadRequest, "missing_session")
		return
	}
	res, err := s.eng.SubmitMove(r.Context(), req.SessionID, req.Word, me)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	// rejected moves are still a 200: the body carries the reason
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	me, _ := Principal(r.Context())
	var req hintReq
	if !decode(w, r, &req) {
		return
	}
	res, err := s.eng.Hint(r.Context(), req.SessionID, me)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	me, _ := Principal(r.Context())
	st, err := s.eng.State(r.Context(), chi.URLParam(r, "id"), me)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleCompletion(w http.ResponseWriter, r *http.Request) {
	me, _ := Principal(r.Context())
	c, err := s.eng.CompletionStats(r.Context(), chi.URLParam(r, "id"), me)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.eng.CacheStats(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
