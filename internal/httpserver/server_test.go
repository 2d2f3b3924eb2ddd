package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordladder/internal/engine"
	"github.com/robalobadob/wordladder/internal/game"
	"github.com/robalobadob/wordladder/internal/pairs"
	"github.com/robalobadob/wordladder/internal/store"
	"github.com/robalobadob/wordladder/internal/words"
)

const secret = "test-secret"

const corpus = "COLD 9\nCORD 9\nCARD 9\nWARD 9\nWARM 9\nWORD 9\nWORE 9\nCORE 9\n"

func newTestServer(t *testing.T, warm bool) *Server {
	t.Helper()
	rules := game.DefaultRules()
	rules.Tiers = map[game.Difficulty]game.Tier{game.Easy: {Length: 4, Reward: 30}}
	rules.Band = pairs.Band{Min: 1, Max: 4}

	eng := engine.New(rules, store.NewMemoryStore(),
		engine.WithCorpus(words.BytesSource("test", []byte(corpus)), words.DefaultMinFrequency),
		engine.WithSeed(11),
	)
	if warm {
		require.NoError(t, eng.Warm(context.Background()))
	}
	return New(eng, Options{JWTSecret: secret, Now: func() time.Time {
		return time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	}})
}

func token(t *testing.T, id string) string {
	t.Helper()
	tok, _, err := SignToken(secret, id, "", time.Hour)
	require.NoError(t, err)
	return tok
}

func do(t *testing.T, s *Server, method, path, tok string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthAndIndex(t *testing.T) {
	s := newTestServer(t, true)
	rec := do(t, s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"ready":true}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/ladder/start")

	rec = do(t, s, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t, true)
	rec := do(t, s, http.MethodPost, "/ladder/start", "", map[string]string{"difficulty": "easy"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/ladder/start", "garbage", map[string]string{"difficulty": "easy"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	forged, _, err := SignToken("other-secret", "alice", "", time.Hour)
	require.NoError(t, err)
	rec = do(t, s, http.MethodPost, "/ladder/start", forged, map[string]string{"difficulty": "easy"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	expired, _, err := SignToken(secret, "alice", "", -time.Minute)
	require.NoError(t, err)
	rec = do(t, s, http.MethodPost, "/ladder/start", expired, map[string]string{"difficulty": "easy"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": "alice"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	rec = do(t, s, http.MethodPost, "/ladder/start", unsigned, map[string]string{"difficulty": "easy"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCookieAuth(t *testing.T) {
	s := newTestServer(t, true)
	req := httptest.NewRequest(http.MethodGet, "/ladder/cache/stats", nil)
	req.AddCookie(&http.Cookie{Name: "ladder_token", Value: token(t, "alice")})
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPlayThrough(t *testing.T) {
	s := newTestServer(t, true)
	alice, mallory := token(t, "alice"), token(t, "mallory")

	rec := do(t, s, http.MethodPost, "/ladder/start", alice, map[string]string{"difficulty": "easy"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	start := decodeBody[engine.StartResult](t, rec)
	assert.NotContains(t, rec.Body.String(), "idealPath")

	// wrong owner
	rec = do(t, s, http.MethodGet, "/ladder/"+start.SessionID+"/state", mallory, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// not finished yet
	rec = do(t, s, http.MethodGet, "/ladder/"+start.SessionID+"/completion", alice, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// rejected move is a 200 with a reason
	rec = do(t, s, http.MethodPost, "/ladder/move", alice, moveReq{SessionID: start.SessionID, Word: "QQ" + start.StartWord[2:]})
	require.Equal(t, http.StatusOK, rec.Code)
	mv := decodeBody[engine.MoveResult](t, rec)
	assert.False(t, mv.Accepted)
	assert.Equal(t, game.RejectNotOneLetter, mv.Reason)

	// walk the hints to the target
	for i := 0; i < start.IdealSteps; i++ {
		rec = do(t, s, http.MethodPost, "/ladder/hint", alice, hintReq{SessionID: start.SessionID})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		h := decodeBody[engine.HintResult](t, rec)
		require.NotEmpty(t, h.Word)
		assert.Equal(t, 10*(i+1), h.Cost)

		rec = do(t, s, http.MethodPost, "/ladder/move", alice, moveReq{SessionID: start.SessionID, Word: h.Word})
		require.Equal(t, http.StatusOK, rec.Code)
		mv = decodeBody[engine.MoveResult](t, rec)
		require.True(t, mv.Accepted)
	}
	assert.True(t, mv.Solved)

	rec = do(t, s, http.MethodPost, "/ladder/hint", alice, hintReq{SessionID: start.SessionID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodGet, "/ladder/"+start.SessionID+"/completion", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	c := decodeBody[game.Completion](t, rec)
	assert.Zero(t, c.StreakBonus)
	assert.Equal(t, start.IdealSteps, c.MoveCount)
	assert.Len(t, c.IdealPath, start.IdealSteps+1)
}

func TestErrorMapping(t *testing.T) {
	s := newTestServer(t, true)
	alice := token(t, "alice")

	rec := do(t, s, http.MethodPost, "/ladder/start", alice, map[string]string{"difficulty": "impossible"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/ladder/move", alice, moveReq{SessionID: "ghost", Word: "CORD"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/ladder/move", alice, moveReq{Word: "CORD"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/ladder/start", bytes.NewBufferString("{"))
	req.Header.Set("Authorization", "Bearer "+alice)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	cold := newTestServer(t, false)
	rec = do(t, cold, http.MethodPost, "/ladder/start", alice, map[string]string{"difficulty": "easy"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDailyAndStats(t *testing.T) {
	s := newTestServer(t, true)
	a := do(t, s, http.MethodPost, "/ladder/daily", token(t, "alice"), map[string]string{"difficulty": "easy"})
	b := do(t, s, http.MethodPost, "/ladder/daily", token(t, "bob"), map[string]string{"difficulty": "easy"})
	require.Equal(t, http.StatusOK, a.Code)
	require.Equal(t, http.StatusOK, b.Code)
	ra, rb := decodeBody[engine.StartResult](t, a), decodeBody[engine.StartResult](t, b)
	assert.Equal(t, ra.StartWord, rb.StartWord)
	assert.Equal(t, ra.TargetWord, rb.TargetWord)
	assert.Equal(t, "2026-04-01", ra.DailyKey)

	rec := do(t, s, http.MethodGet, "/ladder/cache/stats", token(t, "alice"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeBody[engine.CacheStats](t, rec)
	assert.True(t, st.Ready)
	assert.Equal(t, 2, st.ActiveSessions)
	require.Len(t, st.Lengths, 1)
	assert.Equal(t, 8, st.Lengths[0].Words)
}

func TestPrincipal(t *testing.T) {
	_, ok := Principal(context.Background())
	assert.False(t, ok)
	_, _, err := SignToken(secret, "", "", time.Hour)
	assert.Error(t, err)
}
