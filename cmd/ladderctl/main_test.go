package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T) {
	t.Helper()
	corpus := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(corpus,
		[]byte("COLD 9\nCORD 9\nCARD 9\nWARD 9\nWARM 9\nWORD 9\nWORE 9\nCORE 9\n"), 0o644))
	t.Setenv("CORPUS_FILE", corpus)
	t.Setenv("CACHE_BACKEND", "none")
	t.Setenv("PAIR_TARGET", "20")
	t.Setenv("JWT_SECRET", "cli-secret")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSolve(t *testing.T) {
	setEnv(t)
	out, err := run(t, "solve", "cold", "warm")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "COLD -> CORD -> "), out)
	assert.True(t, strings.HasSuffix(out, " -> WARD -> WARM (4 steps)\n"), out)

	_, err = run(t, "solve", "cold", "zzzz")
	assert.Error(t, err)
}

func TestNeighbors(t *testing.T) {
	setEnv(t)
	out, err := run(t, "neighbors", "cord")
	require.NoError(t, err)
	assert.Equal(t, []string{"CARD", "COLD", "CORE", "WORD"}, strings.Fields(out))
}

func TestPairsUnknownLength(t *testing.T) {
	setEnv(t)
	_, err := run(t, "pairs", "--length", "3")
	assert.Error(t, err)
}

func TestToken(t *testing.T) {
	setEnv(t)
	out, err := run(t, "token", "--sub", "alice")
	require.NoError(t, err)

	tok, err := jwt.Parse(strings.TrimSpace(out), func(*jwt.Token) (any, error) {
		return []byte("cli-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, "alice", claims["id"])

	_, err = run(t, "token")
	assert.Error(t, err)
}
