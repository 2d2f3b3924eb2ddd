// Package cache persists the expensive start-up artifacts (word sets,
// adjacency graphs, precomputed pairs) so later starts skip the O(n²)
// graph build.
//
// Each artifact is one blob wrapped in an envelope carrying a format
// version, the corpus fingerprint it was built from, and a BLAKE2b-256
// checksum of the payload. A blob is trusted only when all three match.
package cache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"

	"github.com/robalobadob/wordladder/internal/pairs"
	"github.com/robalobadob/wordladder/internal/words"
)

// Blob names.
const (
	BlobWords = "words"
	BlobGraph = "graph"
	BlobPairs = "pairs"
)

const formatVersion = 1

var (
	// ErrMiss means the backend holds no blob under that name.
	ErrMiss = errors.New("cache: miss")
	// ErrCorrupt covers undecodable envelopes and checksum mismatches.
	ErrCorrupt = errors.New("cache: corrupt artifact")
	// ErrStale means the blob was built from a different corpus or rules.
	ErrStale = errors.New("cache: stale artifact")
)

// Artifacts is everything the engine needs per word length.
type Artifacts struct {
	Fingerprint string
	Words       map[int][]string
	Graphs      map[int]map[string][]string
	Pairs       map[int][]pairs.Pair
}

// Backend stores opaque named blobs.
type Backend interface {
	// Get returns ErrMiss when name is absent.
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
	Close() error
}

type envelope struct {
	Format      int             `json:"format"`
	Fingerprint string          `json:"fingerprint"`
	Checksum    string          `json:"checksum"`
	Payload     json.RawMessage `json:"payload"`
}

// Store reads and writes Artifacts through a Backend.
type Store struct {
	b Backend
}

// NewStore wraps b.
func NewStore(b Backend) *Store { return &Store{b: b} }

// Close releases the backend. It is safe on a nil Store.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.b.Close()
}

// Save writes the three blobs. The pairs blob is written last.
func (s *Store) Save(ctx context.Context, a *Artifacts) error {
	for _, item := range []struct {
		name string
		v    any
	}{
		{BlobWords, a.Words},
		{BlobGraph, a.Graphs},
		{BlobPairs, a.Pairs},
	} {
		payload, err := json.Marshal(item.v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", item.name, err)
		}
		env, err := json.Marshal(envelope{
			Format:      formatVersion,
			Fingerprint: a.Fingerprint,
			Checksum:    Checksum(payload),
			Payload:     payload,
		})
		if err != nil {
			return fmt.Errorf("encode %s envelope: %w", item.name, err)
		}
		if err := s.b.Put(ctx, item.name, env); err != nil {
			return fmt.Errorf("put %s: %w", item.name, err)
		}
	}
	return nil
}

// Load reads and verifies the three blobs against fingerprint.
func (s *Store) Load(ctx context.Context, fingerprint string) (*Artifacts, error) {
	return s.read(ctx, func(fp string) bool { return fp == fingerprint })
}

// LoadLatest returns whatever verified artifacts are stored, whatever
// corpus they came from. The three blobs must still agree on one
// fingerprint.
func (s *Store) LoadLatest(ctx context.Context) (*Artifacts, error) {
	var first string
	seen := false
	return s.read(ctx, func(fp string) bool {
		if !seen {
			first, seen = fp, true
		}
		return fp == first
	})
}

func (s *Store) read(ctx context.Context, accept func(fingerprint string) bool) (*Artifacts, error) {
	a := &Artifacts{}
	for _, item := range []struct {
		name string
		dst  any
	}{
		{BlobWords, &a.Words},
		{BlobGraph, &a.Graphs},
		{BlobPairs, &a.Pairs},
	} {
		fp, err := s.load(ctx, item.name, item.dst)
		if err != nil {
			return nil, err
		}
		if !accept(fp) {
			return nil, fmt.Errorf("%w: %s", ErrStale, item.name)
		}
		a.Fingerprint = fp
	}
	return a, nil
}

// load verifies one envelope, decodes its payload into dst and returns the
// fingerprint it was written with.
func (s *Store) load(ctx context.Context, name string, dst any) (string, error) {
	raw, err := s.b.Get(ctx, name)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", name, err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrCorrupt, name, err)
	}
	if env.Format != formatVersion {
		return "", fmt.Errorf("%w: %s format %d", ErrStale, name, env.Format)
	}
	if env.Checksum != Checksum(env.Payload) {
		return "", fmt.Errorf("%w: %s checksum mismatch", ErrCorrupt, name)
	}
	if err := json.Unmarshal(env.Payload, dst); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrCorrupt, name, err)
	}
	return env.Fingerprint, nil
}

// Checksum is the hex BLAKE2b-256 of b.
func Checksum(b []byte) string {
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// SourceFingerprint hashes the raw corpus bytes together with the settings
// that shape the artifacts. The corpus is streamed, not parsed, so a warm
// start never tokenizes it. Any change to either invalidates persisted
// blobs. An unreadable source is an error.
func SourceFingerprint(src words.Source, settings string) (string, error) {
	rc, err := src.Open()
	if err != nil {
		return "", fmt.Errorf("open corpus %s: %w", src.Name(), err)
	}
	defer rc.Close()

	h, _ := blake2b.New256(nil)
	h.Write([]byte(settings))
	h.Write([]byte{0})
	if _, err := io.Copy(h, rc); err != nil {
		return "", fmt.Errorf("hash corpus %s: %w", src.Name(), err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
