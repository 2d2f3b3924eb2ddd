// internal/game/engine.go
//
// Rules engine for a single ladder session.
// Responsibilities:
//   - Create sessions from a precomputed pair and a difficulty tier.
//   - Validate and apply moves (length/letters, one letter changed, dictionary).
//   - Charge escalating hint prices.
//   - Compute the completion reward breakdown.
//
// Notes:
//   - Nothing here locks; callers serialize access to a Session.
//   - Rejections are values, never errors. Errors are reserved for state
//     violations (ErrAlreadyComplete, ErrNotComplete).
//   - Durations come from the stored timestamps only, so Completion is
//     idempotent.
package game

import (
	"fmt"
	"time"

	"github.com/robalobadob/wordladder/internal/graph"
	"github.com/robalobadob/wordladder/internal/pairs"
	"github.com/robalobadob/wordladder/internal/words"
)

// Dictionary is the membership test a move must pass.
type Dictionary interface {
	Contains(w string) bool
}

// New constructs an active session on pair p.
func New(id, principal string, d Difficulty, tier Tier, p pairs.Pair, hintStart int, now time.Time) *Session {
	return &Session{
		ID:          id,
		Principal:   principal,
		Difficulty:  d,
		WordLength:  tier.Length,
		StartWord:   p.Start,
		TargetWord:  p.Target,
		CurrentWord: p.Start,
		IdealPath:   append([]string(nil), p.Path...),
		BaseReward:  tier.Reward,
		HintCost:    hintStart,
		StartedAt:   now,
	}
}

// ApplyMove validates candidate against the current word and dict, in order:
//   - exact word length and letters only
//   - exactly one letter differs from the current word
//   - candidate is in dict
//
// A failed check counts one mistake and leaves CurrentWord alone. A passing
// move advances CurrentWord and MoveCount; reaching TargetWord completes the
// session at now.
func (s *Session) ApplyMove(candidate string, dict Dictionary, now time.Time) (Reject, error) {
	if s.Complete {
		return RejectNone, ErrAlreadyComplete
	}
	c := words.Normalize(candidate)

	switch {
	case len(c) != s.WordLength || !words.IsAlpha(c):
		s.Mistakes++
		return RejectLength, nil
	case !graph.OneLetterDiff(s.CurrentWord, c):
		s.Mistakes++
		return RejectNotOneLetter, nil
	case !dict.Contains(c):
		s.Mistakes++
		return RejectNotWord, nil
	}

	s.CurrentWord = c
	s.MoveCount++
	if c == s.TargetWord {
		s.Complete = true
		s.CompletedAt = now
	}
	return RejectNone, nil
}

// Message is the player-facing text for the outcome of a move.
func (s *Session) Message(r Reject) string {
	switch r {
	case RejectLength:
		return fmt.Sprintf("Word must be exactly %d letters", s.WordLength)
	case RejectNotOneLetter:
		return "You can only change one letter at a time"
	case RejectNotWord:
		return "Not a valid word"
	}
	if s.Complete {
		return "Congratulations! You solved the puzzle!"
	}
	return "Valid move!"
}

// ChargeHint bills the current hint price and raises the next one by step.
// Call it only when a hint word was actually found.
func (s *Session) ChargeHint(step int) (int, error) {
	if s.Complete {
		return 0, ErrAlreadyComplete
	}
	cost := s.HintCost
	s.HintUses++
	s.HintSpent += cost
	s.HintCost += step
	return cost, nil
}

// Completion is the reward breakdown of a finished session.
type Completion struct {
	SessionID   string   `json:"sessionId"`
	Duration    int64    `json:"durationSeconds"`
	MoveCount   int      `json:"moveCount"`
	IdealSteps  int      `json:"idealSteps"`
	Mistakes    int      `json:"mistakes"`
	HintUses    int      `json:"hintUses"`
	HintSpent   int      `json:"hintSpent"`
	BaseReward  int      `json:"baseReward"`
	TimeBonus   int      `json:"timeBonus"`
	StreakBonus int      `json:"streakBonus"`
	Total       int      `json:"totalEarnings"`
	IdealPath   []string `json:"idealPath"`
}

// Completion scores s under r. Elapsed time is truncated to whole seconds
// before bucketing. The streak bonus needs zero hints and zero mistakes.
func (s *Session) Completion(r Rules) (Completion, error) {
	if !s.Complete {
		return Completion{}, ErrNotComplete
	}
	elapsed := s.CompletedAt.Sub(s.StartedAt).Truncate(time.Second)
	if elapsed < 0 {
		elapsed = 0
	}

	c := Completion{
		SessionID:  s.ID,
		Duration:   int64(elapsed / time.Second),
		MoveCount:  s.MoveCount,
		IdealSteps: s.IdealSteps(),
		Mistakes:   s.Mistakes,
		HintUses:   s.HintUses,
		HintSpent:  s.HintSpent,
		BaseReward: s.BaseReward,
		TimeBonus:  r.TimeBonusFor(elapsed),
		IdealPath:  append([]string(nil), s.IdealPath...),
	}
	if s.HintUses == 0 && s.Mistakes == 0 {
		c.StreakBonus = r.StreakBonus
	}
	c.Total = c.BaseReward + c.TimeBonus + c.StreakBonus
	return c, nil
}

// State is the player-visible view of a session. The ideal path is omitted
// until the session completes.
type State struct {
	SessionID   string     `json:"sessionId"`
	Difficulty  Difficulty `json:"difficulty"`
	WordLength  int        `json:"wordLength"`
	StartWord   string     `json:"startWord"`
	TargetWord  string     `json:"targetWord"`
	CurrentWord string     `json:"currentWord"`
	IdealSteps  int        `json:"idealSteps"`
	MoveCount   int        `json:"moveCount"`
	Mistakes    int        `json:"mistakes"`
	HintUses    int        `json:"hintUses"`
	HintCost    int        `json:"hintCost"`
	StartedAt   time.Time  `json:"startedAt"`
	Complete    bool       `json:"complete"`
	DailyKey    string     `json:"dailyKey,omitempty"`
	IdealPath   []string   `json:"idealPath,omitempty"`
}

// View builds the State for s.
func (s *Session) View() State {
	v := State{
		SessionID:   s.ID,
		Difficulty:  s.Difficulty,
		WordLength:  s.WordLength,
		StartWord:   s.StartWord,
		TargetWord:  s.TargetWord,
		CurrentWord: s.CurrentWord,
		IdealSteps:  s.IdealSteps(),
		MoveCount:   s.MoveCount,
		Mistakes:    s.Mistakes,
		HintUses:    s.HintUses,
		HintCost:    s.HintCost,
		StartedAt:   s.StartedAt,
		Complete:    s.Complete,
		DailyKey:    s.DailyKey,
	}
	if s.Complete {
		v.IdealPath = append([]string(nil), s.IdealPath...)
	}
	return v
}
