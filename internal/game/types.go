// internal/game/types.go
//
// Core type definitions for the word-ladder session state machine.
// Defines:
//   - Difficulty and Tier: word length and base reward per difficulty.
//   - Rules: every tunable that shapes scoring (tiers, step band, bonuses, hints).
//   - Session: state for a single active or completed ladder.
//   - Reject: why a submitted move was refused.

package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/robalobadob/wordladder/internal/pairs"
)

var (
	ErrInvalidDifficulty = errors.New("game: invalid difficulty")
	ErrAlreadyComplete   = errors.New("game: session already complete")
	ErrNotComplete       = errors.New("game: session not complete")
	ErrBadRules          = errors.New("game: invalid rules")
)

// Difficulty selects a Tier.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Normal Difficulty = "normal"
	Hard   Difficulty = "hard"
)

// ParseDifficulty lower-cases and trims s. It does not check s against a
// rule set; Rules.Tier does that.
func ParseDifficulty(s string) Difficulty {
	return Difficulty(strings.ToLower(strings.TrimSpace(s)))
}

// Tier is the word length and base reward for one difficulty.
type Tier struct {
	Length int `json:"length" yaml:"length"`
	Reward int `json:"reward" yaml:"reward"`
}

// TimeBonus pays Bonus when a session completes within Within.
type TimeBonus struct {
	Within time.Duration `json:"within" yaml:"within"`
	Bonus  int           `json:"bonus" yaml:"bonus"`
}

// Rules holds every tunable of a session.
type Rules struct {
	Tiers       map[Difficulty]Tier `json:"tiers" yaml:"tiers"`
	Band        pairs.Band          `json:"band" yaml:"band"`
	TimeBonuses []TimeBonus         `json:"timeBonuses" yaml:"time_bonuses"`
	StreakBonus int                 `json:"streakBonus" yaml:"streak_bonus"`
	HintStart   int                 `json:"hintStart" yaml:"hint_start"`
	HintStep    int                 `json:"hintStep" yaml:"hint_step"`
}

// DefaultRules returns the stock economy.
func DefaultRules() Rules {
	return Rules{
		Tiers: map[Difficulty]Tier{
			Easy:   {Length: 4, Reward: 30},
			Normal: {Length: 5, Reward: 40},
			Hard:   {Length: 6, Reward: 50},
		},
		Band: pairs.DefaultBand,
		TimeBonuses: []TimeBonus{
			{Within: 20 * time.Second, Bonus: 30},
			{Within: 60 * time.Second, Bonus: 20},
			{Within: 120 * time.Second, Bonus: 10},
		},
		StreakBonus: 100,
		HintStart:   10,
		HintStep:    10,
	}
}

// Tier looks up d, failing with ErrInvalidDifficulty.
func (r Rules) Tier(d Difficulty) (Tier, error) {
	t, ok := r.Tiers[d]
	if !ok {
		return Tier{}, fmt.Errorf("%w: %q", ErrInvalidDifficulty, string(d))
	}
	return t, nil
}

// Difficulties returns the configured difficulties ordered by word length.
func (r Rules) Difficulties() []Difficulty {
	out := make([]Difficulty, 0, len(r.Tiers))
	for d := range r.Tiers {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := r.Tiers[out[i]], r.Tiers[out[j]]
		if a.Length != b.Length {
			return a.Length < b.Length
		}
		return out[i] < out[j]
	})
	return out
}

// Lengths returns the distinct word lengths in use, ascending.
func (r Rules) Lengths() []int {
	seen := map[int]bool{}
	var out []int
	for _, t := range r.Tiers {
		if !seen[t.Length] {
			seen[t.Length] = true
			out = append(out, t.Length)
		}
	}
	sort.Ints(out)
	return out
}

// Validate reports the first inconsistency in r.
func (r Rules) Validate() error {
	if len(r.Tiers) == 0 {
		return fmt.Errorf("%w: no difficulty tiers", ErrBadRules)
	}
	for d, t := range r.Tiers {
		if t.Length < 2 {
			return fmt.Errorf("%w: %s word length %d", ErrBadRules, d, t.Length)
		}
		if t.Reward < 0 {
			return fmt.Errorf("%w: %s negative reward", ErrBadRules, d)
		}
	}
	if err := r.Band.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRules, err)
	}
	for _, b := range r.TimeBonuses {
		if b.Within <= 0 || b.Bonus < 0 {
			return fmt.Errorf("%w: time bonus %v/%d", ErrBadRules, b.Within, b.Bonus)
		}
	}
	if r.HintStart < 0 || r.HintStep < 0 || r.StreakBonus < 0 {
		return fmt.Errorf("%w: negative hint price or streak bonus", ErrBadRules)
	}
	return nil
}

// TimeBonusFor returns the bonus of the tightest threshold d falls within,
// or 0 past the last one.
func (r Rules) TimeBonusFor(d time.Duration) int {
	tiers := append([]TimeBonus(nil), r.TimeBonuses...)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].Within < tiers[j].Within })
	for _, t := range tiers {
		if d <= t.Within {
			return t.Bonus
		}
	}
	return 0
}

// Fingerprint is the part of r that shapes persisted artifacts.
func (r Rules) Fingerprint() string {
	return fmt.Sprintf("lengths=%v band=%d-%d", r.Lengths(), r.Band.Min, r.Band.Max)
}

// Session holds the state of a single ladder.
type Session struct {
	ID          string     `json:"id"`        // uuid
	Principal   string     `json:"principal"` // owning user id
	Difficulty  Difficulty `json:"difficulty"`
	WordLength  int        `json:"wordLength"`
	StartWord   string     `json:"startWord"`
	TargetWord  string     `json:"targetWord"`
	CurrentWord string     `json:"currentWord"` // last accepted word
	IdealPath   []string   `json:"idealPath"`   // withheld from players until complete
	BaseReward  int        `json:"baseReward"`
	MoveCount   int        `json:"moveCount"`
	Mistakes    int        `json:"mistakes"`
	HintUses    int        `json:"hintUses"`
	HintCost    int        `json:"hintCost"`  // price of the next hint
	HintSpent   int        `json:"hintSpent"` // total charged so far
	DailyKey    string     `json:"dailyKey,omitempty"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt time.Time  `json:"completedAt"`
	Complete    bool       `json:"complete"`
}

// IdealSteps is the number of moves on a shortest solution.
func (s *Session) IdealSteps() int { return len(s.IdealPath) - 1 }

// Clone returns a deep copy, so stores never share slices with callers.
func (s *Session) Clone() *Session {
	c := *s
	c.IdealPath = append([]string(nil), s.IdealPath...)
	return &c
}

// Reject explains a refused move. The empty Reject means accepted.
type Reject string

const (
	RejectNone         Reject = ""
	RejectLength       Reject = "length"
	RejectNotOneLetter Reject = "not_one_letter"
	RejectNotWord      Reject = "not_a_word"
)
