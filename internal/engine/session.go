package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordladder/internal/daily"
	"github.com/robalobadob/wordladder/internal/game"
)

// StartResult describes a new session. It never carries the solution.
type StartResult struct {
	SessionID  string          `json:"sessionId"`
	Difficulty game.Difficulty `json:"difficulty"`
	StartWord  string          `json:"startWord"`
	TargetWord string          `json:"targetWord"`
	WordLength int             `json:"wordLength"`
	IdealSteps int             `json:"idealSteps"`
	BaseReward int             `json:"baseReward"`
	HintCost   int             `json:"hintCost"`
	DailyKey   string          `json:"dailyKey,omitempty"`
}

// MoveResult is the outcome of SubmitMove. Rejections are not errors.
type MoveResult struct {
	Accepted    bool        `json:"accepted"`
	Reason      game.Reject `json:"reason,omitempty"`
	Message     string      `json:"message"`
	CurrentWord string      `json:"currentWord"`
	MoveCount   int         `json:"moveCount"`
	Mistakes    int         `json:"mistakes"`
	Solved      bool        `json:"solved"`
}

// HintResult carries the suggested next word. Word is empty and Cost zero
// when no hint exists.
type HintResult struct {
	Word     string `json:"hint,omitempty"`
	Cost     int    `json:"cost"`
	NextCost int    `json:"nextCost"`
	Message  string `json:"message"`
}

// Start opens a session on a random precomputed pair for difficulty.
func (e *Engine) Start(ctx context.Context, principal, difficulty string) (StartResult, error) {
	return e.start(ctx, principal, difficulty, e.intn, "")
}

// StartDaily opens a session on the pair every player gets for the UTC
// date of now.
func (e *Engine) StartDaily(ctx context.Context, principal, difficulty string, now time.Time) (StartResult, error) {
	d := game.ParseDifficulty(difficulty)
	pick := func(n int) int { return daily.Index(now, e.dailySalt, string(d), n) }
	return e.start(ctx, principal, difficulty, pick, daily.DateKey(now))
}

func (e *Engine) start(ctx context.Context, principal, difficulty string, pick func(int) int, dailyKey string) (StartResult, error) {
	cat, err := e.catalog()
	if err != nil {
		return StartResult{}, err
	}
	d := game.ParseDifficulty(difficulty)
	tier, err := e.rules.Tier(d)
	if err != nil {
		return StartResult{}, err
	}
	b := cat.books[tier.Length]
	if b == nil || len(b.pairs) == 0 {
		return StartResult{}, fmt.Errorf("%w: %s", ErrNoPairs, d)
	}

	p := b.pairs[pick(len(b.pairs))]
	s := game.New(e.newID(), principal, d, tier, p, e.rules.HintStart, e.now())
	s.DailyKey = dailyKey
	if err := e.store.Save(ctx, s); err != nil {
		return StartResult{}, fmt.Errorf("save session: %w", err)
	}
	log.Debug().Str("session", s.ID).Str("difficulty", string(d)).
		Str("start", s.StartWord).Str("target", s.TargetWord).Msg("session started")

	return StartResult{
		SessionID:  s.ID,
		Difficulty: d,
		StartWord:  s.StartWord,
		TargetWord: s.TargetWord,
		WordLength: s.WordLength,
		IdealSteps: s.IdealSteps(),
		BaseReward: s.BaseReward,
		HintCost:   s.HintCost,
		DailyKey:   s.DailyKey,
	}, nil
}

// load fetches id and checks ownership.
func (e *Engine) load(ctx context.Context, id, principal string) (*game.Session, error) {
	s, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Principal != principal {
		return nil, ErrUnauthorized
	}
	return s, nil
}

// bookFor returns the catalog entry matching the session's word length.
func (e *Engine) bookFor(s *game.Session) (*book, error) {
	cat, err := e.catalog()
	if err != nil {
		return nil, err
	}
	b := cat.books[s.WordLength]
	if b == nil {
		return nil, fmt.Errorf("%w: no catalog for length %d", ErrNotReady, s.WordLength)
	}
	return b, nil
}

// SubmitMove validates candidate against session id. Calls on the same
// session are serialized.
func (e *Engine) SubmitMove(ctx context.Context, id, candidate, principal string) (MoveResult, error) {
	unlock := e.locks.Lock(id)
	defer unlock()

	s, err := e.load(ctx, id, principal)
	if err != nil {
		return MoveResult{}, err
	}
	if s.Complete {
		return MoveResult{}, ErrAlreadyComplete
	}
	b, err := e.bookFor(s)
	if err != nil {
		return MoveResult{}, err
	}

	reason, err := s.ApplyMove(candidate, b.words, e.now())
	if err != nil {
		return MoveResult{}, err
	}
	if err := e.store.Save(ctx, s); err != nil {
		return MoveResult{}, fmt.Errorf("save session: %w", err)
	}
	if s.Complete {
		log.Debug().Str("session", s.ID).Int("moves", s.MoveCount).Msg("session solved")
	}

	return MoveResult{
		Accepted:    reason == game.RejectNone,
		Reason:      reason,
		Message:     s.Message(reason),
		CurrentWord: s.CurrentWord,
		MoveCount:   s.MoveCount,
		Mistakes:    s.Mistakes,
		Solved:      s.Complete,
	}, nil
}

// Hint suggests the next word on a shortest ladder from the current word
// and charges the current hint price. With no hint available nothing is
// charged and the session is left untouched.
func (e *Engine) Hint(ctx context.Context, id, principal string) (HintResult, error) {
	unlock := e.locks.Lock(id)
	defer unlock()

	s, err := e.load(ctx, id, principal)
	if err != nil {
		return HintResult{}, err
	}
	if s.Complete {
		return HintResult{}, ErrAlreadyComplete
	}
	b, err := e.bookFor(s)
	if err != nil {
		return HintResult{}, err
	}

	word, ok := b.finder.SuggestHint(ctx, s.CurrentWord, s.TargetWord)
	if !ok {
		// an interrupted search is not an unreachable target
		if err := ctx.Err(); err != nil {
			return HintResult{}, err
		}
		return HintResult{NextCost: s.HintCost, Message: "No hints available"}, nil
	}
	cost, err := s.ChargeHint(e.rules.HintStep)
	if err != nil {
		return HintResult{}, err
	}
	if err := e.store.Save(ctx, s); err != nil {
		return HintResult{}, fmt.Errorf("save session: %w", err)
	}
	return HintResult{
		Word:     word,
		Cost:     cost,
		NextCost: s.HintCost,
		Message:  fmt.Sprintf("Try '%s'", word),
	}, nil
}

// CompletionStats scores a completed session. Repeated calls return the
// same result.
func (e *Engine) CompletionStats(ctx context.Context, id, principal string) (game.Completion, error) {
	s, err := e.load(ctx, id, principal)
	if err != nil {
		return game.Completion{}, err
	}
	return s.Completion(e.rules)
}

// State returns the player's view of a session in either state.
func (e *Engine) State(ctx context.Context, id, principal string) (game.State, error) {
	s, err := e.load(ctx, id, principal)
	if err != nil {
		return game.State{}, err
	}
	return s.View(), nil
}
