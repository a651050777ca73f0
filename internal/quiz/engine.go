// Package quiz implements the multiple-choice round state machine and
// session scoring.
package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// DefaultOptionCount is the number of choices shown per round.
const DefaultOptionCount = 4

// State is the engine's position in the round lifecycle.
type State int

const (
	// StateIdle means no round is active and no answer is pending.
	StateIdle State = iota
	// StateRoundActive means options are out and an answer is awaited.
	StateRoundActive
	// StateResolved means the last answer was judged and the next round may
	// start. Any cooldown between rounds is the caller's scheduling concern.
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRoundActive:
		return "round_active"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// ErrRoundActive is returned by StartRound while an answer is still pending.
var ErrRoundActive = errors.New("quiz: round already active")

// ErrNoActiveRound is returned by SubmitAnswer outside RoundActive.
var ErrNoActiveRound = errors.New("quiz: no active round")

// InsufficientOptionsError reports that the allowed set cannot fill a round.
type InsufficientOptionsError struct {
	Have   int
	Needed int
}

func (e *InsufficientOptionsError) Error() string {
	return fmt.Sprintf("quiz: need %d syllables for a round, have %d", e.Needed, e.Have)
}

// Shortfall is how many more syllables the filters would need to produce.
func (e *InsufficientOptionsError) Shortfall() int {
	return e.Needed - e.Have
}

// Score is the running session tally. Correct never exceeds Total and both
// only grow within a session.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Round holds one multiple-choice question. Options are in display order.
type Round struct {
	Options         []string
	CorrectSyllable string
}

// Result is everything the caller needs to render an answer's outcome
// without re-deriving engine state.
type Result struct {
	Correct         bool
	Chosen          string
	CorrectSyllable string
	Score           Score
}

// Engine runs quiz rounds over an allowed-syllable set. It is not safe for
// concurrent use; each session drives its engine from a single control flow.
type Engine struct {
	rng         *rand.Rand
	optionCount int
	allowed     []string
	state       State
	round       *Round
	score       Score
}

// NewEngine creates an engine over the given allowed set. A nil rng gets a
// time-seeded source; tests pass a fixed seed for determinism.
func NewEngine(allowed []string, optionCount int, rng *rand.Rand) *Engine {
	if optionCount <= 0 {
		optionCount = DefaultOptionCount
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		rng:         rng,
		optionCount: optionCount,
		allowed:     append([]string(nil), allowed...),
		state:       StateIdle,
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Score returns the running session score.
func (e *Engine) Score() Score {
	return e.score
}

// OptionCount returns the configured round size.
func (e *Engine) OptionCount() int {
	return e.optionCount
}

// AllowedCount returns the size of the current allowed set.
func (e *Engine) AllowedCount() int {
	return len(e.allowed)
}

// Round returns the current or last-resolved round, or nil in Idle.
func (e *Engine) Round() *Round {
	return e.round
}

// SetAllowed replaces the allowed set. An in-flight round is abandoned with
// no scoring and the engine returns to Idle.
func (e *Engine) SetAllowed(allowed []string) {
	e.allowed = append([]string(nil), allowed...)
	e.round = nil
	e.state = StateIdle
}

// ResetSession zeroes the score. The allowed set is untouched.
func (e *Engine) ResetSession() {
	e.score = Score{}
}

// StartRound samples a fresh round. It fails with InsufficientOptionsError
// when the allowed set is smaller than the option count, and with
// ErrRoundActive while an answer is pending. The option sample, the correct
// draw and the display shuffle are three independent uniform choices, so the
// final order carries no information about the answer.
func (e *Engine) StartRound() (*Round, error) {
	if e.state == StateRoundActive {
		return nil, ErrRoundActive
	}
	if len(e.allowed) < e.optionCount {
		return nil, &InsufficientOptionsError{Have: len(e.allowed), Needed: e.optionCount}
	}

	pool := append([]string(nil), e.allowed...)
	e.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	options := pool[:e.optionCount]

	correct := options[e.rng.Intn(len(options))]

	e.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	e.round = &Round{Options: options, CorrectSyllable: correct}
	e.state = StateRoundActive
	return e.round, nil
}

// SubmitAnswer judges the chosen syllable against the active round. Total
// always increments; Correct increments only on a match. The round stays
// readable in Resolved so the caller can highlight both the pick and the
// true answer.
func (e *Engine) SubmitAnswer(chosen string) (Result, error) {
	if e.state != StateRoundActive || e.round == nil {
		return Result{}, ErrNoActiveRound
	}

	correct := chosen == e.round.CorrectSyllable
	e.score.Total++
	if correct {
		e.score.Correct++
	}
	e.state = StateResolved

	return Result{
		Correct:         correct,
		Chosen:          chosen,
		CorrectSyllable: e.round.CorrectSyllable,
		Score:           e.score,
	}, nil
}
