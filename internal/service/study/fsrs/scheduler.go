package fsrs

import (
	"fmt"
	"time"

	"github.com/heartmarshall/studytrack/internal/domain"
)

const day = 24 * time.Hour

// Parameters holds all FSRS configuration.
type Parameters struct {
	W                Weights
	DesiredRetention float64
	MaxIntervalDays  int
	EnableFuzz       bool
	LearningSteps    []time.Duration
	RelearningSteps  []time.Duration
}

// DefaultParameters returns the defaults: retention 0.9, 365-day cap, no fuzz.
func DefaultParameters() Parameters {
	return Parameters{
		W:                DefaultWeights,
		DesiredRetention: 0.9,
		MaxIntervalDays:  365,
		EnableFuzz:       false,
		LearningSteps:    []time.Duration{time.Minute, 10 * time.Minute},
		RelearningSteps:  []time.Duration{10 * time.Minute},
	}
}

// ParametersFromConfig builds Parameters from the SRS configuration and weights.
func ParametersFromConfig(cfg domain.SRSConfig, w Weights) Parameters {
	p := DefaultParameters()
	p.W = w
	if cfg.DesiredRetention > 0 {
		p.DesiredRetention = cfg.DesiredRetention
	}
	if cfg.MaxIntervalDays > 0 {
		p.MaxIntervalDays = cfg.MaxIntervalDays
	}
	p.EnableFuzz = cfg.EnableFuzz
	if len(cfg.LearningSteps) > 0 {
		p.LearningSteps = cfg.LearningSteps
	}
	if len(cfg.RelearningSteps) > 0 {
		p.RelearningSteps = cfg.RelearningSteps
	}
	return p
}

// Validate checks the parameters before any card is scheduled with them.
func (p Parameters) Validate() error {
	if err := p.W.Validate(); err != nil {
		return err
	}
	if p.DesiredRetention <= 0 || p.DesiredRetention >= 1 {
		return fmt.Errorf("desired retention must be in (0, 1), got %v", p.DesiredRetention)
	}
	if p.MaxIntervalDays < 1 {
		return fmt.Errorf("max interval must be at least 1 day, got %d", p.MaxIntervalDays)
	}
	for _, steps := range [][]time.Duration{p.LearningSteps, p.RelearningSteps} {
		for _, s := range steps {
			if s <= 0 {
				return fmt.Errorf("learning steps must be positive, got %s", s)
			}
		}
	}
	return nil
}

// SchedulingInfo is the projected outcome of reviewing a card with one grade.
// Log.CardID and Log.ID are left for the caller to fill.
type SchedulingInfo struct {
	Card domain.CardState
	Log  domain.ReviewLogEntry
}

// RecordLog holds one projected outcome per user-selectable grade.
type RecordLog map[domain.Grade]SchedulingInfo

// ComputeNextStates projects independently what the card would become under
// each of the four grades if reviewed at now. The input card is not modified.
func ComputeNextStates(params Parameters, card domain.CardState, now time.Time) (RecordLog, error) {
	if err := checkReviewable(card, now); err != nil {
		return nil, err
	}

	out := make(RecordLog, 4)
	for _, g := range domain.Grades() {
		next, err := schedule(params, card.Clone(), g, now)
		if err != nil {
			return nil, err
		}
		out[g] = SchedulingInfo{Card: next, Log: newLogEntry(card, next, g, now)}
	}
	return out, nil
}

// ApplyGrade selects the outcome for grade from a projection.
func ApplyGrade(states RecordLog, grade domain.Grade) (SchedulingInfo, error) {
	if err := checkGrade(grade); err != nil {
		return SchedulingInfo{}, err
	}
	info, ok := states[grade]
	if !ok {
		return SchedulingInfo{}, fmt.Errorf("%w: no projection for %s", domain.ErrInvalidGrade, grade)
	}
	return info, nil
}

// ReviewCard schedules card for grade at now.
func ReviewCard(params Parameters, card domain.CardState, grade domain.Grade, now time.Time) (SchedulingInfo, error) {
	if err := checkGrade(grade); err != nil {
		return SchedulingInfo{}, err
	}
	states, err := ComputeNextStates(params, card, now)
	if err != nil {
		return SchedulingInfo{}, err
	}
	return ApplyGrade(states, grade)
}

func checkGrade(g domain.Grade) error {
	switch g {
	case domain.GradeAgain, domain.GradeHard, domain.GradeGood, domain.GradeEasy:
		return nil
	case manual:
		return fmt.Errorf("%w: manual rating is not selectable", domain.ErrInvalidGrade)
	default:
		return fmt.Errorf("%w: %s", domain.ErrInvalidGrade, g)
	}
}

func checkReviewable(card domain.CardState, now time.Time) error {
	if err := card.Validate(""); err != nil {
		return err
	}
	if card.LastReview != nil && now.Before(*card.LastReview) {
		return &domain.CardStateError{Field: "last_review", Reason: "review time precedes last review"}
	}
	return nil
}

func schedule(params Parameters, card domain.CardState, grade domain.Grade, now time.Time) (domain.CardState, error) {
	elapsed := elapsedDays(card, now)

	switch card.State {
	case domain.StateNew:
		card = reviewNew(params, card, grade, now)
	case domain.StateLearning:
		card = reviewLearning(params, card, grade, now, false)
	case domain.StateRelearning:
		card = reviewLearning(params, card, grade, now, true)
	case domain.StateReview:
		card = reviewReview(params, card, grade, now, elapsed)
	default:
		return domain.CardState{}, &domain.CardStateError{Field: "state", Reason: "unknown state " + card.State.String()}
	}

	card.ElapsedDays = elapsed
	card.LastReview = &now
	return card, nil
}

func elapsedDays(card domain.CardState, now time.Time) float64 {
	if card.LastReview == nil {
		return 0
	}
	return now.Sub(*card.LastReview).Hours() / 24
}

func newLogEntry(prev, next domain.CardState, grade domain.Grade, now time.Time) domain.ReviewLogEntry {
	return domain.ReviewLogEntry{
		Topic:         next.Topic,
		Grade:         grade,
		ReviewedAt:    now,
		State:         next.State,
		Due:           next.Due,
		Stability:     next.Stability,
		Difficulty:    next.Difficulty,
		ElapsedDays:   next.ElapsedDays,
		ScheduledDays: next.ScheduledDays,
		PrevState:     prev.Clone(),
	}
}

// reviewNew handles a card's first review.
func reviewNew(params Parameters, card domain.CardState, grade domain.Grade, now time.Time) domain.CardState {
	card.Reps++

	s := InitialStability(params.W, grade)
	d := InitialDifficulty(params.W, grade)
	card.Stability = s
	card.Difficulty = d

	steps := stepsOrDefault(params.LearningSteps, time.Minute)

	switch grade {
	case domain.GradeAgain:
		card.Lapses++
		card = toStep(card, domain.StateLearning, 0, now.Add(steps[0]))

	case domain.GradeHard:
		delay := steps[0]
		if len(steps) > 1 {
			delay = (steps[0] + steps[1]) / 2
		}
		card = toStep(card, domain.StateLearning, 0, now.Add(delay))

	case domain.GradeGood:
		if len(steps) > 1 {
			card = toStep(card, domain.StateLearning, 1, now.Add(steps[1]))
		} else {
			card = graduateToReview(params, card, s, d, now)
		}

	case domain.GradeEasy:
		card = graduateToReview(params, card, s, d, now)
		// Easy must land strictly after what Good would have scheduled on graduation.
		goodIvl := clampInterval(NextInterval(InitialStability(params.W, domain.GradeGood), params.DesiredRetention), params.MaxIntervalDays)
		card = ensureAfter(params, card, goodIvl, now)
	}

	return card
}

// reviewLearning handles LEARNING or RELEARNING cards.
func reviewLearning(params Parameters, card domain.CardState, grade domain.Grade, now time.Time, relearning bool) domain.CardState {
	card.Reps++

	steps := stepsOrDefault(params.LearningSteps, time.Minute)
	if relearning {
		steps = stepsOrDefault(params.RelearningSteps, 10*time.Minute)
	}

	preS := card.Stability

	// Short-term stability applies to every grade.
	card.Stability = ShortTermStability(params.W, card.Stability, grade)
	card.Difficulty = NextDifficulty(params.W, card.Difficulty, grade)

	switch grade {
	case domain.GradeAgain:
		card.Lapses++
		card = toStep(card, card.State, 0, now.Add(steps[0]))

	case domain.GradeHard:
		step := min(card.Step, len(steps)-1)
		card = toStep(card, card.State, card.Step, now.Add(steps[step]))

	case domain.GradeGood:
		next := card.Step + 1
		if next >= len(steps) {
			card = graduateToReview(params, card, card.Stability, card.Difficulty, now)
		} else {
			card = toStep(card, card.State, next, now.Add(steps[next]))
		}

	case domain.GradeEasy:
		card = graduateToReview(params, card, card.Stability, card.Difficulty, now)
		goodS := ShortTermStability(params.W, preS, domain.GradeGood)
		goodIvl := clampInterval(NextInterval(goodS, params.DesiredRetention), params.MaxIntervalDays)
		card = ensureAfter(params, card, goodIvl, now)
	}

	return card
}

// reviewReview handles REVIEW cards. All three recall intervals are computed so
// that Hard <= Good < Easy holds whichever grade is chosen.
func reviewReview(params Parameters, card domain.CardState, grade domain.Grade, now time.Time, elapsed float64) domain.CardState {
	card.Reps++

	r := Retrievability(max(elapsed, 1), card.Stability)

	// Stability uses the pre-update difficulty.
	preD := card.Difficulty
	d := NextDifficulty(params.W, card.Difficulty, grade)

	if grade == domain.GradeAgain {
		card.Lapses++
		card.Difficulty = d
		card.Stability = StabilityAfterForgettingCapped(params.W, card.Stability, preD, r)
		steps := stepsOrDefault(params.RelearningSteps, 10*time.Minute)
		return toStep(card, domain.StateRelearning, 0, now.Add(steps[0]))
	}

	hardS := StabilityAfterRecall(params.W, card.Stability, preD, r, domain.GradeHard)
	goodS := StabilityAfterRecall(params.W, card.Stability, preD, r, domain.GradeGood)
	easyS := StabilityAfterRecall(params.W, card.Stability, preD, r, domain.GradeEasy)

	hardIvl := clampInterval(NextInterval(hardS, params.DesiredRetention), params.MaxIntervalDays)
	goodIvl := clampInterval(NextInterval(goodS, params.DesiredRetention), params.MaxIntervalDays)
	easyIvl := clampInterval(NextInterval(easyS, params.DesiredRetention), params.MaxIntervalDays)
	hardIvl, goodIvl, easyIvl = orderIntervals(hardIvl, goodIvl, easyIvl)

	if params.EnableFuzz {
		maxIvl := float64(params.MaxIntervalDays)
		ed := max(elapsed, 1)
		seed := FuzzSeed(now, card.Reps, preD, card.Stability)

		hardIvl = int(applyFuzz(float64(hardIvl), ed, maxIvl, seed))
		goodIvl = int(applyFuzz(float64(goodIvl), ed, maxIvl, seed+1))
		easyIvl = int(applyFuzz(float64(easyIvl), ed, maxIvl, seed+2))
		hardIvl, goodIvl, easyIvl = orderIntervals(hardIvl, goodIvl, easyIvl)
	}

	var ivl int
	switch grade {
	case domain.GradeHard:
		ivl, card.Stability = hardIvl, hardS
	case domain.GradeGood:
		ivl, card.Stability = goodIvl, goodS
	case domain.GradeEasy:
		ivl, card.Stability = easyIvl, easyS
	}
	ivl = clampInterval(ivl, params.MaxIntervalDays)

	card.Difficulty = d
	card.State = domain.StateReview
	card.Step = 0
	card.ScheduledDays = float64(ivl)
	card.Due = now.Add(time.Duration(ivl) * day)
	return card
}

// graduateToReview moves a New or Learning card to Review.
func graduateToReview(params Parameters, card domain.CardState, stability, difficulty float64, now time.Time) domain.CardState {
	interval := clampInterval(NextInterval(stability, params.DesiredRetention), params.MaxIntervalDays)

	card.State = domain.StateReview
	card.Step = 0
	card.Stability = stability
	card.Difficulty = difficulty
	card.ScheduledDays = float64(interval)
	card.Due = now.Add(time.Duration(interval) * day)
	return card
}

// ensureAfter pushes a graduated card's interval past goodIvl.
func ensureAfter(params Parameters, card domain.CardState, goodIvl int, now time.Time) domain.CardState {
	if int(card.ScheduledDays) > goodIvl {
		return card
	}
	ivl := clampInterval(goodIvl+1, params.MaxIntervalDays)
	card.ScheduledDays = float64(ivl)
	card.Due = now.Add(time.Duration(ivl) * day)
	return card
}

func toStep(card domain.CardState, state domain.State, step int, due time.Time) domain.CardState {
	card.State = state
	card.Step = step
	card.ScheduledDays = 0
	card.Due = due
	return card
}

// orderIntervals enforces Hard <= Good < Easy.
func orderIntervals(hard, good, easy int) (int, int, int) {
	if hard > good {
		hard = good
	}
	if good <= hard {
		good = hard + 1
	}
	if easy <= good {
		easy = good + 1
	}
	return hard, good, easy
}

func stepsOrDefault(steps []time.Duration, def time.Duration) []time.Duration {
	if len(steps) == 0 {
		return []time.Duration{def}
	}
	return steps
}

// clampInterval constrains an interval to [1, maxDays].
func clampInterval(interval, maxDays int) int {
	if interval < 1 {
		return 1
	}
	if interval > maxDays {
		return maxDays
	}
	return interval
}
