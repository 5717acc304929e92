// Package fsrs implements the FSRS-5 memory model and the card scheduler built on it.
// Formulas follow the go-fsrs reference.
package fsrs

import (
	"fmt"
	"math"

	"github.com/heartmarshall/studytrack/internal/domain"
)

// MinStability is the smallest stability a card can hold, in days.
const MinStability = 0.1

// manual is the model's fifth rating, used when a card is rescheduled by hand.
// It is never user-selectable and every scheduling entry point rejects it.
const manual domain.Grade = 0

// Weights are the 19 trained FSRS-5 model weights, w0 through w18.
type Weights [19]float64

// DefaultWeights are the published FSRS-5 defaults.
var DefaultWeights = Weights{
	0.4072,  // w0..w3: first-review stability per grade
	1.1829,  //
	3.1262,  //
	15.4722, //
	7.2102,  // w4, w5: first-review difficulty
	0.5316,  //
	1.0651,  // w6: difficulty step per grade
	0.0046,  // w7: pull toward the Easy baseline
	1.5418,  // w8..w10: growth on recall
	0.1594,  //
	1.01,    //
	2.1791,  // w11..w14: stability after a lapse
	0.0292,  //
	0.2788,  //
	0.2229,  //
	0.2604,  // w15: Hard factor
	3.3928,  // w16: Easy factor
	0.2223,  // w17, w18: same-day reviews and the lapse ceiling
	0.6744,  //
}

// Validate rejects weights that would produce NaN or non-positive stability.
func (w Weights) Validate() error {
	for i, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("weight w[%d] is invalid: %v", i, v)
		}
	}
	if w[0] <= 0 || w[1] <= 0 || w[2] <= 0 || w[3] <= 0 {
		return fmt.Errorf("initial stability weights w[0]-w[3] must be positive")
	}
	return nil
}

// Retrievability is the chance a card with the given stability is still
// recalled elapsedDays after its last review.
//
//	R(t, S) = (1 + t/(9*S))^(-1)
func Retrievability(elapsedDays, stability float64) float64 {
	if stability <= 0 {
		return 0
	}
	return math.Pow(1+elapsedDays/(9*stability), -1)
}

// NextInterval is the number of whole days until retrievability falls to
// desiredRetention. It is at least one day.
//
//	I(S, r) = round(9 * S * (1/r - 1))
func NextInterval(stability, desiredRetention float64) int {
	if desiredRetention <= 0 || desiredRetention >= 1 {
		return 1
	}
	interval := 9 * stability * (1/desiredRetention - 1)
	return max(1, int(math.Round(interval)))
}

// InitialStability is the stability a New card gets on its first grade.
//
//	S0(G) = w[G-1]
func InitialStability(w Weights, grade domain.Grade) float64 {
	idx := int(grade) - 1
	if idx < 0 || idx > 3 {
		idx = 2
	}
	return math.Max(MinStability, w[idx])
}

// InitialDifficulty is the difficulty a New card gets on its first grade,
// within [domain.MinDifficulty, domain.MaxDifficulty].
//
//	D0(G) = w4 - exp(w5 * (G - 1)) + 1
func InitialDifficulty(w Weights, grade domain.Grade) float64 {
	d := w[4] - math.Exp(w[5]*float64(grade-1)) + 1
	return clampDifficulty(d)
}

// NextDifficulty moves d by the grade and then partly back toward the
// first-review difficulty of an Easy card.
//
//	D' = w7 * D0(Easy) + (1 - w7) * (D - w6 * (G - 3))
func NextDifficulty(w Weights, d float64, grade domain.Grade) float64 {
	d0Easy := InitialDifficulty(w, domain.GradeEasy)
	newD := w[7]*d0Easy + (1-w[7])*(d-w[6]*(float64(grade)-3))
	return clampDifficulty(newD)
}

// StabilityAfterRecall is the stability of a Review card graded Hard, Good
// or Easy. Hard scales the growth by w15 and Easy by w16.
//
//	S' = S * (e^w8 * (11-D) * S^(-w9) * (e^(w10*(1-R)) - 1) * factor + 1)
func StabilityAfterRecall(w Weights, s, d, r float64, grade domain.Grade) float64 {
	factor := 1.0
	switch grade {
	case domain.GradeHard:
		factor = w[15]
	case domain.GradeEasy:
		factor = w[16]
	}

	growth := math.Exp(w[8]) *
		(11 - d) *
		math.Pow(s, -w[9]) *
		(math.Exp(w[10]*(1-r)) - 1) *
		factor

	return math.Max(MinStability, s*(growth+1))
}

// StabilityAfterForgetting is the stability of a Review card graded Again.
//
//	S' = w11 * D^(-w12) * ((S+1)^w13 - 1) * e^(w14*(1-R))
func StabilityAfterForgetting(w Weights, s, d, r float64) float64 {
	newS := w[11] *
		math.Pow(d, -w[12]) *
		(math.Pow(s+1, w[13]) - 1) *
		math.Exp(w[14]*(1-r))
	return math.Max(MinStability, newS)
}

// NextSMin is the ceiling on stability after a lapse, always below s.
//
//	S / exp(w17 * w18)
func NextSMin(w Weights, s float64) float64 {
	return s / math.Exp(w[17]*w[18])
}

// StabilityAfterForgettingCapped is StabilityAfterForgetting limited by NextSMin,
// so a lapse never leaves a card more stable than before.
func StabilityAfterForgettingCapped(w Weights, s, d, r float64) float64 {
	return math.Max(MinStability, math.Min(NextSMin(w, s), StabilityAfterForgetting(w, s, d, r)))
}

// ShortTermStability is the stability of a Learning or Relearning card
// after a step review.
//
//	S' = S * e^(w17 * (G - 3 + w18))
func ShortTermStability(w Weights, s float64, grade domain.Grade) float64 {
	newS := s * math.Exp(w[17]*(float64(grade)-3+w[18]))
	return math.Max(MinStability, newS)
}

func clampDifficulty(d float64) float64 {
	return math.Max(domain.MinDifficulty, math.Min(domain.MaxDifficulty, d))
}
