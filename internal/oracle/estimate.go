package oracle

import (
	"math"
	"math/rand/v2"
	"time"
)

// Output bounds, in percent and as a fraction.
const (
	minProb     = 1.0
	maxProb     = 99.0
	minFraction = 0.01
	maxFraction = 0.99
	neutralProb = 50.0
)

// Random is a source of uniform values in [0, 1).
type Random interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// Synthesizer turns quotes into noised payloads.
type Synthesizer struct {
	noise float64
	rng   Random
}

// NewSynthesizer creates a Synthesizer with the given noise fraction. A nil
// rng uses the process-wide math/rand/v2 source, which is safe for
// concurrent cycles. Non-finite or negative noise is treated as zero.
func NewSynthesizer(noise float64, rng Random) *Synthesizer {
	if rng == nil {
		rng = globalRand{}
	}
	if math.IsNaN(noise) || math.IsInf(noise, 0) || noise < 0 {
		noise = 0
	}
	return &Synthesizer{noise: noise, rng: rng}
}

// Estimate produces exactly one payload for q. A nil quote, or one without a
// usable up price, yields a neutral estimate around 50.
func (s *Synthesizer) Estimate(q *Quote, now time.Time) (Payload, Basis) {
	u := s.rng.Float64() - 0.5

	var probUp float64
	basis := BasisNeutral
	if p, ok := q.upPrice(); ok {
		probUp = clamp(p+u*s.noise, minFraction, maxFraction) * 100
		basis = BasisMarket
	} else {
		probUp = neutralProb + u*(s.noise*100)
	}

	probUp = clamp(probUp, minProb, maxProb)
	return Payload{
		ProbUp:   probUp,
		ProbDown: 100 - probUp,
		TS:       now.UnixMilli(),
	}, basis
}

// clamp bounds x to [lo, hi]. NaN maps to lo.
func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return lo
	}
	return max(lo, min(hi, x))
}
