// Package rng is the CHIP-8's pluggable random byte source, used only by
// the Cxkk instruction. The source is swappable and seedable so tests can
// be deterministic.
package rng

import "math/rand"

// Source produces random bytes for Cxkk.
type Source interface {
	Uint8() byte
}

// MathRand wraps a math/rand.Rand as a Source.
type MathRand struct {
	r *rand.Rand
}

// NewMathRand returns a MathRand seeded with seed. Two MathRand sources
// constructed with the same seed produce the same byte sequence.
func NewMathRand(seed int64) *MathRand {
	return &MathRand{r: rand.New(rand.NewSource(seed))}
}

// Uint8 returns the next random byte.
func (m *MathRand) Uint8() byte {
	return byte(m.r.Intn(256))
}
