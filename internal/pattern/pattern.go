// Package pattern contains the note-pattern generators: melodies, bass
// lines, chord progressions, drum grooves and fills. All generators run on
// an injected random source and return value-type patterns that are never
// mutated afterwards.
package pattern

import (
	"math/rand"

	"github.com/Ashmit-Ag/mugen-transformer/internal/config"
)

// Rest marks a gap in a pattern. Rests occupy time but produce no sound and
// are dropped at assembly.
const Rest = -1

// Note is a single pattern event on the tick grid. A Pitch of Rest means
// silence for the given duration.
type Note struct {
	Pitch    int
	Velocity int
	Start    int
	Duration int
}

// IsRest reports whether the note is a silent placeholder.
func (n Note) IsRest() bool { return n.Pitch == Rest }

// Pattern is an ordered collection of notes local to tick 0.
type Pattern []Note

// Ticks returns the total span of the pattern: the largest Start+Duration.
func (p Pattern) Ticks() int {
	var end int
	for _, n := range p {
		if t := n.Start + n.Duration; t > end {
			end = t
		}
	}
	return end
}

// Repeat concatenates the pattern with itself, offsetting each copy by the
// pattern's span.
func (p Pattern) Repeat(times int) Pattern {
	if times <= 1 {
		return p
	}
	span := p.Ticks()
	out := make(Pattern, 0, len(p)*times)
	for i := 0; i < times; i++ {
		for _, n := range p {
			n.Start += i * span
			out = append(out, n)
		}
	}
	return out
}

// Transpose shifts every sounding note by the given number of semitones.
// Notes pushed outside the MIDI range are dropped.
func (p Pattern) Transpose(semitones int) Pattern {
	out := make(Pattern, 0, len(p))
	for _, n := range p {
		if !n.IsRest() {
			n.Pitch += semitones
			if n.Pitch < 0 || n.Pitch > 127 {
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

// ScaleVelocity multiplies every sounding note's velocity by factor,
// clamping the result to [1,127].
func (p Pattern) ScaleVelocity(factor float64) Pattern {
	out := make(Pattern, len(p))
	for i, n := range p {
		if !n.IsRest() {
			v := int(float64(n.Velocity) * factor)
			if v < 1 {
				v = 1
			}
			if v > 127 {
				v = 127
			}
			n.Velocity = v
		}
		out[i] = n
	}
	return out
}

// AveragePitch returns the mean pitch of the sounding notes, or 0 for a
// pattern with no sounding notes.
func (p Pattern) AveragePitch() float64 {
	var sum, count int
	for _, n := range p {
		if !n.IsRest() {
			sum += n.Pitch
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

// Generator produces patterns on a fixed tick grid. The zero value is not
// usable; construct with NewGenerator.
type Generator struct {
	Timing config.Timing
	Kit    config.DrumKit

	rng *rand.Rand
}

// NewGenerator returns a Generator drawing randomness from rng.
func NewGenerator(tm config.Timing, kit config.DrumKit, rng *rand.Rand) *Generator {
	return &Generator{Timing: tm, Kit: kit, rng: rng}
}

// clampUnit clamps a probability or complexity value to [0,1].
func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// velocityBetween returns a random velocity in [lo,hi].
func (g *Generator) velocityBetween(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

// weightedDuration picks a duration from parallel value/weight slices.
func (g *Generator) weightedDuration(durations []int, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	r := g.rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return durations[i]
		}
	}
	return durations[len(durations)-1]
}

// pick returns a random element of a non-empty slice.
func pick[T any](rng *rand.Rand, s []T) T {
	return s[rng.Intn(len(s))]
}
