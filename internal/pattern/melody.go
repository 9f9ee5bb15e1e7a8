package pattern

import (
	"github.com/Ashmit-Ag/mugen-transformer/internal/theory"
)

// Velocity bands for the melodic voices.
const (
	melodyVelMin     = 100
	melodyVelMax     = 120
	secondaryVelMin  = 90
	secondaryVelMax  = 110
	backgroundVelMin = 80
	backgroundVelMax = 100
)

// Melody generates a lead melody over the scale rooted at root. Complexity
// selects the available note durations; rhythmVariation controls rest
// frequency and duration jitter. The result spans exactly numBars bars, the
// final note trimmed to fit.
func (g *Generator) Melody(root int, intervals []int, numBars int, complexity, rhythmVariation float64) Pattern {
	complexity = clampUnit(complexity)
	rhythmVariation = clampUnit(rhythmVariation)

	scale := theory.ScaleNotes(root, intervals)
	if len(scale) == 0 {
		return nil
	}

	// Widen the palette with near-octave neighbors for variety.
	available := make([]int, 0, len(scale)*3)
	for _, offset := range []int{-6, 0, 6} {
		for _, n := range scale {
			if v := n + offset; v >= 0 && v <= 127 {
				available = append(available, v)
			}
		}
	}

	tpb := g.Timing.TicksPerBeat
	ticksPerBar := g.Timing.TicksPerBar()

	var durations []int
	var weights []float64
	switch {
	case complexity < 0.3:
		durations = []int{tpb, tpb * 2}
		weights = []float64{0.7, 0.3}
	case complexity < 0.7:
		durations = []int{tpb / 2, tpb, tpb * 2}
		weights = []float64{0.3, 0.5, 0.2}
	default:
		durations = []int{tpb / 4, tpb / 2, tpb, tpb * 3 / 2}
		weights = []float64{0.2, 0.4, 0.3, 0.1}
	}

	var melody Pattern
	totalTicks := numBars * ticksPerBar

	for current := 0; current < totalTicks; {
		if g.rng.Float64() < 0.2*rhythmVariation {
			duration := g.weightedDuration(durations, weights)
			melody = append(melody, Note{Pitch: Rest, Start: current, Duration: duration})
			current += duration
			continue
		}

		note := pick(g.rng, available)
		duration := g.weightedDuration(durations, weights)
		if g.rng.Float64() < rhythmVariation {
			duration = int(float64(duration) * pick(g.rng, []float64{0.5, 0.75, 1.0, 1.5}))
		}
		if floor := tpb / 4; duration < floor {
			duration = floor
		}

		// Emphasize downbeats.
		var velocity int
		if current%ticksPerBar < tpb/10 {
			velocity = g.velocityBetween(melodyVelMin+10, melodyVelMax)
		} else {
			velocity = g.velocityBetween(melodyVelMin, melodyVelMax-10)
		}

		melody = append(melody, Note{Pitch: note, Velocity: velocity, Start: current, Duration: duration})
		current += duration
	}

	return trimToSpan(melody, totalTicks)
}

// SecondaryMelody generates a melody with capped complexity and reduced
// rhythm variation, suitable for a supporting voice.
func (g *Generator) SecondaryMelody(root int, intervals []int, numBars int, complexity float64) Pattern {
	if complexity > 0.5 {
		complexity = 0.5
	}
	return g.Melody(root, intervals, numBars, complexity, 0.3)
}

// BackgroundMelody generates a sparse pad-like line a tritone above the
// scale, with long durations and soft velocities.
func (g *Generator) BackgroundMelody(root int, intervals []int, numBars int, complexity float64) Pattern {
	complexity = clampUnit(complexity)

	scale := theory.ScaleNotes(root, intervals)
	if len(scale) == 0 {
		return nil
	}
	available := make([]int, 0, len(scale))
	for _, n := range scale {
		if v := n + 6; v >= 0 && v <= 127 {
			available = append(available, v)
		}
	}

	tpb := g.Timing.TicksPerBeat
	var durations []int
	var weights []float64
	if complexity < 0.3 {
		durations = []int{tpb * 2, tpb * 4}
		weights = []float64{0.7, 0.3}
	} else {
		durations = []int{tpb, tpb * 2}
		weights = []float64{0.4, 0.6}
	}

	var melody Pattern
	totalTicks := numBars * g.Timing.TicksPerBar()

	for current := 0; current < totalTicks; {
		duration := g.weightedDuration(durations, weights)
		if g.rng.Float64() < 0.3 {
			melody = append(melody, Note{Pitch: Rest, Start: current, Duration: duration})
		} else {
			melody = append(melody, Note{
				Pitch:    pick(g.rng, available),
				Velocity: g.velocityBetween(backgroundVelMin, backgroundVelMax),
				Start:    current,
				Duration: duration,
			})
		}
		current += duration
	}

	return trimToSpan(melody, totalTicks)
}

// CatchyMelody generates a hook built on a fixed two-bar rhythmic cell.
// Strong beats land on the root, third or fifth with longer durations and
// accents; weak beats roam the scale.
func (g *Generator) CatchyMelody(root int, intervals []int, numBars int, complexity float64) Pattern {
	complexity = clampUnit(complexity)

	scale := theory.ScaleNotes(root, intervals)
	if len(scale) == 0 {
		return nil
	}
	available := make([]int, 0, len(scale)*2)
	available = append(available, scale...)
	for _, n := range scale {
		if v := n + 12; v >= 0 && v <= 127 {
			available = append(available, v)
		}
	}

	tpb := g.Timing.TicksPerBeat
	ticksPerBar := g.Timing.TicksPerBar()
	patternBeats := g.Timing.BeatsPerBar * 2

	// The rhythmic cell is a slot grid on an eighth-note pulse.
	var cell []bool
	switch {
	case complexity < 0.4:
		for i := 0; i < patternBeats; i++ {
			cell = append(cell, i%2 == 0 || g.rng.Float64() < 0.3)
		}
	case complexity < 0.7:
		for i := 0; i < patternBeats*2; i++ {
			cell = append(cell, i%3 == 0 || g.rng.Float64() < 0.4)
		}
	default:
		for i := 0; i < patternBeats*2; i++ {
			cell = append(cell, i%4 == 0 || i%7 == 0 || g.rng.Float64() < 0.3)
		}
	}

	var melody Pattern
	totalTicks := numBars * ticksPerBar

	for bar := 0; bar < numBars; bar++ {
		barStart := bar * ticksPerBar
		for pos, hasNote := range cell {
			if !hasNote {
				continue
			}
			start := barStart + pos*tpb/2
			if start >= totalTicks {
				continue
			}

			var note int
			if pos%4 == 0 {
				degree := pick(g.rng, []int{0, 2, 4})
				note = scale[degree%len(scale)]
			} else {
				note = pick(g.rng, available)
			}

			var duration int
			if pos%4 == 0 {
				duration = tpb
				if g.rng.Float64() >= 0.7 {
					duration = tpb / 2
				}
			} else {
				duration = tpb / 2
				if g.rng.Float64() >= 0.7 {
					duration = tpb / 4
				}
			}
			if start+duration > totalTicks {
				duration = totalTicks - start
			}
			if duration <= 0 {
				continue
			}

			var velocity int
			if pos%4 == 0 {
				velocity = g.velocityBetween(secondaryVelMin+10, secondaryVelMax)
			} else {
				velocity = g.velocityBetween(secondaryVelMin, secondaryVelMax-10)
			}

			melody = append(melody, Note{Pitch: note, Velocity: velocity, Start: start, Duration: duration})
		}
	}

	return melody
}

// trimToSpan drops or shortens trailing notes so the pattern ends exactly at
// totalTicks.
func trimToSpan(p Pattern, totalTicks int) Pattern {
	out := make(Pattern, 0, len(p))
	for _, n := range p {
		if n.Start+n.Duration <= totalTicks {
			out = append(out, n)
			continue
		}
		if d := totalTicks - n.Start; d > 0 {
			n.Duration = d
			out = append(out, n)
		}
	}
	return out
}
