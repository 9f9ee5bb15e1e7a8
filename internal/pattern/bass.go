package pattern

import (
	"github.com/Ashmit-Ag/mugen-transformer/internal/theory"
)

// bassRoot derives the bass register root from a chord change: the lowest
// chord note dropped below middle C by whole octaves.
func bassRoot(c ChordChange) int {
	root := c.Root
	if len(c.Notes) > 0 {
		root = c.Notes[0]
		for _, n := range c.Notes[1:] {
			if n < root {
				root = n
			}
		}
	}
	for root >= 60 {
		root -= 12
	}
	for root < 0 {
		root += 12
	}
	return root
}

// BassLine generates a bass line following a chord progression. Complexity
// selects the figure: roots on every beat, roots with occasional fifths, or
// an eighth-note walking line over chord and scale tones.
func (g *Generator) BassLine(root int, intervals []int, changes []ChordChange, complexity float64) Pattern {
	complexity = clampUnit(complexity)

	scale := theory.ScaleNotes(root, intervals)
	bassScale := make([]int, 0, len(scale))
	for _, n := range scale {
		bassScale = append(bassScale, foldIntoRange(n, 24, 59))
	}

	tpb := g.Timing.TicksPerBeat
	var bass Pattern

	for _, change := range changes {
		chordRoot := bassRoot(change)
		end := change.Start + change.Duration

		switch {
		case complexity < 0.3:
			for beat := 0; beat < g.Timing.BeatsPerBar; beat++ {
				start := change.Start + beat*tpb
				if start >= end {
					continue
				}
				bass = append(bass, Note{
					Pitch:    chordRoot,
					Velocity: g.beatVelocity(beat == 0),
					Start:    start,
					Duration: minInt(tpb, end-start),
				})
			}

		case complexity < 0.7:
			for beat := 0; beat < g.Timing.BeatsPerBar; beat++ {
				start := change.Start + beat*tpb
				if start >= end {
					continue
				}
				note := chordRoot
				if beat != 0 && g.rng.Float64() >= 0.7 {
					note = belowOctaveTone(chordRoot, 7)
				}
				bass = append(bass, Note{
					Pitch:    note,
					Velocity: g.beatVelocity(beat == 0),
					Start:    start,
					Duration: minInt(tpb, end-start),
				})
			}

		default:
			// Walking bass on eighth notes.
			for step := 0; step < g.Timing.BeatsPerBar*2; step++ {
				start := change.Start + step*tpb/2
				if start >= end {
					continue
				}
				note := chordRoot
				if step%2 != 0 {
					if g.rng.Float64() < 0.7 {
						note = belowOctaveTone(chordRoot, pick(g.rng, []int{3, 4, 7}))
					} else {
						note = pick(g.rng, bassScale)
					}
				}
				var velocity int
				if step%2 == 0 {
					velocity = g.velocityBetween(80, 100)
				} else {
					velocity = g.velocityBetween(70, 90)
				}
				bass = append(bass, Note{
					Pitch:    note,
					Velocity: velocity,
					Start:    start,
					Duration: minInt(tpb/2, end-start),
				})
			}
		}
	}

	return bass
}

// Sixteenth-note groove grids for the funky bass, ordered by busyness.
var funkyGrooves = [][]int{
	{1, 0, 0, 0, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 0},
	{1, 0, 0, 1, 0, 0, 1, 0, 0, 0, 1, 0, 0, 1, 0, 0},
	{1, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 1, 0, 0},
	{1, 0, 0, 0, 1, 0, 0, 0, 1, 1, 0, 0, 1, 0, 0, 0},
}

// FunkyBass generates a syncopated sixteenth-note bass line over a chord
// progression. Complexity widens the set of grooves the line can draw from.
func (g *Generator) FunkyBass(root int, intervals []int, changes []ChordChange, complexity float64) Pattern {
	complexity = clampUnit(complexity)

	scale := theory.ScaleNotes(root, intervals)
	bassScale := make([]int, 0, len(scale))
	for _, n := range scale {
		bassScale = append(bassScale, foldIntoRange(n, 24, 59))
	}

	var groove []int
	switch {
	case complexity < 0.5:
		groove = funkyGrooves[0]
	case complexity < 0.7:
		groove = pick(g.rng, funkyGrooves[:2])
	default:
		groove = pick(g.rng, funkyGrooves)
	}

	sixteenth := g.Timing.TicksPerBeat / 4
	var bass Pattern

	for _, change := range changes {
		chordRoot := bassRoot(change)
		end := change.Start + change.Duration
		steps := change.Duration / sixteenth

		for i := 0; i < steps; i++ {
			slot := i % len(groove)
			if groove[slot] == 0 {
				continue
			}
			start := change.Start + i*sixteenth

			note := chordRoot
			if i != 0 && g.rng.Float64() >= 0.6 {
				if g.rng.Float64() < 0.7 {
					note = belowOctaveTone(chordRoot, pick(g.rng, []int{3, 4, 7}))
				} else {
					note = pick(g.rng, bassScale)
				}
			}

			duration := sixteenth
			if g.rng.Float64() < 0.2 {
				duration = g.Timing.TicksPerBeat / 2
			}
			duration = minInt(duration, end-start)
			if duration <= 0 {
				continue
			}

			var velocity int
			switch {
			case i%4 == 0:
				velocity = g.velocityBetween(90, 110)
			case slot == 4 || slot == 12:
				// Syncopation accents.
				velocity = g.velocityBetween(85, 105)
			default:
				velocity = g.velocityBetween(75, 95)
			}

			bass = append(bass, Note{Pitch: note, Velocity: velocity, Start: start, Duration: duration})
		}
	}

	return bass
}

// beatVelocity returns an accented velocity on downbeats.
func (g *Generator) beatVelocity(downbeat bool) int {
	if downbeat {
		return g.velocityBetween(90, 110)
	}
	return g.velocityBetween(70, 90)
}

// belowOctaveTone adds an interval to the root, folding back an octave when
// the result overshoots a fifth above the root.
func belowOctaveTone(root, interval int) int {
	note := (root+interval)%12 + (root/12)*12
	if note > root+7 {
		note -= 12
	}
	if note < 0 {
		note += 12
	}
	return note
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
