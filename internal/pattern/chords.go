package pattern

import (
	"github.com/Ashmit-Ag/mugen-transformer/internal/theory"
)

// ChordChange describes one harmonic step of a progression: the chord's
// root, its raw (unvoiced) notes, and the span it governs. Bass generators
// consume changes; the voiced notes live in the accompanying Pattern.
type ChordChange struct {
	Root     int
	Notes    []int
	Start    int
	Duration int
}

// Progression templates as scale-degree indices, one chord per bar.
var (
	majorProgressions = [][]int{
		{0, 3, 4, 0}, // I-IV-V-I
		{0, 5, 3, 4}, // I-vi-IV-V
		{0, 3, 5, 4}, // I-IV-vi-V
		{0, 5, 0, 4}, // I-vi-I-V
	}
	minorProgressions = [][]int{
		{0, 3, 4, 0}, // i-iv-v-i
		{0, 5, 2, 6}, // i-VI-III-VII
		{0, 5, 3, 4}, // i-VI-iv-v
		{0, 2, 5, 0}, // i-III-VI-i
	}

	majorDegreeTriads = [][]int{
		theory.MajorTriad, theory.MinorTriad, theory.MinorTriad, theory.MajorTriad,
		theory.MajorTriad, theory.MinorTriad, theory.DiminishedTriad,
	}
	minorDegreeTriads = [][]int{
		theory.MinorTriad, theory.DiminishedTriad, theory.MajorTriad, theory.MinorTriad,
		theory.MinorTriad, theory.MajorTriad, theory.MajorTriad,
	}
)

// ChordProgression generates a chord progression over numBars bars. It
// returns the voiced accompaniment pattern plus one ChordChange per bar for
// downstream generators. Each bar is rendered either as a block chord or as
// an eighth-note arpeggio, with voices folded into the C3..C5 range.
func (g *Generator) ChordProgression(root int, intervals []int, numBars int) (Pattern, []ChordChange) {
	scale := theory.ScaleNotes(root, intervals)
	if len(scale) == 0 {
		return nil, nil
	}

	var template [][]int
	var triads [][]int
	if theory.IsMajorMode(intervals) {
		template = majorProgressions
		triads = majorDegreeTriads
	} else {
		template = minorProgressions
		triads = minorDegreeTriads
	}
	degrees := pick(g.rng, template)

	tpb := g.Timing.TicksPerBeat
	ticksPerBar := g.Timing.TicksPerBar()

	var voiced Pattern
	changes := make([]ChordChange, 0, numBars)

	for bar := 0; bar < numBars; bar++ {
		degree := degrees[bar%len(degrees)]
		chordRoot := scale[degree%len(scale)]
		chordNotes := theory.ChordNotes(chordRoot, triads[degree%len(triads)])

		barStart := bar * ticksPerBar
		changes = append(changes, ChordChange{
			Root:     chordRoot,
			Notes:    chordNotes,
			Start:    barStart,
			Duration: ticksPerBar,
		})

		if g.rng.Float64() < 0.7 {
			// Block chord for the whole bar.
			for _, note := range chordNotes {
				voiced = append(voiced, Note{
					Pitch:    foldIntoRange(note, 48, 72),
					Velocity: g.velocityBetween(100, 125),
					Start:    barStart,
					Duration: ticksPerBar,
				})
			}
			continue
		}

		// Eighth-note arpeggio with occasional gaps.
		step := tpb / 2
		for beat := 0; beat < g.Timing.BeatsPerBar; beat++ {
			for sub := 0; sub < 2; sub++ {
				if g.rng.Float64() >= 0.8 {
					continue
				}
				voiced = append(voiced, Note{
					Pitch:    foldIntoRange(pick(g.rng, chordNotes), 48, 72),
					Velocity: g.velocityBetween(100, 120),
					Start:    barStart + beat*tpb + sub*step,
					Duration: int(float64(step) * (0.8 + g.rng.Float64()*0.2)),
				})
			}
		}
	}

	return voiced, changes
}

// foldIntoRange moves a note by octaves until it lies in [lo,hi].
func foldIntoRange(note, lo, hi int) int {
	for note < lo {
		note += 12
	}
	for note > hi {
		note -= 12
	}
	return note
}
