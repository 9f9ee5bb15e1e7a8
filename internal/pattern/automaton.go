package pattern

import "math/rand"

// Voice rows of the drum automaton grid.
const (
	RowKick = iota
	RowSnare
	RowClosedHat
	RowOpenHat
	RowTom

	AutomatonRows
)

// AutomatonGrid is a boolean cell grid of AutomatonRows voices by N
// sixteenth-note steps. Evolution rules are pure transforms: they read one
// grid and produce the next generation.
type AutomatonGrid [][]bool

// NewAutomatonGrid returns a seeded grid spanning the given number of bars:
// a backbeat voice on every fourth step and closed hats on every other step.
func NewAutomatonGrid(bars, beatsPerBar int) AutomatonGrid {
	steps := bars * beatsPerBar * 4
	g := make(AutomatonGrid, AutomatonRows)
	for row := range g {
		g[row] = make([]bool, steps)
	}
	for i := 0; i < steps; i++ {
		if i%4 == 0 {
			g[RowSnare][i] = true
		}
		if i%2 == 0 {
			g[RowClosedHat][i] = true
		}
	}
	return g
}

// Steps returns the number of grid columns.
func (g AutomatonGrid) Steps() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Clone returns a deep copy of the grid.
func (g AutomatonGrid) Clone() AutomatonGrid {
	out := make(AutomatonGrid, len(g))
	for row := range g {
		out[row] = make([]bool, len(g[row]))
		copy(out[row], g[row])
	}
	return out
}

// EvolveSimple runs one generation of the light groove rules: thin out
// off-step hats, sprinkle open hats mid-beat, add ghost hits before the
// backbeat.
func EvolveSimple(g AutomatonGrid, rng *rand.Rand) AutomatonGrid {
	next := g.Clone()
	for i := 0; i < g.Steps(); i++ {
		if i%2 == 1 && rng.Float64() < 0.1 {
			next[RowClosedHat][i] = false
		}
		if i%4 == 2 && rng.Float64() < 0.2 {
			next[RowOpenHat][i] = true
		}
		if i%4 == 3 && rng.Float64() < 0.15 {
			next[RowSnare][i] = true
		}
	}
	return next
}

// EvolveComplex runs one generation of the heavy rules: downbeat and
// syncopated kicks, ghost snares, hat rolls, frequent open hats, and toms
// when phonk is set.
func EvolveComplex(g AutomatonGrid, rng *rand.Rand, phonk bool) AutomatonGrid {
	next := g.Clone()
	for i := 0; i < g.Steps(); i++ {
		if i%4 == 0 || (i%4 == 3 && rng.Float64() < 0.3) {
			next[RowKick][i] = true
		}
		if i%4 == 3 && rng.Float64() < 0.25 {
			next[RowSnare][i] = true
		}
		if rng.Float64() < 0.1 {
			next[RowClosedHat][i] = true
		}
		if i%4 == 2 && rng.Float64() < 0.4 {
			next[RowOpenHat][i] = true
		}
		if phonk && rng.Float64() < 0.15 {
			next[RowTom][i] = true
		}
	}
	return next
}

// AutomatonDrums renders an evolved grid as a drum pattern: each live cell
// becomes a short hit on the kit voice for its row, stepping on the
// sixteenth-note grid.
func (g *Generator) AutomatonDrums(grid AutomatonGrid) Pattern {
	voices := []uint8{g.Kit.Kick, g.Kit.Snare, g.Kit.ClosedHat, g.Kit.OpenHat, g.Kit.MidTom}
	step := g.Timing.TicksPerBeat / 4

	var drums Pattern
	for row, voice := range voices {
		if row >= len(grid) {
			break
		}
		for i, live := range grid[row] {
			if !live {
				continue
			}
			drums = append(drums, Note{
				Pitch:    int(voice),
				Velocity: g.velocityBetween(80, 120),
				Start:    i * step,
				Duration: 10,
			})
		}
	}
	sortByStart(drums)
	return drums
}
