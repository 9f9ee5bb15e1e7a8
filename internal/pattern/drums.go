package pattern

import "sort"

// Hi-hat slot states in the drum grid.
const (
	hatNone = iota
	hatClosed
	hatOpen
	hatPedal
)

// Percussion slot states in the drum grid.
const (
	percNone = iota
	percTom
	percCrash
	percOther
)

// Drums generates a drum groove on channel-10 style note numbers from the
// configured kit. Complexity picks the grid resolution (quarter, eighth or
// sixteenth notes) and how busy each layer gets; the phonk flag adds double
// kicks, beat-three kicks and a signature open-hat placement.
func (g *Generator) Drums(numBars int, complexity float64, phonk bool) Pattern {
	complexity = clampUnit(complexity)

	tpb := g.Timing.TicksPerBeat
	totalTicks := numBars * g.Timing.TicksPerBar()

	var resolution int
	switch {
	case complexity < 0.3:
		resolution = tpb
	case complexity < 0.6:
		resolution = tpb / 2
	default:
		resolution = tpb / 4
	}
	positions := totalTicks / resolution

	kicks := g.kickGrid(positions, complexity, phonk)
	snares := g.snareGrid(positions, complexity, phonk)
	hats := g.hatGrid(positions, complexity, phonk)
	var percussion []int
	if complexity > 0.6 {
		percussion = g.percussionGrid(positions, complexity)
	} else {
		percussion = make([]int, positions)
	}

	hitDuration := minInt(resolution, tpb/4)
	var drums Pattern

	for i, hit := range kicks {
		if !hit {
			continue
		}
		drums = append(drums, Note{
			Pitch:    int(g.Kit.Kick),
			Velocity: g.velocityBetween(100, 127),
			Start:    i * resolution,
			Duration: hitDuration,
		})
	}

	for i, hit := range snares {
		if !hit {
			continue
		}
		note := int(g.Kit.Snare)
		// Swap in claps and rimshots for variation.
		if g.rng.Float64() < 0.2 {
			note = int(g.Kit.Clap)
			if g.rng.Float64() >= 0.5 {
				note = int(g.Kit.Rim)
			}
		}
		drums = append(drums, Note{
			Pitch:    note,
			Velocity: g.velocityBetween(90, 115),
			Start:    i * resolution,
			Duration: hitDuration,
		})
	}

	for i, kind := range hats {
		if kind == hatNone {
			continue
		}
		var note, velocity int
		switch kind {
		case hatClosed:
			note = int(g.Kit.ClosedHat)
			velocity = g.velocityBetween(70, 100)
		case hatOpen:
			note = int(g.Kit.OpenHat)
			velocity = g.velocityBetween(80, 110)
		default:
			note = int(g.Kit.PedalHat)
			velocity = g.velocityBetween(60, 90)
		}
		drums = append(drums, Note{Pitch: note, Velocity: velocity, Start: i * resolution, Duration: hitDuration})
	}

	for i, kind := range percussion {
		if kind == percNone {
			continue
		}
		var note, velocity int
		switch kind {
		case percTom:
			note = int(pick(g.rng, []uint8{g.Kit.LowTom, g.Kit.MidTom, g.Kit.HighTom}))
			velocity = g.velocityBetween(80, 110)
		case percCrash:
			note = int(g.Kit.Crash)
			velocity = g.velocityBetween(90, 120)
		default:
			note = int(g.Kit.Tambourine)
			velocity = g.velocityBetween(70, 100)
		}
		drums = append(drums, Note{Pitch: note, Velocity: velocity, Start: i * resolution, Duration: hitDuration})
	}

	sortByStart(drums)
	return drums
}

func (g *Generator) kickGrid(positions int, complexity float64, phonk bool) []bool {
	grid := make([]bool, positions)
	perBeat := 2
	if complexity > 0.5 {
		perBeat = 4
	}

	// Downbeat of every bar.
	for i := 0; i < positions; i += perBeat * 4 {
		grid[i] = true
	}

	if phonk {
		// Double kick on the one, plus a kick on beat three.
		for i := 0; i < positions; i += perBeat * 4 {
			if j := i + perBeat/2; j < positions {
				grid[j] = true
			}
		}
		for i := perBeat * 2; i < positions; i += perBeat * 4 {
			grid[i] = true
		}
	} else {
		for i := 0; i < positions; i += perBeat * 4 {
			if j := i + perBeat*2; j < positions {
				grid[j] = true
			}
		}
	}

	if complexity > 0.4 {
		for i := perBeat; i < positions; i += perBeat * 2 {
			if g.rng.Float64() < complexity*0.5 {
				grid[i] = true
			}
		}
	}
	if complexity > 0.7 {
		for i := 0; i < positions; i += perBeat {
			if !grid[i] && g.rng.Float64() < complexity*0.3 {
				grid[i] = true
			}
		}
	}
	return grid
}

func (g *Generator) snareGrid(positions int, complexity float64, phonk bool) []bool {
	grid := make([]bool, positions)
	perBeat := 2
	if complexity > 0.5 {
		perBeat = 4
	}

	// Backbeat on two and four.
	for i := perBeat; i < positions; i += perBeat * 2 {
		grid[i] = true
	}

	if phonk {
		for i := perBeat * 3; i < positions; i += perBeat * 4 {
			if g.rng.Float64() < 0.7 {
				grid[i] = true
			}
		}
	}

	if complexity > 0.6 {
		for i := 0; i < positions; i += perBeat / 2 {
			if !grid[i] && g.rng.Float64() < complexity*0.2 {
				grid[i] = true
			}
		}
	}
	return grid
}

func (g *Generator) hatGrid(positions int, complexity float64, phonk bool) []int {
	grid := make([]int, positions)
	perBeat := 2
	if complexity > 0.5 {
		perBeat = 4
	}

	for i := 0; i < positions; i += perBeat / 2 {
		grid[i] = hatClosed
	}

	if complexity > 0.4 {
		for i := perBeat - 1; i < positions; i += perBeat * 2 {
			if g.rng.Float64() < complexity*0.6 {
				grid[i] = hatOpen
			}
		}
	}
	if complexity > 0.7 {
		for i := perBeat / 2; i < positions; i += perBeat * 2 {
			if grid[i] == hatNone && g.rng.Float64() < complexity*0.4 {
				grid[i] = hatPedal
			}
		}
	}

	if phonk {
		for i := 0; i < positions; i += perBeat * 2 {
			if j := i + perBeat/2; j < positions {
				grid[j] = hatOpen
			}
		}
	}
	return grid
}

func (g *Generator) percussionGrid(positions int, complexity float64) []int {
	grid := make([]int, positions)
	perBeat := 2
	if complexity > 0.5 {
		perBeat = 4
	}

	for i := 0; i < positions; i += perBeat * 4 {
		if g.rng.Float64() < 0.3 {
			grid[i] = percCrash
		}
	}
	if complexity > 0.6 {
		for i := 0; i < positions; i += perBeat {
			if grid[i] == percNone && g.rng.Float64() < complexity*0.2 {
				grid[i] = percTom
			}
		}
	}
	if complexity > 0.8 {
		for i := 0; i < positions; i += perBeat / 2 {
			if grid[i] == percNone && g.rng.Float64() < complexity*0.15 {
				grid[i] = percOther
			}
		}
	}
	return grid
}

// ComplexDrums layers a fill over the last beat of every fourth bar on top
// of a regular groove.
func (g *Generator) ComplexDrums(numBars int, complexity float64, phonk bool) Pattern {
	drums := g.Drums(numBars, complexity, phonk)

	tpb := g.Timing.TicksPerBeat
	ticksPerBar := g.Timing.TicksPerBar()
	totalTicks := numBars * ticksPerBar

	for bar := 3; bar < numBars; bar += 4 {
		if bar*ticksPerBar >= totalTicks {
			break
		}
		fillStart := bar*ticksPerBar + (g.Timing.BeatsPerBar-1)*tpb
		for _, n := range g.DrumFill(tpb, complexity) {
			n.Start += fillStart
			drums = append(drums, n)
		}
	}

	sortByStart(drums)
	return drums
}

// DrumFill generates a sixteenth-note fill spanning the given number of
// ticks, densifying toward the end and landing on a crash.
func (g *Generator) DrumFill(ticks int, intensity float64) Pattern {
	intensity = clampUnit(intensity)

	resolution := g.Timing.TicksPerBeat / 4
	positions := ticks / resolution
	if positions == 0 {
		return nil
	}
	hitDuration := minInt(resolution, g.Timing.TicksPerBeat/4)

	var fill Pattern
	for i := 0; i < positions-1; i++ {
		ramp := float64(i) / float64(positions)
		if g.rng.Float64() >= 0.3+ramp*intensity*0.7 {
			continue
		}

		var note, velocity int
		switch {
		case i%4 == 0:
			note = int(pick(g.rng, []uint8{g.Kit.Kick, g.Kit.Snare}))
			velocity = g.velocityBetween(100, 127)
		case i%2 == 0:
			note = int(pick(g.rng, []uint8{g.Kit.ClosedHat, g.Kit.Snare}))
			velocity = g.velocityBetween(80, 110)
		default:
			note = int(pick(g.rng, []uint8{g.Kit.ClosedHat, g.Kit.LowTom, g.Kit.MidTom, g.Kit.HighTom}))
			velocity = g.velocityBetween(70, 100)
		}

		// Crescendo toward the downbeat.
		velocity = minInt(127, int(float64(velocity)*(0.7+ramp*0.3)))

		fill = append(fill, Note{Pitch: note, Velocity: velocity, Start: i * resolution, Duration: hitDuration})
	}

	// The landing crash is never subject to the density roll.
	fill = append(fill, Note{
		Pitch:    int(g.Kit.Crash),
		Velocity: 127,
		Start:    (positions - 1) * resolution,
		Duration: hitDuration,
	})
	return fill
}

// TrapFill generates a thirty-second-note fill over the given number of
// beats, ending on a full-velocity crash.
func (g *Generator) TrapFill(numBeats int, intensity float64) Pattern {
	intensity = clampUnit(intensity)

	tpb := g.Timing.TicksPerBeat
	totalTicks := numBeats * tpb
	resolution := tpb / 8
	positions := totalTicks / resolution
	hitDuration := minInt(resolution, tpb/8)

	var fill Pattern
	for i := 0; i < positions; i++ {
		ramp := float64(i) / float64(positions)
		if g.rng.Float64() >= 0.2+ramp*intensity {
			continue
		}

		var note, velocity int
		switch {
		case i%8 == 0:
			note = int(g.Kit.Kick)
			velocity = g.velocityBetween(100, 127)
		case i%4 == 0:
			note = int(pick(g.rng, []uint8{g.Kit.Snare, g.Kit.Clap}))
			velocity = g.velocityBetween(90, 120)
		case i%2 == 0:
			note = int(pick(g.rng, []uint8{g.Kit.ClosedHat, g.Kit.OpenHat}))
			velocity = g.velocityBetween(80, 110)
		default:
			note = int(pick(g.rng, []uint8{g.Kit.LowTom, g.Kit.MidTom, g.Kit.HighTom, g.Kit.Tambourine}))
			velocity = g.velocityBetween(70, 100)
		}

		velocity = minInt(127, int(float64(velocity)*(0.7+ramp*0.3)))

		fill = append(fill, Note{Pitch: note, Velocity: velocity, Start: i * resolution, Duration: hitDuration})
	}

	fill = append(fill, Note{
		Pitch:    int(g.Kit.Crash),
		Velocity: 127,
		Start:    totalTicks - resolution,
		Duration: resolution,
	})
	return fill
}

// sortByStart orders a pattern by start tick, preserving the relative order
// of simultaneous notes.
func sortByStart(p Pattern) {
	sort.SliceStable(p, func(i, j int) bool { return p[i].Start < p[j].Start })
}
