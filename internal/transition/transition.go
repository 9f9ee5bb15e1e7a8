// Package transition generates the connective material between song
// sections: risers, reverse cymbals, fills, impacts and beat drops, plus the
// controller automation that glues intensity changes together.
package transition

import (
	"github.com/Ashmit-Ag/mugen-transformer/internal/automation"
	"github.com/Ashmit-Ag/mugen-transformer/internal/config"
	"github.com/Ashmit-Ag/mugen-transformer/internal/pattern"
	"github.com/Ashmit-Ag/mugen-transformer/internal/song"
	"github.com/Ashmit-Ag/mugen-transformer/internal/timeline"
)

// Generator builds transitions for a fixed scale and style.
type Generator struct {
	scale    []int
	style    song.Style
	channels config.Channels
	patterns *pattern.Generator
	auto     *automation.Automator
}

// New returns a transition generator. scale is the full scale-note set the
// riser climbs through.
func New(scale []int, style song.Style, channels config.Channels, patterns *pattern.Generator, auto *automation.Automator) *Generator {
	return &Generator{
		scale:    scale,
		style:    style,
		channels: channels,
		patterns: patterns,
		auto:     auto,
	}
}

// Riser generates an ascending run up the scale with a velocity crescendo.
// Intensity controls the note count: 4 notes at zero up to 16 at full.
func (g *Generator) Riser(durationTicks int, intensity float64) pattern.Pattern {
	if len(g.scale) == 0 || durationTicks <= 0 {
		return nil
	}
	numNotes := 4 + int(intensity*12)
	noteDuration := durationTicks / numNotes

	var riser pattern.Pattern
	for i := 0; i < numNotes; i++ {
		note := g.scale[i%len(g.scale)] + (i/len(g.scale))*12
		if note < 0 || note > 127 {
			continue
		}
		riser = append(riser, pattern.Note{
			Pitch:    note,
			Velocity: 60 + int(float64(i)/float64(numNotes)*67),
			Start:    i * noteDuration,
			Duration: noteDuration,
		})
	}
	return riser
}

// ReverseCymbal generates a crash struck in eight slices with rising
// velocity, imitating a reversed cymbal swell.
func (g *Generator) ReverseCymbal(durationTicks int) pattern.Pattern {
	const steps = 8
	slice := durationTicks / steps

	var cymbal pattern.Pattern
	for i := 0; i < steps; i++ {
		cymbal = append(cymbal, pattern.Note{
			Pitch:    int(g.patterns.Kit.Crash),
			Velocity: 40 + int(float64(i)/steps*87),
			Start:    i * slice,
			Duration: slice,
		})
	}
	return cymbal
}

// Fill generates a drum fill for a boundary.
func (g *Generator) Fill(durationTicks int, intensity float64) pattern.Pattern {
	return g.patterns.DrumFill(durationTicks, intensity)
}

// Impact generates the simultaneous kick and crash that lands a drop.
func (g *Generator) Impact() pattern.Pattern {
	tpb := g.patterns.Timing.TicksPerBeat
	return pattern.Pattern{
		{Pitch: int(g.patterns.Kit.Kick), Velocity: 127, Start: 0, Duration: tpb / 2},
		{Pitch: int(g.patterns.Kit.Crash), Velocity: 127, Start: 0, Duration: tpb},
	}
}

// BeatDrop generates a driving pattern for the bars right after a drop:
// kicks on every beat, snares on the even beats, eighth-note hats.
func (g *Generator) BeatDrop(durationTicks int) pattern.Pattern {
	tpb := g.patterns.Timing.TicksPerBeat
	numBeats := durationTicks / tpb

	var drop pattern.Pattern
	for i := 0; i < numBeats; i++ {
		start := i * tpb
		drop = append(drop, pattern.Note{Pitch: int(g.patterns.Kit.Kick), Velocity: 127, Start: start, Duration: tpb / 4})
		if i%2 == 1 {
			drop = append(drop, pattern.Note{Pitch: int(g.patterns.Kit.Snare), Velocity: 110, Start: start, Duration: tpb / 4})
		}
		for j := 0; j < 2; j++ {
			drop = append(drop, pattern.Note{Pitch: int(g.patterns.Kit.ClosedHat), Velocity: 90, Start: start + j*tpb/2, Duration: tpb / 4})
		}
	}
	return drop
}

// Apply writes a boundary transition onto the timeline at the start of the
// incoming section. The figure depends on the intensity change: a sharp rise
// gets a riser, fill and upward sweep (plus a beat drop into very loud
// sections); a sharp fall gets a reverse cymbal and downward sweep; anything
// else gets a plain fill. Larger changes also ramp the reverb send, and
// quiet or ambient boundaries ramp delay too.
func (g *Generator) Apply(tl *timeline.Timeline, fromIntensity, toIntensity float64, sectionStartTick int) {
	ticksPerBar := g.patterns.Timing.TicksPerBar()
	duration := ticksPerBar / 2
	change := toIntensity - fromIntensity

	addPattern := func(p pattern.Pattern, channel uint8, offset int) {
		for _, n := range p {
			tl.AddNote(channel, n.Pitch, n.Velocity, sectionStartTick+offset+n.Start, n.Duration)
		}
	}

	switch {
	case change > 0.3:
		riserIntensity := fromIntensity + 0.3
		if riserIntensity > 1.0 {
			riserIntensity = 1.0
		}
		addPattern(g.Riser(duration, riserIntensity), g.channels.SecondaryMelody, 0)

		fillIntensity := toIntensity
		if fillIntensity > 1.0 {
			fillIntensity = 1.0
		}
		addPattern(g.Fill(duration, fillIntensity), g.channels.Drums, 0)

		g.auto.FilterSweep(tl, g.channels.Melody, 40, 127, 100, duration, sectionStartTick)

		if toIntensity > 0.8 {
			addPattern(g.BeatDrop(duration/2), g.channels.Drums, duration/2)
		}

	case change < -0.3:
		addPattern(g.ReverseCymbal(duration), g.channels.Drums, 0)
		g.auto.FilterSweep(tl, g.channels.Melody, 127, 40, 80, duration, sectionStartTick)

	default:
		addPattern(g.Fill(duration, (fromIntensity+toIntensity)/2), g.channels.Drums, 0)
	}

	if change > 0.2 || change < -0.2 {
		g.auto.ReverbRamp(tl, g.channels.Melody,
			int(fromIntensity*80), int(toIntensity*80), duration, sectionStartTick)

		if g.style == song.StyleAmbient || fromIntensity < 0.4 || toIntensity < 0.4 {
			g.auto.DelayRamp(tl, g.channels.Melody,
				int(fromIntensity*60), int(toIntensity*60), duration, sectionStartTick)
		}
	}
}

// ApplyEnding writes the final bar of the song: a drum fill under a
// sustained tonic triad and a sub-octave bass note. Quiet or ambient songs
// fade out on reverb and delay; everything else gets a closing filter sweep
// and an impact just before the last tick.
func (g *Generator) ApplyEnding(tl *timeline.Timeline, finalIntensity float64, startTick int) {
	if len(g.scale) == 0 {
		return
	}
	duration := g.patterns.Timing.TicksPerBar()

	for _, n := range g.Fill(duration, finalIntensity) {
		tl.AddNote(g.channels.Drums, n.Pitch, n.Velocity, startTick+n.Start, n.Duration)
	}

	root := g.scale[0]
	for _, note := range []int{root, root + 4, root + 7} {
		tl.AddNote(g.channels.Chords, note, 100, startTick, duration)
	}
	tl.AddNote(g.channels.Bass, root-12, 110, startTick, duration)

	if g.style == song.StyleAmbient || finalIntensity < 0.5 {
		g.auto.ReverbRamp(tl, g.channels.Melody, int(finalIntensity*80), 127, duration, startTick)
		g.auto.DelayRamp(tl, g.channels.Melody, int(finalIntensity*60), 100, duration, startTick)
		return
	}

	g.auto.FilterSweep(tl, g.channels.Melody, 127, 20, 100, duration, startTick)
	for _, n := range g.Impact() {
		tl.AddNote(g.channels.Drums, n.Pitch, n.Velocity, startTick+duration-10+n.Start, n.Duration)
	}
}
