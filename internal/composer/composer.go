// Package composer orchestrates the full pipeline: it validates a request,
// generates all patterns, lays them out over a song structure with
// transitions and automation, and finalizes the result into per-channel
// message streams.
package composer

import (
	"math/rand"

	"github.com/Ashmit-Ag/mugen-transformer/internal/automation"
	"github.com/Ashmit-Ag/mugen-transformer/internal/config"
	"github.com/Ashmit-Ag/mugen-transformer/internal/pattern"
	"github.com/Ashmit-Ag/mugen-transformer/internal/song"
	"github.com/Ashmit-Ag/mugen-transformer/internal/theory"
	"github.com/Ashmit-Ag/mugen-transformer/internal/timeline"
	"github.com/Ashmit-Ag/mugen-transformer/internal/transition"
)

// Request describes one composition to generate.
type Request struct {
	Root         int             // MIDI root note
	Scale        []int           // scale interval table
	TempoBPM     int
	NumBars      int
	Style        song.Style
	Mood         song.Mood
	HasBreakdown bool
	SeedMelody   pattern.Pattern // optional; generated when empty
	Seed         int64           // random seed; same seed, same song
}

// Composition is the finished result: delta-encoded message streams per
// channel plus everything a renderer needs.
type Composition struct {
	Streams   map[uint8][]timeline.Message
	Programs  config.ProgramAssignments
	TotalBars int
	TempoBPM  int
	LastTick  int
}

// Composer generates compositions with a fixed wiring. The zero value is
// not usable; construct with New or NewDefault.
type Composer struct {
	Timing      config.Timing
	Channels    config.Channels
	Controllers config.Controllers
	Kit         config.DrumKit
	Instruments config.InstrumentBank
}

// New returns a Composer with explicit wiring.
func New(tm config.Timing, ch config.Channels, cc config.Controllers, kit config.DrumKit, bank config.InstrumentBank) *Composer {
	return &Composer{
		Timing:      tm,
		Channels:    ch,
		Controllers: cc,
		Kit:         kit,
		Instruments: bank,
	}
}

// NewDefault returns a Composer with the standard GM wiring.
func NewDefault() *Composer {
	return New(
		config.DefaultTiming(),
		config.DefaultChannels(),
		config.DefaultControllers(),
		config.GMDrums(),
		config.DefaultInstruments(),
	)
}

func (c *Composer) validate(req Request) error {
	if req.NumBars <= 0 {
		return newValidationError("num_bars", req.NumBars, ErrInvalidBarCount)
	}
	if len(req.Scale) == 0 {
		return newValidationError("scale", req.Scale, ErrEmptyScale)
	}
	if req.TempoBPM <= 0 {
		return newValidationError("tempo", req.TempoBPM, ErrInvalidTempo)
	}
	if req.Root < 0 || req.Root > 127 {
		return newValidationError("root", req.Root, ErrInvalidRoot)
	}
	return nil
}

// Compose generates a full composition. It fails fast on an invalid
// request; generation itself always succeeds.
func (c *Composer) Compose(req Request) (*Composition, error) {
	if err := c.validate(req); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(req.Seed))
	gen := pattern.NewGenerator(c.Timing, c.Kit, rng)
	auto := automation.New(c.Controllers)
	ticksPerBar := c.Timing.TicksPerBar()

	// Seed melody: use the caller's, or generate a moderate one.
	melody := req.SeedMelody
	if len(melody) == 0 {
		melody = gen.Melody(req.Root, req.Scale, 4, 0.5, 0.5)
	}
	melodyBars := (melody.Ticks() + ticksPerBar - 1) / ticksPerBar
	if melodyBars < 1 {
		melodyBars = 1
	}

	voices := c.buildVoices(gen, rng, req, melody, melodyBars)

	sections := song.Structure(c.Channels, rng, song.StructureParams{
		NumBars:      req.NumBars,
		Style:        req.Style,
		Mood:         req.Mood,
		HasBreakdown: req.HasBreakdown,
	})

	tl := timeline.New()
	scaleNotes := theory.ScaleNotes(req.Root, req.Scale)
	trans := transition.New(scaleNotes, req.Style, c.Channels, gen, auto)

	currentBar := 0
	for i, section := range sections {
		startTick := currentBar * ticksPerBar
		sectionTicks := section.NumBars * ticksPerBar

		if i > 0 {
			trans.Apply(tl, sections[i-1].Intensity, section.Intensity, startTick)
		}

		// Fixed voice order keeps the output stream deterministic.
		for _, voice := range voiceOrder {
			slot, ok := section.Instruments[voice]
			if !ok || !slot.Enabled {
				continue
			}
			p, ok := voices[voice]
			if !ok {
				continue
			}
			tl.AddPattern(slot.Channel, p, startTick, sectionTicks)
		}

		switch section.Name {
		case song.SectionBuildUp:
			auto.FilterSweep(tl, c.Channels.Melody, 20, 127, 100, sectionTicks, startTick)
		case song.SectionDrop:
			auto.FilterSweep(tl, c.Channels.Melody, 127, 20, 80, ticksPerBar, startTick)
		}

		currentBar += section.NumBars
	}

	if len(sections) > 0 {
		trans.ApplyEnding(tl, sections[len(sections)-1].Intensity, currentBar*ticksPerBar)
	}

	return &Composition{
		Streams:   tl.Finalize(),
		Programs:  config.AssignPrograms(c.Instruments, c.Channels, req.Mood.Atmospheric, req.Mood.Phonk),
		TotalBars: currentBar,
		TempoBPM:  req.TempoBPM,
		LastTick:  tl.LastTick(),
	}, nil
}

// voiceOrder is the deterministic layering order for section assembly.
var voiceOrder = []song.Voice{
	song.VoiceChords,
	song.VoiceBass,
	song.VoiceFunkyBass,
	song.VoiceMelody,
	song.VoiceSecondaryMelody,
	song.VoiceCatchyMelody,
	song.VoiceBGMelody,
	song.VoiceBGMelodyLow,
	song.VoiceSimpleDrums,
	song.VoiceComplexDrums,
	song.VoiceTrapFill,
}

// buildVoices generates every pattern the song structure can call for.
func (c *Composer) buildVoices(gen *pattern.Generator, rng *rand.Rand, req Request, melody pattern.Pattern, melodyBars int) map[song.Voice]pattern.Pattern {
	// The secondary melody mirrors the seed an octave away from its
	// register, the louder voice sitting where the seed already lives.
	octaveShift := 12
	if melody.AveragePitch() >= 72 {
		octaveShift = -12
	}
	secondary := melody.Transpose(octaveShift)
	if octaveShift > 0 {
		melody = melody.ScaleVelocity(1.2)
		secondary = secondary.ScaleVelocity(0.8)
	} else {
		secondary = secondary.ScaleVelocity(0.7)
	}

	// A two-bar hook tiled to the seed melody's length.
	catchy := gen.CatchyMelody(req.Root, req.Scale, 2, 0.6)
	if span := catchy.Ticks(); span > 0 {
		repeats := melody.Ticks() / span
		if repeats < 1 {
			repeats = 1
		}
		catchy = catchy.Repeat(repeats)
	}

	background := gen.BackgroundMelody(req.Root, req.Scale, melodyBars, 0.3)

	chords, changes := gen.ChordProgression(req.Root, req.Scale, melodyBars)

	var drums pattern.Pattern
	if req.Mood.Phonk {
		// Phonk gets automaton drums: a light groove evolved, then the
		// heavy rule set layered on top.
		grid := pattern.NewAutomatonGrid(melodyBars, c.Timing.BeatsPerBar)
		for i := 0; i < 4; i++ {
			grid = pattern.EvolveSimple(grid, rng)
		}
		for i := 0; i < 4; i++ {
			grid = pattern.EvolveComplex(grid, rng, true)
		}
		drums = gen.AutomatonDrums(grid)
	} else {
		drums = gen.ComplexDrums(melodyBars, 0.7, false)
	}

	return map[song.Voice]pattern.Pattern{
		song.VoiceMelody:          melody,
		song.VoiceSecondaryMelody: secondary,
		song.VoiceCatchyMelody:    catchy,
		song.VoiceBGMelody:        background.Transpose(12),
		song.VoiceBGMelodyLow:     background.Transpose(-12),
		song.VoiceBass:            gen.BassLine(req.Root, req.Scale, changes, 0.5),
		song.VoiceFunkyBass:       gen.FunkyBass(req.Root, req.Scale, changes, 0.7),
		song.VoiceChords:          chords,
		song.VoiceSimpleDrums:     gen.Drums(melodyBars, 0.4, false),
		song.VoiceComplexDrums:    drums,
		song.VoiceTrapFill:        gen.TrapFill(2, 0.8),
	}
}
