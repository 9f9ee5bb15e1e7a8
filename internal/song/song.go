// Package song generates the large-scale form of a composition: an ordered
// list of four-bar sections with intensities and per-voice activation.
package song

import (
	"math/rand"

	"github.com/Ashmit-Ag/mugen-transformer/internal/config"
)

// SectionName identifies a section archetype.
type SectionName string

const (
	SectionIntro     SectionName = "intro"
	SectionVerse     SectionName = "verse"
	SectionPreChorus SectionName = "pre_chorus"
	SectionChorus    SectionName = "chorus"
	SectionBreakdown SectionName = "breakdown"
	SectionBridge    SectionName = "bridge"
	SectionBuildUp   SectionName = "build_up"
	SectionDrop      SectionName = "drop"
	SectionOutro     SectionName = "outro"
)

// Voice identifies one layer of the arrangement.
type Voice string

const (
	VoiceSimpleDrums     Voice = "simple_drums"
	VoiceComplexDrums    Voice = "complex_drums"
	VoiceBass            Voice = "bass"
	VoiceFunkyBass       Voice = "funky_bass"
	VoiceChords          Voice = "chords"
	VoiceMelody          Voice = "melody"
	VoiceSecondaryMelody Voice = "secondary_melody"
	VoiceCatchyMelody    Voice = "catchy_melody"
	VoiceBGMelody        Voice = "bg_melody"
	VoiceBGMelodyLow     Voice = "bg_melody_low"
	VoiceTrapFill        Voice = "trap_fill"
)

// Slot describes one voice's activation within a section.
type Slot struct {
	Enabled bool
	Channel uint8
}

// Section is a four-bar span of the song form.
type Section struct {
	Name        SectionName
	Intensity   float64
	NumBars     int
	Instruments map[Voice]Slot
}

// Style selects the overall genre conventions.
type Style string

const (
	StyleTrap    Style = "trap"
	StyleAmbient Style = "ambient"
	StyleHouse   Style = "house"
	StyleLofi    Style = "lofi"
)

// Mood flags color the structure's intensity curve and instrumentation.
type Mood struct {
	Epic        bool
	Phonk       bool
	Atmospheric bool
	Minimal     bool
}

// Base intensity per section archetype, before mood scaling and jitter.
var baseIntensities = map[SectionName]float64{
	SectionIntro:     0.3,
	SectionVerse:     0.5,
	SectionPreChorus: 0.7,
	SectionChorus:    0.9,
	SectionBreakdown: 0.2,
	SectionBridge:    0.6,
	SectionBuildUp:   0.8,
	SectionDrop:      1.0,
	SectionOutro:     0.4,
}

// StructureParams configure a generated song form.
type StructureParams struct {
	NumBars      int
	Style        Style
	Mood         Mood
	HasBreakdown bool
}

// SectionBars is the fixed length of every section.
const SectionBars = 4

// Structure generates a song form: NumBars is rounded down to a multiple of
// SectionBars and split into four-bar sections following a template sized to
// the song. Intensities start from the archetype table, scaled by mood and
// jittered per section, always ending in [0.1,1.0].
func Structure(ch config.Channels, rng *rand.Rand, p StructureParams) []Section {
	numSections := (p.NumBars / SectionBars)

	intensities := moodIntensities(p.Mood)
	names := structureTemplate(rng, numSections, p.Style, p.Mood, p.HasBreakdown)

	sections := make([]Section, 0, len(names))
	for _, name := range names {
		intensity := intensities[name] + (rng.Float64()*0.2 - 0.1)
		if intensity < 0.1 {
			intensity = 0.1
		}
		if intensity > 1.0 {
			intensity = 1.0
		}

		sections = append(sections, Section{
			Name:        name,
			Intensity:   intensity,
			NumBars:     SectionBars,
			Instruments: instrumentSlots(ch, rng, name, intensity),
		})
	}
	return sections
}

// moodIntensities returns the archetype table scaled by the mood flags.
func moodIntensities(m Mood) map[SectionName]float64 {
	out := make(map[SectionName]float64, len(baseIntensities))
	for name, v := range baseIntensities {
		out[name] = v
	}
	if m.Epic {
		for _, name := range []SectionName{SectionChorus, SectionDrop, SectionBuildUp} {
			if v := out[name] * 1.2; v < 1.0 {
				out[name] = v
			} else {
				out[name] = 1.0
			}
		}
	}
	if m.Atmospheric {
		for name, v := range out {
			if v = v * 0.8; v > 0.1 {
				out[name] = v
			} else {
				out[name] = 0.1
			}
		}
	}
	if m.Minimal {
		for name, v := range out {
			if v = v * 0.7; v > 0.1 {
				out[name] = v
			} else {
				out[name] = 0.1
			}
		}
	}
	return out
}

// structureTemplate lays out section names for the requested count.
func structureTemplate(rng *rand.Rand, numSections int, style Style, mood Mood, hasBreakdown bool) []SectionName {
	var names []SectionName

	switch {
	case numSections <= 6:
		short := []SectionName{
			SectionIntro, SectionVerse, SectionChorus,
			SectionVerse, SectionChorus, SectionOutro,
		}
		names = append(names, short[:minInt(numSections, len(short))]...)

	case numSections <= 10:
		medium := []SectionName{
			SectionIntro, SectionVerse, SectionPreChorus, SectionChorus,
			SectionVerse, SectionPreChorus, SectionChorus,
			SectionBridge, SectionChorus, SectionOutro,
		}
		names = append(names, medium[:minInt(numSections, len(medium))]...)

	default:
		names = []SectionName{
			SectionIntro, SectionVerse, SectionPreChorus, SectionChorus,
			SectionVerse, SectionPreChorus, SectionChorus,
		}
		if hasBreakdown {
			names = append(names, SectionBreakdown, SectionBuildUp)
		}
		if style == StyleTrap || mood.Phonk {
			names = append(names, SectionDrop)
		}
		names = append(names, SectionBridge, SectionChorus, SectionOutro)

		// Grow the middle with verse/chorus pairs until the form fits.
		for len(names) < numSections {
			pos := 4 + rng.Intn(len(names)-5)
			names = append(names, "", "")
			copy(names[pos+2:], names[pos:])
			names[pos] = SectionVerse
			names[pos+1] = SectionChorus
		}
		names = names[:numSections]
	}

	for len(names) < numSections {
		names = append(names, []SectionName{SectionVerse, SectionChorus, SectionBridge}[rng.Intn(3)])
	}
	return names
}

// instrumentSlots decides which voices play in a section. Thresholds come
// from the section intensity; the named archetypes then apply hard overrides.
func instrumentSlots(ch config.Channels, rng *rand.Rand, name SectionName, intensity float64) map[Voice]Slot {
	slots := map[Voice]Slot{
		VoiceSimpleDrums: {
			Enabled: name != SectionBreakdown && (name == SectionIntro || intensity < 0.7),
			Channel: ch.Drums,
		},
		VoiceComplexDrums: {
			Enabled: name != SectionBreakdown && intensity >= 0.7,
			Channel: ch.Drums,
		},
		VoiceBass: {
			Enabled: name != SectionBreakdown && intensity >= 0.3,
			Channel: ch.Bass,
		},
		VoiceFunkyBass: {
			Enabled: name != SectionBreakdown && intensity >= 0.8,
			Channel: ch.SecondaryBass,
		},
		VoiceChords: {
			Enabled: true,
			Channel: ch.Chords,
		},
		VoiceMelody: {
			Enabled: name != SectionIntro && name != SectionBreakdown && name != SectionOutro && intensity >= 0.5,
			Channel: ch.Melody,
		},
		VoiceSecondaryMelody: {
			Enabled: name == SectionIntro || intensity >= 0.7,
			Channel: ch.SecondaryMelody,
		},
		VoiceCatchyMelody: {
			Enabled: (name == SectionChorus || name == SectionDrop) && intensity >= 0.8,
			Channel: ch.BGMelody,
		},
		VoiceBGMelody: {
			Enabled: name != SectionIntro && name != SectionBreakdown && intensity >= 0.6,
			Channel: ch.BGMelody,
		},
		VoiceBGMelodyLow: {
			Enabled: (name == SectionBridge || name == SectionBuildUp) && intensity >= 0.7,
			Channel: ch.SecondaryBGMelody,
		},
		VoiceTrapFill: {
			Enabled: false, // transitions only
			Channel: ch.SecondaryDrums,
		},
	}

	set := func(v Voice, enabled bool) {
		s := slots[v]
		s.Enabled = enabled
		slots[v] = s
	}

	switch name {
	case SectionIntro:
		set(VoiceChords, true)
		set(VoiceSecondaryMelody, false)
		set(VoiceBass, rng.Intn(2) == 0)
		set(VoiceFunkyBass, false)
		set(VoiceSimpleDrums, false)
		set(VoiceComplexDrums, false)
		set(VoiceMelody, false)
		set(VoiceCatchyMelody, false)
		set(VoiceBGMelody, false)
		set(VoiceBGMelodyLow, false)

	case SectionBreakdown:
		set(VoiceChords, true)
		set(VoiceSecondaryMelody, rng.Intn(2) == 0)
		set(VoiceBass, false)
		set(VoiceFunkyBass, false)
		set(VoiceSimpleDrums, false)
		set(VoiceComplexDrums, false)
		set(VoiceMelody, false)
		set(VoiceCatchyMelody, false)
		set(VoiceBGMelody, false)
		set(VoiceBGMelodyLow, false)

	case SectionBuildUp:
		set(VoiceChords, true)
		set(VoiceSecondaryMelody, true)
		set(VoiceBass, true)
		set(VoiceFunkyBass, false)
		set(VoiceSimpleDrums, true)
		set(VoiceComplexDrums, false)
		set(VoiceMelody, true)
		set(VoiceCatchyMelody, false)
		set(VoiceBGMelody, true)
		set(VoiceBGMelodyLow, true)

	case SectionDrop:
		set(VoiceChords, true)
		set(VoiceSecondaryMelody, true)
		set(VoiceBass, false)
		set(VoiceFunkyBass, true)
		set(VoiceSimpleDrums, false)
		set(VoiceComplexDrums, true)
		set(VoiceMelody, true)
		set(VoiceCatchyMelody, true)
		set(VoiceBGMelody, true)
		set(VoiceBGMelodyLow, false)
	}

	return slots
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
