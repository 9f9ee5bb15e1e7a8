// Package config holds the immutable wiring tables for the composition
// engine: channel assignments, controller numbers, drum note numbers, and
// General MIDI program bindings. Generators receive these by reference so a
// caller can run several engines with different wiring side by side.
package config

// Timing describes the tick grid a composition is generated on.
type Timing struct {
	TicksPerBeat int
	BeatsPerBar  int
}

// DefaultTiming returns the standard 480-tick, 4/4 grid.
func DefaultTiming() Timing {
	return Timing{TicksPerBeat: 480, BeatsPerBar: 4}
}

// TicksPerBar returns the number of ticks in one bar.
func (t Timing) TicksPerBar() int {
	return t.BeatsPerBar * t.TicksPerBeat
}

// Channels maps each voice of the arrangement to a MIDI channel.
// Channel 9 conventionally carries percussion.
type Channels struct {
	Bass              uint8
	Chords            uint8
	Melody            uint8
	BGMelody          uint8
	SecondaryMelody   uint8
	SecondaryBGMelody uint8
	SecondaryBass     uint8
	Drums             uint8
	SecondaryDrums    uint8
}

// DefaultChannels returns the standard voice-to-channel mapping.
func DefaultChannels() Channels {
	return Channels{
		Bass:              0,
		Chords:            1,
		Melody:            2,
		BGMelody:          3,
		SecondaryMelody:   4,
		SecondaryBGMelody: 5,
		SecondaryBass:     6,
		Drums:             9,
		SecondaryDrums:    10,
	}
}

// Controllers holds the MIDI CC numbers used by effects automation.
type Controllers struct {
	Reverb          uint8
	Chorus          uint8
	Delay           uint8
	FilterCutoff    uint8
	FilterResonance uint8
	Distortion      uint8
	Attack          uint8
	Release         uint8
	Expression      uint8
	Modulation      uint8
	Pan             uint8
	Volume          uint8
}

// DefaultControllers returns the conventional GM/GS controller numbers.
func DefaultControllers() Controllers {
	return Controllers{
		Reverb:          91,
		Chorus:          93,
		Delay:           94,
		FilterCutoff:    74,
		FilterResonance: 71,
		Distortion:      92,
		Attack:          73,
		Release:         72,
		Expression:      11,
		Modulation:      1,
		Pan:             10,
		Volume:          7,
	}
}

// DrumKit maps percussion voices to General MIDI drum note numbers.
type DrumKit struct {
	Kick       uint8
	Snare      uint8
	Clap       uint8
	Rim        uint8
	ClosedHat  uint8
	PedalHat   uint8
	OpenHat    uint8
	LowTom     uint8
	MidTom     uint8
	HighTom    uint8
	Crash      uint8
	Ride       uint8
	Tambourine uint8
}

// GMDrums returns the General MIDI percussion mapping.
func GMDrums() DrumKit {
	return DrumKit{
		Kick:       36,
		Snare:      38,
		Clap:       39,
		Rim:        37,
		ClosedHat:  42,
		PedalHat:   44,
		OpenHat:    46,
		LowTom:     41,
		MidTom:     47,
		HighTom:    50,
		Crash:      49,
		Ride:       51,
		Tambourine: 54,
	}
}
