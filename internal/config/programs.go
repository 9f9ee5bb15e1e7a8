package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Instrument describes one entry of the instrument bank: a General MIDI
// program number plus a human-readable name.
type Instrument struct {
	Name    string `json:"name"`
	Program uint8  `json:"program"`
}

// InstrumentBank maps symbolic instrument keys to GM programs. The engine
// itself never reads it; the renderer binds programs at serialization time.
type InstrumentBank map[string]Instrument

// DefaultInstruments returns the built-in instrument bank.
func DefaultInstruments() InstrumentBank {
	return InstrumentBank{
		"celesta":       {Name: "Celesta", Program: 8},
		"organ":         {Name: "Drawbar Organ", Program: 17},
		"finger_bass":   {Name: "Electric Bass (finger)", Program: 33},
		"slap_bass_1":   {Name: "Slap Bass 1", Program: 36},
		"synth_bass_1":  {Name: "Synth Bass 1", Program: 38},
		"synth_bass_2":  {Name: "Synth Bass 2", Program: 39},
		"harp":          {Name: "Orchestral Harp", Program: 46},
		"choir":         {Name: "Choir Aahs", Program: 52},
		"lead_voice":    {Name: "Lead 6 (voice)", Program: 85},
		"synth_voice":   {Name: "Synth Voice", Program: 54},
		"lead_square":   {Name: "Lead 1 (square)", Program: 80},
		"lead_sawtooth": {Name: "Lead 2 (sawtooth)", Program: 81},
		"pad_warm":      {Name: "Pad 2 (warm)", Program: 89},
		"pad_polysynth": {Name: "Pad 3 (polysynth)", Program: 90},
		"halo_pad":      {Name: "Pad 7 (halo)", Program: 94},
	}
}

// LoadInstruments reads an instrument bank from a JSON file and overlays it
// on the defaults, so a partial file only overrides the keys it names.
func LoadInstruments(path string) (InstrumentBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read instrument bank: %w", err)
	}

	var loaded InstrumentBank
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse instrument bank: %w", err)
	}

	bank := DefaultInstruments()
	for key, inst := range loaded {
		bank[key] = inst
	}
	return bank, nil
}

// ProgramAssignments binds a GM program to each melodic channel. Percussion
// channels carry no program.
type ProgramAssignments map[uint8]uint8

// AssignPrograms picks instrument programs per channel for the given mood
// flags. Atmospheric compositions trade leads for pads; phonk swaps the bass
// programs for synth basses.
func AssignPrograms(bank InstrumentBank, ch Channels, atmospheric, phonk bool) ProgramAssignments {
	prog := func(key string) uint8 {
		if inst, ok := bank[key]; ok {
			return inst.Program
		}
		return 0 // Acoustic Grand Piano
	}

	out := ProgramAssignments{
		ch.Melody:            prog("synth_voice"),
		ch.Chords:            prog("organ"),
		ch.BGMelody:          prog("choir"),
		ch.SecondaryMelody:   prog("halo_pad"),
		ch.SecondaryBGMelody: prog("harp"),
	}

	if atmospheric {
		out[ch.BGMelody] = prog("pad_polysynth")
	} else {
		out[ch.Melody] = prog("lead_square")
		out[ch.SecondaryMelody] = prog("lead_sawtooth")
		out[ch.SecondaryBGMelody] = prog("lead_voice")
	}

	if phonk {
		out[ch.Bass] = prog("synth_bass_1")
		out[ch.SecondaryBass] = prog("synth_bass_2")
	} else {
		out[ch.Bass] = prog("finger_bass")
		out[ch.SecondaryBass] = prog("slap_bass_1")
	}

	return out
}
