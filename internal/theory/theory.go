// Package theory provides scale and chord interval tables and note-range
// utilities. Everything here is pure integer math over MIDI note numbers.
package theory

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Scale interval tables (semitone offsets from the root).
var (
	MajorScale         = []int{0, 2, 4, 5, 7, 9, 11}
	MinorScale         = []int{0, 2, 3, 5, 7, 8, 10}
	HarmonicMinorScale = []int{0, 2, 3, 5, 7, 8, 11}
	MelodicMinorScale  = []int{0, 2, 3, 5, 7, 9, 11}
	PentatonicMajor    = []int{0, 2, 4, 7, 9}
	PentatonicMinor    = []int{0, 3, 5, 7, 10}
	BluesScale         = []int{0, 3, 5, 6, 7, 10}
	DorianMode         = []int{0, 2, 3, 5, 7, 9, 10}
	PhrygianMode       = []int{0, 1, 3, 5, 7, 8, 10}
	LydianMode         = []int{0, 2, 4, 6, 7, 9, 11}
	MixolydianMode     = []int{0, 2, 4, 5, 7, 9, 10}
	LocrianMode        = []int{0, 1, 3, 5, 6, 8, 10}
)

// Chord interval tables.
var (
	MajorTriad            = []int{0, 4, 7}
	MinorTriad            = []int{0, 3, 7}
	DiminishedTriad       = []int{0, 3, 6}
	AugmentedTriad        = []int{0, 4, 8}
	MajorSeventh          = []int{0, 4, 7, 11}
	DominantSeventh       = []int{0, 4, 7, 10}
	MinorSeventh          = []int{0, 3, 7, 10}
	HalfDiminishedSeventh = []int{0, 3, 6, 10}
	DiminishedSeventh     = []int{0, 3, 6, 9}
	Sus2                  = []int{0, 2, 7}
	Sus4                  = []int{0, 5, 7}
)

// scalesByName maps CLI-friendly scale names to interval tables.
var scalesByName = map[string][]int{
	"major":          MajorScale,
	"minor":          MinorScale,
	"harmonic_minor": HarmonicMinorScale,
	"melodic_minor":  MelodicMinorScale,
	"pentatonic":     PentatonicMajor,
	"pentatonic_min": PentatonicMinor,
	"blues":          BluesScale,
	"dorian":         DorianMode,
	"phrygian":       PhrygianMode,
	"lydian":         LydianMode,
	"mixolydian":     MixolydianMode,
	"locrian":        LocrianMode,
}

// ScaleByName looks up a scale interval table by name.
func ScaleByName(name string) ([]int, bool) {
	intervals, ok := scalesByName[strings.ToLower(strings.TrimSpace(name))]
	return intervals, ok
}

// ScaleNames returns the known scale names in a stable order.
func ScaleNames() []string {
	return []string{
		"major", "minor", "harmonic_minor", "melodic_minor",
		"pentatonic", "pentatonic_min", "blues",
		"dorian", "phrygian", "lydian", "mixolydian", "locrian",
	}
}

// ScaleNotes generates the MIDI notes of a scale spanning three octaves
// around the root (root-12, root, root+12), clipped to the MIDI range and
// sorted ascending. The result is empty only when every candidate falls
// outside [0,127].
func ScaleNotes(root int, intervals []int) []int {
	var notes []int
	for octave := -1; octave <= 1; octave++ {
		for _, interval := range intervals {
			note := root + interval + octave*12
			if note >= 0 && note <= 127 {
				notes = append(notes, note)
			}
		}
	}
	// Octave stepping already yields ascending order per octave; the outer
	// loop ascends too, so the slice is sorted.
	return notes
}

// ChordNotes generates the MIDI notes of a chord built on root, clipped to
// the MIDI range.
func ChordNotes(root int, intervals []int) []int {
	var notes []int
	for _, interval := range intervals {
		note := root + interval
		if note >= 0 && note <= 127 {
			notes = append(notes, note)
		}
	}
	return notes
}

// IsMajorMode reports whether an interval table carries a major third and no
// minor third, which selects the major-key progression templates.
func IsMajorMode(intervals []int) bool {
	hasMajorThird := false
	for _, interval := range intervals {
		switch interval {
		case 3:
			return false
		case 4:
			hasMajorThird = true
		}
	}
	return hasMajorThird
}

// IsInScale reports whether a note's pitch class occurs in the scale.
func IsInScale(note int, scale []int) bool {
	pc := ((note % 12) + 12) % 12
	for _, sn := range scale {
		if sn%12 == pc {
			return true
		}
	}
	return false
}

// NearestScaleNote returns the scale note closest to the given note, or the
// note itself when it is already in the scale.
func NearestScaleNote(note int, scale []int) int {
	if len(scale) == 0 || IsInScale(note, scale) {
		return note
	}
	nearest := scale[0]
	best := abs(note - nearest)
	for _, sn := range scale[1:] {
		if d := abs(note - sn); d < best {
			best = d
			nearest = sn
		}
	}
	return nearest
}

// ScaleDegree returns the 1-based degree of a note within a scale, or 0 when
// the note's pitch class is not in the scale.
func ScaleDegree(note int, scale []int) int {
	pc := ((note % 12) + 12) % 12

	seen := make(map[int]bool)
	var classes []int
	for _, sn := range scale {
		c := sn % 12
		if !seen[c] {
			seen[c] = true
			classes = append(classes, c)
		}
	}
	sort.Ints(classes)

	for i, c := range classes {
		if c == pc {
			return i + 1
		}
	}
	return 0
}

var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName converts a MIDI note number to scientific pitch notation (C4, F#5).
func NoteName(note int) string {
	octave := note/12 - 1
	return fmt.Sprintf("%s%d", noteNames[((note%12)+12)%12], octave)
}

var noteOffsets = map[string]int{
	"C": 0, "C#": 1, "DB": 1, "D": 2, "D#": 3, "EB": 3,
	"E": 4, "F": 5, "F#": 6, "GB": 6, "G": 7, "G#": 8,
	"AB": 8, "A": 9, "A#": 10, "BB": 10, "B": 11,
}

// ParseNote converts scientific pitch notation (c4, F#5, Bb2) to a MIDI note
// number.
func ParseNote(name string) (int, error) {
	s := strings.ToUpper(strings.TrimSpace(name))
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid note name %q", name)
	}

	split := 1
	if s[1] == '#' || s[1] == 'B' {
		// "B2" is the note B, not a flat; only treat the second rune as an
		// accidental when a third rune follows.
		if len(s) > 2 {
			split = 2
		}
	}

	offset, ok := noteOffsets[s[:split]]
	if !ok {
		return 0, fmt.Errorf("invalid note name %q", name)
	}
	octave, err := strconv.Atoi(s[split:])
	if err != nil {
		return 0, fmt.Errorf("invalid octave in note name %q", name)
	}

	note := offset + (octave+1)*12
	if note < 0 || note > 127 {
		return 0, fmt.Errorf("note %q outside MIDI range", name)
	}
	return note, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
