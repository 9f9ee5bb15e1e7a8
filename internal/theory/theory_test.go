package theory

import (
	"sort"
	"testing"
)

func TestScaleNotes(t *testing.T) {
	t.Run("spans three octaves", func(t *testing.T) {
		notes := ScaleNotes(60, MajorScale)
		if len(notes) != 21 {
			t.Fatalf("expected 21 notes, got %d", len(notes))
		}
		if notes[0] != 48 {
			t.Errorf("expected first note 48, got %d", notes[0])
		}
		if notes[len(notes)-1] != 83 {
			t.Errorf("expected last note 83, got %d", notes[len(notes)-1])
		}
	})

	t.Run("sorted ascending", func(t *testing.T) {
		notes := ScaleNotes(57, MinorScale)
		if !sort.IntsAreSorted(notes) {
			t.Errorf("scale notes not sorted: %v", notes)
		}
	})

	t.Run("clips low roots", func(t *testing.T) {
		notes := ScaleNotes(5, MajorScale)
		for _, n := range notes {
			if n < 0 || n > 127 {
				t.Errorf("note %d outside MIDI range", n)
			}
		}
		if len(notes) >= 21 {
			t.Errorf("expected clipping below 0, got %d notes", len(notes))
		}
	})

	t.Run("clips high roots", func(t *testing.T) {
		notes := ScaleNotes(125, MinorScale)
		for _, n := range notes {
			if n < 0 || n > 127 {
				t.Errorf("note %d outside MIDI range", n)
			}
		}
	})
}

func TestChordNotes(t *testing.T) {
	cases := []struct {
		name      string
		root      int
		intervals []int
		want      []int
	}{
		{"major triad", 60, MajorTriad, []int{60, 64, 67}},
		{"minor triad", 57, MinorTriad, []int{57, 60, 64}},
		{"dominant seventh", 55, DominantSeventh, []int{55, 59, 62, 65}},
		{"clipped at top", 125, MajorTriad, []int{125}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ChordNotes(tc.root, tc.intervals)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("note %d: expected %d, got %d", i, tc.want[i], got[i])
				}
			}
		})
	}
}

func TestIsMajorMode(t *testing.T) {
	cases := []struct {
		name      string
		intervals []int
		want      bool
	}{
		{"major", MajorScale, true},
		{"minor", MinorScale, false},
		{"lydian", LydianMode, true},
		{"mixolydian", MixolydianMode, true},
		{"dorian", DorianMode, false},
		{"blues", BluesScale, false},
		{"pentatonic major", PentatonicMajor, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsMajorMode(tc.intervals); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestIsInScale(t *testing.T) {
	scale := ScaleNotes(60, MajorScale)

	if !IsInScale(62, scale) {
		t.Error("D4 should be in C major")
	}
	if IsInScale(61, scale) {
		t.Error("C#4 should not be in C major")
	}
	// Pitch class matching crosses octaves.
	if !IsInScale(26, scale) {
		t.Error("D1 should match the D pitch class in C major")
	}
}

func TestNearestScaleNote(t *testing.T) {
	scale := ScaleNotes(60, MajorScale)

	t.Run("in-scale note unchanged", func(t *testing.T) {
		if got := NearestScaleNote(64, scale); got != 64 {
			t.Errorf("expected 64, got %d", got)
		}
	})

	t.Run("snaps to neighbor", func(t *testing.T) {
		got := NearestScaleNote(61, scale)
		if got != 60 && got != 62 {
			t.Errorf("expected 60 or 62, got %d", got)
		}
	})

	t.Run("empty scale returns input", func(t *testing.T) {
		if got := NearestScaleNote(61, nil); got != 61 {
			t.Errorf("expected 61, got %d", got)
		}
	})
}

func TestScaleDegree(t *testing.T) {
	scale := ScaleNotes(60, MajorScale)

	cases := []struct {
		note int
		want int
	}{
		{60, 1}, // C
		{62, 2}, // D
		{67, 5}, // G
		{71, 7}, // B
		{61, 0}, // C# not in scale
	}
	for _, tc := range cases {
		if got := ScaleDegree(tc.note, scale); got != tc.want {
			t.Errorf("ScaleDegree(%d): expected %d, got %d", tc.note, tc.want, got)
		}
	}
}

func TestNoteName(t *testing.T) {
	cases := []struct {
		note int
		want string
	}{
		{60, "C4"},
		{61, "C#4"},
		{69, "A4"},
		{0, "C-1"},
		{127, "G9"},
	}
	for _, tc := range cases {
		if got := NoteName(tc.note); got != tc.want {
			t.Errorf("NoteName(%d): expected %q, got %q", tc.note, tc.want, got)
		}
	}
}

func TestParseNote(t *testing.T) {
	t.Run("round trips", func(t *testing.T) {
		for _, note := range []int{0, 36, 60, 61, 69, 127} {
			got, err := ParseNote(NoteName(note))
			if err != nil {
				t.Fatalf("ParseNote(%q): %v", NoteName(note), err)
			}
			if got != note {
				t.Errorf("expected %d, got %d", note, got)
			}
		}
	})

	t.Run("accepts flats and lowercase", func(t *testing.T) {
		got, err := ParseNote("bb2")
		if err != nil {
			t.Fatal(err)
		}
		if got != 46 {
			t.Errorf("expected 46, got %d", got)
		}
	})

	t.Run("bare B is not a flat", func(t *testing.T) {
		got, err := ParseNote("B2")
		if err != nil {
			t.Fatal(err)
		}
		if got != 47 {
			t.Errorf("expected 47, got %d", got)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, s := range []string{"", "H4", "C", "C#", "Cx4", "C99"} {
			if _, err := ParseNote(s); err == nil {
				t.Errorf("expected error for %q", s)
			}
		}
	})
}

func TestScaleByName(t *testing.T) {
	for _, name := range ScaleNames() {
		if _, ok := ScaleByName(name); !ok {
			t.Errorf("listed scale %q not resolvable", name)
		}
	}
	if _, ok := ScaleByName("klingon"); ok {
		t.Error("unknown scale should not resolve")
	}
	if _, ok := ScaleByName("  Major "); !ok {
		t.Error("lookup should normalize case and whitespace")
	}
}
