package transition

import (
	"math/rand"
	"testing"

	"github.com/Ashmit-Ag/mugen-transformer/internal/automation"
	"github.com/Ashmit-Ag/mugen-transformer/internal/config"
	"github.com/Ashmit-Ag/mugen-transformer/internal/pattern"
	"github.com/Ashmit-Ag/mugen-transformer/internal/song"
	"github.com/Ashmit-Ag/mugen-transformer/internal/theory"
	"github.com/Ashmit-Ag/mugen-transformer/internal/timeline"
)

func newGenerator(seed int64, style song.Style) *Generator {
	tm := config.DefaultTiming()
	rng := rand.New(rand.NewSource(seed))
	patterns := pattern.NewGenerator(tm, config.GMDrums(), rng)
	auto := automation.New(config.DefaultControllers())
	scale := theory.ScaleNotes(60, theory.MinorScale)
	return New(scale, style, config.DefaultChannels(), patterns, auto)
}

func TestRiser(t *testing.T) {
	g := newGenerator(1, song.StyleTrap)

	t.Run("note count scales with intensity", func(t *testing.T) {
		low := g.Riser(1920, 0.0)
		high := g.Riser(1920, 1.0)
		if len(low) == 0 || len(high) == 0 {
			t.Fatal("expected riser notes")
		}
		if len(high) <= len(low) {
			t.Errorf("high intensity should add notes: %d vs %d", len(high), len(low))
		}
		if len(high) != 16 {
			t.Errorf("full intensity should give 16 notes, got %d", len(high))
		}
	})

	t.Run("velocities never decrease", func(t *testing.T) {
		riser := g.Riser(1920, 0.7)
		for i := 1; i < len(riser); i++ {
			if riser[i].Velocity < riser[i-1].Velocity {
				t.Errorf("velocity dipped at note %d", i)
			}
		}
	})

	t.Run("empty scale yields nothing", func(t *testing.T) {
		bare := New(nil, song.StyleTrap, config.DefaultChannels(), g.patterns, g.auto)
		if r := bare.Riser(1920, 0.8); r != nil {
			t.Errorf("expected nil, got %v", r)
		}
	})
}

func TestReverseCymbal(t *testing.T) {
	g := newGenerator(2, song.StyleTrap)
	cymbal := g.ReverseCymbal(960)

	if len(cymbal) != 8 {
		t.Fatalf("expected 8 slices, got %d", len(cymbal))
	}
	for i, n := range cymbal {
		if n.Pitch != int(g.patterns.Kit.Crash) {
			t.Errorf("slice %d: expected crash, got %d", i, n.Pitch)
		}
		if i > 0 && n.Velocity <= cymbal[i-1].Velocity {
			t.Errorf("velocity should rise, slice %d", i)
		}
	}
	if cymbal[0].Velocity != 40 {
		t.Errorf("swell should start at 40, got %d", cymbal[0].Velocity)
	}
}

func TestImpactAndBeatDrop(t *testing.T) {
	g := newGenerator(3, song.StyleTrap)

	t.Run("impact strikes kick and crash together", func(t *testing.T) {
		impact := g.Impact()
		if len(impact) != 2 {
			t.Fatalf("expected 2 notes, got %d", len(impact))
		}
		for _, n := range impact {
			if n.Start != 0 || n.Velocity != 127 {
				t.Errorf("unexpected impact note %+v", n)
			}
		}
	})

	t.Run("beat drop kicks every beat", func(t *testing.T) {
		tpb := g.patterns.Timing.TicksPerBeat
		drop := g.BeatDrop(4 * tpb)
		kicks := 0
		for _, n := range drop {
			if n.Pitch == int(g.patterns.Kit.Kick) {
				kicks++
			}
		}
		if kicks != 4 {
			t.Errorf("expected 4 kicks, got %d", kicks)
		}
	})
}

func TestApply(t *testing.T) {
	ch := config.DefaultChannels()
	cc := config.DefaultControllers()

	countOnChannel := func(tl *timeline.Timeline, channel uint8) int {
		n := 0
		for _, e := range tl.Events() {
			if e.Channel == channel {
				n++
			}
		}
		return n
	}

	t.Run("sharp rise adds riser and fill", func(t *testing.T) {
		g := newGenerator(4, song.StyleTrap)
		tl := timeline.New()
		g.Apply(tl, 0.2, 0.9, 7680)

		if countOnChannel(tl, ch.SecondaryMelody) == 0 {
			t.Error("expected riser notes on the secondary melody channel")
		}
		if countOnChannel(tl, ch.Drums) == 0 {
			t.Error("expected fill notes on the drum channel")
		}

		// A rise into a loud section also drops the beat.
		foundFullKick := false
		for _, e := range tl.Events() {
			if e.Channel == ch.Drums && e.Velocity == 127 {
				foundFullKick = true
			}
		}
		if !foundFullKick {
			t.Error("expected beat drop kicks at full velocity")
		}
	})

	t.Run("rise fill always ends on a crash", func(t *testing.T) {
		for seed := int64(0); seed < 200; seed++ {
			g := newGenerator(seed, song.StyleTrap)
			tl := timeline.New()
			g.Apply(tl, 0.2, 0.9, 0)

			tm := g.patterns.Timing
			lastSlot := tm.TicksPerBar()/2 - tm.TicksPerBeat/4
			found := false
			for _, e := range tl.Events() {
				if e.Channel == ch.Drums && e.Pitch == int(g.patterns.Kit.Crash) && e.Tick == lastSlot {
					found = true
				}
			}
			if !found {
				t.Fatalf("seed %d: no crash at the fill's last slot", seed)
			}
		}
	})

	t.Run("sharp fall adds a reverse cymbal", func(t *testing.T) {
		g := newGenerator(5, song.StyleTrap)
		tl := timeline.New()
		g.Apply(tl, 0.9, 0.2, 7680)

		crashes := 0
		for _, e := range tl.Events() {
			if e.Pitch == int(g.patterns.Kit.Crash) {
				crashes++
			}
		}
		if crashes < 8 {
			t.Errorf("expected the 8-slice swell, got %d crashes", crashes)
		}
	})

	t.Run("large changes ramp reverb", func(t *testing.T) {
		g := newGenerator(6, song.StyleTrap)
		tl := timeline.New()
		g.Apply(tl, 0.3, 0.9, 0)

		found := false
		for _, c := range tl.Controls() {
			if c.Controller == cc.Reverb && c.Channel == ch.Melody {
				found = true
			}
		}
		if !found {
			t.Error("expected reverb automation on the melody channel")
		}
	})

	t.Run("quiet boundaries ramp delay", func(t *testing.T) {
		g := newGenerator(7, song.StyleTrap)
		tl := timeline.New()
		g.Apply(tl, 0.9, 0.3, 0)

		found := false
		for _, c := range tl.Controls() {
			if c.Controller == cc.Delay {
				found = true
			}
		}
		if !found {
			t.Error("expected delay automation into a quiet section")
		}
	})

	t.Run("moderate change gets only a fill", func(t *testing.T) {
		g := newGenerator(8, song.StyleTrap)
		tl := timeline.New()
		g.Apply(tl, 0.5, 0.6, 0)

		if countOnChannel(tl, ch.SecondaryMelody) != 0 {
			t.Error("no riser expected for a moderate change")
		}
		for _, c := range tl.Controls() {
			if c.Controller == cc.Reverb {
				t.Error("no reverb ramp expected for a small change")
			}
		}
	})
}

func TestApplyEnding(t *testing.T) {
	ch := config.DefaultChannels()

	t.Run("sustained triad and sub-octave bass", func(t *testing.T) {
		g := newGenerator(9, song.StyleTrap)
		tl := timeline.New()
		start := 10 * g.patterns.Timing.TicksPerBar()
		g.ApplyEnding(tl, 0.8, start)

		var chordNotes, bassNotes []timeline.Event
		for _, e := range tl.Events() {
			switch e.Channel {
			case ch.Chords:
				chordNotes = append(chordNotes, e)
			case ch.Bass:
				bassNotes = append(bassNotes, e)
			}
		}
		if len(chordNotes) != 3 {
			t.Fatalf("expected a triad, got %d notes", len(chordNotes))
		}
		root := chordNotes[0].Pitch
		if chordNotes[1].Pitch != root+4 || chordNotes[2].Pitch != root+7 {
			t.Errorf("expected a major triad on %d, got %d %d", root, chordNotes[1].Pitch, chordNotes[2].Pitch)
		}
		if len(bassNotes) != 1 || bassNotes[0].Pitch != root-12 {
			t.Errorf("expected bass an octave below the root, got %v", bassNotes)
		}
	})

	t.Run("loud ending lands an impact before the last tick", func(t *testing.T) {
		g := newGenerator(10, song.StyleTrap)
		tl := timeline.New()
		start := 4 * g.patterns.Timing.TicksPerBar()
		g.ApplyEnding(tl, 0.9, start)

		impactTick := start + g.patterns.Timing.TicksPerBar() - 10
		found := false
		for _, e := range tl.Events() {
			if e.Tick == impactTick && e.Velocity == 127 {
				found = true
			}
		}
		if !found {
			t.Error("expected an impact 10 ticks before the end")
		}
	})

	t.Run("quiet ending fades instead", func(t *testing.T) {
		g := newGenerator(11, song.StyleAmbient)
		tl := timeline.New()
		g.ApplyEnding(tl, 0.3, 0)

		cc := config.DefaultControllers()
		var reverb, delay bool
		for _, c := range tl.Controls() {
			switch c.Controller {
			case cc.Reverb:
				reverb = true
			case cc.Delay:
				delay = true
			case cc.FilterCutoff, cc.FilterResonance:
				t.Error("quiet endings should not sweep the filter")
			}
		}
		if !reverb || !delay {
			t.Error("expected reverb and delay fades")
		}
	})
}
