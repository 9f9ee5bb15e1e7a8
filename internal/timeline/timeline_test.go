package timeline

import (
	"testing"

	"github.com/Ashmit-Ag/mugen-transformer/internal/pattern"
)

func TestAddNoteValidation(t *testing.T) {
	tl := New()
	tl.AddNote(0, 60, 100, 0, 480)
	tl.AddNote(0, -1, 100, 0, 480)   // out of range
	tl.AddNote(0, 128, 100, 0, 480)  // out of range
	tl.AddNote(0, 60, 100, 480, 0)   // zero duration
	tl.AddNote(0, 60, 100, -10, 480) // negative tick
	tl.AddNote(0, 60, 300, 480, 480) // velocity clamped

	events := tl.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[1].Velocity != 127 {
		t.Errorf("expected velocity clamp to 127, got %d", events[1].Velocity)
	}
}

func TestAddPattern(t *testing.T) {
	bar := 1920

	t.Run("tiles short patterns", func(t *testing.T) {
		tl := New()
		p := pattern.Pattern{{Pitch: 36, Velocity: 100, Start: 0, Duration: bar}}
		tl.AddPattern(9, p, 0, 4*bar)
		if got := len(tl.Events()); got != 4 {
			t.Fatalf("expected 4 repeats, got %d", got)
		}
		for i, e := range tl.Events() {
			if e.Tick != i*bar {
				t.Errorf("repeat %d at tick %d, want %d", i, e.Tick, i*bar)
			}
		}
	})

	t.Run("long pattern leaves a silent tail", func(t *testing.T) {
		tl := New()
		p := pattern.Pattern{
			{Pitch: 60, Velocity: 100, Start: 0, Duration: bar},
			{Pitch: 62, Velocity: 100, Start: 5 * bar, Duration: bar},
		}
		tl.AddPattern(2, p, 0, 4*bar)
		events := tl.Events()
		if len(events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(events))
		}
		if events[0].Pitch != 60 {
			t.Errorf("expected the in-section note, got pitch %d", events[0].Pitch)
		}
	})

	t.Run("offsets to the section start", func(t *testing.T) {
		tl := New()
		p := pattern.Pattern{{Pitch: 60, Velocity: 100, Start: 480, Duration: 240}}
		tl.AddPattern(1, p, 10*bar, bar)
		if got := tl.Events()[0].Tick; got != 10*bar+480 {
			t.Errorf("expected tick %d, got %d", 10*bar+480, got)
		}
	})

	t.Run("skips rests and empty patterns", func(t *testing.T) {
		tl := New()
		tl.AddPattern(0, nil, 0, 4*bar)
		tl.AddPattern(0, pattern.Pattern{{Pitch: pattern.Rest, Start: 0, Duration: bar}}, 0, 4*bar)
		if len(tl.Events()) != 0 {
			t.Errorf("expected no events, got %d", len(tl.Events()))
		}
	})
}

func TestFinalize(t *testing.T) {
	t.Run("delta encoding", func(t *testing.T) {
		tl := New()
		tl.AddNote(2, 60, 100, 0, 480)
		tl.AddNote(2, 64, 90, 480, 240)
		msgs := tl.Finalize()[2]

		want := []Message{
			{Delta: 0, Kind: KindNoteOn, Channel: 2, Key: 60, Value: 100},
			{Delta: 480, Kind: KindNoteOff, Channel: 2, Key: 60},
			{Delta: 0, Kind: KindNoteOn, Channel: 2, Key: 64, Value: 90},
			{Delta: 240, Kind: KindNoteOff, Channel: 2, Key: 64},
		}
		if len(msgs) != len(want) {
			t.Fatalf("expected %d messages, got %d", len(want), len(msgs))
		}
		for i := range want {
			if msgs[i] != want[i] {
				t.Errorf("message %d: got %+v, want %+v", i, msgs[i], want[i])
			}
		}
	})

	t.Run("controls precede notes at equal tick", func(t *testing.T) {
		tl := New()
		tl.AddNote(2, 60, 100, 960, 480)
		tl.AddControl(2, 74, 90, 960)
		msgs := tl.Finalize()[2]
		if msgs[0].Kind != KindControl {
			t.Errorf("expected the control first, got kind %d", msgs[0].Kind)
		}
	})

	t.Run("note off precedes restrike", func(t *testing.T) {
		tl := New()
		tl.AddNote(0, 36, 110, 0, 480)
		tl.AddNote(0, 36, 110, 480, 480)
		msgs := tl.Finalize()[0]
		if msgs[1].Kind != KindNoteOff || msgs[2].Kind != KindNoteOn {
			t.Errorf("expected off-then-on at the boundary, got %+v %+v", msgs[1], msgs[2])
		}
	})

	t.Run("channels stay separate", func(t *testing.T) {
		tl := New()
		tl.AddNote(0, 36, 110, 0, 480)
		tl.AddNote(9, 42, 90, 0, 120)
		streams := tl.Finalize()
		if len(streams) != 2 {
			t.Fatalf("expected 2 channels, got %d", len(streams))
		}
		for channel, msgs := range streams {
			for _, m := range msgs {
				if m.Channel != channel {
					t.Errorf("channel %d stream carries message for %d", channel, m.Channel)
				}
			}
		}
	})
}

func TestDecodeRoundTrip(t *testing.T) {
	tl := New()
	tl.AddNote(2, 60, 100, 0, 480)
	tl.AddNote(2, 64, 90, 240, 480)
	tl.AddNote(2, 60, 80, 960, 240)
	tl.AddControl(2, 91, 64, 120)
	tl.AddControl(2, 91, 80, 360)

	events, controls := Decode(tl.Finalize()[2])

	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	wantEvents := []Event{
		{Channel: 2, Pitch: 60, Velocity: 100, Tick: 0, Duration: 480},
		{Channel: 2, Pitch: 64, Velocity: 90, Tick: 240, Duration: 480},
		{Channel: 2, Pitch: 60, Velocity: 80, Tick: 960, Duration: 240},
	}
	for i, want := range wantEvents {
		if events[i] != want {
			t.Errorf("event %d: got %+v, want %+v", i, events[i], want)
		}
	}

	if len(controls) != 2 {
		t.Fatalf("expected 2 controls, got %d", len(controls))
	}
	if controls[0].Tick != 120 || controls[0].Value != 64 {
		t.Errorf("unexpected first control %+v", controls[0])
	}
}

func TestLastTick(t *testing.T) {
	tl := New()
	if tl.LastTick() != 0 {
		t.Error("empty timeline should end at 0")
	}
	tl.AddNote(0, 60, 100, 480, 480)
	tl.AddControl(2, 91, 64, 2000)
	if got := tl.LastTick(); got != 2000 {
		t.Errorf("expected 2000, got %d", got)
	}
}
