// Package timeline assembles generated patterns into per-channel event
// streams and encodes them into delta-timed messages. Accumulation is
// append-only; ordering happens once at finalization.
package timeline

import (
	"github.com/Ashmit-Ag/mugen-transformer/internal/pattern"
)

// Event is one sounding note at an absolute tick.
type Event struct {
	Channel  uint8
	Pitch    int
	Velocity int
	Tick     int
	Duration int
}

// Control is one controller change at an absolute tick.
type Control struct {
	Channel    uint8
	Controller uint8
	Value      uint8
	Tick       int
}

// Timeline accumulates events and controls for a whole composition.
type Timeline struct {
	events   []Event
	controls []Control
}

// New returns an empty timeline.
func New() *Timeline {
	return &Timeline{}
}

// AddNote appends a note event. Notes with non-positive duration or a pitch
// outside the MIDI range are ignored.
func (t *Timeline) AddNote(channel uint8, pitch, velocity, tick, duration int) {
	if duration <= 0 || pitch < 0 || pitch > 127 || tick < 0 {
		return
	}
	if velocity < 1 {
		velocity = 1
	}
	if velocity > 127 {
		velocity = 127
	}
	t.events = append(t.events, Event{
		Channel:  channel,
		Pitch:    pitch,
		Velocity: velocity,
		Tick:     tick,
		Duration: duration,
	})
}

// AddControl appends a controller change.
func (t *Timeline) AddControl(channel, controller, value uint8, tick int) {
	if tick < 0 {
		return
	}
	t.controls = append(t.controls, Control{
		Channel:    channel,
		Controller: controller,
		Value:      value,
		Tick:       tick,
	})
}

// AddPattern tiles a pattern across a section. The pattern repeats
// max(1, sectionTicks/patternTicks) times; notes whose local start falls at
// or beyond the section span are dropped, so a pattern longer than its
// repeats leaves the tail silent rather than spilling into the next section.
// Rests are skipped. Zero-length patterns are ignored.
func (t *Timeline) AddPattern(channel uint8, p pattern.Pattern, sectionStart, sectionTicks int) {
	span := p.Ticks()
	if span == 0 {
		return
	}
	repeats := sectionTicks / span
	if repeats < 1 {
		repeats = 1
	}
	for rep := 0; rep < repeats; rep++ {
		offset := rep * span
		for _, n := range p {
			if n.IsRest() {
				continue
			}
			local := n.Start + offset
			if local >= sectionTicks {
				continue
			}
			t.AddNote(channel, n.Pitch, n.Velocity, sectionStart+local, n.Duration)
		}
	}
}

// Events returns the accumulated note events.
func (t *Timeline) Events() []Event { return t.events }

// Controls returns the accumulated controller changes.
func (t *Timeline) Controls() []Control { return t.controls }

// LastTick returns the largest tick any event or control reaches.
func (t *Timeline) LastTick() int {
	var last int
	for _, e := range t.events {
		if end := e.Tick + e.Duration; end > last {
			last = end
		}
	}
	for _, c := range t.controls {
		if c.Tick > last {
			last = c.Tick
		}
	}
	return last
}
