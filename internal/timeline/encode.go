package timeline

import "sort"

// MsgKind discriminates the wire message types.
type MsgKind uint8

const (
	KindControl MsgKind = iota
	KindNoteOff
	KindNoteOn
)

// Message is one delta-timed channel message. For notes, Key is the pitch
// and Value the velocity; for controls, Key is the controller number.
type Message struct {
	Delta   uint32
	Kind    MsgKind
	Channel uint8
	Key     uint8
	Value   uint8
}

// point is an absolute-tick message used during encoding.
type point struct {
	tick int
	kind MsgKind
	key  uint8
	val  uint8
}

// Finalize converts the accumulated timeline into per-channel delta-encoded
// message streams. Each stream is sorted by absolute tick; at equal ticks
// controls come first, then note-offs, then note-ons, so a controller ramp
// lands before the notes it shapes and re-struck notes retrigger cleanly.
func (t *Timeline) Finalize() map[uint8][]Message {
	byChannel := make(map[uint8][]point)

	for _, e := range t.events {
		byChannel[e.Channel] = append(byChannel[e.Channel],
			point{tick: e.Tick, kind: KindNoteOn, key: uint8(e.Pitch), val: uint8(e.Velocity)},
			point{tick: e.Tick + e.Duration, kind: KindNoteOff, key: uint8(e.Pitch)},
		)
	}
	for _, c := range t.controls {
		byChannel[c.Channel] = append(byChannel[c.Channel],
			point{tick: c.Tick, kind: KindControl, key: c.Controller, val: c.Value})
	}

	out := make(map[uint8][]Message, len(byChannel))
	for channel, points := range byChannel {
		sort.SliceStable(points, func(i, j int) bool {
			if points[i].tick != points[j].tick {
				return points[i].tick < points[j].tick
			}
			return points[i].kind < points[j].kind
		})

		msgs := make([]Message, 0, len(points))
		last := 0
		for _, pt := range points {
			msgs = append(msgs, Message{
				Delta:   uint32(pt.tick - last),
				Kind:    pt.kind,
				Channel: channel,
				Key:     pt.key,
				Value:   pt.val,
			})
			last = pt.tick
		}
		out[channel] = msgs
	}
	return out
}

// Decode reconstructs absolute-tick events and controls from one channel's
// delta-encoded stream. Note-ons are paired with the next matching note-off.
func Decode(msgs []Message) ([]Event, []Control) {
	type open struct {
		idx  int
		tick int
	}
	var events []Event
	var controls []Control
	pending := make(map[uint8][]open)

	tick := 0
	for _, m := range msgs {
		tick += int(m.Delta)
		switch m.Kind {
		case KindControl:
			controls = append(controls, Control{
				Channel:    m.Channel,
				Controller: m.Key,
				Value:      m.Value,
				Tick:       tick,
			})
		case KindNoteOn:
			pending[m.Key] = append(pending[m.Key], open{idx: len(events), tick: tick})
			events = append(events, Event{
				Channel:  m.Channel,
				Pitch:    int(m.Key),
				Velocity: int(m.Value),
				Tick:     tick,
			})
		case KindNoteOff:
			if q := pending[m.Key]; len(q) > 0 {
				events[q[0].idx].Duration = tick - q[0].tick
				pending[m.Key] = q[1:]
			}
		}
	}
	return events, controls
}
