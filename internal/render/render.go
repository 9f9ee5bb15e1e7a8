// Package render serializes a finished composition to a Standard MIDI File.
// Track 0 carries meter and tempo; every channel with events gets its own
// track, opened with a program change on melodic channels.
package render

import (
	"fmt"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/Ashmit-Ag/mugen-transformer/internal/composer"
	"github.com/Ashmit-Ag/mugen-transformer/internal/config"
	"github.com/Ashmit-Ag/mugen-transformer/internal/timeline"
)

// Renderer writes compositions as SMF type 1 files.
type Renderer struct {
	Timing   config.Timing
	Channels config.Channels
}

// New returns a Renderer on the given tick grid.
func New(tm config.Timing, ch config.Channels) *Renderer {
	return &Renderer{Timing: tm, Channels: ch}
}

// WriteFile serializes the composition to path.
func (r *Renderer) WriteFile(comp *composer.Composition, path string) error {
	sm, err := r.build(comp)
	if err != nil {
		return err
	}
	if err := sm.WriteFile(path); err != nil {
		return fmt.Errorf("failed to write midi file: %w", err)
	}
	return nil
}

// build assembles the SMF object. Channels are emitted in ascending order
// so the same composition always produces the same file.
func (r *Renderer) build(comp *composer.Composition) (*smf.SMF, error) {
	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(r.Timing.TicksPerBeat)

	var meta smf.Track
	meta.Add(0, smf.MetaMeter(uint8(r.Timing.BeatsPerBar), 4))
	meta.Add(0, smf.MetaTempo(float64(comp.TempoBPM)))
	meta.Close(0)
	if err := sm.Add(meta); err != nil {
		return nil, fmt.Errorf("failed to add tempo track: %w", err)
	}

	channels := make([]uint8, 0, len(comp.Streams))
	for ch := range comp.Streams {
		channels = append(channels, ch)
	}
	sort.Slice(channels, func(i, j int) bool { return channels[i] < channels[j] })

	for _, ch := range channels {
		var track smf.Track

		if prog, ok := comp.Programs[ch]; ok && !r.percussion(ch) {
			track.Add(0, midi.ProgramChange(ch, prog))
		}

		for _, msg := range comp.Streams[ch] {
			track.Add(msg.Delta, r.message(ch, msg))
		}
		track.Close(0)

		if err := sm.Add(track); err != nil {
			return nil, fmt.Errorf("failed to add track for channel %d: %w", ch, err)
		}
	}

	return sm, nil
}

func (r *Renderer) percussion(ch uint8) bool {
	return ch == r.Channels.Drums || ch == r.Channels.SecondaryDrums
}

func (r *Renderer) message(ch uint8, msg timeline.Message) midi.Message {
	switch msg.Kind {
	case timeline.KindNoteOn:
		return midi.NoteOn(ch, msg.Key, msg.Value)
	case timeline.KindNoteOff:
		return midi.NoteOff(ch, msg.Key)
	default:
		return midi.ControlChange(ch, msg.Key, msg.Value)
	}
}
