// Package automation writes controller curves onto a timeline: filter
// sweeps, effect ramps, volume fades and pan sweeps. Curves are sampled as
// stepped CC changes, matching what GM synths expect.
package automation

import (
	"github.com/Ashmit-Ag/mugen-transformer/internal/config"
	"github.com/Ashmit-Ag/mugen-transformer/internal/timeline"
)

// Step counts for the sampled curves. Sweeps and fades are finer than
// plain effect ramps.
const (
	sweepSteps = 16
	rampSteps  = 8
)

// Automator emits controller automation using a fixed CC wiring.
type Automator struct {
	Controllers config.Controllers
}

// New returns an Automator for the given controller wiring.
func New(cc config.Controllers) *Automator {
	return &Automator{Controllers: cc}
}

// curve writes steps+1 linearly interpolated values of one controller.
func curve(tl *timeline.Timeline, channel, controller uint8, from, to, duration, startTick, steps int) {
	if duration <= 0 || steps <= 0 {
		return
	}
	span := float64(to - from)
	timeStep := duration / steps
	for i := 0; i <= steps; i++ {
		value := from + int(span*float64(i)/float64(steps))
		if value < 0 {
			value = 0
		}
		if value > 127 {
			value = 127
		}
		tl.AddControl(channel, controller, uint8(value), startTick+i*timeStep)
	}
}

// FilterSweep sweeps the filter cutoff from one value to another while
// holding resonance, over the given span.
func (a *Automator) FilterSweep(tl *timeline.Timeline, channel uint8, fromCutoff, toCutoff, resonance, duration, startTick int) {
	if duration <= 0 {
		return
	}
	curve(tl, channel, a.Controllers.FilterCutoff, fromCutoff, toCutoff, duration, startTick, sweepSteps)
	if resonance < 0 {
		resonance = 0
	}
	if resonance > 127 {
		resonance = 127
	}
	timeStep := duration / sweepSteps
	for i := 0; i <= sweepSteps; i++ {
		tl.AddControl(channel, a.Controllers.FilterResonance, uint8(resonance), startTick+i*timeStep)
	}
}

// Ramp linearly automates an arbitrary controller between two values.
func (a *Automator) Ramp(tl *timeline.Timeline, channel, controller uint8, from, to, duration, startTick int) {
	curve(tl, channel, controller, from, to, duration, startTick, rampSteps)
}

// ReverbRamp automates the reverb send level.
func (a *Automator) ReverbRamp(tl *timeline.Timeline, channel uint8, from, to, duration, startTick int) {
	a.Ramp(tl, channel, a.Controllers.Reverb, from, to, duration, startTick)
}

// DelayRamp automates the delay send level.
func (a *Automator) DelayRamp(tl *timeline.Timeline, channel uint8, from, to, duration, startTick int) {
	a.Ramp(tl, channel, a.Controllers.Delay, from, to, duration, startTick)
}

// VolumeFade fades the channel volume between two levels.
func (a *Automator) VolumeFade(tl *timeline.Timeline, channel uint8, from, to, duration, startTick int) {
	curve(tl, channel, a.Controllers.Volume, from, to, duration, startTick, sweepSteps)
}

// PanSweep moves the channel pan position between two values (64 is
// center).
func (a *Automator) PanSweep(tl *timeline.Timeline, channel uint8, from, to, duration, startTick int) {
	curve(tl, channel, a.Controllers.Pan, from, to, duration, startTick, sweepSteps)
}
