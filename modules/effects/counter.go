package effects

import (
	"context"
	"errors"
	"math"

	"github.com/dmitrymomot/storefront/pkg/statemachine"
)

// CounterSteps is the number of increments a counter takes to reach its
// target.
const CounterSteps = 100

// CounterFrames returns the values a counter shows on each animation
// frame: floor of a running total increased by target/CounterSteps, then
// target itself. Targets of zero or less yield a single frame.
func CounterFrames(target int) []int {
	if target <= 0 {
		return []int{target}
	}

	goal := float64(target)
	increment := goal / CounterSteps
	frames := make([]int, 0, CounterSteps+2)
	for current := 0.0; current < goal; {
		current += increment
		frames = append(frames, int(math.Floor(current)))
	}
	return append(frames, target)
}

// Counter group states and events.
var (
	CountersNotStarted = statemachine.StringState("not_started")
	CountersRunning    = statemachine.StringState("running")
	CountersDone       = statemachine.StringState("done")

	countersStart  = statemachine.StringEvent("start")
	countersFinish = statemachine.StringEvent("finish")
)

// Counter is one animated figure.
type Counter struct {
	Key    string
	Target int
}

// CounterGroup animates a set of counters once.
type CounterGroup struct {
	counters []Counter
	fsm      *statemachine.Machine
}

func NewCounterGroup(counters ...Counter) *CounterGroup {
	return &CounterGroup{
		counters: counters,
		fsm: statemachine.MustNew(CountersNotStarted,
			statemachine.WithTransition(CountersNotStarted, CountersRunning, countersStart),
			statemachine.WithTransition(CountersRunning, CountersDone, countersFinish),
		),
	}
}

func (g *CounterGroup) State() statemachine.State {
	return g.fsm.Current()
}

// Start moves the group to running and returns its frames. A group that
// was already started returns ErrAlreadyAnimated.
func (g *CounterGroup) Start(ctx context.Context) (*Playback, error) {
	if err := g.fsm.Fire(ctx, countersStart, nil); err != nil {
		if errors.Is(err, statemachine.ErrNoTransition) {
			return nil, ErrAlreadyAnimated
		}
		return nil, err
	}

	p := &Playback{group: g, frames: make([][]int, len(g.counters))}
	for i, c := range g.counters {
		p.frames[i] = CounterFrames(c.Target)
		p.steps = max(p.steps, len(p.frames[i]))
	}
	return p, nil
}

// Playback steps through the frames of a started group.
type Playback struct {
	group  *CounterGroup
	frames [][]int
	step   int
	steps  int
}

// Len is the number of frames.
func (p *Playback) Len() int {
	return p.steps
}

// Next returns the value of every counter for the next frame. Counters
// that already reached their target keep it. After the last frame the
// group is marked done and ok is false.
func (p *Playback) Next(ctx context.Context) (values map[string]int, ok bool) {
	if p.step >= p.steps {
		if p.group.fsm.Is(CountersRunning) {
			_ = p.group.fsm.Fire(ctx, countersFinish, nil)
		}
		return nil, false
	}

	values = make(map[string]int, len(p.frames))
	for i, c := range p.group.counters {
		f := p.frames[i]
		values[c.Key] = f[min(p.step, len(f)-1)]
	}
	p.step++
	return values, true
}
