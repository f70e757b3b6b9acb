package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"truck-race/internal/config"
	"truck-race/internal/event"
	"truck-race/internal/sim"
	"truck-race/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRenderer struct {
	frames []sim.Frame
	polls  int
	err    error
	onPoll func(polls int)
}

func (r *recordingRenderer) Render(f sim.Frame) error {
	r.frames = append(r.frames, f)
	return r.err
}

func (r *recordingRenderer) Poll() {
	r.polls++
	if r.onPoll != nil {
		r.onPoll(r.polls)
	}
}

func newSim(t *testing.T, events *event.Dispatcher) *sim.Simulation {
	t.Helper()
	s, err := sim.NewFromSettings(config.DefaultSettings(), utils.NewPRNGService(3), events)
	require.NoError(t, err)
	return s
}

func TestStepRendersEveryFrame(t *testing.T) {
	s := newSim(t, nil)
	r := &recordingRenderer{}
	d := NewDriver(s, r, 60)

	for i := 0; i < 3; i++ {
		require.NoError(t, d.Step())
	}

	require.Len(t, r.frames, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{r.frames[0].Number, r.frames[1].Number, r.frames[2].Number})
	assert.Len(t, r.frames[2].Trucks, config.DefaultTruckCount)
	assert.Equal(t, 3, r.polls)
}

func TestRunStopsOnStopRequested(t *testing.T) {
	events := event.NewDispatcher()
	s := newSim(t, events)
	r := &recordingRenderer{}
	r.onPoll = func(polls int) {
		if polls == 5 {
			events.Dispatch(event.Event{Type: event.StopRequested})
		}
	}
	d := NewDriver(s, r, 1000)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Run(ctx))

	assert.Equal(t, sim.Stopped, s.Phase())
	assert.Len(t, r.frames, 4)
	assert.Equal(t, 4, s.FrameNumber())
}

func TestRunStopsOnContextCancel(t *testing.T) {
	s := newSim(t, nil)
	d := NewDriver(s, &recordingRenderer{}, 1000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, d.Run(ctx))
	assert.Equal(t, sim.Stopped, s.Phase())
}

func TestRunPropagatesRenderError(t *testing.T) {
	s := newSim(t, nil)
	boom := errors.New("surface lost")
	d := NewDriver(s, &recordingRenderer{err: boom}, 1000)

	err := d.Run(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "render frame 1")
}
