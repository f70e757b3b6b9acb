// internal/sim/simulation.go
package sim

import (
	"fmt"
	"image/color"
	"log"
	"runtime"

	"truck-race/internal/component"
	"truck-race/internal/config"
	"truck-race/internal/event"
	"truck-race/internal/utils"
	"truck-race/pkg/track"

	"github.com/golang/geo/r2"
	"golang.org/x/sync/errgroup"
)

// Phase — состояние симуляции. Переход только Running → Stopped.
type Phase int

const (
	Running Phase = iota
	Stopped
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// TruckSprite — точка отрисовки грузовика: левый верхний угол его габарита
type TruckSprite struct {
	X, Y  float64
	Color color.RGBA
}

// Frame — всё, что рендерер получает за один кадр
type Frame struct {
	Number int
	Trucks []TruckSprite
}

// Simulation владеет трассой и составом грузовиков
type Simulation struct {
	path      *track.Path
	trucks    []*component.Truck
	footprint r2.Point
	frame     int
	phase     Phase
	parallel  bool
	events    *event.Dispatcher
}

// New собирает симуляцию из готовой трассы и грузовиков. events может быть nil.
func New(path *track.Path, trucks []*component.Truck, events *event.Dispatcher) *Simulation {
	s := &Simulation{
		path:      path,
		trucks:    trucks,
		footprint: r2.Point{X: config.TruckWidth, Y: config.TruckHeight},
		phase:     Running,
		events:    events,
	}
	if events != nil {
		events.Subscribe(event.StopRequested, s)
	}
	return s
}

// NewFromSettings строит трассу и состав по настройкам
func NewFromSettings(settings *config.Settings, rng *utils.PRNGService, events *event.Dispatcher) (*Simulation, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	path, err := track.FromPairs(settings.Waypoints)
	if err != nil {
		return nil, fmt.Errorf("building track: %w", err)
	}

	trucks := NewRoster(path.TotalLength(), settings, rng)
	log.Printf("Track length %.1f, %d trucks, seed %d", path.TotalLength(), len(trucks), rng.Seed())

	s := New(path, trucks, events)
	s.parallel = settings.Parallel
	return s, nil
}

// NewRoster раскладывает грузовики по старту: каждый следующий на StartSpacing
// позади предыдущего, полосы и цвета по кругу, базовая скорость случайная.
func NewRoster(totalLength float64, settings *config.Settings, rng *utils.PRNGService) []*component.Truck {
	trucks := make([]*component.Truck, 0, settings.Trucks)
	for i := 0; i < settings.Trucks; i++ {
		speed := rng.Uniform(settings.SpeedMin, settings.SpeedMax)
		start := track.Normalize(totalLength-float64(i)*settings.StartSpacing, totalLength)
		lane := settings.LaneOffsets[i%len(settings.LaneOffsets)]
		c := config.TruckColors[i%len(config.TruckColors)]
		trucks = append(trucks, component.NewTruck(c, start, speed, lane))
	}
	return trucks
}

// SetParallel включает продвижение грузовиков в нескольких горутинах
func (s *Simulation) SetParallel(parallel bool) {
	s.parallel = parallel
}

// Step — один тик: счётчик кадров и все грузовики. После Stop ничего не делает.
func (s *Simulation) Step() error {
	if s.phase != Running {
		return nil
	}
	s.frame++

	if !s.parallel {
		for _, t := range s.trucks {
			t.Tick(s.path)
		}
		return nil
	}

	// трасса неизменяема, каждый грузовик трогает только себя
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, t := range s.trucks {
		t := t
		g.Go(func() error {
			t.Tick(s.path)
			return nil
		})
	}
	return g.Wait()
}

// Snapshot возвращает кадр для рендерера
func (s *Simulation) Snapshot() Frame {
	half := s.footprint.Mul(0.5)
	f := Frame{Number: s.frame, Trucks: make([]TruckSprite, len(s.trucks))}
	for i, t := range s.trucks {
		pos := t.Position(s.path).Sub(half)
		f.Trucks[i] = TruckSprite{X: pos.X, Y: pos.Y, Color: t.Color}
	}
	return f
}

// Stop переводит симуляцию в Stopped; повторный вызов ничего не делает
func (s *Simulation) Stop() {
	if s.phase == Stopped {
		return
	}
	s.phase = Stopped
	log.Printf("Simulation stopped after %d frames", s.frame)
	if s.events != nil {
		s.events.Dispatch(event.Event{Type: event.SimulationStopped, Data: s.frame})
	}
}

// OnEvent реализует event.Listener
func (s *Simulation) OnEvent(e event.Event) {
	if e.Type == event.StopRequested {
		s.Stop()
	}
}

func (s *Simulation) Phase() Phase {
	return s.phase
}

func (s *Simulation) Running() bool {
	return s.phase == Running
}

func (s *Simulation) FrameNumber() int {
	return s.frame
}

func (s *Simulation) Path() *track.Path {
	return s.path
}
