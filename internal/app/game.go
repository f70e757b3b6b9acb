// internal/app/game.go
package app

import (
	"errors"
	"log"

	"truck-race/internal/config"
	"truck-race/internal/event"
	"truck-race/internal/sim"
	"truck-race/pkg/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AppGame связывает симуляцию с игровым циклом ebiten: Update — шаг
// симуляции, Draw — отрисовка последнего кадра
type AppGame struct {
	sim      *sim.Simulation
	renderer *render.SceneRenderer
	events   *event.Dispatcher
}

func NewAppGame(s *sim.Simulation, renderer *render.SceneRenderer, events *event.Dispatcher) *AppGame {
	return &AppGame{sim: s, renderer: renderer, events: events}
}

// DefaultSceneColors собирает палитру сцены из config
func DefaultSceneColors() *render.SceneColors {
	return &render.SceneColors{
		GrassColor:     config.GrassColor,
		TrackColor:     config.TrackColor,
		MarkingColor:   config.MarkingColor,
		StartLineColor: config.StartLineColor,
		BuildingColor:  config.BuildingColor,
		WindowColor:    config.WindowColor,
		WheelColor:     config.WheelColor,
		HubColor:       config.HubColor,
		TextColor:      config.HUDTextColor,
		CrowdColors:    config.CrowdColors,
		CabinShade:     50,
	}
}

func (a *AppGame) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.events.Dispatch(event.Event{Type: event.StopRequested, Data: "window"})
	}
	if !a.sim.Running() {
		return ebiten.Termination
	}
	return a.sim.Step()
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen, a.sim.Snapshot())
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

// RunWindow открывает окно и крутит цикл до закрытия. Частоту шагов задаёт ebiten.
func RunWindow(s *sim.Simulation, events *event.Dispatcher, tps int) error {
	face, err := render.LoadFontFace(config.HUDFontSize)
	if err != nil {
		return err
	}
	renderer := render.NewSceneRenderer(s.Path(), config.ScreenWidth, config.ScreenHeight, face, DefaultSceneColors())
	defer renderer.Dispose()

	ebiten.SetTPS(tps)
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowClosingHandled(true)

	log.Printf("Window backend started at %d TPS", tps)
	err = ebiten.RunGame(NewAppGame(s, renderer, events))
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	s.Stop()
	return nil
}
