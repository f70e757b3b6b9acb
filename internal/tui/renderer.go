// internal/tui/renderer.go
package tui

import (
	"fmt"
	"image/color"

	"truck-race/internal/config"
	"truck-race/internal/event"
	"truck-race/internal/sim"
	"truck-race/pkg/scenery"
	"truck-race/pkg/track"

	"github.com/gdamore/tcell/v2"
)

const (
	truckRune   = '■'
	crowdRune   = '▪'
	markingRune = '·'
	startRune   = '┃'
	sampleStep  = 2.0 // шаг выборки трассы в пикселях сцены
)

// Renderer рисует сцену в терминале, уменьшая её 800×600 до размеров экрана
type Renderer struct {
	screen tcell.Screen
	path   *track.Path
	events *event.Dispatcher
	input  chan tcell.Event
	quit   chan struct{}

	// кэш клеток трассы для текущего размера экрана
	width, height int
	trackCells    []bool
	markingCells  []bool
}

// NewRenderer инициализирует экран и начинает читать ввод
func NewRenderer(screen tcell.Screen, path *track.Path, events *event.Dispatcher) (*Renderer, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	screen.HideCursor()

	r := &Renderer{
		screen: screen,
		path:   path,
		events: events,
		input:  make(chan tcell.Event, 64),
		quit:   make(chan struct{}),
	}
	go r.readInput()
	return r, nil
}

func (r *Renderer) readInput() {
	for {
		ev := r.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case r.input <- ev:
		case <-r.quit:
			return
		}
	}
}

// Poll разбирает накопленный ввод. Вызывается из цикла, поэтому события
// диспетчера уходят из той же горутины, что и шаги симуляции.
func (r *Renderer) Poll() {
	for {
		select {
		case ev := <-r.input:
			r.handle(ev)
		default:
			return
		}
	}
}

func (r *Renderer) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			r.events.Dispatch(event.Event{Type: event.StopRequested, Data: "terminal"})
		}
	case *tcell.EventResize:
		r.screen.Sync()
	}
}

// Render реализует loop.Renderer
func (r *Renderer) Render(frame sim.Frame) error {
	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		return nil
	}
	if w != r.width || h != r.height {
		r.layoutTrack(w, h)
	}

	grass := tcell.StyleDefault.Background(rgb(config.GrassColor))
	road := tcell.StyleDefault.Background(rgb(config.TrackColor))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			switch {
			case r.markingCells[i]:
				r.screen.SetContent(x, y, markingRune, nil, road.Foreground(rgb(config.MarkingColor)))
			case r.trackCells[i]:
				r.screen.SetContent(x, y, ' ', nil, road)
			default:
				r.screen.SetContent(x, y, ' ', nil, grass)
			}
		}
	}

	start := r.path.Waypoints()[0]
	x0, y0, _, y1 := scenery.StartLine(start.X, start.Y, config.TrackWidth, config.StartLineHalfHeight)
	for sy := y0; sy <= y1; sy += sampleStep {
		cx, cy := r.toCell(x0, sy)
		r.setCell(cx, cy, startRune, config.StartLineColor)
	}

	for _, b := range scenery.Buildings(config.BuildingColor, config.WindowColor) {
		r.fillBlock(b)
	}
	for _, b := range scenery.Crowd(frame.Number, config.CrowdColors) {
		cx, cy := r.toCell(b.X+b.W/2, b.Y+b.H/2)
		r.setCell(cx, cy, crowdRune, b.Color)
	}

	for _, t := range frame.Trucks {
		cx, cy := r.toCell(t.X+config.TruckWidth/2, t.Y+config.TruckHeight/2)
		r.setCell(cx, cy, truckRune, t.Color)
		r.setCell(cx+1, cy, truckRune, t.Color)
	}

	hud := fmt.Sprintf(" Frame %d  q/Esc: quit ", frame.Number)
	style := tcell.StyleDefault.Foreground(rgb(config.HUDTextColor)).Background(tcell.ColorBlack)
	for i, c := range hud {
		if i >= w {
			break
		}
		r.screen.SetContent(i, 0, c, nil, style)
	}

	r.screen.Show()
	return nil
}

// layoutTrack заново размечает клетки трассы и осевой под новый размер
func (r *Renderer) layoutTrack(w, h int) {
	r.width, r.height = w, h
	r.trackCells = make([]bool, w*h)
	r.markingCells = make([]bool, w*h)

	half := float64(config.TrackWidth) / 2
	for d := 0.0; d < r.path.TotalLength(); d += sampleStep {
		for off := -half; off <= half; off += sampleStep {
			p := r.path.PositionAt(d, off)
			if i, ok := r.index(p.X, p.Y); ok {
				r.trackCells[i] = true
			}
		}
		p := r.path.PositionAt(d, 0)
		if i, ok := r.index(p.X, p.Y); ok {
			r.markingCells[i] = true
		}
	}
}

func (r *Renderer) fillBlock(b scenery.Block) {
	x0, y0 := r.toCell(b.X, b.Y)
	x1, y1 := r.toCell(b.X+b.W, b.Y+b.H)
	style := tcell.StyleDefault.Background(rgb(b.Color))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if x >= 0 && y >= 0 && x < r.width && y < r.height {
				r.screen.SetContent(x, y, ' ', nil, style)
			}
		}
	}
}

func (r *Renderer) setCell(x, y int, ch rune, c color.RGBA) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	_, _, style, _ := r.screen.GetContent(x, y)
	r.screen.SetContent(x, y, ch, nil, style.Foreground(rgb(c)))
}

func (r *Renderer) toCell(x, y float64) (int, int) {
	return int(x * float64(r.width) / config.ScreenWidth), int(y * float64(r.height) / config.ScreenHeight)
}

func (r *Renderer) index(x, y float64) (int, bool) {
	cx, cy := r.toCell(x, y)
	if x < 0 || y < 0 || cx >= r.width || cy >= r.height {
		return 0, false
	}
	return cy*r.width + cx, true
}

// Close возвращает терминал в исходное состояние
func (r *Renderer) Close() {
	close(r.quit)
	r.screen.Fini()
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
