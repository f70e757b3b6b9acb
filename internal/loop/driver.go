// internal/loop/driver.go
package loop

import (
	"context"
	"fmt"
	"time"

	"truck-race/internal/sim"
)

// Renderer получает кадр после каждого шага
type Renderer interface {
	Render(frame sim.Frame) error
}

// Poller — необязательный интерфейс рендерера: опрос ввода в начале шага
type Poller interface {
	Poll()
}

// Driver крутит симуляцию с фиксированной частотой до остановки
type Driver struct {
	sim      *sim.Simulation
	renderer Renderer
	interval time.Duration
}

func NewDriver(s *sim.Simulation, r Renderer, tps int) *Driver {
	if tps < 1 {
		tps = 1
	}
	return &Driver{
		sim:      s,
		renderer: r,
		interval: time.Second / time.Duration(tps),
	}
}

// Step — один логический кадр: ввод, продвижение, отрисовка
func (d *Driver) Step() error {
	if p, ok := d.renderer.(Poller); ok {
		p.Poll()
	}
	if !d.sim.Running() {
		return nil
	}
	if err := d.sim.Step(); err != nil {
		return fmt.Errorf("frame %d: %w", d.sim.FrameNumber(), err)
	}
	if err := d.renderer.Render(d.sim.Snapshot()); err != nil {
		return fmt.Errorf("render frame %d: %w", d.sim.FrameNumber(), err)
	}
	return nil
}

// Run возвращает nil, когда симуляция остановлена или отменён ctx.
// Отмена ctx тоже переводит симуляцию в Stopped.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for d.sim.Running() {
		select {
		case <-ctx.Done():
			d.sim.Stop()
			return nil
		case <-ticker.C:
			if err := d.Step(); err != nil {
				return err
			}
		}
	}
	return nil
}
