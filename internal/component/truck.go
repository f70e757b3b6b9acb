// internal/component/truck.go
package component

import (
	"image/color"
	"math"

	"truck-race/pkg/track"

	"github.com/golang/geo/r2"
)

// Track — то, что грузовику нужно знать о трассе
type Track interface {
	TotalLength() float64
	PositionAt(distance, lateralOffset float64) r2.Point
}

// SpeedPerturbation возвращает добавку к базовой скорости для номера тика
type SpeedPerturbation func(tick int) float64

const (
	PerturbationAmplitude = 0.5
	PerturbationPeriod    = 60.0
)

// SineSpeedPerturbation — плавное колебание скорости, |delta| <= 0.5.
// При базовой скорости меньше 0.5 грузовик может ненадолго поехать назад.
func SineSpeedPerturbation(tick int) float64 {
	return math.Sin(float64(tick)/PerturbationPeriod) * PerturbationAmplitude
}

// NoSpeedPerturbation отключает колебание
func NoSpeedPerturbation(int) float64 {
	return 0
}

// Truck — один грузовик на трассе
type Truck struct {
	Color        color.RGBA
	Distance     float64 // пройденный путь, после первого тика в [0, длина трассы)
	BaseSpeed    float64
	Speed        float64 // фактическая скорость последнего тика
	LaneOffset   float64 // смещение от осевой, знак задаёт сторону
	Ticks        int
	Perturbation SpeedPerturbation
}

func NewTruck(c color.RGBA, startDistance, baseSpeed, laneOffset float64) *Truck {
	return &Truck{
		Color:        c,
		Distance:     startDistance,
		BaseSpeed:    baseSpeed,
		Speed:        baseSpeed,
		LaneOffset:   laneOffset,
		Perturbation: SineSpeedPerturbation,
	}
}

// Tick продвигает грузовик на один шаг симуляции
func (t *Truck) Tick(tr Track) {
	t.Ticks++
	perturb := t.Perturbation
	if perturb == nil {
		perturb = NoSpeedPerturbation
	}
	t.Speed = t.BaseSpeed + perturb(t.Ticks)
	t.Distance = track.Normalize(t.Distance+t.Speed, tr.TotalLength())
}

// Position — точка на своей полосе
func (t *Truck) Position(tr Track) r2.Point {
	return tr.PositionAt(t.Distance, t.LaneOffset)
}
