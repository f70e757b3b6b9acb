// Package scenery раскладывает статичные и анимированные декорации сцены.
// Здесь только координаты и цвета, рисуют рендереры.
package scenery

import (
	"image/color"
	"math"
)

// Rect — прямоугольник в пикселях сцены
type Rect struct {
	X, Y, W, H float64
}

// Block — залитый прямоугольник
type Block struct {
	Rect
	Color color.RGBA
}

const (
	BuildingCount   = 8
	BuildingX       = 120
	BuildingSpacing = 80
	BuildingY       = 100
	BuildingW       = 40
	BuildingH       = 60
	WindowSize      = 10

	CrowdSize      = 10
	CrowdAmplitude = 3
	CrowdFrequency = 0.2
	CrowdSideCount = 40
	CrowdSideTop   = 100
	CrowdLeftX     = 50
	CrowdRightX    = 740
	CrowdRowCount  = 60
	CrowdRowLeft   = 100
	CrowdTopY      = 50
	CrowdBottomY   = 540
)

// Buildings возвращает здания, а за ними их окна
func Buildings(body, window color.RGBA) []Block {
	blocks := make([]Block, 0, BuildingCount*3)
	for i := 0; i < BuildingCount; i++ {
		x := float64(BuildingX + i*BuildingSpacing)
		blocks = append(blocks, Block{Rect{x, BuildingY, BuildingW, BuildingH}, body})
	}
	for i := 0; i < BuildingCount; i++ {
		x := float64(BuildingX + i*BuildingSpacing)
		blocks = append(blocks,
			Block{Rect{x + 10, BuildingY + 10, WindowSize, WindowSize}, window},
			Block{Rect{x + 20, BuildingY + 30, WindowSize, WindowSize}, window},
		)
	}
	return blocks
}

// CrowdOffset — вертикальное покачивание i-го зрителя в кадре frame
func CrowdOffset(frame, i int) float64 {
	return float64(int(CrowdAmplitude * math.Sin(CrowdFrequency*float64(frame+i))))
}

// Crowd возвращает зрителей вокруг трассы: две боковые колонны и два ряда,
// цвета идут по кругу из palette
func Crowd(frame int, palette []color.RGBA) []Block {
	if len(palette) == 0 {
		return nil
	}
	blocks := make([]Block, 0, 2*CrowdSideCount+2*CrowdRowCount)
	for i := 0; i < CrowdSideCount; i++ {
		y := float64(CrowdSideTop+i*CrowdSize) + CrowdOffset(frame, i)
		c := palette[i%len(palette)]
		blocks = append(blocks,
			Block{Rect{CrowdLeftX, y, CrowdSize, CrowdSize}, c},
			Block{Rect{CrowdRightX, y, CrowdSize, CrowdSize}, c},
		)
	}
	for i := 0; i < CrowdRowCount; i++ {
		x := float64(CrowdRowLeft + i*CrowdSize)
		off := CrowdOffset(frame, i)
		c := palette[i%len(palette)]
		blocks = append(blocks,
			Block{Rect{x, CrowdTopY + off, CrowdSize, CrowdSize}, c},
			Block{Rect{x, CrowdBottomY + off, CrowdSize, CrowdSize}, c},
		)
	}
	return blocks
}

// StartLine — концы линии старта у первой точки трассы, на полширины трассы левее
func StartLine(x, y, trackWidth, halfHeight float64) (x0, y0, x1, y1 float64) {
	lx := x - float64(int(trackWidth)/2)
	return lx, y - halfHeight, lx, y + halfHeight
}

// DarkenColor вычитает amount из каждого канала, не уходя ниже нуля
func DarkenColor(c color.RGBA, amount uint8) color.RGBA {
	sub := func(v uint8) uint8 {
		if v < amount {
			return 0
		}
		return v - amount
	}
	return color.RGBA{R: sub(c.R), G: sub(c.G), B: sub(c.B), A: c.A}
}
