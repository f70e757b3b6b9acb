// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 800
	ScreenHeight = 600
	WindowTitle  = "Realistic Truck Race with Crowd and Buildings"

	TruckWidth  = 60
	TruckHeight = 40

	TrackWidth          = 100
	TrackLineWidth      = 5
	StartLineWidth      = 6
	StartLineHalfHeight = 40
	LaneMargin          = 20 // отступ крайней полосы от обочины

	DefaultTPS          = 60
	DefaultTruckCount   = 5
	DefaultSpeedMin     = 1.5
	DefaultSpeedMax     = 3.5
	DefaultStartSpacing = 15.0

	HUDFontSize = 14
	HUDOffsetX  = 10
	HUDOffsetY  = 20
)

// DefaultTrackPoints — плавная трасса с лёгкими зигзагами, замкнутая
var DefaultTrackPoints = [][2]float64{
	{150, 500}, {250, 450}, {400, 400}, {550, 450}, {650, 500},
	{700, 400}, {650, 300}, {550, 250}, {400, 200}, {250, 250},
	{150, 300}, {100, 400}, {150, 500},
}

var (
	GrassColor     = color.RGBA{34, 139, 34, 255}
	TrackColor     = color.RGBA{105, 105, 105, 255}
	MarkingColor   = color.RGBA{255, 255, 255, 255}
	WheelColor     = color.RGBA{0, 0, 0, 255}
	HubColor       = color.RGBA{255, 255, 255, 255}
	StartLineColor = color.RGBA{255, 215, 0, 255}
	BuildingColor  = color.RGBA{169, 169, 169, 255}
	WindowColor    = color.RGBA{105, 105, 105, 255}
	HUDTextColor   = color.RGBA{240, 240, 240, 255}

	CrowdColors = []color.RGBA{
		{255, 0, 0, 255},     // Red
		{0, 0, 255, 255},     // Blue
		{255, 255, 0, 255},   // Yellow
		{0, 255, 0, 255},     // Green
		{255, 105, 180, 255}, // Pink
	}
	TruckColors = []color.RGBA{
		{200, 0, 0, 255},   // Red
		{0, 100, 255, 255}, // Blue
		{0, 200, 100, 255}, // Green
		{255, 165, 0, 255}, // Orange
		{180, 0, 180, 255}, // Purple
	}
)

// DefaultLaneOffsets — пять полос: обе крайние, две промежуточные и осевая
func DefaultLaneOffsets() []float64 {
	maxOffset := float64(TrackWidth/2 - LaneMargin)
	half := float64((TrackWidth/2 - LaneMargin) / 2)
	return []float64{-maxOffset, -half, 0, half, maxOffset}
}
