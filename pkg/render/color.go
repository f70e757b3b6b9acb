// pkg/render/color.go
package render

import "image/color"

// SceneColors — все цвета, нужные для отрисовки сцены
type SceneColors struct {
	GrassColor     color.RGBA
	TrackColor     color.RGBA
	MarkingColor   color.RGBA
	StartLineColor color.RGBA
	BuildingColor  color.RGBA
	WindowColor    color.RGBA
	WheelColor     color.RGBA
	HubColor       color.RGBA
	TextColor      color.RGBA
	CrowdColors    []color.RGBA
	CabinShade     uint8 // насколько кабина темнее кузова
}

// toVertexColor переводит 8-битные каналы в [0, 1] для вершин ebiten
func toVertexColor(c color.RGBA) (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}
