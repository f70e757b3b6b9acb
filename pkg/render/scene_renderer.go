package render

import (
	"fmt"
	"image/color"

	"truck-race/internal/config"
	"truck-race/internal/sim"
	"truck-race/pkg/scenery"
	"truck-race/pkg/track"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// SceneRenderer рисует трассу, декорации и грузовики
type SceneRenderer struct {
	path         *track.Path
	colors       *SceneColors
	screenWidth  int
	screenHeight int
	fillImg      *ebiten.Image
	fillVs       []ebiten.Vertex
	fillIs       []uint16
	fontFace     font.Face
	background   *ebiten.Image // предрендеренный статичный задник
}

// LoadFontFace создаёт шрифт HUD из встроенного Go Regular
func LoadFontFace(size float64) (font.Face, error) {
	tt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return face, nil
}

func NewSceneRenderer(path *track.Path, screenWidth, screenHeight int, face font.Face, colors *SceneColors) *SceneRenderer {
	fillImg := ebiten.NewImage(1, 1)
	fillImg.Fill(color.White)

	r := &SceneRenderer{
		path:         path,
		colors:       colors,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		fillImg:      fillImg,
		fillVs:       make([]ebiten.Vertex, 0, 64),
		fillIs:       make([]uint16, 0, 64),
		fontFace:     face,
		background:   ebiten.NewImage(screenWidth, screenHeight),
	}

	// Задник рисуется один раз при инициализации
	r.RenderBackground()
	return r
}

// RenderBackground перерисовывает статичную часть сцены: трава, трасса,
// разметка, линия старта и здания
func (r *SceneRenderer) RenderBackground() {
	r.background.Clear()
	r.background.Fill(r.colors.GrassColor)

	waypoints := r.path.Waypoints()
	trackPath := vector.Path{}
	for i, p := range waypoints {
		if i == 0 {
			trackPath.MoveTo(float32(p.X), float32(p.Y))
		} else {
			trackPath.LineTo(float32(p.X), float32(p.Y))
		}
	}
	trackPath.Close()

	r.strokePath(r.background, &trackPath, config.TrackWidth, r.colors.TrackColor)
	r.strokePath(r.background, &trackPath, config.TrackLineWidth, r.colors.MarkingColor)

	start := waypoints[0]
	x0, y0, x1, y1 := scenery.StartLine(start.X, start.Y, config.TrackWidth, config.StartLineHalfHeight)
	vector.StrokeLine(r.background, float32(x0), float32(y0), float32(x1), float32(y1), config.StartLineWidth, r.colors.StartLineColor, true)

	for _, b := range scenery.Buildings(r.colors.BuildingColor, r.colors.WindowColor) {
		drawBlock(r.background, b)
	}
}

// Draw рисует кадр: задник, зрители, грузовики, HUD
func (r *SceneRenderer) Draw(screen *ebiten.Image, frame sim.Frame) {
	screen.DrawImage(r.background, nil)

	for _, b := range scenery.Crowd(frame.Number, r.colors.CrowdColors) {
		drawBlock(screen, b)
	}

	for _, t := range frame.Trucks {
		r.drawTruck(screen, float32(t.X), float32(t.Y), t.Color)
	}

	if r.fontFace != nil {
		label := fmt.Sprintf("Frame: %d  TPS: %.0f", frame.Number, ebiten.ActualTPS())
		text.Draw(screen, label, r.fontFace, config.HUDOffsetX, config.HUDOffsetY, r.colors.TextColor)
	}
}

// drawTruck — кузов, кабина темнее кузова и два колеса; (x, y) — левый верхний угол
func (r *SceneRenderer) drawTruck(screen *ebiten.Image, x, y float32, body color.RGBA) {
	vector.DrawFilledRect(screen, x, y+10, config.TruckWidth, 30, body, false)

	cabin := vector.Path{}
	cabin.MoveTo(x+40, y+10)
	cabin.LineTo(x+55, y)
	cabin.LineTo(x+55, y+20)
	cabin.LineTo(x+40, y+30)
	cabin.Close()
	r.fillPath(screen, &cabin, scenery.DarkenColor(body, r.colors.CabinShade))

	for _, wx := range []float32{x + 15, x + 45} {
		vector.DrawFilledCircle(screen, wx, y+45, 12, r.colors.WheelColor, true)
		vector.DrawFilledCircle(screen, wx, y+45, 6, r.colors.HubColor, true)
	}
}

func (r *SceneRenderer) fillPath(target *ebiten.Image, path *vector.Path, c color.RGBA) {
	r.fillVs, r.fillIs = path.AppendVerticesAndIndicesForFilling(r.fillVs[:0], r.fillIs[:0])
	r.paintVertices(c)
	target.DrawTriangles(r.fillVs, r.fillIs, r.fillImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

func (r *SceneRenderer) strokePath(target *ebiten.Image, path *vector.Path, width float32, c color.RGBA) {
	r.fillVs, r.fillIs = path.AppendVerticesAndIndicesForStroke(r.fillVs[:0], r.fillIs[:0], &vector.StrokeOptions{
		Width:    width,
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})
	r.paintVertices(c)
	target.DrawTriangles(r.fillVs, r.fillIs, r.fillImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

func (r *SceneRenderer) paintVertices(c color.RGBA) {
	cr, cg, cb, ca := toVertexColor(c)
	for i := range r.fillVs {
		r.fillVs[i].SrcX = 0
		r.fillVs[i].SrcY = 0
		r.fillVs[i].ColorR = cr
		r.fillVs[i].ColorG = cg
		r.fillVs[i].ColorB = cb
		r.fillVs[i].ColorA = ca
	}
}

func drawBlock(target *ebiten.Image, b scenery.Block) {
	vector.DrawFilledRect(target, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), b.Color, false)
}

// Dispose освобождает изображения рендерера
func (r *SceneRenderer) Dispose() {
	r.background.Deallocate()
	r.fillImg.Deallocate()
}
