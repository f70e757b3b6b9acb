// pkg/track/path.go
package track

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// MinPoints — минимальное число различных точек замкнутой трассы
const MinPoints = 3

// InvalidPathError возвращается из Build, если из точек нельзя собрать замкнутую трассу
type InvalidPathError struct {
	Reason string
	Points int
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path (%d points): %s", e.Points, e.Reason)
}

// Segment — прямой участок между двумя соседними точками
type Segment struct {
	Start     r2.Point
	End       r2.Point
	Direction r2.Point // End - Start
	Length    float64
	Normal    r2.Point // единичная нормаль, нулевая у отрезка нулевой длины
}

func newSegment(start, end r2.Point) Segment {
	dir := end.Sub(start)
	return Segment{
		Start:     start,
		End:       end,
		Direction: dir,
		Length:    dir.Norm(),
		Normal:    dir.Ortho().Normalize(),
	}
}

// pointAt — точка на расстоянии along от Start
func (s Segment) pointAt(along float64) r2.Point {
	var ratio float64
	if s.Length != 0 {
		ratio = along / s.Length
	}
	return s.Start.Add(s.Direction.Mul(ratio))
}

// Path — замкнутая ломаная. После Build не меняется, поэтому её можно
// читать из нескольких горутин без блокировок.
type Path struct {
	waypoints []r2.Point
	segments  []Segment
	total     float64
}

// Build строит замкнутую трассу. Если последняя точка не совпадает с первой,
// первая дописывается в конец.
func Build(points []r2.Point) (*Path, error) {
	if len(points) < MinPoints {
		return nil, &InvalidPathError{Reason: fmt.Sprintf("need at least %d points", MinPoints), Points: len(points)}
	}

	waypoints := make([]r2.Point, len(points), len(points)+1)
	copy(waypoints, points)
	if waypoints[0] != waypoints[len(waypoints)-1] {
		waypoints = append(waypoints, waypoints[0])
	}

	if n := countDistinct(waypoints); n < MinPoints {
		return nil, &InvalidPathError{Reason: fmt.Sprintf("need at least %d distinct points, got %d", MinPoints, n), Points: len(points)}
	}

	segments := make([]Segment, 0, len(waypoints)-1)
	total := 0.0
	for i := 0; i < len(waypoints)-1; i++ {
		seg := newSegment(waypoints[i], waypoints[i+1])
		segments = append(segments, seg)
		total += seg.Length
	}

	if !(total > 0) || math.IsInf(total, 0) {
		return nil, &InvalidPathError{Reason: "path has zero length", Points: len(points)}
	}

	return &Path{waypoints: waypoints, segments: segments, total: total}, nil
}

// FromPairs — то же, что Build, но для пар [x, y]
func FromPairs(pairs [][2]float64) (*Path, error) {
	points := make([]r2.Point, len(pairs))
	for i, p := range pairs {
		points[i] = r2.Point{X: p[0], Y: p[1]}
	}
	return Build(points)
}

func countDistinct(points []r2.Point) int {
	seen := make(map[r2.Point]struct{}, len(points))
	for _, p := range points {
		seen[p] = struct{}{}
	}
	return len(seen)
}

// TotalLength — сумма длин всех отрезков
func (p *Path) TotalLength() float64 {
	return p.total
}

// Waypoints возвращает копию замкнутого списка точек (первая == последняя)
func (p *Path) Waypoints() []r2.Point {
	out := make([]r2.Point, len(p.waypoints))
	copy(out, p.waypoints)
	return out
}

// Segments возвращает копию отрезков в порядке обхода
func (p *Path) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// PositionAt переводит пройденный путь в точку, сдвинутую вбок на
// lateralOffset вдоль нормали своего отрезка. Путь берётся по модулю TotalLength.
func (p *Path) PositionAt(distance, lateralOffset float64) r2.Point {
	seg, along, found := p.locate(distance)
	base := seg.End
	if found {
		base = seg.pointAt(along)
	}
	return base.Add(seg.Normal.Mul(lateralOffset))
}

// NormalAt — единичная нормаль отрезка, на котором лежит distance
func (p *Path) NormalAt(distance float64) r2.Point {
	seg, _, _ := p.locate(distance)
	return seg.Normal
}

// locate ищет отрезок, содержащий distance, и остаток пути внутри него.
// Если из-за накопленного округления остаток не уложился ни в один отрезок,
// возвращается последний отрезок и found == false: позиция прижимается к
// конечной точке трассы. Смещение полосы при этом сохраняется (нормаль
// последнего отрезка), чтобы грузовик не перескакивал на осевую.
func (p *Path) locate(distance float64) (seg Segment, along float64, found bool) {
	remaining := Normalize(distance, p.total)
	for _, seg := range p.segments {
		if remaining <= seg.Length {
			return seg, remaining, true
		}
		remaining -= seg.Length
	}
	last := p.segments[len(p.segments)-1]
	return last, last.Length, false
}

// Normalize приводит distance к [0, total). При total <= 0 возвращает 0.
func Normalize(distance, total float64) float64 {
	if !(total > 0) || math.IsNaN(distance) || math.IsInf(distance, 0) {
		return 0
	}
	d := math.Mod(distance, total)
	if d < 0 {
		d += total
	}
	// -1e-18 + total округляется до total
	if d >= total {
		d = 0
	}
	return d
}
