package track

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func square(t *testing.T, side float64) *Path {
	t.Helper()
	p, err := FromPairs([][2]float64{{0, 0}, {side, 0}, {side, side}, {0, side}, {0, 0}})
	require.NoError(t, err)
	return p
}

func assertPoint(t *testing.T, want, got r2.Point, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x")
	assert.InDelta(t, want.Y, got.Y, delta, "y")
}

func TestBuildRejectsInvalidWaypoints(t *testing.T) {
	cases := []struct {
		name   string
		points [][2]float64
	}{
		{"empty", nil},
		{"two points", [][2]float64{{0, 0}, {1, 1}}},
		{"closed pair", [][2]float64{{0, 0}, {5, 0}, {0, 0}}},
		{"all coincident", [][2]float64{{3, 3}, {3, 3}, {3, 3}, {3, 3}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := FromPairs(tc.points)
			assert.Nil(t, p)
			var pathErr *InvalidPathError
			require.True(t, errors.As(err, &pathErr), "expected InvalidPathError, got %v", err)
			assert.Equal(t, len(tc.points), pathErr.Points)
			assert.Contains(t, err.Error(), "invalid path")
		})
	}
}

func TestBuildAutoCloses(t *testing.T) {
	p, err := FromPairs([][2]float64{{0, 0}, {100, 0}, {100, 100}, {0, 100}})
	require.NoError(t, err)

	wp := p.Waypoints()
	require.Len(t, wp, 5)
	assert.Equal(t, wp[0], wp[len(wp)-1])
	assert.InDelta(t, 400, p.TotalLength(), eps)
	assert.Len(t, p.Segments(), 4)
}

func TestBuildCopiesInput(t *testing.T) {
	points := []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 0}}
	p, err := Build(points)
	require.NoError(t, err)

	points[1] = r2.Point{X: 1000, Y: 1000}
	assert.InDelta(t, 20+math.Sqrt2*10, p.TotalLength(), eps)
	assertPoint(t, r2.Point{X: 10, Y: 0}, p.PositionAt(10, 0), eps)
}

func TestSegmentNormals(t *testing.T) {
	p := square(t, 100)
	segs := p.Segments()

	// нормаль = направление, повёрнутое на 90°
	assertPoint(t, r2.Point{X: 0, Y: 1}, segs[0].Normal, eps)
	assertPoint(t, r2.Point{X: -1, Y: 0}, segs[1].Normal, eps)
	assertPoint(t, r2.Point{X: 0, Y: -1}, segs[2].Normal, eps)
	assertPoint(t, r2.Point{X: 1, Y: 0}, segs[3].Normal, eps)
	for _, s := range segs {
		assert.InDelta(t, 100, s.Length, eps)
	}
}

func TestClosure(t *testing.T) {
	p, err := FromPairs([][2]float64{
		{150, 500}, {250, 450}, {400, 400}, {550, 450}, {650, 500},
		{700, 400}, {650, 300}, {550, 250}, {400, 200}, {250, 250},
		{150, 300}, {100, 400}, {150, 500},
	})
	require.NoError(t, err)

	assertPoint(t, p.PositionAt(0, 0), p.PositionAt(p.TotalLength(), 0), 1e-6)
	assertPoint(t, r2.Point{X: 150, Y: 500}, p.PositionAt(0, 0), eps)
}

func TestModuloInvariance(t *testing.T) {
	p := square(t, 100)
	total := p.TotalLength()

	for _, d := range []float64{0, 12.5, 99.9, 150, 333.3, 399.99} {
		for _, offset := range []float64{-30, 0, 15} {
			want := p.PositionAt(d, offset)
			for _, k := range []int{-3, -1, 1, 2, 50} {
				got := p.PositionAt(d+float64(k)*total, offset)
				assertPoint(t, want, got, 1e-6)
			}
		}
	}
}

func TestPositionAtCorners(t *testing.T) {
	p := square(t, 100)

	cases := []struct {
		distance float64
		want     r2.Point
	}{
		{0, r2.Point{X: 0, Y: 0}},
		{50, r2.Point{X: 50, Y: 0}},
		{100, r2.Point{X: 100, Y: 0}},
		{150, r2.Point{X: 100, Y: 50}},
		{250, r2.Point{X: 50, Y: 100}},
		{350, r2.Point{X: 0, Y: 50}},
		{-50, r2.Point{X: 0, Y: 50}},
		{450, r2.Point{X: 50, Y: 0}},
	}
	for _, tc := range cases {
		assertPoint(t, tc.want, p.PositionAt(tc.distance, 0), 1e-9)
	}
}

func TestMonotonicCoverage(t *testing.T) {
	p := square(t, 100)
	const step = 0.5

	prev := p.PositionAt(0, 0)
	for d := step; d < p.TotalLength(); d += step {
		cur := p.PositionAt(d, 0)
		// на ломаной хорда не длиннее пройденной дуги
		assert.LessOrEqual(t, cur.Sub(prev).Norm(), step+1e-9, "jump at distance %v", d)
		prev = cur
	}
}

func TestLateralOffsetSymmetry(t *testing.T) {
	p := square(t, 100)

	for _, d := range []float64{10, 120, 275, 390} {
		for _, o := range []float64{5, 15, 30} {
			center := p.PositionAt(d, 0)
			left := p.PositionAt(d, o)
			right := p.PositionAt(d, -o)

			mid := left.Add(right).Mul(0.5)
			assertPoint(t, center, mid, 1e-9)
			assert.InDelta(t, o, left.Sub(center).Norm(), 1e-9)
			assert.InDelta(t, o, right.Sub(center).Norm(), 1e-9)

			// смещение перпендикулярно сегменту
			normal := p.NormalAt(d)
			assert.InDelta(t, o, left.Sub(center).Dot(normal), 1e-9)
		}
	}
}

func TestDeterminism(t *testing.T) {
	p := square(t, 100)
	for _, d := range []float64{0, 33.3, 123.456, -77} {
		assert.Equal(t, p.PositionAt(d, 12), p.PositionAt(d, 12))
	}
}

func TestDegenerateSegment(t *testing.T) {
	p, err := FromPairs([][2]float64{{0, 0}, {10, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}})
	require.NoError(t, err)

	segs := p.Segments()
	require.Len(t, segs, 5)
	assert.Zero(t, segs[1].Length)
	assert.Equal(t, r2.Point{}, segs[1].Normal)

	assert.InDelta(t, 40, p.TotalLength(), eps)
	assertPoint(t, r2.Point{X: 10, Y: 0}, p.PositionAt(10, 0), eps)
	assertPoint(t, r2.Point{X: 10, Y: 5}, p.PositionAt(15, 0), eps)
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name     string
		distance float64
		total    float64
		want     float64
	}{
		{"inside", 25, 100, 25},
		{"zero", 0, 100, 0},
		{"exact total", 100, 100, 0},
		{"overflow", 250, 100, 50},
		{"negative", -30, 100, 70},
		{"negative multiple", -200, 100, 0},
		{"tiny negative", -1e-18, 100, 0},
		{"zero total", 5, 0, 0},
		{"negative total", 5, -10, 0},
		{"nan", math.NaN(), 100, 0},
		{"inf", math.Inf(1), 100, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.distance, tc.total)
			assert.InDelta(t, tc.want, got, 1e-9)
			if tc.total > 0 {
				assert.GreaterOrEqual(t, got, 0.0)
				assert.Less(t, got, tc.total)
			}
		})
	}
}

// overrunPath ищет трассу, на которой путь чуть меньше TotalLength после
// вычитания длин отрезков не укладывается в последний отрезок
func overrunPath(t *testing.T) (*Path, float64) {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	for try := 0; try < 5000; try++ {
		n := 5 + rng.Intn(8)
		pairs := make([][2]float64, n)
		for i := range pairs {
			pairs[i] = [2]float64{rng.Float64() * 800, rng.Float64() * 600}
		}
		p, err := FromPairs(pairs)
		if err != nil {
			continue
		}
		d := p.TotalLength()
		for ulp := 0; ulp < 8; ulp++ {
			d = math.Nextafter(d, 0)
			if _, _, found := p.locate(d); !found {
				return p, d
			}
		}
	}
	t.Fatal("no path with accumulated rounding overrun found")
	return nil, 0
}

func TestPositionAtClampsOnOverrun(t *testing.T) {
	p, d := overrunPath(t)
	wp := p.Waypoints()
	final := wp[len(wp)-1]
	segs := p.Segments()
	last := segs[len(segs)-1]

	assert.Less(t, d, p.TotalLength())
	assert.Equal(t, final, p.PositionAt(d, 0))
	// полоса сохраняется: конечная точка плюс нормаль последнего отрезка
	assert.Equal(t, final.Add(last.Normal.Mul(20)), p.PositionAt(d, 20))
	assert.Equal(t, last.Normal, p.NormalAt(d))
}
