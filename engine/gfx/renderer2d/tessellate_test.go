package renderer2d

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/hubastard/tessel/engine/colors"
	"github.com/hubastard/tessel/engine/gfx/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangleArea(a, b, c geom.Position) float32 {
	return math32.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
}

func totalArea(vs []Vertex) float32 {
	var sum float32
	for i := 0; i+2 < len(vs); i += 3 {
		sum += triangleArea(vs[i].Position, vs[i+1].Position, vs[i+2].Position)
	}
	return sum
}

// signedArea is negative for triangles that end up counter-clockwise
// once Y is flipped to clip space.
func signedArea(a, b, c geom.Position) float32 {
	return ((b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)) / 2
}

func newTess(triangles int) *Tessellator {
	return NewTessellator(NewVertexPool(triangles, 800, 600))
}

func TestFilledRectangleSharpCornersTilesExactly(t *testing.T) {
	sizes := []geom.Position{{X: 100, Y: 50}, {X: 1, Y: 1}, {X: 333.5, Y: 12.25}, {X: 0, Y: 10}}
	for _, size := range sizes {
		ts := newTess(100)
		origin := geom.Pos(17, 23, 0.1)
		require.NoError(t, ts.FilledRectangle(origin, size, red, geom.CornerRadii{}))

		vs := ts.Pool().Vertices()
		assert.InDelta(t, size.X*size.Y, totalArea(vs), 1e-3)
		for _, v := range vs {
			assert.GreaterOrEqual(t, v.Position.X, origin.X)
			assert.LessOrEqual(t, v.Position.X, origin.X+size.X)
			assert.GreaterOrEqual(t, v.Position.Y, origin.Y)
			assert.LessOrEqual(t, v.Position.Y, origin.Y+size.Y)
			assert.Equal(t, float32(0.1), v.Position.Z)
		}
	}
}

func TestFilledRectangleRoundedArea(t *testing.T) {
	const w, h, r = 120, 80, 10
	ts := newTess(200)
	require.NoError(t, ts.FilledRectangle(geom.Pos(0, 0, 0), geom.Position{X: w, Y: h}, red, geom.AllRadii(r)))

	fan := float32(ArcSegments) * 0.5 * r * r * math32.Sin(math32.Pi/2/ArcSegments)
	want := float32(w*h) - 4*r*r + 4*fan
	assert.InDelta(t, want, totalArea(ts.Pool().Vertices()), 0.05)
}

func TestFilledRectangleEmissionCount(t *testing.T) {
	ts := newTess(200)
	require.NoError(t, ts.FilledRectangle(geom.Pos(0, 0, 0), geom.Position{X: 50, Y: 50}, red, geom.CornerRadii{TopLeft: 2, TopRight: 4, BottomLeft: 6, BottomRight: 8}))
	// 4 fans of ArcSegments triangles + 5 quads
	assert.Equal(t, (4*ArcSegments+5*2)*3, ts.Pool().Len())
}

func TestFilledRectangleWinding(t *testing.T) {
	ts := newTess(200)
	require.NoError(t, ts.FilledRectangle(geom.Pos(5, 5, 0), geom.Position{X: 200, Y: 100}, red, geom.AllRadii(12)))
	vs := ts.Pool().Vertices()
	for i := 0; i < len(vs); i += 3 {
		assert.LessOrEqual(t, signedArea(vs[i].Position, vs[i+1].Position, vs[i+2].Position), float32(1e-4), "triangle %d", i/3)
	}
}

func TestFilledRectangleUsesEachCornerRadius(t *testing.T) {
	ts := newTess(200)
	r := geom.CornerRadii{TopLeft: 0, TopRight: 0, BottomLeft: 0, BottomRight: 20}
	require.NoError(t, ts.FilledRectangle(geom.Pos(0, 0, 0), geom.Position{X: 100, Y: 100}, red, r))

	// only the bottom-right corner is cut
	fan := float32(ArcSegments) * 0.5 * 20 * 20 * math32.Sin(math32.Pi/2/ArcSegments)
	assert.InDelta(t, 100*100-400+fan, totalArea(ts.Pool().Vertices()), 0.05)
}

func lineEnds(q []Vertex) (start, end geom.Position) {
	mid := func(a, b geom.Position) geom.Position {
		return geom.Pos((a.X+b.X)/2, (a.Y+b.Y)/2, a.Z)
	}
	return mid(q[0].Position, q[1].Position), mid(q[2].Position, q[5].Position)
}

func TestLineAxisAligned(t *testing.T) {
	ts := newTess(2)
	require.NoError(t, ts.Line(geom.Pos(10, 20, 0.3), 50, 0, 4, red))
	vs := ts.Pool().Vertices()
	require.Len(t, vs, 6)

	want := []geom.Position{
		geom.Pos(10, 18, 0.3), geom.Pos(10, 22, 0.3), geom.Pos(60, 22, 0.3),
		geom.Pos(10, 18, 0.3), geom.Pos(60, 22, 0.3), geom.Pos(60, 18, 0.3),
	}
	for i := range want {
		assert.InDelta(t, want[i].X, vs[i].Position.X, 1e-4)
		assert.InDelta(t, want[i].Y, vs[i].Position.Y, 1e-4)
		assert.Equal(t, want[i].Z, vs[i].Position.Z)
	}
}

func TestLineDownward(t *testing.T) {
	ts := newTess(2)
	require.NoError(t, ts.Line(geom.Pos(0, 0, 0), 30, 270, 2, red))
	start, end := lineEnds(ts.Pool().Vertices())
	assert.InDelta(t, 0, start.X, 1e-4)
	assert.InDelta(t, 0, end.X, 1e-4)
	assert.InDelta(t, 30, end.Y, 1e-4)
}

func TestArcIsContinuousChain(t *testing.T) {
	const r = 10
	origin := geom.Pos(100, 100, 0.2)
	ts := newTess(100)
	require.NoError(t, ts.Arc(origin, r, 0, 90, 1, red))

	vs := ts.Pool().Vertices()
	require.Len(t, vs, ArcSegments*6)

	var prevEnd geom.Position
	for i := 0; i < ArcSegments; i++ {
		start, end := lineEnds(vs[i*6 : i*6+6])
		if i == 0 {
			assert.InDelta(t, origin.X+r, start.X, 1e-4)
			assert.InDelta(t, origin.Y, start.Y, 1e-4)
		} else {
			// segments are cut at arc length, slightly longer than the chord
			assert.InDelta(t, prevEnd.X, start.X, 0.01, "segment %d", i)
			assert.InDelta(t, prevEnd.Y, start.Y, 0.01, "segment %d", i)
		}
		prevEnd = end
	}
	// angle 90 is straight up on screen
	assert.InDelta(t, origin.X, prevEnd.X, 0.01)
	assert.InDelta(t, origin.Y-r, prevEnd.Y, 0.01)
}

func TestFilledArcFansFromOrigin(t *testing.T) {
	origin := geom.Pos(50, 50, 0)
	ts := newTess(ArcSegments)
	require.NoError(t, ts.FilledArc(origin, 8, 180, 270, red))
	vs := ts.Pool().Vertices()
	require.Len(t, vs, ArcSegments*3)
	for i := 0; i < len(vs); i += 3 {
		assert.Equal(t, origin, vs[i+1].Position)
	}
	// first triangle starts at angle 180 (left of origin)
	assert.InDelta(t, 42, vs[2].Position.X, 1e-4)
	assert.InDelta(t, 50, vs[2].Position.Y, 1e-4)
	// last triangle ends at 270 (below origin)
	last := vs[len(vs)-3].Position
	assert.InDelta(t, 50, last.X, 1e-4)
	assert.InDelta(t, 58, last.Y, 1e-4)
}

func TestRectangleBorderEmission(t *testing.T) {
	ts := newTess(200)
	require.NoError(t, ts.Rectangle(geom.Pos(0, 0, 0.1), geom.Position{X: 100, Y: 40}, geom.AllSides(2), red, geom.AllRadii(5)))
	// 4 arcs of ArcSegments lines + 4 edge lines, two triangles each
	assert.Equal(t, (4*ArcSegments+4)*6, ts.Pool().Len())
	for _, v := range ts.Pool().Vertices() {
		assert.Equal(t, float32(0.1), v.Position.Z)
	}
}

func TestRectangleBorderSharpEdges(t *testing.T) {
	ts := newTess(200)
	th := geom.BorderThickness{Top: 1, Left: 2, Bottom: 3, Right: 4}
	require.NoError(t, ts.Rectangle(geom.Pos(0, 0, 0), geom.Position{X: 100, Y: 40}, th, red, geom.CornerRadii{}))

	vs := ts.Pool().Vertices()
	edges := vs[4*ArcSegments*6:]
	require.Len(t, edges, 4*6)

	// top, left, bottom, right bands centered on the box edges
	assert.InDelta(t, 1*100, totalArea(edges[0:6]), 1e-3)
	assert.InDelta(t, 2*40, totalArea(edges[6:12]), 1e-3)
	assert.InDelta(t, 3*100, totalArea(edges[12:18]), 1e-3)
	assert.InDelta(t, 4*40, totalArea(edges[18:24]), 1e-3)

	s, e := lineEnds(edges[18:24])
	assert.InDelta(t, 100, s.X, 1e-4)
	assert.InDelta(t, 0, s.Y, 1e-4)
	assert.InDelta(t, 40, e.Y, 1e-4)
}

func TestRectangleZeroThicknessIsDegenerate(t *testing.T) {
	ts := newTess(200)
	assert.NotPanics(t, func() {
		require.NoError(t, ts.Rectangle(geom.Pos(3, 3, 0), geom.Position{X: 30, Y: 30}, geom.BorderThickness{}, red, geom.AllRadii(4)))
	})
	assert.Equal(t, (4*ArcSegments+4)*6, ts.Pool().Len())
	assert.InDelta(t, 0, totalArea(ts.Pool().Vertices()), 1e-4)
}

func TestOversizedRadiusIsNotClamped(t *testing.T) {
	ts := newTess(200)
	assert.NotPanics(t, func() {
		_ = ts.FilledRectangle(geom.Pos(0, 0, 0), geom.Position{X: 10, Y: 10}, red, geom.AllRadii(40))
	})
	assert.Equal(t, (4*ArcSegments+5*2)*3, ts.Pool().Len())
}

func TestTessellatorReportsOverflowButContinues(t *testing.T) {
	// room for one corner fan and nothing else
	ts := newTess(ArcSegments)
	err := ts.FilledRectangle(geom.Pos(0, 0, 0), geom.Position{X: 20, Y: 20}, colors.RGB{B: 1}, geom.AllRadii(2))
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, ArcSegments*3, ts.Pool().Len())
	assert.Equal(t, 3*ArcSegments+5*2, ts.Pool().Dropped())
}
