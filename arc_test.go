package svgpath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEndpointToCenter(t *testing.T) {
	// Quarter-to-three-quarter circle of radius 150: large arc, no
	// sweep, from (150,200) to (300,50).
	cx, cy, rx, ry, theta1, theta2 := endpointToCenter(150, 200, 150, 150, 0, true, false, 300, 50)
	require.InDelta(t, 300, cx, 1e-9)
	require.InDelta(t, 200, cy, 1e-9)
	require.InDelta(t, 150, rx, 1e-9)
	require.InDelta(t, 150, ry, 1e-9)
	require.InDelta(t, 180, theta1, 1e-9)
	require.InDelta(t, -90, theta2, 1e-9)

	// Positive-direction semicircle.
	cx, cy, _, _, theta1, theta2 = endpointToCenter(0, 0, 50, 50, 0, false, true, 100, 0)
	require.InDelta(t, 50, cx, 1e-9)
	require.InDelta(t, 0, cy, 1e-9)
	require.InDelta(t, 180, theta1, 1e-9)
	require.InDelta(t, 360, theta2, 1e-9)

	// Rotated ellipse.
	cx, cy, rx, ry, theta1, theta2 = endpointToCenter(0, 0, 2, 1, 90, false, false, 1, 2)
	require.InDelta(t, 1, cx, 1e-9)
	require.InDelta(t, 0, cy, 1e-9)
	require.InDelta(t, 2, rx, 1e-9)
	require.InDelta(t, 1, ry, 1e-9)
	require.InDelta(t, 90, theta1, 1e-9)
	require.InDelta(t, 0, theta2, 1e-9)
}

func TestEndpointToCenterRadiiCorrection(t *testing.T) {
	// Radii too small to span the endpoints are inflated uniformly,
	// never rejected.
	cx, cy, rx, ry, theta1, theta2 := endpointToCenter(0, 0, 0.1, 0.1, 0, false, false, 1, 0)
	require.InDelta(t, 0.5, rx, 1e-9)
	require.InDelta(t, 0.5, ry, 1e-9)
	require.InDelta(t, 0.5, cx, 1e-9)
	require.InDelta(t, 0, cy, 1e-9)
	require.InDelta(t, 180, theta1, 1e-9)
	require.InDelta(t, 0, theta2, 1e-9)
}

func TestEndpointToCenterStaysFinite(t *testing.T) {
	// Near-degenerate inputs push the acos ratio just past 1; the
	// clamp keeps the angles finite.
	cases := [][2]bool{{false, false}, {false, true}, {true, false}, {true, true}}
	for _, flags := range cases {
		cx, cy, _, _, theta1, theta2 := endpointToCenter(0, 0, 50, 50, 30, flags[0], flags[1], 100, 1e-13)
		for _, v := range []float64{cx, cy, theta1, theta2} {
			require.False(t, math.IsNaN(v), "large=%v sweep=%v", flags[0], flags[1])
			require.False(t, math.IsInf(v, 0), "large=%v sweep=%v", flags[0], flags[1])
		}
	}
}

func TestUnitCircleArc(t *testing.T) {
	// A quarter turn fits one segment.
	start, segments := unitCircleArc(0, 90)
	require.InDelta(t, 1, start[0], 1e-12)
	require.InDelta(t, 0, start[1], 1e-12)
	require.Len(t, segments, 1)
	require.InDelta(t, 0, segments[0][2][0], 1e-12)
	require.InDelta(t, 1, segments[0][2][1], 1e-12)
	// Tangent-offset control distance for a quarter turn,
	// sin(90)*(sqrt(7)-1)/3.
	require.InDelta(t, 1, segments[0][0][0], 1e-12)
	require.InDelta(t, 0.5485837, segments[0][0][1], 1e-6)

	// 270 degrees splits into three quarter turns whose endpoints stay
	// on the circle.
	start, segments = unitCircleArc(0, 270)
	require.InDelta(t, 1, math.Hypot(start[0], start[1]), 1e-12)
	require.Len(t, segments, 3)
	for _, seg := range segments {
		end := seg[2]
		require.InDelta(t, 1, math.Hypot(end[0], end[1]), 1e-9)
	}
	require.InDelta(t, 0, segments[2][2][0], 1e-12)
	require.InDelta(t, -1, segments[2][2][1], 1e-12)
}

func TestArcScenario(t *testing.T) {
	// Large-arc sweep back around a radius-150 circle centered on the
	// subpath origin.
	pd, err := ParsePath("M300,200 h-150 a150,150 0 1,0 150,-150 z")
	require.NoError(t, err)

	kinds := []InstructionType{
		MoveInstruction,
		LineInstruction,
		MoveInstruction,
		CurveInstruction, CurveInstruction, CurveInstruction,
		LineInstruction,
		CloseInstruction,
	}
	require.Len(t, pd.Instructions, len(kinds))
	for i, kind := range kinds {
		require.Equal(t, kind, pd.Instructions[i].Kind, "instruction %d", i)
	}

	require.Equal(t, Tuple{150, 200}, *pd.Instructions[1].M)

	// The arc's leading vertex sits on the circle at (300, 50); every
	// curve endpoint stays within plotting tolerance of the circle.
	arcStart := *pd.Instructions[2].M
	require.InDelta(t, 300, arcStart[0], 1e-6)
	require.InDelta(t, 50, arcStart[1], 1e-6)
	for i := 3; i <= 5; i++ {
		end := *pd.Instructions[i].T
		require.InDelta(t, 150, math.Hypot(end[0]-300, end[1]-200), 1e-3)
	}
	last := *pd.Instructions[5].T
	require.InDelta(t, 150, last[0], 1e-6)
	require.InDelta(t, 200, last[1], 1e-6)

	// Closing line and anchor resolve against the subpath origin, not
	// the arc's internal vertices.
	require.Equal(t, Tuple{300, 200}, *pd.Instructions[6].M)
	require.Equal(t, Tuple{300, 200}, *pd.Instructions[7].M)
}

func TestArcSweepDropsLeadingVertex(t *testing.T) {
	// Sweeping in the positive-angle direction suppresses the unit
	// arc's leading vertex so the run continues from the current
	// position.
	pd, err := ParsePath("M0 0 A50 50 0 0 1 100 0")
	require.NoError(t, err)
	kinds := []InstructionType{MoveInstruction, CurveInstruction, CurveInstruction}
	require.Len(t, pd.Instructions, len(kinds))
	for i, kind := range kinds {
		require.Equal(t, kind, pd.Instructions[i].Kind, "instruction %d", i)
	}
	end := *pd.Instructions[2].T
	require.InDelta(t, 100, end[0], 1e-6)
	require.InDelta(t, 0, end[1], 1e-6)

	// Without the sweep flag the leading vertex stays.
	pd, err = ParsePath("M0 0 A50 50 0 0 0 100 0")
	require.NoError(t, err)
	kinds = []InstructionType{MoveInstruction, MoveInstruction, CurveInstruction, CurveInstruction}
	require.Len(t, pd.Instructions, len(kinds))
	for i, kind := range kinds {
		require.Equal(t, kind, pd.Instructions[i].Kind, "instruction %d", i)
	}
	lead := *pd.Instructions[1].M
	require.InDelta(t, 100, lead[0], 1e-6)
	require.InDelta(t, 0, lead[1], 1e-6)
	end = *pd.Instructions[3].T
	require.InDelta(t, 0, end[0], 1e-6)
	require.InDelta(t, 0, end[1], 1e-6)
}

func TestArcRotated(t *testing.T) {
	pd, err := ParsePath("M0 0 A2 1 90 0 0 1 2")
	require.NoError(t, err)

	require.Equal(t, MoveInstruction, pd.Instructions[1].Kind)
	lead := *pd.Instructions[1].M
	require.InDelta(t, 1, lead[0], 1e-6)
	require.InDelta(t, 2, lead[1], 1e-6)

	last := pd.Instructions[len(pd.Instructions)-1]
	require.Equal(t, CurveInstruction, last.Kind)
	require.InDelta(t, 0, (*last.T)[0], 1e-6)
	require.InDelta(t, 0, (*last.T)[1], 1e-6)
}

func TestArcDegenerateRadii(t *testing.T) {
	// A zero radius collapses the arc into a straight line.
	pd, err := ParsePath("M0 0 A0 50 0 0 1 10 10")
	require.NoError(t, err)
	require.Len(t, pd.Instructions, 2)
	require.Equal(t, LineInstruction, pd.Instructions[1].Kind)
	require.Equal(t, Tuple{10, 10}, *pd.Instructions[1].M)

	// Negative radii behave as their absolute values.
	neg, err := ParsePath("M0 0 A-50 -50 0 0 1 100 0")
	require.NoError(t, err)
	pos, err2 := ParsePath("M0 0 A50 50 0 0 1 100 0")
	require.NoError(t, err2)
	requireInstructionsClose(t, pos.Instructions, neg.Instructions, 1e-9)

	// An arc to the current position emits nothing.
	pd, err = ParsePath("M5 5 A50 50 0 0 1 5 5")
	require.NoError(t, err)
	require.Len(t, pd.Instructions, 1)
}
