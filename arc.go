package svgpath

import "math"

// endpointToCenter translates the endpoint parameterization of an
// elliptical arc used by SVG (start point, two radii, x-axis rotation
// in degrees, large-arc and sweep flags, end point) into the center
// parameterization: the ellipse center plus start and end angles in
// degrees of an arc on the unit circle prior to being stretched and
// rotated into the ellipse.
//
// Radii too small to span the endpoints are inflated as the SVG
// implementation notes require, never rejected; the returned radii
// carry that correction. See
// https://www.w3.org/TR/SVG/implnote.html#ArcConversionEndpointToCenter.
func endpointToCenter(sx, sy, rx, ry, rotation float64, large, sweep bool, ex, ey float64) (cx, cy, crx, cry, theta1, theta2 float64) {
	cosr := math.Cos(radians(rotation))
	sinr := math.Sin(radians(rotation))
	dx := (sx - ex) / 2
	dy := (sy - ey) / 2
	x1p := cosr*dx + sinr*dy
	y1p := -sinr*dx + cosr*dy

	rx = math.Abs(rx)
	ry = math.Abs(ry)
	rxSq := rx * rx
	rySq := ry * ry
	x1pSq := x1p * x1p
	y1pSq := y1p * y1p

	// Correct out of range radii
	if check := x1pSq/rxSq + y1pSq/rySq; check > 1 {
		s := math.Sqrt(check)
		rx *= s
		ry *= s
		rxSq = rx * rx
		rySq = ry * ry
	}

	t1 := rxSq * y1pSq
	t2 := rySq * x1pSq
	c := math.Sqrt(math.Abs((rxSq*rySq - t1 - t2) / (t1 + t2)))
	if large == sweep {
		c = -c
	}
	cxp := c * rx * y1p / ry
	cyp := -c * ry * x1p / rx

	cx = cosr*cxp - sinr*cyp + (sx+ex)/2
	cy = sinr*cxp + cosr*cyp + (sy+ey)/2

	ux := (x1p - cxp) / rx
	uy := (y1p - cyp) / ry
	vx := (-x1p - cxp) / rx
	vy := (-y1p - cyp) / ry

	// The angle between (1, 0) and u. Floating error can push the
	// cosine just outside [-1, 1], e.g. 1.0000000000000002, so the
	// ratio is clamped before the inverse cosine.
	n := math.Sqrt(ux*ux + uy*uy)
	theta1 = degrees(math.Acos(clamp(ux/n, -1, 1)))
	if uy < 0 {
		theta1 = -theta1
	}

	// The angle between u and v, sign taken from their cross product.
	p := ux*vx + uy*vy
	n = math.Sqrt((ux*ux + uy*uy) * (vx*vx + vy*vy))
	delta := degrees(math.Acos(clamp(p/n, -1, 1)))
	if ux*vy-uy*vx < 0 {
		delta = -delta
	}

	// Give delta the sign the sweep flag demands, keeping it inside
	// (-360, 360).
	if sweep && delta < 0 {
		delta += 360
	}
	if !sweep && delta > 0 {
		delta -= 360
	}

	return cx, cy, rx, ry, theta1, theta1 + delta
}

// unitCircleArc approximates the counterclockwise unit-circle arc from
// theta1 to theta2 (degrees, theta1 <= theta2) with cubic segments of
// at most a quarter turn each. It returns the arc's start point and
// one control-point triple per segment.
func unitCircleArc(theta1, theta2 float64) (Tuple, [][3]Tuple) {
	delta := theta2 - theta1
	n := int(math.Ceil(delta / 90))
	if n < 1 {
		n = 1
	}
	step := radians(delta) / float64(n)
	a := radians(theta1)
	start := Tuple{math.Cos(a), math.Sin(a)}
	segments := make([][3]Tuple, 0, n)
	for i := 0; i < n; i++ {
		segments = append(segments, unitArcSegment(a, step))
		a += step
	}
	return start, segments
}

// unitArcSegment is the standard tangent-offset cubic approximation of
// a circular arc of sweep dtheta radians starting at angle theta.
func unitArcSegment(theta, dtheta float64) [3]Tuple {
	t := math.Tan(dtheta / 2)
	a := math.Sin(dtheta) * (math.Sqrt(4+3*t*t) - 1) / 3
	x1, y1 := math.Cos(theta), math.Sin(theta)
	x2, y2 := math.Cos(theta+dtheta), math.Sin(theta+dtheta)
	return [3]Tuple{
		{x1 - y1*a, y1 + x1*a},
		{x2 + y2*a, y2 - x2*a},
		{x2, y2},
	}
}

func degrees(r float64) float64 { return r * 180 / math.Pi }

func radians(d float64) float64 { return d * math.Pi / 180 }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
