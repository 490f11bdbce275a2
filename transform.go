package svgpath

import (
	"fmt"
	"math"
	"strings"

	mt "github.com/rustyoz/Mtransform"
)

// Matrices follow Mtransform's row, column layout: a point transforms
// as T * (x, y, 1).

func scaleMatrix(sx, sy float64) mt.Transform {
	t := mt.Identity()
	t[0][0] = sx
	t[1][1] = sy
	return t
}

func translateMatrix(tx, ty float64) mt.Transform {
	t := mt.Identity()
	t[0][2] = tx
	t[1][2] = ty
	return t
}

func rotateMatrix(degrees float64) mt.Transform {
	r := radians(degrees)
	sin, cos := math.Sin(r), math.Cos(r)
	t := mt.Identity()
	t[0][0] = cos
	t[0][1] = -sin
	t[1][0] = sin
	t[1][1] = cos
	return t
}

// rotateAboutMatrix rotates around (cx, cy) instead of the origin.
func rotateAboutMatrix(degrees, cx, cy float64) mt.Transform {
	t := mt.MultiplyTransforms(rotateMatrix(degrees), translateMatrix(-cx, -cy))
	return mt.MultiplyTransforms(translateMatrix(cx, cy), t)
}

// arcTransform maps unit-circle arc vertices onto the elliptical arc:
// scale by the radii, translate to the center, then rotate the ellipse
// axis about the center.
func arcTransform(rx, ry, cx, cy, rotation float64) mt.Transform {
	t := mt.MultiplyTransforms(translateMatrix(cx, cy), scaleMatrix(rx, ry))
	return mt.MultiplyTransforms(rotateAboutMatrix(rotation, cx, cy), t)
}

// ParseTransform parses an SVG transform attribute value, a list of
// matrix, translate, scale and rotate operations, into a single
// transform. Operations compose left to right, so a later operation
// nests inside the earlier ones.
func ParseTransform(s string) (mt.Transform, error) {
	t := mt.Identity()
	rest := strings.TrimSpace(s)
	for rest != "" {
		lp := strings.IndexByte(rest, '(')
		rp := strings.IndexByte(rest, ')')
		if lp < 0 || rp < lp {
			return mt.Identity(), fmt.Errorf("malformed transform %q", s)
		}
		name := strings.Trim(rest[:lp], " ,\t\n\r")
		args, err := parseNumberList(rest[lp+1 : rp])
		if err != nil {
			return mt.Identity(), fmt.Errorf("error parsing transform %q arguments: %w", name, err)
		}

		var m mt.Transform
		switch name {
		case "matrix":
			if len(args) != 6 {
				return mt.Identity(), fmt.Errorf("transform matrix expects 6 arguments, got %d", len(args))
			}
			m = mt.Identity()
			m[0][0] = args[0]
			m[1][0] = args[1]
			m[0][1] = args[2]
			m[1][1] = args[3]
			m[0][2] = args[4]
			m[1][2] = args[5]
		case "translate":
			switch len(args) {
			case 1:
				m = translateMatrix(args[0], 0)
			case 2:
				m = translateMatrix(args[0], args[1])
			default:
				return mt.Identity(), fmt.Errorf("transform translate expects 1 or 2 arguments, got %d", len(args))
			}
		case "scale":
			switch len(args) {
			case 1:
				m = scaleMatrix(args[0], args[0])
			case 2:
				m = scaleMatrix(args[0], args[1])
			default:
				return mt.Identity(), fmt.Errorf("transform scale expects 1 or 2 arguments, got %d", len(args))
			}
		case "rotate":
			switch len(args) {
			case 1:
				m = rotateMatrix(args[0])
			case 3:
				m = rotateAboutMatrix(args[0], args[1], args[2])
			default:
				return mt.Identity(), fmt.Errorf("transform rotate expects 1 or 3 arguments, got %d", len(args))
			}
		default:
			return mt.Identity(), fmt.Errorf("unsupported transform %q", name)
		}

		t = mt.MultiplyTransforms(t, m)
		rest = strings.TrimSpace(rest[rp+1:])
	}
	return t, nil
}

// parseNumberList lexes a string of separator-delimited numeric
// literals, such as a transform operation's argument list.
func parseNumberList(s string) ([]float64, error) {
	lex := Lex(s)
	var ns []float64
	for {
		item := lex.NextItem()
		switch item.Type {
		case ItemEOS:
			return ns, nil
		case ItemNumber:
			ns = append(ns, item.Number)
		default:
			return nil, syntaxErrorf(item.Pos, "expected number, got %q", item.Value)
		}
	}
}
