package svgpath

import (
	"fmt"
	"strings"

	mt "github.com/rustyoz/Mtransform"
)

// Path is one SVG pathdata string (the 'd' attribute mini-language)
// together with the options the caller controls.
type Path struct {
	// D is the pathdata to parse.
	D string
	// TransformString is an SVG transform attribute value. When set it
	// is parsed with ParseTransform and applied to every emitted point,
	// nested inside Transform.
	TransformString string
	// Origin is the position the path starts from. A leading relative
	// moveto resolves against it; a leading absolute moveto ignores
	// it. This deviates from plain SVG, where an initial moveto is
	// always absolute.
	Origin Tuple
	// Transform, when set, is applied to every emitted point.
	Transform *mt.Transform
}

// SyntaxError describes pathdata that does not match the path grammar.
type SyntaxError struct {
	Pos  int // byte offset into the pathdata string
	Desc string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Desc)
}

func syntaxErrorf(pos int, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Pos: pos, Desc: fmt.Sprintf(format, args...)}
}

// pathCommands is the command alphabet, by uppercase identity.
const pathCommands = "MZLHVCSQTA"

// pathDescriptionParser interprets the token stream of a pathdata
// string. The state it carries between commands is the current
// position, the start of the open subpath (where Z closes back to),
// the active command with its absolute/relative flag, the previously
// executed command, and the last control point of a preceding curve
// (what S and T reflect).
type pathDescriptionParser struct {
	lex            *Lexer
	x, y           float64
	startx, starty float64
	inSubpath      bool
	command        byte // uppercase; 0 before the first command and after a close
	absolute       bool
	lastCommand    byte
	cx, cy         float64 // last control point of the preceding C/S/Q/T
	transform      *mt.Transform
	emit           func(*DrawingInstruction)
}

func newPathDParse(p *Path) (*pathDescriptionParser, error) {
	pdp := &pathDescriptionParser{
		lex:       Lex(p.D),
		x:         p.Origin[0],
		y:         p.Origin[1],
		transform: p.Transform,
	}
	if p.TransformString != "" {
		pt, err := ParseTransform(p.TransformString)
		if err != nil {
			return nil, fmt.Errorf("error parsing path transform: %w", err)
		}
		if p.Transform != nil {
			pt = mt.MultiplyTransforms(*p.Transform, pt)
		}
		pdp.transform = &pt
	}
	return pdp, nil
}

// Parse runs the path description through the command interpreter and
// accumulates the resulting drawing instructions. On a syntax error no
// partial result is returned.
func (p *Path) Parse() (*PathData, error) {
	pd := &PathData{}
	pdp, err := newPathDParse(p)
	if err != nil {
		return nil, err
	}
	pdp.emit = pd.append
	if err := pdp.parse(); err != nil {
		return nil, err
	}
	return pd, nil
}

// ParseDrawingInstructions returns a channel of instructions and a
// channel delivering at most one error. The instruction channel should
// be passed to a path drawing library (like Cairo or something
// comparable); drain it before reading the error channel.
func (p *Path) ParseDrawingInstructions() (<-chan *DrawingInstruction, <-chan error) {
	instructions := make(chan *DrawingInstruction, 100)
	errs := make(chan error, 1)
	pdp, err := newPathDParse(p)
	if err != nil {
		errs <- err
		close(instructions)
		close(errs)
		return instructions, errs
	}
	pdp.emit = func(di *DrawingInstruction) { instructions <- di }
	go func() {
		defer close(instructions)
		defer close(errs)
		if err := pdp.parse(); err != nil {
			errs <- err
		}
	}()
	return instructions, errs
}

// ParsePath parses pathdata into its drawing-instruction sequence.
func ParsePath(d string) (*PathData, error) {
	return (&Path{D: d}).Parse()
}

// ParsePathAt is ParsePath with a caller-supplied starting position,
// which a leading relative moveto resolves against.
func ParsePathAt(d string, origin Tuple) (*PathData, error) {
	return (&Path{D: d, Origin: origin}).Parse()
}

func (pdp *pathDescriptionParser) parse() error {
	for {
		item := pdp.lex.PeekItem()
		switch item.Type {
		case ItemEOS:
			return nil
		case ItemError:
			return syntaxErrorf(item.Pos, "unexpected character %q", item.Value)
		case ItemLetter:
			pdp.lex.NextItem()
			c := item.Value[0]
			upper := c
			absolute := true
			if 'a' <= c && c <= 'z' {
				upper = c - 'a' + 'A'
				absolute = false
			}
			if strings.IndexByte(pathCommands, upper) < 0 {
				return syntaxErrorf(item.Pos, "unknown command %q", item.Value)
			}
			pdp.lastCommand = pdp.command
			pdp.command = upper
			pdp.absolute = absolute
		case ItemNumber:
			// An implicit repeat of the active command; the number
			// stays in the stream for the command to consume.
			if pdp.command == 0 {
				return syntaxErrorf(item.Pos, "unallowed implicit command")
			}
			pdp.lastCommand = pdp.command
		}
		if err := pdp.parseCommand(item.Pos); err != nil {
			return err
		}
	}
}

// parseCommand executes one group of the active command.
func (pdp *pathDescriptionParser) parseCommand(pos int) error {
	switch pdp.command {
	case 'M':
		return pdp.parseMoveTo()
	case 'Z':
		return pdp.parseClose(pos)
	case 'L':
		return pdp.parseLineTo()
	case 'H':
		return pdp.parseHLineTo()
	case 'V':
		return pdp.parseVLineTo()
	case 'C':
		return pdp.parseCurveTo()
	case 'S':
		return pdp.parseSmoothCurveTo()
	case 'Q':
		return pdp.parseQuadTo()
	case 'T':
		return pdp.parseSmoothQuadTo()
	case 'A':
		return pdp.parseArcTo()
	}
	return nil
}

func (pdp *pathDescriptionParser) number() (float64, error) {
	item := pdp.lex.NextItem()
	switch item.Type {
	case ItemNumber:
		return item.Number, nil
	case ItemEOS:
		return 0, syntaxErrorf(item.Pos, "expected number, got end of input")
	default:
		return 0, syntaxErrorf(item.Pos, "expected number, got %q", item.Value)
	}
}

func (pdp *pathDescriptionParser) tuple() (Tuple, error) {
	x, err := pdp.number()
	if err != nil {
		return Tuple{}, err
	}
	y, err := pdp.number()
	if err != nil {
		return Tuple{}, err
	}
	return Tuple{x, y}, nil
}

// point applies the caller transform, if any, to an emitted vertex.
func (pdp *pathDescriptionParser) point(x, y float64) *Tuple {
	if pdp.transform != nil {
		x, y = pdp.transform.Apply(x, y)
	}
	return &Tuple{x, y}
}

func (pdp *pathDescriptionParser) parseMoveTo() error {
	t, err := pdp.tuple()
	if err != nil {
		return fmt.Errorf("error parsing MoveTo: %w", err)
	}
	if pdp.absolute {
		pdp.x, pdp.y = t[0], t[1]
	} else {
		pdp.x += t[0]
		pdp.y += t[1]
	}

	// A moveto starts a new subpath; Z closes back to this point.
	pdp.startx, pdp.starty = pdp.x, pdp.y
	pdp.inSubpath = true
	pdp.emit(&DrawingInstruction{Kind: MoveInstruction, M: pdp.point(pdp.x, pdp.y)})

	// Coordinate pairs following a moveto are implicit linetos.
	pdp.command = 'L'
	return nil
}

func (pdp *pathDescriptionParser) parseClose(pos int) error {
	if !pdp.inSubpath {
		return syntaxErrorf(pos, "close command with no open subpath")
	}
	if pdp.x != pdp.startx || pdp.y != pdp.starty {
		pdp.emit(&DrawingInstruction{Kind: LineInstruction, M: pdp.point(pdp.startx, pdp.starty)})
	}
	pdp.emit(&DrawingInstruction{Kind: CloseInstruction, M: pdp.point(pdp.startx, pdp.starty)})

	pdp.x, pdp.y = pdp.startx, pdp.starty
	pdp.inSubpath = false
	// Implicit commands cannot follow a close.
	pdp.command = 0
	return nil
}

func (pdp *pathDescriptionParser) parseLineTo() error {
	t, err := pdp.tuple()
	if err != nil {
		return fmt.Errorf("error parsing LineTo: %w", err)
	}
	if !pdp.absolute {
		t[0] += pdp.x
		t[1] += pdp.y
	}
	pdp.emit(&DrawingInstruction{Kind: LineInstruction, M: pdp.point(t[0], t[1])})
	pdp.x, pdp.y = t[0], t[1]
	return nil
}

func (pdp *pathDescriptionParser) parseHLineTo() error {
	n, err := pdp.number()
	if err != nil {
		return fmt.Errorf("error parsing HLineTo: %w", err)
	}
	if pdp.absolute {
		pdp.x = n
	} else {
		pdp.x += n
	}
	pdp.emit(&DrawingInstruction{Kind: LineInstruction, M: pdp.point(pdp.x, pdp.y)})
	return nil
}

func (pdp *pathDescriptionParser) parseVLineTo() error {
	n, err := pdp.number()
	if err != nil {
		return fmt.Errorf("error parsing VLineTo: %w", err)
	}
	if pdp.absolute {
		pdp.y = n
	} else {
		pdp.y += n
	}
	pdp.emit(&DrawingInstruction{Kind: LineInstruction, M: pdp.point(pdp.x, pdp.y)})
	return nil
}

func (pdp *pathDescriptionParser) parseCurveTo() error {
	control1, err := pdp.tuple()
	if err != nil {
		return fmt.Errorf("error parsing CurveTo: %w", err)
	}
	control2, err := pdp.tuple()
	if err != nil {
		return fmt.Errorf("error parsing CurveTo: %w", err)
	}
	end, err := pdp.tuple()
	if err != nil {
		return fmt.Errorf("error parsing CurveTo: %w", err)
	}
	if !pdp.absolute {
		control1[0] += pdp.x
		control1[1] += pdp.y
		control2[0] += pdp.x
		control2[1] += pdp.y
		end[0] += pdp.x
		end[1] += pdp.y
	}
	pdp.emit(&DrawingInstruction{
		Kind: CurveInstruction,
		C1:   pdp.point(control1[0], control1[1]),
		C2:   pdp.point(control2[0], control2[1]),
		T:    pdp.point(end[0], end[1]),
	})
	pdp.x, pdp.y = end[0], end[1]
	pdp.cx, pdp.cy = control2[0], control2[1]
	return nil
}

func (pdp *pathDescriptionParser) parseSmoothCurveTo() error {
	// The first control point is the reflection of the previous cubic
	// curve's second control point through the current position. Any
	// other preceding command leaves it coincident with the current
	// position.
	control1 := Tuple{pdp.x, pdp.y}
	if pdp.lastCommand == 'C' || pdp.lastCommand == 'S' {
		control1 = Tuple{2*pdp.x - pdp.cx, 2*pdp.y - pdp.cy}
	}
	control2, err := pdp.tuple()
	if err != nil {
		return fmt.Errorf("error parsing SmoothCurveTo: %w", err)
	}
	end, err := pdp.tuple()
	if err != nil {
		return fmt.Errorf("error parsing SmoothCurveTo: %w", err)
	}
	if !pdp.absolute {
		control2[0] += pdp.x
		control2[1] += pdp.y
		end[0] += pdp.x
		end[1] += pdp.y
	}
	pdp.emit(&DrawingInstruction{
		Kind: CurveInstruction,
		C1:   pdp.point(control1[0], control1[1]),
		C2:   pdp.point(control2[0], control2[1]),
		T:    pdp.point(end[0], end[1]),
	})
	pdp.x, pdp.y = end[0], end[1]
	pdp.cx, pdp.cy = control2[0], control2[1]
	return nil
}

func (pdp *pathDescriptionParser) parseQuadTo() error {
	control, err := pdp.tuple()
	if err != nil {
		return fmt.Errorf("error parsing QuadTo: %w", err)
	}
	end, err := pdp.tuple()
	if err != nil {
		return fmt.Errorf("error parsing QuadTo: %w", err)
	}
	if !pdp.absolute {
		control[0] += pdp.x
		control[1] += pdp.y
		end[0] += pdp.x
		end[1] += pdp.y
	}
	pdp.emit(&DrawingInstruction{
		Kind: QuadInstruction,
		C1:   pdp.point(control[0], control[1]),
		T:    pdp.point(end[0], end[1]),
	})
	pdp.x, pdp.y = end[0], end[1]
	pdp.cx, pdp.cy = control[0], control[1]
	return nil
}

func (pdp *pathDescriptionParser) parseSmoothQuadTo() error {
	// Reflection as in SmoothCurveTo, but only a preceding quadratic
	// curve counts.
	control := Tuple{pdp.x, pdp.y}
	if pdp.lastCommand == 'Q' || pdp.lastCommand == 'T' {
		control = Tuple{2*pdp.x - pdp.cx, 2*pdp.y - pdp.cy}
	}
	end, err := pdp.tuple()
	if err != nil {
		return fmt.Errorf("error parsing SmoothQuadTo: %w", err)
	}
	if !pdp.absolute {
		end[0] += pdp.x
		end[1] += pdp.y
	}
	pdp.emit(&DrawingInstruction{
		Kind: QuadInstruction,
		C1:   pdp.point(control[0], control[1]),
		T:    pdp.point(end[0], end[1]),
	})
	pdp.x, pdp.y = end[0], end[1]
	pdp.cx, pdp.cy = control[0], control[1]
	return nil
}

func (pdp *pathDescriptionParser) parseArcTo() error {
	radii, err := pdp.tuple()
	if err != nil {
		return fmt.Errorf("error parsing ArcTo: %w", err)
	}
	rotation, err := pdp.number()
	if err != nil {
		return fmt.Errorf("error parsing ArcTo: %w", err)
	}
	largeF, err := pdp.number()
	if err != nil {
		return fmt.Errorf("error parsing ArcTo: %w", err)
	}
	sweepF, err := pdp.number()
	if err != nil {
		return fmt.Errorf("error parsing ArcTo: %w", err)
	}
	end, err := pdp.tuple()
	if err != nil {
		return fmt.Errorf("error parsing ArcTo: %w", err)
	}
	if !pdp.absolute {
		end[0] += pdp.x
		end[1] += pdp.y
	}

	pdp.arcInstructions(radii[0], radii[1], rotation, largeF != 0, sweepF != 0, end)
	pdp.x, pdp.y = end[0], end[1]
	return nil
}

// arcInstructions converts one arc command into its instruction run: a
// unit-circle arc between the two center-parameterization angles,
// scaled by the radii, translated to the center and rotated about it.
func (pdp *pathDescriptionParser) arcInstructions(rx, ry, rotation float64, large, sweep bool, end Tuple) {
	if end[0] == pdp.x && end[1] == pdp.y {
		return
	}
	if rx == 0 || ry == 0 {
		// A degenerate ellipse draws a straight line to the endpoint.
		pdp.emit(&DrawingInstruction{Kind: LineInstruction, M: pdp.point(end[0], end[1])})
		return
	}

	cx, cy, rx, ry, theta1, theta2 := endpointToCenter(pdp.x, pdp.y, rx, ry, rotation, large, sweep, end[0], end[1])
	lo, hi := theta1, theta2
	if hi < lo {
		lo, hi = hi, lo
	}
	start, segments := unitCircleArc(lo, hi)
	m := arcTransform(rx, ry, cx, cy, rotation)

	// When sweeping in the positive-angle direction the run's leading
	// vertex is dropped, otherwise the boundary does not line up with
	// the next command's start point.
	if !sweep {
		x, y := m.Apply(start[0], start[1])
		pdp.emit(&DrawingInstruction{Kind: MoveInstruction, M: pdp.point(x, y)})
	}
	for _, s := range segments {
		c1x, c1y := m.Apply(s[0][0], s[0][1])
		c2x, c2y := m.Apply(s[1][0], s[1][1])
		tx, ty := m.Apply(s[2][0], s[2][1])
		pdp.emit(&DrawingInstruction{
			Kind: CurveInstruction,
			C1:   pdp.point(c1x, c1y),
			C2:   pdp.point(c2x, c2y),
			T:    pdp.point(tx, ty),
		})
	}
}
