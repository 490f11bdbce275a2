package svgpath

// InstructionType tells our path drawing library which function it has
// to call
type InstructionType int

// These are instruction types that we use with our path drawing library
const (
	MoveInstruction InstructionType = iota
	LineInstruction
	QuadInstruction
	CurveInstruction
	CloseInstruction
)

func (t InstructionType) String() string {
	switch t {
	case MoveInstruction:
		return "Move"
	case LineInstruction:
		return "Line"
	case QuadInstruction:
		return "Quad"
	case CurveInstruction:
		return "Curve"
	case CloseInstruction:
		return "Close"
	}
	return "Unknown"
}

// Tuple is an X,Y coordinate
type Tuple [2]float64

// DrawingInstruction contains enough information that a simple drawing
// library can draw the shapes described by a pathdata string. Move,
// Line and Close carry their single vertex in M (the close vertex is
// an anchor renderers expect but do not draw), quadratic curves carry
// C1 and T, cubic curves carry C1, C2 and T.
type DrawingInstruction struct {
	Kind InstructionType
	M    *Tuple
	C1   *Tuple
	C2   *Tuple
	T    *Tuple
}

// vertexArity is the fixed vertex count per instruction kind.
var vertexArity = map[InstructionType]int{
	MoveInstruction:  1,
	LineInstruction:  1,
	QuadInstruction:  2,
	CurveInstruction: 3,
	CloseInstruction: 1,
}

// Points returns the instruction's vertices in drawing order.
func (di *DrawingInstruction) Points() []Tuple {
	switch di.Kind {
	case QuadInstruction:
		return []Tuple{*di.C1, *di.T}
	case CurveInstruction:
		return []Tuple{*di.C1, *di.C2, *di.T}
	default:
		return []Tuple{*di.M}
	}
}
