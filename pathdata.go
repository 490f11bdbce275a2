package svgpath

import (
	"strconv"
	"strings"
)

// PathData is the ordered drawing-instruction sequence produced from
// one pathdata string. It is the artifact handed to a renderer; the
// parser only appends to it.
type PathData struct {
	Instructions []*DrawingInstruction
}

func (pd *PathData) append(di *DrawingInstruction) {
	pd.Instructions = append(pd.Instructions, di)
}

// D renders the instruction sequence back into pathdata text, with all
// coordinates absolute. Arc commands round-trip as the cubic segments
// they were converted to.
//
// A close in a subpath that contains an arc's leading vertex is not
// expressible: that vertex is written as an M, which starts a new
// subpath in the text, so a reader of the output resolves the Z
// against it instead of the original subpath start.
func (pd *PathData) D() string {
	var b strings.Builder
	for i, di := range pd.Instructions {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch di.Kind {
		case MoveInstruction:
			b.WriteByte('M')
			writeTuple(&b, di.M)
		case LineInstruction:
			b.WriteByte('L')
			writeTuple(&b, di.M)
		case QuadInstruction:
			b.WriteByte('Q')
			writeTuple(&b, di.C1)
			b.WriteByte(' ')
			writeTuple(&b, di.T)
		case CurveInstruction:
			b.WriteByte('C')
			writeTuple(&b, di.C1)
			b.WriteByte(' ')
			writeTuple(&b, di.C2)
			b.WriteByte(' ')
			writeTuple(&b, di.T)
		case CloseInstruction:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func (pd *PathData) String() string {
	return pd.D()
}

func writeTuple(b *strings.Builder, t *Tuple) {
	b.WriteString(strconv.FormatFloat(t[0], 'g', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(t[1], 'g', -1, 64))
}
