package svgpath

import (
	"github.com/tdewolff/parse/v2/strconv"
)

// ItemType identifies what a lexed item is
type ItemType int

// The item types produced by the lexer
const (
	ItemError ItemType = iota
	ItemEOS
	ItemNumber
	ItemLetter
)

// Item is a single token of a pathdata string: a command letter, a
// numeric literal, the end of the string, or a character that is
// neither. Pos is the byte offset of the item in the input.
type Item struct {
	Type   ItemType
	Value  string
	Number float64
	Pos    int
}

// Lexer splits a pathdata string into a single forward stream of
// Items. Whitespace and commas only separate tokens and are consumed
// silently; a command letter and a following number, or two numbers
// where the second starts with a sign or a dot, need no separator at
// all ("M100-150" is three items).
type Lexer struct {
	input  []byte
	pos    int
	peeked bool
	peek   Item
}

// Lex returns a lexer over the given pathdata string.
func Lex(input string) *Lexer {
	return &Lexer{input: []byte(input)}
}

// NextItem consumes and returns the next item. After the input is
// exhausted every call returns an ItemEOS item.
func (l *Lexer) NextItem() Item {
	if l.peeked {
		l.peeked = false
		return l.peek
	}
	return l.scan()
}

// PeekItem returns the next item without consuming it.
func (l *Lexer) PeekItem() Item {
	if !l.peeked {
		l.peek = l.scan()
		l.peeked = true
	}
	return l.peek
}

func (l *Lexer) scan() Item {
	l.pos += skipCommaWhitespace(l.input[l.pos:])
	if l.pos >= len(l.input) {
		return Item{Type: ItemEOS, Pos: l.pos}
	}
	c := l.input[l.pos]
	if 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' {
		item := Item{Type: ItemLetter, Value: string(c), Pos: l.pos}
		l.pos++
		return item
	}
	f, n := strconv.ParseFloat(l.input[l.pos:])
	if n == 0 {
		return Item{Type: ItemError, Value: string(c), Pos: l.pos}
	}
	item := Item{
		Type:   ItemNumber,
		Value:  string(l.input[l.pos : l.pos+n]),
		Number: f,
		Pos:    l.pos,
	}
	l.pos += n
	return item
}

func skipCommaWhitespace(b []byte) int {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == ',' || b[i] == '\n' || b[i] == '\r' || b[i] == '\t') {
		i++
	}
	return i
}
