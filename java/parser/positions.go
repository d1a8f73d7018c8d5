package parser

// SourcePositions reports where a node lies in the original source text.
type SourcePositions interface {
	StartPosition(n *Node) int
	EndPosition(n *Node) int
}

// TreePositions reads positions straight from node spans.
type TreePositions struct{}

func (TreePositions) StartPosition(n *Node) int { return n.Start() }
func (TreePositions) EndPosition(n *Node) int   { return n.End() }

// SyntheticPositions translates offsets of a fragment parsed from
// text[Base:Base+Length], plus appended closing delimiters, back to the
// original text.
type SyntheticPositions struct {
	Base   int
	Length int
}

func (sp *SyntheticPositions) ToOriginal(local int) int {
	if local > sp.Length {
		local = sp.Length
	}
	if local < 0 {
		local = 0
	}
	return sp.Base + local
}

func (sp *SyntheticPositions) ToLocal(original int) int {
	return original - sp.Base
}

// Contains reports whether an original offset lies inside the window.
func (sp *SyntheticPositions) Contains(original int) bool {
	return original >= sp.Base && original <= sp.Base+sp.Length
}

func (sp *SyntheticPositions) StartPosition(n *Node) int { return sp.ToOriginal(n.Start()) }
func (sp *SyntheticPositions) EndPosition(n *Node) int   { return sp.ToOriginal(n.End()) }
