package parser

import "encoding/json"

// jsonNode is the wire shape of a Node: offsets are bytes, line and column
// are those of the start.
type jsonNode struct {
	Kind      string         `json:"kind"`
	Start     int            `json:"start"`
	End       int            `json:"end"`
	Line      int            `json:"line,omitempty"`
	Column    int            `json:"column,omitempty"`
	Text      string         `json:"text,omitempty"`
	Missing   *jsonMissing   `json:"missing,omitempty"`
	Synthetic *jsonSynthetic `json:"synthetic,omitempty"`
	Children  []*jsonNode    `json:"children,omitempty"`
}

type jsonMissing struct {
	Message  string   `json:"message"`
	Expected []string `json:"expected,omitempty"`
	Found    string   `json:"found,omitempty"`
}

// jsonSynthetic is a re-parsed fragment; Base is where its offset 0 lies
// in the original text.
type jsonSynthetic struct {
	Base     int       `json:"base"`
	Fragment *jsonNode `json:"fragment"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(encodeNode(n))
}

func encodeNode(n *Node) *jsonNode {
	out := &jsonNode{
		Kind:   n.Kind.String(),
		Start:  n.Span.Start.Offset,
		End:    n.Span.End.Offset,
		Line:   n.Span.Start.Line,
		Column: n.Span.Start.Column,
	}
	if n.Token != nil {
		out.Text = n.Token.Literal
	}
	if e := n.Error; e != nil {
		out.Missing = &jsonMissing{Message: e.Message}
		for _, k := range e.Expected {
			out.Missing.Expected = append(out.Missing.Expected, k.String())
		}
		if e.Got != nil {
			out.Missing.Found = e.Got.Literal
		}
	}
	if s := n.Synthetic; s != nil && s.Fragment != nil {
		out.Synthetic = &jsonSynthetic{Base: s.Positions.Base, Fragment: encodeNode(s.Fragment)}
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, encodeNode(c))
	}
	return out
}
