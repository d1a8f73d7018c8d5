package parser

// Path is an immutable chain of nodes from a root to a leaf. Extending a
// path never changes it; paths share their ancestors.
type Path struct {
	parent *Path
	leaf   *Node
}

func NewPath(root *Node) *Path {
	if root == nil {
		return nil
	}
	return &Path{leaf: root}
}

func (p *Path) Leaf() *Node {
	if p == nil {
		return nil
	}
	return p.leaf
}

func (p *Path) Parent() *Path {
	if p == nil {
		return nil
	}
	return p.parent
}

// Child returns a new path extending p with n.
func (p *Path) Child(n *Node) *Path {
	return &Path{parent: p, leaf: n}
}

// Graft appends the nodes of sub, root first, to p.
func (p *Path) Graft(sub *Path) *Path {
	result := p
	for _, n := range sub.Nodes() {
		result = result.Child(n)
	}
	return result
}

func (p *Path) Root() *Node {
	for p != nil && p.parent != nil {
		p = p.parent
	}
	return p.Leaf()
}

func (p *Path) Depth() int {
	depth := 0
	for ; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// Nodes returns the nodes of the path, root first.
func (p *Path) Nodes() []*Node {
	nodes := make([]*Node, p.Depth())
	for i := len(nodes) - 1; p != nil; i, p = i-1, p.parent {
		nodes[i] = p.leaf
	}
	return nodes
}

// Find returns the innermost path, starting at p itself, whose leaf has
// one of kinds.
func (p *Path) Find(kinds ...NodeKind) *Path {
	for ; p != nil; p = p.parent {
		for _, kind := range kinds {
			if p.leaf.Kind == kind {
				return p
			}
		}
	}
	return nil
}

// FindFunc returns the innermost path, starting at p, whose leaf satisfies
// fn.
func (p *Path) FindFunc(fn func(*Node) bool) *Path {
	for ; p != nil; p = p.parent {
		if fn(p.leaf) {
			return p
		}
	}
	return nil
}

// Synthetic returns the innermost synthetic wrapper on the path, or nil.
func (p *Path) Synthetic() *Synthetic {
	if s := p.Find(KindSynthetic); s != nil {
		return s.leaf.Synthetic
	}
	return nil
}

// children returns the children of n as seen by paths: a synthetic node has
// its fragment as its only child.
func children(n *Node) []*Node {
	if n.Kind == KindSynthetic && n.Synthetic != nil && n.Synthetic.Fragment != nil {
		return []*Node{n.Synthetic.Fragment}
	}
	return n.Children
}

// PathAt returns the path to the deepest node whose span contains offset,
// where a node contains offset when start < offset <= end. The root always
// matches. Zero-width nodes never match.
func PathAt(root *Node, offset int) *Path {
	if root == nil {
		return nil
	}
	path := NewPath(root)
	for {
		var next *Node
		for _, child := range children(path.leaf) {
			if child.Span.Len() > 0 && child.Start() < offset && offset <= child.End() {
				next = child
				break
			}
		}
		if next == nil {
			return path
		}
		path = path.Child(next)
	}
}

// PathAtGap returns the path to the construct that continues into the
// trivia between the token ending at after and offset. It descends through
// the nodes that start before offset and reach after. The deepest node with
// an empty child in [after, before] wins, the empty child standing for what
// the parser expected there. Failing that, when open is set the deepest
// node ending at after is taken. It returns nil when neither exists.
func PathAtGap(root *Node, offset, after, before int, open bool) *Path {
	if root == nil {
		return nil
	}
	var gap, end *Path
	gapDepth, endDepth := -1, -1
	var walk func(path *Path, depth int)
	walk = func(path *Path, depth int) {
		if open && path.leaf.End() == after && depth > endDepth {
			end, endDepth = path, depth
		}
		for _, child := range children(path.leaf) {
			if child.Span.Len() == 0 {
				if after <= child.Start() && child.Start() <= before && depth > gapDepth {
					gap, gapDepth = path, depth
				}
				continue
			}
			if child.Start() < offset && child.End() >= after {
				walk(path.Child(child), depth+1)
			}
		}
	}
	walk(NewPath(root), 0)
	if gap != nil {
		return gap
	}
	return end
}

// PathTo returns the path from root to target, or nil when target is not in
// the tree.
func PathTo(root, target *Node) *Path {
	if root == nil {
		return nil
	}
	path := NewPath(root)
	if root == target {
		return path
	}
	for _, child := range children(root) {
		if child.Span.Len() > 0 && (target.Start() < child.Start() || target.End() > child.End()) {
			continue
		}
		if sub := PathTo(child, target); sub != nil {
			return path.Graft(sub)
		}
	}
	return nil
}
