package voxel

// Node is either a leaf holding one value for its whole cube, or a branch
// owning exactly eight children. Children are stored by value behind a
// single array pointer, so no node is ever reachable from two parents.
type Node[T comparable] struct {
	children *[8]Node[T]
	value    T
}

// Leaf returns a leaf node holding v.
func Leaf[T comparable](v T) Node[T] {
	return Node[T]{value: v}
}

// IsLeaf reports whether n has no children.
func (n *Node[T]) IsLeaf() bool {
	return n.children == nil
}

// Value is the leaf value. It is meaningless for branches.
func (n *Node[T]) Value() T {
	return n.value
}

// Child returns the child in octant o, or nil for a leaf.
func (n *Node[T]) Child(o uint8) *Node[T] {
	if n.children == nil {
		return nil
	}
	return &n.children[o&7]
}

// setLeaf turns n into a leaf of v, releasing any subtree.
func (n *Node[T]) setLeaf(v T) {
	n.children = nil
	n.value = v
}

// subdivide replaces a leaf with a branch of eight leaves of the same
// value, so the represented content is unchanged.
func (n *Node[T]) subdivide() {
	var kids [8]Node[T]
	for i := range kids {
		kids[i].value = n.value
	}
	n.children = &kids
	var zero T
	n.value = zero
}

// collapse merges a branch whose children are eight equal leaves. It
// reports whether the merge happened.
func (n *Node[T]) collapse() bool {
	if n.children == nil {
		return false
	}
	first := &n.children[0]
	if !first.IsLeaf() {
		return false
	}
	for i := 1; i < 8; i++ {
		c := &n.children[i]
		if !c.IsLeaf() || c.value != first.value {
			return false
		}
	}
	n.setLeaf(first.value)
	return true
}

// descendMin follows octant 0 until a leaf is reached.
func (n *Node[T]) descendMin() T {
	for n.children != nil {
		n = &n.children[0]
	}
	return n.value
}

func (n *Node[T]) count() (nodes, leaves, depth int) {
	if n.children == nil {
		return 1, 1, 0
	}
	nodes = 1
	for i := range n.children {
		cn, cl, cd := n.children[i].count()
		nodes += cn
		leaves += cl
		depth = max(depth, cd+1)
	}
	return nodes, leaves, depth
}

func (n *Node[T]) compact() bool {
	if n.children == nil {
		return true
	}
	uniform := true
	for i := range n.children {
		c := &n.children[i]
		if !c.compact() {
			return false
		}
		if !c.IsLeaf() || c.value != n.children[0].value {
			uniform = false
		}
	}
	return !uniform
}

func (n *Node[T]) clone() Node[T] {
	if n.children == nil {
		return Node[T]{value: n.value}
	}
	var kids [8]Node[T]
	for i := range kids {
		kids[i] = n.children[i].clone()
	}
	return Node[T]{children: &kids}
}
