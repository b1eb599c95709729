// Package genealogy holds the family tree: a manually shaped binary tree of
// named people with parent-anchored insertion and ancestor/descendant queries.
package genealogy

import (
	"slices"

	errs "familytree/internal/errors"
)

// Node is a single person in the tree. Each node exclusively owns its children.
type Node struct {
	value string
	left  *Node
	right *Node
}

// Value returns the name stored in the node.
func (n *Node) Value() string { return n.value }

// Left returns the left child or nil.
func (n *Node) Left() *Node { return n.left }

// Right returns the right child or nil.
func (n *Node) Right() *Node { return n.right }

// Tree is not safe for concurrent use; callers serialize access.
type Tree struct {
	root *Node
}

func NewTree() *Tree {
	return &Tree{}
}

// Root exposes the root for rendering. It is nil for an empty tree.
func (t *Tree) Root() *Node {
	return t.root
}

// AddRoot creates the root if the tree is empty. Once a root exists the call
// leaves the tree untouched and reports ErrRootExists.
func (t *Tree) AddRoot(name string) error {
	if t.root != nil {
		return errs.ErrRootExists
	}
	t.root = &Node{value: name}
	return nil
}

// AddLeftChild attaches a new leaf named child into the empty left slot of
// the first node named parent.
func (t *Tree) AddLeftChild(parent, child string) error {
	p := t.locate(parent)
	if p == nil {
		return errs.ErrParentNotFound
	}
	if p.left != nil {
		return errs.ErrSlotOccupied
	}
	p.left = &Node{value: child}
	return nil
}

// AddRightChild is AddLeftChild for the right slot.
func (t *Tree) AddRightChild(parent, child string) error {
	p := t.locate(parent)
	if p == nil {
		return errs.ErrParentNotFound
	}
	if p.right != nil {
		return errs.ErrSlotOccupied
	}
	p.right = &Node{value: child}
	return nil
}

// Descendants returns the preorder names of the subtree rooted at the first
// node named name, starting with name itself. Unknown names yield an empty slice.
func (t *Tree) Descendants(name string) []string {
	n := t.locate(name)
	if n == nil {
		return []string{}
	}
	return preorder(n, []string{})
}

// Ancestors returns the path of names from the root down to the first node
// named name, both ends included. Unknown names yield an empty slice.
func (t *Tree) Ancestors(name string) []string {
	path, found := pathTo(t.root, name)
	if !found {
		return []string{}
	}
	slices.Reverse(path)
	return path
}

// Contains reports whether some node is named name.
func (t *Tree) Contains(name string) bool {
	return t.locate(name) != nil
}

// Len counts the nodes.
func (t *Tree) Len() int {
	count := 0
	t.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Walk visits nodes in preorder with their depth (root is 0) until fn returns false.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	walk(t.root, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n, depth) {
		return false
	}
	return walk(n.left, depth+1, fn) && walk(n.right, depth+1, fn)
}

// locate finds the first node in preorder whose value is name.
func (t *Tree) locate(name string) *Node {
	return locate(t.root, name)
}

func locate(n *Node, name string) *Node {
	if n == nil {
		return nil
	}
	if n.value == name {
		return n
	}
	if found := locate(n.left, name); found != nil {
		return found
	}
	return locate(n.right, name)
}

func preorder(n *Node, acc []string) []string {
	if n == nil {
		return acc
	}
	acc = append(acc, n.value)
	acc = preorder(n.left, acc)
	return preorder(n.right, acc)
}

// pathTo collects the path leaf first on the way back up, so a failed branch
// leaves nothing behind. The caller reverses it.
func pathTo(n *Node, name string) ([]string, bool) {
	if n == nil {
		return nil, false
	}
	if n.value == name {
		return []string{n.value}, true
	}
	path, found := pathTo(n.left, name)
	if !found {
		path, found = pathTo(n.right, name)
	}
	if !found {
		return nil, false
	}
	return append(path, n.value), true
}
