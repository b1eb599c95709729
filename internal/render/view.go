// Package render draws a family tree for people: as a text outline, as a
// list of names for query results and as a PDF page.
package render

import (
	"familytree/internal/domain/genealogy"
)

// View is a detached copy of a tree, safe to hand to other goroutines.
type View struct {
	Value string `json:"value"`
	Left  *View  `json:"left,omitempty"`
	Right *View  `json:"right,omitempty"`
}

// NewView copies the subtree rooted at n. A nil node gives a nil view.
func NewView(n *genealogy.Node) *View {
	if n == nil {
		return nil
	}
	return &View{
		Value: n.Value(),
		Left:  NewView(n.Left()),
		Right: NewView(n.Right()),
	}
}
