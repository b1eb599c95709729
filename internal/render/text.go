package render

import (
	"fmt"
	"io"
	"strings"
)

const EmptyTree = "Empty Tree"

// Text writes the tree as an indented outline, left child before right:
//
//	Alice
//	├── L: Bob
//	│   └── L: Dan
//	└── R: Carol
func Text(w io.Writer, v *View) error {
	if v == nil {
		_, err := fmt.Fprintln(w, EmptyTree)
		return err
	}
	if _, err := fmt.Fprintln(w, v.Value); err != nil {
		return err
	}
	return children(w, v, "")
}

func children(w io.Writer, v *View, prefix string) error {
	type slot struct {
		tag  string
		node *View
	}
	var present []slot
	if v.Left != nil {
		present = append(present, slot{"L", v.Left})
	}
	if v.Right != nil {
		present = append(present, slot{"R", v.Right})
	}

	for i, s := range present {
		branch, indent := "├── ", "│   "
		if i == len(present)-1 {
			branch, indent = "└── ", "    "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s: %s\n", prefix, branch, s.tag, s.node.Value); err != nil {
			return err
		}
		if err := children(w, s.node, prefix+indent); err != nil {
			return err
		}
	}
	return nil
}

// List writes a query result: the title, then one name per line.
func List(w io.Writer, title string, names []string) error {
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteByte('\n')
	for _, name := range names {
		sb.WriteString(name)
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
