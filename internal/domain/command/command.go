package command

import (
	"fmt"
	"strings"

	errs "familytree/internal/errors"
)

type Kind int

const (
	KindRoot Kind = iota + 1
	KindLeft
	KindRight
	KindAncestors
	KindDescendants
)

var kindNames = map[Kind]string{
	KindRoot:        "root",
	KindLeft:        "left",
	KindRight:       "right",
	KindAncestors:   "ancestors",
	KindDescendants: "descendants",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsMutation reports whether the command changes the tree.
func (k Kind) IsMutation() bool {
	return k == KindRoot || k == KindLeft || k == KindRight
}

// Command is a parsed command. Name is set for root and the queries,
// Parent and Child for left and right.
type Command struct {
	Kind   Kind   `json:"kind" bson:"kind"`
	Name   string `json:"name,omitempty" bson:"name,omitempty"`
	Parent string `json:"parent,omitempty" bson:"parent,omitempty"`
	Child  string `json:"child,omitempty" bson:"child,omitempty"`
}

func (c Command) String() string {
	switch c.Kind {
	case KindLeft, KindRight:
		return fmt.Sprintf("%s %s %s", c.Kind, c.Parent, c.Child)
	default:
		return fmt.Sprintf("%s %s", c.Kind, c.Name)
	}
}

// Parse reads one command line. The verb is case-insensitive and extra
// tokens after the expected arguments are ignored.
func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, errs.ErrEmptyCommand
	}

	verb := strings.ToLower(parts[0])
	args := parts[1:]

	switch verb {
	case "root", "ancestors", "descendants":
		if len(args) < 1 {
			return Command{}, fmt.Errorf("%w: %s needs a name", errs.ErrMalformedCommand, verb)
		}
		return Command{Kind: kindByVerb(verb), Name: args[0]}, nil
	case "left", "right":
		if len(args) < 2 {
			return Command{}, fmt.Errorf("%w: %s needs a parent and a child", errs.ErrMalformedCommand, verb)
		}
		return Command{Kind: kindByVerb(verb), Parent: args[0], Child: args[1]}, nil
	default:
		return Command{}, fmt.Errorf("%w: %q", errs.ErrUnknownCommand, parts[0])
	}
}

func kindByVerb(verb string) Kind {
	for k, name := range kindNames {
		if name == verb {
			return k
		}
	}
	return 0
}

// Help lists the accepted commands.
func Help() []string {
	return []string{
		"Available Commands Are:",
		"    root name",
		"    left parent child",
		"    right parent child",
		"    descendants person",
		"    ancestors person",
	}
}
