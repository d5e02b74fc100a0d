package markup

import (
	"fmt"
	"strings"
)

// Kind identifies the type of a fragment node
type Kind int

const (
	KindText Kind = iota
	KindHeading
	KindList
	KindListItem
	KindRule
	KindEmphasis
	KindBreak
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindHeading:
		return "heading"
	case KindList:
		return "list"
	case KindListItem:
		return "list_item"
	case KindRule:
		return "rule"
	case KindEmphasis:
		return "emphasis"
	case KindBreak:
		return "break"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name; unknown names are an error
func (k *Kind) UnmarshalText(text []byte) error {
	for candidate := KindText; candidate <= KindBreak; candidate++ {
		if candidate.String() == string(text) {
			*k = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown node kind %q", text)
}

// Node is a single element of a formatted fragment.
//
// Text nodes carry Literal. Headings (Level 1-3), list items and emphasis
// carry inline Children. Lists carry ListItem children. Rules and breaks
// carry nothing.
type Node struct {
	Kind     Kind   `json:"kind"`
	Level    int    `json:"level,omitempty"`
	Literal  string `json:"literal,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Text returns the flattened inline text of the node
func (n Node) Text() string {
	switch n.Kind {
	case KindText:
		return n.Literal
	case KindBreak:
		return "\n"
	case KindRule:
		return ""
	}

	var b strings.Builder
	for i, child := range n.Children {
		if n.Kind == KindList && i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(child.Text())
	}
	return b.String()
}

// IsBlock reports whether the node is a block-level element that absorbs
// adjacent line breaks
func (n Node) IsBlock() bool {
	return n.Kind == KindHeading || n.Kind == KindList
}

// Fragment is the ordered output of Format for one analysis text
type Fragment []Node

// Empty reports whether the fragment has no nodes
func (f Fragment) Empty() bool {
	return len(f) == 0
}

// Headings returns the text of every heading in document order
func (f Fragment) Headings() []string {
	var out []string
	for _, n := range f {
		if n.Kind == KindHeading {
			out = append(out, n.Text())
		}
	}
	return out
}

// PlainText renders the fragment without inline markup; rules become "---"
func (f Fragment) PlainText() string {
	var b strings.Builder
	for i, n := range f {
		if n.IsBlock() || n.Kind == KindRule {
			if i > 0 && !strings.HasSuffix(b.String(), "\n") {
				b.WriteString("\n")
			}
			if n.Kind == KindRule {
				b.WriteString(ruleLine)
			} else {
				b.WriteString(n.Text())
			}
			b.WriteString("\n")
			continue
		}
		b.WriteString(n.Text())
	}
	return strings.TrimRight(b.String(), "\n")
}

// Node constructors

func textNode(s string) Node {
	return Node{Kind: KindText, Literal: s}
}

func headingNode(level int, children []Node) Node {
	return Node{Kind: KindHeading, Level: level, Children: children}
}

func listItemNode(children []Node) Node {
	return Node{Kind: KindListItem, Children: children}
}

func breakNode() Node {
	return Node{Kind: KindBreak}
}

func ruleNode() Node {
	return Node{Kind: KindRule}
}
