// Package markup converts the line-oriented analysis text returned by the
// analysis service into a small tree of presentation nodes.
//
// Recognized tokens, in the order they are tried for each line:
//
//	【X】      heading 1 (anywhere in the line, surrounding text kept)
//	◆ X       heading 2, diamond retained
//	## X      heading 2
//	### X     heading 3
//	---       horizontal rule
//	- X       list item, consecutive items grouped into one list
//	**X**     emphasis (inline, inside any of the above)
//
// A line claimed by an earlier rule is never re-matched by a later one.
// Anything that does not match stays literal text.
package markup

import (
	"regexp"
	"strings"
)

var (
	sectionRe  = regexp.MustCompile(`【([^】\n]+)】`)
	diamondRe  = regexp.MustCompile(`^[\s\p{Zs}]*◆[\s\p{Zs}]+([^\s\p{Zs}].*)$`)
	heading2Re = regexp.MustCompile(`^## (.+)$`)
	heading3Re = regexp.MustCompile(`^### (.+)$`)
	listItemRe = regexp.MustCompile(`^- (.+)$`)
	emphasisRe = regexp.MustCompile(`\*\*([^*\n]+)\*\*`)
)

const ruleLine = "---"

// Format converts analysis text into a fragment. It never fails: malformed
// or unbalanced markers are kept as literal text, and empty input yields an
// empty fragment.
func Format(text string) Fragment {
	if text == "" {
		return Fragment{}
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	return suppressBlockBreaks(assemble(lines))
}

// FormatBytes is Format for raw bytes; nil yields an empty fragment
func FormatBytes(b []byte) Fragment {
	if b == nil {
		return Fragment{}
	}
	return Format(string(b))
}

// assemble classifies each line and joins the results with break nodes.
// A run of list items swallows the separators inside it plus the single
// separator that ends it.
func assemble(lines []string) []Node {
	out := make([]Node, 0, len(lines)*2)

	var (
		list     *Node
		prevItem bool
	)

	flush := func() {
		if list != nil {
			out = append(out, *list)
			list = nil
		}
	}

	for i, line := range lines {
		item, isItem := parseListItem(line)

		if i > 0 {
			switch {
			case prevItem && isItem:
				// same run
			case prevItem:
				flush()
			default:
				out = append(out, breakNode())
			}
		}

		if isItem {
			if list == nil {
				list = &Node{Kind: KindList}
			}
			list.Children = append(list.Children, item)
			prevItem = true
			continue
		}

		prevItem = false
		out = append(out, parseLine(line)...)
	}
	flush()

	return out
}

// suppressBlockBreaks drops a break that directly follows or directly
// precedes a heading or a list
func suppressBlockBreaks(nodes []Node) Fragment {
	out := make(Fragment, 0, len(nodes))
	for i, n := range nodes {
		if n.Kind == KindBreak {
			if i > 0 && nodes[i-1].IsBlock() {
				continue
			}
			if i+1 < len(nodes) && nodes[i+1].IsBlock() {
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

// parseLine applies the line rules in order; the first match claims the line
func parseLine(line string) []Node {
	if line == "" {
		return nil
	}

	if sectionRe.MatchString(line) {
		return parseSections(line)
	}

	if m := diamondRe.FindStringSubmatch(line); m != nil {
		return []Node{headingNode(2, parseInline("◆ "+m[1]))}
	}

	if m := heading2Re.FindStringSubmatch(line); m != nil {
		return []Node{headingNode(2, parseInline(m[1]))}
	}

	if m := heading3Re.FindStringSubmatch(line); m != nil {
		return []Node{headingNode(3, parseInline(m[1]))}
	}

	if line == ruleLine {
		return []Node{ruleNode()}
	}

	return parseInline(line)
}

// parseListItem matches "- X" lines; section markers take precedence
func parseListItem(line string) (Node, bool) {
	if sectionRe.MatchString(line) {
		return Node{}, false
	}
	m := listItemRe.FindStringSubmatch(line)
	if m == nil {
		return Node{}, false
	}
	return listItemNode(parseInline(m[1])), true
}

// parseSections splits a line around 【X】 markers
func parseSections(line string) []Node {
	var nodes []Node
	pos := 0
	for _, loc := range sectionRe.FindAllStringSubmatchIndex(line, -1) {
		nodes = append(nodes, parseInline(line[pos:loc[0]])...)
		nodes = append(nodes, headingNode(1, parseInline(line[loc[2]:loc[3]])))
		pos = loc[1]
	}
	return append(nodes, parseInline(line[pos:])...)
}

// parseInline turns **X** spans into emphasis nodes and the rest into text
func parseInline(s string) []Node {
	if s == "" {
		return nil
	}

	var nodes []Node
	pos := 0
	for _, loc := range emphasisRe.FindAllStringSubmatchIndex(s, -1) {
		if loc[0] > pos {
			nodes = append(nodes, textNode(s[pos:loc[0]]))
		}
		nodes = append(nodes, Node{
			Kind:     KindEmphasis,
			Children: []Node{textNode(s[loc[2]:loc[3]])},
		})
		pos = loc[1]
	}
	if pos < len(s) {
		nodes = append(nodes, textNode(s[pos:]))
	}
	return nodes
}
