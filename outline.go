package site2pdf

// OutlineNode is one bookmark in the merged document's navigation pane.
// Page is a 0-based index into the merged page sequence.
type OutlineNode struct {
	Title    string
	Page     int
	Children []*OutlineNode
}

// outlineEntry is the flat input to the tree builder: one triple per
// processed DocumentEntry, in input order.
type outlineEntry struct {
	title string
	depth int
	page  int
}

// buildOutline converts the flat ordered entry sequence into a forest,
// preserving order and nesting. It keeps a stack of currently open nodes,
// one per depth level: a new entry at depth d closes every open node at
// depth >= d and attaches under the remaining top of the stack.
//
// Depth skips (e.g. depth 0 followed directly by depth 2) attach under the
// deepest open ancestor, treating the skipped levels as collapsed.
// Siblings keep their input order; nothing is ever sorted.
func buildOutline(entries []outlineEntry) []*OutlineNode {
	type open struct {
		depth int
		node  *OutlineNode
	}

	var forest []*OutlineNode
	var stack []open

	for _, e := range entries {
		n := &OutlineNode{Title: e.title, Page: e.page}

		for len(stack) > 0 && stack[len(stack)-1].depth >= e.depth {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			forest = append(forest, n)
		} else {
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, n)
		}

		stack = append(stack, open{depth: e.depth, node: n})
	}

	return forest
}

// countNodes returns the total number of nodes in the forest.
func countNodes(nodes []*OutlineNode) int {
	total := 0
	for _, n := range nodes {
		total += 1 + countNodes(n.Children)
	}
	return total
}
