// Package derivation reconstructs and renders the proof tree behind a
// derived clause: spec.md §4.8. The saturation engine itself only ever
// records direct parentage (one resolution step at a time); this package
// walks that map backwards from a goal clause to rebuild the whole tree.
package derivation

import (
	"fmt"
	"io"
	"strings"

	"github.com/AloisRautureau/pif/internal/saturate"
	"github.com/AloisRautureau/pif/internal/term"
)

// Node is one clause in a reconstructed derivation tree. A Node with no
// Children is an original clause from the loaded clause set rather than a
// resolvent — a fact if it has no premises, or an inference rule consumed
// along the way otherwise. See Leaves for which of those count as proof
// leaves.
type Node struct {
	Clause   *term.Clause
	Children []*Node
}

// Build reconstructs the derivation tree rooted at target by walking
// parents backwards from it. Clauses already on the path from the root are
// never re-expanded: a clause that is (degenerately) its own ancestor
// through the or-insert parentage map terminates as a leaf instead of
// recursing forever.
func Build(parents *saturate.Parentage, target *term.Clause) *Node {
	return build(parents, target, map[string]bool{})
}

func build(parents *saturate.Parentage, c *term.Clause, onPath map[string]bool) *Node {
	key := c.Key()
	node := &Node{Clause: c}

	rec, ok := parents.Lookup(c)
	if !ok || onPath[key] {
		return node
	}

	onPath[key] = true
	node.Children = []*Node{
		build(parents, rec.Parent1, onPath),
		build(parents, rec.Parent2, onPath),
	}
	delete(onPath, key)
	return node
}

// Leaves returns every fact leaf (an original, premise-free clause)
// reachable from n, in left-to-right order, duplicates included. A
// childless node whose clause still has premises is an input rule used in
// an inference, not a leaf of the proof: it contributed no fact of its own,
// so it is omitted rather than counted alongside the facts that were
// actually consumed.
func (n *Node) Leaves() []*Node {
	if len(n.Children) == 0 {
		if n.Clause.IsFact() {
			return []*Node{n}
		}
		return nil
	}
	var out []*Node
	for _, child := range n.Children {
		out = append(out, child.Leaves()...)
	}
	return out
}

// Render writes n as an indented tree to w, one clause per line, using the
// same Unicode box-drawing connectors a terminal REPL can print without a
// dedicated rendering library.
func Render(w io.Writer, n *Node) {
	renderNode(w, n, "", true)
}

func renderNode(w io.Writer, n *Node, prefix string, isRoot bool) {
	if isRoot {
		fmt.Fprintf(w, "%s\n", n.Clause.String())
	}
	for i, child := range n.Children {
		last := i == len(n.Children)-1
		connector := "├── "
		nextPrefix := prefix + "│   "
		if last {
			connector = "└── "
			nextPrefix = prefix + "    "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, connector, child.Clause.String())
		renderNode(w, child, nextPrefix, false)
	}
}

// RenderString is a convenience wrapper around Render for callers (mainly
// REPL command handlers) that want the whole tree as one string.
func RenderString(n *Node) string {
	var b strings.Builder
	Render(&b, n)
	return b.String()
}
