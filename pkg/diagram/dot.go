// Package diagram renders a solved [discadelta.Node] tree to a Graphviz
// diagram, for debugging a layout without a full UI. It is an external
// collaborator of the core solver, never imported by it.
package diagram

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/Putcho1994/Discadelta/pkg/discadelta"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes resolved distance/offset/cross-size in node
	// labels. When false, only the node name is shown.
	Detailed bool
}

// ToDOT renders n's subtree to Graphviz DOT, one labelled box per node,
// with parent/child edges. Box sizes do not reflect resolved distances;
// those appear only in the labels when [Options.Detailed] is set. Run [discadelta.Solve] first; ToDOT only reads n.Content(), it
// does not solve anything itself.
func ToDOT(n *discadelta.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n\n")

	writeNode(&buf, n, opts)
	writeEdges(&buf, n)

	buf.WriteString("}\n")
	return buf.String()
}

func writeNode(buf *bytes.Buffer, n *discadelta.Node, opts Options) {
	fmt.Fprintf(buf, "  %q [label=%q];\n", nodeID(n), label(n, opts))
	for _, c := range n.Children() {
		writeNode(buf, c, opts)
	}
}

func writeEdges(buf *bytes.Buffer, n *discadelta.Node) {
	for _, c := range n.Children() {
		fmt.Fprintf(buf, "  %q -> %q;\n", nodeID(n), nodeID(c))
		writeEdges(buf, c)
	}
}

// nodeID disambiguates same-named siblings by pointer identity, since
// [discadelta.Config.Name] is not required to be unique.
func nodeID(n *discadelta.Node) string {
	return fmt.Sprintf("%s_%p", n.Name(), n)
}

func label(n *discadelta.Node, opts Options) string {
	if !opts.Detailed {
		return n.Name()
	}
	c := n.Content()
	parts := []string{
		n.Name(),
		fmt.Sprintf("distance: %.1f", c.Distance),
		fmt.Sprintf("offset: %.1f", c.Offset),
	}
	if c.Width != 0 || c.Height != 0 {
		parts = append(parts, fmt.Sprintf("%.1f x %.1f", c.Width, c.Height))
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT diagram to SVG bytes via Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
