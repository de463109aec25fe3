package diagram

import (
	"math"
	"strings"
	"testing"

	"github.com/Putcho1994/Discadelta/pkg/discadelta"
)

func TestToDOTIncludesAllNodesAndEdges(t *testing.T) {
	root := discadelta.Create(discadelta.Config{Name: "root", Max: math.Inf(1)})
	a := discadelta.Create(discadelta.Config{Name: "a", Base: discadelta.Flat(100), Max: math.Inf(1), FlexCompress: 1, FlexExpand: 1})
	b := discadelta.Create(discadelta.Config{Name: "b", Base: discadelta.Flat(200), Max: math.Inf(1), FlexCompress: 1, FlexExpand: 1})
	_ = discadelta.Link(a, root)
	_ = discadelta.Link(b, root)
	discadelta.Solve(root, discadelta.SolveOptions{TargetMain: 300, HasTargetCross: true})

	dot := ToDOT(root, Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("ToDOT should start with digraph header, got: %q", dot[:min(20, len(dot))])
	}

	if strings.Count(dot, "->") != 2 {
		t.Errorf("expected 2 edges in DOT output, got %d\n%s", strings.Count(dot, "->"), dot)
	}
	for _, name := range []string{"root", "a", "b"} {
		if !strings.Contains(dot, name) {
			t.Errorf("DOT output missing node %q", name)
		}
	}
}

func TestToDOTDetailedIncludesDistance(t *testing.T) {
	root := discadelta.Create(discadelta.Config{Name: "root", Max: math.Inf(1)})
	discadelta.Solve(root, discadelta.SolveOptions{TargetMain: 50, HasTargetCross: true})

	dot := ToDOT(root, Options{Detailed: true})
	if !strings.Contains(dot, "distance:") {
		t.Errorf("detailed DOT output should include distance, got: %s", dot)
	}
}
