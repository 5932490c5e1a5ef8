package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/questcanvas/pkg/quest"
)

func testGraph() quest.Graph {
	intro := quest.NewDialogue("intro", "intro")
	intro.Dialogue.EntryRefs = []string{"guard"}
	intro.Dialogue.Lines = []string{"Halt"}
	intro.Dialogue.Options = []quest.Option{{ID: "o1", Text: `Say "hi"`, Target: "gate"}}
	gate := quest.NewSwitch("gate", "gate")
	gate.Switch.Branches = []quest.Branch{{ID: "b1", Condition: "rich", Action: quest.ActionOpen, Value: "intro"}}
	nodes := []quest.Node{intro, gate}
	return quest.Graph{Nodes: nodes, Edges: quest.DeriveEdges(nodes)}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(testGraph(), Options{})

	for _, want := range []string{
		"digraph G",
		"rankdir=LR",
		`"intro" [label="intro", penwidth=2]`,
		`"gate" [label="gate", shape=diamond`,
		`"intro" -> "gate" [label="Say \"hi\""]`,
		`"gate" -> "intro" [label="rich"]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(testGraph(), Options{Detailed: true})

	if !strings.Contains(dot, `lines: 1, options: 1`) {
		t.Error("detailed output missing dialogue counts")
	}
	if !strings.Contains(dot, `branches: 1`) {
		t.Error("detailed output missing branch count")
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 40)
	if got := []rune(truncate(long)); len(got) != maxLabelRunes {
		t.Errorf("len = %d, want %d", len(got), maxLabelRunes)
	}
	if got := truncate("  short "); got != "short" {
		t.Errorf("truncate() = %q", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="5pt" viewBox="0.00 0.00 100.00 50.00" xmlns="x"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("no viewBox should pass through, got %s", got)
	}
}
