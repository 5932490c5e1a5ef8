package quest

import (
	"errors"
	"testing"
)

func sampleGraph() Graph {
	intro := NewDialogue("intro", "intro")
	intro.Dialogue.Lines = []string{"Hello"}
	intro.Dialogue.Options = []Option{
		{ID: "intro:answer:0", Text: "Shop", Target: "shop"},
		{ID: "intro:answer:1", Text: "Bye"},
	}
	shop := NewDialogue("shop", "shop")
	gate := NewSwitch("gate", "gate")
	gate.Switch.Branches = []Branch{
		{ID: "gate:when:0", Condition: "rich", Action: ActionOpen, Value: "shop"},
		{ID: "gate:when:1", Condition: "true", Action: ActionRun, Value: "say hi"},
	}
	nodes := []Node{intro, shop, gate}
	return Graph{Nodes: nodes, Edges: DeriveEdges(nodes)}
}

func TestDeriveEdges(t *testing.T) {
	g := sampleGraph()
	if got := g.EdgeCount(); got != 2 {
		t.Fatalf("EdgeCount() = %d, want 2", got)
	}
	if _, ok := g.EdgeFrom("intro", "intro:answer:0"); !ok {
		t.Error("missing edge from intro option 0")
	}
	if _, ok := g.EdgeFrom("gate", "gate:when:1"); ok {
		t.Error("run branch must not produce an edge")
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestDeriveEdgesSkipsDangling(t *testing.T) {
	n := NewDialogue("a", "a")
	n.Dialogue.Options = []Option{{ID: "o", Target: "nowhere"}}
	if edges := DeriveEdges([]Node{n}); len(edges) != 0 {
		t.Errorf("DeriveEdges() = %v, want none", edges)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	g := sampleGraph()
	g2, err := g.Apply(RemoveOption{NodeID: "intro", OptionID: "intro:answer:0"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(g.Nodes[0].Dialogue.Options) != 2 {
		t.Error("input snapshot was mutated")
	}
	if len(g2.Nodes[0].Dialogue.Options) != 1 {
		t.Errorf("options = %d, want 1", len(g2.Nodes[0].Dialogue.Options))
	}
	if g2.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g2.EdgeCount())
	}
}

func TestApplyIsAtomic(t *testing.T) {
	g := sampleGraph()
	got, err := g.Apply(
		RemoveNode{ID: "shop"},
		RemoveNode{ID: "missing"},
	)
	if !errors.Is(err, ErrUnknownNode) {
		t.Fatalf("err = %v, want ErrUnknownNode", err)
	}
	if got.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want original 3", got.NodeCount())
	}
}

func TestAddNode(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		wantErr error
	}{
		{name: "GeneratedID", node: Node{Kind: KindSwitch}},
		{name: "DuplicateID", node: NewDialogue("intro", "other"), wantErr: ErrDuplicateNodeID},
		{name: "DuplicateLabel", node: NewDialogue("x", "shop"), wantErr: ErrDuplicateLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := sampleGraph().Apply(AddNode{Node: tt.node})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			added := g.Nodes[len(g.Nodes)-1]
			if added.ID == "" || added.Label != added.ID {
				t.Errorf("added node = %+v, want generated ID used as label", added)
			}
			if !added.IsSwitch() {
				t.Error("switch payload not initialized")
			}
		})
	}
}

func TestRemoveNodeDropsIncidentEdges(t *testing.T) {
	g, err := sampleGraph().Apply(RemoveNode{ID: "shop"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
	// Literal target stays; generate writes it as-is.
	if got := g.Nodes[0].Dialogue.Options[0].Target; got != "shop" {
		t.Errorf("Target = %q, want shop", got)
	}
}

func TestRenameNodeKeepsEdges(t *testing.T) {
	g, err := sampleGraph().Apply(RenameNode{ID: "shop", Label: "bazaar"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	e, ok := g.EdgeFrom("gate", "gate:when:0")
	if !ok || e.Target != "shop" {
		t.Fatalf("edge = %+v, %v; want target ID shop", e, ok)
	}
	n, _ := g.Node("shop")
	if n.Label != "bazaar" {
		t.Errorf("Label = %q, want bazaar", n.Label)
	}

	if _, err := g.Apply(RenameNode{ID: "intro", Label: "bazaar"}); !errors.Is(err, ErrDuplicateLabel) {
		t.Errorf("err = %v, want ErrDuplicateLabel", err)
	}
}

func TestConnect(t *testing.T) {
	g, err := sampleGraph().Apply(Connect{Source: "intro", Handle: "intro:answer:1", Target: "gate"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	e, ok := g.EdgeFrom("intro", "intro:answer:1")
	if !ok || e.Target != "gate" {
		t.Fatalf("edge = %+v, %v", e, ok)
	}
	if got := g.Nodes[0].Dialogue.Options[1].Target; got != "gate" {
		t.Errorf("Target = %q, want gate", got)
	}

	// Reconnecting the same handle replaces the edge.
	g, err = g.Apply(Connect{Source: "intro", Handle: "intro:answer:1", Target: "shop"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := len(g.Successors("intro")); got != 2 {
		t.Errorf("successors = %d, want 2", got)
	}
}

func TestConnectRejectsRunBranch(t *testing.T) {
	_, err := sampleGraph().Apply(Connect{Source: "gate", Handle: "gate:when:1", Target: "intro"})
	if !errors.Is(err, ErrKindMismatch) {
		t.Errorf("err = %v, want ErrKindMismatch", err)
	}
}

func TestDisconnect(t *testing.T) {
	g, err := sampleGraph().Apply(Disconnect{Source: "gate", Handle: "gate:when:0"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, ok := g.EdgeFrom("gate", "gate:when:0"); ok {
		t.Error("edge still present")
	}
	if got := g.Nodes[2].Switch.Branches[0].Value; got != "" {
		t.Errorf("Value = %q, want cleared", got)
	}
}

func TestAddBranchDefaults(t *testing.T) {
	g, err := sampleGraph().Apply(AddBranch{NodeID: "gate", Branch: Branch{Action: ActionOpen, Value: "intro"}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	b := g.Nodes[2].Switch.Branches[2]
	if b.Condition != "true" || b.ID == "" {
		t.Errorf("branch = %+v, want generated ID and condition true", b)
	}
	if _, ok := g.EdgeFrom("gate", b.ID); !ok {
		t.Error("open branch did not create an edge")
	}

	if _, err := g.Apply(AddBranch{NodeID: "intro"}); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("err = %v, want ErrKindMismatch", err)
	}
}

func TestKindText(t *testing.T) {
	var k Kind
	if err := k.UnmarshalText([]byte("switch")); err != nil || k != KindSwitch {
		t.Errorf("UnmarshalText(switch) = %v, %v", k, err)
	}
	if err := k.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("UnmarshalText(bogus) should fail")
	}
}
