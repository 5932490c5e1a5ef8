package graph

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/questcanvas/pkg/errors"
	"github.com/matzehuels/questcanvas/pkg/layout"
	"github.com/matzehuels/questcanvas/pkg/quest"
)

func sample() quest.Graph {
	intro := quest.NewDialogue("intro", "intro")
	intro.Dialogue.Lines = []string{"Halt!"}
	intro.Dialogue.Options = []quest.Option{{ID: "o", Text: "Enter", Target: "hall", Extra: quest.Extra{"mood": "calm"}}}
	hall := quest.NewSwitch("hall", "hall")
	hall.Switch.Branches = []quest.Branch{{ID: "b", Condition: "true", Action: quest.ActionRun, Value: "noop"}}
	nodes := []quest.Node{intro, hall}
	return quest.Graph{Nodes: nodes, Edges: quest.DeriveEdges(nodes)}
}

func TestMarshalGraph(t *testing.T) {
	data, err := MarshalGraph(sample())
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	for _, want := range []string{`"kind": "dialogue"`, `"kind": "switch"`, `"source_handle": "o"`, `"mood": "calm"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output missing %s\n%s", want, data)
		}
	}

	back, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph: %v", err)
	}
	if back.NodeCount() != 2 || back.EdgeCount() != 1 {
		t.Errorf("round trip = %d nodes, %d edges", back.NodeCount(), back.EdgeCount())
	}
	if back.Nodes[0].Dialogue.Options[0].Extra["mood"] != "calm" {
		t.Error("option extra lost")
	}
}

func TestMarshalEmptyGraph(t *testing.T) {
	data, err := MarshalGraph(quest.Graph{})
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	if !strings.Contains(string(data), `"nodes": []`) || !strings.Contains(string(data), `"edges": []`) {
		t.Errorf("empty graph should have empty arrays:\n%s", data)
	}
}

func TestReadGraph(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantErr   bool
		wantNodes int
		wantEdges int
	}{
		{
			name:      "DerivesMissingEdges",
			input:     `{"nodes":[{"id":"a","kind":"dialogue","dialogue":{"options":[{"id":"o","text":"go","target":"b"}]}},{"id":"b","kind":"dialogue"}]}`,
			wantNodes: 2,
			wantEdges: 1,
		},
		{
			name:      "ExplicitEmptyEdges",
			input:     `{"nodes":[{"id":"a","kind":"dialogue","dialogue":{"options":[{"id":"o","target":"b"}]}},{"id":"b","kind":"dialogue"}],"edges":[]}`,
			wantNodes: 2,
			wantEdges: 0,
		},
		{
			name:      "FillsPayload",
			input:     `{"nodes":[{"id":"s","kind":"switch"}]}`,
			wantNodes: 1,
		},
		{
			name:    "DanglingEdge",
			input:   `{"nodes":[{"id":"a","kind":"dialogue"}],"edges":[{"source":"a","source_handle":"o","target":"zzz"}]}`,
			wantErr: true,
		},
		{
			name:    "UnknownKind",
			input:   `{"nodes":[{"id":"a","kind":"portal"}]}`,
			wantErr: true,
		},
		{
			name:    "DuplicateID",
			input:   `{"nodes":[{"id":"a","kind":"dialogue"},{"id":"a","kind":"dialogue"}]}`,
			wantErr: true,
		},
		{
			name:    "InvalidJSON",
			input:   `{"nodes":`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadGraph(strings.NewReader(tt.input))
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidGraph) {
					t.Fatalf("err = %v, want INVALID_GRAPH", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadGraph: %v", err)
			}
			if g.NodeCount() != tt.wantNodes || g.EdgeCount() != tt.wantEdges {
				t.Errorf("got %d nodes, %d edges; want %d, %d", g.NodeCount(), g.EdgeCount(), tt.wantNodes, tt.wantEdges)
			}
		})
	}
}

func TestGraphFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quest.json")
	if err := WriteGraphFile(sample(), path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	g, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}

	_, err = ReadGraphFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestWriteGraph(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGraph(sample(), &buf); err != nil {
		t.Fatalf("WriteGraph: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("output should end with a newline")
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	g := sample()
	res := layout.Compute(g.Nodes, g.Edges, layout.DefaultConfig())

	data, err := MarshalLayout(FromResult(res))
	if err != nil {
		t.Fatalf("MarshalLayout: %v", err)
	}
	back, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}
	if back.Result().Positions["hall"] != res.Positions["hall"] {
		t.Errorf("position = %v, want %v", back.Positions["hall"], res.Positions["hall"])
	}

	if _, err := UnmarshalLayout([]byte(`{}`)); err == nil {
		t.Error("layout without positions should fail")
	}
}
