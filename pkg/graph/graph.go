package graph

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/questcanvas/pkg/errors"
	"github.com/matzehuels/questcanvas/pkg/quest"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a graph to indented JSON bytes.
func MarshalGraph(g quest.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraphFile writes a graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g quest.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// WriteGraph writes a graph as JSON to an io.Writer.
func WriteGraph(g quest.Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// ReadGraphFile reads a JSON file and returns the decoded graph.
func ReadGraphFile(path string) (quest.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return quest.Graph{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return quest.Graph{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (quest.Graph, error) {
	return readGraphFrom(r)
}

// UnmarshalGraph decodes a JSON graph from bytes.
func UnmarshalGraph(data []byte) (quest.Graph, error) {
	return readGraphFrom(bytes.NewReader(data))
}

// =============================================================================
// Internal Implementation
// =============================================================================

// wire distinguishes an omitted edge list from an empty one.
type wire struct {
	Nodes []quest.Node  `json:"nodes"`
	Edges *[]quest.Edge `json:"edges"`
}

func writeGraphTo(g quest.Graph, w io.Writer) error {
	out := g.Clone()
	if out.Nodes == nil {
		out.Nodes = []quest.Node{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode graph")
	}
	return nil
}

func readGraphFrom(r io.Reader) (quest.Graph, error) {
	var data wire
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return quest.Graph{}, errors.Wrap(errors.ErrCodeInvalidGraph, err, "decode graph")
	}

	g := quest.Graph{Nodes: data.Nodes}
	if g.Nodes == nil {
		g.Nodes = []quest.Node{}
	}
	for i := range g.Nodes {
		fillPayload(&g.Nodes[i])
	}
	if data.Edges == nil {
		g.Edges = quest.DeriveEdges(g.Nodes)
	} else {
		g.Edges = *data.Edges
	}
	if g.Edges == nil {
		g.Edges = []quest.Edge{}
	}

	if err := g.Validate(); err != nil {
		return quest.Graph{}, errors.Wrap(errors.ErrCodeInvalidGraph, err, "validate graph")
	}
	return g, nil
}

// fillPayload gives a node the empty payload its kind requires, so that
// clients may omit it for fresh nodes.
func fillPayload(n *quest.Node) {
	switch n.Kind {
	case quest.KindDialogue:
		if n.Dialogue == nil {
			n.Dialogue = &quest.Dialogue{}
		}
	case quest.KindSwitch:
		if n.Switch == nil {
			n.Switch = &quest.Switch{}
		}
	}
}
