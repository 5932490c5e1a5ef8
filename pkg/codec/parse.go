package codec

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/questcanvas/pkg/layout"
	"github.com/matzehuels/questcanvas/pkg/quest"
)

// Options configures parsing.
type Options struct {
	// Layout holds the constants used when positions are computed.
	Layout layout.Config

	// LayoutUnpositioned lays out the full graph when only some nodes carry
	// canvas coordinates, and assigns the computed positions to the nodes that
	// had none. When false those nodes stay at the origin.
	LayoutUnpositioned bool
}

// Parse converts document text into a graph with default options.
func Parse(text []byte) quest.Graph {
	return ParseWithOptions(text, Options{})
}

// ParseWithOptions converts document text into a graph. Malformed input yields
// an empty graph.
func ParseWithOptions(text []byte, opts Options) quest.Graph {
	doc, err := Decode(text)
	if err != nil {
		return emptyGraph()
	}
	return ParseDocument(doc, opts)
}

// ParseDocument converts a decoded document into a graph. Entries whose body is
// not a mapping cannot be nodes and are skipped.
func ParseDocument(doc Document, opts Options) quest.Graph {
	nodes := make([]quest.Node, 0, len(doc))
	placed := make([]bool, 0, len(doc))
	anyPlaced := false

	for _, e := range doc {
		if e.Key == ReservedKey {
			continue
		}
		m, ok := e.Body.(map[string]any)
		if !ok {
			continue
		}
		n, hasPos := decodeNode(e.Key, m)
		nodes = append(nodes, n)
		placed = append(placed, hasPos)
		anyPlaced = anyPlaced || hasPos
	}

	g := quest.Graph{Nodes: nodes, Edges: quest.DeriveEdges(nodes)}
	if len(nodes) == 0 {
		return g
	}

	switch {
	case !anyPlaced:
		return layout.Apply(g, opts.Layout)
	case opts.LayoutUnpositioned:
		res := layout.Compute(g.Nodes, g.Edges, opts.Layout)
		for i := range g.Nodes {
			if !placed[i] {
				g.Nodes[i].Position = res.Positions[g.Nodes[i].ID]
			}
		}
	}
	return g
}

func emptyGraph() quest.Graph {
	return quest.Graph{Nodes: []quest.Node{}, Edges: []quest.Edge{}}
}

func decodeNode(key string, m map[string]any) (quest.Node, bool) {
	b := newBody(m)

	var n quest.Node
	if items, ok := m["when"].([]any); ok {
		b.take("when")
		n = quest.NewSwitch(key, key)
		n.Switch.EntryRef = b.str("npc")
		n.Switch.Branches = decodeBranches(key, items)
	} else {
		n = quest.NewDialogue(key, key)
		d := n.Dialogue
		d.EntryRefs = b.strings("npc")
		d.DisplayName = b.str("name")
		d.Tags = b.strings("tags")
		d.Condition = b.str("condition", "if")
		d.Lifecycle.Begin = b.str("begin")
		d.Lifecycle.End = b.str("end")
		d.Lines = b.strings("content", "lines")
		d.Options = decodeOptions(key, b.list("answer", "player"))
	}

	pos, hasPos := b.position("canvas")
	n.Position = pos
	n.Extra = b.rest()
	return n, hasPos
}

func decodeOptions(key string, items []any) []quest.Option {
	if items == nil {
		return nil
	}
	opts := make([]quest.Option, 0, len(items))
	for i, item := range items {
		id := key + ":answer:" + strconv.Itoa(i)
		if s, ok := scalar(item); ok {
			opts = append(opts, quest.Option{ID: id, Text: s})
			continue
		}
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		ob := newBody(m)
		o := quest.Option{
			ID:        id,
			Text:      ob.str("text", "reply"),
			Condition: ob.str("if"),
		}
		script, from := ob.strFrom("action", "then")
		o.Target = ob.str("open", "next")
		if from == "then" && o.Target == "" {
			script, o.Target = splitGoto(script)
		}
		o.Script = script
		o.Extra = ob.rest()
		opts = append(opts, o)
	}
	return opts
}

func decodeBranches(key string, items []any) []quest.Branch {
	branches := make([]quest.Branch, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		bb := newBody(m)
		br := quest.Branch{
			ID:        key + ":when:" + strconv.Itoa(i),
			Condition: "true",
			Action:    quest.ActionRun,
		}
		if c, ok := bb.lookup("if"); ok {
			br.Condition = c
		}
		if v, ok := bb.lookup("open"); ok {
			br.Action, br.Value = quest.ActionOpen, v
		} else if v, ok := scalar(bb.m["run"]); ok && v != "" {
			bb.take("run")
			br.Value = v
		}
		br.Extra = bb.rest()
		branches = append(branches, br)
	}
	return branches
}

// body tracks which fields of a node body were mapped so that the remainder
// can go to the extra bag.
type body struct {
	m    map[string]any
	used map[string]bool
}

func newBody(m map[string]any) *body {
	return &body{m: m, used: make(map[string]bool, len(m))}
}

func (b *body) take(key string) {
	b.used[key] = true
}

// lookup consumes key if it holds a scalar.
func (b *body) lookup(key string) (string, bool) {
	v, ok := b.m[key]
	if !ok {
		return "", false
	}
	s, ok := scalar(v)
	if !ok {
		return "", false
	}
	b.take(key)
	return s, true
}

// str returns the first key holding a scalar. Later keys are left for extra.
func (b *body) str(keys ...string) string {
	s, _ := b.strFrom(keys...)
	return s
}

func (b *body) strFrom(keys ...string) (string, string) {
	for _, k := range keys {
		if s, ok := b.lookup(k); ok {
			return s, k
		}
	}
	return "", ""
}

// strings returns the first key holding a scalar or a list of scalars,
// normalized to a list.
func (b *body) strings(keys ...string) []string {
	for _, k := range keys {
		v, ok := b.m[k]
		if !ok {
			continue
		}
		if s, ok := scalar(v); ok {
			b.take(k)
			return []string{s}
		}
		items, ok := v.([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := scalar(item)
			if !ok {
				out = nil
				break
			}
			out = append(out, s)
		}
		if out != nil {
			b.take(k)
			return out
		}
	}
	return nil
}

// list returns the first key holding a list.
func (b *body) list(keys ...string) []any {
	for _, k := range keys {
		if items, ok := b.m[k].([]any); ok {
			b.take(k)
			return items
		}
	}
	return nil
}

// position consumes key if it holds a mapping with numeric x and y.
func (b *body) position(key string) (quest.Position, bool) {
	m, ok := b.m[key].(map[string]any)
	if !ok {
		return quest.Position{}, false
	}
	x, okX := number(m["x"])
	y, okY := number(m["y"])
	if !okX || !okY {
		return quest.Position{}, false
	}
	b.take(key)
	return quest.Position{X: x, Y: y}, true
}

// rest returns every field that was not consumed, or nil.
func (b *body) rest() quest.Extra {
	var extra quest.Extra
	for k, v := range b.m {
		if b.used[k] {
			continue
		}
		if extra == nil {
			extra = make(quest.Extra)
		}
		extra[k] = v
	}
	return extra
}

// scalar renders strings, booleans, and numbers as text. Null and collections
// are not scalars here.
func scalar(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v), true
	}
	return "", false
}

func number(v any) (float64, bool) {
	switch v := v.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}
