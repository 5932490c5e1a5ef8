package codec

import (
	"slices"

	"github.com/matzehuels/questcanvas/pkg/quest"
)

// Generate writes the graph as a canonical quest document.
//
// Every value reaching the encoder was produced by YAML or JSON decoding or by
// the model itself, so encoding does not fail in practice. Should it fail, the
// result is empty rather than partial.
func Generate(g quest.Graph) []byte {
	out, err := Marshal(Encode(g))
	if err != nil {
		return []byte{}
	}
	return out
}

// Encode builds the ordered document for g. Nodes appear in graph order, each
// with a fixed canonical field order followed by its extra fields sorted by key.
func Encode(g quest.Graph) Document {
	r := newResolver(g)
	doc := make(Document, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		key := n.DisplayLabel()
		if key == ReservedKey {
			continue
		}
		var f Fields
		switch {
		case n.IsSwitch():
			f = encodeSwitch(n, r)
		case n.IsDialogue():
			f = encodeDialogue(n, r)
		}
		f = append(f, Field{"canvas", Fields{{"x", n.Position.X}, {"y", n.Position.Y}}})
		doc = append(doc, Entry{Key: key, Body: mergeExtra(f, n.Extra)})
	}
	return doc
}

func encodeSwitch(n quest.Node, r resolver) Fields {
	var f Fields
	if n.Switch.EntryRef != "" {
		f = append(f, Field{"npc", n.Switch.EntryRef})
	}
	when := make([]Fields, 0, len(n.Switch.Branches))
	for _, b := range n.Switch.Branches {
		item := Fields{{"if", b.Condition}}
		if b.Action == quest.ActionOpen {
			item = append(item, Field{"open", r.target(n.ID, b.ID, b.Value)})
		} else if b.Value != "" {
			item = append(item, Field{"run", b.Value})
		}
		when = append(when, mergeExtra(item, b.Extra))
	}
	return append(f, Field{"when", when})
}

func encodeDialogue(n quest.Node, r resolver) Fields {
	d := n.Dialogue
	var f Fields
	if d.EntryRefs != nil {
		f = append(f, Field{"npc", d.EntryRefs})
	}
	if d.DisplayName != "" {
		f = append(f, Field{"name", d.DisplayName})
	}
	if d.Tags != nil {
		f = append(f, Field{"tags", d.Tags})
	}
	if d.Condition != "" {
		f = append(f, Field{"condition", d.Condition})
	}
	if d.Lifecycle.Begin != "" {
		f = append(f, Field{"begin", d.Lifecycle.Begin})
	}
	if d.Lifecycle.End != "" {
		f = append(f, Field{"end", d.Lifecycle.End})
	}
	// A body without any dialogue field still gets content so that other
	// tools recognize it as a dialogue node.
	if d.Lines != nil || (len(f) == 0 && d.Options == nil) {
		lines := d.Lines
		if lines == nil {
			lines = []string{}
		}
		f = append(f, Field{"content", lines})
	}
	if d.Options != nil {
		answers := make([]Fields, 0, len(d.Options))
		for _, o := range d.Options {
			item := Fields{{"text", o.Text}}
			if o.Condition != "" {
				item = append(item, Field{"if", o.Condition})
			}
			if o.Script != "" {
				item = append(item, Field{"action", o.Script})
			}
			if t := r.target(n.ID, o.ID, o.Target); t != "" {
				item = append(item, Field{"open", t})
			}
			answers = append(answers, mergeExtra(item, o.Extra))
		}
		f = append(f, Field{"answer", answers})
	}
	return f
}

// mergeExtra appends extra fields in key order. Keys already written by the
// model win.
func mergeExtra(f Fields, extra quest.Extra) Fields {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		if k != ReservedKey && !f.Has(k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		f = append(f, Field{k, extra[k]})
	}
	return f
}

// resolver maps an option or branch handle to the current label of the node
// its edge points at.
type resolver struct {
	labels  map[string]string
	targets map[[2]string]string
}

func newResolver(g quest.Graph) resolver {
	r := resolver{
		labels:  make(map[string]string, len(g.Nodes)),
		targets: make(map[[2]string]string, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		r.labels[n.ID] = n.DisplayLabel()
	}
	for _, e := range g.Edges {
		r.targets[[2]string{e.Source, e.SourceHandle}] = e.Target
	}
	return r
}

// target returns the destination label for the edge leaving handle, or the
// stored literal when there is no edge.
func (r resolver) target(source, handle, literal string) string {
	if to, ok := r.targets[[2]string{source, handle}]; ok {
		if label, ok := r.labels[to]; ok {
			return label
		}
	}
	return literal
}
