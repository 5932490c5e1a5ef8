package quest

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNodeID is returned when a node, option, or branch is added with
	// an empty identifier after ID generation was skipped.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned when a node with the same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrDuplicateLabel is returned when two nodes would serialize under the
	// same document key.
	ErrDuplicateLabel = errors.New("duplicate node label")

	// ErrUnknownNode is returned when an operation references a node that is
	// not part of the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownHandle is returned when an operation references an option or
	// branch that does not exist on the given node.
	ErrUnknownHandle = errors.New("unknown handle")

	// ErrKindMismatch is returned when an option is added to a switch node, a
	// branch to a dialogue node, or a run branch is connected.
	ErrKindMismatch = errors.New("operation does not match node kind")
)

// Kind discriminates the two node variants. It is computed once when a node
// body is decoded and never re-inferred from field presence afterwards.
type Kind int

const (
	// KindDialogue is a node with lines of text and player options.
	KindDialogue Kind = iota
	// KindSwitch is a node that routes by evaluating conditional branches.
	KindSwitch
)

var kindNames = map[Kind]string{
	KindDialogue: "dialogue",
	KindSwitch:   "switch",
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText encodes the kind as its name for JSON payloads.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown node kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	for kind, name := range kindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown node kind %q", string(b))
}

// ActionKind says what a switch branch does when its condition holds.
type ActionKind string

const (
	// ActionOpen jumps to the node named by the branch value and forms an edge.
	ActionOpen ActionKind = "open"
	// ActionRun executes the branch value as an opaque script. No edge.
	ActionRun ActionKind = "run"
)

// Extra holds document fields that the model does not know about. It is kept
// apart from modeled fields and merged back verbatim on generate.
type Extra map[string]any

// Clone returns a shallow copy of the bag, or nil for an empty bag.
func (e Extra) Clone() Extra {
	if len(e) == 0 {
		return nil
	}
	out := make(Extra, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Position is a canvas coordinate in pixels.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Lifecycle holds the scripts run when a dialogue node is entered and left.
type Lifecycle struct {
	Begin string `json:"begin,omitempty"`
	End   string `json:"end,omitempty"`
}

// Option is a player answer on a dialogue node. Its ID doubles as the source
// handle of the edge it produces.
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Condition string `json:"condition,omitempty"`
	Script    string `json:"script,omitempty"`
	// Target is the last known literal destination label. Generate prefers the
	// edge leaving this option when one exists.
	Target string `json:"target,omitempty"`
	Extra  Extra  `json:"extra,omitempty"`
}

// Branch is one conditional route of a switch node.
type Branch struct {
	ID        string     `json:"id"`
	Condition string     `json:"condition"`
	Action    ActionKind `json:"action"`
	Value     string     `json:"value"`
	Extra     Extra      `json:"extra,omitempty"`
}

// Dialogue is the payload of a [KindDialogue] node.
type Dialogue struct {
	EntryRefs   []string  `json:"entry_refs,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Condition   string    `json:"condition,omitempty"`
	Lifecycle   Lifecycle `json:"lifecycle,omitzero"`
	Lines       []string  `json:"lines"`
	Options     []Option  `json:"options"`
}

// Switch is the payload of a [KindSwitch] node.
type Switch struct {
	EntryRef string   `json:"entry_ref,omitempty"`
	Branches []Branch `json:"branches"`
}

// Node is a tagged union: exactly one of Dialogue or Switch is set, matching Kind.
//
// ID is the stable identity edges point at. Label is the key the node is
// written under; renaming a node changes Label only, so edges never need to be
// rewired.
type Node struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Kind     Kind      `json:"kind"`
	Position Position  `json:"position"`
	Dialogue *Dialogue `json:"dialogue,omitempty"`
	Switch   *Switch   `json:"switch,omitempty"`
	Extra    Extra     `json:"extra,omitempty"`
}

// NewDialogue creates an empty dialogue node.
func NewDialogue(id, label string) Node {
	return Node{ID: id, Label: label, Kind: KindDialogue, Dialogue: &Dialogue{}}
}

// NewSwitch creates an empty switch node.
func NewSwitch(id, label string) Node {
	return Node{ID: id, Label: label, Kind: KindSwitch, Switch: &Switch{}}
}

// IsDialogue reports whether the node is a dialogue node.
func (n Node) IsDialogue() bool { return n.Kind == KindDialogue && n.Dialogue != nil }

// IsSwitch reports whether the node is a switch node.
func (n Node) IsSwitch() bool { return n.Kind == KindSwitch && n.Switch != nil }

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Handles returns the IDs of every option or branch on the node, in order.
func (n Node) Handles() []string {
	switch {
	case n.IsDialogue():
		ids := make([]string, len(n.Dialogue.Options))
		for i, o := range n.Dialogue.Options {
			ids[i] = o.ID
		}
		return ids
	case n.IsSwitch():
		ids := make([]string, len(n.Switch.Branches))
		for i, b := range n.Switch.Branches {
			ids[i] = b.ID
		}
		return ids
	}
	return nil
}

// Clone returns a deep copy of the node.
func (n Node) Clone() Node {
	out := n
	out.Extra = n.Extra.Clone()
	if n.Dialogue != nil {
		d := *n.Dialogue
		d.EntryRefs = cloneStrings(n.Dialogue.EntryRefs)
		d.Tags = cloneStrings(n.Dialogue.Tags)
		d.Lines = cloneStrings(n.Dialogue.Lines)
		if n.Dialogue.Options != nil {
			d.Options = make([]Option, len(n.Dialogue.Options))
			for i, o := range n.Dialogue.Options {
				o.Extra = o.Extra.Clone()
				d.Options[i] = o
			}
		}
		out.Dialogue = &d
	}
	if n.Switch != nil {
		s := *n.Switch
		if n.Switch.Branches != nil {
			s.Branches = make([]Branch, len(n.Switch.Branches))
			for i, b := range n.Switch.Branches {
				b.Extra = b.Extra.Clone()
				s.Branches[i] = b
			}
		}
		out.Switch = &s
	}
	return out
}

// Edge is derived from an option with a target or an open branch. Its
// identity is (Source, SourceHandle) -> Target.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	SourceHandle string `json:"source_handle"`
	Target       string `json:"target"`
}

// EdgeID builds the canonical edge identifier.
func EdgeID(source, handle, target string) string {
	return source + ":" + handle + "->" + target
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
