package quest

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Op is one editing step. Ops mutate the working copy handed to them by
// [Graph.Apply] and never see the caller's snapshot.
type Op interface {
	apply(g *Graph) error
}

// Apply runs ops in order against a copy of g and returns the edited copy.
// If any op fails, g is returned unchanged together with the error.
func (g Graph) Apply(ops ...Op) (Graph, error) {
	work := g.Clone()
	for i, op := range ops {
		if err := op.apply(&work); err != nil {
			return g, fmt.Errorf("op %d (%T): %w", i, op, err)
		}
	}
	return work, nil
}

// NewID returns a fresh identifier for nodes, options, and branches created
// by the editor.
func NewID() string { return uuid.NewString() }

// AddNode appends a node. An empty ID is generated; an empty Label defaults
// to the ID. A missing payload is created empty for the node's kind.
type AddNode struct {
	Node Node
}

func (op AddNode) apply(g *Graph) error {
	n := op.Node.Clone()
	if n.ID == "" {
		n.ID = NewID()
	}
	if n.Label == "" {
		n.Label = n.ID
	}
	if g.indexOf(n.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
	}
	if _, taken := g.NodeByLabel(n.Label); taken {
		return fmt.Errorf("%w: %s", ErrDuplicateLabel, n.Label)
	}
	switch n.Kind {
	case KindDialogue:
		if n.Dialogue == nil {
			n.Dialogue = &Dialogue{}
		}
		n.Switch = nil
	case KindSwitch:
		if n.Switch == nil {
			n.Switch = &Switch{}
		}
		n.Dialogue = nil
	default:
		return fmt.Errorf("%w: %s", ErrKindMismatch, n.Kind)
	}
	g.Nodes = append(g.Nodes, n)
	return nil
}

// RemoveNode deletes a node and every edge touching it. Literal targets on
// other nodes are left alone and will be written as-is.
type RemoveNode struct {
	ID string
}

func (op RemoveNode) apply(g *Graph) error {
	i := g.indexOf(op.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownNode, op.ID)
	}
	g.Nodes = slices.Delete(g.Nodes, i, i+1)
	g.Edges = slices.DeleteFunc(g.Edges, func(e Edge) bool {
		return e.Source == op.ID || e.Target == op.ID
	})
	return nil
}

// RenameNode changes the document key of a node. Edges keep pointing at the
// node's ID, so every option or branch leading here serializes the new label.
type RenameNode struct {
	ID    string
	Label string
}

func (op RenameNode) apply(g *Graph) error {
	if op.Label == "" {
		return ErrInvalidNodeID
	}
	i := g.indexOf(op.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownNode, op.ID)
	}
	if other, taken := g.NodeByLabel(op.Label); taken && other.ID != op.ID {
		return fmt.Errorf("%w: %s", ErrDuplicateLabel, op.Label)
	}
	g.Nodes[i].Label = op.Label
	return nil
}

// MoveNode sets a node's canvas position.
type MoveNode struct {
	ID       string
	Position Position
}

func (op MoveNode) apply(g *Graph) error {
	i := g.indexOf(op.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownNode, op.ID)
	}
	g.Nodes[i].Position = op.Position
	return nil
}

// AddOption appends an option to a dialogue node. If the option's Target
// names an existing node, the matching edge is created as well.
type AddOption struct {
	NodeID string
	Option Option
}

func (op AddOption) apply(g *Graph) error {
	i, err := g.requireKind(op.NodeID, KindDialogue)
	if err != nil {
		return err
	}
	o := op.Option
	o.Extra = o.Extra.Clone()
	if o.ID == "" {
		o.ID = NewID()
	}
	d := g.Nodes[i].Dialogue
	if slices.ContainsFunc(d.Options, func(x Option) bool { return x.ID == o.ID }) {
		return fmt.Errorf("%w: option %s", ErrDuplicateNodeID, o.ID)
	}
	d.Options = append(d.Options, o)
	if to, ok := g.resolve(o.Target); ok {
		g.Edges = append(g.Edges, Edge{ID: EdgeID(op.NodeID, o.ID, to), Source: op.NodeID, SourceHandle: o.ID, Target: to})
	}
	return nil
}

// RemoveOption deletes an option and the edge leaving it.
type RemoveOption struct {
	NodeID   string
	OptionID string
}

func (op RemoveOption) apply(g *Graph) error {
	i, err := g.requireKind(op.NodeID, KindDialogue)
	if err != nil {
		return err
	}
	d := g.Nodes[i].Dialogue
	j := slices.IndexFunc(d.Options, func(o Option) bool { return o.ID == op.OptionID })
	if j < 0 {
		return fmt.Errorf("%w: %s on %s", ErrUnknownHandle, op.OptionID, op.NodeID)
	}
	d.Options = slices.Delete(d.Options, j, j+1)
	g.dropEdgeFrom(op.NodeID, op.OptionID)
	return nil
}

// AddBranch appends a branch to a switch node. Condition defaults to "true"
// and Action to [ActionRun]. An open branch whose value names an existing
// node gets its edge immediately.
type AddBranch struct {
	NodeID string
	Branch Branch
}

func (op AddBranch) apply(g *Graph) error {
	i, err := g.requireKind(op.NodeID, KindSwitch)
	if err != nil {
		return err
	}
	b := op.Branch
	b.Extra = b.Extra.Clone()
	if b.ID == "" {
		b.ID = NewID()
	}
	if b.Condition == "" {
		b.Condition = "true"
	}
	if b.Action == "" {
		b.Action = ActionRun
	}
	s := g.Nodes[i].Switch
	if slices.ContainsFunc(s.Branches, func(x Branch) bool { return x.ID == b.ID }) {
		return fmt.Errorf("%w: branch %s", ErrDuplicateNodeID, b.ID)
	}
	s.Branches = append(s.Branches, b)
	if b.Action == ActionOpen {
		if to, ok := g.resolve(b.Value); ok {
			g.Edges = append(g.Edges, Edge{ID: EdgeID(op.NodeID, b.ID, to), Source: op.NodeID, SourceHandle: b.ID, Target: to})
		}
	}
	return nil
}

// RemoveBranch deletes a branch and the edge leaving it.
type RemoveBranch struct {
	NodeID   string
	BranchID string
}

func (op RemoveBranch) apply(g *Graph) error {
	i, err := g.requireKind(op.NodeID, KindSwitch)
	if err != nil {
		return err
	}
	s := g.Nodes[i].Switch
	j := slices.IndexFunc(s.Branches, func(b Branch) bool { return b.ID == op.BranchID })
	if j < 0 {
		return fmt.Errorf("%w: %s on %s", ErrUnknownHandle, op.BranchID, op.NodeID)
	}
	s.Branches = slices.Delete(s.Branches, j, j+1)
	g.dropEdgeFrom(op.NodeID, op.BranchID)
	return nil
}

// Connect draws an edge from an option or open branch to a target node,
// replacing any edge already leaving that handle. The handle's literal target
// is updated to the destination's current label.
type Connect struct {
	Source string
	Handle string
	Target string
}

func (op Connect) apply(g *Graph) error {
	si := g.indexOf(op.Source)
	if si < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownNode, op.Source)
	}
	ti := g.indexOf(op.Target)
	if ti < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownNode, op.Target)
	}
	label := g.Nodes[ti].DisplayLabel()

	src := &g.Nodes[si]
	switch {
	case src.IsDialogue():
		j := slices.IndexFunc(src.Dialogue.Options, func(o Option) bool { return o.ID == op.Handle })
		if j < 0 {
			return fmt.Errorf("%w: %s on %s", ErrUnknownHandle, op.Handle, op.Source)
		}
		src.Dialogue.Options[j].Target = label
	case src.IsSwitch():
		j := slices.IndexFunc(src.Switch.Branches, func(b Branch) bool { return b.ID == op.Handle })
		if j < 0 {
			return fmt.Errorf("%w: %s on %s", ErrUnknownHandle, op.Handle, op.Source)
		}
		if src.Switch.Branches[j].Action != ActionOpen {
			return fmt.Errorf("%w: branch %s runs a script", ErrKindMismatch, op.Handle)
		}
		src.Switch.Branches[j].Value = label
	default:
		return fmt.Errorf("%w: %s", ErrKindMismatch, op.Source)
	}

	g.dropEdgeFrom(op.Source, op.Handle)
	g.Edges = append(g.Edges, Edge{ID: EdgeID(op.Source, op.Handle, op.Target), Source: op.Source, SourceHandle: op.Handle, Target: op.Target})
	return nil
}

// Disconnect removes the edge leaving a handle and clears the handle's literal
// target so the removal survives generate.
type Disconnect struct {
	Source string
	Handle string
}

func (op Disconnect) apply(g *Graph) error {
	si := g.indexOf(op.Source)
	if si < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownNode, op.Source)
	}
	src := &g.Nodes[si]
	found := false
	switch {
	case src.IsDialogue():
		if j := slices.IndexFunc(src.Dialogue.Options, func(o Option) bool { return o.ID == op.Handle }); j >= 0 {
			src.Dialogue.Options[j].Target = ""
			found = true
		}
	case src.IsSwitch():
		if j := slices.IndexFunc(src.Switch.Branches, func(b Branch) bool { return b.ID == op.Handle }); j >= 0 {
			if src.Switch.Branches[j].Action == ActionOpen {
				src.Switch.Branches[j].Value = ""
			}
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: %s on %s", ErrUnknownHandle, op.Handle, op.Source)
	}
	g.dropEdgeFrom(op.Source, op.Handle)
	return nil
}

func (g *Graph) requireKind(id string, kind Kind) (int, error) {
	i := g.indexOf(id)
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	n := g.Nodes[i]
	if n.Kind != kind || (kind == KindDialogue && n.Dialogue == nil) || (kind == KindSwitch && n.Switch == nil) {
		return -1, fmt.Errorf("%w: %s is a %s node", ErrKindMismatch, id, n.Kind)
	}
	return i, nil
}

func (g *Graph) dropEdgeFrom(source, handle string) {
	g.Edges = slices.DeleteFunc(g.Edges, func(e Edge) bool {
		return e.Source == source && e.SourceHandle == handle
	})
}

// resolve maps a literal reference to a node ID, by label first, then by ID.
func (g *Graph) resolve(ref string) (string, bool) {
	if ref == "" {
		return "", false
	}
	if n, ok := g.NodeByLabel(ref); ok {
		return n.ID, true
	}
	if g.indexOf(ref) >= 0 {
		return ref, true
	}
	return "", false
}
