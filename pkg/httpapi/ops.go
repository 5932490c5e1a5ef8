package httpapi

import (
	"github.com/matzehuels/questcanvas/pkg/errors"
	"github.com/matzehuels/questcanvas/pkg/quest"
)

// opRequest is the JSON envelope of one edit. Op selects which fields apply.
type opRequest struct {
	Op       string          `json:"op"`
	ID       string          `json:"id,omitempty"`
	Label    string          `json:"label,omitempty"`
	Node     *quest.Node     `json:"node,omitempty"`
	Position *quest.Position `json:"position,omitempty"`
	NodeID   string          `json:"node_id,omitempty"`
	Option   *quest.Option   `json:"option,omitempty"`
	OptionID string          `json:"option_id,omitempty"`
	Branch   *quest.Branch   `json:"branch,omitempty"`
	BranchID string          `json:"branch_id,omitempty"`
	Source   string          `json:"source,omitempty"`
	Handle   string          `json:"handle,omitempty"`
	Target   string          `json:"target,omitempty"`
}

func (o opRequest) toOp() (quest.Op, error) {
	switch o.Op {
	case "add_node":
		if o.Node == nil {
			return nil, missing(o.Op, "node")
		}
		return quest.AddNode{Node: *o.Node}, nil
	case "remove_node":
		return quest.RemoveNode{ID: o.ID}, nil
	case "rename_node":
		return quest.RenameNode{ID: o.ID, Label: o.Label}, nil
	case "move_node":
		if o.Position == nil {
			return nil, missing(o.Op, "position")
		}
		return quest.MoveNode{ID: o.ID, Position: *o.Position}, nil
	case "add_option":
		if o.Option == nil {
			return nil, missing(o.Op, "option")
		}
		return quest.AddOption{NodeID: o.NodeID, Option: *o.Option}, nil
	case "remove_option":
		return quest.RemoveOption{NodeID: o.NodeID, OptionID: o.OptionID}, nil
	case "add_branch":
		if o.Branch == nil {
			return nil, missing(o.Op, "branch")
		}
		return quest.AddBranch{NodeID: o.NodeID, Branch: *o.Branch}, nil
	case "remove_branch":
		return quest.RemoveBranch{NodeID: o.NodeID, BranchID: o.BranchID}, nil
	case "connect":
		return quest.Connect{Source: o.Source, Handle: o.Handle, Target: o.Target}, nil
	case "disconnect":
		return quest.Disconnect{Source: o.Source, Handle: o.Handle}, nil
	case "":
		return nil, errors.New(errors.ErrCodeInvalidInput, "op is required")
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown op %q", o.Op)
}

func missing(op, field string) error {
	return errors.New(errors.ErrCodeInvalidInput, "%s requires %s", op, field)
}

func decodeOps(reqs []opRequest) ([]quest.Op, error) {
	ops := make([]quest.Op, 0, len(reqs))
	for i, r := range reqs {
		op, err := r.toOp()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "ops[%d]", i)
		}
		ops = append(ops, op)
	}
	return ops, nil
}
