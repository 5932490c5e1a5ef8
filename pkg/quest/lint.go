package quest

import "fmt"

// Severity ranks a lint finding.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Lint rule names.
const (
	RuleDanglingTarget = "dangling-target"
	RuleEmptyOption    = "empty-option"
	RuleUnreachable    = "unreachable"
	RuleCycle          = "cycle"
)

// Finding is an advisory note about a graph. Findings never block parse or
// generate.
type Finding struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	NodeID   string   `json:"node_id"`
	Handle   string   `json:"handle,omitempty"`
	Message  string   `json:"message"`
}

func (f Finding) String() string {
	if f.Handle != "" {
		return fmt.Sprintf("%s: %s/%s [%s] %s", f.Severity, f.NodeID, f.Handle, f.Rule, f.Message)
	}
	return fmt.Sprintf("%s: %s [%s] %s", f.Severity, f.NodeID, f.Rule, f.Message)
}

// Lint inspects g and returns findings in node order.
//
// A node is reachable when a path leads to it from an entry node: one with NPC
// references, or one without incoming edges. Loops back to earlier nodes are
// common in dialogue and are reported as info only.
func Lint(g Graph) []Finding {
	var out []Finding
	for _, n := range g.Nodes {
		out = append(out, lintHandles(g, n)...)
	}
	out = append(out, lintReachability(g)...)
	out = append(out, lintCycles(g)...)
	return out
}

func lintHandles(g Graph, n Node) []Finding {
	var out []Finding
	switch {
	case n.IsDialogue():
		for _, o := range n.Dialogue.Options {
			if o.Text == "" {
				out = append(out, Finding{
					Rule: RuleEmptyOption, Severity: SeverityWarning, NodeID: n.ID, Handle: o.ID,
					Message: "option has no text",
				})
			}
			if o.Target == "" {
				continue
			}
			if _, ok := g.EdgeFrom(n.ID, o.ID); !ok {
				out = append(out, dangling(n.ID, o.ID, o.Target))
			}
		}
	case n.IsSwitch():
		for _, b := range n.Switch.Branches {
			if b.Action != ActionOpen || b.Value == "" {
				continue
			}
			if _, ok := g.EdgeFrom(n.ID, b.ID); !ok {
				out = append(out, dangling(n.ID, b.ID, b.Value))
			}
		}
	}
	return out
}

func dangling(node, handle, target string) Finding {
	return Finding{
		Rule: RuleDanglingTarget, Severity: SeverityWarning, NodeID: node, Handle: handle,
		Message: fmt.Sprintf("target %q does not exist", target),
	}
}

func lintReachability(g Graph) []Finding {
	out := make(map[string][]string, len(g.Nodes))
	hasIn := make(map[string]bool, len(g.Nodes))
	for _, e := range g.Edges {
		out[e.Source] = append(out[e.Source], e.Target)
		hasIn[e.Target] = true
	}

	seen := make(map[string]bool, len(g.Nodes))
	var queue []string
	for _, n := range g.Nodes {
		if isEntry(n) || !hasIn[n.ID] {
			seen[n.ID] = true
			queue = append(queue, n.ID)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, next := range out[id] {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}

	var findings []Finding
	for _, n := range g.Nodes {
		if !seen[n.ID] {
			findings = append(findings, Finding{
				Rule: RuleUnreachable, Severity: SeverityWarning, NodeID: n.ID,
				Message: "no path leads here from an entry node",
			})
		}
	}
	return findings
}

func isEntry(n Node) bool {
	switch {
	case n.IsDialogue():
		return len(n.Dialogue.EntryRefs) > 0
	case n.IsSwitch():
		return n.Switch.EntryRef != ""
	}
	return false
}

func lintCycles(g Graph) []Finding {
	const (
		white = iota
		gray
		black
	)

	out := make(map[string][]Edge, len(g.Nodes))
	for _, e := range g.Edges {
		out[e.Source] = append(out[e.Source], e)
	}
	color := make(map[string]int, len(g.Nodes))
	var findings []Finding

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, e := range out[id] {
			switch color[e.Target] {
			case white:
				dfs(e.Target)
			case gray:
				findings = append(findings, Finding{
					Rule: RuleCycle, Severity: SeverityInfo, NodeID: id, Handle: e.SourceHandle,
					Message: fmt.Sprintf("loops back to %s", e.Target),
				})
			}
		}
		color[id] = black
	}

	for _, n := range g.Nodes {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}
	return findings
}
