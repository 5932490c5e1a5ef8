package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/questcanvas/pkg/quest"
)

func TestFindingsTableOrdersWarningsFirst(t *testing.T) {
	out := findingsTable([]quest.Finding{
		{Rule: quest.RuleCycle, Severity: quest.SeverityInfo, NodeID: "b", Message: "leads back to a"},
		{Rule: quest.RuleEmptyOption, Severity: quest.SeverityWarning, NodeID: "a", Handle: "a:answer:1", Message: "option has no text"},
	})

	warn := strings.Index(out, "option has no text")
	info := strings.Index(out, "leads back to a")
	if warn < 0 || info < 0 || warn > info {
		t.Errorf("warning should precede info:\n%s", out)
	}
	if !strings.Contains(out, "a/a:answer:1") {
		t.Errorf("handle missing from node column:\n%s", out)
	}
}

func TestDuplicatesTableSorted(t *testing.T) {
	out := duplicatesTable(map[string][]string{
		"shop":  {"b.yml", "c.yml"},
		"intro": {"a.yml", "b.yml"},
	})
	if i, s := strings.Index(out, "intro"), strings.Index(out, "shop"); i < 0 || i > s {
		t.Errorf("rows not sorted by identifier:\n%s", out)
	}
	if !strings.Contains(out, "a.yml, b.yml") {
		t.Errorf("documents not joined:\n%s", out)
	}
}

func TestStatsLine(t *testing.T) {
	line := statsLine(3, 2, 0, true)
	for _, want := range []string{"3 nodes", "2 edges", iconCached} {
		if !strings.Contains(line, want) {
			t.Errorf("statsLine() = %q, missing %q", line, want)
		}
	}
	if strings.Contains(line, "crossings") {
		t.Errorf("statsLine() = %q, zero crossings should be omitted", line)
	}
	if !strings.Contains(statsLine(1, 1, 4, false), "4 crossings") {
		t.Error("statsLine() should report crossings")
	}
}
