package index

import (
	"context"
	"reflect"
	"slices"
	"testing"
	"testing/fstest"
)

func TestExtractKeys(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "Plain",
			text: "intro:\n  content: [hi]\nshop:\n  content: [x]\n",
			want: []string{"intro", "shop"},
		},
		{
			name: "Quoted",
			text: "\"door 1\":\n  content: []\n'gate':\n  when: []\n",
			want: []string{"door 1", "gate"},
		},
		{
			name: "ReservedSkipped",
			text: "__meta__:\n  v: 1\nintro: {}\n",
			want: []string{"intro"},
		},
		{
			name: "IndentedAndCommentsIgnored",
			text: "# note: here\nintro:\n  name: x\n  answer:\n    - text: y\n",
			want: []string{"intro"},
		},
		{
			name: "NoRepeats",
			text: "a:\n  x: 1\na:\n  x: 2\nb: {}\n",
			want: []string{"a", "b"},
		},
		{
			name: "CRLF",
			text: "a:\r\n  x: 1\r\nb.c-d:\r\n",
			want: []string{"a", "b.c-d"},
		},
		{
			name: "Empty",
			text: "",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractKeys(tt.text); !slices.Equal(got, tt.want) {
				t.Errorf("ExtractKeys() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCheckDuplicate(t *testing.T) {
	docs := []Source{
		{Name: "a.yml", Text: "intro:\n  content: [a]\n"},
		{Name: "b.yml", Text: "intro:\n  content: [b]\nshop: {}\n"},
		{Name: "c.yml", Text: "gate:\n  when: []\n"},
	}

	fromThird := Build(docs, "c.yml")
	if got := fromThird.CheckDuplicate("intro"); !slices.Equal(got, []string{"a.yml", "b.yml"}) {
		t.Errorf("from c.yml: CheckDuplicate(intro) = %v, want [a.yml b.yml]", got)
	}

	fromFirst := Build(docs, "a.yml")
	if got := fromFirst.CheckDuplicate("intro"); !slices.Equal(got, []string{"b.yml"}) {
		t.Errorf("from a.yml: CheckDuplicate(intro) = %v, want [b.yml]", got)
	}

	if got := fromFirst.CheckDuplicate("missing"); got != nil {
		t.Errorf("CheckDuplicate(missing) = %v, want nil", got)
	}
	if got := fromThird.CheckDuplicate("gate"); got != nil {
		t.Errorf("excluded document leaked: %v", got)
	}
}

func TestIndexQueries(t *testing.T) {
	ix := Build([]Source{
		{Name: "a.yml", Text: "intro: {}\nshop: {}\n"},
		{Name: "b.yml", Text: "intro: {}\n"},
	}, "")

	if got := ix.IDs(); !slices.Equal(got, []string{"intro", "shop"}) {
		t.Errorf("IDs() = %v", got)
	}
	if ix.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ix.Len())
	}
	want := map[string][]string{"intro": {"a.yml", "b.yml"}}
	if got := ix.Duplicates(); !reflect.DeepEqual(got, want) {
		t.Errorf("Duplicates() = %v, want %v", got, want)
	}

	// Callers may not mutate the index through returned slices.
	ix.CheckDuplicate("intro")[0] = "x"
	if ix.CheckDuplicate("intro")[0] != "a.yml" {
		t.Error("CheckDuplicate returned an alias")
	}
}

func TestScan(t *testing.T) {
	fsys := fstest.MapFS{
		"quests/b.yaml":      {Data: []byte("intro: {}\n")},
		"quests/a.yml":       {Data: []byte("intro: {}\n")},
		"quests/sub/c.yml":   {Data: []byte("gate: {}\n")},
		"quests/readme.md":   {Data: []byte("intro:\n")},
		"other/ignored.yaml": {Data: []byte("x: {}\n")},
	}

	docs, err := Scan(context.Background(), fsys, "quests")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	var names []string
	for _, d := range docs {
		names = append(names, d.Name)
	}
	if want := []string{"quests/a.yml", "quests/b.yaml", "quests/sub/c.yml"}; !slices.Equal(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}

	if got := Build(docs, "").CheckDuplicate("intro"); len(got) != 2 {
		t.Errorf("CheckDuplicate(intro) = %v, want 2 documents", got)
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := Scan(context.Background(), fstest.MapFS{}, "nope"); err == nil {
		t.Error("Scan(missing) should fail")
	}
}
