package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/questcanvas/pkg/cache"
	"github.com/matzehuels/questcanvas/pkg/graph"
	"github.com/matzehuels/questcanvas/pkg/observability"
	"github.com/matzehuels/questcanvas/pkg/pipeline"
	"github.com/matzehuels/questcanvas/pkg/quest"
)

const shopDoc = `intro:
  npc: merchant
  content:
    - Welcome!
  answer:
    - text: Browse
      open: shop
shop:
  content:
    - Wares.
`

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	logger := log.NewWithOptions(&bytes.Buffer{}, log.Options{})
	runner := pipeline.NewRunner(fc, cache.NewScopedKeyer(nil, "serve:"), logger)
	return New(runner, logger).Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func graphJSON(t *testing.T, g quest.Graph) json.RawMessage {
	t.Helper()
	data, err := graph.MarshalGraph(g)
	require.NoError(t, err)
	return data
}

func parsedShop(t *testing.T, h http.Handler) quest.Graph {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/v1/parse", map[string]any{"document": shopDoc})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody[graphResponse](t, rec).Graph
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[healthResponse](t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Version.Version)
}

func TestParse(t *testing.T) {
	h := newTestServer(t)
	g := parsedShop(t, h)

	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "intro", g.Nodes[0].Label)
	assert.Equal(t, []string{"merchant"}, g.Nodes[0].Dialogue.EntryRefs)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "shop", g.Edges[0].Target)
}

func TestParseErrors(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{"NotAMapping", map[string]any{"document": "- a\n- b\n"}, http.StatusBadRequest, "INVALID_DOCUMENT"},
		{"BadFormat", map[string]any{"document": shopDoc, "options": map[string]any{"formats": []string{"gif"}}}, http.StatusBadRequest, "INVALID_INPUT"},
		{"NotJSON", "not an object", http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/parse", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeBody[errorBody](t, rec)
			assert.Equal(t, tt.wantCode, string(resp.Error.Code))
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestRejectsOtherContentTypes(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/parse", strings.NewReader(shopDoc))
	req.Header.Set("Content-Type", "application/yaml")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestGenerate(t *testing.T) {
	h := newTestServer(t)
	raw := json.RawMessage(`{"nodes":[
		{"id":"a","label":"start","kind":"dialogue","dialogue":{"lines":["Hi"],"options":[{"id":"o","text":"Go","target":"b"}]}},
		{"id":"b","label":"end","kind":"dialogue"}]}`)

	rec := do(t, h, http.MethodPost, "/v1/generate", map[string]any{"graph": raw})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	doc := decodeBody[documentResponse](t, rec).Document
	assert.Contains(t, doc, "start:")
	assert.Contains(t, doc, "open: end")
}

func TestGenerateInvalidGraph(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/v1/generate", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	raw := json.RawMessage(`{"nodes":[{"id":"a","kind":"dialogue"},{"id":"a","kind":"dialogue"}]}`)
	rec = do(t, h, http.MethodPost, "/v1/generate", map[string]any{"graph": raw})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "INVALID_GRAPH", string(decodeBody[errorBody](t, rec).Error.Code))
}

func TestLayout(t *testing.T) {
	h := newTestServer(t)
	g := parsedShop(t, h)
	body := map[string]any{"graph": graphJSON(t, g), "layout": map[string]any{"rank_gap": 200}}

	first := decodeBody[layoutResponse](t, do(t, h, http.MethodPost, "/v1/layout", body))
	assert.False(t, first.Cached)
	require.Len(t, first.Layout.Rows, 2)
	assert.Equal(t, 0, first.Layout.Crossings)

	intro := first.Layout.Positions["intro"]
	shop := first.Layout.Positions["shop"]
	assert.InDelta(t, 300+200, shop.X-intro.X, 0.001)

	second := decodeBody[layoutResponse](t, do(t, h, http.MethodPost, "/v1/layout", body))
	assert.True(t, second.Cached)
	assert.Equal(t, first.Graph.Nodes[1].Position, second.Graph.Nodes[1].Position)
}

func TestApply(t *testing.T) {
	h := newTestServer(t)
	g := parsedShop(t, h)

	rec := do(t, h, http.MethodPost, "/v1/apply", map[string]any{
		"graph": graphJSON(t, g),
		"ops": []map[string]any{
			{"op": "rename_node", "id": "shop", "label": "bazaar"},
			{"op": "add_node", "node": map[string]any{"id": "exit", "kind": "switch"}},
			{"op": "add_branch", "node_id": "exit", "branch": map[string]any{"action": "open", "value": "intro"}},
			{"op": "move_node", "id": "exit", "position": map[string]any{"x": 10, "y": 20}},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	edited := decodeBody[graphResponse](t, rec).Graph

	require.Len(t, edited.Nodes, 3)
	assert.Equal(t, "bazaar", edited.Nodes[1].Label)
	assert.Equal(t, quest.Position{X: 10, Y: 20}, edited.Nodes[2].Position)
	assert.Len(t, edited.Edges, 2)

	// The renamed node is written under its new key and referenced by it.
	rec = do(t, h, http.MethodPost, "/v1/generate", map[string]any{"graph": graphJSON(t, edited)})
	doc := decodeBody[documentResponse](t, rec).Document
	assert.Contains(t, doc, "open: bazaar")
	assert.NotContains(t, doc, "shop:")
}

func TestApplyErrors(t *testing.T) {
	h := newTestServer(t)
	g := parsedShop(t, h)

	tests := []struct {
		name       string
		ops        []map[string]any
		wantStatus int
		wantCode   string
	}{
		{"UnknownNode", []map[string]any{{"op": "remove_node", "id": "ghost"}}, http.StatusNotFound, "NOT_FOUND"},
		{"UnknownOp", []map[string]any{{"op": "explode"}}, http.StatusBadRequest, "INVALID_INPUT"},
		{"MissingOp", []map[string]any{{"id": "intro"}}, http.StatusBadRequest, "INVALID_INPUT"},
		{"MissingField", []map[string]any{{"op": "move_node", "id": "intro"}}, http.StatusBadRequest, "INVALID_INPUT"},
		{"DuplicateLabel", []map[string]any{{"op": "rename_node", "id": "intro", "label": "shop"}}, http.StatusUnprocessableEntity, "INVALID_GRAPH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/apply", map[string]any{"graph": graphJSON(t, g), "ops": tt.ops})
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantCode, string(decodeBody[errorBody](t, rec).Error.Code))
		})
	}
}

func TestLint(t *testing.T) {
	h := newTestServer(t)
	raw := json.RawMessage(`{"nodes":[
		{"id":"a","kind":"dialogue","dialogue":{"options":[{"id":"o","text":"","target":"nowhere"}]}},
		{"id":"island","kind":"dialogue"}]}`)

	rec := do(t, h, http.MethodPost, "/v1/lint", map[string]any{"graph": raw})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rules := map[string]int{}
	for _, f := range decodeBody[lintResponse](t, rec).Findings {
		rules[f.Rule]++
	}
	assert.Equal(t, 1, rules[quest.RuleEmptyOption])
	assert.Equal(t, 1, rules[quest.RuleDanglingTarget])
}

func TestDuplicates(t *testing.T) {
	h := newTestServer(t)
	body := map[string]any{
		"documents": []map[string]string{
			{"name": "a.yml", "text": "intro:\n  content: []\n"},
			{"name": "b.yml", "text": "intro:\n  content: []\nshop:\n  content: []\n"},
			{"name": "c.yml", "text": "shop:\n  content: []\n"},
		},
		"exclude": "c.yml",
		"id":      "shop",
	}

	rec := do(t, h, http.MethodPost, "/v1/duplicates", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody[duplicatesResponse](t, rec)

	assert.Equal(t, map[string][]string{"intro": {"a.yml", "b.yml"}}, resp.Duplicates)
	assert.Equal(t, []string{"b.yml"}, resp.DefinedIn)
}

type recordingHooks struct {
	observability.NoopHooks
	mu       sync.Mutex
	statuses []int
	errors   int
}

func (h *recordingHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func (h *recordingHooks) OnError(context.Context, string, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors++
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	h := newTestServer(t)
	do(t, h, http.MethodGet, "/healthz", nil)
	do(t, h, http.MethodPost, "/v1/parse", map[string]any{"document": "[1, 2]"})

	assert.Equal(t, []int{http.StatusOK, http.StatusBadRequest}, hooks.statuses)
	assert.Equal(t, 1, hooks.errors)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
