// Package httpapi exposes the document pipeline over HTTP for editor front
// ends.
//
// All endpoints take and return JSON. Graphs use the wire format of
// [github.com/matzehuels/questcanvas/pkg/graph].
//
//	POST /v1/parse       {"document": "...", "options": {...}}  -> {"graph", "findings"}
//	POST /v1/generate    {"graph": {...}}                       -> {"document"}
//	POST /v1/layout      {"graph": {...}, "layout": {...}}      -> {"graph", "layout"}
//	POST /v1/apply       {"graph": {...}, "ops": [...]}         -> {"graph"}
//	POST /v1/lint        {"graph": {...}}                       -> {"findings"}
//	POST /v1/duplicates  {"documents": [...], "exclude", "id"}  -> {"duplicates", "defined_in"}
//	GET  /healthz                                               -> {"status", "version"}
//
// Failures are reported as {"error": {"code": "...", "message": "..."}} with
// a status derived from the error code.
package httpapi
