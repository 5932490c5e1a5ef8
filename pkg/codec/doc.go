// Package codec converts quest documents to graphs and back.
//
// A quest document is a YAML mapping from node key to node body. Bodies with a
// `when` list become switch nodes; every other mapping body becomes a dialogue
// node. Fields the model does not know are carried in the node's, option's, or
// branch's extra bag and written back verbatim.
//
// # Parsing
//
// [Parse] never fails: malformed input yields an empty graph so callers always
// have something to render. Use [Decode] and [ParseDocument] when the reason for
// a failure matters.
//
//	g := codec.Parse(text)
//
// Both historical field conventions are accepted. The legacy `player` list with
// `reply`, `then`, and `next` fields normalizes to the same options as the
// canonical `answer` list with `text`, `action`, and `open`. A legacy `then`
// script without an explicit target has its first `goto <node>` fragment
// lifted out into the option target.
//
// When no node carries `canvas` coordinates the whole graph is laid out with
// [layout.Compute]. Documents that mix positioned and unpositioned nodes leave
// the unpositioned ones at the origin unless [Options.LayoutUnpositioned] is set.
//
// # Generating
//
// [Generate] always succeeds and writes canonical spellings only. Option and
// branch targets are re-resolved through the graph's edges, so a renamed node
// is written under its new key everywhere it is referenced. Targets without an
// edge keep their last literal value. The reserved [ReservedKey] entry is never
// written.
package codec
