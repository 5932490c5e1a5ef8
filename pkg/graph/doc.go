// Package graph provides the JSON wire format for quest graphs and layouts.
//
// The format is used by the CLI (`parse` writes it, `generate` reads it), the
// HTTP API, and the layout cache. It is the JSON encoding of [quest.Graph]:
//
//	{
//	  "nodes": [
//	    {"id": "intro", "label": "intro", "kind": "dialogue",
//	     "position": {"x": 50, "y": 272},
//	     "dialogue": {"lines": ["Halt!"], "options": [
//	       {"id": "intro:answer:0", "text": "Enter", "target": "hall"}]}}
//	  ],
//	  "edges": [
//	    {"id": "intro:intro:answer:0->hall", "source": "intro",
//	     "source_handle": "intro:answer:0", "target": "hall"}
//	  ]
//	}
//
// When "edges" is omitted, [ReadGraph] derives them from option targets and
// open branches. Graphs are validated on read.
//
//	g, err := graph.ReadGraphFile("quest.json")
//	data, err := graph.MarshalGraph(g)
//
// Layout results are serialized with [MarshalLayout] and [UnmarshalLayout].
package graph
