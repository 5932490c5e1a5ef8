package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/questcanvas/pkg/codec"
	"github.com/matzehuels/questcanvas/pkg/render/nodelink"
)

func ExampleToDOT() {
	g := codec.Parse([]byte(`intro:
  answer:
    - text: Enter
      open: hall
hall:
  content: [Welcome]
`))

	dot := nodelink.ToDOT(g, nodelink.Options{})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "->") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "intro" -> "hall" [label="Enter"];
}
