package index_test

import (
	"context"
	"fmt"
	"os"

	"github.com/matzehuels/questcanvas/pkg/index"
)

func ExampleScan() {
	docs, err := index.Scan(context.Background(), os.DirFS("../../examples/quests"), ".")
	if err != nil {
		fmt.Println(err)
		return
	}

	ix := index.Build(docs, "")
	fmt.Println(ix.Duplicates())
	fmt.Println(ix.CheckDuplicate("smith"))
	// Output:
	// map[guard_gate:[town/guard.yml town/market.yml]]
	// [town/market.yml]
}
