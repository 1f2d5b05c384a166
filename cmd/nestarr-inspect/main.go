// Command nestarr-inspect builds a small sample nested array, runs a
// couple of representative slices against it, and prints the resulting
// trees. It exists to exercise the library end to end the way a developer
// would while debugging a slicing call.
package main

import (
	"log"

	"github.com/nestarr/nestarr"
	"github.com/nestarr/nestarr/internal/buffer"
)

func main() {
	log.SetFlags(log.Lmicroseconds)

	// [[0.0, 1.1, 2.2], [], [3.3, 4.4]]
	leaf := nestarr.NewNumpyArray(nestarr.NewFloat64Storage([]float64{0.0, 1.1, 2.2, 3.3, 4.4}))
	offsets := buffer.FromInt64([]int64{0, 3, 3, 5})
	array := nestarr.NewListOffsetArray(leaf, offsets)

	withID := array.SetID().(*nestarr.ListOffsetArray)
	log.Printf("built array:\n%s", withID.String())

	row1, err := withID.GetItemAt(1)
	if err != nil {
		log.Fatalf("getitem(1): %v", err)
	}
	log.Printf("getitem(1):\n%s", nestarrString(row1))

	tail, err := withID.GetItemRange(1, 3)
	if err != nil {
		log.Fatalf("getitem(1:3): %v", err)
	}
	log.Printf("getitem(1:3):\n%s", nestarrString(tail))

	picked, err := withID.Carry([]int64{2, 0})
	if err != nil {
		log.Fatalf("getitem([2,0]): %v", err)
	}
	log.Printf("getitem([2,0]):\n%s", nestarrString(picked))
}

// nestarrString stringifies any Content via its fmt.Stringer, falling back
// to a placeholder for a Content that has no String method.
func nestarrString(c nestarr.Content) string {
	if s, ok := c.(interface{ String() string }); ok {
		return s.String()
	}
	return "<content>"
}
