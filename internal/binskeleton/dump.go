package binskeleton

import (
	"fmt"
	"io"
)

// Dump writes one line per bone, flagging bones whose stored ID matches
// the salted FNV-1a hash of their name.
func (s *Skeleton) Dump(w io.Writer) {
	fmt.Fprintf(w, "bones: %d\n", len(s.Bones))
	for i := range s.Bones {
		b := &s.Bones[i]
		match := ""
		if b.Name != "" && Hash(b.Name, 1) == b.ID {
			match = " (id = fnv1a(name))"
		}
		fmt.Fprintf(w, "  [%d] %q parent=%d id=0x%08x rot=%v pos=%v%s\n",
			i, b.Name, int32(b.Parent), b.ID, b.Rotation, b.Position, match)
	}
}
