package entry

import (
	"hash/fnv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DisplayColor derives a stable display color for an entry from its
// content. A pure function of title and tags: two entries with the same
// content get the same color, and editing content changes it, which is why
// any memoization of this value must be invalidated on update.
func DisplayColor(e *Entry) string {
	if e == nil {
		return "#888888"
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(e.Title))
	if len(e.Tags) > 0 {
		_, _ = h.Write([]byte(strings.Join(e.Tags, ",")))
	}
	hue := float64(h.Sum32() % 360)
	c := colorful.Hsv(hue, 0.55, 0.85)
	return c.Hex()
}
