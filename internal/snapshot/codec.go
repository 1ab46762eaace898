package snapshot

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// WriteText renders a record list (as produced by Encode) in the on-disk
// format: a single JSON array, one record per line, so a snapshot file
// diffs and greps like a log rather than a single unreadable line.
func WriteText(records []string) string {
	var b strings.Builder
	b.WriteString("[\n")
	for i, rec := range records {
		b.WriteString("  ")
		b.WriteString(rec)
		if i < len(records)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("]\n")
	return b.String()
}

// ReadText is WriteText's inverse: split the top-level array back into its
// per-record JSON texts, in order.
func ReadText(text string) ([]string, error) {
	root := gjson.Parse(text)
	if !root.IsArray() {
		return nil, fmt.Errorf("snapshot: file does not contain a top-level JSON array")
	}
	var records []string
	root.ForEach(func(_, rec gjson.Result) bool {
		records = append(records, rec.Raw)
		return true
	})
	return records, nil
}
