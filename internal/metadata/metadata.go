// Package metadata extracts display fields from the heterogeneous metadata
// records attached to indexed passages. Different loaders name their fields
// differently, so each extractor probes a fixed list of candidate keys and
// reports absence instead of failing.
package metadata

import (
	"strconv"
	"strings"
)

var sourceKeys = []string{"source", "file_path", "path", "document_id", "id"}

// Page returns a printable page number from the metadata, probing the keys
// "page", "page_number", "loc.page" and "pdf_page" in that order.
// The second return value is false when no key holds a usable value.
func Page(meta map[string]any) (string, bool) {
	if len(meta) == 0 {
		return "", false
	}
	if v, ok := formatPage(meta["page"]); ok {
		return v, true
	}
	if v, ok := formatPage(meta["page_number"]); ok {
		return v, true
	}
	if loc, ok := meta["loc"].(map[string]any); ok {
		if v, ok := formatPage(loc["page"]); ok {
			return v, true
		}
	}
	return formatPage(meta["pdf_page"])
}

// Source returns an origin identifier (file path, document id or similar),
// probing a fixed key list in priority order. Only non-empty string values
// count; absence is reported, never an error.
func Source(meta map[string]any) (string, bool) {
	if len(meta) == 0 {
		return "", false
	}
	for _, key := range sourceKeys {
		if s, ok := meta[key].(string); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}

// formatPage renders the value types page numbers show up as. JSON decoding
// produces float64 for all numbers, so whole floats print without a decimal.
// A numeric zero counts as absent and falls through to the next key, like an
// empty string does.
func formatPage(v any) (string, bool) {
	switch n := v.(type) {
	case nil:
		return "", false
	case string:
		if strings.TrimSpace(n) == "" {
			return "", false
		}
		return n, true
	case int:
		if n == 0 {
			return "", false
		}
		return strconv.Itoa(n), true
	case int64:
		if n == 0 {
			return "", false
		}
		return strconv.FormatInt(n, 10), true
	case float64:
		if n == 0 {
			return "", false
		}
		if n == float64(int64(n)) {
			return strconv.FormatInt(int64(n), 10), true
		}
		return strconv.FormatFloat(n, 'g', -1, 64), true
	default:
		return "", false
	}
}
