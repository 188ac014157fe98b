package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage(t *testing.T) {
	tests := []struct {
		name   string
		meta   map[string]any
		want   string
		wantOK bool
	}{
		{name: "nil map", meta: nil},
		{name: "empty map", meta: map[string]any{}},
		{name: "no recognized keys", meta: map[string]any{"title": "x"}},
		{name: "page int", meta: map[string]any{"page": 3}, want: "3", wantOK: true},
		{name: "page json number", meta: map[string]any{"page": float64(7)}, want: "7", wantOK: true},
		{name: "page string", meta: map[string]any{"page": "iv"}, want: "iv", wantOK: true},
		{name: "page wins over page_number", meta: map[string]any{"page": 1, "page_number": 2}, want: "1", wantOK: true},
		{name: "page_number fallback", meta: map[string]any{"page_number": 5}, want: "5", wantOK: true},
		{name: "nested loc page", meta: map[string]any{"loc": map[string]any{"page": float64(9)}}, want: "9", wantOK: true},
		{name: "loc beats pdf_page", meta: map[string]any{"loc": map[string]any{"page": 2}, "pdf_page": 8}, want: "2", wantOK: true},
		{name: "pdf_page last", meta: map[string]any{"pdf_page": 12}, want: "12", wantOK: true},
		{name: "empty string skipped", meta: map[string]any{"page": "  ", "page_number": 4}, want: "4", wantOK: true},
		{name: "unusable type skipped", meta: map[string]any{"page": []int{1}, "pdf_page": 6}, want: "6", wantOK: true},
		{name: "loc not a map", meta: map[string]any{"loc": "nope"}},
		{name: "fractional float", meta: map[string]any{"page": 3.5}, want: "3.5", wantOK: true},
		{name: "zero page falls through", meta: map[string]any{"page": 0, "page_number": float64(4)}, want: "4", wantOK: true},
		{name: "zero page alone is absent", meta: map[string]any{"page": float64(0)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Page(tc.meta)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSource(t *testing.T) {
	tests := []struct {
		name   string
		meta   map[string]any
		want   string
		wantOK bool
	}{
		{name: "nil map", meta: nil},
		{name: "empty map", meta: map[string]any{}},
		{name: "no recognized keys", meta: map[string]any{"page": 3}},
		{name: "source", meta: map[string]any{"source": "drugs.pdf"}, want: "drugs.pdf", wantOK: true},
		{name: "source wins over path", meta: map[string]any{"source": "a.pdf", "path": "/tmp/b.pdf"}, want: "a.pdf", wantOK: true},
		{name: "file_path fallback", meta: map[string]any{"file_path": "/docs/x.pdf"}, want: "/docs/x.pdf", wantOK: true},
		{name: "document_id fallback", meta: map[string]any{"document_id": "doc-42"}, want: "doc-42", wantOK: true},
		{name: "id last", meta: map[string]any{"id": "abc"}, want: "abc", wantOK: true},
		{name: "non-string skipped", meta: map[string]any{"source": 7, "id": "abc"}, want: "abc", wantOK: true},
		{name: "blank skipped", meta: map[string]any{"source": "   ", "path": "p.txt"}, want: "p.txt", wantOK: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Source(tc.meta)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
