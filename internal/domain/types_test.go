package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryOptionsClamped(t *testing.T) {
	tests := []struct {
		name string
		in   QueryOptions
		want QueryOptions
	}{
		{
			name: "zero values get defaults",
			in:   QueryOptions{},
			want: QueryOptions{TopK: DefaultTopK, Temperature: 0, MaxTokens: DefaultMaxTokens},
		},
		{
			name: "above bounds",
			in:   QueryOptions{TopK: 99, Temperature: 3.2, MaxTokens: 100000},
			want: QueryOptions{TopK: MaxTopK, Temperature: MaxTemperature, MaxTokens: MaxMaxTokens},
		},
		{
			name: "below bounds",
			in:   QueryOptions{TopK: -1, Temperature: -0.5, MaxTokens: 1},
			want: QueryOptions{TopK: MinTopK, Temperature: MinTemperature, MaxTokens: MinMaxTokens},
		},
		{
			name: "valid values untouched",
			in:   QueryOptions{TopK: 5, Temperature: 0.7, MaxTokens: 1024, ExpandSources: true},
			want: QueryOptions{TopK: 5, Temperature: 0.7, MaxTokens: 1024, ExpandSources: true},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Clamped())
		})
	}
}
