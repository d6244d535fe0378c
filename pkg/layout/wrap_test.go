package layout

import (
	"reflect"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		columns int
		want    []string
	}{
		{"blank", "   ", 10, nil},
		{"fits", "hello world", 20, []string{"hello world"}},
		{"exact fit", "hello world", 11, []string{"hello world"}},
		{"breaks between words", "hello brave new world", 11, []string{"hello brave", "new world"}},
		{"collapses whitespace", "a  b\t\nc", 10, []string{"a b c"}},
		{"splits long word", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"long word after short", "hi abcdefghij", 4, []string{"hi", "abcd", "efgh", "ij"}},
		{"counts runes", "héllo wörld", 5, []string{"héllo", "wörld"}},
		{"zero columns acts as one", "ab", 0, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Wrap(tt.text, tt.columns); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap(%q, %d) = %q, want %q", tt.text, tt.columns, got, tt.want)
			}
		})
	}
}

func TestEstimateColumns(t *testing.T) {
	tests := []struct {
		width int
		size  float64
		ratio float64
		want  int
	}{
		{920, 64, 0.6, 23},
		{920, 32, 0.6, 47},
		{10, 64, 0.6, 1},
	}

	for _, tt := range tests {
		if got := estimateColumns(tt.width, tt.size, tt.ratio); got != tt.want {
			t.Errorf("estimateColumns(%d, %v, %v) = %d, want %d", tt.width, tt.size, tt.ratio, got, tt.want)
		}
	}
}
