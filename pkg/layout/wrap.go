package layout

import (
	"strings"
	"unicode/utf8"
)

// Wrap greedily breaks text into lines of at most columns characters.
// Runs of whitespace collapse to one space; words longer than columns are
// split across lines. It returns nil for blank text.
func Wrap(text string, columns int) []string {
	columns = max(columns, 1)
	var (
		lines []string
		cur   strings.Builder
		n     int
	)
	flush := func() {
		if n > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			n = 0
		}
	}
	for _, word := range strings.Fields(text) {
		wn := utf8.RuneCountInString(word)
		if n > 0 && n+1+wn <= columns {
			cur.WriteByte(' ')
			cur.WriteString(word)
			n += 1 + wn
			continue
		}
		flush()
		for wn > columns {
			head, tail := splitRunes(word, columns)
			lines = append(lines, head)
			word, wn = tail, wn-columns
		}
		cur.WriteString(word)
		n = wn
	}
	flush()
	return lines
}

func splitRunes(s string, n int) (string, string) {
	i := 0
	for j := range s {
		if i == n {
			return s[:j], s[j:]
		}
		i++
	}
	return s, ""
}

// estimateColumns derives a line length from the average glyph width.
func estimateColumns(width int, size, ratio float64) int {
	return max(1, int(float64(width)/(size*ratio)))
}
