package layout

import "math"

// Extent is the measured size of one line of text, in pixels.
type Extent struct {
	Width   float64
	Ascent  float64 // baseline to top of the line box
	Descent float64 // baseline to bottom of the line box
	Bearing float64 // ink left of the pen origin, included in Width
}

// Height is the line box height.
func (e Extent) Height() float64 { return e.Ascent + e.Descent }

// Measurer measures single-line text at a given pixel size.
// Implementations must be deterministic.
type Measurer interface {
	Measure(text string, size float64) Extent
}

func ceil(v float64) int { return int(math.Ceil(v)) }

// blockHeight sums ceiled line heights plus the spacing between lines.
func blockHeight(exts []Extent, spacing int) int {
	if len(exts) == 0 {
		return 0
	}
	h := (len(exts) - 1) * spacing
	for _, e := range exts {
		h += ceil(e.Height())
	}
	return h
}
