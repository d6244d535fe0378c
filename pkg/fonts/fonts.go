// Package fonts resolves and measures the typefaces cards are drawn with.
//
// Each card role (bold title, regular or italic body) has an ordered list of
// candidate font files. [Resolve] walks the list and returns the first font
// that loads; when none does, the matching Go font embedded in
// golang.org/x/image is used, so resolution never fails. Skipped candidates
// are reported as FONT_RESOLUTION warnings.
package fonts

import (
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/swipefish/swipecard/pkg/errors"
	"github.com/swipefish/swipecard/pkg/layout"
)

// Style is the weight/slant of a font role.
type Style int

const (
	Regular Style = iota
	Bold
	Italic
)

func (s Style) String() string {
	switch s {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	}
	return "regular"
}

// ParseStyle maps "regular", "bold" and "italic" to a Style.
func ParseStyle(s string) (Style, error) {
	switch s {
	case "", "regular":
		return Regular, nil
	case "bold":
		return Bold, nil
	case "italic":
		return Italic, nil
	}
	return Regular, errors.New(errors.ErrCodeInvalidConfig, "unknown font style %q (must be regular, bold or italic)", s)
}

// Spec describes a font at a size. The title size may end up below the
// nominal one after fitting.
type Spec struct {
	Family string
	Style  Style
	Size   float64
}

// Typeface is a parsed font. It is immutable and safe for concurrent use;
// every Face and Measure call creates its own face.
type Typeface struct {
	Family string // file path, or the Go font name when built in
	Style  Style
	Source string // path the font was loaded from, empty when built in

	font *opentype.Font
}

// Parse parses TrueType or OpenType data.
func Parse(family string, style Style, data []byte) (*Typeface, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetLoad, err, "parse font %s", family)
	}
	return &Typeface{Family: family, Style: style, font: f}, nil
}

// Builtin returns the embedded Go font for style.
func Builtin(style Style) *Typeface {
	builtinOnce.Do(func() {
		for s, b := range map[Style]struct {
			name string
			data []byte
		}{
			Regular: {"Go Regular", goregular.TTF},
			Bold:    {"Go Bold", gobold.TTF},
			Italic:  {"Go Italic", goitalic.TTF},
		} {
			tf, err := Parse(b.name, s, b.data)
			if err != nil {
				panic(err) // embedded data is known good
			}
			builtins[s] = tf
		}
	})
	return builtins[style]
}

var (
	builtinOnce sync.Once
	builtins    = map[Style]*Typeface{}
)

// IsBuiltin reports whether the typeface is an embedded fallback.
func (t *Typeface) IsBuiltin() bool { return t.Source == "" }

// Spec describes the typeface at size.
func (t *Typeface) Spec(size float64) Spec {
	return Spec{Family: t.Family, Style: t.Style, Size: size}
}

// Face returns a drawing face at size pixels. The caller closes it.
func (t *Typeface) Face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(t.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create %s face at %.1fpx", t.Family, size)
	}
	return face, nil
}

// Measure implements layout.Measurer. The width covers both the advance and
// the ink bounds, so italic overhang and negative left bearings are counted.
func (t *Typeface) Measure(text string, size float64) layout.Extent {
	face, err := t.Face(size)
	if err != nil {
		return layout.Extent{}
	}
	defer face.Close()

	m := face.Metrics()
	ext := layout.Extent{Ascent: fromFixed(m.Ascent), Descent: fromFixed(m.Descent)}
	if text == "" {
		return ext
	}
	bounds, advance := font.BoundString(face, text)
	left := math.Min(0, fromFixed(bounds.Min.X))
	right := math.Max(fromFixed(advance), fromFixed(bounds.Max.X))
	ext.Width = right - left
	ext.Bearing = -left
	return ext
}

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }

var _ layout.Measurer = (*Typeface)(nil)
