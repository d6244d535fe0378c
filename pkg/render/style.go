package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/swipefish/swipecard/pkg/errors"
)

// Style holds the card colors as hex strings.
type Style struct {
	Text  string `toml:"text"`
	Cross string `toml:"cross"`
	Heart string `toml:"heart"`
}

// DefaultStyle is the swipefish palette.
func DefaultStyle() Style {
	return Style{
		Text:  "#192734",
		Cross: "#969696",
		Heart: "#ea5467",
	}
}

type palette struct {
	text, cross, heart color.Color
}

// Validate reports the first color that does not parse.
func (s Style) Validate() error {
	_, err := s.palette()
	return err
}

func (s Style) palette() (palette, error) {
	var p palette
	for _, c := range []struct {
		name string
		hex  string
		dst  *color.Color
	}{
		{"text", s.Text, &p.text},
		{"cross", s.Cross, &p.cross},
		{"heart", s.Heart, &p.heart},
	} {
		parsed, err := colorful.Hex(c.hex)
		if err != nil {
			return palette{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s color %q", c.name, c.hex)
		}
		*c.dst = parsed.Clamped()
	}
	return p, nil
}
