package layout

import (
	"image"

	"github.com/swipefish/swipecard/pkg/errors"
)

// Canvas is the fixed drawing surface of a card style.
type Canvas struct {
	Width             int `toml:"width"`
	Height            int `toml:"height"`
	HorizontalPadding int `toml:"horizontal_padding"`
	TopPadding        int `toml:"top_padding"`
	BottomPadding     int `toml:"bottom_padding"`
}

// Bounds returns the canvas rectangle anchored at the origin.
func (c Canvas) Bounds() image.Rectangle { return image.Rect(0, 0, c.Width, c.Height) }

// PaddedWidth is the width available to content between the side paddings.
func (c Canvas) PaddedWidth() int { return c.Width - 2*c.HorizontalPadding }

// Profile holds every layout constant of one card style.
type Profile struct {
	Name   string `toml:"-"`
	Canvas Canvas `toml:"canvas"`

	// HeaderHeight and HeaderGap reserve the band under TopPadding where the
	// fixed header icons are drawn. The title starts below it.
	HeaderHeight int `toml:"header_height"`
	HeaderGap    int `toml:"header_gap"`

	TitleSize float64 `toml:"title_size"`
	BodySize  float64 `toml:"body_size"`

	TitleGap     int `toml:"title_gap"`   // title bottom to image top
	TaglineGap   int `toml:"tagline_gap"` // image bottom to tagline top
	LineSpacing  int `toml:"line_spacing"`
	SafetyMargin int `toml:"safety_margin"`

	// MinTaglineGap is how far the tagline may be pulled toward the image
	// when its measured height runs past the bottom limit.
	MinTaglineGap int `toml:"min_tagline_gap"`

	// WrapColumns fixes the tagline line length in characters. Zero means
	// estimate it from the padded width and CharWidthRatio.
	WrapColumns    int     `toml:"wrap_columns"`
	CharWidthRatio float64 `toml:"char_width_ratio"`

	// ImageWidthRatio caps the illustration width as a fraction of the canvas
	// width. Zero means the padded width.
	ImageWidthRatio float64 `toml:"image_width_ratio"`
	AllowUpscale    bool    `toml:"allow_upscale"`

	MinImageSize     int     `toml:"min_image_size"` // floor for the longer image side
	MaxShrinkSteps   int     `toml:"max_shrink_steps"`
	ShrinkFactor     float64 `toml:"shrink_factor"`
	MinBottomPadding int     `toml:"min_bottom_padding"`
}

// Built-in profile names.
const (
	ProfileRoles    = "roles"
	ProfilePersonas = "personas"
)

// Roles is the profile of the role cards: bold title, regular body wrapped at
// a fixed 26 columns, illustration capped at 70% of the canvas width.
func Roles() Profile {
	return Profile{
		Name: ProfileRoles,
		Canvas: Canvas{
			Width:             1080,
			Height:            1920,
			HorizontalPadding: 80,
			TopPadding:        80,
			BottomPadding:     80,
		},
		HeaderHeight:     80,
		HeaderGap:        40,
		TitleSize:        120,
		BodySize:         64,
		TitleGap:         60,
		TaglineGap:       40,
		MinTaglineGap:    20,
		LineSpacing:      10,
		SafetyMargin:     8,
		WrapColumns:      26,
		CharWidthRatio:   0.6,
		ImageWidthRatio:  0.70,
		MinImageSize:     160,
		MaxShrinkSteps:   12,
		ShrinkFactor:     0.9,
		MinBottomPadding: 32,
	}
}

// Personas is the profile of the persona cards: italic body wrapped by
// estimated character width, a deeper bottom margin and a full-width image.
func Personas() Profile {
	p := Roles()
	p.Name = ProfilePersonas
	p.Canvas.BottomPadding = 140
	p.TaglineGap = 48
	p.MinTaglineGap = 24
	p.SafetyMargin = 16
	p.WrapColumns = 0
	p.ImageWidthRatio = 0
	p.MinBottomPadding = 48
	return p
}

// Builtin returns the built-in profile with the given name.
func Builtin(name string) (Profile, bool) {
	switch name {
	case ProfileRoles:
		return Roles(), true
	case ProfilePersonas:
		return Personas(), true
	}
	return Profile{}, false
}

// TitleTop is the y coordinate where the title box starts.
func (p Profile) TitleTop() int {
	return p.Canvas.TopPadding + p.HeaderHeight + p.HeaderGap
}

// MaxImageWidth is the widest the illustration may be drawn.
func (p Profile) MaxImageWidth() int {
	w := p.Canvas.PaddedWidth()
	if p.ImageWidthRatio > 0 {
		w = min(w, int(float64(p.Canvas.Width)*p.ImageWidthRatio))
	}
	return w
}

// Validate reports the first inconsistent setting.
func (p Profile) Validate() error {
	c := p.Canvas
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "profile %q: canvas must be positive, got %dx%d", p.Name, c.Width, c.Height)
	case c.HorizontalPadding < 0 || c.TopPadding < 0 || c.BottomPadding < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "profile %q: paddings must not be negative", p.Name)
	case c.PaddedWidth() <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "profile %q: horizontal padding %d leaves no width", p.Name, c.HorizontalPadding)
	case p.TitleSize <= 0 || p.BodySize <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "profile %q: font sizes must be positive", p.Name)
	case p.TitleGap < 0 || p.TaglineGap < 0 || p.LineSpacing < 0 || p.SafetyMargin < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "profile %q: gaps and margins must not be negative", p.Name)
	case p.MinTaglineGap < 0 || p.MinTaglineGap > p.TaglineGap:
		return errors.New(errors.ErrCodeInvalidConfig, "profile %q: min_tagline_gap must be within [0, %d]", p.Name, p.TaglineGap)
	case p.WrapColumns < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "profile %q: wrap_columns must not be negative", p.Name)
	case p.WrapColumns == 0 && p.CharWidthRatio <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "profile %q: char_width_ratio is required when wrap_columns is 0", p.Name)
	case p.ImageWidthRatio < 0 || p.ImageWidthRatio > 1:
		return errors.New(errors.ErrCodeInvalidConfig, "profile %q: image_width_ratio must be within [0, 1]", p.Name)
	case p.MinImageSize <= 0 || p.MinImageSize > p.MaxImageWidth():
		return errors.New(errors.ErrCodeInvalidConfig, "profile %q: min_image_size must be within (0, %d]", p.Name, p.MaxImageWidth())
	case p.MaxShrinkSteps <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "profile %q: max_shrink_steps must be positive", p.Name)
	case p.ShrinkFactor <= 0 || p.ShrinkFactor >= 1:
		return errors.New(errors.ErrCodeInvalidConfig, "profile %q: shrink_factor must be within (0, 1)", p.Name)
	case p.MinBottomPadding < 0 || p.MinBottomPadding > c.BottomPadding:
		return errors.New(errors.ErrCodeInvalidConfig, "profile %q: min_bottom_padding must be within [0, %d]", p.Name, c.BottomPadding)
	case p.TitleTop() >= c.Height-c.BottomPadding:
		return errors.New(errors.ErrCodeInvalidConfig, "profile %q: header leaves no room for content", p.Name)
	}
	return nil
}
