package layout

import (
	"image"

	"github.com/swipefish/swipecard/pkg/errors"
)

// TextLine is one positioned line of text.
type TextLine struct {
	Text    string
	Box     image.Rectangle
	Ascent  float64
	Bearing float64
}

// Origin returns the pen position text should be drawn at so that its ink
// starts at the left edge of Box and its line box at the top.
func (l TextLine) Origin() (x, y float64) {
	return float64(l.Box.Min.X) + l.Bearing, float64(l.Box.Min.Y) + l.Ascent
}

// TitleBlock is the fitted title.
type TitleBlock struct {
	TextLine
	Size   float64
	Scaled bool // true when Size is below the nominal title size
}

// ImageBlock is the scaled illustration.
type ImageBlock struct {
	Box   image.Rectangle
	Scale float64
}

// TaglineBlock is the wrapped tagline.
type TaglineBlock struct {
	Lines []TextLine
	Size  float64
	Box   image.Rectangle // union of the line boxes
}

// Result is a complete card layout.
type Result struct {
	Canvas  Canvas
	Title   TitleBlock
	Image   ImageBlock
	Tagline TaglineBlock

	// BottomPadding is the padding in effect, lower than Canvas.BottomPadding
	// when the last-resort correction kicked in.
	BottomPadding int
	// Shrinks counts image shrink steps taken after the initial fit.
	Shrinks int
}

// BottomLimit is the lowest y the tagline may reach.
func (r Result) BottomLimit() int { return r.Canvas.Height - r.BottomPadding }

// PaddingReduced reports whether the bottom padding had to give way.
func (r Result) PaddingReduced() bool { return r.BottomPadding < r.Canvas.BottomPadding }

// Tight reports whether any corrective step was needed to fit the content.
func (r Result) Tight() bool { return r.Shrinks > 0 || r.PaddingReduced() }

// Validate checks the layout invariants against the gaps of p.
func (r Result) Validate(p Profile) error {
	bounds := r.Canvas.Bounds()
	blocks := []struct {
		name string
		box  image.Rectangle
	}{
		{"title", r.Title.Box},
		{"image", r.Image.Box},
		{"tagline", r.Tagline.Box},
	}
	for _, b := range blocks {
		if !b.box.In(bounds) {
			return errors.New(errors.ErrCodeLayoutOverflow, "%s box %v outside canvas %v", b.name, b.box, bounds)
		}
	}
	for i := range blocks {
		for j := i + 1; j < len(blocks); j++ {
			if blocks[i].box.Overlaps(blocks[j].box) {
				return errors.New(errors.ErrCodeLayoutOverflow, "%s box %v overlaps %s box %v",
					blocks[i].name, blocks[i].box, blocks[j].name, blocks[j].box)
			}
		}
	}
	if r.Title.Box.Max.Y+p.TitleGap > r.Image.Box.Min.Y {
		return errors.New(errors.ErrCodeLayoutOverflow, "title bottom %d + gap %d passes image top %d",
			r.Title.Box.Max.Y, p.TitleGap, r.Image.Box.Min.Y)
	}
	if r.Image.Box.Max.Y+p.MinTaglineGap > r.Tagline.Box.Min.Y {
		return errors.New(errors.ErrCodeLayoutOverflow, "image bottom %d + gap %d passes tagline top %d",
			r.Image.Box.Max.Y, p.MinTaglineGap, r.Tagline.Box.Min.Y)
	}
	if r.Tagline.Box.Max.Y > r.BottomLimit() {
		return errors.New(errors.ErrCodeLayoutOverflow, "tagline bottom %d passes limit %d",
			r.Tagline.Box.Max.Y, r.BottomLimit())
	}
	return nil
}
