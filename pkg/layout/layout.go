package layout

import (
	"image"
	"math"
	"strings"

	"github.com/swipefish/swipecard/pkg/errors"
)

const (
	// maxTitleRefine bounds the re-measurements after the proportional title
	// scale; hinting and kerning do not scale exactly linearly.
	maxTitleRefine  = 20
	titleRefineStep = 0.98

	// maxBodyRefine bounds the body size reductions when a single word is
	// wider than the padded width even at the narrowest column budget.
	maxBodyRefine = 20
)

// Compute lays out a card. illustration is the pixel size of the
// unscaled illustration. titleFont and bodyFont measure at any size.
func Compute(p Profile, title, tagline string, illustration image.Point, titleFont, bodyFont Measurer) (Result, error) {
	err := p.Validate()
	if err != nil {
		return Result{}, err
	}
	if illustration.X <= 0 || illustration.Y <= 0 {
		return Result{}, errors.New(errors.ErrCodeInvalidInput, "illustration has empty size %v", illustration)
	}

	r := Result{Canvas: p.Canvas, BottomPadding: p.Canvas.BottomPadding}
	r.Title, err = fitTitle(p, strings.ToUpper(title), titleFont)
	if err != nil {
		return Result{}, err
	}

	lines, exts, bodySize := wrapTagline(p, tagline, bodyFont)
	taglineHeight := 0
	if len(lines) > 0 {
		taglineHeight = blockHeight(exts, p.LineSpacing) + p.SafetyMargin
	}

	img, err := fitImage(p, &r, illustration, taglineHeight)
	if err != nil {
		return Result{}, err
	}
	r.Image = img

	tag, err := placeTagline(p, lines, exts, r.Image.Box.Max.Y, r.BottomLimit())
	if err != nil {
		return Result{}, err
	}
	tag.Size = bodySize
	r.Tagline = tag

	if err := r.Validate(p); err != nil {
		return Result{}, err
	}
	return r, nil
}

// fitTitle measures the upper-cased title and scales its size down until it
// fits the padded width. A title still too wide after the bounded refinement
// is an overflow.
func fitTitle(p Profile, text string, m Measurer) (TitleBlock, error) {
	avail := p.Canvas.PaddedWidth()
	size := p.TitleSize
	ext := m.Measure(text, size)
	if ext.Width > float64(avail) {
		size *= float64(avail) / ext.Width
		ext = m.Measure(text, size)
		for i := 0; ext.Width > float64(avail) && i < maxTitleRefine; i++ {
			size *= titleRefineStep
			ext = m.Measure(text, size)
		}
		if ext.Width > float64(avail) {
			return TitleBlock{}, &errors.OverflowError{Stage: "title", Needed: ceil(ext.Width), Available: avail}
		}
	}
	w, h := min(ceil(ext.Width), avail), ceil(ext.Height())
	x := p.Canvas.HorizontalPadding + (avail-w)/2
	y := p.TitleTop()
	return TitleBlock{
		TextLine: TextLine{Text: text, Box: image.Rect(x, y, x+w, y+h), Ascent: ext.Ascent, Bearing: ext.Bearing},
		Size:     size,
		Scaled:   size < p.TitleSize,
	}, nil
}

// wrapTagline wraps and measures the tagline. The column budget narrows
// while a measured line is wider than the padded width; if a single word is
// still too wide at half the budget the body size is reduced instead.
func wrapTagline(p Profile, text string, m Measurer) ([]string, []Extent, float64) {
	avail := float64(p.Canvas.PaddedWidth())
	size := p.BodySize
	columns := p.WrapColumns
	if columns == 0 {
		columns = estimateColumns(p.Canvas.PaddedWidth(), size, p.CharWidthRatio)
	}
	floor := max(1, columns/2)

	measure := func(lines []string) ([]Extent, float64) {
		exts := make([]Extent, len(lines))
		widest := 0.0
		for i, l := range lines {
			exts[i] = m.Measure(l, size)
			widest = max(widest, exts[i].Width)
		}
		return exts, widest
	}

	lines := Wrap(text, columns)
	exts, widest := measure(lines)
	for widest > avail && columns > floor {
		columns--
		lines = Wrap(text, columns)
		exts, widest = measure(lines)
	}
	for i := 0; widest > avail && i < maxBodyRefine; i++ {
		size *= math.Min(avail/widest, titleRefineStep)
		exts, widest = measure(lines)
	}
	return lines, exts, size
}

// fitImage scales the illustration into the region between the title and the
// tagline and runs the bounded overflow correction. It may lower
// r.BottomPadding and sets r.Shrinks.
func fitImage(p Profile, r *Result, size image.Point, taglineHeight int) (ImageBlock, error) {
	top := r.Title.Box.Max.Y + p.TitleGap
	maxW := p.MaxImageWidth()
	limit := func() int { return p.Canvas.Height - r.BottomPadding }
	budget := func() int { return limit() - taglineHeight - p.TaglineGap - top }

	floor := math.Min(float64(p.MinImageSize)/float64(max(size.X, size.Y)), 1)
	scale := math.Max(scaleToFit(size, maxW, budget(), p.AllowUpscale), floor)
	box := placeImage(p, size, scale, top)

	for steps := 0; box.Max.Y+p.TaglineGap+taglineHeight > limit(); {
		if steps >= p.MaxShrinkSteps || scale <= floor {
			over := box.Max.Y + p.TaglineGap + taglineHeight - limit()
			if r.BottomPadding-over < p.MinBottomPadding {
				return ImageBlock{}, &errors.OverflowError{
					Stage:     "correction",
					Needed:    box.Dy() + p.TaglineGap + taglineHeight,
					Available: p.Canvas.Height - p.MinBottomPadding - top,
				}
			}
			r.BottomPadding -= over
			break
		}
		next := scaleToFit(size, maxW, budget(), p.AllowUpscale)
		if next >= scale {
			next = scale * p.ShrinkFactor
		}
		scale = math.Max(next, floor)
		box = placeImage(p, size, scale, top)
		steps++
		r.Shrinks = steps
	}
	return ImageBlock{Box: box, Scale: scale}, nil
}

// scaleToFit returns the uniform scale fitting size into maxW x maxH.
func scaleToFit(size image.Point, maxW, maxH int, upscale bool) float64 {
	if maxW <= 0 || maxH <= 0 {
		return 0
	}
	s := math.Min(float64(maxW)/float64(size.X), float64(maxH)/float64(size.Y))
	if !upscale {
		s = math.Min(s, 1)
	}
	return s
}

// placeImage centres the scaled image horizontally at the top of its region.
func placeImage(p Profile, size image.Point, scale float64, top int) image.Rectangle {
	w := max(1, int(float64(size.X)*scale))
	h := max(1, int(float64(size.Y)*scale))
	x := p.Canvas.HorizontalPadding + (p.Canvas.PaddedWidth()-w)/2
	return image.Rect(x, top, x+w, top+h)
}

// placeTagline stacks the lines below the image, each centred on its own
// width, pulling the block upward when it would pass limit.
func placeTagline(p Profile, lines []string, exts []Extent, imageBottom, limit int) (TaglineBlock, error) {
	start := imageBottom + p.TaglineGap
	cx := p.Canvas.Width / 2
	if len(lines) == 0 {
		return TaglineBlock{Box: image.Rect(cx, start, cx, start)}, nil
	}

	height := blockHeight(exts, p.LineSpacing)
	if start+height > limit {
		pulled := limit - height
		if pulled < imageBottom+p.MinTaglineGap {
			return TaglineBlock{}, &errors.OverflowError{
				Stage:     "placement",
				Needed:    height,
				Available: limit - imageBottom - p.MinTaglineGap,
			}
		}
		start = pulled
	}

	avail := p.Canvas.PaddedWidth()
	tag := TaglineBlock{Lines: make([]TextLine, len(lines))}
	y := start
	for i, text := range lines {
		w, h := min(ceil(exts[i].Width), avail), ceil(exts[i].Height())
		x := p.Canvas.HorizontalPadding + (avail-w)/2
		line := TextLine{Text: text, Box: image.Rect(x, y, x+w, y+h), Ascent: exts[i].Ascent, Bearing: exts[i].Bearing}
		tag.Lines[i] = line
		tag.Box = tag.Box.Union(line.Box)
		y += h + p.LineSpacing
	}
	return tag, nil
}
