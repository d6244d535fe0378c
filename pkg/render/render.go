package render

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/swipefish/swipecard/pkg/errors"
	"github.com/swipefish/swipecard/pkg/fonts"
	"github.com/swipefish/swipecard/pkg/layout"
)

// iconUnit is the header height the icon geometry below is drawn for.
const iconUnit = 80.0

// LayoutAndRender computes the layout for one card and draws it.
func LayoutAndRender(p layout.Profile, st Style, template image.Image, title, tagline string, illustration image.Image, titleFont, bodyFont *fonts.Typeface) (*image.NRGBA, layout.Result, error) {
	if template == nil || illustration == nil {
		return nil, layout.Result{}, errors.New(errors.ErrCodeInvalidInput, "template and illustration are required")
	}
	res, err := layout.Compute(p, title, tagline, illustration.Bounds().Size(), titleFont, bodyFont)
	if err != nil {
		return nil, layout.Result{}, err
	}
	img, err := Render(p, st, template, res, illustration, titleFont, bodyFont)
	if err != nil {
		return nil, layout.Result{}, err
	}
	return img, res, nil
}

// Render draws a computed layout. The template is not modified.
func Render(p layout.Profile, st Style, template image.Image, res layout.Result, illustration image.Image, titleFont, bodyFont *fonts.Typeface) (*image.NRGBA, error) {
	pal, err := st.palette()
	if err != nil {
		return nil, err
	}

	dc := gg.NewContextForImage(fitTemplate(template, res.Canvas))
	if p.HeaderHeight > 0 {
		drawHeader(dc, p, pal)
	}

	dc.SetColor(pal.text)
	if err := drawLines(dc, titleFont, res.Title.Size, []layout.TextLine{res.Title.TextLine}); err != nil {
		return nil, err
	}

	box := res.Image.Box
	scaled := imaging.Resize(illustration, box.Dx(), box.Dy(), imaging.Lanczos)
	dc.DrawImage(scaled, box.Min.X, box.Min.Y)

	dc.SetColor(pal.text)
	if err := drawLines(dc, bodyFont, res.Tagline.Size, res.Tagline.Lines); err != nil {
		return nil, err
	}

	return imaging.Clone(dc.Image()), nil
}

// fitTemplate returns a private copy of the template at canvas size.
// Aspect ratio is not preserved.
func fitTemplate(template image.Image, c layout.Canvas) *image.NRGBA {
	size := template.Bounds().Size()
	if size.X == c.Width && size.Y == c.Height {
		return imaging.Clone(template)
	}
	return imaging.Resize(template, c.Width, c.Height, imaging.Lanczos)
}

func drawLines(dc *gg.Context, tf *fonts.Typeface, size float64, lines []layout.TextLine) error {
	if len(lines) == 0 {
		return nil
	}
	face, err := tf.Face(size)
	if err != nil {
		return err
	}
	defer face.Close()

	dc.SetFontFace(face)
	for _, l := range lines {
		x, y := l.Origin()
		dc.DrawString(l.Text, x, y)
	}
	return nil
}

// drawHeader draws the grey X at the left and the red heart at the right of
// the header band, scaled to the header height.
func drawHeader(dc *gg.Context, p layout.Profile, pal palette) {
	s := float64(p.HeaderHeight) / iconUnit
	half := float64(p.HeaderHeight) / 2
	cy := float64(p.Canvas.TopPadding) + half

	cx := float64(p.Canvas.HorizontalPadding) + half
	arm := 25 * s
	dc.SetColor(pal.cross)
	dc.SetLineWidth(10 * s)
	dc.SetLineCap(gg.LineCapButt)
	dc.DrawLine(cx-arm, cy-arm, cx+arm, cy+arm)
	dc.Stroke()
	dc.DrawLine(cx+arm, cy-arm, cx-arm, cy+arm)
	dc.Stroke()

	hx := float64(p.Canvas.Width-p.Canvas.HorizontalPadding) - half
	r, off := 26*s, 10*s
	dc.SetColor(pal.heart)
	dc.DrawEllipse(hx-off-r/2, cy, r/2, r)
	dc.Fill()
	dc.DrawEllipse(hx+off+r/2, cy, r/2, r)
	dc.Fill()
	dc.MoveTo(hx-r-off, cy+5*s)
	dc.LineTo(hx+r+off, cy+5*s)
	dc.LineTo(hx, cy+r+35*s)
	dc.ClosePath()
	dc.Fill()
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Load decodes an image file, honouring EXIF orientation.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetLoad, err, "load %s", path)
	}
	return img, nil
}

// Decode decodes image data.
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetLoad, err, "decode image")
	}
	return img, nil
}
