package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/swipefish/swipecard/pkg/errors"
	"github.com/swipefish/swipecard/pkg/fonts"
	"github.com/swipefish/swipecard/pkg/layout"
)

var (
	white = color.NRGBA{255, 255, 255, 255}
	green = color.NRGBA{0, 200, 0, 255}
)

func testProfile() layout.Profile { return layout.Roles() }

func TestLayoutAndRender(t *testing.T) {
	p := testProfile()
	tmpl := imaging.New(540, 960, white)
	illus := imaging.New(400, 300, green)

	img, res, err := LayoutAndRender(p, DefaultStyle(), tmpl, "Crypto Bro", "Buys the dip, then the dip buys him.",
		illus, fonts.Builtin(fonts.Bold), fonts.Builtin(fonts.Regular))
	if err != nil {
		t.Fatalf("LayoutAndRender() error: %v", err)
	}

	if got := img.Bounds().Size(); got != image.Pt(1080, 1920) {
		t.Errorf("canvas size = %v, want 1080x1920", got)
	}
	if got := tmpl.Bounds().Size(); got != image.Pt(540, 960) {
		t.Errorf("template was modified: size %v", got)
	}
	if tmpl.NRGBAAt(270, 480) != white {
		t.Error("template pixels were modified")
	}

	c := res.Image.Box.Min.Add(res.Image.Box.Size().Div(2))
	if got := img.NRGBAAt(c.X, c.Y); got != green {
		t.Errorf("image centre pixel = %v, want %v", got, green)
	}
	if got := img.NRGBAAt(5, 5); got != white {
		t.Errorf("corner pixel = %v, want template white", got)
	}
	if !hasInk(img, res.Title.Box) {
		t.Error("title box has no ink")
	}
	for _, l := range res.Tagline.Lines {
		if !hasInk(img, l.Box) {
			t.Errorf("tagline line %q has no ink", l.Text)
		}
	}
}

func TestRenderHeaderIcons(t *testing.T) {
	p := testProfile()
	tmpl := imaging.New(1080, 1920, white)
	img, _, err := LayoutAndRender(p, DefaultStyle(), tmpl, "T", "t", imaging.New(10, 10, green),
		fonts.Builtin(fonts.Bold), fonts.Builtin(fonts.Regular))
	if err != nil {
		t.Fatal(err)
	}

	// Centres of the X and the heart.
	cross := img.NRGBAAt(120, 120)
	if cross == white {
		t.Error("no cross drawn at header left")
	}
	heart := img.NRGBAAt(960, 135)
	if heart != (color.NRGBA{0xea, 0x54, 0x67, 0xff}) {
		t.Errorf("heart pixel = %v, want heart red", heart)
	}
}

func TestRenderWithoutHeader(t *testing.T) {
	p := testProfile()
	p.HeaderHeight = 0
	tmpl := imaging.New(1080, 1920, white)
	img, _, err := LayoutAndRender(p, DefaultStyle(), tmpl, "T", "t", imaging.New(10, 10, green),
		fonts.Builtin(fonts.Bold), fonts.Builtin(fonts.Regular))
	if err != nil {
		t.Fatal(err)
	}
	if got := img.NRGBAAt(960, 135); got != white {
		t.Errorf("header pixel = %v, want white", got)
	}
}

func TestLayoutAndRenderErrors(t *testing.T) {
	p := testProfile()
	bold, regular := fonts.Builtin(fonts.Bold), fonts.Builtin(fonts.Regular)

	if _, _, err := LayoutAndRender(p, DefaultStyle(), nil, "T", "t", imaging.New(10, 10, green), bold, regular); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil template: got %v", err)
	}

	bad := DefaultStyle()
	bad.Heart = "pink"
	if _, _, err := LayoutAndRender(p, bad, imaging.New(10, 10, white), "T", "t", imaging.New(10, 10, green), bold, regular); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad color: got %v", err)
	}
}

func TestStyleValidate(t *testing.T) {
	tests := []struct {
		name    string
		style   Style
		wantErr bool
	}{
		{"default", DefaultStyle(), false},
		{"short hex", Style{Text: "#000", Cross: "#999", Heart: "#f00"}, false},
		{"missing hash", Style{Text: "000000", Cross: "#999999", Heart: "#ff0000"}, true},
		{"empty", Style{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.style.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data, err := EncodePNG(imaging.New(3, 2, green))
	if err != nil {
		t.Fatal(err)
	}
	img, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got != image.Pt(3, 2) {
		t.Errorf("decoded size = %v", got)
	}

	if _, err := Decode([]byte("nope")); !errors.Is(err, errors.ErrCodeAssetLoad) {
		t.Errorf("Decode(garbage) = %v, want %s", err, errors.ErrCodeAssetLoad)
	}
	if _, err := Load("/nonexistent/R001.png"); !errors.Is(err, errors.ErrCodeAssetLoad) {
		t.Errorf("Load(missing) = %v, want %s", err, errors.ErrCodeAssetLoad)
	}
}

func hasInk(img *image.NRGBA, box image.Rectangle) bool {
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			if img.NRGBAAt(x, y) != white {
				return true
			}
		}
	}
	return false
}
