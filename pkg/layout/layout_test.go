package layout

import (
	"image"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/swipefish/swipecard/pkg/errors"
)

// monoMeasurer treats every rune as ratio*size wide and every line as size
// tall (3/4 ascent, 1/4 descent, both exact in binary).
type monoMeasurer struct{ ratio float64 }

func (m monoMeasurer) Measure(text string, size float64) Extent {
	return Extent{
		Width:   float64(utf8.RuneCountInString(text)) * size * m.ratio,
		Ascent:  size * 0.75,
		Descent: size * 0.25,
	}
}

var mono = monoMeasurer{ratio: 0.5}

// stackedTagline returns n twenty-letter words, which wrap one per line at
// the 26 roles columns.
func stackedTagline(n int) string {
	return strings.TrimSpace(strings.Repeat("abcdefghijklmnopqrst ", n))
}

func TestComputeInvariants(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		title   string
		tagline string
		size    image.Point
	}{
		{"roles square", Roles(), "Crypto Bro", "Buys the dip, sells the rip, explains both at dinner.", image.Pt(1024, 1024)},
		{"roles small image", Roles(), "Intern", "Fetches coffee.", image.Pt(200, 150)},
		{"roles tall image", Roles(), "Gym Rat", "Never skips leg day, never stops talking about it.", image.Pt(600, 2400)},
		{"roles wide image", Roles(), "Landlord", "Rent is due.", image.Pt(3000, 600)},
		{"roles empty tagline", Roles(), "Nobody", "", image.Pt(800, 800)},
		{"roles empty title", Roles(), "", "Still has a tagline.", image.Pt(800, 800)},
		{"personas square", Personas(), "The Optimist", "Thinks every Monday is a fresh start and every bug is a feature.", image.Pt(1024, 1024)},
		{"personas long tagline", Personas(), "The Talker", stackedTagline(8), image.Pt(1024, 1536)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Compute(tt.profile, tt.title, tt.tagline, tt.size, mono, mono)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if err := r.Validate(tt.profile); err != nil {
				t.Errorf("Validate() = %v", err)
			}
			if r.Title.Box.Overlaps(r.Image.Box) || r.Image.Box.Overlaps(r.Tagline.Box) || r.Title.Box.Overlaps(r.Tagline.Box) {
				t.Errorf("boxes overlap: title %v image %v tagline %v", r.Title.Box, r.Image.Box, r.Tagline.Box)
			}
			if r.Tagline.Box.Max.Y > tt.profile.Canvas.Height-r.BottomPadding {
				t.Errorf("tagline bottom %d passes limit %d", r.Tagline.Box.Max.Y, tt.profile.Canvas.Height-r.BottomPadding)
			}
			if r.Image.Box.Min.Y != r.Title.Box.Max.Y+tt.profile.TitleGap {
				t.Errorf("image top = %d, want title bottom + gap = %d", r.Image.Box.Min.Y, r.Title.Box.Max.Y+tt.profile.TitleGap)
			}
		})
	}
}

func TestComputeIdempotent(t *testing.T) {
	p := Personas()
	a, err := Compute(p, "Crypto Bro", "Buys the dip, sells the rip.", image.Pt(900, 1200), mono, mono)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	b, err := Compute(p, "Crypto Bro", "Buys the dip, sells the rip.", image.Pt(900, 1200), mono, mono)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Compute() not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestComputeUpperCasesTitle(t *testing.T) {
	r, err := Compute(Roles(), "Crypto Bro", "", image.Pt(100, 100), mono, mono)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if r.Title.Text != "CRYPTO BRO" {
		t.Errorf("Title.Text = %q, want %q", r.Title.Text, "CRYPTO BRO")
	}
	if r.Title.Scaled {
		t.Error("short title should keep its nominal size")
	}
	if got, want := r.Title.Box.Min.Y, Roles().TitleTop(); got != want {
		t.Errorf("title top = %d, want %d", got, want)
	}
}

func TestComputeTitleOverflow(t *testing.T) {
	p := Roles()
	title := "Extraordinarily Long Title Name"
	r, err := Compute(p, title, "tagline", image.Pt(500, 500), mono, mono)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if !r.Title.Scaled || r.Title.Size >= p.TitleSize {
		t.Errorf("title size = %v, want below %v", r.Title.Size, p.TitleSize)
	}
	avail := float64(p.Canvas.PaddedWidth())
	if w := mono.Measure(strings.ToUpper(title), r.Title.Size).Width; w > avail {
		t.Errorf("title width at fitted size = %v, want <= %v", w, avail)
	}
	if r.Title.Box.Min.X < p.Canvas.HorizontalPadding || r.Title.Box.Max.X > p.Canvas.Width-p.Canvas.HorizontalPadding {
		t.Errorf("title box %v outside padded width", r.Title.Box)
	}
}

// rigidMeasurer reports the same width at every size, so no font size
// reduction can make the text narrower.
type rigidMeasurer struct{ width float64 }

func (m rigidMeasurer) Measure(_ string, size float64) Extent {
	return Extent{Width: m.width, Ascent: size * 0.75, Descent: size * 0.25}
}

func TestComputeTitleTooWide(t *testing.T) {
	p := Roles()
	avail := p.Canvas.PaddedWidth()
	_, err := Compute(p, "Crypto Bro", "tagline", image.Pt(500, 500), rigidMeasurer{width: float64(avail + 50)}, mono)
	if !errors.Is(err, errors.ErrCodeLayoutOverflow) {
		t.Fatalf("Compute() = %v, want %s", err, errors.ErrCodeLayoutOverflow)
	}
	var o *errors.OverflowError
	if !errors.As(err, &o) {
		t.Fatalf("error %T is not an OverflowError", err)
	}
	if o.Stage != "title" || o.Needed != avail+50 || o.Available != avail {
		t.Errorf("overflow = %+v, want title stage needing %d of %d", o, avail+50, avail)
	}
}

func TestComputeTaglineOverflowShrinksImage(t *testing.T) {
	p := Roles()
	size := image.Pt(1000, 4000)

	short, err := Compute(p, "Gym Rat", "Lifts.", size, mono, mono)
	if err != nil {
		t.Fatalf("Compute(short) error = %v", err)
	}
	long, err := Compute(p, "Gym Rat", stackedTagline(9), size, mono, mono)
	if err != nil {
		t.Fatalf("Compute(long) error = %v", err)
	}

	if len(long.Tagline.Lines) != 9 {
		t.Fatalf("long tagline lines = %d, want 9", len(long.Tagline.Lines))
	}
	if long.Image.Box.Dy() >= short.Image.Box.Dy() {
		t.Errorf("image height with long tagline = %d, want below %d", long.Image.Box.Dy(), short.Image.Box.Dy())
	}
	if long.Tagline.Box.Max.Y > long.BottomLimit() {
		t.Errorf("tagline clipped: bottom %d > limit %d", long.Tagline.Box.Max.Y, long.BottomLimit())
	}
	for i, l := range long.Tagline.Lines {
		if l.Text != "abcdefghijklmnopqrst" {
			t.Errorf("line %d = %q, want a single word", i, l.Text)
		}
	}
}

func TestComputeExtremeAspectRatio(t *testing.T) {
	p := Roles()
	tests := []struct {
		name  string
		size  image.Point
		width bool // width binds first
	}{
		{"wide 10:1", image.Pt(5000, 500), true},
		{"tall 1:10", image.Pt(500, 5000), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Compute(p, "Aspect", "Ratio test.", tt.size, mono, mono)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			box := r.Image.Box
			if tt.width {
				if box.Dx() < p.MaxImageWidth()-1 || box.Dx() > p.MaxImageWidth() {
					t.Errorf("width = %d, want %d", box.Dx(), p.MaxImageWidth())
				}
			} else {
				budget := r.BottomLimit() - r.Tagline.Box.Dy() - p.SafetyMargin - p.TaglineGap - box.Min.Y
				if box.Dy() < budget-1 || box.Dy() > budget {
					t.Errorf("height = %d, want %d", box.Dy(), budget)
				}
			}
			left := box.Min.X - p.Canvas.HorizontalPadding
			right := p.Canvas.Width - p.Canvas.HorizontalPadding - box.Max.X
			if d := left - right; d < -1 || d > 1 {
				t.Errorf("image not centred: left margin %d, right margin %d", left, right)
			}
		})
	}
}

func TestComputeNoUpscale(t *testing.T) {
	r, err := Compute(Roles(), "Tiny", "Small art.", image.Pt(120, 90), mono, mono)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if r.Image.Scale != 1 || r.Image.Box.Dx() != 120 || r.Image.Box.Dy() != 90 {
		t.Errorf("image = %v scale %v, want natural 120x90", r.Image.Box, r.Image.Scale)
	}

	p := Roles()
	p.AllowUpscale = true
	r, err = Compute(p, "Tiny", "Small art.", image.Pt(120, 90), mono, mono)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if r.Image.Scale <= 1 {
		t.Errorf("upscale allowed: scale = %v, want > 1", r.Image.Scale)
	}
}

func TestComputeReducesBottomPadding(t *testing.T) {
	p := Roles()
	p.MinImageSize = 200

	r, err := Compute(p, "Crypto Bro", stackedTagline(17), image.Pt(1000, 1000), mono, mono)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if r.Image.Box.Dy() != 200 {
		t.Errorf("image height = %d, want floor 200", r.Image.Box.Dy())
	}
	if r.BottomPadding != 44 {
		t.Errorf("BottomPadding = %d, want 44", r.BottomPadding)
	}
	if !r.PaddingReduced() || !r.Tight() {
		t.Error("layout should report reduced padding")
	}
	if err := r.Validate(p); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestComputeOverflow(t *testing.T) {
	_, err := Compute(Roles(), "Crypto Bro", stackedTagline(18), image.Pt(1000, 1000), mono, mono)
	if err == nil {
		t.Fatal("Compute() should fail when the tagline cannot fit")
	}
	if !errors.Is(err, errors.ErrCodeLayoutOverflow) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeLayoutOverflow)
	}
}

func TestComputeNarrowsColumns(t *testing.T) {
	wide := monoMeasurer{ratio: 0.8}
	p := Roles()
	r, err := Compute(p, "Wide", "lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod", image.Pt(400, 400), wide, wide)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if r.Tagline.Size != p.BodySize {
		t.Errorf("body size = %v, want nominal %v", r.Tagline.Size, p.BodySize)
	}
	for _, l := range r.Tagline.Lines {
		if l.Box.Dx() > p.Canvas.PaddedWidth() {
			t.Errorf("line %q width %d exceeds padded width", l.Text, l.Box.Dx())
		}
		if w := wide.Measure(l.Text, r.Tagline.Size).Width; w > float64(p.Canvas.PaddedWidth()) {
			t.Errorf("line %q measures %v", l.Text, w)
		}
	}
}

func TestComputeShrinksBodyForHugeGlyphs(t *testing.T) {
	huge := monoMeasurer{ratio: 2}
	p := Roles()
	r, err := Compute(p, "Huge", "abcdefghijklmnopqrstuvwxyz", image.Pt(400, 400), mono, huge)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if r.Tagline.Size >= p.BodySize {
		t.Errorf("body size = %v, want below %v", r.Tagline.Size, p.BodySize)
	}
	for _, l := range r.Tagline.Lines {
		if w := huge.Measure(l.Text, r.Tagline.Size).Width; w > float64(p.Canvas.PaddedWidth()) {
			t.Errorf("line %q measures %v", l.Text, w)
		}
	}
}

func TestComputeLinesCentredIndependently(t *testing.T) {
	p := Roles()
	r, err := Compute(p, "Centre", "a much longer first line here and short", image.Pt(400, 400), mono, mono)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if len(r.Tagline.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(r.Tagline.Lines))
	}
	a, b := r.Tagline.Lines[0].Box, r.Tagline.Lines[1].Box
	if a.Dx() == b.Dx() {
		t.Fatal("test needs lines of different widths")
	}
	for _, box := range []image.Rectangle{a, b} {
		if d := (box.Min.X + box.Max.X) - p.Canvas.Width; d < -1 || d > 1 {
			t.Errorf("line box %v not centred", box)
		}
	}
	if b.Min.Y != a.Max.Y+p.LineSpacing {
		t.Errorf("second line top = %d, want %d", b.Min.Y, a.Max.Y+p.LineSpacing)
	}
}

func TestComputeRejectsEmptyIllustration(t *testing.T) {
	_, err := Compute(Roles(), "T", "t", image.Point{}, mono, mono)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want %v", err, errors.ErrCodeInvalidInput)
	}
}

func TestPlaceTaglinePullsUp(t *testing.T) {
	p := Roles()
	exts := []Extent{{Width: 100, Ascent: 48, Descent: 16}, {Width: 80, Ascent: 48, Descent: 16}}
	height := blockHeight(exts, p.LineSpacing) // 138

	tests := []struct {
		name        string
		imageBottom int
		limit       int
		wantTop     int
		wantErr     bool
	}{
		{"room below", 1000, 1840, 1040, false},
		{"pulled into gap", 1000, 1000 + 30 + height, 1030, false},
		{"pulled to minimum gap", 1000, 1000 + 20 + height, 1020, false},
		{"overlaps image", 1000, 1000 + 10 + height, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, err := placeTagline(p, []string{"first", "second"}, exts, tt.imageBottom, tt.limit)
			if (err != nil) != tt.wantErr {
				t.Fatalf("placeTagline() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeLayoutOverflow) {
					t.Errorf("error = %v, want overflow", err)
				}
				return
			}
			if tag.Box.Min.Y != tt.wantTop {
				t.Errorf("top = %d, want %d", tag.Box.Min.Y, tt.wantTop)
			}
			if tag.Box.Max.Y > tt.limit {
				t.Errorf("bottom = %d, want <= %d", tag.Box.Max.Y, tt.limit)
			}
		})
	}
}
