package layout

import (
	"testing"

	"github.com/swipefish/swipecard/pkg/errors"
)

func TestBuiltinProfilesValid(t *testing.T) {
	for _, name := range []string{ProfileRoles, ProfilePersonas} {
		p, ok := Builtin(name)
		if !ok {
			t.Fatalf("Builtin(%q) not found", name)
		}
		if p.Name != name {
			t.Errorf("Name = %q, want %q", p.Name, name)
		}
		if err := p.Validate(); err != nil {
			t.Errorf("%s: Validate() = %v", name, err)
		}
	}
	if _, ok := Builtin("villains"); ok {
		t.Error("Builtin should not know unknown profiles")
	}
}

func TestProfileDerivedValues(t *testing.T) {
	r := Roles()
	if got := r.TitleTop(); got != 200 {
		t.Errorf("TitleTop() = %d, want 200", got)
	}
	if got := r.MaxImageWidth(); got != 756 {
		t.Errorf("roles MaxImageWidth() = %d, want 756", got)
	}
	if got := Personas().MaxImageWidth(); got != 920 {
		t.Errorf("personas MaxImageWidth() = %d, want 920", got)
	}
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"zero canvas", func(p *Profile) { p.Canvas.Width = 0 }},
		{"padding eats width", func(p *Profile) { p.Canvas.HorizontalPadding = 540 }},
		{"negative gap", func(p *Profile) { p.TitleGap = -1 }},
		{"min gap above gap", func(p *Profile) { p.MinTaglineGap = p.TaglineGap + 1 }},
		{"estimate without ratio", func(p *Profile) { p.WrapColumns = 0; p.CharWidthRatio = 0 }},
		{"image ratio above one", func(p *Profile) { p.ImageWidthRatio = 1.5 }},
		{"floor wider than image", func(p *Profile) { p.MinImageSize = 2000 }},
		{"no shrink steps", func(p *Profile) { p.MaxShrinkSteps = 0 }},
		{"shrink factor one", func(p *Profile) { p.ShrinkFactor = 1 }},
		{"min padding above padding", func(p *Profile) { p.MinBottomPadding = 200 }},
		{"header fills canvas", func(p *Profile) { p.HeaderHeight = 1800 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Roles()
			tt.mutate(&p)
			err := p.Validate()
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}
