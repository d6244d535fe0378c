package fonts

import (
	"os"
	"path/filepath"

	"github.com/flopp/go-findfont"

	"github.com/swipefish/swipecard/pkg/errors"
)

// Role is the job a font does on a card.
type Role struct {
	Name       string
	Style      Style
	Candidates []string
}

// Default candidate chains. Entries with a directory component are read as
// paths; bare file names are looked up in the system font directories.
var (
	DefaultBold = []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		"DejaVuSans-Bold.ttf",
		"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
		"Arial Bold.ttf",
		"arialbd.ttf",
	}
	DefaultRegular = []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"DejaVuSans.ttf",
		"/System/Library/Fonts/Supplemental/Arial.ttf",
		"Arial.ttf",
		"arial.ttf",
	}
	DefaultItalic = []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Oblique.ttf",
		"DejaVuSans-Oblique.ttf",
		"/System/Library/Fonts/Supplemental/Arial Italic.ttf",
		"Arial Italic.ttf",
		"ariali.ttf",
	}
)

// DefaultCandidates returns the default chain for style.
func DefaultCandidates(style Style) []string {
	switch style {
	case Bold:
		return DefaultBold
	case Italic:
		return DefaultItalic
	}
	return DefaultRegular
}

// Resolve returns the first candidate of role that loads, or the built-in Go
// font for the role's style. Every skipped candidate yields a FONT_RESOLUTION
// warning; warnings never stop resolution.
func Resolve(role Role) (*Typeface, []error) {
	var warnings []error
	for _, c := range role.Candidates {
		path, err := locate(c)
		if err != nil {
			warnings = append(warnings, errors.Wrap(errors.ErrCodeFontResolution, err, "%s font %q not found", role.Name, c))
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			warnings = append(warnings, errors.Wrap(errors.ErrCodeFontResolution, err, "%s font %q unreadable", role.Name, path))
			continue
		}
		tf, err := Parse(filepath.Base(path), role.Style, data)
		if err != nil {
			warnings = append(warnings, errors.Wrap(errors.ErrCodeFontResolution, err, "%s font %q unusable", role.Name, path))
			continue
		}
		tf.Source = path
		return tf, warnings
	}
	tf := Builtin(role.Style)
	warnings = append(warnings, errors.New(errors.ErrCodeFontResolution, "%s font: no candidate loaded, using built-in %s", role.Name, tf.Family))
	return tf, warnings
}

// locate turns a candidate into a readable path.
func locate(candidate string) (string, error) {
	if filepath.Base(candidate) != candidate {
		if _, err := os.Stat(candidate); err != nil {
			return "", err
		}
		return candidate, nil
	}
	return findfont.Find(candidate)
}
