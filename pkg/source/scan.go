package source

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/swipefish/swipecard/pkg/errors"
)

// Matcher extracts identifiers such as "R007" from illustration filenames.
// The prefix is matched case-insensitively and the number is zero-padded to
// Digits; anything after a separator (_, -, space or .) is ignored.
type Matcher struct {
	Prefix string `toml:"prefix"`
	Digits int    `toml:"digits"`
}

// DefaultMatcher matches R###.png.
func DefaultMatcher() Matcher { return Matcher{Prefix: "R", Digits: 3} }

// Validate checks the prefix and digit count.
func (m Matcher) Validate() error {
	if m.Prefix == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "illustration prefix must not be empty")
	}
	if m.Digits < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "illustration digits must be positive, got %d", m.Digits)
	}
	return nil
}

var patterns sync.Map // prefix -> *regexp.Regexp

func (m Matcher) pattern() *regexp.Regexp {
	if re, ok := patterns.Load(m.Prefix); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(m.Prefix) + `(\d+)(?:[_\-\s.].*)?\.png$`)
	patterns.Store(m.Prefix, re)
	return re
}

// Match returns the identifier of filename, which may be a path.
func (m Matcher) Match(filename string) (string, bool) {
	sub := m.pattern().FindStringSubmatch(filepath.Base(filename))
	if sub == nil {
		return "", false
	}
	num := sub[1]
	if pad := m.Digits - len(num); pad > 0 {
		num = strings.Repeat("0", pad) + num
	}
	return m.Prefix + num, true
}

// Illustration is a matched illustration file.
type Illustration struct {
	ID   string
	Path string
}

// Scan lists the illustrations in dir, sorted by identifier then filename.
// Subdirectories are not searched.
func Scan(dir string, m Matcher) ([]Illustration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetLoad, err, "read illustrations from %s", dir)
	}
	var out []Illustration
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if id, ok := m.Match(e.Name()); ok {
			out = append(out, Illustration{ID: id, Path: filepath.Join(dir, e.Name())})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ID != out[j].ID {
			return out[i].ID < out[j].ID
		}
		return out[i].Path < out[j].Path
	})
	return out, nil
}
