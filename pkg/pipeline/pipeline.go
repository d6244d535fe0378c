// Package pipeline provides the batch driver that turns illustrations into
// finished cards.
//
// # Architecture
//
// A batch has two stages:
//
//  1. Plan: pair every discovered illustration with its data row
//  2. Run: load, lay out, render and write each card on a bounded worker pool
//
// Per-card failures (missing row, unreadable illustration, layout overflow)
// are recorded in the [Summary] and logged with the card identifier; they
// never abort the batch. Only setup problems and context cancellation make
// [Runner.Run] return an error.
//
// # Usage
//
//	ills, _ := source.Scan(dir, source.DefaultMatcher())
//	jobs := pipeline.Plan(ills, records)
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	summary, err := runner.Run(ctx, jobs, pipeline.Options{
//	    Profile:  layout.Roles(),
//	    Style:    render.DefaultStyle(),
//	    Template: tmpl,
//	    OutDir:   "output",
//	})
package pipeline

import (
	"image"
	"io"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/swipefish/swipecard/pkg/errors"
	"github.com/swipefish/swipecard/pkg/fonts"
	"github.com/swipefish/swipecard/pkg/layout"
	"github.com/swipefish/swipecard/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWorkers processes cards one at a time.
	DefaultWorkers = 1

	// DefaultOutDir is where cards are written when no directory is given.
	DefaultOutDir = "output"
)

// =============================================================================
// Options - Batch Configuration
// =============================================================================

// Options contains the configuration shared by every card of a batch.
type Options struct {
	Profile   layout.Profile
	Style     render.Style
	TitleFont *fonts.Typeface
	BodyFont  *fonts.Typeface

	// Template is the background every card is drawn on.
	Template image.Image
	// TemplateHash identifies the template in cache keys.
	TemplateHash string

	OutDir  string
	Workers int
	// DryRun computes layouts without rendering or writing files.
	DryRun bool

	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Template == nil && !o.DryRun {
		return errors.New(errors.ErrCodeInvalidInput, "template is required")
	}
	if o.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "workers must not be negative, got %d", o.Workers)
	}
	if err := o.Profile.Validate(); err != nil {
		return err
	}
	if err := o.Style.Validate(); err != nil {
		return err
	}

	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.OutDir == "" {
		o.OutDir = DefaultOutDir
	}
	if o.TitleFont == nil {
		o.TitleFont = fonts.Builtin(fonts.Bold)
	}
	if o.BodyFont == nil {
		o.BodyFont = fonts.Builtin(fonts.Regular)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// =============================================================================
// Results
// =============================================================================

// Outcome is what happened to one card.
type Outcome string

const (
	OutcomeRendered Outcome = "rendered"
	OutcomeCached   Outcome = "cached"
	OutcomeDryRun   Outcome = "dry-run"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeOverflow Outcome = "overflow"
	OutcomeFailed   Outcome = "failed"
)

// CardResult records one processed card.
type CardResult struct {
	ID           string
	Title        string
	Illustration string
	Output       string // empty unless a file was written
	Outcome      Outcome
	Layout       *layout.Result // nil when no layout was computed
	Err          error
	Duration     time.Duration
}

// Tight reports whether the card fit only after corrective steps.
func (c CardResult) Tight() bool { return c.Layout != nil && c.Layout.Tight() }

// Summary contains the outcome of a batch.
type Summary struct {
	// Cards holds one entry per job, sorted by identifier then illustration.
	Cards []CardResult

	Rendered   int
	Cached     int
	DryRun     int
	Skipped    int
	Overflowed int
	Failed     int
	Tight      int

	Duration time.Duration
}

// Processed counts cards that produced output, or would have in a dry run.
func (s *Summary) Processed() int { return s.Rendered + s.Cached + s.DryRun }

// Problems counts cards that produced nothing.
func (s *Summary) Problems() int { return s.Skipped + s.Overflowed + s.Failed }

func summarize(cards []CardResult, elapsed time.Duration) *Summary {
	s := &Summary{Duration: elapsed}
	for _, c := range cards {
		if c.ID == "" {
			continue // never started
		}
		s.Cards = append(s.Cards, c)
		switch c.Outcome {
		case OutcomeRendered:
			s.Rendered++
		case OutcomeCached:
			s.Cached++
		case OutcomeDryRun:
			s.DryRun++
		case OutcomeSkipped:
			s.Skipped++
		case OutcomeOverflow:
			s.Overflowed++
		case OutcomeFailed:
			s.Failed++
		}
		if c.Tight() {
			s.Tight++
		}
	}
	sort.SliceStable(s.Cards, func(i, j int) bool {
		if s.Cards[i].ID != s.Cards[j].ID {
			return s.Cards[i].ID < s.Cards[j].ID
		}
		return s.Cards[i].Illustration < s.Cards[j].Illustration
	})
	return s
}

// =============================================================================
// Output Naming
// =============================================================================

// Slug makes a title safe for filenames. Characters other than letters,
// digits, underscores, whitespace and hyphens are dropped; runs of whitespace
// and hyphens become one underscore; leading and trailing underscores are
// trimmed. "Crypto Bro!" becomes "Crypto_Bro".
func Slug(title string) string {
	var b strings.Builder
	sep := false
	for _, r := range title {
		switch {
		case unicode.IsSpace(r) || r == '-':
			sep = true
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			sep = false
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "_")
}

// OutputName returns the card filename, e.g. "R001_Crypto_Bro.png".
func OutputName(id, title string) string {
	if s := Slug(title); s != "" {
		return id + "_" + s + ".png"
	}
	return id + ".png"
}
