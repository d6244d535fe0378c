package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/swipefish/swipecard/pkg/errors"
	"github.com/swipefish/swipecard/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for failure counts.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}

// printWarnings prints non-fatal problems such as skipped font candidates.
func printWarnings(warnings []error) {
	for _, w := range warnings {
		printWarning("%s", errors.UserMessage(w))
	}
}

// =============================================================================
// Batch Summary
// =============================================================================

// printSummary prints the outcome of a generate run: one line per card that
// needs attention, then the totals.
func printSummary(s *pipeline.Summary) {
	for _, c := range s.Cards {
		switch c.Outcome {
		case pipeline.OutcomeRendered, pipeline.OutcomeCached:
			if c.Tight() {
				printWarning("%s fit only after shrinking the illustration", c.ID)
				printFile(c.Output)
			}
		case pipeline.OutcomeSkipped, pipeline.OutcomeOverflow, pipeline.OutcomeFailed:
			printError("%s", problemLine(c))
		}
	}
	fmt.Println(summaryLine(s))
}

// problemLine describes a card that was not produced, prefixed with the
// error code when the cause carries one.
func problemLine(c pipeline.CardResult) string {
	msg := errors.UserMessage(c.Err)
	if code := errors.GetCode(c.Err); code != "" && !strings.HasPrefix(msg, string(code)) {
		msg = string(code) + ": " + msg
	}
	return fmt.Sprintf("%s %s: %s", c.ID, c.Outcome, msg)
}

// summaryLine renders the totals on a single line, omitting zero counts.
func summaryLine(s *pipeline.Summary) string {
	var parts []string
	add := func(n int, label string, style lipgloss.Style) {
		if n > 0 {
			parts = append(parts, style.Render(fmt.Sprintf("%d %s", n, label)))
		}
	}
	add(s.Rendered, "rendered", StyleSuccess)
	add(s.Cached, "cached", StyleSuccess)
	add(s.DryRun, "laid out", StyleNumber)
	add(s.Tight, "tight", StyleWarning)
	add(s.Skipped, "skipped", StyleWarning)
	add(s.Overflowed, "overflowed", StyleError)
	add(s.Failed, "failed", StyleError)
	if len(parts) == 0 {
		parts = append(parts, StyleDim.Render("nothing processed"))
	}

	icon := styleIconSuccess.Render(iconSuccess)
	if s.Problems() > 0 {
		icon = styleIconWarning.Render(iconWarning)
	}
	return icon + " " + strings.Join(parts, StyleDim.Render(" · ")) +
		StyleDim.Render(fmt.Sprintf(" (%s)", s.Duration.Round(time.Millisecond)))
}
