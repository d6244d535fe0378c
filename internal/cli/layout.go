package cli

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/swipefish/swipecard/pkg/errors"
	"github.com/swipefish/swipecard/pkg/fonts"
	"github.com/swipefish/swipecard/pkg/layout"
	"github.com/swipefish/swipecard/pkg/render"
	"github.com/swipefish/swipecard/pkg/source"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	profileFlags
	csv     string
	title   string
	tagline string
}

// layoutCommand prints the boxes a card would be drawn with, without
// rendering it. Title and tagline come from the CSV row matching the
// illustration's identifier unless given explicitly.
func (c *CLI) layoutCommand() *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "layout <illustration>",
		Short: "Print the computed layout of one card",
		Example: `  swipecard layout raw/R001.png --csv roles.csv
  swipecard layout any.png --title "Crypto Bro" --tagline "Will explain the blockchain"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(args[0], &opts)
		},
	}

	opts.profileFlags.register(cmd)
	cmd.Flags().StringVar(&opts.csv, "csv", "", "CSV file to take title and tagline from")
	cmd.Flags().StringVar(&opts.title, "title", "", "title text (overrides the CSV)")
	cmd.Flags().StringVar(&opts.tagline, "tagline", "", "tagline text (overrides the CSV)")

	return cmd
}

func (c *CLI) runLayout(path string, opts *layoutOpts) error {
	profile, err := opts.resolve()
	if err != nil {
		return err
	}

	rec := source.Record{Title: opts.title, Tagline: opts.tagline}
	if opts.csv != "" {
		id, ok := profile.Source.Match(filepath.Base(path))
		if !ok {
			return errors.New(errors.ErrCodeInvalidInput, "%s does not match the %s identifier pattern", filepath.Base(path), profile.Name)
		}
		records, err := source.LoadRecords(opts.csv, profile.Source.Columns)
		if err != nil {
			return err
		}
		printWarnings(records.Warnings())
		row, err := records.Lookup(id)
		if err != nil {
			return err
		}
		if rec.Title == "" {
			rec.Title = row.Title
		}
		if rec.Tagline == "" {
			rec.Tagline = row.Tagline
		}
		rec.ID = id
	}
	if rec.Title == "" {
		return errors.New(errors.ErrCodeInvalidInput, "no title: pass --csv or --title")
	}

	illus, err := render.Load(path)
	if err != nil {
		return err
	}
	titleFont, bodyFont, warnings := profile.ResolveFonts()
	printWarnings(warnings)

	res, err := layout.Compute(profile.Layout, rec.Title, rec.Tagline, illus.Bounds().Size(), titleFont, bodyFont)
	if err != nil {
		return err
	}
	printLayout(profile.Name, rec, res, titleFont.Spec(res.Title.Size), bodyFont.Spec(res.Tagline.Size))
	return nil
}

func printLayout(profile string, rec source.Record, res layout.Result, titleSpec, bodySpec fonts.Spec) {
	fmt.Println(StyleTitle.Render(rec.Title))
	printKeyValue("profile", profile)
	if rec.ID != "" {
		printKeyValue("id", rec.ID)
	}
	printKeyValue("canvas", fmt.Sprintf("%dx%d", res.Canvas.Width, res.Canvas.Height))

	title := fmt.Sprintf("%s  %.0fpx", rect(res.Title.Box), res.Title.Size)
	if res.Title.Scaled {
		title += "  (scaled down)"
	}
	printKeyValue("title", title)
	printKeyValue("image", fmt.Sprintf("%s  scale %.3f", rect(res.Image.Box), res.Image.Scale))
	printKeyValue("tagline", fmt.Sprintf("%s  %d line(s)", rect(res.Tagline.Box), len(res.Tagline.Lines)))
	for _, l := range res.Tagline.Lines {
		printDetail("%s  %s", rect(l.Box), l.Text)
	}
	printKeyValue("title font", specString(titleSpec))
	printKeyValue("body font", specString(bodySpec))
	printKeyValue("bottom limit", fmt.Sprintf("%d", res.BottomLimit()))

	if res.Tight() {
		printWarning("tight fit: %d shrink step(s), bottom padding %d", res.Shrinks, res.BottomPadding)
	} else {
		printSuccess("fits without adjustment")
	}
}

func specString(s fonts.Spec) string {
	return fmt.Sprintf("%s %s %.1fpx", filepath.Base(s.Family), s.Style, s.Size)
}

func rect(r image.Rectangle) string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}
