package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swipefish/swipecard/pkg/config"
	"github.com/swipefish/swipecard/pkg/layout"
)

func (c *CLI) profilesCommand() *cobra.Command {
	var flags profileFlags

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the available card profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := flags.load()
			if err != nil {
				return err
			}
			if path != "" {
				printInfo("Profiles from %s", path)
			}
			printProfiles(cfg)
			return nil
		},
	}
	flags.registerConfig(cmd)

	return cmd
}

func printProfiles(cfg *config.Config) {
	for _, name := range cfg.Names() {
		p, err := cfg.Profile(name)
		if err != nil {
			continue
		}
		label := name
		if name == cfg.Default {
			label += " (default)"
		}
		if _, builtin := layout.Builtin(name); builtin {
			label += " [builtin]"
		}
		printNewline()
		fmt.Println(StyleTitle.Render(label))
		printKeyValue("canvas", fmt.Sprintf("%dx%d", p.Layout.Canvas.Width, p.Layout.Canvas.Height))
		printKeyValue("text size", fmt.Sprintf("title %.0f / body %.0f (%s)", p.Layout.TitleSize, p.Layout.BodySize, p.Fonts.BodyStyle))
		printKeyValue("wrapping", wrapping(p.Layout))
		printKeyValue("files", exampleName(p))
		printKeyValue("columns", fmt.Sprintf("%s, %s, %s", p.Source.ID, p.Source.Columns.Title, p.Source.Tagline))
		printKeyValue("colors", fmt.Sprintf("text %s  cross %s  heart %s", p.Style.Text, p.Style.Cross, p.Style.Heart))
	}
}

func wrapping(p layout.Profile) string {
	if p.WrapColumns > 0 {
		return fmt.Sprintf("%d columns", p.WrapColumns)
	}
	return fmt.Sprintf("fit to width (char ratio %.2f)", p.CharWidthRatio)
}
