package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swipefish/swipecard/pkg/fonts"
)

func (c *CLI) fontsCommand() *cobra.Command {
	var flags profileFlags

	cmd := &cobra.Command{
		Use:   "fonts",
		Short: "Show the fonts a profile resolves to",
		Long: `Fonts walks the profile's candidate list for each text role and reports
the file that will be used. Candidates that could not be loaded are listed as
warnings; when none loads, a built-in Go font is used instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := flags.resolve()
			if err != nil {
				return err
			}
			for _, role := range []fonts.Role{profile.TitleRole(), profile.BodyRole()} {
				tf, warnings := fonts.Resolve(role)
				printFont(role, tf)
				printWarnings(warnings)
			}
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func printFont(role fonts.Role, tf *fonts.Typeface) {
	label := fmt.Sprintf("%s (%s)", role.Name, role.Style)
	if tf.IsBuiltin() {
		printKeyValue(label, tf.Family+" [builtin]")
		return
	}
	printKeyValue(label, tf.Family)
	printFile(tf.Source)
}
