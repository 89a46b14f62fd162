package cli

import (
	"strings"

	"calpick/internal/locale"

	"github.com/spf13/cobra"
)

func newLocaleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locale [name]",
		Short: "List built-in locales, or print the resolved values of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				names := locale.Names()
				if app.Format == "text" {
					return writeOut(cmd, app, strings.Join(names, "\n"))
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"locales": names,
					"default": app.config().Locale,
				}})
			}

			// Unknown names come back with fuzzy suggestions in the message.
			v, err := app.values(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": v})
		},
	}
	return cmd
}
