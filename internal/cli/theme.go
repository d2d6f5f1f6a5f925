package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marsadembi/portfolio/internal/settings"
)

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the theme preference",
		Long:      "Show the stored theme preference, set it to dark or light, or toggle it.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE:      runTheme,
	}
}

func runTheme(cmd *cobra.Command, args []string) error {
	path, err := settings.DefaultPath()
	if err != nil {
		return err
	}
	store, err := settings.OpenFileStore(path)
	if err != nil {
		return err
	}
	prefs := settings.Load(store)

	if len(args) == 1 {
		if args[0] == "toggle" {
			if _, err := prefs.Toggle(); err != nil {
				return err
			}
		} else {
			t, err := settings.ParseTheme(args[0])
			if err != nil {
				return err
			}
			if err := prefs.SetTheme(t); err != nil {
				return err
			}
		}
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, map[string]string{"theme": string(prefs.Theme())})
	}

	fmt.Fprintf(out, "Theme: %s\n", prefs.Theme())
	return nil
}
