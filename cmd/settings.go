package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/edupath/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change preferences",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		s, err := st.SettingsRepo().Load(cmd.Context())
		if err != nil {
			return err
		}
		for _, kv := range s.Pairs() {
			fmt.Printf("%-14s  %s\n", kv[0], kv[1])
		}
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:       "set KEY VALUE",
	Short:     "Change one preference",
	Long:      "Change one preference. KEY is one of dark_mode, notifications, language or font_size.",
	Args:      cobra.ExactArgs(2),
	ValidArgs: settings.Keys,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.SettingsRepo()
		current, err := repo.Load(cmd.Context())
		if err != nil {
			return err
		}
		next, err := current.Set(args[0], args[1])
		if err != nil {
			return err
		}
		if err := repo.Save(cmd.Context(), next); err != nil {
			return err
		}
		v, _ := next.Get(args[0])
		fmt.Printf("%s = %s\n", args[0], v)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
