package cmd

import "github.com/spf13/cobra"

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Edit settings interactively",
	Long:  "Open resurface straight on the settings form: vault, notes folder, recall file, provider, and API key.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return launchTUI(true)
	},
}
