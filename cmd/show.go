package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/hexwren/resurface/internal/config"
)

var flagRaw bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current recall note",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		data, err := os.ReadFile(cfg.RecallPath())
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("no recall note yet; run 'resurface generate' first")
			}
			return fmt.Errorf("reading recall note: %w", err)
		}

		if flagRaw {
			fmt.Print(string(data))
			return nil
		}

		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			fmt.Print(string(data))
			return nil
		}
		out, err := r.Render(string(data))
		if err != nil {
			fmt.Print(string(data))
			return nil
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&flagRaw, "raw", false, "print raw markdown without rendering")
}
