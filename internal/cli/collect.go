package cli

import (
	"fmt"
	"os"

	"github.com/lucasnoah/typegate/internal/report"
	"github.com/spf13/cobra"
)

var collectCmd = &cobra.Command{
	Use:   "collect [paths...]",
	Short: "List the items a run would report, without invoking the checker",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := validateConfig(cfg); err != nil {
			return err
		}

		dir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		session, err := newSession(cfg, dir, args)
		if err != nil {
			return err
		}

		report.NewTerminal(cmd.OutOrStdout(), useColor(cmd.OutOrStdout())).Collected(session.Items())
		return nil
	},
}
