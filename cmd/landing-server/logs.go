package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Its-donkey/BuddyBreak/internal/config"
	"github.com/Its-donkey/BuddyBreak/logging"
)

func newLogsCommand(f *flags) *cobra.Command {
	var (
		lines    int
		category string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print recent entries from the server log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.envFile)
			if err != nil {
				return err
			}
			dir := cfg.LogDir
			if v := strings.TrimSpace(f.logDir); v != "" {
				dir = v
			}
			if strings.TrimSpace(dir) == "" {
				return errors.New("no log directory: set LANDING_LOG_DIR or --log-dir")
			}

			var keep func(logging.Entry) bool
			if category != "" {
				keep = func(e logging.Entry) bool { return e.Category == category }
			}
			entries, err := logging.ReadRecentMatching(filepath.Join(dir, logFileName), lines, keep)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range entries {
				if asJSON {
					data, err := json.Marshal(e)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, string(data))
					continue
				}
				fmt.Fprintln(out, formatEntry(e))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of entries to read")
	cmd.Flags().StringVar(&category, "category", "", "only show entries in this category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON lines")
	return cmd
}

func formatEntry(e logging.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s [%s] %s", e.Timestamp.Format("2006-01-02 15:04:05"), e.Level, e.Category, e.Message)
	if e.RequestID != "" {
		fmt.Fprintf(&b, " request_id=%s", e.RequestID)
	}
	if e.Error != "" {
		fmt.Fprintf(&b, " error=%q", e.Error)
	}
	return b.String()
}
