package cli

import (
	"errors"
	"fmt"

	"github.com/samvad-hq/samvad-http/internal/config"
	"github.com/samvad-hq/samvad-http/internal/journal"
	"github.com/spf13/cobra"
)

func newHistoryCommand(cfg *config.Config) *cobra.Command {
	var (
		limit  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently recorded exchanges",
		Long: `List exchanges saved with --record, newest first.

Examples:
  samvad-http history
  samvad-http history -n 3 -o yaml`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usagef("history takes no arguments")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(output)
			if err != nil {
				return err
			}
			if limit <= 0 {
				return usagef("-n must be positive")
			}

			store, err := journal.NewStore(cfg.JournalPath, journal.Options{
				TTL:             cfg.JournalTTL,
				CleanupInterval: cfg.JournalCleanupInterval,
			})
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}

			entries, err := store.Recent(limit)
			if err != nil {
				return errors.Join(fmt.Errorf("read journal: %w", err), store.Close())
			}
			if entries == nil {
				entries = []journal.Entry{}
			}
			return errors.Join(render(cmd.OutOrStdout(), format, entries), store.Close())
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of entries to show")
	cmd.Flags().StringVarP(&output, "output", "o", cfg.OutputFormat, "output format: json or yaml")
	return cmd
}
