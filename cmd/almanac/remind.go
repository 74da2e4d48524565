package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/offbeam-labs/almanac/pkg/calendar"
	"github.com/offbeam-labs/almanac/pkg/notify"
)

var remindDateFlag string

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Show due reminders for today",
	Long: `Print the events occurring today that have not been reminded about
within the last hour, and mark them as notified. Intended to be run from a
shell prompt hook or a scheduler.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := time.Now()
		if remindDateFlag != "" {
			day, err := parseDay(remindDateFlag)
			if err != nil {
				return err
			}
			ref = day
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		pending, err := notify.Pending(cmd.Context(), dbConn, ref)
		if err != nil {
			return fmt.Errorf("failed to collect reminders: %w", err)
		}

		if len(pending) == 0 {
			return nil
		}

		fmt.Printf("Reminders for %s:\n", ref.Format(calendar.DateLayout))
		for _, ev := range pending {
			fmt.Printf("  [%s] %s\n", ev.Tag, ev.Name)
			if err := notify.MarkNotified(cmd.Context(), dbConn, ev.ID, ref); err != nil {
				return fmt.Errorf("failed to record reminder for '%s': %w", ev.Name, err)
			}
		}
		return nil
	},
}

func initRemindCmd() {
	remindCmd.Flags().StringVar(&remindDateFlag, "date", "", "Day to remind for in YYYY-MM-DD format (default: today)")
}
