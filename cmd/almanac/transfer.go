package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/offbeam-labs/almanac/pkg/calendar"
	"github.com/offbeam-labs/almanac/pkg/ics"
	"github.com/offbeam-labs/almanac/pkg/transfer"
)

var (
	formatFlag  string
	horizonFlag int
)

// detectFormat infers the transfer format from the --format flag or, when
// the flag is empty, from the file extension.
func detectFormat(path string) (string, error) {
	if formatFlag != "" {
		return strings.ToLower(formatFlag), nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".csv":
		return "csv", nil
	case ".ics":
		return "ics", nil
	}
	return "", fmt.Errorf("cannot infer format from '%s', use --format", path)
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import events from a JSON or CSV file",
	Long: `Merge events from a JSON or CSV export into the stored collection.

Records are merged by id: an imported record with a known id replaces the
stored one, unknown ids are appended. Records that fail validation are
dropped silently and counted. Importing the same file twice is a no-op.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := detectFormat(args[0])
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read '%s': %w", args[0], err)
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		var result transfer.ImportResult
		switch format {
		case "json":
			result, err = transfer.ImportJSON(cmd.Context(), dbConn, data)
		case "csv":
			result, err = transfer.ImportCSV(cmd.Context(), dbConn, data)
		default:
			return fmt.Errorf("unsupported import format: %s", format)
		}
		if errors.Is(err, transfer.ErrNotArray) {
			return errors.New("import failed: the file does not contain a JSON array")
		}
		if errors.Is(err, transfer.ErrBadCSVHeader) {
			return errors.New("import failed: the CSV header must contain id,name,date")
		}
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Printf("Imported %d events (%d skipped).\n", result.Imported, result.Skipped)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export events to a JSON, CSV, or iCalendar file",
	Long: `Write the stored collection to a file (or stdout when no file is given).

The --horizon flag restricts the export to events within the given number
of months from today; 0 exports everything.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := ""
		if len(args) == 1 {
			target = args[0]
		}
		format := strings.ToLower(formatFlag)
		if target != "" {
			detected, err := detectFormat(target)
			if err == nil {
				format = detected
			}
		}
		if format == "" {
			format = "json"
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		events, err := calendar.ListEvents(cmd.Context(), dbConn)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		events = transfer.FilterByHorizon(events, time.Now(), horizonFlag)

		var out []byte
		switch format {
		case "json":
			out, err = transfer.ExportJSON(events)
		case "csv":
			out = transfer.ExportCSV(events)
		case "ics":
			out, err = ics.Export(events)
		default:
			return fmt.Errorf("unsupported export format: %s", format)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if target == "" {
			fmt.Print(string(out))
			return nil
		}
		if err := os.WriteFile(target, out, 0644); err != nil {
			return fmt.Errorf("failed to write '%s': %w", target, err)
		}
		fmt.Printf("Exported %d events to %s.\n", len(events), target)
		return nil
	},
}

func initTransferCmd() {
	importCmd.Flags().StringVar(&formatFlag, "format", "", "Import format: json or csv (inferred from the extension if omitted)")
	exportCmd.Flags().StringVar(&formatFlag, "format", "", "Export format: json, csv, or ics (default: json)")
	exportCmd.Flags().IntVar(&horizonFlag, "horizon", 0, "Limit the export to events within this many months (0 = all)")
}
