package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/agenthooks/internal/eventlog"
	"github.com/ppiankov/agenthooks/internal/export"
)

var (
	tailLines      int
	watchFromStart bool
	exportDB       string
)

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logTailCmd)
	logCmd.AddCommand(logVerifyCmd)
	logCmd.AddCommand(logWatchCmd)
	logCmd.AddCommand(logExportCmd)
	logCmd.AddCommand(logQuarantineCmd)
	logTailCmd.Flags().IntVarP(&tailLines, "lines", "n", 10, "Number of recent records to show")
	logWatchCmd.Flags().BoolVar(&watchFromStart, "from-start", false, "Print records already in the log before following")
	logExportCmd.Flags().StringVar(&exportDB, "db", "", "SQLite database to write (required)")
	logExportCmd.MarkFlagRequired("db")
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Event log operations",
	Long: "Commands for inspecting and maintaining the JSON event log written by\n" +
		"log-command. Each takes an optional log path; the configured log is used\n" +
		"when omitted.",
}

var logTailCmd = &cobra.Command{
	Use:   "tail [path]",
	Short: "Show recent event log records",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogTail(cmd.OutOrStdout(), logPathArg(args), tailLines)
	},
}

var logVerifyCmd = &cobra.Command{
	Use:   "verify [path]",
	Short: "Check that the event log is a valid JSON array of objects",
	Long:  "Parses the event log and reports the record count.\nExits 0 if valid, 1 if the log is missing or corrupt.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogVerify(cmd.OutOrStdout(), logPathArg(args))
	},
}

var logWatchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Print records as they are appended",
	Long:  "Follows the event log and prints each new record as one JSON line.\nPress Ctrl+C to stop.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLogWatch,
}

var logExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Copy the event log into a SQLite database",
	Long: "Writes every record into an 'events' table keyed by log position.\n" +
		"Re-exporting the same log updates rows in place.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogExport(cmd.Context(), cmd.OutOrStdout(), logPathArg(args), exportDB)
	},
}

var logQuarantineCmd = &cobra.Command{
	Use:   "quarantine [path]",
	Short: "Move a corrupt event log aside",
	Long: "Renames a log that fails verification to <path>.corrupt-<unix time> so\n" +
		"the next log-command starts a fresh log. Refuses to move a valid log.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogQuarantine(cmd.OutOrStdout(), logPathArg(args), time.Now())
	},
}

func logPathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return state.cfg.EventLogPath(state.home)
}

func runLogTail(w io.Writer, path string, n int) error {
	if n < 0 {
		return fmt.Errorf("--lines must be >= 0, got %d", n)
	}
	records, err := eventlog.Load(path)
	if err != nil {
		return err
	}

	start := len(records) - n
	if start < 0 {
		start = 0
	}
	for _, rec := range records[start:] {
		out, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(out))
	}
	return nil
}

func runLogVerify(w io.Writer, path string) error {
	result := eventlog.Verify(path)
	if !result.Valid {
		return fmt.Errorf("verify %s: %s", path, result.Error)
	}
	fmt.Fprintf(w, "OK: %d records\n", result.Records)
	return nil
}

func runLogWatch(cmd *cobra.Command, args []string) error {
	path := logPathArg(args)
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	enc := json.NewEncoder(cmd.OutOrStdout())
	w := eventlog.NewWatcher(path, func(rec eventlog.EventRecord) {
		_ = enc.Encode(rec)
	}, func(err error) {
		state.logger.Warn("watch", "log", path, "error", err)
	})
	if watchFromStart {
		w.FromStart()
	}
	return w.Run(ctx)
}

func runLogExport(ctx context.Context, w io.Writer, path, dbPath string) error {
	records, err := eventlog.Load(path)
	if err != nil {
		return err
	}
	n, err := export.ToSQLite(ctx, dbPath, records)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "exported %d records to %s\n", n, dbPath)
	return nil
}

func runLogQuarantine(w io.Writer, path string, at time.Time) error {
	dst, err := eventlog.Quarantine(path, at)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "moved %s to %s\n", path, dst)
	return nil
}
