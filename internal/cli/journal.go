package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/chainrig/internal/journal"
)

var tailLines int

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalVerifyCmd)
	journalCmd.AddCommand(journalTailCmd)
	journalTailCmd.Flags().IntVarP(&tailLines, "lines", "n", 10, "Number of recent entries to show")
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Operation journal commands",
	Long:  "Commands for verifying and inspecting the hash-chained operation journal.",
}

var journalVerifyCmd = &cobra.Command{
	Use:   "verify [path]",
	Short: "Verify hash chain integrity of the journal",
	Long:  "Walks the JSONL journal and validates that every entry's prev_hash\nmatches the SHA-256 of the previous entry. Exits 0 if valid, 1 if tampered.\nDefaults to the configured journal.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJournalVerify,
}

var journalTailCmd = &cobra.Command{
	Use:   "tail [path]",
	Short: "Show recent journal entries",
	Long:  "Reads the last N entries from the JSONL journal and prints them.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJournalTail,
}

func journalPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if p := settings().Journal; p != "" {
		return p, nil
	}
	return "", fmt.Errorf("no journal path given and journaling is disabled")
}

func runJournalVerify(cmd *cobra.Command, args []string) error {
	path, err := journalPath(args)
	if err != nil {
		return err
	}

	result := journal.Verify(path)
	if flagFormat == "json" {
		if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	}
	if !result.Valid {
		return fmt.Errorf("journal verification failed at line %d: %s", result.ErrorLine, result.Error)
	}
	if flagFormat != "json" {
		fmt.Fprintf(cmd.OutOrStdout(), "OK: %d entries verified\n", result.Lines)
	}
	return nil
}

func runJournalTail(cmd *cobra.Command, args []string) error {
	path, err := journalPath(args)
	if err != nil {
		return err
	}

	entries, err := journal.Tail(path, tailLines)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagFormat == "json" {
		return writeJSON(out, entries)
	}
	for _, e := range entries {
		dry := ""
		if e.DryRun {
			dry = " (dry run)"
		}
		fmt.Fprintf(out, "%s %-22s %-9s %-7s %s%s\n", e.Timestamp, e.Op, e.Status, e.Level, e.Message, dry)
	}
	return nil
}
