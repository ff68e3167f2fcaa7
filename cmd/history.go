package cmd

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jasonKoogler/iqc/internal/history"
	"github.com/jasonKoogler/iqc/internal/ui"
	"github.com/spf13/cobra"
)

var (
	historyLimit int

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "List recent generations, downloads and shares",
		RunE:  runHistory,
	}
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func historyRows(events []history.Event) [][]string {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		gen := ""
		if e.Generation > 0 {
			gen = strconv.FormatUint(e.Generation, 10)
		}

		detail := e.Path
		switch {
		case e.Error != "":
			detail = e.Error
		case detail == "":
			detail = e.URL
		}

		rows = append(rows, []string{humanize.Time(e.Timestamp), e.Action, gen, e.Status, detail})
	}
	return rows
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := requireContext(); err != nil {
		return err
	}
	if appContext.History == nil {
		return fmt.Errorf("history is not available")
	}

	events, err := appContext.History.Recent(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if len(events) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No history yet.")
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), ui.FormatTable(
		[]string{"WHEN", "ACTION", "GEN", "STATUS", "DETAIL"},
		historyRows(events),
	))
	return nil
}
