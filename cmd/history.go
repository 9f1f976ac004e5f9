package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"trimshare/pkg/config"
	"trimshare/pkg/history"
)

func buildHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently made clips",
		Long: `Lists the most recent trims recorded in the local history database.

History recording can be turned off in the config file:

  [history]
  enabled = false`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runHistory(limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of trims to show")

	return cmd
}

func runHistory(limit int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if !cfg.History.Enabled {
		fmt.Println("History recording is disabled in the config file.")
		return nil
	}
	if _, err := os.Stat(cfg.History.Path); err != nil {
		fmt.Println("No trims recorded yet.")
		return nil
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Recent(limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No trims recorded yet.")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"When", "Input", "Output", "Range", "CRF", "Size"})
	for _, r := range records {
		tw.AppendRow(table.Row{
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Input,
			r.Output,
			formatRange(r.Start, r.End),
			r.Quality,
			formatBytes(r.OutputBytes),
		})
	}
	tw.Render()

	return nil
}

func formatRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return "full"
	case start == "":
		return "start to " + end
	case end == "":
		return start + " to end"
	default:
		return start + " to " + end
	}
}
