package ui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

func (a *App) exportCmd() *cobra.Command {
	var toClipboard bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the chart as plain text",
		Long: `Print the seating chart as plain text, one display row per
line with the front row last, suitable for pasting into a document.

Example:
  pupitre export > chart.txt`,
		RunE: func(_ *cobra.Command, _ []string) error {
			g, _, err := a.loadSession(context.Background())
			if err != nil {
				return err
			}

			chart := PlainChart(g)
			if toClipboard {
				if err := clipboard.WriteAll(chart); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Println("Chart copied to clipboard")
				return nil
			}
			fmt.Print(chart)
			return nil
		},
	}

	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "Copy to the clipboard instead of stdout")

	return cmd
}
