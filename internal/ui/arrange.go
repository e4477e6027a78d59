package ui

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/pupitre/internal/seating"
)

func (a *App) arrangeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arrange",
		Short: "Apply a bulk seating arrangement",
		Long: `Apply a bulk seating arrangement to the whole class.

Each arrangement reseats every student in one undoable step and
prints the resulting chart.

Example:
  pupitre arrange shuffle`,
	}
	cmd.AddCommand(a.arrangeSubCmd("shuffle", "Seat everyone randomly", func(g *seating.Grid) seating.Layout {
		return seating.ShuffleLayout(g, rand.New(rand.NewSource(time.Now().UnixNano())))
	}))
	cmd.AddCommand(a.arrangeSubCmd("name", "Seat alphabetically, front row first", func(g *seating.Grid) seating.Layout {
		return seating.OrderedLayout(g, seating.ByName)
	}))
	cmd.AddCommand(a.arrangeSubCmd("height", "Seat shortest in front", func(g *seating.Grid) seating.Layout {
		return seating.OrderedLayout(g, seating.ByHeight)
	}))
	cmd.AddCommand(a.arrangeSubCmd("gender", "Alternate genders along each row", func(g *seating.Grid) seating.Layout {
		return seating.AlternateGenderLayout(g)
	}))
	return cmd
}

func (a *App) arrangeSubCmd(name, short string, build func(*seating.Grid) seating.Layout) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			g, h, err := a.loadSession(ctx)
			if err != nil {
				return err
			}
			if len(g.Roster()) == 0 {
				return fmt.Errorf("roster is empty; add students first")
			}

			if err := seating.ApplyLayout(g, h, "Arrange: "+name, build(g)); err != nil {
				return fmt.Errorf("applying arrangement: %w", err)
			}
			if err := a.saveSession(ctx, g, h); err != nil {
				return err
			}

			PrintChart(g)
			return nil
		},
	}
}
