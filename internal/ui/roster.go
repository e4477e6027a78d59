package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/pupitre/internal/seating"
)

func (a *App) rosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage the class roster",
	}
	cmd.AddCommand(a.rosterAddCmd())
	cmd.AddCommand(a.rosterListCmd())
	cmd.AddCommand(a.rosterRemoveCmd())
	return cmd
}

func (a *App) rosterAddCmd() *cobra.Command {
	var (
		externalID string
		gender     string
		height     int
		notes      string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a student to the roster",
		Long: `Add a student to the roster. The student starts unseated;
seat them in the TUI or with an arrangement.

Example:
  pupitre roster add "Ana García" --gender=female --height=152`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			student, err := seating.NewStudent(args[0], externalID, seating.Gender(gender), height, notes)
			if err != nil {
				return err
			}

			ctx := context.Background()
			g, h, err := a.loadSession(ctx)
			if err != nil {
				return err
			}
			if err := g.AddStudent(student); err != nil {
				return fmt.Errorf("adding student: %w", err)
			}
			if err := a.saveSession(ctx, g, h); err != nil {
				return err
			}

			fmt.Printf("Added %s (%d students on the roster)\n", student.Name, len(g.Roster()))
			return nil
		},
	}

	cmd.Flags().StringVar(&externalID, "id", "", "School-assigned student number")
	cmd.Flags().StringVar(&gender, "gender", "unset", "Gender: male, female or unset")
	cmd.Flags().IntVar(&height, "height", 0, "Height in centimeters")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes (e.g. 'needs front row')")

	return cmd
}

func (a *App) rosterListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the roster with seat positions",
		RunE: func(_ *cobra.Command, _ []string) error {
			g, _, err := a.loadSession(context.Background())
			if err != nil {
				return err
			}
			PrintRoster(g)
			return nil
		},
	}
}

func (a *App) rosterRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [name]",
		Short: "Remove a student from the roster",
		Long: `Remove a student from the roster, vacating their seat.

The student may be referenced by uuid or by name; close-enough
spellings resolve when they are unambiguous.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			g, h, err := a.loadSession(ctx)
			if err != nil {
				return err
			}

			student, err := g.ResolveStudent(args[0])
			if err != nil {
				return err
			}
			if student.SeatID != "" {
				h.Record("Remove: "+student.Name, g)
			}
			if err := g.RemoveStudent(student.UUID); err != nil {
				return fmt.Errorf("removing student: %w", err)
			}
			g.Resync()

			if err := a.saveSession(ctx, g, h); err != nil {
				return err
			}
			fmt.Printf("Removed %s (%d students remain)\n", student.Name, len(g.Roster()))
			return nil
		},
	}
}
