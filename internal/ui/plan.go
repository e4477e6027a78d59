package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/pupitre/internal/llm"
	"github.com/javiermolinar/pupitre/internal/seating"
)

func (a *App) planCmd() *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "plan [goal]",
		Short: "Ask the LLM for a seating arrangement",
		Long: `Ask the configured LLM for a seating arrangement matching a
free-form goal, using the current roster and room shape.

Without --apply the suggestion is only printed.

Example:
  pupitre plan "separate Ana and Bruno, talkers up front" --apply`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := llm.NewClient(a.config.LLM.Provider, a.config.LLM.Model, a.config.LLM.BaseURL)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}
			planner := llm.NewPlanner(client)

			ctx := context.Background()
			g, h, err := a.loadSession(ctx)
			if err != nil {
				return err
			}
			if len(g.Roster()) == 0 {
				return fmt.Errorf("roster is empty; add students first")
			}

			fmt.Println(formatMuted("Asking for an arrangement..."))
			req := llm.SuggestRequest{
				Goal:             args[0],
				UseCompactPrompt: a.config.LLM.Provider != llm.ProviderCopilot && a.config.LLM.Provider != "",
			}
			suggestion, err := planner.Suggest(ctx, g, req)
			if err != nil {
				return fmt.Errorf("suggestion failed: %w", err)
			}

			printSuggestion(suggestion)

			if !apply {
				fmt.Println(formatMuted("\nRe-run with --apply to seat the class this way."))
				return nil
			}

			layout, warnings, err := suggestion.Layout(g)
			if err != nil {
				return fmt.Errorf("suggestion unusable: %w", err)
			}
			for _, w := range warnings {
				fmt.Println(formatWarn("  ⚠ " + w))
			}
			if err := seating.ApplyLayout(g, h, "Arrange: suggestion", layout); err != nil {
				return fmt.Errorf("applying arrangement: %w", err)
			}
			if err := a.saveSession(ctx, g, h); err != nil {
				return err
			}

			fmt.Println()
			PrintChart(g)
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Apply the suggested arrangement and save")

	return cmd
}

func printSuggestion(s *llm.Suggestion) {
	fmt.Println(formatHeader(fmt.Sprintf("Suggested arrangement (%d assignments)", len(s.Assignments))))
	for _, assignment := range s.Assignments {
		fmt.Printf("  (%d,%d)  %s\n", assignment.Row, assignment.Col, assignment.Student)
	}
	for _, w := range s.Warnings {
		fmt.Println(formatWarn("  ⚠ " + w))
	}
}
