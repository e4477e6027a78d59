package ui

import (
	"context"
	"fmt"

	"github.com/javiermolinar/pupitre/internal/seating"
)

// loadSession restores the stored editing session, or starts a fresh grid
// sized from the config when nothing was saved yet.
func (a *App) loadSession(ctx context.Context) (*seating.Grid, *seating.History, error) {
	if err := a.ensureRepo(); err != nil {
		return nil, nil, err
	}
	sess, err := a.repo.LoadSession(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading session: %w", err)
	}
	if sess == nil {
		g, err := seating.NewGrid(a.config.Classroom.Rows, a.config.Classroom.Cols)
		if err != nil {
			return nil, nil, err
		}
		return g, seating.NewHistory(), nil
	}

	g, h, dropped, err := sess.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("rebuilding session: %w", err)
	}
	if len(dropped) > 0 {
		fmt.Println(formatWarn(fmt.Sprintf("Dropped %d stale seat assignment(s)", len(dropped))))
	}
	return g, h, nil
}

func (a *App) saveSession(ctx context.Context, g *seating.Grid, h *seating.History) error {
	if err := a.repo.SaveSession(ctx, seating.ExportSession(g, h)); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}
