package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/javiermolinar/pupitre/internal/seating"
)

const reviewerSystemPrompt = `You are a minimalist classroom layout analyst. Output ONLY the exact format shown - no markdown, no extra text. Be extremely concise.`

const reviewerPromptTemplate = `Analyze this seating chart and output EXACTLY this format (no markdown, no code blocks):

THEME: [ 2-4 word theme ]

⚠️  FRONT ROW: One sentence about who sits nearest the board and whether that matches their notes.
📉 CLUSTERING: One sentence about grouping by gender or empty pockets.
🧠 UNSEATED: Mention students without a seat, if any.

SUGGESTION:
➜  First specific seat change.
➜  Second specific seat change.

Data Format:
- Rows are numbered 1 (back) to %d (front, nearest the board)
- "-" = empty seat, "x" = removed seat

Seating chart:
%s

Unseated students:
%s

Rules:
- Use the exact emoji prefixes shown (⚠️, 📉, 🧠, ➜)
- Keep each line under 70 characters
- Refer to seats as (row, col)
- If no issue exists for a category, omit that line
- Output plain text only, no markdown formatting`

// Reviewer provides an LLM-based critique of the current arrangement.
type Reviewer struct {
	client Client
}

// NewReviewer creates a new Reviewer with the given LLM client.
func NewReviewer(client Client) *Reviewer {
	return &Reviewer{client: client}
}

// ReviewChart sends the current arrangement to the LLM for a short critique.
func (r *Reviewer) ReviewChart(ctx context.Context, g *seating.Grid) (string, error) {
	prompt := fmt.Sprintf(reviewerPromptTemplate,
		g.Rows(),
		formatChart(g),
		formatUnseated(g),
	)

	return r.client.Chat(ctx, []Message{
		{Role: "system", Content: reviewerSystemPrompt},
		{Role: "user", Content: prompt},
	})
}

// formatChart renders the grid one display row per line, back row first.
func formatChart(g *seating.Grid) string {
	var sb strings.Builder
	for dr := 1; dr <= g.Rows(); dr++ {
		sb.WriteString(fmt.Sprintf("Row %d:", dr))
		for dc := 1; dc <= g.Cols(); dc++ {
			row, col := seating.ToInternal(g.Rows(), dr, dc)
			seat := g.FindSeat(seating.SeatID(row, col))
			switch {
			case seat == nil || seat.Deleted:
				sb.WriteString(" [x]")
			case seat.Occupant == nil:
				sb.WriteString(" [-]")
			default:
				sb.WriteString(" [" + seat.Occupant.Name + "]")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatUnseated(g *seating.Grid) string {
	var names []string
	for _, s := range g.Roster() {
		if s.SeatID == "" {
			names = append(names, s.Name)
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, ", ")
}
