package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/javiermolinar/pupitre/internal/seating"
)

const arrangerSystemPrompt = `You are a classroom seating assistant helping a teacher arrange students.

Classroom:
- The room has %d rows of %d seats each.
- Rows are numbered 1 (back of the room) through %d (front row, nearest the board).
- Columns are numbered 1 through %d, left to right as the teacher faces the class.
- Usable seats (row, col):
%s
%s
Students:
%s
%s
Teacher request: "%s"

Rules:
1. Use ONLY the usable seats listed above, in 1-based (row, col) coordinates.
2. Seat each student at most once and put at most one student per seat.
3. Refer to students by the exact name shown in the list above.
4. It is fine to leave students unseated or seats empty when the request calls for it.
5. Students who struggle to see or focus usually belong in higher-numbered rows (closer to the board).
6. Add a warning for anything you could not satisfy.

Respond ONLY with valid JSON (no markdown, no explanation):
{
  "assignments": [
    {"row": 1, "col": 1, "student": "string"}
  ],
  "warnings": ["string"]
}`

const arrangerCompactPrompt = `You are a classroom seating assistant. Return JSON only.

Room: %d rows x %d seats. Row 1 is the back, row %d is the front. Columns run 1-%d left to right.
Usable seats (row, col):
%s
Students:
%s
Teacher request: "%s"

Rules:
- Return JSON only (no markdown).
- Use only the usable seats above, 1-based (row, col).
- One seat per student, one student per seat.
- Use the exact student names shown.

JSON schema:
{
  "assignments": [
    {"row": 1, "col": 1, "student": "string"}
  ],
  "warnings": ["string"]
}`

// SuggestRequest contains the input for a seating suggestion.
type SuggestRequest struct {
	Goal             string // free-form instruction from the teacher
	UseCompactPrompt bool   // use a shorter prompt for local models
}

// SeatAssignment is one suggested placement in 1-based display coordinates.
type SeatAssignment struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Student string `json:"student"` // name or uuid
}

// Suggestion contains the parsed LLM response.
type Suggestion struct {
	Assignments []SeatAssignment `json:"assignments"`
	Warnings    []string         `json:"warnings"`
}

// Planner uses an LLM to turn a free-form seating request into an arrangement.
type Planner struct {
	client Client
}

// NewPlanner creates a new Planner with the given LLM client.
func NewPlanner(client Client) *Planner {
	return &Planner{client: client}
}

// Suggest asks the LLM for an arrangement of the given grid.
func (p *Planner) Suggest(ctx context.Context, g *seating.Grid, req SuggestRequest) (*Suggestion, error) {
	messages := p.BuildMessages(g, req)

	var s Suggestion
	if err := p.client.ChatJSON(ctx, messages, &s); err != nil {
		return nil, fmt.Errorf("getting suggestion from LLM: %w", err)
	}
	return &s, nil
}

// BuildMessages creates the message list for a suggestion request. Exported so
// callers can append error feedback and retry.
func (p *Planner) BuildMessages(g *seating.Grid, req SuggestRequest) []Message {
	rows, cols := g.Rows(), g.Cols()
	seats := formatUsableSeats(g)
	roster := formatRoster(g)

	var prompt string
	if req.UseCompactPrompt {
		prompt = fmt.Sprintf(arrangerCompactPrompt,
			rows, cols, // room dimensions
			rows, cols, // front row number, last column
			seats,
			roster,
			req.Goal,
		)
	} else {
		prompt = fmt.Sprintf(arrangerSystemPrompt,
			rows, cols, // room dimensions
			rows, cols, // front row number, last column
			seats,
			formatRemovedSeats(g),
			roster,
			formatCurrentArrangement(g),
			req.Goal,
		)
	}

	return []Message{
		{Role: "system", Content: prompt},
	}
}

// formatUsableSeats lists non-deleted seats in display coordinates, back row
// first so the list reads in row order.
func formatUsableSeats(g *seating.Grid) string {
	lines := make([]string, 0, g.Rows())
	for dr := 1; dr <= g.Rows(); dr++ {
		var cols []string
		for dc := 1; dc <= g.Cols(); dc++ {
			row, col := seating.ToInternal(g.Rows(), dr, dc)
			seat := g.FindSeat(seating.SeatID(row, col))
			if seat == nil || seat.Deleted {
				continue
			}
			cols = append(cols, fmt.Sprintf("(%d,%d)", dr, dc))
		}
		if len(cols) > 0 {
			lines = append(lines, "- "+strings.Join(cols, " "))
		}
	}
	return strings.Join(lines, "\n")
}

func formatRemovedSeats(g *seating.Grid) string {
	var removed []string
	for _, seat := range g.Seats() {
		if !seat.Deleted {
			continue
		}
		dr, dc := seating.ToDisplay(g.Rows(), seat.Row, seat.Col)
		removed = append(removed, fmt.Sprintf("(%d,%d)", dr, dc))
	}
	if len(removed) == 0 {
		return ""
	}
	sort.Strings(removed)
	return fmt.Sprintf("Removed seats (do NOT use): %s\n", strings.Join(removed, " "))
}

// formatRoster lists students with the attributes the model may reason about.
func formatRoster(g *seating.Grid) string {
	if len(g.Roster()) == 0 {
		return "None"
	}

	var sb strings.Builder
	for _, s := range g.Roster() {
		sb.WriteString("- " + s.Name)
		var attrs []string
		if s.Gender != seating.GenderUnset {
			attrs = append(attrs, string(s.Gender))
		}
		if s.Height > 0 {
			attrs = append(attrs, fmt.Sprintf("%d cm", s.Height))
		}
		if len(attrs) > 0 {
			sb.WriteString(" (" + strings.Join(attrs, ", ") + ")")
		}
		if s.Notes != "" {
			sb.WriteString(": " + s.Notes)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatCurrentArrangement(g *seating.Grid) string {
	var lines []string
	for _, seat := range g.Seats() {
		if seat.Occupant == nil || seat.Deleted {
			continue
		}
		dr, dc := seating.ToDisplay(g.Rows(), seat.Row, seat.Col)
		lines = append(lines, fmt.Sprintf("- (%d,%d): %s", dr, dc, seat.Occupant.Name))
	}
	if len(lines) == 0 {
		return "Current arrangement: everyone is unseated.\n"
	}
	return "Current arrangement:\n" + strings.Join(lines, "\n") + "\n"
}

// Layout converts the suggestion into an applicable arrangement. Every
// assignment is resolved against the grid: display coordinates must map to a
// usable seat and student references must resolve unambiguously. The returned
// warnings are the model's own, passed through for display.
func (s *Suggestion) Layout(g *seating.Grid) (seating.Layout, []string, error) {
	layout := make(seating.Layout, len(s.Assignments))
	seen := make(map[string]string, len(s.Assignments))

	for _, a := range s.Assignments {
		if a.Row < 1 || a.Row > g.Rows() || a.Col < 1 || a.Col > g.Cols() {
			return nil, nil, fmt.Errorf("suggested seat (%d,%d) is outside the %dx%d room: %w",
				a.Row, a.Col, g.Rows(), g.Cols(), seating.ErrInvalidTarget)
		}
		row, col := seating.ToInternal(g.Rows(), a.Row, a.Col)
		seatID := seating.SeatID(row, col)
		seat := g.FindSeat(seatID)
		if seat == nil || seat.Deleted {
			return nil, nil, fmt.Errorf("suggested seat (%d,%d) is not usable: %w",
				a.Row, a.Col, seating.ErrInvalidTarget)
		}

		student, err := g.ResolveStudent(a.Student)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving %q: %w", a.Student, err)
		}

		if prev, ok := seen[student.UUID]; ok {
			return nil, nil, fmt.Errorf("%s suggested for both %s and (%d,%d)",
				student.Name, prev, a.Row, a.Col)
		}
		if _, ok := layout[seatID]; ok {
			return nil, nil, fmt.Errorf("seat (%d,%d) suggested twice", a.Row, a.Col)
		}
		seen[student.UUID] = fmt.Sprintf("(%d,%d)", a.Row, a.Col)
		layout[seatID] = student.UUID
	}

	return layout, s.Warnings, nil
}
