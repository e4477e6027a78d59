package seating

import (
	"fmt"
	"time"
)

// Phase is the lifecycle stage of a pointer event. Events arrive from the
// platform layer (terminal mouse, tests) already translated to grid-space
// cell coordinates.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
	PhaseCancel
)

// PointerEvent is the abstract, platform-neutral input consumed by the
// Controller. Mod marks a held modifier, which switches seat taps from
// replace-selection to add/remove.
type PointerEvent struct {
	Phase Phase
	X, Y  int
	Mod   bool
	Time  time.Time
}

// State enumerates the gesture machine states.
type State int

const (
	StateIdle State = iota
	StatePressed
	StateDragging
	StateSelecting
)

// String returns the state name for debug output.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePressed:
		return "pressed"
	case StateDragging:
		return "dragging"
	case StateSelecting:
		return "selecting"
	default:
		return "unknown"
	}
}

// DragThreshold is the Manhattan distance in cells a pointer must travel
// from its press point before a press becomes a drag. Below it, release is a
// tap.
const DragThreshold = 2

// HitTester resolves pointer coordinates to seats. The geometry lives in the
// rendering layer, which knows where each seat is drawn; the controller only
// consumes its answers.
type HitTester interface {
	// SeatAt returns the seat under the given point, if any.
	SeatAt(x, y int) (seatID string, ok bool)
	// SeatsIn returns the seats overlapping the given rectangle. The corner
	// order is unspecified.
	SeatsIn(x0, y0, x1, y1 int) []string
}

// Controller turns the raw pointer stream into selection changes and seat
// relocations. Exactly one gesture is in flight at a time; a pointer-down
// arriving while a drag or marquee is active force-cancels the prior gesture
// and starts the new one.
//
// State machine: Idle → Pressed → (Dragging | Selecting) → Idle. Commits go
// through History.Record, then the grid mutation, then Resync; a cancelled or
// rejected gesture writes nothing.
type Controller struct {
	grid *Grid
	sel  *Selection
	hist *History
	hits HitTester

	state          State
	pressX, pressY int
	curX, curY     int
	sourceID       string
	payload        []string // seats being dragged; more than one means a block move

	previewSingle *SingleMovePlan
	previewBlock  *BlockPlan
	previewTarget string
	previewValid  bool

	marquee []string

	lastAction string
}

// NewController wires a gesture controller to one editing session.
func NewController(grid *Grid, sel *Selection, hist *History, hits HitTester) *Controller {
	return &Controller{grid: grid, sel: sel, hist: hist, hits: hits}
}

// State returns the current machine state.
func (c *Controller) State() State { return c.state }

// Payload returns the seats captured at press time.
func (c *Controller) Payload() []string { return c.payload }

// Marquee returns the candidate seats under the current selection rectangle.
func (c *Controller) Marquee() []string { return c.marquee }

// PreviewBlock returns the current block-move preview, nil outside a valid
// block drag.
func (c *Controller) PreviewBlock() *BlockPlan { return c.previewBlock }

// PreviewSingle returns the current single-move preview, nil outside a valid
// single drag.
func (c *Controller) PreviewSingle() *SingleMovePlan { return c.previewSingle }

// PreviewTarget returns the seat currently under the pointer during a drag.
func (c *Controller) PreviewTarget() string { return c.previewTarget }

// PreviewValid reports whether dropping at the current position would commit.
func (c *Controller) PreviewValid() bool { return c.previewValid }

// LastAction returns the description of the most recently committed gesture.
func (c *Controller) LastAction() string { return c.lastAction }

// DragSource returns the seat the active gesture started on.
func (c *Controller) DragSource() string { return c.sourceID }

// Handle feeds one pointer event through the state machine. It returns
// ErrRelocationRejected when a drag is released over an invalid drop so the
// caller can surface the rejection; the grid is untouched in that case.
func (c *Controller) Handle(ev PointerEvent) error {
	switch ev.Phase {
	case PhaseDown:
		return c.handleDown(ev)
	case PhaseMove:
		return c.handleMove(ev)
	case PhaseUp:
		return c.handleUp(ev)
	case PhaseCancel:
		c.endGesture()
		return nil
	default:
		return nil
	}
}

func (c *Controller) handleDown(ev PointerEvent) error {
	if c.state != StateIdle {
		// Force-cancel the in-flight gesture; the new press wins. The
		// selection survives, matching a pointer cancel.
		c.endGesture()
	}
	c.pressX, c.pressY = ev.X, ev.Y
	c.curX, c.curY = ev.X, ev.Y

	seatID, ok := c.hits.SeatAt(ev.X, ev.Y)
	if !ok {
		c.state = StateSelecting
		c.marquee = nil
		return nil
	}

	c.state = StatePressed
	c.sourceID = seatID
	if c.sel.Contains(seatID) {
		c.payload = c.sel.IDs()
	} else {
		c.payload = []string{seatID}
	}
	return nil
}

func (c *Controller) handleMove(ev PointerEvent) error {
	c.curX, c.curY = ev.X, ev.Y
	switch c.state {
	case StatePressed:
		if manhattan(ev.X-c.pressX, ev.Y-c.pressY) < DragThreshold {
			return nil
		}
		c.state = StateDragging
		c.refreshPreview()
	case StateDragging:
		c.refreshPreview()
	case StateSelecting:
		c.marquee = c.hits.SeatsIn(c.pressX, c.pressY, ev.X, ev.Y)
	}
	return nil
}

func (c *Controller) handleUp(ev PointerEvent) error {
	defer c.endGesture()
	switch c.state {
	case StatePressed:
		// Below the drag threshold a press is a tap: toggle selection.
		c.sel.Toggle(c.sourceID, !ev.Mod)
		return nil
	case StateDragging:
		c.curX, c.curY = ev.X, ev.Y
		c.refreshPreview()
		return c.commit()
	case StateSelecting:
		c.sel.Add(c.hits.SeatsIn(c.pressX, c.pressY, ev.X, ev.Y)...)
		return nil
	default:
		return nil
	}
}

// refreshPreview recomputes the drop plan for the seat under the pointer.
// Planning is pure; nothing is mutated until commit.
func (c *Controller) refreshPreview() {
	c.previewSingle = nil
	c.previewBlock = nil
	c.previewValid = false
	c.previewTarget = ""

	targetID, ok := c.hits.SeatAt(c.curX, c.curY)
	if !ok {
		return
	}
	c.previewTarget = targetID

	if len(c.payload) > 1 {
		plan, err := PlanBlockMove(c.grid, c.payload, c.sourceID, targetID)
		if err != nil {
			return
		}
		c.previewBlock = plan
		c.previewValid = true
		return
	}

	plan, err := PlanSingleMove(c.grid, c.sourceID, targetID)
	if err != nil {
		return
	}
	c.previewSingle = &plan
	c.previewValid = true
}

// commit applies the previewed drop: one history record, the mutation, then
// a resync. Dropping a seat on itself is treated as a cancel, not an action.
func (c *Controller) commit() error {
	if !c.previewValid {
		return ErrRelocationRejected
	}

	if c.previewBlock != nil {
		if blockIsNoop(c.previewBlock) {
			return nil
		}
		action := fmt.Sprintf("Move block (%d seats)", len(c.previewBlock.Positions))
		c.hist.Record(action, c.grid)
		ApplyBlockMove(c.grid, c.previewBlock)
		c.grid.Resync()
		c.lastAction = action
		return nil
	}

	plan := c.previewSingle
	if plan.SourceID == plan.TargetID {
		return nil
	}
	action := "Move: " + plan.TargetOccupant.Name
	c.hist.Record(action, c.grid)
	if err := c.grid.Assign(plan.TargetOccupant.UUID, plan.TargetID); err != nil {
		// Planning already validated the drop; an error here means the grid
		// changed under us. Drop the stale history entry.
		c.hist.dropLast()
		return err
	}
	c.grid.Resync()
	c.lastAction = action
	return nil
}

// Cancel is the explicit escape-equivalent signal: it aborts any gesture and
// clears the selection and drag payload unconditionally.
func (c *Controller) Cancel() {
	c.endGesture()
	c.sel.Clear()
}

// endGesture returns to Idle without mutating the grid. The selection is
// preserved.
func (c *Controller) endGesture() {
	c.state = StateIdle
	c.sourceID = ""
	c.payload = nil
	c.previewSingle = nil
	c.previewBlock = nil
	c.previewTarget = ""
	c.previewValid = false
	c.marquee = nil
}

func blockIsNoop(plan *BlockPlan) bool {
	for _, pos := range plan.Positions {
		if pos.SourceID != pos.TargetID {
			return false
		}
	}
	return true
}

func manhattan(dx, dy int) int {
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
