package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/pupitre/internal/seating"
)

// DebugLogger logs TUI state, keystrokes, and gesture transitions to a file.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
	seq     int
}

// Global debug logger instance
var debugLog *DebugLogger

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "pupitre-debug.log"

// InitDebugLogger initializes the debug logger if debug mode is enabled.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = &DebugLogger{enabled: false}
		return nil
	}

	// Create log file in current directory with fixed name (easy to find)
	logPath := DebugLogPath
	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugLog = &DebugLogger{
		file:    f,
		enabled: true,
	}

	debugLog.log("DEBUG_START", map[string]any{
		"log_file": logPath,
		"time":     time.Now().Format(time.RFC3339),
	})

	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog != nil && debugLog.file != nil {
		debugLog.log("DEBUG_END", map[string]any{
			"time": time.Now().Format(time.RFC3339),
		})
		_ = debugLog.file.Close()
	}
}

// log writes a structured log entry.
func (d *DebugLogger) log(event string, data map[string]any) {
	if d == nil || !d.enabled || d.file == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	entry := map[string]any{
		"seq":   d.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(d.file, "%s\n", b)
}

// LogEvent logs an arbitrary event with structured fields.
func LogEvent(event string, data map[string]any) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log(event, data)
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("KEY_PRESS", map[string]any{
		"key":  msg.String(),
		"type": fmt.Sprintf("%T", msg.Type),
	})
}

// LogMouse logs a raw pointer event.
func LogMouse(msg tea.MouseMsg) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("MOUSE", map[string]any{
		"x":      msg.X,
		"y":      msg.Y,
		"action": int(msg.Action),
		"button": int(msg.Button),
		"shift":  msg.Shift,
		"ctrl":   msg.Ctrl,
	})
}

// LogGesture logs the gesture controller state after handling an event.
func LogGesture(c *seating.Controller) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	data := map[string]any{
		"state": gestureStateString(c.State()),
	}
	if payload := c.Payload(); len(payload) > 0 {
		data["payload"] = payload
	}
	if marquee := c.Marquee(); len(marquee) > 0 {
		data["marquee"] = marquee
	}
	if target := c.PreviewTarget(); target != "" {
		data["preview_target"] = target
		data["preview_valid"] = c.PreviewValid()
	}
	if action := c.LastAction(); action != "" {
		data["last_action"] = action
	}
	debugLog.log("GESTURE", data)
}

// LogError logs an error.
func LogError(context string, err error) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}

// gestureStateString returns a string representation of a gesture state.
func gestureStateString(s seating.State) string {
	switch s {
	case seating.StateIdle:
		return "Idle"
	case seating.StatePressed:
		return "Pressed"
	case seating.StateDragging:
		return "Dragging"
	case seating.StateSelecting:
		return "Selecting"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}
