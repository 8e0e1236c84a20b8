package server

import (
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"
)

// ConsoleMessage is one line of renderer output forwarded to the browser
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger for a single render. Messages go to the
// server log and, when there is room, to the render's console channel.
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	dropped     atomic.Int64
}

// NewWebLogger creates a logger tagged with renderID. A nil channel only logs locally.
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) *WebLogger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// messageLevel derives the console level from the message prefix
func messageLevel(message string) string {
	switch {
	case strings.HasPrefix(message, "Warning:"):
		return "warning"
	case strings.HasPrefix(message, "Error:"):
		return "error"
	default:
		return "info"
	}
}

// Printf formats a message and forwards it without ever blocking the renderer
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	log.Printf("[%s] %s", wl.renderID, strings.TrimRight(message, "\n"))

	if wl.consoleChan == nil {
		return
	}
	msg := ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     messageLevel(message),
	}
	select {
	case wl.consoleChan <- msg:
	default:
		wl.dropped.Add(1)
	}
}

// Dropped returns how many messages were discarded because the console was full
func (wl *WebLogger) Dropped() int {
	return int(wl.dropped.Load())
}
