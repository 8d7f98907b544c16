package server

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/df07/go-glossy-pathtracer/pkg/core"
)

// Console message levels
const (
	LevelInfo  = "info"
	LevelError = "error"
)

// ConsoleMessage is one log line produced by a render
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
}

// Console collects log lines from concurrent renders. Loggers feed a shared
// buffered channel; Drain moves whatever is buffered into a bounded history.
type Console struct {
	messages chan ConsoleMessage
	limit    int

	mu      sync.Mutex
	history []ConsoleMessage
}

// NewConsole creates a console buffering up to buffer undrained messages and
// keeping the latest limit messages in its history
func NewConsole(buffer, limit int) *Console {
	return &Console{
		messages: make(chan ConsoleMessage, buffer),
		limit:    limit,
	}
}

// Logger returns a logger whose lines are tagged with renderID
func (c *Console) Logger(renderID string) *WebLogger {
	return &WebLogger{renderID: renderID, console: c}
}

// Drain moves buffered messages into the history, oldest first
func (c *Console) Drain() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for {
		select {
		case msg := <-c.messages:
			c.history = append(c.history, msg)
		default:
			if extra := len(c.history) - c.limit; extra > 0 {
				c.history = c.history[extra:]
			}
			return
		}
	}
}

// Messages returns a copy of the history
func (c *Console) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ConsoleMessage(nil), c.history...)
}

// offer never blocks; a full buffer drops the message
func (c *Console) offer(msg ConsoleMessage) bool {
	select {
	case c.messages <- msg:
		return true
	default:
		return false
	}
}

// WebLogger implements core.Logger for one render. Lines also go to the
// server log.
type WebLogger struct {
	renderID string
	console  *Console
}

var _ core.Logger = (*WebLogger)(nil)

// Printf logs an info line
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	wl.emit(LevelInfo, fmt.Sprintf(format, args...))
}

// Errorf logs an error line, used when a render fails
func (wl *WebLogger) Errorf(format string, args ...interface{}) {
	wl.emit(LevelError, fmt.Sprintf(format, args...))
}

func (wl *WebLogger) emit(level, message string) {
	log.Printf("[%s] %s: %s", wl.renderID, level, strings.TrimRight(message, "\n"))

	if wl.console == nil {
		return
	}
	wl.console.offer(ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
	})
}
