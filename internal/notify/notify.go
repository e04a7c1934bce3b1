// Package notify delivers short success and error messages to the person
// using the admin client.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// Level distinguishes success from error notifications.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier shows a message to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Console writes notifications as single lines to w and logs them at debug level.
type Console struct {
	w   io.Writer
	log zerolog.Logger
	mu  sync.Mutex
}

// NewConsole creates a Console notifier.
func NewConsole(w io.Writer, log zerolog.Logger) *Console {
	return &Console{w: w, log: log}
}

func (c *Console) Success(msg string) { c.write(LevelSuccess, "✓", msg) }

func (c *Console) Error(msg string) { c.write(LevelError, "✗", msg) }

func (c *Console) write(level Level, mark, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log.Debug().Str("level", string(level)).Msg(msg)
	fmt.Fprintf(c.w, "%s %s\n", mark, msg)
}

// Notification is one recorded message.
type Notification struct {
	Level   Level
	Message string
}

// Recorder keeps every notification in memory.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Success(msg string) { r.add(LevelSuccess, msg) }

func (r *Recorder) Error(msg string) { r.add(LevelError, msg) }

func (r *Recorder) add(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Notification{Level: level, Message: msg})
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}
