package editor

import (
	"sync"
	"time"
)

// Autosaver debounces save requests from the editing surface. Every
// user edit restarts the delay timer, so only the most recent pending
// save fires. Programmatic state sync (loading another document into
// the same editor instance) must call SuppressNext before mutating
// state; this is a cooperative convention that keeps a document switch
// from autosaving one document's content under another's id.
//
// Last write wins; there is no concurrency token.
type Autosaver struct {
	mu       sync.Mutex
	delay    time.Duration
	timer    *time.Timer
	suppress int
	save     func()
	stopped  bool
}

func NewAutosaver(delay time.Duration, save func()) *Autosaver {
	return &Autosaver{delay: delay, save: save}
}

// NoteChange records one change notification. Suppressed notifications
// are consumed without scheduling a save.
func (a *Autosaver) NoteChange() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	if a.suppress > 0 {
		a.suppress--
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, a.fire)
}

// SuppressNext tells the autosaver to ignore the next n change
// notifications.
func (a *Autosaver) SuppressNext(n int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if n > 0 {
		a.suppress += n
	}
}

// Flush fires any pending save immediately.
func (a *Autosaver) Flush() {
	a.mu.Lock()
	pending := a.timer != nil && a.timer.Stop()
	a.timer = nil
	a.mu.Unlock()
	if pending {
		a.save()
	}
}

// Stop cancels any pending save and stops accepting changes.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

func (a *Autosaver) fire() {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	a.timer = nil
	a.mu.Unlock()
	a.save()
}
