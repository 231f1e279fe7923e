package dashboard

import "sync"

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a transient message shown to the user (a toast).
type Notification struct {
	Level   Level
	Message string
}

type Notifier interface {
	Notify(n Notification)
}

// Toasts collects notifications for the page being rendered.
type Toasts struct {
	mu    sync.Mutex
	items []Notification
}

func (t *Toasts) Notify(n Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append(t.items, n)
}

// Drain returns the pending notifications and clears them.
func (t *Toasts) Drain() []Notification {
	t.mu.Lock()
	defer t.mu.Unlock()
	items := t.items
	t.items = nil
	return items
}

func success(n Notifier, msg string) {
	if n != nil {
		n.Notify(Notification{Level: LevelSuccess, Message: msg})
	}
}

func failure(n Notifier, msg string) {
	if n != nil {
		n.Notify(Notification{Level: LevelError, Message: msg})
	}
}
