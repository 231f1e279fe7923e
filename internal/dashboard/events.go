package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"events-cms/internal/model"
	"events-cms/internal/permission"
)

var (
	ErrForbidden     = errors.New("permission denied")
	ErrEventNotFound = errors.New("event not found")
	ErrDeleteBusy    = errors.New("event is already being deleted")
	ErrViewClosed    = errors.New("view closed")
)

const deniedMessage = "You do not have permission to delete events."

type EventService interface {
	GetAllEvents(ctx context.Context) model.ApiResponse[[]model.Event]
	DeleteEvent(ctx context.Context, id string) model.ApiResponse[model.Empty]
}

// ConfirmFunc asks the user to confirm deleting event. Returning false aborts.
type ConfirmFunc func(event model.Event) bool

// DayRow is one line of the schedule table: a day with its owning event.
type DayRow struct {
	EventID   string
	EventName string
	Day       model.EventDay
}

// EventsView holds the state of the events management page. Requests issued by
// the view use its own context; Close cancels them and later results are dropped.
type EventsView struct {
	svc     EventService
	session permission.Session
	notify  Notifier

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	events   []model.Event
	loading  bool
	deleting map[string]struct{}
	search   string
}

func NewEventsView(parent context.Context, svc EventService, session permission.Session, notify Notifier) *EventsView {
	ctx, cancel := context.WithCancel(parent)
	return &EventsView{
		svc:      svc,
		session:  session,
		notify:   notify,
		ctx:      ctx,
		cancel:   cancel,
		loading:  true,
		deleting: make(map[string]struct{}),
	}
}

// Mount performs the initial fetch.
func (v *EventsView) Mount() {
	v.mu.Lock()
	v.loading = true
	v.mu.Unlock()

	if !v.fetch() {
		return
	}

	v.mu.Lock()
	v.loading = false
	v.mu.Unlock()
}

// fetch replaces the event list on success. It reports false when the view
// was closed while the request was in flight.
func (v *EventsView) fetch() bool {
	resp := v.svc.GetAllEvents(v.ctx)
	if v.ctx.Err() != nil {
		return false
	}

	events, err := resp.Unwrap()
	if err != nil {
		slog.Warn("events fetch failed", slog.String("error", err.Error()))
		failure(v.notify, err.Error())
		return true
	}

	v.mu.Lock()
	v.events = events
	v.mu.Unlock()
	return true
}

// Delete removes an event after the user confirms. The list only changes
// through the re-fetch that follows a successful delete.
func (v *EventsView) Delete(id string, confirm ConfirmFunc) error {
	if !v.session.IsAdmin() {
		failure(v.notify, deniedMessage)
		return ErrForbidden
	}

	event, ok := v.find(id)
	if !ok {
		failure(v.notify, ErrEventNotFound.Error())
		return ErrEventNotFound
	}
	if confirm != nil && !confirm(event) {
		return nil
	}

	v.mu.Lock()
	if _, busy := v.deleting[id]; busy {
		v.mu.Unlock()
		return ErrDeleteBusy
	}
	v.deleting[id] = struct{}{}
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		delete(v.deleting, id)
		v.mu.Unlock()
	}()

	resp := v.svc.DeleteEvent(v.ctx, id)
	if v.ctx.Err() != nil {
		return ErrViewClosed
	}
	if _, err := resp.Unwrap(); err != nil {
		slog.Warn("event delete failed", slog.String("id", id), slog.String("error", err.Error()))
		failure(v.notify, err.Error())
		return err
	}

	slog.Info("event deleted", slog.String("id", id), slog.String("user", v.session.UserID))
	success(v.notify, "Event deleted successfully")
	if !v.fetch() {
		return ErrViewClosed
	}
	return nil
}

func (v *EventsView) find(id string) (model.Event, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, event := range v.events {
		if event.ID == id {
			return event, true
		}
	}
	return model.Event{}, false
}

// Close cancels requests still in flight.
func (v *EventsView) Close() {
	v.cancel()
}

func (v *EventsView) SetSearch(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.search = term
}

func (v *EventsView) SearchTerm() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.search
}

// FilteredDays lists the days of every event whose name or description
// contains the search term, ignoring case. An empty term keeps every day.
func (v *EventsView) FilteredDays() []DayRow {
	v.mu.Lock()
	defer v.mu.Unlock()

	term := strings.ToLower(strings.TrimSpace(v.search))
	rows := make([]DayRow, 0)
	for _, event := range v.events {
		for _, day := range event.Days {
			if term == "" ||
				strings.Contains(strings.ToLower(day.Name), term) ||
				strings.Contains(strings.ToLower(day.Description), term) {
				rows = append(rows, DayRow{EventID: event.ID, EventName: event.Name, Day: day})
			}
		}
	}
	return rows
}

// TotalSessions counts sessions across the filtered days.
func (v *EventsView) TotalSessions() int {
	total := 0
	for _, row := range v.FilteredDays() {
		total += len(row.Day.Times)
	}
	return total
}

func (v *EventsView) Events() []model.Event {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]model.Event, len(v.events))
	copy(out, v.events)
	return out
}

func (v *EventsView) IsLoading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

func (v *EventsView) IsDeleting(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.deleting[id]
	return ok
}

// CanDelete reports whether delete controls are enabled for this session.
func (v *EventsView) CanDelete() bool {
	return v.session.IsAdmin()
}
