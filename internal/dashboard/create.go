package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"events-cms/internal/model"
)

// DateTimeLayout is the format of a datetime-local form input.
const DateTimeLayout = "2006-01-02T15:04"

type EventCreator interface {
	AddEvent(ctx context.Context, req model.EventCreateRequest) model.ApiResponse[model.Event]
}

// CreateEventForm mirrors the creation payload. Dates are local wall-clock
// strings as typed into the form.
type CreateEventForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	StartDate   string `form:"start_date"`
	EndDate     string `form:"end_date"`
	Year        int    `form:"year"`
	Month       int    `form:"month"`
}

// DefaultCreateEventForm is the blank form: empty strings, current year and month.
func DefaultCreateEventForm(now time.Time) CreateEventForm {
	return CreateEventForm{
		Year:  now.Year(),
		Month: int(now.Month()),
	}
}

// Request validates the form against now and converts the local dates into
// absolute timestamps in loc.
func (f CreateEventForm) Request(now time.Time, loc *time.Location) (model.EventCreateRequest, error) {
	if loc == nil {
		loc = time.Local
	}
	start, err := parseLocal(f.StartDate, loc)
	if err != nil {
		return model.EventCreateRequest{}, errors.New("Start date is invalid")
	}
	end, err := parseLocal(f.EndDate, loc)
	if err != nil {
		return model.EventCreateRequest{}, errors.New("End date is invalid")
	}
	if start.Before(now) {
		return model.EventCreateRequest{}, errors.New("Start date cannot be in the past")
	}
	if end.Before(now) {
		return model.EventCreateRequest{}, errors.New("End date cannot be in the past")
	}
	if end.Before(start) {
		return model.EventCreateRequest{}, errors.New("End date cannot be before start date")
	}

	return model.EventCreateRequest{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		StartDate:   start.UTC(),
		EndDate:     end.UTC(),
		Year:        f.Year,
		Month:       f.Month,
	}, nil
}

func parseLocal(raw string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, strings.TrimSpace(raw), loc)
}

// CreateEventView drives the create event page.
type CreateEventView struct {
	svc    EventCreator
	notify Notifier
	loc    *time.Location
	now    func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	Form CreateEventForm
}

func NewCreateEventView(parent context.Context, svc EventCreator, notify Notifier, loc *time.Location, now func() time.Time) *CreateEventView {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	ctx, cancel := context.WithCancel(parent)
	return &CreateEventView{
		svc:    svc,
		notify: notify,
		loc:    loc,
		now:    now,
		ctx:    ctx,
		cancel: cancel,
		Form:   DefaultCreateEventForm(now().In(loc)),
	}
}

// Submit validates the form and creates the event. Validation failures never
// reach the service. On success the form is reset to its defaults.
func (v *CreateEventView) Submit() (model.Event, error) {
	req, err := v.Form.Request(v.now(), v.loc)
	if err != nil {
		failure(v.notify, err.Error())
		return model.Event{}, err
	}

	resp := v.svc.AddEvent(v.ctx, req)
	if v.ctx.Err() != nil {
		return model.Event{}, ErrViewClosed
	}
	event, err := resp.Unwrap()
	if err != nil {
		slog.Warn("event create failed", slog.String("name", req.Name), slog.String("error", err.Error()))
		failure(v.notify, err.Error())
		return model.Event{}, err
	}

	slog.Info("event created", slog.String("id", event.ID), slog.String("name", event.Name))
	success(v.notify, "Event created successfully")
	v.Reset()
	return event, nil
}

func (v *CreateEventView) Reset() {
	v.Form = DefaultCreateEventForm(v.now().In(v.loc))
}

func (v *CreateEventView) Close() {
	v.cancel()
}
