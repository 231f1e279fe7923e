package pages

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"events-cms/internal/dashboard"
	"events-cms/internal/model"
	"events-cms/internal/permission"
)

type AdminService interface {
	dashboard.EventService
	dashboard.EventCreator
}

// AdminPages serves the event management pages. Each request gets a service
// carrying the signed-in user's token.
type AdminPages struct {
	clientFor func(token string) AdminService
	loc       *time.Location
	now       func() time.Time
}

func NewAdminPages(clientFor func(token string) AdminService, loc *time.Location, now func() time.Time) *AdminPages {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &AdminPages{
		clientFor: clientFor,
		loc:       loc,
		now:       now,
	}
}

func (p *AdminPages) Setup(g *echo.Group) {
	g.Use(requireLogin)
	g.GET("/events", p.listEvents)
	g.POST("/events/:id/delete", p.deleteEvent)
	g.GET("/events/new", p.newEvent)
	g.POST("/events", p.createEvent)
}

// eventSummary is one line of the events table. It lists events whether or
// not they have days yet.
type eventSummary struct {
	Event    model.Event
	Sessions int
}

type eventsPage struct {
	Search        string
	Rows          []dashboard.DayRow
	Events        []model.Event
	Summaries     []eventSummary
	TotalSessions int
	CanDelete     bool
	Loading       bool
	Confirm       *model.Event
}

func eventsURL(search string) string {
	if search == "" {
		return "/admin/events"
	}
	return "/admin/events?" + url.Values{"q": {search}}.Encode()
}

func (p *AdminPages) listEvents(c echo.Context) error {
	session := permission.FromContext(c)
	toasts := &dashboard.Toasts{}

	view := dashboard.NewEventsView(c.Request().Context(), p.clientFor(session.Token), session, toasts)
	defer view.Close()

	view.Mount()
	view.SetSearch(c.QueryParam("q"))

	page := eventsPage{
		Search:        view.SearchTerm(),
		Rows:          view.FilteredDays(),
		Events:        view.Events(),
		TotalSessions: view.TotalSessions(),
		CanDelete:     view.CanDelete(),
		Loading:       view.IsLoading(),
	}
	for i := range page.Events {
		page.Summaries = append(page.Summaries, eventSummary{
			Event:    page.Events[i],
			Sessions: page.Events[i].SessionCount(),
		})
	}
	if id := c.QueryParam("confirm"); id != "" && page.CanDelete {
		for i := range page.Events {
			if page.Events[i].ID == id {
				page.Confirm = &page.Events[i]
			}
		}
	}

	return render(c, http.StatusOK, "events.html", "Manage events", page, toasts.Drain())
}

// deleteEvent only proceeds when the form carries confirm=yes, which the
// confirmation prompt on the list page submits.
func (p *AdminPages) deleteEvent(c echo.Context) error {
	session := permission.FromContext(c)
	toasts := &dashboard.Toasts{}

	view := dashboard.NewEventsView(c.Request().Context(), p.clientFor(session.Token), session, toasts)
	defer view.Close()

	if view.CanDelete() {
		view.Mount()
	}

	confirmed := c.FormValue("confirm") == "yes"
	err := view.Delete(c.Param("id"), func(model.Event) bool {
		return confirmed
	})
	if err != nil && !errors.Is(err, dashboard.ErrViewClosed) {
		slog.Debug("delete not applied", slog.String("id", c.Param("id")), slog.String("reason", err.Error()))
	}

	setFlash(c, toasts.Drain())
	return redirect(c, eventsURL(c.FormValue("q")))
}

type newEventPage struct {
	Form     dashboard.CreateEventForm
	Timezone string
}

func (p *AdminPages) newEvent(c echo.Context) error {
	view := dashboard.NewCreateEventView(c.Request().Context(), nil, &dashboard.Toasts{}, p.loc, p.now)
	defer view.Close()

	return render(c, http.StatusOK, "new_event.html", "New event", newEventPage{
		Form:     view.Form,
		Timezone: p.loc.String(),
	}, nil)
}

func (p *AdminPages) createEvent(c echo.Context) error {
	session := permission.FromContext(c)
	toasts := &dashboard.Toasts{}

	view := dashboard.NewCreateEventView(c.Request().Context(), p.clientFor(session.Token), toasts, p.loc, p.now)
	defer view.Close()

	if err := c.Bind(&view.Form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "The form could not be read.")
	}

	if _, err := view.Submit(); err != nil {
		return render(c, http.StatusUnprocessableEntity, "new_event.html", "New event", newEventPage{
			Form:     view.Form,
			Timezone: p.loc.String(),
		}, toasts.Drain())
	}

	setFlash(c, toasts.Drain())
	return redirect(c, "/admin/events")
}
