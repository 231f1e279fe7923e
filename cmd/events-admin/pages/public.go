package pages

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"events-cms/internal/model"
	"events-cms/internal/site"
)

type PublicService interface {
	site.ContentService
	GetEvent(ctx context.Context, id string) model.ApiResponse[model.Event]
}

// PublicPages serves the visitor facing site.
type PublicPages struct {
	svc PublicService
	now func() time.Time
}

func NewPublicPages(svc PublicService, now func() time.Time) *PublicPages {
	if now == nil {
		now = time.Now
	}
	return &PublicPages{
		svc: svc,
		now: now,
	}
}

func (p *PublicPages) Setup(g *echo.Group) {
	g.GET("/", p.home)
	g.GET("/events/:id", p.event)
	g.GET("/events/:id/calendar.ics", p.calendar)
}

func (p *PublicPages) home(c echo.Context) error {
	home := site.LoadHome(c.Request().Context(), p.svc, p.now())
	return render(c, http.StatusOK, "home.html", "Events", home, nil)
}

type eventPage struct {
	Event    model.Event
	Status   model.EventStatus
	Sessions int
}

func (p *PublicPages) event(c echo.Context) error {
	event, err := p.loadEvent(c)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "event.html", event.Name, eventPage{
		Event:    event,
		Status:   event.StatusAt(p.now()),
		Sessions: event.SessionCount(),
	}, nil)
}

func (p *PublicPages) calendar(c echo.Context) error {
	event, err := p.loadEvent(c)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", event.ID+".ics"))
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(site.ScheduleICS(event, p.now())))
}

func (p *PublicPages) loadEvent(c echo.Context) (model.Event, error) {
	event, err := p.svc.GetEvent(c.Request().Context(), c.Param("id")).Unwrap()
	if err != nil {
		if model.IsNotFound(err) {
			return model.Event{}, echo.NewHTTPError(http.StatusNotFound, "This event does not exist.")
		}
		return model.Event{}, echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return event, nil
}
