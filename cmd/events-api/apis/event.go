package apis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/goforj/godump"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"events-cms/internal/model"
)

type IEventRepo interface {
	ListEvents(ctx context.Context) ([]model.Event, error)
	GetEvent(ctx context.Context, id string) (model.Event, error)
	CreateEvent(ctx context.Context, event model.Event) error
	DeleteEvent(ctx context.Context, id string, at time.Time) error
}

type EventAPI struct {
	eventRepo IEventRepo
	debug     bool
	now       func() time.Time
}

func NewEventAPI(eventRepo IEventRepo, debug bool) *EventAPI {

	return &EventAPI{
		eventRepo: eventRepo,
		debug:     debug,
		now:       time.Now,
	}
}

// Setup registers the event routes. Creates go through author, deletes
// through admin.
func (a *EventAPI) Setup(g *echo.Group, author, admin echo.MiddlewareFunc) {
	g.GET("/events", a.listEvents)
	g.GET("/events/:id", a.getEvent)
	g.POST("/events", a.createEvent, author)
	g.DELETE("/events/:id", a.deleteEvent, admin)
}

func (a *EventAPI) listEvents(c echo.Context) error {

	ctx := c.Request().Context()

	events, err := a.eventRepo.ListEvents(ctx)
	if err != nil {
		return c.JSON(
			errorStatus(err),
			model.Failure(err.Error()),
		)
	}

	return c.JSON(
		http.StatusOK,
		model.Success(events, "success"),
	)
}

func (a *EventAPI) getEvent(c echo.Context) error {

	ctx := c.Request().Context()

	event, err := a.eventRepo.GetEvent(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(
			errorStatus(err),
			model.Failure(err.Error()),
		)
	}

	return c.JSON(
		http.StatusOK,
		model.Success(event, "success"),
	)
}

func (a *EventAPI) createEvent(c echo.Context) error {

	ctx := c.Request().Context()

	req, err := a.bindCreateRequest(c)
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.Failure(err.Error()),
		)
	}

	if err := validateCreateRequest(req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.Failure(err.Error()),
		)
	}

	event, err := buildEvent(req, a.now())
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.Failure(err.Error()),
		)
	}

	err = a.eventRepo.CreateEvent(ctx, event)
	if err != nil {
		return c.JSON(
			errorStatus(err),
			model.Failure(err.Error()),
		)
	}

	return c.JSON(
		http.StatusCreated,
		model.Success(event, "success"),
	)
}

func (a *EventAPI) deleteEvent(c echo.Context) error {

	ctx := c.Request().Context()

	err := a.eventRepo.DeleteEvent(ctx, c.Param("id"), a.now())
	if err != nil {
		return c.JSON(
			errorStatus(err),
			model.Failure(err.Error()),
		)
	}

	return c.JSON(
		http.StatusOK,
		model.Success(model.Empty{}, "event deleted"),
	)
}

// bindCreateRequest reads a JSON body, or a multipart form carrying the JSON
// in "payload" and an optional "schedule" CSV that replaces payload days.
func (a *EventAPI) bindCreateRequest(c echo.Context) (model.EventCreateRequest, error) {

	var req model.EventCreateRequest

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		if err := c.Bind(&req); err != nil {
			return req, fmt.Errorf("invalid request body: %w", err)
		}
		return req, nil
	}

	if err := json.Unmarshal([]byte(c.FormValue("payload")), &req); err != nil {
		return req, fmt.Errorf("invalid payload: %w", err)
	}

	days, err := a.readSchedule(c)
	if err != nil {
		return req, err
	}
	if days != nil {
		req.Days = days
	}

	return req, nil
}

func (a *EventAPI) readSchedule(c echo.Context) ([]model.EventDayCreate, error) {

	schedule, err := c.FormFile("schedule")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(filepath.Ext(schedule.Filename), ".csv") {
		return nil, fmt.Errorf("invalid schedule: %q is not a .csv file", schedule.Filename)
	}

	sf, err := schedule.Open()
	if err != nil {
		return nil, err
	}

	defer sf.Close()

	rows, err := model.ParseSchedule(sf)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule: %w", err)
	}

	if a.debug {
		godump.Dump(rows)
	}

	days, err := model.BuildDays(rows)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule: %w", err)
	}

	return days, nil
}

func validateCreateRequest(req model.EventCreateRequest) error {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return errors.New("name is required")
	case req.Year < 1:
		return errors.New("year is required")
	case req.Month < 1 || req.Month > 12:
		return errors.New("month must be between 1 and 12")
	case req.StartDate.IsZero() || req.EndDate.IsZero():
		return errors.New("start_date and end_date are required")
	case req.EndDate.Before(req.StartDate):
		return errors.New("end_date cannot be before start_date")
	}

	seen := make(map[int]bool, len(req.Days))
	for _, day := range req.Days {
		if day.DayNumber < 1 {
			return errors.New("day_number must be positive")
		}
		if seen[day.DayNumber] {
			return fmt.Errorf("day %d is listed twice", day.DayNumber)
		}
		seen[day.DayNumber] = true
		for _, session := range day.Times {
			if strings.TrimSpace(session.Title) == "" {
				return fmt.Errorf("day %d: session title is required", day.DayNumber)
			}
			if session.EndTime.Before(session.StartTime) {
				return fmt.Errorf("day %d: session %q ends before it starts", day.DayNumber, session.Title)
			}
		}
	}

	return nil
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func buildEvent(req model.EventCreateRequest, now time.Time) (model.Event, error) {

	id, err := newID()
	if err != nil {
		return model.Event{}, err
	}

	event := model.Event{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		StartDate:   req.StartDate.UTC(),
		EndDate:     req.EndDate.UTC(),
		Year:        req.Year,
		Month:       req.Month,
		CreateDate:  now,
		UpdateDate:  now,
	}

	for _, d := range req.Days {
		dayID, err := newID()
		if err != nil {
			return model.Event{}, err
		}
		day := model.EventDay{
			ID:          dayID,
			EventID:     event.ID,
			DayNumber:   d.DayNumber,
			Name:        d.Name,
			Description: d.Description,
		}
		for _, s := range d.Times {
			sessionID, err := newID()
			if err != nil {
				return model.Event{}, err
			}
			day.Times = append(day.Times, model.Session{
				ID:          sessionID,
				DayID:       day.ID,
				Title:       s.Title,
				Description: s.Description,
				Type:        s.Type,
				StartTime:   s.StartTime.UTC(),
				EndTime:     s.EndTime.UTC(),
				Speaker:     s.Speaker,
			})
		}
		event.Days = append(event.Days, day)
	}

	return event.WithDerived(), nil
}
