package site

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"events-cms/internal/model"
)

const productID = "-//events-cms//Schedule//EN"

// ScheduleICS renders every session of event as a VEVENT.
func ScheduleICS(event model.Event, stamp time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(event.Name)
	if desc := strings.TrimSpace(event.Description); desc != "" {
		cal.SetXWRCalDesc(desc)
	}

	for _, day := range event.Days {
		for _, session := range day.Times {
			uid := session.ID
			if uid == "" {
				uid = fmt.Sprintf("%s-%d-%s", event.ID, day.DayNumber, session.StartTime.UTC().Format("20060102T150405Z"))
			}
			ve := cal.AddEvent(uid + "@events-cms")
			ve.SetDtStampTime(stamp.UTC())
			ve.SetStartAt(session.StartTime.UTC())
			ve.SetEndAt(session.EndTime.UTC())
			ve.SetSummary(session.Title)
			ve.SetDescription(sessionDescription(day, session))
			if t := strings.TrimSpace(session.Type); t != "" {
				ve.AddProperty(ics.ComponentPropertyCategories, t)
			}
		}
	}
	return cal.Serialize()
}

func sessionDescription(day model.EventDay, session model.Session) string {
	lines := make([]string, 0, 3)
	if day.Name != "" {
		lines = append(lines, fmt.Sprintf("Day %d: %s", day.DayNumber, day.Name))
	}
	if session.Speaker != "" {
		lines = append(lines, "Speaker: "+session.Speaker)
	}
	if session.Description != "" {
		lines = append(lines, session.Description)
	}
	return strings.Join(lines, "\n")
}
