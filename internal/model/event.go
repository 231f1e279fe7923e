package model

import "time"

type EventStatus string

var (
	Upcoming EventStatus = "upcoming"
	Live     EventStatus = "live"
	Ended    EventStatus = "ended"
)

type Event struct {
	ID          string     `gorm:"column:id;primaryKey" json:"id" yaml:"id"`
	Name        string     `gorm:"column:name" json:"name" yaml:"name"`
	Description string     `gorm:"column:description" json:"description" yaml:"description"`
	StartDate   time.Time  `gorm:"column:start_date" json:"start_date" yaml:"start_date"`
	EndDate     time.Time  `gorm:"column:end_date" json:"end_date" yaml:"end_date"`
	Year        int        `gorm:"column:year" json:"year" yaml:"year"`
	Month       int        `gorm:"column:month" json:"month" yaml:"month"`
	TotalDays   int        `gorm:"-" json:"total_days" yaml:"-"`
	Days        []EventDay `gorm:"foreignKey:EventID" json:"days" yaml:"days"`
	CreateDate  time.Time  `gorm:"column:create_date" json:"create_date" yaml:"-"`
	UpdateDate  time.Time  `gorm:"column:update_date" json:"update_date" yaml:"-"`
	DeleteDate  *time.Time `gorm:"column:delete_date" json:"delete_date,omitempty" yaml:"-"`
}

func (m *Event) TableName() string {
	return "events"
}

// CountDays returns the number of calendar days the event spans, both ends
// included. An event ending before it starts spans no days.
func (m *Event) CountDays() int {
	if m.StartDate.IsZero() || m.EndDate.IsZero() || m.EndDate.Before(m.StartDate) {
		return 0
	}
	start := m.StartDate.UTC()
	end := m.EndDate.UTC()
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(last.Sub(first).Hours()/24) + 1
}

// WithDerived fills the fields computed from stored columns.
func (m Event) WithDerived() Event {
	m.TotalDays = m.CountDays()
	return m
}

// SessionCount counts sessions across all days of the event.
func (m *Event) SessionCount() int {
	total := 0
	for _, day := range m.Days {
		total += len(day.Times)
	}
	return total
}

func (m *Event) StatusAt(now time.Time) EventStatus {
	switch {
	case now.Before(m.StartDate):
		return Upcoming
	case !m.EndDate.IsZero() && now.After(m.EndDate):
		return Ended
	default:
		return Live
	}
}

type EventDay struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id" yaml:"id"`
	EventID     string    `gorm:"column:event_id;index" json:"event_id" yaml:"-"`
	DayNumber   int       `gorm:"column:day_number" json:"day_number" yaml:"day_number"`
	Name        string    `gorm:"column:name" json:"name" yaml:"name"`
	Description string    `gorm:"column:description" json:"description" yaml:"description"`
	Times       []Session `gorm:"foreignKey:DayID" json:"times" yaml:"times"`
}

func (m *EventDay) TableName() string {
	return "event_days"
}

// Session is a single timed activity within a day.
type Session struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id" yaml:"id"`
	DayID       string    `gorm:"column:day_id;index" json:"day_id" yaml:"-"`
	Title       string    `gorm:"column:title" json:"title" yaml:"title"`
	Description string    `gorm:"column:description" json:"description" yaml:"description"`
	Type        string    `gorm:"column:type" json:"type" yaml:"type"`
	StartTime   time.Time `gorm:"column:start_time" json:"start_time" yaml:"start_time"`
	EndTime     time.Time `gorm:"column:end_time" json:"end_time" yaml:"end_time"`
	Speaker     string    `gorm:"column:speaker" json:"speaker" yaml:"speaker"`
}

func (m *Session) TableName() string {
	return "event_sessions"
}
