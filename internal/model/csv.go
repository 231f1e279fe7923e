package model

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
)

// ScheduleRow is one line of a schedule upload. Rows sharing a day number
// belong to the same EventDay; the first row of a day names it.
type ScheduleRow struct {
	Day            int    `csv:"day"`
	DayName        string `csv:"day_name"`
	DayDescription string `csv:"day_description"`
	Title          string `csv:"title"`
	Description    string `csv:"description"`
	Type           string `csv:"type"`
	Start          string `csv:"start"`
	End            string `csv:"end"`
	Speaker        string `csv:"speaker"`
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseSchedule reads schedule rows from CSV. A leading UTF-8 byte order
// mark, as written by spreadsheet exports, is skipped.
func ParseSchedule(r io.Reader) ([]*ScheduleRow, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	var rows []*ScheduleRow
	if err := gocsv.Unmarshal(br, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// BuildDays groups schedule rows into days ordered by day number. Session
// order within a day follows the file.
func BuildDays(rows []*ScheduleRow) ([]EventDayCreate, error) {
	byNumber := make(map[int]*EventDayCreate)
	for i, row := range rows {
		line := i + 2 // header is line 1
		if row.Day < 1 {
			return nil, fmt.Errorf("line %d: day must be a positive number", line)
		}
		title := strings.TrimSpace(row.Title)
		if title == "" {
			return nil, fmt.Errorf("line %d: title is required", line)
		}
		start, err := parseScheduleTime(row.Start)
		if err != nil {
			return nil, fmt.Errorf("line %d: start: %w", line, err)
		}
		end, err := parseScheduleTime(row.End)
		if err != nil {
			return nil, fmt.Errorf("line %d: end: %w", line, err)
		}
		if end.Before(start) {
			return nil, fmt.Errorf("line %d: end is before start", line)
		}

		day, ok := byNumber[row.Day]
		if !ok {
			day = &EventDayCreate{
				DayNumber:   row.Day,
				Name:        strings.TrimSpace(row.DayName),
				Description: strings.TrimSpace(row.DayDescription),
			}
			byNumber[row.Day] = day
		}
		day.Times = append(day.Times, SessionCreate{
			Title:       title,
			Description: strings.TrimSpace(row.Description),
			Type:        strings.TrimSpace(row.Type),
			StartTime:   start,
			EndTime:     end,
			Speaker:     strings.TrimSpace(row.Speaker),
		})
	}

	days := make([]EventDayCreate, 0, len(byNumber))
	for _, day := range byNumber {
		days = append(days, *day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].DayNumber < days[j].DayNumber
	})
	return days, nil
}

func parseScheduleTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
	}
	return t, nil
}
