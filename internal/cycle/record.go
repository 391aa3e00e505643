package cycle

import (
	"sort"
	"strings"
	"time"
)

// Flow describes bleeding intensity on a logged day.
type Flow string

const (
	FlowNone     Flow = ""
	FlowSpotting Flow = "spotting"
	FlowLight    Flow = "light"
	FlowMedium   Flow = "medium"
	FlowHeavy    Flow = "heavy"
)

// ParseFlow validates a flow value coming from the outside.
func ParseFlow(value string) (Flow, error) {
	switch Flow(strings.ToLower(strings.TrimSpace(value))) {
	case FlowSpotting:
		return FlowSpotting, nil
	case FlowLight:
		return FlowLight, nil
	case FlowMedium:
		return FlowMedium, nil
	case FlowHeavy:
		return FlowHeavy, nil
	default:
		return FlowNone, ErrInvalidFlow
	}
}

// DayLog holds everything logged for one calendar day inside a cycle.
type DayLog struct {
	Date     time.Time
	Flow     Flow
	Symptoms []string
	Moods    []string
	Notes    string
}

// IsEmpty reports whether the day carries no data at all. Empty day logs
// are dropped from their record instead of being stored.
func (d DayLog) IsEmpty() bool {
	return d.Flow == FlowNone && len(d.Symptoms) == 0 && len(d.Moods) == 0 && strings.TrimSpace(d.Notes) == ""
}

const (
	TypeRegular   = "regular"
	TypeIrregular = "irregular"
)

// Record is one menstrual cycle: its bleeding window and per-day logs.
// EndDate is nil while the cycle is still open; Length is the gap in days
// to the next cycle's start and is derived once that cycle exists.
type Record struct {
	ID           string
	StartDate    time.Time
	EndDate      *time.Time
	Length       *int
	PeriodLength *int
	Type         string
	Days         []DayLog
}

// Open reports whether this cycle is still being tracked.
func (r Record) Open() bool {
	return r.EndDate == nil
}

// DayOn returns the record's day log for the given date, if any.
func (r Record) DayOn(day time.Time) (DayLog, bool) {
	for _, entry := range r.Days {
		if sameDay(entry.Date, day) {
			return entry, true
		}
	}
	return DayLog{}, false
}

func (r *Record) upsertDay(entry DayLog) {
	for i := range r.Days {
		if sameDay(r.Days[i].Date, entry.Date) {
			r.Days[i] = entry
			r.sortDays()
			return
		}
	}
	r.Days = append(r.Days, entry)
	r.sortDays()
}

func (r *Record) removeDay(day time.Time) {
	kept := r.Days[:0]
	for _, entry := range r.Days {
		if !sameDay(entry.Date, day) {
			kept = append(kept, entry)
		}
	}
	r.Days = kept
}

func (r *Record) sortDays() {
	sort.Slice(r.Days, func(i, j int) bool {
		return r.Days[i].Date.Before(r.Days[j].Date)
	})
}

func toggleName(names []string, name string) []string {
	for i, existing := range names {
		if existing == name {
			return append(names[:i:i], names[i+1:]...)
		}
	}
	return append(names, name)
}
