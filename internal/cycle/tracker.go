package cycle

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidFlow = errors.New("invalid flow value")

// Outcome tells callers whether a mutation was applied or why it was not,
// instead of silently dropping writes.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeNoOpenCycle
	OutcomeDateBeforeStart
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeNoOpenCycle:
		return "no_open_cycle"
	case OutcomeDateBeforeStart:
		return "date_before_start"
	default:
		return "unknown"
	}
}

// PeriodLogResult reports what LogPeriod changed so callers can persist
// exactly the affected records.
type PeriodLogResult struct {
	Cycle   Record
	Created bool
	// PreviousUpdated is set when creating a new cycle derived the previous
	// cycle's length from the start-date gap.
	PreviousUpdated *Record
}

// Tracker owns a user's chronologically ordered cycle records and the
// predictions derived from them. It performs no I/O and is not safe for
// concurrent use; callers serialize mutations.
type Tracker struct {
	records        []Record
	predictions    Predictions
	hasPredictions bool
	newID          func() string
}

// NewTracker builds a tracker over existing records. The slice is copied
// and kept sorted by start date.
func NewTracker(records []Record) *Tracker {
	owned := make([]Record, len(records))
	copy(owned, records)
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].StartDate.Before(owned[j].StartDate)
	})

	tracker := &Tracker{
		records: owned,
		newID:   uuid.NewString,
	}
	tracker.recompute()
	return tracker
}

// Records returns the cycles in chronological order.
func (t *Tracker) Records() []Record {
	return t.records
}

// Current returns the open cycle, if one exists. At most one cycle is ever
// open.
func (t *Tracker) Current() (Record, bool) {
	for _, record := range t.records {
		if record.Open() {
			return record, true
		}
	}
	return Record{}, false
}

// LogPeriod records bleeding for a day. With an open cycle the day's flow
// is upserted; without one a new open cycle starting on that day is
// created.
func (t *Tracker) LogPeriod(day time.Time, flow Flow) PeriodLogResult {
	day = DateOnly(day)
	defer t.recompute()

	if index, ok := t.openIndex(); ok {
		record := &t.records[index]
		entry, found := record.DayOn(day)
		if !found {
			entry = DayLog{Date: day}
		}
		entry.Flow = flow
		record.upsertDay(entry)
		return PeriodLogResult{Cycle: *record}
	}

	created := Record{
		ID:        t.newID(),
		StartDate: day,
		Days:      []DayLog{{Date: day, Flow: flow}},
	}

	var previousUpdated *Record
	if len(t.records) > 0 {
		previous := &t.records[len(t.records)-1]
		if previous.Length == nil && utcDate(day).After(utcDate(previous.StartDate)) {
			gap := daysBetween(previous.StartDate, day)
			previous.Length = &gap
			snapshot := *previous
			previousUpdated = &snapshot
		}
	}

	t.records = append(t.records, created)
	sort.Slice(t.records, func(i, j int) bool {
		return t.records[i].StartDate.Before(t.records[j].StartDate)
	})
	return PeriodLogResult{Cycle: created, Created: true, PreviousUpdated: previousUpdated}
}

// LogSymptom toggles a symptom on the open cycle's day log.
func (t *Tracker) LogSymptom(day time.Time, name string) (Record, Outcome) {
	return t.toggle(day, name, func(entry *DayLog) {
		entry.Symptoms = toggleName(entry.Symptoms, name)
	})
}

// LogMood toggles a mood on the open cycle's day log.
func (t *Tracker) LogMood(day time.Time, name string) (Record, Outcome) {
	return t.toggle(day, name, func(entry *DayLog) {
		entry.Moods = toggleName(entry.Moods, name)
	})
}

func (t *Tracker) toggle(day time.Time, name string, apply func(*DayLog)) (Record, Outcome) {
	index, ok := t.openIndex()
	if !ok {
		return Record{}, OutcomeNoOpenCycle
	}
	day = DateOnly(day)
	defer t.recompute()

	record := &t.records[index]
	entry, found := record.DayOn(day)
	if !found {
		entry = DayLog{Date: day}
	}
	apply(&entry)

	if entry.IsEmpty() {
		record.removeDay(day)
	} else {
		record.upsertDay(entry)
	}
	return *record, OutcomeApplied
}

// EndPeriod closes the open cycle on the given day, setting its end date
// and inclusive period length. Days before the cycle's start are rejected.
func (t *Tracker) EndPeriod(day time.Time) (Record, Outcome) {
	index, ok := t.openIndex()
	if !ok {
		return Record{}, OutcomeNoOpenCycle
	}
	day = DateOnly(day)
	record := &t.records[index]
	if utcDate(day).Before(utcDate(record.StartDate)) {
		return Record{}, OutcomeDateBeforeStart
	}

	end := day
	periodLength := daysBetween(record.StartDate, day) + 1
	record.EndDate = &end
	record.PeriodLength = &periodLength
	t.recompute()
	return *record, OutcomeApplied
}

// DayLogOn scans every cycle for a day log on the given date; first match
// wins. Collections are tens of entries, so a linear scan is fine.
func (t *Tracker) DayLogOn(day time.Time) (DayLog, bool) {
	for _, record := range t.records {
		if entry, found := record.DayOn(day); found {
			return entry, true
		}
	}
	return DayLog{}, false
}

// Predictions returns the derived prediction set, reporting false while
// history is insufficient.
func (t *Tracker) Predictions() (Predictions, bool) {
	return t.predictions, t.hasPredictions
}

// CycleDayOn returns the 1-indexed day of cycle for the given date,
// counting from the most recent period start on or before it. Zero means
// no cycle covers the date.
func (t *Tracker) CycleDayOn(day time.Time) int {
	day = utcDate(day)
	var anchor time.Time
	for _, record := range t.records {
		start := utcDate(record.StartDate)
		if !start.After(day) && (anchor.IsZero() || start.After(anchor)) {
			anchor = start
		}
	}
	if anchor.IsZero() {
		return 0
	}
	return daysBetween(anchor, day) + 1
}

// PhaseOn classifies the given date against the most recent period start.
func (t *Tracker) PhaseOn(day time.Time) Phase {
	return PhaseForDay(t.CycleDayOn(day))
}

func (t *Tracker) openIndex() (int, bool) {
	for i := range t.records {
		if t.records[i].Open() {
			return i, true
		}
	}
	return 0, false
}

func (t *Tracker) recompute() {
	t.predictions, t.hasPredictions = Predict(t.records)
}
