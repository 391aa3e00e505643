package cycle

import (
	"math"
	"time"
)

const (
	// DefaultCycleLength fills in for closed cycles whose length could not
	// be derived yet. A policy choice, not a measured value.
	DefaultCycleLength = 28

	// DefaultPeriodLength is used when no bleeding history exists to
	// average, e.g. when projecting future period days onto a calendar.
	DefaultPeriodLength = 5

	lutealPhaseDays   = 14
	fertileDaysBefore = 5
	fertileDaysAfter  = 1
)

// Predictions are derived from closed cycles only and recomputed from
// scratch after every mutation.
type Predictions struct {
	AverageCycleLength int
	NextPeriod         time.Time
	Ovulation          time.Time
	FertileWindow      []time.Time
}

// Predict derives forward-looking predictions from the given records.
// It reports false while fewer than two closed cycles exist; callers must
// treat that as a normal state, not a failure.
func Predict(records []Record) (Predictions, bool) {
	closed := make([]Record, 0, len(records))
	for _, record := range records {
		if !record.Open() {
			closed = append(closed, record)
		}
	}
	if len(closed) < 2 {
		return Predictions{}, false
	}

	total := 0
	for _, record := range closed {
		length := DefaultCycleLength
		if record.Length != nil {
			length = *record.Length
		}
		total += length
	}
	average := int(math.Round(float64(total) / float64(len(closed))))

	lastStart := closed[0].StartDate
	for _, record := range closed[1:] {
		if record.StartDate.After(lastStart) {
			lastStart = record.StartDate
		}
	}

	nextPeriod := DateOnly(lastStart).AddDate(0, 0, average)
	ovulation := nextPeriod.AddDate(0, 0, -lutealPhaseDays)

	window := make([]time.Time, 0, fertileDaysBefore+fertileDaysAfter+1)
	for offset := -fertileDaysBefore; offset <= fertileDaysAfter; offset++ {
		window = append(window, ovulation.AddDate(0, 0, offset))
	}

	return Predictions{
		AverageCycleLength: average,
		NextPeriod:         nextPeriod,
		Ovulation:          ovulation,
		FertileWindow:      window,
	}, true
}
