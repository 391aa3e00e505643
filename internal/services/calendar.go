package services

import (
	"math"
	"time"

	"github.com/lunarialabs/lunaria/internal/cycle"
)

// CalendarDayState carries everything the presentation layer needs to
// paint one calendar cell.
type CalendarDayState struct {
	Date        time.Time   `json:"-"`
	DateString  string      `json:"date"`
	Day         int         `json:"day"`
	InMonth     bool        `json:"in_month"`
	IsToday     bool        `json:"is_today"`
	IsPeriod    bool        `json:"is_period"`
	IsPredicted bool        `json:"is_predicted"`
	IsFertile   bool        `json:"is_fertile"`
	IsOvulation bool        `json:"is_ovulation"`
	HasData     bool        `json:"has_data"`
	Phase       cycle.Phase `json:"phase"`
}

// BuildMonthGrid renders a Sunday-anchored month grid over the tracker's
// records and predictions. Predicted markers stay empty while predictions
// are unavailable.
func BuildMonthGrid(monthStart time.Time, tracker *cycle.Tracker, now time.Time) []CalendarDayState {
	monthStart = cycle.DateOnly(monthStart)
	monthEnd := monthStart.AddDate(0, 1, -1)
	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, 6-int(monthEnd.Weekday()))

	periodByDate := make(map[string]bool)
	dataByDate := make(map[string]bool)
	for _, record := range tracker.Records() {
		for _, entry := range record.Days {
			key := cycle.FormatDay(entry.Date)
			dataByDate[key] = true
			if entry.Flow != cycle.FlowNone {
				periodByDate[key] = true
			}
		}
	}

	predictedByDate := make(map[string]bool)
	fertileByDate := make(map[string]bool)
	ovulationByDate := make(map[string]bool)
	if predictions, ok := tracker.Predictions(); ok {
		periodLength := averagePeriodLength(tracker.Records())
		for offset := 0; offset < periodLength; offset++ {
			predictedByDate[cycle.FormatDay(predictions.NextPeriod.AddDate(0, 0, offset))] = true
		}
		for _, day := range predictions.FertileWindow {
			fertileByDate[cycle.FormatDay(day)] = true
		}
		ovulationByDate[cycle.FormatDay(predictions.Ovulation)] = true
	}

	todayKey := cycle.FormatDay(cycle.DateOnly(now))

	days := make([]CalendarDayState, 0, 42)
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		key := cycle.FormatDay(day)
		isOvulation := ovulationByDate[key]
		isFertile := fertileByDate[key]
		if isOvulation {
			isFertile = false
		}

		days = append(days, CalendarDayState{
			Date:        day,
			DateString:  key,
			Day:         day.Day(),
			InMonth:     day.Month() == monthStart.Month(),
			IsToday:     key == todayKey,
			IsPeriod:    periodByDate[key],
			IsPredicted: predictedByDate[key],
			IsFertile:   isFertile,
			IsOvulation: isOvulation,
			HasData:     dataByDate[key],
			Phase:       tracker.PhaseOn(day),
		})
	}

	return days
}

func averagePeriodLength(records []cycle.Record) int {
	total := 0
	count := 0
	for _, record := range records {
		if record.PeriodLength != nil && *record.PeriodLength > 0 {
			total += *record.PeriodLength
			count++
		}
	}
	if count == 0 {
		return cycle.DefaultPeriodLength
	}
	return int(math.Round(float64(total) / float64(count)))
}
