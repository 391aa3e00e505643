package api

import "github.com/lunarialabs/lunaria/internal/cycle"

type dayLogView struct {
	Date     string   `json:"date"`
	Flow     string   `json:"flow,omitempty"`
	Symptoms []string `json:"symptoms,omitempty"`
	Moods    []string `json:"moods,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

type cycleView struct {
	ID           string       `json:"id"`
	StartDate    string       `json:"start_date"`
	EndDate      *string      `json:"end_date,omitempty"`
	Length       *int         `json:"length,omitempty"`
	PeriodLength *int         `json:"period_length,omitempty"`
	CycleType    string       `json:"cycle_type,omitempty"`
	Days         []dayLogView `json:"days"`
}

type predictionsView struct {
	Available          bool     `json:"available"`
	AverageCycleLength int      `json:"average_cycle_length,omitempty"`
	NextPeriodDate     string   `json:"next_period_date,omitempty"`
	OvulationDate      string   `json:"ovulation_date,omitempty"`
	FertileDays        []string `json:"fertile_days,omitempty"`
	CycleDay           int      `json:"cycle_day,omitempty"`
	Phase              string   `json:"phase"`
}

func viewFromDayLog(entry cycle.DayLog) dayLogView {
	return dayLogView{
		Date:     cycle.FormatDay(entry.Date),
		Flow:     string(entry.Flow),
		Symptoms: entry.Symptoms,
		Moods:    entry.Moods,
		Notes:    entry.Notes,
	}
}

func viewFromRecord(record cycle.Record) cycleView {
	view := cycleView{
		ID:           record.ID,
		StartDate:    cycle.FormatDay(record.StartDate),
		Length:       record.Length,
		PeriodLength: record.PeriodLength,
		CycleType:    record.Type,
		Days:         make([]dayLogView, 0, len(record.Days)),
	}
	if record.EndDate != nil {
		formatted := cycle.FormatDay(*record.EndDate)
		view.EndDate = &formatted
	}
	for _, entry := range record.Days {
		view.Days = append(view.Days, viewFromDayLog(entry))
	}
	return view
}

func viewFromOverview(predictions *cycle.Predictions, cycleDay int, phase cycle.Phase) predictionsView {
	view := predictionsView{
		CycleDay: cycleDay,
		Phase:    string(phase),
	}
	if predictions == nil {
		return view
	}
	view.Available = true
	view.AverageCycleLength = predictions.AverageCycleLength
	view.NextPeriodDate = cycle.FormatDay(predictions.NextPeriod)
	view.OvulationDate = cycle.FormatDay(predictions.Ovulation)
	view.FertileDays = make([]string, 0, len(predictions.FertileWindow))
	for _, day := range predictions.FertileWindow {
		view.FertileDays = append(view.FertileDays, cycle.FormatDay(day))
	}
	return view
}
