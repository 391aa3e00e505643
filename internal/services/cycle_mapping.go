package services

import (
	"github.com/lunarialabs/lunaria/internal/cycle"
	"github.com/lunarialabs/lunaria/internal/models"
)

func recordsFromModels(stored []models.Cycle) []cycle.Record {
	records := make([]cycle.Record, 0, len(stored))
	for _, item := range stored {
		record := cycle.Record{
			ID:           item.ID,
			StartDate:    cycle.DateOnly(item.StartDate),
			Length:       item.Length,
			PeriodLength: item.PeriodLength,
			Type:         item.CycleType,
		}
		if item.EndDate != nil {
			end := cycle.DateOnly(*item.EndDate)
			record.EndDate = &end
		}
		for _, day := range item.Days {
			record.Days = append(record.Days, cycle.DayLog{
				Date:     cycle.DateOnly(day.Date),
				Flow:     cycle.Flow(day.Flow),
				Symptoms: day.Symptoms,
				Moods:    day.Moods,
				Notes:    day.Notes,
			})
		}
		records = append(records, record)
	}
	return records
}

func modelFromRecord(userID uint, record cycle.Record) models.Cycle {
	stored := models.Cycle{
		ID:           record.ID,
		UserID:       userID,
		StartDate:    record.StartDate,
		EndDate:      record.EndDate,
		Length:       record.Length,
		PeriodLength: record.PeriodLength,
		CycleType:    record.Type,
	}
	for _, day := range record.Days {
		stored.Days = append(stored.Days, dayModel(record.ID, day))
	}
	return stored
}

func dayModel(cycleID string, entry cycle.DayLog) models.CycleDay {
	return models.CycleDay{
		CycleID:  cycleID,
		Date:     entry.Date,
		Flow:     string(entry.Flow),
		Symptoms: entry.Symptoms,
		Moods:    entry.Moods,
		Notes:    entry.Notes,
	}
}
