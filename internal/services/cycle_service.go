package services

import (
	"errors"
	"time"

	"github.com/lunarialabs/lunaria/internal/cycle"
	"github.com/lunarialabs/lunaria/internal/models"
)

var (
	ErrCycleLoadFailed   = errors.New("load cycles failed")
	ErrCyclePersistError = errors.New("persist cycle failed")
)

// CycleStore is the persistence surface the cycle service needs.
type CycleStore interface {
	ListByUser(userID uint) ([]models.Cycle, error)
	Create(record *models.Cycle) error
	UpdateLength(cycleID string, length int) error
	Close(cycleID string, endDate time.Time, periodLength int) error
	FindDay(cycleID string, dayStart time.Time, dayEnd time.Time) (models.CycleDay, bool, error)
	CreateDay(entry *models.CycleDay) error
	SaveDay(entry *models.CycleDay) error
	DeleteDay(cycleID string, dayStart time.Time, dayEnd time.Time) error
}

// CycleService loads a user's cycle history into an in-memory tracker,
// applies one mutation, and writes back exactly what changed. All
// derived state is recomputed by the tracker on every call.
type CycleService struct {
	cycles CycleStore
}

func NewCycleService(cycles CycleStore) *CycleService {
	return &CycleService{cycles: cycles}
}

// Overview bundles everything the presentation layer reads back after a
// mutation. Predictions are nil while history is insufficient; that is a
// normal state, not an error.
type Overview struct {
	Cycles      []cycle.Record
	Current     *cycle.Record
	Predictions *cycle.Predictions
	CycleDay    int
	Phase       cycle.Phase
}

func (service *CycleService) TrackerForUser(userID uint) (*cycle.Tracker, error) {
	stored, err := service.cycles.ListByUser(userID)
	if err != nil {
		return nil, ErrCycleLoadFailed
	}
	return cycle.NewTracker(recordsFromModels(stored)), nil
}

func (service *CycleService) Overview(userID uint, now time.Time) (Overview, error) {
	tracker, err := service.TrackerForUser(userID)
	if err != nil {
		return Overview{}, err
	}

	overview := Overview{
		Cycles:   tracker.Records(),
		CycleDay: tracker.CycleDayOn(now),
		Phase:    tracker.PhaseOn(now),
	}
	if current, ok := tracker.Current(); ok {
		overview.Current = &current
	}
	if predictions, ok := tracker.Predictions(); ok {
		overview.Predictions = &predictions
	}
	return overview, nil
}

// LogPeriod upserts a bleeding day on the open cycle, creating a new open
// cycle when none exists.
func (service *CycleService) LogPeriod(userID uint, day time.Time, flow cycle.Flow) (cycle.Record, error) {
	tracker, err := service.TrackerForUser(userID)
	if err != nil {
		return cycle.Record{}, err
	}

	result := tracker.LogPeriod(day, flow)
	if result.Created {
		stored := modelFromRecord(userID, result.Cycle)
		if err := service.cycles.Create(&stored); err != nil {
			return cycle.Record{}, ErrCyclePersistError
		}
		if result.PreviousUpdated != nil && result.PreviousUpdated.Length != nil {
			if err := service.cycles.UpdateLength(result.PreviousUpdated.ID, *result.PreviousUpdated.Length); err != nil {
				return cycle.Record{}, ErrCyclePersistError
			}
		}
		return result.Cycle, nil
	}

	if err := service.persistDay(result.Cycle, day); err != nil {
		return cycle.Record{}, err
	}
	return result.Cycle, nil
}

// LogSymptom toggles a symptom name on the open cycle's day log.
func (service *CycleService) LogSymptom(userID uint, day time.Time, name string) (cycle.Record, cycle.Outcome, error) {
	return service.toggle(userID, day, func(tracker *cycle.Tracker) (cycle.Record, cycle.Outcome) {
		return tracker.LogSymptom(day, name)
	})
}

// LogMood toggles a mood name on the open cycle's day log.
func (service *CycleService) LogMood(userID uint, day time.Time, name string) (cycle.Record, cycle.Outcome, error) {
	return service.toggle(userID, day, func(tracker *cycle.Tracker) (cycle.Record, cycle.Outcome) {
		return tracker.LogMood(day, name)
	})
}

func (service *CycleService) toggle(userID uint, day time.Time, apply func(*cycle.Tracker) (cycle.Record, cycle.Outcome)) (cycle.Record, cycle.Outcome, error) {
	tracker, err := service.TrackerForUser(userID)
	if err != nil {
		return cycle.Record{}, cycle.OutcomeNoOpenCycle, err
	}

	record, outcome := apply(tracker)
	if outcome != cycle.OutcomeApplied {
		return cycle.Record{}, outcome, nil
	}
	if err := service.persistDay(record, day); err != nil {
		return cycle.Record{}, outcome, err
	}
	return record, outcome, nil
}

// EndPeriod closes the open cycle; the record becomes immutable history.
func (service *CycleService) EndPeriod(userID uint, day time.Time) (cycle.Record, cycle.Outcome, error) {
	tracker, err := service.TrackerForUser(userID)
	if err != nil {
		return cycle.Record{}, cycle.OutcomeNoOpenCycle, err
	}

	record, outcome := tracker.EndPeriod(day)
	if outcome != cycle.OutcomeApplied {
		return cycle.Record{}, outcome, nil
	}
	if err := service.cycles.Close(record.ID, *record.EndDate, *record.PeriodLength); err != nil {
		return cycle.Record{}, outcome, ErrCyclePersistError
	}
	return record, outcome, nil
}

// DayLog finds the day log for a date across all of the user's cycles.
func (service *CycleService) DayLog(userID uint, day time.Time) (cycle.DayLog, bool, error) {
	tracker, err := service.TrackerForUser(userID)
	if err != nil {
		return cycle.DayLog{}, false, err
	}
	entry, found := tracker.DayLogOn(day)
	return entry, found, nil
}

// persistDay mirrors the tracker's state for one date into the store: an
// upsert when the day log survived the mutation, a delete when it was
// emptied out.
func (service *CycleService) persistDay(record cycle.Record, day time.Time) error {
	dayStart := cycle.DateOnly(day)
	dayEnd := dayStart.AddDate(0, 0, 1)

	entry, found := record.DayOn(day)
	if !found {
		if err := service.cycles.DeleteDay(record.ID, dayStart, dayEnd); err != nil {
			return ErrCyclePersistError
		}
		return nil
	}

	existing, exists, err := service.cycles.FindDay(record.ID, dayStart, dayEnd)
	if err != nil {
		return ErrCycleLoadFailed
	}
	if exists {
		existing.Flow = string(entry.Flow)
		existing.Symptoms = entry.Symptoms
		existing.Moods = entry.Moods
		existing.Notes = entry.Notes
		if err := service.cycles.SaveDay(&existing); err != nil {
			return ErrCyclePersistError
		}
		return nil
	}

	stored := dayModel(record.ID, entry)
	if err := service.cycles.CreateDay(&stored); err != nil {
		return ErrCyclePersistError
	}
	return nil
}
