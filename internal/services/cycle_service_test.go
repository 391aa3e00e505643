package services

import (
	"testing"
	"time"

	"github.com/lunarialabs/lunaria/internal/cycle"
	"github.com/lunarialabs/lunaria/internal/models"
)

type fakeCycleStore struct {
	cycles map[string]*models.Cycle
	order  []string
}

func newFakeCycleStore() *fakeCycleStore {
	return &fakeCycleStore{cycles: make(map[string]*models.Cycle)}
}

func (store *fakeCycleStore) ListByUser(userID uint) ([]models.Cycle, error) {
	listed := make([]models.Cycle, 0, len(store.order))
	for _, id := range store.order {
		stored := store.cycles[id]
		if stored.UserID == userID {
			listed = append(listed, *stored)
		}
	}
	return listed, nil
}

func (store *fakeCycleStore) Create(record *models.Cycle) error {
	clone := *record
	store.cycles[record.ID] = &clone
	store.order = append(store.order, record.ID)
	return nil
}

func (store *fakeCycleStore) UpdateLength(cycleID string, length int) error {
	store.cycles[cycleID].Length = &length
	return nil
}

func (store *fakeCycleStore) Close(cycleID string, endDate time.Time, periodLength int) error {
	stored := store.cycles[cycleID]
	stored.EndDate = &endDate
	stored.PeriodLength = &periodLength
	return nil
}

func (store *fakeCycleStore) FindDay(cycleID string, dayStart time.Time, dayEnd time.Time) (models.CycleDay, bool, error) {
	for _, day := range store.cycles[cycleID].Days {
		if !day.Date.Before(dayStart) && day.Date.Before(dayEnd) {
			return day, true, nil
		}
	}
	return models.CycleDay{}, false, nil
}

func (store *fakeCycleStore) CreateDay(entry *models.CycleDay) error {
	stored := store.cycles[entry.CycleID]
	stored.Days = append(stored.Days, *entry)
	return nil
}

func (store *fakeCycleStore) SaveDay(entry *models.CycleDay) error {
	stored := store.cycles[entry.CycleID]
	for i := range stored.Days {
		if stored.Days[i].Date.Equal(entry.Date) {
			stored.Days[i] = *entry
			return nil
		}
	}
	stored.Days = append(stored.Days, *entry)
	return nil
}

func (store *fakeCycleStore) DeleteDay(cycleID string, dayStart time.Time, dayEnd time.Time) error {
	stored := store.cycles[cycleID]
	kept := stored.Days[:0]
	for _, day := range stored.Days {
		if day.Date.Before(dayStart) || !day.Date.Before(dayEnd) {
			kept = append(kept, day)
		}
	}
	stored.Days = kept
	return nil
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := cycle.ParseDay(value)
	if err != nil {
		t.Fatalf("parse day %s: %v", value, err)
	}
	return parsed
}

func TestLogPeriodPersistsNewCycle(t *testing.T) {
	store := newFakeCycleStore()
	service := NewCycleService(store)

	record, err := service.LogPeriod(1, day(t, "2024-01-01"), cycle.FlowMedium)
	if err != nil {
		t.Fatalf("log period: %v", err)
	}
	stored, ok := store.cycles[record.ID]
	if !ok {
		t.Fatalf("expected the new cycle to be persisted")
	}
	if len(stored.Days) != 1 || stored.Days[0].Flow != "medium" {
		t.Fatalf("expected one persisted medium day, got %+v", stored.Days)
	}
}

func TestLogPeriodUpsertsDayOnExistingCycle(t *testing.T) {
	store := newFakeCycleStore()
	service := NewCycleService(store)

	first, _ := service.LogPeriod(1, day(t, "2024-01-01"), cycle.FlowLight)
	second, err := service.LogPeriod(1, day(t, "2024-01-02"), cycle.FlowHeavy)
	if err != nil {
		t.Fatalf("log period: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the open cycle to be reused")
	}
	if len(store.cycles[first.ID].Days) != 2 {
		t.Fatalf("expected two persisted days, got %d", len(store.cycles[first.ID].Days))
	}
}

func TestSymptomTogglePersistsAndDeletes(t *testing.T) {
	store := newFakeCycleStore()
	service := NewCycleService(store)
	service.LogPeriod(1, day(t, "2024-01-01"), cycle.FlowMedium)

	_, outcome, err := service.LogSymptom(1, day(t, "2024-01-02"), "cramps")
	if err != nil || outcome != cycle.OutcomeApplied {
		t.Fatalf("toggle on failed: outcome=%s err=%v", outcome, err)
	}

	entry, found, err := service.DayLog(1, day(t, "2024-01-02"))
	if err != nil || !found {
		t.Fatalf("expected a persisted day log, found=%v err=%v", found, err)
	}
	if len(entry.Symptoms) != 1 || entry.Symptoms[0] != "cramps" {
		t.Fatalf("unexpected symptoms: %v", entry.Symptoms)
	}

	// Toggling the only symptom off empties the day; the row must go away.
	_, outcome, err = service.LogSymptom(1, day(t, "2024-01-02"), "cramps")
	if err != nil || outcome != cycle.OutcomeApplied {
		t.Fatalf("toggle off failed: outcome=%s err=%v", outcome, err)
	}
	if _, found, _ := service.DayLog(1, day(t, "2024-01-02")); found {
		t.Fatalf("expected the emptied day log to be deleted")
	}
}

func TestMoodToggleWithoutOpenCycleReportsOutcome(t *testing.T) {
	store := newFakeCycleStore()
	service := NewCycleService(store)

	_, outcome, err := service.LogMood(1, day(t, "2024-01-01"), "calm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != cycle.OutcomeNoOpenCycle {
		t.Fatalf("expected no_open_cycle, got %s", outcome)
	}
}

func TestEndPeriodPersistsClosureAndDerivedLength(t *testing.T) {
	store := newFakeCycleStore()
	service := NewCycleService(store)

	first, _ := service.LogPeriod(1, day(t, "2024-01-01"), cycle.FlowMedium)
	if _, outcome, err := service.EndPeriod(1, day(t, "2024-01-05")); err != nil || outcome != cycle.OutcomeApplied {
		t.Fatalf("end period failed: outcome=%s err=%v", outcome, err)
	}
	if store.cycles[first.ID].PeriodLength == nil || *store.cycles[first.ID].PeriodLength != 5 {
		t.Fatalf("expected persisted period length 5, got %v", store.cycles[first.ID].PeriodLength)
	}

	service.LogPeriod(1, day(t, "2024-01-29"), cycle.FlowLight)
	if store.cycles[first.ID].Length == nil || *store.cycles[first.ID].Length != 28 {
		t.Fatalf("expected derived length 28 to be persisted, got %v", store.cycles[first.ID].Length)
	}
}

func TestOverviewReportsPredictionsAndPhase(t *testing.T) {
	store := newFakeCycleStore()
	service := NewCycleService(store)

	service.LogPeriod(1, day(t, "2024-01-01"), cycle.FlowMedium)
	service.EndPeriod(1, day(t, "2024-01-05"))
	service.LogPeriod(1, day(t, "2024-01-29"), cycle.FlowLight)
	service.EndPeriod(1, day(t, "2024-02-02"))

	overview, err := service.Overview(1, day(t, "2024-02-10"))
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.Current != nil {
		t.Fatalf("expected no current cycle after both closed")
	}
	if overview.Predictions == nil {
		t.Fatalf("expected predictions with two closed cycles")
	}
	if cycle.FormatDay(overview.Predictions.NextPeriod) != "2024-02-26" {
		t.Fatalf("unexpected next period: %s", cycle.FormatDay(overview.Predictions.NextPeriod))
	}
	if overview.CycleDay != 13 {
		t.Fatalf("expected cycle day 13 on Feb 10, got %d", overview.CycleDay)
	}
	if overview.Phase != cycle.PhaseFollicular {
		t.Fatalf("expected follicular, got %s", overview.Phase)
	}
}

func TestOverviewWithoutHistory(t *testing.T) {
	store := newFakeCycleStore()
	service := NewCycleService(store)

	overview, err := service.Overview(1, day(t, "2024-02-10"))
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.Predictions != nil {
		t.Fatalf("expected predictions to be unavailable")
	}
	if overview.Phase != cycle.PhaseUnknown {
		t.Fatalf("expected unknown phase, got %s", overview.Phase)
	}
}
