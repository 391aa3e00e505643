package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lunarialabs/lunaria/internal/cycle"
)

func TestExportEntriesAreFlattenedInDateOrder(t *testing.T) {
	tracker := trackerWithHistory(t)
	tracker.LogPeriod(day(t, "2024-02-26"), cycle.FlowSpotting)
	tracker.LogSymptom(day(t, "2024-02-27"), "headache")

	service := NewExportService()
	entries := service.BuildEntries(tracker.Records())

	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Date > entries[i].Date {
			t.Fatalf("entries out of order: %s before %s", entries[i-1].Date, entries[i].Date)
		}
	}

	summary := service.Summarize(entries)
	if !summary.HasData || summary.TotalEntries != 4 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.DateFrom != "2024-01-01" || summary.DateTo != "2024-02-27" {
		t.Fatalf("unexpected summary range: %+v", summary)
	}
}

func TestExportCSV(t *testing.T) {
	tracker := trackerWithHistory(t)
	tracker.LogPeriod(day(t, "2024-02-26"), cycle.FlowMedium)
	tracker.LogSymptom(day(t, "2024-02-26"), "cramps")
	tracker.LogMood(day(t, "2024-02-26"), "irritable")

	service := NewExportService()
	entries := service.BuildEntries(tracker.Records())

	var output bytes.Buffer
	if err := service.WriteCSV(&output, entries); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	if len(lines) != len(entries)+1 {
		t.Fatalf("expected header plus %d rows, got %d lines", len(entries), len(lines))
	}
	if !strings.HasPrefix(lines[0], "Date,Cycle,Flow") {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(output.String(), "cramps") || !strings.Contains(output.String(), "irritable") {
		t.Fatalf("expected symptoms and moods in the csv output")
	}
}

func TestExportSummaryEmpty(t *testing.T) {
	service := NewExportService()
	summary := service.Summarize(nil)
	if summary.HasData || summary.TotalEntries != 0 {
		t.Fatalf("unexpected empty summary: %+v", summary)
	}
}
