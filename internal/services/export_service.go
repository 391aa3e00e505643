package services

import (
	"encoding/csv"
	"io"
	"sort"
	"strings"

	"github.com/lunarialabs/lunaria/internal/cycle"
)

var ExportCSVHeaders = []string{"Date", "Cycle", "Flow", "Symptoms", "Moods", "Notes"}

// ExportEntry is one flattened day log, detached from its cycle structure
// for spreadsheet-friendly output.
type ExportEntry struct {
	Date     string   `json:"date"`
	CycleID  string   `json:"cycle_id"`
	Flow     string   `json:"flow"`
	Symptoms []string `json:"symptoms"`
	Moods    []string `json:"moods"`
	Notes    string   `json:"notes"`
}

type ExportSummary struct {
	TotalEntries int    `json:"total_entries"`
	HasData      bool   `json:"has_data"`
	DateFrom     string `json:"date_from"`
	DateTo       string `json:"date_to"`
}

type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// BuildEntries flattens every cycle's day logs into date order.
func (service *ExportService) BuildEntries(records []cycle.Record) []ExportEntry {
	entries := make([]ExportEntry, 0)
	for _, record := range records {
		for _, day := range record.Days {
			entries = append(entries, ExportEntry{
				Date:     cycle.FormatDay(day.Date),
				CycleID:  record.ID,
				Flow:     string(day.Flow),
				Symptoms: day.Symptoms,
				Moods:    day.Moods,
				Notes:    day.Notes,
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
	return entries
}

func (service *ExportService) Summarize(entries []ExportEntry) ExportSummary {
	summary := ExportSummary{TotalEntries: len(entries)}
	if len(entries) == 0 {
		return summary
	}
	summary.HasData = true
	summary.DateFrom = entries[0].Date
	summary.DateTo = entries[len(entries)-1].Date
	return summary
}

func (service *ExportService) WriteCSV(w io.Writer, entries []ExportEntry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ExportCSVHeaders); err != nil {
		return err
	}
	for _, entry := range entries {
		row := []string{
			entry.Date,
			entry.CycleID,
			entry.Flow,
			strings.Join(entry.Symptoms, "; "),
			strings.Join(entry.Moods, "; "),
			entry.Notes,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
