package models

import "time"

// Cycle is one persisted menstrual cycle. EndDate stays NULL while the
// cycle is open; Length is the start-date gap to the next cycle once that
// cycle exists.
type Cycle struct {
	ID           string     `gorm:"primaryKey"`
	UserID       uint       `gorm:"not null;index"`
	StartDate    time.Time  `gorm:"type:date;not null"`
	EndDate      *time.Time `gorm:"type:date"`
	Length       *int
	PeriodLength *int
	CycleType    string
	Days         []CycleDay `gorm:"foreignKey:CycleID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CycleDay is one logged calendar day within a cycle. At most one row per
// (cycle, date).
type CycleDay struct {
	ID        uint      `gorm:"primaryKey"`
	CycleID   string    `gorm:"not null;uniqueIndex:uidx_cycle_date"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uidx_cycle_date"`
	Flow      string    `gorm:"not null;default:''"`
	Symptoms  []string  `gorm:"serializer:json"`
	Moods     []string  `gorm:"serializer:json"`
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
