package availability

import (
	"time"

	"tourbook/internal/pkg/dates"

	"github.com/google/uuid"
)

type Level string

const (
	LevelEmpty    Level = "empty"
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
	LevelFull     Level = "full"
)

// LevelFor buckets utilization. A slot with no capacity counts as full.
func LevelFor(booked, capacity int) (float64, Level) {
	if capacity <= 0 {
		return 1, LevelFull
	}
	u := float64(booked) / float64(capacity)
	switch {
	case booked == 0:
		return u, LevelEmpty
	case u < 0.40:
		return u, LevelLow
	case u < 0.75:
		return u, LevelModerate
	case u < 1.0:
		return u, LevelHigh
	default:
		return u, LevelFull
	}
}

type HeatmapEntry struct {
	TourID      uuid.UUID
	Date        time.Time
	Time        ClockTime
	BookedCount int
	MaxCapacity int
	Utilization float64
	Level       Level
}

// BuildHeatmap emits one entry per operating slot of every calendar in from..to.
func BuildHeatmap(cals []*Calendar, from, to time.Time, usage Usage) []HeatmapEntry {
	var out []HeatmapEntry
	for _, date := range dates.Between(from, to) {
		for _, cal := range cals {
			day := cal.Day(date)
			if !day.Operates() {
				continue
			}
			capacity := cal.CapacityOn(day.Window)
			for _, dep := range cal.Departures() {
				booked := usage.Booked(cal.TourID(), date, dep.Time)
				u, level := LevelFor(booked, capacity)
				out = append(out, HeatmapEntry{
					TourID:      cal.TourID(),
					Date:        date,
					Time:        dep.Time,
					BookedCount: booked,
					MaxCapacity: capacity,
					Utilization: u,
					Level:       level,
				})
			}
		}
	}
	return out
}
