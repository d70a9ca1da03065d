package workouts

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type Workout struct {
	ID               int          `json:"id"`
	ExternalID       string       `json:"externalId,omitempty"`
	Type             string       `json:"type"`
	StartTime        time.Time    `json:"startTime"`
	EndTime          time.Time    `json:"endTime"`
	DurationSeconds  int          `json:"durationSeconds"`
	DistanceMiles    *float64     `json:"distanceMiles,omitempty"`
	ActiveEnergyKcal *float64     `json:"activeEnergyKcal,omitempty"`
	PaceMinPerMile   *float64     `json:"paceMinPerMile,omitempty"`
	Route            []RoutePoint `json:"route,omitempty"`
	CreatedAt        time.Time    `json:"createdAt"`
}

type RoutePoint struct {
	Lat                float64   `json:"lat"`
	Lon                float64   `json:"lon"`
	Altitude           float64   `json:"altitude"`
	Speed              float64   `json:"speed"`
	Course             float64   `json:"course"`
	HorizontalAccuracy float64   `json:"horizontalAccuracy"`
	VerticalAccuracy   float64   `json:"verticalAccuracy"`
	SpeedAccuracy      float64   `json:"speedAccuracy"`
	CourseAccuracy     float64   `json:"courseAccuracy"`
	Timestamp          time.Time `json:"timestamp"`
}

// ProcessedFile marks a source file as fully ingested, so that re-running the
// import over the same folder skips it.
type ProcessedFile struct {
	Filename        string    `json:"filename"`
	FileCreatedAt   time.Time `json:"fileCreatedAt"`
	IngestedAt      time.Time `json:"ingestedAt"`
	RecordsInserted int       `json:"recordsInserted"`
}

// ParseDuration converts a colon separated clock string to total seconds.
// The rightmost component is seconds, and every component to the left weighs
// 60 times more, so both "MM:SS" and "H:MM:SS" (and longer) parse fine.
func ParseDuration(duration string) (int, error) {
	components := strings.Split(duration, ":")
	total := 0
	for _, c := range components {
		val, err := strconv.Atoi(strings.TrimSpace(c))
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", duration, err)
		}
		if val < 0 {
			return 0, fmt.Errorf("invalid duration %q: negative component", duration)
		}
		total = total*60 + val
	}
	return total, nil
}

// Pace returns minutes per mile, rounded to 2 decimals, or nil when the
// distance is missing or zero. No pace exists for non-distance activities.
func Pace(durationSeconds int, distanceMiles *float64) *float64 {
	if distanceMiles == nil || *distanceMiles <= 0 {
		return nil
	}
	pace := math.Round(float64(durationSeconds)/60/(*distanceMiles)*100) / 100
	return &pace
}
