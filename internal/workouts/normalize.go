package workouts

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CSV column names as found in the vendor export files.
const (
	ColStart    = "Start"
	ColEnd      = "End"
	ColType     = "Type"
	ColDuration = "Duration"
	ColDistance = "Distance (mi)"
	ColEnergy   = "Active Energy (kcal)"
)

// timestampLayouts are tried in order; the export files are not consistent
// about timezone suffixes and sub-minute precision.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Normalizer converts raw source records (CSV rows or webhook payload
// objects) into typed workouts, and applies the configured activity type
// allow-list. A nil/empty allow-list means every type passes.
type Normalizer struct {
	validTypes map[string]bool
}

func NewNormalizer(validTypes []string) *Normalizer {
	typesSet := make(map[string]bool, len(validTypes))
	for _, t := range validTypes {
		typesSet[t] = true
	}
	return &Normalizer{
		validTypes: typesSet,
	}
}

// TypeAllowed reports whether the given activity type passed the configured
// allow-list, for silent filtering after normalization.
func (n *Normalizer) TypeAllowed(activityType string) bool {
	if len(n.validTypes) == 0 {
		return true
	}
	return n.validTypes[activityType]
}

// FromCSVRow makes a workout from a raw CSV row (column name -> raw value).
// Unparseable timestamps and durations fail the row; unparseable distance or
// energy values just come out absent.
func (n *Normalizer) FromCSVRow(row map[string]string) (*Workout, error) {
	startTime, err := parseTimestamp(row[ColStart])
	if err != nil {
		return nil, fmt.Errorf("parse start time: %w", err)
	}
	endTime, err := parseTimestamp(row[ColEnd])
	if err != nil {
		return nil, fmt.Errorf("parse end time: %w", err)
	}

	durationSeconds, err := ParseDuration(row[ColDuration])
	if err != nil {
		return nil, fmt.Errorf("parse duration: %w", err)
	}

	distance := coerceFloat(row[ColDistance])
	energy := coerceFloat(row[ColEnergy])

	return &Workout{
		Type:             row[ColType],
		StartTime:        startTime,
		EndTime:          endTime,
		DurationSeconds:  durationSeconds,
		DistanceMiles:    distance,
		ActiveEnergyKcal: energy,
		PaceMinPerMile:   Pace(durationSeconds, distance),
	}, nil
}

// Measurement is a webhook payload quantity with its unit, e.g. {"qty": 6.2, "units": "mi"}.
type Measurement struct {
	Qty   float64 `json:"qty"`
	Units string  `json:"units"`
}

// WebhookWorkout mirrors one workout object of the health export webhook payload.
type WebhookWorkout struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	WorkoutActivityType string         `json:"workoutActivityType"`
	Start               string         `json:"start"`
	End                 string         `json:"end"`
	Duration            *float64       `json:"duration"` // seconds
	Distance            *Measurement   `json:"distance"`
	ActiveEnergyBurned  *Measurement   `json:"activeEnergyBurned"`
	Route               []WebhookPoint `json:"route,omitempty"`
}

type WebhookPoint struct {
	Lat                float64 `json:"lat"`
	Lon                float64 `json:"lon"`
	Altitude           float64 `json:"altitude"`
	Speed              float64 `json:"speed"`
	Course             float64 `json:"course"`
	HorizontalAccuracy float64 `json:"horizontalAccuracy"`
	VerticalAccuracy   float64 `json:"verticalAccuracy"`
	SpeedAccuracy      float64 `json:"speedAccuracy"`
	CourseAccuracy     float64 `json:"courseAccuracy"`
	Timestamp          string  `json:"timestamp"`
}

// ActivityType returns the workout type label; some export app versions send
// "name", others "workoutActivityType".
func (w WebhookWorkout) ActivityType() string {
	if w.Name != "" {
		return w.Name
	}
	return w.WorkoutActivityType
}

// FromWebhook makes a workout from one webhook payload object. When the
// payload carries no duration, the start/end difference is used instead.
func (n *Normalizer) FromWebhook(payload WebhookWorkout) (*Workout, error) {
	startTime, err := parseTimestamp(payload.Start)
	if err != nil {
		return nil, fmt.Errorf("parse start time: %w", err)
	}
	endTime, err := parseTimestamp(payload.End)
	if err != nil {
		return nil, fmt.Errorf("parse end time: %w", err)
	}

	durationSeconds := 0
	if payload.Duration != nil {
		durationSeconds = int(*payload.Duration)
	} else {
		durationSeconds = int(endTime.Sub(startTime).Seconds())
	}
	if durationSeconds < 0 {
		return nil, fmt.Errorf("negative duration for workout starting at %s", payload.Start)
	}

	var distance, energy *float64
	if payload.Distance != nil {
		distance = &payload.Distance.Qty
	}
	if payload.ActiveEnergyBurned != nil {
		energy = &payload.ActiveEnergyBurned.Qty
	}

	workout := &Workout{
		ExternalID:       payload.ID,
		Type:             payload.ActivityType(),
		StartTime:        startTime,
		EndTime:          endTime,
		DurationSeconds:  durationSeconds,
		DistanceMiles:    distance,
		ActiveEnergyKcal: energy,
		PaceMinPerMile:   Pace(durationSeconds, distance),
	}

	for _, p := range payload.Route {
		pointTime, err := parseTimestamp(p.Timestamp)
		if err != nil {
			// route samples are best-effort, a broken timestamp drops the sample
			continue
		}
		workout.Route = append(workout.Route, RoutePoint{
			Lat:                p.Lat,
			Lon:                p.Lon,
			Altitude:           p.Altitude,
			Speed:              p.Speed,
			Course:             p.Course,
			HorizontalAccuracy: p.HorizontalAccuracy,
			VerticalAccuracy:   p.VerticalAccuracy,
			SpeedAccuracy:      p.SpeedAccuracy,
			CourseAccuracy:     p.CourseAccuracy,
			Timestamp:          pointTime,
		})
	}

	return workout, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp format: %q", raw)
}

// coerceFloat parses a numeric field permissively: anything that fails to
// parse becomes an absent value, never an error.
func coerceFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &val
}
