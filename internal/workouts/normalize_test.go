package workouts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizer_FromCSVRow(t *testing.T) {
	n := NewNormalizer(nil)

	w, err := n.FromCSVRow(map[string]string{
		ColStart:    "2024-05-12 07:30:00",
		ColEnd:      "2024-05-12 08:30:00",
		ColType:     "Outdoor Run",
		ColDuration: "1:00:00",
		ColDistance: "6.2",
		ColEnergy:   "512.3",
	})
	require.NoError(t, err)

	assert.Equal(t, "Outdoor Run", w.Type)
	assert.Equal(t, time.Date(2024, 5, 12, 7, 30, 0, 0, time.UTC), w.StartTime)
	assert.Equal(t, 3600, w.DurationSeconds)
	require.NotNil(t, w.DistanceMiles)
	assert.InDelta(t, 6.2, *w.DistanceMiles, 0.001)
	require.NotNil(t, w.ActiveEnergyKcal)
	assert.InDelta(t, 512.3, *w.ActiveEnergyKcal, 0.001)
	require.NotNil(t, w.PaceMinPerMile)
	assert.InDelta(t, 9.68, *w.PaceMinPerMile, 0.001)
}

func TestNormalizer_FromCSVRow_coercion(t *testing.T) {
	n := NewNormalizer(nil)

	// junk numerics come out absent, not as errors
	w, err := n.FromCSVRow(map[string]string{
		ColStart:    "2024-05-12 18:00:00",
		ColEnd:      "2024-05-12 19:00:00",
		ColType:     "Traditional Strength Training",
		ColDuration: "1:00:00",
		ColDistance: "n/a",
		ColEnergy:   "",
	})
	require.NoError(t, err)
	assert.Nil(t, w.DistanceMiles)
	assert.Nil(t, w.ActiveEnergyKcal)
	assert.Nil(t, w.PaceMinPerMile)
}

func TestNormalizer_FromCSVRow_badRows(t *testing.T) {
	n := NewNormalizer(nil)

	// broken timestamp
	_, err := n.FromCSVRow(map[string]string{
		ColStart:    "yesterday morning",
		ColEnd:      "2024-05-12 19:00:00",
		ColType:     "Outdoor Run",
		ColDuration: "1:00:00",
	})
	assert.Error(t, err)

	// broken duration
	_, err = n.FromCSVRow(map[string]string{
		ColStart:    "2024-05-12 18:00:00",
		ColEnd:      "2024-05-12 19:00:00",
		ColType:     "Outdoor Run",
		ColDuration: "an hour or so",
	})
	assert.Error(t, err)
}

func TestNormalizer_TypeAllowed(t *testing.T) {
	n := NewNormalizer([]string{"Outdoor Run", "Yoga"})
	assert.True(t, n.TypeAllowed("Outdoor Run"))
	assert.True(t, n.TypeAllowed("Yoga"))
	assert.False(t, n.TypeAllowed("Golf"))

	// empty allow-list lets everything through
	n = NewNormalizer(nil)
	assert.True(t, n.TypeAllowed("Golf"))
}

func TestNormalizer_FromWebhook(t *testing.T) {
	n := NewNormalizer(nil)

	duration := 1806.0
	w, err := n.FromWebhook(WebhookWorkout{
		ID:       "wk-1",
		Name:     "Outdoor Run",
		Start:    "2024-05-12 07:30:00 +0200",
		End:      "2024-05-12 08:00:06 +0200",
		Duration: &duration,
		Distance: &Measurement{Qty: 3.11, Units: "mi"},
		Route: []WebhookPoint{
			{Lat: 52.52, Lon: 13.405, Timestamp: "2024-05-12T07:30:05Z"},
			{Lat: 52.53, Lon: 13.406, Timestamp: "broken"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "wk-1", w.ExternalID)
	assert.Equal(t, "Outdoor Run", w.Type)
	assert.Equal(t, 1806, w.DurationSeconds)
	require.NotNil(t, w.PaceMinPerMile)
	assert.InDelta(t, 9.68, *w.PaceMinPerMile, 0.001)
	// broken route sample dropped, valid one kept
	require.Len(t, w.Route, 1)
	assert.InDelta(t, 52.52, w.Route[0].Lat, 0.0001)
}

func TestNormalizer_FromWebhook_durationFallback(t *testing.T) {
	n := NewNormalizer(nil)

	w, err := n.FromWebhook(WebhookWorkout{
		WorkoutActivityType: "Yoga",
		Start:               "2024-05-12 18:00:00",
		End:                 "2024-05-12 19:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Yoga", w.Type)
	assert.Equal(t, 3600, w.DurationSeconds)

	// end before start with no explicit duration
	_, err = n.FromWebhook(WebhookWorkout{
		Name:  "Outdoor Run",
		Start: "2024-05-12 19:00:00",
		End:   "2024-05-12 18:00:00",
	})
	assert.Error(t, err)
}
