package workouts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	testCases := []struct {
		duration string
		expected int
	}{
		{duration: "0:09:30", expected: 570},
		{duration: "1:00:00", expected: 3600},
		{duration: "0:30:06", expected: 1806},
		{duration: "45:30", expected: 2730},
		{duration: "90", expected: 90},
		{duration: "0:00:00", expected: 0},
		{duration: "10:00:00", expected: 36000},
		{duration: " 0:09:30 ", expected: 570},
	}

	for _, tc := range testCases {
		t.Run(tc.duration, func(t *testing.T) {
			got, err := ParseDuration(tc.duration)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestParseDuration_invalid(t *testing.T) {
	for _, duration := range []string{
		"", "abc", "1:xx:00", "1:2:-3", "1.5:00", "::",
	} {
		t.Run(duration, func(t *testing.T) {
			_, err := ParseDuration(duration)
			assert.Error(t, err)
		})
	}
}

func TestPace(t *testing.T) {
	distance := 3.0
	pace := Pace(1800, &distance)
	require.NotNil(t, pace)
	assert.Equal(t, 10.0, *pace)

	distance = 3.11
	pace = Pace(1806, &distance)
	require.NotNil(t, pace)
	assert.Equal(t, 9.68, *pace)

	// no pace without distance
	assert.Nil(t, Pace(1800, nil))
	zero := 0.0
	assert.Nil(t, Pace(1800, &zero))
	negative := -1.2
	assert.Nil(t, Pace(1800, &negative))
}
