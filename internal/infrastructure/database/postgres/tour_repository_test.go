package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestYearBounds(t *testing.T) {
	start, end := yearBounds(2026)

	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), end)

	// A departure in the last second of the year falls inside [start, end).
	lastMoment := time.Date(2026, time.December, 31, 23, 59, 59, 999999999, time.UTC)
	assert.False(t, lastMoment.Before(start))
	assert.True(t, lastMoment.Before(end))
}
