package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	c := NewFixedClock(start)
	assert.Equal(t, start, c.Now())

	c.Advance(48 * time.Hour)
	assert.Equal(t, start.Add(48*time.Hour), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}

func TestAddDaysAndStartOfDay(t *testing.T) {
	ts := time.Date(2024, 1, 31, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC), AddDays(ts, 30))
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), StartOfDay(ts))
}

func TestSystemClockIsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, SystemClock{}.Now().Location())
}
