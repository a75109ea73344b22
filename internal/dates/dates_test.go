package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsPermanent(t *testing.T) {
	tests := []struct {
		name      string
		days      int
		permanent bool
	}{
		{"zero is permanent", 0, true},
		{"one day", 1, false},
		{"monthly", 30, false},
		{"max fixed duration", 3650, false},
		{"at legacy threshold", 36500, false},
		{"above legacy threshold", 36501, true},
		{"legacy sentinel 99999", 99999, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.permanent, IsPermanent(tt.days))
		})
	}
}

func TestProjectEndDate(t *testing.T) {
	t.Run("crosses month boundary", func(t *testing.T) {
		end := ProjectEndDate(date(2024, time.January, 20), 30)
		require.NotNil(t, end)
		assert.Equal(t, date(2024, time.February, 19), *end)
	})

	t.Run("crosses year boundary", func(t *testing.T) {
		end := ProjectEndDate(date(2024, time.December, 15), 30)
		require.NotNil(t, end)
		assert.Equal(t, date(2025, time.January, 14), *end)
	})

	t.Run("leap year february", func(t *testing.T) {
		end := ProjectEndDate(date(2024, time.February, 1), 30)
		require.NotNil(t, end)
		assert.Equal(t, date(2024, time.March, 2), *end)
	})

	t.Run("annual plan", func(t *testing.T) {
		end := ProjectEndDate(date(2024, time.March, 1), 365)
		require.NotNil(t, end)
		assert.Equal(t, date(2025, time.March, 1), *end)
	})

	t.Run("permanent plan has no end date", func(t *testing.T) {
		assert.Nil(t, ProjectEndDate(date(2024, time.January, 1), 0))
		assert.Nil(t, ProjectEndDate(date(2024, time.January, 1), 99999))
	})

	t.Run("normalizes time-of-day away", func(t *testing.T) {
		start := time.Date(2024, time.January, 20, 18, 45, 12, 0, time.UTC)
		end := ProjectEndDate(start, 30)
		require.NotNil(t, end)
		assert.Equal(t, date(2024, time.February, 19), *end)
	})
}

func TestDaysRemaining(t *testing.T) {
	today := date(2024, time.March, 1)

	t.Run("future end date", func(t *testing.T) {
		end := date(2024, time.March, 10)
		days, ok := DaysRemaining(&end, today)
		require.True(t, ok)
		assert.Equal(t, 9, days)
	})

	t.Run("expires today", func(t *testing.T) {
		end := date(2024, time.March, 1)
		days, ok := DaysRemaining(&end, today)
		require.True(t, ok)
		assert.Equal(t, 0, days)
	})

	t.Run("already expired", func(t *testing.T) {
		end := date(2024, time.February, 1)
		days, ok := DaysRemaining(&end, today)
		require.True(t, ok)
		assert.Equal(t, -29, days)
	})

	t.Run("permanent never expires", func(t *testing.T) {
		_, ok := DaysRemaining(nil, today)
		assert.False(t, ok)
	})
}

func TestNextRenewalStart(t *testing.T) {
	today := date(2024, time.March, 1)

	t.Run("early renewal starts after current end", func(t *testing.T) {
		end := date(2024, time.March, 10)
		assert.Equal(t, date(2024, time.March, 11), NextRenewalStart(&end, today))
	})

	t.Run("expired subscription renews from today", func(t *testing.T) {
		end := date(2024, time.February, 1)
		assert.Equal(t, today, NextRenewalStart(&end, today))
	})

	t.Run("end date today renews from today", func(t *testing.T) {
		end := date(2024, time.March, 1)
		assert.Equal(t, today, NextRenewalStart(&end, today))
	})

	t.Run("no current end date", func(t *testing.T) {
		assert.Equal(t, today, NextRenewalStart(nil, today))
	})
}

func TestRenewalScenarios(t *testing.T) {
	t.Run("renew before expiry keeps remaining days", func(t *testing.T) {
		currentEnd := date(2024, time.March, 10)
		today := date(2024, time.March, 1)

		start := NextRenewalStart(&currentEnd, today)
		end := ProjectEndDate(start, 30)

		require.NotNil(t, end)
		assert.Equal(t, date(2024, time.March, 11), start)
		assert.Equal(t, date(2024, time.April, 10), *end)
	})

	t.Run("renew after expiry starts today", func(t *testing.T) {
		currentEnd := date(2024, time.February, 1)
		today := date(2024, time.March, 1)

		start := NextRenewalStart(&currentEnd, today)
		end := ProjectEndDate(start, 30)

		require.NotNil(t, end)
		assert.Equal(t, date(2024, time.March, 1), start)
		assert.Equal(t, date(2024, time.March, 31), *end)
	})
}
