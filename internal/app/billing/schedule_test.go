package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAMCScheduleAnnual(t *testing.T) {
	periods := AMCSchedule(date(2024, time.January, 1), date(2027, time.January, 1), 12)

	require.Len(t, periods, 3)
	assert.Equal(t, date(2024, time.January, 1), periods[0].From)
	assert.Equal(t, date(2025, time.January, 1), periods[0].To)
	assert.Equal(t, date(2026, time.January, 1), periods[2].From)
	assert.Equal(t, date(2027, time.January, 1), periods[2].To)
}

func TestAMCScheduleTruncatesLastPeriod(t *testing.T) {
	// договор на полтора года при годовом цикле — второй цикл короткий
	periods := AMCSchedule(date(2025, time.March, 1), date(2026, time.September, 1), 12)

	require.Len(t, periods, 2)
	assert.Equal(t, date(2026, time.March, 1), periods[1].From)
	assert.Equal(t, date(2026, time.September, 1), periods[1].To)
}

func TestAMCScheduleInvalidInput(t *testing.T) {
	assert.Nil(t, AMCSchedule(date(2026, time.January, 1), date(2025, time.January, 1), 12))
	assert.Nil(t, AMCSchedule(date(2025, time.January, 1), date(2026, time.January, 1), 0))
}
