package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentQuarter(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), "Q1 2025"},
		{time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC), "Q1 2025"},
		{time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), "Q2 2025"},
		{time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC), "Q3 2026"},
		{time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC), "Q4 2026"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CurrentQuarter(tt.date))
	}
}

func TestParseQuarter(t *testing.T) {
	q, year, err := ParseQuarter("Q2 2026")
	require.NoError(t, err)
	assert.Equal(t, 2, q)
	assert.Equal(t, 2026, year)

	_, _, err = ParseQuarter("Q5 2026")
	assert.Error(t, err)
	_, _, err = ParseQuarter("втор квартал")
	assert.Error(t, err)
}

func TestWithGranularityQuarterly(t *testing.T) {
	now := time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)
	s := Selection{Granularity: GranularityAll, ProductID: 7}

	next := s.WithGranularity(GranularityQuarterly, now)

	// квартал и год подставляются от текущей даты
	assert.Equal(t, "Q1 2025", next.Quarter)
	assert.Equal(t, 2025, next.Year)
	assert.Zero(t, next.Month)
	// фильтр по продукту не сбрасывается сменой гранулярности
	assert.Equal(t, uint(7), next.ProductID)
}

func TestWithGranularityResetsIrrelevant(t *testing.T) {
	now := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)
	s := Selection{Granularity: GranularityQuarterly, Quarter: "Q1 2025", Year: 2025, ProductID: 3}

	next := s.WithGranularity(GranularityYearly, now)
	assert.Equal(t, 2026, next.Year)
	assert.Empty(t, next.Quarter)
	assert.Equal(t, uint(3), next.ProductID)

	next = next.WithGranularity(GranularityAll, now)
	assert.Zero(t, next.Year)
	assert.Empty(t, next.Quarter)
	assert.Zero(t, next.Month)
	assert.Equal(t, uint(3), next.ProductID)
}

func TestRangeYearly(t *testing.T) {
	s := Selection{Granularity: GranularityYearly, Year: 2025}
	start, end, ok, err := s.Range()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestRangeQuarterly(t *testing.T) {
	s := Selection{Granularity: GranularityQuarterly, Quarter: "Q3 2026"}
	start, end, ok, err := s.Range()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestRangeMonthly(t *testing.T) {
	s := Selection{Granularity: GranularityMonthly, Year: 2026, Month: 12}
	start, end, ok, err := s.Range()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), end)

	s.Month = 13
	_, _, _, err = s.Range()
	assert.Error(t, err)
}

func TestRangeAll(t *testing.T) {
	_, _, ok, err := Selection{Granularity: GranularityAll}.Range()
	require.NoError(t, err)
	assert.False(t, ok)
}
