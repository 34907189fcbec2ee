package handler

import (
	"testing"

	"amc-crm/internal/app/reports"

	"github.com/stretchr/testify/assert"
)

func TestSelectionLabel(t *testing.T) {
	tests := []struct {
		name string
		sel  reports.Selection
		want string
	}{
		{
			name: "всё время",
			sel:  reports.Selection{Granularity: reports.GranularityAll},
			want: "за всё время",
		},
		{
			name: "год",
			sel:  reports.Selection{Granularity: reports.GranularityYearly, Year: 2026},
			want: "2026",
		},
		{
			name: "квартал",
			sel:  reports.Selection{Granularity: reports.GranularityQuarterly, Quarter: "Q3 2026"},
			want: "Q3 2026",
		},
		{
			name: "месяц",
			sel:  reports.Selection{Granularity: reports.GranularityMonthly, Year: 2026, Month: 8},
			want: "2026-08",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, selectionLabel(tt.sel))
		})
	}
}

func TestReportCacheKey(t *testing.T) {
	base := reports.Selection{Granularity: reports.GranularityYearly, Year: 2026}

	// Разные параметры выбора дают разные ключи кеша
	assert.NotEqual(t,
		reportCacheKey("overall-sales", base),
		reportCacheKey("amc-revenue", base))

	withProduct := base
	withProduct.ProductID = 7
	assert.NotEqual(t,
		reportCacheKey("overall-sales", base),
		reportCacheKey("overall-sales", withProduct))
}
