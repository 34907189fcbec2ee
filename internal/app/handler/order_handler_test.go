package handler

import (
	"testing"

	"amc-crm/internal/app/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRate(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.RateRequest
		base    float64
		wantPct float64
		wantAmt float64
		wantErr bool
	}{
		{
			name:    "только процент — сумма считается от базы",
			req:     dto.RateRequest{Percentage: 30},
			base:    1000,
			wantPct: 30,
			wantAmt: 300,
		},
		{
			name:    "только сумма — процент считается от базы",
			req:     dto.RateRequest{Amount: 300},
			base:    1000,
			wantPct: 30,
			wantAmt: 300,
		},
		{
			name:    "согласованная пара принимается",
			req:     dto.RateRequest{Percentage: 25, Amount: 250},
			base:    1000,
			wantPct: 25,
			wantAmt: 250,
		},
		{
			name:    "несогласованная пара отклоняется",
			req:     dto.RateRequest{Percentage: 25, Amount: 300},
			base:    1000,
			wantErr: true,
		},
		{
			name: "пустая ставка — нулевая пара",
			req:  dto.RateRequest{},
			base: 1000,
		},
		{
			name:    "нулевая база — процент от суммы равен нулю",
			req:     dto.RateRequest{Amount: 100},
			base:    0,
			wantPct: 0,
			wantAmt: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := resolveRate(tt.req, tt.base)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantPct, rate.Percentage, 0.001)
			assert.InDelta(t, tt.wantAmt, rate.Amount, 0.001)
		})
	}
}

func TestBuildPaymentTerms(t *testing.T) {
	t.Run("пустой список заменяется этапами по умолчанию", func(t *testing.T) {
		terms := buildPaymentTerms(nil, 1000)

		require.Len(t, terms, 3)
		assert.Equal(t, "UAT", terms[0].Name)
		assert.Equal(t, "Deployment", terms[1].Name)
		assert.Equal(t, "Signoff", terms[2].Name)
		for i, term := range terms {
			assert.Equal(t, i, term.Position)
			assert.Zero(t, term.PercentageFromBaseCost)
			assert.Zero(t, term.CalculatedAmount)
			assert.Nil(t, term.Date)
			assert.Equal(t, "pending", term.Status)
		}
	})

	t.Run("процент этапа дает пересчитанную сумму", func(t *testing.T) {
		terms := buildPaymentTerms([]dto.PaymentTermRequest{
			{Name: "Аванс", PercentageFromBaseCost: 40},
			{Name: "Закрытие", PercentageFromBaseCost: 60},
		}, 2000)

		require.Len(t, terms, 2)
		assert.InDelta(t, 800, terms[0].CalculatedAmount, 0.001)
		assert.InDelta(t, 1200, terms[1].CalculatedAmount, 0.001)
	})

	t.Run("фиксированная сумма дает пересчитанный процент", func(t *testing.T) {
		terms := buildPaymentTerms([]dto.PaymentTermRequest{
			{Name: "Аванс", CalculatedAmount: 500},
		}, 2000)

		require.Len(t, terms, 1)
		assert.InDelta(t, 25, terms[0].PercentageFromBaseCost, 0.001)
	})
}

func TestModulesCodec(t *testing.T) {
	t.Run("список модулей переживает кодирование", func(t *testing.T) {
		modules := []string{"billing", "reports"}

		raw := encodeModules(modules)
		require.NotEmpty(t, raw)
		assert.Equal(t, modules, decodeModules(raw))
	})

	t.Run("пустой список и пустая строка", func(t *testing.T) {
		assert.Empty(t, encodeModules(nil))
		assert.Nil(t, decodeModules(""))
	})

	t.Run("битая строка не роняет обработчик", func(t *testing.T) {
		assert.Nil(t, decodeModules("{не json"))
	})
}
