package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func TestApplyRatePercentage(t *testing.T) {
	tests := []struct {
		name       string
		base       float64
		value      float64
		wantAmount float64
	}{
		{"десять процентов", 10000, 10, 1000},
		{"дробный процент", 9000, 12.5, 1125},
		{"ноль процентов", 5000, 0, 0},
		{"округление до копеек", 999, 33.33, 332.97},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyRate(Rate{}, RateModePercentage, fptr(tt.value), tt.base)
			assert.InDelta(t, tt.wantAmount, got.Amount, 0.001)
			assert.Equal(t, tt.value, got.Percentage)
		})
	}
}

func TestApplyRateAmount(t *testing.T) {
	got := ApplyRate(Rate{}, RateModeAmount, fptr(300), 1000)
	assert.InDelta(t, 30.00, got.Percentage, 0.001)
	assert.Equal(t, 300.0, got.Amount)

	// процент округляется до 2 знаков
	got = ApplyRate(Rate{}, RateModeAmount, fptr(333), 1000)
	assert.Equal(t, 33.3, got.Percentage)
}

func TestApplyRateZeroBase(t *testing.T) {
	// деление на ноль не должно паниковать, процент определен как 0
	got := ApplyRate(Rate{}, RateModeAmount, fptr(500), 0)
	assert.Equal(t, 0.0, got.Percentage)
	assert.Equal(t, 500.0, got.Amount)
}

func TestApplyRateNilValue(t *testing.T) {
	// очищенное поле посреди редактирования — пересчет не выполняется
	prev := Rate{Percentage: 10, Amount: 1000}
	got := ApplyRate(prev, RateModePercentage, nil, 10000)
	assert.Equal(t, prev, got)
}

func TestRateConsistent(t *testing.T) {
	r := RateFromBase(10, 10000)
	require.True(t, r.Consistent(10000))

	r.Amount = 900
	assert.False(t, r.Consistent(10000))
}

func TestRateWarnings(t *testing.T) {
	assert.Empty(t, Rate{Percentage: 100, Amount: 100}.Warnings())
	assert.Contains(t, Rate{Percentage: 120}.Warnings(), "процент превышает 100")
	assert.NotEmpty(t, Rate{Percentage: -5}.Warnings())
}
