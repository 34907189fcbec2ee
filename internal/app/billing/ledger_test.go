package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLedgerSeedsDefaults(t *testing.T) {
	l := NewLedger(9000)

	require.Len(t, l.Terms, 3)
	assert.Equal(t, "UAT", l.Terms[0].Name)
	assert.Equal(t, "Deployment", l.Terms[1].Name)
	assert.Equal(t, "Signoff", l.Terms[2].Name)

	for _, term := range l.Terms {
		assert.Zero(t, term.PercentageFromBaseCost)
		assert.Zero(t, term.CalculatedAmount)
		assert.Nil(t, term.Date)
	}
}

func TestLedgerEditPercentage(t *testing.T) {
	l := NewLedger(10000)

	require.NoError(t, l.Edit(0, TermFieldPercentage, 50))
	assert.Equal(t, 5000.0, l.Terms[0].CalculatedAmount)
}

func TestLedgerEditAmount(t *testing.T) {
	l := NewLedger(1000)

	// сумма 300 от базы 1000 — процент 30.00 с округлением до 2 знаков
	require.NoError(t, l.Edit(0, TermFieldAmount, 300))
	assert.Equal(t, 30.0, l.Terms[0].PercentageFromBaseCost)

	require.NoError(t, l.Edit(1, TermFieldAmount, 333.33))
	assert.Equal(t, 33.33, l.Terms[1].PercentageFromBaseCost)
}

func TestLedgerEditAmountZeroBase(t *testing.T) {
	l := NewLedger(0)

	require.NoError(t, l.Edit(0, TermFieldAmount, 300))
	assert.Equal(t, 0.0, l.Terms[0].PercentageFromBaseCost)
	assert.Equal(t, 300.0, l.Terms[0].CalculatedAmount)
}

func TestLedgerSetBaseCostRecomputesOnlyNonZero(t *testing.T) {
	l := NewLedger(1000)
	require.NoError(t, l.Edit(0, TermFieldPercentage, 50))
	// второй этап — фиксированная сумма без процента
	l.Terms[1].CalculatedAmount = 200

	l.SetBaseCost(2000)

	assert.Equal(t, 1000.0, l.Terms[0].CalculatedAmount)
	// ручная сумма без процента переживает смену базы
	assert.Equal(t, 200.0, l.Terms[1].CalculatedAmount)
	assert.Zero(t, l.Terms[2].CalculatedAmount)
}

func TestLedgerSetBaseCostAllZeroPercentages(t *testing.T) {
	l := NewLedger(0)
	l.SetBaseCost(9000)

	// смена базы не навязывает суммы этапам с нулевым процентом
	for _, term := range l.Terms {
		assert.Zero(t, term.CalculatedAmount)
	}
}

func TestLedgerAddRemove(t *testing.T) {
	l := NewLedger(1000)

	l.Add()
	require.Len(t, l.Terms, 4)
	added := l.Terms[3]
	assert.Empty(t, added.Name)
	assert.Zero(t, added.PercentageFromBaseCost)
	assert.Nil(t, added.Date)

	require.NoError(t, l.Remove(0))
	assert.Equal(t, "Deployment", l.Terms[0].Name)

	// список может опустеть полностью
	for len(l.Terms) > 0 {
		require.NoError(t, l.Remove(0))
	}
	assert.Error(t, l.Remove(0))
}

func TestLedgerTotals(t *testing.T) {
	l := NewLedger(10000)
	require.NoError(t, l.Edit(0, TermFieldPercentage, 40))
	require.NoError(t, l.Edit(1, TermFieldPercentage, 35))
	require.NoError(t, l.Edit(2, TermFieldPercentage, 25))

	assert.Equal(t, 100.0, l.PercentageTotal())
	assert.Equal(t, 10000.0, l.Total())
	assert.Empty(t, l.Warnings())
}

func TestLedgerWarnings(t *testing.T) {
	l := NewLedger(1000)
	require.NoError(t, l.Edit(0, TermFieldPercentage, 80))
	require.NoError(t, l.Edit(1, TermFieldPercentage, 50))

	warnings := l.Warnings()
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "превышает 100")
}

func TestLedgerSetNameAndDate(t *testing.T) {
	l := NewLedger(1000)
	date := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, l.SetName(0, "Предоплата"))
	require.NoError(t, l.SetDate(0, &date))
	assert.Equal(t, "Предоплата", l.Terms[0].Name)
	require.NotNil(t, l.Terms[0].Date)
	assert.True(t, date.Equal(*l.Terms[0].Date))

	assert.Error(t, l.SetName(10, "x"))
	assert.Error(t, l.SetDate(-1, nil))
}
