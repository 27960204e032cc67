package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyMXN(t *testing.T) {
	m := NewMoneyMXNFromFloat(1234.56)
	assert.Equal(t, MXN, m.Currency())
	assert.True(t, m.IsPositive())
	assert.Equal(t, "1234.56", m.Amount().String())
}

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoneyMXNFromFloat(100)
	b := NewMoneyMXNFromFloat(40.5)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "140.5", sum.Amount().String())

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, "59.5", diff.Amount().String())

	doubled := a.Multiply(decimal.NewFromInt(2))
	assert.Equal(t, "200", doubled.Amount().String())
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	mxn := NewMoneyMXNFromFloat(100)
	usd, err := NewMoney(decimal.NewFromInt(100), USD)
	require.NoError(t, err)

	_, err = mxn.Add(usd)
	assert.Error(t, err)
	_, err = mxn.Subtract(usd)
	assert.Error(t, err)
	_, err = mxn.LessThan(usd)
	assert.Error(t, err)
}

func TestMoney_CalculatePercentage(t *testing.T) {
	rent := NewMoneyMXNFromFloat(2500)
	fee := rent.CalculatePercentage(decimal.NewFromInt(10))
	assert.Equal(t, "250", fee.Amount().String())
}

func TestMoney_Comparisons(t *testing.T) {
	small := NewMoneyMXNFromFloat(10)
	large := NewMoneyMXNFromFloat(20)

	less, err := small.LessThan(large)
	require.NoError(t, err)
	assert.True(t, less)

	gte, err := large.GreaterThanOrEqual(small)
	require.NoError(t, err)
	assert.True(t, gte)

	assert.True(t, small.Equals(NewMoneyMXNFromFloat(10)))
	assert.False(t, small.Equals(large))
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	original := NewMoneyMXNFromFloat(1500.75)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.Equals(decoded))
	assert.Equal(t, MXN, decoded.Currency())
}

func TestMoney_Zero(t *testing.T) {
	z := ZeroMXN()
	assert.True(t, z.IsZero())
	assert.False(t, z.IsPositive())
	assert.False(t, z.IsNegative())
}
