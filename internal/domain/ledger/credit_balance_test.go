package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCredit(t *testing.T, amount float64) *CreditBalance {
	credit, err := NewCreditBalance(uuid.New(), decimal.NewFromFloat(amount), "pago adelantado")
	require.NoError(t, err)
	return credit
}

func TestNewCreditBalance(t *testing.T) {
	credit := createTestCredit(t, 500)

	assert.True(t, credit.IsActive())
	assert.True(t, credit.OriginalAmount.Equal(decimal.NewFromInt(500)))
	assert.True(t, credit.RemainingAmount.Equal(decimal.NewFromInt(500)))
	assert.Empty(t, credit.Applications)
	require.NoError(t, credit.CheckIntegrity())
}

func TestNewCreditBalance_Invalid(t *testing.T) {
	_, err := NewCreditBalance(uuid.Nil, decimal.NewFromInt(100), "")
	assert.Equal(t, "INVALID_TENANT", domainCode(t, err))

	_, err = NewCreditBalance(uuid.New(), decimal.Zero, "")
	assert.Equal(t, "INVALID_AMOUNT", domainCode(t, err))

	_, err = NewCreditBalance(uuid.New(), decimal.NewFromInt(-50), "")
	assert.Equal(t, "INVALID_AMOUNT", domainCode(t, err))
}

func TestCreditBalance_Merge(t *testing.T) {
	credit := createTestCredit(t, 300)

	require.NoError(t, credit.Merge(decimal.NewFromInt(200), "excedente Marzo 2024"))
	assert.True(t, credit.OriginalAmount.Equal(decimal.NewFromInt(500)))
	assert.True(t, credit.RemainingAmount.Equal(decimal.NewFromInt(500)))
	assert.Contains(t, credit.Description, "excedente Marzo 2024")
	require.NoError(t, credit.CheckIntegrity())

	err := credit.Merge(decimal.Zero, "")
	assert.Equal(t, "INVALID_AMOUNT", domainCode(t, err))
}

func TestCreditBalance_Apply(t *testing.T) {
	credit := createTestCredit(t, 500)
	recordID := uuid.New()

	require.NoError(t, credit.Apply(recordID, decimal.NewFromInt(300), time.Now()))
	assert.True(t, credit.RemainingAmount.Equal(decimal.NewFromInt(200)))
	require.Len(t, credit.Applications, 1)
	assert.Equal(t, recordID, credit.Applications[0].PaymentRecordID)
	require.NoError(t, credit.CheckIntegrity())

	// Drawing the rest exhausts the credit
	require.NoError(t, credit.Apply(uuid.New(), decimal.NewFromInt(200), time.Now()))
	assert.False(t, credit.IsActive())
	require.NoError(t, credit.CheckIntegrity())

	err := credit.Apply(uuid.New(), decimal.NewFromInt(1), time.Now())
	assert.Equal(t, "INVALID_STATE", domainCode(t, err))
}

func TestCreditBalance_Apply_OverRemaining(t *testing.T) {
	credit := createTestCredit(t, 100)

	err := credit.Apply(uuid.New(), decimal.NewFromInt(150), time.Now())
	assert.Equal(t, "INVALID_AMOUNT", domainCode(t, err))
	assert.True(t, credit.RemainingAmount.Equal(decimal.NewFromInt(100)))
	assert.Empty(t, credit.Applications)
}

func TestCreditBalance_CheckIntegrity_Violations(t *testing.T) {
	credit := createTestCredit(t, 500)
	require.NoError(t, credit.Apply(uuid.New(), decimal.NewFromInt(100), time.Now()))

	credit.RemainingAmount = decimal.NewFromInt(-10)
	assert.Equal(t, "DATA_INTEGRITY", domainCode(t, credit.CheckIntegrity()))

	credit.RemainingAmount = decimal.NewFromInt(250)
	assert.Equal(t, "DATA_INTEGRITY", domainCode(t, credit.CheckIntegrity()))
}
