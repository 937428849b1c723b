package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearledger/reconciler/internal/domain"
)

func TestRunEndToEnd(t *testing.T) {
	t.Parallel()

	erp := []domain.RawRecord{
		{"Date": "2024-03-01", "Amount": "100.00", "Invoice ID": "inv0001", "Status": "paid"},
		{"Date": "2024-03-02", "Amount": "50.00", "Invoice ID": "INV0002", "Status": "paid"},
		{"Date": "2024-03-03", "Amount": "75.00", "Invoice ID": "INV0003", "Status": "open"},
	}
	bank := []domain.RawRecord{
		{"Date": "2024-03-01", "Description": "Payment INV0001", "Amount": 100.00, "Ref ID": "TRX-1"},
		{"Date": "2024-03-02", "Description": "Payment INV0002", "Amount": 50.03, "Ref ID": "TRX-2"},
	}

	result, err := New(Options{}).Run(erp, bank)
	require.NoError(t, err)

	require.Len(t, result.Matches.Assignments, 2)
	assert.Equal(t, 0, result.Matches.Assignments[0].ERPIndex)
	assert.Equal(t, 0, result.Matches.Assignments[0].BankIndex)
	assert.Equal(t, 1, result.Matches.Assignments[1].ERPIndex)
	assert.Equal(t, 1, result.Matches.Assignments[1].BankIndex)
	assert.Equal(t, []int{2}, result.Matches.ERPUnmatched)
	assert.Empty(t, result.Matches.BankUnmatched)

	require.Len(t, result.Records, 3)

	assert.Equal(t, domain.StatusMatched, result.Records[0].Status)
	require.NotNil(t, result.Records[0].AmountDiff)
	assert.Equal(t, "0.00", result.Records[0].AmountDiff.StringFixed(2))

	assert.Equal(t, domain.StatusRoundingDiff, result.Records[1].Status)
	require.NotNil(t, result.Records[1].AmountDiff)
	assert.Equal(t, "0.03", result.Records[1].AmountDiff.StringFixed(2))

	assert.Equal(t, domain.StatusMissingInBank, result.Records[2].Status)
	require.NotNil(t, result.Records[2].ERPIndex)
	assert.Equal(t, 2, *result.Records[2].ERPIndex)
	assert.Nil(t, result.Records[2].AmountDiff)

	// One entry per pipeline stage plus the bank normalization.
	require.Len(t, result.Log, 4)
	assert.Equal(t, "normalizer", result.Log[0].Stage)
	assert.Equal(t, "matcher", result.Log[2].Stage)
	assert.Equal(t, "classifier", result.Log[3].Stage)
}

func TestRunDoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	erp := []domain.RawRecord{
		{"Date": "2024-03-01", "Amount": "1,000.00", "Invoice ID": " inv0001 ", "Status": "paid"},
	}
	bank := []domain.RawRecord{
		{"Date": "2024-03-01", "Description": "Payment INV0001", "Amount": "1000.00"},
	}

	_, err := New(Options{}).Run(erp, bank)
	require.NoError(t, err)

	assert.Equal(t, "1,000.00", erp[0]["Amount"])
	assert.Equal(t, " inv0001 ", erp[0]["Invoice ID"])
	assert.Equal(t, "Payment INV0001", bank[0]["Description"])
}

func TestRunStructuralFailure(t *testing.T) {
	t.Parallel()

	_, err := New(Options{}).Run(nil, []domain.RawRecord{})
	assert.Error(t, err)

	_, err = New(Options{}).Run([]domain.RawRecord{}, nil)
	assert.Error(t, err)
}

func TestRunEmptyLedgers(t *testing.T) {
	t.Parallel()

	result, err := New(Options{}).Run([]domain.RawRecord{}, []domain.RawRecord{
		{"Date": "2024-03-01", "Description": "Payment INV0001", "Amount": 10.0},
	})
	require.NoError(t, err)

	assert.Empty(t, result.Matches.Assignments)
	require.Len(t, result.Records, 1)
	assert.Equal(t, domain.StatusMissingInERP, result.Records[0].Status)
}
