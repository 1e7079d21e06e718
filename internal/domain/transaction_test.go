package domain

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validTransaction() Transaction {
	return Transaction{
		ID:              uuid.Must(uuid.NewV4()),
		UserID:          "user-123",
		Amount:          decimal.NewFromInt(25000),
		Category:        CategoryFood,
		Type:            TypeExpense,
		AccountSource:   AccountSourceCash,
		Note:            "lunch",
		TransactionDate: time.Now(),
	}
}

func TestValidate_ValidTransaction(t *testing.T) {
	transaction := validTransaction()
	assert.NoError(t, transaction.Validate())
}

func TestValidate_RejectsBadFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Transaction)
	}{
		{"missing id", func(tr *Transaction) { tr.ID = uuid.Nil }},
		{"zero amount", func(tr *Transaction) { tr.Amount = decimal.Zero }},
		{"negative amount", func(tr *Transaction) { tr.Amount = decimal.NewFromInt(-10) }},
		{"blank note", func(tr *Transaction) { tr.Note = "   " }},
		{"unknown type", func(tr *Transaction) { tr.Type = "transfer" }},
		{"unknown category", func(tr *Transaction) { tr.Category = "gambling" }},
		{"unknown account source", func(tr *Transaction) { tr.AccountSource = "crypto" }},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			transaction := validTransaction()
			testCase.mutate(&transaction)
			assert.Error(t, transaction.Validate())
		})
	}
}

func TestParseType_CaseInsensitive(t *testing.T) {
	parsed, err := ParseType("EXPENSE")
	assert.NoError(t, err)
	assert.Equal(t, TypeExpense, parsed)

	_, err = ParseType("transfer")
	assert.Error(t, err)
}

func TestParseCategory(t *testing.T) {
	parsed, err := ParseCategory("daily_needs")
	assert.NoError(t, err)
	assert.Equal(t, CategoryDailyNeeds, parsed)

	_, err = ParseCategory("gambling")
	assert.Error(t, err)
}

func TestHasRemoteImage(t *testing.T) {
	transaction := validTransaction()

	transaction.ImagePath = ""
	assert.False(t, transaction.HasRemoteImage())

	transaction.ImagePath = "/data/transaction_images/local.jpg"
	assert.False(t, transaction.HasRemoteImage())

	transaction.ImagePath = "user-123/receipt.jpg"
	assert.True(t, transaction.HasRemoteImage())
}
