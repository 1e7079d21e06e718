package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Type classifies a transaction as money going out or coming in.
type Type string

const (
	TypeExpense Type = "expense"
	TypeIncome  Type = "income"
)

// Category is the spending/earning category of a transaction.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryBills         Category = "bills"
	CategoryHealth        Category = "health"
	CategoryEducation     Category = "education"
	CategorySocial        Category = "social"
	CategorySalary        Category = "salary"
	CategoryInvestment    Category = "investment"
	CategoryDailyNeeds    Category = "daily_needs"
	CategoryGift          Category = "gift"
	CategoryOther         Category = "other"
)

// AccountSource is where the money moved from or to.
type AccountSource string

const (
	AccountSourceCash    AccountSource = "cash"
	AccountSourceBank    AccountSource = "bank"
	AccountSourceEwallet AccountSource = "ewallet"
)

var validCategories = map[Category]struct{}{
	CategoryFood: {}, CategoryTransport: {}, CategoryShopping: {},
	CategoryEntertainment: {}, CategoryBills: {}, CategoryHealth: {},
	CategoryEducation: {}, CategorySocial: {}, CategorySalary: {},
	CategoryInvestment: {}, CategoryDailyNeeds: {}, CategoryGift: {},
	CategoryOther: {},
}

// ParseType parses a wire value into a Type.
func ParseType(value string) (Type, error) {
	switch Type(strings.ToLower(value)) {
	case TypeExpense:
		return TypeExpense, nil
	case TypeIncome:
		return TypeIncome, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", value)
}

// ParseCategory parses a wire value into a Category.
func ParseCategory(value string) (Category, error) {
	category := Category(strings.ToLower(value))
	if _, ok := validCategories[category]; !ok {
		return "", fmt.Errorf("unknown category %q", value)
	}
	return category, nil
}

// ParseAccountSource parses a wire value into an AccountSource.
func ParseAccountSource(value string) (AccountSource, error) {
	switch AccountSource(strings.ToLower(value)) {
	case AccountSourceCash:
		return AccountSourceCash, nil
	case AccountSourceBank:
		return AccountSourceBank, nil
	case AccountSourceEwallet:
		return AccountSourceEwallet, nil
	}
	return "", fmt.Errorf("unknown account source %q", value)
}

// Transaction is the domain entity. The ID is client-generated at creation
// and stable for the entity's lifetime. IsSynced is a cache-only annotation:
// true iff the last known state has been durably accepted by the remote store.
type Transaction struct {
	ID              uuid.UUID       `json:"id"`
	UserID          string          `json:"user_id"`
	Amount          decimal.Decimal `json:"amount"`
	Category        Category        `json:"category"`
	Type            Type            `json:"type"`
	AccountSource   AccountSource   `json:"account_source"`
	Note            string          `json:"note"`
	Description     string          `json:"description,omitempty"`
	ImagePath       string          `json:"image_path,omitempty"`
	TransactionDate time.Time       `json:"transaction_date"`
	IsSynced        bool            `json:"is_synced"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Validate checks the invariants every write must satisfy.
func (t *Transaction) Validate() error {
	if t.ID == uuid.Nil {
		return errors.New("transaction id is required")
	}
	if !t.Amount.IsPositive() {
		return errors.New("amount must be positive")
	}
	if strings.TrimSpace(t.Note) == "" {
		return errors.New("note is required")
	}
	if _, err := ParseType(string(t.Type)); err != nil {
		return err
	}
	if _, err := ParseCategory(string(t.Category)); err != nil {
		return err
	}
	if _, err := ParseAccountSource(string(t.AccountSource)); err != nil {
		return err
	}
	return nil
}

// HasRemoteImage reports whether ImagePath refers to an object in the remote
// bucket rather than a local file. Local paths start with "/".
func (t *Transaction) HasRemoteImage() bool {
	return t.ImagePath != "" && !strings.HasPrefix(t.ImagePath, "/")
}
