package core

import (
	"errors"
	"strings"
)

const (
	TypeExpense TransactionType = "expense"
	TypeIncome  TransactionType = "income"

	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

type (
	// TransactionType discriminates recurring transactions.
	TransactionType string

	// Frequency is how often a recurring transaction fires.
	Frequency string

	// Expense is a single spend entry.
	Expense struct {
		ID          string   `json:"id"`
		Description string   `json:"description"`
		Amount      Money    `json:"amount"`
		Category    string   `json:"category"`
		Date        FlexDate `json:"date"`
		IsRecurring bool     `json:"isRecurring"`
	}

	// Bill is an upcoming or settled payment obligation.
	Bill struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Amount   Money    `json:"amount"`
		Category string   `json:"category"`
		DueDate  FlexDate `json:"dueDate"`
		IsPaid   bool     `json:"isPaid"`
	}

	// RecurringTransaction templates a repeating expense or income. The
	// next occurrence date is computed server-side, which is why clients
	// refetch after writes instead of patching locally.
	RecurringTransaction struct {
		ID                string          `json:"id"`
		Description       string          `json:"description"`
		Amount            Money           `json:"amount"`
		Category          string          `json:"category"`
		Type              TransactionType `json:"type"`
		Frequency         Frequency       `json:"frequency"`
		StartDate         FlexDate        `json:"startDate"`
		NextRecurringDate FlexDate        `json:"nextRecurringDate"`
	}

	// Warranty tracks a purchased product's coverage window. Retailer and
	// purchase price are optional; a zero price is treated as not recorded.
	Warranty struct {
		ID             string   `json:"id"`
		Product        string   `json:"product"`
		Retailer       string   `json:"retailer,omitempty"`
		Category       string   `json:"category"`
		PurchasePrice  Money    `json:"purchasePrice"`
		PurchaseDate   FlexDate `json:"purchaseDate"`
		ExpirationDate FlexDate `json:"expirationDate"`
		IsLifetime     bool     `json:"isLifetimeWarranty"`
	}

	// Goal is a savings target with accumulated contributions.
	Goal struct {
		ID           string   `json:"id"`
		Name         string   `json:"name"`
		TargetAmount Money    `json:"targetAmount"`
		SavedAmount  Money    `json:"savedAmount"`
		Category     string   `json:"category"`
		TargetDate   FlexDate `json:"targetDate"`
	}
)

var (
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyName        = errors.New("empty name")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidFrequency = errors.New("invalid frequency")
)

func (t TransactionType) Valid() bool {
	return t == TypeExpense || t == TypeIncome
}

func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if e.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (b Bill) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrEmptyName
	}
	if b.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (r RecurringTransaction) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return ErrEmptyDescription
	}
	if r.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if !r.Type.Valid() {
		return ErrInvalidType
	}
	if !r.Frequency.Valid() {
		return ErrInvalidFrequency
	}
	return nil
}

func (w Warranty) Validate() error {
	if strings.TrimSpace(w.Product) == "" {
		return ErrEmptyName
	}
	if w.PurchasePrice.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if g.TargetAmount.Cents < 0 || g.SavedAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}
