package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanTerms holds the optional loan attributes of an account. The engine
// reads these to split a principal into per-installment obligations; it does
// not own the account entity itself.
type LoanTerms struct {
	Principal        decimal.Decimal `json:"principal"`
	InstallmentCount int             `json:"installment_count"`
	StartDate        time.Time       `json:"start_date"`
}

// Account is the slice of the account entity this engine cares about: the
// stored balance reconciliation checks, and the optional loan and credit
// attributes.
type Account struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`

	// CreditLimit, when set, lets reconciliation derive a balance from an
	// available-credit snapshot.
	CreditLimit *decimal.Decimal `json:"credit_limit,omitempty"`

	Loan *LoanTerms `json:"loan,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
