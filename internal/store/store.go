// Package store defines the persistence collaborator interfaces the engine
// depends on, plus the in-memory and YAML-file implementations. The engine
// never assumes a storage technology: everything downstream of these
// interfaces is replaceable.
package store

import (
	"github.com/google/uuid"

	"duebook/internal/models"
)

// ObligationRepository is the load/save/delete surface for obligations.
// Every call is a single logical step that completes before the next.
type ObligationRepository interface {
	LoadAll() ([]models.Obligation, error)
	LoadByID(id uuid.UUID) (models.Obligation, error)
	LoadByStatus(status models.Status) ([]models.Obligation, error)
	LoadBySeries(seriesID uuid.UUID) ([]models.Obligation, error)
	Save(obligation models.Obligation) error
	Delete(id uuid.UUID) error
}

// AccountRepository is the load/save surface for accounts.
type AccountRepository interface {
	LoadAccount(id uuid.UUID) (models.Account, error)
	SaveAccount(account models.Account) error
}

// TransactionLedger is the read-only view of recorded transactions.
type TransactionLedger interface {
	LoadByAccount(accountID uuid.UUID) ([]models.Transaction, error)
	LoadAllTransactions() ([]models.Transaction, error)
}
