package store

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"duebook/internal/engineerror"
	"duebook/internal/models"
)

// MemoryStore is an in-memory implementation of the repository interfaces.
// It backs the unit tests and doubles as the working set for one CLI run.
type MemoryStore struct {
	mu           sync.RWMutex
	obligations  map[uuid.UUID]models.Obligation
	accounts     map[uuid.UUID]models.Account
	transactions []models.Transaction
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		obligations: make(map[uuid.UUID]models.Obligation),
		accounts:    make(map[uuid.UUID]models.Account),
	}
}

// LoadAll returns every stored obligation, ordered by creation time so that
// repeated calls observe a stable order.
func (s *MemoryStore) LoadAll() ([]models.Obligation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Obligation, 0, len(s.obligations))
	for _, o := range s.obligations {
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// LoadByID returns a single obligation or a NotFoundError.
func (s *MemoryStore) LoadByID(id uuid.UUID) (models.Obligation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.obligations[id]
	if !ok {
		return models.Obligation{}, &engineerror.NotFoundError{Entity: "obligation", ID: id.String()}
	}
	return o, nil
}

// LoadByStatus returns obligations in the given status.
func (s *MemoryStore) LoadByStatus(status models.Status) ([]models.Obligation, error) {
	all, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	out := make([]models.Obligation, 0)
	for _, o := range all {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

// LoadBySeries returns the obligations sharing one series id.
func (s *MemoryStore) LoadBySeries(seriesID uuid.UUID) ([]models.Obligation, error) {
	all, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	out := make([]models.Obligation, 0)
	for _, o := range all {
		if o.SeriesID != nil && *o.SeriesID == seriesID {
			out = append(out, o)
		}
	}
	return out, nil
}

// Save inserts or replaces an obligation.
func (s *MemoryStore) Save(obligation models.Obligation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.obligations[obligation.ID] = obligation
	return nil
}

// Delete removes an obligation. Deleting an absent id is a NotFoundError.
func (s *MemoryStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.obligations[id]; !ok {
		return &engineerror.NotFoundError{Entity: "obligation", ID: id.String()}
	}
	delete(s.obligations, id)
	return nil
}

// LoadAccount returns a single account or a NotFoundError.
func (s *MemoryStore) LoadAccount(id uuid.UUID) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return models.Account{}, &engineerror.NotFoundError{Entity: "account", ID: id.String()}
	}
	return a, nil
}

// SaveAccount inserts or replaces an account.
func (s *MemoryStore) SaveAccount(account models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[account.ID] = account
	return nil
}

// AddTransaction appends a transaction to the ledger. The ledger is
// append-only from the engine's point of view.
func (s *MemoryStore) AddTransaction(tx models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = append(s.transactions, tx)
}

// LoadByAccount returns the transactions recorded against one account,
// in chronological order.
func (s *MemoryStore) LoadByAccount(accountID uuid.UUID) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Transaction, 0)
	for _, tx := range s.transactions {
		if tx.AccountID != nil && *tx.AccountID == accountID {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

// LoadAllTransactions returns every ledger transaction in chronological order.
func (s *MemoryStore) LoadAllTransactions() ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Transaction, len(s.transactions))
	copy(out, s.transactions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}
