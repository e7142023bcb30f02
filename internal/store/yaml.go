package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"duebook/internal/config"
	"duebook/internal/fileutils"
	"duebook/internal/models"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// The on-disk records keep ids and amounts as strings: yaml.v3 cannot decode
// a scalar back into uuid.UUID or decimal.Decimal, so the store converts at
// the file boundary instead of leaning on struct tags.

type recurrenceRecord struct {
	Pattern  string     `yaml:"pattern"`
	Interval int        `yaml:"interval"`
	EndDate  *time.Time `yaml:"end_date,omitempty"`
}

type obligationRecord struct {
	ID                  string            `yaml:"id"`
	Amount              string            `yaml:"amount"`
	Currency            string            `yaml:"currency"`
	Counterparty        string            `yaml:"counterparty"`
	Category            string            `yaml:"category,omitempty"`
	Direction           string            `yaml:"direction"`
	AccountID           string            `yaml:"account_id,omitempty"`
	DueDate             time.Time         `yaml:"due_date"`
	Recurrence          *recurrenceRecord `yaml:"recurrence,omitempty"`
	SeriesID            string            `yaml:"series_id,omitempty"`
	IsInstrument        bool              `yaml:"is_instrument,omitempty"`
	InstrumentNumber    string            `yaml:"instrument_number,omitempty"`
	InstrumentImageRef  string            `yaml:"instrument_image_ref,omitempty"`
	Status              string            `yaml:"status"`
	LinkedTransactionID string            `yaml:"linked_transaction_id,omitempty"`
	ClearedDate         *time.Time        `yaml:"cleared_date,omitempty"`
	Note                string            `yaml:"note,omitempty"`
	CreatedAt           time.Time         `yaml:"created_at"`
	UpdatedAt           time.Time         `yaml:"updated_at"`
}

type loanRecord struct {
	Principal        string    `yaml:"principal"`
	InstallmentCount int       `yaml:"installment_count"`
	StartDate        time.Time `yaml:"start_date"`
}

type accountRecord struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Currency    string      `yaml:"currency"`
	Balance     string      `yaml:"balance"`
	CreditLimit string      `yaml:"credit_limit,omitempty"`
	Loan        *loanRecord `yaml:"loan,omitempty"`
	CreatedAt   time.Time   `yaml:"created_at"`
	UpdatedAt   time.Time   `yaml:"updated_at"`
}

// obligationsDocument is the on-disk shape of the obligations file.
type obligationsDocument struct {
	Obligations []obligationRecord `yaml:"obligations"`
}

// accountsDocument is the on-disk shape of the accounts file.
type accountsDocument struct {
	Accounts []accountRecord `yaml:"accounts"`
}

func obligationToRecord(o models.Obligation) obligationRecord {
	r := obligationRecord{
		ID:                 o.ID.String(),
		Amount:             o.Amount.Amount.String(),
		Currency:           o.Amount.Currency,
		Counterparty:       o.Counterparty,
		Category:           o.Category,
		Direction:          string(o.Direction),
		DueDate:            o.DueDate,
		IsInstrument:       o.IsInstrument,
		InstrumentNumber:   o.InstrumentNumber,
		InstrumentImageRef: o.InstrumentImageRef,
		Status:             string(o.Status),
		ClearedDate:        o.ClearedDate,
		Note:               o.Note,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
	if o.AccountID != nil {
		r.AccountID = o.AccountID.String()
	}
	if o.SeriesID != nil {
		r.SeriesID = o.SeriesID.String()
	}
	if o.LinkedTransactionID != nil {
		r.LinkedTransactionID = o.LinkedTransactionID.String()
	}
	if o.Recurrence != nil {
		r.Recurrence = &recurrenceRecord{
			Pattern:  string(o.Recurrence.Pattern),
			Interval: o.Recurrence.Interval,
			EndDate:  o.Recurrence.EndDate,
		}
	}
	return r
}

func obligationFromRecord(r obligationRecord) (models.Obligation, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return models.Obligation{}, fmt.Errorf("invalid obligation id '%s': %w", r.ID, err)
	}
	amount, err := models.NewMoneyFromString(r.Amount, r.Currency)
	if err != nil {
		return models.Obligation{}, err
	}
	direction, err := models.ParseDirection(r.Direction)
	if err != nil {
		return models.Obligation{}, err
	}
	status, err := models.ParseStatus(r.Status)
	if err != nil {
		return models.Obligation{}, err
	}

	o := models.Obligation{
		ID:                 id,
		Amount:             amount,
		Counterparty:       r.Counterparty,
		Category:           r.Category,
		Direction:          direction,
		DueDate:            r.DueDate,
		IsInstrument:       r.IsInstrument,
		InstrumentNumber:   r.InstrumentNumber,
		InstrumentImageRef: r.InstrumentImageRef,
		Status:             status,
		ClearedDate:        r.ClearedDate,
		Note:               r.Note,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
	if r.AccountID != "" {
		accountID, err := uuid.Parse(r.AccountID)
		if err != nil {
			return models.Obligation{}, fmt.Errorf("invalid account id '%s': %w", r.AccountID, err)
		}
		o.AccountID = &accountID
	}
	if r.SeriesID != "" {
		seriesID, err := uuid.Parse(r.SeriesID)
		if err != nil {
			return models.Obligation{}, fmt.Errorf("invalid series id '%s': %w", r.SeriesID, err)
		}
		o.SeriesID = &seriesID
	}
	if r.LinkedTransactionID != "" {
		txID, err := uuid.Parse(r.LinkedTransactionID)
		if err != nil {
			return models.Obligation{}, fmt.Errorf("invalid linked transaction id '%s': %w", r.LinkedTransactionID, err)
		}
		o.LinkedTransactionID = &txID
	}
	if r.Recurrence != nil {
		o.Recurrence = &models.Recurrence{
			Pattern:  models.RecurrencePattern(r.Recurrence.Pattern),
			Interval: r.Recurrence.Interval,
			EndDate:  r.Recurrence.EndDate,
		}
	}
	return o, nil
}

func accountToRecord(a models.Account) accountRecord {
	r := accountRecord{
		ID:        a.ID.String(),
		Name:      a.Name,
		Currency:  a.Currency,
		Balance:   a.Balance.String(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.CreditLimit != nil {
		r.CreditLimit = a.CreditLimit.String()
	}
	if a.Loan != nil {
		r.Loan = &loanRecord{
			Principal:        a.Loan.Principal.String(),
			InstallmentCount: a.Loan.InstallmentCount,
			StartDate:        a.Loan.StartDate,
		}
	}
	return r
}

func accountFromRecord(r accountRecord) (models.Account, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return models.Account{}, fmt.Errorf("invalid account id '%s': %w", r.ID, err)
	}
	balance, err := decimal.NewFromString(r.Balance)
	if err != nil {
		return models.Account{}, fmt.Errorf("invalid balance '%s': %w", r.Balance, err)
	}

	a := models.Account{
		ID:        id,
		Name:      r.Name,
		Currency:  r.Currency,
		Balance:   balance,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.CreditLimit != "" {
		limit, err := decimal.NewFromString(r.CreditLimit)
		if err != nil {
			return models.Account{}, fmt.Errorf("invalid credit limit '%s': %w", r.CreditLimit, err)
		}
		a.CreditLimit = &limit
	}
	if r.Loan != nil {
		principal, err := decimal.NewFromString(r.Loan.Principal)
		if err != nil {
			return models.Account{}, fmt.Errorf("invalid loan principal '%s': %w", r.Loan.Principal, err)
		}
		a.Loan = &models.LoanTerms{
			Principal:        principal,
			InstallmentCount: r.Loan.InstallmentCount,
			StartDate:        r.Loan.StartDate,
		}
	}
	return a, nil
}

// YAMLStore persists obligations and accounts as YAML files. It keeps the
// full collection in memory (via MemoryStore) and rewrites the file on every
// mutation; collections here are small enough that this stays cheap.
// The transaction ledger is injected read-only via SetTransactions.
type YAMLStore struct {
	*MemoryStore
	obligationsPath string
	accountsPath    string
}

// NewYAMLStore opens (or initializes) a YAML store rooted at dataDir.
func NewYAMLStore(dataDir, obligationsFile, accountsFile string) (*YAMLStore, error) {
	if err := fileutils.EnsureDirectoryExists(dataDir); err != nil {
		return nil, err
	}

	s := &YAMLStore{
		MemoryStore:     NewMemoryStore(),
		obligationsPath: filepath.Join(dataDir, obligationsFile),
		accountsPath:    filepath.Join(dataDir, accountsFile),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *YAMLStore) load() error {
	if fileutils.FileExists(s.obligationsPath) {
		data, err := os.ReadFile(s.obligationsPath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", s.obligationsPath, err)
		}
		var doc obligationsDocument
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse %s: %w", s.obligationsPath, err)
		}
		for _, r := range doc.Obligations {
			o, err := obligationFromRecord(r)
			if err != nil {
				return fmt.Errorf("invalid obligation record in %s: %w", s.obligationsPath, err)
			}
			if err := s.MemoryStore.Save(o); err != nil {
				return err
			}
		}
		log.WithField("count", len(doc.Obligations)).Debug("Loaded obligations from YAML")
	}

	if fileutils.FileExists(s.accountsPath) {
		data, err := os.ReadFile(s.accountsPath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", s.accountsPath, err)
		}
		var doc accountsDocument
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse %s: %w", s.accountsPath, err)
		}
		for _, r := range doc.Accounts {
			a, err := accountFromRecord(r)
			if err != nil {
				return fmt.Errorf("invalid account record in %s: %w", s.accountsPath, err)
			}
			if err := s.MemoryStore.SaveAccount(a); err != nil {
				return err
			}
		}
		log.WithField("count", len(doc.Accounts)).Debug("Loaded accounts from YAML")
	}

	return nil
}

func (s *YAMLStore) flushObligations() error {
	all, err := s.MemoryStore.LoadAll()
	if err != nil {
		return err
	}
	records := make([]obligationRecord, 0, len(all))
	for _, o := range all {
		records = append(records, obligationToRecord(o))
	}
	data, err := yaml.Marshal(obligationsDocument{Obligations: records})
	if err != nil {
		return fmt.Errorf("failed to marshal obligations: %w", err)
	}
	return fileutils.WriteFileAtomic(s.obligationsPath, data)
}

func (s *YAMLStore) flushAccounts() error {
	s.mu.RLock()
	records := make([]accountRecord, 0, len(s.accounts))
	for _, a := range s.accounts {
		records = append(records, accountToRecord(a))
	}
	s.mu.RUnlock()

	data, err := yaml.Marshal(accountsDocument{Accounts: records})
	if err != nil {
		return fmt.Errorf("failed to marshal accounts: %w", err)
	}
	return fileutils.WriteFileAtomic(s.accountsPath, data)
}

// Save persists an obligation and rewrites the obligations file.
func (s *YAMLStore) Save(obligation models.Obligation) error {
	if err := s.MemoryStore.Save(obligation); err != nil {
		return err
	}
	return s.flushObligations()
}

// Delete removes an obligation and rewrites the obligations file.
func (s *YAMLStore) Delete(id uuid.UUID) error {
	if err := s.MemoryStore.Delete(id); err != nil {
		return err
	}
	return s.flushObligations()
}

// SaveAccount persists an account and rewrites the accounts file.
func (s *YAMLStore) SaveAccount(account models.Account) error {
	if err := s.MemoryStore.SaveAccount(account); err != nil {
		return err
	}
	return s.flushAccounts()
}

// SetTransactions replaces the in-memory ledger with externally loaded
// transactions (e.g. from a CSV import). The store never writes them back.
func (s *YAMLStore) SetTransactions(txs []models.Transaction) {
	s.mu.Lock()
	s.transactions = append([]models.Transaction(nil), txs...)
	s.mu.Unlock()
}
