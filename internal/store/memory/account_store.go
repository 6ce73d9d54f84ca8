package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wolfeidau/gatehouse/internal/models"
	"github.com/wolfeidau/gatehouse/internal/store"
)

// AccountStore implements store.AccountStore using in-memory storage.
// This implementation is for development and tests - data is lost on restart.
type AccountStore struct {
	mu sync.RWMutex

	accounts        map[uuid.UUID]*models.Account // id -> Account
	accountsByEmail map[string]*models.Account    // email -> Account
	accountsByPhone map[string]*models.Account    // phone -> Account
}

var _ store.AccountStore = (*AccountStore)(nil)

// NewAccountStore creates a new in-memory account store.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts:        make(map[uuid.UUID]*models.Account),
		accountsByEmail: make(map[string]*models.Account),
		accountsByPhone: make(map[string]*models.Account),
	}
}

// Create stores a new account. Uniqueness is checked under the same lock as the
// insert, so concurrent creates of the same email or phone cannot both succeed.
func (s *AccountStore) Create(ctx context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.ID]; exists {
		return &store.ConflictError{Field: "id", Value: account.ID.String()}
	}
	if account.Email != nil {
		if _, exists := s.accountsByEmail[*account.Email]; exists {
			return &store.ConflictError{Field: "email", Value: *account.Email}
		}
	}
	if account.Phone != nil {
		if _, exists := s.accountsByPhone[*account.Phone]; exists {
			return &store.ConflictError{Field: "phone", Value: *account.Phone}
		}
	}

	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	if account.UpdatedAt.IsZero() {
		account.UpdatedAt = now
	}
	if account.DateJoined.IsZero() {
		account.DateJoined = now
	}

	// Clone to avoid external modifications
	clone := cloneAccount(account)
	s.accounts[clone.ID] = clone

	// Update indexes
	if clone.Email != nil {
		s.accountsByEmail[*clone.Email] = clone
	}
	if clone.Phone != nil {
		s.accountsByPhone[*clone.Phone] = clone
	}

	return nil
}

// Exists reports whether an account has value for field.
func (s *AccountStore) Exists(ctx context.Context, field models.LoginField, value string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.index(field)[value]
	return exists, nil
}

// Get retrieves an account by ID.
func (s *AccountStore) Get(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, exists := s.accounts[id]
	if !exists {
		return nil, store.ErrAccountNotFound
	}

	return cloneAccount(account), nil
}

// GetByLogin retrieves an account by email or phone.
func (s *AccountStore) GetByLogin(ctx context.Context, field models.LoginField, value string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, exists := s.index(field)[value]
	if !exists {
		return nil, store.ErrAccountNotFound
	}

	return cloneAccount(account), nil
}

// List returns accounts matching opts ordered by email then phone.
func (s *AccountStore) List(ctx context.Context, opts store.ListAccountsOptions) ([]*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(opts.Search)

	var result []*models.Account
	for _, a := range s.accounts {
		if opts.StaffOnly && !a.IsStaff {
			continue
		}
		if search != "" && !matchesSearch(a, search) {
			continue
		}
		result = append(result, cloneAccount(a))
	}

	sort.Slice(result, func(i, j int) bool {
		ei, ej := deref(result[i].Email), deref(result[j].Email)
		if ei != ej {
			return ei < ej
		}
		return deref(result[i].Phone) < deref(result[j].Phone)
	})

	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}

	return result, nil
}

func (s *AccountStore) index(field models.LoginField) map[string]*models.Account {
	switch field {
	case models.LoginFieldPhone:
		return s.accountsByPhone
	default:
		return s.accountsByEmail
	}
}

func matchesSearch(a *models.Account, search string) bool {
	for _, v := range []string{deref(a.Email), deref(a.Phone), a.FirstName, a.LastName} {
		if strings.Contains(strings.ToLower(v), search) {
			return true
		}
	}
	return false
}

func cloneAccount(a *models.Account) *models.Account {
	clone := *a
	if a.Email != nil {
		email := *a.Email
		clone.Email = &email
	}
	if a.Phone != nil {
		phone := *a.Phone
		clone.Phone = &phone
	}
	if a.LastLogin != nil {
		lastLogin := *a.LastLogin
		clone.LastLogin = &lastLogin
	}
	return &clone
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
