package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wolfeidau/gatehouse/internal/models"
	"github.com/wolfeidau/gatehouse/internal/store"
)

// GroupStore implements store.GroupStore using in-memory storage.
// Membership checks consult the account store so unknown accounts are rejected.
type GroupStore struct {
	mu sync.RWMutex

	accounts store.AccountStore

	groups       map[uuid.UUID]*models.Group          // group_id -> Group
	groupsByName map[string]*models.Group             // name -> Group
	members      map[uuid.UUID]map[uuid.UUID]struct{} // group_id -> account_ids
}

var _ store.GroupStore = (*GroupStore)(nil)

// NewGroupStore creates a new in-memory group store.
func NewGroupStore(accounts store.AccountStore) *GroupStore {
	return &GroupStore{
		accounts:     accounts,
		groups:       make(map[uuid.UUID]*models.Group),
		groupsByName: make(map[string]*models.Group),
		members:      make(map[uuid.UUID]map[uuid.UUID]struct{}),
	}
}

// Create creates a new group in memory.
func (s *GroupStore) Create(ctx context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.groups[group.ID]; exists {
		return store.ErrGroupAlreadyExists
	}
	if _, exists := s.groupsByName[group.Name]; exists {
		return store.ErrGroupAlreadyExists
	}

	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now()
	}

	clone := *group
	s.groups[clone.ID] = &clone
	s.groupsByName[clone.Name] = &clone

	return nil
}

// GetByName retrieves a group by name.
func (s *GroupStore) GetByName(ctx context.Context, name string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, exists := s.groupsByName[name]
	if !exists {
		return nil, store.ErrGroupNotFound
	}

	clone := *group
	return &clone, nil
}

// List returns all groups ordered by name.
func (s *GroupStore) List(ctx context.Context) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Group, 0, len(s.groups))
	for _, g := range s.groups {
		clone := *g
		result = append(result, &clone)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result, nil
}

// Delete removes a group and its memberships.
func (s *GroupStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, exists := s.groups[id]
	if !exists {
		return store.ErrGroupNotFound
	}

	delete(s.groups, id)
	delete(s.groupsByName, group.Name)
	delete(s.members, id)

	return nil
}

// AddMember adds an account to a group.
func (s *GroupStore) AddMember(ctx context.Context, groupID, accountID uuid.UUID) error {
	if _, err := s.accounts.Get(ctx, accountID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.groups[groupID]; !exists {
		return store.ErrGroupNotFound
	}

	set, ok := s.members[groupID]
	if !ok {
		set = make(map[uuid.UUID]struct{})
		s.members[groupID] = set
	}
	set[accountID] = struct{}{}

	return nil
}

// Members returns the account IDs in a group, sorted for stable output.
func (s *GroupStore) Members(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.groups[groupID]; !exists {
		return nil, store.ErrGroupNotFound
	}

	result := make([]uuid.UUID, 0, len(s.members[groupID]))
	for id := range s.members[groupID] {
		result = append(result, id)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].String() < result[j].String()
	})

	return result, nil
}
