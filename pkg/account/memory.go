package account

import (
	"context"
	"github.com/google/uuid"
	"slotpoker-server/pkg/slot"
	"sync"
	"time"
)

// MemoryStore keeps accounts in memory
type MemoryStore struct {
	accounts    map[uuid.UUID]*Account
	transitions map[uuid.UUID][]*Transition
	lastLogID   int64
	mu          sync.Mutex
}

// NewMemoryStore returns an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts:    make(map[uuid.UUID]*Account),
		transitions: make(map[uuid.UUID][]*Transition),
	}
}

// CreateAccount creates an account at version 1
func (m *MemoryStore) CreateAccount(ctx context.Context, kind Kind, id uuid.UUID, storage slot.Storage) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[id]; ok {
		return nil, ErrDuplicateKey
	}

	now := time.Now().UTC()
	acct := &Account{
		ID:      id,
		Kind:    kind,
		Version: 1,
		Storage: storage,
		Created: now,
		Updated: now,
	}

	m.accounts[id] = acct
	cp := *acct
	return &cp, nil
}

// GetAccount returns a copy of the account
func (m *MemoryStore) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}

	cp := *acct
	return &cp, nil
}

// Commit applies an update if the account is still at update.Version
func (m *MemoryStore) Commit(ctx context.Context, update Update) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(update); err != nil {
		return nil, err
	}

	return m.apply(update), nil
}

// CommitTransfer commits both updates or neither
func (m *MemoryStore) CommitTransfer(ctx context.Context, game, player Update) (*Account, *Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(game); err != nil {
		return nil, nil, err
	}

	if err := m.check(player); err != nil {
		return nil, nil, err
	}

	return m.apply(game), m.apply(player), nil
}

// Transitions returns the log of an account, oldest first
func (m *MemoryStore) Transitions(ctx context.Context, id uuid.UUID) ([]*Transition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[id]; !ok {
		return nil, ErrAccountNotFound
	}

	log := make([]*Transition, len(m.transitions[id]))
	for i, t := range m.transitions[id] {
		cp := *t
		log[i] = &cp
	}

	return log, nil
}

func (m *MemoryStore) check(update Update) error {
	acct, ok := m.accounts[update.ID]
	if !ok {
		return ErrAccountNotFound
	}

	if acct.Version != update.Version {
		return ErrConflict
	}

	return nil
}

func (m *MemoryStore) apply(update Update) *Account {
	acct := m.accounts[update.ID]
	acct.Storage = update.Storage
	acct.Version++
	acct.Updated = time.Now().UTC()

	if update.Transition != nil {
		m.lastLogID++
		t := *update.Transition
		t.ID = m.lastLogID
		t.AccountID = acct.ID
		t.Version = acct.Version
		t.Created = acct.Updated
		m.transitions[acct.ID] = append(m.transitions[acct.ID], &t)
	}

	cp := *acct
	return &cp
}
