package account

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"slotpoker-server/pkg/slot"
	"time"
)

// ErrConflict is returned when a commit is based on a stale version
var ErrConflict = errors.New("account was modified by another transition")

// ErrAccountNotFound is returned when no account exists for an id
var ErrAccountNotFound = errors.New("account not found")

// ErrDuplicateKey is returned when an account id is already taken
var ErrDuplicateKey = errors.New("account already exists")

// Kind is the type of account
type Kind string

// kind constants
const (
	KindGame   Kind = "game"
	KindPlayer Kind = "player"
)

// Account is a versioned slot area
// Version increases by one on every committed transition
type Account struct {
	ID      uuid.UUID    `json:"id"`
	Kind    Kind         `json:"kind"`
	Version int64        `json:"version"`
	Storage slot.Storage `json:"storage"`
	Created time.Time    `json:"created"`
	Updated time.Time    `json:"updated"`
}

// Transition is an entry in an account's log
type Transition struct {
	ID        int64     `json:"id"`
	AccountID uuid.UUID `json:"accountId"`
	Version   int64     `json:"version"`
	Actor     uuid.UUID `json:"actor"`
	Action    string    `json:"action"`
	Amount    uint64    `json:"amount"`
	Message   string    `json:"message"`
	Created   time.Time `json:"created"`
}

// Update replaces the storage of an account
// Version is the version the new storage was computed from
type Update struct {
	ID         uuid.UUID
	Version    int64
	Storage    slot.Storage
	Transition *Transition
}

// Store persists accounts
type Store interface {
	// CreateAccount creates an account at version 1
	CreateAccount(ctx context.Context, kind Kind, id uuid.UUID, storage slot.Storage) (*Account, error)

	// GetAccount returns the current state of an account
	GetAccount(ctx context.Context, id uuid.UUID) (*Account, error)

	// Commit applies an update if the account is still at update.Version
	Commit(ctx context.Context, update Update) (*Account, error)

	// CommitTransfer commits both updates or neither
	CommitTransfer(ctx context.Context, game, player Update) (*Account, *Account, error)

	// Transitions returns the log of an account, oldest first
	Transitions(ctx context.Context, id uuid.UUID) ([]*Transition, error)
}
