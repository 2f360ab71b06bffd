package account

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"slotpoker-server/pkg/db"
	"slotpoker-server/pkg/slot"
)

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

const accountColumns = `
accounts.id,
accounts.kind,
accounts.version,
accounts.storage,
accounts.created,
accounts.updated`

const transitionColumns = `
account_transitions.id,
account_transitions.account_id,
account_transitions.version,
account_transitions.actor,
account_transitions.action,
account_transitions.amount,
account_transitions.message,
account_transitions.created`

// PostgresStore keeps accounts in PostgreSQL
// Optimistic concurrency relies on the version column
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a store backed by the given database
func NewPostgresStore(database *sql.DB) *PostgresStore {
	return &PostgresStore{db: database}
}

func getAccountByRow(row db.Scanner) (*Account, error) {
	var a Account
	var storage []byte
	if err := row.Scan(&a.ID, &a.Kind, &a.Version, &storage, &a.Created, &a.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAccountNotFound
		}

		return nil, err
	}

	if err := json.Unmarshal(storage, &a.Storage); err != nil {
		return nil, err
	}

	return &a, nil
}

func getTransitionByRow(row db.Scanner) (*Transition, error) {
	var t Transition
	var actor uuid.NullUUID
	var amount int64
	if err := row.Scan(&t.ID, &t.AccountID, &t.Version, &actor, &t.Action, &amount, &t.Message, &t.Created); err != nil {
		return nil, err
	}

	t.Actor = actor.UUID
	t.Amount = uint64(amount)
	return &t, nil
}

// CreateAccount creates an account at version 1
func (p *PostgresStore) CreateAccount(ctx context.Context, kind Kind, id uuid.UUID, storage slot.Storage) (*Account, error) {
	b, err := json.Marshal(storage)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO accounts (id, kind, version, storage)
VALUES ($1, $2, 1, $3)
RETURNING ` + accountColumns

	row := p.db.QueryRowContext(ctx, query, id, kind, b)
	acct, err := getAccountByRow(row)
	if err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == pqDuplicateKeyErrorCode {
			return nil, ErrDuplicateKey
		}

		return nil, err
	}

	return acct, nil
}

// GetAccount returns the current state of an account
func (p *PostgresStore) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	const query = `
SELECT ` + accountColumns + `
FROM accounts
WHERE id = $1`

	return getAccountByRow(p.db.QueryRowContext(ctx, query, id))
}

// Commit applies an update if the account is still at update.Version
func (p *PostgresStore) Commit(ctx context.Context, update Update) (*Account, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	acct, err := p.commit(ctx, tx, update)
	if err != nil {
		rollback(tx)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return acct, nil
}

// CommitTransfer commits both updates in a single transaction
func (p *PostgresStore) CommitTransfer(ctx context.Context, game, player Update) (*Account, *Account, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}

	gameAcct, err := p.commit(ctx, tx, game)
	if err != nil {
		rollback(tx)
		return nil, nil, err
	}

	playerAcct, err := p.commit(ctx, tx, player)
	if err != nil {
		rollback(tx)
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	return gameAcct, playerAcct, nil
}

func (p *PostgresStore) commit(ctx context.Context, tx *sql.Tx, update Update) (*Account, error) {
	b, err := json.Marshal(update.Storage)
	if err != nil {
		return nil, err
	}

	const query = `
UPDATE accounts
SET storage = $1, version = version + 1, updated = NOW() AT TIME ZONE 'UTC'
WHERE id = $2
  AND version = $3
RETURNING ` + accountColumns

	acct, err := getAccountByRow(tx.QueryRowContext(ctx, query, b, update.ID, update.Version))
	if err != nil {
		if !errors.Is(err, ErrAccountNotFound) {
			return nil, err
		}

		// no row matched: either the account is gone or the version moved on
		var exists bool
		const existsQuery = `SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)`
		if err := tx.QueryRowContext(ctx, existsQuery, update.ID).Scan(&exists); err != nil {
			return nil, err
		}

		if exists {
			return nil, ErrConflict
		}

		return nil, ErrAccountNotFound
	}

	if update.Transition != nil {
		const logQuery = `
INSERT INTO account_transitions (account_id, version, actor, action, amount, message)
VALUES ($1, $2, $3, $4, $5, $6)`

		t := update.Transition
		actor := uuid.NullUUID{UUID: t.Actor, Valid: t.Actor != uuid.Nil}
		if _, err := tx.ExecContext(ctx, logQuery, acct.ID, acct.Version, actor, t.Action, int64(t.Amount), t.Message); err != nil {
			return nil, err
		}
	}

	return acct, nil
}

// Transitions returns the log of an account, oldest first
func (p *PostgresStore) Transitions(ctx context.Context, id uuid.UUID) ([]*Transition, error) {
	if _, err := p.GetAccount(ctx, id); err != nil {
		return nil, err
	}

	const query = `
SELECT ` + transitionColumns + `
FROM account_transitions
WHERE account_id = $1
ORDER BY id`

	rows, err := p.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*Transition, 0)
	for rows.Next() {
		t, err := getTransitionByRow(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, t)
	}

	return records, rows.Err()
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		logrus.WithError(err).Error("could not rollback transaction")
	}
}
