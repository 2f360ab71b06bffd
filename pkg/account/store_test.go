package account

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
	"slotpoker-server/pkg/slot"
	"sync/atomic"
	"testing"
)

var cbg = context.Background()

// runStoreTests exercises the behavior every Store must share
func runStoreTests(t *testing.T, store Store) {
	t.Run("create and get", func(t *testing.T) {
		testCreateAndGet(t, store)
	})

	t.Run("commit", func(t *testing.T) {
		testCommit(t, store)
	})

	t.Run("concurrent commits", func(t *testing.T) {
		testConcurrentCommits(t, store)
	})

	t.Run("commit transfer", func(t *testing.T) {
		testCommitTransfer(t, store)
	})
}

func testCreateAndGet(t *testing.T, store Store) {
	a := assert.New(t)

	var st slot.Storage
	st.SetValue(57, 4)

	id := uuid.New()
	acct, err := store.CreateAccount(cbg, KindGame, id, st)
	a.NoError(err)
	a.Equal(id, acct.ID)
	a.Equal(KindGame, acct.Kind)
	a.Equal(int64(1), acct.Version)

	_, err = store.CreateAccount(cbg, KindGame, id, st)
	a.Equal(ErrDuplicateKey, err)

	acct, err = store.GetAccount(cbg, id)
	a.NoError(err)
	a.Equal(uint64(4), acct.Storage.Value(57))

	_, err = store.GetAccount(cbg, uuid.New())
	a.Equal(ErrAccountNotFound, err)
}

func testCommit(t *testing.T, store Store) {
	a := assert.New(t)

	acct, err := store.CreateAccount(cbg, KindGame, uuid.New(), slot.Storage{})
	a.NoError(err)

	st := acct.Storage
	st.SetValue(60, 77)
	actor := uuid.New()
	updated, err := store.Commit(cbg, Update{
		ID:      acct.ID,
		Version: acct.Version,
		Storage: st,
		Transition: &Transition{
			Actor:   actor,
			Action:  "bet",
			Amount:  5,
			Message: "bet ${5}",
		},
	})
	a.NoError(err)
	a.Equal(int64(2), updated.Version)
	a.Equal(uint64(77), updated.Storage.Value(60))

	// a second commit from the same base version is stale
	_, err = store.Commit(cbg, Update{ID: acct.ID, Version: acct.Version, Storage: st})
	a.True(errors.Is(err, ErrConflict))

	_, err = store.Commit(cbg, Update{ID: uuid.New(), Version: 1, Storage: st})
	a.True(errors.Is(err, ErrAccountNotFound))

	log, err := store.Transitions(cbg, acct.ID)
	a.NoError(err)
	if a.Len(log, 1) {
		a.Equal(int64(2), log[0].Version)
		a.Equal(actor, log[0].Actor)
		a.Equal("bet", log[0].Action)
		a.Equal(uint64(5), log[0].Amount)
		a.Equal(acct.ID, log[0].AccountID)
	}

	_, err = store.Transitions(cbg, uuid.New())
	a.Equal(ErrAccountNotFound, err)
}

func testConcurrentCommits(t *testing.T, store Store) {
	a := assert.New(t)

	acct, err := store.CreateAccount(cbg, KindGame, uuid.New(), slot.Storage{})
	a.NoError(err)

	var successes, conflicts int32
	var g errgroup.Group
	for i := 0; i < 10; i++ {
		i := i
		g.Go(func() error {
			st := acct.Storage
			st.SetValue(59, uint64(i+1))
			_, err := store.Commit(cbg, Update{ID: acct.ID, Version: acct.Version, Storage: st})
			switch {
			case err == nil:
				atomic.AddInt32(&successes, 1)
			case errors.Is(err, ErrConflict):
				atomic.AddInt32(&conflicts, 1)
			default:
				return err
			}

			return nil
		})
	}

	a.NoError(g.Wait())
	a.Equal(int32(1), successes)
	a.Equal(int32(9), conflicts)

	final, err := store.GetAccount(cbg, acct.ID)
	a.NoError(err)
	a.Equal(int64(2), final.Version)
	a.NotZero(final.Storage.Value(59))
}

func testCommitTransfer(t *testing.T, store Store) {
	a := assert.New(t)

	gameAcct, _ := store.CreateAccount(cbg, KindGame, uuid.New(), slot.Storage{})
	playerAcct, _ := store.CreateAccount(cbg, KindPlayer, uuid.New(), slot.Storage{})

	var gameSt, playerSt slot.Storage
	gameSt.SetItem(1, slot.Word{1, 1, 0, slot.HolderDealt})
	playerSt.SetItem(100, slot.Word{1, 1, 0, 0})

	// the player side is stale, so neither account changes
	_, _, err := store.CommitTransfer(cbg,
		Update{ID: gameAcct.ID, Version: gameAcct.Version, Storage: gameSt},
		Update{ID: playerAcct.ID, Version: playerAcct.Version + 1, Storage: playerSt},
	)
	a.True(errors.Is(err, ErrConflict))

	g, _ := store.GetAccount(cbg, gameAcct.ID)
	a.Equal(int64(1), g.Version)
	a.Equal(slot.ZeroWord, g.Storage.GetItem(1))

	g, p, err := store.CommitTransfer(cbg,
		Update{ID: gameAcct.ID, Version: gameAcct.Version, Storage: gameSt},
		Update{ID: playerAcct.ID, Version: playerAcct.Version, Storage: playerSt},
	)
	a.NoError(err)
	a.Equal(int64(2), g.Version)
	a.Equal(int64(2), p.Version)
	a.Equal(slot.Word{1, 1, 0, 0}, p.Storage.GetItem(100))
}
