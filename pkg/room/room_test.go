package room

import (
	"context"
	"errors"
	"slotpoker-server/pkg/account"
	"slotpoker-server/pkg/action"
	"slotpoker-server/pkg/game"
	"slotpoker-server/pkg/slot"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func testGameConfig(playerCount uint8) game.Config {
	cfg := game.DefaultConfig()
	cfg.PlayerCount = playerCount
	return cfg
}

func newTestRoom(t *testing.T) *Room {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return New(account.NewMemoryStore(), nil, logger)
}

// newTestTable creates n players and seats them at a new game
func newTestTable(t *testing.T, r *Room, n int) (*GameState, []uuid.UUID) {
	t.Helper()

	players := make([]uuid.UUID, n)
	for i := range players {
		acct, err := r.CreatePlayer(context.Background())
		require.NoError(t, err)
		players[i] = acct.ID
	}

	state, err := r.CreateGame(context.Background(), testGameConfig(uint8(n)), players)
	require.NoError(t, err)

	return state, players
}

func submit(t *testing.T, r *Room, gameID, actor uuid.UUID, act action.Action, amount uint64) *GameState {
	t.Helper()

	state, err := r.SubmitAction(context.Background(), gameID, ActionRequest{
		Actor:  actor,
		Action: act,
		Amount: amount,
	})
	require.NoError(t, err)

	return state
}

func TestRoom_CreateGame(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t)
	ctx := context.Background()

	state, players := newTestTable(t, r, 3)
	a.Equal(int64(1), state.Version)
	a.Equal("preflop", state.Phase)
	a.Empty(state.Board)
	a.Equal(state.ID, state.Snapshot.GameAccount)

	for i, id := range players {
		a.Equal(id, state.Snapshot.Players[i].Account)
	}

	loaded, err := r.LoadGame(ctx, state.ID)
	a.NoError(err)
	a.Equal(state.Snapshot, loaded.Snapshot)

	// a game account cannot be seated
	_, err = r.CreateGame(ctx, testGameConfig(2), []uuid.UUID{players[0], state.ID})
	a.ErrorIs(err, ErrNotAPlayer)

	_, err = r.CreateGame(ctx, testGameConfig(2), []uuid.UUID{players[0], uuid.New()})
	a.ErrorIs(err, account.ErrAccountNotFound)

	_, err = r.CreateGame(ctx, testGameConfig(2), []uuid.UUID{players[0], players[0]})
	a.ErrorIs(err, game.ErrInvalidConfig)

	// a player account is not a game
	_, err = r.LoadGame(ctx, players[0])
	a.ErrorIs(err, ErrNotAGame)
}

func TestRoom_GetItem(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t)
	ctx := context.Background()

	state, players := newTestTable(t, r, 2)

	w, err := r.GetItem(ctx, state.ID, slot.GameAccountSlot)
	a.NoError(err)
	a.Equal(state.ID, w.UUID())

	w, err = r.GetItem(ctx, state.ID, slot.FirstPlayerIndex)
	a.NoError(err)
	a.Equal(players[0], w.UUID())

	w, err = r.GetItem(ctx, state.ID, slot.PlayerBalanceSlot)
	a.NoError(err)
	a.Equal(uint64(100), w.Value())

	_, err = r.GetItem(ctx, uuid.New(), 0)
	a.ErrorIs(err, account.ErrAccountNotFound)
}

func TestRoom_SubmitAction(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t)
	ctx := context.Background()

	state, players := newTestTable(t, r, 3)

	state = submit(t, r, state.ID, players[0], action.Blinds, 0)
	a.Equal(int64(2), state.Version)
	a.Equal(uint64(15), state.Snapshot.Pot)

	// seat 1 posted the big blind, seat 2 is on turn
	_, err := r.SubmitAction(ctx, state.ID, ActionRequest{Actor: players[1], Action: action.Call})
	a.ErrorIs(err, game.ErrNotPlayersTurn)

	var ae *game.ActionError
	a.True(errors.As(err, &ae))
	a.Equal(1, ae.Seat)

	state = submit(t, r, state.ID, players[2], action.Call, 0)
	state = submit(t, r, state.ID, players[0], action.Call, 0)
	state = submit(t, r, state.ID, players[1], action.Call, 0)
	a.Equal(int64(5), state.Version)
	a.Equal("flop", state.Phase)
	a.Equal(uint64(30), state.Snapshot.Pot)

	log, err := r.Transitions(ctx, state.ID)
	a.NoError(err)
	if a.Len(log, 4) {
		a.Equal("posted the blinds", log[0].Message)
		a.Equal(int64(2), log[0].Version)
		a.Equal(players[2], log[1].Actor)
		a.Equal(uint64(10), log[1].Amount)
		a.Equal(uint64(5), log[2].Amount)
		a.Equal(uint64(0), log[3].Amount)
	}

	// rejected actions are not committed
	loaded, err := r.LoadGame(ctx, state.ID)
	a.NoError(err)
	a.Equal(int64(5), loaded.Version)
}

func TestRoom_SubmitActionStaleVersion(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t)
	ctx := context.Background()

	state, players := newTestTable(t, r, 2)
	submit(t, r, state.ID, players[0], action.Blinds, 0)

	_, err := r.SubmitAction(ctx, state.ID, ActionRequest{
		Actor:   players[0],
		Action:  action.Call,
		Version: state.Version,
	})
	a.ErrorIs(err, account.ErrConflict)

	_, err = r.SubmitAction(ctx, state.ID, ActionRequest{
		Actor:   players[0],
		Action:  action.Call,
		Version: state.Version + 1,
	})
	a.NoError(err)
}

func TestRoom_SubmitActionConcurrent(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t)
	ctx := context.Background()

	state, players := newTestTable(t, r, 4)

	var committed, conflicts int32
	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			_, err := r.SubmitAction(ctx, state.ID, ActionRequest{
				Actor:   players[0],
				Action:  action.Blinds,
				Version: state.Version,
			})

			switch {
			case err == nil:
				atomic.AddInt32(&committed, 1)
			case errors.Is(err, account.ErrConflict):
				atomic.AddInt32(&conflicts, 1)
			default:
				return err
			}

			return nil
		})
	}

	a.NoError(g.Wait())
	a.Equal(int32(1), committed)
	a.Equal(int32(9), conflicts)

	loaded, err := r.LoadGame(ctx, state.ID)
	a.NoError(err)
	a.Equal(int64(2), loaded.Version)
	a.Equal(uint64(15), loaded.Snapshot.Pot)
}

func TestRoom_RevealBoard(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t)
	ctx := context.Background()

	state, players := newTestTable(t, r, 2)

	_, err := r.RevealBoard(ctx, state.ID, state.ID, nil)
	a.ErrorIs(err, game.ErrBoardOutOfPhase)

	submit(t, r, state.ID, players[0], action.Blinds, 0)
	submit(t, r, state.ID, players[0], action.Call, 0)
	state = submit(t, r, state.ID, players[1], action.Check, 0)
	a.Equal("flop", state.Phase)

	_, err = r.RevealBoard(ctx, state.ID, players[0], nil)
	a.ErrorIs(err, game.ErrDealerMismatch)

	state, err = r.RevealBoard(ctx, state.ID, state.ID, nil)
	a.NoError(err)
	a.Len(state.Board, 3)

	_, err = r.RevealBoard(ctx, state.ID, state.ID, nil)
	a.ErrorIs(err, game.ErrBoardOutOfPhase)

	// revealed cards cannot be revealed again on the next street
	submit(t, r, state.ID, players[0], action.Check, 0)
	state = submit(t, r, state.ID, players[1], action.Check, 0)
	a.Equal("turn", state.Phase)

	_, err = r.RevealBoard(ctx, state.ID, state.ID, state.Board[:1])
	a.ErrorIs(err, game.ErrCardAlreadyRevealed)

	log, err := r.Transitions(ctx, state.ID)
	a.NoError(err)
	a.Equal("board", log[3].Action)
	a.Equal(state.ID, log[3].Actor)
	a.Contains(log[3].Message, "revealed ")
}

func TestRoom_SeedIsDroppedAtShowdown(t *testing.T) {
	a := assert.New(t)
	r := newTestRoom(t)
	ctx := context.Background()

	state, players := newTestTable(t, r, 2)
	_, _, err := r.DealCards(ctx, state.ID, state.ID, players[0], nil)
	a.NoError(err)

	r.seedsMu.Lock()
	a.Contains(r.seeds, state.ID)
	r.seedsMu.Unlock()

	state = submit(t, r, state.ID, players[0], action.Fold, 0)
	a.Equal("showdown", state.Phase)

	r.seedsMu.Lock()
	a.NotContains(r.seeds, state.ID)
	r.seedsMu.Unlock()
}
