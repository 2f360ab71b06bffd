package room

import (
	"context"
	"errors"
	"math"
	"slotpoker-server/internal/rng"
	"slotpoker-server/pkg/account"
	"slotpoker-server/pkg/action"
	"slotpoker-server/pkg/deck"
	"slotpoker-server/pkg/game"
	"slotpoker-server/pkg/slot"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrNotAGame is returned when a game operation targets a player account
var ErrNotAGame = errors.New("account is not a game")

// ErrNotAPlayer is returned when a player operation targets a game account
var ErrNotAPlayer = errors.New("account is not a player")

// GameState is a committed snapshot of a game account
type GameState struct {
	ID       uuid.UUID      `json:"id"`
	Version  int64          `json:"version"`
	Updated  time.Time      `json:"updated"`
	Phase    string         `json:"phase"`
	Board    []deck.Card    `json:"board"`
	Snapshot *game.Snapshot `json:"snapshot"`
}

func newGameState(acct *account.Account) (*GameState, error) {
	if acct.Kind != account.KindGame {
		return nil, ErrNotAGame
	}

	snap, err := game.FromStorage(&acct.Storage)
	if err != nil {
		return nil, err
	}

	return &GameState{
		ID:       acct.ID,
		Version:  acct.Version,
		Updated:  acct.Updated,
		Phase:    snap.Phase.String(),
		Board:    snap.Board(),
		Snapshot: snap,
	}, nil
}

// ActionRequest is a player action submitted against a game
// If Version is not zero, the action is only applied to that version of the game
type ActionRequest struct {
	Actor   uuid.UUID
	Action  action.Action
	Amount  uint64
	Version int64
}

// Room coordinates the game engine with the account store
// It never retries a commit; callers receive account.ErrConflict and try again
type Room struct {
	store   account.Store
	pitBoss *PitBoss
	logger  logrus.FieldLogger
	rng     rng.Generator

	seeds   map[uuid.UUID]int64
	seedsMu sync.Mutex
}

// New returns a new room
// pitBoss may be nil if no clients need to be notified of commits, otherwise New must be called before pitBoss.StartShift
func New(store account.Store, pitBoss *PitBoss, logger logrus.FieldLogger) *Room {
	r := &Room{
		store:   store,
		pitBoss: pitBoss,
		logger:  logger,
		rng:     rng.Crypto{},
		seeds:   make(map[uuid.UUID]int64),
	}

	if pitBoss != nil {
		pitBoss.room = r
	}

	return r
}

// CreatePlayer creates a player account with an empty slot area
func (r *Room) CreatePlayer(ctx context.Context) (*account.Account, error) {
	acct, err := r.store.CreateAccount(ctx, account.KindPlayer, uuid.New(), slot.Storage{})
	if err != nil {
		return nil, err
	}

	r.logger.WithField("account", acct.ID).Info("created player account")
	return acct, nil
}

// CreateGame creates a game account and seats the players in order
func (r *Room) CreateGame(ctx context.Context, cfg game.Config, players []uuid.UUID) (*GameState, error) {
	for _, id := range players {
		if id == uuid.Nil {
			continue
		}

		acct, err := r.store.GetAccount(ctx, id)
		if err != nil {
			return nil, err
		}

		if acct.Kind != account.KindPlayer {
			return nil, ErrNotAPlayer
		}
	}

	id := uuid.New()
	snap, err := game.CreateGame(cfg, id, players...)
	if err != nil {
		return nil, err
	}

	acct, err := r.store.CreateAccount(ctx, account.KindGame, id, snap.Storage())
	if err != nil {
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"game":    id,
		"players": len(players),
	}).Info("created game account")

	return newGameState(acct)
}

// LoadGame returns the current state of a game
func (r *Room) LoadGame(ctx context.Context, id uuid.UUID) (*GameState, error) {
	acct, err := r.store.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	return newGameState(acct)
}

// GetAccount returns an account of any kind
func (r *Room) GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.store.GetAccount(ctx, id)
}

// GetItem returns a single slot of an account
func (r *Room) GetItem(ctx context.Context, id uuid.UUID, index uint8) (slot.Word, error) {
	acct, err := r.store.GetAccount(ctx, id)
	if err != nil {
		return slot.ZeroWord, err
	}

	return acct.Storage.GetItem(index), nil
}

// Transitions returns the committed transitions of an account
func (r *Room) Transitions(ctx context.Context, id uuid.UUID) ([]*account.Transition, error) {
	return r.store.Transitions(ctx, id)
}

// SubmitAction applies a player action and commits the result
func (r *Room) SubmitAction(ctx context.Context, gameID uuid.UUID, req ActionRequest) (*GameState, error) {
	state, err := r.LoadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if req.Version != 0 && req.Version != state.Version {
		return nil, account.ErrConflict
	}

	next, err := game.Apply(state.Snapshot, req.Action, game.AccountRef(req.Actor), req.Amount)
	if err != nil {
		return nil, err
	}

	amount := req.Amount
	if req.Action == action.Call {
		seat, _ := state.Snapshot.SeatOf(req.Actor)
		amount = state.Snapshot.Players[seat].Balance - next.Players[seat].Balance
	}

	return r.commit(ctx, state, next, &account.Transition{
		Actor:   req.Actor,
		Action:  string(req.Action),
		Amount:  amount,
		Message: req.Action.LogMessage(amount),
	})
}

// RevealBoard publishes community cards for the current phase
// If no cards are given, they are drawn from the game's deck
func (r *Room) RevealBoard(ctx context.Context, gameID, dealer uuid.UUID, cards []deck.Card) (*GameState, error) {
	state, err := r.LoadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if len(cards) == 0 {
		n := state.Snapshot.Phase.BoardSize() - len(state.Board)
		if n <= 0 {
			return nil, &game.DealError{Kind: game.ErrBoardOutOfPhase}
		}

		if cards, err = r.draw(state.Snapshot, n); err != nil {
			return nil, err
		}
	}

	next, err := game.RevealBoard(state.Snapshot, dealer, cards...)
	if err != nil {
		return nil, err
	}

	return r.commit(ctx, state, next, &account.Transition{
		Actor:   dealer,
		Action:  "board",
		Message: "revealed " + deck.CardsToString(cards),
	})
}

func (r *Room) commit(ctx context.Context, state *GameState, next *game.Snapshot, t *account.Transition) (*GameState, error) {
	acct, err := r.store.Commit(ctx, account.Update{
		ID:         state.ID,
		Version:    state.Version,
		Storage:    next.Storage(),
		Transition: t,
	})
	if err != nil {
		if errors.Is(err, account.ErrConflict) {
			r.logger.WithFields(logrus.Fields{
				"game":    state.ID,
				"version": state.Version,
			}).Debug("commit lost the race")
		}

		return nil, err
	}

	committed, err := newGameState(acct)
	if err != nil {
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"game":    committed.ID,
		"version": committed.Version,
		"action":  t.Action,
	}).Debug("committed transition")

	if committed.Snapshot.Phase == game.Showdown {
		r.forgetSeed(committed.ID)
	}

	r.publish(committed, t)
	return committed, nil
}

func (r *Room) publish(state *GameState, t *account.Transition) {
	if r.pitBoss == nil {
		return
	}

	r.pitBoss.Publish(state, t)
}

// draw takes the next n cards of the game's dealing order that are still in the pool
// The dealing order is fixed per game by a seed chosen on the first draw. The seed only lives
// in this process; a fresh seed after a restart still skips every card that left the pool
func (r *Room) draw(snap *game.Snapshot, n int) ([]deck.Card, error) {
	r.seedsMu.Lock()
	seed, ok := r.seeds[snap.GameAccount]
	if !ok {
		seed = int64(r.rng.Intn(math.MaxInt32))
		r.seeds[snap.GameAccount] = seed
	}
	r.seedsMu.Unlock()

	d := deck.New()
	d.Shuffle(seed)
	if !ok {
		r.logger.WithFields(logrus.Fields{
			"game": snap.GameAccount,
			"hash": d.HashCode(),
		}).Debug("shuffled deck")
	}

	dealt := make([]deck.Card, 0)
	for _, c := range snap.Cards {
		if c.Holder != game.HolderPool || c.Revealed {
			dealt = append(dealt, c.Card)
		}
	}

	d.Skip(dealt...)
	return d.DrawN(n)
}

// forgetSeed drops the dealing order of a finished hand
func (r *Room) forgetSeed(id uuid.UUID) {
	r.seedsMu.Lock()
	delete(r.seeds, id)
	r.seedsMu.Unlock()
}
