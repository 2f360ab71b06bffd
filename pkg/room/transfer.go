package room

import (
	"context"
	"errors"
	"fmt"
	"slotpoker-server/pkg/account"
	"slotpoker-server/pkg/deck"
	"slotpoker-server/pkg/game"
	"slotpoker-server/pkg/token"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrCardTransferIncomplete is returned when a proposed card transfer could not be committed
// Neither the game account nor the recipient is modified
var ErrCardTransferIncomplete = errors.New("card transfer was not committed")

// ErrWrongCardCount is returned when a deal does not hand out exactly two cards
var ErrWrongCardCount = errors.New("a deal requires exactly two cards")

const nonceLength = 16

// Transfer is a proposed deal of two hidden cards
// It carries the updates for both accounts, computed from the versions that were read
type Transfer struct {
	Nonce     string       `json:"nonce"`
	GameID    uuid.UUID    `json:"gameId"`
	Recipient uuid.UUID    `json:"recipient"`
	Seat      int          `json:"seat"`
	Cards     [2]deck.Card `json:"-"`

	game   account.Update
	player account.Update
}

// TransferError wraps a failed transfer commit
type TransferError struct {
	Nonce string
	Err   error
}

func (t *TransferError) Error() string {
	return fmt.Sprintf("%s (%s): %s", ErrCardTransferIncomplete, t.Nonce, t.Err)
}

// Unwrap returns both ErrCardTransferIncomplete and the underlying cause
func (t *TransferError) Unwrap() []error {
	return []error{ErrCardTransferIncomplete, t.Err}
}

// ProposeTransfer validates a deal of two cards to recipient and prepares the updates
// If cards is empty, the next two pool cards in the game's dealing order are used
func (r *Room) ProposeTransfer(ctx context.Context, gameID, dealer, recipient uuid.UUID, cards []deck.Card) (*Transfer, error) {
	var state *GameState
	var player *account.Account

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		state, err = r.LoadGame(gctx, gameID)
		return err
	})
	g.Go(func() error {
		var err error
		if player, err = r.store.GetAccount(gctx, recipient); err != nil {
			return err
		}

		if player.Kind != account.KindPlayer {
			return ErrNotAPlayer
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(cards) == 0 {
		var err error
		if cards, err = r.draw(state.Snapshot, 2); err != nil {
			return nil, err
		}
	}

	if len(cards) != 2 {
		return nil, ErrWrongCardCount
	}

	hand := [2]deck.Card{cards[0], cards[1]}
	next, patch, err := game.DealCards(state.Snapshot, dealer, recipient, hand)
	if err != nil {
		return nil, err
	}

	nonce, err := token.Generate(nonceLength)
	if err != nil {
		return nil, err
	}

	seat, _ := next.SeatOf(recipient)
	storage := player.Storage
	patch.Apply(&storage)

	return &Transfer{
		Nonce:     nonce,
		GameID:    state.ID,
		Recipient: recipient,
		Seat:      seat,
		Cards:     hand,
		game: account.Update{
			ID:      state.ID,
			Version: state.Version,
			Storage: next.Storage(),
			Transition: &account.Transition{
				Actor:   dealer,
				Action:  "deal",
				Message: fmt.Sprintf("dealt two cards to seat %d", seat),
			},
		},
		player: account.Update{
			ID:      player.ID,
			Version: player.Version,
			Storage: storage,
			Transition: &account.Transition{
				Actor:   dealer,
				Action:  "receive",
				Message: "received two cards",
			},
		},
	}, nil
}

// CommitTransfer commits both sides of a proposed transfer
// On failure the error is a *TransferError and neither account changes
func (r *Room) CommitTransfer(ctx context.Context, t *Transfer) (*GameState, *account.Account, error) {
	gameAcct, playerAcct, err := r.store.CommitTransfer(ctx, t.game, t.player)
	if err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"game":  t.GameID,
			"nonce": t.Nonce,
		}).Warn("card transfer failed")

		return nil, nil, &TransferError{Nonce: t.Nonce, Err: err}
	}

	state, err := newGameState(gameAcct)
	if err != nil {
		return nil, nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"game":      t.GameID,
		"recipient": t.Recipient,
		"nonce":     t.Nonce,
	}).Info("committed card transfer")

	r.publish(state, t.game.Transition)
	return state, playerAcct, nil
}

// DealCards proposes and commits a transfer in one step
func (r *Room) DealCards(ctx context.Context, gameID, dealer, recipient uuid.UUID, cards []deck.Card) (*GameState, *account.Account, error) {
	t, err := r.ProposeTransfer(ctx, gameID, dealer, recipient, cards)
	if err != nil {
		return nil, nil, err
	}

	return r.CommitTransfer(ctx, t)
}
