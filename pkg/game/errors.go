package game

import (
	"errors"
	"fmt"
	"slotpoker-server/pkg/action"
	"slotpoker-server/pkg/deck"
)

// ErrInvalidConfig is returned when a game configuration cannot be used
var ErrInvalidConfig = errors.New("invalid game configuration")

// ErrCorruptStorage is returned when a slot area does not decode into a snapshot
var ErrCorruptStorage = errors.New("storage does not hold a valid game")

// action errors
var (
	ErrNotPlayersTurn      = errors.New("it is not your turn")
	ErrInsufficientRaise   = errors.New("raise must be greater than the highest bet")
	ErrInsufficientBalance = errors.New("amount exceeds your remaining balance")
	ErrActionAfterFold     = errors.New("you have already folded")
	ErrAlreadyChecked      = errors.New("you have already checked this round")
	ErrCheckNotAllowed     = errors.New("you cannot check when you owe chips")
	ErrBetNotAllowed       = errors.New("you cannot bet when a bet is open, call or raise instead")
	ErrNothingToCall       = errors.New("there is no bet to call")
	ErrNothingToRaise      = errors.New("there is no bet to raise, bet instead")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrUnknownPlayer       = errors.New("player is not seated at this table")
	ErrHandComplete        = errors.New("the hand is complete")
	ErrUnknownAction       = errors.New("unknown action")
	ErrBlindsNotAllowed    = errors.New("blinds can only be posted before the first commitment")
)

// deal errors
var (
	ErrDealerMismatch          = errors.New("only the game account can deal")
	ErrRecipientMismatch       = errors.New("recipient is not seated at this table")
	ErrHandAlreadyDealt        = errors.New("recipient already holds cards")
	ErrDuplicateCardAssignment = errors.New("card is already assigned")
	ErrCardAlreadyRevealed     = errors.New("card is already revealed")
	ErrBoardOutOfPhase         = errors.New("board cards do not match the current phase")
)

// ConstructionError is returned when a game cannot be created or decoded
type ConstructionError struct {
	Kind   error
	Detail string
}

func (c *ConstructionError) Error() string {
	if c.Detail == "" {
		return c.Kind.Error()
	}

	return fmt.Sprintf("%s: %s", c.Kind, c.Detail)
}

func (c *ConstructionError) Unwrap() error {
	return c.Kind
}

func newConstructionError(kind error, format string, args ...interface{}) *ConstructionError {
	return &ConstructionError{
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
	}
}

// ActionError is returned when a player action is rejected
// Kind is one of the action sentinel errors and can be tested with errors.Is
type ActionError struct {
	Kind   error
	Action action.Action
	Seat   int
	Detail string
}

func (a *ActionError) Error() string {
	if a.Detail == "" {
		return a.Kind.Error()
	}

	return fmt.Sprintf("%s: %s", a.Kind, a.Detail)
}

func (a *ActionError) Unwrap() error {
	return a.Kind
}

func newActionError(kind error, act action.Action, seat int) *ActionError {
	return &ActionError{
		Kind:   kind,
		Action: act,
		Seat:   seat,
	}
}

// DealError is returned when a card distribution is rejected
type DealError struct {
	Kind error
	Card *deck.Card
}

func (d *DealError) Error() string {
	if d.Card == nil {
		return d.Kind.Error()
	}

	return fmt.Sprintf("%s: %s", d.Kind, deck.CardToString(*d.Card))
}

func (d *DealError) Unwrap() error {
	return d.Kind
}

func newDealError(kind error, card *deck.Card) *DealError {
	return &DealError{
		Kind: kind,
		Card: card,
	}
}
