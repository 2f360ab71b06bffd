package game

import (
	"fmt"
	"slotpoker-server/pkg/action"
)

// Apply validates an action against the snapshot and returns the next snapshot
// The input snapshot is never modified; on error no snapshot is returned
func Apply(s *Snapshot, act action.Action, actor PlayerRef, amount uint64) (*Snapshot, error) {
	seat, ok := actor.resolve(s)
	if s.Phase == Showdown {
		return nil, newActionError(ErrHandComplete, act, seat)
	}

	if !ok {
		err := newActionError(ErrUnknownPlayer, act, -1)
		err.Detail = actor.String()
		return nil, err
	}

	if !act.IsValid() {
		err := newActionError(ErrUnknownAction, act, seat)
		err.Detail = string(act)
		return nil, err
	}

	p := s.Players[seat]
	if p.Folded {
		return nil, newActionError(ErrActionAfterFold, act, seat)
	}

	if s.baseOf(seat) != s.CurrentTurnIndex {
		return nil, newActionError(ErrNotPlayersTurn, act, seat)
	}

	next := s.Clone()
	var err *ActionError
	switch act {
	case action.Bet:
		err = next.bet(seat, amount)
	case action.Raise:
		err = next.raise(seat, amount)
	case action.Call:
		err = next.call(seat)
	case action.Fold:
		err = next.fold(seat)
	case action.Check:
		err = next.check(seat)
	case action.Blinds:
		err = next.blinds(seat)
	}

	if err != nil {
		err.Action = act
		err.Seat = seat
		return nil, err
	}

	next.settle()
	return next, nil
}

// commit moves chips from the player's balance into the pot until their bet equals total
func (s *Snapshot) commit(seat int, total uint64) *ActionError {
	p := &s.Players[seat]
	delta := total - p.Bet
	if delta > p.Balance {
		return &ActionError{
			Kind:   ErrInsufficientBalance,
			Detail: fmt.Sprintf("need %d, have %d", delta, p.Balance),
		}
	}

	p.Balance -= delta
	p.Bet = total
	s.Pot += delta
	return nil
}

// reopen puts every other player who can act back into the waiting state
func (s *Snapshot) reopen(seat int) {
	for i := range s.Players {
		if i != seat && s.Players[i].CanAct() {
			s.Players[i].Status = StatusWaiting
		}
	}
}

func (s *Snapshot) bet(seat int, amount uint64) *ActionError {
	if s.HighestBet != 0 {
		return &ActionError{Kind: ErrBetNotAllowed}
	}

	if amount == 0 {
		return &ActionError{Kind: ErrInvalidAmount}
	}

	if err := s.commit(seat, amount); err != nil {
		return err
	}

	s.HighestBet = amount
	s.CheckCounter = 0
	s.Players[seat].Status = StatusActed
	s.reopen(seat)
	s.advanceTurn(1)
	return nil
}

func (s *Snapshot) raise(seat int, amount uint64) *ActionError {
	if s.HighestBet == 0 {
		return &ActionError{Kind: ErrNothingToRaise}
	}

	if amount <= s.HighestBet {
		return &ActionError{
			Kind:   ErrInsufficientRaise,
			Detail: fmt.Sprintf("raise to %d does not exceed %d", amount, s.HighestBet),
		}
	}

	if err := s.commit(seat, amount); err != nil {
		return err
	}

	s.HighestBet = amount
	s.RaiserIndex = s.CurrentTurnIndex
	s.CheckCounter = 0
	s.Players[seat].Status = StatusActed
	s.reopen(seat)
	s.advanceTurn(1)
	return nil
}

func (s *Snapshot) call(seat int) *ActionError {
	if s.HighestBet == 0 {
		return &ActionError{Kind: ErrNothingToCall}
	}

	if err := s.commit(seat, s.HighestBet); err != nil {
		return err
	}

	s.Players[seat].Status = StatusActed
	s.advanceTurn(1)
	return nil
}

func (s *Snapshot) fold(seat int) *ActionError {
	s.Players[seat].Folded = true
	s.Players[seat].Status = StatusActed
	s.advanceTurn(1)
	return nil
}

func (s *Snapshot) check(seat int) *ActionError {
	p := &s.Players[seat]
	if p.Bet < s.HighestBet {
		return &ActionError{
			Kind:   ErrCheckNotAllowed,
			Detail: fmt.Sprintf("you owe %d", s.HighestBet-p.Bet),
		}
	}

	if p.Status == StatusChecked {
		return &ActionError{Kind: ErrAlreadyChecked}
	}

	p.Status = StatusChecked
	s.CheckCounter++
	s.advanceTurn(int(s.CheckCounter))
	return nil
}

// blinds posts the small blind for the seat on turn and the big blind for the next seat
func (s *Snapshot) blinds(seat int) *ActionError {
	if s.Phase != Preflop || s.Pot != 0 || s.HighestBet != 0 {
		return &ActionError{Kind: ErrBlindsNotAllowed}
	}

	bigBlindBase, ok := s.seatAfter(s.layout.NextBase(s.CurrentTurnIndex, 1), canAct)
	if !ok || bigBlindBase == s.CurrentTurnIndex {
		return &ActionError{Kind: ErrBlindsNotAllowed, Detail: "no seat can post the big blind"}
	}

	bigBlindSeat, _ := s.layout.SeatForBase(bigBlindBase)
	if err := s.commit(seat, s.SmallBlind); err != nil {
		return err
	}

	if err := s.commit(bigBlindSeat, s.BigBlind); err != nil {
		err.Detail = fmt.Sprintf("big blind: %s", err.Detail)
		return err
	}

	s.HighestBet = s.BigBlind
	s.CurrentTurnIndex = bigBlindBase
	s.advanceTurn(1)
	return nil
}
