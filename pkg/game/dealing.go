package game

import (
	"errors"
	"github.com/google/uuid"
	"slotpoker-server/pkg/deck"
	"slotpoker-server/pkg/slot"
)

// CreateGame builds the initial snapshot of a game account
// Seats without a player account are left with a zero account id and no chips, and never act
func CreateGame(cfg Config, gameAccount uuid.UUID, players ...uuid.UUID) (*Snapshot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if gameAccount == uuid.Nil {
		return nil, newConstructionError(ErrInvalidConfig, "game account is required")
	}

	if len(players) > int(cfg.PlayerCount) {
		return nil, newConstructionError(ErrInvalidConfig, "%d players for %d seats", len(players), cfg.PlayerCount)
	}

	seen := make(map[uuid.UUID]bool)
	for _, id := range players {
		if id == uuid.Nil {
			continue
		}

		if seen[id] || id == gameAccount {
			return nil, newConstructionError(ErrInvalidConfig, "account %s is seated twice", id)
		}

		seen[id] = true
	}

	l, err := cfg.Layout()
	if err != nil {
		return nil, err
	}

	s := &Snapshot{
		GameAccount:      gameAccount,
		FlopIndex:        cfg.FlopIndex(),
		SmallBlind:       cfg.SmallBlindAmount,
		BigBlind:         cfg.BigBlind(),
		BuyIn:            cfg.BuyInAmount,
		CurrentTurnIndex: cfg.CurrentTurnIndex(),
		HighestBet:       cfg.HighestBet,
		Phase:            Preflop,
		Players:          make([]Player, cfg.PlayerCount),
		layout:           l,
	}

	for i, c := range deck.Canonical() {
		s.Cards[i] = CardState{Card: c, Holder: HolderPool}
	}

	for seat := range s.Players {
		s.Players[seat] = Player{Seat: seat}
		if seat < len(players) && players[seat] != uuid.Nil {
			s.Players[seat].Account = players[seat]
			s.Players[seat].Balance = cfg.PlayerInitialBalance
		}
	}

	if next, ok := s.seatAfter(s.CurrentTurnIndex, canAct); ok {
		s.CurrentTurnIndex = next
	}

	return s, nil
}

// RecipientPatch is the change to a player account's storage produced by a deal
type RecipientPatch struct {
	Account uuid.UUID           `json:"account"`
	Slots   map[uint8]slot.Word `json:"slots"`
}

// Apply writes the patch into the player's storage
func (r RecipientPatch) Apply(st *slot.Storage) {
	for index, w := range r.Slots {
		st.SetItem(index, w)
	}
}

// DealCards hands two hidden cards to a seated player
// The game snapshot only records that the cards left the pool and that the seat holds a hand.
// The patch makes the cards readable on the player account
func DealCards(s *Snapshot, dealer, recipient uuid.UUID, cards [2]deck.Card) (*Snapshot, RecipientPatch, error) {
	if dealer != s.GameAccount {
		return nil, RecipientPatch{}, newDealError(ErrDealerMismatch, nil)
	}

	if s.Phase == Showdown {
		return nil, RecipientPatch{}, newDealError(ErrHandComplete, nil)
	}

	seat, ok := s.SeatOf(recipient)
	if !ok {
		return nil, RecipientPatch{}, newDealError(ErrRecipientMismatch, nil)
	}

	if s.Players[seat].HasCards() {
		return nil, RecipientPatch{}, newDealError(ErrHandAlreadyDealt, nil)
	}

	if cards[0].Equal(cards[1]) {
		return nil, RecipientPatch{}, newDealError(ErrDuplicateCardAssignment, &cards[1])
	}

	for i := range cards {
		if err := s.checkAvailable(&cards[i]); err != nil {
			return nil, RecipientPatch{}, err
		}
	}

	next := s.Clone()
	patch := RecipientPatch{
		Account: recipient,
		Slots:   make(map[uint8]slot.Word, 2),
	}

	handSlots := [2]uint8{slot.PlayerHandSlot1, slot.PlayerHandSlot2}
	for i, c := range cards {
		next.Cards[c.Index()].Holder = HolderDealt
		patch.Slots[handSlots[i]] = slot.Word{uint64(c.Suit), uint64(c.Rank), 0, 0}
	}

	next.Players[seat].Dealt = true

	return next, patch, nil
}

// RevealBoard publishes community cards for the current phase
// The flop reveals three cards, the turn and river one each
func RevealBoard(s *Snapshot, dealer uuid.UUID, cards ...deck.Card) (*Snapshot, error) {
	if dealer != s.GameAccount {
		return nil, newDealError(ErrDealerMismatch, nil)
	}

	want := s.Phase.BoardSize()
	have := len(s.Board())
	if s.Phase == Preflop || s.Phase == Showdown || have+len(cards) != want || len(cards) == 0 {
		return nil, newDealError(ErrBoardOutOfPhase, nil)
	}

	requested := make(map[deck.Card]bool)
	for i := range cards {
		if requested[cards[i]] {
			return nil, newDealError(ErrDuplicateCardAssignment, &cards[i])
		}

		requested[cards[i]] = true
		if err := s.checkAvailable(&cards[i]); err != nil {
			return nil, err
		}
	}

	next := s.Clone()
	for _, c := range cards {
		next.Cards[c.Index()].Holder = HolderBoard
		next.Cards[c.Index()].Revealed = true
	}

	return next, nil
}

func (s *Snapshot) checkAvailable(c *deck.Card) error {
	if !c.IsValid() {
		return newDealError(deck.ErrInvalidCard, c)
	}

	state := s.CardState(*c)
	if state.Revealed {
		return newDealError(ErrCardAlreadyRevealed, c)
	}

	if state.Holder != HolderPool {
		return newDealError(ErrDuplicateCardAssignment, c)
	}

	return nil
}

// IsDealError returns true if err is a rejected card distribution
func IsDealError(err error) bool {
	var de *DealError
	return errors.As(err, &de)
}
