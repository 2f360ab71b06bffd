package game

import (
	"github.com/google/uuid"
	"slotpoker-server/pkg/deck"
	"slotpoker-server/pkg/slot"
)

// Phase is the betting street
type Phase uint8

// phase constants
const (
	Preflop Phase = iota
	Flop
	Turn
	River
	Showdown
)

func (p Phase) String() string {
	switch p {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	}

	return "unknown"
}

// BoardSize is the number of community cards visible once the phase is reached
func (p Phase) BoardSize() int {
	switch p {
	case Flop:
		return 3
	case Turn:
		return 4
	case River, Showdown:
		return 5
	}

	return 0
}

// RoundStatus tracks what a player did in the current betting round
type RoundStatus uint8

// round status constants
const (
	StatusWaiting RoundStatus = iota
	StatusChecked
	StatusActed
)

// Holder values of a card slot
// A dealt card never names its seat; only the recipient's account holds the card
const (
	HolderPool  uint8 = 0
	HolderDealt uint8 = uint8(slot.HolderDealt)
	HolderBoard uint8 = uint8(slot.HolderBoard)
)

// CardState is a card slot of the game account
type CardState struct {
	Card     deck.Card `json:"card"`
	Revealed bool      `json:"revealed"`
	Holder   uint8     `json:"holder"`
}

// Player is a player stats block
type Player struct {
	Seat    int         `json:"seat"`
	Account uuid.UUID   `json:"account"`
	Dealt   bool        `json:"dealt"`
	Bet     uint64      `json:"bet"`
	Balance uint64      `json:"balance"`
	Status  RoundStatus `json:"status"`
	Folded  bool        `json:"folded"`
}

// IsSeated returns true if a player account occupies the seat
func (p Player) IsSeated() bool {
	return p.Account != uuid.Nil
}

// IsAllIn returns true if the player has committed their entire balance
func (p Player) IsAllIn() bool {
	return p.Balance == 0
}

// IsActive returns true if the seat is taken and the player has not folded
func (p Player) IsActive() bool {
	return p.IsSeated() && !p.Folded
}

// CanAct returns true if the player can still take a betting action
func (p Player) CanAct() bool {
	return p.IsActive() && !p.IsAllIn()
}

// HasCards returns true if hole cards were dealt to the player
func (p Player) HasCards() bool {
	return p.Dealt
}

// Snapshot is the typed view of a game account's slots
type Snapshot struct {
	GameAccount      uuid.UUID                `json:"gameAccount"`
	Cards            [slot.DeckSize]CardState `json:"-"`
	FlopIndex        uint64                   `json:"flopIndex"`
	SmallBlind       uint64                   `json:"smallBlind"`
	BigBlind         uint64                   `json:"bigBlind"`
	BuyIn            uint8                    `json:"buyIn"`
	RaiserIndex      uint8                    `json:"raiserIndex"`
	CheckCounter     uint64                   `json:"checkCounter"`
	CurrentTurnIndex uint8                    `json:"currentTurnIndex"`
	HighestBet       uint64                   `json:"highestBet"`
	Phase            Phase                    `json:"phase"`
	Pot              uint64                   `json:"pot"`
	Players          []Player                 `json:"players"`

	layout slot.Layout
}

// Layout returns the slot layout of the game
func (s *Snapshot) Layout() slot.Layout {
	return s.layout
}

// PlayerCount returns the number of seats
func (s *Snapshot) PlayerCount() int {
	return len(s.Players)
}

// Clone returns a deep copy of the snapshot
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.Players = make([]Player, len(s.Players))
	copy(c.Players, s.Players)
	return &c
}

// SeatOf returns the seat of the given player account
func (s *Snapshot) SeatOf(account uuid.UUID) (int, bool) {
	if account == uuid.Nil {
		return 0, false
	}

	for _, p := range s.Players {
		if p.Account == account {
			return p.Seat, true
		}
	}

	return 0, false
}

// baseOf returns the stats block of a seat taken from s.Players
func (s *Snapshot) baseOf(seat int) uint8 {
	base, _ := s.layout.PlayerBaseSlot(seat)
	return base
}

// SeatOnTurn returns the seat of the player whose turn it is
func (s *Snapshot) SeatOnTurn() (int, bool) {
	return s.layout.SeatForBase(s.CurrentTurnIndex)
}

// CardState returns the state of a card
func (s *Snapshot) CardState(c deck.Card) CardState {
	return s.Cards[c.Index()]
}

// Board returns the revealed community cards
func (s *Snapshot) Board() []deck.Card {
	board := make([]deck.Card, 0, 5)
	for _, c := range s.Cards {
		if c.Holder == HolderBoard {
			board = append(board, c.Card)
		}
	}

	return board
}

// Pool returns the cards still held by the dealer
func (s *Snapshot) Pool() []deck.Card {
	pool := make([]deck.Card, 0, slot.DeckSize)
	for _, c := range s.Cards {
		if c.Holder == HolderPool {
			pool = append(pool, c.Card)
		}
	}

	return pool
}

// GetItem returns the word the snapshot stores at index
func (s *Snapshot) GetItem(index uint8) slot.Word {
	st := s.Storage()
	return st.GetItem(index)
}

// Storage encodes the snapshot into the game account's slot area
func (s *Snapshot) Storage() slot.Storage {
	var st slot.Storage

	gameWord := slot.UUIDWord(s.GameAccount)
	gameWord[2] = uint64(s.layout.FirstToAct())
	st.SetItem(slot.GameAccountSlot, gameWord)

	for i, c := range s.Cards {
		var revealed uint64
		if c.Revealed {
			revealed = 1
		}

		st.SetItem(slot.CardSlotStart+uint8(i), slot.Word{
			uint64(c.Card.Suit),
			uint64(c.Card.Rank),
			revealed,
			uint64(c.Holder),
		})
	}

	st.SetValue(slot.FlopIndexSlot, s.FlopIndex)
	st.SetValue(slot.SmallBlindSlot, s.SmallBlind)
	st.SetValue(slot.BigBlindSlot, s.BigBlind)
	st.SetValue(slot.BuyInSlot, uint64(s.BuyIn))
	st.SetValue(slot.PlayerCountSlot, uint64(len(s.Players)))
	st.SetValue(slot.RaiserIndexSlot, uint64(s.RaiserIndex))
	st.SetValue(slot.CheckCounterSlot, s.CheckCounter)
	st.SetValue(slot.CurrentTurnIndexSlot, uint64(s.CurrentTurnIndex))
	st.SetValue(slot.HighestBetSlot, s.HighestBet)
	st.SetValue(slot.CurrentPhaseSlot, uint64(s.Phase))
	st.SetValue(slot.PotSlot, s.Pot)

	for _, p := range s.Players {
		base := s.baseOf(p.Seat)
		st.SetItem(base+slot.PlayerIDOffset, slot.UUIDWord(p.Account))
		if p.Dealt {
			st.SetValue(base+slot.PlayerCard1Offset, slot.HandDealtMarker)
			st.SetValue(base+slot.PlayerCard2Offset, slot.HandDealtMarker)
		}
		st.SetValue(base+slot.PlayerBetOffset, p.Bet)
		st.SetValue(base+slot.PlayerBalanceOffset, p.Balance)
		st.SetValue(base+slot.PlayerStatusOffset, uint64(p.Status))
		if p.Folded {
			st.SetValue(base+slot.IsFoldOffset, 1)
		}
	}

	return st
}

// FromStorage decodes a game account's slot area
func FromStorage(st *slot.Storage) (*Snapshot, error) {
	gameWord := st.GetItem(slot.GameAccountSlot)
	playerCount := st.Value(slot.PlayerCountSlot)
	if playerCount > 255 || gameWord[2] > 255 {
		return nil, newConstructionError(ErrCorruptStorage, "player count %d, first player index %d", playerCount, gameWord[2])
	}

	l, err := slot.NewLayout(uint8(playerCount), uint8(gameWord[2]))
	if err != nil {
		return nil, &ConstructionError{Kind: err}
	}

	s := &Snapshot{
		GameAccount:      gameWord.UUID(),
		FlopIndex:        st.Value(slot.FlopIndexSlot),
		SmallBlind:       st.Value(slot.SmallBlindSlot),
		BigBlind:         st.Value(slot.BigBlindSlot),
		BuyIn:            uint8(st.Value(slot.BuyInSlot)),
		RaiserIndex:      uint8(st.Value(slot.RaiserIndexSlot)),
		CheckCounter:     st.Value(slot.CheckCounterSlot),
		CurrentTurnIndex: uint8(st.Value(slot.CurrentTurnIndexSlot)),
		HighestBet:       st.Value(slot.HighestBetSlot),
		Phase:            Phase(st.Value(slot.CurrentPhaseSlot)),
		Pot:              st.Value(slot.PotSlot),
		Players:          make([]Player, playerCount),
		layout:           l,
	}

	if s.Phase > Showdown {
		return nil, newConstructionError(ErrCorruptStorage, "phase %d", s.Phase)
	}

	for i := range s.Cards {
		w := st.GetItem(slot.CardSlotStart + uint8(i))
		expected, _ := deck.CardAt(i)
		if w[slot.CardSuitField] != uint64(expected.Suit) || w[slot.CardRankField] != uint64(expected.Rank) {
			return nil, newConstructionError(ErrCorruptStorage, "slot %d holds %s, expected %s", i+1, w, expected)
		}

		s.Cards[i] = CardState{
			Card:     expected,
			Revealed: w[slot.CardRevealedField] == 1,
			Holder:   uint8(w[slot.CardHolderField]),
		}
	}

	for seat := range s.Players {
		base := s.baseOf(seat)
		s.Players[seat] = Player{
			Seat:    seat,
			Account: st.GetItem(base + slot.PlayerIDOffset).UUID(),
			Dealt:   st.Value(base+slot.PlayerCard1Offset) == slot.HandDealtMarker,
			Bet:     st.Value(base + slot.PlayerBetOffset),
			Balance: st.Value(base + slot.PlayerBalanceOffset),
			Status:  RoundStatus(st.Value(base + slot.PlayerStatusOffset)),
			Folded:  st.Value(base+slot.IsFoldOffset) == 1,
		}
	}

	return s, nil
}
