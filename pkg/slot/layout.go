package slot

import (
	"errors"
	"fmt"
)

// ErrInvalidLayout is returned when a configuration would produce overlapping
// or out-of-range slot regions
var ErrInvalidLayout = errors.New("invalid layout")

// Game account layout
const (
	GameAccountSlot uint8 = 0

	// CardSlotStart is the slot of the first card; cards run suit-major, rank-minor
	CardSlotStart uint8 = 1
	DeckSize            = 52
	CardSlotEnd   uint8 = CardSlotStart + DeckSize - 1

	FlopIndexSlot        uint8 = 53
	SmallBlindSlot       uint8 = 54
	BigBlindSlot         uint8 = 55
	BuyInSlot            uint8 = 56
	PlayerCountSlot      uint8 = 57
	RaiserIndexSlot      uint8 = 58
	CheckCounterSlot     uint8 = 59
	CurrentTurnIndexSlot uint8 = 60
	HighestBetSlot       uint8 = 61
	CurrentPhaseSlot     uint8 = 62
	PotSlot              uint8 = 63

	// FirstPlayerIndex is the base slot of the first player stats block
	FirstPlayerIndex uint8 = 64

	// PlayerStatsSlots is the stride between two player stats blocks
	PlayerStatsSlots uint8 = 13
)

// Offsets inside a player stats block
const (
	PlayerIDOffset      uint8 = 0
	PlayerCard1Offset   uint8 = 1
	PlayerCard2Offset   uint8 = 2
	PlayerBetOffset     uint8 = 3
	PlayerBalanceOffset uint8 = 4
	PlayerStatusOffset  uint8 = 5
	IsFoldOffset        uint8 = 10
)

// Derived slots of the first player block
const (
	PlayerBetSlot     = FirstPlayerIndex + PlayerBetOffset
	PlayerBalanceSlot = FirstPlayerIndex + PlayerBalanceOffset
	PlayerFoldSlot    = FirstPlayerIndex + IsFoldOffset
)

// Player account layout
const (
	PlayerHandSlot1 uint8 = 100
	PlayerHandSlot2 uint8 = 101
)

// Card word fields
const (
	CardSuitField     = 0
	CardRankField     = 1
	CardRevealedField = 2
	CardHolderField   = 3
)

// Card holder values other than the dealer pool (0)
const (
	// HolderDealt marks a card that was dealt to a player; the seat is not recorded
	HolderDealt uint64 = 254

	// HolderBoard marks a card that was revealed as a community card
	HolderBoard uint64 = 255
)

// HandDealtMarker is written to both hole card fields of a player block once the hand is dealt
const HandDealtMarker uint64 = 1

// MaxPlayers is the largest table whose player blocks fit below slot 256
const MaxPlayers = (NumSlots - int(FirstPlayerIndex)) / int(PlayerStatsSlots)

// TableField names a single table-level field
type TableField int

// TableField constants
const (
	FieldFlopIndex TableField = iota
	FieldSmallBlind
	FieldBigBlind
	FieldBuyIn
	FieldPlayerCount
	FieldRaiserIndex
	FieldCheckCounter
	FieldCurrentTurnIndex
	FieldHighestBet
	FieldCurrentPhase
	FieldPot
)

var tableFieldSlots = map[TableField]uint8{
	FieldFlopIndex:        FlopIndexSlot,
	FieldSmallBlind:       SmallBlindSlot,
	FieldBigBlind:         BigBlindSlot,
	FieldBuyIn:            BuyInSlot,
	FieldPlayerCount:      PlayerCountSlot,
	FieldRaiserIndex:      RaiserIndexSlot,
	FieldCheckCounter:     CheckCounterSlot,
	FieldCurrentTurnIndex: CurrentTurnIndexSlot,
	FieldHighestBet:       HighestBetSlot,
	FieldCurrentPhase:     CurrentPhaseSlot,
	FieldPot:              PotSlot,
}

func (f TableField) String() string {
	switch f {
	case FieldFlopIndex:
		return "flop-index"
	case FieldSmallBlind:
		return "small-blind"
	case FieldBigBlind:
		return "big-blind"
	case FieldBuyIn:
		return "buy-in"
	case FieldPlayerCount:
		return "player-count"
	case FieldRaiserIndex:
		return "raiser-index"
	case FieldCheckCounter:
		return "check-counter"
	case FieldCurrentTurnIndex:
		return "current-turn-index"
	case FieldHighestBet:
		return "highest-bet"
	case FieldCurrentPhase:
		return "current-phase"
	case FieldPot:
		return "pot"
	}

	return fmt.Sprintf("field(%d)", int(f))
}

// Layout computes every slot index for a table of a given size
type Layout struct {
	playerCount      uint8
	firstPlayerIndex uint8
}

// NewLayout validates the player count and the first-to-act index
func NewLayout(playerCount, firstPlayerIndex uint8) (Layout, error) {
	if playerCount < 2 {
		return Layout{}, fmt.Errorf("%w: need at least 2 players, got %d", ErrInvalidLayout, playerCount)
	}

	if int(playerCount) > MaxPlayers {
		return Layout{}, fmt.Errorf("%w: %d players overflow the slot area (max %d)", ErrInvalidLayout, playerCount, MaxPlayers)
	}

	l := Layout{
		playerCount:      playerCount,
		firstPlayerIndex: firstPlayerIndex,
	}

	if _, ok := l.SeatForBase(firstPlayerIndex); !ok {
		return Layout{}, fmt.Errorf("%w: first player index %d is not a player block", ErrInvalidLayout, firstPlayerIndex)
	}

	return l, nil
}

// PlayerCount returns the number of seats
func (l Layout) PlayerCount() uint8 {
	return l.playerCount
}

// FirstToAct returns the base slot of the seat that opens every betting round
func (l Layout) FirstToAct() uint8 {
	return l.firstPlayerIndex
}

// LastPlayerIndex returns the base slot of the last seat
func (l Layout) LastPlayerIndex() uint8 {
	return l.baseSlot(int(l.playerCount) - 1)
}

// SlotForCard returns the canonical slot of a card
func (l Layout) SlotForCard(suit, rank uint8) (uint8, error) {
	if suit < 1 || suit > 4 || rank < 1 || rank > 13 {
		return 0, fmt.Errorf("no slot for suit %d, rank %d", suit, rank)
	}

	return CardSlotStart + (suit-1)*13 + (rank - 1), nil
}

// SlotForTableField returns the slot of a table-level field
func (l Layout) SlotForTableField(field TableField) (uint8, error) {
	s, ok := tableFieldSlots[field]
	if !ok {
		return 0, fmt.Errorf("no slot for %s", field)
	}

	return s, nil
}

// PlayerBaseSlot returns the first slot of the seat's stats block
func (l Layout) PlayerBaseSlot(seat int) (uint8, error) {
	if seat < 0 || seat >= int(l.playerCount) {
		return 0, fmt.Errorf("%w: seat %d at a %d seat table", ErrInvalidLayout, seat, l.playerCount)
	}

	return l.baseSlot(seat), nil
}

// PlayerSlot returns the slot of a field inside the seat's stats block
func (l Layout) PlayerSlot(seat int, offset uint8) (uint8, error) {
	if offset >= PlayerStatsSlots {
		return 0, fmt.Errorf("%w: offset %d is outside a player block", ErrInvalidLayout, offset)
	}

	base, err := l.PlayerBaseSlot(seat)
	if err != nil {
		return 0, err
	}

	return base + offset, nil
}

// NOTE: seat must be within the table
func (l Layout) baseSlot(seat int) uint8 {
	return FirstPlayerIndex + uint8(seat)*PlayerStatsSlots
}

// SeatForBase maps a player block base slot back to its seat
func (l Layout) SeatForBase(index uint8) (int, bool) {
	if index < FirstPlayerIndex {
		return 0, false
	}

	delta := index - FirstPlayerIndex
	if delta%PlayerStatsSlots != 0 {
		return 0, false
	}

	seat := int(delta / PlayerStatsSlots)
	if seat >= int(l.playerCount) {
		return 0, false
	}

	return seat, true
}

// NextBase advances a player base slot by n strides, wrapping inside the player region
func (l Layout) NextBase(index uint8, n int) uint8 {
	seat, ok := l.SeatForBase(index)
	if !ok {
		seat = 0
	}

	next := (seat + n) % int(l.playerCount)
	return l.baseSlot(next)
}
