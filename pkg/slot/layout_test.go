package slot

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestLayout_Constants(t *testing.T) {
	a := assert.New(t)

	a.Equal(uint8(52), CardSlotEnd)
	a.Equal(uint8(67), PlayerBetSlot)
	a.Equal(uint8(68), PlayerBalanceSlot)
	a.Equal(uint8(74), PlayerFoldSlot)
	a.Equal(14, MaxPlayers)
}

func TestNewLayout(t *testing.T) {
	a := assert.New(t)

	l, err := NewLayout(4, 64)
	a.NoError(err)
	a.Equal(uint8(4), l.PlayerCount())
	a.Equal(uint8(64), l.FirstToAct())
	a.Equal(uint8(103), l.LastPlayerIndex())

	l, err = NewLayout(4, 90)
	a.NoError(err)
	a.Equal(uint8(90), l.FirstToAct())

	_, err = NewLayout(1, 64)
	a.True(errors.Is(err, ErrInvalidLayout))

	_, err = NewLayout(15, 64)
	a.True(errors.Is(err, ErrInvalidLayout))

	_, err = NewLayout(4, 65)
	a.True(errors.Is(err, ErrInvalidLayout))

	_, err = NewLayout(4, 116)
	a.True(errors.Is(err, ErrInvalidLayout), "seat 4 does not exist at a 4 seat table")

	_, err = NewLayout(4, 60)
	a.True(errors.Is(err, ErrInvalidLayout))
}

func TestLayout_SlotForCard(t *testing.T) {
	a := assert.New(t)

	l, _ := NewLayout(2, 64)

	s, err := l.SlotForCard(1, 1)
	a.NoError(err)
	a.Equal(uint8(1), s)

	s, _ = l.SlotForCard(1, 13)
	a.Equal(uint8(13), s)

	s, _ = l.SlotForCard(2, 1)
	a.Equal(uint8(14), s)

	s, _ = l.SlotForCard(4, 13)
	a.Equal(uint8(52), s)

	_, err = l.SlotForCard(0, 1)
	a.Error(err)

	_, err = l.SlotForCard(1, 14)
	a.Error(err)
}

func TestLayout_SlotForTableField(t *testing.T) {
	a := assert.New(t)

	l, _ := NewLayout(4, 64)
	expected := map[TableField]uint8{
		FieldFlopIndex:        53,
		FieldSmallBlind:       54,
		FieldBigBlind:         55,
		FieldBuyIn:            56,
		FieldPlayerCount:      57,
		FieldRaiserIndex:      58,
		FieldCheckCounter:     59,
		FieldCurrentTurnIndex: 60,
		FieldHighestBet:       61,
		FieldCurrentPhase:     62,
		FieldPot:              63,
	}

	for field, index := range expected {
		s, err := l.SlotForTableField(field)
		a.NoError(err)
		a.Equal(index, s, field.String())
	}

	a.Equal("highest-bet", FieldHighestBet.String())

	_, err := l.SlotForTableField(TableField(99))
	a.EqualError(err, "no slot for field(99)")
}

func TestLayout_PlayerSlots(t *testing.T) {
	a := assert.New(t)

	l, _ := NewLayout(4, 64)
	for seat, index := range []uint8{64, 77, 90, 103} {
		base, err := l.PlayerBaseSlot(seat)
		a.NoError(err)
		a.Equal(index, base)
	}

	s, err := l.PlayerSlot(1, PlayerBalanceOffset)
	a.NoError(err)
	a.Equal(uint8(81), s)

	s, _ = l.PlayerSlot(1, IsFoldOffset)
	a.Equal(uint8(87), s)

	seat, ok := l.SeatForBase(90)
	a.True(ok)
	a.Equal(2, seat)

	_, ok = l.SeatForBase(91)
	a.False(ok)

	_, ok = l.SeatForBase(116)
	a.False(ok)
}

func TestLayout_PlayerSlotsOutOfRange(t *testing.T) {
	a := assert.New(t)

	l, _ := NewLayout(4, 64)

	_, err := l.PlayerBaseSlot(4)
	a.True(errors.Is(err, ErrInvalidLayout))

	_, err = l.PlayerBaseSlot(-1)
	a.True(errors.Is(err, ErrInvalidLayout))

	// seat 20 would wrap past slot 255
	_, err = l.PlayerBaseSlot(20)
	a.True(errors.Is(err, ErrInvalidLayout))

	_, err = l.PlayerSlot(4, PlayerBetOffset)
	a.True(errors.Is(err, ErrInvalidLayout))

	_, err = l.PlayerSlot(0, PlayerStatsSlots)
	a.True(errors.Is(err, ErrInvalidLayout))
}

func TestLayout_NextBase(t *testing.T) {
	a := assert.New(t)

	l, _ := NewLayout(4, 64)
	a.Equal(uint8(77), l.NextBase(64, 1))
	a.Equal(uint8(103), l.NextBase(64, 3))
	a.Equal(uint8(64), l.NextBase(103, 1))
	a.Equal(uint8(77), l.NextBase(90, 3))
	a.Equal(uint8(90), l.NextBase(90, 4))
}
