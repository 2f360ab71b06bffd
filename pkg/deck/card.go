package deck

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidCard is returned when a suit or rank is out of range
var ErrInvalidCard = errors.New("invalid card")

// Suit represents a card suit
// Suits are numbered 1 through 4 so they can be stored directly in a slot
type Suit uint8

// suit constants
const (
	Clubs Suit = iota + 1
	Diamonds
	Hearts
	Spades
)

// Suits lists every suit in canonical order
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// rank constants
const (
	Ace   = 1
	Jack  = 11
	Queen = 12
	King  = 13
)

// NumRanks is the number of ranks in a suit
const NumRanks = 13

// Card is an individual playing card
type Card struct {
	Suit Suit  `json:"suit"`
	Rank uint8 `json:"rank"`
}

// NewCard returns a card, or an error if the suit or rank is out of range
func NewCard(suit Suit, rank uint8) (Card, error) {
	c := Card{Suit: suit, Rank: rank}
	if !c.IsValid() {
		return Card{}, fmt.Errorf("%w: suit %d, rank %d", ErrInvalidCard, suit, rank)
	}

	return c, nil
}

// IsValid returns true if the suit is in 1..4 and the rank is in 1..13
func (c Card) IsValid() bool {
	return c.Suit >= Clubs && c.Suit <= Spades && c.Rank >= Ace && c.Rank <= King
}

// Index returns the zero-based position of the card in the canonical deck
// Cards are ordered suit-major, rank-minor
func (c Card) Index() int {
	return int(c.Suit-1)*NumRanks + int(c.Rank-1)
}

// CardAt returns the card at the zero-based canonical position
func CardAt(index int) (Card, error) {
	if index < 0 || index >= 52 {
		return Card{}, fmt.Errorf("%w: index %d", ErrInvalidCard, index)
	}

	return Card{
		Suit: Suit(index/NumRanks + 1),
		Rank: uint8(index%NumRanks + 1),
	}, nil
}

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♢"
	case Hearts:
		return "♡"
	case Spades:
		return "♠"
	}

	return "?"
}

func (c Card) String() string {
	var rank string
	switch c.Rank {
	case Ace:
		rank = "A"
	case Jack:
		rank = "J"
	case Queen:
		rank = "Q"
	case King:
		rank = "K"
	default:
		rank = strconv.Itoa(int(c.Rank))
	}

	return rank + c.Suit.String()
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c Card) Equal(card Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

var cardRx = regexp.MustCompile(`(?i)^([1-9]|1[0-3])([cdhs])\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <rank><suit> where rank >= 1 and <= 13 and suit in [cdhs]
func CardFromString(s string) (Card, error) {
	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		return Card{}, fmt.Errorf("%w: could not parse %q", ErrInvalidCard, s)
	}

	rank, err := strconv.Atoi(match[1])
	if err != nil {
		return Card{}, fmt.Errorf("%w: could not parse %q: %v", ErrInvalidCard, s, err)
	}

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	}

	return Card{Suit: suit, Rank: uint8(rank)}, nil
}

// MustCardFromString is like CardFromString but panics on error
// This should only be used by tests
func MustCardFromString(s string) Card {
	c, err := CardFromString(s)
	if err != nil {
		panic(err)
	}

	return c
}

// CardToString converts a card (Ace of Clubs) to a string (1c)
func CardToString(card Card) string {
	var suit string
	switch card.Suit {
	case Clubs:
		suit = "c"
	case Diamonds:
		suit = "d"
	case Hearts:
		suit = "h"
	case Spades:
		suit = "s"
	}

	return fmt.Sprintf("%d%s", card.Rank, suit)
}

// CardsToString will convert a slice of cards to a string in the format of 2c,3h,4s,...
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
