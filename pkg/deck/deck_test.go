package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDeck(t *testing.T) {
	deck := New()

	assert.Equal(t, 52, deck.CardsLeft())
	assert.Equal(t, Card{Rank: Ace, Suit: Clubs}, deck.Cards[0])
	assert.Equal(t, Card{Rank: King, Suit: Spades}, deck.Cards[51])
	assert.Equal(t, int64(-1), deck.GetSeed())

	canonical := deck.HashCode()

	deck.Shuffle(1)
	assert.Equal(t, int64(1), deck.GetSeed())
	assert.Equal(t, 52, deck.CardsLeft())
	shuffled := deck.HashCode()
	assert.NotEqual(t, canonical, shuffled)

	// same seed, same order
	other := New()
	other.Shuffle(1)
	assert.Equal(t, shuffled, other.HashCode())
	assert.Equal(t, deck.Cards, other.Cards)

	other.Shuffle(2)
	assert.NotEqual(t, shuffled, other.HashCode())
}

func TestDeck_ShuffleKeepsEveryCard(t *testing.T) {
	d := New()
	d.Shuffle(42)

	seen := make(map[Card]bool)
	for _, c := range d.Cards {
		assert.True(t, c.IsValid())
		seen[c] = true
	}

	assert.Equal(t, 52, len(seen))
}

func TestDeck_Draw(t *testing.T) {
	deck := New()

	assert.True(t, deck.CanDraw(52))
	assert.False(t, deck.CanDraw(53))

	for i := 0; i < 52; i++ {
		card, err := deck.Draw()
		assert.NoError(t, err)
		assert.True(t, card.IsValid())
	}

	assert.False(t, deck.CanDraw(1))

	card, err := deck.Draw()
	assert.Equal(t, Card{}, card)
	assert.Equal(t, ErrEndOfDeck, err)

	deck.Shuffle(7)
	assert.True(t, deck.CanDraw(52), "expected Shuffle() to rebuild the deck")
}

func TestDeck_DrawN(t *testing.T) {
	a := assert.New(t)
	d := New()

	cards, err := d.DrawN(3)
	a.NoError(err)
	a.Equal("1c,2c,3c", CardsToString(cards))
	a.Equal(49, d.CardsLeft())

	cards, err = d.DrawN(50)
	a.Equal(ErrEndOfDeck, err)
	a.Nil(cards)
	a.Equal(49, d.CardsLeft())
}

func TestDeck_Skip(t *testing.T) {
	a := assert.New(t)
	d := New()

	d.Skip(MustCardFromString("1c"), MustCardFromString("3c"))
	a.Equal(50, d.CardsLeft())

	c, _ := d.Draw()
	a.Equal(MustCardFromString("2c"), c)
	c, _ = d.Draw()
	a.Equal(MustCardFromString("4c"), c)

	d.Skip()
	a.Equal(48, d.CardsLeft())
}
