package game

import (
	"slotpoker-server/pkg/slot"
)

// Config is the immutable configuration of a single hand
// It is written into the game account's slots when the game is created
type Config struct {
	SmallBlindAmount     uint64 `json:"smallBlindAmount" yaml:"smallBlindAmount"`
	BuyInAmount          uint8  `json:"buyInAmount" yaml:"buyInAmount"`
	PlayerCount          uint8  `json:"playerCount" yaml:"playerCount"`
	FirstPlayerIndex     uint8  `json:"firstPlayerIndex" yaml:"firstPlayerIndex"`
	HighestBet           uint64 `json:"highestBet" yaml:"highestBet"`
	PlayerInitialBalance uint64 `json:"playerInitialBalance" yaml:"playerInitialBalance"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		SmallBlindAmount:     5,
		BuyInAmount:          255,
		PlayerCount:          4,
		FirstPlayerIndex:     slot.FirstPlayerIndex,
		HighestBet:           0,
		PlayerInitialBalance: 100,
	}
}

// BigBlind is always twice the small blind
func (c Config) BigBlind() uint64 {
	return c.SmallBlindAmount * 2
}

// FlopIndex is the position in the dealing order of the first community card
func (c Config) FlopIndex() uint64 {
	return uint64(c.PlayerCount)*2 + 1
}

// CurrentTurnIndex is the turn index of a freshly created game
func (c Config) CurrentTurnIndex() uint8 {
	return c.FirstPlayerIndex
}

// Layout returns the slot layout for this configuration
func (c Config) Layout() (slot.Layout, error) {
	l, err := slot.NewLayout(c.PlayerCount, c.FirstPlayerIndex)
	if err != nil {
		return slot.Layout{}, &ConstructionError{Kind: err}
	}

	return l, nil
}

// Validate ensures the configuration can be used to create a game
func (c Config) Validate() error {
	if _, err := c.Layout(); err != nil {
		return err
	}

	if c.SmallBlindAmount == 0 {
		return newConstructionError(ErrInvalidConfig, "small blind must be greater than zero")
	}

	if c.PlayerInitialBalance == 0 {
		return newConstructionError(ErrInvalidConfig, "player initial balance must be greater than zero")
	}

	if c.HighestBet > c.PlayerInitialBalance {
		return newConstructionError(ErrInvalidConfig, "initial highest bet of %d exceeds the initial balance of %d", c.HighestBet, c.PlayerInitialBalance)
	}

	return nil
}
