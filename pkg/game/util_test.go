package game

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"slotpoker-server/pkg/action"
	"testing"
)

var gameAccountID = uuid.MustParse("6a0d7a5e-2f4b-4c8e-9d35-1f0b8e4c2a77")

func testConfig(playerCount uint8) Config {
	return Config{
		SmallBlindAmount:     5,
		BuyInAmount:          255,
		PlayerCount:          playerCount,
		FirstPlayerIndex:     64,
		HighestBet:           0,
		PlayerInitialBalance: 100,
	}
}

func playerIDs(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}

	return ids
}

func newTestGame(t *testing.T, playerCount uint8) *Snapshot {
	t.Helper()

	s, err := CreateGame(testConfig(playerCount), gameAccountID, playerIDs(int(playerCount))...)
	if err != nil {
		t.Fatal(err)
	}

	return s
}

func mustApply(t *testing.T, s *Snapshot, act action.Action, seat int, amount uint64) *Snapshot {
	t.Helper()

	next, err := Apply(s, act, SeatRef(seat), amount)
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	return next
}
