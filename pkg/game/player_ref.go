package game

import (
	"fmt"
	"github.com/google/uuid"
)

// PlayerRef identifies the actor of an action, either by seat or by account
type PlayerRef struct {
	seat    int
	account uuid.UUID
}

// SeatRef references a player by seat number
func SeatRef(seat int) PlayerRef {
	return PlayerRef{seat: seat}
}

// AccountRef references a player by their account
func AccountRef(account uuid.UUID) PlayerRef {
	return PlayerRef{account: account}
}

func (p PlayerRef) String() string {
	if p.account != uuid.Nil {
		return p.account.String()
	}

	return fmt.Sprintf("seat %d", p.seat)
}

func (p PlayerRef) resolve(s *Snapshot) (int, bool) {
	if p.account != uuid.Nil {
		return s.SeatOf(p.account)
	}

	if p.seat < 0 || p.seat >= len(s.Players) || !s.Players[p.seat].IsSeated() {
		return 0, false
	}

	return p.seat, true
}
