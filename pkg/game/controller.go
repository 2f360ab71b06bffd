package game

import (
	"github.com/thoas/go-funk"
)

// activePlayers returns the seated players that have not folded
func (s *Snapshot) activePlayers() []Player {
	return funk.Filter(s.Players, func(p Player) bool {
		return p.IsActive()
	}).([]Player)
}

// actingPlayers returns the players that can still bet
func (s *Snapshot) actingPlayers() []Player {
	return funk.Filter(s.Players, func(p Player) bool {
		return p.CanAct()
	}).([]Player)
}

// seatAfter searches from start (inclusive) for the first seat accepted by ok
func (s *Snapshot) seatAfter(start uint8, ok func(p Player) bool) (uint8, bool) {
	for i := 0; i < len(s.Players); i++ {
		base := s.layout.NextBase(start, i)
		seat, _ := s.layout.SeatForBase(base)
		if ok(s.Players[seat]) {
			return base, true
		}
	}

	return 0, false
}

// needsAction returns true if the player still has to act in this round
// Players who checked or matched the highest bet are skipped until the bet changes
func (s *Snapshot) needsAction(p Player) bool {
	if !p.CanAct() {
		return false
	}

	return p.Status == StatusWaiting || p.Bet < s.HighestBet
}

// advanceTurn moves the turn n strides, then on to the next seat that still has to act
func (s *Snapshot) advanceTurn(n int) {
	start := s.layout.NextBase(s.CurrentTurnIndex, n)
	if next, found := s.seatAfter(start, s.needsAction); found {
		s.CurrentTurnIndex = next
	}
}

func canAct(p Player) bool {
	return p.CanAct()
}

// roundIsOver returns true if the betting round has closed
func (s *Snapshot) roundIsOver() bool {
	acting := s.actingPlayers()
	if len(acting) == 0 {
		return true
	}

	if s.CheckCounter >= uint64(len(acting)) {
		return true
	}

	for _, p := range acting {
		if p.Status == StatusWaiting || p.Bet != s.HighestBet {
			return false
		}
	}

	return true
}

// settle closes the betting round or the hand once an action has been applied
func (s *Snapshot) settle() {
	if len(s.activePlayers()) <= 1 {
		s.endHand()
		return
	}

	if !s.roundIsOver() {
		return
	}

	s.nextPhase()
	for s.Phase != Showdown && len(s.actingPlayers()) < 2 {
		s.nextPhase()
	}
}

func (s *Snapshot) resetRound() {
	s.HighestBet = 0
	s.RaiserIndex = 0
	s.CheckCounter = 0
	for i := range s.Players {
		s.Players[i].Bet = 0
		s.Players[i].Status = StatusWaiting
	}
}

// nextPhase advances the street and gives the turn to the first seat that can act
func (s *Snapshot) nextPhase() {
	s.Phase++
	s.resetRound()

	if s.Phase == Showdown {
		s.turnToFirstActive()
		return
	}

	if next, ok := s.seatAfter(s.layout.FirstToAct(), canAct); ok {
		s.CurrentTurnIndex = next
	}
}

func (s *Snapshot) endHand() {
	s.Phase = Showdown
	s.resetRound()
	s.turnToFirstActive()
}

func (s *Snapshot) turnToFirstActive() {
	if next, ok := s.seatAfter(s.layout.FirstToAct(), func(p Player) bool {
		return p.IsActive()
	}); ok {
		s.CurrentTurnIndex = next
	}
}
