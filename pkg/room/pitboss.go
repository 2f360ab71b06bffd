package room

import (
	"slotpoker-server/pkg/account"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PitBoss is responsible for dispatching clients to the dealer of their game
type PitBoss struct {
	dealers    map[uuid.UUID]*Dealer
	connect    chan *Client
	disconnect chan *Client
	publish    chan *publication
	close      chan bool

	room *Room
}

// NewPitBoss returns a new dispatch object
func NewPitBoss() *PitBoss {
	return &PitBoss{
		dealers:    make(map[uuid.UUID]*Dealer),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		publish:    make(chan *publication, 256),
		close:      make(chan bool),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

// EndShift stops the PitBoss and every dealer
func (p *PitBoss) EndShift() {
	close(p.close)
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			logrus.WithField("client", client.String()).Debug("client connected")
			dealer, found := p.dealers[client.gameID]
			if !found {
				dealer = NewDealer(p, client.gameID)
				dealer.StartShift()
				p.dealers[client.gameID] = dealer
			}

			dealer.AddClient(client)
		case client := <-p.disconnect:
			logrus.WithField("client", client.String()).Debug("client disconnected")
			dealer, found := p.dealers[client.gameID]
			if !found {
				logrus.WithField("game", client.gameID).WithField("type", "exception").Error("dealer not found")
				continue
			}

			if dealer.RemoveClient(client) {
				dealer.EndShift()
				delete(p.dealers, client.gameID)
			}
		case pub := <-p.publish:
			// games without connected clients have no dealer
			if dealer, found := p.dealers[pub.state.ID]; found {
				dealer.stateChanged <- pub
			}
		case <-p.close:
			for id, dealer := range p.dealers {
				dealer.EndShift()
				delete(p.dealers, id)
			}

			return
		}
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}

// Publish notifies the clients of a game about a committed transition
// It never blocks the committing caller
func (p *PitBoss) Publish(state *GameState, t *account.Transition) {
	pub := &publication{state: state}
	if t != nil {
		pub.transition = newLogMessage(state.Version, t)
	}

	select {
	case p.publish <- pub:
	default:
		logrus.WithField("game", state.ID).Warn("publish queue is full, dropped game state")
	}
}
