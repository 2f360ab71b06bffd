package room

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrNoRoom is returned when a client message cannot be handled because no room is attached
var ErrNoRoom = errors.New("no room is attached to the pit boss")

// publication is a committed transition of a game
type publication struct {
	state      *GameState
	transition *LogMessage
}

// Dealer fans out the committed state of a single game to its connected clients
type Dealer struct {
	pitBoss *PitBoss
	gameID  uuid.UUID
	clients map[*Client]bool
	lock    sync.RWMutex

	// state and logMessages are owned by the run loop
	state       *GameState
	logMessages []*LogMessage

	execInRunLoop chan func()
	stateChanged  chan *publication
	close         chan bool
	log           logrus.FieldLogger
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, gameID uuid.UUID) *Dealer {
	return &Dealer{
		pitBoss:       pitBoss,
		gameID:        gameID,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan *publication, 256),
		close:         make(chan bool),
		log:           logrus.WithField("game", gameID),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.log.Debug("creating dealer run loop")
	for {
		select {
		case pub := <-d.stateChanged:
			d.applyPublication(pub)
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.log.Debug("terminating dealer run loop")
			return
		}
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) applyPublication(pub *publication) {
	if d.state != nil && pub.state.Version <= d.state.Version {
		return
	}

	d.state = pub.state
	if pub.transition != nil {
		d.addLogMessages(pub.transition)
	}

	res := newGameStateResponse(d.state)
	for _, client := range d.Clients() {
		if !client.Send(res) {
			d.log.WithField("client", client.String()).Warn("client is not keeping up, dropped game state")
			continue
		}

		if pub.transition != nil {
			client.Send(&Response{Key: "log", Data: []*LogMessage{pub.transition}})
		}
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.execInRunLoop <- func() {
		if d.state == nil {
			d.loadState()
		}

		if d.state != nil {
			client.Send(newGameStateResponse(d.state))
		}

		if len(d.logMessages) > 0 {
			logs := make([]*LogMessage, len(d.logMessages))
			copy(logs, d.logMessages)
			client.Send(&Response{Key: "log", Data: logs})
		}
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) loadState() {
	if d.pitBoss == nil || d.pitBoss.room == nil {
		return
	}

	state, err := d.pitBoss.room.LoadGame(context.Background(), d.gameID)
	if err != nil {
		d.log.WithError(err).Error("could not load game")
		return
	}

	d.state = state
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	return nClients == 0
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// ReceivedMessage is called when a client sends a message to the server
// Actions are submitted on behalf of the client's account; a stale version is reported back as an error
func (d *Dealer) ReceivedMessage(c *Client, msg *PayloadIn) {
	if d.pitBoss == nil || d.pitBoss.room == nil {
		c.Send(NewErrorResponse(msg.Context, ErrNoRoom))
		return
	}

	_, err := d.pitBoss.room.SubmitAction(context.Background(), d.gameID, ActionRequest{
		Actor:   c.accountID,
		Action:  msg.Action,
		Amount:  msg.Amount,
		Version: msg.Version,
	})
	if err != nil {
		d.log.WithError(err).WithField("client", c.String()).Info("could not perform action")
		c.Send(NewErrorResponse(msg.Context, err))
		return
	}

	c.Send(OK(msg.Context))
}
