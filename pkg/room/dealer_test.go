package room

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDealer_AddClient(t *testing.T) {
	gameID := uuid.New()
	d := NewDealer(&PitBoss{}, gameID)
	c := NewClient(nil, uuid.New(), gameID)
	c2 := NewClient(nil, uuid.New(), gameID)

	d.AddClient(c)
	d.AddClient(c2)
	assert.Len(t, d.Clients(), 2)
	assert.Equal(t, d, c.dealer)

	assert.False(t, d.RemoveClient(c))
	assert.True(t, d.RemoveClient(c2))
}

func TestDealer_addLogMessages(t *testing.T) {
	a := assert.New(t)

	d := NewDealer(&PitBoss{}, uuid.New())
	for i := 0; i < 30; i++ {
		d.addLogMessages(&LogMessage{Message: fmt.Sprintf("message %d", i)})
	}

	a.Len(d.logMessages, logMessageLimit)
	a.Equal("message 5", d.logMessages[0].Message)
	a.Equal("message 29", d.logMessages[logMessageLimit-1].Message)
}

func TestDealer_applyPublicationIgnoresStaleState(t *testing.T) {
	a := assert.New(t)

	gameID := uuid.New()
	d := NewDealer(&PitBoss{}, gameID)
	c := NewClient(nil, uuid.New(), gameID)
	d.AddClient(c)

	d.applyPublication(&publication{state: &GameState{ID: gameID, Version: 3}})
	d.applyPublication(&publication{state: &GameState{ID: gameID, Version: 2}})
	a.Equal(int64(3), d.state.Version)

	res := (<-c.SendChan()).(*Response)
	a.Equal("game", res.Key)
	a.Len(c.SendChan(), 0)
}

func TestClient_Send(t *testing.T) {
	c := NewClient(nil, uuid.New(), uuid.New())
	for i := 0; i < cap(c.send); i++ {
		assert.True(t, c.Send(i))
	}

	// a full buffer drops the message instead of blocking
	assert.False(t, c.Send("dropped"))
}
