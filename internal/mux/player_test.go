package mux

import (
	"net/http/httptest"
	"slotpoker-server/internal/jwt"
	"slotpoker-server/pkg/account"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func createPlayer(t *testing.T, ts *httptest.Server) postPlayerResponse {
	t.Helper()

	var p postPlayerResponse
	assertPost(t, ts, "/player", "{}", &p, 201)
	return p
}

func Test_postPlayer(t *testing.T) {
	m := newTestMux()
	ts := httptest.NewServer(m)
	defer ts.Close()

	p := createPlayer(t, ts)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, account.KindPlayer, p.Kind)

	id, err := jwt.ValidAccountID(p.Token)
	assert.NoError(t, err)
	assert.Equal(t, p.ID, id)

	p2 := createPlayer(t, ts)
	assert.NotEqual(t, p.ID, p2.ID)
}

func Test_postPlayerThrottle(t *testing.T) {
	m := newTestMux()
	m.config.playerCreateDelay = time.Hour

	ts := httptest.NewServer(m)
	defer ts.Close()

	createPlayer(t, ts)

	var errObj errorResponse
	assertPost(t, ts, "/player", "{}", &errObj, 400)
	assert.Equal(t, "please wait before creating another player", errObj.Message)
}
