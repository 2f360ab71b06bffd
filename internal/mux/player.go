package mux

import (
	"errors"
	"net/http"
	"slotpoker-server/internal/jwt"
	"slotpoker-server/pkg/account"
	"time"

	"github.com/google/uuid"
)

type postPlayerResponse struct {
	ID    uuid.UUID    `json:"id"`
	Token string       `json:"token"`
	Kind  account.Kind `json:"kind"`
}

// canCreatePlayer records a player creation for addr unless one happened too recently
func (m *Mux) canCreatePlayer(addr string) bool {
	m.playerCreatedMu.Lock()
	defer m.playerCreatedMu.Unlock()

	if at, ok := m.playerCreated[addr]; ok && time.Since(at) < m.config.playerCreateDelay {
		return false
	}

	m.playerCreated[addr] = time.Now()
	return true
}

func (m *Mux) postPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.canCreatePlayer(remoteAddr(r)) {
			writeJSONError(w, http.StatusBadRequest, errors.New("please wait before creating another player"))
			return
		}

		acct, err := m.room.CreatePlayer(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		token, err := jwt.Sign(acct.ID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, postPlayerResponse{
			ID:    acct.ID,
			Token: token,
			Kind:  acct.Kind,
		})
	}
}
