package mux

import (
	"errors"
	"net/http"
	"slotpoker-server/pkg/account"
	"strconv"

	"github.com/google/uuid"
	gmux "github.com/gorilla/mux"
)

var errPrivateAccount = errors.New("player accounts can only be read by their owner")

type slotResponse struct {
	Index uint8     `json:"index"`
	Value [4]uint64 `json:"value"`
}

// readableAccount loads the account in the path
// Game accounts are public, player accounts hold hidden cards and are only visible to their owner
func (m *Mux) readableAccount(w http.ResponseWriter, r *http.Request) (*account.Account, bool) {
	id, err := uuid.Parse(gmux.Vars(r)["id"])
	if err != nil {
		writeJSONError(w, http.StatusNotFound, nil)
		return nil, false
	}

	acct, err := m.room.GetAccount(r.Context(), id)
	if err != nil {
		writeRoomError(w, err)
		return nil, false
	}

	if acct.Kind == account.KindPlayer && acct.ID != accountFromContext(r) {
		writeJSONError(w, http.StatusForbidden, errPrivateAccount)
		return nil, false
	}

	return acct, true
}

func (m *Mux) getAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acct, ok := m.readableAccount(w, r)
		if !ok {
			return
		}

		writeJSON(w, http.StatusOK, acct)
	}
}

func (m *Mux) getAccountSlot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.ParseUint(gmux.Vars(r)["index"], 10, 8)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, errors.New("slot index must be between 0 and 255"))
			return
		}

		acct, ok := m.readableAccount(w, r)
		if !ok {
			return
		}

		writeJSON(w, http.StatusOK, slotResponse{
			Index: uint8(index),
			Value: acct.Storage.GetItem(uint8(index)),
		})
	}
}

func (m *Mux) getAccountTransitions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		acct, ok := m.readableAccount(w, r)
		if !ok {
			return
		}

		log, err := m.room.Transitions(r.Context(), acct.ID)
		if err != nil {
			writeRoomError(w, err)
			return
		}

		if start >= int64(len(log)) {
			writeJSON(w, http.StatusOK, []*account.Transition{})
			return
		}

		end := start + int64(rows)
		if end > int64(len(log)) {
			end = int64(len(log))
		}

		writeJSON(w, http.StatusOK, log[start:end])
	}
}
