package mux

import (
	"errors"
	"net/http"
	"slotpoker-server/internal/config"
	"slotpoker-server/internal/jwt"
	"slotpoker-server/pkg/action"
	"slotpoker-server/pkg/deck"
	"slotpoker-server/pkg/game"
	"slotpoker-server/pkg/room"

	"github.com/google/uuid"
)

var errDealerOnly = errors.New("only the dealer token of this game can distribute cards")

type postGamePayload struct {
	Players []uuid.UUID  `json:"players"`
	Config  *game.Config `json:"config"`
}

type postGameResponse struct {
	Game        *room.GameState `json:"game"`
	DealerToken string          `json:"dealerToken"`
}

type postGameActionPayload struct {
	Action  action.Action `json:"action"`
	Amount  uint64        `json:"amount"`
	Version int64         `json:"version"`
}

type postGameDealPayload struct {
	Recipient uuid.UUID `json:"recipient"`
	Cards     []string  `json:"cards"`
}

type postGameDealResponse struct {
	Game      *room.GameState `json:"game"`
	Nonce     string          `json:"nonce"`
	Recipient uuid.UUID       `json:"recipient"`
	Seat      int             `json:"seat"`
}

type postGameBoardPayload struct {
	Cards []string `json:"cards"`
}

func parseCards(s []string) ([]deck.Card, error) {
	cards := make([]deck.Card, len(s))
	for i, str := range s {
		c, err := deck.CardFromString(str)
		if err != nil {
			return nil, err
		}

		cards[i] = c
	}

	return cards, nil
}

// postGame creates a game account
// The response carries a token for the game account itself, which is required to deal cards
func (m *Mux) postGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postGamePayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		cfg := config.Instance().Game
		if pp.Config != nil {
			cfg = *pp.Config
		}

		state, err := m.room.CreateGame(r.Context(), cfg, pp.Players)
		if err != nil {
			writeRoomError(w, err)
			return
		}

		token, err := jwt.Sign(state.ID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, postGameResponse{
			Game:        state,
			DealerToken: token,
		})
	}
}

func (m *Mux) getGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, gameFromContext(r))
	}
}

func (m *Mux) postGameAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postGameActionPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		state, err := m.room.SubmitAction(r.Context(), gameFromContext(r).ID, room.ActionRequest{
			Actor:   accountFromContext(r),
			Action:  pp.Action,
			Amount:  pp.Amount,
			Version: pp.Version,
		})
		if err != nil {
			writeRoomError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, state)
	}
}

func (m *Mux) postGameDeal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g := gameFromContext(r)
		if accountFromContext(r) != g.ID {
			writeJSONError(w, http.StatusForbidden, errDealerOnly)
			return
		}

		var pp postGameDealPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		cards, err := parseCards(pp.Cards)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		transfer, err := m.room.ProposeTransfer(r.Context(), g.ID, g.ID, pp.Recipient, cards)
		if err != nil {
			writeRoomError(w, err)
			return
		}

		state, _, err := m.room.CommitTransfer(r.Context(), transfer)
		if err != nil {
			writeRoomError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, postGameDealResponse{
			Game:      state,
			Nonce:     transfer.Nonce,
			Recipient: transfer.Recipient,
			Seat:      transfer.Seat,
		})
	}
}

func (m *Mux) postGameBoard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g := gameFromContext(r)
		if accountFromContext(r) != g.ID {
			writeJSONError(w, http.StatusForbidden, errDealerOnly)
			return
		}

		var pp postGameBoardPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		cards, err := parseCards(pp.Cards)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		state, err := m.room.RevealBoard(r.Context(), g.ID, g.ID, cards)
		if err != nil {
			writeRoomError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, state)
	}
}
