package mux

import (
	"context"
	"net/http"
	"slotpoker-server/internal/config"
	"slotpoker-server/internal/jwt"
	"slotpoker-server/pkg/account"
	"slotpoker-server/pkg/room"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type ctxKey int

const (
	ctxAccountKey ctxKey = iota
	ctxGameKey
)

const uuidPattern = `(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}`

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	config  muxConfig
	version string
	room    *room.Room
	pitBoss *room.PitBoss

	// last player creation per remote address
	playerCreated   map[string]time.Time
	playerCreatedMu sync.Mutex

	// store for testing purposes
	authRouter *gmux.Router
}

type muxConfig struct {
	// playerCreateDelay is the minimum duration between two player create events from a single remote address
	playerCreateDelay time.Duration
}

// NewMux returns a new HTTP mux backed by the account store
func NewMux(version string, store account.Store) *Mux {
	pitBoss := room.NewPitBoss()
	rm := room.New(store, pitBoss, logrus.StandardLogger())
	pitBoss.StartShift()

	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		room:    rm,
		pitBoss: pitBoss,
		config: muxConfig{
			playerCreateDelay: time.Second * time.Duration(config.Instance().PlayerCreateDelay),
		},
		playerCreated: make(map[string]time.Time),
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/player").Handler(this.postPlayer())
	}

	// requires bearer authorization
	{
		r := this.authRouter

		r.Methods(http.MethodPost).Path("/game").Handler(this.postGame())

		ar := r.PathPrefix("/account/{id:" + uuidPattern + "}").Subrouter()
		ar.Methods(http.MethodGet).Path("").Handler(this.getAccount())
		ar.Methods(http.MethodGet).Path("/slot/{index:[0-9]+}").Handler(this.getAccountSlot())
		ar.Methods(http.MethodGet).Path("/transitions").Handler(this.getAccountTransitions())

		gr := r.PathPrefix("/game/{id:" + uuidPattern + "}").Subrouter()
		gr.Use(this.gameMiddleware)

		gr.Methods(http.MethodGet).Path("").Handler(this.getGame())
		gr.Methods(http.MethodGet).Path("/ws").Handler(this.getGameWS())
		gr.Methods(http.MethodPost).Path("/action").Handler(this.postGameAction())
		gr.Methods(http.MethodPost).Path("/deal").Handler(this.postGameDeal())
		gr.Methods(http.MethodPost).Path("/board").Handler(this.postGameBoard())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		id, err := jwt.ValidAccountID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		// the account must still exist
		if _, err := m.room.GetAccount(r.Context(), id); err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxAccountKey, id)
		w.Header().Set("SlotPoker-AccountID", id.String())
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func (m *Mux) gameMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(gmux.Vars(r)["id"])
		if err != nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		state, err := m.room.LoadGame(r.Context(), id)
		if err != nil {
			writeRoomError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxGameKey, state)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func accountFromContext(r *http.Request) uuid.UUID {
	return r.Context().Value(ctxAccountKey).(uuid.UUID)
}

func gameFromContext(r *http.Request) *room.GameState {
	return r.Context().Value(ctxGameKey).(*room.GameState)
}
