package main

import (
	"flag"
	"net/http"
	"os"
	"slotpoker-server/internal/config"
	"slotpoker-server/internal/jwt"
	"slotpoker-server/internal/mux"
	"slotpoker-server/pkg/account"
	"slotpoker-server/pkg/db"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	// fail fast
	jwt.LoadKeys()

	if err := config.Instance().Game.Validate(); err != nil {
		logrus.WithError(err).Fatal("invalid game configuration")
	}

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		ExposedHeaders: []string{"SlotPoker-AccountID"},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, newStore()))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

// newStore returns the configured account store
// The postgres store runs the migrations before it is used
func newStore() account.Store {
	switch store := config.Instance().Store; store {
	case config.StoreMemory:
		logrus.Warn("using the in-memory account store, accounts are lost on restart")
		return account.NewMemoryStore()
	case config.StorePostgres:
		db.Migrate()
		return account.NewPostgresStore(db.Instance())
	default:
		logrus.WithField("store", store).Fatal("unknown account store")
	}

	return nil
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
