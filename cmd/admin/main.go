package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"slotpoker-server/internal/config"
	"slotpoker-server/internal/jwt"
	"slotpoker-server/pkg/account"
	"slotpoker-server/pkg/db"
	"slotpoker-server/pkg/room"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var command = flag.String("c", "player", "specifies the command (player, game, token)")

func main() {
	flag.Parse()
	jwt.LoadKeys()

	if config.Instance().Store != config.StorePostgres {
		logrus.Fatal("the admin tool requires the postgres account store")
	}

	r := room.New(account.NewPostgresStore(db.Instance()), nil, logrus.StandardLogger())
	ctx := context.Background()

	switch *command {
	case "player":
		acct, err := r.CreatePlayer(ctx)
		if err != nil {
			logrus.WithError(err).Fatal("could not create player")
		}

		printToken("Created player", acct.ID)
	case "game":
		players, err := getAccountIDs("Player account IDs (comma separated)")
		if err != nil {
			logrus.WithError(err).Fatal("could not read player accounts")
		}

		cfg := config.Instance().Game
		if len(players) > int(cfg.PlayerCount) {
			logrus.Fatalf("%d players do not fit %d seats", len(players), cfg.PlayerCount)
		}

		state, err := r.CreateGame(ctx, cfg, players)
		if err != nil {
			logrus.WithError(err).Fatal("could not create game")
		}

		printToken("Created game", state.ID)
	case "token":
		ids, err := getAccountIDs("Account ID")
		if err != nil || len(ids) != 1 {
			logrus.WithError(err).Fatal("expected exactly one account id")
		}

		acct, err := r.GetAccount(ctx, ids[0])
		if err != nil {
			logrus.WithError(err).Fatal("could not load account")
		}

		printToken(fmt.Sprintf("Token for %s account", acct.Kind), acct.ID)
	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func printToken(label string, id uuid.UUID) {
	token, err := jwt.Sign(id)
	if err != nil {
		logrus.WithError(err).Fatal("could not sign token")
	}

	fmt.Printf("%s %s\n", label, id)
	fmt.Printf("Token: %s\n", token)
}

// getAccountIDs reads account ids from stdin
// The prompt is only shown when stdin is a terminal so ids can be piped in
func getAccountIDs(question string) ([]uuid.UUID, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Printf("%s: ", question)
	}

	str, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && str == "" {
		return nil, err
	}

	var ids []uuid.UUID
	for _, part := range strings.Split(str, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		id, err := uuid.Parse(part)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", part, err)
		}

		ids = append(ids, id)
	}

	return ids, nil
}
