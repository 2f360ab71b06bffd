package account

import (
	"os"
	"slotpoker-server/pkg/db"
	"testing"
)

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("SLOTPOKER_PG_DSN")
	if dsn == "" {
		t.Skip("SLOTPOKER_PG_DSN is not set")
	}

	database, err := db.Open(dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()

	if err := db.MigrateDB(database, "../../sql"); err != nil {
		t.Fatal(err)
	}

	runStoreTests(t, NewPostgresStore(database))
}
