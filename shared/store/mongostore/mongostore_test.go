package mongostore_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"seller-marketplace/shared/config"
	"seller-marketplace/shared/database"
	"seller-marketplace/shared/store"
	"seller-marketplace/shared/store/mongostore"
	"seller-marketplace/shared/store/storetest"

	"github.com/stretchr/testify/require"
)

// Runs only against a live server, e.g.
// MONGO_TEST_URI=mongodb://localhost:27017 go test ./shared/store/mongostore/
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	cfg := &config.Config{Database: config.DatabaseConfig{URI: uri, Timeout: 10 * time.Second}}
	n := 0

	storetest.Run(t, func(t *testing.T) *store.Store {
		ctx := context.Background()
		client, err := database.ConnectMongo(ctx, cfg)
		require.NoError(t, err)

		n++
		dbName := fmt.Sprintf("sellerbd_test_%d_%d", time.Now().UnixNano(), n)
		db := client.Database(dbName)
		require.NoError(t, database.EnsureIndexes(ctx, db))

		t.Cleanup(func() {
			_ = db.Drop(context.Background())
			_ = client.Disconnect(context.Background())
		})
		return mongostore.New(client, dbName)
	})
}
