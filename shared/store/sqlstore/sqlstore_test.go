package sqlstore_test

import (
	"testing"

	"seller-marketplace/shared/store/storetest"
)

func TestSQLiteStore(t *testing.T) {
	storetest.Run(t, storetest.NewSQLite)
}
