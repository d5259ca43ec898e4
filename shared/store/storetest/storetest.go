// Package storetest holds the behaviour every store backend must share. Each
// backend's tests call Run with a constructor returning an empty store.
package storetest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"seller-marketplace/shared/models"
	"seller-marketplace/shared/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Run(t *testing.T, open func(t *testing.T) *store.Store) {
	t.Run("UserLookupByEmail", func(t *testing.T) { testUserLookup(t, open(t)) })
	t.Run("DuplicateEmail", func(t *testing.T) { testDuplicateEmail(t, open(t)) })
	t.Run("DeleteMissingIsNoop", func(t *testing.T) { testDeleteMissing(t, open(t)) })
	t.Run("AdvertiseUpserts", func(t *testing.T) { testAdvertiseUpserts(t, open(t)) })
	t.Run("ReportExisting", func(t *testing.T) { testReportExisting(t, open(t)) })
	t.Run("VerifyCascadeWrites", func(t *testing.T) { testVerifyCascade(t, open(t)) })
	t.Run("OrderUniqueness", func(t *testing.T) { testOrderUniqueness(t, open(t)) })
	t.Run("EmptyListsAreNotNil", func(t *testing.T) { testEmptyLists(t, open(t)) })
	t.Run("ExtraFieldsKept", func(t *testing.T) { testExtraFieldsKept(t, open(t)) })
}

func testUserLookup(t *testing.T, s *store.Store) {
	ctx := context.Background()

	res, err := s.Users.Insert(ctx, &models.User{Email: "rafi@example.com", Role: models.RoleSeller, Extra: models.Fields{"name": "Rafi"}})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.NotEmpty(t, res.InsertedID)

	user, err := s.Users.FindByEmail(ctx, "rafi@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleSeller, user.Role)
	assert.Equal(t, res.InsertedID, user.ID)
	assert.Equal(t, "Rafi", user.Extra["name"])

	_, err = s.Users.FindByEmail(ctx, "nobody@example.com")
	assert.True(t, errors.Is(err, store.ErrNotFound))

	sellers, err := s.Users.ListByRole(ctx, models.RoleSeller)
	require.NoError(t, err)
	assert.Len(t, sellers, 1)
}

func testDuplicateEmail(t *testing.T, s *store.Store) {
	ctx := context.Background()

	_, err := s.Users.Insert(ctx, &models.User{Email: "dup@example.com", Role: models.RoleBuyer})
	require.NoError(t, err)

	_, err = s.Users.Insert(ctx, &models.User{Email: "dup@example.com", Role: models.RoleBuyer})
	assert.True(t, errors.Is(err, store.ErrDuplicate))
}

func testDeleteMissing(t *testing.T, s *store.Store) {
	ctx := context.Background()

	res, err := s.Products.Delete(ctx, "64b7f0c2a1b2c3d4e5f60718")
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.Zero(t, res.DeletedCount)

	ures, err := s.Users.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.Zero(t, ures.DeletedCount)
}

func testAdvertiseUpserts(t *testing.T, s *store.Store) {
	ctx := context.Background()
	id := models.ID("64b7f0c2a1b2c3d4e5f60719")

	res, err := s.Products.SetAdvertised(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, res.MatchedCount)
	assert.Equal(t, int64(1), res.UpsertedCount)
	require.NotNil(t, res.UpsertedID)
	assert.Equal(t, id, *res.UpsertedID)

	advertised, err := s.Products.ListAdvertised(ctx)
	require.NoError(t, err)
	require.Len(t, advertised, 1)
	assert.Equal(t, id, advertised[0].ID)

	// A second call matches the stub and changes nothing.
	res, err = s.Products.SetAdvertised(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)
	assert.Zero(t, res.ModifiedCount)
	assert.Zero(t, res.UpsertedCount)
}

func testReportExisting(t *testing.T, s *store.Store) {
	ctx := context.Background()

	ins, err := s.Products.Insert(ctx, &models.Product{Email: "s@example.com", ProductName: "Chair"})
	require.NoError(t, err)

	res, err := s.Products.SetReported(ctx, ins.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)
	assert.Equal(t, int64(1), res.ModifiedCount)
	assert.Nil(t, res.UpsertedID)

	reported, err := s.Products.ListReported(ctx)
	require.NoError(t, err)
	require.Len(t, reported, 1)
	assert.Equal(t, "Chair", reported[0].ProductName)
}

func testVerifyCascade(t *testing.T, s *store.Store) {
	ctx := context.Background()
	seller := "seller@example.com"

	ins, err := s.Users.Insert(ctx, &models.User{Email: seller, Role: models.RoleSeller})
	require.NoError(t, err)
	for _, name := range []string{"Phone", "Laptop"} {
		_, err := s.Products.Insert(ctx, &models.Product{Email: seller, ProductName: name})
		require.NoError(t, err)
	}
	_, err = s.Products.Insert(ctx, &models.Product{Email: "other@example.com", ProductName: "Desk"})
	require.NoError(t, err)

	ures, err := s.Users.MarkVerified(ctx, ins.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ures.ModifiedCount)

	// The user write is visible before the product write happens.
	user, err := s.Users.FindByEmail(ctx, seller)
	require.NoError(t, err)
	assert.True(t, user.Verified)
	owned, err := s.Products.ListByOwner(ctx, seller)
	require.NoError(t, err)
	for _, p := range owned {
		assert.False(t, p.Verified)
	}

	pres, err := s.Products.MarkOwnerVerified(ctx, seller)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pres.MatchedCount)
	assert.Equal(t, int64(2), pres.ModifiedCount)

	owned, err = s.Products.ListByOwner(ctx, seller)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	for _, p := range owned {
		assert.True(t, p.Verified)
	}

	others, err := s.Products.ListByOwner(ctx, "other@example.com")
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.False(t, others[0].Verified)
}

func testOrderUniqueness(t *testing.T, s *store.Store) {
	ctx := context.Background()

	n, err := s.Orders.CountByBuyerAndProduct(ctx, "b@example.com", "Guitar")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = s.Orders.Insert(ctx, &models.Order{Email: "b@example.com", ProductName: "Guitar"})
	require.NoError(t, err)

	n, err = s.Orders.CountByBuyerAndProduct(ctx, "b@example.com", "Guitar")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.Orders.Insert(ctx, &models.Order{Email: "b@example.com", ProductName: "Guitar"})
	assert.True(t, errors.Is(err, store.ErrDuplicate))

	// Same product, different buyer is fine.
	_, err = s.Orders.Insert(ctx, &models.Order{Email: "c@example.com", ProductName: "Guitar"})
	require.NoError(t, err)

	orders, err := s.Orders.ListByBuyer(ctx, "b@example.com")
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func testEmptyLists(t *testing.T, s *store.Store) {
	ctx := context.Background()

	products, err := s.Products.ListByCategory(ctx, "nothing")
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)

	categories, err := s.Categories.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, categories)

	orders, err := s.Orders.ListByBuyer(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func testExtraFieldsKept(t *testing.T, s *store.Store) {
	ctx := context.Background()

	var product models.Product
	require.NoError(t, json.Unmarshal([]byte(`{
		"email": "s@example.com",
		"productName": "Desk",
		"resalePrice": "1200",
		"originalPrice": 2500,
		"brand": "IKEA",
		"specs": {"legs": 4, "colors": ["oak", "white"]}
	}`), &product))

	_, err := s.Products.Insert(ctx, &product)
	require.NoError(t, err)

	owned, err := s.Products.ListByOwner(ctx, "s@example.com")
	require.NoError(t, err)
	require.Len(t, owned, 1)

	data, err := json.Marshal(owned[0])
	require.NoError(t, err)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "Desk", got["productName"])
	assert.Equal(t, "1200", got["resalePrice"])
	assert.Equal(t, float64(2500), got["originalPrice"])
	assert.Equal(t, "IKEA", got["brand"])
	assert.Equal(t, map[string]interface{}{
		"legs":   float64(4),
		"colors": []interface{}{"oak", "white"},
	}, got["specs"])
}
