package mongostore

import (
	"context"
	"errors"
	"fmt"

	"seller-marketplace/shared/models"
	"seller-marketplace/shared/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Users struct {
	coll *mongo.Collection
}

func (u *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := u.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (u *Users) ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	return findAll[models.User](ctx, u.coll, bson.M{"role": role})
}

func (u *Users) Insert(ctx context.Context, user *models.User) (*models.InsertResult, error) {
	if user.ID.IsZero() {
		user.ID = newID()
	}
	return insertOne(ctx, u.coll, user.ID, user)
}

func (u *Users) Delete(ctx context.Context, id models.ID) (*models.DeleteResult, error) {
	return deleteOne(ctx, u.coll, id)
}

func (u *Users) MarkVerified(ctx context.Context, id models.ID) (*models.UpdateResult, error) {
	return setTrue(ctx, u.coll, byID(id), "verified", false, false)
}

type Products struct {
	coll *mongo.Collection
}

func (p *Products) ListByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	return findAll[models.Product](ctx, p.coll, bson.M{"categoryId": categoryID})
}

func (p *Products) ListByOwner(ctx context.Context, email string) ([]models.Product, error) {
	return findAll[models.Product](ctx, p.coll, bson.M{"email": email})
}

func (p *Products) ListAdvertised(ctx context.Context) ([]models.Product, error) {
	return findAll[models.Product](ctx, p.coll, bson.M{"advertise": true})
}

func (p *Products) ListReported(ctx context.Context) ([]models.Product, error) {
	return findAll[models.Product](ctx, p.coll, bson.M{"report": true})
}

func (p *Products) Insert(ctx context.Context, product *models.Product) (*models.InsertResult, error) {
	if product.ID.IsZero() {
		product.ID = newID()
	}
	return insertOne(ctx, p.coll, product.ID, product)
}

func (p *Products) Delete(ctx context.Context, id models.ID) (*models.DeleteResult, error) {
	return deleteOne(ctx, p.coll, id)
}

func (p *Products) SetAdvertised(ctx context.Context, id models.ID) (*models.UpdateResult, error) {
	return setTrue(ctx, p.coll, byID(id), "advertise", false, true)
}

func (p *Products) SetReported(ctx context.Context, id models.ID) (*models.UpdateResult, error) {
	return setTrue(ctx, p.coll, byID(id), "report", false, true)
}

func (p *Products) MarkOwnerVerified(ctx context.Context, email string) (*models.UpdateResult, error) {
	return setTrue(ctx, p.coll, bson.M{"email": email}, "verified", true, false)
}

type Categories struct {
	coll *mongo.Collection
}

func (c *Categories) List(ctx context.Context) ([]models.Category, error) {
	return findAll[models.Category](ctx, c.coll, bson.M{})
}

type Orders struct {
	coll *mongo.Collection
}

func (o *Orders) CountByBuyerAndProduct(ctx context.Context, email, productName string) (int64, error) {
	n, err := o.coll.CountDocuments(ctx, bson.M{"email": email, "productName": productName})
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

func (o *Orders) Insert(ctx context.Context, order *models.Order) (*models.InsertResult, error) {
	if order.ID.IsZero() {
		order.ID = newID()
	}
	return insertOne(ctx, o.coll, order.ID, order)
}

func (o *Orders) ListByBuyer(ctx context.Context, email string) ([]models.Order, error) {
	return findAll[models.Order](ctx, o.coll, bson.M{"email": email})
}
