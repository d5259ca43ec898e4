// Package store defines the persistence contracts used by the handlers and
// the role gates. Two implementations exist: mongostore (the document store)
// and sqlstore (gorm, PostgreSQL or SQLite).
//
// Every method performs a single store operation. Nothing here spans
// collections; callers that need two writes issue two calls.
package store

import (
	"context"
	"errors"

	"seller-marketplace/shared/models"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate key")
)

type Users interface {
	// FindByEmail returns ErrNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error)
	// Insert returns ErrDuplicate when the email is already registered.
	Insert(ctx context.Context, user *models.User) (*models.InsertResult, error)
	Delete(ctx context.Context, id models.ID) (*models.DeleteResult, error)
	MarkVerified(ctx context.Context, id models.ID) (*models.UpdateResult, error)
}

type Products interface {
	ListByCategory(ctx context.Context, categoryID string) ([]models.Product, error)
	ListByOwner(ctx context.Context, email string) ([]models.Product, error)
	ListAdvertised(ctx context.Context) ([]models.Product, error)
	ListReported(ctx context.Context) ([]models.Product, error)
	Insert(ctx context.Context, product *models.Product) (*models.InsertResult, error)
	Delete(ctx context.Context, id models.ID) (*models.DeleteResult, error)
	// SetAdvertised and SetReported upsert: an unknown id creates a stub
	// product holding only the id and the flag.
	SetAdvertised(ctx context.Context, id models.ID) (*models.UpdateResult, error)
	SetReported(ctx context.Context, id models.ID) (*models.UpdateResult, error)
	MarkOwnerVerified(ctx context.Context, email string) (*models.UpdateResult, error)
}

type Categories interface {
	List(ctx context.Context) ([]models.Category, error)
}

type Orders interface {
	CountByBuyerAndProduct(ctx context.Context, email, productName string) (int64, error)
	// Insert returns ErrDuplicate when the (email, productName) pair exists.
	Insert(ctx context.Context, order *models.Order) (*models.InsertResult, error)
	ListByBuyer(ctx context.Context, email string) ([]models.Order, error)
}

// Store bundles the collections of one backend.
type Store struct {
	Users      Users
	Products   Products
	Categories Categories
	Orders     Orders

	closer func(context.Context) error
}

func New(users Users, products Products, categories Categories, orders Orders, closer func(context.Context) error) *Store {
	return &Store{
		Users:      users,
		Products:   products,
		Categories: categories,
		Orders:     orders,
		closer:     closer,
	}
}

func (s *Store) Close(ctx context.Context) error {
	if s.closer == nil {
		return nil
	}
	return s.closer(ctx)
}
