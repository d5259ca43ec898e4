package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"seller-marketplace/shared/models"
	"seller-marketplace/shared/store"

	"gorm.io/gorm"
)

type Users struct {
	db *gorm.DB
}

func (u *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (u *Users) ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	return findAll[models.User](ctx, u.db, "role = ?", role)
}

func (u *Users) Insert(ctx context.Context, user *models.User) (*models.InsertResult, error) {
	if user.ID.IsZero() {
		user.ID = newID()
	}
	return insert(ctx, u.db, user.ID, user)
}

func (u *Users) Delete(ctx context.Context, id models.ID) (*models.DeleteResult, error) {
	return deleteByID(ctx, u.db, id, &models.User{})
}

func (u *Users) MarkVerified(ctx context.Context, id models.ID) (*models.UpdateResult, error) {
	return setTrue(ctx, u.db, &models.User{}, "verified", "id = ?", id)
}

type Products struct {
	db *gorm.DB
}

func (p *Products) ListByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	return findAll[models.Product](ctx, p.db, "category_id = ?", categoryID)
}

func (p *Products) ListByOwner(ctx context.Context, email string) ([]models.Product, error) {
	return findAll[models.Product](ctx, p.db, "email = ?", email)
}

func (p *Products) ListAdvertised(ctx context.Context) ([]models.Product, error) {
	return findAll[models.Product](ctx, p.db, "advertise = ?", true)
}

func (p *Products) ListReported(ctx context.Context) ([]models.Product, error) {
	return findAll[models.Product](ctx, p.db, "report = ?", true)
}

func (p *Products) Insert(ctx context.Context, product *models.Product) (*models.InsertResult, error) {
	if product.ID.IsZero() {
		product.ID = newID()
	}
	return insert(ctx, p.db, product.ID, product)
}

func (p *Products) Delete(ctx context.Context, id models.ID) (*models.DeleteResult, error) {
	return deleteByID(ctx, p.db, id, &models.Product{})
}

func (p *Products) SetAdvertised(ctx context.Context, id models.ID) (*models.UpdateResult, error) {
	return p.upsertFlag(ctx, id, "advertise", models.Product{ID: id, Advertise: true})
}

func (p *Products) SetReported(ctx context.Context, id models.ID) (*models.UpdateResult, error) {
	return p.upsertFlag(ctx, id, "report", models.Product{ID: id, Report: true})
}

func (p *Products) upsertFlag(ctx context.Context, id models.ID, column string, stub models.Product) (*models.UpdateResult, error) {
	var out *models.UpdateResult
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := setTrue(ctx, tx, &models.Product{}, column, "id = ?", id)
		if err != nil {
			return err
		}
		if res.MatchedCount > 0 {
			out = res
			return nil
		}

		if err := tx.Create(&stub).Error; err != nil {
			return fmt.Errorf("upsert product %s: %w", id, err)
		}
		upserted := id
		out = &models.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &upserted}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Products) MarkOwnerVerified(ctx context.Context, email string) (*models.UpdateResult, error) {
	return setTrue(ctx, p.db, &models.Product{}, "verified", "email = ?", email)
}

type Categories struct {
	db *gorm.DB
}

func (c *Categories) List(ctx context.Context) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := c.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

type Orders struct {
	db *gorm.DB
}

func (o *Orders) CountByBuyerAndProduct(ctx context.Context, email, productName string) (int64, error) {
	var n int64
	err := o.db.WithContext(ctx).Model(&models.Order{}).
		Where("email = ? AND product_name = ?", email, productName).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

func (o *Orders) Insert(ctx context.Context, order *models.Order) (*models.InsertResult, error) {
	if order.ID.IsZero() {
		order.ID = newID()
	}
	return insert(ctx, o.db, order.ID, order)
}

func (o *Orders) ListByBuyer(ctx context.Context, email string) ([]models.Order, error) {
	return findAll[models.Order](ctx, o.db, "email = ?", email)
}
