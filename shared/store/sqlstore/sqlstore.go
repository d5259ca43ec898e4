// Package sqlstore implements the store contracts with gorm. It backs the
// PostgreSQL deployment and the SQLite database used in development and
// tests.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"seller-marketplace/shared/models"
	"seller-marketplace/shared/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// New wraps a migrated gorm connection. Closing the returned store closes the
// underlying sql.DB.
func New(db *gorm.DB) *store.Store {
	return store.New(
		&Users{db: db},
		&Products{db: db},
		&Categories{db: db},
		&Orders{db: db},
		func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	)
}

func newID() models.ID {
	return models.ID(uuid.NewString())
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key")
}

func findAll[T any](ctx context.Context, db *gorm.DB, query interface{}, args ...interface{}) ([]T, error) {
	rows := make([]T, 0)
	if err := db.WithContext(ctx).Where(query, args...).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find %T: %w", rows, err)
	}
	return rows, nil
}

func insert(ctx context.Context, db *gorm.DB, id models.ID, row interface{}) (*models.InsertResult, error) {
	if err := db.WithContext(ctx).Create(row).Error; err != nil {
		if isDuplicate(err) {
			return nil, store.ErrDuplicate
		}
		return nil, fmt.Errorf("insert %T: %w", row, err)
	}
	return &models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func deleteByID(ctx context.Context, db *gorm.DB, id models.ID, model interface{}) (*models.DeleteResult, error) {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return nil, fmt.Errorf("delete %T: %w", model, res.Error)
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: res.RowsAffected}, nil
}

// setTrue sets column to true on the rows matched by query and reports
// matched and modified counts the way the document store does: rows that
// already hold true are matched but not modified.
func setTrue(ctx context.Context, db *gorm.DB, model interface{}, column string, query interface{}, args ...interface{}) (*models.UpdateResult, error) {
	var matched int64
	if err := db.WithContext(ctx).Model(model).Where(query, args...).Count(&matched).Error; err != nil {
		return nil, fmt.Errorf("count %T: %w", model, err)
	}

	res := db.WithContext(ctx).Model(model).
		Where(query, args...).
		Where(column+" = ?", false).
		Update(column, true)
	if res.Error != nil {
		return nil, fmt.Errorf("set %s on %T: %w", column, model, res.Error)
	}

	return &models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  matched,
		ModifiedCount: res.RowsAffected,
	}, nil
}
