package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

func FindAll[T any](ctx context.Context, db *gorm.DB) ([]T, error) {
	var rows []T
	if err := db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find all: %w", err)
	}
	return rows, nil
}

// FindByID returns ErrNotFound when no row has the given id.
func FindByID[T any](ctx context.Context, db *gorm.DB, id uint) (*T, error) {
	var row T
	if err := db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find by id %d: %w", id, err)
	}
	return &row, nil
}

// FindWhere returns every row matching the condition, e.g.
// FindWhere[model.Cafe](ctx, db, "location = ?", loc).
func FindWhere[T any](ctx context.Context, db *gorm.DB, query string, args ...any) ([]T, error) {
	var rows []T
	if err := db.WithContext(ctx).Where(query, args...).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find where %q: %w", query, err)
	}
	return rows, nil
}

// FindOneWhere returns the first matching row or ErrNotFound.
func FindOneWhere[T any](ctx context.Context, db *gorm.DB, query string, args ...any) (*T, error) {
	var row T
	if err := db.WithContext(ctx).Where(query, args...).Order("id").First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find one where %q: %w", query, err)
	}
	return &row, nil
}

// Insert stores row; gorm fills in the assigned identity.
func Insert[T any](ctx context.Context, db *gorm.DB, row *T) error {
	if err := db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	return nil
}

// InsertBatch stores every row in a single statement.
func InsertBatch[T any](ctx context.Context, db *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if err := db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// Update writes only the listed columns of row. A map is used so that false
// and empty values are written too.
func Update[T any](ctx context.Context, db *gorm.DB, row *T, columns map[string]any) error {
	res := db.WithContext(ctx).Model(row).Updates(columns)
	if res.Error != nil {
		return fmt.Errorf("update: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func Exists[T any](ctx context.Context, db *gorm.DB, query string, args ...any) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(new(T)).Where(query, args...).Count(&count).Error; err != nil {
		return false, fmt.Errorf("exists %q: %w", query, err)
	}
	return count > 0, nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
