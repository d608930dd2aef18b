package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/tallersur/aberturas/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() catalogdomain.Repository {
	return &repo{}
}

// preloaded loads attributes and options in display order so the engine
// evaluates them deterministically without re-sorting in SQL-sensitive code.
func preloaded(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Preload("Attributes", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("display_order ASC, id ASC")
		}).
		Preload("Attributes.Options", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("display_order ASC, id ASC")
		})
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, template *catalogdomain.ProductTemplate) error {
	return db.WithContext(ctx).Create(template).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*catalogdomain.ProductTemplate, error) {
	var tpl catalogdomain.ProductTemplate
	err := preloaded(ctx, db).First(&tpl, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*catalogdomain.ProductTemplate, error) {
	var tpl catalogdomain.ProductTemplate
	err := preloaded(ctx, db).First(&tpl, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter catalogdomain.ListFilter) ([]catalogdomain.ProductTemplate, error) {
	tx := preloaded(ctx, db)
	if !filter.IncludeInactive {
		tx = tx.Where("is_active = ?", true)
	}
	if filter.ProductClass != "" {
		tx = tx.Where("product_class = ?", filter.ProductClass)
	}

	var items []catalogdomain.ProductTemplate
	if err := tx.Order("line_name ASC, version ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
