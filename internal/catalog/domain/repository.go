package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, template *ProductTemplate) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ProductTemplate, error)
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*ProductTemplate, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]ProductTemplate, error)
}
