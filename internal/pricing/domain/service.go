package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type Service interface {
	// Validate checks the selections against the template's attribute
	// definitions and returns human-readable problems. An empty slice means
	// the selections are quotable.
	Validate(ctx context.Context, templateID string, selections Selections) ([]string, error)

	// Quote validates and prices a configuration in one pass. A non-empty
	// validation result is returned as ErrInvalidSelections wrapped in a
	// ValidationError.
	Quote(ctx context.Context, req QuoteRequest) (*Quote, error)
}

type QuoteRequest struct {
	TemplateID string           `json:"-"`
	Selections Selections       `json:"selections"`
	WidthMM    *int             `json:"width_mm"`
	HeightMM   *int             `json:"height_mm"`
	TaxPercent *decimal.Decimal `json:"tax_percent"`
	Currency   string           `json:"currency"`
}

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrTemplateNotFound  = errors.New("template_not_found")
	ErrTemplateInactive  = errors.New("template_inactive")
	ErrInvalidTaxPercent = errors.New("invalid_tax_percent")
	ErrInvalidSelections = errors.New("invalid_selections")
)

// ValidationError carries the per-field problems behind ErrInvalidSelections.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string { return ErrInvalidSelections.Error() }

func (e *ValidationError) Unwrap() error { return ErrInvalidSelections }
