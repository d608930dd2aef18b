package pdf

import (
	"bytes"
	"context"
	"io"
)

// QuoteDocument is everything the renderer needs, already formatted. Money
// values arrive as strings so the provider never does arithmetic.
type QuoteDocument struct {
	ShopName  string
	QuoteRef  string
	IssueDate string

	LineName     string
	TemplateCode string
	ProductClass string

	AreaM2     string
	PerimeterM string

	Currency   string
	TaxPercent string
	Net        string
	Tax        string
	Gross      string

	Lines []QuoteLine
}

// QuoteLine is one breakdown row of the rendered quote.
type QuoteLine struct {
	Concept string
	Detail  string
	Amount  string
}

type Provider interface {
	GenerateQuote(ctx context.Context, doc QuoteDocument) (io.Reader, error)
}

// NoOpProvider renders nothing. Callers read the body unconditionally, so
// it must still hand back a usable reader.
type NoOpProvider struct{}

func (p *NoOpProvider) GenerateQuote(ctx context.Context, doc QuoteDocument) (io.Reader, error) {
	return bytes.NewReader(nil), nil
}
