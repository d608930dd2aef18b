package pdf

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoOpProvider_ReturnsReadableBody(t *testing.T) {
	p := &NoOpProvider{}

	reader, err := p.GenerateQuote(context.Background(), QuoteDocument{})
	require.NoError(t, err)
	require.NotNil(t, reader)

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Empty(t, content)
}
