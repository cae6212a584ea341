package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lfc-estoque/internal/domain/stock"
)

func TestGenerateStockReport(t *testing.T) {
	g := NewMarotoPDFGenerator("Inventario LFC")
	rows := []stock.GroupedRow{
		{ProductID: "p1", Name: "Parafuso", SKU: "PAR-1", Barcode: "789", TotalQuantity: 1200, Shelves: "A1, A2, B1, C3"},
		{ProductID: "p2", Name: "Porca", TotalQuantity: 4, Shelves: "A1"},
	}

	out, err := g.GenerateStockReport(context.Background(), rows, time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateStockReport_Empty(t *testing.T) {
	out, err := NewMarotoPDFGenerator("").GenerateStockReport(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestFormatThousands(t *testing.T) {
	cases := map[int]string{0: "0", 999: "999", 1000: "1.000", 25000: "25.000", 1000000: "1.000.000", -4500: "-4.500"}
	for in, want := range cases {
		assert.Equal(t, want, formatThousands(in))
	}
}
