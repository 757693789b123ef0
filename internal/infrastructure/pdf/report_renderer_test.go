package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/emart-api/internal/application/report"
)

func TestColumnWidths_SumanLaGrilla(t *testing.T) {
	for n := 1; n <= gridSize; n++ {
		widths := columnWidths(n)
		require.Len(t, widths, n)
		sum := 0
		for _, w := range widths {
			assert.GreaterOrEqual(t, w, 1)
			sum += w
		}
		assert.Equal(t, gridSize, sum, "n=%d", n)
	}
	assert.Nil(t, columnWidths(0))
	assert.Len(t, columnWidths(20), gridSize)
}

func TestColumnWidths_SobranteEnColumnasDeDatos(t *testing.T) {
	assert.Equal(t, []int{2, 3, 3, 2, 2}, columnWidths(5))
}

func TestAmount_FormatoEspanol(t *testing.T) {
	g := NewReportRenderer("emart-api")
	assert.Equal(t, "10,50", g.amount(decimal.RequireFromString("10.5")))
}

func TestRender_GeneraPDF(t *testing.T) {
	g := NewReportRenderer("emart-api")
	r := &report.Report{
		Metadata: report.Metadata{
			Type:        report.TypeTransactions,
			Title:       "Reporte de transacciones",
			StartDate:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
			GeneratedAt: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
		},
		Columns: []string{"ID", "Usuario", "Producto", "Cantidad", "Total", "Fecha"},
		Rows: [][]string{
			{"TX1", "U1", "P1", "2", "20.00", "2024-05-01 09:00"},
			{"TX2", "U2", "P1", "1", "10.50", "2024-05-15 18:30"},
		},
		Summary: report.Summary{TotalRecords: 2, UniqueUsers: 2, UniqueProducts: 1, TotalQuantity: 3, TotalAmount: decimal.RequireFromString("30.5")},
	}

	out, err := g.Render(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "el documento debe ser un PDF")

	empty := *r
	empty.Rows = nil
	out, err = g.Render(context.Background(), &empty)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
