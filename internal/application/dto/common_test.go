package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeframe(t *testing.T) {
	tests := []struct {
		name     string
		q        TimeframeQuery
		wantOK   bool
		wantFrom time.Time
		wantTo   time.Time
	}{
		{
			name:     "solo fechas: end cubre el día",
			q:        TimeframeQuery{Start: "2024-05-01", End: "2024-05-31"},
			wantOK:   true,
			wantFrom: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2024, 5, 31, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:     "RFC 3339 se normaliza a UTC",
			q:        TimeframeQuery{Start: "2024-05-01T10:00:00-05:00", End: "2024-05-02T00:00:00Z"},
			wantOK:   true,
			wantFrom: time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		},
		{name: "falta end", q: TimeframeQuery{Start: "2024-05-01"}},
		{name: "formato inválido", q: TimeframeQuery{Start: "01/05/2024", End: "2024-05-31"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, ok := tt.q.ParseTimeframe()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.wantFrom.Equal(from), "from=%s", from)
				assert.True(t, tt.wantTo.Equal(to), "to=%s", to)
			}
		})
	}
}
