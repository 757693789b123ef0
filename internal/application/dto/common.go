package dto

import "time"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TimeframeQuery rango de fechas de los listados por periodo (RFC 3339 o YYYY-MM-DD).
type TimeframeQuery struct {
	Start string `query:"start"`
	End   string `query:"end"`
}

// ParseTimeframe interpreta start/end. Una fecha sin hora en end cubre el día completo.
func (q TimeframeQuery) ParseTimeframe() (from, to time.Time, ok bool) {
	from, okFrom := parseInstant(q.Start, false)
	to, okTo := parseInstant(q.End, true)
	return from, to, okFrom && okTo
}

func parseInstant(s string, endOfDay bool) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return t, true
	}
	return time.Time{}, false
}
