package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/bookkeeping-api/internal/domain"
)

const dateOnly = "2006-01-02"

var dateTimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}

// parseTransactionDate admite RFC3339 o YYYY-MM-DD (medianoche UTC). Vacío = sin fecha.
func parseTransactionDate(s string) (time.Time, error) {
	t, _, err := parseDate(s)
	return t, err
}

// parseRangeBound interpreta un límite de rango de fechas. Un endDate de solo fecha
// incluye el día completo.
func parseRangeBound(s string, end bool) (*time.Time, error) {
	t, dateOnlyValue, err := parseDate(s)
	if err != nil || t.IsZero() {
		return nil, err
	}
	if end && dateOnlyValue {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func parseDate(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, nil
	}
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t, true, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, false, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, s)
}
