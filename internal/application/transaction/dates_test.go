package transaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bookkeeping-api/internal/application/dto"
	"github.com/jhoicas/bookkeeping-api/internal/domain"
)

func TestParseTransactionDate(t *testing.T) {
	d, err := parseTransactionDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	d, err = parseTransactionDate("2024-03-01T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), d)

	d, err = parseTransactionDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = parseTransactionDate("ayer")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildFilter_EndDateIncludesWholeDay(t *testing.T) {
	f, err := BuildFilter("b1", dto.TransactionQuery{StartDate: "2024-03-01", EndDate: "2024-03-01"})
	require.NoError(t, err)
	require.NotNil(t, f.From)
	require.NotNil(t, f.To)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *f.From)
	assert.True(t, f.To.After(time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC)))
	assert.True(t, f.To.Before(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)))
}

func TestBuildFilter_Errors(t *testing.T) {
	_, err := BuildFilter("b1", dto.TransactionQuery{Type: "gift"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransactionType)

	_, err = BuildFilter("b1", dto.TransactionQuery{StartDate: "2024-03-05", EndDate: "2024-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	f, err := BuildFilter("b1", dto.TransactionQuery{Type: "SALE", CustomerID: " c1 "})
	require.NoError(t, err)
	assert.EqualValues(t, "sale", f.Type)
	assert.Equal(t, "c1", f.CustomerID)
}
