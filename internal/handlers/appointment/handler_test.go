package appointment

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patitas/internal/domains/appointment/model"
	gDto "patitas/shared/dto"
	"patitas/shared/failure"
)

func TestAppointmentFilter(t *testing.T) {
	t.Run("wire date is normalized before it reaches the store", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/appointments?date=07-09-2026", nil)

		filterGroup, err := appointmentFilter(r, nil)

		require.NoError(t, err)
		require.Len(t, filterGroup.Filters, 1)

		filter, ok := filterGroup.Filters[0].(gDto.Filter)
		require.True(t, ok)
		assert.Equal(t, model.FieldDate, filter.Field)
		assert.Equal(t, "2026-09-07", filter.Value)
	})

	t.Run("iso date is a bad request, not a query error", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/appointments?date=2026-09-07", nil)

		_, err := appointmentFilter(r, nil)

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("garbage date is a bad request", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/appointments?date=next-tuesday", nil)

		_, err := appointmentFilter(r, nil)

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("status and mandatory owner filters are kept", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/appointments?status=pending", nil)

		owned := gDto.Filter{
			Field:    model.FieldOwnerID,
			Operator: gDto.FilterOperatorEq,
			Value:    "client-1",
			Table:    model.TableName,
		}

		filterGroup, err := appointmentFilter(r, &owned)

		require.NoError(t, err)
		require.Len(t, filterGroup.Filters, 2)
		assert.Equal(t, owned, filterGroup.Filters[0])
	})
}
