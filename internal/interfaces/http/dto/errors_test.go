package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/catering/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInsufficientStock, http.StatusUnprocessableEntity},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(shared.CodeNotFound))
	assert.Equal(t, ErrCodeAlreadyExists, NormalizeErrorCode(shared.CodeAlreadyExists))
	assert.Equal(t, ErrCodeInvalidInput, NormalizeErrorCode(shared.CodeInvalidInput))
	assert.Equal(t, ErrCodeInsufficientStock, NormalizeErrorCode(shared.CodeInsufficientStock))
	assert.Equal(t, ErrCodeConcurrencyConflict, NormalizeErrorCode(shared.CodeConcurrencyConflict))
	assert.Equal(t, ErrCodeInvalidState, NormalizeErrorCode(shared.CodeInvalidState))
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(ErrCodeNotFound))
	assert.Equal(t, "CUSTOM", NormalizeErrorCode("CUSTOM"))
}

func TestErrorResponses(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Order not found", "req-1")
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-1", resp.Error.RequestID)

	v := NewValidationErrorResponse("Request validation failed", "req-2", []ValidationDetail{
		{Field: "order_number", Message: "This field is required"},
	})
	assert.Equal(t, ErrCodeValidation, v.Error.Code)
	assert.Len(t, v.Error.Details, 1)

	body, err := json.Marshal(NewErrorResponse(ErrCodeInternal, "boom"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":{"code":"ERR_INTERNAL","message":"boom"}}`, string(body))
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2}, 41, 2, 20)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 3, resp.Meta.TotalPages)

	empty := NewSuccessResponseWithMeta(nil, 0, 1, 20)
	assert.Equal(t, 0, empty.Meta.TotalPages)
}

func TestListRequestToFilter(t *testing.T) {
	f := ListRequest{}.ToFilter()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.PageSize)
	assert.Equal(t, "created_at", f.OrderBy)
	assert.NotNil(t, f.Filters)

	f = ListRequest{Page: 3, PageSize: 50, OrderBy: "event_date", OrderDir: "asc", Search: "wed"}.ToFilter()
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 50, f.PageSize)
	assert.Equal(t, "event_date", f.OrderBy)
	assert.Equal(t, "asc", f.OrderDir)
	assert.Equal(t, "wed", f.Search)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-10-20")
	require.NoError(t, err)
	assert.Equal(t, 20, d.Day())

	_, err = ParseDate("20/10/2026")
	assert.True(t, shared.IsCode(err, shared.CodeInvalidInput))
}
