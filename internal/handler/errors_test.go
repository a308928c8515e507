package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	customError "github.com/pgdesk/room-service/pkg/errors"
)

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "room not found",
			err:    customError.WrapRoomNotFound("101"),
			status: http.StatusNotFound,
			code:   customError.ErrCodeRoomNotFound,
		},
		{
			name:   "guest not found",
			err:    customError.WrapGuestNotFound(1, "101"),
			status: http.StatusNotFound,
			code:   customError.ErrCodeGuestNotFound,
		},
		{
			name:   "proposal not found",
			err:    customError.WrapProposalNotFound("abc"),
			status: http.StatusNotFound,
			code:   customError.ErrCodeProposalNotFound,
		},
		{
			name:   "duplicate room",
			err:    customError.WrapRoomAlreadyExists("101"),
			status: http.StatusConflict,
			code:   customError.ErrCodeRoomAlreadyExists,
		},
		{
			name:   "room full",
			err:    customError.WrapRoomFull("101"),
			status: http.StatusBadRequest,
			code:   customError.ErrCodeRoomFull,
		},
		{
			name:   "room occupied",
			err:    customError.WrapRoomOccupied("101"),
			status: http.StatusBadRequest,
			code:   customError.ErrCodeRoomOccupied,
		},
		{
			name:   "invalid payment amount",
			err:    customError.WrapInvalidPaymentAmount(),
			status: http.StatusBadRequest,
			code:   customError.ErrCodeInvalidPaymentAmount,
		},
		{
			name:   "initial payment exceeds required",
			err:    customError.WrapInitialPaymentExceeds("security", "5000"),
			status: http.StatusBadRequest,
			code:   customError.ErrCodeInitialPaymentExceeds,
		},
		{
			name:   "invalid month key",
			err:    customError.WrapInvalidMonthKey("March-2025"),
			status: http.StatusBadRequest,
			code:   customError.ErrCodeInvalidMonthKey,
		},
		{
			name:   "invalid payment type",
			err:    customError.WrapInvalidPaymentType("deposit"),
			status: http.StatusBadRequest,
			code:   customError.ErrCodeInvalidPaymentType,
		},
		{
			name:   "database error",
			err:    customError.WrapDatabaseError(errors.New("broken pipe")),
			status: http.StatusInternalServerError,
			code:   customError.ErrCodeDatabaseError,
		},
		{
			name:   "cache error",
			err:    customError.WrapCacheError(errors.New("redis down")),
			status: http.StatusInternalServerError,
			code:   customError.ErrCodeCacheError,
		},
		{
			name:   "plain error",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)

			var body struct {
				Success bool   `json:"success"`
				Code    string `json:"code"`
			}
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			if tt.code != "" {
				assert.Equal(t, tt.code, body.Code)
			}
		})
	}
}
