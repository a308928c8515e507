package handler

import (
	"net/http"

	customError "github.com/pgdesk/room-service/pkg/errors"
	"github.com/pgdesk/room-service/pkg/response"
)

// writeError maps a service error onto the HTTP surface. Business errors
// carry their code; anything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	be, ok := err.(*customError.BusinessError)
	if !ok {
		response.InternalServerError(w, "Internal server error", err)
		return
	}

	status := http.StatusInternalServerError
	switch be.Code {
	case customError.ErrCodeRoomNotFound,
		customError.ErrCodeGuestNotFound,
		customError.ErrCodeProposalNotFound:
		status = http.StatusNotFound
	case customError.ErrCodeRoomAlreadyExists:
		status = http.StatusConflict
	case customError.ErrCodeRoomFull,
		customError.ErrCodeRoomOccupied,
		customError.ErrCodeInvalidPaymentAmount,
		customError.ErrCodeInitialPaymentExceeds,
		customError.ErrCodeInvalidMonthKey,
		customError.ErrCodeInvalidPaymentType:
		status = http.StatusBadRequest
	}

	response.BusinessError(w, status, be.Code, be.Message)
}
