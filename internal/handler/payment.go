package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/pgdesk/room-service/internal/domain"
	"github.com/pgdesk/room-service/internal/service"
	"github.com/pgdesk/room-service/pkg/response"
)

const defaultActivityLimit = 20

type PaymentHandler struct {
	service   *service.PaymentService
	validator *validator.Validate
}

func NewPaymentHandler(service *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service:   service,
		validator: validator.New(),
	}
}

// AddPayment handles POST /rooms/{roomNumber}/guests/{userID}/payments
func (h *PaymentHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomNumber := vars["roomNumber"]

	userID, err := strconv.Atoi(vars["userID"])
	if err != nil {
		response.BadRequest(w, "userID must be an integer", err)
		return
	}

	var req domain.AddPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	resp, err := h.service.ProposePayment(r.Context(), roomNumber, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, resp)
}

// ConfirmPayment handles POST /payments/confirmations/{token}
func (h *PaymentHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	token, err := uuid.Parse(mux.Vars(r)["token"])
	if err != nil {
		response.BadRequest(w, "token must be a UUID", err)
		return
	}

	resp, err := h.service.ConfirmPayment(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, resp)
}

// CancelPayment handles DELETE /payments/confirmations/{token}
func (h *PaymentHandler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	token, err := uuid.Parse(mux.Vars(r)["token"])
	if err != nil {
		response.BadRequest(w, "token must be a UUID", err)
		return
	}

	if err := h.service.CancelPayment(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Payment proposal cancelled"})
}

func paymentFilterFromQuery(r *http.Request) domain.PaymentFilter {
	q := r.URL.Query()
	return domain.PaymentFilter{
		RoomNumber:  q.Get("room_number"),
		GuestName:   q.Get("guest_name"),
		Month:       q.Get("month"),
		Year:        q.Get("year"),
		PaymentType: q.Get("payment_type"),
	}
}

// PaymentDetails handles GET /payments/details
func (h *PaymentHandler) PaymentDetails(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.GetPaymentDetails(r.Context(), paymentFilterFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, details)
}

// OverduePayments handles GET /payments/overdue
func (h *PaymentHandler) OverduePayments(w http.ResponseWriter, r *http.Request) {
	overdue, err := h.service.GetOverduePayments(r.Context(), r.URL.Query().Get("payment_type"))
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, overdue)
}

// PaymentAnalytics handles GET /payments/analytics
func (h *PaymentHandler) PaymentAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.service.GetPaymentAnalytics(r.Context(), r.URL.Query().Get("payment_type"))
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, analytics)
}

// PendingMonthly handles GET /payments/monthly-pending
func (h *PaymentHandler) PendingMonthly(w http.ResponseWriter, r *http.Request) {
	pending, err := h.service.GetPendingMonthly(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, pending)
}

// ExportCSV handles GET /payments/export/csv
func (h *PaymentHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ExportPaymentsCSV(r.Context(), paymentFilterFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	filename := fmt.Sprintf("payments-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		return
	}
}

// SendReminders handles POST /payments/send-monthly-reminders
func (h *PaymentHandler) SendReminders(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SendMonthlyReminders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, result)
}

// RecentActivities handles GET /activities/recent
func (h *PaymentHandler) RecentActivities(w http.ResponseWriter, r *http.Request) {
	limit := defaultActivityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			response.BadRequest(w, "limit must be a positive integer", err)
			return
		}
		limit = v
	}

	activities, err := h.service.GetRecentActivities(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, activities)
}
