package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/pgdesk/room-service/internal/domain"
	"github.com/pgdesk/room-service/internal/service"
	"github.com/pgdesk/room-service/pkg/response"
)

type RoomHandler struct {
	service   *service.RoomService
	validator *validator.Validate
}

func NewRoomHandler(service *service.RoomService) *RoomHandler {
	return &RoomHandler{
		service:   service,
		validator: validator.New(),
	}
}

// CreateRoom handles POST /rooms
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	room, err := h.service.CreateRoom(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, room)
}

// GetRoom handles GET /rooms/{roomNumber}
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	roomNumber := mux.Vars(r)["roomNumber"]

	room, err := h.service.GetRoom(r.Context(), roomNumber)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, room)
}

// ListRooms handles GET /rooms
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	filter := domain.RoomFilter{
		RoomType: r.URL.Query().Get("room_type"),
		Status:   r.URL.Query().Get("status"),
	}

	if raw := r.URL.Query().Get("min_occupancy"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "min_occupancy must be an integer", err)
			return
		}
		filter.MinOccupancy = &v
	}
	if raw := r.URL.Query().Get("max_occupancy"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "max_occupancy must be an integer", err)
			return
		}
		filter.MaxOccupancy = &v
	}

	rooms, err := h.service.ListRooms(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, rooms)
}

// UpdateRoom handles PUT /rooms/{roomNumber}
func (h *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	roomNumber := mux.Vars(r)["roomNumber"]

	var req domain.UpdateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	room, err := h.service.UpdateRoom(r.Context(), roomNumber, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, room)
}

// DeleteRoom handles DELETE /rooms/{roomNumber}
func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	roomNumber := mux.Vars(r)["roomNumber"]

	if err := h.service.DeleteRoom(r.Context(), roomNumber); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Room deleted"})
}

// ListGuests handles GET /rooms/{roomNumber}/guests
func (h *RoomHandler) ListGuests(w http.ResponseWriter, r *http.Request) {
	roomNumber := mux.Vars(r)["roomNumber"]

	room, err := h.service.GetRoom(r.Context(), roomNumber)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, room.Guests)
}

// Statistics handles GET /rooms/statistics
func (h *RoomHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, stats)
}

// AddGuest handles POST /rooms/{roomNumber}/guests
func (h *RoomHandler) AddGuest(w http.ResponseWriter, r *http.Request) {
	roomNumber := mux.Vars(r)["roomNumber"]

	var req domain.AddGuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	guest, err := h.service.AddGuest(r.Context(), roomNumber, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, guest)
}

// UpdateGuest handles PUT /rooms/{roomNumber}/guests/{userID}
func (h *RoomHandler) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomNumber := vars["roomNumber"]

	userID, err := strconv.Atoi(vars["userID"])
	if err != nil {
		response.BadRequest(w, "userID must be an integer", err)
		return
	}

	var req domain.UpdateGuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	if err := h.service.UpdateGuest(r.Context(), roomNumber, userID, &req); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Guest updated"})
}

// RemoveGuest handles DELETE /rooms/{roomNumber}/guests/{userID}
func (h *RoomHandler) RemoveGuest(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomNumber := vars["roomNumber"]

	userID, err := strconv.Atoi(vars["userID"])
	if err != nil {
		response.BadRequest(w, "userID must be an integer", err)
		return
	}

	if err := h.service.RemoveGuest(r.Context(), roomNumber, userID); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Guest removed"})
}
