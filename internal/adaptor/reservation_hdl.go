package adaptor

import (
	"encoding/json"
	"net/http"

	"sauna-booking/internal/dto/request"
	"sauna-booking/internal/usecase"
	"sauna-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service      usecase.ReservationService
	availability usecase.AvailabilityService
	admin        usecase.AdminService
	log          *zap.Logger
}

func NewReservationHandler(
	service usecase.ReservationService,
	availability usecase.AvailabilityService,
	admin usecase.AdminService,
	log *zap.Logger,
) *ReservationHandler {
	return &ReservationHandler{
		service:      service,
		availability: availability,
		admin:        admin,
		log:          log.With(zap.String("handler", "reservation")),
	}
}

// CreateReservation handles POST /api/reservations
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	reservation, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, "success", reservation)
}

// ConfirmReservation handles GET /api/reservations/confirm/{token}
func (h *ReservationHandler) ConfirmReservation(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		utils.ResponseBadRequest(w, "Confirmation token is required", nil)
		return
	}

	result, err := h.service.Confirm(r.Context(), token)
	if err != nil {
		handleServiceError(w, h.log, err, "confirm reservation")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// CancelReservation handles POST /api/reservations/{code}/cancel
func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		utils.ResponseBadRequest(w, "Reservation code is required", nil)
		return
	}

	var req request.CancelReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.Cancel(r.Context(), code, req.PhoneLastFour); err != nil {
		handleServiceError(w, h.log, err, "cancel reservation")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetReservation handles GET /api/reservations/{code}
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		utils.ResponseBadRequest(w, "Reservation code is required", nil)
		return
	}

	reservation, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		handleServiceError(w, h.log, err, "get reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// LookupReservations handles POST /api/reservations/lookup. The response
// carries no reservation data; matches are delivered out of band.
func (h *ReservationHandler) LookupReservations(w http.ResponseWriter, r *http.Request) {
	var req request.LookupReservationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.LookupByPhone(r.Context(), req.Phone); err != nil {
		handleServiceError(w, h.log, err, "lookup reservations")
		return
	}

	utils.ResponseAccepted(w, "If reservations exist for this number, a message has been sent")
}

// CheckAvailability handles GET /api/availability?date=&time_slot=
func (h *ReservationHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	date := query.Get("date")
	slot := query.Get("time_slot")

	if date == "" || slot == "" {
		utils.ResponseBadRequest(w, "date and time_slot are required", nil)
		return
	}

	result, err := h.availability.Check(r.Context(), date, slot)
	if err != nil {
		handleServiceError(w, h.log, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// ListOptions handles GET /api/options (active options for the booking form)
func (h *ReservationHandler) ListOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.admin.ListActiveOptions(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list options")
		return
	}

	utils.ResponseSuccess(w, "success", options)
}
