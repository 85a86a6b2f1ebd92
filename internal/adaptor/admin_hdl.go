package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"sauna-booking/internal/dto/request"
	"sauna-booking/internal/usecase"
	"sauna-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminHandler struct {
	reservations usecase.ReservationService
	admin        usecase.AdminService
	log          *zap.Logger
}

func NewAdminHandler(reservations usecase.ReservationService, admin usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		reservations: reservations,
		admin:        admin,
		log:          log.With(zap.String("handler", "admin")),
	}
}

// ==================== RESERVATIONS ====================

// ListReservations handles GET /api/admin/reservations?date=
func (h *AdminHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "date is required", nil)
		return
	}

	reservations, err := h.reservations.ListByDate(r.Context(), date)
	if err != nil {
		handleServiceError(w, h.log, err, "list reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// ModifyReservation handles PATCH /api/admin/reservations/{code}
func (h *AdminHandler) ModifyReservation(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		utils.ResponseBadRequest(w, "Reservation code is required", nil)
		return
	}

	var req request.ModifyReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	reservation, err := h.reservations.Modify(r.Context(), code, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "modify reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// CancelReservation handles PUT /api/admin/reservations/{code}/cancel
func (h *AdminHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		utils.ResponseBadRequest(w, "Reservation code is required", nil)
		return
	}

	if err := h.reservations.AdminCancel(r.Context(), code); err != nil {
		handleServiceError(w, h.log, err, "admin cancel reservation")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ==================== CLOSURES ====================

// ListClosures handles GET /api/admin/closures
func (h *AdminHandler) ListClosures(w http.ResponseWriter, r *http.Request) {
	closures, err := h.admin.ListClosures(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list closures")
		return
	}

	utils.ResponseSuccess(w, "success", closures)
}

// CreateClosure handles POST /api/admin/closures
func (h *AdminHandler) CreateClosure(w http.ResponseWriter, r *http.Request) {
	var req request.CreateClosureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	closure, err := h.admin.CreateClosure(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create closure")
		return
	}

	utils.ResponseCreated(w, "success", closure)
}

// DeleteClosure handles DELETE /api/admin/closures/{id}
func (h *AdminHandler) DeleteClosure(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "Closure ID is required", nil)
		return
	}

	if err := h.admin.DeleteClosure(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete closure")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ==================== PRICE SETTINGS ====================

// ListPriceSettings handles GET /api/admin/price-settings
func (h *AdminHandler) ListPriceSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.admin.ListPriceSettings(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list price settings")
		return
	}

	utils.ResponseSuccess(w, "success", settings)
}

// UpsertPriceSetting handles PUT /api/admin/price-settings/{guestCount}
func (h *AdminHandler) UpsertPriceSetting(w http.ResponseWriter, r *http.Request) {
	guestCount, err := strconv.Atoi(chi.URLParam(r, "guestCount"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid guest count", nil)
		return
	}

	var req request.UpsertPriceSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	setting, err := h.admin.UpsertPriceSetting(r.Context(), guestCount, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "upsert price setting")
		return
	}

	utils.ResponseSuccess(w, "success", setting)
}

// ==================== OPTIONS ====================

// ListOptions handles GET /api/admin/options
func (h *AdminHandler) ListOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.admin.ListOptions(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list options")
		return
	}

	utils.ResponseSuccess(w, "success", options)
}

// CreateOption handles POST /api/admin/options
func (h *AdminHandler) CreateOption(w http.ResponseWriter, r *http.Request) {
	var req request.CreateOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	option, err := h.admin.CreateOption(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create option")
		return
	}

	utils.ResponseCreated(w, "success", option)
}

// UpdateOption handles PATCH /api/admin/options/{id}
func (h *AdminHandler) UpdateOption(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "Option ID is required", nil)
		return
	}

	var req request.UpdateOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	option, err := h.admin.UpdateOption(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update option")
		return
	}

	utils.ResponseSuccess(w, "success", option)
}
