/*
handlers.go - HTTP API handlers for the leave management system

PURPOSE:
  Exposes the leave engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Users:
    GET    /api/users                      List users
    POST   /api/users                      Create user
    GET    /api/users/{id}                 Get user
    GET    /api/users/{id}/distribution    Per-type balance distribution
    GET    /api/users/{id}/leave-requests  The user's leave requests
    POST   /api/users/{id}/leave-requests  Submit a leave request
    GET    /api/users/{id}/wfh-requests    The user's WFH requests
    POST   /api/users/{id}/wfh-requests    Submit a WFH request

  Requests:
    GET    /api/requests/pending           All pending leave requests
    POST   /api/requests/{id}/approve      Approve
    POST   /api/requests/{id}/reject       Reject
    POST   /api/requests/{id}/cancel       Cancel

  Leave types:
    GET    /api/leave-types                List catalog
    POST   /api/leave-types                Create/replace a type

  Admin:
    PUT    /api/admin/balances             Upsert a balance record

  Holidays:
    GET    /api/holidays                   List
    POST   /api/holidays                   Create
    DELETE /api/holidays/{id}              Delete

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Invalid status transition
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/store/sqlite"
	"github.com/warp/leave-engine/wfh"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	Requests *leave.RequestService
	WFH      *wfh.Service
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:    store,
		Requests: leave.NewRequestService(store),
		WFH:      wfh.NewService(store),
	}
}

// =============================================================================
// USER HANDLERS
// =============================================================================

// ListUsers returns all users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list users", err)
		return
	}

	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetUser returns a single user.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.Store.GetUser(r.Context(), leave.UserID(id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get user", err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(*user))
}

// CreateUser creates a new user.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}

	user := leave.User{
		ID:     leave.UserID(req.ID),
		Name:   req.Name,
		Email:  req.Email,
		Gender: leave.Gender(req.Gender),
	}
	if err := h.Store.SaveUser(r.Context(), user); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create user", err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserDTO(user))
}

// =============================================================================
// DISTRIBUTION HANDLER - The core balance view
// =============================================================================

// GetDistribution computes the per-leave-type balance distribution for
// a user. Optional ?year=YYYY scopes the used-days accumulation; the
// default is the current calendar year.
func (h *Handler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	year := 0
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = parsed
	}

	dist, err := h.Requests.Distribution(r.Context(), leave.UserID(id), year)
	if err != nil {
		if leave.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "User not found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to compute distribution", err)
		return
	}
	writeJSON(w, http.StatusOK, toDistributionDTO(*dist))
}

// =============================================================================
// LEAVE REQUEST HANDLERS
// =============================================================================

// SubmitLeaveRequest submits a new leave request for a user.
func (h *Handler) SubmitLeaveRequest(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	startDate, err := leave.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return
	}
	endDate, err := leave.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
		return
	}

	created, err := h.Requests.Submit(r.Context(), leave.SubmitInput{
		UserID:      leave.UserID(userID),
		LeaveTypeID: leave.LeaveTypeID(req.LeaveTypeID),
		StartDate:   startDate,
		EndDate:     endDate,
		TotalDays:   leave.Days(req.TotalDays),
		Reason:      req.Reason,
	})
	if err != nil {
		writeDomainError(w, "Failed to submit request", err)
		return
	}
	writeJSON(w, http.StatusCreated, toLeaveRequestDTO(*created))
}

// ListLeaveRequests returns a user's leave requests.
func (h *Handler) ListLeaveRequests(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	reqs, err := h.Store.RequestsByUser(r.Context(), leave.UserID(userID))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list requests", err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaveRequestDTOs(reqs))
}

// ListPendingRequests returns every pending leave request.
func (h *Handler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.Store.PendingRequests(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list pending requests", err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaveRequestDTOs(reqs))
}

// ApproveRequest approves a pending leave request.
func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	decide := decodeDecision(r)

	req, err := h.Requests.Approve(r.Context(), leave.RequestID(id), decide.ActorID)
	if err != nil {
		writeDomainError(w, "Failed to approve request", err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaveRequestDTO(*req))
}

// RejectRequest rejects a pending leave request.
func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	decide := decodeDecision(r)

	req, err := h.Requests.Reject(r.Context(), leave.RequestID(id), decide.ActorID, decide.Reason)
	if err != nil {
		writeDomainError(w, "Failed to reject request", err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaveRequestDTO(*req))
}

// CancelRequest soft-cancels a pending or approved leave request.
func (h *Handler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	decide := decodeDecision(r)

	req, err := h.Requests.Cancel(r.Context(), leave.RequestID(id), decide.ActorID)
	if err != nil {
		writeDomainError(w, "Failed to cancel request", err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaveRequestDTO(*req))
}

// decodeDecision reads the optional decision body; an empty body means
// an anonymous actor (no auth layer yet).
func decodeDecision(r *http.Request) DecideRequest {
	var decide DecideRequest
	_ = json.NewDecoder(r.Body).Decode(&decide)
	return decide
}

// =============================================================================
// LEAVE TYPE HANDLERS
// =============================================================================

// ListLeaveTypes returns the leave-type catalog.
func (h *Handler) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Store.ListLeaveTypes(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leave types", err)
		return
	}

	dtos := make([]LeaveTypeDTO, len(types))
	for i, lt := range types {
		dtos[i] = toLeaveTypeDTO(lt)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateLeaveType creates or replaces a leave type.
func (h *Handler) CreateLeaveType(w http.ResponseWriter, r *http.Request) {
	var req CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Code == "" {
		writeError(w, http.StatusBadRequest, "id and code are required", nil)
		return
	}
	if req.DefaultAllocationDays < 0 {
		writeError(w, http.StatusBadRequest, "default_allocation_days must be non-negative", nil)
		return
	}

	lt := leave.LeaveType{
		ID:                    leave.LeaveTypeID(req.ID),
		Code:                  req.Code,
		Description:           req.Description,
		DefaultAllocationDays: leave.Days(req.DefaultAllocationDays),
	}
	if err := h.Store.SaveLeaveType(r.Context(), lt); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save leave type", err)
		return
	}
	writeJSON(w, http.StatusCreated, toLeaveTypeDTO(lt))
}

// =============================================================================
// WFH HANDLERS
// =============================================================================

// SubmitWFHRequest submits a new WFH request for a user.
func (h *Handler) SubmitWFHRequest(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req SubmitWFHRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	startDate, err := leave.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return
	}
	endDate, err := leave.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
		return
	}

	created, err := h.WFH.Submit(r.Context(), leave.UserID(userID), startDate, endDate, req.Reason)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to submit WFH request", err)
		return
	}
	writeJSON(w, http.StatusCreated, toWFHRequestDTO(*created))
}

// ListWFHRequests returns a user's WFH requests.
func (h *Handler) ListWFHRequests(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	reqs, err := h.Store.WFHRequestsByUser(r.Context(), leave.UserID(userID))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list WFH requests", err)
		return
	}

	dtos := make([]WFHRequestDTO, len(reqs))
	for i, req := range reqs {
		dtos[i] = toWFHRequestDTO(req)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ApproveWFHRequest approves a pending WFH request.
func (h *Handler) ApproveWFHRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	decide := decodeDecision(r)

	req, err := h.WFH.Approve(r.Context(), wfh.RequestID(id), decide.ActorID)
	if err != nil {
		writeWFHError(w, "Failed to approve WFH request", err)
		return
	}
	writeJSON(w, http.StatusOK, toWFHRequestDTO(*req))
}

// RejectWFHRequest rejects a pending WFH request.
func (h *Handler) RejectWFHRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	decide := decodeDecision(r)

	req, err := h.WFH.Reject(r.Context(), wfh.RequestID(id), decide.ActorID, decide.Reason)
	if err != nil {
		writeWFHError(w, "Failed to reject WFH request", err)
		return
	}
	writeJSON(w, http.StatusOK, toWFHRequestDTO(*req))
}

// CancelWFHRequest soft-cancels a pending or approved WFH request.
func (h *Handler) CancelWFHRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	decide := decodeDecision(r)

	req, err := h.WFH.Cancel(r.Context(), wfh.RequestID(id), decide.ActorID)
	if err != nil {
		writeWFHError(w, "Failed to cancel WFH request", err)
		return
	}
	writeJSON(w, http.StatusOK, toWFHRequestDTO(*req))
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// UpsertBalance sets the backend-authoritative remaining balance for a
// user and leave-type code. This is the manual-adjustment path that the
// distribution computation treats as the source of truth.
func (h *Handler) UpsertBalance(w http.ResponseWriter, r *http.Request) {
	var req UpsertBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.UserID == "" || req.LeaveType == "" {
		writeError(w, http.StatusBadRequest, "user_id and leave_type are required", nil)
		return
	}

	rec := leave.BalanceRecord{
		UserID:      leave.UserID(req.UserID),
		LeaveType:   req.LeaveType,
		BalanceDays: leave.Days(req.BalanceDays),
	}
	if err := h.Store.UpsertBalance(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to upsert balance", err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns holidays visible to a company (?company_id=).
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")

	holidays, err := h.Store.Holidays(r.Context(), companyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}

	dtos := make([]HolidayDTO, len(holidays))
	for i, holiday := range holidays {
		dtos[i] = toHolidayDTO(holiday)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHoliday creates a holiday.
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req HolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := leave.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	holiday := leave.Holiday{
		ID:        req.ID,
		CompanyID: req.CompanyID,
		Date:      date,
		Name:      req.Name,
		Recurring: req.Recurring,
	}
	if holiday.ID == "" {
		holiday.ID = uuid.NewString()
	}

	if err := h.Store.SaveHoliday(r.Context(), holiday); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, toHolidayDTO(holiday))
}

// DeleteHoliday removes a holiday.
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteHoliday(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SEED HANDLER
// =============================================================================

// LoadSeed resets the database and loads the demo dataset.
func (h *Handler) LoadSeed(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	if err := Seed(r.Context(), h.Store); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to seed database", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "seeded"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps leave domain errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case leave.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, leave.ErrEmptyRange):
		writeError(w, http.StatusBadRequest, message, err)
	case leave.IsClientError(err):
		writeError(w, http.StatusConflict, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeWFHError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, wfh.ErrRequestNotFound):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, wfh.ErrInvalidTransition):
		writeError(w, http.StatusConflict, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
