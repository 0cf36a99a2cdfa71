/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/wfh"
)

// =============================================================================
// USERS
// =============================================================================

type UserDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Gender    string `json:"gender"`
	CreatedAt string `json:"created_at,omitempty"`
}

type CreateUserRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Gender string `json:"gender"`
}

// =============================================================================
// LEAVE TYPES
// =============================================================================

type LeaveTypeDTO struct {
	ID                    string  `json:"id"`
	Code                  string  `json:"code"`
	Description           string  `json:"description"`
	DefaultAllocationDays float64 `json:"default_allocation_days"`
}

type CreateLeaveTypeRequest struct {
	ID                    string  `json:"id"`
	Code                  string  `json:"code"`
	Description           string  `json:"description"`
	DefaultAllocationDays float64 `json:"default_allocation_days"`
}

// =============================================================================
// DISTRIBUTION - The core balance view contract
// =============================================================================

// DistributionEntryDTO is the per-leave-type balance view.
type DistributionEntryDTO struct {
	Type           string  `json:"type"`
	Code           string  `json:"code"`
	Total          float64 `json:"total"`
	Used           float64 `json:"used"`
	Remaining      float64 `json:"remaining"`
	PercentageUsed float64 `json:"percentage_used"`
	IsEligible     bool    `json:"is_eligible"`
}

type DistributionDTO struct {
	Entries            []DistributionEntryDTO `json:"entries"`
	RemainingLeaveDays float64                `json:"remaining_leave_days"`
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

type SubmitLeaveRequest struct {
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"` // ISO date (YYYY-MM-DD)
	EndDate     string `json:"end_date"`

	// TotalDays overrides the computed working-day count when positive.
	TotalDays float64 `json:"total_days,omitempty"`

	Reason string `json:"reason,omitempty"`
}

type LeaveRequestDTO struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	LeaveTypeID string  `json:"leave_type_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	TotalDays   float64 `json:"total_days"`
	Status      string  `json:"status"`
	Reason      string  `json:"reason,omitempty"`
	DecidedBy   string  `json:"decided_by,omitempty"`
	DecidedAt   string  `json:"decided_at,omitempty"`
	Note        string  `json:"decision_note,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// DecideRequest carries who is deciding and, for rejection, why.
type DecideRequest struct {
	ActorID string `json:"actor_id"`
	Reason  string `json:"reason,omitempty"`
}

// =============================================================================
// WFH REQUESTS
// =============================================================================

type SubmitWFHRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason,omitempty"`
}

type WFHRequestDTO struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	WorkingDays int    `json:"working_days"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
	DecidedBy   string `json:"decided_by,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// =============================================================================
// BALANCES & HOLIDAYS
// =============================================================================

type UpsertBalanceRequest struct {
	UserID      string  `json:"user_id"`
	LeaveType   string  `json:"leave_type"` // code, not id
	BalanceDays float64 `json:"balance_days"`
}

type HolidayDTO struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id,omitempty"`
	Date      string `json:"date"`
	Name      string `json:"name"`
	Recurring bool   `json:"recurring"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toUserDTO(u leave.User) UserDTO {
	return UserDTO{
		ID:        string(u.ID),
		Name:      u.Name,
		Email:     u.Email,
		Gender:    string(u.Gender),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func toLeaveTypeDTO(lt leave.LeaveType) LeaveTypeDTO {
	allocation, _ := lt.DefaultAllocationDays.Float64()
	return LeaveTypeDTO{
		ID:                    string(lt.ID),
		Code:                  lt.Code,
		Description:           lt.Description,
		DefaultAllocationDays: allocation,
	}
}

func toDistributionDTO(d leave.Distribution) DistributionDTO {
	entries := make([]DistributionEntryDTO, len(d.Entries))
	for i, e := range d.Entries {
		total, _ := e.Total.Float64()
		used, _ := e.Used.Float64()
		remaining, _ := e.Remaining.Float64()
		pct, _ := e.PercentageUsed.Float64()
		entries[i] = DistributionEntryDTO{
			Type:           e.Type,
			Code:           e.Code,
			Total:          total,
			Used:           used,
			Remaining:      remaining,
			PercentageUsed: pct,
			IsEligible:     e.IsEligible,
		}
	}
	remainingDays, _ := d.RemainingLeaveDays.Float64()
	return DistributionDTO{Entries: entries, RemainingLeaveDays: remainingDays}
}

func toLeaveRequestDTO(req leave.LeaveRequest) LeaveRequestDTO {
	totalDays, _ := req.TotalDays.Float64()
	dto := LeaveRequestDTO{
		ID:          string(req.ID),
		UserID:      string(req.UserID),
		LeaveTypeID: string(req.LeaveTypeID),
		StartDate:   req.StartDate.String(),
		EndDate:     req.EndDate.String(),
		TotalDays:   totalDays,
		Status:      string(req.Status),
		Reason:      req.Reason,
		CreatedAt:   req.CreatedAt.Format(time.RFC3339),
	}
	if req.Decision != nil {
		dto.DecidedBy = req.Decision.By
		dto.DecidedAt = req.Decision.At.Format(time.RFC3339)
		dto.Note = req.Decision.Note
	}
	return dto
}

func toLeaveRequestDTOs(reqs []leave.LeaveRequest) []LeaveRequestDTO {
	dtos := make([]LeaveRequestDTO, len(reqs))
	for i, req := range reqs {
		dtos[i] = toLeaveRequestDTO(req)
	}
	return dtos
}

func toWFHRequestDTO(req wfh.Request) WFHRequestDTO {
	dto := WFHRequestDTO{
		ID:          string(req.ID),
		UserID:      string(req.UserID),
		StartDate:   req.StartDate.String(),
		EndDate:     req.EndDate.String(),
		WorkingDays: req.WorkingDays,
		Status:      string(req.Status),
		Reason:      req.Reason,
		CreatedAt:   req.CreatedAt.Format(time.RFC3339),
	}
	if req.Decision != nil {
		dto.DecidedBy = req.Decision.By
	}
	return dto
}

func toHolidayDTO(h leave.Holiday) HolidayDTO {
	return HolidayDTO{
		ID:        h.ID,
		CompanyID: h.CompanyID,
		Date:      h.Date.String(),
		Name:      h.Name,
		Recurring: h.Recurring,
	}
}
