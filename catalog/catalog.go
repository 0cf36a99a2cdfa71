/*
Package catalog provides JSON to Go leave-type conversion.

PURPOSE:
  Converts JSON leave-type definitions into leave.LeaveType values.
  This enables leave-type configuration without code changes - HR can
  define the catalog in JSON, store it in the database or a file, and
  the catalog creates the proper Go structs.

JSON SCHEMA:
  [
    {
      "id": "lt-annual",
      "code": "annual",
      "description": "Annual Leave",
      "default_allocation_days": 21
    },
    ...
  ]

VALIDATION:
  - id and code must be non-empty
  - codes must be unique within a catalog
  - default_allocation_days must be non-negative

GENDER RESTRICTIONS:
  Eligibility is derived from the CODE ("maternity", "paternity"), not
  configured here; the catalog carries no gender field on purpose, so a
  typo cannot silently widen a restricted type.

USAGE:
  types, err := catalog.Parse(jsonStr)

  // Or start from the built-in defaults
  types, _ := catalog.Parse(catalog.DefaultJSON())

SEE ALSO:
  - leave/types.go: LeaveType definition
  - leave/eligibility.go: Code-based gender rules
*/
package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/warp/leave-engine/leave"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// LeaveTypeJSON is the JSON representation of a leave type.
type LeaveTypeJSON struct {
	ID                    string  `json:"id"`
	Code                  string  `json:"code"`
	Description           string  `json:"description"`
	DefaultAllocationDays float64 `json:"default_allocation_days"`
}

// =============================================================================
// PARSING
// =============================================================================

// Parse converts a JSON catalog into leave types, preserving order.
func Parse(jsonStr string) ([]leave.LeaveType, error) {
	var raw []LeaveTypeJSON
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, fmt.Errorf("invalid catalog JSON: %w", err)
	}

	seen := make(map[string]bool, len(raw))
	types := make([]leave.LeaveType, 0, len(raw))

	for i, lt := range raw {
		if lt.ID == "" {
			return nil, fmt.Errorf("catalog entry %d: missing id", i)
		}
		if lt.Code == "" {
			return nil, fmt.Errorf("catalog entry %d (%s): missing code", i, lt.ID)
		}
		if seen[lt.Code] {
			return nil, fmt.Errorf("catalog entry %d (%s): duplicate code %q", i, lt.ID, lt.Code)
		}
		if lt.DefaultAllocationDays < 0 {
			return nil, fmt.Errorf("catalog entry %d (%s): negative allocation", i, lt.ID)
		}
		seen[lt.Code] = true

		types = append(types, leave.LeaveType{
			ID:                    leave.LeaveTypeID(lt.ID),
			Code:                  lt.Code,
			Description:           lt.Description,
			DefaultAllocationDays: leave.Days(lt.DefaultAllocationDays),
		})
	}
	return types, nil
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultJSON returns the built-in leave-type catalog. This is the
// starting point seeded into new installations.
func DefaultJSON() string {
	return `[
		{"id": "lt-annual",    "code": "annual",    "description": "Annual Leave",    "default_allocation_days": 21},
		{"id": "lt-sick",      "code": "sick",      "description": "Sick Leave",      "default_allocation_days": 10},
		{"id": "lt-maternity", "code": "maternity", "description": "Maternity Leave", "default_allocation_days": 90},
		{"id": "lt-paternity", "code": "paternity", "description": "Paternity Leave", "default_allocation_days": 10},
		{"id": "lt-unpaid",    "code": "unpaid",    "description": "Unpaid Leave",    "default_allocation_days": 0}
	]`
}
