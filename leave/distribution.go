/*
distribution.go - Balance distribution computation

PURPOSE:
  Computes, per leave type, the total/used/remaining balance for a user.
  This is the central calculation that answers "how many days does this
  user have left?" and feeds every balance view in the UI.

INPUTS (all plain in-memory values, already fetched by the caller):
  - Gender: eligibility filtering only
  - LeaveTypes: ordered reference data
  - Requests: the user's leave requests (caller pre-filters by user)
  - BalanceRecords: backend-authoritative remaining days per type code

THE BACKEND-WINS RULE:
  `total` and `used` are derived locally (allocation default + request
  list). `remaining` is NOT derived: when the backend reports a balance
  record for a type, that figure wins, because admins can adjust
  balances out of band. Only when no record exists does remaining fall
  back to total - used. As a consequence used + remaining == total is
  the intended relationship but is not enforced; the computation is
  deliberately discrepancy-tolerant.

DEFENSIVE DEGRADATION:
  A request referencing an unknown leave-type id is skipped silently.
  A missing balance record falls back to the derived figure. No input
  combination makes the computation fail; callers always get a
  best-effort result.

SEE ALSO:
  - eligibility.go: Gender-based eligibility rule
  - calendar.go: Working-day counter used when requests are submitted
*/
package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// INPUT / OUTPUT TYPES
// =============================================================================

// DistributionInput bundles everything the computation consumes.
type DistributionInput struct {
	Gender     Gender
	LeaveTypes []LeaveType

	// Requests must already be filtered to the user in question.
	Requests []LeaveRequest

	BalanceRecords []BalanceRecord

	// Year scopes the "used" accumulation: only requests whose start
	// date falls in this calendar year count. Zero means current year.
	Year int
}

// DistributionEntry is the per-leave-type result, recomputed on every
// balance view and never persisted.
type DistributionEntry struct {
	// Type is the human-readable leave type description.
	Type string

	// Code is the leave type's symbolic code (join key for callers).
	Code string

	Total     decimal.Decimal
	Used      decimal.Decimal
	Remaining decimal.Decimal

	// PercentageUsed = used / (used + remaining) * 100. The denominator
	// is intentionally NOT `total`: when the backend-reported remaining
	// diverges from total - used, the percentage follows the reported
	// figures. Preserved as observed product behavior.
	PercentageUsed decimal.Decimal

	IsEligible bool
}

// Distribution is the complete result: one entry per leave type plus
// the aggregate remaining figure across eligible types.
type Distribution struct {
	Entries []DistributionEntry

	// RemainingLeaveDays sums the backend-reported balance days across
	// eligible leave types. Ineligible types are excluded from the sum
	// entirely, not merely hidden.
	RemainingLeaveDays decimal.Decimal
}

// =============================================================================
// COMPUTATION
// =============================================================================

var hundred = decimal.NewFromInt(100)

// ComputeDistribution produces the per-type balance distribution.
// Pure and deterministic: identical inputs yield identical output, and
// the input slices are never mutated.
func ComputeDistribution(in DistributionInput) Distribution {
	year := in.Year
	if year == 0 {
		year = time.Now().Year()
	}

	// Accumulate used days per leave type from approved and pending
	// requests starting in the target year. Requests referencing an
	// unknown leave type are skipped; one bad reference must not sink
	// the whole computation.
	known := make(map[LeaveTypeID]bool, len(in.LeaveTypes))
	for _, lt := range in.LeaveTypes {
		known[lt.ID] = true
	}

	used := make(map[LeaveTypeID]decimal.Decimal, len(in.LeaveTypes))
	for _, req := range in.Requests {
		if !req.Status.CountsAsUsed() {
			continue
		}
		if req.StartDate.Year() != year {
			continue
		}
		if !known[req.LeaveTypeID] {
			continue
		}
		used[req.LeaveTypeID] = used[req.LeaveTypeID].Add(req.TotalDays)
	}

	// Backend balance records, keyed by leave type code. First record
	// wins so duplicate codes cannot flip the result between runs.
	reported := make(map[string]decimal.Decimal, len(in.BalanceRecords))
	for _, rec := range in.BalanceRecords {
		if _, ok := reported[rec.LeaveType]; !ok {
			reported[rec.LeaveType] = rec.BalanceDays
		}
	}

	entries := make([]DistributionEntry, 0, len(in.LeaveTypes))
	remainingTotal := decimal.Zero

	for _, lt := range in.LeaveTypes {
		total := lt.DefaultAllocationDays
		typeUsed := used[lt.ID]

		remaining := total.Sub(typeUsed)
		if reportedDays, ok := reported[lt.Code]; ok {
			remaining = reportedDays
		}

		eligible := Eligible(in.Gender, lt.Code)
		if eligible {
			if reportedDays, ok := reported[lt.Code]; ok {
				remainingTotal = remainingTotal.Add(reportedDays)
			}
		}

		entries = append(entries, DistributionEntry{
			Type:           lt.Description,
			Code:           lt.Code,
			Total:          total,
			Used:           typeUsed,
			Remaining:      remaining,
			PercentageUsed: percentageUsed(typeUsed, remaining),
			IsEligible:     eligible,
		})
	}

	return Distribution{
		Entries:            entries,
		RemainingLeaveDays: remainingTotal,
	}
}

func percentageUsed(used, remaining decimal.Decimal) decimal.Decimal {
	denom := used.Add(remaining)
	if denom.IsZero() {
		return decimal.Zero
	}
	return used.Div(denom).Mul(hundred)
}
