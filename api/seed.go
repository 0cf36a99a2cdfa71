/*
seed.go - Demo dataset loader

PURPOSE:
  Populates the store with a small, deterministic demo dataset so the
  API is explorable immediately after startup: the default leave-type
  catalog, a handful of users covering both genders, a few requests in
  different lifecycle states, and one backend-authoritative balance
  record to show the override path.

SEE ALSO:
  - catalog/catalog.go: The default leave-type catalog parsed here
*/
package api

import (
	"context"
	"fmt"

	"github.com/warp/leave-engine/catalog"
	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/store/sqlite"
)

// Seed loads the demo dataset into the store. Safe to call on an empty
// or freshly reset database; IDs are fixed so reseeding is idempotent.
func Seed(ctx context.Context, store *sqlite.Store) error {
	types, err := catalog.Parse(catalog.DefaultJSON())
	if err != nil {
		return fmt.Errorf("parse default catalog: %w", err)
	}
	for _, lt := range types {
		if err := store.SaveLeaveType(ctx, lt); err != nil {
			return fmt.Errorf("save leave type %s: %w", lt.Code, err)
		}
	}

	users := []leave.User{
		{ID: "u-amara", Name: "Amara Diallo", Email: "amara@example.com", Gender: leave.GenderFemale},
		{ID: "u-brian", Name: "Brian Osei", Email: "brian@example.com", Gender: leave.GenderMale},
		{ID: "u-chidi", Name: "Chidi Nwosu", Email: "chidi@example.com", Gender: leave.GenderMale},
	}
	for _, u := range users {
		if err := store.SaveUser(ctx, u); err != nil {
			return fmt.Errorf("save user %s: %w", u.ID, err)
		}
	}

	annual := findType(types, "annual")
	sick := findType(types, "sick")

	year := leave.Today().Year()
	requests := []leave.LeaveRequest{
		{
			ID:          "req-amara-annual",
			UserID:      "u-amara",
			LeaveTypeID: annual.ID,
			StartDate:   leave.NewDate(year, 3, 2),
			EndDate:     leave.NewDate(year, 3, 6),
			TotalDays:   leave.DaysInt(5),
			Status:      leave.StatusApproved,
		},
		{
			ID:          "req-amara-sick",
			UserID:      "u-amara",
			LeaveTypeID: sick.ID,
			StartDate:   leave.NewDate(year, 5, 11),
			EndDate:     leave.NewDate(year, 5, 12),
			TotalDays:   leave.DaysInt(2),
			Status:      leave.StatusPending,
		},
		{
			ID:          "req-brian-annual",
			UserID:      "u-brian",
			LeaveTypeID: annual.ID,
			StartDate:   leave.NewDate(year, 7, 20),
			EndDate:     leave.NewDate(year, 7, 24),
			TotalDays:   leave.DaysInt(5),
			Status:      leave.StatusRejected,
		},
	}
	for _, req := range requests {
		if err := store.SaveRequest(ctx, req); err != nil {
			return fmt.Errorf("save request %s: %w", req.ID, err)
		}
	}

	// Backend override: Chidi carried over days from last year, so his
	// annual balance is set explicitly instead of derived.
	if err := store.UpsertBalance(ctx, leave.BalanceRecord{
		UserID:      "u-chidi",
		LeaveType:   "annual",
		BalanceDays: leave.DaysInt(25),
	}); err != nil {
		return fmt.Errorf("save balance: %w", err)
	}

	holidays := []leave.Holiday{
		{ID: "hol-new-year", Date: leave.NewDate(year, 1, 1), Name: "New Year's Day", Recurring: true},
		{ID: "hol-labour-day", Date: leave.NewDate(year, 5, 1), Name: "Labour Day", Recurring: true},
	}
	for _, h := range holidays {
		if err := store.SaveHoliday(ctx, h); err != nil {
			return fmt.Errorf("save holiday %s: %w", h.ID, err)
		}
	}

	return nil
}

func findType(types []leave.LeaveType, code string) leave.LeaveType {
	for _, lt := range types {
		if lt.Code == code {
			return lt
		}
	}
	return leave.LeaveType{}
}
