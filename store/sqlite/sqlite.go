/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements the persistence interfaces (leave.Store, wfh.Store,
  leave.HolidayCalendar) using SQLite. In production, the same patterns
  apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  users:           Profile records (gender drives eligibility)
  leave_types:     Reference data, insertion-ordered via position
  leave_requests:  Requests with soft status transitions (no DELETE)
  balance_records: Backend-authoritative remaining days per user+code
  wfh_requests:    Work-from-home requests
  holidays:        Informational holiday calendar

SOFT-TRANSITION ENFORCEMENT:
  leave_requests and wfh_requests have no DELETE path. Status changes
  are row replacements; the decision metadata travels with the row.

DECIMAL STORAGE:
  Day amounts are stored as TEXT and parsed with shopspring/decimal to
  avoid float drift in balances.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/leave.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - leave/store.go: Interface definitions
  - leave/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/wfh"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	_ leave.Store           = (*Store)(nil)
	_ wfh.Store             = (*Store)(nil)
	_ leave.HolidayCalendar = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		gender TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS leave_types (
		id TEXT PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL,
		default_allocation_days TEXT NOT NULL,
		position INTEGER NOT NULL
	);

	-- Soft transitions only: rows are replaced, never deleted
	CREATE TABLE IF NOT EXISTS leave_requests (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		leave_type_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		total_days TEXT NOT NULL,
		status TEXT NOT NULL,
		decided_by TEXT,
		decided_at TEXT,
		decision_note TEXT,
		reason TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_leave_requests_user ON leave_requests(user_id, created_at);
	CREATE INDEX IF NOT EXISTS idx_leave_requests_status ON leave_requests(status);

	CREATE TABLE IF NOT EXISTS balance_records (
		user_id TEXT NOT NULL,
		leave_type_code TEXT NOT NULL,
		balance_days TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (user_id, leave_type_code)
	);

	CREATE TABLE IF NOT EXISTS wfh_requests (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		working_days INTEGER NOT NULL,
		status TEXT NOT NULL,
		decided_by TEXT,
		decided_at TEXT,
		decision_note TEXT,
		reason TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_wfh_requests_user ON wfh_requests(user_id, created_at);

	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		recurring INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_holidays_company ON holidays(company_id, date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// USERS
// =============================================================================

func (s *Store) SaveUser(ctx context.Context, u leave.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO users (id, name, email, gender, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		string(u.ID), u.Name, u.Email, string(u.Gender), createdAt.Format(time.RFC3339),
	)
	return err
}

func (s *Store) GetUser(ctx context.Context, id leave.UserID) (*leave.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, gender, created_at FROM users WHERE id = ?`, string(id))

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]leave.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, gender, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []leave.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*leave.User, error) {
	var u leave.User
	var id, gender, createdAt string
	if err := row.Scan(&id, &u.Name, &u.Email, &gender, &createdAt); err != nil {
		return nil, err
	}
	u.ID = leave.UserID(id)
	u.Gender = leave.Gender(gender)
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}

// =============================================================================
// LEAVE TYPES
// =============================================================================

func (s *Store) SaveLeaveType(ctx context.Context, lt leave.LeaveType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Keep the existing position on replace so catalog order is stable.
	var position int
	err := s.db.QueryRowContext(ctx,
		`SELECT position FROM leave_types WHERE id = ?`, string(lt.ID)).Scan(&position)
	if err == sql.ErrNoRows {
		if err := s.db.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position), -1) + 1 FROM leave_types`).Scan(&position); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO leave_types (id, code, description, default_allocation_days, position)
		VALUES (?, ?, ?, ?, ?)`,
		string(lt.ID), lt.Code, lt.Description, lt.DefaultAllocationDays.String(), position,
	)
	return err
}

func (s *Store) GetLeaveType(ctx context.Context, id leave.LeaveTypeID) (*leave.LeaveType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, code, description, default_allocation_days FROM leave_types WHERE id = ?`,
		string(id))

	lt, err := scanLeaveType(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return lt, nil
}

func (s *Store) ListLeaveTypes(ctx context.Context) ([]leave.LeaveType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, code, description, default_allocation_days FROM leave_types ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		lt, err := scanLeaveType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, *lt)
	}
	return types, rows.Err()
}

func scanLeaveType(row scanner) (*leave.LeaveType, error) {
	var lt leave.LeaveType
	var id, allocation string
	if err := row.Scan(&id, &lt.Code, &lt.Description, &allocation); err != nil {
		return nil, err
	}
	lt.ID = leave.LeaveTypeID(id)
	days, err := decimal.NewFromString(allocation)
	if err != nil {
		return nil, fmt.Errorf("leave type %s: bad allocation %q: %w", id, allocation, err)
	}
	lt.DefaultAllocationDays = days
	return &lt, nil
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

func (s *Store) SaveRequest(ctx context.Context, req leave.LeaveRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var decidedBy, decidedAt, decisionNote sql.NullString
	if req.Decision != nil {
		decidedBy = sql.NullString{String: req.Decision.By, Valid: true}
		decidedAt = sql.NullString{String: req.Decision.At.Format(time.RFC3339), Valid: true}
		decisionNote = sql.NullString{String: req.Decision.Note, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO leave_requests
		(id, user_id, leave_type_id, start_date, end_date, total_days, status,
		 decided_by, decided_at, decision_note, reason, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(req.ID), string(req.UserID), string(req.LeaveTypeID),
		req.StartDate.String(), req.EndDate.String(), req.TotalDays.String(),
		string(req.Status), decidedBy, decidedAt, decisionNote, req.Reason,
		req.CreatedAt.Format(time.RFC3339Nano), req.UpdatedAt.Format(time.RFC3339Nano),
	)
	return err
}

func (s *Store) GetRequest(ctx context.Context, id leave.RequestID) (*leave.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reqs, err := s.queryRequests(ctx, `
		SELECT id, user_id, leave_type_id, start_date, end_date, total_days, status,
		       decided_by, decided_at, decision_note, reason, created_at, updated_at
		FROM leave_requests WHERE id = ?`, string(id))
	if err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, nil
	}
	return &reqs[0], nil
}

func (s *Store) RequestsByUser(ctx context.Context, userID leave.UserID) ([]leave.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryRequests(ctx, `
		SELECT id, user_id, leave_type_id, start_date, end_date, total_days, status,
		       decided_by, decided_at, decision_note, reason, created_at, updated_at
		FROM leave_requests WHERE user_id = ? ORDER BY created_at DESC`, string(userID))
}

func (s *Store) PendingRequests(ctx context.Context) ([]leave.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryRequests(ctx, `
		SELECT id, user_id, leave_type_id, start_date, end_date, total_days, status,
		       decided_by, decided_at, decision_note, reason, created_at, updated_at
		FROM leave_requests WHERE status = ? ORDER BY created_at ASC`, string(leave.StatusPending))
}

func (s *Store) queryRequests(ctx context.Context, query string, args ...any) ([]leave.LeaveRequest, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		var id, userID, typeID, startDate, endDate, totalDays, status, createdAt, updatedAt string
		var reason, decidedBy, decidedAt, decisionNote sql.NullString

		if err := rows.Scan(&id, &userID, &typeID, &startDate, &endDate, &totalDays,
			&status, &decidedBy, &decidedAt, &decisionNote, &reason, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		req.ID = leave.RequestID(id)
		req.UserID = leave.UserID(userID)
		req.LeaveTypeID = leave.LeaveTypeID(typeID)
		req.Status = leave.RequestStatus(status)
		req.Reason = reason.String

		if req.StartDate, err = leave.ParseDate(startDate); err != nil {
			return nil, fmt.Errorf("request %s: bad start_date: %w", id, err)
		}
		if req.EndDate, err = leave.ParseDate(endDate); err != nil {
			return nil, fmt.Errorf("request %s: bad end_date: %w", id, err)
		}
		if req.TotalDays, err = decimal.NewFromString(totalDays); err != nil {
			return nil, fmt.Errorf("request %s: bad total_days: %w", id, err)
		}

		if decidedBy.Valid {
			at, _ := time.Parse(time.RFC3339, decidedAt.String)
			req.Decision = &leave.Decision{By: decidedBy.String, At: at, Note: decisionNote.String}
		}

		req.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		req.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)

		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// =============================================================================
// BALANCE RECORDS
// =============================================================================

func (s *Store) UpsertBalance(ctx context.Context, rec leave.BalanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO balance_records (user_id, leave_type_code, balance_days, updated_at)
		VALUES (?, ?, ?, ?)`,
		string(rec.UserID), rec.LeaveType, rec.BalanceDays.String(), time.Now().Format(time.RFC3339),
	)
	return err
}

func (s *Store) BalancesByUser(ctx context.Context, userID leave.UserID) ([]leave.BalanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, leave_type_code, balance_days
		FROM balance_records WHERE user_id = ? ORDER BY leave_type_code`, string(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []leave.BalanceRecord
	for rows.Next() {
		var rec leave.BalanceRecord
		var uid, code, days string
		if err := rows.Scan(&uid, &code, &days); err != nil {
			return nil, err
		}
		rec.UserID = leave.UserID(uid)
		rec.LeaveType = code
		if rec.BalanceDays, err = decimal.NewFromString(days); err != nil {
			return nil, fmt.Errorf("balance %s/%s: bad balance_days: %w", uid, code, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// =============================================================================
// WFH REQUESTS
// =============================================================================

func (s *Store) SaveWFHRequest(ctx context.Context, req wfh.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var decidedBy, decidedAt, decisionNote sql.NullString
	if req.Decision != nil {
		decidedBy = sql.NullString{String: req.Decision.By, Valid: true}
		decidedAt = sql.NullString{String: req.Decision.At.Format(time.RFC3339), Valid: true}
		decisionNote = sql.NullString{String: req.Decision.Note, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO wfh_requests
		(id, user_id, start_date, end_date, working_days, status,
		 decided_by, decided_at, decision_note, reason, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(req.ID), string(req.UserID),
		req.StartDate.String(), req.EndDate.String(), req.WorkingDays,
		string(req.Status), decidedBy, decidedAt, decisionNote, req.Reason,
		req.CreatedAt.Format(time.RFC3339Nano), req.UpdatedAt.Format(time.RFC3339Nano),
	)
	return err
}

func (s *Store) GetWFHRequest(ctx context.Context, id wfh.RequestID) (*wfh.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reqs, err := s.queryWFHRequests(ctx, `
		SELECT id, user_id, start_date, end_date, working_days, status,
		       decided_by, decided_at, decision_note, reason, created_at, updated_at
		FROM wfh_requests WHERE id = ?`, string(id))
	if err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, nil
	}
	return &reqs[0], nil
}

func (s *Store) WFHRequestsByUser(ctx context.Context, userID leave.UserID) ([]wfh.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryWFHRequests(ctx, `
		SELECT id, user_id, start_date, end_date, working_days, status,
		       decided_by, decided_at, decision_note, reason, created_at, updated_at
		FROM wfh_requests WHERE user_id = ? ORDER BY created_at DESC`, string(userID))
}

func (s *Store) queryWFHRequests(ctx context.Context, query string, args ...any) ([]wfh.Request, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []wfh.Request
	for rows.Next() {
		var req wfh.Request
		var id, userID, startDate, endDate, status, createdAt, updatedAt string
		var reason, decidedBy, decidedAt, decisionNote sql.NullString

		if err := rows.Scan(&id, &userID, &startDate, &endDate, &req.WorkingDays,
			&status, &decidedBy, &decidedAt, &decisionNote, &reason, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		req.ID = wfh.RequestID(id)
		req.UserID = leave.UserID(userID)
		req.Status = wfh.Status(status)
		req.Reason = reason.String

		if req.StartDate, err = leave.ParseDate(startDate); err != nil {
			return nil, fmt.Errorf("wfh request %s: bad start_date: %w", id, err)
		}
		if req.EndDate, err = leave.ParseDate(endDate); err != nil {
			return nil, fmt.Errorf("wfh request %s: bad end_date: %w", id, err)
		}

		if decidedBy.Valid {
			at, _ := time.Parse(time.RFC3339, decidedAt.String)
			req.Decision = &leave.Decision{By: decidedBy.String, At: at, Note: decisionNote.String}
		}

		req.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		req.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)

		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func (s *Store) SaveHoliday(ctx context.Context, h leave.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recurring := 0
	if h.Recurring {
		recurring = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO holidays (id, company_id, date, name, recurring)
		VALUES (?, ?, ?, ?, ?)`,
		h.ID, h.CompanyID, h.Date.String(), h.Name, recurring,
	)
	return err
}

func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM holidays WHERE id = ?`, id)
	return err
}

// Holidays returns company-specific and global holidays, date-ordered.
func (s *Store) Holidays(ctx context.Context, companyID string) ([]leave.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.holidaysLocked(ctx, companyID)
}

func (s *Store) holidaysLocked(ctx context.Context, companyID string) ([]leave.Holiday, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, company_id, date, name, recurring
		FROM holidays WHERE company_id = ? OR company_id = '' ORDER BY date`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []leave.Holiday
	for rows.Next() {
		var h leave.Holiday
		var date string
		var recurring int
		if err := rows.Scan(&h.ID, &h.CompanyID, &date, &h.Name, &recurring); err != nil {
			return nil, err
		}
		if h.Date, err = leave.ParseDate(date); err != nil {
			return nil, fmt.Errorf("holiday %s: bad date: %w", h.ID, err)
		}
		h.Recurring = recurring == 1
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// IsHoliday checks company-specific holidays first, then global ones.
// Recurring holidays match on month/day regardless of year.
func (s *Store) IsHoliday(ctx context.Context, companyID string, date leave.Date) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	holidays, err := s.holidaysLocked(ctx, companyID)
	if err != nil {
		return false, err
	}
	for _, h := range holidays {
		if h.Recurring {
			if h.Date.Month() == date.Month() && h.Date.Day() == date.Day() {
				return true, nil
			}
			continue
		}
		if h.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

// =============================================================================
// MAINTENANCE
// =============================================================================

// Reset clears all tables. Dev/demo use only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"users", "leave_types", "leave_requests", "balance_records", "wfh_requests", "holidays"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
