// Package store provides Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/leave-engine/leave"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu         sync.RWMutex
	users      map[leave.UserID]leave.User
	leaveTypes []leave.LeaveType
	requests   map[leave.RequestID]leave.LeaveRequest
	balances   map[balanceKey]leave.BalanceRecord
}

type balanceKey struct {
	UserID    leave.UserID
	LeaveType string
}

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[leave.UserID]leave.User),
		requests: make(map[leave.RequestID]leave.LeaveRequest),
		balances: make(map[balanceKey]leave.BalanceRecord),
	}
}

var _ leave.Store = (*Memory)(nil)

// -----------------------------------------------------------------------------
// Users

func (m *Memory) SaveUser(_ context.Context, u leave.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

func (m *Memory) GetUser(_ context.Context, id leave.UserID) (*leave.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *Memory) ListUsers(_ context.Context) ([]leave.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := make([]leave.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// -----------------------------------------------------------------------------
// Leave types

func (m *Memory) SaveLeaveType(_ context.Context, lt leave.LeaveType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.leaveTypes {
		if existing.ID == lt.ID {
			m.leaveTypes[i] = lt
			return nil
		}
	}
	m.leaveTypes = append(m.leaveTypes, lt)
	return nil
}

func (m *Memory) GetLeaveType(_ context.Context, id leave.LeaveTypeID) (*leave.LeaveType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, lt := range m.leaveTypes {
		if lt.ID == id {
			found := lt
			return &found, nil
		}
	}
	return nil, nil
}

// ListLeaveTypes preserves insertion order; the distribution output
// follows this ordering.
func (m *Memory) ListLeaveTypes(_ context.Context) ([]leave.LeaveType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]leave.LeaveType, len(m.leaveTypes))
	copy(result, m.leaveTypes)
	return result, nil
}

// -----------------------------------------------------------------------------
// Requests

func (m *Memory) SaveRequest(_ context.Context, req leave.LeaveRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[req.ID] = req
	return nil
}

func (m *Memory) GetRequest(_ context.Context, id leave.RequestID) (*leave.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	req, ok := m.requests[id]
	if !ok {
		return nil, nil
	}
	return &req, nil
}

func (m *Memory) RequestsByUser(_ context.Context, userID leave.UserID) ([]leave.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []leave.LeaveRequest
	for _, req := range m.requests {
		if req.UserID == userID {
			result = append(result, req)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *Memory) PendingRequests(_ context.Context) ([]leave.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []leave.LeaveRequest
	for _, req := range m.requests {
		if req.Status == leave.StatusPending {
			result = append(result, req)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// -----------------------------------------------------------------------------
// Balance records

func (m *Memory) UpsertBalance(_ context.Context, rec leave.BalanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[balanceKey{UserID: rec.UserID, LeaveType: rec.LeaveType}] = rec
	return nil
}

func (m *Memory) BalancesByUser(_ context.Context, userID leave.UserID) ([]leave.BalanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []leave.BalanceRecord
	for _, rec := range m.balances {
		if rec.UserID == userID {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].LeaveType < result[j].LeaveType })
	return result, nil
}
