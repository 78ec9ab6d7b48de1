package app

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"go-workforce/internal/account"
	accounterrors "go-workforce/internal/account/errors"
	"go-workforce/internal/employee"
	employeeerrors "go-workforce/internal/employee/errors"
	"go-workforce/internal/hr"
	hrerrors "go-workforce/internal/hr/errors"
	"go-workforce/internal/leave"
	leaveerrors "go-workforce/internal/leave/errors"
	"go-workforce/internal/messaging/kafka"
)

// memStore backs every repository with maps so a whole request flow can run
// through the real services and routes. Transactions are not simulated.
type memStore struct {
	mu        sync.Mutex
	accounts  map[string]*account.Account
	employees map[string]*employee.EmployeeProfile
	hrs       map[string]*hr.HRProfile
	leaves    map[string]*leave.LeaveRequest
	outbox    []kafka.OutboxEvent
}

func newMemStore() *memStore {
	return &memStore{
		accounts:  map[string]*account.Account{},
		employees: map[string]*employee.EmployeeProfile{},
		hrs:       map[string]*hr.HRProfile{},
		leaves:    map[string]*leave.LeaveRequest{},
	}
}

func (m *memStore) repositories() repositories {
	return repositories{
		accounts:  &memAccounts{m},
		employees: &memEmployees{m},
		hrs:       &memHRs{m},
		leaves:    &memLeaves{m},
		outbox:    &memOutbox{m},
	}
}

type memAccounts struct{ s *memStore }

func (r *memAccounts) WithTx(*sql.Tx) account.Repository { return r }

func (r *memAccounts) Create(_ context.Context, a *account.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.accounts {
		if existing.Email == a.Email {
			return accounterrors.ErrEmailAlreadyRegistered
		}
	}
	a.CreatedAt = time.Now().UTC()
	cp := *a
	r.s.accounts[a.ID.String()] = &cp
	return nil
}

func (r *memAccounts) FindByID(_ context.Context, id string) (*account.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, accounterrors.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memAccounts) FindByEmail(_ context.Context, email string) (*account.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, accounterrors.ErrAccountNotFound
}

func (r *memAccounts) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *memAccounts) UpdateAvatar(_ context.Context, id, url, handle string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return accounterrors.ErrAccountNotFound
	}
	a.AvatarURL = &url
	a.AvatarHandle = nil
	if handle != "" {
		a.AvatarHandle = &handle
	}
	return nil
}

func (r *memAccounts) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[id]; !ok {
		return accounterrors.ErrAccountNotFound
	}
	delete(r.s.accounts, id)
	return nil
}

type memEmployees struct{ s *memStore }

func (r *memEmployees) WithTx(*sql.Tx) employee.Repository { return r }

func (r *memEmployees) Create(_ context.Context, p *employee.EmployeeProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	cp.Account = nil
	r.s.employees[p.ID.String()] = &cp
	return nil
}

func (r *memEmployees) FindByID(_ context.Context, id string) (*employee.EmployeeProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.employees[id]
	if !ok {
		return nil, employeeerrors.ErrEmployeeNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memEmployees) FindByAccountID(_ context.Context, accountID string) (*employee.EmployeeProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.employees {
		if p.AccountID.String() == accountID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, employeeerrors.ErrProfileNotFound
}

func (r *memEmployees) List(_ context.Context, params employee.ListParams) ([]employee.EmployeeProfile, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []employee.EmployeeProfile
	for _, p := range r.s.employees {
		if params.Search == "" || strings.Contains(strings.ToLower(p.FullName()), strings.ToLower(params.Search)) {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memEmployees) Update(_ context.Context, p *employee.EmployeeProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.employees[p.ID.String()] = &cp
	return nil
}

func (r *memEmployees) UpdateAvatar(_ context.Context, accountID, url, handle string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.employees {
		if p.AccountID.String() == accountID {
			p.AvatarURL = &url
		}
	}
	return nil
}

func (r *memEmployees) DeleteByAccountID(_ context.Context, accountID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, p := range r.s.employees {
		if p.AccountID.String() == accountID {
			delete(r.s.employees, id)
		}
	}
	return nil
}

type memHRs struct{ s *memStore }

func (r *memHRs) WithTx(*sql.Tx) hr.Repository { return r }

func (r *memHRs) Create(_ context.Context, p *hr.HRProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	cp.Account = nil
	r.s.hrs[p.ID.String()] = &cp
	return nil
}

func (r *memHRs) FindByAccountID(_ context.Context, accountID string) (*hr.HRProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.hrs {
		if p.AccountID.String() == accountID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, hrerrors.ErrHRProfileNotFound
}

func (r *memHRs) Update(_ context.Context, p *hr.HRProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.hrs[p.ID.String()] = &cp
	return nil
}

func (r *memHRs) DeleteByAccountID(_ context.Context, accountID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, p := range r.s.hrs {
		if p.AccountID.String() == accountID {
			delete(r.s.hrs, id)
		}
	}
	return nil
}

type memLeaves struct{ s *memStore }

func (r *memLeaves) WithTx(*sql.Tx) leave.Repository { return r }

func (r *memLeaves) Create(_ context.Context, l *leave.LeaveRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *l
	r.s.leaves[l.ID.String()] = &cp
	return nil
}

func (r *memLeaves) FindByID(_ context.Context, id string) (*leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.leaves[id]
	if !ok {
		return nil, leaveerrors.ErrLeaveNotFound
	}
	cp := *l
	return &cp, nil
}

// sorted returns matching leaves newest first with the employee attached.
// Callers hold the lock.
func (r *memLeaves) sorted(match func(*leave.LeaveRequest) bool) []leave.LeaveRequest {
	var out []leave.LeaveRequest
	for _, l := range r.s.leaves {
		if !match(l) {
			continue
		}
		cp := *l
		if p, ok := r.s.employees[l.EmployeeID.String()]; ok {
			emp := *p
			cp.Employee = &emp
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memLeaves) ListByEmployee(_ context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sorted(func(l *leave.LeaveRequest) bool { return l.EmployeeID.String() == employeeID }), nil
}

func (r *memLeaves) ListAll(_ context.Context, filter leave.ListFilter) ([]leave.LeaveRequest, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.sorted(func(l *leave.LeaveRequest) bool { return filter.Status == "" || l.Status == filter.Status })
	return out, int64(len(out)), nil
}

func (r *memLeaves) Transition(_ context.Context, id string, d leave.Decision) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.leaves[id]
	if !ok || l.Status != leave.StatusPending {
		return false, nil
	}
	approver, at := d.ApproverID, d.ApprovedAt
	l.Status = d.Status
	l.ApproverID = &approver
	l.ApprovedAt = &at
	l.Comment = d.Comment
	return true, nil
}

func (r *memLeaves) ListApprovedInRange(_ context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sorted(func(l *leave.LeaveRequest) bool {
		return l.EmployeeID.String() == employeeID && l.Status == leave.StatusApproved && l.Overlaps(from, to)
	}), nil
}

func (r *memLeaves) CountByStatus(_ context.Context, employeeID string) (map[leave.Status]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[leave.Status]int64{}
	for _, l := range r.s.leaves {
		if l.EmployeeID.String() == employeeID {
			counts[l.Status]++
		}
	}
	return counts, nil
}

func (r *memLeaves) DeleteByEmployee(_ context.Context, employeeID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, l := range r.s.leaves {
		if l.EmployeeID.String() == employeeID {
			delete(r.s.leaves, id)
			n++
		}
	}
	return n, nil
}

type memOutbox struct{ s *memStore }

func (r *memOutbox) WithTx(*sql.Tx) kafka.OutboxRepository { return r }

func (r *memOutbox) Create(_ context.Context, event kafka.OutboxEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.outbox = append(r.s.outbox, event)
	return nil
}

func (r *memOutbox) ListPending(context.Context, int) ([]kafka.OutboxEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]kafka.OutboxEvent(nil), r.s.outbox...), nil
}

func (r *memOutbox) MarkSent(context.Context, string) error { return nil }

func (r *memOutbox) MarkFailed(context.Context, string, string) error { return nil }
