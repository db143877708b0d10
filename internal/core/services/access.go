package services

import (
	"context"
	"errors"

	"goldtrack/internal/adapters/persistence/repositories"
	"goldtrack/internal/core/domain"
)

// accessResolver maps a caller identity onto an employee profile and the
// visibility that profile grants. It is the only place the role rule lives.
type accessResolver struct {
	employees repositories.EmployeeRepository
}

// profile returns the caller's employee profile, or nil when there is none
func (a accessResolver) profile(ctx context.Context, id *domain.Identity) (*domain.Employee, error) {
	if id == nil || id.UserID == "" {
		return nil, nil
	}
	emp, err := a.employees.GetByUserID(ctx, id.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return emp, nil
}

// readScope resolves what the caller may read. ok is false for anonymous
// callers and callers without an active profile; such queries return empty.
func (a accessResolver) readScope(ctx context.Context, id *domain.Identity) (domain.Scope, bool, error) {
	emp, err := a.profile(ctx, id)
	if err != nil || emp == nil || !emp.IsActive {
		return domain.Scope{}, false, err
	}
	return domain.ScopeFor(emp), true, nil
}

// writer resolves the employee that will own a new record
func (a accessResolver) writer(ctx context.Context, id *domain.Identity) (*domain.Employee, error) {
	if id == nil || id.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	emp, err := a.profile(ctx, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrEmployeeProfileMissing
	}
	if !emp.IsActive {
		return nil, domain.ErrEmployeeInactive
	}
	return emp, nil
}

// admin resolves a caller that must hold an active admin profile.
// ok is false for anonymous callers, whose admin queries degrade to empty.
func (a accessResolver) admin(ctx context.Context, id *domain.Identity) (*domain.Employee, bool, error) {
	if id == nil || id.UserID == "" {
		return nil, false, nil
	}
	emp, err := a.profile(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if !emp.IsAdmin() || !emp.IsActive {
		return nil, false, domain.ErrForbidden
	}
	return emp, true, nil
}
